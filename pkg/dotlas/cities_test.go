package dotlas

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestListPlaces(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cities/places/Los%20Angeles", r.URL.EscapedPath())
		json.NewEncoder(w).Encode([]string{"Burbank", "Beverly Hills"})
	})

	places, err := c.ListPlaces(context.Background(), "Los Angeles")
	require.NoError(t, err)
	assert.Equal(t, []string{"Burbank", "Beverly Hills"}, places)
}

func TestListAreas(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cities/areas/New%20York", r.URL.EscapedPath())
		json.NewEncoder(w).Encode([]string{"Financial District", "Upper West Side"})
	})

	areas, err := c.ListAreas(context.Background(), "New York")
	require.NoError(t, err)
	assert.Equal(t, []string{"Financial District", "Upper West Side"}, areas)
}

func TestListEmptyCity(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for empty city")
	})

	_, err := c.ListPlaces(context.Background(), "")
	assert.True(t, IsValidation(err))
	_, err = c.ListAreas(context.Background(), "")
	assert.True(t, IsValidation(err))
}

func TestReverseGeocode(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cities/reverse_geocode", r.URL.Path)
		assert.Equal(t, "40.748611", r.URL.Query().Get("latitude"))
		assert.Equal(t, "-73.9856", r.URL.Query().Get("longitude"))

		json.NewEncoder(w).Encode(ReverseGeocodeResponse{
			Request: ReverseGeocodeRequest{Latitude: 40.748611, Longitude: -73.9856},
			Response: ReverseGeocodeResult{
				NbdName:       "Midtown",
				CountyGeoID:   "36061",
				CountyName:    "New York",
				StateCode:     "36",
				StateName:     "New York",
				StatePostcode: "NY",
			},
		})
	})

	resp, err := c.ReverseGeocode(context.Background(), 40.748611, -73.9856)
	require.NoError(t, err)
	assert.Equal(t, "Midtown", resp.Response.NbdName)
	// Request echo must match the inputs exactly.
	assert.Equal(t, 40.748611, resp.Request.Latitude)
	assert.Equal(t, -73.9856, resp.Request.Longitude)
}

func TestReverseGeocodeInvalidCoordinates(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for invalid coordinates")
	})

	for _, coords := range [][2]float64{{91, 0}, {-91, 0}, {0, 181}, {0, -181}} {
		_, err := c.ReverseGeocode(context.Background(), coords[0], coords[1])
		assert.True(t, IsValidation(err), "coords %v", coords)
	}
}

func TestReverseGeocodeMissingRequiredFields(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"request":{"latitude":1,"longitude":2},"response":{"nbd_name":"x"}}`))
	})

	resp, err := c.ReverseGeocode(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, IsValidation(err))
}

func TestCityBoundary(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cities/boundary/Houston", r.URL.Path)
		w.Write([]byte(`{
			"type": "FeatureCollection",
			"features": [{
				"type": "Feature",
				"properties": {"name": "Houston"},
				"geometry": {"type": "Polygon", "coordinates": [[[-95.8,29.5],[-95.0,29.5],[-95.0,30.1],[-95.8,30.1],[-95.8,29.5]]]}
			}]
		}`))
	})

	fc, err := c.CityBoundary(context.Background(), "Houston")
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)

	poly, ok := fc.Features[0].Geometry.(*geom.Polygon)
	require.True(t, ok)
	assert.Equal(t, 1, poly.NumLinearRings())
}

func TestPlaceAndAreaBoundaryPaths(t *testing.T) {
	var gotPath string
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	})

	_, err := c.PlaceBoundary(context.Background(), "Los Angeles", "Burbank")
	require.NoError(t, err)
	assert.Equal(t, "/cities/places/boundary/Los%20Angeles/Burbank", gotPath)

	_, err = c.AreaBoundary(context.Background(), "New York", "Financial District")
	require.NoError(t, err)
	assert.Equal(t, "/cities/areas/boundary/New%20York/Financial%20District", gotPath)
}
