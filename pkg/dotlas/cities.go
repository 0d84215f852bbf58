package dotlas

import (
	"context"
	"fmt"
	"net/url"

	"github.com/twpayne/go-geom/encoding/geojson"
)

// ReverseGeocodeRequest echoes the coordinate passed to ReverseGeocode.
type ReverseGeocodeRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ReverseGeocodeResult locates a coordinate down to neighborhood depth.
type ReverseGeocodeResult struct {
	NbdName               string `json:"nbd_name,omitempty"`
	PlaceCode             string `json:"place_code,omitempty"`
	PlaceName             string `json:"place_name,omitempty"`
	PlaceNameComplete     string `json:"place_name_complete,omitempty"`
	UrbanAreaName         string `json:"urban_area_name,omitempty"`
	UrbanAreaNameComplete string `json:"urban_area_name_complete,omitempty"`
	CountyGeoID           string `json:"county_geo_id"`
	CountyName            string `json:"county_name"`
	CountyNameComplete    string `json:"county_name_complete"`
	CountyCode            string `json:"county_code"`
	StateCode             string `json:"state_code"`
	StateName             string `json:"state_name"`
	StatePostcode         string `json:"state_postcode"`
}

// ReverseGeocodeResponse is the envelope returned by the reverse geocode
// endpoint.
type ReverseGeocodeResponse struct {
	Request  ReverseGeocodeRequest `json:"request"`
	Response ReverseGeocodeResult  `json:"response"`
}

func (r *ReverseGeocodeResponse) validate() error {
	if r.Response.CountyGeoID == "" || r.Response.StateCode == "" {
		return newValidationError("reverse geocode response missing county_geo_id or state_code")
	}
	return nil
}

func (c *httpClient) ListCities(ctx context.Context) ([]string, error) {
	var cities []string
	if err := c.get(ctx, "/cities", nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (c *httpClient) ListPlaces(ctx context.Context, city string) ([]string, error) {
	if err := nonEmpty("city", city); err != nil {
		return nil, err
	}
	var places []string
	if err := c.get(ctx, "/cities/places/"+url.PathEscape(city), nil, &places); err != nil {
		return nil, err
	}
	return places, nil
}

func (c *httpClient) ListAreas(ctx context.Context, city string) ([]string, error) {
	if err := nonEmpty("city", city); err != nil {
		return nil, err
	}
	var areas []string
	if err := c.get(ctx, "/cities/areas/"+url.PathEscape(city), nil, &areas); err != nil {
		return nil, err
	}
	return areas, nil
}

func (c *httpClient) ReverseGeocode(ctx context.Context, latitude, longitude float64) (*ReverseGeocodeResponse, error) {
	if err := validCoordinates(latitude, longitude); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%v", latitude))
	params.Set("longitude", fmt.Sprintf("%v", longitude))

	var resp ReverseGeocodeResponse
	if err := c.get(ctx, "/cities/reverse_geocode", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) CityBoundary(ctx context.Context, city string) (*geojson.FeatureCollection, error) {
	if err := nonEmpty("city", city); err != nil {
		return nil, err
	}
	return c.geoJSON(ctx, "/cities/boundary/"+url.PathEscape(city))
}

func (c *httpClient) PlaceBoundary(ctx context.Context, city, place string) (*geojson.FeatureCollection, error) {
	if err := nonEmpty("city", city); err != nil {
		return nil, err
	}
	if err := nonEmpty("place", place); err != nil {
		return nil, err
	}
	return c.geoJSON(ctx, "/cities/places/boundary/"+url.PathEscape(city)+"/"+url.PathEscape(place))
}

func (c *httpClient) AreaBoundary(ctx context.Context, city, area string) (*geojson.FeatureCollection, error) {
	if err := nonEmpty("city", city); err != nil {
		return nil, err
	}
	if err := nonEmpty("area", area); err != nil {
		return nil, err
	}
	return c.geoJSON(ctx, "/cities/areas/boundary/"+url.PathEscape(city)+"/"+url.PathEscape(area))
}
