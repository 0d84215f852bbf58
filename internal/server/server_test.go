package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/dotlas/api-client-go/pkg/dotlas"
)

// stubClient implements dotlas.Client with overridable methods.
type stubClient struct {
	listCities        func(ctx context.Context) ([]string, error)
	cityStats         func(ctx context.Context, city string) (*dotlas.CityStats, error)
	nearbyCompetition func(ctx context.Context, req dotlas.NearbyCompetitionRequest) (*dotlas.NearbyCompetitionResponse, error)
	salesTerritory    func(ctx context.Context, req dotlas.SalesTerritoryRequest) (*dotlas.SalesTerritoryResponse, error)
}

func (s *stubClient) ListCities(ctx context.Context) ([]string, error) {
	return s.listCities(ctx)
}

func (s *stubClient) ListPlaces(_ context.Context, city string) ([]string, error) {
	return []string{city + " Place"}, nil
}

func (s *stubClient) ListAreas(_ context.Context, city string) ([]string, error) {
	return []string{city + " Area"}, nil
}

func (s *stubClient) ReverseGeocode(context.Context, float64, float64) (*dotlas.ReverseGeocodeResponse, error) {
	return &dotlas.ReverseGeocodeResponse{}, nil
}

func (s *stubClient) CityBoundary(context.Context, string) (*geojson.FeatureCollection, error) {
	return &geojson.FeatureCollection{}, nil
}

func (s *stubClient) PlaceBoundary(context.Context, string, string) (*geojson.FeatureCollection, error) {
	return &geojson.FeatureCollection{}, nil
}

func (s *stubClient) AreaBoundary(context.Context, string, string) (*geojson.FeatureCollection, error) {
	return &geojson.FeatureCollection{}, nil
}

func (s *stubClient) ListCommercialTypes(context.Context) ([]string, error) {
	return []string{"Restaurant"}, nil
}

func (s *stubClient) ListBrands(context.Context, string, string) ([]string, error) {
	return nil, nil
}

func (s *stubClient) ListCategories(context.Context, string, string) ([]string, error) {
	return nil, nil
}

func (s *stubClient) NearbyCompetition(ctx context.Context, req dotlas.NearbyCompetitionRequest) (*dotlas.NearbyCompetitionResponse, error) {
	return s.nearbyCompetition(ctx, req)
}

func (s *stubClient) CategoryInsights(context.Context, dotlas.InsightsRequest) (*dotlas.CategoryInsightsResponse, error) {
	return &dotlas.CategoryInsightsResponse{}, nil
}

func (s *stubClient) BrandInsights(context.Context, dotlas.InsightsRequest) (*dotlas.BrandInsightsResponse, error) {
	return &dotlas.BrandInsightsResponse{}, nil
}

func (s *stubClient) AreaInsights(context.Context, dotlas.InsightsRequest) (*dotlas.AreaInsightsResponse, error) {
	return &dotlas.AreaInsightsResponse{}, nil
}

func (s *stubClient) CityStats(ctx context.Context, city string) (*dotlas.CityStats, error) {
	return s.cityStats(ctx, city)
}

func (s *stubClient) AreaStats(context.Context, string, string) (*dotlas.AreaStats, error) {
	return &dotlas.AreaStats{}, nil
}

func (s *stubClient) SalesTerritory(ctx context.Context, req dotlas.SalesTerritoryRequest) (*dotlas.SalesTerritoryResponse, error) {
	return s.salesTerritory(ctx, req)
}

func newTestProxy(t *testing.T, stub *stubClient) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(stub))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestProxy(t, &stubClient{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListCitiesRoute(t *testing.T) {
	srv := newTestProxy(t, &stubClient{
		listCities: func(context.Context) ([]string, error) {
			return []string{"Houston", "Austin"}, nil
		},
	})

	resp, err := http.Get(srv.URL + "/cities")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cities []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cities))
	assert.Equal(t, []string{"Houston", "Austin"}, cities)
}

func TestCityStatsRoute(t *testing.T) {
	srv := newTestProxy(t, &stubClient{
		cityStats: func(_ context.Context, city string) (*dotlas.CityStats, error) {
			assert.Equal(t, "Houston", city)
			return &dotlas.CityStats{PopulationTotal: 2304580}, nil
		},
	})

	resp, err := http.Get(srv.URL + "/cities/Houston/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats dotlas.CityStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 2304580, stats.PopulationTotal)
}

func TestNearbyCompetitionRoute(t *testing.T) {
	srv := newTestProxy(t, &stubClient{
		nearbyCompetition: func(_ context.Context, req dotlas.NearbyCompetitionRequest) (*dotlas.NearbyCompetitionResponse, error) {
			assert.Equal(t, "New York", req.City)
			assert.Equal(t, "Restaurant", req.CommercialType)
			assert.InDelta(t, 40.748, req.Latitude, 0.001)
			return &dotlas.NearbyCompetitionResponse{Request: req}, nil
		},
	})

	resp, err := http.Get(srv.URL + "/competition/nearby?latitude=40.748&longitude=-73.985&city=New+York&commercial_type=Restaurant")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNearbyCompetitionMissingCoordinates(t *testing.T) {
	srv := newTestProxy(t, &stubClient{
		nearbyCompetition: func(context.Context, dotlas.NearbyCompetitionRequest) (*dotlas.NearbyCompetitionResponse, error) {
			t.Fatal("client must not be called without coordinates")
			return nil, nil
		},
	})

	resp, err := http.Get(srv.URL + "/competition/nearby?city=New+York")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTerritoryRoutes(t *testing.T) {
	srv := newTestProxy(t, &stubClient{
		salesTerritory: func(_ context.Context, req dotlas.SalesTerritoryRequest) (*dotlas.SalesTerritoryResponse, error) {
			return &dotlas.SalesTerritoryResponse{Request: req}, nil
		},
	})

	resp, err := http.Get(srv.URL + "/territory/time?latitude=29.76&longitude=-95.36&city=Houston&mode_of_mobility=driving&time_minutes=15")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dotlas.SalesTerritoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 15, body.Request.TimeMinutes)
	assert.Equal(t, "driving", body.Request.ModeOfMobility)

	resp, err = http.Get(srv.URL + "/territory/distance?latitude=29.76&longitude=-95.36&city=Houston&distance_meters=2000")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &dotlas.APIError{Kind: dotlas.KindValidation}, http.StatusBadRequest},
		{"not found", &dotlas.APIError{Kind: dotlas.KindNotFound, StatusCode: 404}, http.StatusNotFound},
		{"auth", &dotlas.APIError{Kind: dotlas.KindAuth, StatusCode: 403}, http.StatusBadGateway},
		{"service", &dotlas.APIError{Kind: dotlas.KindService, StatusCode: 500}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestProxy(t, &stubClient{
				listCities: func(context.Context) ([]string, error) { return nil, tt.err },
			})

			resp, err := http.Get(srv.URL + "/cities")
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestProxy(t, &stubClient{
		listCities: func(context.Context) ([]string, error) { return nil, nil },
	})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/cities", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:8888")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
