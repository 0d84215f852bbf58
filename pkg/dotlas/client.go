// Package dotlas is a typed Go client for the Dotlas commercial
// intelligence API. API docs: https://api.dotlas.com/docs. To get an API
// key, visit dotlas.com or email info@dotlas.com.
package dotlas

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Default base URL for the Dotlas API.
const defaultBaseURL = "https://api.dotlas.com"

// Client defines the Dotlas API operations. All methods are safe for
// concurrent use; each call performs at most one outbound request unless
// retries are enabled via WithRetries.
type Client interface {
	// ListCities lists all cities supported by the API.
	ListCities(ctx context.Context) ([]string, error)
	// ListPlaces lists the places (sub-areas) within a city, e.g. Burbank
	// within Los Angeles.
	ListPlaces(ctx context.Context, city string) ([]string, error)
	// ListAreas lists the areas (neighborhoods) within a city, e.g.
	// Financial District within New York.
	ListAreas(ctx context.Context, city string) ([]string, error)
	// ReverseGeocode resolves a US coordinate to neighborhood depth.
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (*ReverseGeocodeResponse, error)
	// CityBoundary returns the boundary of a city as GeoJSON.
	CityBoundary(ctx context.Context, city string) (*geojson.FeatureCollection, error)
	// PlaceBoundary returns the boundary of a place within a city as GeoJSON.
	PlaceBoundary(ctx context.Context, city, place string) (*geojson.FeatureCollection, error)
	// AreaBoundary returns the boundary of an area within a city as GeoJSON.
	AreaBoundary(ctx context.Context, city, area string) (*geojson.FeatureCollection, error)

	// ListCommercialTypes lists the commercial types accepted by the API,
	// e.g. restaurants, retail, gyms.
	ListCommercialTypes(ctx context.Context) ([]string, error)
	// ListBrands lists the distinct brands of a commercial type in a city.
	ListBrands(ctx context.Context, city, commercialType string) ([]string, error)
	// ListCategories lists the distinct category tags of a commercial type
	// in a city, ordered by location count.
	ListCategories(ctx context.Context, city, commercialType string) ([]string, error)
	// NearbyCompetition returns data and insights for locations of a
	// commercial type within a radius of a coordinate.
	NearbyCompetition(ctx context.Context, req NearbyCompetitionRequest) (*NearbyCompetitionResponse, error)

	// CategoryInsights aggregates city-level insights by category tag.
	CategoryInsights(ctx context.Context, req InsightsRequest) (*CategoryInsightsResponse, error)
	// BrandInsights aggregates city-level insights by brand.
	BrandInsights(ctx context.Context, req InsightsRequest) (*BrandInsightsResponse, error)
	// AreaInsights aggregates city-level insights by street, neighborhood
	// and postcode.
	AreaInsights(ctx context.Context, req InsightsRequest) (*AreaInsightsResponse, error)

	// CityStats returns summarized sociodemographic statistics for a city.
	CityStats(ctx context.Context, city string) (*CityStats, error)
	// AreaStats returns sociodemographic statistics for an area in a city.
	AreaStats(ctx context.Context, city, area string) (*AreaStats, error)
	// SalesTerritory derives an isochrone sales territory around a
	// coordinate, either time-based or distance-based.
	SalesTerritory(ctx context.Context, req SalesTerritoryRequest) (*SalesTerritoryResponse, error)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL, e.g. for testing against an
// alternate deployment.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout. A timed-out call surfaces as a
// network-kind error.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// WithRetries enables up to n retries on 429, 5xx and transport failures,
// with exponential backoff. The default is zero: every failure surfaces
// immediately.
func WithRetries(n int) Option {
	return func(c *httpClient) {
		c.retries = n
	}
}

// WithRateLimit caps outbound calls at rps requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

// WithCache installs a read-through cache for GET responses.
func WithCache(cache Cache) Option {
	return func(c *httpClient) {
		c.cache = cache
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	retries int
	limiter *rate.Limiter
	cache   Cache
}

// New creates a Dotlas client using the provided API key.
func New(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs an authenticated GET and decodes the JSON response into out.
// The cache fingerprint is taken before the api_key parameter is attached,
// so credentials never enter the cache.
func (c *httpClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}

	var key string
	if c.cache != nil {
		key = fingerprint(http.MethodGet, path, params)
		if body, ok := c.cache.Get(ctx, key); ok {
			return c.decode(body, out)
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return newNetworkError(err)
		}
	}

	params.Set("api_key", c.apiKey)
	u := c.baseURL + path + "?" + params.Encode()

	body, err := c.do(ctx, http.MethodGet, u, path)
	if err != nil {
		return err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, body); err != nil {
			zap.L().Warn("dotlas: cache put failed", zap.Error(err))
		}
	}

	return c.decode(body, out)
}

// do executes the request, retrying per the configured policy, and returns
// the raw body of a 2xx response.
func (c *httpClient) do(ctx context.Context, method, u, path string) ([]byte, error) {
	requestID := uuid.NewString()
	log := zap.L().With(
		zap.String("component", "dotlas.client"),
		zap.String("request_id", requestID),
		zap.String("path", path),
	)

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			if err := backoff(ctx, attempt-1); err != nil {
				return nil, newNetworkError(err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, u, nil)
		if err != nil {
			return nil, eris.Wrap(err, "dotlas: create request")
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", c.apiKey)
		req.Header.Set("X-Request-ID", requestID)

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = newNetworkError(err)
			log.Warn("request failed", zap.Int("attempt", attempt+1), zap.Error(err))
			continue
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = newNetworkError(err)
			continue
		}

		log.Debug("request complete",
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
		)

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nil
		}

		apiErr := classifyStatus(resp.StatusCode, body)
		if !retryable(resp.StatusCode) {
			return nil, apiErr
		}
		lastErr = apiErr
		log.Warn("retryable response", zap.Int("status", resp.StatusCode), zap.Int("attempt", attempt+1))
	}

	return nil, lastErr
}

// decode unmarshals a response body and runs the payload's field checks
// when it declares any. Unknown fields are ignored; missing required fields
// surface as validation-kind errors.
func (c *httpClient) decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Kind: KindService, Body: snippet(body), cause: eris.Wrap(err, "decode response")}
	}
	if v, ok := out.(interface{ validate() error }); ok {
		if err := v.validate(); err != nil {
			return err
		}
	}
	return nil
}

// geoJSON fetches a boundary endpoint into a feature collection.
func (c *httpClient) geoJSON(ctx context.Context, path string) (*geojson.FeatureCollection, error) {
	var fc geojson.FeatureCollection
	if err := c.get(ctx, path, nil, &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}
