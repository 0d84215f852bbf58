package dotlas

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// defaultRadiusMeters is applied when NearbyCompetitionRequest.RadiusMeters
// is left zero.
const defaultRadiusMeters = 500

// PriceBins counts outlets per price range tier.
type PriceBins struct {
	Price1 int `json:"price_1"`
	Price2 int `json:"price_2"`
	Price3 int `json:"price_3"`
	Price4 int `json:"price_4"`
}

// OperatingHours holds per-weekday open-hour histograms.
type OperatingHours struct {
	Sunday    []int `json:"sunday"`
	Monday    []int `json:"monday"`
	Tuesday   []int `json:"tuesday"`
	Wednesday []int `json:"wednesday"`
	Thursday  []int `json:"thursday"`
	Friday    []int `json:"friday"`
	Saturday  []int `json:"saturday"`
}

// NearbyCompetitionRequest parameterizes a nearby competition search.
type NearbyCompetitionRequest struct {
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	City            string   `json:"city"`
	CommercialType  string   `json:"commercial_type"`
	RadiusMeters    int      `json:"radius_meters"`
	BrandFilters    []string `json:"brand_filters,omitempty"`
	CategoryFilters []string `json:"category_filters,omitempty"`
}

// Outlet is a single commercial location in a competition result.
type Outlet struct {
	BrandName        string   `json:"brand_name"`
	Address          string   `json:"address"`
	CategoryTags     []string `json:"category_tags"`
	Rating           float64  `json:"rating"`
	NumberOfReviews  int      `json:"number_of_reviews"`
	RatingPercentile float64  `json:"rating_percentile"`
	OrdersPercentile float64  `json:"orders_percentile"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
}

// CompetitionInsights summarizes how the queried coordinate compares to its
// surroundings.
type CompetitionInsights struct {
	NearbyOutletCount    int       `json:"nearby_outlet_count"`
	RatingPercentile     float64   `json:"rating_percentile"`
	PriceRangePercentile float64   `json:"price_range_percentile"`
	OrdersPercentile     float64   `json:"orders_percentile"`
	PriceBins            PriceBins `json:"price_bins"`
}

// CompetitionData holds the raw entities behind the insights.
type CompetitionData struct {
	TopOccurringCategories    []string       `json:"top_occurring_categories"`
	TopNearbyOutlets          []Outlet       `json:"top_nearby_outlets"`
	OperatingHoursOutletCount int            `json:"operating_hours_outlet_count"`
	OperatingHours            OperatingHours `json:"operating_hours"`
}

// CompetitionPayload is the response half of a nearby competition envelope.
type CompetitionPayload struct {
	Insights CompetitionInsights `json:"insights"`
	Data     CompetitionData     `json:"data"`
}

// NearbyCompetitionResponse is the envelope returned by the nearby
// competition endpoint. Request echoes the caller's parameters unchanged.
type NearbyCompetitionResponse struct {
	Request  NearbyCompetitionRequest `json:"request"`
	Response CompetitionPayload       `json:"response"`
}

func (r *NearbyCompetitionRequest) validate() error {
	if err := validCoordinates(r.Latitude, r.Longitude); err != nil {
		return err
	}
	if err := nonEmpty("city", r.City); err != nil {
		return err
	}
	if err := nonEmpty("commercial_type", r.CommercialType); err != nil {
		return err
	}
	if r.RadiusMeters < minRadiusMeters || r.RadiusMeters > maxRadiusMeters {
		return newValidationError("radius_meters %d outside [%d, %d]", r.RadiusMeters, minRadiusMeters, maxRadiusMeters)
	}
	return nil
}

func (c *httpClient) ListCommercialTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := c.get(ctx, "/competition/types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (c *httpClient) ListBrands(ctx context.Context, city, commercialType string) ([]string, error) {
	return c.discovery(ctx, "/competition/brands/", city, commercialType)
}

func (c *httpClient) ListCategories(ctx context.Context, city, commercialType string) ([]string, error) {
	return c.discovery(ctx, "/competition/categories/", city, commercialType)
}

func (c *httpClient) discovery(ctx context.Context, prefix, city, commercialType string) ([]string, error) {
	if err := nonEmpty("city", city); err != nil {
		return nil, err
	}
	if err := nonEmpty("commercial_type", commercialType); err != nil {
		return nil, err
	}
	var names []string
	path := prefix + url.PathEscape(city) + "/" + url.PathEscape(commercialType)
	if err := c.get(ctx, path, nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (c *httpClient) NearbyCompetition(ctx context.Context, req NearbyCompetitionRequest) (*NearbyCompetitionResponse, error) {
	if req.RadiusMeters == 0 {
		req.RadiusMeters = defaultRadiusMeters
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%v", req.Latitude))
	params.Set("longitude", fmt.Sprintf("%v", req.Longitude))
	params.Set("city", req.City)
	params.Set("radius_meters", strconv.Itoa(req.RadiusMeters))
	for _, b := range req.BrandFilters {
		params.Add("brand_filters", b)
	}
	for _, cat := range req.CategoryFilters {
		params.Add("category_filters", cat)
	}

	var resp NearbyCompetitionResponse
	path := "/competition/nearby/" + url.PathEscape(req.CommercialType)
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
