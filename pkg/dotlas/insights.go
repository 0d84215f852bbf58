package dotlas

import (
	"context"
	"net/url"
	"strconv"
)

// InsightsRequest parameterizes the category, brand and area insight
// endpoints. Categories and PriceRange are optional filters.
type InsightsRequest struct {
	City           string   `json:"city"`
	CommercialType string   `json:"commercial_type"`
	Categories     []string `json:"categories,omitempty"`
	PriceRange     int      `json:"price_range,omitempty"`
}

func (r *InsightsRequest) validate() error {
	if err := nonEmpty("city", r.City); err != nil {
		return err
	}
	if err := nonEmpty("commercial_type", r.CommercialType); err != nil {
		return err
	}
	if r.PriceRange < 0 {
		return newValidationError("price_range %d must be positive", r.PriceRange)
	}
	return nil
}

// CategoryStat aggregates outlets sharing one category tag.
type CategoryStat struct {
	CategoryTag        string    `json:"category_tag"`
	AvgRating          float64   `json:"avg_rating"`
	AvgNumberOfReviews float64   `json:"avg_number_of_reviews"`
	OutletCount        int       `json:"outlet_count"`
	PriceBins          PriceBins `json:"price_bins"`
}

// CategoryPair counts how often two category tags occur together.
type CategoryPair struct {
	Category1       string `json:"category_1"`
	Category2       string `json:"category_2"`
	PairOccurrences int    `json:"pair_occurrences"`
}

// CategoryInsights is the payload of the category insights endpoint.
type CategoryInsights struct {
	MaxOutlets                   string         `json:"max_outlets"`
	MaxAvgRating                 string         `json:"max_avg_rating"`
	MaxAvgReviews                string         `json:"max_avg_reviews"`
	MinAvgRating                 string         `json:"min_avg_rating"`
	CategoryStats                []CategoryStat `json:"category_stats"`
	CategoryByPairwiseOccurrence []CategoryPair `json:"category_by_pairwise_occurrence"`
}

// CategoryInsightsResponse is the category insights envelope.
type CategoryInsightsResponse struct {
	Request  InsightsRequest  `json:"request"`
	Response CategoryInsights `json:"response"`
}

// BrandStat aggregates outlets of one brand.
type BrandStat struct {
	BrandName          string    `json:"brand_name"`
	AvgRating          float64   `json:"avg_rating"`
	AvgNumberOfReviews float64   `json:"avg_number_of_reviews"`
	OutletCount        int       `json:"outlet_count"`
	CategoryTags       []string  `json:"category_tags"`
	PriceBins          PriceBins `json:"price_bins"`
}

// BrandInsights is the payload of the brand insights endpoint.
type BrandInsights struct {
	MaxOutlets                string         `json:"max_outlets"`
	MaxAvgRating              string         `json:"max_avg_rating"`
	MaxAvgReviews             string         `json:"max_avg_reviews"`
	OutletCount               int            `json:"outlet_count"`
	BrandStatsByOutletCount   []BrandStat    `json:"brand_stats_by_outlet_count"`
	BrandStatsByAvgRating     []BrandStat    `json:"brand_stats_by_avg_rating"`
	BrandStatsByAvgNumReviews []BrandStat    `json:"brand_stats_by_avg_number_of_reviews"`
	OutletCountsByPrice       PriceBins      `json:"outlet_counts_by_price"`
	OperatingHoursOutletCount int            `json:"operating_hours_outlet_count"`
	OperatingHours            OperatingHours `json:"operating_hours"`
}

// BrandInsightsResponse is the brand insights envelope.
type BrandInsightsResponse struct {
	Request  InsightsRequest `json:"request"`
	Response BrandInsights   `json:"response"`
}

// StreetStat aggregates outlets on one street.
type StreetStat struct {
	Street             string  `json:"street"`
	AvgRating          float64 `json:"avg_rating"`
	AvgNumberOfReviews float64 `json:"avg_number_of_reviews"`
	BrandCount         int     `json:"brand_count"`
}

// NeighborhoodStat aggregates outlets in one neighborhood.
type NeighborhoodStat struct {
	Neighborhood       string  `json:"neighborhood"`
	AvgRating          float64 `json:"avg_rating"`
	AvgNumberOfReviews float64 `json:"avg_number_of_reviews"`
	BrandCount         int     `json:"brand_count"`
}

// PostcodeStat aggregates outlets in one postcode.
type PostcodeStat struct {
	Postcode           string  `json:"postcode"`
	AvgRating          float64 `json:"avg_rating"`
	AvgNumberOfReviews float64 `json:"avg_number_of_reviews"`
	BrandCount         int     `json:"brand_count"`
}

// AreaInsights is the payload of the area insights endpoint.
type AreaInsights struct {
	StreetStats       []StreetStat       `json:"street_stats"`
	NeighborhoodStats []NeighborhoodStat `json:"neighborhood_stats"`
	PostcodeStats     []PostcodeStat     `json:"postcode_stats"`
}

// AreaInsightsResponse is the area insights envelope.
type AreaInsightsResponse struct {
	Request  InsightsRequest `json:"request"`
	Response AreaInsights    `json:"response"`
}

func (c *httpClient) CategoryInsights(ctx context.Context, req InsightsRequest) (*CategoryInsightsResponse, error) {
	var resp CategoryInsightsResponse
	if err := c.insights(ctx, "categories", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) BrandInsights(ctx context.Context, req InsightsRequest) (*BrandInsightsResponse, error) {
	var resp BrandInsightsResponse
	if err := c.insights(ctx, "brands", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) AreaInsights(ctx context.Context, req InsightsRequest) (*AreaInsightsResponse, error) {
	var resp AreaInsightsResponse
	if err := c.insights(ctx, "areas", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) insights(ctx context.Context, level string, req InsightsRequest, out any) error {
	if err := req.validate(); err != nil {
		return err
	}

	params := url.Values{}
	for _, cat := range req.Categories {
		params.Add("categories", cat)
	}
	if req.PriceRange > 0 {
		params.Set("price_range", strconv.Itoa(req.PriceRange))
	}

	path := "/competition/insights/" + level + "/" + url.PathEscape(req.City) + "/" + url.PathEscape(req.CommercialType)
	return c.get(ctx, path, params, out)
}
