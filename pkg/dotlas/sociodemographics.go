package dotlas

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/twpayne/go-geom/encoding/geojson"
)

// CityStats summarizes a city's population profile. The service returns a
// flat object for this endpoint; absent statistics decode as zero.
type CityStats struct {
	AverageIndividualIncome        float64 `json:"average_individual_income"`
	MedianHouseholdIncome          float64 `json:"median_household_income"`
	PopulationTotal                int     `json:"population_total"`
	PopulationYouth                int     `json:"population_youth"`
	PopulationMiddleAge            int     `json:"population_middle_age"`
	PopulationSenior               int     `json:"population_senior"`
	WorkTransportationSelfMobility int     `json:"work_transportation_self_mobility"`
	HouseholdIncomeLow             int     `json:"household_income_low"`
	HouseholdIncomeMedium          int     `json:"household_income_medium"`
	HouseholdIncomeHigh            int     `json:"household_income_high"`
	HouseholdsTotal                int     `json:"households_total"`
	HouseholdsFamilyTotal          int     `json:"households_family_total"`
	AverageHouseholdComposition    float64 `json:"average_household_composition"`
}

// Statistic is one sociodemographic measure: the absolute value, the
// city-wide value, and the share of the city total.
type Statistic struct {
	Value float64 `json:"value"`
	City  float64 `json:"city"`
	Share float64 `json:"share"`
}

// PopulationAffluence splits population by household income band.
type PopulationAffluence struct {
	LowMedianHouseholdIncome    Statistic `json:"low_median_household_income"`
	MediumMedianHouseholdIncome Statistic `json:"medium_median_household_income"`
	HighMedianHouseholdIncome   Statistic `json:"high_median_household_income"`
}

// Demographics holds population measures for an area or territory.
type Demographics struct {
	TotalPopulation          Statistic           `json:"total_population"`
	YouthPopulation          Statistic           `json:"youth_population"`
	MiddleAgedPopulation     Statistic           `json:"middle_aged_population"`
	SeniorPopulation         Statistic           `json:"senior_population"`
	SelfMobilizingPopulation Statistic           `json:"self_mobilizing_population"`
	PopulationAffluence      PopulationAffluence `json:"population_affluence"`
}

// IncomeStat pairs average and median for one income basis.
type IncomeStat struct {
	Avg    Statistic `json:"avg"`
	Median Statistic `json:"median"`
}

// Income holds household and individual income measures.
type Income struct {
	Household  IncomeStat `json:"household"`
	Individual IncomeStat `json:"individual"`
}

// HouseholdComposition holds household counts and size.
type HouseholdComposition struct {
	HouseholdCount            Statistic `json:"household_count"`
	HouseholdsWithFamilyCount Statistic `json:"households_with_family_count"`
	AvgPersonsPerHousehold    Statistic `json:"avg_persons_per_household"`
}

// Sociodemographic groups the demographic, income and household measures
// valid within an area or sales territory.
type Sociodemographic struct {
	Demographics         Demographics         `json:"demographics"`
	Income               Income               `json:"income"`
	HouseholdComposition HouseholdComposition `json:"household_composition"`
}

// AreaStats is returned by the area-level stats endpoint.
type AreaStats struct {
	Sociodemographic Sociodemographic           `json:"sociodemographic"`
	AreasCovered     []string                   `json:"areas_covered"`
	Geometry         *geojson.FeatureCollection `json:"geometry"`
}

// SalesTerritoryRequest parameterizes an isochrone derivation. Exactly one
// of TimeMinutes or DistanceMeters must be set; ModeOfMobility is required
// with TimeMinutes and defaults to driving otherwise.
type SalesTerritoryRequest struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	City           string  `json:"city"`
	ModeOfMobility string  `json:"mode_of_mobility,omitempty"`
	TimeMinutes    int     `json:"time_minutes,omitempty"`
	DistanceMeters int     `json:"distance_meters,omitempty"`
}

func (r *SalesTerritoryRequest) validate() error {
	if err := validCoordinates(r.Latitude, r.Longitude); err != nil {
		return err
	}
	if err := nonEmpty("city", r.City); err != nil {
		return err
	}
	if r.TimeMinutes == 0 && r.DistanceMeters == 0 {
		return newValidationError("either time_minutes or distance_meters must be specified")
	}
	if r.TimeMinutes != 0 && r.DistanceMeters != 0 {
		return newValidationError("time_minutes and distance_meters are mutually exclusive")
	}
	if r.TimeMinutes != 0 {
		if r.TimeMinutes < minTimeMinutes || r.TimeMinutes > maxTimeMinutes {
			return newValidationError("time_minutes %d outside [%d, %d]", r.TimeMinutes, minTimeMinutes, maxTimeMinutes)
		}
		if r.ModeOfMobility == "" {
			return newValidationError("mode_of_mobility is required for time-based sales territories")
		}
	}
	if r.DistanceMeters != 0 && (r.DistanceMeters < minDistanceMeters || r.DistanceMeters > maxDistanceMeters) {
		return newValidationError("distance_meters %d outside [%d, %d]", r.DistanceMeters, minDistanceMeters, maxDistanceMeters)
	}
	if r.ModeOfMobility != "" {
		if err := validMode(r.ModeOfMobility); err != nil {
			return err
		}
	}
	return nil
}

// SalesTerritoryPayload carries the sociodemographics, covered areas and
// isochrone geometry of a derived territory.
type SalesTerritoryPayload struct {
	Sociodemographic Sociodemographic           `json:"sociodemographic"`
	AreasCovered     []string                   `json:"areas_covered"`
	Geometry         *geojson.FeatureCollection `json:"geometry"`
}

// SalesTerritoryResponse is the sales territory envelope.
type SalesTerritoryResponse struct {
	Request  SalesTerritoryRequest `json:"request"`
	Response SalesTerritoryPayload `json:"response"`
}

func (r *SalesTerritoryResponse) validate() error {
	if r.Response.Geometry == nil {
		return newValidationError("sales territory response missing geometry")
	}
	return nil
}

func (c *httpClient) CityStats(ctx context.Context, city string) (*CityStats, error) {
	if err := nonEmpty("city", city); err != nil {
		return nil, err
	}
	var stats CityStats
	if err := c.get(ctx, "/socio-demographics/stats/"+url.PathEscape(city), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *httpClient) AreaStats(ctx context.Context, city, area string) (*AreaStats, error) {
	if err := nonEmpty("city", city); err != nil {
		return nil, err
	}
	if err := nonEmpty("area", area); err != nil {
		return nil, err
	}
	var stats AreaStats
	path := "/socio-demographics/stats/" + url.PathEscape(city) + "/" + url.PathEscape(area)
	if err := c.get(ctx, path, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *httpClient) SalesTerritory(ctx context.Context, req SalesTerritoryRequest) (*SalesTerritoryResponse, error) {
	if req.TimeMinutes == 0 && req.DistanceMeters != 0 && req.ModeOfMobility == "" {
		req.ModeOfMobility = ModeDriving
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%v", req.Latitude))
	params.Set("longitude", fmt.Sprintf("%v", req.Longitude))
	params.Set("city", req.City)
	params.Set("mode_of_mobility", req.ModeOfMobility)

	path := "/socio-demographics/sales_territory/distance"
	if req.TimeMinutes != 0 {
		path = "/socio-demographics/sales_territory/time"
		params.Set("time_minutes", strconv.Itoa(req.TimeMinutes))
	} else {
		params.Set("distance_meters", strconv.Itoa(req.DistanceMeters))
	}

	var resp SalesTerritoryResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
