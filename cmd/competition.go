package main

import (
	"github.com/spf13/cobra"

	"github.com/dotlas/api-client-go/pkg/dotlas"
)

var competitionCmd = &cobra.Command{
	Use:   "competition",
	Short: "Competitive landscape around a location",
}

var competitionTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List accepted commercial types",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		types, err := client.ListCommercialTypes(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd, types)
	},
}

var competitionBrandsCmd = &cobra.Command{
	Use:   "brands <city> <commercial-type>",
	Short: "List brands of a commercial type in a city",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		brands, err := client.ListBrands(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return render(cmd, brands)
	},
}

var competitionCategoriesCmd = &cobra.Command{
	Use:   "categories <city> <commercial-type>",
	Short: "List category tags of a commercial type in a city",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		categories, err := client.ListCategories(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return render(cmd, categories)
	},
}

var competitionNearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "Find competition within a radius of a coordinate",
	RunE:  runCompetitionNearby,
}

func init() {
	competitionNearbyCmd.Flags().Float64("lat", 0, "Latitude")
	competitionNearbyCmd.Flags().Float64("lng", 0, "Longitude")
	competitionNearbyCmd.Flags().String("city", "", "City the coordinate falls in")
	competitionNearbyCmd.Flags().String("type", "", "Commercial type, e.g. Restaurant")
	competitionNearbyCmd.Flags().Int("radius", 0, "Search radius in meters (default 500)")
	competitionNearbyCmd.Flags().StringSlice("brand", nil, "Restrict results to these brands")
	competitionNearbyCmd.Flags().StringSlice("category", nil, "Restrict results to these category tags")
	_ = competitionNearbyCmd.MarkFlagRequired("lat")
	_ = competitionNearbyCmd.MarkFlagRequired("lng")
	_ = competitionNearbyCmd.MarkFlagRequired("city")
	_ = competitionNearbyCmd.MarkFlagRequired("type")

	competitionCmd.AddCommand(competitionTypesCmd, competitionBrandsCmd, competitionCategoriesCmd, competitionNearbyCmd)
	rootCmd.AddCommand(competitionCmd)
}

func runCompetitionNearby(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	lat, _ := cmd.Flags().GetFloat64("lat")
	lng, _ := cmd.Flags().GetFloat64("lng")
	city, _ := cmd.Flags().GetString("city")
	commercialType, _ := cmd.Flags().GetString("type")
	radius, _ := cmd.Flags().GetInt("radius")
	brands, _ := cmd.Flags().GetStringSlice("brand")
	categories, _ := cmd.Flags().GetStringSlice("category")

	resp, err := client.NearbyCompetition(cmd.Context(), dotlas.NearbyCompetitionRequest{
		Latitude:        lat,
		Longitude:       lng,
		City:            city,
		CommercialType:  commercialType,
		RadiusMeters:    radius,
		BrandFilters:    brands,
		CategoryFilters: categories,
	})
	if err != nil {
		return err
	}
	return render(cmd, resp)
}
