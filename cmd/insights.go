package main

import (
	"github.com/spf13/cobra"

	"github.com/dotlas/api-client-go/pkg/dotlas"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "City-level market insights",
}

var insightsCategoriesCmd = &cobra.Command{
	Use:   "categories <city> <commercial-type>",
	Short: "Aggregate insights by category tag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		resp, err := client.CategoryInsights(cmd.Context(), insightsRequest(cmd, args))
		if err != nil {
			return err
		}
		return render(cmd, resp)
	},
}

var insightsBrandsCmd = &cobra.Command{
	Use:   "brands <city> <commercial-type>",
	Short: "Aggregate insights by brand",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		resp, err := client.BrandInsights(cmd.Context(), insightsRequest(cmd, args))
		if err != nil {
			return err
		}
		return render(cmd, resp)
	},
}

var insightsAreasCmd = &cobra.Command{
	Use:   "areas <city> <commercial-type>",
	Short: "Aggregate insights by street, neighborhood and postcode",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		resp, err := client.AreaInsights(cmd.Context(), insightsRequest(cmd, args))
		if err != nil {
			return err
		}
		return render(cmd, resp)
	},
}

func init() {
	for _, c := range []*cobra.Command{insightsCategoriesCmd, insightsBrandsCmd, insightsAreasCmd} {
		c.Flags().StringSlice("category", nil, "Restrict to these category tags")
		c.Flags().Int("price-range", 0, "Restrict to a price range (1-4)")
	}

	insightsCmd.AddCommand(insightsCategoriesCmd, insightsBrandsCmd, insightsAreasCmd)
	rootCmd.AddCommand(insightsCmd)
}

func insightsRequest(cmd *cobra.Command, args []string) dotlas.InsightsRequest {
	categories, _ := cmd.Flags().GetStringSlice("category")
	priceRange, _ := cmd.Flags().GetInt("price-range")

	return dotlas.InsightsRequest{
		City:           args[0],
		CommercialType: args[1],
		Categories:     categories,
		PriceRange:     priceRange,
	}
}
