package main

import (
	"github.com/spf13/cobra"

	"github.com/dotlas/api-client-go/pkg/dotlas"
)

var territoryCmd = &cobra.Command{
	Use:   "territory",
	Short: "Isochrone sales territories around a coordinate",
}

var territoryTimeCmd = &cobra.Command{
	Use:   "time",
	Short: "Territory reachable within a travel time",
	RunE: func(cmd *cobra.Command, _ []string) error {
		minutes, _ := cmd.Flags().GetInt("minutes")
		return runTerritory(cmd, dotlas.SalesTerritoryRequest{TimeMinutes: minutes})
	},
}

var territoryDistanceCmd = &cobra.Command{
	Use:   "distance",
	Short: "Territory reachable within a travel distance",
	RunE: func(cmd *cobra.Command, _ []string) error {
		meters, _ := cmd.Flags().GetInt("meters")
		return runTerritory(cmd, dotlas.SalesTerritoryRequest{DistanceMeters: meters})
	},
}

func init() {
	territoryTimeCmd.Flags().Int("minutes", 15, "Travel time in minutes (1-60)")
	territoryDistanceCmd.Flags().Int("meters", 1000, "Travel distance in meters (1-10000)")

	for _, c := range []*cobra.Command{territoryTimeCmd, territoryDistanceCmd} {
		c.Flags().Float64("lat", 0, "Latitude")
		c.Flags().Float64("lng", 0, "Longitude")
		c.Flags().String("city", "", "City the coordinate falls in")
		c.Flags().String("mode", "", "Mode of mobility (driving|walking)")
		c.Flags().String("geojson", "", "Write the territory to a GeoJSON file")
		c.Flags().String("shp", "", "Write the territory to an ESRI shapefile")
		_ = c.MarkFlagRequired("lat")
		_ = c.MarkFlagRequired("lng")
		_ = c.MarkFlagRequired("city")
	}

	territoryCmd.AddCommand(territoryTimeCmd, territoryDistanceCmd)
	rootCmd.AddCommand(territoryCmd)
}

func runTerritory(cmd *cobra.Command, req dotlas.SalesTerritoryRequest) error {
	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	req.Latitude, _ = cmd.Flags().GetFloat64("lat")
	req.Longitude, _ = cmd.Flags().GetFloat64("lng")
	req.City, _ = cmd.Flags().GetString("city")
	req.ModeOfMobility, _ = cmd.Flags().GetString("mode")

	resp, err := client.SalesTerritory(cmd.Context(), req)
	if err != nil {
		return err
	}

	geojsonPath, _ := cmd.Flags().GetString("geojson")
	shpPath, _ := cmd.Flags().GetString("shp")
	if geojsonPath == "" && shpPath == "" {
		return render(cmd, resp)
	}
	return writeBoundary(cmd, resp.Response.Geometry)
}
