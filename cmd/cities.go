package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/dotlas/api-client-go/internal/export"
)

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "City discovery and boundaries",
}

var citiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported cities",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		cities, err := client.ListCities(cmd.Context())
		if err != nil {
			return err
		}
		sortNames(cities)
		return render(cmd, cities)
	},
}

var citiesPlacesCmd = &cobra.Command{
	Use:   "places <city>",
	Short: "List places within a city",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		places, err := client.ListPlaces(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		sortNames(places)
		return render(cmd, places)
	},
}

var citiesAreasCmd = &cobra.Command{
	Use:   "areas <city>",
	Short: "List areas within a city",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		areas, err := client.ListAreas(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		sortNames(areas)
		return render(cmd, areas)
	},
}

var citiesBoundaryCmd = &cobra.Command{
	Use:   "boundary <city> [place-or-area]",
	Short: "Fetch a city, place or area boundary as GeoJSON",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCitiesBoundary,
}

var citiesGeocodeCmd = &cobra.Command{
	Use:   "reverse-geocode",
	Short: "Resolve a US coordinate to neighborhood depth",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")

		resp, err := client.ReverseGeocode(cmd.Context(), lat, lng)
		if err != nil {
			return err
		}
		return render(cmd, resp)
	},
}

func init() {
	citiesBoundaryCmd.Flags().Bool("area", false, "Treat the second argument as an area instead of a place")
	citiesBoundaryCmd.Flags().String("geojson", "", "Write the boundary to a GeoJSON file")
	citiesBoundaryCmd.Flags().String("shp", "", "Write the boundary to an ESRI shapefile")

	citiesGeocodeCmd.Flags().Float64("lat", 0, "Latitude")
	citiesGeocodeCmd.Flags().Float64("lng", 0, "Longitude")
	_ = citiesGeocodeCmd.MarkFlagRequired("lat")
	_ = citiesGeocodeCmd.MarkFlagRequired("lng")

	citiesCmd.AddCommand(citiesListCmd, citiesPlacesCmd, citiesAreasCmd, citiesBoundaryCmd, citiesGeocodeCmd)
	rootCmd.AddCommand(citiesCmd)
}

func runCitiesBoundary(cmd *cobra.Command, args []string) error {
	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	var fc *geojson.FeatureCollection
	switch {
	case len(args) == 1:
		fc, err = client.CityBoundary(cmd.Context(), args[0])
	default:
		asArea, _ := cmd.Flags().GetBool("area")
		if asArea {
			fc, err = client.AreaBoundary(cmd.Context(), args[0], args[1])
		} else {
			fc, err = client.PlaceBoundary(cmd.Context(), args[0], args[1])
		}
	}
	if err != nil {
		return err
	}
	return writeBoundary(cmd, fc)
}

// writeBoundary dispatches a fetched boundary to file flags, falling back to
// stdout when neither is set.
func writeBoundary(cmd *cobra.Command, fc *geojson.FeatureCollection) error {
	geojsonPath, _ := cmd.Flags().GetString("geojson")
	shpPath, _ := cmd.Flags().GetString("shp")

	if geojsonPath != "" {
		if err := export.WriteGeoJSON(geojsonPath, fc); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d features)\n", geojsonPath, len(fc.Features))
	}
	if shpPath != "" {
		if err := export.WriteShapefile(shpPath, fc); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d features)\n", shpPath, len(fc.Features))
	}
	if geojsonPath == "" && shpPath == "" {
		return render(cmd, fc)
	}
	return nil
}
