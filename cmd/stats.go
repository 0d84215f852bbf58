package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dotlas/api-client-go/internal/export"
	"github.com/dotlas/api-client-go/pkg/dotlas"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Sociodemographic statistics",
}

var statsCityCmd = &cobra.Command{
	Use:   "city <city>",
	Short: "Summarized statistics for a city",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := client.CityStats(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
			rows := []export.StatsRow{{City: args[0], Stats: *stats}}
			if err := export.WriteStatsWorkbook(path, rows); err != nil {
				return err
			}
			fmt.Println("wrote " + path)
			return nil
		}
		return render(cmd, stats)
	},
}

var statsAreaCmd = &cobra.Command{
	Use:   "area <city> <area>",
	Short: "Statistics for an area within a city",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := newClient()
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := client.AreaStats(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return render(cmd, stats)
	},
}

var statsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export statistics for every supported city to a workbook",
	RunE:  runStatsExport,
}

func init() {
	statsCityCmd.Flags().String("xlsx", "", "Write the statistics to an XLSX workbook")
	statsExportCmd.Flags().String("out", "city-stats.xlsx", "Output workbook path")
	statsExportCmd.Flags().Int("concurrency", 4, "Concurrent city fetches")

	statsCmd.AddCommand(statsCityCmd, statsAreaCmd, statsExportCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStatsExport(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	out, _ := cmd.Flags().GetString("out")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	cities, err := client.ListCities(cmd.Context())
	if err != nil {
		return err
	}
	sortNames(cities)

	rows, err := collectStats(cmd.Context(), cities, concurrency, client.CityStats)
	if err != nil {
		return err
	}

	if err := export.WriteStatsWorkbook(out, rows); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d cities)\n", out, len(rows))
	return nil
}

// collectStats fetches statistics for each city with bounded concurrency,
// preserving the input order in the result.
func collectStats(ctx context.Context, cities []string, concurrency int, fetch func(ctx context.Context, city string) (*dotlas.CityStats, error)) ([]export.StatsRow, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	rows := make([]export.StatsRow, len(cities))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, city := range cities {
		i, city := i, city
		g.Go(func() error {
			stats, err := fetch(ctx, city)
			if err != nil {
				return fmt.Errorf("stats for %s: %w", city, err)
			}
			rows[i] = export.StatsRow{City: city, Stats: *stats}
			zap.L().Debug("fetched city stats", zap.String("city", city))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
