package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkyprianou/erchete/internal/gtfs"
)

const fetchTimeout = 5 * time.Minute

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fetches all configured GTFS feeds and writes the stop catalog",
	RunE:  runBuild,
}

var (
	outFile    string
	noPrefix   bool
	skipRoutes bool
)

func init() {
	buildCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (overrides the sources file)")
	buildCmd.Flags().BoolVar(&noPrefix, "no-prefix", false, "keep original stop IDs instead of prefixing with the agency name")
	buildCmd.Flags().BoolVar(&skipRoutes, "skip-routes", false, "skip the routes-serving index (faster, smaller catalog)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := gtfs.LoadSources(sourcesFile)
	if err != nil {
		return err
	}

	out := cfg.Out
	if outFile != "" {
		out = outFile
	}

	datasets := make([]gtfs.Dataset, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		fmt.Printf("Loading %s...\n", src.Name)

		var archive *gtfs.Archive
		if src.Path != "" {
			archive, err = gtfs.OpenArchive(src.Path)
		} else {
			ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
			archive, err = gtfs.FetchArchive(ctx, src.URL, fetchTimeout)
			cancel()
		}
		if err != nil {
			return fmt.Errorf("loading %s: %w", src.Name, err)
		}

		fmt.Printf("  %d stops, %d routes, %d trips\n",
			len(archive.Stops), len(archive.Routes), len(archive.Trips))
		datasets = append(datasets, gtfs.Dataset{Agency: src.Name, Archive: archive})
	}

	catalog, err := gtfs.Build(datasets, gtfs.Options{
		Prefix:     !noPrefix,
		RouteIndex: !skipRoutes,
	})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}

	fmt.Printf("Wrote %d stops to %s\n", catalog.Metadata.StopCount, out)
	return nil
}
