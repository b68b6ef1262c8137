package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkyprianou/erchete/internal/gtfs"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validates the sources file without fetching anything",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := gtfs.LoadSources(sourcesFile)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d sources, output %s\n", sourcesFile, len(cfg.Sources), cfg.Out)
	for _, src := range cfg.Sources {
		loc := src.URL
		if src.Path != "" {
			loc = src.Path
		}
		fmt.Printf("  %-10s %s\n", src.Name, loc)
	}
	return nil
}
