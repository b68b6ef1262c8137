package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "stopsgen",
	Short:        "Builds the consolidated stop catalog from GTFS feeds",
	Long:         "Fetches the GTFS archive of each configured agency and merges their stops into the single GeoJSON catalog served by erchete.",
	SilenceUsage: true,
}

var sourcesFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&sourcesFile, "sources", "s", "sources.yml", "agency sources file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
