package gtfs

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Source is one GTFS static feed to merge into the catalog. Exactly one
// of URL and Path must be set.
type Source struct {
	Name string `yaml:"name" validate:"required,max=10"`
	URL  string `yaml:"url" validate:"required_without=Path,excluded_with=Path,omitempty,url"`
	Path string `yaml:"path" validate:"required_without=URL,excluded_with=URL"`
}

// SourcesConfig is the stopsgen input file
type SourcesConfig struct {
	Out     string   `yaml:"out"`
	Sources []Source `yaml:"sources" validate:"required,min=1,dive"`
}

// LoadSources reads and validates a sources YAML file
func LoadSources(path string) (*SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	var cfg SourcesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing sources file: %w", err)
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid sources file: %w", err)
	}

	if cfg.Out == "" {
		cfg.Out = "data/stops.geojson"
	}
	return &cfg, nil
}
