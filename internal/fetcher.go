package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// StaticFetcher serves a fixed config, or a fixed error, without a backend
type StaticFetcher struct {
	Config *WidgetConfig
	Err    error
}

func (f StaticFetcher) FetchConfig(ctx context.Context) (*WidgetConfig, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Config == nil {
		return nil, fmt.Errorf("no config")
	}
	cfg := *f.Config
	return &cfg, nil
}

// LoadConfigFile reads a widget config from a YAML file, or JSON when the
// extension is .json
func LoadConfigFile(path string) (*WidgetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	unmarshal := yaml.Unmarshal
	if strings.EqualFold(filepath.Ext(path), ".json") {
		unmarshal = json.Unmarshal
	}

	var cfg WidgetConfig
	if err := unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Source: "config", Key: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{Source: "config", Key: path, Err: err}
	}
	return &cfg, nil
}
