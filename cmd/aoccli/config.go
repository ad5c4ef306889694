package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional aoc.yaml file. Flags override its values.
type Config struct {
	InputsDir string         `yaml:"inputs_dir"`
	LogLevel  string         `yaml:"log_level"`
	Strict    bool           `yaml:"strict"`
	BigQuery  BigQueryConfig `yaml:"bigquery"`
}

type BigQueryConfig struct {
	Project  string `yaml:"project"`
	Table    string `yaml:"table"`
	Location string `yaml:"location"`
}

func defaultConfig() Config {
	return Config{
		InputsDir: "inputs",
		LogLevel:  "info",
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.BigQuery.Project != "" && cfg.BigQuery.Table == "" {
		return cfg, fmt.Errorf("%s: bigquery.table is required when bigquery.project is set", path)
	}
	return cfg, nil
}
