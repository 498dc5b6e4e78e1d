// Package config loads resultscope settings from a YAML or JSON file with
// environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"resultscope/internal/results"
	"resultscope/internal/store"
	"resultscope/internal/table"
	"resultscope/internal/timeseries"
)

// Environment overrides, applied after the file.
const (
	EnvTree     = "RESULTSCOPE_TREE"
	EnvLogLevel = "RESULTSCOPE_LOG_LEVEL"
)

// Config is the on-disk configuration. Zero fields take their defaults.
type Config struct {
	// Tree is a directory tree manifest (YAML) or an output directory to crawl.
	Tree          string `yaml:"tree" json:"tree"`
	StatsArtifact string `yaml:"stats_artifact" json:"stats_artifact"`
	CaseMatrix    string `yaml:"case_matrix" json:"case_matrix"`
	Recorder      string `yaml:"recorder" json:"recorder"`

	Naming Naming `yaml:"naming" json:"naming"`

	DB        string `yaml:"db" json:"db"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
	LogFormat string `yaml:"log_format" json:"log_format"`
	Format    string `yaml:"format" json:"format"`
	MaxRows   int    `yaml:"max_rows" json:"max_rows"`
	Parallel  int    `yaml:"parallel" json:"parallel"`
}

// Naming configures time-series reconciliation.
type Naming struct {
	Marker   string `yaml:"marker" json:"marker"`
	Ext      string `yaml:"ext" json:"ext"`
	IDColumn string `yaml:"id_column" json:"id_column"`
	SubDir   string `yaml:"subdir" json:"subdir"`
}

// Key fingerprints the naming scheme. Memoized resolutions are only reused
// under the same key.
func (n Naming) Key() string {
	return strings.Join([]string{n.Marker, n.Ext, n.SubDir, n.IDColumn}, "|")
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StatsArtifact: results.DefaultStatsArtifact,
		Naming: Naming{
			Marker:   timeseries.DefaultScheme.Marker,
			Ext:      timeseries.DefaultScheme.Ext,
			IDColumn: timeseries.DefaultIDColumn,
			SubDir:   timeseries.DefaultSubDir,
		},
		DB:        store.DefaultDBPath,
		LogLevel:  "info",
		LogFormat: "text",
		Format:    "ascii",
		MaxRows:   20,
		Parallel:  4,
	}
}

// LoadFromPath reads a config file (YAML or JSON), fills defaults and applies
// environment overrides. An empty path yields the defaults plus environment.
func LoadFromPath(path string) (Config, error) {
	if path == "" {
		c := Default()
		c.applyEnv(os.LookupEnv)
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	c, err := Load(data, filepath.Ext(path))
	if err != nil {
		return Config{}, err
	}
	c.applyEnv(os.LookupEnv)
	return c, nil
}

// Load parses config from bytes over the defaults. ext is the file extension
// (e.g. ".json", ".yaml") for format hint; empty = detect from content.
func Load(data []byte, ext string) (Config, error) {
	c := Default()
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		ext = ".json"
	}
	if ext == ".json" {
		if err := json.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("parse config json: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config yaml: %w", err)
	}
	c.fillDefaults()
	return c, c.Validate()
}

// fillDefaults restores defaults for fields a file set to empty.
func (c *Config) fillDefaults() {
	d := Default()
	setIfEmpty(&c.StatsArtifact, d.StatsArtifact)
	setIfEmpty(&c.Naming.Marker, d.Naming.Marker)
	setIfEmpty(&c.Naming.Ext, d.Naming.Ext)
	setIfEmpty(&c.Naming.IDColumn, d.Naming.IDColumn)
	setIfEmpty(&c.Naming.SubDir, d.Naming.SubDir)
	setIfEmpty(&c.DB, d.DB)
	setIfEmpty(&c.LogLevel, d.LogLevel)
	setIfEmpty(&c.LogFormat, d.LogFormat)
	setIfEmpty(&c.Format, d.Format)
	if c.Parallel <= 0 {
		c.Parallel = d.Parallel
	}
}

func setIfEmpty(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvTree); ok && v != "" {
		c.Tree = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// Validate rejects settings no query could work with.
func (c Config) Validate() error {
	if c.MaxRows < 0 {
		return fmt.Errorf("config: max_rows must not be negative, got %d", c.MaxRows)
	}
	if strings.ContainsAny(c.Naming.Marker, "/_") {
		return fmt.Errorf("config: naming marker %q must not contain '/' or '_'", c.Naming.Marker)
	}
	if c.Naming.Ext != "" && !strings.HasPrefix(c.Naming.Ext, ".") {
		return fmt.Errorf("config: naming ext %q must start with '.'", c.Naming.Ext)
	}
	return nil
}

// Resolver builds the time-series resolver the naming section describes.
func (c Config) Resolver() timeseries.Resolver {
	return timeseries.Resolver{
		Scheme:   timeseries.RankMarkerScheme{Marker: c.Naming.Marker, Ext: c.Naming.Ext},
		IDColumn: table.Name(c.Naming.IDColumn),
		SubDir:   c.Naming.SubDir,
	}
}

// Aggregator builds a results aggregator reading artifacts from disk.
func (c Config) Aggregator() *results.Aggregator {
	return &results.Aggregator{Resolver: c.Resolver()}
}
