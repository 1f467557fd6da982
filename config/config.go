// Copyright (c) MealMuse (dev@mealmuse.app)
// SPDX-License-Identifier: BUSL-1.1

// Package config loads MealMuse SDK configuration in three layers:
// built-in defaults, an optional YAML file, and environment variables,
// each overriding the last.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/mealmuse/mealmuse-go/discovery"
	"github.com/mealmuse/mealmuse-go/feed"
	"github.com/mealmuse/mealmuse-go/mealdb"
)

// DefaultConfigPaths lists where config files are searched, first
// match wins.
var DefaultConfigPaths = []string{
	"mealmuse.yaml",
	"mealmuse.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "MEALMUSE_CONFIG"

// envPrefix namespaces the environment variables read by Load.
const envPrefix = "MEALMUSE_"

// Catalog configures the recipe catalog client.
type Catalog struct {
	// BaseURL is the catalog API endpoint.
	BaseURL string `koanf:"base_url"`
}

// Google configures the Google Cloud clients.
type Google struct {
	// Project is the project hosting Firestore and Firebase Auth.
	Project string `koanf:"project"`
}

// Discovery configures the discovery sampler's pools and draws.
type Discovery struct {
	Letters    []string `koanf:"letters"`
	LetterDraw int      `koanf:"letter_draw"`

	Categories   []string `koanf:"categories"`
	CategoryDraw int      `koanf:"category_draw"`

	Areas    []string `koanf:"areas"`
	AreaDraw int      `koanf:"area_draw"`
}

// Feed configures home feed page sizes.
type Feed struct {
	InitialSize int `koanf:"initial_size"`
	PageSize    int `koanf:"page_size"`
	TopEngaged  int `koanf:"top_engaged"`
}

// Config is the full SDK configuration.
type Config struct {
	Catalog   Catalog   `koanf:"catalog"`
	Google    Google    `koanf:"google"`
	Discovery Discovery `koanf:"discovery"`
	Feed      Feed      `koanf:"feed"`
}

// Default returns the configuration with every default applied.
func Default() *Config {
	pools := discovery.DefaultPools()
	sizes := feed.DefaultOptions()
	return &Config{
		Catalog: Catalog{
			BaseURL: mealdb.DefaultBaseURL,
		},
		Discovery: Discovery{
			Letters:      pools.Letters,
			LetterDraw:   pools.LetterDraw,
			Categories:   pools.Categories,
			CategoryDraw: pools.CategoryDraw,
			Areas:        pools.Areas,
			AreaDraw:     pools.AreaDraw,
		},
		Feed: Feed{
			InitialSize: sizes.InitialSize,
			PageSize:    sizes.PageSize,
			TopEngaged:  sizes.TopEngaged,
		},
	}
}

// Load builds the configuration from defaults, an optional config
// file, and MEALMUSE_-prefixed environment variables, in that
// precedence order, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToPath), nil); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshalling: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envToPath maps MEALMUSE_CATALOG_BASE_URL to catalog.base_url. The
// configuration nests exactly one level, so only the first underscore
// separates the section from the key.
func envToPath(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return section
	}
	return section + "." + rest
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate rejects configurations no component could run with.
func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("config: catalog.base_url must not be empty")
	}

	d := c.Discovery
	switch {
	case len(d.Letters) == 0 || d.LetterDraw <= 0:
		return fmt.Errorf("config: discovery letters pool and draw must be non-empty")
	case len(d.Categories) == 0 || d.CategoryDraw <= 0:
		return fmt.Errorf("config: discovery categories pool and draw must be non-empty")
	case len(d.Areas) == 0 || d.AreaDraw <= 0:
		return fmt.Errorf("config: discovery areas pool and draw must be non-empty")
	}

	f := c.Feed
	if f.InitialSize <= 0 || f.PageSize <= 0 || f.TopEngaged <= 0 {
		return fmt.Errorf("config: feed sizes must be positive")
	}
	if f.TopEngaged > f.InitialSize {
		return fmt.Errorf("config: feed.top_engaged must not exceed feed.initial_size")
	}
	return nil
}

// Pools returns the discovery pools this configuration describes.
func (c *Config) Pools() discovery.Pools {
	return discovery.Pools{
		Letters:      c.Discovery.Letters,
		LetterDraw:   c.Discovery.LetterDraw,
		Categories:   c.Discovery.Categories,
		CategoryDraw: c.Discovery.CategoryDraw,
		Areas:        c.Discovery.Areas,
		AreaDraw:     c.Discovery.AreaDraw,
	}
}

// FeedOptions returns the feed sizing this configuration describes.
func (c *Config) FeedOptions() feed.Options {
	return feed.Options{
		InitialSize: c.Feed.InitialSize,
		PageSize:    c.Feed.PageSize,
		TopEngaged:  c.Feed.TopEngaged,
	}
}
