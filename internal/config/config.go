// Package config provides configuration loading for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config holds service configuration. Values come from an optional JSON file
// and are overridden by environment variables.
type Config struct {
	Port         int    `json:"port,omitempty"`           // HTTP listen port
	DatabaseURL  string `json:"database_url,omitempty"`   // PostgreSQL connection URL
	ScraperFnURL string `json:"scraper_fn_url,omitempty"` // Hosted scraping function endpoint; empty means local fetching
	TaskPageSize int    `json:"task_page_size,omitempty"` // Tasks per page in listings
	Verbose      bool   `json:"verbose,omitempty"`        // Print detailed debug information
}

// DefaultTaskPageSize matches the page size dashboards were built against.
const DefaultTaskPageSize = 15

// Load reads configuration from an optional JSON file path, then applies
// environment overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("SCRAPER_FN_URL"); v != "" {
		c.ScraperFnURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("TASK_PAGE_SIZE"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			c.TaskPageSize = size
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.TaskPageSize == 0 {
		c.TaskPageSize = DefaultTaskPageSize
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.TaskPageSize < 1 {
		return fmt.Errorf("config error: 'task_page_size' must be positive, got %d", c.TaskPageSize)
	}
	return nil
}
