package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	API     APIConfig     `yaml:"api"`
	Fixture FixtureConfig `yaml:"fixture"`
}

// APIConfig points the dashboard engine at a report API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// FixtureConfig configures the local fixture server.
type FixtureConfig struct {
	Port    int    `yaml:"port"`
	DataDir string `yaml:"data_dir"`
	// CarbonRates maps day strings to grid carbon intensity served with
	// energy reports. Days not listed are served as -1 (no data), the
	// same sentinel the upstream rate source uses.
	CarbonRates map[string]float64 `yaml:"carbon_rates"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://127.0.0.1:8080/api",
			TimeoutSeconds: 30,
		},
		Fixture: FixtureConfig{
			Port:    8080,
			DataDir: "./data",
		},
	}
}

// Load reads, defaults, and validates a YAML config file. An empty path
// yields the defaults.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and defaults config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	// Zero values from a sparse file fall back to the defaults.
	d := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = d.API.TimeoutSeconds
	}
	if c.Fixture.Port == 0 {
		c.Fixture.Port = d.Fixture.Port
	}
	if c.Fixture.DataDir == "" {
		c.Fixture.DataDir = d.Fixture.DataDir
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must not be negative, got %d", c.API.TimeoutSeconds)
	}
	if c.Fixture.Port < 1 || c.Fixture.Port > 65535 {
		return fmt.Errorf("fixture.port %d out of range", c.Fixture.Port)
	}
	for day, rate := range c.Fixture.CarbonRates {
		if rate < 0 && rate != -1 {
			return fmt.Errorf("fixture.carbon_rates[%q] is negative (use -1 for missing days)", day)
		}
	}
	return nil
}
