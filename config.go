package fitcalc

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatOf picks the document format from a file extension, defaulting to JSON
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Unmarshal decodes a JSON or YAML document into v
func Unmarshal(data []byte, format Format, v any) error {
	switch format {
	case YAML:
		return yaml.Unmarshal(data, v)
	case JSON:
		return json.Unmarshal(data, v)
	}
	return fmt.Errorf("unknown format %q", format)
}

// Config holds the defaults the host layers apply to calculations
type Config struct {
	Activity ActivityLevel `json:"activity" yaml:"activity"`
	Goal     WeightGoal    `json:"goal" yaml:"goal"`
	Units    UnitSystem    `json:"units" yaml:"units"`
	Trend    TrendOptions  `json:"trend" yaml:"trend"`
	Streak   struct {
		IntervalDays int `json:"intervalDays" yaml:"intervalDays"`
	} `json:"streak" yaml:"streak"`
	Report struct {
		Concurrency int `json:"concurrency" yaml:"concurrency"`
	} `json:"report" yaml:"report"`
}

// DefaultConfig reads the embedded default configuration
func DefaultConfig() (*Config, error) {
	val, err := Content.ReadFile("etc/fitcalc.json")
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(val, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Merge overlays a configuration document onto c; fields absent from the document are kept
func (c *Config) Merge(data []byte, format Format) error {
	if err := Unmarshal(data, format, c); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return c.Validate()
}

// Validate checks every enum tag and numeric bound in the configuration
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if err := c.Units.Validate(); err != nil {
		return err
	}
	if _, err := c.Trend.withDefaults(); err != nil {
		return err
	}
	if c.Streak.IntervalDays < 0 {
		return &InvalidValueError{Field: "streak.intervalDays", Value: float64(c.Streak.IntervalDays)}
	}
	if c.Report.Concurrency < 1 {
		return &InvalidValueError{Field: "report.concurrency", Value: float64(c.Report.Concurrency)}
	}
	return nil
}

// Params returns the calculation parameters the configuration selects
func (c *Config) Params() CalculationParams {
	return CalculationParams{Activity: c.Activity, Goal: c.Goal}
}
