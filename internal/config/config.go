// Package config handles daetool configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/collada-go/internal/logger"
	"github.com/Faultbox/collada-go/pkg/collada"
	"github.com/Faultbox/collada-go/pkg/encoding"
)

// Config holds all daetool settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Asset   AssetConfig   `yaml:"asset"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls how documents are written.
type OutputConfig struct {
	Indent string `yaml:"indent" env:"COLLADA_OUTPUT_INDENT"`

	// Encoding is an IANA charset name; empty means UTF-8.
	Encoding string `yaml:"encoding,omitempty" env:"COLLADA_OUTPUT_ENCODING"`
}

// AssetConfig holds the <asset> values stamped on generated documents.
type AssetConfig struct {
	Author        string  `yaml:"author" env:"COLLADA_AUTHOR"`
	AuthoringTool string  `yaml:"authoring_tool" env:"COLLADA_AUTHORING_TOOL"`
	UnitName      string  `yaml:"unit_name" env:"COLLADA_UNIT_NAME"`
	UnitMeter     float64 `yaml:"unit_meter" env:"COLLADA_UNIT_METER"`
	UpAxis        string  `yaml:"up_axis" env:"COLLADA_UP_AXIS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" env:"COLLADA_LOG_LEVEL"`
	LogFile string `yaml:"log_file" env:"COLLADA_LOG_FILE"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Indent: "  ",
		},
		Asset: AssetConfig{
			AuthoringTool: "daetool",
			UnitName:      "meter",
			UnitMeter:     1,
			UpAxis:        collada.YUp.String(),
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if _, _, err := encoding.Lookup(c.Output.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("output.encoding: %w", err))
	}
	if c.Asset.UpAxis != "" {
		if _, err := collada.ParseUpAxis(c.Asset.UpAxis); err != nil {
			errs = append(errs, fmt.Errorf("asset.up_axis: %w", err))
		}
	}
	if c.Asset.UnitMeter < 0 {
		errs = append(errs, fmt.Errorf("asset.unit_meter: must not be negative, got %v", c.Asset.UnitMeter))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	return errors.Join(errs...)
}

// NewAsset returns an asset created and modified at t carrying the
// configured defaults. Empty settings leave their slots unset.
func (a AssetConfig) NewAsset(t time.Time) (*collada.Asset, error) {
	asset := collada.NewAsset(t)
	if a.Author != "" {
		asset.SetAuthor(a.Author)
	}
	if a.AuthoringTool != "" {
		asset.SetAuthoringTool(a.AuthoringTool)
	}
	if a.UnitName != "" {
		asset.SetUnitName(a.UnitName)
	}
	if a.UnitMeter != 0 {
		asset.SetUnitMeter(a.UnitMeter)
	}
	if a.UpAxis != "" {
		axis, err := collada.ParseUpAxis(a.UpAxis)
		if err != nil {
			return nil, err
		}
		asset.SetUpAxis(axis)
	}
	return asset, asset.Validate()
}
