package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nvm/notchtab/internal/notch"
)

const (
	maxConfigSize = 1 * 1024 * 1024 // 1MB

	// FeatureMarker is the name under which the tab-strip pipeline refers
	// to this feature. Removing it from the pipeline disables the engine.
	FeatureMarker = "notchtab"
)

// Defaults applied when the corresponding field is absent from the file.
const (
	DefaultTolerance        = notch.DefaultTolerance
	DefaultFullscreenHeight = 2.0
	DefaultNormalHeight     = 1.0
	DefaultMaxHeight        = 6.0
)

// Config represents the root configuration structure from .notchtab.yaml
type Config struct {
	// ScreenRatios is the table of known notched displays.
	ScreenRatios []notch.Entry `yaml:"screenRatios"`

	// Tolerance is the aspect-ratio comparison tolerance. Pointer fields
	// distinguish "absent" from an explicit zero.
	Tolerance *float64 `yaml:"tolerance,omitempty"`

	// FullscreenHeight is the tab-strip height (in text lines) used when a
	// window is fullscreen but its screen matches no ratio entry.
	FullscreenHeight *float64 `yaml:"fullscreenHeight,omitempty"`

	// NormalHeight is the tab-strip height used outside fullscreen.
	NormalHeight *float64 `yaml:"normalHeight,omitempty"`

	// MaxHeight caps the computed height.
	MaxHeight *float64 `yaml:"maxHeight,omitempty"`

	// NativeFullscreen mirrors the host's native-fullscreen setting. When
	// true the OS already accounts for the notch and the engine stays out.
	NativeFullscreen bool `yaml:"nativeFullscreen,omitempty"`

	// TabStripPipeline lists the active tab-strip rendering features.
	TabStripPipeline []string `yaml:"tabStripPipeline,omitempty"`
}

// GetToleranceOrDefault returns the ratio tolerance or the default value
func (c *Config) GetToleranceOrDefault() float64 {
	if c.Tolerance != nil && *c.Tolerance >= 0 {
		return *c.Tolerance
	}
	return DefaultTolerance
}

// GetFullscreenHeightOrDefault returns the fullscreen-without-notch height
// or the default value
func (c *Config) GetFullscreenHeightOrDefault() float64 {
	if c.FullscreenHeight != nil && *c.FullscreenHeight > 0 {
		return *c.FullscreenHeight
	}
	return DefaultFullscreenHeight
}

// GetNormalHeightOrDefault returns the non-fullscreen height or the default value
func (c *Config) GetNormalHeightOrDefault() float64 {
	if c.NormalHeight != nil && *c.NormalHeight > 0 {
		return *c.NormalHeight
	}
	return DefaultNormalHeight
}

// GetMaxHeightOrDefault returns the height cap or the default value
func (c *Config) GetMaxHeightOrDefault() float64 {
	if c.MaxHeight != nil && *c.MaxHeight > 0 {
		return *c.MaxHeight
	}
	return DefaultMaxHeight
}

// GetTabStripPipeline returns the active pipeline, defaulting to just this
// feature when none is configured.
func (c *Config) GetTabStripPipeline() []string {
	if len(c.TabStripPipeline) > 0 {
		return c.TabStripPipeline
	}
	return []string{FeatureMarker}
}

// LoadConfig loads and parses the configuration file from the given path.
func LoadConfig(path string) (*Config, error) {
	// Validate file size before reading
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if fileInfo.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration data into a Config struct.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &cfg, nil
}
