package mobile

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/SebastienMelki/devinfo/internal/device"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds the SDK configuration.
// All fields use gomobile-compatible types (string, int, bool).
// JSON tags enable initialization from serialized config strings.
type Config struct {
	// DefaultAppVersion is reported when the app package cannot be resolved (default: "1.0").
	DefaultAppVersion string `json:"default_app_version,omitempty"`

	// IncludeStore adds the installer store to metrics (default: false).
	IncludeStore bool `json:"include_store,omitempty"`

	// DebugMode enables verbose logging (default: false).
	DebugMode bool `json:"debug_mode,omitempty"`
}

// MaxAppVersionLength bounds DefaultAppVersion so it fits a beacon field.
const MaxAppVersionLength = 64

// validate checks that values are valid.
// Returns empty string on success, error message on failure.
func (c *Config) validate() string {
	if c.DefaultAppVersion != "" && strings.TrimSpace(c.DefaultAppVersion) == "" {
		return "default_app_version must not be blank"
	}
	if len(c.DefaultAppVersion) > MaxAppVersionLength {
		return fmt.Sprintf("default_app_version must be at most %d bytes", MaxAppVersionLength)
	}
	return ""
}

// applyDefaults fills in default values for unset optional fields.
func (c *Config) applyDefaults() {
	c.DefaultAppVersion = strings.TrimSpace(c.DefaultAppVersion)
	if c.DefaultAppVersion == "" {
		c.DefaultAppVersion = device.DefaultAppVersion
	}
}

// configFromJSON parses a JSON config string and returns a validated Config.
// An empty string yields the defaults.
func configFromJSON(jsonStr string) (*Config, error) {
	var cfg Config
	if strings.TrimSpace(jsonStr) != "" {
		if err := jsonAPI.UnmarshalFromString(jsonStr, &cfg); err != nil {
			return nil, fmt.Errorf("invalid config JSON: %w", err)
		}
	}

	if errMsg := cfg.validate(); errMsg != "" {
		return nil, fmt.Errorf("config validation failed: %s", errMsg)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// options converts the config into collector options.
func (c *Config) options() []device.Option {
	return []device.Option{
		device.WithDefaultAppVersion(c.DefaultAppVersion),
		device.WithStore(c.IncludeStore),
	}
}
