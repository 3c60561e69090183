// internal/config/load.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDir is where device resource files live unless overridden.
const DefaultDir = "./resources"

// FallbackAddress is used when a resource file has no entry for a servo.
const FallbackAddress = "127.0.0.1"

// ErrEmpty is returned for a resource file with no YAML document.
var ErrEmpty = errors.New("config: empty resource file")

// Path returns the resource file location for a device.
func Path(dir, device string) string {
	if dir == "" {
		dir = DefaultDir
	}
	return filepath.Join(dir, device+".yaml")
}

// Load reads and parses one device resource file.
// It does not validate or normalize.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: unable to read device config: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: unable to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve returns the address configured for servo.
// fallback is true when the entry is absent and FallbackAddress was returned.
func (c *Config) Resolve(servo string) (addr string, fallback bool) {
	if c != nil {
		if a, ok := c.Device[servo]; ok && a != "" {
			return a, false
		}
	}
	return FallbackAddress, true
}
