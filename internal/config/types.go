// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"golang.org/x/exp/maps"

	"github.com/stingkit/stingkit/internal/args"
)

// Config holds the argument defaults read from the configuration file.
type Config struct {
	Arguments map[string]any            `mapstructure:"arguments" toml:"arguments,omitempty"`
	Tools     map[string]map[string]any `mapstructure:"tools" toml:"tools,omitempty"`

	// Path is the file the configuration was read from, or "" when none was found.
	Path string `mapstructure:"-" toml:"-"`

	v *viper.Viper
}

// DefaultConfig returns an empty configuration.
func DefaultConfig() *Config {
	return &Config{
		Arguments: map[string]any{},
		Tools:     map[string]map[string]any{},
	}
}

// Defaults returns the configured default lookup for tool. The per-tool
// table wins over the shared one; environment variables win over files.
func (c *Config) Defaults(tool string) args.Defaults {
	return func(fullName string) (string, bool) {
		for _, key := range []string{
			"tools." + tool + "." + fullName,
			"arguments." + fullName,
		} {
			if raw, ok := c.lookup(key); ok {
				s, err := stringify(raw)
				if err != nil {
					return "", false
				}
				return s, true
			}
		}
		return "", false
	}
}

func (c *Config) lookup(key string) (any, bool) {
	if c.v != nil {
		if !c.v.IsSet(key) {
			return nil, false
		}
		return c.v.Get(key), true
	}
	parts := strings.SplitN(key, ".", 3)
	switch parts[0] {
	case "arguments":
		v, ok := c.Arguments[parts[1]]
		return v, ok
	case "tools":
		if len(parts) < 3 {
			return nil, false
		}
		v, ok := c.Tools[parts[1]][parts[2]]
		return v, ok
	}
	return nil, false
}

// ToolNames returns the tools with their own table, sorted.
func (c *Config) ToolNames() []string {
	names := maps.Keys(c.Tools)
	slices.Sort(names)
	return names
}

// ToTOML renders the file-backed configuration as TOML.
func (c *Config) ToTOML() (string, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to render configuration: %w", err)
	}
	return string(out), nil
}

// stringify turns a configured value into command-line text. Lists are
// joined with commas, the separator multi-valued arguments split on.
func stringify(v any) (string, error) {
	switch val := v.(type) {
	case []any, []string:
		items, err := cast.ToStringSliceE(val)
		if err != nil {
			return "", err
		}
		return strings.Join(items, ","), nil
	default:
		return cast.ToStringE(val)
	}
}
