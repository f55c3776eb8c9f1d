// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads and layers the emulator's INI-style configuration:
// file values over hardcoded defaults, with CLI-flag values (themselves
// represented as a Config, built directly from parsed flags rather than a
// file) layered over both. Section names are case-folded to lower case;
// keys are kept exactly as written.
package config

import (
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/cdio-go/caio/errors"
)

// Config is a section-keyed table of string values, the shape every layer
// (defaults, file, CLI) is normalised to before merging.
type Config struct {
	sections map[string]map[string]string
}

// New returns an empty Config, suitable as a base for Merge or for building
// a CLI-flag layer key by key with Set.
func New() *Config {
	return &Config{sections: map[string]map[string]string{}}
}

// Load parses path as an INI file and returns the Config it describes.
// Section names are folded to lower case; keys are preserved verbatim.
func Load(path string) (*Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, errors.New(errors.ConfigError, "could not load configuration file: %v", err)
	}

	cfg := New()
	for _, sec := range f.Sections() {
		name := strings.ToLower(sec.Name())
		for _, key := range sec.Keys() {
			cfg.Set(name, key.Name(), key.Value())
		}
	}

	return cfg, nil
}

// Set stores value under section/key, folding section to lower case. A nil
// receiver is never valid; Config must be built with New or Load.
func (c *Config) Set(section, key, value string) {
	section = strings.ToLower(section)
	m, ok := c.sections[section]
	if !ok {
		m = map[string]string{}
		c.sections[section] = m
	}
	m[key] = value
}

// Get returns the raw string value of section/key, and whether it was
// present at all.
func (c *Config) Get(section, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	m, ok := c.sections[strings.ToLower(section)]
	if !ok {
		return "", false
	}
	v, ok := m[key]
	return v, ok
}

// GetString is Get with a fallback for an absent key.
func (c *Config) GetString(section, key, fallback string) string {
	if v, ok := c.Get(section, key); ok {
		return v
	}
	return fallback
}

// GetBool parses section/key the way prefs.Bool does: "true"/"1"/"yes"
// (case-insensitive) are true, "false"/"0"/"no" are false. An absent key
// or any other value returns fallback unchanged.
func (c *Config) GetBool(section, key string, fallback bool) bool {
	v, ok := c.Get(section, key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return fallback
	}
}

// GetInt parses section/key as a base-10 integer, returning fallback if the
// key is absent or unparseable.
func (c *Config) GetInt(section, key string, fallback int) int {
	v, ok := c.Get(section, key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

// GetFloat parses section/key as a float, returning fallback if the key is
// absent or unparseable.
func (c *Config) GetFloat(section, key string, fallback float64) float64 {
	v, ok := c.Get(section, key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return n
}

// Sections lists the section names present, in no particular order.
func (c *Config) Sections() []string {
	names := make([]string, 0, len(c.sections))
	for name := range c.sections {
		names = append(names, name)
	}
	return names
}

// Merge layers override's values on top of base's: a key present in both
// takes override's value; a key present only in base is kept; a section
// present only in override is added whole. Neither base nor override is
// modified. Calling Merge twice, once for the file layer over defaults and
// once more for the CLI layer over that result, produces the precedence
// order of defaults < file < CLI.
func Merge(base, override *Config) *Config {
	out := New()

	if base != nil {
		for section, keys := range base.sections {
			for key, value := range keys {
				out.Set(section, key, value)
			}
		}
	}

	if override != nil {
		for section, keys := range override.sections {
			for key, value := range keys {
				out.Set(section, key, value)
			}
		}
	}

	return out
}
