// Package config provides configuration loading and defaults for letteravatar.
//
// Configuration is loaded from a TOML file in the user's data directory.
// The package covers canvas geometry, font selection, default and per-name
// colors, output settings and logging, with sensible defaults for each.
package config

//go:generate go run ../../cmd/genconfig

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"tools.zach/dev/letteravatar/avatar"
	"tools.zach/dev/letteravatar/internal/atomicfile"
	"tools.zach/dev/letteravatar/internal/paths"
	"tools.zach/dev/letteravatar/palette"
)

// MaxCanvasSize bounds avatar width and height.
const MaxCanvasSize = 4096

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the top-level application configuration.
type Config struct {
	// Avatar holds canvas and naming defaults.
	Avatar AvatarConfig `toml:"avatar"`
	// Fonts holds font selection settings.
	Fonts FontsConfig `toml:"fonts"`
	// Colors holds the default color pair and per-name color rules.
	Colors ColorsConfig `toml:"colors"`
	// Output holds settings for written PNG files.
	Output OutputConfig `toml:"output"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
}

// AvatarConfig holds canvas and naming defaults.
type AvatarConfig struct {
	// Width is the canvas width in pixels.
	Width int `toml:"width"`
	// Height is the canvas height in pixels.
	Height int `toml:"height"`
	// DefaultUserName replaces names that contain no letters.
	DefaultUserName string `toml:"default_user_name"`
	// InitialsLen is the number of code points drawn when no length is given.
	InitialsLen int `toml:"initials_len"`
}

// FontsConfig holds font specs for Latin and CJK initials.
type FontsConfig struct {
	// Dir is the directory relative font paths resolve against. Relative
	// values are themselves relative to the data directory.
	Dir string `toml:"dir"`
	// Latin is the font spec used when the initials contain an ASCII letter.
	Latin string `toml:"latin"`
	// LatinFallback is tried when Latin cannot be loaded.
	LatinFallback string `toml:"latin_fallback"`
	// CJK is the font spec used for all other initials.
	CJK string `toml:"cjk"`
	// CJKFallback is tried when CJK cannot be loaded.
	CJKFallback string `toml:"cjk_fallback"`
}

// ColorsConfig holds the default color pair and per-name rules.
type ColorsConfig struct {
	// Text is the default text color. Both Text and Background must be set
	// for the pair to apply.
	Text string `toml:"text,omitempty"`
	// Background is the default background color.
	Background string `toml:"background,omitempty"`
	// Rules assigns colors to names matching a glob pattern. The first
	// matching rule wins.
	Rules []ColorRule `toml:"rules,omitempty"`
}

// ColorRule assigns a color pair to canonical names matching Pattern.
type ColorRule struct {
	// Pattern is a doublestar glob matched against the canonical
	// (upper-cased, stripped) name.
	Pattern string `toml:"pattern"`
	// Text is the text color for matching names.
	Text string `toml:"text"`
	// Background is the background color for matching names.
	Background string `toml:"background"`
}

// OutputConfig holds settings for written PNG files.
type OutputConfig struct {
	// Dir is the default output directory. Relative values are relative to
	// the working directory.
	Dir string `toml:"dir"`
	// FileMode is the octal permission mode of written files (e.g. "0644").
	FileMode string `toml:"file_mode"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `toml:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// ///////////////////////////////////////////////
// Default Configuration
// ///////////////////////////////////////////////

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Avatar: AvatarConfig{
			Width:           avatar.DefaultWidth,
			Height:          avatar.DefaultHeight,
			DefaultUserName: avatar.DefaultUserName,
			InitialsLen:     1,
		},
		Fonts: FontsConfig{
			Dir:           paths.FontsDir,
			Latin:         "Roboto-Medium.ttf",
			LatinFallback: avatar.DefaultLatinFont,
			CJK:           "NotoSansSC-Medium.otf",
			CJKFallback:   avatar.DefaultCJKFont,
		},
		Output: OutputConfig{
			Dir:      ".",
			FileMode: "0644",
		},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
	}
}

// ///////////////////////////////////////////////
// Example Configuration
// ///////////////////////////////////////////////

// ExampleConfig returns a Config suitable for generating config.default.toml.
// For this project all defaults are good examples.
func ExampleConfig() *Config {
	return DefaultConfig()
}

// ///////////////////////////////////////////////
// Loading and Saving
// ///////////////////////////////////////////////

// Load reads and parses the configuration file from dataDir/config.toml.
// If the file doesn't exist, returns DefaultConfig.
func Load(dataDir string) (*Config, error) {
	return LoadFile(filepath.Join(dataDir, paths.ConfigFile))
}

// LoadFile reads and parses the configuration file at path. Fields missing
// from the file keep their default values. A missing file yields
// DefaultConfig.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("unknown config key", "key", key.String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to disk as TOML using atomic file write.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return atomicfile.Write(path, buf.Bytes(), 0o644)
}

// ///////////////////////////////////////////////
// Validation
// ///////////////////////////////////////////////

// validLogLevels is the set of accepted log level strings.
var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks that all configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Avatar.Width < 1 || c.Avatar.Width > MaxCanvasSize {
		return fmt.Errorf("avatar.width must be between 1 and %d, got %d", MaxCanvasSize, c.Avatar.Width)
	}
	if c.Avatar.Height < 1 || c.Avatar.Height > MaxCanvasSize {
		return fmt.Errorf("avatar.height must be between 1 and %d, got %d", MaxCanvasSize, c.Avatar.Height)
	}
	if strings.TrimSpace(c.Avatar.DefaultUserName) == "" {
		return fmt.Errorf("avatar.default_user_name must not be empty")
	}
	if c.Avatar.InitialsLen < 1 {
		return fmt.Errorf("avatar.initials_len must be >= 1, got %d", c.Avatar.InitialsLen)
	}

	if c.Fonts.Latin == "" && c.Fonts.LatinFallback == "" {
		return fmt.Errorf("fonts.latin or fonts.latin_fallback must be set")
	}
	if c.Fonts.CJK == "" && c.Fonts.CJKFallback == "" {
		return fmt.Errorf("fonts.cjk or fonts.cjk_fallback must be set")
	}

	if err := validatePair("colors", c.Colors.Text, c.Colors.Background, true); err != nil {
		return err
	}
	for i, r := range c.Colors.Rules {
		if r.Pattern == "" {
			return fmt.Errorf("colors.rules[%d]: pattern must not be empty", i)
		}
		if !doublestar.ValidatePattern(r.Pattern) {
			return fmt.Errorf("colors.rules[%d]: invalid pattern %q", i, r.Pattern)
		}
		if err := validatePair(fmt.Sprintf("colors.rules[%d]", i), r.Text, r.Background, false); err != nil {
			return err
		}
	}

	if _, err := parseFileMode(c.Output.FileMode); err != nil {
		return fmt.Errorf("invalid output.file_mode: %w", err)
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be trace, debug, info, warn, or error", c.Log.Level)
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be > 0, got %d", c.Log.MaxSizeMB)
	}
	return nil
}

// validatePair checks a text/background pair. When optional is true both may
// be empty; otherwise both must be present.
func validatePair(section, text, background string, optional bool) error {
	if optional && text == "" && background == "" {
		return nil
	}
	if text == "" || background == "" {
		return fmt.Errorf("%s: text and background must both be set", section)
	}
	if _, err := palette.Parse(text); err != nil {
		return fmt.Errorf("%s.text: %w", section, err)
	}
	if _, err := palette.Parse(background); err != nil {
		return fmt.Errorf("%s.background: %w", section, err)
	}
	return nil
}

// parseFileMode parses an octal permission string such as "0644".
func parseFileMode(s string) (os.FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not an octal mode: %w", s, err)
	}
	if v > 0o777 {
		return 0, fmt.Errorf("%q exceeds 0777", s)
	}
	return os.FileMode(v), nil
}

// ///////////////////////////////////////////////
// Accessors
// ///////////////////////////////////////////////

// AvatarConfig returns the [avatar.Config] described by c. Font specs are
// the primary specs; fallbacks are wired into the renderer separately.
func (c *Config) AvatarConfig() avatar.Config {
	latin := c.Fonts.Latin
	if latin == "" {
		latin = c.Fonts.LatinFallback
	}
	cjk := c.Fonts.CJK
	if cjk == "" {
		cjk = c.Fonts.CJKFallback
	}
	return avatar.Config{
		Width:           c.Avatar.Width,
		Height:          c.Avatar.Height,
		DefaultUserName: c.Avatar.DefaultUserName,
		LatinFont:       latin,
		CJKFont:         cjk,
	}
}

// FontDir returns the font directory. An empty fonts.dir means the data
// directory's fonts folder; a relative one is resolved against the data
// directory.
func (c *Config) FontDir(d paths.DataDir) string {
	switch {
	case c.Fonts.Dir == "":
		return d.Fonts()
	case filepath.IsAbs(c.Fonts.Dir):
		return c.Fonts.Dir
	}
	return filepath.Join(d.Root, c.Fonts.Dir)
}

// FileMode returns output.file_mode as an [os.FileMode]. Invalid values,
// which Validate rejects, yield 0644.
func (c *Config) FileMode() os.FileMode {
	m, err := parseFileMode(c.Output.FileMode)
	if err != nil {
		return 0o644
	}
	return m
}

// ColorsFor returns the configured text and background color strings for a
// canonical name: the first matching rule, then the [colors] default pair.
// Empty strings mean no colors are configured.
func (c *Config) ColorsFor(canonical string) (text, background string) {
	for _, r := range c.Colors.Rules {
		matched, err := doublestar.Match(r.Pattern, canonical)
		if err != nil {
			slog.Warn("invalid glob pattern", "pattern", r.Pattern, "error", err)
			continue
		}
		if matched {
			return r.Text, r.Background
		}
	}
	return c.Colors.Text, c.Colors.Background
}
