// Package config loads and validates the tool configuration: where the
// injector runtime lives, which shader sources feed the merger, and which
// Steam roots to scan. Components receive an explicit Config instead of
// reading ambient environment state.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/glaze-tools/glaze/internal/messages"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax or filesystem errors). Callers can use
// errors.Is(err, ErrConfigValidation) to distinguish the two.
var ErrConfigValidation = errors.New("config validation failed")

// ShaderSource names one shader repository directory fed to the merger.
type ShaderSource struct {
	Name string `toml:"name"`
	Dir  string `toml:"dir"`
}

// Config is the full tool configuration.
type Config struct {
	MainPath           string         `toml:"main_path"`
	RuntimeDir         string         `toml:"runtime_dir"`
	ExternalShadersDir string         `toml:"external_shaders_dir"`
	GlobalINI          string         `toml:"global_ini"`
	MergeShaders       *bool          `toml:"merge_shaders"`
	SteamRoots         []string       `toml:"steam_roots"`
	ShaderSources      []ShaderSource `toml:"shader_sources"`
}

// DefaultMainPath returns the conventional data directory for the tool.
func DefaultMainPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".", "glaze")
	}
	return filepath.Join(home, ".local", "share", "glaze")
}

// Default returns the configuration used when no config file exists yet.
// First run is not an error.
func Default() *Config {
	main := DefaultMainPath()
	return &Config{
		MainPath:           main,
		RuntimeDir:         filepath.Join(main, "reshade"),
		ExternalShadersDir: filepath.Join(main, "External_shaders"),
		GlobalINI:          "ReShade.ini",
		ShaderSources: []ShaderSource{
			{Name: "reshade-shaders", Dir: filepath.Join(main, "shaders", "reshade-shaders")},
			{Name: "sweetfx-shaders", Dir: filepath.Join(main, "shaders", "sweetfx-shaders")},
			{Name: "qUINT-shaders", Dir: filepath.Join(main, "shaders", "qUINT-shaders")},
			{Name: "astrayfx-shaders", Dir: filepath.Join(main, "shaders", "astrayfx-shaders")},
			{Name: "prod80-shaders", Dir: filepath.Join(main, "shaders", "prod80-shaders")},
		},
	}
}

// Load reads the config at path, falling back to Default when the file does
// not exist. The result is validated and has ~ expanded in every path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		return cfg, cfg.normalize()
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadFailedFmt, path, err)
	}
	return Parse(data, path)
}

// Parse parses and validates config TOML data. source is used in error
// messages.
func Parse(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt+" "+messages.ConfigValidationGuidance, ErrConfigValidation, source, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(source); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decodeStrict re-decodes the TOML data rejecting unknown keys, which
// toml.Unmarshal silently ignores.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

// applyDefaults fills unset fields from the default layout under MainPath.
func (c *Config) applyDefaults() {
	if c.MainPath == "" {
		c.MainPath = DefaultMainPath()
	}
	if c.RuntimeDir == "" {
		c.RuntimeDir = filepath.Join(c.MainPath, "reshade")
	}
	if c.ExternalShadersDir == "" {
		c.ExternalShadersDir = filepath.Join(c.MainPath, "External_shaders")
	}
	if c.GlobalINI == "" {
		c.GlobalINI = "ReShade.ini"
	}
}

// Validate checks structural requirements. source prefixes every message.
func (c *Config) Validate(source string) error {
	if c.MainPath == "" {
		return validationError(messages.ConfigMainPathRequiredFmt, source)
	}
	seen := map[string]int{}
	for i, src := range c.ShaderSources {
		if src.Name == "" {
			return validationError(messages.ConfigSourceNameEmptyFmt, source, i)
		}
		if src.Dir == "" {
			return validationError(messages.ConfigSourceDirEmptyFmt, source, i)
		}
		if prev, dup := seen[src.Name]; dup {
			return validationError(messages.ConfigSourceNameDupFmt, source, i, src.Name, prev)
		}
		seen[src.Name] = i
	}
	return nil
}

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format+" "+messages.ConfigValidationGuidance, append([]interface{}{ErrConfigValidation}, args...)...)
}

// normalize expands ~ in every configured path.
func (c *Config) normalize() error {
	expand := func(p *string) error {
		if *p == "" {
			return nil
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf(messages.ConfigExpandHomeFailedFmt, *p, err)
		}
		*p = expanded
		return nil
	}
	if err := expand(&c.MainPath); err != nil {
		return err
	}
	if err := expand(&c.RuntimeDir); err != nil {
		return err
	}
	if err := expand(&c.ExternalShadersDir); err != nil {
		return err
	}
	for i := range c.SteamRoots {
		if err := expand(&c.SteamRoots[i]); err != nil {
			return err
		}
	}
	for i := range c.ShaderSources {
		if err := expand(&c.ShaderSources[i].Dir); err != nil {
			return err
		}
	}
	return nil
}

// MergeShadersEnabled reports the merge preference, defaulting to on.
func (c *Config) MergeShadersEnabled() bool {
	return c.MergeShaders == nil || *c.MergeShaders
}
