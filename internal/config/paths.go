package config

import "path/filepath"

// Paths holds resolved locations derived from the main data directory.
type Paths struct {
	Main       string
	ConfigPath string
	StorePath  string
	MergedDir  string
	INIPath    string
}

// DefaultPaths returns the fixed layout under a main data directory.
func DefaultPaths(main string) Paths {
	return Paths{
		Main:       main,
		ConfigPath: filepath.Join(main, "config.toml"),
		StorePath:  filepath.Join(main, "games.json"),
		MergedDir:  filepath.Join(main, "ReShade_shaders", "Merged"),
		INIPath:    filepath.Join(main, "ReShade.ini"),
	}
}

// Paths resolves the layout for this configuration.
func (c *Config) Paths() Paths {
	paths := DefaultPaths(c.MainPath)
	if c.GlobalINI != "" {
		paths.INIPath = filepath.Join(c.MainPath, c.GlobalINI)
	}
	return paths
}
