package config

import "github.com/glaze-tools/glaze/internal/shaders"

// ExternalSourceName identifies the user-supplied shader directory.
const ExternalSourceName = "external"

// MergeSources returns the ordered source list for the merger. The external
// directory is always last so user files beat every bundled repository.
func (c *Config) MergeSources() []shaders.Source {
	sources := make([]shaders.Source, 0, len(c.ShaderSources)+1)
	for _, src := range c.ShaderSources {
		sources = append(sources, shaders.Source{Name: src.Name, Dir: src.Dir})
	}
	if c.ExternalShadersDir != "" {
		sources = append(sources, shaders.Source{Name: ExternalSourceName, Dir: c.ExternalShadersDir})
	}
	return sources
}
