package messages

// Config messages for tool configuration loading and validation.
const (
	ConfigReadFailedFmt       = "read config %s: %w"
	ConfigInvalidFmt          = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys: %w"
	ConfigMainPathRequiredFmt = "%s: main_path is required"
	ConfigSourceNameEmptyFmt  = "%s: shader_sources[%d].name is required"
	ConfigSourceDirEmptyFmt   = "%s: shader_sources[%d].dir is required"
	ConfigSourceNameDupFmt    = "%s: shader_sources[%d].name %q duplicates shader_sources[%d].name"
	ConfigExpandHomeFailedFmt = "expand %s: %w"
	ConfigWriteINIFailedFmt   = "write default ini %s: %w"
	ConfigCreateDirFailedFmt  = "create directory %s: %w"
	ConfigValidationGuidance  = "(fix config.toml and retry)"
)
