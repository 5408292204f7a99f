package messages

// Planner messages for install/uninstall transitions.
const (
	InstallEntryExecutableRequired = "application entry has no executable to analyze"
	InstallRuntimeDLLMissingFmt    = "injector DLL not found: %s (populate the runtime directory first)"
	InstallTargetDirMissingFmt     = "install directory %s does not exist"
	InstallLinkFailedFmt           = "place %s: %w"
	InstallRecordFailedFmt         = "record installation of %s: %w"
	InstallMergeFailedFmt          = "refresh merged shaders: %w"
	InstallNotConfigured           = "installation is not configured yet"
	UninstallRemoveRecordFmt       = "forget %s: %w"
)
