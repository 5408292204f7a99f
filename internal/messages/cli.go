package messages

// CLI messages shared by cmd/glaze.
const (
	CLIShortDescription = "glaze installs a shader injector into Windows games run under Wine/Proton"

	GamesUse   = "games"
	GamesShort = "List games found in Steam libraries"

	AnalyzeUse   = "analyze <executable>"
	AnalyzeShort = "Report a Windows executable's architecture and graphics API"

	InstallUse   = "install [game]"
	InstallShort = "Install the injector for a game"

	UninstallUse   = "uninstall [game]"
	UninstallShort = "Remove the injector from a game"

	MergeUse   = "merge"
	MergeShort = "Rebuild the merged shader tree from configured sources"

	CLINoGamesFound        = "no games found in any Steam library"
	CLIGameNotFoundFmt     = "no game matches %q"
	CLIAmbiguousGameFmt    = "%q matches %d games; pick one by appid"
	CLIGameRequired        = "name a game or pass --exe <path>"
	CLIInstalledSummaryFmt = "installed to %s as %s.dll (%s, %s)"
	CLIUninstalledFmt      = "removed %d injector links from %s"
	CLINoLinksRemoved      = "no injector links found to remove"
	CLILaunchOptionsHint   = "set the game's Steam launch options to:"
	CLIMergeSummaryFmt     = "merged %d files into %s"
	CLIOverriddenCountFmt  = "%d files overridden by later sources"

	VersionTemplate  = "glaze version {{.Version}}\n"
	VersionFullFmt   = "%s (%s)"
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
)
