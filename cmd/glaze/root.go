package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/glaze-tools/glaze/internal/config"
	"github.com/glaze-tools/glaze/internal/gamedb"
	"github.com/glaze-tools/glaze/internal/messages"
	"github.com/glaze-tools/glaze/internal/planner"
	"github.com/glaze-tools/glaze/internal/steam"
	"github.com/glaze-tools/glaze/internal/warnings"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "glaze",
		Short:         messages.CLIShortDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <main path>/config.toml)")

	cmd.AddCommand(newGamesCmd(&configPath))
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newInstallCmd(&configPath))
	cmd.AddCommand(newUninstallCmd(&configPath))
	cmd.AddCommand(newMergeCmd(&configPath))
	return cmd
}

// loadConfig resolves the active configuration, defaulting to the config
// file under the conventional data directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		configPath = config.DefaultPaths(config.DefaultMainPath()).ConfigPath
	}
	return config.Load(configPath)
}

// openEnvironment loads config, store, and a planner wired for the command.
func openEnvironment(cmd *cobra.Command, configPath string, prompter planner.Prompter) (*config.Config, *gamedb.Store, *planner.Planner, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := gamedb.Open(cfg.Paths().StorePath)
	if err != nil {
		return nil, nil, nil, err
	}
	p := planner.New(planner.Options{
		Config:     cfg,
		Store:      store,
		Prompter:   prompter,
		WarnWriter: cmd.ErrOrStderr(),
	})
	return cfg, store, p, nil
}

// scanRoots returns the library roots to scan, preferring configured ones.
func scanRoots(cfg *config.Config) []string {
	if len(cfg.SteamRoots) > 0 {
		return cfg.SteamRoots
	}
	return steam.DefaultRoots()
}

// resolveTarget maps a game query to a scanned entry. The query matches an
// appid exactly or a name case-insensitively; a substring match is accepted
// only when unambiguous.
func resolveTarget(cfg *config.Config, cmd *cobra.Command, query string) (planner.Target, error) {
	entries, warns := steam.NewScanner(scanRoots(cfg)).Scan()
	printWarnings(cmd, warns)
	var matches []steam.ApplicationEntry
	for _, entry := range entries {
		if entry.AppID == query || strings.EqualFold(entry.Name, query) {
			matches = []steam.ApplicationEntry{entry}
			break
		}
		if strings.Contains(strings.ToLower(entry.Name), strings.ToLower(query)) {
			matches = append(matches, entry)
		}
	}
	switch len(matches) {
	case 0:
		return planner.Target{}, fmt.Errorf(messages.CLIGameNotFoundFmt, query)
	case 1:
		return planner.TargetFromEntry(matches[0]), nil
	default:
		for _, entry := range matches {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", entry.AppID, entry.Name)
		}
		return planner.Target{}, fmt.Errorf(messages.CLIAmbiguousGameFmt, query, len(matches))
	}
}

// targetFromArgs resolves the install/uninstall target from either a game
// query argument or the --exe flag.
func targetFromArgs(cfg *config.Config, cmd *cobra.Command, args []string, exePath string) (planner.Target, error) {
	if exePath != "" {
		return planner.TargetFromExecutable(exePath)
	}
	if len(args) == 0 {
		return planner.Target{}, errors.New(messages.CLIGameRequired)
	}
	return resolveTarget(cfg, cmd, args[0])
}

func printWarnings(cmd *cobra.Command, warns []warnings.Warning) {
	for _, w := range warns {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString(w.String()))
	}
}
