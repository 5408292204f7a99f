package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/glaze-tools/glaze/internal/gamedb"
	"github.com/glaze-tools/glaze/internal/messages"
	"github.com/glaze-tools/glaze/internal/steam"
)

func newGamesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   messages.GamesUse,
		Short: messages.GamesShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, _, err := openEnvironment(cmd, *configPath, nil)
			if err != nil {
				return err
			}
			entries, warns := steam.NewScanner(scanRoots(cfg)).Scan()
			printWarnings(cmd, warns)
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.CLINoGamesFound)
				return nil
			}
			records, err := store.Load()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, entry := range entries {
				state := ""
				if record, ok := records[gamedb.Identity(entry.AppID)]; ok {
					state = color.GreenString("installed (%s)", record.OverrideModule)
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", entry.AppID, entry.Name, state)
			}
			return w.Flush()
		},
	}
}
