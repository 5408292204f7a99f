package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glaze-tools/glaze/internal/messages"
)

func newUninstallCmd(configPath *string) *cobra.Command {
	var exePath string

	cmd := &cobra.Command{
		Use:   messages.UninstallUse,
		Short: messages.UninstallShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, p, err := openEnvironment(cmd, *configPath, nil)
			if err != nil {
				return err
			}
			target, err := targetFromArgs(cfg, cmd, args, exePath)
			if err != nil {
				return err
			}
			removed, err := p.Uninstall(target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(removed) == 0 {
				_, _ = fmt.Fprintln(out, messages.CLINoLinksRemoved)
				return nil
			}
			_, _ = fmt.Fprintf(out, messages.CLIUninstalledFmt+"\n", len(removed), target.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&exePath, "exe", "", "uninstall from this executable's directory")
	return cmd
}
