package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/glaze-tools/glaze/internal/messages"
	"github.com/glaze-tools/glaze/internal/planner"
)

func newInstallCmd(configPath *string) *cobra.Command {
	var exePath string
	var yes bool

	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var prompter planner.Prompter
			if !yes {
				prompter = newHuhPrompter()
			}
			cfg, _, p, err := openEnvironment(cmd, *configPath, prompter)
			if err != nil {
				return err
			}
			target, err := targetFromArgs(cfg, cmd, args, exePath)
			if err != nil {
				return err
			}
			analysis, err := p.Analyze(target)
			if err != nil {
				return err
			}
			configured, err := p.Configure(analysis)
			if err != nil {
				return err
			}
			result, err := p.Install(cmd.Context(), configured)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if result.MergeReport != nil {
				_, _ = fmt.Fprintf(out, messages.CLIMergeSummaryFmt+"\n",
					result.MergeReport.FilesWritten, cfg.Paths().MergedDir)
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.CLIInstalledSummaryFmt,
				configured.InstallPath, configured.OverrideModule,
				result.Record.Architecture, result.Record.GraphicsAPI))
			_, _ = fmt.Fprintln(out, messages.CLILaunchOptionsHint)
			_, _ = fmt.Fprintf(out, "  %s\n", planner.LaunchHint(configured.OverrideModule))
			return nil
		},
	}
	cmd.Flags().StringVar(&exePath, "exe", "", "install for this executable instead of a scanned game")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept detected defaults without prompting")
	return cmd
}
