package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glaze-tools/glaze/internal/messages"
	"github.com/glaze-tools/glaze/internal/shaders"
)

func newMergeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   messages.MergeUse,
		Short: messages.MergeShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			mergedDir := cfg.Paths().MergedDir
			report, warns, err := shaders.Merge(cmd.Context(), cfg.MergeSources(), mergedDir)
			printWarnings(cmd, warns)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, messages.CLIMergeSummaryFmt+"\n", report.FilesWritten, mergedDir)
			if len(report.Overridden) > 0 {
				_, _ = fmt.Fprintf(out, messages.CLIOverriddenCountFmt+"\n", len(report.Overridden))
			}
			return nil
		},
	}
}
