package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glaze-tools/glaze/internal/messages"
	"github.com/glaze-tools/glaze/internal/peinfo"
	"github.com/glaze-tools/glaze/internal/planner"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.AnalyzeUse,
		Short: messages.AnalyzeShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := peinfo.Analyze(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "architecture:    %s\n", profile.Architecture)
			_, _ = fmt.Fprintf(out, "graphics api:    %s\n", profile.API)
			_, _ = fmt.Fprintf(out, "override module: %s\n", profile.OverrideModule)
			_, _ = fmt.Fprintf(out, "launch options:  %s\n", planner.LaunchHint(profile.OverrideModule))
			return nil
		},
	}
}
