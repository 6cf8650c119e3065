package main

import (
	"github.com/Veraticus/lumina/internal/tui"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	var periodFlag string

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := parsePeriodFlag(periodFlag)
			if err != nil {
				return err
			}

			env, err := openEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			return tui.Run(cmd.Context(), env.state, tui.WithPeriod(p))
		},
	}

	cmd.Flags().StringVarP(&periodFlag, "period", "p", "month", "period shown first (month or all)")
	return cmd
}
