package main

import (
	"github.com/Veraticus/lumina/internal/cli"
	"github.com/spf13/cobra"
)

func wipeCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete every transaction and reset the profile",
		Long: `Wipe forgets every transaction and resets the profile to its defaults with a
new sync id. Unless checkpoint.auto is off, a checkpoint is taken first so
the data can be brought back with "lumina checkpoint restore".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.close()

			s := env.labels()
			out := cmd.OutOrStdout()

			if !force {
				ok, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), out, s.WipeConfirm)
				if err != nil {
					return err
				}
				if !ok {
					writeln(out, s.WipeCancelled)
					return nil
				}
			}

			env.autoCheckpoint(ctx, "wipe")
			if err := env.state.Wipe(ctx); err != nil {
				return err
			}
			writeln(out, cli.FormatSuccess(cli.For(env.state.Profile().Language).WipeDone))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}
