package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/lumina/internal/cli"
	"github.com/spf13/cobra"
)

func checkpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Save and restore snapshots of your data",
		Long: `Checkpoints are copies of the database kept next to it. One is taken
automatically before wipe, sync pull and import-ofx.`,
	}
	cmd.AddCommand(
		checkpointCreateCmd(),
		checkpointListCmd(),
		checkpointRestoreCmd(),
		checkpointDeleteCmd(),
	)
	return cmd
}

func checkpointCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create [tag]",
		Short: "Create a checkpoint",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			cm, err := env.checkpoints()
			if err != nil {
				return err
			}

			var tag string
			if len(args) == 1 {
				tag = args[0]
			}
			info, err := cm.Create(cmd.Context(), tag, description)
			if err != nil {
				return err
			}
			writeln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created checkpoint %s (%d transactions)", info.ID, info.Transactions)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "what this checkpoint is for")
	return cmd
}

func checkpointListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List checkpoints, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			cm, err := env.checkpoints()
			if err != nil {
				return err
			}
			checkpoints, err := cm.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(checkpoints) == 0 {
				writeln(out, cli.SubtleStyle.Render("No checkpoints"))
				return nil
			}
			for _, cp := range checkpoints {
				kind := "manual"
				if cp.IsAuto {
					kind = "auto"
				}
				line := fmt.Sprintf("%-40s %s  %-6s %4d txns  %s",
					cp.ID,
					cp.CreatedAt.Local().Format("2006-01-02 15:04"),
					kind,
					cp.Transactions,
					humanSize(cp.FileSize))
				if cp.Description != "" {
					line += "  " + cli.SubtleStyle.Render(cp.Description)
				}
				writeln(out, strings.TrimRight(line, " "))
			}
			return nil
		},
	}
}

func checkpointRestoreCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Replace the current data with a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.close()

			cm, err := env.checkpoints()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !force {
				prompt := fmt.Sprintf("Replace current data with checkpoint %s? [y/N]: ", args[0])
				ok, err := cli.Confirm(ctx, cli.NewNonBlockingReader(cmd.InOrStdin()), out, prompt)
				if err != nil {
					return err
				}
				if !ok {
					writeln(out, "Restore canceled")
					return nil
				}
			}

			env.autoCheckpoint(ctx, "restore")
			info, err := cm.Restore(ctx, args[0])
			if err != nil {
				return err
			}
			writeln(out, cli.FormatSuccess(fmt.Sprintf("Restored checkpoint %s (%d transactions)", info.ID, info.Transactions)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}

func checkpointDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			cm, err := env.checkpoints()
			if err != nil {
				return err
			}
			if err := cm.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			writeln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted checkpoint "+args[0]))
			return nil
		},
	}
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
