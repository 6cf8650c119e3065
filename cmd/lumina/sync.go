package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/lumina/internal/cli"
	"github.com/Veraticus/lumina/internal/common"
	"github.com/Veraticus/lumina/internal/synctoken"
	"github.com/spf13/cobra"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Move your ledger between devices with a sync token",
		Long: `A sync token is the whole ledger and profile packed into one line of text.
Push prints a token on one device; pull applies it on another, replacing
everything there.`,
	}
	cmd.AddCommand(syncPushCmd(), syncPullCmd(), syncHistoryCmd())
	return cmd
}

func syncPushCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Print a sync token for the current ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			token, err := env.state.Push(cmd.Context())
			if token == "" {
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				writeln(out, token)
				return err
			}

			s := env.labels()
			writeln(out, cli.FormatTitle(cli.SyncIcon+" "+s.SyncToken))
			writeln(out, cli.TokenStyle.Render(token))
			writeln(out, "")
			writef(out, "%s: %s\n", s.SyncID, env.state.Profile().SyncID)
			return persistWarning(out, err)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print only the token")
	return cmd
}

func syncPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull [token]",
		Short: "Replace the local ledger with the contents of a sync token",
		Long: `Replace every local transaction and the profile with the contents of a sync
token. Without an argument the token is read from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				read, err := cli.NewNonBlockingReader(cmd.InOrStdin()).ReadAll(ctx)
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = read
			}

			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.close()

			s := env.labels()
			out := cmd.OutOrStdout()

			if strings.TrimSpace(token) != "" {
				env.autoCheckpoint(ctx, "pull")
			}

			result, err := env.state.Pull(ctx, token)
			switch {
			case errors.Is(err, synctoken.ErrDecode), errors.Is(err, synctoken.ErrMissingField):
				return common.NewUserError(s.SyncError, err)
			case err != nil && !result.Applied:
				return err
			}

			if !result.Applied {
				writeln(out, cli.FormatWarning(s.SyncIgnored))
				return nil
			}

			s = cli.For(env.state.Profile().Language)
			writeln(out, cli.FormatSuccess(fmt.Sprintf("%s (%d)", s.SyncSuccess, result.Transactions)))
			return persistWarning(out, err)
		},
	}
}

func syncHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent pushes and pulls on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			if !cmd.Flags().Changed("limit") {
				limit = env.cfg.HistoryLimit
			}
			events, err := env.state.SyncHistory(cmd.Context(), limit)
			if err != nil {
				return err
			}
			writeln(cmd.OutOrStdout(), cli.RenderHistory(env.labels(), events))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of events to show (0 for all)")
	return cmd
}
