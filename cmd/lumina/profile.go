package main

import (
	"github.com/Veraticus/lumina/internal/app"
	"github.com/Veraticus/lumina/internal/cli"
	"github.com/Veraticus/lumina/internal/common"
	"github.com/spf13/cobra"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your profile",
	}
	cmd.AddCommand(profileShowCmd(), profileSetCmd())
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your name, currency, language and sync id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			writeln(cmd.OutOrStdout(), cli.RenderProfile(env.labels(), env.state.Profile()))
			return nil
		},
	}
}

func profileSetCmd() *cobra.Command {
	var name, currency, language string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change profile fields",
		Long: `Change one or more profile fields. The currency is the symbol shown before
amounts; ISO codes such as USD, BDT, EUR, GBP and JPY are turned into their symbol.

Examples:
  lumina profile set --name Mira
  lumina profile set --currency bdt --language bn`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var update app.ProfileUpdate
			flags := cmd.Flags()
			if flags.Changed("name") {
				update.Name = &name
			}
			if flags.Changed("currency") {
				update.Currency = &currency
			}
			if flags.Changed("language") {
				update.Language = &language
			}
			if update == (app.ProfileUpdate{}) {
				return common.NewUserError("Nothing to change: pass --name, --currency or --language", common.ErrInvalidInput)
			}

			env, err := openEnvironment(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()

			profile, err := env.state.UpdateProfile(cmd.Context(), update)
			if profile.Name == "" {
				return err
			}

			out := cmd.OutOrStdout()
			s := cli.For(profile.Language)
			writeln(out, cli.FormatSuccess(s.ProfileSaved))
			writeln(out, cli.RenderProfile(s, profile))
			return persistWarning(out, err)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&currency, "currency", "", "currency symbol or ISO code")
	cmd.Flags().StringVar(&language, "language", "", "interface language (en or bn)")
	return cmd
}
