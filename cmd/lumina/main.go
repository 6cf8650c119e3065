package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Veraticus/lumina/internal/cli"
	"github.com/Veraticus/lumina/internal/common"
	"github.com/Veraticus/lumina/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "lumina",
		Short: cli.AppIcon + " Personal income and expense ledger",
		Long: `lumina keeps a local ledger of your income and expenses, summarises them
by month or across all time, and moves the whole ledger between devices as a
copy-and-paste sync token.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(cfgFile)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/lumina/config.yaml)")
	flags.String("db", "", "database path (default: "+config.DefaultDatabasePath+")")
	flags.Bool("ephemeral", false, "keep everything in memory for this run")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")

	_ = viper.BindPFlag(config.KeyDatabasePath, flags.Lookup("db"))
	_ = viper.BindPFlag(config.KeyDatabaseEphemeral, flags.Lookup("ephemeral"))
	_ = viper.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	rootCmd.AddCommand(
		addCmd(),
		deleteCmd(),
		listCmd(),
		statsCmd(),
		profileCmd(),
		syncCmd(),
		wipeCmd(),
		categoriesCmd(),
		importOFXCmd(),
		dashboardCmd(),
		checkpointCmd(),
		versionCmd(),
	)
	return rootCmd
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx, stop := interrupts.HandleInterrupts(context.Background())

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		if interrupts.WasInterrupted() && errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		os.Exit(1)
	}
}

func initConfig(cfgFile string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		viper.AddConfigPath(fmt.Sprintf("%s/.config/lumina", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("LUMINA")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	config.SetDefaults(viper.GetViper())
	if err := common.SetupLogger(os.Stderr, viper.GetString(config.KeyLogLevel), viper.GetString(config.KeyLogFormat)); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			writef(cmd.OutOrStdout(), "lumina %s\n", version)
		},
	}
}
