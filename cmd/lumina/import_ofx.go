package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/lumina/internal/cli"
	"github.com/Veraticus/lumina/internal/model"
	"github.com/Veraticus/lumina/internal/ofx"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importOFXCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-ofx <files...>",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.
Credits become income and debits become expenses; categories are guessed
from the statement text and can be changed by deleting and re-adding.

Examples:
  lumina import-ofx ~/Downloads/checking_jan.qfx
  lumina import-ofx ~/Downloads/*.qfx --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			env, err := openEnvironment(ctx)
			if err != nil {
				return err
			}
			defer env.close()

			bar := progressbar.NewOptions(len(files),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Reading statements...[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					if _, err := fmt.Fprintln(cmd.ErrOrStderr()); err != nil {
						slog.Warn("Failed to write newline after progress bar", "error", err)
					}
				}),
			)

			parser := ofx.NewParser()
			seen := make(map[string]struct{})
			var drafts []model.Draft
			for _, path := range files {
				if err := ctx.Err(); err != nil {
					return err
				}
				entries, err := parseStatement(ctx, parser, path)
				if err != nil {
					slog.Error("Failed to parse OFX file", "file", path, "error", err)
				}
				added := 0
				for _, e := range entries {
					key := e.Account + "\x00" + e.FitID
					if e.FitID != "" {
						if _, dup := seen[key]; dup {
							continue
						}
						seen[key] = struct{}{}
					}
					drafts = append(drafts, e.Draft)
					added++
				}
				slog.Debug("Processed file", "file", filepath.Base(path), "found", len(entries), "added", added)
				if err := bar.Add(1); err != nil {
					slog.Warn("Failed to update progress bar", "error", err)
				}
			}

			out := cmd.OutOrStdout()
			if len(drafts) == 0 {
				writeln(out, cli.FormatWarning("No transactions found"))
				return nil
			}

			symbol := env.state.Profile().Currency
			if dryRun {
				preview := make([]model.Transaction, len(drafts))
				for i, d := range drafts {
					preview[len(drafts)-1-i] = d.WithID(fmt.Sprintf("preview-%d", i+1))
				}
				writeln(out, cli.RenderTransactions(env.labels(), symbol, preview))
				writeln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions would be imported", len(drafts))))
				return nil
			}

			env.autoCheckpoint(ctx, "import")
			result, err := env.state.ImportTransactions(ctx, drafts)
			if result.Added > 0 {
				writeln(out, cli.FormatSuccess(fmt.Sprintf("%s: %d", env.labels().Imported, result.Added)))
			}
			if result.Skipped > 0 {
				writeln(out, cli.FormatWarning(fmt.Sprintf("Skipped %d invalid lines", result.Skipped)))
			}
			return persistWarning(out, err)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "preview the import without saving")
	return cmd
}

// expandFiles resolves glob patterns; names without matches are kept when
// they exist as files.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}
	if len(files) == 0 {
		return nil, errors.New("no files found to import")
	}
	return files, nil
}

func parseStatement(ctx context.Context, parser *ofx.Parser, path string) ([]ofx.Entry, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the user
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return parser.ParseFile(ctx, f)
}
