package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/lumina/internal/app"
	"github.com/Veraticus/lumina/internal/cli"
	"github.com/Veraticus/lumina/internal/common"
	"github.com/Veraticus/lumina/internal/config"
	"github.com/Veraticus/lumina/internal/model"
	"github.com/Veraticus/lumina/internal/period"
	"github.com/Veraticus/lumina/internal/service"
	"github.com/Veraticus/lumina/internal/storage"
	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// environment is what a command works with: the resolved config, the
// hydrated application state and, for file databases, the SQLite store.
type environment struct {
	cfg     *config.Config
	state   *app.State
	sqlite  *storage.SQLiteStorage
	gateway service.Gateway
}

// openEnvironment loads the configuration, opens storage and hydrates the
// application state. Call close when done.
func openEnvironment(ctx context.Context) (*environment, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	env := &environment{cfg: cfg}
	if cfg.Ephemeral {
		env.gateway = storage.NewMemoryStorage()
	} else {
		store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		env.sqlite = store
		env.gateway = store
	}

	env.state = app.New(env.gateway,
		app.WithLogger(slog.Default()),
		app.WithStrictPull(cfg.StrictPull),
	)
	if err := env.state.Hydrate(ctx); err != nil {
		env.close()
		return nil, err
	}
	return env, nil
}

func (e *environment) close() {
	if err := e.gateway.Close(); err != nil {
		slog.Error("Failed to close storage", "error", err)
	}
}

// labels returns the labels for the profile's language.
func (e *environment) labels() cli.Strings {
	return cli.For(e.state.Profile().Language)
}

// checkpoints returns the checkpoint manager of a file database.
func (e *environment) checkpoints() (*storage.CheckpointManager, error) {
	if e.sqlite == nil {
		return nil, storage.ErrCheckpointUnavailable
	}
	return storage.NewCheckpointManager(e.sqlite)
}

// autoCheckpoint snapshots the database before a destructive operation.
// Failures are logged and do not stop the operation.
func (e *environment) autoCheckpoint(ctx context.Context, operation string) {
	if !e.cfg.AutoCheckpoint || e.sqlite == nil {
		return
	}
	cm, err := e.checkpoints()
	if err != nil {
		slog.Warn("Checkpoints unavailable", "error", err)
		return
	}
	info, err := cm.AutoCheckpoint(ctx, operation)
	if err != nil {
		slog.Warn("Failed to create checkpoint", "operation", operation, "error", err)
		return
	}
	slog.Debug("Created checkpoint", "id", info.ID)
}

func parsePeriodFlag(value string) (period.Period, error) {
	p, err := period.ParsePeriod(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
	}
	return p, nil
}

// resolveCategory matches label case-insensitively against the categories
// of t and returns the canonical label.
func resolveCategory(t model.TransactionType, label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return string(model.DefaultCategory(t)), nil
	}

	options := model.CategoriesFor(t)
	names := make([]string, len(options))
	for i, c := range options {
		if strings.EqualFold(string(c), label) {
			return string(c), nil
		}
		names[i] = string(c)
	}
	return "", fmt.Errorf("%w: unknown %s category %q (choose one of %s)",
		common.ErrInvalidInput, t, label, strings.Join(names, ", "))
}

func writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}

func writeln(w io.Writer, s string) {
	if _, err := fmt.Fprintln(w, s); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}

// persistWarning reports a mutation that was applied in memory but could
// not be saved.
func persistWarning(w io.Writer, err error) error {
	if errors.Is(err, app.ErrPersist) {
		writeln(w, cli.FormatWarning("Change applied but not saved"))
	}
	return err
}
