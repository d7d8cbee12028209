package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/hrutik5321/leaguedash/internal/config"
	"github.com/hrutik5321/leaguedash/internal/db"
	"github.com/hrutik5321/leaguedash/internal/db/postgres"
	"github.com/hrutik5321/leaguedash/internal/db/sqldb"
	"github.com/hrutik5321/leaguedash/internal/query"
	"github.com/hrutik5321/leaguedash/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Runner report.Runner
	Logger *slog.Logger
}

// connectorFactory builds the database backend for a run.
type connectorFactory func(logger *slog.Logger) db.Connector

// newCommandContext wires the loader, backend and executor. The returned
// cleanup must be called (typically via defer).
func newCommandContext(cmd *cobra.Command, opts *options, logOut io.Writer) (*CommandContext, func(), error) {
	logger := newLogger(logOut, opts.verbose)

	loader := config.NewLoader()
	flags := cmd.Flags()
	settings := func(context.Context) (db.ConnConfig, error) {
		return loader.ConnConfig(opts.configFile, opts.section, flags)
	}

	policy, err := commitPolicy(loader, opts, flags)
	if err != nil {
		return nil, nil, err
	}

	connector := opts.connectors(logger)
	exec := query.New(connector, settings,
		query.WithCommitPolicy(policy),
		query.WithLogger(logger),
	)

	cleanup := func() {
		stats := exec.Stats()
		logger.Debug("query cache", slog.Int64("hits", stats.Hits), slog.Int64("misses", stats.Misses), slog.Int("entries", stats.Size))
		if err := connector.Close(); err != nil {
			logger.Warn("closing database", slog.Any("error", err))
		}
	}

	return &CommandContext{
		Runner: report.Runner{Exec: exec},
		Logger: logger,
	}, cleanup, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if w == nil {
		return slog.New(slog.DiscardHandler)
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// commitPolicy resolves the commit key through the same overlay as the
// connection settings: --commit, then LEAGUEDASH_COMMIT, then the section.
// An unreadable settings file is reported later by the first query.
func commitPolicy(loader *config.Loader, opts *options, flags *pflag.FlagSet) (query.CommitPolicy, error) {
	values, err := loader.Load(opts.configFile, opts.section)
	if err != nil {
		values = nil
	}
	raw, err := config.Lookup(values, flags, config.CommitKey)
	if err != nil {
		return query.CommitWrites, err
	}
	return query.ParseCommitPolicy(raw)
}

// openLogFile opens path for appending, or returns nil when path is empty.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// connectors hands each connection to the backend named by its driver,
// creating backends on first use.
type connectors struct {
	logger *slog.Logger

	mu       sync.Mutex
	backends map[string]db.Connector
}

func newConnectors(logger *slog.Logger) db.Connector {
	return &connectors{logger: logger, backends: make(map[string]db.Connector)}
}

func (c *connectors) backend(driver string) (db.Connector, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if b, ok := c.backends[driver]; ok {
		return b, nil
	}
	var b db.Connector
	switch driver {
	case db.DriverPgxPool:
		b = postgres.New(c.logger)
	case db.DriverPgx, db.DriverPostgres:
		b = sqldb.New(driver, c.logger)
	default:
		return nil, fmt.Errorf("unsupported driver %q (want %s, %s or %s)", driver, db.DriverPgxPool, db.DriverPgx, db.DriverPostgres)
	}
	c.backends[driver] = b
	return b, nil
}

func (c *connectors) Connect(ctx context.Context, cfg db.ConnConfig) (db.Conn, error) {
	b, err := c.backend(cfg.Driver)
	if err != nil {
		return nil, err
	}
	return b.Connect(ctx, cfg)
}

func (c *connectors) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for _, b := range c.backends {
		errs = append(errs, b.Close())
	}
	clear(c.backends)
	return errors.Join(errs...)
}
