// Package query executes SQL statements against the configured database and
// memoizes their tabular results for the lifetime of the Executor.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrutik5321/leaguedash/internal/db"
	"github.com/hrutik5321/leaguedash/internal/frame"
	"github.com/hrutik5321/leaguedash/internal/memo"
)

// Error reports a failure to connect, execute, fetch or finish a statement.
type Error struct {
	Op  string // connect, execute, commit, rollback, assemble
	SQL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("query %s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// SettingsFunc supplies connection settings for one execution.
type SettingsFunc func(ctx context.Context) (db.ConnConfig, error)

// Executor runs statements through a db.Connector. Results are cached by the
// exact statement; a changed database is not noticed until restart.
type Executor struct {
	connector db.Connector
	settings  SettingsFunc
	cache     *memo.Cache[*frame.Frame]
	policy    CommitPolicy
	logger    *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithCommitPolicy sets how transactions are finished.
func WithCommitPolicy(p CommitPolicy) Option {
	return func(e *Executor) { e.policy = p }
}

// WithLogger sets the executor's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCache shares a result cache between executors.
func WithCache(c *memo.Cache[*frame.Frame]) Option {
	return func(e *Executor) { e.cache = c }
}

// New returns an Executor.
func New(connector db.Connector, settings SettingsFunc, opts ...Option) *Executor {
	e := &Executor{
		connector: connector,
		settings:  settings,
		cache:     memo.New[*frame.Frame](),
		policy:    CommitWrites,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute returns the result of stmt, running it at most once per distinct
// statement. Configuration errors are returned unchanged; everything after
// settings resolution fails with *Error.
func (e *Executor) Execute(ctx context.Context, stmt db.Statement) (*frame.Frame, error) {
	f, cached, err := e.cache.Do(stmt.Key(), func() (*frame.Frame, error) {
		return e.run(ctx, stmt)
	})
	if err != nil {
		return nil, err
	}
	if cached {
		e.logger.Debug("query cache hit", slog.Int("rows", f.NumRows()))
	}
	return f, nil
}

// Stats reports result cache activity.
func (e *Executor) Stats() memo.Stats {
	return e.cache.Stats()
}

func (e *Executor) run(ctx context.Context, stmt db.Statement) (*frame.Frame, error) {
	start := time.Now()

	cfg, err := e.settings(ctx)
	if err != nil {
		return nil, err
	}

	conn, err := e.connector.Connect(ctx, cfg)
	if err != nil {
		return nil, &Error{Op: "connect", SQL: stmt.SQL, Err: err}
	}
	defer func() {
		if cerr := conn.Close(ctx); cerr != nil {
			e.logger.Warn("closing connection", slog.Any("error", cerr))
		}
	}()

	cols, rows, err := conn.Query(ctx, stmt)
	if err != nil {
		if rerr := conn.Rollback(ctx); rerr != nil {
			e.logger.Debug("rollback after failed query", slog.Any("error", rerr))
		}
		return nil, &Error{Op: "execute", SQL: stmt.SQL, Err: err}
	}

	if e.policy.commits(stmt.SQL) {
		if err := conn.Commit(ctx); err != nil {
			return nil, &Error{Op: "commit", SQL: stmt.SQL, Err: err}
		}
	} else if err := conn.Rollback(ctx); err != nil {
		return nil, &Error{Op: "rollback", SQL: stmt.SQL, Err: err}
	}

	f, err := frame.New(cols, rows)
	if err != nil {
		return nil, &Error{Op: "assemble", SQL: stmt.SQL, Err: err}
	}

	e.logger.Debug("query executed",
		slog.Int("columns", f.NumCols()),
		slog.Int("rows", f.NumRows()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return f, nil
}
