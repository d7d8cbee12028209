// Package sqldb implements db.Connector on top of database/sql, so any
// registered driver can serve the dashboard.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hrutik5321/leaguedash/internal/db"

	// database/sql drivers selectable through ConnConfig.Driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

// DB opens scoped connections from *sql.DB handles, one per DSN.
type DB struct {
	driver string
	logger *slog.Logger

	mu    sync.Mutex
	dbs   map[string]*sql.DB
	fixed *sql.DB
}

// New returns a connector for the named database/sql driver.
func New(driver string, logger *slog.Logger) *DB {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DB{
		driver: driver,
		logger: logger,
		dbs:    make(map[string]*sql.DB),
	}
}

// NewWithDB returns a connector that always uses handle, ignoring the
// connection settings passed to Connect.
func NewWithDB(handle *sql.DB, logger *slog.Logger) *DB {
	d := New("", logger)
	d.fixed = handle
	return d
}

func (d *DB) handle(ctx context.Context, cfg db.ConnConfig) (*sql.DB, error) {
	if d.fixed != nil {
		return d.fixed, nil
	}

	dsn := cfg.KeywordDSN()

	d.mu.Lock()
	defer d.mu.Unlock()

	if h, ok := d.dbs[dsn]; ok {
		return h, nil
	}

	d.logger.Debug("opening database", slog.String("driver", d.driver), slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	h, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", d.driver, err)
	}
	h.SetMaxIdleConns(2)
	h.SetConnMaxLifetime(5 * time.Minute)

	if err := h.PingContext(ctx); err != nil {
		_ = h.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", d.driver, err)
	}

	d.dbs[dsn] = h
	return h, nil
}

// Connect implements db.Connector.
func (d *DB) Connect(ctx context.Context, cfg db.ConnConfig) (db.Conn, error) {
	h, err := d.handle(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c, err := h.Conn(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := c.BeginTx(ctx, nil)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	return &conn{c: c, tx: tx}, nil
}

// Close closes every handle opened by the connector.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	for dsn, h := range d.dbs {
		errs = append(errs, h.Close())
		delete(d.dbs, dsn)
	}
	if d.fixed != nil {
		errs = append(errs, d.fixed.Close())
		d.fixed = nil
	}
	return errors.Join(errs...)
}

type conn struct {
	c    *sql.Conn
	tx   *sql.Tx
	done bool
}

func (c *conn) Query(ctx context.Context, stmt db.Statement) ([]string, [][]any, error) {
	if c.c == nil {
		return nil, nil, fmt.Errorf("database connection not established")
	}

	rows, err := c.tx.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var data [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		for i, v := range values {
			// Convert []byte to string for readability
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		data = append(data, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return cols, data, nil
}

func (c *conn) Commit(context.Context) error {
	if c.done {
		return sql.ErrTxDone
	}
	c.done = true
	return c.tx.Commit()
}

func (c *conn) Rollback(context.Context) error {
	if c.done {
		return sql.ErrTxDone
	}
	c.done = true
	return c.tx.Rollback()
}

func (c *conn) Close(context.Context) error {
	if c.c == nil {
		return nil
	}
	var err error
	if !c.done {
		c.done = true
		err = c.tx.Rollback()
	}
	err = errors.Join(err, c.c.Close())
	c.c = nil
	return err
}
