package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/hrutik5321/leaguedash/internal/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrClosed is returned by Connect after Close.
var ErrClosed = errors.New("postgres connector closed")

// PostgresDB opens scoped connections from a pgx pool. One pool is kept per
// distinct DSN.
type PostgresDB struct {
	mu     sync.Mutex
	pools  map[string]*pgxpool.Pool
	closed bool
	logger *slog.Logger
}

// New creates a connector. If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *PostgresDB {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PostgresDB{
		pools:  make(map[string]*pgxpool.Pool),
		logger: logger,
	}
}

func (p *PostgresDB) pool(ctx context.Context, cfg db.ConnConfig) (*pgxpool.Pool, error) {
	dsn := cfg.URL()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if pool, ok := p.pools[dsn]; ok {
		return pool, nil
	}

	p.logger.Debug("creating pool", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	p.pools[dsn] = pool
	return pool, nil
}

// Connect implements db.Connector. The returned connection has an open
// transaction and must be closed by the caller.
func (p *PostgresDB) Connect(ctx context.Context, cfg db.ConnConfig) (db.Conn, error) {
	pool, err := p.pool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	c, err := pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := c.Begin(ctx)
	if err != nil {
		c.Release()
		return nil, err
	}

	return &conn{c: c, tx: tx}, nil
}

// Close db
func (p *PostgresDB) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for dsn, pool := range p.pools {
		pool.Close()
		delete(p.pools, dsn)
	}
	p.closed = true
	return nil
}

type conn struct {
	c    *pgxpool.Conn
	tx   pgx.Tx
	done bool
}

func (c *conn) Query(ctx context.Context, stmt db.Statement) ([]string, [][]any, error) {
	if c.c == nil {
		return nil, nil, fmt.Errorf("database not connected")
	}

	rows, err := c.tx.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	cols := make([]string, len(fds))
	for i, fd := range fds {
		cols[i] = fd.Name
	}

	var data [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, nil, err
		}
		for i, v := range values {
			values[i] = normalize(v)
		}
		data = append(data, values)
	}
	if rows.Err() != nil {
		return nil, nil, rows.Err()
	}

	return cols, data, nil
}

func (c *conn) Commit(ctx context.Context) error {
	if c.done {
		return pgx.ErrTxClosed
	}
	c.done = true
	return c.tx.Commit(ctx)
}

func (c *conn) Rollback(ctx context.Context) error {
	if c.done {
		return pgx.ErrTxClosed
	}
	c.done = true
	return c.tx.Rollback(ctx)
}

func (c *conn) Close(ctx context.Context) error {
	if c.c == nil {
		return nil
	}
	var err error
	if !c.done {
		c.done = true
		err = c.tx.Rollback(ctx)
	}
	c.c.Release()
	c.c = nil
	return err
}

// normalize maps driver-specific values onto the types the renderers know.
func normalize(v any) any {
	switch val := v.(type) {

	// UUID as [16]byte
	case [16]byte:
		return uuid.UUID(val)

	// pgx UUID type
	case pgtype.UUID:
		if val.Valid {
			return uuid.UUID(val.Bytes)
		}
		return nil

	default:
		return v
	}
}
