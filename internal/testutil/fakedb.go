package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hrutik5321/leaguedash/internal/db"
)

// Result is a canned answer for one SQL text.
type Result struct {
	Columns []string
	Rows    [][]any
	Err     error
}

// FakeDB is an in-memory db.Connector that records every call. Answers are
// matched on the exact SQL text.
type FakeDB struct {
	mu sync.Mutex

	// ConnectErr, when set, fails every Connect.
	ConnectErr error
	// CommitErr, when set, fails every Commit.
	CommitErr error

	results map[string]Result

	Connects  int
	Queries   []db.Statement
	Commits   int
	Rollbacks int
	open      int
}

// NewFakeDB returns an empty fake.
func NewFakeDB() *FakeDB {
	return &FakeDB{results: make(map[string]Result)}
}

// On registers the answer returned for sql.
func (f *FakeDB) On(sql string, r Result) *FakeDB {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[sql] = r
	return f
}

// OpenConns returns how many connections are currently not closed.
func (f *FakeDB) OpenConns() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// QueryCount returns how many statements reached the fake.
func (f *FakeDB) QueryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Queries)
}

// Connect implements db.Connector.
func (f *FakeDB) Connect(_ context.Context, _ db.ConnConfig) (db.Conn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Connects++
	if f.ConnectErr != nil {
		return nil, f.ConnectErr
	}
	f.open++
	return &fakeConn{db: f}, nil
}

// Close implements db.Connector.
func (f *FakeDB) Close() error { return nil }

type fakeConn struct {
	db     *FakeDB
	done   bool
	closed bool
}

func (c *fakeConn) Query(_ context.Context, stmt db.Statement) ([]string, [][]any, error) {
	f := c.db
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Queries = append(f.Queries, stmt)
	r, ok := f.results[stmt.SQL]
	if !ok {
		return nil, nil, fmt.Errorf("relation does not exist: %q", stmt.SQL)
	}
	if r.Err != nil {
		return nil, nil, r.Err
	}
	return r.Columns, r.Rows, nil
}

func (c *fakeConn) Commit(context.Context) error {
	f := c.db
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.done {
		return errors.New("transaction already finished")
	}
	c.done = true
	f.Commits++
	return f.CommitErr
}

func (c *fakeConn) Rollback(context.Context) error {
	f := c.db
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.done {
		return errors.New("transaction already finished")
	}
	c.done = true
	f.Rollbacks++
	return nil
}

func (c *fakeConn) Close(context.Context) error {
	f := c.db
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if !c.done {
		c.done = true
		f.Rollbacks++
	}
	f.open--
	return nil
}

// StaticSettings returns fixed connection settings.
func StaticSettings(context.Context) (db.ConnConfig, error) {
	return db.ConnConfig{Driver: "fake", Host: "localhost", Port: 5432, Database: "league"}, nil
}
