package db

import (
	"context"
	"fmt"
	"maps"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Driver names understood by the backends.
const (
	DriverPgxPool  = "pgxpool"  // native pgx pool
	DriverPgx      = "pgx"      // database/sql via pgx stdlib
	DriverPostgres = "postgres" // database/sql via lib/pq
)

// Connection parameters for any SQL DB.
type ConnConfig struct {
	Driver         string `koanf:"driver"`
	Host           string `koanf:"host"`
	Port           int    `koanf:"port"`
	User           string `koanf:"user"`
	Password       string `koanf:"password"`
	Database       string `koanf:"database"`
	SSLMode        string `koanf:"sslmode"`
	ConnectTimeout int    `koanf:"connect_timeout"` // seconds, as libpq reads it

	// Params holds other libpq keywords (application_name, sslrootcert,
	// ...) passed through to the driver unchanged.
	Params map[string]string `koanf:"-"`
}

// URL renders cfg as a postgres:// connection URL.
func (c ConnConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Database,
	}
	if c.User != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		} else {
			u.User = url.User(c.User)
		}
	}

	q := url.Values{}
	q.Set("sslmode", c.sslMode())
	if c.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(c.ConnectTimeout))
	}
	for k, v := range c.Params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// KeywordDSN renders cfg in libpq keyword/value form.
func (c ConnConfig) KeywordDSN() string {
	parts := []string{
		"host=" + quoteDSNValue(c.Host),
		fmt.Sprintf("port=%d", c.Port),
		"dbname=" + quoteDSNValue(c.Database),
		"sslmode=" + c.sslMode(),
	}
	if c.User != "" {
		parts = append(parts, "user="+quoteDSNValue(c.User))
	}
	if c.Password != "" {
		parts = append(parts, "password="+quoteDSNValue(c.Password))
	}
	if c.ConnectTimeout > 0 {
		parts = append(parts, fmt.Sprintf("connect_timeout=%d", c.ConnectTimeout))
	}
	for _, k := range slices.Sorted(maps.Keys(c.Params)) {
		parts = append(parts, k+"="+quoteDSNValue(c.Params[k]))
	}
	return strings.Join(parts, " ")
}

func (c ConnConfig) sslMode() string {
	if c.SSLMode == "" {
		return "disable"
	}
	return c.SSLMode
}

func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// Statement is one SQL command with its bound arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Key identifies the statement exactly: the SQL text followed by every
// argument tagged with its Go type and length. No normalization is applied.
func (s Statement) Key() string {
	if len(s.Args) == 0 {
		return s.SQL
	}
	var b strings.Builder
	b.WriteString(s.SQL)
	for _, a := range s.Args {
		v := fmt.Sprint(a)
		fmt.Fprintf(&b, "\x00%T:%d:%s", a, len(v), v)
	}
	return b.String()
}

// Conn is a scoped connection holding one open transaction.
type Conn interface {
	// Query runs stmt once and fetches every row along with the column
	// names of its result descriptor.
	Query(ctx context.Context, stmt Statement) (columns []string, rows [][]any, err error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	// Close releases the connection, rolling back an unfinished transaction.
	Close(ctx context.Context) error
}

// Connector opens scoped connections.
type Connector interface {
	Connect(ctx context.Context, cfg ConnConfig) (Conn, error)
	Close() error
}
