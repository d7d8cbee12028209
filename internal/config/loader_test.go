package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleINI = `
[postgresql]
host=localhost
port=5432
database=premier_league
user=postgres
password=secret

[reporting]
host=replica.internal
`

// countingSource is a fake Source that records how often it is read.
type countingSource struct {
	data  []byte
	err   error
	reads *int
}

func (s countingSource) ReadBytes() ([]byte, error) {
	*s.reads++
	return s.data, s.err
}

func newCountingLoader(data string, err error) (*Loader, *int) {
	reads := 0
	l := NewLoader(WithOpener(func(string) Source {
		return countingSource{data: []byte(data), err: err, reads: &reads}
	}))
	return l, &reads
}

func TestLoader_LoadSection(t *testing.T) {
	l, reads := newCountingLoader(sampleINI, nil)

	values, err := l.Load("database.ini", "postgresql")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"host":     "localhost",
		"port":     "5432",
		"database": "premier_league",
		"user":     "postgres",
		"password": "secret",
	}, values)
	assert.Equal(t, 1, *reads)
}

func TestLoader_DefaultSectionApplies(t *testing.T) {
	l, _ := newCountingLoader(`
[DEFAULT]
host=dbhost
port=5432

[postgresql]
DBName=league
port=6543
`, nil)

	values, err := l.Load("database.ini", "postgresql")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"host":   "dbhost",
		"port":   "6543",
		"DBName": "league",
	}, values)
}

func TestLoader_MemoizesPerSourceAndSection(t *testing.T) {
	l, reads := newCountingLoader(sampleINI, nil)

	first, err := l.Load("database.ini", "postgresql")
	require.NoError(t, err)
	second, err := l.Load("database.ini", "postgresql")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, *reads)

	_, err = l.Load("database.ini", "reporting")
	require.NoError(t, err)
	assert.Equal(t, 2, *reads)

	_, err = l.Load("other.ini", "postgresql")
	require.NoError(t, err)
	assert.Equal(t, 3, *reads)
}

func TestLoader_MissingSection(t *testing.T) {
	l, reads := newCountingLoader(sampleINI, nil)

	_, err := l.Load("database.ini", "mysql")
	require.Error(t, err)

	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "database.ini", cfgErr.Source)
	assert.Equal(t, "mysql", cfgErr.Section)
	assert.ErrorIs(t, err, ErrSectionNotFound)

	// failures are not cached: the source is read again
	_, err = l.Load("database.ini", "mysql")
	require.Error(t, err)
	assert.Equal(t, 2, *reads)
}

func TestLoader_MissingSectionDoesNotPoisonCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "database.ini")
	require.NoError(t, os.WriteFile(path, []byte("[other]\nhost=x\n"), 0o600))

	l := NewLoader()

	_, err := l.Load(path, "postgresql")
	require.ErrorIs(t, err, ErrSectionNotFound)

	require.NoError(t, os.WriteFile(path, []byte(sampleINI), 0o600))

	values, err := l.Load(path, "postgresql")
	require.NoError(t, err)
	assert.Equal(t, "premier_league", values["database"])
}

func TestLoader_UnreadableSource(t *testing.T) {
	boom := errors.New("permission denied")
	l, _ := newCountingLoader("", boom)

	_, err := l.Load("database.ini", "postgresql")
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "config database.ini [postgresql]")
}

func TestLoader_MissingFile(t *testing.T) {
	l := NewLoader()
	_, err := l.Load(filepath.Join(t.TempDir(), "absent.ini"), "postgresql")

	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_YAMLSource(t *testing.T) {
	const doc = `
postgresql:
  host: db.example.com
  port: 5433
  database: premier_league
  user: analyst
`
	l, _ := newCountingLoader(doc, nil)

	values, err := l.Load("database.yaml", "postgresql")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"host":     "db.example.com",
		"port":     "5433",
		"database": "premier_league",
		"user":     "analyst",
	}, values)

	_, err = l.Load("database.yaml", "mysql")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}
