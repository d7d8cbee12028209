package config

import (
	"testing"

	"github.com/hrutik5321/leaguedash/internal/db"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]string
		expected db.ConnConfig
	}{
		{
			name: "full section",
			values: map[string]string{
				"host":     "db.example.com",
				"port":     "5433",
				"database": "premier_league",
				"user":     "analyst",
				"password": "secret",
			},
			expected: db.ConnConfig{
				Driver:   DefaultDriver,
				Host:     "db.example.com",
				Port:     5433,
				User:     "analyst",
				Password: "secret",
				Database: "premier_league",
				SSLMode:  "disable",
			},
		},
		{
			name:   "defaults and dbname alias",
			values: map[string]string{"dbname": "premier_league"},
			expected: db.ConnConfig{
				Driver:   DefaultDriver,
				Host:     DefaultHost,
				Port:     DefaultPort,
				Database: "premier_league",
				SSLMode:  "disable",
			},
		},
		{
			name: "driver and timeout",
			values: map[string]string{
				"database":        "premier_league",
				"driver":          "pgx",
				"connect_timeout": "10",
				"sslmode":         "require",
			},
			expected: db.ConnConfig{
				Driver:         db.DriverPgx,
				Host:           DefaultHost,
				Port:           DefaultPort,
				Database:       "premier_league",
				SSLMode:        "require",
				ConnectTimeout: 10,
			},
		},
		{
			name: "other libpq keywords pass through",
			values: map[string]string{
				"DBName":           "premier_league",
				"application_name": "leaguedash",
				"sslrootcert":      "/etc/ssl/root.crt",
				"commit":           "always",
			},
			expected: db.ConnConfig{
				Driver:   DefaultDriver,
				Host:     DefaultHost,
				Port:     DefaultPort,
				Database: "premier_league",
				SSLMode:  "disable",
				Params: map[string]string{
					"application_name": "leaguedash",
					"sslrootcert":      "/etc/ssl/root.crt",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Decode(tt.values, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestDecode_RequiresDatabase(t *testing.T) {
	_, err := Decode(map[string]string{"host": "localhost"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database name is required")
}

func TestDecode_Precedence(t *testing.T) {
	t.Setenv("LEAGUEDASH_HOST", "env-host")
	t.Setenv("LEAGUEDASH_USER", "env-user")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("host", "", "")
	flags.String("user", "", "")
	flags.Int("port", 0, "")
	require.NoError(t, flags.Parse([]string{"--host", "flag-host"}))

	cfg, err := Decode(map[string]string{
		"host":     "file-host",
		"user":     "file-user",
		"port":     "6543",
		"database": "premier_league",
	}, flags)
	require.NoError(t, err)

	assert.Equal(t, "flag-host", cfg.Host, "flags beat env")
	assert.Equal(t, "env-user", cfg.User, "env beats file")
	assert.Equal(t, 6543, cfg.Port, "unchanged flags do not override")
}

func TestDecode_RejectsDurationTimeout(t *testing.T) {
	_, err := Decode(map[string]string{"database": "league", "connect_timeout": "5s"}, nil)
	require.Error(t, err)
}

func TestLookup_Commit(t *testing.T) {
	section := map[string]string{"database": "league", "commit": "always"}

	got, err := Lookup(section, nil, CommitKey)
	require.NoError(t, err)
	assert.Equal(t, "always", got)

	got, err = Lookup(map[string]string{"database": "league"}, nil, CommitKey)
	require.NoError(t, err)
	assert.Empty(t, got)

	t.Setenv("LEAGUEDASH_COMMIT", "writes")
	got, err = Lookup(section, nil, CommitKey)
	require.NoError(t, err)
	assert.Equal(t, "writes", got, "env beats file")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("commit", "", "")
	require.NoError(t, flags.Parse([]string{"--commit", "always"}))
	got, err = Lookup(section, flags, CommitKey)
	require.NoError(t, err)
	assert.Equal(t, "always", got, "flags beat env")
}

func TestLoader_ConnConfig(t *testing.T) {
	l, reads := newCountingLoader(sampleINI, nil)

	cfg, err := l.ConnConfig("database.ini", "postgresql", nil)
	require.NoError(t, err)
	assert.Equal(t, "premier_league", cfg.Database)

	_, err = l.ConnConfig("database.ini", "postgresql", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, *reads)

	_, err = l.ConnConfig("database.ini", "reporting", nil)
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "reporting", cfgErr.Section)
}
