package config

import (
	"fmt"
	"strings"

	"github.com/hrutik5321/leaguedash/internal/db"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes environment overrides, e.g. LEAGUEDASH_HOST.
const EnvPrefix = "LEAGUEDASH_"

// Default connection values.
const (
	DefaultDriver = db.DriverPgxPool
	DefaultHost   = "localhost"
	DefaultPort   = 5432
)

// CommitKey names the commit policy setting.
const CommitKey = "commit"

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"host":    "host",
	"port":    "port",
	"user":    "user",
	"dbname":  "database",
	"driver":  "driver",
	"sslmode": "sslmode",
	"commit":  CommitKey,
}

// knownKeys are decoded into db.ConnConfig fields or read by the CLI. Any
// other section key is forwarded to the driver as a libpq keyword.
var knownKeys = map[string]bool{
	"driver":          true,
	"host":            true,
	"port":            true,
	"user":            true,
	"password":        true,
	"database":        true,
	"sslmode":         true,
	"connect_timeout": true,
	CommitKey:         true,
}

// Decode turns a loaded section into connection settings.
// Precedence (highest to lowest): flags > env vars > section > defaults.
// Only flags that were explicitly set take part; flags may be nil.
func Decode(values map[string]string, flags *pflag.FlagSet) (db.ConnConfig, error) {
	k, section, err := overlay(values, flags)
	if err != nil {
		return db.ConnConfig{}, err
	}

	var cfg db.ConnConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return db.ConnConfig{}, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.Database == "" {
		return db.ConnConfig{}, fmt.Errorf("database name is required")
	}
	for key, v := range section {
		if knownKeys[key] {
			continue
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]string)
		}
		cfg.Params[key] = v
	}
	return cfg, nil
}

// Lookup returns key after the same overlay Decode applies, or "" when no
// layer sets it.
func Lookup(values map[string]string, flags *pflag.FlagSet, key string) (string, error) {
	k, _, err := overlay(values, flags)
	if err != nil {
		return "", err
	}
	return k.String(key), nil
}

// overlay layers defaults, the section, env vars and changed flags. It also
// returns the section with normalized keys.
func overlay(values map[string]string, flags *pflag.FlagSet) (*koanf.Koanf, map[string]string, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"driver":  DefaultDriver,
		"host":    DefaultHost,
		"port":    DefaultPort,
		"sslmode": "disable",
	}, "."), nil); err != nil {
		return nil, nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Section values. psycopg2-style files may say dbname instead of database.
	normalized := make(map[string]string, len(values))
	section := make(map[string]interface{}, len(values))
	for key, v := range values {
		key = strings.ToLower(key)
		if key == "dbname" {
			key = "database"
		}
		normalized[key] = v
		section[key] = v
	}
	if err := k.Load(confmap.Provider(section, "."), nil); err != nil {
		return nil, nil, fmt.Errorf("failed to load section: %w", err)
	}

	// 3. Environment variables: LEAGUEDASH_HOST -> host
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}
	return k, normalized, nil
}

// ConnConfig loads section from source and decodes it with Decode.
func (l *Loader) ConnConfig(source, section string, flags *pflag.FlagSet) (db.ConnConfig, error) {
	values, err := l.Load(source, section)
	if err != nil {
		return db.ConnConfig{}, err
	}
	cfg, err := Decode(values, flags)
	if err != nil {
		return db.ConnConfig{}, &Error{Source: source, Section: section, Err: err}
	}
	return cfg, nil
}
