// Package config loads database connection settings from named sections of
// an INI (or YAML) file and overlays environment variables and CLI flags.
package config

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"github.com/hrutik5321/leaguedash/internal/memo"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"gopkg.in/ini.v1"
)

// Well-known source and section used by the dashboard.
const (
	DefaultSource  = "database.ini"
	DefaultSection = "postgresql"
)

// ErrSectionNotFound is wrapped by Error when the requested section is absent.
var ErrSectionNotFound = errors.New("section not found")

// Error reports a configuration source that cannot be read, parsed or
// decoded, or that lacks the requested section.
type Error struct {
	Source  string
	Section string
	Err     error
}

func (e *Error) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("config %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("config %s [%s]: %v", e.Source, e.Section, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Source supplies the raw bytes of a configuration file. koanf providers
// satisfy it.
type Source interface {
	ReadBytes() ([]byte, error)
}

// Loader reads configuration sections and memoizes them for its lifetime.
// Sections are never re-read; restart the process to pick up edits.
type Loader struct {
	open  func(id string) Source
	cache *memo.Cache[map[string]string]
}

// Option configures a Loader.
type Option func(*Loader)

// WithOpener replaces how a source identifier is turned into a Source.
func WithOpener(open func(id string) Source) Option {
	return func(l *Loader) { l.open = open }
}

// NewLoader returns a Loader reading files from disk by default.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		open:  func(id string) Source { return file.Provider(id) },
		cache: memo.New[map[string]string](),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the key/value pairs of section in source. Identical
// (source, section) pairs are served from the cache; failures are not cached.
// The returned map is shared and must not be modified.
func (l *Loader) Load(source, section string) (map[string]string, error) {
	values, _, err := l.cache.Do(source+"\x00"+section, func() (map[string]string, error) {
		return l.read(source, section)
	})
	return values, err
}

func (l *Loader) read(source, section string) (map[string]string, error) {
	raw, err := l.open(source).ReadBytes()
	if err != nil {
		return nil, &Error{Source: source, Section: section, Err: err}
	}

	var values map[string]string
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		values, err = yamlSection(raw, section)
	default:
		values, err = iniSection(raw, section)
	}
	if err != nil {
		return nil, &Error{Source: source, Section: section, Err: err}
	}
	return values, nil
}

func iniSection(raw []byte, section string) (map[string]string, error) {
	f, err := ini.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("parse ini: %w", err)
	}
	if !f.HasSection(section) {
		return nil, ErrSectionNotFound
	}
	s, err := f.GetSection(section)
	if err != nil {
		return nil, ErrSectionNotFound
	}
	// Keys under [DEFAULT] apply to every section unless it sets them.
	values := f.Section(ini.DefaultSection).KeysHash()
	maps.Copy(values, s.KeysHash())
	return values, nil
}

// yamlSection treats every top-level mapping as a section.
func yamlSection(raw []byte, section string) (map[string]string, error) {
	doc, err := yaml.Parser().Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	node, ok := doc[section]
	if !ok {
		return nil, ErrSectionNotFound
	}
	m, ok := node.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("section is not a mapping")
	}

	values := make(map[string]string, len(m))
	for k, v := range m {
		if v == nil {
			values[k] = ""
			continue
		}
		values[k] = fmt.Sprint(v)
	}
	return values, nil
}
