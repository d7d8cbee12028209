// Package report defines the dashboard's reports: their menu placement,
// their parameters and the parameterized statements they run.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hrutik5321/leaguedash/internal/db"
)

// Section groups reports in the sidebar.
type Section string

const (
	Home     Section = "Home"
	Teams    Section = "Teams"
	Players  Section = "Players"
	Managers Section = "Managers"
	Stadiums Section = "Stadiums"
	Referees Section = "Referees"
)

// Sections lists the sidebar in display order.
func Sections() []Section {
	return []Section{Home, Teams, Players, Managers, Stadiums, Referees}
}

// ParamKind is the input widget a parameter needs.
type ParamKind int

const (
	// Choice picks exactly one option.
	Choice ParamKind = iota
	// Multi picks any subset of options; an empty pick means all of them.
	Multi
	// Number is an integer within [Min, Max].
	Number
)

func (k ParamKind) String() string {
	switch k {
	case Choice:
		return "choice"
	case Multi:
		return "multi"
	case Number:
		return "number"
	default:
		return "unknown"
	}
}

// Param describes one report input.
type Param struct {
	Name  string
	Label string
	Kind  ParamKind

	// Options are fixed choices. When OptionsQuery is set, the options are
	// the first column of its result instead.
	Options      []string
	OptionsQuery func(Values) db.Statement
	// DependsOn names parameters that OptionsQuery reads.
	DependsOn []string

	Default  string
	Min, Max int
}

// Dynamic reports whether the options come from the database.
func (p Param) Dynamic() bool { return p.OptionsQuery != nil }

// Report is one entry of the menu.
type Report struct {
	ID      string
	Section Section
	Title   string
	Params  []Param

	// Build produces the statement for resolved parameter values.
	Build func(Values) (db.Statement, error)

	// ChartBy names the label column of the bar chart; empty means the
	// report has no chart.
	ChartBy string
	// Formats maps column names to fmt verbs, e.g. "%.2f".
	Formats map[string]string
}

// Param returns the named parameter.
func (r *Report) Param(name string) (Param, bool) {
	for _, p := range r.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Values holds parameter input by name. Single-valued parameters use the
// first element.
type Values map[string][]string

// Get returns the first value of name, or "".
func (v Values) Get(name string) string {
	if vs := v[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// List returns the non-empty values of name.
func (v Values) List(name string) []string {
	var out []string
	for _, s := range v[name] {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Int parses the first value of name.
func (v Values) Int(name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v.Get(name)))
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %q", name, v.Get(name))
	}
	return n, nil
}

// Set replaces the values of name.
func (v Values) Set(name string, values ...string) {
	v[name] = values
}

// Clone returns a deep copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// ParseAssignments turns name=value pairs into Values. Repeated names and
// comma-separated values accumulate.
func ParseAssignments(pairs []string) (Values, error) {
	v := Values{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid parameter %q (want name=value)", pair)
		}
		name = strings.TrimSpace(name)
		for _, part := range strings.Split(value, ",") {
			v[name] = append(v[name], strings.TrimSpace(part))
		}
	}
	return v, nil
}

// placeholders accumulates bound arguments and hands out $n markers.
type placeholders struct {
	args []any
}

func (p *placeholders) add(v any) string {
	p.args = append(p.args, v)
	return "$" + strconv.Itoa(len(p.args))
}

// in returns "$i, $j, ..." for every element of vs.
func (p *placeholders) in(vs []string) string {
	marks := make([]string, len(vs))
	for i, v := range vs {
		marks[i] = p.add(v)
	}
	return strings.Join(marks, ", ")
}

func (p *placeholders) statement(sql string) db.Statement {
	return db.Statement{SQL: sql, Args: p.args}
}

// static wraps a fixed statement as a builder.
func static(sql string) func(Values) (db.Statement, error) {
	return func(Values) (db.Statement, error) {
		return db.Statement{SQL: sql}, nil
	}
}
