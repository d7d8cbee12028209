package report

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hrutik5321/leaguedash/internal/db"
	"github.com/hrutik5321/leaguedash/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExec struct {
	mu    sync.Mutex
	lists map[string][]string
	calls []db.Statement
}

func (s *stubExec) Execute(_ context.Context, stmt db.Statement) (*frame.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, stmt)
	opts, ok := s.lists[stmt.SQL+fmt.Sprint(stmt.Args...)]
	if !ok {
		opts, ok = s.lists[stmt.SQL]
	}
	if !ok {
		return nil, errors.New("unexpected statement: " + stmt.SQL)
	}
	rows := make([][]any, len(opts))
	for i, o := range opts {
		rows[i] = []any{o}
	}
	return frame.New([]string{"name"}, rows)
}

const (
	positionsSQL = "SELECT pos FROM Positions WHERE pos_type = $1;"
	teamsSQL     = "SELECT name FROM Teams"
)

func testReport() *Report {
	return &Report{
		ID: "test/report",
		Params: []Param{
			{Name: "type", Kind: Choice, Options: []string{"Forward", "Defender"}},
			{
				Name:      "positions",
				Kind:      Multi,
				DependsOn: []string{"type"},
				OptionsQuery: func(v Values) db.Statement {
					return db.Statement{SQL: positionsSQL, Args: []any{v.Get("type")}}
				},
			},
			{
				Name: "teams",
				Kind: Multi,
				OptionsQuery: func(Values) db.Statement {
					return db.Statement{SQL: teamsSQL}
				},
			},
			{Name: "age", Kind: Number, Default: "30", Min: 15, Max: 45},
		},
		Build: func(v Values) (db.Statement, error) {
			var p placeholders
			return p.statement("SELECT 1 WHERE x IN (" + p.in(v.List("positions")) + ")"), nil
		},
	}
}

func newStub() *stubExec {
	return &stubExec{lists: map[string][]string{
		positionsSQL + "Forward":       {"ST", "CF"},
		positionsSQL + "Defender":      {"CB", "LB", "RB"},
		teamsSQL:                       {"Arsenal", "Chelsea"},
		"SELECT 1 WHERE x IN ($1, $2)": {"1"},
	}}
}

func TestRunner_Resolve(t *testing.T) {
	tests := []struct {
		name  string
		input Values
		want  Values
	}{
		{
			name:  "defaults",
			input: Values{},
			want: Values{
				"type":      {"Forward"},
				"positions": {"ST", "CF"},
				"teams":     {"Arsenal", "Chelsea"},
				"age":       {"30"},
			},
		},
		{
			name:  "dependent options follow the chosen value",
			input: Values{"type": {"Defender"}, "positions": {"LB"}, "age": {"18"}},
			want: Values{
				"type":      {"Defender"},
				"positions": {"LB"},
				"teams":     {"Arsenal", "Chelsea"},
				"age":       {"18"},
			},
		},
		{
			name:  "blank multi values mean all",
			input: Values{"teams": {""}},
			want: Values{
				"type":      {"Forward"},
				"positions": {"ST", "CF"},
				"teams":     {"Arsenal", "Chelsea"},
				"age":       {"30"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Runner{Exec: newStub()}
			got, err := r.Resolve(context.Background(), testReport(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunner_ResolveRejects(t *testing.T) {
	tests := []struct {
		name  string
		input Values
		param string
	}{
		{"unknown choice", Values{"type": {"Goalkeeper"}}, "type"},
		{"option of another type", Values{"type": {"Forward"}, "positions": {"CB"}}, "positions"},
		{"unknown team", Values{"teams": {"Arsenal", "Real Madrid"}}, "teams"},
		{"not a number", Values{"age": {"thirty"}}, "age"},
		{"below minimum", Values{"age": {"14"}}, "age"},
		{"above maximum", Values{"age": {"46"}}, "age"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Runner{Exec: newStub()}
			_, err := r.Resolve(context.Background(), testReport(), tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParam)

			var pe *ParamError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.param, pe.Param)
		})
	}
}

func TestRunner_ResolveBounds(t *testing.T) {
	r := Runner{Exec: newStub()}
	for _, age := range []string{"15", "45"} {
		got, err := r.Resolve(context.Background(), testReport(), Values{"age": {age}})
		require.NoError(t, err)
		assert.Equal(t, []string{age}, got["age"])
	}
}

func TestRunner_ResolveNoOptions(t *testing.T) {
	rep := &Report{Params: []Param{{
		Name: "referee",
		Kind: Choice,
		OptionsQuery: func(Values) db.Statement {
			return db.Statement{SQL: "empty"}
		},
	}}}
	r := Runner{Exec: &stubExec{lists: map[string][]string{"empty": nil}}}

	_, err := r.Resolve(context.Background(), rep, Values{})
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestRunner_ResolvePropagatesQueryErrors(t *testing.T) {
	r := Runner{Exec: &stubExec{lists: map[string][]string{}}}
	_, err := r.Resolve(context.Background(), testReport(), Values{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidParam)
}

func TestRunner_LoadOptions(t *testing.T) {
	stub := newStub()
	r := Runner{Exec: stub}

	opts, err := r.LoadOptions(context.Background(), testReport(), Values{"type": {"Defender"}})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"type":      {"Forward", "Defender"},
		"positions": {"CB", "LB", "RB"},
		"teams":     {"Arsenal", "Chelsea"},
	}, opts)

	// An invalid pick does not fail loading; dependents see the default.
	opts, err = r.LoadOptions(context.Background(), testReport(), Values{"type": {"Keeper"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ST", "CF"}, opts["positions"])
}

func TestRunner_Run(t *testing.T) {
	stub := newStub()
	r := Runner{Exec: stub}

	f, resolved, err := r.Run(context.Background(), testReport(), Values{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.NumRows())
	assert.Equal(t, []string{"ST", "CF"}, resolved["positions"])

	last := stub.calls[len(stub.calls)-1]
	assert.Equal(t, "SELECT 1 WHERE x IN ($1, $2)", last.SQL)
	assert.Equal(t, []any{"ST", "CF"}, last.Args)
}

func TestRunner_RunDoesNotExecuteInvalidInput(t *testing.T) {
	stub := newStub()
	r := Runner{Exec: stub}

	_, _, err := r.Run(context.Background(), testReport(), Values{"age": {"99"}})
	require.ErrorIs(t, err, ErrInvalidParam)
	for _, c := range stub.calls {
		assert.NotContains(t, c.SQL, "SELECT 1")
	}
}
