package report

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/hrutik5321/leaguedash/internal/db"
	"github.com/hrutik5321/leaguedash/internal/frame"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidParam is wrapped by ParamError.
var ErrInvalidParam = errors.New("invalid parameter")

// ParamError rejects a parameter value.
type ParamError struct {
	Param  string
	Value  string
	Reason string
}

func (e *ParamError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("parameter %s: %s", e.Param, e.Reason)
	}
	return fmt.Sprintf("parameter %s=%q: %s", e.Param, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParam }

// Executor runs a statement and returns its result.
type Executor interface {
	Execute(ctx context.Context, stmt db.Statement) (*frame.Frame, error)
}

// Runner resolves report parameters and runs reports.
type Runner struct {
	Exec Executor
}

// Options returns the selectable values of p given the values it depends on.
func (r Runner) Options(ctx context.Context, p Param, v Values) ([]string, error) {
	if !p.Dynamic() {
		return p.Options, nil
	}
	f, err := r.Exec.Execute(ctx, p.OptionsQuery(v))
	if err != nil {
		return nil, err
	}
	if f.NumCols() == 0 {
		return nil, nil
	}
	return f.Strings(0), nil
}

// LoadOptions returns the options of every Choice and Multi parameter of
// rep. Parameters without dependencies are fetched concurrently; dependent
// ones follow in declaration order using already resolved values.
func (r Runner) LoadOptions(ctx context.Context, rep *Report, v Values) (map[string][]string, error) {
	out := make(map[string][]string, len(rep.Params))
	independent := make([][]string, len(rep.Params))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range rep.Params {
		if p.Kind == Number || len(p.DependsOn) > 0 {
			continue
		}
		g.Go(func() error {
			opts, err := r.Options(gctx, p, v)
			if err != nil {
				return err
			}
			independent[i] = opts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resolved := v.Clone()
	for i, p := range rep.Params {
		if p.Kind == Number {
			continue
		}
		if len(p.DependsOn) == 0 {
			out[p.Name] = independent[i]
		} else {
			opts, err := r.Options(ctx, p, resolved)
			if err != nil {
				return nil, err
			}
			out[p.Name] = opts
		}
		// Invalid input is reported by Resolve; dependents see the
		// default instead.
		vals, err := resolveParam(p, out[p.Name], v)
		if err != nil {
			vals, err = resolveParam(p, out[p.Name], Values{})
		}
		if err != nil {
			delete(resolved, p.Name)
			continue
		}
		resolved[p.Name] = vals
	}
	return out, nil
}

// Resolve validates input against rep's parameters and fills in defaults:
// a Choice falls back to Default or its first option, an empty Multi
// selects every option, a Number falls back to Default.
func (r Runner) Resolve(ctx context.Context, rep *Report, input Values) (Values, error) {
	resolved := Values{}
	for _, p := range rep.Params {
		var opts []string
		if p.Kind != Number {
			var err error
			opts, err = r.Options(ctx, p, resolved)
			if err != nil {
				return nil, err
			}
		}
		vals, err := resolveParam(p, opts, input)
		if err != nil {
			return nil, err
		}
		resolved[p.Name] = vals
	}
	return resolved, nil
}

func resolveParam(p Param, opts []string, input Values) ([]string, error) {
	switch p.Kind {
	case Choice:
		val := input.Get(p.Name)
		if val == "" {
			val = p.Default
		}
		if val == "" && len(opts) > 0 {
			val = opts[0]
		}
		if val == "" {
			return nil, &ParamError{Param: p.Name, Reason: "no options available"}
		}
		if !slices.Contains(opts, val) {
			return nil, &ParamError{Param: p.Name, Value: val, Reason: "not one of the available options"}
		}
		return []string{val}, nil

	case Multi:
		vals := input.List(p.Name)
		if len(vals) == 0 {
			if len(opts) == 0 {
				return nil, &ParamError{Param: p.Name, Reason: "no options available"}
			}
			return append([]string(nil), opts...), nil
		}
		for _, val := range vals {
			if !slices.Contains(opts, val) {
				return nil, &ParamError{Param: p.Name, Value: val, Reason: "not one of the available options"}
			}
		}
		return vals, nil

	case Number:
		raw := input.Get(p.Name)
		if raw == "" {
			raw = p.Default
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &ParamError{Param: p.Name, Value: raw, Reason: "not a whole number"}
		}
		if n < p.Min || n > p.Max {
			return nil, &ParamError{Param: p.Name, Value: raw, Reason: fmt.Sprintf("must be between %d and %d", p.Min, p.Max)}
		}
		return []string{strconv.Itoa(n)}, nil

	default:
		return nil, &ParamError{Param: p.Name, Reason: "unknown parameter kind " + p.Kind.String()}
	}
}

// Run resolves input and executes rep. It returns the resolved values along
// with the result.
func (r Runner) Run(ctx context.Context, rep *Report, input Values) (*frame.Frame, Values, error) {
	resolved, err := r.Resolve(ctx, rep, input)
	if err != nil {
		return nil, nil, err
	}
	stmt, err := rep.Build(resolved)
	if err != nil {
		return nil, nil, err
	}
	f, err := r.Exec.Execute(ctx, stmt)
	if err != nil {
		return nil, nil, err
	}
	return f, resolved, nil
}
