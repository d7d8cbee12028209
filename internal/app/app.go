// Package app is the interactive dashboard: a menu of report sections, a
// parameter form and a result pane with a table and bar chart.
package app

import (
	"context"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hrutik5321/leaguedash/internal/frame"
	"github.com/hrutik5321/leaguedash/internal/report"
)

// Reports runs catalog reports. report.Runner implements it.
type Reports interface {
	LoadOptions(ctx context.Context, rep *report.Report, v report.Values) (map[string][]string, error)
	Run(ctx context.Context, rep *report.Report, input report.Values) (*frame.Frame, report.Values, error)
}

// Option configures the dashboard.
type Option func(*Model)

// WithLogger sets the logger. The terminal belongs to the UI, so the
// caller should point it at a file.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPageSize sets how many rows the result table shows at once.
func WithPageSize(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.pageSize = n
		}
	}
}

// New returns the dashboard model.
func New(ctx context.Context, reports Reports, opts ...Option) Model {
	return initialModel(ctx, reports, opts...)
}

// NewProgram wraps the dashboard in a full-screen program.
func NewProgram(ctx context.Context, reports Reports, in io.Reader, out io.Writer, opts ...Option) *tea.Program {
	return tea.NewProgram(
		New(ctx, reports, opts...),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
}
