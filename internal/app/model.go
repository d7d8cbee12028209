package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hrutik5321/leaguedash/internal/frame"
	"github.com/hrutik5321/leaguedash/internal/report"
)

// ----- Modes -----

type mode int

const (
	modeMenu mode = iota
	modeParams
	modeResult
)

// ----- Messages from async report commands -----

type optionsMsg struct {
	rep     *report.Report
	options map[string][]string
	err     error
}

type resultMsg struct {
	rep   *report.Report
	frame *frame.Frame
	err   error
}

// ----- Model -----

type Model struct {
	ctx     context.Context
	reports Reports
	logger  *slog.Logger

	// state
	mode    mode
	status  string
	loading bool
	spinner spinner.Model

	// menu
	sections      []report.Section
	sectionCursor int
	reportCursor  int
	inReports     bool

	// parameter form
	current      *report.Report
	options      map[string][]string
	values       report.Values
	paramCursor  int
	optionCursor map[string]int
	numberInputs map[string]textinput.Model

	// result
	result    *frame.Frame
	pageSize  int
	offset    int
	showChart bool

	// terminal / scroll
	width       int
	horizOffset int
}

// ----- Initial model -----

func initialModel(ctx context.Context, reports Reports, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:      ctx,
		reports:  reports,
		logger:   slog.New(slog.DiscardHandler),
		mode:     modeMenu,
		status:   "Use ↑/↓ to pick a section and Enter to see its reports.",
		spinner:  sp,
		sections: report.Sections(),
		pageSize: 10,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// ----- Commands (async report operations) -----

func loadOptionsCmd(ctx context.Context, reports Reports, rep *report.Report, v report.Values) tea.Cmd {
	return func() tea.Msg {
		opts, err := reports.LoadOptions(ctx, rep, v)
		return optionsMsg{rep: rep, options: opts, err: err}
	}
}

func runReportCmd(ctx context.Context, reports Reports, rep *report.Report, v report.Values) tea.Cmd {
	return func() tea.Msg {
		f, _, err := reports.Run(ctx, rep, v)
		return resultMsg{rep: rep, frame: f, err: err}
	}
}

func (m *Model) startLoading(cmd tea.Cmd, status string) tea.Cmd {
	m.loading = true
	m.status = status
	return tea.Batch(cmd, m.spinner.Tick)
}

// ----- Update -----

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case optionsMsg:
		if msg.rep != m.current {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.logger.Error("loading options failed", slog.String("report", msg.rep.ID), slog.Any("error", msg.err))
			m.status = describeError(msg.err)
			return m, nil
		}
		m.options = msg.options
		m.reconcileValues()
		m.mode = modeParams
		m.status = "Choose parameters and press Enter to run."
		return m, m.focusParam()

	case resultMsg:
		if msg.rep != m.current {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.logger.Error("report failed", slog.String("report", msg.rep.ID), slog.Any("error", msg.err))
			m.status = describeError(msg.err)
			return m, nil
		}
		m.logger.Info("report loaded", slog.String("report", msg.rep.ID), slog.Int("rows", msg.frame.NumRows()))
		m.result = msg.frame
		m.offset = 0
		m.horizOffset = 0
		m.showChart = false
		m.mode = modeResult
		m.status = m.resultHelp()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// ----- Key handling dispatcher -----

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeMenu:
		return m.updateMenuKey(msg)
	case modeParams:
		return m.updateParamsKey(msg)
	case modeResult:
		return m.updateResultKey(msg)
	default:
		return m, nil
	}
}

// --- menu mode ---

func (m Model) sectionReports() []*report.Report {
	return report.In(m.sections[m.sectionCursor])
}

func (m Model) updateMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		if m.inReports && msg.String() == "esc" {
			m.inReports = false
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.inReports {
			if m.reportCursor > 0 {
				m.reportCursor--
			}
		} else if m.sectionCursor > 0 {
			m.sectionCursor--
			m.reportCursor = 0
		}
	case "down", "j":
		if m.inReports {
			if m.reportCursor < len(m.sectionReports())-1 {
				m.reportCursor++
			}
		} else if m.sectionCursor < len(m.sections)-1 {
			m.sectionCursor++
			m.reportCursor = 0
		}
	case "tab", "right", "l":
		if len(m.sectionReports()) > 0 {
			m.inReports = true
		}
	case "shift+tab", "left", "h":
		m.inReports = false
	case "enter":
		reps := m.sectionReports()
		if len(reps) == 0 {
			return m, nil
		}
		if !m.inReports {
			m.inReports = true
			return m, nil
		}
		return m.openReport(reps[m.reportCursor])
	}
	return m, nil
}

func (m Model) openReport(rep *report.Report) (tea.Model, tea.Cmd) {
	m.current = rep
	m.options = map[string][]string{}
	m.values = report.Values{}
	m.paramCursor = 0
	m.optionCursor = map[string]int{}
	m.numberInputs = map[string]textinput.Model{}
	m.result = nil

	for _, p := range rep.Params {
		if p.Kind != report.Number {
			continue
		}
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 4
		in.SetValue(p.Default)
		m.numberInputs[p.Name] = in
	}

	m.logger.Debug("opening report", slog.String("report", rep.ID))
	if len(rep.Params) == 0 {
		return m, m.startLoading(runReportCmd(m.ctx, m.reports, rep, m.values), "Running "+rep.Title+"...")
	}
	return m, m.startLoading(loadOptionsCmd(m.ctx, m.reports, rep, m.values), "Loading options...")
}

// --- params mode ---

func (m Model) updateParamsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	params := m.current.Params
	p := params[m.paramCursor]
	key := msg.String()

	switch key {
	case "esc":
		return m.backToMenu()
	case "up", "shift+tab":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
		return m, m.focusParam()
	case "down", "tab":
		if m.paramCursor < len(params)-1 {
			m.paramCursor++
		}
		return m, m.focusParam()
	case "enter":
		for name, in := range m.numberInputs {
			m.values.Set(name, in.Value())
		}
		return m, m.startLoading(runReportCmd(m.ctx, m.reports, m.current, m.values.Clone()), "Running "+m.current.Title+"...")
	}

	if p.Kind == report.Number {
		in := m.numberInputs[p.Name]
		var cmd tea.Cmd
		in, cmd = in.Update(msg)
		m.numberInputs[p.Name] = in
		return m, cmd
	}

	opts := m.options[p.Name]
	switch key {
	case "b", "q":
		return m.backToMenu()
	case "left", "h", "right", "l":
		if len(opts) == 0 {
			return m, nil
		}
		step := 1
		if key == "left" || key == "h" {
			step = -1
		}
		if p.Kind == report.Choice {
			i := slices.Index(opts, m.values.Get(p.Name))
			i = (i + step + len(opts)) % len(opts)
			m.values.Set(p.Name, opts[i])
			return m, m.refreshDependents(p.Name)
		}
		i := m.optionCursor[p.Name] + step
		m.optionCursor[p.Name] = max(0, min(i, len(opts)-1))
	case " ", "x":
		if p.Kind != report.Multi || len(opts) == 0 {
			return m, nil
		}
		m.toggle(p.Name, opts[m.optionCursor[p.Name]])
		return m, m.refreshDependents(p.Name)
	case "a":
		if p.Kind == report.Multi {
			m.values.Set(p.Name)
			return m, m.refreshDependents(p.Name)
		}
	}
	return m, nil
}

func (m Model) backToMenu() (tea.Model, tea.Cmd) {
	m.mode = modeMenu
	m.status = "Use ↑/↓ and Enter to pick another report."
	return m, nil
}

func (m *Model) toggle(name, opt string) {
	selected := m.values.List(name)
	if i := slices.Index(selected, opt); i >= 0 {
		selected = slices.Delete(selected, i, i+1)
	} else {
		selected = append(selected, opt)
	}
	m.values.Set(name, selected...)
}

// refreshDependents reloads options when another parameter depends on name.
func (m *Model) refreshDependents(name string) tea.Cmd {
	for _, p := range m.current.Params {
		if slices.Contains(p.DependsOn, name) {
			return m.startLoading(loadOptionsCmd(m.ctx, m.reports, m.current, m.values.Clone()), "Loading options...")
		}
	}
	return nil
}

// reconcileValues drops selections that are no longer offered and picks a
// default for unset choices.
func (m *Model) reconcileValues() {
	for _, p := range m.current.Params {
		opts := m.options[p.Name]
		switch p.Kind {
		case report.Choice:
			if slices.Contains(opts, m.values.Get(p.Name)) {
				continue
			}
			switch {
			case slices.Contains(opts, p.Default):
				m.values.Set(p.Name, p.Default)
			case len(opts) > 0:
				m.values.Set(p.Name, opts[0])
			default:
				m.values.Set(p.Name)
			}
		case report.Multi:
			var kept []string
			for _, v := range m.values.List(p.Name) {
				if slices.Contains(opts, v) {
					kept = append(kept, v)
				}
			}
			m.values.Set(p.Name, kept...)
			if m.optionCursor[p.Name] >= len(opts) {
				m.optionCursor[p.Name] = 0
			}
		}
	}
}

// focusParam focuses the number input under the cursor, if any.
func (m *Model) focusParam() tea.Cmd {
	var cmd tea.Cmd
	for i, p := range m.current.Params {
		in, ok := m.numberInputs[p.Name]
		if !ok {
			continue
		}
		if i == m.paramCursor {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
		m.numberInputs[p.Name] = in
	}
	return cmd
}

// --- result mode ---

func (m Model) resultHelp() string {
	help := "Press 'b' to go back, n/p for next/prev page, ←/→ or h/l to scroll horizontally"
	if m.current.ChartBy != "" {
		help += ", 'c' for the chart"
	}
	return help + "."
}

func (m Model) updateResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "b", "esc":
		if len(m.current.Params) == 0 {
			return m.backToMenu()
		}
		m.mode = modeParams
		m.status = "Choose parameters and press Enter to run."
		return m, m.focusParam()

	case "c":
		if m.current.ChartBy == "" {
			m.status = "This report has no chart."
			return m, nil
		}
		m.showChart = !m.showChart
		m.horizOffset = 0

	// pagination
	case "n":
		if m.offset+m.pageSize >= m.result.NumRows() {
			m.status = "Already at last page."
			return m, nil
		}
		m.offset += m.pageSize
		m.status = m.resultHelp()
	case "p":
		if m.offset == 0 {
			m.status = "Already at first page."
			return m, nil
		}
		m.offset = max(0, m.offset-m.pageSize)
		m.status = m.resultHelp()

	// fast horizontal scroll
	case "left", "h":
		m.horizOffset = max(0, m.horizOffset-4)
	case "right", "l":
		m.horizOffset = min(m.horizOffset+4, m.maxHorizOffset())
	case "shift+left":
		m.horizOffset = max(0, m.horizOffset-16)
	case "shift+right":
		m.horizOffset = min(m.horizOffset+16, m.maxHorizOffset())
	}

	return m, nil
}

func (m Model) pageInfo() string {
	total := m.result.NumRows()
	if total == 0 {
		return "(No rows)"
	}
	end := min(m.offset+m.pageSize, total)
	pages := (total + m.pageSize - 1) / m.pageSize
	return fmt.Sprintf("Rows %d–%d of %d (Page %d/%d, page size %d)",
		m.offset+1, end, total, m.offset/m.pageSize+1, pages, m.pageSize)
}
