package app

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hrutik5321/leaguedash/internal/report"
	"github.com/hrutik5321/leaguedash/internal/ui/chart"
	"github.com/hrutik5321/leaguedash/internal/ui/table"
)

const defaultChartWidth = 80

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sidebarStyle  = lipgloss.NewStyle().PaddingRight(4).BorderStyle(lipgloss.NormalBorder()).BorderRight(true)
	reportsStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
)

// ----- Views -----

func (m Model) View() string {
	var body string
	switch m.mode {
	case modeMenu:
		body = m.viewMenu()
	case modeParams:
		body = m.viewParams()
	case modeResult:
		body = m.viewResult()
	default:
		body = "Unknown state\n"
	}

	s := titleStyle.Render("League Dashboard") + "\n\n" + body
	if m.loading {
		s += "\n" + m.spinner.View() + " " + m.status + "\n"
	} else {
		s += "\n" + m.status + "\n"
	}
	return s
}

func cursorLine(selected bool, text string) string {
	if selected {
		return cursorStyle.Render("> " + text)
	}
	return "  " + text
}

func (m Model) viewMenu() string {
	var side strings.Builder
	side.WriteString("Menu\n\n")
	for i, s := range m.sections {
		side.WriteString(cursorLine(i == m.sectionCursor && !m.inReports, string(s)) + "\n")
	}

	var list strings.Builder
	list.WriteString(string(m.sections[m.sectionCursor]) + "\n\n")
	for i, r := range m.sectionReports() {
		list.WriteString(cursorLine(i == m.reportCursor && m.inReports, r.Title) + "\n")
	}

	help := dimStyle.Render("↑/↓ to move, →/tab to switch lists, Enter to open, q to quit.")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(side.String()),
		reportsStyle.Render(list.String()),
	) + "\n\n" + help + "\n"
}

func (m Model) viewParams() string {
	var sb strings.Builder
	sb.WriteString(m.current.Title + "\n\n")

	for i, p := range m.current.Params {
		focused := i == m.paramCursor
		sb.WriteString(cursorLine(focused, p.Label) + "\n")
		sb.WriteString("    " + m.viewParamValue(p, focused) + "\n\n")
	}

	sb.WriteString(dimStyle.Render("↑/↓ to move, ←/→ to change, space to toggle, 'a' for all, Enter to run, esc to go back.") + "\n")
	return sb.String()
}

func (m Model) viewParamValue(p report.Param, focused bool) string {
	switch p.Kind {
	case report.Choice:
		v := m.values.Get(p.Name)
		if v == "" {
			return dimStyle.Render("(no options)")
		}
		return "< " + v + " >"

	case report.Multi:
		opts := m.options[p.Name]
		if len(opts) == 0 {
			return dimStyle.Render("(no options)")
		}
		selected := m.values.List(p.Name)
		parts := make([]string, len(opts))
		for i, o := range opts {
			mark := "[ ]"
			if slices.Contains(selected, o) {
				mark = selectedStyle.Render("[x]")
			}
			item := mark + " " + o
			if focused && i == m.optionCursor[p.Name] {
				item = cursorStyle.Render("›") + item
			}
			parts[i] = item
		}
		s := strings.Join(parts, "  ")
		if len(selected) == 0 {
			s += "  " + dimStyle.Render("(all)")
		}
		return s

	case report.Number:
		in := m.numberInputs[p.Name]
		return fmt.Sprintf("%s  %s", in.View(), dimStyle.Render(fmt.Sprintf("(%d–%d)", p.Min, p.Max)))
	}
	return ""
}

func (m Model) viewResult() string {
	if m.showChart {
		width := m.width
		if width <= 0 {
			width = defaultChartWidth
		}
		s := m.current.Title + "\n\n"
		out, err := chart.Render(m.result, m.current.ChartBy, width)
		if err != nil {
			return s + "Cannot draw chart: " + err.Error() + "\n"
		}
		return s + out
	}

	// apply horizontal scroll based on terminal width and offset
	return table.ApplyHorizontalScroll(m.resultBody(), m.horizOffset, m.width)
}

// resultBody is the table page before horizontal scrolling.
func (m Model) resultBody() string {
	s := m.current.Title + "\n\n"
	if m.result.NumCols() == 0 {
		s += "(No rows or columns found)\n"
	} else {
		s += table.Render(m.result, m.current.Formats, m.offset, m.offset+m.pageSize)
	}
	return s + "\n" + m.pageInfo() + "\n"
}

// maxHorizOffset is the furthest the table can scroll right while the last
// column stays on screen. Without a known width there is no limit.
func (m Model) maxHorizOffset() int {
	if m.width <= 0 || m.showChart {
		return math.MaxInt
	}
	return max(0, table.Width(m.resultBody())-m.width)
}
