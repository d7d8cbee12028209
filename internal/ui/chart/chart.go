// Package chart draws horizontal bar charts of a frame's numeric columns.
package chart

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hrutik5321/leaguedash/internal/frame"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	barRune     = "█"
	minBarWidth = 10
)

var (
	ErrNoLabel   = errors.New("chart label column not found")
	ErrNoNumbers = errors.New("no numeric columns to chart")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	palette    = []lipgloss.Color{"39", "208", "76", "170", "220"}
)

var titleCase = cases.Title(language.English)

// Title turns a column name such as goals_scored into "Goals Scored".
func Title(col string) string {
	return titleCase.String(strings.ReplaceAll(col, "_", " "))
}

// Render draws one chart per numeric column of f, labelled by labelCol and
// fitted to width cells.
func Render(f *frame.Frame, labelCol string, width int) (string, error) {
	lc := f.ColumnIndex(labelCol)
	if lc < 0 {
		return "", fmt.Errorf("%w: %s", ErrNoLabel, labelCol)
	}

	var series []int
	for c := range f.NumCols() {
		if c != lc && f.IsNumeric(c) {
			series = append(series, c)
		}
	}
	if len(series) == 0 {
		return "", ErrNoNumbers
	}

	labels := f.Strings(lc)
	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}

	cols := f.Columns()
	var sb strings.Builder
	for i, c := range series {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(titleStyle.Render(Title(cols[c])))
		sb.WriteString("\n\n")
		bar := lipgloss.NewStyle().Foreground(palette[i%len(palette)])
		writeSeries(&sb, f, c, labels, labelWidth, width, bar)
	}
	return sb.String(), nil
}

func writeSeries(sb *strings.Builder, f *frame.Frame, c int, labels []string, labelWidth, width int, bar lipgloss.Style) {
	values := make([]string, f.NumRows())
	valueWidth := 0
	peak := 0.0
	for r := range f.NumRows() {
		v, ok := f.Float(r, c)
		if !ok {
			values[r] = "NULL"
		} else {
			values[r] = formatNumber(v)
			peak = math.Max(peak, v)
		}
		valueWidth = max(valueWidth, len(values[r]))
	}

	barWidth := max(width-labelWidth-valueWidth-2, minBarWidth)
	for r := range f.NumRows() {
		n := 0
		if v, ok := f.Float(r, c); ok && peak > 0 && v > 0 {
			n = int(math.Round(v / peak * float64(barWidth)))
		}
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(labels[r]))
		sb.WriteString(labelStyle.Render(labels[r]) + pad + " ")
		sb.WriteString(bar.Render(strings.Repeat(barRune, n)))
		sb.WriteString(" " + values[r] + "\n")
	}
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
