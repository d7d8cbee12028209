// Package table renders frames as text: boxed tables for the terminal and
// JSON, CSV or Markdown for scripts.
package table

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hrutik5321/leaguedash/internal/frame"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Format selects an output encoding.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
)

// ParseFormat accepts table, json, csv, md and markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json, csv or md)", s)
	}
}

// FormatValue renders one cell. verb, when set, is applied to numeric
// values.
func FormatValue(v any, verb string) string {
	if v == nil {
		return "NULL"
	}
	if verb != "" {
		if f, ok := frame.ToFloat(v); ok {
			return fmt.Sprintf(verb, f)
		}
	}
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case uuid.UUID:
		return x.String()
	case pgtype.Numeric:
		if !x.Valid {
			return "NULL"
		}
		if x.NaN {
			return "NaN"
		}
		if f, ok := frame.ToFloat(x); ok {
			return fmt.Sprint(f)
		}
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.DateTime)
	}
	return fmt.Sprintf("%v", v)
}

// Cells formats every cell of rows [start, end) of f.
func Cells(f *frame.Frame, formats map[string]string, start, end int) [][]string {
	start, end = clamp(start, end, f.NumRows())
	cols := f.Columns()
	out := make([][]string, 0, end-start)
	for r := start; r < end; r++ {
		row := f.Row(r)
		cells := make([]string, len(cols))
		for c, name := range cols {
			cells[c] = FormatValue(row[c], formats[name])
		}
		out = append(out, cells)
	}
	return out
}

func clamp(start, end, n int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end < 0 || end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}

// Render draws rows [start, end) of f as a boxed table. A negative end
// means through the last row.
func Render(f *frame.Frame, formats map[string]string, start, end int) string {
	if f.NumCols() == 0 {
		return "(No columns)\n"
	}
	return newWriter(f, formats, start, end).Render() + "\n"
}

func newWriter(f *frame.Frame, formats map[string]string, start, end int) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	cols := f.Columns()
	header := make(table.Row, len(cols))
	var configs []table.ColumnConfig
	for i, name := range cols {
		header[i] = name
		if f.IsNumeric(i) {
			configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight})
		}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for _, cells := range Cells(f, formats, start, end) {
		row := make(table.Row, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		t.AppendRow(row)
	}
	return t
}

// Write encodes the whole of f to w.
func Write(w io.Writer, f *frame.Frame, formats map[string]string, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, f)
	case FormatCSV:
		_, err := fmt.Fprintln(w, newWriter(f, formats, 0, -1).RenderCSV())
		return err
	case FormatMarkdown:
		if f.NumRows() == 0 {
			_, err := fmt.Fprintln(w, "(0 rows)")
			return err
		}
		_, err := fmt.Fprintln(w, newWriter(f, formats, 0, -1).RenderMarkdown())
		return err
	default:
		if f.NumRows() == 0 {
			_, err := fmt.Fprintln(w, "(0 rows)")
			return err
		}
		if _, err := io.WriteString(w, Render(f, formats, 0, -1)); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "(%d rows)\n", f.NumRows())
		return err
	}
}

func writeJSON(w io.Writer, f *frame.Frame) error {
	cols := f.Columns()
	results := make([]map[string]any, f.NumRows())
	for r := range results {
		row := f.Row(r)
		obj := make(map[string]any, len(cols))
		for c, name := range cols {
			obj[name] = jsonValue(row[c])
		}
		results[r] = obj
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func jsonValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case pgtype.Numeric:
		if f, ok := frame.ToFloat(x); ok {
			return f
		}
		return nil
	}
	return v
}

// ApplyHorizontalScroll clips every line of s to the window starting at
// offset and width runes wide.
func ApplyHorizontalScroll(s string, offset, width int) string {
	if width <= 0 {
		return s
	}
	if offset < 0 {
		offset = 0
	}

	lines := strings.Split(s, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		runes := []rune(line)
		if offset >= len(runes) {
			continue
		}
		end := min(offset+width, len(runes))
		out[i] = string(runes[offset:end])
	}
	return strings.Join(out, "\n")
}

// Width returns the widest line of s in runes.
func Width(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, len([]rune(line)))
	}
	return w
}
