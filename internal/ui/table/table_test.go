package table

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hrutik5321/leaguedash/internal/frame"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scorers(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(
		[]string{"player", "team", "pct"},
		[][]any{
			{"Salah", "Liverpool", 12.3456},
			{"Son", "Tottenham", nil},
			{"Kane", "Tottenham, London", 8.0},
		},
	)
	require.NoError(t, err)
	return f
}

func TestFormatValue(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	var num pgtype.Numeric
	require.NoError(t, num.Scan("12.5"))

	tests := []struct {
		name string
		v    any
		verb string
		want string
	}{
		{"nil", nil, "", "NULL"},
		{"nil with verb", nil, "%.2f", "NULL"},
		{"string", "Arsenal", "", "Arsenal"},
		{"bytes", []byte("Chelsea"), "", "Chelsea"},
		{"int", int64(23), "", "23"},
		{"verb on float", 33.33333, "%.2f", "33.33"},
		{"verb on int", int64(5), "%.2f", "5.00"},
		{"verb on numeric text", "7.125", "%.2f", "7.12"},
		{"verb ignored on text", "Arsenal", "%.2f", "Arsenal"},
		{"uuid", id, "", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
		{"numeric", num, "", "12.5"},
		{"numeric with verb", num, "%.2f", "12.50"},
		{"invalid numeric", pgtype.Numeric{}, "", "NULL"},
		{"date", time.Date(2021, 8, 13, 0, 0, 0, 0, time.UTC), "", "2021-08-13"},
		{"timestamp", time.Date(2021, 8, 13, 20, 0, 0, 0, time.UTC), "", "2021-08-13 20:00:00"},
		{"bool", true, "", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.v, tt.verb))
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":         FormatTable,
		"table":    FormatTable,
		"JSON":     FormatJSON,
		"csv":      FormatCSV,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestCells_Page(t *testing.T) {
	f := scorers(t)
	formats := map[string]string{"pct": "%.2f"}

	assert.Equal(t, [][]string{{"Son", "Tottenham", "NULL"}}, Cells(f, formats, 1, 2))
	assert.Len(t, Cells(f, formats, 0, -1), 3)
	assert.Len(t, Cells(f, formats, 2, 99), 1)
	assert.Empty(t, Cells(f, formats, 5, 2))
}

func TestRender(t *testing.T) {
	out := Render(scorers(t), map[string]string{"pct": "%.2f"}, 0, 2)

	assert.Contains(t, out, "player")
	assert.Contains(t, out, "Salah")
	assert.Contains(t, out, "12.35")
	assert.NotContains(t, out, "Kane")
	assert.Contains(t, out, "┌")

	empty, err := frame.New(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "(No columns)\n", Render(empty, nil, 0, -1))
}

func TestWrite(t *testing.T) {
	f := scorers(t)
	formats := map[string]string{"pct": "%.2f"}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, f, formats, FormatTable))
		assert.Contains(t, buf.String(), "Kane")
		assert.True(t, strings.HasSuffix(buf.String(), "(3 rows)\n"))
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, f, formats, FormatJSON))
		var got []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 3)
		assert.Equal(t, "Salah", got[0]["player"])
		assert.InDelta(t, 12.3456, got[0]["pct"], 1e-9)
		assert.Nil(t, got[1]["pct"])
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, f, formats, FormatCSV))
		out := buf.String()
		assert.Contains(t, out, "player,team,pct")
		assert.Contains(t, out, `"Tottenham, London"`)
		assert.Contains(t, out, "Salah,Liverpool,12.35")
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, f, formats, FormatMarkdown))
		assert.Contains(t, buf.String(), "| Salah | Liverpool |")
	})

	t.Run("no rows", func(t *testing.T) {
		none, err := frame.New([]string{"player"}, nil)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, none, nil, FormatTable))
		assert.Equal(t, "(0 rows)\n", buf.String())
	})
}

func TestApplyHorizontalScroll(t *testing.T) {
	s := "abcdef\nxy\n┌──┐"

	assert.Equal(t, s, ApplyHorizontalScroll(s, 0, 0))
	assert.Equal(t, "bcd\ny\n──┐", ApplyHorizontalScroll(s, 1, 3))
	assert.Equal(t, "ef\n\n", ApplyHorizontalScroll(s, 4, 3))
	assert.Equal(t, "ab\nxy\n┌─", ApplyHorizontalScroll(s, -2, 2))
	assert.Equal(t, 6, Width(s))
}
