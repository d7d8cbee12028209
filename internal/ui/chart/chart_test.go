package chart

import (
	"strings"
	"testing"

	"github.com/hrutik5321/leaguedash/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goals(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(
		[]string{"team", "goals_scored", "goals_conceded"},
		[][]any{
			{"Manchester City", int64(99), int64(26)},
			{"Liverpool", int64(94), nil},
			{"Norwich", int64(23), int64(84)},
		},
	)
	require.NoError(t, err)
	return f
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Goals Scored", Title("goals_scored"))
	assert.Equal(t, "Cleansheetpercentage", Title("cleansheetpercentage"))
}

func barLen(line string) int {
	return strings.Count(line, barRune)
}

func TestRender(t *testing.T) {
	out, err := Render(goals(t), "team", 60)
	require.NoError(t, err)

	assert.Contains(t, out, "Goals Scored")
	assert.Contains(t, out, "Goals Conceded")

	lines := strings.Split(out, "\n")
	var city, norwich, liverpoolConceded string
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "Manchester City") && city == "":
			city = l
		case strings.HasPrefix(l, "Norwich") && norwich == "":
			norwich = l
		case strings.HasPrefix(l, "Liverpool") && strings.HasSuffix(l, "NULL"):
			liverpoolConceded = l
		}
	}

	require.NotEmpty(t, city)
	require.NotEmpty(t, norwich)
	assert.True(t, strings.HasSuffix(city, " 99"))
	assert.Greater(t, barLen(city), barLen(norwich))
	assert.Zero(t, barLen(liverpoolConceded))

	// The largest value fills the bar area.
	labelWidth := len("Manchester City")
	assert.Equal(t, 60-labelWidth-2-2, barLen(city))
}

func TestRender_NarrowWidthKeepsMinimumBar(t *testing.T) {
	out, err := Render(goals(t), "team", 5)
	require.NoError(t, err)
	first := strings.Split(out, "\n")[2]
	assert.Equal(t, minBarWidth, barLen(first))
}

func TestRender_Errors(t *testing.T) {
	_, err := Render(goals(t), "player", 60)
	assert.ErrorIs(t, err, ErrNoLabel)

	names, err := frame.New([]string{"team"}, [][]any{{"Arsenal"}})
	require.NoError(t, err)
	_, err = Render(names, "team", 60)
	assert.ErrorIs(t, err, ErrNoNumbers)
}
