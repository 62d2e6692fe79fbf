package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableRendersHeaderAndRows(t *testing.T) {
	out := NewBuilder().
		Table([]string{"Parameter", "Value"}, [][]string{
			{"temperature", "120"},
			{"pressure", "30"},
		}).
		String()

	assert.Contains(t, out, "| Parameter | Value |")
	assert.Contains(t, out, "| --- | --- |")
	assert.Contains(t, out, "| temperature | 120 |")
	assert.Contains(t, out, "| pressure | 30 |")
}

func TestTablePadsShortRowsAndEmptyRowSet(t *testing.T) {
	out := NewBuilder().
		Table([]string{"A", "B", "C"}, [][]string{{"only"}}).
		String()
	assert.Contains(t, out, "| only | - | - |")

	empty := NewBuilder().
		Table([]string{"A", "B"}, nil).
		String()
	assert.Contains(t, empty, "| - | - |")
}

func TestBulletsFallback(t *testing.T) {
	out := NewBuilder().Bullets(nil, "no findings").String()
	assert.Contains(t, out, "- no findings")

	out = NewBuilder().Bullets([]string{"first", "second"}, "unused").String()
	assert.Contains(t, out, "- first")
	assert.Contains(t, out, "- second")
	assert.NotContains(t, out, "unused")
}

func TestBuilderSections(t *testing.T) {
	out := NewBuilder().
		Title("Analysis").
		KeyValue("Equipment", "ETCH-01").
		Blank().
		Section("Findings").
		Line("all clear").
		String()

	assert.True(t, strings.HasPrefix(out, "## Analysis\n"))
	assert.Contains(t, out, "- **Equipment**: ETCH-01")
	assert.Contains(t, out, "### Findings")
	assert.True(t, strings.HasSuffix(out, "all clear\n"))
}

func TestNumberFormatting(t *testing.T) {
	assert.Equal(t, "1.70", Num(1.7004, 2))
	assert.Equal(t, "+0.50", SignedNum(0.5, 2))
	assert.Equal(t, "-2.00", SignedNum(-2, 2))
	assert.Equal(t, "-", OrDash("  "))
	assert.Equal(t, "x", OrDash("x"))
}
