// Package report renders analysis results as Markdown fragments. It holds no
// business logic; tools assemble sections from tables, bullet lists and
// key-value blocks. Empty inputs render placeholder rows rather than failing.
package report

import (
	"fmt"
	"strconv"
	"strings"
)

// Builder accumulates a Markdown document section by section.
type Builder struct {
	b strings.Builder
}

// NewBuilder returns an empty report builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Title appends a level-2 heading.
func (r *Builder) Title(text string) *Builder {
	fmt.Fprintf(&r.b, "## %s\n\n", text)
	return r
}

// Section appends a level-3 heading.
func (r *Builder) Section(text string) *Builder {
	fmt.Fprintf(&r.b, "### %s\n\n", text)
	return r
}

// Line appends a raw line followed by a newline.
func (r *Builder) Line(format string, args ...interface{}) *Builder {
	fmt.Fprintf(&r.b, format+"\n", args...)
	return r
}

// Blank appends an empty line.
func (r *Builder) Blank() *Builder {
	r.b.WriteString("\n")
	return r
}

// KeyValue appends a bolded key-value bullet.
func (r *Builder) KeyValue(key, value string) *Builder {
	fmt.Fprintf(&r.b, "- **%s**: %s\n", key, value)
	return r
}

// Bullets appends a bullet list, or a single fallback bullet when items is
// empty and a fallback is given.
func (r *Builder) Bullets(items []string, fallback string) *Builder {
	if len(items) == 0 {
		if fallback != "" {
			fmt.Fprintf(&r.b, "- %s\n", fallback)
		}
		return r
	}
	for _, item := range items {
		fmt.Fprintf(&r.b, "- %s\n", item)
	}
	return r
}

// Table appends a Markdown table. Rows shorter than the header are padded
// with "-"; an empty row set renders a single placeholder row.
func (r *Builder) Table(headers []string, rows [][]string) *Builder {
	r.b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	r.b.WriteString("| " + strings.Join(seps, " | ") + " |\n")

	if len(rows) == 0 {
		placeholder := make([]string, len(headers))
		for i := range placeholder {
			placeholder[i] = "-"
		}
		rows = [][]string{placeholder}
	}
	for _, row := range rows {
		cells := make([]string, len(headers))
		for i := range cells {
			if i < len(row) && row[i] != "" {
				cells[i] = row[i]
			} else {
				cells[i] = "-"
			}
		}
		r.b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	r.b.WriteString("\n")
	return r
}

// String returns the assembled document with trailing whitespace trimmed.
func (r *Builder) String() string {
	return strings.TrimRight(r.b.String(), "\n") + "\n"
}

// Num formats a float with the given number of decimals.
func Num(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// SignedNum formats a float with an explicit leading sign.
func SignedNum(v float64, decimals int) string {
	return fmt.Sprintf("%+.*f", decimals, v)
}

// OrDash returns s, or "-" when s is empty.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
