// Package table lays out rows of text in aligned columns.
package table

import (
	"strings"
	"unicode/utf8"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

type Column struct {
	Title string
	Align Alignment
}

// Render returns the header line followed by one line per row. Every cell
// is padded to the widest entry of its column; missing cells are blank and
// trailing spaces are dropped.
func Render(columns []Column, rows [][]string) []string {
	if len(columns) == 0 {
		return nil
	}
	widths := make([]int, len(columns))
	for c, col := range columns {
		widths[c] = utf8.RuneCountInString(col.Title)
	}
	for _, row := range rows {
		for c := 0; c < len(columns) && c < len(row); c++ {
			if w := utf8.RuneCountInString(row[c]); w > widths[c] {
				widths[c] = w
			}
		}
	}

	header := make([]string, len(columns))
	for c, col := range columns {
		header[c] = col.Title
	}
	out := make([]string, 0, len(rows)+1)
	out = append(out, line(columns, widths, header))
	for _, row := range rows {
		out = append(out, line(columns, widths, row))
	}
	return out
}

func line(columns []Column, widths []int, cells []string) string {
	var b strings.Builder
	for c, col := range columns {
		cell := ""
		if c < len(cells) {
			cell = cells[c]
		}
		if c > 0 {
			b.WriteString("  ")
		}
		pad := strings.Repeat(" ", widths[c]-utf8.RuneCountInString(cell))
		if col.Align == AlignRight {
			b.WriteString(pad)
			b.WriteString(cell)
		} else {
			b.WriteString(cell)
			b.WriteString(pad)
		}
	}
	return strings.TrimRight(b.String(), " ")
}
