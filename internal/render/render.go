// Package render turns a board snapshot into the aligned text grid shown
// to a terminal player.
package render

import (
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

// Render draws s with column indices on top, row indices on the left and
// a rule above and below the rows. Unrevealed cells are blank.
func Render(s mines.Snapshot) string {
	n := s.DimSize()

	visible := make([][]string, n)
	for row := range n {
		visible[row] = make([]string, n)
		for col := range n {
			visible[row][col] = s.Visible(row, col)
		}
	}

	widths := make([]int, n)
	for col := range n {
		widths[col] = len(strconv.Itoa(col))
		for row := range n {
			widths[col] = max(widths[col], len(visible[row][col]))
		}
	}
	labelWidth := len(strconv.Itoa(n - 1))

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", labelWidth+2))
	for col := range n {
		if col > 0 {
			header.WriteString("  ")
		}
		header.WriteString(pad(strconv.Itoa(col), widths[col]))
	}
	header.WriteString("  \n")

	var rows strings.Builder
	lineLen := 0
	for row := range n {
		var line strings.Builder
		line.WriteString(padLeft(strconv.Itoa(row), labelWidth))
		line.WriteString(" |")
		for col := range n {
			if col > 0 {
				line.WriteString(" |")
			}
			line.WriteString(pad(visible[row][col], widths[col]))
		}
		line.WriteString(" |\n")
		lineLen = line.Len()
		rows.WriteString(line.String())
	}

	rule := strings.Repeat("-", lineLen)
	return header.String() + rule + "\n" + rows.String() + rule
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
