package main

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const maxCellWidth = 60

// writeTable prints rows as left-aligned columns padded by display width, so
// wide characters in company names keep the columns straight. The first row
// is the header.
func writeTable(out io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	colCount := 0
	for _, row := range rows {
		colCount = max(colCount, len(row))
	}

	cells := make([][]string, len(rows))
	widths := make([]int, colCount)
	for i, row := range rows {
		cells[i] = make([]string, colCount)
		for j := range colCount {
			if j < len(row) {
				cells[i][j] = runewidth.Truncate(row[j], maxCellWidth, "...")
			}
			widths[j] = max(widths[j], runewidth.StringWidth(cells[i][j]))
		}
	}

	var sb strings.Builder
	for i, row := range cells {
		for j, cell := range row {
			if j == colCount-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[j]))
			sb.WriteString("  ")
		}
		sb.WriteString("\n")

		if i == 0 {
			for j, w := range widths {
				sb.WriteString(strings.Repeat("-", w))
				if j < colCount-1 {
					sb.WriteString("  ")
				}
			}
			sb.WriteString("\n")
		}
	}

	io.WriteString(out, sb.String())
}
