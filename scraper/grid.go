package scraper

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExpandTable flattens a table element into a rectangular grid of cell
// texts. Cells carrying rowspan/colspan are duplicated into every grid
// position they cover, so downstream code can index rows and columns
// without caring about merged cells. The grid is always rectangular:
// slots no cell reaches become empty strings, and a row whose cells
// overflow the computed width is truncated silently.
func ExpandTable(table *goquery.Selection) [][]string {
	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil
	}

	maxCols := 0
	rows.Each(func(_ int, row *goquery.Selection) {
		cols := 0
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cols += spanAttr(cell, "colspan")
		})
		if cols > maxCols {
			maxCols = cols
		}
	})
	if maxCols == 0 {
		return nil
	}

	grid := make([][]string, rows.Length())
	filled := make([][]bool, rows.Length())
	for i := range grid {
		grid[i] = make([]string, maxCols)
		filled[i] = make([]bool, maxCols)
	}

	rows.Each(func(rowIdx int, row *goquery.Selection) {
		colIdx := 0
		row.Find("th, td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
			// Slots claimed by an earlier row's rowspan are skipped, not
			// overwritten.
			for colIdx < maxCols && filled[rowIdx][colIdx] {
				colIdx++
			}
			if colIdx >= maxCols {
				return false
			}

			rowspan := spanAttr(cell, "rowspan")
			colspan := spanAttr(cell, "colspan")
			text := cellText(cell)

			for dr := 0; dr < rowspan; dr++ {
				for dc := 0; dc < colspan; dc++ {
					r, c := rowIdx+dr, colIdx+dc
					if r < len(grid) && c < maxCols {
						grid[r][c] = text
						filled[r][c] = true
					}
				}
			}
			colIdx += colspan
			return true
		})
	})

	return grid
}

// spanAttr reads a rowspan/colspan attribute, defaulting to 1 on
// anything missing or malformed.
func spanAttr(cell *goquery.Selection, name string) int {
	raw, ok := cell.Attr(name)
	if !ok {
		return 1
	}
	span, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || span < 1 {
		return 1
	}
	return span
}

// cellText extracts a cell's text with whitespace collapsed.
func cellText(cell *goquery.Selection) string {
	return strings.Join(strings.Fields(cell.Text()), " ")
}
