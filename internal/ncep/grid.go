package ncep

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxSpan = 100

// Grid is a table laid out row-major with spans expanded. Positions covered
// by a span hold an empty string; positions no cell reaches are nil.
type Grid [][]*string

// Cell returns the raw markup at (row, col) and whether a cell exists there.
func (g Grid) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) || g[row][col] == nil {
		return "", false
	}
	return *g[row][col], true
}

func (g *Grid) set(row, col int, value string) {
	for len(*g) <= row {
		*g = append(*g, nil)
	}
	for len((*g)[row]) <= col {
		(*g)[row] = append((*g)[row], nil)
	}
	v := value
	(*g)[row][col] = &v
}

func (g Grid) occupied(row, col int) bool {
	_, ok := g.Cell(row, col)
	return ok
}

// BuildGrid reads the rows of one table (ignoring rows of nested tables)
// and keeps each cell's inner HTML so markup such as <sup> survives for the
// normalizer.
func BuildGrid(table *goquery.Selection) Grid {
	grid := Grid{}
	rowIdx := 0
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if !tr.Closest("table").IsSelection(table) {
			return
		}
		col := 0
		tr.ChildrenFiltered("th,td").Each(func(_ int, cell *goquery.Selection) {
			for grid.occupied(rowIdx, col) {
				col++
			}
			markup, err := cell.Html()
			if err != nil {
				markup = cell.Text()
			}
			colspan := spanAttr(cell, "colspan")
			rowspan := spanAttr(cell, "rowspan")
			for dr := 0; dr < rowspan; dr++ {
				for dc := 0; dc < colspan; dc++ {
					value := ""
					if dr == 0 && dc == 0 {
						value = markup
					}
					grid.set(rowIdx+dr, col+dc, value)
				}
			}
			col += colspan
		})
		if len(grid) <= rowIdx {
			grid = append(grid, nil)
		}
		rowIdx++
	})
	return grid
}

func spanAttr(cell *goquery.Selection, name string) int {
	raw, ok := cell.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxSpan {
		return maxSpan
	}
	return n
}
