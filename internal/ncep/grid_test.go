package ncep

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func gridFrom(t *testing.T, markup string) Grid {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatal(err)
	}
	return BuildGrid(doc.Find("table").First())
}

func TestBuildGridSpans(t *testing.T) {
	grid := gridFrom(t, `<table>
<tr><td rowspan="2">a</td><td colspan="2">b</td></tr>
<tr><td>c</td><td>d</td></tr>
</table>`)

	want := [][]string{{"a", "b", ""}, {"", "c", "d"}}
	if len(grid) != 2 {
		t.Fatalf("rows=%d", len(grid))
	}
	for r, row := range want {
		for c, v := range row {
			got, ok := grid.Cell(r, c)
			if !ok || got != v {
				t.Fatalf("cell(%d,%d)=%q,%v want %q", r, c, got, ok, v)
			}
		}
	}
	if _, ok := grid.Cell(1, 3); ok {
		t.Fatal("cell(1,3) should be absent")
	}
}

func TestBuildGridKeepsMarkupAndSkipsNested(t *testing.T) {
	grid := gridFrom(t, `<table>
<tr><td>m<sup>2</sup></td><td><table><tr><td>inner</td></tr></table></td></tr>
<tr><td>x</td></tr>
</table>`)

	if len(grid) != 2 {
		t.Fatalf("rows=%d", len(grid))
	}
	if got, _ := grid.Cell(0, 0); got != "m<sup>2</sup>" {
		t.Fatalf("cell=%q", got)
	}
	if got, _ := grid.Cell(1, 0); got != "x" {
		t.Fatalf("cell=%q", got)
	}
}
