package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"gribdefs/internal"
)

func TestExportRowsToXLSX(t *testing.T) {
	pair := internal.TablePair{Discipline: 0, Category: 1}
	rows := []internal.TableRow{
		row(8, "Total Precipitation", "kg m**-2", "apcp"),
		{IDText: "193-254 Reserved"},
	}
	out := filepath.Join(t.TempDir(), "out", "table.xlsx")
	if err := ExportRowsToXLSX(pair, rows, out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := f.GetRows("table_4_2_0-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("rows=%d", len(got))
	}
	if got[1][4] != "Total Precipitation" || got[1][7] != "70001008" {
		t.Fatalf("row=%v", got[1])
	}
	if got[2][3] != "193-254 Reserved" {
		t.Fatalf("row=%v", got[2])
	}
}
