package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"gribdefs/internal"
)

// ExportRowsToXLSX dumps one normalized parameter table to a spreadsheet,
// one row per table row, for manual review of the cleaned cells.
func ExportRowsToXLSX(pair internal.TablePair, rows []internal.TableRow, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "table_4_2_" + pair.String()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	headers := []string{"discipline", "category", "id", "id_text", "name", "unit", "short_name", "param_id"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, pair.Discipline)
		set(2, pair.Category)
		if row.HasID {
			set(3, row.ID)
			set(8, CompositeID(internal.ClassificationKey{Discipline: pair.Discipline, Category: pair.Category, Number: row.ID}))
		}
		set(4, row.IDText)
		set(5, row.Name)
		set(6, row.Unit)
		set(7, row.ShortName)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
