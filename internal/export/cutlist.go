package export

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/xuri/excelize/v2"

	"github.com/panelwright/nestcut/internal/model"
)

const (
	cutListSheet = "Cut List"
	summarySheet = "Summary"
)

// cutRow is one placement flattened for the spreadsheet.
type cutRow struct {
	label   string
	length  float64
	width   float64
	sheet   int
	stock   string
	x, y    float64
	rotated bool
	band    string
}

// ExportCutList writes an Excel workbook with one row per placement plus a
// summary sheet of run statistics. Rows are ordered by part label using
// natural ordering so "Part 2" sorts before "Part 10".
func ExportCutList(path string, result model.LayoutResult, parts []model.Part) error {
	if len(result.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	partsByID := make(map[string]model.Part, len(parts))
	for _, p := range parts {
		partsByID[p.ID] = p
	}

	var rows []cutRow
	for sheetIdx, sheet := range result.Sheets {
		for _, p := range sheet.Placements {
			row := cutRow{
				label:   p.Label,
				length:  p.PlacedWidth,
				width:   p.PlacedHeight,
				sheet:   sheetIdx + 1,
				stock:   sheet.Stock.Label,
				x:       p.X,
				y:       p.Y,
				rotated: p.Rotated,
			}
			if part, ok := partsByID[p.PartID]; ok && part.Band.HasAny() {
				row.band = model.MapEdges(part.Band, p.Rotated).String()
			}
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].label != rows[j].label {
			return natural.Less(rows[i].label, rows[j].label)
		}
		return rows[i].sheet < rows[j].sheet
	})

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", cutListSheet)

	header := []any{"Part", "Length (mm)", "Width (mm)", "Sheet #", "Stock", "X (mm)", "Y (mm)", "Rotated", "Band Edges"}
	if err := f.SetSheetRow(cutListSheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range rows {
		rotated := ""
		if row.rotated {
			rotated = "90°"
		}
		values := []any{row.label, row.length, row.width, row.sheet, row.stock, row.x, row.y, rotated, row.band}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(cutListSheet, cell, &values); err != nil {
			return err
		}
	}

	if err := writeSummarySheet(f, result); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeSummarySheet(f *excelize.File, result model.LayoutResult) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	rows := [][]any{
		{"Sheets used", len(result.Sheets)},
		{"Parts placed", countParts(result)},
		{"Unplaced parts", len(result.Unplaced)},
		{"Overall efficiency (%)", result.TotalEfficiency()},
		{"Used area (mm²)", result.Stats.UsedArea},
		{"Waste area (mm²)", result.Stats.WasteArea},
		{"Cut count", result.Stats.CutCount},
		{"Total cut length (mm)", result.Stats.TotalCutLength},
	}
	for _, class := range sortedKeys(result.Stats.BandingByClass) {
		rows = append(rows, []any{"Edge banding " + class + " (mm)", result.Stats.BandingByClass[class]})
	}
	for _, label := range sortedKeys(result.Stats.SheetsByType) {
		rows = append(rows, []any{"Fractional sheets: " + label, result.Stats.SheetsByType[label]})
	}
	if result.Stats.LaminatedArea > 0 {
		rows = append(rows,
			[]any{"Laminated area (mm²)", result.Stats.LaminatedArea},
			[]any{"Backer sheets", result.Stats.BackerSheets})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
