package export

import (
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const resultsSheet = "Results"

// ExportExcel writes the batch results to an .xlsx workbook with the
// same columns as the CSV writer, plus a bold header row and column
// widths sized for the data.
func ExportExcel(path string, items []Item) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(resultsSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, name := range resultColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(resultsSheet, cell, name); err != nil {
			return err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(resultColumns), 1)
	if err := f.SetCellStyle(resultsSheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	for i, item := range items {
		record := item.Solution.Record()
		positions, err := json.Marshal(record.TilePositions)
		if err != nil {
			return fmt.Errorf("failed to encode row %d: %w", i+1, err)
		}
		values := []any{
			item.Problem.ContainerW,
			item.Problem.ContainerH,
			item.Problem.TileW,
			item.Problem.TileH,
			item.Problem.AllowRotation,
			record.NumTiles,
			record.Efficiency,
			record.SolveTime,
			record.SolverName,
			string(positions),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(resultsSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SetColWidth(resultsSheet, "A", "I", 14); err != nil {
		return err
	}
	if err := f.SetColWidth(resultsSheet, "J", "J", 60); err != nil {
		return err
	}

	return f.SaveAs(path)
}
