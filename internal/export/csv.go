package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/chahal-neema/2D-Packing/internal/model"
)

// ExportCSV writes one result row per item, preceded by a header row.
func ExportCSV(path string, items []Item) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := WriteCSV(f, items); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes the result rows to an arbitrary writer.
func WriteCSV(w io.Writer, items []Item) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(resultColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, item := range items {
		row, err := resultRow(item)
		if err != nil {
			return fmt.Errorf("failed to encode row %d: %w", i+1, err)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// resultRow renders one item as string cells in resultColumns order.
func resultRow(item Item) ([]string, error) {
	record := item.Solution.Record()
	positions, err := json.Marshal(record.TilePositions)
	if err != nil {
		return nil, err
	}
	return []string{
		strconv.Itoa(item.Problem.ContainerW),
		strconv.Itoa(item.Problem.ContainerH),
		strconv.Itoa(item.Problem.TileW),
		strconv.Itoa(item.Problem.TileH),
		strconv.FormatBool(item.Problem.AllowRotation),
		strconv.Itoa(record.NumTiles),
		strconv.FormatFloat(record.Efficiency, 'f', 2, 64),
		strconv.FormatFloat(record.SolveTime, 'f', 3, 64),
		record.SolverName,
		string(positions),
	}, nil
}

// ParseTilePositions decodes the tile_positions cell of a result row.
func ParseTilePositions(cell string) ([]model.TilePosition, error) {
	var positions []model.TilePosition
	if err := json.Unmarshal([]byte(cell), &positions); err != nil {
		return nil, fmt.Errorf("invalid tile_positions: %w", err)
	}
	return positions, nil
}
