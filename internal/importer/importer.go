// Package importer reads batch packing problems from CSV and Excel
// files. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition. Bad rows are
// reported and skipped; a batch never fails wholesale on one row.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/chahal-neema/2D-Packing/internal/model"
)

// ImportResult holds the problems parsed from a batch file plus any
// per-row errors and warnings.
type ImportResult struct {
	Problems []model.Problem
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	ContainerW       int
	ContainerH       int
	TileW            int
	TileH            int
	AllowRotation    int
	MaxTiles         int
	RequireCentering int
}

// headerAliases maps canonical column names to their accepted aliases
// (all lowercase).
var headerAliases = map[string][]string{
	"container_w":       {"container_w", "container width", "containerw", "cw", "bin_w", "sheet_w"},
	"container_h":       {"container_h", "container height", "containerh", "ch", "bin_h", "sheet_h"},
	"tile_w":            {"tile_w", "tile width", "tilew", "tw", "part_w", "item_w"},
	"tile_h":            {"tile_h", "tile height", "tileh", "th", "part_h", "item_h"},
	"allow_rotation":    {"allow_rotation", "rotation", "rotate", "allow rotation", "rotatable"},
	"max_tiles":         {"max_tiles", "max tiles", "cap", "limit"},
	"require_centering": {"require_centering", "centering", "center", "centered"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter by trying
// comma, semicolon, tab, and pipe. The delimiter producing the most
// consistent multi-column row structure wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// matches case-insensitively against the known aliases for each role.
// Returns the mapping and true if a header was detected, or a default
// positional mapping (container_w, container_h, tile_w, tile_h,
// allow_rotation, max_tiles) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		ContainerW:       -1,
		ContainerH:       -1,
		TileW:            -1,
		TileH:            -1,
		AllowRotation:    -1,
		MaxTiles:         -1,
		RequireCentering: -1,
	}

	set := func(dst *int, i int) {
		if *dst == -1 {
			*dst = i
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "container_w":
					set(&mapping.ContainerW, i)
				case "container_h":
					set(&mapping.ContainerH, i)
				case "tile_w":
					set(&mapping.TileW, i)
				case "tile_h":
					set(&mapping.TileH, i)
				case "allow_rotation":
					set(&mapping.AllowRotation, i)
				case "max_tiles":
					set(&mapping.MaxTiles, i)
				case "require_centering":
					set(&mapping.RequireCentering, i)
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			ContainerW:       0,
			ContainerH:       1,
			TileW:            2,
			TileH:            3,
			AllowRotation:    4,
			MaxTiles:         5,
			RequireCentering: -1,
		}, false
	}

	return mapping, true
}

// ParseBool interprets batch-file truthy values. Empty input defaults to
// true, matching the original batch format.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "1", "true", "t", "yes", "y":
		return true
	default:
		return false
	}
}

// parseDimension converts a cell to an integer dimension, rounding
// fractional values up.
func parseDimension(s string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(v)), nil
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Problem from a row using the given column mapping.
// Returns the problem and an error message when the row is unusable.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.Problem, string) {
	dims := []struct {
		name string
		idx  int
	}{
		{"container_w", mapping.ContainerW},
		{"container_h", mapping.ContainerH},
		{"tile_w", mapping.TileW},
		{"tile_h", mapping.TileH},
	}

	values := make([]int, len(dims))
	for i, d := range dims {
		cell := getCell(row, d.idx)
		if cell == "" {
			return model.Problem{}, fmt.Sprintf("%s: Missing %s value", rowLabel, d.name)
		}
		v, err := parseDimension(cell)
		if err != nil {
			return model.Problem{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, d.name, cell)
		}
		values[i] = v
	}

	allowRotation := ParseBool(getCell(row, mapping.AllowRotation))

	problem, err := model.NewProblem(values[0], values[1], values[2], values[3], allowRotation)
	if err != nil {
		return model.Problem{}, fmt.Sprintf("%s: %v", rowLabel, err)
	}

	if cell := getCell(row, mapping.MaxTiles); cell != "" {
		maxTiles, err := strconv.Atoi(cell)
		if err != nil || maxTiles < 0 {
			return model.Problem{}, fmt.Sprintf("%s: Invalid max_tiles '%s'", rowLabel, cell)
		}
		problem.MaxTiles = maxTiles
	}
	if mapping.RequireCentering >= 0 {
		problem.RequireCentering = ParseBool(getCell(row, mapping.RequireCentering))
	}

	return problem, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports batch problems from a CSV file, auto-detecting the
// delimiter and mapping columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports batch problems from a CSV reader with a
// known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports batch problems from the first sheet of an Excel
// (.xlsx) file using the same header mapping as CSV import.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.ContainerW == -1 {
			missing = append(missing, "container_w")
		}
		if mapping.ContainerH == -1 {
			missing = append(missing, "container_h")
		}
		if mapping.TileW == -1 {
			missing = append(missing, "tile_w")
		}
		if mapping.TileH == -1 {
			missing = append(missing, "tile_h")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		// No recognized header: if the first row is not numeric it is an
		// unrecognized header, so skip it and keep positional mapping.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][0]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		problem, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Problems = append(result.Problems, problem)
	}

	return result
}
