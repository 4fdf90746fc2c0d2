// Package export writes batch packing results to CSV, Excel, PDF, and
// DXF files.
package export

import (
	"github.com/chahal-neema/2D-Packing/internal/model"
)

// Item pairs a problem with the solution found for it. Export order
// follows slice order, which callers keep aligned with batch row order.
type Item struct {
	Problem  model.Problem
	Solution model.Solution
}

// resultColumns is the column layout shared by the CSV and Excel
// writers. tile_positions holds the placement list as a JSON array.
var resultColumns = []string{
	"container_w",
	"container_h",
	"tile_w",
	"tile_h",
	"allow_rotation",
	"num_tiles",
	"efficiency",
	"solve_time_s",
	"solver",
	"tile_positions",
}
