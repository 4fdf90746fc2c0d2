package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// TilePosition is the interchange form of a Placement. It serializes as
// the flat array [x, y, w, h, orientation] consumed by the batch and
// visualization layers.
type TilePosition struct {
	X           int
	Y           int
	W           int
	H           int
	Orientation Orientation
}

func (t TilePosition) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{t.X, t.Y, t.W, t.H, t.Orientation.String()})
}

func (t *TilePosition) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 5 {
		return fmt.Errorf("tile position must have 5 elements, got %d", len(raw))
	}
	ints := []*int{&t.X, &t.Y, &t.W, &t.H}
	for i, dst := range ints {
		if err := json.Unmarshal(raw[i], dst); err != nil {
			return err
		}
	}
	return t.Orientation.UnmarshalJSON(raw[4])
}

// SolutionRecord is the flat interchange representation of a Solution.
type SolutionRecord struct {
	TilePositions []TilePosition `json:"tile_positions"`
	ContainerW    int            `json:"container_w"`
	ContainerH    int            `json:"container_h"`
	NumTiles      int            `json:"num_tiles"`
	Efficiency    float64        `json:"efficiency"`
	SolveTime     float64        `json:"solve_time"` // seconds
	SolverName    string         `json:"solver_name"`
	Metadata      map[string]any `json:"metadata"`
}

// Record converts the solution to its interchange form.
func (s Solution) Record() SolutionRecord {
	positions := make([]TilePosition, len(s.Placements))
	for i, p := range s.Placements {
		positions[i] = TilePosition{X: p.X, Y: p.Y, W: p.W, H: p.H, Orientation: p.Orientation}
	}
	return SolutionRecord{
		TilePositions: positions,
		ContainerW:    s.ContainerW,
		ContainerH:    s.ContainerH,
		NumTiles:      s.NumTiles(),
		Efficiency:    s.Efficiency(),
		SolveTime:     s.SolveTime.Seconds(),
		SolverName:    s.SolverName,
		Metadata:      s.Metadata,
	}
}

// Solution rebuilds a Solution value from its interchange form.
func (r SolutionRecord) Solution() Solution {
	placements := make([]Placement, len(r.TilePositions))
	for i, t := range r.TilePositions {
		placements[i] = Placement{X: t.X, Y: t.Y, W: t.W, H: t.H, Orientation: t.Orientation}
	}
	s := NewSolution(placements, r.ContainerW, r.ContainerH, r.SolverName)
	s.SolveTime = time.Duration(r.SolveTime * float64(time.Second))
	if r.Metadata != nil {
		s.Metadata = r.Metadata
	}
	return s
}
