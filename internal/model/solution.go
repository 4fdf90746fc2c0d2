package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Orientation tags whether a placement uses the tile's original footprint
// or the 90-degree rotation.
type Orientation int

const (
	Original Orientation = iota
	Rotated
)

func (o Orientation) String() string {
	if o == Rotated {
		return "rotated"
	}
	return "original"
}

// MarshalJSON serializes the orientation as the literal strings
// "original" / "rotated" used by the interchange format.
func (o Orientation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON accepts the literal interchange strings.
func (o *Orientation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "original":
		*o = Original
	case "rotated":
		*o = Rotated
	default:
		return fmt.Errorf("unknown orientation %q", s)
	}
	return nil
}

// Placement is a single tile placed in the container. W and H are the
// footprint after applying the orientation: (TileW, TileH) for Original,
// swapped for Rotated.
type Placement struct {
	X           int
	Y           int
	W           int
	H           int
	Orientation Orientation
}

// Overlaps reports whether two placements share interior area. Touching
// edges do not count as overlap.
func (p Placement) Overlaps(q Placement) bool {
	return p.X < q.X+q.W && p.X+p.W > q.X &&
		p.Y < q.Y+q.H && p.Y+p.H > q.Y
}

// Solution is one arrangement of tiles produced by a strategy. The
// placement order is insertion order and carries no meaning. Placements
// are replaced wholesale by centering and deduplication steps, never
// edited element by element.
type Solution struct {
	ID         string
	Placements []Placement
	ContainerW int
	ContainerH int
	SolveTime  time.Duration
	SolverName string
	Metadata   map[string]any
}

// NewSolution builds a Solution with a fresh short ID, the way stock and
// part records are tagged elsewhere.
func NewSolution(placements []Placement, containerW, containerH int, solverName string) Solution {
	return Solution{
		ID:         uuid.New().String()[:8],
		Placements: placements,
		ContainerW: containerW,
		ContainerH: containerH,
		SolverName: solverName,
		Metadata:   map[string]any{},
	}
}

// NumTiles returns the number of placed tiles.
func (s Solution) NumTiles() int {
	return len(s.Placements)
}

// Efficiency returns the used share of the container area as a percentage.
func (s Solution) Efficiency() float64 {
	if len(s.Placements) == 0 {
		return 0
	}
	total := 0
	for _, p := range s.Placements {
		total += p.W * p.H
	}
	area := s.ContainerW * s.ContainerH
	if area == 0 {
		return 0
	}
	return float64(total) / float64(area) * 100
}

// BoundingBox returns (minX, minY, maxX, maxY) over all placements.
// An empty solution yields (0, 0, 0, 0).
func (s Solution) BoundingBox() (minX, minY, maxX, maxY int) {
	if len(s.Placements) == 0 {
		return 0, 0, 0, 0
	}
	first := s.Placements[0]
	minX, minY = first.X, first.Y
	maxX, maxY = first.X+first.W, first.Y+first.H
	for _, p := range s.Placements[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X+p.W > maxX {
			maxX = p.X + p.W
		}
		if p.Y+p.H > maxY {
			maxY = p.Y + p.H
		}
	}
	return minX, minY, maxX, maxY
}

// IsCentered reports whether the bounding box sits within one unit of the
// centered position. Vacuously true for an empty solution.
func (s Solution) IsCentered() bool {
	if len(s.Placements) == 0 {
		return true
	}
	minX, minY, maxX, maxY := s.BoundingBox()
	usedW := maxX - minX
	usedH := maxY - minY

	expectedX := (s.ContainerW - usedW) / 2
	expectedY := (s.ContainerH - usedH) / 2

	const tolerance = 1
	return abs(minX-expectedX) <= tolerance && abs(minY-expectedY) <= tolerance
}

// TileAt returns the index of the placement covering cell (x, y), or
// (-1, false) if the cell is empty.
func (s Solution) TileAt(x, y int) (int, bool) {
	for i, p := range s.Placements {
		if p.X <= x && x < p.X+p.W && p.Y <= y && y < p.Y+p.H {
			return i, true
		}
	}
	return -1, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
