// Package model defines the core data types for 2D tile packing:
// the immutable Problem description, tile Placements, and Solutions
// produced by the solving strategies.
package model

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned by NewProblem when a dimension is
// non-positive or the tile cannot fit the container in any allowed
// orientation. Infeasibility discovered during solving is not an error;
// it is reported as an empty Solution.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// Problem defines a single tile-packing query: a fixed container and one
// repeatable tile size. A Problem is constructed once per query and is
// read-only thereafter.
type Problem struct {
	ContainerW int `json:"container_w"`
	ContainerH int `json:"container_h"`
	TileW      int `json:"tile_w"`
	TileH      int `json:"tile_h"`

	// MaxTiles caps the number of tiles below the theoretical maximum.
	// Zero means no cap.
	MaxTiles int `json:"max_tiles"`

	// AllowRotation permits the 90-degree tile orientation. Rotation is
	// only meaningful for non-square tiles.
	AllowRotation bool `json:"allow_rotation"`

	// RequireCentering asks solvers to center final arrangements in the
	// container.
	RequireCentering bool `json:"require_centering"`
}

// NewProblem validates and builds a Problem. Centering is enabled by
// default; use the RequireCentering field to opt out before solving.
func NewProblem(containerW, containerH, tileW, tileH int, allowRotation bool) (Problem, error) {
	p := Problem{
		ContainerW:       containerW,
		ContainerH:       containerH,
		TileW:            tileW,
		TileH:            tileH,
		AllowRotation:    allowRotation,
		RequireCentering: true,
	}
	if err := p.Validate(); err != nil {
		return Problem{}, err
	}
	return p, nil
}

// Validate checks the construction invariants: all dimensions positive,
// tile fits the container in at least one allowed orientation, and the
// optional cap is non-negative.
func (p Problem) Validate() error {
	if p.ContainerW <= 0 || p.ContainerH <= 0 {
		return fmt.Errorf("%w: container %dx%d must be positive", ErrInvalidDimensions, p.ContainerW, p.ContainerH)
	}
	if p.TileW <= 0 || p.TileH <= 0 {
		return fmt.Errorf("%w: tile %dx%d must be positive", ErrInvalidDimensions, p.TileW, p.TileH)
	}
	fitsOriginal := p.TileW <= p.ContainerW && p.TileH <= p.ContainerH
	fitsRotated := p.AllowRotation && p.TileH <= p.ContainerW && p.TileW <= p.ContainerH
	if !fitsOriginal && !fitsRotated {
		return fmt.Errorf("%w: tile %dx%d cannot fit container %dx%d in any allowed orientation",
			ErrInvalidDimensions, p.TileW, p.TileH, p.ContainerW, p.ContainerH)
	}
	if p.MaxTiles < 0 {
		return fmt.Errorf("%w: max tiles %d must not be negative", ErrInvalidDimensions, p.MaxTiles)
	}
	return nil
}

// ContainerArea returns the total container area.
func (p Problem) ContainerArea() int {
	return p.ContainerW * p.ContainerH
}

// TileArea returns the area of a single tile.
func (p Problem) TileArea() int {
	return p.TileW * p.TileH
}

// TheoreticalMaxTiles is the area-only upper bound on the number of tiles,
// ignoring shape constraints.
func (p Problem) TheoreticalMaxTiles() int {
	return p.ContainerArea() / p.TileArea()
}

// EffectiveMaxTiles is the tile budget a solver works against: the
// theoretical maximum, reduced by the optional MaxTiles cap.
func (p Problem) EffectiveMaxTiles() int {
	limit := p.TheoreticalMaxTiles()
	if p.MaxTiles > 0 && p.MaxTiles < limit {
		return p.MaxTiles
	}
	return limit
}
