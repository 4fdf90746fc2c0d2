// Package geometry provides the discrete transforms used to rotate,
// mirror, translate, and center tile arrangements inside a container.
//
// All rotations operate on unit grid cells indexed [0, W-1] x [0, H-1],
// so the coordinate maps subtract one from the container dimension. This
// is deliberate: continuous-coordinate formulas change canonical-form
// equality for odd-sized containers.
package geometry

import "github.com/chahal-neema/2D-Packing/internal/model"

// RotatePoint90 maps a cell 90 degrees clockwise: (x, y) -> (H-1-y, x).
func RotatePoint90(x, y, containerW, containerH int) (int, int) {
	return containerH - 1 - y, x
}

// RotatePoint180 maps a cell 180 degrees: (x, y) -> (W-1-x, H-1-y).
func RotatePoint180(x, y, containerW, containerH int) (int, int) {
	return containerW - 1 - x, containerH - 1 - y
}

// RotatePoint270 maps a cell 270 degrees clockwise: (x, y) -> (y, W-1-x).
func RotatePoint270(x, y, containerW, containerH int) (int, int) {
	return y, containerW - 1 - x
}

// RotateTile90 rotates one placement 90 degrees clockwise. The new
// top-left corner is the image of the old bottom-left cell; the footprint
// dimensions swap and the orientation tag is preserved.
func RotateTile90(p model.Placement, containerW, containerH int) model.Placement {
	newX, newY := RotatePoint90(p.X, p.Y+p.H-1, containerW, containerH)
	return model.Placement{X: newX, Y: newY, W: p.H, H: p.W, Orientation: p.Orientation}
}

// RotateTile180 rotates one placement 180 degrees. The new top-left
// corner is the image of the old bottom-right cell.
func RotateTile180(p model.Placement, containerW, containerH int) model.Placement {
	newX, newY := RotatePoint180(p.X+p.W-1, p.Y+p.H-1, containerW, containerH)
	return model.Placement{X: newX, Y: newY, W: p.W, H: p.H, Orientation: p.Orientation}
}

// RotateTile270 rotates one placement 270 degrees clockwise. The new
// top-left corner is the image of the old top-right cell.
func RotateTile270(p model.Placement, containerW, containerH int) model.Placement {
	newX, newY := RotatePoint270(p.X+p.W-1, p.Y, containerW, containerH)
	return model.Placement{X: newX, Y: newY, W: p.H, H: p.W, Orientation: p.Orientation}
}

// Rotate90 rotates an entire arrangement 90 degrees clockwise.
func Rotate90(placements []model.Placement, containerW, containerH int) []model.Placement {
	out := make([]model.Placement, len(placements))
	for i, p := range placements {
		out[i] = RotateTile90(p, containerW, containerH)
	}
	return out
}

// Rotate180 rotates an entire arrangement 180 degrees.
func Rotate180(placements []model.Placement, containerW, containerH int) []model.Placement {
	out := make([]model.Placement, len(placements))
	for i, p := range placements {
		out[i] = RotateTile180(p, containerW, containerH)
	}
	return out
}

// Rotate270 rotates an entire arrangement 270 degrees clockwise.
func Rotate270(placements []model.Placement, containerW, containerH int) []model.Placement {
	out := make([]model.Placement, len(placements))
	for i, p := range placements {
		out[i] = RotateTile270(p, containerW, containerH)
	}
	return out
}

// MirrorHorizontal flips an arrangement left-right.
func MirrorHorizontal(placements []model.Placement, containerW int) []model.Placement {
	out := make([]model.Placement, len(placements))
	for i, p := range placements {
		out[i] = model.Placement{X: containerW - p.X - p.W, Y: p.Y, W: p.W, H: p.H, Orientation: p.Orientation}
	}
	return out
}

// MirrorVertical flips an arrangement top-bottom.
func MirrorVertical(placements []model.Placement, containerH int) []model.Placement {
	out := make([]model.Placement, len(placements))
	for i, p := range placements {
		out[i] = model.Placement{X: p.X, Y: containerH - p.Y - p.H, W: p.W, H: p.H, Orientation: p.Orientation}
	}
	return out
}

// Translate shifts every placement by (dx, dy).
func Translate(placements []model.Placement, dx, dy int) []model.Placement {
	out := make([]model.Placement, len(placements))
	for i, p := range placements {
		out[i] = model.Placement{X: p.X + dx, Y: p.Y + dy, W: p.W, H: p.H, Orientation: p.Orientation}
	}
	return out
}

// BoundingBox returns (minX, minY, maxX, maxY) over an arrangement, or
// all zeros when it is empty.
func BoundingBox(placements []model.Placement) (minX, minY, maxX, maxY int) {
	if len(placements) == 0 {
		return 0, 0, 0, 0
	}
	first := placements[0]
	minX, minY = first.X, first.Y
	maxX, maxY = first.X+first.W, first.Y+first.H
	for _, p := range placements[1:] {
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

// Center translates an arrangement so its bounding box is centered in the
// container (floor division, so the offset is exact for even gaps and one
// off for odd gaps). Centering is idempotent.
func Center(placements []model.Placement, containerW, containerH int) []model.Placement {
	if len(placements) == 0 {
		return placements
	}
	minX, minY, maxX, maxY := BoundingBox(placements)
	usedW := maxX - minX
	usedH := maxY - minY
	dx := (containerW-usedW)/2 - minX
	dy := (containerH-usedH)/2 - minY
	return Translate(placements, dx, dy)
}
