package symmetry

import (
	"math"

	"github.com/chahal-neema/2D-Packing/internal/geometry"
	"github.com/chahal-neema/2D-Packing/internal/model"
)

// PreferOrientation rotates each solution to the best-scoring of its four
// rotations. The score favors arrangements whose bounding box matches the
// container aspect ratio, is compact, and sits near the container center.
func PreferOrientation(solutions []model.Solution, p model.Problem) []model.Solution {
	out := make([]model.Solution, len(solutions))
	for i, sol := range solutions {
		rotations := [][]model.Placement{
			sol.Placements,
			geometry.Rotate90(sol.Placements, p.ContainerW, p.ContainerH),
			geometry.Rotate180(sol.Placements, p.ContainerW, p.ContainerH),
			geometry.Rotate270(sol.Placements, p.ContainerW, p.ContainerH),
		}

		best := rotations[0]
		bestScore := aestheticScore(rotations[0], p)
		for _, rot := range rotations[1:] {
			if score := aestheticScore(rot, p); score > bestScore {
				bestScore = score
				best = rot
			}
		}

		oriented := sol
		oriented.Placements = best
		out[i] = oriented
	}
	return out
}

// aestheticScore rates one rotation of an arrangement; higher is better.
func aestheticScore(placements []model.Placement, p model.Problem) float64 {
	if len(placements) == 0 {
		return 0
	}
	minX, minY, maxX, maxY := geometry.BoundingBox(placements)
	usedW := float64(maxX - minX)
	usedH := float64(maxY - minY)

	score := 0.0

	// Aspect-ratio match with the container.
	containerRatio := float64(p.ContainerW) / float64(p.ContainerH)
	usedRatio := 1.0
	if usedH > 0 {
		usedRatio = usedW / usedH
	}
	score += 100 / (1 + math.Abs(containerRatio-usedRatio))

	// Compactness: area per unit of perimeter.
	if perimeter := 2 * (usedW + usedH); perimeter > 0 {
		score += 10 * (usedW * usedH) / perimeter
	}

	// Closeness of the bounding-box center to the container center.
	centerX := float64(minX+maxX) / 2
	centerY := float64(minY+maxY) / 2
	distance := math.Abs(centerX-float64(p.ContainerW)/2) + math.Abs(centerY-float64(p.ContainerH)/2)
	score += 50 / (1 + distance)

	return score
}
