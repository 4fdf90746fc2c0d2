// Package symmetry implements the dihedral-group canonicalization used to
// recognize and eliminate duplicate tile arrangements. Two arrangements
// are equivalent when one maps onto the other under any of the eight
// rectangle symmetries (four rotations, each optionally mirrored).
package symmetry

import (
	"sort"
	"strconv"
	"strings"

	"github.com/chahal-neema/2D-Packing/internal/geometry"
	"github.com/chahal-neema/2D-Packing/internal/model"
)

// transforms returns all eight symmetry images of an arrangement: the
// four rotations followed by the horizontal mirror of each.
func transforms(placements []model.Placement, containerW, containerH int) [][]model.Placement {
	out := make([][]model.Placement, 0, 8)
	out = append(out,
		placements,
		geometry.Rotate90(placements, containerW, containerH),
		geometry.Rotate180(placements, containerW, containerH),
		geometry.Rotate270(placements, containerW, containerH),
	)
	for i := 0; i < 4; i++ {
		out = append(out, geometry.MirrorHorizontal(out[i], containerW))
	}
	return out
}

// sortedCopy returns the arrangement sorted by (y, x, w, h, orientation)
// so that comparison is independent of insertion order.
func sortedCopy(placements []model.Placement) []model.Placement {
	out := make([]model.Placement, len(placements))
	copy(out, placements)
	sort.Slice(out, func(i, j int) bool {
		return lessPlacement(out[i], out[j])
	})
	return out
}

func lessPlacement(a, b model.Placement) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	if a.X != b.X {
		return a.X < b.X
	}
	if a.W != b.W {
		return a.W < b.W
	}
	if a.H != b.H {
		return a.H < b.H
	}
	return a.Orientation < b.Orientation
}

// comparePlacements orders two sorted arrangements lexicographically.
func comparePlacements(a, b []model.Placement) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if lessPlacement(a[i], b[i]) {
			return -1
		}
		if lessPlacement(b[i], a[i]) {
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// CanonicalForm returns the lexicographically smallest sorted arrangement
// among all eight symmetry images. Equal canonical forms identify
// symmetry-equivalent solutions.
func CanonicalForm(placements []model.Placement, containerW, containerH int) []model.Placement {
	if len(placements) == 0 {
		return nil
	}
	var best []model.Placement
	for _, tr := range transforms(placements, containerW, containerH) {
		candidate := sortedCopy(tr)
		if best == nil || comparePlacements(candidate, best) < 0 {
			best = candidate
		}
	}
	return best
}

// CanonicalKey renders the canonical form as a string usable as a map key.
func CanonicalKey(placements []model.Placement, containerW, containerH int) string {
	form := CanonicalForm(placements, containerW, containerH)
	var b strings.Builder
	for _, p := range form {
		b.WriteString(strconv.Itoa(p.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(p.Y))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(p.W))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(p.H))
		b.WriteByte(',')
		b.WriteString(p.Orientation.String())
		b.WriteByte(';')
	}
	return b.String()
}

// Equivalent reports whether two solutions are the same arrangement up to
// symmetry. Tile count and container dimensions are checked first as a
// fast pre-check.
func Equivalent(a, b model.Solution) bool {
	if a.NumTiles() != b.NumTiles() {
		return false
	}
	if a.ContainerW != b.ContainerW || a.ContainerH != b.ContainerH {
		return false
	}
	return CanonicalKey(a.Placements, a.ContainerW, a.ContainerH) ==
		CanonicalKey(b.Placements, b.ContainerW, b.ContainerH)
}

// Deduplicate keeps the first solution of each symmetry-equivalence
// class, preserving input order and first-seen provenance.
func Deduplicate(solutions []model.Solution, containerW, containerH int) []model.Solution {
	if len(solutions) <= 1 {
		return solutions
	}
	seen := make(map[string]bool, len(solutions))
	unique := make([]model.Solution, 0, len(solutions))
	for _, sol := range solutions {
		key := CanonicalKey(sol.Placements, containerW, containerH)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, sol)
		}
	}
	return unique
}

// Self-symmetry names reported by DetectSymmetries.
const (
	Rotational90     = "rotational_90"
	Rotational180    = "rotational_180"
	Rotational270    = "rotational_270"
	MirrorHorizontal = "mirror_horizontal"
	MirrorVertical   = "mirror_vertical"
	DiagonalMain     = "diagonal_main"
	DiagonalAnti     = "diagonal_anti"
)

// DetectSymmetries reports which non-identity dihedral transforms map the
// specific arrangement onto itself. Each check is a direct
// order-independent equality against the original, not a canonical-form
// comparison; the result describes this arrangement, so it is suitable
// for diagnostics but not for deduplication.
func DetectSymmetries(placements []model.Placement, containerW, containerH int) []string {
	base := sortedCopy(placements)
	same := func(tr []model.Placement) bool {
		return comparePlacements(base, sortedCopy(tr)) == 0
	}

	r90 := geometry.Rotate90(placements, containerW, containerH)
	r180 := geometry.Rotate180(placements, containerW, containerH)
	r270 := geometry.Rotate270(placements, containerW, containerH)

	var out []string
	if same(r90) {
		out = append(out, Rotational90)
	}
	if same(r180) {
		out = append(out, Rotational180)
	}
	if same(r270) {
		out = append(out, Rotational270)
	}
	if same(geometry.MirrorHorizontal(placements, containerW)) {
		out = append(out, MirrorHorizontal)
	}
	if same(geometry.MirrorVertical(placements, containerH)) {
		out = append(out, MirrorVertical)
	}
	if same(geometry.MirrorHorizontal(r90, containerW)) {
		out = append(out, DiagonalMain)
	}
	if same(geometry.MirrorHorizontal(r270, containerW)) {
		out = append(out, DiagonalAnti)
	}
	return out
}
