package engine

import "github.com/chahal-neema/2D-Packing/internal/model"

// freeRect is one axis-aligned free region on the integer grid.
type freeRect struct {
	x, y, w, h int
}

func (r freeRect) area() int {
	return r.w * r.h
}

// intersects reports whether r shares interior area with the footprint
// (fx, fy, fw, fh).
func (r freeRect) intersects(fx, fy, fw, fh int) bool {
	return r.x < fx+fw && r.x+r.w > fx &&
		r.y < fy+fh && r.y+r.h > fy
}

// FreeRectManager maintains a set of disjoint free rectangles inside the
// container, initialized to the whole container. Placing a tile carves
// its footprint out of every intersecting free rectangle (guillotine
// split into up to four residuals) and a merge pass re-coalesces
// neighbors to bound fragmentation.
type FreeRectManager struct {
	containerW int
	containerH int
	rects      []freeRect
}

// NewFreeRectManager creates a manager whose free space is the entire
// container.
func NewFreeRectManager(containerW, containerH int) *FreeRectManager {
	return &FreeRectManager{
		containerW: containerW,
		containerH: containerH,
		rects:      []freeRect{{0, 0, containerW, containerH}},
	}
}

// ValidPlacements returns every bottom-left-aligned position at which the
// tile fits entirely within some free rectangle, in each legal
// orientation. The free rectangles are disjoint, so no position is
// reported twice.
func (m *FreeRectManager) ValidPlacements(tileW, tileH int, allowRotation bool) []model.Placement {
	var out []model.Placement
	out = m.appendPlacements(out, tileW, tileH, model.Original)
	if allowRotation && tileW != tileH {
		out = m.appendPlacements(out, tileH, tileW, model.Rotated)
	}
	return out
}

func (m *FreeRectManager) appendPlacements(out []model.Placement, w, h int, o model.Orientation) []model.Placement {
	for _, r := range m.rects {
		for y := r.y; y <= r.y+r.h-h; y++ {
			for x := r.x; x <= r.x+r.w-w; x++ {
				out = append(out, model.Placement{X: x, Y: y, W: w, H: h, Orientation: o})
			}
		}
	}
	return out
}

// PlaceTile removes the footprint (x, y, w, h) from the free space. Every
// intersecting free rectangle is replaced by up to four residuals (left,
// right, below, above the footprint, clipped to the rectangle); the rest
// are kept unchanged. A merge pass then runs to a fixed point.
func (m *FreeRectManager) PlaceTile(x, y, w, h int) {
	var next []freeRect
	for _, r := range m.rects {
		if !r.intersects(x, y, w, h) {
			next = append(next, r)
			continue
		}
		// Left residual.
		if x > r.x {
			next = append(next, freeRect{r.x, r.y, x - r.x, r.h})
		}
		// Right residual.
		if x+w < r.x+r.w {
			next = append(next, freeRect{x + w, r.y, r.x + r.w - (x + w), r.h})
		}
		// Residual below the footprint, clipped to the overlap columns.
		left := maxInt(r.x, x)
		right := minInt(r.x+r.w, x+w)
		if y > r.y {
			next = append(next, freeRect{left, r.y, right - left, y - r.y})
		}
		// Residual above the footprint.
		if y+h < r.y+r.h {
			next = append(next, freeRect{left, y + h, right - left, r.y + r.h - (y + h)})
		}
	}
	m.rects = next
	m.merge()
}

// merge repeatedly coalesces pairs of free rectangles that share an edge
// and have equal height (horizontal merge) or equal width (vertical
// merge). The pass repeats until a full pass performs no merge.
func (m *FreeRectManager) merge() {
	for {
		merged := false
	scan:
		for i := 0; i < len(m.rects); i++ {
			for j := 0; j < len(m.rects); j++ {
				if i == j {
					continue
				}
				a, b := m.rects[i], m.rects[j]
				switch {
				case a.y == b.y && a.h == b.h && a.x+a.w == b.x:
					m.rects[i] = freeRect{a.x, a.y, a.w + b.w, a.h}
				case a.x == b.x && a.w == b.w && a.y+a.h == b.y:
					m.rects[i] = freeRect{a.x, a.y, a.w, a.h + b.h}
				default:
					continue
				}
				m.rects = append(m.rects[:j], m.rects[j+1:]...)
				merged = true
				break scan
			}
		}
		if !merged {
			return
		}
	}
}

// TotalFreeArea returns the remaining free area. Together with the tile
// area it gives the admissible upper bound
// currentTiles + TotalFreeArea()/tileArea on tiles still reachable.
func (m *FreeRectManager) TotalFreeArea() int {
	total := 0
	for _, r := range m.rects {
		total += r.area()
	}
	return total
}

// FreeRectCount returns how many disjoint free rectangles remain.
func (m *FreeRectManager) FreeRectCount() int {
	return len(m.rects)
}

// UpperBound is the area-based bound on the total tiles reachable from
// the current state.
func (m *FreeRectManager) UpperBound(currentTiles, tileArea int) int {
	return currentTiles + m.TotalFreeArea()/tileArea
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
