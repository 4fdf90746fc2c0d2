package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/entity"
	"github.com/yofu/dxf/table"

	"github.com/chahal-neema/2D-Packing/internal/model"
)

// DXF layer names for the layout drawing.
const (
	dxfLayerContainer = "CONTAINER"
	dxfLayerTiles     = "TILES"
	dxfLayerLabels    = "LABELS"
)

// ExportDXF writes one packed layout as a DXF drawing: the container
// outline on CONTAINER, each tile as a closed polyline on TILES, and a
// numbered label at each tile center on LABELS. Coordinates map one
// grid unit to one drawing unit with the origin at the container's
// top-left corner.
func ExportDXF(path string, item Item) error {
	p := item.Problem
	sol := item.Solution

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(dxfLayerContainer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add container layer: %w", err)
	}
	if _, err := rectPolyline(d, 0, 0, p.ContainerW, p.ContainerH); err != nil {
		return fmt.Errorf("failed to draw container outline: %w", err)
	}

	if _, err := d.AddLayer(dxfLayerTiles, color.Green, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add tiles layer: %w", err)
	}
	for i, placement := range sol.Placements {
		if _, err := rectPolyline(d, placement.X, placement.Y, placement.W, placement.H); err != nil {
			return fmt.Errorf("failed to draw tile %d: %w", i+1, err)
		}
	}

	if _, err := d.AddLayer(dxfLayerLabels, color.Cyan, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add labels layer: %w", err)
	}
	for i, placement := range sol.Placements {
		label := fmt.Sprintf("%d", i+1)
		if placement.Orientation == model.Rotated {
			label += "R"
		}
		cx := float64(placement.X) + float64(placement.W)/2
		cy := float64(placement.Y) + float64(placement.H)/2
		height := labelHeight(placement.W, placement.H)
		if _, err := d.Text(label, cx, cy, 0.0, height); err != nil {
			return fmt.Errorf("failed to label tile %d: %w", i+1, err)
		}
	}

	return d.SaveAs(path)
}

// rectPolyline draws an axis-aligned rectangle as a closed polyline.
func rectPolyline(d *drawing.Drawing, x, y, w, h int) (*entity.LwPolyline, error) {
	x0, y0 := float64(x), float64(y)
	x1, y1 := float64(x+w), float64(y+h)
	return d.LwPolyline(true,
		[]float64{x0, y0},
		[]float64{x1, y0},
		[]float64{x1, y1},
		[]float64{x0, y1},
	)
}

// labelHeight scales text to roughly a quarter of the tile's short side.
func labelHeight(w, h int) float64 {
	short := w
	if h < short {
		short = h
	}
	height := float64(short) / 4
	if height < 0.5 {
		height = 0.5
	}
	return height
}
