package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/chahal-neema/2D-Packing/internal/model"
)

// tileColor represents an RGB color for a placed tile.
type tileColor struct {
	R, G, B int
}

var tileColors = []tileColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	qrCodeSize   = 30.0
)

// ExportPDF renders each solution on its own page with a scaled layout
// diagram, headline statistics, and a QR code encoding the solution's
// interchange JSON, followed by a summary page covering the whole batch.
func ExportPDF(path string, items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("no results to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, item := range items {
		pdf.AddPage()
		if err := renderSolutionPage(pdf, item, i+1); err != nil {
			return fmt.Errorf("failed to render page %d: %w", i+1, err)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, items)

	return pdf.OutputFileAndClose(path)
}

// renderSolutionPage draws one problem/solution pair on the current page.
func renderSolutionPage(pdf *fpdf.Fpdf, item Item, pageNum int) error {
	p := item.Problem
	sol := item.Solution

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Problem %d: %dx%d container, %dx%d tiles", pageNum, p.ContainerW, p.ContainerH, p.TileW, p.TileH)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Tiles: %d | Efficiency: %.1f%% | Solver: %s | Time: %.3fs | Rotation: %t",
		sol.NumTiles(), sol.Efficiency(), sol.SolverName, sol.SolveTime.Seconds(), p.AllowRotation)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Drawing area reserves the right edge for the QR code.
	drawWidth := pageWidth - marginLeft - marginRight - qrCodeSize - 10
	drawHeight := pageHeight - drawAreaTop - marginBottom

	scaleX := drawWidth / float64(p.ContainerW)
	scaleY := drawHeight / float64(p.ContainerH)
	scale := math.Min(scaleX, scaleY)

	canvasW := float64(p.ContainerW) * scale
	canvasH := float64(p.ContainerH) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Container background.
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, placement := range sol.Placements {
		col := tileColors[i%len(tileColors)]
		tx := offsetX + float64(placement.X)*scale
		ty := offsetY + float64(placement.Y)*scale
		tw := float64(placement.W) * scale
		th := float64(placement.H) * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(tx, ty, tw, th, "FD")

		if tw > 12 && th > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(tw, th))
			pdf.SetTextColor(0, 0, 0)
			label := fmt.Sprintf("%d", i+1)
			if placement.Orientation == model.Rotated {
				label += " R"
			}
			labelW := pdf.GetStringWidth(label)
			pdf.SetXY(tx+(tw-labelW)/2, ty+th/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}

	drawDimensionAnnotations(pdf, p, scale, offsetX, offsetY, canvasW, canvasH)

	return renderSolutionQR(pdf, sol, pageNum)
}

// renderSolutionQR encodes the solution record as JSON in a QR code at
// the top-right of the page.
func renderSolutionQR(pdf *fpdf.Fpdf, sol model.Solution, pageNum int) error {
	data, err := json.Marshal(sol.Record())
	if err != nil {
		return fmt.Errorf("failed to marshal solution record: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_solution_%d_%s", pageNum, sol.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := pageWidth - marginRight - qrCodeSize
	qrY := drawAreaTop
	pdf.ImageOptions(imgName, qrX, qrY, qrCodeSize, qrCodeSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(qrX, qrY+qrCodeSize+1)
	pdf.CellFormat(qrCodeSize, 3, "Scan for layout JSON", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}

// drawDimensionAnnotations adds width and height labels outside the
// container rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, p model.Problem, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d units", p.ContainerW)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d units", p.ContainerH)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the final page with per-problem statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, items []Item) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Batch Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	totalTiles := 0
	solved := 0
	for _, item := range items {
		totalTiles += item.Solution.NumTiles()
		if item.Solution.NumTiles() > 0 {
			solved++
		}
	}

	summaryItems := []struct {
		label string
		value string
	}{
		{"Problems", fmt.Sprintf("%d", len(items))},
		{"Solved (at least one tile)", fmt.Sprintf("%d", solved)},
		{"Total Tiles Placed", fmt.Sprintf("%d", totalTiles)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	colWidths := []float64{20, 45, 35, 30, 30, 30, 60}
	headers := []string{"#", "Container", "Tile", "Rotation", "Tiles", "Efficiency", "Solver"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, item := range items {
		if y > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d x %d", item.Problem.ContainerW, item.Problem.ContainerH),
			fmt.Sprintf("%d x %d", item.Problem.TileW, item.Problem.TileH),
			fmt.Sprintf("%t", item.Problem.AllowRotation),
			fmt.Sprintf("%d", item.Solution.NumTiles()),
			fmt.Sprintf("%.1f%%", item.Solution.Efficiency()),
			item.Solution.SolverName,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by packbatch - 2D Rectangle Packing", "", 0, "C", false, 0, "")
}

// labelFontSize returns a font size proportional to the rectangle.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
