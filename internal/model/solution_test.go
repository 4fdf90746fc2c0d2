package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourTileGrid() []Placement {
	return []Placement{
		{X: 0, Y: 0, W: 10, H: 10},
		{X: 10, Y: 0, W: 10, H: 10},
		{X: 0, Y: 10, W: 10, H: 10},
		{X: 10, Y: 10, W: 10, H: 10},
	}
}

func TestSolution_EfficiencyFullContainer(t *testing.T) {
	sol := NewSolution(fourTileGrid(), 20, 20, "test")
	assert.Equal(t, 4, sol.NumTiles())
	assert.InDelta(t, 100.0, sol.Efficiency(), 0.001)
	assert.NotEmpty(t, sol.ID)
	assert.Len(t, sol.ID, 8)
}

func TestSolution_EfficiencyEmpty(t *testing.T) {
	sol := NewSolution(nil, 20, 20, "test")
	assert.Equal(t, 0, sol.NumTiles())
	assert.Equal(t, 0.0, sol.Efficiency())
}

func TestSolution_BoundingBox(t *testing.T) {
	sol := NewSolution([]Placement{
		{X: 2, Y: 3, W: 10, H: 5},
		{X: 12, Y: 3, W: 10, H: 5},
	}, 30, 20, "test")

	minX, minY, maxX, maxY := sol.BoundingBox()
	assert.Equal(t, 2, minX)
	assert.Equal(t, 3, minY)
	assert.Equal(t, 22, maxX)
	assert.Equal(t, 8, maxY)
}

func TestSolution_BoundingBoxEmpty(t *testing.T) {
	sol := NewSolution(nil, 20, 20, "test")
	minX, minY, maxX, maxY := sol.BoundingBox()
	assert.Equal(t, 0, minX+minY+maxX+maxY)
}

func TestSolution_IsCentered(t *testing.T) {
	// Single 10x10 tile in a 15x15 container: exact center is (2.5, 2.5),
	// floor placement (2, 2) is within the 1-unit tolerance.
	centered := NewSolution([]Placement{{X: 2, Y: 2, W: 10, H: 10}}, 15, 15, "test")
	assert.True(t, centered.IsCentered())

	corner := NewSolution([]Placement{{X: 0, Y: 0, W: 10, H: 10}}, 15, 15, "test")
	assert.False(t, corner.IsCentered())

	empty := NewSolution(nil, 15, 15, "test")
	assert.True(t, empty.IsCentered(), "vacuously true with no tiles")
}

func TestPlacement_Overlaps(t *testing.T) {
	a := Placement{X: 0, Y: 0, W: 10, H: 10}
	b := Placement{X: 5, Y: 5, W: 10, H: 10}
	c := Placement{X: 10, Y: 0, W: 10, H: 10}

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c), "touching edges do not overlap")
}

func TestSolution_TileAt(t *testing.T) {
	sol := NewSolution(fourTileGrid(), 20, 20, "test")

	idx, ok := sol.TileAt(15, 5)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = sol.TileAt(25, 5)
	assert.False(t, ok)
}

func TestOrientation_JSON(t *testing.T) {
	data, err := json.Marshal(Rotated)
	require.NoError(t, err)
	assert.Equal(t, `"rotated"`, string(data))

	var o Orientation
	require.NoError(t, json.Unmarshal([]byte(`"original"`), &o))
	assert.Equal(t, Original, o)

	assert.Error(t, json.Unmarshal([]byte(`"sideways"`), &o))
}

func TestSolutionRecord_RoundTrip(t *testing.T) {
	sol := NewSolution([]Placement{
		{X: 0, Y: 0, W: 10, H: 5, Orientation: Original},
		{X: 0, Y: 5, W: 5, H: 10, Orientation: Rotated},
	}, 20, 20, "Backtrack")
	sol.SolveTime = 1500 * time.Millisecond

	record := sol.Record()
	assert.Equal(t, 2, record.NumTiles)
	assert.InDelta(t, 1.5, record.SolveTime, 0.001)

	restored := record.Solution()
	assert.Equal(t, sol.Placements, restored.Placements)
	assert.Equal(t, sol.SolverName, restored.SolverName)
	assert.Equal(t, sol.SolveTime, restored.SolveTime)
}

func TestTilePosition_JSONArrayForm(t *testing.T) {
	pos := TilePosition{X: 1, Y: 2, W: 10, H: 5, Orientation: Rotated}
	data, err := json.Marshal(pos)
	require.NoError(t, err)
	assert.JSONEq(t, `[1, 2, 10, 5, "rotated"]`, string(data))

	var decoded TilePosition
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, pos, decoded)
}
