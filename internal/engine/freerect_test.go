package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chahal-neema/2D-Packing/internal/model"
)

func TestFreeRectManager_InitialState(t *testing.T) {
	m := NewFreeRectManager(20, 10)
	assert.Equal(t, 1, m.FreeRectCount())
	assert.Equal(t, 200, m.TotalFreeArea())
}

func TestFreeRectManager_ValidPlacementsEmptyContainer(t *testing.T) {
	m := NewFreeRectManager(3, 3)

	placements := m.ValidPlacements(2, 2, false)
	assert.Len(t, placements, 4, "2x2 tile anchors in a 3x3 container")
	for _, p := range placements {
		assert.Equal(t, model.Original, p.Orientation)
	}
}

func TestFreeRectManager_ValidPlacementsWithRotation(t *testing.T) {
	m := NewFreeRectManager(4, 4)

	// 1x2 tile: 4x3 original anchors plus 3x4 rotated anchors.
	placements := m.ValidPlacements(1, 2, true)
	original := 0
	rotated := 0
	for _, p := range placements {
		switch p.Orientation {
		case model.Original:
			original++
			assert.Equal(t, 1, p.W)
			assert.Equal(t, 2, p.H)
		case model.Rotated:
			rotated++
			assert.Equal(t, 2, p.W)
			assert.Equal(t, 1, p.H)
		}
	}
	assert.Equal(t, 12, original)
	assert.Equal(t, 12, rotated)
}

func TestFreeRectManager_SquareTileNotDuplicatedByRotation(t *testing.T) {
	m := NewFreeRectManager(4, 4)
	placements := m.ValidPlacements(2, 2, true)
	assert.Len(t, placements, 9, "square tile has one orientation")
}

func TestFreeRectManager_PlaceTileSplitsAndAccounts(t *testing.T) {
	m := NewFreeRectManager(10, 10)
	m.PlaceTile(0, 0, 4, 4)

	assert.Equal(t, 84, m.TotalFreeArea())
	// The two residuals (right strip, bottom strip) stay unmerged since
	// they have different heights and widths.
	assert.Equal(t, 2, m.FreeRectCount())
}

func TestFreeRectManager_MergeRestoresSingleRect(t *testing.T) {
	// Placing a full-width strip leaves one full-width residual.
	m := NewFreeRectManager(10, 10)
	m.PlaceTile(0, 0, 10, 4)

	assert.Equal(t, 60, m.TotalFreeArea())
	assert.Equal(t, 1, m.FreeRectCount())
}

func TestFreeRectManager_FillCompletely(t *testing.T) {
	m := NewFreeRectManager(4, 4)
	m.PlaceTile(0, 0, 2, 2)
	m.PlaceTile(2, 0, 2, 2)
	m.PlaceTile(0, 2, 2, 2)
	m.PlaceTile(2, 2, 2, 2)

	assert.Equal(t, 0, m.TotalFreeArea())
	assert.Empty(t, m.ValidPlacements(2, 2, false))
}

func TestFreeRectManager_UpperBound(t *testing.T) {
	m := NewFreeRectManager(20, 20)
	assert.Equal(t, 4, m.UpperBound(0, 100))

	m.PlaceTile(0, 0, 10, 10)
	assert.Equal(t, 4, m.UpperBound(1, 100))

	require.Equal(t, 300, m.TotalFreeArea())
}
