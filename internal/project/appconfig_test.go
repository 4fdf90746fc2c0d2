package project

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chahal-neema/2D-Packing/internal/model"
)

func TestDefaultAppConfig(t *testing.T) {
	config := DefaultAppConfig()
	assert.Equal(t, 60, config.TimeLimitSeconds)
	assert.Equal(t, 10, config.MaxSolutions)
	assert.Equal(t, model.GreedyCenterOut, config.GreedyStrategy)
	assert.NotNil(t, config.RecentFiles)
}

func TestAppConfig_SettingsConversion(t *testing.T) {
	config := AppConfig{
		TimeLimitSeconds: 120,
		MaxSolutions:     5,
		GreedyStrategy:   model.GreedyBottomLeft,
	}
	settings := config.Settings()

	assert.Equal(t, 2*time.Minute, settings.TimeLimit)
	assert.Equal(t, 5, settings.MaxSolutions)
	assert.Equal(t, model.GreedyBottomLeft, settings.GreedyStrategy)

	defaults := model.DefaultSettings()
	assert.Equal(t, defaults.BacktrackMaxSolutions, settings.BacktrackMaxSolutions, "unset fields keep defaults")
	assert.Equal(t, defaults.CompactnessWeight, settings.CompactnessWeight)
}

func TestAppConfig_ZeroValueSettingsEqualDefaults(t *testing.T) {
	assert.Equal(t, model.DefaultSettings(), AppConfig{}.Settings())
}

func TestAppConfig_RememberFile(t *testing.T) {
	config := DefaultAppConfig()

	config.RememberFile("a.csv")
	config.RememberFile("b.csv")
	config.RememberFile("a.csv")

	assert.Equal(t, []string{"a.csv", "b.csv"}, config.RecentFiles, "re-remembering moves a file to the front")

	for i := 0; i < 15; i++ {
		config.RememberFile(fmt.Sprintf("file%d.csv", i))
	}
	assert.Len(t, config.RecentFiles, 10)
	assert.Equal(t, "file14.csv", config.RecentFiles[0])
}

func TestAppConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.json")

	config := DefaultAppConfig()
	config.TimeLimitSeconds = 90
	config.RememberFile("batch.xlsx")
	require.NoError(t, SaveAppConfig(path, config))

	loaded, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 90, loaded.TimeLimitSeconds)
	assert.Equal(t, []string{"batch.xlsx"}, loaded.RecentFiles)
}

func TestLoadAppConfig_MissingFileYieldsDefaults(t *testing.T) {
	loaded, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAppConfig(), loaded)
}
