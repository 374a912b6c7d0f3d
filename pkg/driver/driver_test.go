package driver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-zwavegen/pkg/driver"
	"github.com/goliatone/go-zwavegen/pkg/manifest"
)

func sampleFragment() manifest.Fragment {
	manufacturer := int64(99)
	return manifest.Fragment{
		ManufacturerID: &manufacturer,
		ProductTypeID:  []int64{5},
		ProductID:      []int64{7},
		Settings: []manifest.Setting{
			{
				ID:    "1",
				Label: manifest.LocalizedText{"en": "LED"},
				Hint:  manifest.LocalizedText{"en": ""},
				Kind:  manifest.Boolean{Value: false},
				ZWave: manifest.Protocol{Index: 1},
			},
		},
	}
}

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := driver.Load(filepath.Join(t.TempDir(), driver.FileName))
	require.NoError(t, err)
	assert.Empty(t, cfg)
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), driver.FileName)
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := driver.Load(path)
	assert.Error(t, err)
}

func TestMergeAppendsSettingsAndReplacesZWave(t *testing.T) {
	cfg := driver.Config{
		"name":     map[string]any{"en": "Sensor"},
		"zwave":    map[string]any{"manufacturerId": float64(1)},
		"settings": []any{map[string]any{"id": "existing"}},
	}

	require.NoError(t, cfg.Merge(sampleFragment()))

	assert.Equal(t, map[string]any{"en": "Sensor"}, cfg["name"])

	zwave, ok := cfg["zwave"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(99), zwave["manufacturerId"])
	assert.Equal(t, []any{float64(5)}, zwave["productTypeId"])
	assert.NotContains(t, zwave, "settings")

	settings, ok := cfg["settings"].([]any)
	require.True(t, ok)
	require.Len(t, settings, 2)
	assert.Equal(t, "existing", settings[0].(map[string]any)["id"])

	added := settings[1].(map[string]any)
	assert.Equal(t, "1", added["id"])
	assert.Equal(t, "checkbox", added["type"])
	assert.Equal(t, false, added["value"])
}

func TestMergeRejectsNonListSettings(t *testing.T) {
	cfg := driver.Config{"settings": "oops"}
	assert.ErrorIs(t, cfg.Merge(sampleFragment()), driver.ErrSettingsNotList)
}

func TestMergeWithoutSettingsLeavesKeyAbsent(t *testing.T) {
	cfg := driver.Config{}
	require.NoError(t, cfg.Merge(manifest.Fragment{}))
	assert.NotContains(t, cfg, "settings")
	assert.Equal(t, map[string]any{}, cfg["zwave"])
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drivers", "sensor", driver.FileName)
	cfg := driver.Config{}
	require.NoError(t, cfg.Merge(sampleFragment()))
	require.NoError(t, driver.Save(path, cfg))

	loaded, err := driver.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"settings\": [")
}
