package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/ordergrid/pkg/grid"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	s := Default()

	require.Len(t, s.LevelItems, 4)
	assert.Equal(t, grid.LevelProduct, s.LevelItems[0].Level)
	assert.True(t, s.LevelItems[0].Visible)
	assert.Equal(t, grid.LevelShipment, s.LevelItems[1].Level)
	assert.True(t, s.LevelItems[1].Visible)
	assert.False(t, s.LevelItems[2].Visible)
	assert.False(t, s.LevelItems[3].Visible)
	assert.Equal(t, grid.ShipmentsLineItems, s.ShipmentsMode)
	assert.False(t, s.FlattenSizes)
	assert.False(t, s.UseSizeGroups)
	assert.False(t, s.AllDeliveries)
}

func TestLoad(t *testing.T) {
	path := writeSettings(t, `
levels:
  - level: warehouse
    visible: true
  - level: product
    visible: true
  - level: shipment
    visible: false
  - level: sizeGroup
    visible: true
shipmentsMode: BUILD_ORDER
flattenSizes: true
useSizeGroups: true
allDeliveries: true
`)

	s, err := Load(path)
	require.NoError(t, err)

	require.Len(t, s.LevelItems, 4)
	assert.Equal(t, grid.LevelWarehouse, s.LevelItems[0].Level)
	assert.Equal(t, grid.LevelProduct, s.LevelItems[1].Level)
	assert.Equal(t, grid.LevelShipment, s.LevelItems[2].Level)
	assert.False(t, s.LevelItems[2].Visible)
	assert.Equal(t, grid.LevelSizeGroup, s.LevelItems[3].Level)
	assert.Equal(t, grid.ShipmentsBuildOrder, s.ShipmentsMode)
	assert.True(t, s.FlattenSizes)
	assert.True(t, s.UseSizeGroups)
	assert.True(t, s.AllDeliveries)
}

func TestLoadPartialFallsBackToDefaults(t *testing.T) {
	path := writeSettings(t, "useSizeGroups: true\n")

	s, err := Load(path)
	require.NoError(t, err)

	assert.True(t, s.UseSizeGroups)
	assert.Equal(t, Default().LevelItems, s.LevelItems)
	assert.Equal(t, grid.ShipmentsLineItems, s.ShipmentsMode)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown level",
			content: "levels:\n  - level: region\n    visible: true\n",
		},
		{
			name:    "duplicate level",
			content: "levels:\n  - level: product\n  - level: product\n  - level: shipment\n  - level: warehouse\n",
		},
		{
			name:    "missing level",
			content: "levels:\n  - level: product\n    visible: true\n",
		},
		{
			name:    "non-selectable level",
			content: "levels:\n  - level: sizes\n    visible: true\n",
		},
		{
			name:    "bad shipments mode",
			content: "shipmentsMode: WEEKLY\n",
		},
		{
			name:    "malformed yaml",
			content: "levels: [\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSettings(t, tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
