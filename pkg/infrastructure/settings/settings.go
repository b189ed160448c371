// Package settings loads the grid view settings (level order, visibility
// and mode flags) from YAML.
package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/ordergrid/pkg/grid"
)

// file mirrors the YAML shape of a view-settings document.
type file struct {
	Levels        []levelEntry `yaml:"levels"`
	ShipmentsMode string       `yaml:"shipmentsMode"`
	FlattenSizes  bool         `yaml:"flattenSizes"`
	UseSizeGroups bool         `yaml:"useSizeGroups"`
	AllDeliveries bool         `yaml:"allDeliveries"`
}

type levelEntry struct {
	Level   string `yaml:"level"`
	Visible bool   `yaml:"visible"`
}

// Default returns the stock view settings: group by product and shipment,
// shipments assigned per line item, size groups off.
func Default() grid.Settings {
	return grid.Settings{
		LevelItems: []grid.LevelItem{
			{Level: grid.LevelProduct, Visible: true},
			{Level: grid.LevelShipment, Visible: true},
			{Level: grid.LevelWarehouse},
			{Level: grid.LevelSizeGroup},
		},
		ShipmentsMode: grid.ShipmentsLineItems,
	}
}

// Load reads view settings from a YAML file. Omitted sections fall back to
// the defaults; a levels section must cover every selectable level exactly
// once.
func Load(path string) (grid.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grid.Settings{}, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return grid.Settings{}, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	return f.toSettings()
}

func (f file) toSettings() (grid.Settings, error) {
	result := Default()
	result.FlattenSizes = f.FlattenSizes
	result.UseSizeGroups = f.UseSizeGroups
	result.AllDeliveries = f.AllDeliveries

	if f.ShipmentsMode != "" {
		mode, err := grid.ParseShipmentsMode(f.ShipmentsMode)
		if err != nil {
			return grid.Settings{}, err
		}
		result.ShipmentsMode = mode
	}

	if len(f.Levels) == 0 {
		return result, nil
	}

	items := make([]grid.LevelItem, 0, len(f.Levels))
	seen := make(map[grid.Level]bool)
	for _, entry := range f.Levels {
		level, err := grid.ParseLevel(entry.Level)
		if err != nil {
			return grid.Settings{}, err
		}
		if !level.Selectable() {
			return grid.Settings{}, fmt.Errorf("level %q is not selectable", entry.Level)
		}
		if seen[level] {
			return grid.Settings{}, fmt.Errorf("level %q listed twice", entry.Level)
		}
		seen[level] = true
		items = append(items, grid.LevelItem{Level: level, Visible: entry.Visible})
	}
	for _, level := range grid.SelectableLevels {
		if !seen[level] {
			return grid.Settings{}, fmt.Errorf("level %q missing from configuration", level)
		}
	}

	result.LevelItems = items
	return result, nil
}
