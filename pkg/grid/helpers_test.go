package grid

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// sizesOf builds declared sizes from "name" or "group:name" specs.
func sizesOf(specs ...string) []Size {
	sizes := make([]Size, 0, len(specs))
	for _, spec := range specs {
		group, name, ok := strings.Cut(spec, ":")
		if !ok {
			sizes = append(sizes, Size{ID: spec, Name: spec})
			continue
		}
		sizes = append(sizes, Size{ID: group + " - " + name, Name: name, Group: group})
	}
	return sizes
}

func newTestProduct(id, name, wholesale string, sizes []Size) *Product {
	return &Product{
		ID:        id,
		Name:      name,
		Wholesale: decimal.RequireFromString(wholesale),
		Retail:    decimal.RequireFromString(wholesale).Mul(decimal.NewFromInt(2)),
		Sizes:     sizes,
	}
}

func newTestWarehouse(id, name string) *Warehouse {
	return &Warehouse{ID: id, Name: name, Code: strings.ToUpper(id)}
}

func newTestShipment(id string, startOffsetDays int) *Shipment {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, startOffsetDays)
	return &Shipment{ID: id, StartDate: start, EndDate: start.AddDate(0, 0, 7)}
}

func newTestItem(product *Product, warehouse *Warehouse, shipment *Shipment, quantities map[string]int64) *LineItem {
	sizes, sizeIDs := SizeQuantities(product.Sizes)
	for key, quantity := range quantities {
		sq := sizes[key]
		sq.Quantity = quantity
		sizes[key] = sq
	}
	return &LineItem{
		ID:        ItemID(product, warehouse, shipment),
		Product:   product,
		Warehouse: warehouse,
		Shipment:  shipment,
		Sizes:     sizes,
		SizeIDs:   sizeIDs,
	}
}

// levelConfig builds a configuration in canonical order with the given
// levels visible.
func levelConfig(visible ...Level) []LevelItem {
	items := make([]LevelItem, 0, len(SelectableLevels))
	for _, level := range SelectableLevels {
		item := LevelItem{Level: level}
		for _, v := range visible {
			if v == level {
				item.Visible = true
			}
		}
		items = append(items, item)
	}
	return items
}

func levelNames(levels []Level) string {
	names := make([]string, len(levels))
	for i, level := range levels {
		names[i] = level.String()
	}
	return strings.Join(names, ",")
}

func configNames(items []LevelItem) string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Level.String()
		if item.Visible {
			names[i] += "+"
		}
	}
	return strings.Join(names, ",")
}

func mustCost(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
