package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ordergrid/pkg/grid"
	"github.com/vsinha/ordergrid/pkg/interfaces/cli/output"
)

func main() {
	items := setupSpringOrders()

	// Group by product, then warehouse, with shipments hidden
	settings := grid.Settings{
		LevelItems: []grid.LevelItem{
			{Level: grid.LevelProduct, Visible: true},
			{Level: grid.LevelWarehouse, Visible: true},
			{Level: grid.LevelShipment},
			{Level: grid.LevelSizeGroup},
		},
		ShipmentsMode: grid.ShipmentsLineItems,
	}

	fmt.Println("Building order grid for the spring drop...")
	fmt.Printf("Line items: %d\n\n", len(items))

	tree, top := grid.BuildTree(items, settings)

	fmt.Println("Grouped by product and warehouse:")
	if err := output.Render(os.Stdout, tree, top.Items, "text"); err != nil {
		fmt.Printf("Render failed: %v\n", err)
		return
	}
	fmt.Println()

	// Bump a leaf quantity and watch the totals reaggregate
	leaf := findFirstLeaf(tree, top.Items)
	if leaf == nil {
		return
	}
	sizeKey := leaf.SizeIDs[0]
	newQuantity := leaf.Sizes[sizeKey].Quantity + 10

	fmt.Printf("Editing node %d: %q to %d units...\n\n", leaf.Self, sizeKey, newQuantity)
	if !tree.ApplyQuantityEdit(leaf.Self, sizeKey, newQuantity) {
		fmt.Println("Edit rejected")
		return
	}

	fmt.Println("After the edit:")
	if err := output.Render(os.Stdout, tree, top.Items, "text"); err != nil {
		fmt.Printf("Render failed: %v\n", err)
	}
}

func findFirstLeaf(tree *grid.Tree, nodes []*grid.GroupNode) *grid.GroupNode {
	for _, node := range nodes {
		if len(node.Children) == 0 {
			if node.Sizes != nil {
				return node
			}
			continue
		}
		children := make([]*grid.GroupNode, 0, len(node.Children))
		for _, id := range node.Children {
			children = append(children, tree.Node(id))
		}
		if leaf := findFirstLeaf(tree, children); leaf != nil {
			return leaf
		}
	}
	return nil
}

func setupSpringOrders() []*grid.LineItem {
	tee := &grid.Product{
		ID:         "P-TEE",
		Name:       "Harbor Tee",
		Color:      "Navy",
		Department: "Menswear",
		Wholesale:  decimal.NewFromFloat(8.50),
		Retail:     decimal.NewFromFloat(24.00),
		Sizes: []grid.Size{
			{ID: "s1", Name: "S", Group: "Men"},
			{ID: "s2", Name: "M", Group: "Men"},
			{ID: "s3", Name: "L", Group: "Men"},
		},
	}

	hat := &grid.Product{
		ID:         "P-CAP",
		Name:       "Dock Cap",
		Color:      "Stone",
		Department: "Accessories",
		Wholesale:  decimal.NewFromFloat(4.25),
		Retail:     decimal.NewFromFloat(15.00),
		Sizes: []grid.Size{
			{ID: "c1", Name: "OS"},
		},
	}

	east := &grid.Warehouse{ID: "W-EAST", Name: "East Coast DC", Code: "EST", Country: "US", Zip: "10001"}
	west := &grid.Warehouse{ID: "W-WEST", Name: "West Coast DC", Code: "WST", Country: "US", Zip: "94103"}

	march := &grid.Shipment{
		ID:        "SHIP-MAR",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	return []*grid.LineItem{
		newItem(tee, east, march, map[string]int64{"Men - S": 20, "Men - M": 35, "Men - L": 15}),
		newItem(tee, west, march, map[string]int64{"Men - S": 10, "Men - M": 25, "Men - L": 5}),
		newItem(hat, east, march, map[string]int64{"OS": 50}),
	}
}

func newItem(product *grid.Product, warehouse *grid.Warehouse, shipment *grid.Shipment, quantities map[string]int64) *grid.LineItem {
	sizes, sizeIDs := grid.SizeQuantities(product.Sizes)
	for key, quantity := range quantities {
		entry := sizes[key]
		entry.Quantity = quantity
		sizes[key] = entry
	}

	return &grid.LineItem{
		ID:        grid.ItemID(product, warehouse, shipment),
		Product:   product,
		Warehouse: warehouse,
		Shipment:  shipment,
		Sizes:     sizes,
		SizeIDs:   sizeIDs,
	}
}
