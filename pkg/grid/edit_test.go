package grid

import "testing"

// editFixture builds a two-warehouse tree grouped [product, warehouse], so
// the warehouse leaves are siblings under one product node.
func editFixture(t *testing.T) (*Tree, *GroupNode, *GroupNode, *GroupNode, *LineItem) {
	t.Helper()

	product := newTestProduct("p1", "Crew Tee", "2", sizesOf("S", "M"))
	w1 := newTestWarehouse("w1", "Jersey")
	w2 := newTestWarehouse("w2", "Phoenix")
	shipment := newTestShipment("s1", 0)

	edited := newTestItem(product, w1, shipment, map[string]int64{"S": 10, "M": 5})
	sibling := newTestItem(product, w2, shipment, map[string]int64{"S": 7})

	settings := Settings{LevelItems: levelConfig(LevelProduct, LevelWarehouse)}
	tree, top := BuildTree([]*LineItem{edited, sibling}, settings)
	if len(top.Items) != 1 {
		t.Fatalf("expected 1 root, got %d", len(top.Items))
	}
	root := top.Items[0]
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 warehouse leaves, got %d", len(root.Children))
	}

	leaf := tree.Node(root.Children[0])
	other := tree.Node(root.Children[1])
	if leaf.Warehouse != w1 {
		leaf, other = other, leaf
	}
	return tree, root, leaf, other, edited
}

func TestApplyQuantityEdit(t *testing.T) {
	tree, root, leaf, sibling, source := editFixture(t)

	if root.Total.Units != 22 {
		t.Fatalf("root units = %d, want 22", root.Total.Units)
	}
	siblingBefore := sibling.Total

	if !tree.ApplyQuantityEdit(leaf.Self, "S", 20) {
		t.Fatalf("expected edit to be applied")
	}

	if leaf.Total.Units != 25 {
		t.Errorf("leaf units = %d, want 25", leaf.Total.Units)
	}
	if root.Total.Units != 32 {
		t.Errorf("root units = %d, want 32 (+10)", root.Total.Units)
	}
	if !root.Total.Cost.Equal(mustCost("64")) {
		t.Errorf("root cost = %s, want 64", root.Total.Cost)
	}

	// edit locality: the sibling subtree is untouched
	if sibling.Total.Units != siblingBefore.Units || !sibling.Total.Cost.Equal(siblingBefore.Cost) {
		t.Errorf("sibling totals changed: %+v -> %+v", siblingBefore, sibling.Total)
	}

	// copy-on-write: the shared line item still holds the old quantity
	if source.Sizes["S"].Quantity != 10 {
		t.Errorf("source line item mutated: S = %d", source.Sizes["S"].Quantity)
	}
	if leaf.Sizes["S"].Quantity != 20 {
		t.Errorf("leaf size map not updated: S = %d", leaf.Sizes["S"].Quantity)
	}
}

func TestApplyQuantityEdit_Rejected(t *testing.T) {
	tree, root, leaf, _, _ := editFixture(t)
	before := leaf.Total

	testCases := []struct {
		name     string
		node     NodeID
		sizeKey  string
		quantity int64
	}{
		{name: "negative quantity", node: leaf.Self, sizeKey: "S", quantity: -1},
		{name: "unknown size key", node: leaf.Self, sizeKey: "XXL", quantity: 1},
		{name: "non-leaf node", node: root.Self, sizeKey: "S", quantity: 1},
		{name: "unknown node", node: NodeID(99), sizeKey: "S", quantity: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tree.ApplyQuantityEdit(tc.node, tc.sizeKey, tc.quantity) {
				t.Fatalf("expected edit to be rejected")
			}
			if leaf.Total.Units != before.Units || !leaf.Total.Cost.Equal(before.Cost) {
				t.Errorf("rejected edit left a partial mutation")
			}
		})
	}
}

func TestApplyQuantityEdit_ScopedLeaf(t *testing.T) {
	product := newTestProduct("p1", "Split Tee", "2", sizesOf("Men:S", "Women:S"))
	warehouse := newTestWarehouse("w1", "Jersey")
	shipment := newTestShipment("s1", 0)
	item := newTestItem(product, warehouse, shipment, map[string]int64{"Men - S": 1, "Women - S": 2})

	settings := Settings{
		LevelItems:    levelConfig(LevelProduct, LevelSizeGroup),
		UseSizeGroups: true,
	}
	tree, top := BuildTree([]*LineItem{item}, settings)
	root := top.Items[0]

	var men *GroupNode
	for _, id := range root.Children {
		if node := tree.Node(id); node.ID == "Men" {
			men = node
		}
	}
	if men == nil {
		t.Fatalf("Men leaf not found")
	}

	// a size outside the leaf's scope is not editable through it
	if tree.ApplyQuantityEdit(men.Self, "Women - S", 5) {
		t.Fatalf("edit through a foreign size group leaf must be rejected")
	}

	if !tree.ApplyQuantityEdit(men.Self, "Men - S", 4) {
		t.Fatalf("expected scoped edit to be applied")
	}
	if men.Total.Units != 4 {
		t.Errorf("Men units = %d, want 4", men.Total.Units)
	}
	if root.Total.Units != 6 {
		t.Errorf("root units = %d, want 6", root.Total.Units)
	}
}
