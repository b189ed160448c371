package grid

import "testing"

func TestItemID(t *testing.T) {
	product := newTestProduct("p1", "Crew Tee", "2", nil)
	warehouse := newTestWarehouse("w1", "Jersey")
	shipment := newTestShipment("s1", 0)

	want := "product:p1;warehouse:w1;shipment:s1"
	if got := ItemID(product, warehouse, shipment); got != want {
		t.Errorf("ItemID() = %q, want %q", got, want)
	}
}

func TestSizeKey(t *testing.T) {
	if got := SizeKey("S", ""); got != "S" {
		t.Errorf("SizeKey(S, ) = %q", got)
	}
	if got := SizeKey("S", "Men"); got != "Men - S" {
		t.Errorf("SizeKey(S, Men) = %q", got)
	}
}

func TestCollectEntities(t *testing.T) {
	items := fixtureItems()
	bucket := CollectEntities(items)

	if len(bucket.ItemIDs) != len(items) {
		t.Errorf("item ids = %d, want %d", len(bucket.ItemIDs), len(items))
	}
	if len(bucket.Products) != 2 {
		t.Errorf("products = %d, want 2", len(bucket.Products))
	}
	if len(bucket.Warehouses) != 2 {
		t.Errorf("warehouses = %d, want 2", len(bucket.Warehouses))
	}
	if len(bucket.Shipments) != 2 {
		t.Errorf("shipments = %d, want 2", len(bucket.Shipments))
	}
	// Men, Women from the split product, "" from the plain one
	if len(bucket.SizeGroups) != 3 {
		t.Errorf("size groups = %d, want 3", len(bucket.SizeGroups))
	}
}

func TestCollectEntities_Empty(t *testing.T) {
	bucket := CollectEntities(nil)
	if len(bucket.ItemIDs) != 0 || len(bucket.Products) != 0 {
		t.Errorf("expected empty bucket")
	}
}

func TestEntityBucketSorted(t *testing.T) {
	items := fixtureItems()
	bucket := CollectEntities(items)

	products := bucket.SortedProducts()
	if products[0].Name != "Plain Hoodie" || products[1].Name != "Split Tee" {
		t.Errorf("products not sorted by name: %s, %s", products[0].Name, products[1].Name)
	}

	shipments := bucket.SortedShipments()
	if !shipments[0].StartDate.Before(shipments[1].StartDate) {
		t.Errorf("shipments not sorted by start date")
	}
}
