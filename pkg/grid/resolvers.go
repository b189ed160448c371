package grid

import "sort"

// ItemID builds the composite identity of a line item.
func ItemID(product *Product, warehouse *Warehouse, shipment *Shipment) string {
	return "product:" + product.ID + ";warehouse:" + warehouse.ID + ";shipment:" + shipment.ID
}

// SizeKey builds the size-quantity map key for a size name and group label.
func SizeKey(name, group string) string {
	if group == "" {
		return name
	}
	return group + " - " + name
}

// itemLevelKey resolves the entity identity a line item carries for one
// level. Levels without an item field contribute an empty component.
func itemLevelKey(item *LineItem, level Level) string {
	switch level {
	case LevelProduct:
		return item.Product.ID
	case LevelWarehouse:
		return item.Warehouse.ID
	case LevelShipment:
		return item.Shipment.ID
	default:
		return ""
	}
}

// NewEntityBucket returns an empty bucket ready to collect into.
func NewEntityBucket() *EntityBucket {
	return &EntityBucket{
		ItemIDs:    make(map[string]struct{}),
		Products:   make(map[string]*Product),
		Warehouses: make(map[string]*Warehouse),
		Shipments:  make(map[string]*Shipment),
		SizeGroups: make(map[string]struct{}),
	}
}

// CollectEntities scans items once and returns the deduplicated reference
// maps plus the set of item ids seen. Empty input yields empty maps.
func CollectEntities(items []*LineItem) *EntityBucket {
	bucket := NewEntityBucket()
	for _, item := range items {
		bucket.addItem(item)
	}
	return bucket
}

func (b *EntityBucket) addItem(item *LineItem) {
	b.ItemIDs[item.ID] = struct{}{}

	if _, ok := b.Products[item.Product.ID]; !ok {
		b.Products[item.Product.ID] = item.Product
	}
	if _, ok := b.Warehouses[item.Warehouse.ID]; !ok {
		b.Warehouses[item.Warehouse.ID] = item.Warehouse
	}
	if _, ok := b.Shipments[item.Shipment.ID]; !ok {
		b.Shipments[item.Shipment.ID] = item.Shipment
	}
	for _, size := range item.Product.Sizes {
		if _, ok := b.SizeGroups[size.Group]; !ok {
			b.SizeGroups[size.Group] = struct{}{}
		}
	}
}

// SortedProducts returns the collected products ordered by name, then id.
func (b *EntityBucket) SortedProducts() []*Product {
	products := make([]*Product, 0, len(b.Products))
	for _, p := range b.Products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Name != products[j].Name {
			return products[i].Name < products[j].Name
		}
		return products[i].ID < products[j].ID
	})
	return products
}

// SortedWarehouses returns the collected warehouses ordered by name, then id.
func (b *EntityBucket) SortedWarehouses() []*Warehouse {
	warehouses := make([]*Warehouse, 0, len(b.Warehouses))
	for _, w := range b.Warehouses {
		warehouses = append(warehouses, w)
	}
	sort.Slice(warehouses, func(i, j int) bool {
		if warehouses[i].Name != warehouses[j].Name {
			return warehouses[i].Name < warehouses[j].Name
		}
		return warehouses[i].ID < warehouses[j].ID
	})
	return warehouses
}

// SortedShipments returns the collected shipments ordered by start date,
// end date, then id.
func (b *EntityBucket) SortedShipments() []*Shipment {
	shipments := make([]*Shipment, 0, len(b.Shipments))
	for _, s := range b.Shipments {
		shipments = append(shipments, s)
	}
	sort.Slice(shipments, func(i, j int) bool {
		a, z := shipments[i], shipments[j]
		if !a.StartDate.Equal(z.StartDate) {
			return a.StartDate.Before(z.StartDate)
		}
		if !a.EndDate.Equal(z.EndDate) {
			return a.EndDate.Before(z.EndDate)
		}
		return a.ID < z.ID
	})
	return shipments
}
