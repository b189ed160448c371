package grid

// SizeQuantities derives a fresh zero-quantity size map from a product's
// declared sizes, keyed the same way line items key theirs.
func SizeQuantities(sizes []Size) (map[string]SizeQuantity, []string) {
	quantities := make(map[string]SizeQuantity, len(sizes))
	ids := make([]string, 0, len(sizes))
	for _, size := range sizes {
		key := SizeKey(size.Name, size.Group)
		ids = append(ids, key)
		quantities[key] = SizeQuantity{Size: size, Quantity: 0}
	}
	return quantities, ids
}

// PrepareItems fills in the line items missing from the product x warehouse
// x shipment matrix with zero-quantity entries, so every grid cell exists.
// It applies when all-deliveries mode is on or shipments come from the
// build order; build-order shipments are merged into the shipment set
// first. Collected entities are walked in natural sort order to keep the
// appended items deterministic.
func PrepareItems(items []*LineItem, s Settings, buildOrderShipments []*Shipment) []*LineItem {
	if !s.AllDeliveries && s.ShipmentsMode != ShipmentsBuildOrder {
		return items
	}

	entities := CollectEntities(items)
	if s.ShipmentsMode == ShipmentsBuildOrder {
		for _, shipment := range buildOrderShipments {
			entities.Shipments[shipment.ID] = shipment
		}
	}

	warehouses := entities.SortedWarehouses()
	shipments := entities.SortedShipments()

	result := make([]*LineItem, len(items), len(items)+len(entities.Products))
	copy(result, items)

	for _, product := range entities.SortedProducts() {
		var sizes map[string]SizeQuantity
		var sizeIDs []string

		for _, warehouse := range warehouses {
			for _, shipment := range shipments {
				id := ItemID(product, warehouse, shipment)
				if _, ok := entities.ItemIDs[id]; ok {
					continue
				}
				if sizes == nil {
					sizes, sizeIDs = SizeQuantities(product.Sizes)
				}
				result = append(result, &LineItem{
					ID:        id,
					Product:   product,
					Warehouse: warehouse,
					Shipment:  shipment,
					Sizes:     cloneSizeQuantities(sizes),
					SizeIDs:   append([]string(nil), sizeIDs...),
				})
			}
		}
	}

	return result
}

func cloneSizeQuantities(sizes map[string]SizeQuantity) map[string]SizeQuantity {
	cloned := make(map[string]SizeQuantity, len(sizes))
	for key, sq := range sizes {
		cloned[key] = sq
	}
	return cloned
}
