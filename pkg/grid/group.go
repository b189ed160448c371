package grid

import (
	"sort"
	"strings"
)

// bucket is one partition of a level's items, keyed during grouping.
type bucket struct {
	id    string
	scope SizeGroupScope
	items []*LineItem
}

// GroupItems partitions items for the level at levelIndex, builds a group
// node per bucket and registers the nodes in the tree under parent. An
// out-of-range levelIndex or empty input returns an empty result: there is
// nothing left to group by.
func (t *Tree) GroupItems(items []*LineItem, levels []Level, levelIndex int, indices LevelIndices, parent NodeID) LevelData {
	entities := NewEntityBucket()
	data := LevelData{Entities: entities}
	if levelIndex < 0 || levelIndex >= len(levels) || len(items) == 0 {
		return data
	}
	level := levels[levelIndex]

	// product is fixed once the product level was grouped above this one
	var product *Product
	if productIndex, ok := indices[LevelProduct]; ok && productIndex < levelIndex {
		product = items[0].Product
		entities.Products[product.ID] = product
	}

	var buckets []*bucket
	switch level {
	case LevelSizeGroup:
		if product != nil {
			buckets = groupBySizeGroupWithinProduct(product, items)
		} else {
			buckets = groupBySizeGroupOverProducts(items, entities)
		}
	default:
		buckets = groupByEntity(level, levelIndex, indices, items)
	}

	parentScope := SizeGroupScope{}
	if parentNode := t.Node(parent); parentNode != nil {
		if sizeGroupIndex, ok := indices[LevelSizeGroup]; ok && sizeGroupIndex < levelIndex {
			parentScope = parentNode.SizeGroup
		}
	}

	propLevels := fixedLevels(indices, levelIndex)
	leaf := levelIndex == len(levels)-1

	nodes := make([]*GroupNode, 0, len(buckets))
	for _, b := range buckets {
		scope := parentScope
		if level == LevelSizeGroup {
			scope = b.scope
		}

		node := &GroupNode{
			ID:        b.id,
			Level:     level,
			Group:     b.items,
			Parent:    parent,
			SizeGroup: scope,
		}
		if leaf {
			node.Sizes, node.SizeIDs = sizesByScope(b.items[0], scope)
			node.Total = LeafTotals(node.Sizes, node.SizeIDs, b.items[0].Product, scope)
		} else {
			node.Total = GroupTotals(b.items, scope)
		}

		for _, l := range propLevels {
			switch l {
			case LevelProduct:
				node.Product = b.items[0].Product
			case LevelWarehouse:
				node.Warehouse = b.items[0].Warehouse
			case LevelShipment:
				node.Shipment = b.items[0].Shipment
			}
		}

		nodes = append(nodes, node)
	}

	sortNodes(nodes, level, propLevels)

	for _, node := range nodes {
		t.add(node)
	}
	data.Items = nodes
	return data
}

// fixedLevels lists the levels whose attribute is already resolved at this
// depth: grouped at or above it, or absent from the configuration entirely.
func fixedLevels(indices LevelIndices, levelIndex int) []Level {
	result := make([]Level, 0, len(SelectableLevels))
	for _, l := range SelectableLevels {
		if i, ok := indices[l]; !ok || i <= levelIndex {
			result = append(result, l)
		}
	}
	return result
}

// groupByEntity partitions by the current level's entity identity. At the
// top level the key also carries the identity of every dimension missing
// from the configuration, so un-grouped dimensions still split the rows.
func groupByEntity(level Level, levelIndex int, indices LevelIndices, items []*LineItem) []*bucket {
	idLevels := make([]Level, 0, len(SelectableLevels)+1)
	seen := false
	for _, l := range SelectableLevels {
		_, visible := indices[l]
		if l == level {
			seen = true
		}
		if l == level || (levelIndex == 0 && !visible) {
			idLevels = append(idLevels, l)
		}
	}
	if !seen {
		idLevels = append(idLevels, level)
	}

	itemKey := func(item *LineItem) string {
		parts := make([]string, len(idLevels))
		for i, l := range idLevels {
			parts[i] = l.String() + ":" + itemLevelKey(item, l)
		}
		return strings.Join(parts, ";")
	}

	byID := make(map[string]*bucket)
	var buckets []*bucket
	for _, item := range items {
		key := itemKey(item)
		b, ok := byID[key]
		if !ok {
			b = &bucket{id: key}
			byID[key] = b
			buckets = append(buckets, b)
		}
		b.items = append(b.items, item)
	}
	return buckets
}

// groupBySizeGroupWithinProduct builds one bucket per size group declared
// on the fixed product, the no-group bucket included when some sizes carry
// no label. Every bucket holds the full item collection: this level
// reshapes for leaf filtering rather than partitioning the flat set.
func groupBySizeGroupWithinProduct(product *Product, items []*LineItem) []*bucket {
	var buckets []*bucket
	seen := make(map[string]struct{})
	for _, size := range product.Sizes {
		if _, ok := seen[size.Group]; ok {
			continue
		}
		seen[size.Group] = struct{}{}
		scope := SizeGroupScope{Label: size.Group, Scoped: true}
		buckets = append(buckets, &bucket{
			id:    scope.BucketID(),
			scope: scope,
			items: items,
		})
	}
	return buckets
}

// groupBySizeGroupOverProducts buckets by every size group encountered
// across all items' products; an item joins each group its own product
// declares, at most once per group.
func groupBySizeGroupOverProducts(items []*LineItem, entities *EntityBucket) []*bucket {
	byGroup := make(map[string]*bucket)
	var buckets []*bucket
	for _, item := range items {
		seen := make(map[string]struct{})
		for _, size := range item.Product.Sizes {
			if _, ok := seen[size.Group]; ok {
				continue
			}
			seen[size.Group] = struct{}{}

			b, ok := byGroup[size.Group]
			if !ok {
				scope := SizeGroupScope{Label: size.Group, Scoped: true}
				b = &bucket{id: scope.BucketID(), scope: scope}
				byGroup[size.Group] = b
				buckets = append(buckets, b)
			}
			b.items = append(b.items, item)
		}
		entities.addItem(item)
	}
	return buckets
}

// sizesByScope returns the item's size-quantity map restricted to the
// scope. The unrestricted case returns the item's own map; a restricted
// map is a fresh derivation, never a mutation of the source item.
func sizesByScope(item *LineItem, scope SizeGroupScope) (map[string]SizeQuantity, []string) {
	if !scope.Scoped {
		return item.Sizes, item.SizeIDs
	}
	sizes := make(map[string]SizeQuantity)
	ids := make([]string, 0, len(item.SizeIDs))
	for _, id := range item.SizeIDs {
		sq, ok := item.Sizes[id]
		if !ok || !scope.Matches(sq.Group) {
			continue
		}
		sizes[id] = sq
		ids = append(ids, id)
	}
	return sizes, ids
}

// sortNodes orders nodes by the current level's natural order, then by the
// other fixed attributes. The sort is stable, so ties keep source order.
func sortNodes(nodes []*GroupNode, level Level, propLevels []Level) {
	sortLevels := make([]Level, 0, len(propLevels)+1)
	sortLevels = append(sortLevels, level)
	for _, l := range propLevels {
		if l != level {
			sortLevels = append(sortLevels, l)
		}
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		for _, l := range sortLevels {
			if c := compareNodesAt(nodes[i], nodes[j], l); c != 0 {
				return c < 0
			}
		}
		return false
	})
}

func compareNodesAt(a, b *GroupNode, level Level) int {
	switch level {
	case LevelProduct:
		if a.Product == nil || b.Product == nil {
			return 0
		}
		return strings.Compare(a.Product.Name, b.Product.Name)
	case LevelWarehouse:
		if a.Warehouse == nil || b.Warehouse == nil {
			return 0
		}
		return strings.Compare(a.Warehouse.Name, b.Warehouse.Name)
	case LevelShipment:
		if a.Shipment == nil || b.Shipment == nil {
			return 0
		}
		if c := a.Shipment.StartDate.Compare(b.Shipment.StartDate); c != 0 {
			return c
		}
		return a.Shipment.EndDate.Compare(b.Shipment.EndDate)
	case LevelSizeGroup:
		return strings.Compare(a.SizeGroup.Label, b.SizeGroup.Label)
	default:
		return 0
	}
}
