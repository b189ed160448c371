package grid

import "github.com/shopspring/decimal"

// ApplyQuantityEdit commits a single size-quantity change on a leaf node
// and walks the parent chain recomputing ancestor totals from their
// children's current totals. The leaf's size map is replaced copy-on-write,
// so the shared source line item is never mutated. Returns false, with no
// change applied, for a negative quantity, a non-leaf node, or a size key
// absent from the leaf's map.
func (t *Tree) ApplyQuantityEdit(id NodeID, sizeKey string, quantity int64) bool {
	node := t.Node(id)
	if node == nil || node.Sizes == nil || quantity < 0 {
		return false
	}
	sq, ok := node.Sizes[sizeKey]
	if !ok {
		return false
	}

	sizes := make(map[string]SizeQuantity, len(node.Sizes))
	for key, value := range node.Sizes {
		sizes[key] = value
	}
	sq.Quantity = quantity
	sizes[sizeKey] = sq
	node.Sizes = sizes

	product := node.Product
	if product == nil && len(node.Group) > 0 {
		product = node.Group[0].Product
	}
	node.Total = LeafTotals(node.Sizes, node.SizeIDs, product, node.SizeGroup)

	// ancestors trust already-updated child totals; no re-aggregation
	// from raw items happens on this path
	for parentID := node.Parent; parentID != NoNode; {
		parent := t.Node(parentID)
		if parent == nil {
			break
		}
		total := TotalInfo{Cost: decimal.Zero}
		for _, childID := range parent.Children {
			if child := t.Node(childID); child != nil {
				total = total.Add(child.Total)
			}
		}
		parent.Total = total
		parentID = parent.Parent
	}

	return true
}
