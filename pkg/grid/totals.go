package grid

import "github.com/shopspring/decimal"

// LeafTotals sums quantity and wholesale cost over every size in scope.
// A nil product contributes zero cost.
func LeafTotals(sizes map[string]SizeQuantity, sizeIDs []string, product *Product, scope SizeGroupScope) TotalInfo {
	total := TotalInfo{Cost: decimal.Zero}
	for _, id := range sizeIDs {
		sq, ok := sizes[id]
		if !ok || !scope.Matches(sq.Group) {
			continue
		}
		total.Units += sq.Quantity
		if product != nil && sq.Quantity != 0 {
			total.Cost = total.Cost.Add(product.Wholesale.Mul(decimal.NewFromInt(sq.Quantity)))
		}
	}
	return total
}

// GroupTotals rolls up LeafTotals over every item's own product and size
// map, applying the same scope to each.
func GroupTotals(group []*LineItem, scope SizeGroupScope) TotalInfo {
	total := TotalInfo{Cost: decimal.Zero}
	for _, item := range group {
		total = total.Add(LeafTotals(item.Sizes, item.SizeIDs, item.Product, scope))
	}
	return total
}
