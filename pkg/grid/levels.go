package grid

// LevelIndices maps each level of an effective level sequence to its index.
type LevelIndices map[Level]int

// LevelIndicesOf builds the index map for a level sequence.
func LevelIndicesOf(levels []Level) LevelIndices {
	indices := make(LevelIndices, len(levels))
	for i, level := range levels {
		indices[level] = i
	}
	return indices
}

// LevelItemIndex returns the position of a level in the configuration, or -1.
func LevelItemIndex(items []LevelItem, level Level) int {
	for i, item := range items {
		if item.Level == level {
			return i
		}
	}
	return -1
}

// ResolveDisplayLevels computes the effective, visible level sequence to
// group by. The sizeGroup entry is dropped when size groups are disabled,
// and in flatten-sizes mode it survives only above the product entry. When
// the deepest visible level is product and sizes are not flattened, the
// terminal sizes pseudo-level is appended so the leaf quantity columns get
// an explicit slot.
func ResolveDisplayLevels(s Settings) []Level {
	productIndex := LevelItemIndex(s.LevelItems, LevelProduct)

	result := make([]Level, 0, len(s.LevelItems)+1)
	for i, item := range s.LevelItems {
		if !item.Visible {
			continue
		}
		if item.Level == LevelSizeGroup {
			if !s.UseSizeGroups {
				continue
			}
			if s.FlattenSizes && i > productIndex {
				continue
			}
		}
		result = append(result, item.Level)
	}

	if !s.FlattenSizes && len(result) > 0 && result[len(result)-1] == LevelProduct {
		result = append(result, LevelSizes)
	}

	return result
}

// FixupLevelItems repairs a level configuration after any visibility, order
// or mode change. In flatten-sizes mode product is moved below shipment,
// warehouse and sizeGroup; with per-line shipments the shipment level is
// moved below product and warehouse; with size groups disabled the
// sizeGroup entry's visibility is forced off. Flatten-sizes is applied
// first when both reorder rules compete. The changed flag reports whether
// anything moved, so callers can skip their state update; re-running on the
// returned configuration is a no-op.
func FixupLevelItems(s Settings) ([]LevelItem, bool) {
	items := make([]LevelItem, len(s.LevelItems))
	copy(items, s.LevelItems)
	changed := false

	if s.FlattenSizes {
		if reorderBelow(items, LevelProduct, LevelShipment, LevelWarehouse, LevelSizeGroup) {
			changed = true
		}
	}
	// the shipment rule is suspended in flatten-sizes mode: the two rules
	// pull shipment and product in opposite directions, and flatten-sizes
	// takes precedence
	if !s.FlattenSizes && s.ShipmentsMode == ShipmentsLineItems {
		if reorderBelow(items, LevelShipment, LevelProduct, LevelWarehouse) {
			changed = true
		}
	}
	if !s.UseSizeGroups {
		if i := LevelItemIndex(items, LevelSizeGroup); i >= 0 && items[i].Visible {
			items[i].Visible = false
			changed = true
		}
	}

	if !changed {
		return s.LevelItems, false
	}
	return items, true
}

// reorderBelow splices the target level to just after the furthest of the
// related levels when any of them currently sits beneath it.
func reorderBelow(items []LevelItem, level Level, relatedTo ...Level) bool {
	maxRelated := -1
	for _, related := range relatedTo {
		if i := LevelItemIndex(items, related); i > maxRelated {
			maxRelated = i
		}
	}
	target := LevelItemIndex(items, level)
	if target < 0 || maxRelated < 0 || target >= maxRelated {
		return false
	}

	moved := items[target]
	copy(items[target:], items[target+1:maxRelated+1])
	items[maxRelated] = moved
	return true
}

// ToggleLevelItem switches one level's visibility, returning a new
// configuration. Grouping by product is mandatory, so turning it off is
// ignored.
func ToggleLevelItem(items []LevelItem, level Level, visible bool) []LevelItem {
	if level == LevelProduct && !visible {
		return items
	}
	result := make([]LevelItem, len(items))
	copy(result, items)
	if i := LevelItemIndex(result, level); i >= 0 {
		result[i].Visible = visible
	}
	return result
}

// NarrowLevels drops a pending sizeGroup level from the remaining sequence
// when the product fixed above this depth declares no size groups, the way
// an expansion of such a product renders no size-group tier. The terminal
// sizes pseudo-level is re-appended when the trimmed sequence now ends at
// the current depth. Returns the inputs unchanged when nothing applies.
func NarrowLevels(levels []Level, levelIndex int, indices LevelIndices, parent *GroupNode, s Settings) ([]Level, LevelIndices) {
	productIndex, productFixed := indices[LevelProduct]
	if !productFixed || productIndex >= levelIndex || parent == nil || len(parent.Group) == 0 {
		return levels, indices
	}
	product := parent.Group[0].Product
	if product.HasSizeGroups() {
		return levels, indices
	}

	sizeGroupIndex, ok := indices[LevelSizeGroup]
	if !ok || sizeGroupIndex < levelIndex {
		return levels, indices
	}

	local := make([]Level, 0, len(levels))
	local = append(local, levels[:sizeGroupIndex]...)
	local = append(local, levels[sizeGroupIndex+1:]...)
	if len(local) == levelIndex && !s.FlattenSizes {
		local = append(local, LevelSizes)
	}
	return local, LevelIndicesOf(local)
}
