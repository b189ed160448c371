package grid

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Level identifies one grouping dimension of the order matrix.
type Level uint8

const (
	LevelProduct Level = iota
	LevelShipment
	LevelWarehouse
	LevelSizeGroup
	// LevelSizes is the terminal pseudo-level carrying the leaf quantity
	// columns. It is never a selectable grouping dimension.
	LevelSizes
)

// SelectableLevels is the fixed vocabulary of dimensions a configuration can
// group by. The order is load-bearing: composite top-level keys and the
// secondary sort both walk it.
var SelectableLevels = [...]Level{LevelProduct, LevelShipment, LevelWarehouse, LevelSizeGroup}

func (l Level) String() string {
	switch l {
	case LevelProduct:
		return "product"
	case LevelShipment:
		return "shipment"
	case LevelWarehouse:
		return "warehouse"
	case LevelSizeGroup:
		return "sizeGroup"
	case LevelSizes:
		return "sizes"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name as it appears in configuration files.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "product":
		return LevelProduct, nil
	case "shipment":
		return LevelShipment, nil
	case "warehouse":
		return LevelWarehouse, nil
	case "sizeGroup":
		return LevelSizeGroup, nil
	case "sizes":
		return LevelSizes, nil
	default:
		return 0, fmt.Errorf("unknown level %q", s)
	}
}

// Selectable reports whether the level is a grouping dimension a user can
// enable, as opposed to the terminal sizes pseudo-level.
func (l Level) Selectable() bool {
	return l != LevelSizes
}

// ShipmentsMode specifies how shipments are assigned to order line items.
type ShipmentsMode uint8

const (
	// ShipmentsBuildOrder gives all items the shipments of the build order.
	ShipmentsBuildOrder ShipmentsMode = iota
	// ShipmentsLineItems gives each item its own shipments.
	ShipmentsLineItems
)

func (m ShipmentsMode) String() string {
	switch m {
	case ShipmentsBuildOrder:
		return "BUILD_ORDER"
	case ShipmentsLineItems:
		return "LINE_ITEMS"
	default:
		return "unknown"
	}
}

// ParseShipmentsMode converts a mode name as it appears in configuration files.
func ParseShipmentsMode(s string) (ShipmentsMode, error) {
	switch s {
	case "BUILD_ORDER":
		return ShipmentsBuildOrder, nil
	case "LINE_ITEMS":
		return ShipmentsLineItems, nil
	default:
		return 0, fmt.Errorf("unknown shipments mode %q", s)
	}
}

// LevelItem is one entry of the level configuration. An invisible level is
// not grouped by; its attribute is rendered as a plain column instead.
type LevelItem struct {
	Level   Level
	Visible bool
}

// Settings is the full grouping context: the ordered level configuration
// plus the mode flags, passed explicitly to every engine operation.
type Settings struct {
	LevelItems    []LevelItem
	ShipmentsMode ShipmentsMode
	FlattenSizes  bool
	UseSizeGroups bool
	AllDeliveries bool
}

// Size is a single declared size of a product.
type Size struct {
	ID   string
	Name string
	// Group is the size-group label; empty means the size belongs to none.
	Group string
}

// Product is a sellable article with its declared size range.
type Product struct {
	ID         string
	Name       string
	Color      string
	Department string
	Wholesale  decimal.Decimal
	Retail     decimal.Decimal
	Sizes      []Size
}

// HasSizeGroups reports whether any declared size carries a group label.
func (p *Product) HasSizeGroups() bool {
	for _, size := range p.Sizes {
		if size.Group != "" {
			return true
		}
	}
	return false
}

// Warehouse is a stock location.
type Warehouse struct {
	ID      string
	Name    string
	Code    string
	Country string
	Zip     string
}

// Shipment is a delivery window.
type Shipment struct {
	ID           string
	StartDate    time.Time
	EndDate      time.Time
	IsBuildOrder bool
}

// SizeQuantity is one size of a line item together with its ordered quantity.
type SizeQuantity struct {
	Size
	Quantity int64
}

// LineItem is the flat, immutable input unit: one product at one warehouse
// for one shipment, with quantities per size key. Every size key present
// must correspond to a size declared on the product.
type LineItem struct {
	ID        string
	Product   *Product
	Warehouse *Warehouse
	Shipment  *Shipment
	Sizes     map[string]SizeQuantity
	SizeIDs   []string
}

// TotalInfo is the rolled-up quantity and wholesale cost of a group node.
// It is always derived, never patched in place.
type TotalInfo struct {
	Units int64
	Cost  decimal.Decimal
}

// Add returns the element-wise sum of two totals.
func (t TotalInfo) Add(o TotalInfo) TotalInfo {
	return TotalInfo{
		Units: t.Units + o.Units,
		Cost:  t.Cost.Add(o.Cost),
	}
}

// EmptySizeGroupID labels the bucket of sizes that carry no size group.
const EmptySizeGroupID = "[EMPTY]"

// SizeGroupScope restricts size aggregation to one size group. The zero
// value means no restriction; a Scoped value with an empty Label selects
// exactly the sizes without a group.
type SizeGroupScope struct {
	Label  string
	Scoped bool
}

// Matches reports whether a size with the given group label is in scope.
func (s SizeGroupScope) Matches(group string) bool {
	return !s.Scoped || s.Label == group
}

// BucketID is the display identity of the scope's bucket.
func (s SizeGroupScope) BucketID() string {
	if !s.Scoped {
		return ""
	}
	if s.Label == "" {
		return EmptySizeGroupID
	}
	return s.Label
}

// NodeID addresses a group node within its Tree arena.
type NodeID int

// NoNode is the parent of root-level nodes.
const NoNode NodeID = -1

// GroupNode is one bucket of line items at one grouping level. Attribute
// pointers are resolved for every level fixed at or above this node's depth
// so descendants can read ancestor context without re-deriving it.
type GroupNode struct {
	ID     string
	Level  Level
	Group  []*LineItem
	Self   NodeID
	Parent NodeID
	// Children holds the node ids produced when this node's detail level
	// was grouped, in display order.
	Children []NodeID

	Product   *Product
	Warehouse *Warehouse
	Shipment  *Shipment
	SizeGroup SizeGroupScope

	// Sizes and SizeIDs are set on leaf-level nodes only: the quantity map
	// restricted to the node's size-group scope.
	Sizes   map[string]SizeQuantity
	SizeIDs []string

	Total TotalInfo
}

// EntityBucket holds the deduplicated entities observed in a set of items.
type EntityBucket struct {
	ItemIDs    map[string]struct{}
	Products   map[string]*Product
	Warehouses map[string]*Warehouse
	Shipments  map[string]*Shipment
	SizeGroups map[string]struct{}
}

// LevelData is the result of grouping one level: the nodes in display order
// plus the entities collected while partitioning.
type LevelData struct {
	Items    []*GroupNode
	Entities *EntityBucket
}
