// Package output renders a grouped order tree as text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vsinha/ordergrid/pkg/grid"
)

// Render writes the tree rooted at the given nodes in the specified format.
func Render(w io.Writer, tree *grid.Tree, roots []*grid.GroupNode, format string) error {
	switch format {
	case "text":
		return renderText(w, tree, roots)
	case "json":
		return renderJSON(w, tree, roots)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func renderText(w io.Writer, tree *grid.Tree, roots []*grid.GroupNode) error {
	for _, node := range roots {
		if err := writeNode(w, tree, node, 0); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(w io.Writer, tree *grid.Tree, node *grid.GroupNode, depth int) error {
	indent := strings.Repeat("  ", depth)
	_, err := fmt.Fprintf(w, "%s[#%d] %s | units=%d cost=%s\n",
		indent, node.Self, nodeLabel(node), node.Total.Units, node.Total.Cost.StringFixed(2))
	if err != nil {
		return err
	}

	if len(node.Children) == 0 && node.Sizes != nil {
		parts := make([]string, 0, len(node.SizeIDs))
		for _, key := range node.SizeIDs {
			parts = append(parts, fmt.Sprintf("%s=%d", key, node.Sizes[key].Quantity))
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", indent, strings.Join(parts, " ")); err != nil {
			return err
		}
	}

	for _, child := range node.Children {
		if err := writeNode(w, tree, tree.Node(child), depth+1); err != nil {
			return err
		}
	}
	return nil
}

// nodeLabel names a node by the entity it groups, falling back to the raw
// grouping key when the entity is absent.
func nodeLabel(node *grid.GroupNode) string {
	switch node.Level {
	case grid.LevelProduct:
		if node.Product != nil {
			return node.Product.Name
		}
	case grid.LevelWarehouse:
		if node.Warehouse != nil {
			return node.Warehouse.Name
		}
	case grid.LevelShipment:
		if node.Shipment != nil {
			return node.Shipment.StartDate.Format("2006-01-02") + " - " + node.Shipment.EndDate.Format("2006-01-02")
		}
	case grid.LevelSizeGroup:
		return node.SizeGroup.BucketID()
	case grid.LevelSizes:
		return "sizes"
	}
	return node.ID
}

type nodeJSON struct {
	ID       string           `json:"id"`
	Node     grid.NodeID      `json:"node"`
	Level    string           `json:"level"`
	Label    string           `json:"label"`
	Units    int64            `json:"units"`
	Cost     string           `json:"cost"`
	Sizes    map[string]int64 `json:"sizes,omitempty"`
	Children []nodeJSON       `json:"children,omitempty"`
}

func renderJSON(w io.Writer, tree *grid.Tree, roots []*grid.GroupNode) error {
	out := make([]nodeJSON, 0, len(roots))
	for _, node := range roots {
		out = append(out, toNodeJSON(tree, node))
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return err
	}
	return nil
}

func toNodeJSON(tree *grid.Tree, node *grid.GroupNode) nodeJSON {
	out := nodeJSON{
		ID:    node.ID,
		Node:  node.Self,
		Level: node.Level.String(),
		Label: nodeLabel(node),
		Units: node.Total.Units,
		Cost:  node.Total.Cost.StringFixed(2),
	}

	if len(node.Children) == 0 && node.Sizes != nil {
		out.Sizes = make(map[string]int64, len(node.Sizes))
		for key, sq := range node.Sizes {
			out.Sizes[key] = sq.Quantity
		}
	}

	for _, child := range node.Children {
		out.Children = append(out.Children, toNodeJSON(tree, tree.Node(child)))
	}
	return out
}
