package grid

// Tree is an arena of group nodes. Parent and child links are ids into the
// arena rather than pointers, keeping the node graph acyclic for ownership
// and trivially inspectable in tests.
type Tree struct {
	nodes []*GroupNode
}

// NewTree returns an empty arena.
func NewTree() *Tree {
	return &Tree{}
}

// Node resolves an id; NoNode and out-of-range ids resolve to nil.
func (t *Tree) Node(id NodeID) *GroupNode {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Len is the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Roots returns the top-level nodes in insertion order.
func (t *Tree) Roots() []*GroupNode {
	var roots []*GroupNode
	for _, node := range t.nodes {
		if node.Parent == NoNode {
			roots = append(roots, node)
		}
	}
	return roots
}

func (t *Tree) add(node *GroupNode) NodeID {
	node.Self = NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node)
	if parent := t.Node(node.Parent); parent != nil {
		parent.Children = append(parent.Children, node.Self)
	}
	return node.Self
}

// BuildTree groups every configured level eagerly, the way the grid widget
// drives GroupItems one detail-row expansion at a time, and returns the
// fully expanded tree together with the top-level data.
func BuildTree(items []*LineItem, s Settings) (*Tree, LevelData) {
	t := NewTree()
	levels := ResolveDisplayLevels(s)
	indices := LevelIndicesOf(levels)

	top := t.GroupItems(items, levels, 0, indices, NoNode)
	for _, node := range top.Items {
		t.expand(node, levels, 1, indices, s)
	}
	return t, top
}

func (t *Tree) expand(parent *GroupNode, levels []Level, levelIndex int, indices LevelIndices, s Settings) {
	if levelIndex >= len(levels) {
		return
	}
	localLevels, localIndices := NarrowLevels(levels, levelIndex, indices, parent, s)
	if levelIndex >= len(localLevels) {
		return
	}
	data := t.GroupItems(parent.Group, localLevels, levelIndex, localIndices, parent.Self)
	for _, child := range data.Items {
		t.expand(child, localLevels, levelIndex+1, localIndices, s)
	}
}
