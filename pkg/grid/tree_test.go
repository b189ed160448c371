package grid

import "testing"

func TestTree_NodeLookup(t *testing.T) {
	tree := NewTree()
	if tree.Node(NoNode) != nil {
		t.Errorf("NoNode must resolve to nil")
	}
	if tree.Node(0) != nil {
		t.Errorf("empty arena must resolve nothing")
	}

	id := tree.add(&GroupNode{ID: "root", Parent: NoNode})
	if id != 0 {
		t.Errorf("first id = %d, want 0", id)
	}
	if tree.Node(id).ID != "root" {
		t.Errorf("lookup returned the wrong node")
	}

	child := tree.add(&GroupNode{ID: "child", Parent: id})
	root := tree.Node(id)
	if len(root.Children) != 1 || root.Children[0] != child {
		t.Errorf("child link not recorded on the parent")
	}
	if len(tree.Roots()) != 1 {
		t.Errorf("expected exactly one root")
	}
}

func TestBuildTree_ParentLinks(t *testing.T) {
	items := fixtureItems()
	settings := Settings{LevelItems: levelConfig(LevelProduct, LevelWarehouse)}

	tree, top := BuildTree(items, settings)
	if tree.Len() == len(top.Items) {
		t.Fatalf("tree holds only the top level; expansion did not descend")
	}

	for i := 0; i < tree.Len(); i++ {
		node := tree.Node(NodeID(i))
		if node.Self != NodeID(i) {
			t.Errorf("node %d carries Self=%d", i, node.Self)
		}
		for _, childID := range node.Children {
			child := tree.Node(childID)
			if child.Parent != node.Self {
				t.Errorf("child %s does not point back at %s", child.ID, node.ID)
			}
		}
		if node.Parent == NoNode {
			continue
		}
		// walking up must terminate at a root
		steps := 0
		for id := node.Parent; id != NoNode; id = tree.Node(id).Parent {
			steps++
			if steps > tree.Len() {
				t.Fatalf("parent chain of %s does not terminate", node.ID)
			}
		}
	}
}

func TestBuildTree_EmptyConfiguration(t *testing.T) {
	tree, top := BuildTree(fixtureItems(), Settings{LevelItems: levelConfig()})
	if tree.Len() != 0 || len(top.Items) != 0 {
		t.Errorf("expected an empty tree for a configuration with no visible levels")
	}
}
