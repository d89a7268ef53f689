package output

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

// TreeNode is a labelled node of a rendered hierarchy.
type TreeNode struct {
	Label    string
	Children []*TreeNode
}

// Add appends a child and returns it.
func (n *TreeNode) Add(label string) *TreeNode {
	child := &TreeNode{Label: label}
	n.Children = append(n.Children, child)
	return child
}

// Sort orders children by label, recursively.
func (n *TreeNode) Sort() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return StripANSI(n.Children[i].Label) < StripANSI(n.Children[j].Label)
	})
	for _, c := range n.Children {
		c.Sort()
	}
}

// RenderTree renders root with rounded enumerators and dim branches.
func RenderTree(root *TreeNode) string {
	return build(root).String()
}

func build(n *TreeNode) *tree.Tree {
	t := tree.Root(n.Label).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(ColorDimGray))
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			t.Child(c.Label)
			continue
		}
		t.Child(build(c))
	}
	return t
}
