package grid

import (
	"testing"

	pr "github.com/benoitkugler/webgrid/css/properties"
	bo "github.com/benoitkugler/webgrid/html/boxes"
	"github.com/benoitkugler/webgrid/utils"
	tu "github.com/benoitkugler/webgrid/utils/testutils"
	"github.com/stretchr/testify/assert"
)

// buildTree returns the tree
//
//	0
//	├── 1
//	│   └── 2
//	└── 3
func buildTree() (SizingTree, []*bo.Box) {
	var (
		tree  SizingTree
		boxes []*bo.Box
	)
	add := func() int {
		box := bo.NewBox(pr.Style{Display: pr.DisplayGrid})
		boxes = append(boxes, box)
		return tree.append(SizingTreeNode{Container: box})
	}
	root := add()
	first := add()
	add()
	tree.closeSubtree(first)
	add()
	tree.closeSubtree(root)
	return tree, boxes
}

func TestSizingTreeNavigation(t *testing.T) {
	tree, _ := buildTree()
	tu.AssertEqual(t, tree.Len(), 4)
	tu.AssertEqual(t, tree.Root().SubtreeSize, 4)
	tu.AssertEqual(t, tree.At(1).SubtreeSize, 2)
	tu.AssertEqual(t, tree.At(2).SubtreeSize, 1)

	tu.AssertEqual(t, tree.FirstChild(0), 1)
	tu.AssertEqual(t, tree.NextSibling(0, 1), 3)
	tu.AssertEqual(t, tree.NextSibling(0, 3), -1)
	tu.AssertEqual(t, tree.FirstChild(1), 2)
	tu.AssertEqual(t, tree.NextSibling(1, 2), -1)
	tu.AssertEqual(t, tree.FirstChild(2), -1)
	tu.AssertEqual(t, tree.Children(0), []int{1, 3})
	tu.AssertEqual(t, tree.Children(3), []int(nil))

	assert.PanicsWithValue(t, "grid: sizing tree node index 4 out of range [0, 4)", func() { tree.At(4) })
	assert.Panics(t, func() { tree.At(-1) })

	var empty SizingTree
	assert.Panics(t, func() { empty.Root() })
}

func TestFinalizeTree(t *testing.T) {
	tree, boxes := buildTree()
	tree.At(0).GridItems = []GridItemData{{ColumnSpan: line(0, 1), RowSpan: line(0, 1)}}
	tree.At(0).LayoutData.Columns = newColumns(0, utils.MaybeFloat{}, nil, px(10), px(20))
	tree.At(1).Area = NewGridArea(line(0, 2), line(0, 1))

	final := tree.FinalizeTree()
	tu.AssertEqual(t, final.Len(), 4)
	tu.AssertEqual(t, final.FirstChild(0), 1)
	tu.AssertEqual(t, final.NextSibling(0, 1), 3)
	tu.AssertEqual(t, final.subgridIndex(0, boxes[3]), 3)
	tu.AssertEqual(t, final.subgridIndex(0, boxes[2]), -1)
	tu.AssertEqual(t, final.Node(1).Area, tree.At(1).Area)

	// the layout tree does not share memory with the sizing tree
	tree.At(0).GridItems[0].ColumnSpan = line(1, 1)
	tree.At(0).LayoutData.Columns.Sets[0].BaseSize = 99
	tu.AssertEqual(t, final.Node(0).GridItems[0].ColumnSpan, line(0, 1))
	cols := final.Columns(0)
	tu.AssertEqual(t, cols.TrackSizes(), []Fl{10, 20})

	// nor do the copies it returns
	cols.Sets[1].BaseSize = 99
	node := final.Node(0)
	node.GridItems[0].Order = 4
	again := final.Columns(0)
	tu.AssertEqual(t, again.TrackSizes(), []Fl{10, 20})
	tu.AssertEqual(t, final.Node(0).GridItems[0].Order, 0)

	assert.PanicsWithValue(t, "grid: sizing tree node index 7 out of range [0, 4)", func() { final.Node(7) })
}
