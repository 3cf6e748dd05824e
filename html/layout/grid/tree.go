package grid

import (
	"fmt"

	pr "github.com/benoitkugler/webgrid/css/properties"
	bo "github.com/benoitkugler/webgrid/html/boxes"
)

// GridLayoutData holds the tracks of both axis of a grid.
type GridLayoutData struct {
	Columns, Rows TrackCollection
}

// Tracks returns the collection for the given axis.
func (gd *GridLayoutData) Tracks(axis Axis) *TrackCollection {
	if axis == Row {
		return &gd.Rows
	}
	return &gd.Columns
}

func (gd GridLayoutData) clone() GridLayoutData {
	return GridLayoutData{Columns: gd.Columns.Clone(), Rows: gd.Rows.Clone()}
}

// SizingTreeNode is one grid container of a sizing tree : the root
// grid, or one of its (nested) subgrids.
type SizingTreeNode struct {
	Container  *bo.Box
	GridItems  []GridItemData
	LayoutData GridLayoutData
	// SubtreeSize counts this node and all its descendants.
	SubtreeSize int
	WritingMode pr.WritingMode
	// Subgridded is only meaningful for subgrid nodes : it tells
	// which axis are inherited from the parent node.
	Subgridded [2]bool
	// Area is the position of a subgrid in its parent grid.
	Area GridArea
}

// SizingTree is a flat, pre-order storage of a grid and its subgrids.
// The children of node i start at i+1, and a node's next sibling is
// at i + SubtreeSize.
type SizingTree struct {
	nodes []SizingTreeNode
}

// Len returns the number of nodes.
func (st *SizingTree) Len() int { return len(st.nodes) }

// At returns the node at index i. It panics if i is out of range.
func (st *SizingTree) At(i int) *SizingTreeNode {
	if i < 0 || i >= len(st.nodes) {
		panic(fmt.Sprintf("grid: sizing tree node index %d out of range [0, %d)", i, len(st.nodes)))
	}
	return &st.nodes[i]
}

// Root returns the first node.
func (st *SizingTree) Root() *SizingTreeNode { return st.At(0) }

// append adds a leaf node and returns its index. The caller must update
// the SubtreeSize of the node once its children are added.
func (st *SizingTree) append(node SizingTreeNode) int {
	node.SubtreeSize = 1
	st.nodes = append(st.nodes, node)
	return len(st.nodes) - 1
}

// closeSubtree updates the SubtreeSize of node i, after its descendants
// have been appended.
func (st *SizingTree) closeSubtree(i int) {
	st.At(i).SubtreeSize = len(st.nodes) - i
}

// FirstChild returns the index of the first child of node i, or -1.
func (st *SizingTree) FirstChild(i int) int { return firstChild(st.At(i).SubtreeSize, i) }

// NextSibling returns the index of the sibling following child, in the
// children of parent, or -1.
func (st *SizingTree) NextSibling(parent, child int) int {
	return nextSibling(st.At(parent).SubtreeSize, parent, child, st.At(child).SubtreeSize)
}

// Children returns the indices of the direct children of node i.
func (st *SizingTree) Children(i int) []int {
	var out []int
	for c := st.FirstChild(i); c != -1; c = st.NextSibling(i, c) {
		out = append(out, c)
	}
	return out
}

func firstChild(subtreeSize, i int) int {
	if subtreeSize > 1 {
		return i + 1
	}
	return -1
}

func nextSibling(parentSubtreeSize, parent, child, childSubtreeSize int) int {
	next := child + childSubtreeSize
	if next < parent+parentSubtreeSize {
		return next
	}
	return -1
}

// FinalizeTree returns an immutable deep copy of the tree, which may
// be retained after the sizing tree is reused.
func (st *SizingTree) FinalizeTree() *LayoutTree {
	out := &LayoutTree{nodes: make([]SizingTreeNode, len(st.nodes))}
	for i, node := range st.nodes {
		node.GridItems = append([]GridItemData(nil), node.GridItems...)
		node.LayoutData = node.LayoutData.clone()
		out.nodes[i] = node
	}
	return out
}

// LayoutTree is the read only version of a [SizingTree], produced
// at the end of the measure pass, and used to arrange the grid and
// its subgrids.
type LayoutTree struct {
	nodes []SizingTreeNode
}

// Len returns the number of nodes.
func (lt *LayoutTree) Len() int { return len(lt.nodes) }

func (lt *LayoutTree) at(i int) *SizingTreeNode {
	if i < 0 || i >= len(lt.nodes) {
		panic(fmt.Sprintf("grid: sizing tree node index %d out of range [0, %d)", i, len(lt.nodes)))
	}
	return &lt.nodes[i]
}

// Node returns a copy of the node at index i. It panics if i is out of range.
func (lt *LayoutTree) Node(i int) SizingTreeNode {
	node := *lt.at(i)
	node.GridItems = append([]GridItemData(nil), node.GridItems...)
	node.LayoutData = node.LayoutData.clone()
	return node
}

// Columns returns a copy of the column tracks of node i.
func (lt *LayoutTree) Columns(i int) TrackCollection { return lt.at(i).LayoutData.Columns.Clone() }

// Rows returns a copy of the row tracks of node i.
func (lt *LayoutTree) Rows(i int) TrackCollection { return lt.at(i).LayoutData.Rows.Clone() }

// FirstChild returns the index of the first child of node i, or -1.
func (lt *LayoutTree) FirstChild(i int) int { return firstChild(lt.at(i).SubtreeSize, i) }

// NextSibling returns the index of the sibling following child, in the
// children of parent, or -1.
func (lt *LayoutTree) NextSibling(parent, child int) int {
	return nextSibling(lt.at(parent).SubtreeSize, parent, child, lt.at(child).SubtreeSize)
}

// subgridIndex returns the index of the node of the given subgrid
// container, in the children of parent, or -1.
func (lt *LayoutTree) subgridIndex(parent int, container *bo.Box) int {
	for c := lt.FirstChild(parent); c != -1; c = lt.NextSibling(parent, c) {
		if lt.at(c).Container == container {
			return c
		}
	}
	return -1
}

// InheritedGrid is passed to subgrids through
// [layout.ConstraintSpace.InheritedLayoutTree].
type InheritedGrid struct {
	Tree *LayoutTree
	// Index is the node of the subgrid in Tree.
	Index int
}
