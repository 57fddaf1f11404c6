package tree

import "sort"

// FindByKind returns every node of the given kind in document order:
// primary key node start offset ascending, secondary key pre-order position
// (which is sibling index for co-located nodes). The result is stable across
// repeated calls against an unmodified tree.
func (t *Tree) FindByKind(kind NodeKind) []NodeID {
	type hit struct {
		id    NodeID
		start uint32
		seq   int
	}
	var hits []hit
	seq := 0

	var walk func(id NodeID)
	walk = func(id NodeID) {
		n := t.Node(id)
		if n == nil {
			return
		}
		if n.Kind == kind {
			hits = append(hits, hit{id: id, start: n.Span.Start, seq: seq})
		}
		seq++
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(t.root)

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].start != hits[j].start {
			return hits[i].start < hits[j].start
		}
		return hits[i].seq < hits[j].seq
	})

	out := make([]NodeID, len(hits))
	for i, h := range hits {
		out[i] = h.id
	}
	return out
}

// Walk visits every node in pre-order.
func (t *Tree) Walk(visit func(NodeID, *Node) bool) {
	t.walk(t.root, visit)
}

func (t *Tree) walk(id NodeID, visit func(NodeID, *Node) bool) bool {
	n := t.Node(id)
	if n == nil {
		return true
	}
	if !visit(id, n) {
		return false
	}
	for _, child := range n.Children {
		if !t.walk(child, visit) {
			return false
		}
	}
	return true
}
