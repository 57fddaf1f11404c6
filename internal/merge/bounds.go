package merge

import (
	"graft/internal/tree"
)

// Bounds carries the three offsets that drive text accounting around one
// directive node:
//
//	[node.start, PrefixEnd)   leading trivia - preserved, attributed to owner
//	[PrefixEnd, SuffixStart)  the directive itself - replaced by the dependency
//	[SuffixStart, FullEnd)    trailing trivia - preserved, attributed to owner
type Bounds struct {
	PrefixEnd   uint32 // начало первого листового токена
	SuffixStart uint32 // конец последнего листового токена
	FullEnd     uint32 // конец узла, включая trailing trivia
}

// spliceBounds computes Bounds for a directive node. ok=false means the node
// has no leaf tokens or its offsets are not monotonically ordered within the
// node's span - an inconsistent tree, which forces the whole-resource
// fallback rather than a silently wrong mapping.
func spliceBounds(t *tree.Tree, id tree.NodeID) (Bounds, bool) {
	n := t.Node(id)
	if n == nil {
		return Bounds{}, false
	}

	first, ok := t.FirstToken(id)
	if !ok {
		return Bounds{}, false
	}
	last, ok := t.LastToken(id)
	if !ok {
		return Bounds{}, false
	}

	b := Bounds{
		PrefixEnd:   first.Span.Start,
		SuffixStart: last.Span.End,
		FullEnd:     n.Span.End,
	}

	if b.PrefixEnd < n.Span.Start || b.SuffixStart < b.PrefixEnd || b.FullEnd < b.SuffixStart {
		return Bounds{}, false
	}
	if b.FullEnd > n.Span.End {
		return Bounds{}, false
	}
	return b, true
}
