package tree

import (
	"graft/internal/source"
	"graft/internal/token"
)

// NodeKind identifies the grammatical role of a node. The set of valid kinds
// is owned by the schema layer, the tree itself treats kinds as opaque.
type NodeKind uint16

const (
	// KindInvalid is never produced by a parser; it marks the zero value.
	KindInvalid NodeKind = 0
)

// NodeID is a 1-based handle into a Tree's arena. 0 means "no node".
type NodeID uint32

const NoNode NodeID = 0

// Node is either an interior node (Children non-nil) or a leaf carrying a
// token. Span covers the node's full extent including the leading trivia of
// its first token and the trailing trivia of its last one; spans always keep
// the coordinates of the resource the node was parsed from, even after the
// node is spliced into another tree.
type Node struct {
	Kind     NodeKind
	Span     source.Span
	Children []NodeID
	Token    token.Token // valid only when Leaf
	Leaf     bool
}
