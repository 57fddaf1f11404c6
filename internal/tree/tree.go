package tree

import (
	"strings"

	"graft/internal/source"
	"graft/internal/token"
)

// Tree is an arena-backed syntax tree for a single resource. Trees start
// unbound; the schema layer marks them bound after structural validation.
type Tree struct {
	nodes    *arena[Node]
	root     NodeID
	resource source.ResourceID
	bound    bool
}

// New creates an empty tree for the given resource.
func New(resource source.ResourceID, capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Tree{
		nodes:    newArena[Node](capHint),
		resource: resource,
	}
}

// Resource returns the identity of the resource this tree was parsed from.
func (t *Tree) Resource() source.ResourceID {
	return t.resource
}

// Bound reports whether the tree passed schema binding.
func (t *Tree) Bound() bool {
	return t.bound
}

// MarkBound flags the tree as schema-bound. Only the schema layer calls this.
func (t *Tree) MarkBound() {
	t.bound = true
}

// NewLeaf allocates a leaf node wrapping tok.
func (t *Tree) NewLeaf(kind NodeKind, tok token.Token) NodeID {
	return NodeID(t.nodes.allocate(Node{
		Kind:  kind,
		Span:  tok.FullSpan(),
		Token: tok,
		Leaf:  true,
	}))
}

// NewNode allocates an interior node. Its span is the cover of its children's
// spans; children must already be allocated in this tree.
func (t *Tree) NewNode(kind NodeKind, children ...NodeID) NodeID {
	var span source.Span
	for i, child := range children {
		cn := t.nodes.get(uint32(child))
		if cn == nil {
			continue
		}
		if i == 0 {
			span = cn.Span
		} else {
			span = span.Cover(cn.Span)
		}
	}
	kids := append([]NodeID(nil), children...)
	return NodeID(t.nodes.allocate(Node{
		Kind:     kind,
		Span:     span,
		Children: kids,
	}))
}

// SetRoot designates the root node.
func (t *Tree) SetRoot(id NodeID) {
	t.root = id
}

// Root returns the root node ID, or NoNode for an empty tree.
func (t *Tree) Root() NodeID {
	return t.root
}

// Node returns the node for id, or nil for NoNode / out-of-range IDs.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes.get(uint32(id))
}

// TopLevel returns the root's child list. This is the sequence that gets
// spliced into a dependent tree in place of a directive node.
func (t *Tree) TopLevel() []NodeID {
	root := t.Node(t.root)
	if root == nil {
		return nil
	}
	return root.Children
}

// FirstToken returns the first leaf token under id in document order.
func (t *Tree) FirstToken(id NodeID) (token.Token, bool) {
	n := t.Node(id)
	if n == nil {
		return token.Token{}, false
	}
	if n.Leaf {
		return n.Token, true
	}
	for _, child := range n.Children {
		if tok, ok := t.FirstToken(child); ok {
			return tok, true
		}
	}
	return token.Token{}, false
}

// LastToken returns the last leaf token under id in document order.
func (t *Tree) LastToken(id NodeID) (token.Token, bool) {
	n := t.Node(id)
	if n == nil {
		return token.Token{}, false
	}
	if n.Leaf {
		return n.Token, true
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if tok, ok := t.LastToken(n.Children[i]); ok {
			return tok, true
		}
	}
	return token.Token{}, false
}

// Text reconstructs the exact source text of the tree by concatenating the
// full text of every leaf token in document order. For a freshly parsed tree
// this equals the input byte-for-byte; after merging it is the merged output.
func (t *Tree) Text() string {
	var sb strings.Builder
	t.writeText(&sb, t.root)
	return sb.String()
}

func (t *Tree) writeText(sb *strings.Builder, id NodeID) {
	n := t.Node(id)
	if n == nil {
		return
	}
	if n.Leaf {
		sb.WriteString(n.Token.FullText())
		return
	}
	for _, child := range n.Children {
		t.writeText(sb, child)
	}
}

// TextLen returns the byte length of Text() without building the string.
func (t *Tree) TextLen() uint32 {
	return t.textLen(t.root)
}

func (t *Tree) textLen(id NodeID) uint32 {
	n := t.Node(id)
	if n == nil {
		return 0
	}
	if n.Leaf {
		var total uint32
		total += token.TriviaLen(n.Token.Leading)
		total += uint32(len(n.Token.Text))
		total += token.TriviaLen(n.Token.Trailing)
		return total
	}
	var total uint32
	for _, child := range n.Children {
		total += t.textLen(child)
	}
	return total
}
