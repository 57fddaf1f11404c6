package tree

import (
	"errors"
	"fmt"

	"graft/internal/token"
)

var (
	// ErrCommitted is returned when a batch is used after Commit.
	ErrCommitted = errors.New("edit batch already committed")
	// ErrNotFound is returned when an edit target has no parent in the tree
	// (unknown ID, detached node, or the root itself).
	ErrNotFound = errors.New("edit target not found under root")
)

type editOp struct {
	target   NodeID
	donor    *Tree
	children []NodeID // donor IDs to splice in place of target; nil = plain removal
}

// EditBatch stages structural edits against one tree and applies them in a
// single commit. Staged edits do not become visible until Commit; a batch can
// be committed exactly once.
type EditBatch struct {
	tree      *Tree
	ops       []editOp
	committed bool
}

// Edit starts a new edit batch for t.
func (t *Tree) Edit() *EditBatch {
	return &EditBatch{tree: t}
}

// Replace stages the replacement of target with copies of the given donor
// nodes (normally another tree's top level). The target's inner incidental
// text survives: leading trivia of its first token transfers onto the first
// inserted token, trailing trivia of its last token onto the last inserted
// token. An empty children list degrades to removal and drops the trivia.
func (b *EditBatch) Replace(target NodeID, donor *Tree, children []NodeID) {
	b.ops = append(b.ops, editOp{target: target, donor: donor, children: children})
}

// Remove stages the removal of target.
func (b *EditBatch) Remove(target NodeID) {
	b.ops = append(b.ops, editOp{target: target})
}

// Commit applies all staged edits in the order they were staged. Donor
// subtrees are deep-copied into the target tree's arena; their spans keep the
// donor resource's coordinates. Returns an error without modifying anything
// further if a target cannot be located.
func (b *EditBatch) Commit() error {
	if b.committed {
		return ErrCommitted
	}
	b.committed = true

	for _, op := range b.ops {
		parent, idx := b.tree.parentOf(op.target)
		if parent == NoNode {
			return fmt.Errorf("%w: node %d", ErrNotFound, op.target)
		}
		var replacement []NodeID
		if op.donor != nil {
			replacement = make([]NodeID, 0, len(op.children))
			for _, donorID := range op.children {
				copied := b.tree.copyFrom(op.donor, donorID)
				if copied != NoNode {
					replacement = append(replacement, copied)
				}
			}
		}
		if len(replacement) > 0 {
			b.tree.transferTrivia(op.target, replacement)
		}
		pn := b.tree.Node(parent)
		kids := make([]NodeID, 0, len(pn.Children)-1+len(replacement))
		kids = append(kids, pn.Children[:idx]...)
		kids = append(kids, replacement...)
		kids = append(kids, pn.Children[idx+1:]...)
		pn.Children = kids
	}
	return nil
}

// transferTrivia moves the replaced node's inner incidental text onto the
// inserted content: leading trivia of target's first token prepends to the
// first leaf of replacement[0], trailing trivia of its last token appends to
// the last leaf of the final replacement node.
func (t *Tree) transferTrivia(target NodeID, replacement []NodeID) {
	targetFirst, okF := t.FirstToken(target)
	targetLast, okL := t.LastToken(target)

	if okF && len(targetFirst.Leading) > 0 {
		if leaf := t.firstLeaf(replacement[0]); leaf != NoNode {
			n := t.Node(leaf)
			merged := make([]token.Trivia, 0, len(targetFirst.Leading)+len(n.Token.Leading))
			merged = append(merged, targetFirst.Leading...)
			merged = append(merged, n.Token.Leading...)
			n.Token.Leading = merged
		}
	}
	if okL && len(targetLast.Trailing) > 0 {
		if leaf := t.lastLeaf(replacement[len(replacement)-1]); leaf != NoNode {
			n := t.Node(leaf)
			n.Token.Trailing = append(n.Token.Trailing, targetLast.Trailing...)
		}
	}
}

func (t *Tree) firstLeaf(id NodeID) NodeID {
	n := t.Node(id)
	if n == nil {
		return NoNode
	}
	if n.Leaf {
		return id
	}
	for _, child := range n.Children {
		if leaf := t.firstLeaf(child); leaf != NoNode {
			return leaf
		}
	}
	return NoNode
}

func (t *Tree) lastLeaf(id NodeID) NodeID {
	n := t.Node(id)
	if n == nil {
		return NoNode
	}
	if n.Leaf {
		return id
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if leaf := t.lastLeaf(n.Children[i]); leaf != NoNode {
			return leaf
		}
	}
	return NoNode
}

// parentOf locates the parent of target and target's sibling index by
// walking from the root. The root itself has no parent.
func (t *Tree) parentOf(target NodeID) (NodeID, int) {
	var found NodeID
	foundIdx := -1
	t.Walk(func(id NodeID, n *Node) bool {
		for i, child := range n.Children {
			if child == target {
				found = id
				foundIdx = i
				return false
			}
		}
		return true
	})
	return found, foundIdx
}

// copyFrom deep-copies a donor subtree into t's arena.
func (t *Tree) copyFrom(donor *Tree, id NodeID) NodeID {
	n := donor.Node(id)
	if n == nil {
		return NoNode
	}
	if n.Leaf {
		return NodeID(t.nodes.allocate(Node{
			Kind:  n.Kind,
			Span:  n.Span,
			Token: n.Token,
			Leaf:  true,
		}))
	}
	kids := make([]NodeID, 0, len(n.Children))
	for _, child := range n.Children {
		copied := t.copyFrom(donor, child)
		if copied != NoNode {
			kids = append(kids, copied)
		}
	}
	return NodeID(t.nodes.allocate(Node{
		Kind:     n.Kind,
		Span:     n.Span,
		Children: kids,
	}))
}
