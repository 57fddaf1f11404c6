// Package directive defines the import-directive model and the discovery pass
// that extracts directives from a schema-bound tree in document order.
package directive

import (
	"errors"
	"strings"

	"graft/internal/source"
	"graft/internal/tree"
)

// Directive describes one import occurrence inside a resource. The anchor is
// a zero-length span at the start of the directive node; the positional index
// of a directive in a discovery result is its ordinal, the join key the
// resolver uses to report which resolved identity belongs to which occurrence.
type Directive struct {
	Reference string
	Anchor    source.Span
	Owner     source.ResourceID
	// Node is the handle of the directive node inside the owner's tree; the
	// merge engine uses it for splice bounds and the structural edit.
	Node tree.NodeID
}

// ErrNotBound is returned when discovery is attempted on a tree that has not
// passed schema binding. This is a caller programming error, not a
// data-dependent failure, which is why it surfaces as an error rather than a
// diagnostic.
var ErrNotBound = errors.New("tree is not schema-bound")

// RefExtractor extracts the raw reference string from a directive node.
// Implementations are grammar-specific; returning ok=false or a blank string
// drops the occurrence.
type RefExtractor interface {
	ExtractReference(t *tree.Tree, id tree.NodeID) (string, bool)
}

// Discover walks directive-kind nodes of t in document order and yields a
// Directive per occurrence with a non-blank reference. Blank occurrences are
// filtered out entirely and do not consume an ordinal. The result is stable
// across repeated calls against the same tree.
func Discover(t *tree.Tree, directiveKind tree.NodeKind, owner source.ResourceID, x RefExtractor) ([]Directive, error) {
	if !t.Bound() {
		return nil, ErrNotBound
	}

	nodes := t.FindByKind(directiveKind)
	out := make([]Directive, 0, len(nodes))
	for _, id := range nodes {
		ref, ok := x.ExtractReference(t, id)
		if !ok || strings.TrimSpace(ref) == "" {
			continue
		}
		n := t.Node(id)
		out = append(out, Directive{
			Reference: ref,
			Anchor:    n.Span.Anchor(),
			Owner:     owner,
			Node:      id,
		})
	}
	return out, nil
}
