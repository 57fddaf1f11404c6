package merge

import (
	"fmt"

	"graft/internal/diag"
	"graft/internal/directive"
	"graft/internal/source"
	"graft/internal/tree"
)

// Key addresses one directive occurrence: the owning resource plus the
// occurrence's discovery ordinal.
type Key struct {
	Resource source.ResourceID
	Ordinal  int
}

// ResolvedResource is one unit of merge input: a schema-bound tree plus the
// directives discovered in it, supplied in dependency order (dependencies
// before dependents, root last).
type ResolvedResource struct {
	ID         source.ResourceID
	Tree       *tree.Tree
	Directives []directive.Directive
}

// Context carries the collaborator state the merge engine consumes but does
// not own: the diagnostics sink, the resolver's occurrence table, the set of
// identities the resolver knows about, and the resource set used to render
// line:column locations into diagnostic messages. All fields are per-merge;
// nothing survives the call.
type Context struct {
	Reporter diag.Reporter
	// Resolved maps (resource, ordinal) to the canonical identity the
	// occurrence should include. The resolver is the sole authority here.
	Resolved map[Key]source.ResourceID
	// Known holds every identity the resolver has loaded, whether or not it
	// was processed yet. Distinguishes "missing entirely" from "violates the
	// processing order".
	Known map[source.ResourceID]struct{}
	// Set provides raw text for line:column formatting; may be nil, in which
	// case locations degrade to 1:1.
	Set *source.ResourceSet
}

func (mc *Context) reporter() diag.Reporter {
	if mc.Reporter == nil {
		return diag.NopReporter{}
	}
	return mc.Reporter
}

// at renders a human-readable location suffix for a span, e.g. " at 3:7".
func (mc *Context) at(sp source.Span) string {
	if mc.Set == nil {
		return ""
	}
	lc := mc.Set.LineCol(sp.Resource, sp.Start)
	return fmt.Sprintf(" at %d:%d", lc.Line, lc.Col)
}
