// Package merge splices resolved dependency trees into the resources that
// import them and accounts for every byte of the output in a source map.
//
// Processing is strictly sequential in the supplied dependency order: a
// resource's splice step consumes its dependencies' already-computed segment
// lists. Two independent passes run per resource: forward segment accounting
// (mirrors reading order) and a reverse structural edit (so earlier node
// offsets stay valid while later ones are mutated). Keeping the passes
// separate keeps both invariants simple to state and test.
package merge

import (
	"context"
	"fmt"

	"graft/internal/diag"
	"graft/internal/source"
	"graft/internal/sourcemap"
	"graft/internal/tree"
)

// Result is the outcome of one merge invocation. The tree is always
// best-effort, even when diagnostics were emitted; callers decide success by
// the presence of error-severity diagnostics in their bag.
type Result struct {
	Tree *tree.Tree
	Map  sourcemap.Map
	// Segments is the root's flat segment list, before map assembly.
	Segments []sourcemap.Segment
	// Processed records the order resources were actually processed in;
	// each identity appears exactly once.
	Processed []source.ResourceID
}

// processed тип значения мемо-таблицы: дерево + сегменты на ресурс
type processed struct {
	tree     *tree.Tree
	segments []sourcemap.Segment
}

// Merge processes every resource in order (dependencies first, root last) and
// returns the root's processed tree plus its assembled source map. Each
// resource is processed exactly once regardless of how many times it is
// referenced; the memo table is per-invocation, so the engine stays pure and
// reentrant. Cancellation is checked before each resource; splicing itself is
// not preemptible.
func Merge(ctx context.Context, resources []ResolvedResource, mc *Context) Result {
	if len(resources) == 0 {
		return Result{}
	}

	memo := make(map[source.ResourceID]processed, len(resources))
	var order []source.ResourceID

	for i := range resources {
		if ctx.Err() != nil {
			break
		}
		r := &resources[i]
		if _, done := memo[r.ID]; done {
			continue
		}
		memo[r.ID] = processResource(r, memo, mc)
		order = append(order, r.ID)
	}

	root := resources[len(resources)-1]
	rootDone, ok := memo[root.ID]
	if !ok {
		// отменили до корня - отдаём сырое дерево с фолбэк-сегментами
		rootDone = processed{
			tree:     root.Tree,
			segments: sourcemap.Fallback(root.ID, root.Tree.TextLen()),
		}
	}

	mergedLen := rootDone.tree.TextLen()
	return Result{
		Tree:      rootDone.tree,
		Map:       sourcemap.Build(rootDone.segments, mergedLen, root.ID),
		Segments:  rootDone.segments,
		Processed: order,
	}
}

// processResource runs the two passes for one resource: forward segment
// accounting, then the reverse structural edit,
// then the segment-sum validation that decides between exact mapping and the
// conservative whole-resource fallback.
func processResource(r *ResolvedResource, memo map[source.ResourceID]processed, mc *Context) processed {
	origLen := r.Tree.TextLen()

	if !r.Tree.Bound() {
		rootSpan := source.Span{Resource: r.ID}
		diag.ReportError(mc.reporter(), diag.MergeRootNotBound, rootSpan,
			fmt.Sprintf("resource %s is not schema-bound, merge skipped", r.ID)).Emit()
		return processed{tree: r.Tree, segments: sourcemap.Fallback(r.ID, origLen)}
	}

	if len(r.Directives) == 0 {
		return processed{tree: r.Tree, segments: sourcemap.Fallback(r.ID, origLen)}
	}

	segments, exact := accountSegments(r, memo, mc)

	if !applyEdits(r, memo, mc) {
		exact = false
	}

	newLen := r.Tree.TextLen()
	if !exact || sourcemap.TotalLength(segments) != newLen {
		// Никогда не выдаём вводящий в заблуждение частичный маппинг:
		// грубая корректность лучше точечной лжи.
		diag.ReportInfo(mc.reporter(), diag.MergeMappingDegraded, source.Span{Resource: r.ID},
			fmt.Sprintf("source mapping for %s degraded to whole-resource granularity", r.ID)).Emit()
		segments = sourcemap.Fallback(r.ID, newLen)
	}

	return processed{tree: r.Tree, segments: segments}
}

// accountSegments is the forward pass: it walks directives in discovery order
// with a cursor over the resource's original text and emits preserved-owner
// and spliced-dependency segments. ok=false means bounds were inconsistent
// and the entire resource must fall back to a single opaque segment - partial
// accurate segments are never mixed with a fallback.
func accountSegments(r *ResolvedResource, memo map[source.ResourceID]processed, mc *Context) ([]sourcemap.Segment, bool) {
	segments := make([]sourcemap.Segment, 0, len(r.Directives)*3+1)
	var cursor uint32

	for i := range r.Directives {
		d := &r.Directives[i]
		b, ok := spliceBounds(r.Tree, d.Node)
		if !ok || b.PrefixEnd < cursor || b.FullEnd < b.SuffixStart {
			return nil, false
		}

		// сохранённый префикс: [cursor, PrefixEnd)
		if b.PrefixEnd > cursor {
			segments = append(segments, sourcemap.Segment{
				Origin: r.ID, Start: cursor, Length: b.PrefixEnd - cursor,
			})
		}

		// вставка: сегменты зависимости целиком, как есть - это делает
		// маппинг транзитивным через вложенные импорты
		if depID, ok := mc.Resolved[Key{Resource: r.ID, Ordinal: i}]; ok {
			if dep, done := memo[depID]; done {
				segments = append(segments, dep.segments...)
			}
		}

		// сохранённый суффикс: [SuffixStart, FullEnd)
		if b.FullEnd > b.SuffixStart {
			segments = append(segments, sourcemap.Segment{
				Origin: r.ID, Start: b.SuffixStart, Length: b.FullEnd - b.SuffixStart,
			})
		}

		cursor = b.FullEnd
	}

	// хвост после последней директивы
	if origLen := r.Tree.TextLen(); origLen > cursor {
		segments = append(segments, sourcemap.Segment{
			Origin: r.ID, Start: cursor, Length: origLen - cursor,
		})
	}
	return segments, true
}

// applyEdits is the reverse pass: directives are spliced from the last
// ordinal to the first so that earlier node offsets remain valid while later
// ones are mutated. A directive that cannot be resolved is removed, never
// left in the output.
func applyEdits(r *ResolvedResource, memo map[source.ResourceID]processed, mc *Context) bool {
	batch := r.Tree.Edit()

	for i := len(r.Directives) - 1; i >= 0; i-- {
		d := &r.Directives[i]

		depID, ok := mc.Resolved[Key{Resource: r.ID, Ordinal: i}]
		if !ok {
			diag.ReportError(mc.reporter(), diag.MergeUnresolvedOccurrence, d.Anchor,
				fmt.Sprintf("unresolved import %q%s", d.Reference, mc.at(d.Anchor))).Emit()
			batch.Remove(d.Node)
			continue
		}

		dep, done := memo[depID]
		if !done {
			if _, known := mc.Known[depID]; known {
				diag.ReportError(mc.reporter(), diag.MergeDependencyUnprocessed, d.Anchor,
					fmt.Sprintf("dependency %s violates processing order%s", depID, mc.at(d.Anchor))).Emit()
			} else {
				diag.ReportError(mc.reporter(), diag.MergeDependencyMissing, d.Anchor,
					fmt.Sprintf("resolved dependency %s for import %q is unavailable%s", depID, d.Reference, mc.at(d.Anchor))).Emit()
			}
			batch.Remove(d.Node)
			continue
		}

		if top := dep.tree.TopLevel(); len(top) > 0 {
			batch.Replace(d.Node, dep.tree, top)
		} else {
			batch.Remove(d.Node)
		}
	}

	if err := batch.Commit(); err != nil {
		diag.ReportError(mc.reporter(), diag.MergeEditFailed, source.Span{Resource: r.ID},
			fmt.Sprintf("structural edit failed for %s: %v", r.ID, err)).Emit()
		return false
	}
	return true
}
