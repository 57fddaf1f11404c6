// Package resolve builds the dependency closure of a root resource: load,
// parse, bind and discover each resource exactly once, then order the result
// so that every dependency precedes the resources importing it.
//
// Загрузка идёт волнами по глубине BFS; внутри волны ресурсы скачиваются
// параллельно, а парсинг и учёт остаются последовательными, чтобы набор
// ресурсов и репортер не требовали синхронизации.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"graft/internal/diag"
	"graft/internal/directive"
	"graft/internal/merge"
	"graft/internal/parser"
	"graft/internal/schema"
	"graft/internal/source"
	"graft/internal/store"
)

// DefaultMaxDepth bounds the import chain when the caller does not choose.
const DefaultMaxDepth = 64

// Resolver walks import directives from a root resource outward.
type Resolver struct {
	Store    *store.Store
	Schema   *schema.Schema
	Reporter diag.Reporter
	Set      *source.ResourceSet
	// MaxDepth is the deepest allowed import chain; 0 means DefaultMaxDepth.
	MaxDepth int
	// Jobs caps concurrent downloads within one wave; 0 means 4.
	Jobs int
}

// Result is everything the merge engine needs: inputs in dependency order
// (root last, unless the root itself is cyclic) plus the occurrence table and
// the known-identity set.
type Result struct {
	Resources []merge.ResolvedResource
	Resolved  map[merge.Key]source.ResourceID
	Known     map[source.ResourceID]struct{}
}

// Resolve loads the closure of root. Failures are reported as diagnostics;
// the returned Result is always usable, possibly with parts missing.
func (r *Resolver) Resolve(ctx context.Context, root source.ResourceID) Result {
	maxDepth := r.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	jobs := r.Jobs
	if jobs <= 0 {
		jobs = 4
	}

	out := Result{
		Resolved: make(map[merge.Key]source.ResourceID),
		Known:    make(map[source.ResourceID]struct{}),
	}
	loaded := make(map[source.ResourceID]merge.ResolvedResource)
	queued := map[source.ResourceID]struct{}{root: {}}
	// anchor директивы, через которую ресурс впервые обнаружен
	introducedAt := map[source.ResourceID]source.Span{}
	g := newGraph()
	g.node(root)

	frontier := []source.ResourceID{root}
	for depth := 0; len(frontier) > 0; depth++ {
		if depth > maxDepth {
			for _, id := range frontier {
				diag.ReportError(r.Reporter, diag.ResolveMaxDepth, introducedAt[id].Anchor(),
					fmt.Sprintf("import chain for %s exceeds maximum depth %d", id, maxDepth)).Emit()
			}
			break
		}

		contents := r.fetchWave(ctx, frontier)

		var next []source.ResourceID
		for i, id := range frontier {
			if contents[i].err != nil {
				code := diag.ResolveLoadFailed
				msg := fmt.Sprintf("cannot load %s: %v", id, contents[i].err)
				if !r.Store.Exists(ctx, id) {
					code = diag.ResolveMissing
					msg = fmt.Sprintf("resource %s does not exist", id)
				}
				diag.ReportError(r.Reporter, code, introducedAt[id].Anchor(), msg).Emit()
				continue
			}

			var flags source.ResourceFlags
			if strings.HasPrefix(string(id), "mem://") {
				flags |= source.ResourceVirtual
			}
			res := r.Set.Add(id, string(id), contents[i].data, flags)

			tr := parser.Parse(res, r.Reporter)
			if err := r.Schema.Bind(tr); err != nil {
				diag.ReportError(r.Reporter, diag.ResolveParseFailed, source.Span{Resource: id},
					fmt.Sprintf("cannot bind %s: %v", id, err)).Emit()
				continue
			}
			dirs, err := directive.Discover(tr, r.Schema.DirectiveKind(), id, directive.ScriptExtractor{})
			if err != nil {
				diag.ReportError(r.Reporter, diag.ResolveParseFailed, source.Span{Resource: id},
					fmt.Sprintf("directive discovery failed for %s: %v", id, err)).Emit()
				continue
			}

			loaded[id] = merge.ResolvedResource{ID: id, Tree: tr, Directives: dirs}
			out.Known[id] = struct{}{}

			for ord := range dirs {
				d := &dirs[ord]
				dep := r.Store.Canonical(id, d.Reference)
				if dep == "" {
					continue
				}
				out.Resolved[merge.Key{Resource: id, Ordinal: ord}] = dep
				g.addEdge(dep, id)
				if _, seen := queued[dep]; !seen {
					queued[dep] = struct{}{}
					introducedAt[dep] = d.Anchor
					next = append(next, dep)
				}
			}
		}
		frontier = next
	}

	t := g.toposort()
	r.reportCycles(g, t, loaded)

	cyclic := make(map[nodeID]struct{}, len(t.cyclic))
	for _, n := range t.cyclic {
		cyclic[n] = struct{}{}
	}
	for _, n := range t.order {
		if res, ok := loaded[g.ids[n]]; ok {
			out.Resources = append(out.Resources, res)
		}
	}

	// ссылки на незагруженные или циклические цели снимаются, чтобы движок
	// слияния трактовал их как неразрешённые и удалял из вывода
	for k, dep := range out.Resolved {
		if _, ok := loaded[dep]; !ok {
			delete(out.Resolved, k)
			continue
		}
		if _, bad := cyclic[g.index[dep]]; bad {
			delete(out.Resolved, k)
		}
	}
	return out
}

type fetched struct {
	data []byte
	err  error
}

// fetchWave downloads one BFS wave concurrently. Results are positional, so
// the sequential accounting that follows stays deterministic.
func (r *Resolver) fetchWave(ctx context.Context, wave []source.ResourceID) []fetched {
	jobs := r.Jobs
	if jobs <= 0 {
		jobs = 4
	}
	contents := make([]fetched, len(wave))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i, id := range wave {
		eg.Go(func() error {
			data, err := r.Store.Load(gctx, id)
			contents[i] = fetched{data: data, err: err}
			return nil
		})
	}
	// воркеры не возвращают ошибок, всё уходит в contents
	_ = eg.Wait()
	return contents
}

func (r *Resolver) reportCycles(g *graph, t topo, loaded map[source.ResourceID]merge.ResolvedResource) {
	if len(t.cyclic) == 0 {
		return
	}
	names := make([]string, 0, len(t.cyclic))
	for _, n := range t.cyclic {
		names = append(names, string(g.ids[n]))
	}
	summary := strings.Join(names, " -> ")
	for _, n := range t.cyclic {
		id := g.ids[n]
		if _, ok := loaded[id]; !ok {
			continue
		}
		diag.ReportError(r.Reporter, diag.ResolveCycle, source.Span{Resource: id},
			fmt.Sprintf("resource %s participates in an import cycle: %s", id, summary)).Emit()
	}
}
