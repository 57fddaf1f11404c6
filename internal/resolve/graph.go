package resolve

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"graft/internal/source"
)

// nodeID is a dense index into the resolver's discovery-ordered node list.
// Discovery order doubles as the tie-breaker for deterministic batches.
type nodeID uint32

type graph struct {
	ids   []source.ResourceID   // nodeID -> identity, в порядке обнаружения
	index map[source.ResourceID]nodeID
	edges [][]nodeID // edges[dep] = importers; ориентация dep -> importer
	indeg []int
}

func newGraph() *graph {
	return &graph{index: make(map[source.ResourceID]nodeID)}
}

func (g *graph) node(id source.ResourceID) nodeID {
	if n, ok := g.index[id]; ok {
		return n
	}
	n, err := safecast.Conv[nodeID](len(g.ids))
	if err != nil {
		panic(fmt.Errorf("resource id overflow: %w", err))
	}
	g.index[id] = n
	g.ids = append(g.ids, id)
	g.edges = append(g.edges, nil)
	g.indeg = append(g.indeg, 0)
	return n
}

// addEdge links dep -> importer so that the topological order lists
// dependencies before the resources that import them.
func (g *graph) addEdge(dep, importer source.ResourceID) {
	from := g.node(dep)
	to := g.node(importer)
	if from == to {
		return
	}
	if slices.Contains(g.edges[from], to) {
		return
	}
	g.edges[from] = append(g.edges[from], to)
	g.indeg[to]++
}

type topo struct {
	order  []nodeID
	cyclic []nodeID // узлы, оставшиеся с ненулевой входящей степенью
}

// toposort is Kahn's algorithm with batches sorted by discovery order, so the
// output is stable for a given input regardless of map iteration.
func (g *graph) toposort() topo {
	indeg := make([]int, len(g.indeg))
	copy(indeg, g.indeg)

	var t topo
	current := make([]nodeID, 0, len(g.ids))
	for i := range g.ids {
		if indeg[i] == 0 {
			current = append(current, nodeID(i))
		}
	}
	slices.Sort(current)

	for len(current) > 0 {
		next := make([]nodeID, 0)
		for _, n := range current {
			t.order = append(t.order, n)
			for _, to := range g.edges[n] {
				indeg[to]--
				if indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if len(t.order) != len(g.ids) {
		for i := range g.ids {
			if indeg[i] > 0 {
				t.cyclic = append(t.cyclic, nodeID(i))
			}
		}
		slices.Sort(t.cyclic)
	}
	return t
}
