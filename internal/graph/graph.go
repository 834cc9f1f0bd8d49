// Package graph is a generic directed-graph engine: shared nodes with
// type-indexed annotations, a builder that materializes a graph from any
// source satisfying the query/edges/label/data contracts, inversion, a
// parametric BFS/DFS traversal with per-visit control instructions, and
// projections from a traversal log back into a typed graph.
package graph

import "fmt"

// Graph maps identities to shared nodes. Two references to the same node
// observe the same edge list and annotations.
type Graph[I Identity, L fmt.Stringer, D, M any] struct {
	nodes map[I]*Node[I, L, D, M]
}

func NewGraph[I Identity, L fmt.Stringer, D, M any]() *Graph[I, L, D, M] {
	return &Graph[I, L, D, M]{nodes: make(map[I]*Node[I, L, D, M])}
}

func (g *Graph[I, L, D, M]) Query(id I) (*Node[I, L, D, M], bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Insert adds a node, replacing any node with the same identity.
func (g *Graph[I, L, D, M]) Insert(n *Node[I, L, D, M]) {
	g.nodes[n.id] = n
}

// insertOrGet keeps the existing node for id if there is one, otherwise
// stores the node produced by mk.
func (g *Graph[I, L, D, M]) insertOrGet(id I, mk func() *Node[I, L, D, M]) *Node[I, L, D, M] {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := mk()
	g.nodes[id] = n
	return n
}

// Nodes returns every node. Iteration order is unspecified.
func (g *Graph[I, L, D, M]) Nodes() []*Node[I, L, D, M] {
	out := make([]*Node[I, L, D, M], 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	return out
}

// Edges returns every edge in the graph, grouped by origin node.
func (g *Graph[I, L, D, M]) Edges() []*Edge[I, L, D, M] {
	var out []*Edge[I, L, D, M]
	for _, n := range g.nodes {
		out = append(out, n.edges...)
	}
	return out
}

// Order is the number of nodes.
func (g *Graph[I, L, D, M]) Order() int {
	return len(g.nodes)
}

// Size is the number of edges summed across nodes.
func (g *Graph[I, L, D, M]) Size() int {
	total := 0
	for _, n := range g.nodes {
		total += len(n.edges)
	}
	return total
}

// Invert produces a graph with the same nodes and every edge reversed,
// sharing edge metadata with the input. Node annotations are not carried
// over; node data and labels are shared.
func (g *Graph[I, L, D, M]) Invert() *Graph[I, L, D, M] {
	out := NewGraph[I, L, D, M]()

	for _, n := range g.nodes {
		derived := out.insertOrGet(n.id, n.Derived)
		for _, e := range n.edges {
			target := out.insertOrGet(e.Target.id, e.Target.Derived)
			target.InsertEdge(derived, e.Meta)
		}
	}

	return out
}

// Build materializes the graph reachable from src's All() set under the
// given definition. Nodes are shared and each node's edges are attached
// exactly once, in the source's enumeration order; rediscovering an identity
// reuses the existing node.
//
// Every identity reachable through the definition's edges must resolve in
// the source's index. A miss is a programmer error in the source, not bad
// user input, and fails the build loudly.
func Build[I Identity, L fmt.Stringer, D, M, V any](def Definition[I, L, D, M, V], src Source[I, V]) (*Graph[I, L, D, M], error) {
	index := indexOf(src, def.ID)

	seeds := make([]I, 0)
	for _, v := range src.All() {
		seeds = append(seeds, def.ID(v))
	}

	out := NewGraph[I, L, D, M]()
	seen := make(map[I]struct{})
	var worklist []I
	seedIdx := 0

	next := func() (I, bool) {
		// Drain discovered identities first (LIFO for locality), then fall
		// back to the seed stream. Order does not affect the result.
		if n := len(worklist); n > 0 {
			id := worklist[n-1]
			worklist = worklist[:n-1]
			return id, true
		}
		if seedIdx < len(seeds) {
			id := seeds[seedIdx]
			seedIdx++
			return id, true
		}
		var zero I
		return zero, false
	}

	for {
		id, ok := next()
		if !ok {
			break
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		value, ok := index.Query(id)
		if !ok {
			return nil, fmt.Errorf("graph: build worklist produced identity %s that the source cannot resolve", id)
		}
		node := out.insertOrGet(id, func() *Node[I, L, D, M] {
			return NewNode[I, L, D, M](id, def.Label(value), def.Data(value))
		})

		for _, edge := range def.edges(value) {
			worklist = append(worklist, edge.Sink)

			sink := edge.Sink
			sinkValue, ok := index.Query(sink)
			if !ok {
				return nil, fmt.Errorf("graph: edge %s -> %s points at an identity missing from the source", id, sink)
			}
			target := out.insertOrGet(sink, func() *Node[I, L, D, M] {
				return NewNode[I, L, D, M](sink, def.Label(sinkValue), def.Data(sinkValue))
			})

			node.InsertEdge(target, edge.Meta)
		}
	}

	return out, nil
}
