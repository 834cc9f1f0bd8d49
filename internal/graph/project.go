package graph

import "fmt"

// Project materializes a traversal log against a typed graph over the same
// identity: nodes whose id is in the log are copied (annotations preserved),
// and an outgoing edge survives iff its (origin, target) pair was driven.
// Parallel edges between the same endpoints are all kept, since the filter
// runs per edge against the pair set.
func Project[I Identity, L fmt.Stringer, D, M any](log *Log[I], g *Graph[I, L, D, M]) *Graph[I, L, D, M] {
	out := NewGraph[I, L, D, M]()

	for id, node := range g.nodes {
		if !log.HasNode(id) {
			continue
		}
		origin := out.insertOrGet(id, node.DerivedWithAnnotations)

		for _, e := range node.edges {
			if _, ok := log.Edges[e.Key()]; !ok {
				continue
			}
			target := out.insertOrGet(e.Target.id, e.Target.DerivedWithAnnotations)
			origin.InsertEdge(target, e.Meta)
		}
	}

	return out
}

// Prune restricts a graph to the log's node set without consulting the
// log's edge set: each surviving node keeps the edges whose target also
// survived, attached to fresh derived targets. The result can carry more
// edges than the log drove.
func Prune[I Identity, L fmt.Stringer, D, M any](log *Log[I], g *Graph[I, L, D, M]) *Graph[I, L, D, M] {
	out := NewGraph[I, L, D, M]()

	for id, node := range g.nodes {
		if !log.HasNode(id) {
			continue
		}
		entry := out.insertOrGet(id, node.DerivedWithAnnotations)

		for _, e := range node.edges {
			if log.HasNode(e.Target.id) {
				// Fresh target copy so no transitive edges ride along.
				entry.InsertEdge(e.Target.DerivedWithAnnotations(), e.Meta)
			}
		}
	}

	return out
}
