package graph

import "strconv"

// IntID is a minimal integer identity for tests and examples.
type IntID int32

func (i IntID) String() string {
	return strconv.Itoa(int(i))
}

// SimpleGraph carries no data and no edge metadata; its label is its id.
type SimpleGraph = Graph[IntID, IntID, struct{}, struct{}]

func NewSimpleGraph() *SimpleGraph {
	return NewGraph[IntID, IntID, struct{}, struct{}]()
}

// InsertSimpleNode adds a bare node if the id is not present.
func InsertSimpleNode(g *SimpleGraph, id IntID) {
	g.insertOrGet(id, func() *Node[IntID, IntID, struct{}, struct{}] {
		return NewNode[IntID, IntID, struct{}, struct{}](id, id, struct{}{})
	})
}

// InsertSimpleEdge adds an edge, creating either endpoint as needed.
// Duplicate pairs are kept as parallel edges.
func InsertSimpleEdge(g *SimpleGraph, from, to IntID) {
	mk := func(id IntID) func() *Node[IntID, IntID, struct{}, struct{}] {
		return func() *Node[IntID, IntID, struct{}, struct{}] {
			return NewNode[IntID, IntID, struct{}, struct{}](id, id, struct{}{})
		}
	}
	origin := g.insertOrGet(from, mk(from))
	target := g.insertOrGet(to, mk(to))
	origin.InsertEdge(target, &struct{}{})
}
