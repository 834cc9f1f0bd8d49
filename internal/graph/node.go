package graph

import (
	"fmt"
	"strings"

	"webpackq/internal/anymap"
)

// Node is a vertex in a concrete graph. Nodes are shared: every reference
// observes the same label, data, annotations, and edge list. Label and data
// are read-only after construction; the edge list and the annotation bag are
// mutated through methods, one operation at a time.
type Node[I Identity, L fmt.Stringer, D, M any] struct {
	id          I
	label       L
	data        *D
	annotations *anymap.Map
	edges       []*Edge[I, L, D, M]
}

func NewNode[I Identity, L fmt.Stringer, D, M any](id I, label L, data D) *Node[I, L, D, M] {
	return &Node[I, L, D, M]{
		id:          id,
		label:       label,
		data:        &data,
		annotations: anymap.New(),
	}
}

func (n *Node[I, L, D, M]) ID() I {
	return n.id
}

func (n *Node[I, L, D, M]) Label() L {
	return n.label
}

// Data returns the node's shared data. Callers must treat it as read-only.
func (n *Node[I, L, D, M]) Data() *D {
	return n.data
}

// Annotations exposes the node's type-indexed side-channel. Values written
// here survive as long as any reference to the node (or a derived copy that
// kept the bag) is alive.
func (n *Node[I, L, D, M]) Annotations() *anymap.Map {
	return n.annotations
}

// Derived returns a copy sharing label and data but with a fresh edge list
// and a fresh annotation bag. Inversion uses this: annotations do not carry
// over into an inverted graph.
func (n *Node[I, L, D, M]) Derived() *Node[I, L, D, M] {
	return &Node[I, L, D, M]{
		id:          n.id,
		label:       n.label,
		data:        n.data,
		annotations: anymap.New(),
	}
}

// DerivedWithAnnotations returns a copy sharing label, data, and the
// annotation bag, with a fresh edge list. Projections use this so traversal
// annotations remain visible in the projected graph.
func (n *Node[I, L, D, M]) DerivedWithAnnotations() *Node[I, L, D, M] {
	return &Node[I, L, D, M]{
		id:          n.id,
		label:       n.label,
		data:        n.data,
		annotations: n.annotations,
	}
}

// InsertEdge appends an edge from n to target carrying the shared meta.
// Duplicate (origin, target) pairs are kept; edge identity collapses them
// only in set contexts.
func (n *Node[I, L, D, M]) InsertEdge(target *Node[I, L, D, M], meta *M) {
	n.edges = append(n.edges, &Edge[I, L, D, M]{Origin: n, Target: target, Meta: meta})
}

// EachEdge visits the node's edges in insertion order until f returns false.
// f must not mutate the node's edge list.
func (n *Node[I, L, D, M]) EachEdge(f func(*Edge[I, L, D, M]) bool) {
	for _, e := range n.edges {
		if !f(e) {
			return
		}
	}
}

// FindEdge returns the first edge satisfying pred.
func (n *Node[I, L, D, M]) FindEdge(pred func(*Edge[I, L, D, M]) bool) *Edge[I, L, D, M] {
	for _, e := range n.edges {
		if pred(e) {
			return e
		}
	}
	return nil
}

// EdgeAt returns the i-th outgoing edge, or nil.
func (n *Node[I, L, D, M]) EdgeAt(i int) *Edge[I, L, D, M] {
	if i < 0 || i >= len(n.edges) {
		return nil
	}
	return n.edges[i]
}

// EdgeTo returns the first outgoing edge whose target has the given id.
func (n *Node[I, L, D, M]) EdgeTo(id I) *Edge[I, L, D, M] {
	return n.FindEdge(func(e *Edge[I, L, D, M]) bool {
		return e.Target.id == id
	})
}

// Edges returns a copy of the edge list.
func (n *Node[I, L, D, M]) Edges() []*Edge[I, L, D, M] {
	out := make([]*Edge[I, L, D, M], len(n.edges))
	copy(out, n.edges)
	return out
}

// Degree is the number of outgoing edges.
func (n *Node[I, L, D, M]) Degree() int {
	return len(n.edges)
}

func (n *Node[I, L, D, M]) String() string {
	var targets strings.Builder
	for i, e := range n.edges {
		if i > 0 {
			targets.WriteString(", ")
		}
		targets.WriteString(e.Target.id.String())
	}
	return fmt.Sprintf("[[ %s | [%s] ]]", n.id, targets.String())
}
