package emit

import (
	"fmt"
	"io"
	"sort"

	"webpackq/internal/graph"
)

// WriteDOT renders any graph flavor as a Graphviz digraph. Node names use
// the identity's escaped form; edges carry no labels.
func WriteDOT[I graph.Identity, L fmt.Stringer, D, M any](w io.Writer, g *graph.Graph[I, L, D, M]) error {
	names := make([]string, 0, g.Order())
	for _, node := range g.Nodes() {
		names = append(names, graph.Escaped(node.ID()))
	}
	sort.Strings(names)

	pairs := make([][2]string, 0, g.Size())
	for _, edge := range g.Edges() {
		pairs = append(pairs, [2]string{
			graph.Escaped(edge.Origin.ID()),
			graph.Escaped(edge.Target.ID()),
		})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	if _, err := fmt.Fprintln(w, "digraph webpack_stats {"); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "    %s;\n", name); err != nil {
			return err
		}
	}
	for _, pair := range pairs {
		if _, err := fmt.Fprintf(w, "    %s -> %s;\n", pair[0], pair[1]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
