// Package emit serializes analysis results: the node/edge JSON consumed by
// the HTML viewer, Graphviz DOT, and the HTML output directory.
package emit

import (
	"encoding/json"
	"io"
	"sort"

	"webpackq/internal/anymap"
	"webpackq/internal/graphs"
	"webpackq/internal/stats"
)

// GraphData is the wire shape of an analyzed module graph.
type GraphData struct {
	Nodes []NodeData `json:"nodes"`
	Edges []EdgeData `json:"edges"`
}

// NodeData carries a module and the chunk the traversal attributed it to
// (null when the node was never attributed).
type NodeData struct {
	ID    string  `json:"id"`
	Chunk *uint32 `json:"chunk"`
	Label string  `json:"label"`
}

// EdgeData carries one import: async is true for on-demand import kinds,
// importer is the resolved name of the importing module.
type EdgeData struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Async    bool   `json:"async"`
	Importer string `json:"importer"`
}

// ModuleGraph flattens an analyzed module graph into its wire shape.
// Duplicate (source, target) edges collapse to one; nodes and edges are
// ordered for stable output.
func ModuleGraph(g *graphs.ModuleParent) GraphData {
	var data GraphData

	for _, node := range g.Nodes() {
		nd := NodeData{
			ID:    node.ID().String(),
			Label: node.Label().String(),
		}
		if chunk, ok := anymap.Get[stats.ChunkID](node.Annotations()); ok {
			v := uint32(chunk)
			nd.Chunk = &v
		}
		data.Nodes = append(data.Nodes, nd)
	}
	sort.Slice(data.Nodes, func(i, j int) bool {
		return data.Nodes[i].ID < data.Nodes[j].ID
	})

	seen := make(map[[2]string]struct{})
	for _, edge := range g.Edges() {
		key := [2]string{edge.Origin.ID().String(), edge.Target.ID().String()}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		data.Edges = append(data.Edges, EdgeData{
			Source:   key[0],
			Target:   key[1],
			Async:    edge.Meta.Type.Async(),
			Importer: edge.Meta.Importer.String(),
		})
	}
	sort.Slice(data.Edges, func(i, j int) bool {
		a, b := data.Edges[i], data.Edges[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Target < b.Target
	})

	return data
}

// WriteJSON writes the graph's wire form, pretty-printed.
func WriteJSON(w io.Writer, g *graphs.ModuleParent) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ModuleGraph(g))
}
