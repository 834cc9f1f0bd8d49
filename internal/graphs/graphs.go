// Package graphs fixes the graph flavors the analyzer works with and binds
// the stats source contracts to the generic engine. All four flavors share
// the engine; they differ only in node data and edge metadata.
package graphs

import (
	"webpackq/internal/graph"
	"webpackq/internal/stats"
)

// ChunkChild marks an edge from a chunk to one of its children.
type ChunkChild struct{}

// ParentOrSibling marks an edge in the chunk import-path relation, used as
// the attribution fallback when a module is not in any child of its origin
// chunk.
type ParentOrSibling struct{}

// ChunkLoadData is the node payload of the chunk-load graph.
type ChunkLoadData struct {
	Children []stats.ChunkID
	Size     stats.SizeBytes
	Initial  bool
	Files    []string
}

type (
	// ModuleParent relates a module to the modules that imported it. Node
	// data is the module's chunk membership; inverting it yields the
	// parent-to-child graph traversals run on.
	ModuleParent     = graph.Graph[stats.ModuleIdentifier, stats.ModuleName, stats.ModuleChunks, stats.ImportEdge]
	ModuleParentNode = graph.Node[stats.ModuleIdentifier, stats.ModuleName, stats.ModuleChunks, stats.ImportEdge]
	ModuleParentEdge = graph.Edge[stats.ModuleIdentifier, stats.ModuleName, stats.ModuleChunks, stats.ImportEdge]

	// Chunk relates a chunk to its children; node data lists the modules
	// the chunk contains.
	Chunk     = graph.Graph[stats.ChunkID, stats.ChunkID, []stats.ModuleIdentifier, ChunkChild]
	ChunkNode = graph.Node[stats.ChunkID, stats.ChunkID, []stats.ModuleIdentifier, ChunkChild]
	ChunkEdge = graph.Edge[stats.ChunkID, stats.ChunkID, []stats.ModuleIdentifier, ChunkChild]

	// ChunkImportPath relates a chunk to its siblings and parents.
	ChunkImportPath     = graph.Graph[stats.ChunkID, stats.ChunkID, struct{}, ParentOrSibling]
	ChunkImportPathNode = graph.Node[stats.ChunkID, stats.ChunkID, struct{}, ParentOrSibling]
	ChunkImportPathEdge = graph.Edge[stats.ChunkID, stats.ChunkID, struct{}, ParentOrSibling]

	// ChunkLoad relates a chunk to its children and carries what the
	// loading story needs: size, the initial flag, and emitted files.
	ChunkLoad     = graph.Graph[stats.ChunkID, stats.ChunkID, ChunkLoadData, ChunkChild]
	ChunkLoadNode = graph.Node[stats.ChunkID, stats.ChunkID, ChunkLoadData, ChunkChild]
	ChunkLoadEdge = graph.Edge[stats.ChunkID, stats.ChunkID, ChunkLoadData, ChunkChild]
)

// BuildModuleParent materializes the module-parent graph: one edge per
// import reason, pointing from the imported module to its importer.
func BuildModuleParent(src stats.Modules) (*ModuleParent, error) {
	def := graph.Definition[stats.ModuleIdentifier, stats.ModuleName, stats.ModuleChunks, stats.ImportEdge, *stats.ModuleInfo]{
		ID:    func(m *stats.ModuleInfo) stats.ModuleIdentifier { return m.Identifier },
		Label: func(m *stats.ModuleInfo) stats.ModuleName { return m.Name },
		Data:  func(m *stats.ModuleInfo) stats.ModuleChunks { return m.ChunkSet() },
		NextEdge: func(m *stats.ModuleInfo, prev int) (graph.SourceEdge[stats.ModuleIdentifier, stats.ImportEdge], bool) {
			i := prev + 1
			if i >= len(m.Imports) {
				return graph.SourceEdge[stats.ModuleIdentifier, stats.ImportEdge]{}, false
			}
			r := m.Imports[i]
			return graph.SourceEdge[stats.ModuleIdentifier, stats.ImportEdge]{
				Source: m.Identifier,
				Sink:   r.Module,
				Order:  i,
				Meta:   &stats.ImportEdge{Type: r.Type, Importer: r.Importer},
			}, true
		},
	}
	return graph.Build(def, src)
}

var chunkChild = ChunkChild{}

// BuildChunk materializes the chunk-child graph.
func BuildChunk(src stats.Chunks) (*Chunk, error) {
	def := graph.Definition[stats.ChunkID, stats.ChunkID, []stats.ModuleIdentifier, ChunkChild, *stats.ChunkInfo]{
		ID:    func(c *stats.ChunkInfo) stats.ChunkID { return c.ID },
		Label: func(c *stats.ChunkInfo) stats.ChunkID { return c.ID },
		Data:  func(c *stats.ChunkInfo) []stats.ModuleIdentifier { return c.Modules },
		NextEdge: func(c *stats.ChunkInfo, prev int) (graph.SourceEdge[stats.ChunkID, ChunkChild], bool) {
			i := prev + 1
			if i >= len(c.Children) {
				return graph.SourceEdge[stats.ChunkID, ChunkChild]{}, false
			}
			return graph.SourceEdge[stats.ChunkID, ChunkChild]{
				Source: c.ID,
				Sink:   c.Children[i],
				Order:  i,
				Meta:   &chunkChild,
			}, true
		},
	}
	return graph.Build(def, src)
}

var parentOrSibling = ParentOrSibling{}

// BuildChunkImportPath materializes the parent-or-sibling relation,
// siblings first, in stats-file order.
func BuildChunkImportPath(src stats.Chunks) (*ChunkImportPath, error) {
	def := graph.Definition[stats.ChunkID, stats.ChunkID, struct{}, ParentOrSibling, *stats.ChunkInfo]{
		ID:    func(c *stats.ChunkInfo) stats.ChunkID { return c.ID },
		Label: func(c *stats.ChunkInfo) stats.ChunkID { return c.ID },
		Data:  func(c *stats.ChunkInfo) struct{} { return struct{}{} },
		NextEdge: func(c *stats.ChunkInfo, prev int) (graph.SourceEdge[stats.ChunkID, ParentOrSibling], bool) {
			i := prev + 1
			var sink stats.ChunkID
			switch {
			case i < len(c.Siblings):
				sink = c.Siblings[i]
			case i-len(c.Siblings) < len(c.Parents):
				sink = c.Parents[i-len(c.Siblings)]
			default:
				return graph.SourceEdge[stats.ChunkID, ParentOrSibling]{}, false
			}
			return graph.SourceEdge[stats.ChunkID, ParentOrSibling]{
				Source: c.ID,
				Sink:   sink,
				Order:  i,
				Meta:   &parentOrSibling,
			}, true
		},
	}
	return graph.Build(def, src)
}

// BuildChunkLoad materializes the chunk-load graph.
func BuildChunkLoad(src stats.Chunks) (*ChunkLoad, error) {
	def := graph.Definition[stats.ChunkID, stats.ChunkID, ChunkLoadData, ChunkChild, *stats.ChunkInfo]{
		ID:    func(c *stats.ChunkInfo) stats.ChunkID { return c.ID },
		Label: func(c *stats.ChunkInfo) stats.ChunkID { return c.ID },
		Data: func(c *stats.ChunkInfo) ChunkLoadData {
			return ChunkLoadData{
				Children: c.Children,
				Size:     c.Size,
				Initial:  c.Initial,
				Files:    c.Files,
			}
		},
		NextEdge: func(c *stats.ChunkInfo, prev int) (graph.SourceEdge[stats.ChunkID, ChunkChild], bool) {
			i := prev + 1
			if i >= len(c.Children) {
				return graph.SourceEdge[stats.ChunkID, ChunkChild]{}, false
			}
			return graph.SourceEdge[stats.ChunkID, ChunkChild]{
				Source: c.ID,
				Sink:   c.Children[i],
				Order:  i,
				Meta:   &chunkChild,
			}, true
		},
	}
	return graph.Build(def, src)
}
