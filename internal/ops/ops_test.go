package ops

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webpackq/internal/anymap"
	"webpackq/internal/graph"
	"webpackq/internal/graphs"
	"webpackq/internal/stats"
)

type fakeModules []*stats.ModuleInfo

func (f fakeModules) Query(id stats.ModuleIdentifier) (*stats.ModuleInfo, bool) {
	for _, m := range f {
		if m.Identifier == id {
			return m, true
		}
	}
	return nil, false
}

func (f fakeModules) All() []*stats.ModuleInfo { return f }

type fakeChunks []*stats.ChunkInfo

func (f fakeChunks) Query(id stats.ChunkID) (*stats.ChunkInfo, bool) {
	for _, c := range f {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func (f fakeChunks) All() []*stats.ChunkInfo { return f }

func mid(s string) stats.ModuleIdentifier { return stats.InternModuleIdentifier(s) }
func mname(s string) stats.ModuleName     { return stats.InternModuleName(s) }

func module(id string, chunks []stats.ChunkID, importers ...string) *stats.ModuleInfo {
	info := &stats.ModuleInfo{
		Identifier: mid(id),
		Name:       mname(id),
		Chunks:     chunks,
	}
	for _, importer := range importers {
		info.Imports = append(info.Imports, stats.ImportReason{
			Module:   mid(importer),
			Type:     stats.ImportStatic,
			Importer: mname(importer),
		})
	}
	return info
}

func moduleNode(id string, chunks ...stats.ChunkID) *graphs.ModuleParentNode {
	set := make(stats.ModuleChunks)
	for _, c := range chunks {
		set[c] = struct{}{}
	}
	return graph.NewNode[stats.ModuleIdentifier, stats.ModuleName, stats.ModuleChunks, stats.ImportEdge](
		mid(id), mname(id), set)
}

func chunkNode(id stats.ChunkID, children ...stats.ChunkID) (*graphs.ChunkNode, *graphs.Chunk) {
	g := graph.NewGraph[stats.ChunkID, stats.ChunkID, []stats.ModuleIdentifier, graphs.ChunkChild]()
	node := graph.NewNode[stats.ChunkID, stats.ChunkID, []stats.ModuleIdentifier, graphs.ChunkChild](id, id, nil)
	g.Insert(node)
	meta := graphs.ChunkChild{}
	for _, child := range children {
		target := graph.NewNode[stats.ChunkID, stats.ChunkID, []stats.ModuleIdentifier, graphs.ChunkChild](child, child, nil)
		g.Insert(target)
		node.InsertEdge(target, &meta)
	}
	return node, g
}

func emptyImportPaths() *graphs.ChunkImportPath {
	return graph.NewGraph[stats.ChunkID, stats.ChunkID, struct{}, graphs.ParentOrSibling]()
}

func TestFindPossibleChunkFor_OriginMembership(t *testing.T) {
	t.Run("empty chunk set stays in origin", func(t *testing.T) {
		node := moduleNode("m")
		chunk, ok := findPossibleChunkFor(node, 5, nil, emptyImportPaths())
		assert.True(t, ok)
		assert.Equal(t, stats.ChunkID(5), chunk)
	})

	t.Run("origin chunk in set stays in origin", func(t *testing.T) {
		node := moduleNode("m", 5, 9)
		chunk, ok := findPossibleChunkFor(node, 5, nil, emptyImportPaths())
		assert.True(t, ok)
		assert.Equal(t, stats.ChunkID(5), chunk)
	})
}

func TestFindPossibleChunkFor_SingleChoice(t *testing.T) {
	// A module recorded in exactly one chunk is attributed there regardless
	// of the origin chunk.
	node := moduleNode("m", 9)
	chunk, ok := findPossibleChunkFor(node, 5, nil, emptyImportPaths())
	assert.True(t, ok)
	assert.Equal(t, stats.ChunkID(9), chunk)
}

func TestFindPossibleChunkFor_ChildPreference(t *testing.T) {
	// Origin chunk O has children [C1, C2]; the module claims both. First
	// match in edge order wins.
	node := moduleNode("m", 11, 12)
	origin, _ := chunkNode(5, 11, 12)

	chunk, ok := findPossibleChunkFor(node, 5, origin, emptyImportPaths())
	assert.True(t, ok)
	assert.Equal(t, stats.ChunkID(11), chunk)
}

func TestFindPossibleChunkFor_ImportPathFallback(t *testing.T) {
	// The module's chunks are reachable only through the import-path
	// relation: 5 -> 7 (sibling), and the module claims {7, 8}.
	node := moduleNode("m", 7, 8)
	origin, _ := chunkNode(5, 6)

	paths := emptyImportPaths()
	five := graph.NewNode[stats.ChunkID, stats.ChunkID, struct{}, graphs.ParentOrSibling](5, 5, struct{}{})
	seven := graph.NewNode[stats.ChunkID, stats.ChunkID, struct{}, graphs.ParentOrSibling](7, 7, struct{}{})
	paths.Insert(five)
	paths.Insert(seven)
	meta := graphs.ParentOrSibling{}
	five.InsertEdge(seven, &meta)

	chunk, ok := findPossibleChunkFor(node, 5, origin, paths)
	assert.True(t, ok)
	assert.Equal(t, stats.ChunkID(7), chunk)
}

func TestFindPossibleChunkFor_NoDecision(t *testing.T) {
	node := moduleNode("m", 7, 8)
	_, ok := findPossibleChunkFor(node, 5, nil, emptyImportPaths())
	assert.False(t, ok)
}

func TestAnnotateWithChunk_FallbackMarksDefaulted(t *testing.T) {
	node := moduleNode("m", 7, 8)

	annotateWithChunk(node, 0, false, 5)
	chunk, ok := ChunkAnnotation(node)
	require.True(t, ok)
	assert.Equal(t, stats.ChunkID(5), chunk)
	assert.True(t, anymap.Has[defaulted](node.Annotations()))

	// A later real decision overwrites the fallback.
	annotateWithChunk(node, 8, true, 5)
	chunk, _ = ChunkAnnotation(node)
	assert.Equal(t, stats.ChunkID(8), chunk)
}

func TestTraverseEntryChunk(t *testing.T) {
	modules := fakeModules{
		module("app.js", []stats.ChunkID{1}),
		module("lib.js", []stats.ChunkID{1}, "app.js"),
		module("util.js", nil, "lib.js"),
	}
	chunks := fakeChunks{
		&stats.ChunkInfo{ID: 1, Initial: true, Modules: []stats.ModuleIdentifier{mid("app.js")}},
	}
	entry := stats.EntrypointInfo{Name: "main", Chunks: []stats.ChunkID{1}}

	result, err := TraverseEntryChunk(modules, chunks, entry)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Order())

	app, ok := result.Query(mid("app.js"))
	require.True(t, ok)
	assert.Equal(t, []stats.ModuleIdentifier{mid("lib.js")}, func() []stats.ModuleIdentifier {
		var out []stats.ModuleIdentifier
		for _, e := range app.Edges() {
			out = append(out, e.Target.ID())
		}
		return out
	}())

	// Every reached module carries exactly one chunk annotation.
	for _, node := range result.Nodes() {
		chunk, ok := ChunkAnnotation(node)
		assert.True(t, ok, "module %s has no chunk annotation", node.ID())
		assert.Equal(t, stats.ChunkID(1), chunk)
	}
}

func TestTraverseEntryChunk_InvalidEntrypointChunksSkipped(t *testing.T) {
	// The sole entry module claims chunks {2, 3} but the initial chunk is
	// 1: the per-entry traversal fails and no traversal succeeds overall.
	modules := fakeModules{
		module("app.js", []stats.ChunkID{2, 3}),
	}
	chunks := fakeChunks{
		&stats.ChunkInfo{ID: 1, Initial: true, Modules: []stats.ModuleIdentifier{mid("app.js")}},
		&stats.ChunkInfo{ID: 2},
		&stats.ChunkInfo{ID: 3},
	}
	entry := stats.EntrypointInfo{Name: "main", Chunks: []stats.ChunkID{1}}

	_, err := TraverseEntryChunk(modules, chunks, entry)
	assert.Error(t, err)
}

func TestTraverseEntryChunk_MissingChunkIsGraphError(t *testing.T) {
	modules := fakeModules{module("app.js", []stats.ChunkID{1})}
	chunks := fakeChunks{}
	entry := stats.EntrypointInfo{Name: "main", Chunks: []stats.ChunkID{1}}

	_, err := TraverseEntryChunk(modules, chunks, entry)
	assert.ErrorIs(t, err, ErrGraph)
}

func TestPathsToChunk_Termination(t *testing.T) {
	// A (chunk 1) -> B -> C (target chunk 9) -> D. The single path stops at
	// C; D is never part of the result.
	target := stats.ChunkID(9)
	modules := fakeModules{
		module("a.js", []stats.ChunkID{1}),
		module("b.js", nil, "a.js"),
		module("c.js", []stats.ChunkID{target}, "b.js"),
		module("d.js", nil, "c.js"),
	}
	chunks := fakeChunks{
		&stats.ChunkInfo{ID: 1, Initial: true, Modules: []stats.ModuleIdentifier{mid("a.js")}},
		&stats.ChunkInfo{ID: target},
	}
	entry := stats.EntrypointInfo{Name: "main", Chunks: []stats.ChunkID{1, target}}

	result, err := PathsToChunk(entry, target, chunks, modules)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Order())
	_, ok := result.Query(mid("d.js"))
	assert.False(t, ok)

	a, ok := result.Query(mid("a.js"))
	require.True(t, ok)
	require.Len(t, a.Edges(), 1)
	assert.Equal(t, mid("b.js"), a.Edges()[0].Target.ID())

	b, ok := result.Query(mid("b.js"))
	require.True(t, ok)
	require.Len(t, b.Edges(), 1)
	assert.Equal(t, mid("c.js"), b.Edges()[0].Target.ID())
}

func TestDescribeChunk(t *testing.T) {
	modules := fakeModules{
		module("a.js", []stats.ChunkID{4}),
		module("b.js", []stats.ChunkID{4}),
	}
	chunks := fakeChunks{
		&stats.ChunkInfo{
			ID:      4,
			Size:    2048,
			Files:   []string{"4.bundle.js"},
			Modules: []stats.ModuleIdentifier{mid("a.js"), mid("b.js")},
		},
	}

	description, ok := DescribeChunk(4, chunks, modules)
	require.True(t, ok)
	assert.Equal(t, stats.ChunkID(4), description.ID)
	assert.Equal(t, []stats.ModuleName{mname("a.js"), mname("b.js")}, description.Modules)

	rendered := description.String()
	assert.Contains(t, rendered, "Chunk: 4")
	assert.Contains(t, rendered, "4.bundle.js")

	_, ok = DescribeChunk(99, chunks, modules)
	assert.False(t, ok)
}

func TestDescribeEntrypoint(t *testing.T) {
	chunks := fakeChunks{
		&stats.ChunkInfo{ID: 10, Initial: true, Size: 100, Files: []string{"main.js"}, Children: []stats.ChunkID{11, 12}},
		&stats.ChunkInfo{ID: 11, Initial: true, Size: 50, Files: []string{"vendor.js"}},
		&stats.ChunkInfo{ID: 12, Initial: false, Size: 70, Files: []string{"lazy.js"}},
	}
	entry := stats.EntrypointInfo{Name: "main", Chunks: []stats.ChunkID{10}}

	description, err := DescribeEntrypoint(chunks, entry)
	require.NoError(t, err)

	// The async chunk 12 is excluded from the initial payload.
	assert.Equal(t, stats.SizeBytes(150), description.InitialLoadSize)
	require.Len(t, description.Roots, 1)
	assert.Equal(t, stats.ChunkID(10), description.Roots[0].ID())

	rendered := description.String()
	assert.Contains(t, rendered, "main:")
	assert.True(t, strings.Contains(rendered, "├*- 12"), "async chunk must be starred:\n%s", rendered)
	assert.Contains(t, rendered, "├── 11")
}

func TestListEntrypoints(t *testing.T) {
	list := EntrypointList{
		{Name: "main", Chunks: []stats.ChunkID{0, 1}},
	}
	rendered := list.String()
	assert.Contains(t, rendered, "main:")
	assert.Contains(t, rendered, "  Chunks:")
	assert.Contains(t, rendered, "    0")
}
