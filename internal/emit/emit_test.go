package emit

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webpackq/internal/anymap"
	"webpackq/internal/graph"
	"webpackq/internal/graphs"
	"webpackq/internal/stats"
)

func testGraph() *graphs.ModuleParent {
	g := graph.NewGraph[stats.ModuleIdentifier, stats.ModuleName, stats.ModuleChunks, stats.ImportEdge]()

	mk := func(id string) *graphs.ModuleParentNode {
		n := graph.NewNode[stats.ModuleIdentifier, stats.ModuleName, stats.ModuleChunks, stats.ImportEdge](
			stats.InternModuleIdentifier(id), stats.InternModuleName(id), nil)
		g.Insert(n)
		return n
	}

	a := mk("./a.js")
	b := mk("./b.js")
	c := mk("./c.js")

	anymap.Insert(a.Annotations(), stats.ChunkID(3))

	// Two parallel a -> b edges with different metadata, one a -> c.
	a.InsertEdge(b, &stats.ImportEdge{Type: stats.ImportStatic, Importer: stats.InternModuleName("./a.js")})
	a.InsertEdge(b, &stats.ImportEdge{Type: stats.ImportRequire, Importer: stats.InternModuleName("./a.js")})
	a.InsertEdge(c, &stats.ImportEdge{Type: stats.ImportRequire, Importer: stats.InternModuleName("./a.js")})

	return g
}

func TestModuleGraph(t *testing.T) {
	data := ModuleGraph(testGraph())

	require.Len(t, data.Nodes, 3)
	assert.Equal(t, "./a.js", data.Nodes[0].ID)
	require.NotNil(t, data.Nodes[0].Chunk)
	assert.Equal(t, uint32(3), *data.Nodes[0].Chunk)
	assert.Nil(t, data.Nodes[1].Chunk)

	// Parallel edges collapse by (source, target) identity.
	require.Len(t, data.Edges, 2)
	assert.Equal(t, "./b.js", data.Edges[0].Target)
	assert.True(t, data.Edges[0].Async) // first inserted meta wins: import
	assert.Equal(t, "./a.js", data.Edges[0].Importer)
	assert.False(t, data.Edges[1].Async)
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, testGraph()))

	var decoded GraphData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, ModuleGraph(testGraph()), decoded)
}

func TestWriteDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, testGraph()))

	out := buf.String()
	assert.Contains(t, out, "digraph webpack_stats {")
	assert.Contains(t, out, "__a_js;")
	assert.Contains(t, out, "__a_js -> __b_js;")
	assert.Contains(t, out, "__a_js -> __c_js;")
}

func TestWriteHTMLDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteHTMLDir(dir, testGraph()))

	assert.FileExists(t, dir+"/index.html")
	assert.FileExists(t, dir+"/data.json")
}
