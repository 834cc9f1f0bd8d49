package ops

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"webpackq/internal/anymap"
	"webpackq/internal/graph"
	"webpackq/internal/graphs"
	"webpackq/internal/stats"
)

// defaulted marks a node whose chunk annotation fell back to the origin
// chunk because no better candidate existed; later disagreements with a
// defaulted assignment are expected and not warned about.
type defaulted struct{}

// findPossibleChunkFor decides which chunk the module node belongs to when
// reached from originChunk:
//
//  1. empty chunk set, or the set contains the origin chunk → origin chunk;
//  2. exactly one recorded chunk → that chunk;
//  3. no origin chunk node available → no decision (caller falls back);
//  4. a child of the origin chunk is in the set → first such child;
//  5. otherwise the first ancestor-or-sibling in the import-path graph
//     whose id is in the set, in the order a DFS-acyclic walk reaches it.
func findPossibleChunkFor(
	node *graphs.ModuleParentNode,
	originChunk stats.ChunkID,
	originChunkNode *graphs.ChunkNode,
	importPaths *graphs.ChunkImportPath,
) (stats.ChunkID, bool) {
	chunks := *node.Data()

	// Included in the current chunk.
	if chunks.Len() == 0 || chunks.Contains(originChunk) {
		return originChunk, true
	}

	// Only has one option really.
	if id, ok := chunks.One(); ok {
		return id, true
	}

	if originChunkNode == nil {
		return 0, false
	}

	// Origin chunk's children.
	if e := originChunkNode.FindEdge(func(e *graphs.ChunkEdge) bool {
		return chunks.Contains(e.Target.ID())
	}); e != nil {
		return e.Target.ID(), true
	}

	pathNode, ok := importPaths.Query(originChunkNode.ID())
	if !ok {
		panic(fmt.Sprintf("ops: origin chunk %s did not exist in the import-path graph", originChunkNode.ID()))
	}

	var (
		hit   stats.ChunkID
		found bool
	)
	graph.Traverse(pathNode).
		SetPathing(graph.DFS).
		SetMode(graph.Acyclic).
		Execute(func(_ graph.Meta[stats.ChunkID], e *graphs.ChunkImportPathEdge) graph.Action {
			log.Trace().
				Stringer("origin", e.Origin.Label()).
				Stringer("target", e.Target.Label()).
				Msg("check ancestor")
			if chunks.Contains(e.Target.ID()) {
				hit = e.Target.ID()
				found = true
				return graph.Halt
			}
			return graph.Continue
		})

	return hit, found
}

// annotateWithChunk records the attribution decision on the node. A
// disagreement with an earlier non-defaulted assignment is logged and
// overwritten; repeated disagreement means the module legitimately belongs
// to multiple chunks in traversal.
func annotateWithChunk(node *graphs.ModuleParentNode, chunk stats.ChunkID, decided bool, fallback stats.ChunkID) {
	bag := node.Annotations()

	switch {
	case decided:
		log.Trace().Stringer("chunk", chunk).Msg("annotate")
		if existing, ok := anymap.Get[stats.ChunkID](bag); ok {
			if existing != chunk && !anymap.Has[defaulted](bag) {
				log.Warn().
					Stringer("module", node.Label()).
					Stringer("previous", existing).
					Stringer("next", chunk).
					Msg("subsequent traversal resulted in inconsistent chunk assignment; module belongs to multiple chunks in traversal")
			}
		}
		anymap.Insert(bag, chunk)
	case anymap.Has[stats.ChunkID](bag):
		// Keep the earlier decision.
	default:
		anymap.Insert(bag, defaulted{})
		anymap.Insert(bag, fallback)
	}
}

// ChunkAnnotation reads the chunk a traversal assigned to the node.
func ChunkAnnotation(node *graphs.ModuleParentNode) (stats.ChunkID, bool) {
	return anymap.Get[stats.ChunkID](node.Annotations())
}
