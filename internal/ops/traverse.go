package ops

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"webpackq/internal/anymap"
	"webpackq/internal/graph"
	"webpackq/internal/graphs"
	"webpackq/internal/stats"
)

// TraverseEntrypoint walks the inverted module graph from one entry module,
// attributing every reachable module to a chunk. The entry module's own
// chunk set must be empty, a singleton, or contain the initial chunk;
// anything else is an InvalidEntrypointChunksError.
func TraverseEntrypoint(
	entrypointID stats.ModuleIdentifier,
	initialChunk stats.ChunkID,
	moduleGraph *graphs.ModuleParent,
	truncatedChunks *graphs.Chunk,
	importPaths *graphs.ChunkImportPath,
) (*graph.Log[stats.ModuleIdentifier], error) {
	entry, ok := moduleGraph.Query(entrypointID)
	if !ok {
		return nil, &NoEntrypointError{ID: entrypointID.String()}
	}

	chunks := *entry.Data()
	switch {
	case chunks.Len() == 0:
		anymap.Insert(entry.Annotations(), initialChunk)
	case chunks.Len() == 1:
		sole, _ := chunks.One()
		anymap.Insert(entry.Annotations(), sole)
	case !chunks.Contains(initialChunk):
		return nil, &InvalidEntrypointChunksError{
			ID:       entrypointID.String(),
			Expected: initialChunk,
			Chunks:   chunks.IDs(),
		}
	default:
		anymap.Insert(entry.Annotations(), initialChunk)
	}

	traversalLog := graph.Traverse(entry).
		SetPathing(graph.DFS).
		SetMode(graph.Acyclic).
		Execute(func(_ graph.Meta[stats.ModuleIdentifier], e *graphs.ModuleParentEdge) graph.Action {
			log.Trace().
				Stringer("origin", e.Origin.Label()).
				Stringer("target", e.Target.Label()).
				Msg("evaluate")
			originChunk, ok := anymap.Get[stats.ChunkID](e.Origin.Annotations())
			if !ok {
				panic("ops: traversal did not have a source chunk")
			}

			// Outgoing edges in the chunk graph drive the decision when the
			// module claims several chunks.
			originChunkNode, _ := truncatedChunks.Query(originChunk)

			chunk, decided := findPossibleChunkFor(e.Target, originChunk, originChunkNode, importPaths)
			annotateWithChunk(e.Target, chunk, decided, originChunk)
			return graph.Continue
		})

	return traversalLog, nil
}

// TraverseEntryChunk runs TraverseEntrypoint for every module of every chunk
// the entrypoint loads, merges the logs, and projects the union into the
// inverted module graph. Per-entry failures are logged and skipped; the call
// fails only when no traversal succeeded.
func TraverseEntryChunk(modules stats.Modules, chunks stats.Chunks, entrypoint stats.EntrypointInfo) (*graphs.ModuleParent, error) {
	chunkGraph, err := graphs.BuildChunk(chunks)
	if err != nil {
		return nil, err
	}
	validImportGraph, err := graphs.BuildChunkImportPath(chunks)
	if err != nil {
		return nil, err
	}
	parentGraph, err := graphs.BuildModuleParent(modules)
	if err != nil {
		return nil, err
	}
	moduleGraph := parentGraph.Invert()

	var merged *graph.Log[stats.ModuleIdentifier]

	for _, entryChunkID := range entrypoint.Chunks {
		chunkNode, ok := chunkGraph.Query(entryChunkID)
		if !ok {
			return nil, fmt.Errorf("chunk %s: %w", entryChunkID, ErrGraph)
		}

		chunkLog := graph.Traverse(chunkNode).
			SetMode(graph.Acyclic).
			Execute(func(_ graph.Meta[stats.ChunkID], _ *graphs.ChunkEdge) graph.Action {
				return graph.Continue
			})

		truncatedChunkGraph := graph.Project(chunkLog, chunkGraph)
		importPaths := graph.Prune(chunkLog, validImportGraph)

		for _, moduleID := range *chunkNode.Data() {
			entryLog, err := TraverseEntrypoint(moduleID, entryChunkID, moduleGraph, truncatedChunkGraph, importPaths)
			if err != nil {
				log.Warn().Err(err).Msg("skipping entry module")
				continue
			}
			if merged == nil {
				merged = entryLog
			} else {
				merged.MergeWith(entryLog)
			}
		}
	}

	if merged == nil {
		return nil, fmt.Errorf("entrypoint %s: no entry module traversal succeeded", entrypoint.Name)
	}

	return graph.Project(merged, moduleGraph), nil
}
