package ops

import (
	"fmt"

	"webpackq/internal/anymap"
	"webpackq/internal/graph"
	"webpackq/internal/graphs"
	"webpackq/internal/stats"
)

// modulePath is the growing (origin, target) pair list a paths-to-chunk
// traversal carries in its meta bag.
type modulePath []graph.EdgeKey[stats.ModuleIdentifier]

// PathsToChunk enumerates module-level paths from the entrypoint's chunks
// into the target chunk: every module of every non-target entry chunk is
// walked DFS-acyclic, the current path rides along in the traversal meta,
// and a path is committed the moment chunk attribution lands on the target.
// The union of committed paths is projected into the inverted module graph.
func PathsToChunk(entrypoint stats.EntrypointInfo, targetChunk stats.ChunkID, chunks stats.Chunks, modules stats.Modules) (*graphs.ModuleParent, error) {
	chunkGraph, err := graphs.BuildChunk(chunks)
	if err != nil {
		return nil, err
	}
	importChunkGraph, err := graphs.BuildChunkImportPath(chunks)
	if err != nil {
		return nil, err
	}
	parentGraph, err := graphs.BuildModuleParent(modules)
	if err != nil {
		return nil, err
	}
	moduleGraph := parentGraph.Invert()

	var committed []modulePath

	for _, rootChunk := range entrypoint.Chunks {
		if rootChunk == targetChunk {
			continue
		}
		chunkNode, ok := chunkGraph.Query(rootChunk)
		if !ok {
			return nil, fmt.Errorf("chunk %s: %w", rootChunk, ErrGraph)
		}

		for _, moduleID := range *chunkNode.Data() {
			moduleNode, ok := moduleGraph.Query(moduleID)
			if !ok {
				return nil, fmt.Errorf("module %s: %w", moduleID, ErrGraph)
			}
			anymap.Insert(moduleNode.Annotations(), chunkNode.ID())

			graph.Traverse(moduleNode).
				SetMode(graph.Acyclic).
				SetPathing(graph.DFS).
				Execute(func(meta graph.Meta[stats.ModuleIdentifier], e *graphs.ModuleParentEdge) graph.Action {
					originChunk, ok := anymap.Get[stats.ChunkID](e.Origin.Annotations())
					if !ok {
						panic("ops: path traversal did not have an origin chunk")
					}
					originChunkNode, _ := chunkGraph.Query(originChunk)

					// The bag is shared by every visit below this seed edge, so
					// paths are kept per reached module: a sibling subtree that
					// was explored first does not leak into this branch's path.
					paths, ok := anymap.Get[map[stats.ModuleIdentifier]modulePath](meta.Bag())
					if !ok {
						paths = map[stats.ModuleIdentifier]modulePath{e.Origin.ID(): nil}
						anymap.Insert(meta.Bag(), paths)
					}
					prev := paths[e.Origin.ID()]
					path := make(modulePath, 0, len(prev)+1)
					path = append(path, prev...)
					path = append(path, e.Key())

					nodeChunk, decided := findPossibleChunkFor(e.Target, originChunk, originChunkNode, importChunkGraph)
					annotateWithChunk(e.Target, nodeChunk, decided, originChunk)

					// Arrived at the target chunk: this path escapes.
					if decided && nodeChunk == targetChunk {
						committed = append(committed, path)
						return graph.Backtrack
					}

					if _, known := paths[e.Target.ID()]; !known {
						paths[e.Target.ID()] = path
					}
					return graph.Continue
				})
		}
	}

	merged := graph.NewLog[stats.ModuleIdentifier]()
	for _, path := range committed {
		merged.MergeWith(graph.LogFromPairs(path))
	}

	return graph.Project(merged, moduleGraph), nil
}
