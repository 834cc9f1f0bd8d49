package ops

import (
	"fmt"
	"strings"

	"webpackq/internal/anymap"
	"webpackq/internal/graph"
	"webpackq/internal/graphs"
	"webpackq/internal/stats"
)

// EntrypointList renders entrypoint names with their chunk lists.
type EntrypointList []stats.EntrypointInfo

func (l EntrypointList) String() string {
	var b strings.Builder
	for _, entry := range l {
		fmt.Fprintf(&b, "%s:\n", entry.Name)
		b.WriteString("  Chunks:\n")
		for _, chunk := range entry.Chunks {
			fmt.Fprintf(&b, "    %s\n", chunk)
		}
	}
	return b.String()
}

// ChunkDescription is the human-facing summary of one chunk.
type ChunkDescription struct {
	ID      stats.ChunkID
	Size    stats.SizeBytes
	Files   []string
	Modules []stats.ModuleName
}

func (d *ChunkDescription) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Chunk: %s\n", d.ID)
	fmt.Fprintf(&b, "size: %s\n", d.Size)
	b.WriteString("Files:\n")
	for _, f := range d.Files {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	b.WriteString("Modules:\n")
	for _, m := range d.Modules {
		fmt.Fprintf(&b, "  %s\n", m)
	}
	return b.String()
}

// DescribeChunk summarizes a chunk: size, emitted files, and the names of
// the modules it contains. Module ids that cannot be resolved are dropped.
func DescribeChunk(chunkID stats.ChunkID, chunks stats.Chunks, modules stats.Modules) (*ChunkDescription, bool) {
	chunk, ok := chunks.Query(chunkID)
	if !ok {
		return nil, false
	}

	names := make([]stats.ModuleName, 0, len(chunk.Modules))
	for _, id := range chunk.Modules {
		if module, ok := modules.Query(id); ok {
			names = append(names, module.Name)
		}
	}

	return &ChunkDescription{
		ID:      chunkID,
		Size:    chunk.Size,
		Files:   chunk.Files,
		Modules: names,
	}, true
}

// EntrypointDescription is the loading story of one entrypoint: the size of
// the synchronous initial payload and, per entry chunk, the tree of chunks
// it can pull in.
type EntrypointDescription struct {
	Name            string
	InitialLoadSize stats.SizeBytes
	Roots           []*graphs.ChunkLoadNode
}

// asyncMark rides in the display traversal's meta: once a path crosses into
// a non-initial chunk, everything below renders as asynchronous.
type asyncMark struct{}

func (d *EntrypointDescription) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", d.Name)
	fmt.Fprintf(&b, "Initial size (uncompressed): %s\n", d.InitialLoadSize)
	b.WriteString("Chunk Imports (* denotes asynchronous chunk):\n")

	for _, root := range d.Roots {
		fmt.Fprintf(&b, "├── %s (%s) [", root.ID(), root.Data().Size)
		for _, file := range root.Data().Files {
			fmt.Fprintf(&b, "%s ", file)
		}
		b.WriteString("]\n")

		t := graph.Traverse(root).
			SetPathing(graph.DFS).
			SetMode(graph.Acyclic)
		visit := func(meta graph.Meta[stats.ChunkID], e *graphs.ChunkLoadEdge) graph.Action {
			node := e.Target
			if !node.Data().Initial {
				anymap.Insert(meta.Bag(), asyncMark{})
			}

			marker := "├── "
			if anymap.Has[asyncMark](meta.Bag()) {
				marker = "├*- "
			}
			b.WriteString(strings.Repeat(" ", meta.Depth()*4))
			b.WriteString(marker)

			fmt.Fprintf(&b, "%s (%s) [", node.Label(), node.Data().Size)
			for _, file := range node.Data().Files {
				fmt.Fprintf(&b, "%s,", file)
			}
			b.WriteString("]\n")
			return graph.Continue
		}
		for t.Drive(visit) {
		}
	}

	return b.String()
}

// DescribeEntrypoint builds the chunk-load graph and walks each entry chunk
// twice: once skipping async chunks to measure the initial synchronous
// payload, once with a per-path seen-set to compute display trees without
// diamond duplication.
func DescribeEntrypoint(chunks stats.Chunks, entrypoint stats.EntrypointInfo) (*EntrypointDescription, error) {
	loadGraph, err := graphs.BuildChunkLoad(chunks)
	if err != nil {
		return nil, err
	}

	var (
		initialLog *graph.Log[stats.ChunkID]
		roots      []*graphs.ChunkLoadNode
	)

	for _, chunkID := range entrypoint.Chunks {
		chunkNode, ok := loadGraph.Query(chunkID)
		if !ok {
			continue
		}

		truncated := graph.Traverse(chunkNode).
			SetPathing(graph.DFS).
			SetMode(graph.Acyclic).
			Execute(func(_ graph.Meta[stats.ChunkID], e *graphs.ChunkLoadEdge) graph.Action {
				if !e.Target.Data().Initial {
					return graph.Skip
				}
				return graph.Continue
			})

		uniquePaths := graph.Traverse(chunkNode).
			SetPathing(graph.DFS).
			SetMode(graph.Acyclic).
			Execute(func(meta graph.Meta[stats.ChunkID], e *graphs.ChunkLoadEdge) graph.Action {
				if seen, ok := anymap.Get[map[stats.ChunkID]struct{}](meta.Bag()); ok {
					if _, dup := seen[e.Target.ID()]; dup {
						return graph.Skip
					}
					seen[e.Target.ID()] = struct{}{}
				} else {
					anymap.Insert(meta.Bag(), map[stats.ChunkID]struct{}{
						e.Origin.ID(): {},
					})
				}
				return graph.Continue
			})

		projection := graph.Project(uniquePaths, loadGraph)
		root, ok := projection.Query(chunkNode.ID())
		if !ok {
			panic(fmt.Sprintf("ops: entry chunk %s missing from its own display projection", chunkNode.ID()))
		}
		roots = append(roots, root)

		if initialLog == nil {
			initialLog = truncated
		} else {
			initialLog.MergeWith(truncated)
		}
	}

	if initialLog == nil {
		return nil, fmt.Errorf("entrypoint %s: %w", entrypoint.Name, ErrGraph)
	}

	outputGraph := graph.Project(initialLog, loadGraph)
	var initialSize stats.SizeBytes
	for _, node := range outputGraph.Nodes() {
		initialSize += node.Data().Size
	}

	return &EntrypointDescription{
		Name:            entrypoint.Name,
		InitialLoadSize: initialSize,
		Roots:           roots,
	}, nil
}
