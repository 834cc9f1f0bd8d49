// Package ops implements the analyzer's domain operations on top of the
// graph engine: entrypoint traversal with chunk attribution, paths-to-chunk
// search, and chunk / entrypoint descriptions.
package ops

import (
	"errors"
	"fmt"

	"webpackq/internal/stats"
)

// NoEntrypointError reports a requested module missing from the module
// graph.
type NoEntrypointError struct {
	ID string
}

func (e *NoEntrypointError) Error() string {
	return fmt.Sprintf("module %s does not exist", e.ID)
}

// InvalidEntrypointChunksError reports an entry module whose recorded chunk
// set has several members, none of which is the expected initial chunk.
type InvalidEntrypointChunksError struct {
	ID       string
	Expected stats.ChunkID
	Chunks   []stats.ChunkID
}

func (e *InvalidEntrypointChunksError) Error() string {
	return fmt.Sprintf("entrypoint %s contains invalid chunks: %v. Expected chunk %s", e.ID, e.Chunks, e.Expected)
}

// ErrGraph reports an internal inconsistency, typically a chunk known to an
// entrypoint that is missing from the chunk graph.
var ErrGraph = errors.New("an unexpected error occurred when traversing the graph")
