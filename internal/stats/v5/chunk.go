package v5

import (
	"encoding/json"

	"webpackq/internal/stats"
)

// Chunk mirrors one entry of the stats file's chunks array.
type Chunk struct {
	ID      stats.ChunkID `json:"id"`
	Entry   bool          `json:"entry"`
	Initial bool          `json:"initial"`
	Modules ModuleList    `json:"modules"`
	Files   []string      `json:"files"`
	Names   StringList    `json:"names"`
	Origins []Origin      `json:"origins"`
	// Parents, Siblings, and Children relate chunks by how the bundler may
	// load them relative to this one.
	Parents  []stats.ChunkID `json:"parents"`
	Siblings []stats.ChunkID `json:"siblings"`
	Children []stats.ChunkID `json:"children"`
	Rendered bool            `json:"rendered"`
	Size     stats.SizeBytes `json:"size"`
}

// Origin describes what caused a chunk to exist.
type Origin struct {
	Loc              string                 `json:"loc"`
	ModuleIdentifier stats.ModuleIdentifier `json:"moduleIdentifier"`
	ModuleID         json.RawMessage        `json:"moduleId"`
	ModuleName       string                 `json:"moduleName"`
	Reasons          ReasonList             `json:"reasons"`
}

type ChunkList []*Chunk

func (c *Chunk) info() *stats.ChunkInfo {
	moduleIDs := make([]stats.ModuleIdentifier, 0, len(c.Modules))
	for _, m := range c.Modules {
		moduleIDs = append(moduleIDs, m.Identifier)
	}
	return &stats.ChunkInfo{
		ID:       c.ID,
		Entry:    c.Entry,
		Initial:  c.Initial,
		Size:     c.Size,
		Files:    c.Files,
		Names:    c.Names,
		Parents:  c.Parents,
		Siblings: c.Siblings,
		Children: c.Children,
		Modules:  moduleIDs,
	}
}
