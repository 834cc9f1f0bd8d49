package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"webpackq/internal/graph"
)

// ModuleInfo is the dialect-independent view of a module that graph
// building consumes.
type ModuleInfo struct {
	Identifier ModuleIdentifier
	Name       ModuleName
	Chunks     []ChunkID
	Size       SizeBytes
	// Imports lists, in stats-file order, the modules that pulled this one
	// into the graph (webpack "reasons").
	Imports []ImportReason
}

// ImportReason is one recorded cause for a module's inclusion: the
// identifier of the importing module plus how the import was made.
type ImportReason struct {
	Module   ModuleIdentifier
	Type     ImportType
	Importer ModuleName
}

// ChunkSet returns the module's chunk membership as a set.
func (m *ModuleInfo) ChunkSet() ModuleChunks {
	set := make(ModuleChunks, len(m.Chunks))
	for _, id := range m.Chunks {
		set[id] = struct{}{}
	}
	return set
}

// ChunkInfo is the dialect-independent view of a chunk.
type ChunkInfo struct {
	ID       ChunkID
	Entry    bool
	Initial  bool
	Size     SizeBytes
	Files    []string
	Names    []string
	Parents  []ChunkID
	Siblings []ChunkID
	Children []ChunkID
	Modules  []ModuleIdentifier
}

// EntrypointInfo names a starting module set plus the chunks that must load
// to run it.
type EntrypointInfo struct {
	Name   string
	Chunks []ChunkID
}

// Modules and Chunks are the query surfaces a dialect must produce. A
// dialect with forwarding identities (nested submodules) additionally
// implements graph.Indexer.
type (
	Modules = graph.Source[ModuleIdentifier, *ModuleInfo]
	Chunks  = graph.Source[ChunkID, *ChunkInfo]
)

// Document is a parsed stats file of any supported dialect.
type Document interface {
	Modules() Modules
	Chunks() Chunks
	// Entrypoints lists entrypoints sorted by name.
	Entrypoints() []EntrypointInfo
	Entrypoint(name string) (EntrypointInfo, bool)
}

var (
	// ErrVersionDeserialization means the document's version tag could not
	// be read at all.
	ErrVersionDeserialization = errors.New("could not get version number from json")
	// ErrUnsupportedVersion means the version tag named a dialect this
	// analyzer does not speak.
	ErrUnsupportedVersion = errors.New("unsupported webpack stats version")
)

// DeserializationError wraps a decode failure of a recognized dialect.
type DeserializationError struct {
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("could not deserialize stats file: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// SniffVersion extracts the major version character from the document's
// top-level version field. The major character selects the dialect.
func SniffVersion(data []byte) (byte, error) {
	var header struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return 0, ErrVersionDeserialization
	}
	trimmed := strings.TrimSpace(header.Version)
	if trimmed == "" {
		return 0, ErrVersionDeserialization
	}
	return trimmed[0], nil
}
