// Package v5 decodes the webpack v5 stats dialect and exposes it through
// the dialect-independent contracts in the stats package. Field coverage
// follows https://webpack.js.org/api/stats/ as far as the docs go; a few
// fields are undocumented there and mirrored as webpack emits them.
package v5

import (
	"encoding/json"

	"webpackq/internal/stats"
)

// Stats is the decoded v5 stats document.
type Stats struct {
	// Version of webpack used for the compilation (5.x.x).
	Version string `json:"version"`
	// Compilation specific hash.
	Hash string `json:"hash"`
	// Compilation time in milliseconds.
	Time int64 `json:"time"`
	// Undocumented by webpack.
	PublicPath string `json:"publicPath"`
	// Path to webpack's output directory.
	OutputPath string `json:"outputPath"`
	// Chunk name to emitted asset(s) mapping.
	AssetsByChunkName map[string]StringList `json:"assetsByChunkName"`
	EntrypointMap     map[string]EntryPoint `json:"entrypoints"`
	Assets            []Asset               `json:"assets"`
	ChunkList         ChunkList             `json:"chunks"`
	ModuleList        ModuleList            `json:"modules"`
	ErrorsCount       int                   `json:"errorsCount"`
	WarningsCount     int                   `json:"warningsCount"`
	Children          []*Stats              `json:"children"`

	moduleSource *moduleSource
	chunkSource  *chunkSource
}

// Parse decodes a v5 stats document and prepares its query sources.
func Parse(data []byte) (*Stats, error) {
	var s Stats
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &stats.DeserializationError{Err: err}
	}
	s.moduleSource = newModuleSource(s.ModuleList)
	s.chunkSource = newChunkSource(s.ChunkList)
	return &s, nil
}

func (s *Stats) Modules() stats.Modules {
	return s.moduleSource
}

func (s *Stats) Chunks() stats.Chunks {
	return s.chunkSource
}

func (s *Stats) Entrypoints() []stats.EntrypointInfo {
	out := make([]stats.EntrypointInfo, 0, len(s.EntrypointMap))
	for name, entry := range s.EntrypointMap {
		info := entry.info()
		if info.Name == "" {
			info.Name = name
		}
		out = append(out, info)
	}
	sortEntrypoints(out)
	return out
}

func (s *Stats) Entrypoint(name string) (stats.EntrypointInfo, bool) {
	entry, ok := s.EntrypointMap[name]
	if !ok {
		return stats.EntrypointInfo{}, false
	}
	info := entry.info()
	if info.Name == "" {
		info.Name = name
	}
	return info, true
}

// EntryPoint is one named entrypoint: the chunks that must load to run it.
type EntryPoint struct {
	Name   string          `json:"name"`
	Chunks []stats.ChunkID `json:"chunks"`
}

func (e EntryPoint) info() stats.EntrypointInfo {
	return stats.EntrypointInfo{Name: e.Name, Chunks: e.Chunks}
}

// StringList accepts a JSON string or a list of strings; webpack emits
// either depending on how many assets a chunk name maps to.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = StringList(many)
	return nil
}
