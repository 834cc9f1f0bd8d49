package v5

import "webpackq/internal/stats"

// Asset is one output file emitted from the compilation.
// https://webpack.js.org/api/stats/#asset-objects
type Asset struct {
	// Type is undocumented by webpack.
	Type string `json:"type"`
	// Name is the output filename.
	Name string `json:"name"`
	// Chunks this asset contains.
	Chunks []stats.ChunkID `json:"chunks"`
	// ChunkNames this asset contains.
	ChunkNames StringList `json:"chunkNames"`
	// Emitted indicates whether the asset made it to the output directory.
	Emitted bool            `json:"emitted"`
	Size    stats.SizeBytes `json:"size"`
}
