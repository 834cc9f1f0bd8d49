package emit

import (
	_ "embed"
	"os"
	"path/filepath"

	"webpackq/internal/graphs"
)

//go:embed templates/index.html
var indexTemplate []byte

// WriteHTMLDir writes the fixed viewer page plus the graph's data.json into
// dir, creating it as needed. Serve the directory with any web server.
func WriteHTMLDir(dir string, g *graphs.ModuleParent) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, "index.html"), indexTemplate, 0o644); err != nil {
		return err
	}

	dataFile, err := os.Create(filepath.Join(dir, "data.json"))
	if err != nil {
		return err
	}
	defer dataFile.Close()

	return WriteJSON(dataFile, g)
}
