package stats

import (
	"encoding/json"
	"fmt"
)

// ImportType classifies why a module ended up in the dependency graph.
// Webpack's reason-type strings are only loosely documented; the mapping
// below covers what v5 emits in practice.
type ImportType int

const (
	// ImportEmpty means the stats file carried no reason type.
	ImportEmpty ImportType = iota
	// ImportRequireContext is a webpack require.context call.
	ImportRequireContext
	// ImportStatic is an ES6 import statement.
	ImportStatic
	// ImportDynamic is a deferred import() expression.
	ImportDynamic
	// ImportRequire is a CJS require.
	ImportRequire
	// ImportCJSSelfExport is a cjs self/export reference.
	ImportCJSSelfExport
	// ImportEntry marks a module required as an entrypoint.
	ImportEntry
	// ImportES6SideEffect is a harmony side effect evaluation.
	ImportES6SideEffect
	// ImportES6ExportImport is an `export { } from "..."` re-export.
	ImportES6ExportImport
	// ImportModuleDecorator is webpack's module decorator reason.
	ImportModuleDecorator
	// ImportURL is a new URL() asset reference.
	ImportURL
	// ImportAMDRequire is an AMD require.
	ImportAMDRequire
)

var importTypeNames = map[ImportType]string{
	ImportEmpty:           "",
	ImportRequireContext:  "require.context",
	ImportStatic:          "import",
	ImportDynamic:         "import()",
	ImportRequire:         "require",
	ImportCJSSelfExport:   "cjs self exports reference",
	ImportEntry:           "entry",
	ImportES6SideEffect:   "harmony side effect evaluation",
	ImportES6ExportImport: "harmony export imported specifier",
	ImportModuleDecorator: "module decorator",
	ImportURL:             "new URL()",
	ImportAMDRequire:      "amd require",
}

func (t ImportType) String() string {
	if name, ok := importTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ImportType(%d)", int(t))
}

// Async reports whether the import loads its target on demand rather than
// as part of the synchronous require graph.
func (t ImportType) Async() bool {
	switch t {
	case ImportRequireContext, ImportStatic, ImportDynamic:
		return true
	}
	return false
}

// ParseImportType maps a webpack reason-type string. Unknown strings are an
// error; the caller decides whether that aborts the whole decode.
func ParseImportType(s string) (ImportType, error) {
	switch s {
	case "require.context":
		return ImportRequireContext, nil
	case "import", "harmony import specifier":
		return ImportStatic, nil
	case "import()":
		return ImportDynamic, nil
	case "require", "cjs require", "cjs full require":
		return ImportRequire, nil
	case "entry":
		return ImportEntry, nil
	case "harmony side effect evaluation":
		return ImportES6SideEffect, nil
	case "cjs self exports reference", "cjs export require":
		return ImportCJSSelfExport, nil
	case "harmony export imported specifier":
		return ImportES6ExportImport, nil
	case "module decorator":
		return ImportModuleDecorator, nil
	case "new URL()":
		return ImportURL, nil
	case "amd require":
		return ImportAMDRequire, nil
	case "":
		return ImportEmpty, nil
	}
	return ImportEmpty, fmt.Errorf("invalid import type: %s", s)
}

func (t *ImportType) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ImportEmpty
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseImportType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ImportEdge is the metadata carried on a module-graph edge: how the import
// was made and the resolved name of the importing module.
type ImportEdge struct {
	Type     ImportType
	Importer ModuleName
}
