package v5

import (
	"encoding/json"

	"webpackq/internal/stats"
)

// Module mirrors one entry of the stats file's modules array. Concatenated
// modules nest their members under Modules.
type Module struct {
	Assets []json.RawMessage `json:"assets"`
	// Built indicates that the module went through loaders, parsing, and
	// code generation.
	Built     bool            `json:"built"`
	Cacheable bool            `json:"cacheable"`
	Chunks    []stats.ChunkID `json:"chunks"`

	ErrorCount   uint32 `json:"errors"`
	WarningCount uint32 `json:"warnings"`

	Failed bool `json:"failed"`
	// ID is possibly a relic of the past and undocumented by webpack;
	// Identifier is the reliable unique name. It may be a number, a string,
	// or null, so it stays raw.
	ID         json.RawMessage        `json:"id"`
	Identifier stats.ModuleIdentifier `json:"identifier"`
	Name       stats.ModuleName       `json:"name"`
	Optional   bool                   `json:"optional"`
	Prefetched bool                   `json:"prefetched"`
	// Reasons describe why the module was included in the dependency
	// graph; each one names the importing module.
	Reasons ReasonList      `json:"reasons"`
	Size    stats.SizeBytes `json:"size"`
	Source  string          `json:"source"`
	Profile Profile         `json:"profile"`
	Modules ModuleList      `json:"modules"`
}

// Profile carries webpack's per-module timing, in milliseconds.
type Profile struct {
	Building     int64 `json:"building"`
	Dependencies int64 `json:"dependencies"`
	Factory      int64 `json:"factory"`
}

type ModuleList []*Module

// all flattens the list recursively, nested members before their container.
func (l ModuleList) all() []*Module {
	var out []*Module
	for _, m := range l {
		out = append(out, m.Modules.all()...)
		out = append(out, m)
	}
	return out
}

func (m *Module) info() *stats.ModuleInfo {
	imports := make([]stats.ImportReason, 0, len(m.Reasons))
	for _, r := range m.Reasons {
		imports = append(imports, stats.ImportReason{
			Module:   r.ModuleIdentifier,
			Type:     r.Type,
			Importer: r.ResolvedModule,
		})
	}
	return &stats.ModuleInfo{
		Identifier: m.Identifier,
		Name:       m.Name,
		Chunks:     m.Chunks,
		Size:       m.Size,
		Imports:    imports,
	}
}

// Reason is metadata describing the source of an import; it locates the
// upstream module that required this one.
type Reason struct {
	Loc              string                 `json:"loc"`
	Module           string                 `json:"module"`
	ModuleID         json.RawMessage        `json:"moduleId"`
	ModuleName       stats.ModuleName       `json:"moduleName"`
	ResolvedModule   stats.ModuleName       `json:"resolvedModule"`
	ModuleIdentifier stats.ModuleIdentifier `json:"moduleIdentifier"`
	Type             stats.ImportType       `json:"type"`
	UserRequest      string                 `json:"userRequest"`
}

// ReasonList drops reasons without a moduleIdentifier during decoding:
// webpack emits such entries for synthetic inclusions and they cannot form
// a graph edge.
type ReasonList []*Reason

func (l *ReasonList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(ReasonList, 0, len(raw))
	for _, item := range raw {
		var probe struct {
			ModuleIdentifier *string `json:"moduleIdentifier"`
		}
		if err := json.Unmarshal(item, &probe); err != nil {
			return err
		}
		if probe.ModuleIdentifier == nil {
			continue
		}
		var reason Reason
		if err := json.Unmarshal(item, &reason); err != nil {
			return err
		}
		out = append(out, &reason)
	}

	*l = out
	return nil
}
