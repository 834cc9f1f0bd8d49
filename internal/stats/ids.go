// Package stats defines the domain vocabulary of a bundler build-stats
// document — chunk and module identities, import semantics, sizes — and the
// source contracts a stats dialect must satisfy for graph building. Concrete
// dialects live in subpackages (v5).
package stats

import (
	"encoding/json"
	"strconv"
	"unique"
)

// ChunkID identifies a chunk emitted by the bundler.
type ChunkID uint32

func (c ChunkID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// ModuleIdentifier is webpack's internal unique name for a module, e.g.
// "(webpack)\\test\\browsertest\\lib\\index.web.js". Identifiers repeat
// heavily across reasons and chunk membership lists, so the character data
// is interned: copies and comparisons are handle-sized.
type ModuleIdentifier struct {
	h unique.Handle[string]
}

func InternModuleIdentifier(s string) ModuleIdentifier {
	return ModuleIdentifier{h: unique.Make(s)}
}

func (m ModuleIdentifier) String() string {
	if m.IsZero() {
		return ""
	}
	return m.h.Value()
}

// IsZero reports whether the identifier was never interned.
func (m ModuleIdentifier) IsZero() bool {
	return m == ModuleIdentifier{}
}

func (m *ModuleIdentifier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = InternModuleIdentifier(s)
	return nil
}

func (m ModuleIdentifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// ModuleName is the human-facing module path, interned like
// ModuleIdentifier.
type ModuleName struct {
	h unique.Handle[string]
}

func InternModuleName(s string) ModuleName {
	return ModuleName{h: unique.Make(s)}
}

func (m ModuleName) String() string {
	if m == (ModuleName{}) {
		return ""
	}
	return m.h.Value()
}

func (m *ModuleName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = InternModuleName(s)
	return nil
}

func (m ModuleName) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// ModuleChunks is the set of chunks a module was assigned to.
type ModuleChunks map[ChunkID]struct{}

func (c ModuleChunks) Contains(id ChunkID) bool {
	_, ok := c[id]
	return ok
}

func (c ModuleChunks) Len() int {
	return len(c)
}

// One returns the sole member; ok is false unless the set has exactly one.
func (c ModuleChunks) One() (ChunkID, bool) {
	if len(c) != 1 {
		return 0, false
	}
	for id := range c {
		return id, true
	}
	return 0, false
}

// IDs lists the members in unspecified order.
func (c ModuleChunks) IDs() []ChunkID {
	out := make([]ChunkID, 0, len(c))
	for id := range c {
		out = append(out, id)
	}
	return out
}
