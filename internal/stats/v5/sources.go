package v5

import (
	"sort"

	"webpackq/internal/graph"
	"webpackq/internal/stats"
)

// moduleSource serves module lookups with forwarding semantics: a nested
// (concatenated) module's identifier resolves to its top-level container,
// so graph edges pointing at a member land on the module webpack actually
// emitted.
type moduleSource struct {
	all   []*stats.ModuleInfo
	tops  []*stats.ModuleInfo
	links map[stats.ModuleIdentifier]stats.ModuleIdentifier
	byID  map[stats.ModuleIdentifier]*stats.ModuleInfo
}

func newModuleSource(list ModuleList) *moduleSource {
	src := &moduleSource{
		links: make(map[stats.ModuleIdentifier]stats.ModuleIdentifier),
		byID:  make(map[stats.ModuleIdentifier]*stats.ModuleInfo),
	}

	for _, top := range list {
		info := top.info()
		src.tops = append(src.tops, info)
		src.byID[info.Identifier] = info
		for _, member := range top.Modules.all() {
			src.links[member.Identifier] = top.Identifier
		}
	}

	// All() mirrors the file's nesting: members first, then their
	// container, in stats-file order.
	for _, top := range list {
		for _, member := range top.Modules.all() {
			src.all = append(src.all, member.info())
		}
		src.all = append(src.all, src.byID[top.Identifier])
	}

	return src
}

func (s *moduleSource) Query(id stats.ModuleIdentifier) (*stats.ModuleInfo, bool) {
	if info, ok := s.byID[id]; ok {
		return info, true
	}
	if top, ok := s.links[id]; ok {
		info, ok := s.byID[top]
		return info, ok
	}
	return nil, false
}

func (s *moduleSource) All() []*stats.ModuleInfo {
	return s.all
}

// CreateIndex implements graph.Indexer: members become links to their
// container so the builder resolves every identifier the reasons mention.
func (s *moduleSource) CreateIndex() *graph.Index[stats.ModuleIdentifier, *stats.ModuleInfo] {
	ix := graph.NewIndex[stats.ModuleIdentifier, *stats.ModuleInfo]()
	for member, top := range s.links {
		ix.PutLink(member, top)
	}
	for _, info := range s.tops {
		ix.Put(info.Identifier, info)
	}
	return ix
}

type chunkSource struct {
	infos []*stats.ChunkInfo
	byID  map[stats.ChunkID]*stats.ChunkInfo
}

func newChunkSource(list ChunkList) *chunkSource {
	src := &chunkSource{byID: make(map[stats.ChunkID]*stats.ChunkInfo, len(list))}
	for _, c := range list {
		info := c.info()
		src.infos = append(src.infos, info)
		src.byID[info.ID] = info
	}
	return src
}

func (s *chunkSource) Query(id stats.ChunkID) (*stats.ChunkInfo, bool) {
	info, ok := s.byID[id]
	return info, ok
}

func (s *chunkSource) All() []*stats.ChunkInfo {
	return s.infos
}

func sortEntrypoints(entries []stats.EntrypointInfo) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}
