package wiki

import (
	"cmp"
	"path"
	"slices"
	"strings"
)

// Index maps logical names to the pages carrying that filename stem.
//
// Names are map keys and never patterns, so glob-special characters in a
// page name resolve literally. When several pages share a stem the
// candidates are ordered shallowest first, then lexicographically; Lookup
// always returns the first one.
type Index struct {
	pages map[string][]PageID
}

// NewIndex builds an index from the pages found by a scan of the pages tree.
func NewIndex(ids []PageID) *Index {
	idx := &Index{pages: make(map[string][]PageID, len(ids))}
	for _, id := range ids {
		name := id.Name()
		if name == "" {
			continue
		}
		if slices.Contains(idx.pages[name], id) {
			continue
		}
		idx.pages[name] = append(idx.pages[name], id)
	}
	for _, ids := range idx.pages {
		slices.SortFunc(ids, comparePages)
	}
	return idx
}

// IsDocument reports whether name carries one of the markup extensions.
// The comparison ignores case.
func IsDocument(name string, exts []string) bool {
	ext := path.Ext(name)
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// Find returns every page whose logical name is exactly name, in
// resolution order.
func (idx *Index) Find(name string) []PageID {
	return slices.Clone(idx.pages[name])
}

// Lookup returns the page a reference to name resolves to.
func (idx *Index) Lookup(name string) (PageID, bool) {
	ids := idx.pages[name]
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// Ambiguous returns the logical names claimed by more than one page, sorted.
func (idx *Index) Ambiguous() []string {
	var names []string
	for name, ids := range idx.pages {
		if len(ids) > 1 {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Len is the number of distinct logical names.
func (idx *Index) Len() int {
	return len(idx.pages)
}

func comparePages(a, b PageID) int {
	if c := cmp.Compare(a.Depth(), b.Depth()); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}
