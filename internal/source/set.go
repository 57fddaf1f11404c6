package source

import (
	"crypto/sha256"
)

// ResourceSet stores the raw text of every resource touched by one merge
// invocation and answers offset -> line:column queries over it.
type ResourceSet struct {
	resources map[ResourceID]*Resource
	order     []ResourceID // порядок добавления, для детерминированных обходов
}

// NewResourceSet creates a new empty ResourceSet.
func NewResourceSet() *ResourceSet {
	return &ResourceSet{
		resources: make(map[ResourceID]*Resource),
	}
}

// Add stores a resource from normalized bytes, computes LineIdx and Hash.
// Adding the same ID again replaces the previous content.
func (set *ResourceSet) Add(id ResourceID, url string, content []byte, flags ResourceFlags) *Resource {
	normalized, crlf := NormalizeCRLF(content)
	normalized, bom := RemoveBOM(normalized)
	if crlf {
		flags |= ResourceNormalizedCRLF
	}
	if bom {
		flags |= ResourceHadBOM
	}

	res := &Resource{
		ID:      id,
		URL:     url,
		Content: normalized,
		LineIdx: buildLineIndex(normalized),
		Hash:    sha256.Sum256(normalized),
		Flags:   flags,
	}
	if _, exists := set.resources[id]; !exists {
		set.order = append(set.order, id)
	}
	set.resources[id] = res
	return res
}

// Get returns the resource for id, or nil if unknown.
func (set *ResourceSet) Get(id ResourceID) *Resource {
	return set.resources[id]
}

// Has reports whether id was added to the set.
func (set *ResourceSet) Has(id ResourceID) bool {
	_, ok := set.resources[id]
	return ok
}

// Len returns the number of stored resources.
func (set *ResourceSet) Len() int {
	return len(set.resources)
}

// IDs returns resource IDs in insertion order.
func (set *ResourceSet) IDs() []ResourceID {
	out := make([]ResourceID, len(set.order))
	copy(out, set.order)
	return out
}

// LineCol resolves a byte offset in a resource to a 1-based line:column.
// Unknown resources map to 1:1 so diagnostics never lose their message over
// a missing location.
func (set *ResourceSet) LineCol(id ResourceID, offset uint32) LineCol {
	res := set.resources[id]
	if res == nil {
		return LineCol{Line: 1, Col: 1}
	}
	return toLineCol(res.LineIdx, offset)
}
