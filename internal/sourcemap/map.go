package sourcemap

import (
	"sort"

	"graft/internal/source"
)

// MappedSegment is one entry of an assembled source map: the half-open range
// [GeneratedStart, GeneratedStart+Length) of merged output came from
// [OriginalStart, OriginalStart+Length) of Origin.
type MappedSegment struct {
	GeneratedStart uint32
	Origin         source.ResourceID
	OriginalStart  uint32
	Length         uint32
}

// Map is an ordered, non-overlapping, gap-free mapping over merged output.
type Map struct {
	Segments []MappedSegment
}

// Build assembles a map from the root resource's flat segment list. Segments
// are laid out in order at a running generated offset; if they fall short of
// mergedLen (fallback path or genuine inconsistency) a trailing catch-all
// attributed to root keeps every generated offset mapped.
func Build(segments []Segment, mergedLen uint32, root source.ResourceID) Map {
	out := make([]MappedSegment, 0, len(segments)+1)
	var generated uint32
	for _, seg := range segments {
		if seg.Length == 0 {
			continue
		}
		out = append(out, MappedSegment{
			GeneratedStart: generated,
			Origin:         seg.Origin,
			OriginalStart:  seg.Start,
			Length:         seg.Length,
		})
		generated += seg.Length
	}
	if generated < mergedLen {
		out = append(out, MappedSegment{
			GeneratedStart: generated,
			Origin:         root,
			OriginalStart:  0,
			Length:         mergedLen - generated,
		})
	}
	return Map{Segments: out}
}

// Resolve maps a generated offset to its origin resource and original offset.
func (m Map) Resolve(generated uint32) (source.ResourceID, uint32, bool) {
	// бинпоиск первого сегмента с GeneratedStart > generated
	i := sort.Search(len(m.Segments), func(i int) bool {
		return m.Segments[i].GeneratedStart > generated
	}) - 1
	if i < 0 {
		return "", 0, false
	}
	seg := m.Segments[i]
	if generated >= seg.GeneratedStart+seg.Length {
		return "", 0, false
	}
	return seg.Origin, seg.OriginalStart + (generated - seg.GeneratedStart), true
}

// Position resolves a generated offset all the way to a line:column in the
// original resource. This is the convenience layer diagnostics use.
func (m Map) Position(set *source.ResourceSet, generated uint32) (source.ResourceID, source.LineCol, bool) {
	origin, off, ok := m.Resolve(generated)
	if !ok {
		return "", source.LineCol{}, false
	}
	return origin, set.LineCol(origin, off), true
}

// GeneratedLength returns the total generated length covered by the map.
func (m Map) GeneratedLength() uint32 {
	if len(m.Segments) == 0 {
		return 0
	}
	last := m.Segments[len(m.Segments)-1]
	return last.GeneratedStart + last.Length
}
