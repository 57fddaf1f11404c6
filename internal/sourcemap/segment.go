// Package sourcemap maps offsets in merged output back to the resource and
// offset that produced them. The merge engine emits flat per-resource segment
// lists; Build folds the root's list into an ordered, gap-free map over
// generated offsets.
package sourcemap

import (
	"graft/internal/source"
)

// Segment attributes a contiguous run of processed output to a contiguous
// range of one original resource.
type Segment struct {
	Origin source.ResourceID
	Start  uint32 // offset in the origin resource
	Length uint32
}

// TotalLength sums segment lengths. For a correctly processed resource the
// total equals the processed tree's text length exactly.
func TotalLength(segments []Segment) uint32 {
	var total uint32
	for i := range segments {
		total += segments[i].Length
	}
	return total
}

// Fallback returns the single opaque segment covering a whole resource,
// used whenever exact accounting cannot be trusted.
func Fallback(origin source.ResourceID, length uint32) []Segment {
	if length == 0 {
		return nil
	}
	return []Segment{{Origin: origin, Start: 0, Length: length}}
}
