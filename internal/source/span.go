package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one resource.
type Span struct {
	Resource ResourceID
	Start    uint32 // в байтах включительно
	End      uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d-%d", string(s.Resource), s.Start, s.End)
}

// Anchor returns the zero-length span at the start of s.
func (s Span) Anchor() Span {
	return Span{Resource: s.Resource, Start: s.Start, End: s.Start}
}

func (s Span) Cover(other Span) Span {
	if s.Resource != other.Resource {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
