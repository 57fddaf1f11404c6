package sourcemap

import (
	"path/filepath"
	"testing"

	"graft/internal/source"
)

func TestBuildGapFree(t *testing.T) {
	segments := []Segment{
		{Origin: "lib", Start: 0, Length: 10},
		{Origin: "main", Start: 13, Length: 9},
		{Origin: "main", Start: 0, Length: 0}, // нулевые длины выпадают
	}
	m := Build(segments, 19, "main")

	if len(m.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(m.Segments))
	}
	if m.Segments[0].GeneratedStart != 0 || m.Segments[1].GeneratedStart != 10 {
		t.Fatalf("generated starts = %d, %d", m.Segments[0].GeneratedStart, m.Segments[1].GeneratedStart)
	}
	if got := m.GeneratedLength(); got != 19 {
		t.Fatalf("GeneratedLength = %d, want 19", got)
	}
}

func TestBuildCatchAllTail(t *testing.T) {
	segments := []Segment{{Origin: "lib", Start: 0, Length: 5}}
	m := Build(segments, 12, "main")

	last := m.Segments[len(m.Segments)-1]
	if last.Origin != "main" || last.GeneratedStart != 5 || last.Length != 7 {
		t.Fatalf("catch-all = %+v", last)
	}
	if got := m.GeneratedLength(); got != 12 {
		t.Fatalf("GeneratedLength = %d, want 12", got)
	}
}

func TestResolve(t *testing.T) {
	m := Build([]Segment{
		{Origin: "lib", Start: 100, Length: 10},
		{Origin: "main", Start: 0, Length: 5},
	}, 15, "main")

	cases := []struct {
		generated uint32
		origin    source.ResourceID
		original  uint32
		ok        bool
	}{
		{0, "lib", 100, true},
		{9, "lib", 109, true},
		{10, "main", 0, true},
		{14, "main", 4, true},
		{15, "", 0, false},
		{100, "", 0, false},
	}
	for _, tc := range cases {
		origin, original, ok := m.Resolve(tc.generated)
		if origin != tc.origin || original != tc.original || ok != tc.ok {
			t.Errorf("Resolve(%d) = (%q, %d, %v), want (%q, %d, %v)",
				tc.generated, origin, original, ok, tc.origin, tc.original, tc.ok)
		}
	}
}

func TestResolveEmptyMap(t *testing.T) {
	var m Map
	if _, _, ok := m.Resolve(0); ok {
		t.Fatal("Resolve on empty map must fail")
	}
}

func TestPosition(t *testing.T) {
	set := source.NewResourceSet()
	set.Add("lib", "lib", []byte("let y = 2\nlet z = 3\n"), 0)

	m := Build([]Segment{{Origin: "lib", Start: 0, Length: 20}}, 20, "lib")
	origin, lc, ok := m.Position(set, 10)
	if !ok || origin != "lib" || lc.Line != 2 || lc.Col != 1 {
		t.Fatalf("Position = (%q, %d:%d, %v)", origin, lc.Line, lc.Col, ok)
	}
}

func TestFallbackSegment(t *testing.T) {
	segments := Fallback("main", 42)
	if len(segments) != 1 || segments[0].Length != 42 || segments[0].Start != 0 {
		t.Fatalf("Fallback = %+v", segments)
	}
	if got := Fallback("main", 0); got != nil {
		t.Fatalf("Fallback(0) = %+v, want nil", got)
	}
}

func TestFileRoundTrip(t *testing.T) {
	m := Build([]Segment{
		{Origin: "lib", Start: 0, Length: 10},
		{Origin: "main", Start: 13, Length: 9},
	}, 19, "main")

	payload := Payload(m, "main", 19)
	path := filepath.Join(t.TempDir(), "out.map")
	if err := WriteFile(path, payload); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if loaded.Root != "main" || loaded.MergedLen != 19 {
		t.Fatalf("payload header = %+v", loaded)
	}
	restored := loaded.ToMap()
	if len(restored.Segments) != len(m.Segments) {
		t.Fatalf("segments = %d, want %d", len(restored.Segments), len(m.Segments))
	}
	origin, original, ok := restored.Resolve(12)
	if !ok || origin != "main" || original != 15 {
		t.Fatalf("Resolve(12) = (%q, %d, %v)", origin, original, ok)
	}
}
