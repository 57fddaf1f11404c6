package store

import (
	"context"
	"testing"

	"graft/internal/source"
)

func TestCanonical(t *testing.T) {
	s := New()
	owner := source.ResourceID("mem://localhost/project/main.gs")

	tests := []struct {
		ref  string
		want source.ResourceID
	}{
		{"lib", "mem://localhost/project/lib.gs"},
		{"lib.gs", "mem://localhost/project/lib.gs"},
		{"sub/util", "mem://localhost/project/sub/util.gs"},
		{"mem://localhost/other/x.gs", "mem://localhost/other/x.gs"},
		{"  lib  ", "mem://localhost/project/lib.gs"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := s.Canonical(owner, tt.ref); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestCanonicalCollapsesSpellings(t *testing.T) {
	s := New()
	owner := source.ResourceID("mem://localhost/project/main.gs")
	a := s.Canonical(owner, "lib")
	b := s.Canonical(owner, "lib.gs")
	if a != b {
		t.Fatalf("spellings did not collapse: %q vs %q", a, b)
	}
}

func TestLoadAndExists(t *testing.T) {
	ctx := context.Background()
	s := New()
	id := source.ResourceID("mem://localhost/store/lib.gs")
	if err := s.Upload(ctx, id, []byte("let y = 2\n")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if !s.Exists(ctx, id) {
		t.Fatal("Exists = false for uploaded resource")
	}
	data, err := s.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "let y = 2\n" {
		t.Fatalf("Load = %q", data)
	}

	if s.Exists(ctx, "mem://localhost/store/ghost.gs") {
		t.Fatal("Exists = true for missing resource")
	}
	if _, err := s.Load(ctx, "mem://localhost/store/ghost.gs"); err == nil {
		t.Fatal("Load of missing resource must fail")
	}
}
