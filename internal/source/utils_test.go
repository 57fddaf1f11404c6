package source

import (
	"bytes"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		changed bool
	}{
		{"no carriage returns", "a\nb\n", "a\nb\n", false},
		{"crlf pairs", "a\r\nb\r\n", "a\nb\n", true},
		{"lone cr kept", "a\rb", "a\rb", false},
		{"mixed", "a\r\nb\rc\n", "a\nb\rc\n", true},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := NormalizeCRLF([]byte(tc.in))
			if string(got) != tc.want {
				t.Fatalf("NormalizeCRLF(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if changed != tc.changed {
				t.Fatalf("changed = %v, want %v", changed, tc.changed)
			}
		})
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("let x = 1")...)
	got, removed := RemoveBOM(withBOM)
	if !removed || !bytes.Equal(got, []byte("let x = 1")) {
		t.Fatalf("RemoveBOM = (%q, %v)", got, removed)
	}

	plain := []byte("let x = 1")
	got, removed = RemoveBOM(plain)
	if removed || !bytes.Equal(got, plain) {
		t.Fatalf("RemoveBOM on plain input = (%q, %v)", got, removed)
	}
}

func TestToLineCol(t *testing.T) {
	content := []byte("ab\ncd\n\nef")
	idx := buildLineIndex(content)

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // сам \n принадлежит своей строке
		{3, 2, 1},
		{5, 2, 3},
		{6, 3, 1},
		{7, 4, 1},
		{8, 4, 2},
	}

	for _, tc := range cases {
		got := toLineCol(idx, tc.off)
		if got.Line != tc.line || got.Col != tc.col {
			t.Errorf("toLineCol(%d) = %d:%d, want %d:%d", tc.off, got.Line, got.Col, tc.line, tc.col)
		}
	}
}

func TestToLineColSingleLine(t *testing.T) {
	got := toLineCol(nil, 4)
	if got.Line != 1 || got.Col != 5 {
		t.Fatalf("toLineCol without newlines = %d:%d, want 1:5", got.Line, got.Col)
	}
}
