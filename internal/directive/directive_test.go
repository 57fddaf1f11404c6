package directive

import (
	"testing"

	"graft/internal/diag"
	"graft/internal/parser"
	"graft/internal/schema"
	"graft/internal/source"
	"graft/internal/tree"
)

func boundTree(t *testing.T, id source.ResourceID, input string) *tree.Tree {
	t.Helper()
	set := source.NewResourceSet()
	res := set.Add(id, string(id), []byte(input), source.ResourceVirtual)
	tr := parser.Parse(res, diag.NopReporter{})
	if err := schema.Script().Bind(tr); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	return tr
}

func TestDiscoverOrdinals(t *testing.T) {
	tr := boundTree(t, "main", "import \"a\"\nlet x = 1\nimport \"b\"\n")

	dirs, err := Discover(tr, schema.KindImportDecl, "main", ScriptExtractor{})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("len = %d, want 2", len(dirs))
	}
	if dirs[0].Reference != "a" || dirs[1].Reference != "b" {
		t.Fatalf("refs = %q, %q", dirs[0].Reference, dirs[1].Reference)
	}
	if dirs[0].Owner != "main" {
		t.Fatalf("owner = %q", dirs[0].Owner)
	}
	if !dirs[0].Anchor.Empty() || dirs[0].Anchor.Start != 0 {
		t.Fatalf("anchor = %v, want zero-length at 0", dirs[0].Anchor)
	}
	if dirs[1].Anchor.Start >= tr.TextLen() || dirs[1].Anchor.Start <= dirs[0].Anchor.Start {
		t.Fatalf("second anchor out of order: %v", dirs[1].Anchor)
	}
}

func TestDiscoverStable(t *testing.T) {
	tr := boundTree(t, "main", "import \"a\"\nimport \"b\"\n")

	first, _ := Discover(tr, schema.KindImportDecl, "main", ScriptExtractor{})
	second, _ := Discover(tr, schema.KindImportDecl, "main", ScriptExtractor{})
	if len(first) != len(second) {
		t.Fatal("unstable discovery length")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("unstable at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestDiscoverFiltersBlankReferences(t *testing.T) {
	tr := boundTree(t, "main", "import \"\"\nimport \"  \"\nimport \"real\"\n")

	dirs, err := Discover(tr, schema.KindImportDecl, "main", ScriptExtractor{})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	// пустые и пробельные ссылки не получают ординала
	if len(dirs) != 1 || dirs[0].Reference != "real" {
		t.Fatalf("dirs = %+v, want single 'real'", dirs)
	}
}

func TestDiscoverRequiresBinding(t *testing.T) {
	set := source.NewResourceSet()
	res := set.Add("main", "main", []byte("import \"a\"\n"), source.ResourceVirtual)
	tr := parser.Parse(res, diag.NopReporter{})

	if _, err := Discover(tr, schema.KindImportDecl, "main", ScriptExtractor{}); err != ErrNotBound {
		t.Fatalf("err = %v, want ErrNotBound", err)
	}
}

func TestUnquoteEscapes(t *testing.T) {
	cases := []struct{ raw, want string }{
		{`"lib"`, "lib"},
		{`"a\\b"`, `a\b`},
		{`"broken`, "broken"},
	}
	for _, tc := range cases {
		if got := unquote(tc.raw); got != tc.want {
			t.Errorf("unquote(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
