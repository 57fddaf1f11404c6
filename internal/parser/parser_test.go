package parser

import (
	"testing"

	"graft/internal/diag"
	"graft/internal/schema"
	"graft/internal/source"
	"graft/internal/tree"
)

func parse(t *testing.T, input string) (*tree.Tree, *diag.Bag) {
	t.Helper()
	set := source.NewResourceSet()
	res := set.Add("mem://t/main.gs", "mem://t/main.gs", []byte(input), source.ResourceVirtual)
	bag := diag.NewBag(16)
	return Parse(res, diag.BagReporter{Bag: bag}), bag
}

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"let x = 1",
		"import \"lib\"\nlet x = 1",
		"// заголовок\nimport \"a\"\nimport \"b\"\n\nlet main = (a + b) * 2\n",
		"let x = 1 /* середина */ + 2\n",
	}
	for _, input := range inputs {
		tr, bag := parse(t, input)
		if bag.HasErrors() {
			t.Errorf("%q: unexpected diagnostics: %v", input, bag.Items())
			continue
		}
		if got := tr.Text(); got != input {
			t.Errorf("round trip:\n in: %q\nout: %q", input, got)
		}
		if got := tr.TextLen(); got != uint32(len(input)) {
			t.Errorf("%q: TextLen = %d, want %d", input, got, len(input))
		}
	}
}

func TestParseImportStructure(t *testing.T) {
	tr, bag := parse(t, "import \"lib\"\nlet x = 1")
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}

	if err := schema.Script().Bind(tr); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	imports := tr.FindByKind(schema.KindImportDecl)
	if len(imports) != 1 {
		t.Fatalf("imports = %d, want 1", len(imports))
	}
	lets := tr.FindByKind(schema.KindLetDecl)
	if len(lets) != 1 {
		t.Fatalf("lets = %d, want 1", len(lets))
	}

	// span директивы покрывает и trailing newline
	imp := tr.Node(imports[0])
	if imp.Span.Start != 0 || imp.Span.End != 13 {
		t.Fatalf("import span = %v, want 0-13", imp.Span)
	}
}

func TestParseRecoversOnUnexpectedToken(t *testing.T) {
	tr, bag := parse(t, "let x = 1\n)\nlet y = 2")
	if !bag.HasErrors() {
		t.Fatal("expected diagnostic for stray ')'")
	}
	// байты не теряются даже при ошибке
	if got := tr.Text(); got != "let x = 1\n)\nlet y = 2" {
		t.Fatalf("Text = %q", got)
	}
	if lets := tr.FindByKind(schema.KindLetDecl); len(lets) != 2 {
		t.Fatalf("lets = %d, want 2", len(lets))
	}
}

func TestParseImportMissingReference(t *testing.T) {
	_, bag := parse(t, "import let x = 1")
	if !bag.HasErrors() {
		t.Fatal("expected diagnostic for missing reference")
	}
	if bag.Items()[0].Code != diag.SynExpectReference {
		t.Fatalf("code = %v", bag.Items()[0].Code)
	}
}

func TestBindRejectsDirectiveWithoutLiteral(t *testing.T) {
	tr, _ := parse(t, "import let x = 1")
	if err := schema.Script().Bind(tr); err == nil {
		t.Fatal("Bind should reject a directive without a reference literal")
	}
	if tr.Bound() {
		t.Fatal("tree must stay unbound after failed Bind")
	}
}
