package schema_test

import (
	"testing"

	"graft/internal/diag"
	"graft/internal/parser"
	"graft/internal/schema"
	"graft/internal/source"
	"graft/internal/token"
	"graft/internal/tree"
)

func parse(t *testing.T, text string) *tree.Tree {
	t.Helper()
	set := source.NewResourceSet()
	res := set.Add("mem://schema/a.gs", "mem://schema/a.gs", []byte(text), source.ResourceVirtual)
	return parser.Parse(res, diag.NopReporter{})
}

func TestBindMarksTree(t *testing.T) {
	tr := parse(t, "import \"lib\"\nlet x = 1\n")
	if tr.Bound() {
		t.Fatal("parser output must start unbound")
	}
	if err := schema.Script().Bind(tr); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if !tr.Bound() {
		t.Fatal("tree not marked bound")
	}
}

func TestBindRejectsUnknownKind(t *testing.T) {
	tr := tree.New("mem://schema/b.gs", 4)
	leaf := tr.NewLeaf(schema.KindToken, token.Token{Kind: token.EOF})
	root := tr.NewNode(tree.NodeKind(99), leaf)
	tr.SetRoot(root)

	if err := schema.Script().Bind(tr); err == nil {
		t.Fatal("want error for unknown node kind")
	}
}

func TestBindRejectsDirectiveWithoutReference(t *testing.T) {
	tr := tree.New("mem://schema/c.gs", 4)
	kw := tr.NewLeaf(schema.KindToken, token.Token{Kind: token.KwImport, Text: "import"})
	imp := tr.NewNode(schema.KindImportDecl, kw)
	root := tr.NewNode(schema.KindFile, imp)
	tr.SetRoot(root)

	if err := schema.Script().Bind(tr); err == nil {
		t.Fatal("want error for directive without string literal")
	}
}

func TestBindRejectsEmptyTree(t *testing.T) {
	tr := tree.New("mem://schema/d.gs", 0)
	if err := schema.Script().Bind(tr); err == nil {
		t.Fatal("want error for tree without root")
	}
}
