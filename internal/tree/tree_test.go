package tree

import (
	"testing"

	"graft/internal/source"
	"graft/internal/token"
)

const (
	kFile NodeKind = iota + 1
	kDecl
	kTok
)

// leafAt builds a leaf whose token covers [start, start+len(text)) with an
// optional trailing newline trivia.
func leafAt(t *Tree, res source.ResourceID, start uint32, text string, newline bool) NodeID {
	tok := token.Token{
		Kind: token.Ident,
		Span: source.Span{Resource: res, Start: start, End: start + uint32(len(text))},
		Text: text,
	}
	if newline {
		end := tok.Span.End
		tok.Trailing = []token.Trivia{{
			Kind: token.TriviaNewline,
			Span: source.Span{Resource: res, Start: end, End: end + 1},
			Text: "\n",
		}}
	}
	return t.NewLeaf(kTok, tok)
}

func TestTextRoundTrip(t *testing.T) {
	tr := New("a", 0)
	l1 := leafAt(tr, "a", 0, "let", true)
	l2 := leafAt(tr, "a", 4, "x", false)
	decl := tr.NewNode(kDecl, l1, l2)
	tr.SetRoot(tr.NewNode(kFile, decl))

	if got := tr.Text(); got != "let\nx" {
		t.Fatalf("Text() = %q, want %q", got, "let\nx")
	}
	if got := tr.TextLen(); got != 5 {
		t.Fatalf("TextLen() = %d, want 5", got)
	}
}

func TestFindByKindDocumentOrder(t *testing.T) {
	tr := New("a", 0)
	// два decl в обратном порядке аллокации, но прямом порядке оффсетов
	lB := leafAt(tr, "a", 10, "b", false)
	declB := tr.NewNode(kDecl, lB)
	lA := leafAt(tr, "a", 0, "a", false)
	declA := tr.NewNode(kDecl, lA)
	tr.SetRoot(tr.NewNode(kFile, declA, declB))

	got := tr.FindByKind(kDecl)
	if len(got) != 2 || got[0] != declA || got[1] != declB {
		t.Fatalf("FindByKind = %v, want [%v %v]", got, declA, declB)
	}
}

func TestFindByKindStable(t *testing.T) {
	tr := New("a", 0)
	l := leafAt(tr, "a", 0, "x", false)
	decl := tr.NewNode(kDecl, l)
	tr.SetRoot(tr.NewNode(kFile, decl))

	first := tr.FindByKind(kDecl)
	second := tr.FindByKind(kDecl)
	if len(first) != len(second) || first[0] != second[0] {
		t.Fatalf("FindByKind unstable: %v vs %v", first, second)
	}
}

func TestFirstLastToken(t *testing.T) {
	tr := New("a", 0)
	l1 := leafAt(tr, "a", 0, "let", false)
	l2 := leafAt(tr, "a", 4, "x", false)
	decl := tr.NewNode(kDecl, l1, l2)
	tr.SetRoot(tr.NewNode(kFile, decl))

	first, ok := tr.FirstToken(tr.Root())
	if !ok || first.Text != "let" {
		t.Fatalf("FirstToken = (%q, %v)", first.Text, ok)
	}
	last, ok := tr.LastToken(tr.Root())
	if !ok || last.Text != "x" {
		t.Fatalf("LastToken = (%q, %v)", last.Text, ok)
	}
}

func TestEditReplaceSplicesDonorCopy(t *testing.T) {
	target := New("main", 0)
	imp := leafAt(target, "main", 0, "IMPORT", true)
	impDecl := target.NewNode(kDecl, imp)
	tail := leafAt(target, "main", 7, "tail", false)
	tailDecl := target.NewNode(kDecl, tail)
	target.SetRoot(target.NewNode(kFile, impDecl, tailDecl))

	donor := New("lib", 0)
	dLeaf := leafAt(donor, "lib", 0, "body", true)
	dDecl := donor.NewNode(kDecl, dLeaf)
	donor.SetRoot(donor.NewNode(kFile, dDecl))

	batch := target.Edit()
	batch.Replace(impDecl, donor, donor.TopLevel())
	if err := batch.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	// trailing newline директивы переносится на вставленный контент
	if got := target.Text(); got != "body\n\ntail" {
		t.Fatalf("Text() after replace = %q, want %q", got, "body\n\ntail")
	}

	// донор не должен измениться
	if got := donor.Text(); got != "body\n" {
		t.Fatalf("donor mutated: %q", got)
	}

	// скопированный узел хранит координаты донора
	spliced := target.Node(target.TopLevel()[0])
	if spliced.Span.Resource != "lib" {
		t.Fatalf("spliced span resource = %q, want lib", spliced.Span.Resource)
	}
}

func TestEditRemove(t *testing.T) {
	tr := New("a", 0)
	l1 := leafAt(tr, "a", 0, "one", true)
	d1 := tr.NewNode(kDecl, l1)
	l2 := leafAt(tr, "a", 4, "two", false)
	d2 := tr.NewNode(kDecl, l2)
	tr.SetRoot(tr.NewNode(kFile, d1, d2))

	batch := tr.Edit()
	batch.Remove(d1)
	if err := batch.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if got := tr.Text(); got != "two" {
		t.Fatalf("Text() = %q, want %q", got, "two")
	}
}

func TestEditCommitOnce(t *testing.T) {
	tr := New("a", 0)
	l := leafAt(tr, "a", 0, "x", false)
	d := tr.NewNode(kDecl, l)
	tr.SetRoot(tr.NewNode(kFile, d))

	batch := tr.Edit()
	batch.Remove(d)
	if err := batch.Commit(); err != nil {
		t.Fatalf("first Commit: %v", err)
	}
	if err := batch.Commit(); err != ErrCommitted {
		t.Fatalf("second Commit = %v, want ErrCommitted", err)
	}
}

func TestEditUnknownTarget(t *testing.T) {
	tr := New("a", 0)
	l := leafAt(tr, "a", 0, "x", false)
	tr.SetRoot(tr.NewNode(kFile, tr.NewNode(kDecl, l)))

	batch := tr.Edit()
	batch.Remove(NodeID(999))
	if err := batch.Commit(); err == nil {
		t.Fatal("expected error for unknown target")
	}
}
