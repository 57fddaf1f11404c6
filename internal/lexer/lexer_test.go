package lexer

import (
	"strings"
	"testing"

	"graft/internal/diag"
	"graft/internal/source"
	"graft/internal/token"
)

func tokenize(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	set := source.NewResourceSet()
	res := set.Add("mem://t/main.gs", "mem://t/main.gs", []byte(input), source.ResourceVirtual)
	bag := diag.NewBag(16)
	lx := New(res, diag.BagReporter{Bag: bag})
	return lx.Tokenize(), bag
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			"import statement",
			`import "lib"`,
			[]token.Kind{token.KwImport, token.StringLit, token.EOF},
		},
		{
			"let binding",
			"let x = 1",
			[]token.Kind{token.KwLet, token.Ident, token.Assign, token.IntLit, token.EOF},
		},
		{
			"expression",
			"(a + b) * 2",
			[]token.Kind{token.LParen, token.Ident, token.Plus, token.Ident, token.RParen, token.Star, token.IntLit, token.EOF},
		},
		{
			"empty",
			"",
			[]token.Kind{token.EOF},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			toks, bag := tokenize(t, tc.input)
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
			got := kinds(toks)
			if len(got) != len(tc.want) {
				t.Fatalf("kinds = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("kinds = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

// Full-fidelity: склейка FullText всех токенов даёт вход байт-в-байт.
func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"let x = 1",
		"let x = 1\n",
		"import \"lib\"\nlet x = 1",
		"  // комментарий\nlet x = 1  // trailing\n\n\nlet y = 2\n",
		"/* block\ncomment */ let z = 3",
		"let a = 1 /* inline */ + 2\n// tail comment\n",
	}

	for _, input := range inputs {
		toks, _ := tokenize(t, input)
		var sb strings.Builder
		for _, tok := range toks {
			sb.WriteString(tok.FullText())
		}
		if sb.String() != input {
			t.Errorf("round trip failed:\n in: %q\nout: %q", input, sb.String())
		}
	}
}

func TestTrailingStopsAtNewline(t *testing.T) {
	toks, _ := tokenize(t, "let x = 1 \n  let y = 2")
	// последний токен первой строки - IntLit "1" с trailing " \n"
	var one token.Token
	for _, tok := range toks {
		if tok.Text == "1" {
			one = tok
		}
	}
	if got := one.FullEnd() - one.Span.End; got != 2 {
		t.Fatalf("trailing length = %d, want 2 (space + newline)", got)
	}

	// "  " перед let y должен быть leading второго KwLet
	var second token.Token
	seen := 0
	for _, tok := range toks {
		if tok.Kind == token.KwLet {
			seen++
			if seen == 2 {
				second = tok
			}
		}
	}
	if len(second.Leading) != 1 || second.Leading[0].Text != "  " {
		t.Fatalf("second let leading = %+v", second.Leading)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, bag := tokenize(t, `import "lib`)
	if !bag.HasErrors() {
		t.Fatal("expected unterminated string diagnostic")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("code = %v", bag.Items()[0].Code)
	}
}

func TestUnknownChar(t *testing.T) {
	_, bag := tokenize(t, "let x = 1 ?")
	if !bag.HasErrors() {
		t.Fatal("expected unknown char diagnostic")
	}
}
