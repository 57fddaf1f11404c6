package token

import (
	"graft/internal/source"
)

// Token represents a single source token with its location and trivia.
// Span covers only the token's own text; Leading and Trailing carry the
// incidental text glued to it. Trailing trivia extends up to and including
// the first newline after the token, everything after that newline is
// leading trivia of the next token.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwImport, KwLet:
		return true
	default:
		return false
	}
}

// FullStart returns the offset where the token's leading trivia begins.
func (t Token) FullStart() uint32 {
	if len(t.Leading) > 0 {
		return t.Leading[0].Span.Start
	}
	return t.Span.Start
}

// FullEnd returns the offset just past the token's trailing trivia.
func (t Token) FullEnd() uint32 {
	if n := len(t.Trailing); n > 0 {
		return t.Trailing[n-1].Span.End
	}
	return t.Span.End
}

// FullSpan returns the token span including leading and trailing trivia.
func (t Token) FullSpan() source.Span {
	return source.Span{Resource: t.Span.Resource, Start: t.FullStart(), End: t.FullEnd()}
}

// FullText reconstructs the exact source text of the token: leading trivia,
// token text, trailing trivia.
func (t Token) FullText() string {
	if len(t.Leading) == 0 && len(t.Trailing) == 0 {
		return t.Text
	}
	var out []byte
	for i := range t.Leading {
		out = append(out, t.Leading[i].Text...)
	}
	out = append(out, t.Text...)
	for i := range t.Trailing {
		out = append(out, t.Trailing[i].Text...)
	}
	return string(out)
}
