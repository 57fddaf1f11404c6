package token

import "graft/internal/source"

// TriviaKind classifies incidental text attached to a token.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

// Trivia is a run of incidental text: whitespace or a comment. It never
// affects the meaning of the surrounding tokens but survives merging
// byte-for-byte.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	}
	return "Trivia(?)"
}

// TriviaLen returns the total byte length of a trivia run.
func TriviaLen(list []Trivia) uint32 {
	var n uint32
	for i := range list {
		n += list[i].Span.Len()
	}
	return n
}
