package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"graft/internal/source"
	"graft/internal/token"
)

type TokenOutput struct {
	Kind     string      `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Span     source.Span `json:"span"`
	Leading  []string    `json:"leading,omitempty"`
	Trailing []string    `json:"trailing,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, set *source.ResourceSet) error {
	for i, tok := range tokens {
		lc := set.LineCol(tok.Span.Resource, tok.Span.Start)
		end := set.LineCol(tok.Span.Resource, tok.Span.End)

		fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", lc.Line, lc.Col, end.Line, end.Col)
		if names := triviaNames(tok.Leading); len(names) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(names, ", "))
		}
		if names := triviaNames(tok.Trailing); len(names) > 0 {
			fmt.Fprintf(w, " (trailing: %s)", strings.Join(names, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:     tok.Kind.String(),
			Text:     tok.Text,
			Span:     tok.Span,
			Leading:  triviaNames(tok.Leading),
			Trailing: triviaNames(tok.Trailing),
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func triviaNames(trivia []token.Trivia) []string {
	if len(trivia) == 0 {
		return nil
	}
	names := make([]string, len(trivia))
	for i, tr := range trivia {
		names[i] = tr.Kind.String()
	}
	return names
}
