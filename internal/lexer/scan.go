package lexer

import (
	"graft/internal/diag"
	"graft/internal/token"
)

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDec(b)
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.res.Content[sp.Start:sp.End])
	return token.Token{Kind: token.LookupKeyword(text), Span: sp, Text: text}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.res.Content[sp.Start:sp.End])}
}

// Минимум: "..." с escape \" и \\; перевод строки внутри литерала - ошибка.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.res.Content[sp.Start:sp.End])}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.reporter.Report(diag.LexUnterminatedString, diag.SevError, sp, "newline in string literal", nil)
			return token.Token{Kind: token.Unknown, Span: sp, Text: string(lx.res.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.reporter.Report(diag.LexUnterminatedString, diag.SevError, sp, "unterminated string literal", nil)
	return token.Token{Kind: token.Unknown, Span: sp, Text: string(lx.res.Content[sp.Start:sp.End])}
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	kind := token.Unknown
	switch b {
	case '=':
		kind = token.Assign
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.res.Content[sp.Start:sp.End])
	if kind == token.Unknown {
		lx.reporter.Report(diag.LexUnknownChar, diag.SevError, sp, "unknown character "+text, nil)
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
