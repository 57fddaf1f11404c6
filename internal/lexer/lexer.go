package lexer

import (
	"graft/internal/diag"
	"graft/internal/source"
	"graft/internal/token"
)

// Lexer tokenizes one resource of graft script. Tokens come out with leading
// and trailing trivia already attached, so that concatenating FullText over
// the token stream reproduces the input byte-for-byte.
type Lexer struct {
	res      *source.Resource
	cursor   Cursor
	reporter diag.Reporter
}

// New creates a lexer over res. reporter may be nil.
func New(res *source.Resource, reporter diag.Reporter) *Lexer {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Lexer{
		res:      res,
		cursor:   NewCursor(res),
		reporter: reporter,
	}
}

// Tokenize scans the whole resource. The final element is always an EOF token;
// trivia after the last significant token ends up in the EOF token's Leading,
// so no input byte is ever lost.
func (lx *Lexer) Tokenize() []token.Token {
	var out []token.Token
	for {
		tok := lx.next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// next возвращает следующий значимый токен с Leading и Trailing.
func (lx *Lexer) next() token.Token {
	leading := lx.collectTrivia(false)

	if lx.cursor.EOF() {
		return token.Token{
			Kind:    token.EOF,
			Span:    lx.emptySpan(),
			Text:    "",
			Leading: leading,
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStart(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanPunct()
	}

	tok.Leading = leading
	tok.Trailing = lx.collectTrivia(true)
	return tok
}

// collectTrivia собирает подряд идущие trivia.
// В trailing-режиме коллекция останавливается сразу после первого \n:
// всё за ним - leading следующего токена.
func (lx *Lexer) collectTrivia(trailing bool) []token.Trivia {
	var hold []token.Trivia
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		// spaces/tabs коалесцируются
		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			hold = append(hold, lx.triviaFrom(token.TriviaSpace, start))
			continue
		}

		if b == '\n' {
			if trailing {
				// ровно один \n завершает trailing
				lx.cursor.Bump()
				hold = append(hold, lx.triviaFrom(token.TriviaNewline, start))
				return hold
			}
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			hold = append(hold, lx.triviaFrom(token.TriviaNewline, start))
			continue
		}

		if b == '/' {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '/' {
				// //... до конца строки (не включая \n)
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
				hold = append(hold, lx.triviaFrom(token.TriviaLineComment, start))
				continue
			}
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '*' {
				hold = append(hold, lx.scanBlockComment(start))
				continue
			}
		}

		break
	}
	return hold
}

func (lx *Lexer) scanBlockComment(start Mark) token.Trivia {
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth--
			continue
		}
		if ok && b0 == '/' && b1 == '*' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth++
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if depth > 0 {
		lx.reporter.Report(diag.LexUnterminatedBlock, diag.SevError, sp, "unterminated block comment", nil)
	}
	return token.Trivia{
		Kind: token.TriviaBlockComment,
		Span: sp,
		Text: string(lx.res.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) triviaFrom(kind token.TriviaKind, start Mark) token.Trivia {
	sp := lx.cursor.SpanFrom(start)
	return token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.res.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{Resource: lx.res.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
