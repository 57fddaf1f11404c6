// Package parser turns a token stream into a full-fidelity graft script tree.
// Every token of the input, including the EOF token with its leading trivia,
// ends up as a leaf in the tree, so tree.Text() reproduces the source exactly.
package parser

import (
	"graft/internal/diag"
	"graft/internal/lexer"
	"graft/internal/schema"
	"graft/internal/source"
	"graft/internal/token"
	"graft/internal/tree"
)

// Parse lexes and parses res into a tree. The tree comes back unbound;
// callers run schema.Bind before discovery/merging.
func Parse(res *source.Resource, reporter diag.Reporter) *tree.Tree {
	lx := lexer.New(res, reporter)
	return ParseTokens(res.ID, lx.Tokenize(), reporter)
}

// ParseTokens parses an already-lexed token stream.
func ParseTokens(id source.ResourceID, tokens []token.Token, reporter diag.Reporter) *tree.Tree {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	p := &parser{
		tokens:   tokens,
		reporter: reporter,
		tree:     tree.New(id, uint(len(tokens))*2),
	}
	return p.parseFile()
}

type parser struct {
	tokens   []token.Token
	pos      int
	reporter diag.Reporter
	tree     *tree.Tree
}

func (p *parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) bump() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// leaf потребляет текущий токен и кладёт его в дерево
func (p *parser) leaf() tree.NodeID {
	return p.tree.NewLeaf(schema.KindToken, p.bump())
}

func (p *parser) parseFile() *tree.Tree {
	var children []tree.NodeID

	for {
		tok := p.peek()
		if tok.Kind == token.EOF {
			// EOF-лист хранит хвостовые trivia ресурса
			children = append(children, p.leaf())
			break
		}

		switch tok.Kind {
		case token.KwImport:
			children = append(children, p.parseImport())
		case token.KwLet:
			children = append(children, p.parseLet())
		case token.Ident, token.IntLit, token.LParen:
			children = append(children, p.parseExprStmt())
		default:
			// неожиданный токен: диагностика, но байты сохраняем в дереве
			diag.ReportError(p.reporter, diag.SynUnexpectedToken, tok.Span,
				"unexpected token "+tok.Kind.String()).Emit()
			children = append(children, p.leaf())
		}
	}

	p.tree.SetRoot(p.tree.NewNode(schema.KindFile, children...))
	return p.tree
}

// importDecl := 'import' StringLit
func (p *parser) parseImport() tree.NodeID {
	kw := p.leaf()
	if p.peek().Kind != token.StringLit {
		diag.ReportError(p.reporter, diag.SynExpectReference, p.peek().Span,
			"expected import reference string").Emit()
		return p.tree.NewNode(schema.KindImportDecl, kw)
	}
	ref := p.leaf()
	return p.tree.NewNode(schema.KindImportDecl, kw, ref)
}

// letDecl := 'let' Ident '=' expr
func (p *parser) parseLet() tree.NodeID {
	kids := []tree.NodeID{p.leaf()}

	if p.peek().Kind != token.Ident {
		diag.ReportError(p.reporter, diag.SynExpectIdent, p.peek().Span,
			"expected identifier after let").Emit()
		return p.tree.NewNode(schema.KindLetDecl, kids...)
	}
	kids = append(kids, p.leaf())

	if p.peek().Kind != token.Assign {
		diag.ReportError(p.reporter, diag.SynUnexpectedToken, p.peek().Span,
			"expected '=' in let binding").Emit()
		return p.tree.NewNode(schema.KindLetDecl, kids...)
	}
	kids = append(kids, p.leaf())

	if expr := p.parseExpr(); expr != tree.NoNode {
		kids = append(kids, expr)
	}
	return p.tree.NewNode(schema.KindLetDecl, kids...)
}

func (p *parser) parseExprStmt() tree.NodeID {
	expr := p.parseExpr()
	return p.tree.NewNode(schema.KindExprStmt, expr)
}

// expr := term (('+'|'-') term)*
func (p *parser) parseExpr() tree.NodeID {
	left := p.parseTerm()
	if left == tree.NoNode {
		return tree.NoNode
	}
	kids := []tree.NodeID{left}
	for {
		k := p.peek().Kind
		if k != token.Plus && k != token.Minus {
			break
		}
		kids = append(kids, p.leaf())
		right := p.parseTerm()
		if right == tree.NoNode {
			break
		}
		kids = append(kids, right)
	}
	if len(kids) == 1 {
		return left
	}
	return p.tree.NewNode(schema.KindExpr, kids...)
}

// term := factor (('*'|'/') factor)*
func (p *parser) parseTerm() tree.NodeID {
	left := p.parseFactor()
	if left == tree.NoNode {
		return tree.NoNode
	}
	kids := []tree.NodeID{left}
	for {
		k := p.peek().Kind
		if k != token.Star && k != token.Slash {
			break
		}
		kids = append(kids, p.leaf())
		right := p.parseFactor()
		if right == tree.NoNode {
			break
		}
		kids = append(kids, right)
	}
	if len(kids) == 1 {
		return left
	}
	return p.tree.NewNode(schema.KindExpr, kids...)
}

// factor := IntLit | Ident | '(' expr ')'
func (p *parser) parseFactor() tree.NodeID {
	switch p.peek().Kind {
	case token.IntLit, token.Ident:
		return p.leaf()
	case token.LParen:
		kids := []tree.NodeID{p.leaf()}
		if expr := p.parseExpr(); expr != tree.NoNode {
			kids = append(kids, expr)
		}
		if p.peek().Kind == token.RParen {
			kids = append(kids, p.leaf())
		} else {
			diag.ReportError(p.reporter, diag.SynUnexpectedToken, p.peek().Span,
				"expected ')'").Emit()
		}
		return p.tree.NewNode(schema.KindExpr, kids...)
	default:
		diag.ReportError(p.reporter, diag.SynExpectExpr, p.peek().Span,
			"expected expression").Emit()
		return tree.NoNode
	}
}
