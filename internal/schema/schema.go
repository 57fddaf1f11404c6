// Package schema owns the node-kind registry of the graft script grammar and
// the structural binding step. The tree layer treats kinds as opaque numbers;
// everything that needs to know what a kind means goes through this package.
package schema

import (
	"errors"
	"fmt"

	"graft/internal/token"
	"graft/internal/tree"
)

// Node kinds of the graft script grammar. KindInvalid (0) is reserved by the
// tree layer.
const (
	KindFile tree.NodeKind = iota + 1
	KindImportDecl
	KindLetDecl
	KindExprStmt
	KindExpr
	KindToken
)

var kindNames = map[tree.NodeKind]string{
	KindFile:       "File",
	KindImportDecl: "ImportDecl",
	KindLetDecl:    "LetDecl",
	KindExprStmt:   "ExprStmt",
	KindExpr:       "Expr",
	KindToken:      "Token",
}

// KindName returns a printable name for a node kind.
func KindName(k tree.NodeKind) string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ErrNoRoot indicates a tree without a root node.
var ErrNoRoot = errors.New("tree has no root")

// Schema describes the structural expectations a tree must meet before the
// merge engine may process it.
type Schema struct {
	directiveKind tree.NodeKind
}

// Script returns the schema of the graft script grammar.
func Script() *Schema {
	return &Schema{directiveKind: KindImportDecl}
}

// DirectiveKind returns the node kind that represents an import directive.
func (s *Schema) DirectiveKind() tree.NodeKind {
	return s.directiveKind
}

// Bind validates t against the schema and marks it bound on success:
// the root must exist, every node kind must be known, and every directive
// node must carry a string-literal reference leaf. Binding is what licenses
// directive discovery and merging.
func (s *Schema) Bind(t *tree.Tree) error {
	if t.Node(t.Root()) == nil {
		return ErrNoRoot
	}

	var bindErr error
	t.Walk(func(id tree.NodeID, n *tree.Node) bool {
		if _, known := kindNames[n.Kind]; !known {
			bindErr = fmt.Errorf("unknown node kind %d at %s", n.Kind, n.Span)
			return false
		}
		if n.Kind == s.directiveKind && !hasStringLeaf(t, id) {
			bindErr = fmt.Errorf("directive at %s has no reference literal", n.Span)
			return false
		}
		return true
	})
	if bindErr != nil {
		return bindErr
	}

	t.MarkBound()
	return nil
}

func hasStringLeaf(t *tree.Tree, id tree.NodeID) bool {
	n := t.Node(id)
	for _, child := range n.Children {
		cn := t.Node(child)
		if cn == nil {
			continue
		}
		if cn.Leaf && cn.Token.Kind == token.StringLit {
			return true
		}
	}
	return false
}
