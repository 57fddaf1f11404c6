package directive

import (
	"strconv"
	"strings"

	"graft/internal/token"
	"graft/internal/tree"
)

// ScriptExtractor reads the reference string out of a graft script import
// directive: the first string-literal leaf among the node's children,
// unquoted.
type ScriptExtractor struct{}

func (ScriptExtractor) ExtractReference(t *tree.Tree, id tree.NodeID) (string, bool) {
	n := t.Node(id)
	if n == nil {
		return "", false
	}
	for _, child := range n.Children {
		cn := t.Node(child)
		if cn == nil || !cn.Leaf || cn.Token.Kind != token.StringLit {
			continue
		}
		return unquote(cn.Token.Text), true
	}
	return "", false
}

// unquote снимает кавычки и escape-последовательности; на битом вводе
// возвращает внутренность литерала как есть.
func unquote(raw string) string {
	if s, err := strconv.Unquote(raw); err == nil {
		return s
	}
	raw = strings.TrimPrefix(raw, `"`)
	raw = strings.TrimSuffix(raw, `"`)
	return raw
}
