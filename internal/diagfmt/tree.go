package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"graft/internal/schema"
	"graft/internal/source"
	"graft/internal/tree"
)

type TreeNodeOutput struct {
	Kind     string           `json:"kind"`
	Span     source.Span      `json:"span"`
	Token    string           `json:"token,omitempty"`
	Text     string           `json:"text,omitempty"`
	Children []TreeNodeOutput `json:"children,omitempty"`
}

// FormatTreePretty печатает дерево с псевдографикой, как дампы компилятора.
func FormatTreePretty(w io.Writer, t *tree.Tree) error {
	root := t.Root()
	if root == tree.NoNode {
		fmt.Fprintln(w, "<empty tree>")
		return nil
	}
	writeNode(w, t, root, "", true, true)
	return nil
}

func writeNode(w io.Writer, t *tree.Tree, id tree.NodeID, prefix string, isLast, isRoot bool) {
	n := t.Node(id)
	label := schema.KindName(n.Kind)
	if n.Leaf {
		label = fmt.Sprintf("%s %s", label, n.Token.Kind)
		if n.Token.Text != "" {
			label += fmt.Sprintf(" %q", n.Token.Text)
		}
	}

	if isRoot {
		fmt.Fprintf(w, "%s (span %d-%d)\n", label, n.Span.Start, n.Span.End)
	} else {
		branch := "├─ "
		if isLast {
			branch = "└─ "
		}
		fmt.Fprintf(w, "%s%s%s (span %d-%d)\n", prefix, branch, label, n.Span.Start, n.Span.End)
		if isLast {
			prefix += "   "
		} else {
			prefix += "│  "
		}
	}

	for i, child := range n.Children {
		writeNode(w, t, child, prefix, i == len(n.Children)-1, false)
	}
}

// FormatTreeJSON выводит дерево в JSON формате
func FormatTreeJSON(w io.Writer, t *tree.Tree) error {
	root := t.Root()
	if root == tree.NoNode {
		return fmt.Errorf("empty tree")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonNode(t, root))
}

func jsonNode(t *tree.Tree, id tree.NodeID) TreeNodeOutput {
	n := t.Node(id)
	out := TreeNodeOutput{
		Kind: schema.KindName(n.Kind),
		Span: n.Span,
	}
	if n.Leaf {
		out.Token = n.Token.Kind.String()
		out.Text = n.Token.Text
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, jsonNode(t, child))
	}
	return out
}
