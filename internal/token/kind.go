package token

// Kind identifies a token of the graft script grammar.
type Kind uint8

const (
	EOF Kind = iota
	Ident
	IntLit
	StringLit

	KwImport
	KwLet

	Assign
	Plus
	Minus
	Star
	Slash
	LParen
	RParen

	Unknown
)

var kindNames = [...]string{
	EOF:       "EOF",
	Ident:     "Ident",
	IntLit:    "IntLit",
	StringLit: "StringLit",
	KwImport:  "KwImport",
	KwLet:     "KwLet",
	Assign:    "Assign",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	LParen:    "LParen",
	RParen:    "RParen",
	Unknown:   "Unknown",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// keywords maps identifier spellings to keyword kinds.
var keywords = map[string]Kind{
	"import": KwImport,
	"let":    KwLet,
}

// LookupKeyword returns the keyword kind for ident, or Ident.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}
