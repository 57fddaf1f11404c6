package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// ShowContext prints the offending source line with a caret underline.
	ShowContext bool
	ShowNotes   bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	IncludeNotes     bool
	Max              int // обрезка вывода, не Bag
}
