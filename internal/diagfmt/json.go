package diagfmt

import (
	"encoding/json"
	"io"

	"graft/internal/diag"
	"graft/internal/source"
)

// LocationJSON представляет местоположение в ресурсе для JSON
type LocationJSON struct {
	Resource  string `json:"resource"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Line      uint32 `json:"line,omitempty"`
	Col       uint32 `json:"col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(sp source.Span, set *source.ResourceSet, includePositions bool) LocationJSON {
	loc := LocationJSON{
		Resource:  displayURL(set, sp.Resource),
		StartByte: sp.Start,
		EndByte:   sp.End,
	}
	if includePositions {
		lc := set.LineCol(sp.Resource, sp.Start)
		loc.Line = lc.Line
		loc.Col = lc.Col
	}
	return loc
}

// JSON пишет диагностики в стабильном машиночитаемом виде.
// Как и Pretty, ожидает заранее отсортированный bag.
func JSON(w io.Writer, bag *diag.Bag, set *source.ResourceSet, opts JSONOpts) error {
	items := bag.Items()
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(items)),
		Count:       len(items),
	}
	for _, d := range items {
		if opts.Max > 0 && len(out.Diagnostics) >= opts.Max {
			break
		}
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, set, opts.IncludePositions),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{
					Message:  n.Msg,
					Location: makeLocation(n.Span, set, opts.IncludePositions),
				})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
