// Package diag defines the diagnostic model shared by all preprocessing
// phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by the lexer / parser / resolver / merge passes.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g. "the
// import resolved here") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter to decouple emission from storage. When no
// additional metadata is needed, phases may call Reporter.Report(...) directly.
// diag.BagReporter aggregates diagnostics into a Bag, which callers inspect
// through HasErrors/HasWarnings after a pass completes. The merge always
// produces a best-effort result; presence of error-severity diagnostics is
// what decides overall success.
package diag
