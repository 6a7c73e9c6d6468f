// Package token defines the lexical position and token value types shared
// by the lexer, parser, IR translator, and diagnostics packages.
package token

import "fmt"

// Position identifies a single point in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column, counted in runes
	Offset int // 0-based byte offset into the source
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position has a well-formed line number.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Span covers the half-open range [Start, End) of a lexical unit.
type Span struct {
	Start Position
	End   Position
}

// String renders the span as "start-end".
func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
