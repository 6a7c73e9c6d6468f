// Package diag normalizes the diagnostics produced by every pipeline
// stage — internal/lexer, internal/parser, internal/translator — into one
// shape, and renders them with source context the way DWScript's
// CompilerError does, replacing its raw ANSI escapes with
// github.com/fatih/color. Whether color is used is decided by the useColor
// argument to Render alone, not by NO_COLOR or terminal detection.
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/coreaot/coreaot/internal/lexer"
	"github.com/coreaot/coreaot/internal/parser"
	"github.com/coreaot/coreaot/internal/translator"
	"github.com/coreaot/coreaot/pkg/token"
)

// Severity distinguishes fatal diagnostics from advisory ones. Every stage
// implemented today only ever produces Error; Warning exists for parity
// with the color package's convention of a two-level bold/dim treatment.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one compiler diagnostic, regardless of which stage
// produced it. Kind carries the stage-specific error kind's String() so a
// caller can still tell an UndeclaredName from a TypeMismatch without
// depending on internal/translator directly.
type Diagnostic struct {
	Severity Severity
	Stage    string
	Kind     string
	Message  string
	Span     token.Span
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Severity, d.Message)
}

// FromLexErrors adapts a batch of lexer diagnostics.
func FromLexErrors(errs []lexer.LexerError) []*Diagnostic {
	out := make([]*Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = &Diagnostic{
			Severity: SeverityError,
			Stage:    "lex",
			Kind:     e.Kind.String(),
			Message:  e.Message,
			Span:     token.Span{Start: e.Pos, End: e.Pos},
		}
	}
	return out
}

// FromParseError adapts the parser's single abort-on-first error. Returns
// nil if err is nil or not a *parser.ParseError.
func FromParseError(err error) *Diagnostic {
	pe, ok := err.(*parser.ParseError)
	if !ok {
		return nil
	}
	return &Diagnostic{
		Severity: SeverityError,
		Stage:    "parse",
		Kind:     pe.Kind.String(),
		Message:  pe.Message,
		Span:     pe.Span,
	}
}

// FromTranslateErrors adapts the translator's per-function accumulated
// diagnostics.
func FromTranslateErrors(errs []*translator.TranslateError) []*Diagnostic {
	out := make([]*Diagnostic, len(errs))
	for i, e := range errs {
		out[i] = &Diagnostic{
			Severity: SeverityError,
			Stage:    "translate",
			Kind:     e.Kind.String(),
			Message:  e.Message,
			Span:     e.Span,
		}
	}
	return out
}

// Bag accumulates diagnostics across pipeline stages so cmd/coreaot can
// run lexing, parsing, and translation in sequence and still report
// everything collected before the first fatal stage, the way
// errors.FormatErrors batches multiple CompilerErrors.
type Bag struct {
	diags []*Diagnostic
}

func (b *Bag) Add(d ...*Diagnostic) {
	for _, one := range d {
		if one != nil {
			b.diags = append(b.diags, one)
		}
	}
}

func (b *Bag) HasErrors() bool {
	for _, d := range b.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (b *Bag) Diagnostics() []*Diagnostic { return b.diags }

// Render formats every accumulated diagnostic against source, one after
// another, source line plus a caret/underline under the offending span.
// Pass useColor=false for plain output; the cmd/coreaot subcommands
// always pass false.
func (b *Bag) Render(source, file string, useColor bool) string {
	var sb strings.Builder
	for i, d := range b.diags {
		sb.WriteString(renderOne(d, source, file, useColor))
		if i < len(b.diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

func renderOne(d *Diagnostic, source, file string, useColor bool) string {
	bold := color.New(color.Bold)
	severityColor := color.New(color.FgRed, color.Bold)
	if d.Severity == SeverityWarning {
		severityColor = color.New(color.FgYellow, color.Bold)
	}
	dim := color.New(color.Faint)
	bold.EnableColor()
	severityColor.EnableColor()
	dim.EnableColor()
	if !useColor {
		bold.DisableColor()
		severityColor.DisableColor()
		dim.DisableColor()
	}

	var sb strings.Builder
	loc := fmt.Sprintf("%s:%d:%d", file, d.Span.Start.Line, d.Span.Start.Column)
	if file == "" {
		loc = fmt.Sprintf("%d:%d", d.Span.Start.Line, d.Span.Start.Column)
	}
	sb.WriteString(severityColor.Sprintf("%s", d.Severity))
	sb.WriteString(fmt.Sprintf(": %s\n  --> %s\n", d.Message, loc))

	line := sourceLine(source, d.Span.Start.Line)
	if line != "" {
		gutter := fmt.Sprintf("%4d | ", d.Span.Start.Line)
		sb.WriteString(dim.Sprint(gutter))
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(gutter)+d.Span.Start.Column-1))
		sb.WriteString(severityColor.Sprint(underline(d.Span)))
	}
	return sb.String()
}

func underline(sp token.Span) string {
	width := 1
	if sp.End.Line == sp.Start.Line && sp.End.Column > sp.Start.Column {
		width = sp.End.Column - sp.Start.Column
	}
	return strings.Repeat("^", width)
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
