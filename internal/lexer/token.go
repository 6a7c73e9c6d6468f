package lexer

import (
	"fmt"

	"github.com/coreaot/coreaot/pkg/token"
)

// Position is an alias of token.Position so callers of this package do not
// need to import pkg/token directly for simple position handling.
type Position = token.Position

// Token is a single spanned lexical unit.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// NewToken constructs a Token at the given starting position.
func NewToken(tt TokenType, literal string, pos Position) Token {
	return Token{Type: tt, Literal: literal, Pos: pos}
}

// String renders the token for debugging and snapshot tests.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Literal, t.Pos)
}

// LexerError is a single lexical diagnostic.
//
// Kind distinguishes the spec's three lexing error kinds (UnknownChar,
// UnparsableNumber, ReservedIdentifier) for callers that want to match on
// them programmatically instead of the rendered message.
type LexerError struct {
	Kind    ErrorKind
	Message string
	Pos     Position
}

// Error implements the error interface.
func (e *LexerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ErrorKind enumerates the lexing error kinds.
type ErrorKind int

const (
	UnknownChar ErrorKind = iota
	UnparsableNumber
	ReservedIdentifier
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownChar:
		return "UnknownChar"
	case UnparsableNumber:
		return "UnparsableNumber"
	case ReservedIdentifier:
		return "ReservedIdentifier"
	default:
		return "UnknownError"
	}
}
