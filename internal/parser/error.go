package parser

import (
	"fmt"

	"github.com/coreaot/coreaot/pkg/token"
)

// ErrorKind enumerates the parsing error kinds.
type ErrorKind int

const (
	ExpectedToken ErrorKind = iota
	UnexpectedToken
	ExpectedType
	ExpectedExpression
	ExpectedDeclaration
)

func (k ErrorKind) String() string {
	switch k {
	case ExpectedToken:
		return "ExpectedToken"
	case UnexpectedToken:
		return "UnexpectedToken"
	case ExpectedType:
		return "ExpectedType"
	case ExpectedExpression:
		return "ExpectedExpression"
	case ExpectedDeclaration:
		return "ExpectedDeclaration"
	default:
		return "UnknownError"
	}
}

// ParseError is a single parsing diagnostic. Parsing follows a one-error,
// abort policy: the first ParseError produced by a Parser ends parsing,
// so callers never see more than one.
type ParseError struct {
	Kind    ErrorKind
	Message string
	Span    token.Span
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}
