package translator

import (
	"fmt"

	"github.com/coreaot/coreaot/pkg/token"
)

// ErrorKind enumerates the translation error kinds.
type ErrorKind int

const (
	UndeclaredName ErrorKind = iota
	DuplicateDeclaration
	UnknownType
	IncompleteType
	DuplicateField
	UnknownField
	TypeMismatch
	NotAPlace
	NotCallable
	ArityMismatch
	InvalidCast
	BreakOutsideLoop
	ContinueOutsideLoop
	ReturnTypeMismatch
	RecursiveValueType
)

func (k ErrorKind) String() string {
	names := [...]string{
		"UndeclaredName", "DuplicateDeclaration", "UnknownType", "IncompleteType",
		"DuplicateField", "UnknownField", "TypeMismatch", "NotAPlace", "NotCallable",
		"ArityMismatch", "InvalidCast", "BreakOutsideLoop", "ContinueOutsideLoop",
		"ReturnTypeMismatch", "RecursiveValueType",
	}
	if int(k) >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "UnknownError"
}

// TranslateError is one semantic diagnostic. Unlike the parser's
// one-error abort policy, the translator accumulates these per function
// and continues where possible.
type TranslateError struct {
	Kind    ErrorKind
	Message string
	Span    token.Span
}

func (e *TranslateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// errorf records a TranslateError and returns nothing; callers continue
// translation with a best-effort placeholder result.
func (t *Translator) errorf(kind ErrorKind, span token.Span, format string, args ...any) {
	t.errors = append(t.errors, &TranslateError{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span})
}
