/*
Package lark compiles grammars written in the Lark grammar-definition language
into a normalized grammar model.

Consists of subpackages:
  - cmd/larkc: console utility translating a grammar file to JSON or Go source;
  - grammar: defines the normalized grammar model (tokens, rules, expansions) emitted by the compiler;
  - langdef: compiles grammar source (rules, tokens, templates, %ignore/%import/%declare) to a grammar model;
  - lexer: lexical analyzer used to tokenize grammar source;
  - source: defines source text and source queue used by lexer.

Typical usage is:

1. Describe a grammar in the Lark language: lowercase rules, uppercase tokens,
parameterized rule templates, priorities, and %ignore/%import/%declare statements.

2. Compile the description with the langdef subpackage (or the larkc utility),
supplying a FragmentProvider if the grammar imports external fragments.

3. Hand the resulting grammar.Grammar to a parser-construction backend.
*/
package lark

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	LangDefErrors = 1   // used by langdef
	LexicalErrors = 101 // used by lexer
)

// Error is the error type used by lark subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
