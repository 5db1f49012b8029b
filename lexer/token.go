package lexer

import (
	"github.com/TMiguelT/lark/source"
)

// Token is a single lexeme fetched from grammar source.
type Token struct {
	tokenType int
	typeName  string
	content   []byte
	src       *source.Source
	line, col int
}

func (t *Token) Type() int {
	return t.tokenType
}

func (t *Token) TypeName() string {
	return t.typeName
}

// Text returns token content as a string.
func (t *Token) Text() string {
	return string(t.content)
}

// Content returns raw token content. The slice belongs to the source, do not modify it.
func (t *Token) Content() []byte {
	return t.content
}

func (t *Token) Source() *source.Source {
	return t.src
}

func (t *Token) SourceName() string {
	if t.src == nil {
		return ""
	}
	return t.src.Name()
}

func (t *Token) Line() int {
	return t.line
}

func (t *Token) Col() int {
	return t.col
}

// SourcePos is used to attach position information to a created token;
// source.Pos implements this interface.
type SourcePos interface {
	Source() *source.Source
	Line() int
	Col() int
}

// NewToken creates a new token at the given position. sp may be nil.
func NewToken(tokenType int, typeName string, content []byte, sp SourcePos) *Token {
	if sp == nil {
		return &Token{tokenType, typeName, content, nil, 0, 0}
	}
	return &Token{tokenType, typeName, content, sp.Source(), sp.Line(), sp.Col()}
}

const (
	EofTokenType    = -2
	EoiTokenType    = -3
	LowestTokenType = -3
	EofTokenName    = "-end-of-file-"
	EoiTokenName    = "-end-of-input-"
)

// EofToken creates a token marking the end of a single source.
func EofToken(s *source.Source) *Token {
	line := 0
	col := 0
	if s != nil {
		line, col = s.LineCol(s.Len())
	}
	return &Token{tokenType: EofTokenType, typeName: EofTokenName, src: s, line: line, col: col}
}

// EoiToken creates a token marking the end of the whole input queue.
func EoiToken() *Token {
	return &Token{tokenType: EoiTokenType, typeName: EoiTokenName}
}
