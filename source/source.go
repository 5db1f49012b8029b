// Package source defines source text and source queue used by lexer.
package source

import (
	"bytes"
	"unicode/utf8"
)

// Source is a named piece of grammar source text with line/column lookup.
type Source struct {
	name          string
	content       []byte
	lineStarts    []int
	prevLineIndex int
}

// New creates a new Source. content must be valid UTF-8 text.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content, prevLineIndex: -1}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCol converts byte offset to 1-based line and column numbers.
// Column counts runes, not bytes.
func (s *Source) LineCol(pos int) (line, col int) {
	var lineIndex int
	if pos < 0 {
		pos = 0
		lineIndex = 0
	} else if pos >= len(s.content) {
		pos = len(s.content)
		lineIndex = len(s.lineStarts) - 1
	} else {
		lineIndex = s.findLineIndex(pos)
	}

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

func (s *Source) findLineIndex(pos int) int {
	if s.prevLineIndex >= 0 && s.lineStarts[s.prevLineIndex] <= pos {
		lineIndex := s.prevLineIndex
		last := len(s.lineStarts) - 1
		for lineIndex <= last && s.lineStarts[lineIndex] <= pos {
			lineIndex++
		}
		lineIndex--
		s.prevLineIndex = lineIndex
		return lineIndex
	}

	leftIndex := 0
	rightIndex := len(s.lineStarts) - 1
	index := 0
	for leftIndex < rightIndex {
		index = (leftIndex + rightIndex + 1) >> 1
		lineStart := s.lineStarts[index]
		if lineStart == pos {
			return index
		}

		if lineStart < pos {
			leftIndex = index
		} else {
			rightIndex = index - 1
			index = rightIndex
		}
	}
	s.prevLineIndex = leftIndex
	return leftIndex
}

// Pos is a fixed position in a source.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos captures line/column information for a byte offset in s.
func NewPos(s *Source, pos int) Pos {
	res := Pos{src: s, pos: pos}
	if s != nil {
		res.line, res.col = s.LineCol(pos)
	}
	return res
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}

// Queue holds sources to be tokenized, current one first.
// Lexer reads and advances the head source; when it is exhausted
// the next appended source becomes the head.
type Queue struct {
	sources []*Source
	pos     int
}

func NewQueue() *Queue {
	return &Queue{}
}

// Append adds a source to the end of the queue.
func (q *Queue) Append(s *Source) *Queue {
	q.sources = append(q.sources, s)
	return q
}

// Source returns the head source or nil if the queue is empty.
func (q *Queue) Source() *Source {
	if len(q.sources) == 0 {
		return nil
	}
	return q.sources[0]
}

// ContentPos returns the content of the head source and the current offset in it.
func (q *Queue) ContentPos() ([]byte, int) {
	if len(q.sources) == 0 {
		return nil, 0
	}
	return q.sources[0].Content(), q.pos
}

// SourcePos captures the current position in the head source.
func (q *Queue) SourcePos() Pos {
	return NewPos(q.Source(), q.pos)
}

// IsEmpty reports whether there is nothing left to tokenize.
func (q *Queue) IsEmpty() bool {
	return len(q.sources) == 0 || (len(q.sources) == 1 && q.pos >= q.sources[0].Len())
}

// Skip advances the current position in the head source.
func (q *Queue) Skip(size int) {
	if size > 0 && len(q.sources) > 0 {
		q.pos += size
		if q.pos > q.sources[0].Len() {
			q.pos = q.sources[0].Len()
		}
	}
}

// NextSource discards the head source and rewinds the position for the next one.
func (q *Queue) NextSource() {
	if len(q.sources) > 0 {
		q.sources = q.sources[1:]
		q.pos = 0
	}
}
