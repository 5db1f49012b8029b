package lexer

import (
	"regexp"
	"strings"
	"testing"

	"github.com/TMiguelT/lark"
	"github.com/TMiguelT/lark/source"
)

var (
	tokenRe      *regexp.Regexp
	tokenTypes   []TokenType
	tokenSamples []byte
)

func init () {
	tokenRe = regexp.MustCompile("^(?s:[\\s]+|(\\d+)|([a-z_][a-z0-9_]*)|('.*?')|('.{0,10}))")
	tokenTypes = []TokenType{{1, "number"}, {2, "name"}, {3, "string"}}
	tokenSamples = []byte("123 foo 'bar'")
}

func newLexer () *Lexer {
	return New(tokenRe, tokenTypes)
}

func TestEmpty (t *testing.T) {
	sources := []string{"", " ", "  ", " \t\r\n "}
	for _, src := range sources {
		l := newLexer()
		q := source.NewQueue()
		q.Append(source.New("", []byte(src)))
		tok, e := l.Next(q)
		if e != nil {
			t.Fatalf("source %q: unexpected error %s", src, e)
		}
		if tok.Type() != EofTokenType || tok.TypeName() != EofTokenName {
			t.Fatalf("source %q: unexpected token %s", src, tok.TypeName())
		}
	}
}

func TestTokenSamples (t *testing.T) {
	l := newLexer()
	q := source.NewQueue()
	q.Append(source.New("", tokenSamples))
	for _, tokType := range tokenTypes {
		tok, e := l.Next(q)
		if tok == nil || e != nil {
			t.Fatalf("expecting %q token, got error %v", tokType.TypeName, e)
		}
		if tok.TypeName() != tokType.TypeName || tok.Type() != tokType.Type {
			t.Fatalf("expecting %q (%d) token, got %q (%d)", tokType.TypeName, tokType.Type, tok.TypeName(), tok.Type())
		}
	}
	tok, e := l.Next(q)
	if tok == nil || e != nil {
		t.Fatalf("expecting EoF, got %v, %v", tok, e)
	}
	if tok.TypeName() != EofTokenName {
		t.Fatalf("expecting EoF, got %q", tok.TypeName())
	}
}

func TestEoi (t *testing.T) {
	l := newLexer()
	q := source.NewQueue()
	tok, e := l.Next(q)
	if e != nil {
		t.Fatalf("unexpected error %s", e)
	}
	if tok.Type() != EoiTokenType || tok.TypeName() != EoiTokenName {
		t.Fatalf("expecting EoI, got %q", tok.TypeName())
	}

	q.Append(source.New("", []byte("foo")))
	tok, _ = l.Next(q)
	if tok.TypeName() != "name" {
		t.Fatalf("expecting name, got %q", tok.TypeName())
	}
	tok, _ = l.Next(q)
	if tok.Type() != EofTokenType {
		t.Fatalf("expecting EoF, got %q", tok.TypeName())
	}
	tok, _ = l.Next(q)
	if tok.Type() != EoiTokenType {
		t.Fatalf("expecting EoI, got %q", tok.TypeName())
	}
}

func TestTokenPos (t *testing.T) {
	l := newLexer()
	q := source.NewQueue()
	q.Append(source.New("src", []byte("123\n foo")))
	l.Next(q)
	tok, e := l.Next(q)
	if tok == nil || e != nil {
		t.Fatalf("expecting token, got error %v", e)
	}
	if tok.SourceName() != "src" || tok.Line() != 2 || tok.Col() != 2 {
		t.Fatalf("expecting %s at line 2, col 2, got %s at %d, %d", "foo", tok.SourceName(), tok.Line(), tok.Col())
	}
	if tok.Text() != "foo" {
		t.Fatalf("expecting %q, got %q", "foo", tok.Text())
	}
}

func TestBrokenToken (t *testing.T) {
	l := newLexer()
	q := source.NewQueue()
	q.Append(source.New("", []byte("\n  '*  *")))
	tok, e := l.Next(q)
	if tok != nil {
		t.Fatalf("expected error, got %q token", tok.TypeName())
	}
	ee, f := e.(*lark.Error)
	if !f || ee.Code != BadTokenError {
		t.Fatalf("expected bad token error, got %v", e)
	}
	if ee.Line != 2 || ee.Col != 3 {
		t.Fatalf("expected error at line 2, col 3, got %d, %d", ee.Line, ee.Col)
	}
	if !strings.Contains(ee.Message, "'*  *") {
		t.Fatalf("expected token text in message, got %q", ee.Message)
	}
}

func TestWrongChar (t *testing.T) {
	l := New(regexp.MustCompile(`^(?:\s+|([a-z]+))`), []TokenType{{1, "name"}})
	q := source.NewQueue()
	q.Append(source.New("", []byte("foo 123")))
	l.Next(q)
	tok, e := l.Next(q)
	if tok != nil {
		t.Fatalf("expected error, got %q token", tok.TypeName())
	}
	ee, f := e.(*lark.Error)
	if !f || ee.Code != WrongCharError {
		t.Fatalf("expected wrong char error, got %v", e)
	}
}
