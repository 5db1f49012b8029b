package langdef

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/TMiguelT/lark/grammar"
)

func TestGrammarModel (t *testing.T) {
	g := mustParse(t, "start: \"a\" item*\nitem: NUMBER -> num\n  | \"x\"..\"z\" -> small\nNUMBER: /\\d+/\n%ignore WS\nWS: /\\s+/\n")

	expected := &grammar.Grammar{
		Tokens: map[string]*grammar.Token{
			"NUMBER": {Name: "NUMBER", Pattern: "\\d+", IsRegexp: true},
			"WS":     {Name: "WS", Pattern: "\\s+", IsRegexp: true},
		},
		Rules: map[string]*grammar.Rule{
			"start": {Name: "start", Body: &grammar.Expansion{Aliases: []*grammar.Alias{
				{Items: []*grammar.Expr{
					{Atom: &grammar.Literal{Text: "a"}},
					{Atom: &grammar.Ref{Name: "item", Kind: grammar.RuleRef}, Quant: grammar.ZeroOrMore},
				}},
			}}},
			"item": {Name: "item", Body: &grammar.Expansion{Aliases: []*grammar.Alias{
				{
					Items: []*grammar.Expr{{Atom: &grammar.Ref{Name: "NUMBER", Kind: grammar.TokenRef}}},
					Label: "num",
				},
				{
					Items: []*grammar.Expr{{Atom: &grammar.Range{Lo: "x", Hi: "z"}}},
					Label: "small",
				},
			}}},
		},
		Ignore: []*grammar.Expansion{
			{Aliases: []*grammar.Alias{
				{Items: []*grammar.Expr{{Atom: &grammar.Ref{Name: "WS", Kind: grammar.TokenRef}}}},
			}},
		},
		Start: "start",
	}

	if diff := cmp.Diff(expected, g); diff != "" {
		t.Fatalf("unexpected grammar model:\n%s", diff)
	}
}

func TestGroupModel (t *testing.T) {
	g := mustParse(t, "start: (\"a\" | \"b\")+ [\"c\"]\n")

	expected := &grammar.Rule{Name: "start", Body: &grammar.Expansion{Aliases: []*grammar.Alias{
		{Items: []*grammar.Expr{
			{
				Atom: &grammar.Group{Exp: &grammar.Expansion{Aliases: []*grammar.Alias{
					{Items: []*grammar.Expr{{Atom: &grammar.Literal{Text: "a"}}}},
					{Items: []*grammar.Expr{{Atom: &grammar.Literal{Text: "b"}}}},
				}}},
				Quant: grammar.OneOrMore,
			},
			{Atom: &grammar.Maybe{Exp: &grammar.Expansion{Aliases: []*grammar.Alias{
				{Items: []*grammar.Expr{{Atom: &grammar.Literal{Text: "c"}}}},
			}}}},
		}},
	}}}

	if diff := cmp.Diff(expected, g.Rules["start"]); diff != "" {
		t.Fatalf("unexpected rule model:\n%s", diff)
	}
}

func TestRegexpFlagsModel (t *testing.T) {
	g := mustParse(t, "start: /ab?/im\n")

	lit := g.Rules["start"].Body.Aliases[0].Items[0].Atom.(*grammar.Literal)
	expected := &grammar.Literal{Text: "ab?", IsRegexp: true, Flags: "im"}
	if diff := cmp.Diff(expected, lit); diff != "" {
		t.Fatalf("unexpected literal:\n%s", diff)
	}
}

func TestParseBytes (t *testing.T) {
	g, e := ParseBytes("sample", []byte("start: \"a\"\n"))
	if e != nil {
		t.Fatalf("unexpected error: %s", e.Error())
	}
	if g.Start != "start" {
		t.Fatalf("expecting start rule %q, got %q", "start", g.Start)
	}
}
