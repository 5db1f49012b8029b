package langdef

import (
	"strings"
	"testing"

	"github.com/TMiguelT/lark"
	"github.com/TMiguelT/lark/grammar"
	"github.com/TMiguelT/lark/source"
)

func synthesizedRule (t *testing.T, g *grammar.Grammar, base string) *grammar.Rule {
	t.Helper()
	var found *grammar.Rule
	for name, r := range g.Rules {
		if strings.HasPrefix(name, "__"+base+"_") {
			if found != nil {
				t.Fatalf("more than one instantiation of %q", base)
			}
			found = r
		}
	}
	if found == nil {
		t.Fatalf("no instantiation of %q", base)
	}
	return found
}

func TestTemplateExpansion (t *testing.T) {
	g := mustParse(t, "pair{x, sep}: x (sep x)*\nstart: pair{NUMBER, COMMA}\nNUMBER: /\\d+/\nCOMMA: \",\"\n")

	if len(g.Rules) != 2 {
		t.Fatalf("expecting 2 rules, got %d", len(g.Rules))
	}
	if _, has := g.Rules["pair"]; has {
		t.Fatal("template itself must not survive expansion")
	}

	inst := synthesizedRule(t, g, "pair")
	ref := g.Rules["start"].Body.Aliases[0].Items[0].Atom.(*grammar.Ref)
	if ref.Name != inst.Name || ref.Kind != grammar.RuleRef {
		t.Fatalf("expecting start to reference %q, got %+v", inst.Name, ref)
	}

	items := inst.Body.Aliases[0].Items
	first := items[0].Atom.(*grammar.Ref)
	if first.Name != "NUMBER" || first.Kind != grammar.TokenRef {
		t.Fatalf("expecting first param substituted by NUMBER, got %+v", first)
	}
	group := items[1].Atom.(*grammar.Group)
	sep := group.Exp.Aliases[0].Items[0].Atom.(*grammar.Ref)
	if sep.Name != "COMMA" || sep.Kind != grammar.TokenRef {
		t.Fatalf("expecting sep substituted by COMMA, got %+v", sep)
	}
}

func TestTemplateUpperCaseParams (t *testing.T) {
	g := mustParse(t, "greet{X}: X \"!\"\nstart: greet{\"hi\"}\n")

	if _, has := g.Rules["greet"]; has {
		t.Fatal("template itself must not survive expansion")
	}
	inst := synthesizedRule(t, g, "greet")
	items := inst.Body.Aliases[0].Items
	lit := items[0].Atom.(*grammar.Literal)
	if lit.Text != "hi" {
		t.Fatalf("expecting parameter substituted by \"hi\", got %+v", lit)
	}
	if bang := items[1].Atom.(*grammar.Literal); bang.Text != "!" {
		t.Fatalf("expecting literal \"!\", got %+v", bang)
	}
}

func TestTemplateMemoization (t *testing.T) {
	g := mustParse(t, "w{x}: x x\nstart: w{\"a\"} w{\"a\"} w{\"b\"}\n")

	// two distinct signatures, one shared
	if len(g.Rules) != 3 {
		t.Fatalf("expecting 3 rules, got %d", len(g.Rules))
	}

	items := g.Rules["start"].Body.Aliases[0].Items
	first := items[0].Atom.(*grammar.Ref).Name
	second := items[1].Atom.(*grammar.Ref).Name
	third := items[2].Atom.(*grammar.Ref).Name
	if first != second {
		t.Fatalf("expecting shared instantiation, got %q and %q", first, second)
	}
	if first == third {
		t.Fatal("expecting distinct instantiations for distinct arguments")
	}
}

func TestTemplateLiteralArgs (t *testing.T) {
	g := mustParse(t, "opt{x}: x?\nstart: opt{\"k\"i} opt{/\\d+/}\n")

	count := 0
	for name := range g.Rules {
		if strings.HasPrefix(name, "__opt_") {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expecting 2 instantiations, got %d", count)
	}
}

func TestNestedTemplates (t *testing.T) {
	g := mustParse(t, "a{x}: x x\nb{x}: a{x} \";\"\nstart: b{\"k\"}\n")

	// b{"k"} and the nested a{"k"}
	if len(g.Rules) != 3 {
		t.Fatalf("expecting 3 rules, got %d", len(g.Rules))
	}
	inst := synthesizedRule(t, g, "b")
	nested := inst.Body.Aliases[0].Items[0].Atom.(*grammar.Ref)
	if !strings.HasPrefix(nested.Name, "__a_") {
		t.Fatalf("expecting nested instantiation of a, got %q", nested.Name)
	}
}

func TestTemplateCallArgs (t *testing.T) {
	g := mustParse(t, "a{x}: x x\nb{x}: x \";\"\nstart: b{a{\"k\"}}\n")

	// a{"k"} expands first, b gets a reference argument
	inst := synthesizedRule(t, g, "b")
	arg := inst.Body.Aliases[0].Items[0].Atom.(*grammar.Ref)
	if !strings.HasPrefix(arg.Name, "__a_") {
		t.Fatalf("expecting argument replaced by instantiation of a, got %q", arg.Name)
	}
}

func TestTemplateModifiers (t *testing.T) {
	g := mustParse(t, "?opt{x}: x | \"none\"\nstart: opt{\"k\"}\n")
	inst := synthesizedRule(t, g, "opt")
	if !inst.Inline {
		t.Fatal("expecting instantiation to inherit the ? modifier")
	}
}

func TestTemplateArity (t *testing.T) {
	samples := []string{
		"pair{x, y}: x y\nstart: pair{\"a\"}\n",
		"pair{x, y}: x y\nstart: pair{\"a\", \"b\", \"c\"}\n",
	}
	checkErrorCode(t, samples, TemplateArityError)
}

func TestUnknownTemplate (t *testing.T) {
	samples := []string{
		"start: foo{\"a\"}\n",
		"foo: \"a\"\nstart: foo{\"a\"}\n",
	}
	checkErrorCode(t, samples, UnknownTemplateError)
}

func TestTemplateRecursion (t *testing.T) {
	samples := []string{
		"t{x}: t{x}\nstart: t{\"a\"}\n",
		"a{x}: b{x}\nb{x}: a{x}\nstart: a{\"k\"}\n",
	}
	checkErrorCode(t, samples, TemplateRecursionError)
}

func TestTemplateDepth (t *testing.T) {
	src := "t1{x}: t2{x}\nt2{x}: t3{x}\nt3{x}: x\nstart: t1{\"a\"}\n"

	_, e := Parse(source.New("sample", []byte(src)), &Options{MaxTemplateDepth: 2})
	if e == nil {
		t.Fatal("error expected, got success")
	}
	if ee := e.(*lark.Error); ee.Code != TemplateDepthError {
		t.Fatalf("expecting error code %d, got %d (%s)", TemplateDepthError, ee.Code, ee.Error())
	}

	if _, e = Parse(source.New("sample", []byte(src)), nil); e != nil {
		t.Fatalf("unexpected error with default depth: %s", e.Error())
	}
}
