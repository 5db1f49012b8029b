package langdef

import (
	"testing"

	"github.com/TMiguelT/lark"
	"github.com/TMiguelT/lark/grammar"
	"github.com/TMiguelT/lark/source"
)

var numsFragment = MapProvider{
	"nums": "NUMBER: /\\d+/\nSIGN: \"+\" | \"-\"\nvalue: SIGN? NUMBER\n",
}

func parseWith (t *testing.T, provider FragmentProvider, src string) *grammar.Grammar {
	t.Helper()
	g, e := Parse(source.New("main", []byte(src)), &Options{Provider: provider})
	if e != nil {
		t.Fatalf("unexpected error: %s", e.Error())
	}
	return g
}

func checkImportError (t *testing.T, provider FragmentProvider, src string, code int) {
	t.Helper()
	_, e := Parse(source.New("main", []byte(src)), &Options{Provider: provider})
	if e == nil {
		t.Fatalf("error expected, got success")
	}
	ee, is := e.(*lark.Error)
	if !is {
		t.Fatalf("*lark.Error expected, got %q", e.Error())
	}
	if ee.Code != code {
		t.Fatalf("expecting error code %d, got %d (%s)", code, ee.Code, ee.Error())
	}
}

func TestImportSingle (t *testing.T) {
	g := parseWith(t, numsFragment, "%import nums.NUMBER\nstart: NUMBER\n")

	tok := g.Tokens["NUMBER"]
	if tok == nil || tok.Pattern != "\\d+" || !tok.IsRegexp {
		t.Fatalf("unexpected imported token: %+v", tok)
	}
	if _, has := g.Tokens["SIGN"]; has {
		t.Fatal("SIGN is not referenced by NUMBER and must not be imported")
	}
}

func TestImportClosure (t *testing.T) {
	g := parseWith(t, numsFragment, "%import nums.value\nstart: value\n")

	if _, has := g.Rules["value"]; !has {
		t.Fatal("expecting value to be imported")
	}
	for _, name := range []string{"NUMBER", "SIGN"} {
		if _, has := g.Tokens[name]; !has {
			t.Fatalf("expecting dependency %s to be imported under its own name", name)
		}
	}
}

func TestImportRename (t *testing.T) {
	g := parseWith(t, numsFragment, "%import nums.NUMBER -> INT\nstart: INT\n")

	if _, has := g.Tokens["NUMBER"]; has {
		t.Fatal("renamed import must not bring the original name")
	}
	tok := g.Tokens["INT"]
	if tok == nil || tok.Pattern != "\\d+" {
		t.Fatalf("unexpected renamed token: %+v", tok)
	}
}

func TestImportRenameRecursive (t *testing.T) {
	provider := MapProvider{
		"frag": "list: \"x\" list | \"x\"\n",
	}
	g := parseWith(t, provider, "%import frag.list -> mylist\nstart: mylist\n")

	if _, has := g.Rules["list"]; has {
		t.Fatal("renamed import must not bring the original name")
	}
	self := g.Rules["mylist"].Body.Aliases[0].Items[1].Atom.(*grammar.Ref)
	if self.Name != "mylist" || self.Kind != grammar.RuleRef {
		t.Fatalf("expecting the recursive reference renamed to mylist, got %+v", self)
	}
}

func TestImportMulti (t *testing.T) {
	g := parseWith(t, numsFragment, "%import nums (NUMBER, value)\nstart: value NUMBER\n")

	if _, has := g.Rules["value"]; !has {
		t.Fatal("expecting value to be imported")
	}
	if _, has := g.Tokens["NUMBER"]; !has {
		t.Fatal("expecting NUMBER to be imported")
	}
}

func TestImportIdempotent (t *testing.T) {
	g := parseWith(t, numsFragment, "%import nums.value\n%import nums.NUMBER\nstart: value NUMBER\n")
	if _, has := g.Tokens["NUMBER"]; !has {
		t.Fatal("expecting NUMBER after re-import")
	}
}

func TestImportIgnoreStaysLocal (t *testing.T) {
	provider := MapProvider{
		"ws": "WS: /\\s+/\nword: /\\w+/ WS?\n%ignore WS\n",
	}
	g := parseWith(t, provider, "%import ws.word\nstart: word\n")
	if len(g.Ignore) != 0 {
		t.Fatal("fragment %ignore statements must not leak into the importing grammar")
	}
}

func TestImportTemplate (t *testing.T) {
	provider := MapProvider{
		"lists": "separated{x, sep}: x (sep x)*\n",
	}
	g := parseWith(t, provider, "%import lists.separated\nstart: separated{NUMBER, \",\"}\nNUMBER: /\\d+/\n")

	if _, has := g.Rules["separated"]; has {
		t.Fatal("imported template must be expanded away")
	}
	found := false
	for name := range g.Rules {
		if name != "start" {
			found = true
		}
	}
	if !found {
		t.Fatal("expecting an instantiation of the imported template")
	}
}

func TestImportCommon (t *testing.T) {
	g := mustParse(t, "%import common.INT\n%import common.CNAME -> NAME\nstart: NAME \"=\" INT\n")

	if _, has := g.Tokens["INT"]; !has {
		t.Fatal("expecting INT from the bundled common fragment")
	}
	if _, has := g.Tokens["DIGIT"]; !has {
		t.Fatal("expecting INT to pull its DIGIT dependency")
	}
	if _, has := g.Tokens["NAME"]; !has {
		t.Fatal("expecting CNAME to be imported as NAME")
	}
	if _, has := g.Tokens["CNAME"]; has {
		t.Fatal("renamed import must not bring the original name")
	}
}

func TestImportNotFound (t *testing.T) {
	checkImportError(t, numsFragment, "%import nope.X\nstart: \"a\"\n", ImportNotFoundError)
}

func TestImportMissingSymbol (t *testing.T) {
	checkImportError(t, numsFragment, "%import nums.bogus\nstart: \"a\"\n", ImportSymbolError)
	checkImportError(t, numsFragment, "%import nums.BOGUS\nstart: \"a\"\n", ImportSymbolError)
}

func TestImportKindMismatch (t *testing.T) {
	checkImportError(t, numsFragment, "%import nums.NUMBER -> num\nstart: \"a\"\n", ImportSymbolError)
	checkImportError(t, numsFragment, "%import nums.value -> VALUE\nstart: \"a\"\n", ImportSymbolError)
}

func TestImportShadow (t *testing.T) {
	checkImportError(t, numsFragment,
		"NUMBER: \"n\"\n%import nums.NUMBER\nstart: NUMBER\n", ImportShadowError)
	checkImportError(t, numsFragment,
		"NUMBER: \"n\"\n%import nums.value\nstart: value\n", ImportShadowError)
}

func TestImportCycle (t *testing.T) {
	provider := MapProvider{
		"a": "%import b.B\nA: B \"a\"\n",
		"b": "%import a.A\nB: A \"b\"\n",
	}
	checkImportError(t, provider, "%import a.A\nstart: A\n", ImportCycleError)

	selfish := MapProvider{"s": "%import s.S\nS: \"s\"\n"}
	checkImportError(t, selfish, "%import s.S\nstart: S\n", ImportCycleError)
}

func TestImportDepth (t *testing.T) {
	provider := MapProvider{
		"d1": "%import d2.T2\nT1: T2 \"1\"\n",
		"d2": "%import d3.T3\nT2: T3 \"2\"\n",
		"d3": "T3: \"3\"\n",
	}

	_, e := Parse(source.New("main", []byte("%import d1.T1\nstart: T1\n")),
		&Options{Provider: provider, MaxImportDepth: 1})
	if e == nil {
		t.Fatal("error expected, got success")
	}
	if ee := e.(*lark.Error); ee.Code != ImportCycleError {
		t.Fatalf("expecting error code %d, got %d (%s)", ImportCycleError, ee.Code, ee.Error())
	}

	g := parseWith(t, provider, "%import d1.T1\nstart: T1\n")
	if _, has := g.Tokens["T3"]; !has {
		t.Fatal("expecting the transitive token chain to be imported")
	}
}

func TestChainProvider (t *testing.T) {
	provider := ChainProvider{
		MapProvider{"local": "X: \"x\"\n"},
		numsFragment,
	}
	g := parseWith(t, provider, "%import local.X\n%import nums.NUMBER\nstart: X NUMBER\n")
	if len(g.Tokens) != 2 {
		t.Fatalf("expecting 2 tokens, got %d", len(g.Tokens))
	}
}

func TestMapProviderMissing (t *testing.T) {
	_, e := MapProvider{}.Locate("anything")
	if e == nil {
		t.Fatal("error expected for an unknown fragment")
	}
}
