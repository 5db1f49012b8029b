package main

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/TMiguelT/lark/grammar"
)

// writeGo renders a grammar as a Go source file holding one composite
// literal. Map keys come out sorted so regenerated files diff cleanly.
func writeGo(g *grammar.Grammar, packageName, varName string) []byte {
	w := &goWriter{}
	w.printf("// Code generated by larkc. DO NOT EDIT.\n\n")
	w.printf("package %s\n\n", packageName)
	w.printf("import \"github.com/TMiguelT/lark/grammar\"\n\n")
	w.printf("var %s = &grammar.Grammar{\n", varName)

	w.printf("\tTokens: map[string]*grammar.Token{\n")
	for _, name := range sortedKeys(g.Tokens) {
		w.printf("\t\t%q: ", name)
		w.writeToken(g.Tokens[name], 2)
		w.printf(",\n")
	}
	w.printf("\t},\n")

	w.printf("\tRules: map[string]*grammar.Rule{\n")
	for _, name := range sortedKeys(g.Rules) {
		w.printf("\t\t%q: ", name)
		w.writeRule(g.Rules[name], 2)
		w.printf(",\n")
	}
	w.printf("\t},\n")

	if len(g.Ignore) > 0 {
		w.printf("\tIgnore: []*grammar.Expansion{\n")
		for _, exp := range g.Ignore {
			w.printf("\t\t")
			w.writeExpansion(exp, 2)
			w.printf(",\n")
		}
		w.printf("\t},\n")
	}

	if len(g.Declared) > 0 {
		quoted := make([]string, len(g.Declared))
		for i, name := range g.Declared {
			quoted[i] = fmt.Sprintf("%q", name)
		}
		w.printf("\tDeclared: []string{%s},\n", strings.Join(quoted, ", "))
	}

	w.printf("\tStart: %q,\n", g.Start)
	w.printf("}\n")
	return w.Bytes()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type goWriter struct {
	bytes.Buffer
}

func (w *goWriter) printf(format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}

func (w *goWriter) indent(level int) {
	for i := 0; i < level; i++ {
		w.WriteByte('\t')
	}
}

func (w *goWriter) writeToken(t *grammar.Token, level int) {
	w.printf("{Name: %q", t.Name)
	if t.Pattern != "" {
		w.printf(", Pattern: %q", t.Pattern)
	}
	if t.IsRegexp {
		w.printf(", IsRegexp: true")
	}
	if t.Caseless {
		w.printf(", Caseless: true")
	}
	if t.Priority != 0 {
		w.printf(", Priority: %d", t.Priority)
	}
	if t.Declared {
		w.printf(", Declared: true")
	}
	if t.Body != nil {
		w.printf(", Body: ")
		w.writeExpansion(t.Body, level)
	}
	w.printf("}")
}

func (w *goWriter) writeRule(r *grammar.Rule, level int) {
	w.printf("{Name: %q", r.Name)
	if r.Priority != 0 {
		w.printf(", Priority: %d", r.Priority)
	}
	if r.Inline {
		w.printf(", Inline: true")
	}
	if r.KeepAllTokens {
		w.printf(", KeepAllTokens: true")
	}
	w.printf(", Body: ")
	w.writeExpansion(r.Body, level)
	w.printf("}")
}

func (w *goWriter) writeExpansion(exp *grammar.Expansion, level int) {
	w.printf("&grammar.Expansion{Aliases: []*grammar.Alias{\n")
	for _, alias := range exp.Aliases {
		w.indent(level + 1)
		w.printf("{Items: []*grammar.Expr{")
		for i, item := range alias.Items {
			if i > 0 {
				w.printf(", ")
			}
			w.writeExpr(item, level+1)
		}
		w.printf("}")
		if alias.Label != "" {
			w.printf(", Label: %q", alias.Label)
		}
		w.printf("},\n")
	}
	w.indent(level)
	w.printf("}}")
}

var quantNames = map[grammar.Quant]string{
	grammar.ZeroOrMore: "grammar.ZeroOrMore",
	grammar.OneOrMore:  "grammar.OneOrMore",
	grammar.ZeroOrOne:  "grammar.ZeroOrOne",
	grammar.Repeat:     "grammar.Repeat",
}

func (w *goWriter) writeExpr(x *grammar.Expr, level int) {
	w.printf("{Atom: ")
	w.writeAtom(x.Atom, level)
	if x.Quant != grammar.NoQuant {
		w.printf(", Quant: %s", quantNames[x.Quant])
	}
	if x.Quant == grammar.Repeat {
		w.printf(", Min: %d, Max: %d", x.Min, x.Max)
	}
	w.printf("}")
}

var refKindNames = map[grammar.RefKind]string{
	grammar.RuleRef:  "grammar.RuleRef",
	grammar.TokenRef: "grammar.TokenRef",
	grammar.ParamRef: "grammar.ParamRef",
}

func (w *goWriter) writeAtom(a grammar.Atom, level int) {
	switch atom := a.(type) {
	case *grammar.Group:
		w.printf("&grammar.Group{Exp: ")
		w.writeExpansion(atom.Exp, level)
		w.printf("}")

	case *grammar.Maybe:
		w.printf("&grammar.Maybe{Exp: ")
		w.writeExpansion(atom.Exp, level)
		w.printf("}")

	case *grammar.Literal:
		w.printf("&grammar.Literal{Text: %q", atom.Text)
		if atom.IsRegexp {
			w.printf(", IsRegexp: true")
		}
		if atom.Caseless {
			w.printf(", Caseless: true")
		}
		if atom.Flags != "" {
			w.printf(", Flags: %q", atom.Flags)
		}
		w.printf("}")

	case *grammar.Range:
		w.printf("&grammar.Range{Lo: %q, Hi: %q}", atom.Lo, atom.Hi)

	case *grammar.Ref:
		w.printf("&grammar.Ref{Name: %q, Kind: %s}", atom.Name, refKindNames[atom.Kind])

	default:
		// Call and ParamRef atoms never survive compilation
		w.printf("nil")
	}
}
