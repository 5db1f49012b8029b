package langdef

import (
	"sort"

	"github.com/TMiguelT/lark/grammar"
)

// normalize validates the parsed definitions and assembles the final model.
func normalize(res *parseResult, opts *Options) (*grammar.Grammar, error) {
	e := checkTokenBodies(res)
	e = checkAliases(res, e)
	e = checkSymbols(res, e)
	e = checkStart(res, opts, e)
	if e != nil {
		return nil, e
	}
	return buildGrammar(res, opts), nil
}

// checkTokenBodies rejects rule references and result aliases inside token
// definitions; a token must reduce to a plain pattern.
func checkTokenBodies(res *parseResult) error {
	for _, t := range res.tokens {
		if t.Body == nil {
			continue
		}

		if e := checkTokenExp(t.Name, t.Body); e != nil {
			return e
		}
	}
	return nil
}

func checkTokenExp(name string, exp *grammar.Expansion) error {
	for _, alias := range exp.Aliases {
		if alias.Label != "" {
			return tokenAliasError(name)
		}

		for _, item := range alias.Items {
			if e := checkTokenAtom(name, item.Atom); e != nil {
				return e
			}
		}
	}
	return nil
}

func checkTokenAtom(name string, a grammar.Atom) error {
	switch atom := a.(type) {
	case *grammar.Group:
		return checkTokenExp(name, atom.Exp)
	case *grammar.Maybe:
		return checkTokenExp(name, atom.Exp)
	case *grammar.Ref:
		if atom.Kind == grammar.RuleRef {
			return tokenRuleRefError(name, atom.Name)
		}
	}
	return nil
}

// checkAliases enforces the shape of -> labels: unique per rule and only on
// top-level alternatives, never inside groups or options.
func checkAliases(res *parseResult, e error) error {
	if e != nil {
		return e
	}

	for _, r := range res.rules {
		labels := map[string]bool{}
		for _, alias := range r.Body.Aliases {
			if alias.Label != "" {
				if labels[alias.Label] {
					return dupAliasError(r.Name, alias.Label)
				}
				labels[alias.Label] = true
			}

			for _, item := range alias.Items {
				if e := checkNestedAliases(r.Name, item.Atom); e != nil {
					return e
				}
			}
		}
	}

	for _, exp := range res.ignore {
		for _, alias := range exp.Aliases {
			for _, item := range alias.Items {
				if e := checkNestedAliases("%ignore", item.Atom); e != nil {
					return e
				}
			}
		}
	}
	return nil
}

func checkNestedAliases(name string, a grammar.Atom) error {
	var exp *grammar.Expansion
	switch atom := a.(type) {
	case *grammar.Group:
		exp = atom.Exp
	case *grammar.Maybe:
		exp = atom.Exp
	default:
		return nil
	}

	for _, alias := range exp.Aliases {
		if alias.Label != "" {
			return deepAliasError(name)
		}

		for _, item := range alias.Items {
			if e := checkNestedAliases(name, item.Atom); e != nil {
				return e
			}
		}
	}
	return nil
}

// checkSymbols reports every reference with no matching definition, all at
// once and in name order.
func checkSymbols(res *parseResult, e error) error {
	if e != nil {
		return e
	}

	refs := map[string]bool{}
	for _, r := range res.rules {
		collectRefs(r.Body, refs)
	}
	for _, t := range res.tokens {
		if t.Body != nil {
			collectRefs(t.Body, refs)
		}
	}
	for _, exp := range res.ignore {
		collectRefs(exp, refs)
	}

	var missing []string
	for name := range refs {
		if isTokenName(name) {
			if res.token(name) == nil {
				missing = append(missing, name)
			}
		} else if res.rule(name) == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)
	return undefinedSymbolsError(missing)
}

func checkStart(res *parseResult, opts *Options, e error) error {
	if e != nil {
		return e
	}

	if res.rule(opts.Start) == nil {
		return noStartRuleError(opts.Start)
	}
	return nil
}

func buildGrammar(res *parseResult, opts *Options) *grammar.Grammar {
	g := &grammar.Grammar{
		Tokens: make(map[string]*grammar.Token, len(res.tokens)),
		Rules:  make(map[string]*grammar.Rule, len(res.rules)),
		Ignore: res.ignore,
		Start:  opts.Start,
	}

	for _, t := range res.tokens {
		if t.Declared {
			g.Declared = append(g.Declared, t.Name)
		}
		collapseToken(t)
		g.Tokens[t.Name] = t
	}
	sort.Strings(g.Declared)

	for _, r := range res.rules {
		g.Rules[r.Name] = r
	}
	return g
}

// collapseToken folds a single-literal body into the token's pattern
// fields. Regexp flags Go's engine knows become an inline group, the i
// flag maps to Caseless. Compound bodies stay structured.
func collapseToken(t *grammar.Token) {
	if t.Body == nil || len(t.Body.Aliases) != 1 {
		return
	}
	alias := t.Body.Aliases[0]
	if len(alias.Items) != 1 || alias.Items[0].Quant != grammar.NoQuant {
		return
	}
	lit, is := alias.Items[0].Atom.(*grammar.Literal)
	if !is {
		return
	}

	t.Pattern = lit.Text
	t.IsRegexp = lit.IsRegexp
	t.Caseless = lit.Caseless

	if lit.IsRegexp {
		inline := ""
		for _, f := range lit.Flags {
			switch f {
			case 'i':
				t.Caseless = true
			case 'm', 's':
				inline += string(f)
			}
		}
		if inline != "" {
			t.Pattern = "(?" + inline + ")" + t.Pattern
		}
	}
	t.Body = nil
}
