package langdef

import (
	"errors"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/TMiguelT/lark/grammar"
	"github.com/TMiguelT/lark/lexer"
	"github.com/TMiguelT/lark/source"
)

// FragmentProvider locates external grammar fragments referenced by
// %import statements. A path is dot-separated ("common", "grammars.json");
// a leading dot marks a path relative to the importing grammar.
type FragmentProvider interface {
	Locate(path string) ([]byte, error)
}

// MapProvider serves fragments from an in-memory map of path to grammar text.
type MapProvider map[string]string

func (m MapProvider) Locate(path string) ([]byte, error) {
	text, has := m[path]
	if !has {
		return nil, errors.New("unknown fragment " + strconv.Quote(path))
	}
	return []byte(text), nil
}

// ChainProvider tries each provider in order and returns the first hit.
type ChainProvider []FragmentProvider

func (c ChainProvider) Locate(path string) (content []byte, e error) {
	e = errors.New("unknown fragment " + strconv.Quote(path))
	for _, p := range c {
		content, e = p.Locate(path)
		if e == nil {
			return content, nil
		}
	}
	return nil, e
}

// BuiltinProvider serves the fragments bundled with the library.
func BuiltinProvider() FragmentProvider {
	return MapProvider{"common": commonGrammar}
}

// resolveFragment compiles the named fragment (once; results are cached per
// compilation) and returns its symbol set. Fragment templates are expanded
// and its %ignore statements stay local, but imported symbols keep their
// own transitive imports.
func (st *compileState) resolveFragment(path string) (*parseResult, error) {
	frag, has := st.fragments[path]
	if has {
		return frag, nil
	}

	for _, p := range st.chain {
		if p == path {
			return nil, importCycleError(st.chain, path)
		}
	}
	if len(st.chain) >= st.opts.MaxImportDepth {
		return nil, importDepthError(path, st.opts.MaxImportDepth)
	}

	content, e := st.opts.Provider.Locate(path)
	if e != nil {
		return nil, importNotFoundError(path, e)
	}

	st.chain = append(st.chain, path)
	frag, e = st.compile(source.New(path, content))
	st.chain = st.chain[:len(st.chain)-1]
	if e != nil {
		return nil, e
	}

	st.fragments[path] = frag
	return frag, nil
}

// isTokenName distinguishes the two namespaces by the case of the first
// letter after any leading underscores.
func isTokenName(name string) bool {
	i := 0
	for i < len(name) && name[i] == '_' {
		i++
	}
	return i < len(name) && name[i] >= 'A' && name[i] <= 'Z'
}

func importPath(rel bool, comps []string) string {
	path := strings.Join(comps, ".")
	if rel {
		path = "." + path
	}
	return path
}

// parseImport handles the three statement shapes:
//
//	%import path.SYMBOL
//	%import path.SYMBOL -> ALIAS
//	%import path (SYMBOL, other, ...)
func (c *parseContext) parseImport(dir *lexer.Token) error {
	rel := false
	t, e := c.fetchOne(dotTok, false, nil)
	if e != nil {
		return e
	}
	rel = t != nil

	var comps []string
	for {
		t, e = c.fetch([]string{ruleTok, tokenTok}, true, nil)
		if e != nil {
			return e
		}
		name := t.Text()
		if t.TypeName() == ruleTok {
			name, e = plainRuleName(t)
			if e != nil {
				return e
			}
		}
		comps = append(comps, name)

		t, e = c.fetchOne(dotTok, false, nil)
		if e != nil {
			return e
		}
		if t == nil {
			break
		}
	}

	ends := append([]string{arrowTok, lBraceTok, nlTok}, eofTokNames...)
	t, e = c.fetch(ends, true, nil)
	if e != nil {
		return e
	}

	switch t.Text() {
	case arrowTok:
		if len(comps) < 2 {
			return unexpectedTokenError(t, []string{dotTok})
		}
		target, e := c.fetch([]string{ruleTok, tokenTok}, true, nil)
		if e != nil {
			return e
		}
		targetName := target.Text()
		if target.TypeName() == ruleTok {
			targetName, e = plainRuleName(target)
			if e != nil {
				return e
			}
		}
		e = c.endStatement(nil)
		if e != nil {
			return e
		}
		sym := comps[len(comps)-1]
		return c.importSymbols(importPath(rel, comps[:len(comps)-1]), map[string]string{sym: targetName})

	case lBraceTok:
		names := map[string]string{}
		for {
			nt, e := c.fetch([]string{ruleTok, tokenTok}, true, nil)
			if e != nil {
				return e
			}
			name := nt.Text()
			if nt.TypeName() == ruleTok {
				name, e = plainRuleName(nt)
				if e != nil {
					return e
				}
			}
			names[name] = name

			st, e := c.fetch([]string{commaTok, rBraceTok}, true, nil)
			if e != nil {
				return e
			}
			if st.Text() == rBraceTok {
				break
			}
		}
		e = c.endStatement(nil)
		if e != nil {
			return e
		}
		return c.importSymbols(importPath(rel, comps), names)

	default:
		if len(comps) < 2 {
			return unexpectedTokenError(t, []string{dotTok, arrowTok, lBraceTok})
		}
		sym := comps[len(comps)-1]
		return c.importSymbols(importPath(rel, comps[:len(comps)-1]), map[string]string{sym: sym})
	}
}

// importSymbols merges the named fragment symbols (keys are fragment names,
// values the names they get in the importing grammar) together with the
// transitive closure of their references, which keep their original names.
func (c *parseContext) importSymbols(path string, names map[string]string) error {
	frag, e := c.st.resolveFragment(path)
	if e != nil {
		return e
	}

	roots := make([]string, 0, len(names))
	for orig := range names {
		roots = append(roots, orig)
	}
	sort.Strings(roots)

	for _, orig := range roots {
		e = c.mergeSymbol(frag, path, orig, names[orig])
		if e != nil {
			return e
		}
	}
	return nil
}

func (c *parseContext) mergeSymbol(frag *parseResult, path, orig, target string) error {
	seen := map[string]bool{orig: true}

	if tok := frag.token(orig); tok != nil {
		if !isTokenName(target) {
			return importKindError(path, orig, target)
		}
		if e := c.mergeToken(path, tok, orig, target); e != nil {
			return e
		}
		if tok.Body == nil {
			return nil
		}
		return c.mergeDeps(frag, path, tok.Body, seen)
	}

	rule := frag.rule(orig)
	if rule == nil {
		rule = frag.templates[orig]
	}
	if rule == nil {
		return importSymbolError(path, orig)
	}
	if isTokenName(target) {
		return importKindError(path, orig, target)
	}
	if e := c.mergeRule(path, rule, orig, target); e != nil {
		return e
	}
	return c.mergeDeps(frag, path, rule.Body, seen)
}

// mergeDeps pulls in everything an imported definition refers to. Identical
// re-imports are no-ops; a dependency colliding with a different local
// definition is an error.
func (c *parseContext) mergeDeps(frag *parseResult, path string, exp *grammar.Expansion, seen map[string]bool) error {
	refs := map[string]bool{}
	collectRefs(exp, refs)

	names := make([]string, 0, len(refs))
	for n := range refs {
		if !seen[n] {
			names = append(names, n)
		}
	}
	sort.Strings(names)

	for _, n := range names {
		seen[n] = true

		if tok := frag.token(n); tok != nil {
			if e := c.mergeToken(path, tok, n, n); e != nil {
				return e
			}
			if tok.Body != nil {
				if e := c.mergeDeps(frag, path, tok.Body, seen); e != nil {
					return e
				}
			}
			continue
		}

		rule := frag.rule(n)
		if rule == nil {
			rule = frag.templates[n]
		}
		if rule == nil {
			// missing in the fragment too; reported by the
			// undefined-symbol check with the rest
			continue
		}
		if e := c.mergeRule(path, rule, n, n); e != nil {
			return e
		}
		if e := c.mergeDeps(frag, path, rule.Body, seen); e != nil {
			return e
		}
	}
	return nil
}

func (c *parseContext) mergeToken(path string, t *grammar.Token, orig, name string) error {
	probe := t.Clone()
	probe.Name = name
	if orig != name && probe.Body != nil {
		renameRefs(probe.Body, orig, name)
	}

	existing := c.res.token(name)
	if existing == nil {
		c.res.addToken(probe)
		return nil
	}
	if reflect.DeepEqual(existing, probe) {
		return nil
	}
	return importShadowError(path, name)
}

func (c *parseContext) mergeRule(path string, r *grammar.Rule, orig, name string) error {
	probe := r.Clone()
	probe.Name = name
	// a renamed recursive definition must refer to itself by its new name
	if orig != name {
		renameRefs(probe.Body, orig, name)
	}

	existing := c.res.rule(name)
	if existing == nil {
		c.res.addRule(probe)
		return nil
	}
	if reflect.DeepEqual(existing, probe) {
		return nil
	}
	return importShadowError(path, name)
}

// renameRefs rewrites references to one name into another, in place.
func renameRefs(exp *grammar.Expansion, from, to string) {
	for _, alias := range exp.Aliases {
		for _, item := range alias.Items {
			renameAtomRefs(item.Atom, from, to)
		}
	}
}

func renameAtomRefs(a grammar.Atom, from, to string) {
	switch atom := a.(type) {
	case *grammar.Group:
		renameRefs(atom.Exp, from, to)
	case *grammar.Maybe:
		renameRefs(atom.Exp, from, to)
	case *grammar.Ref:
		if atom.Kind != grammar.ParamRef && atom.Name == from {
			atom.Name = to
		}
	case *grammar.Call:
		if atom.Name == from {
			atom.Name = to
		}
		for _, arg := range atom.Args {
			renameAtomRefs(arg, from, to)
		}
	}
}

// collectRefs gathers the names of rules, tokens, and templates referenced
// by an expansion. Template parameters are bound names, not references.
func collectRefs(exp *grammar.Expansion, out map[string]bool) {
	for _, alias := range exp.Aliases {
		for _, item := range alias.Items {
			collectAtomRefs(item.Atom, out)
		}
	}
}

func collectAtomRefs(a grammar.Atom, out map[string]bool) {
	switch atom := a.(type) {
	case *grammar.Group:
		collectRefs(atom.Exp, out)
	case *grammar.Maybe:
		collectRefs(atom.Exp, out)
	case *grammar.Ref:
		if atom.Kind != grammar.ParamRef {
			out[atom.Name] = true
		}
	case *grammar.Call:
		out[atom.Name] = true
		for _, arg := range atom.Args {
			collectAtomRefs(arg, out)
		}
	}
}
