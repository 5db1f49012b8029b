package langdef

import (
	"strconv"
	"strings"

	"github.com/TMiguelT/lark/grammar"
	"github.com/TMiguelT/lark/internal/queue"
)

// expandTemplates replaces every template call in res with a reference to a
// synthesized rule holding the instantiated body. Parametrized rules move
// out of the rule list into res.templates; instantiations sharing a
// signature share one synthesized rule.
func expandTemplates(res *parseResult, opts *Options) error {
	rules := res.rules
	res.rules = nil
	res.rindex = map[string]int{}
	for _, r := range rules {
		if r.IsTemplate() {
			res.templates[r.Name] = r
		} else {
			res.addRule(r)
		}
	}

	x := &templateExpander{res: res, opts: opts, memo: map[string]string{}}

	work := queue.New[*grammar.Expansion]()
	for _, r := range res.rules {
		work.Append(r.Body)
	}
	for _, t := range res.tokens {
		if t.Body != nil {
			work.Append(t.Body)
		}
	}
	for _, exp := range res.ignore {
		work.Append(exp)
	}

	for !work.IsEmpty() {
		exp, _ := work.First()
		if e := x.walkExpansion(exp); e != nil {
			return e
		}
	}
	return nil
}

type templateExpander struct {
	res    *parseResult
	opts   *Options
	memo   map[string]string
	active []string
}

func (x *templateExpander) walkExpansion(exp *grammar.Expansion) error {
	for _, alias := range exp.Aliases {
		for _, item := range alias.Items {
			atom, e := x.walkAtom(item.Atom)
			if e != nil {
				return e
			}
			item.Atom = atom
		}
	}
	return nil
}

func (x *templateExpander) walkAtom(a grammar.Atom) (grammar.Atom, error) {
	switch atom := a.(type) {
	case *grammar.Group:
		return a, x.walkExpansion(atom.Exp)
	case *grammar.Maybe:
		return a, x.walkExpansion(atom.Exp)
	case *grammar.Call:
		return x.expandCall(atom)
	}
	return a, nil
}

func (x *templateExpander) expandCall(call *grammar.Call) (grammar.Atom, error) {
	for i, arg := range call.Args {
		atom, e := x.walkAtom(arg)
		if e != nil {
			return nil, e
		}
		call.Args[i] = atom
	}

	tpl := x.res.templates[call.Name]
	if tpl == nil {
		return nil, unknownTemplateError(call.Name)
	}
	if len(tpl.Params) != len(call.Args) {
		return nil, templateArityError(call.Name, len(tpl.Params), len(call.Args))
	}

	sig := callSignature(call)
	if name, done := x.memo[sig]; done {
		return &grammar.Ref{Name: name, Kind: grammar.RuleRef}, nil
	}

	for _, active := range x.active {
		if active == sig {
			return nil, templateRecursionError(x.active, sig)
		}
	}
	if len(x.active) >= x.opts.MaxTemplateDepth {
		return nil, templateDepthError(sig, x.opts.MaxTemplateDepth)
	}

	bind := make(map[string]grammar.Atom, len(tpl.Params))
	for i, p := range tpl.Params {
		bind[p] = call.Args[i]
	}
	body := tpl.Body.Clone()
	substExpansion(body, bind)

	x.active = append(x.active, sig)
	e := x.walkExpansion(body)
	x.active = x.active[:len(x.active)-1]
	if e != nil {
		return nil, e
	}

	name := "__" + call.Name + "_" + mangle(sig[strings.IndexByte(sig, '{'):])
	rule := &grammar.Rule{
		Name:          name,
		Priority:      tpl.Priority,
		Inline:        tpl.Inline,
		KeepAllTokens: tpl.KeepAllTokens,
		Body:          body,
	}
	if !x.res.addRule(rule) {
		return nil, dupDefinitionError(name)
	}
	x.memo[sig] = name

	return &grammar.Ref{Name: name, Kind: grammar.RuleRef}, nil
}

// callSignature builds a stable key for an instantiation. Call arguments
// are expanded before this point, so only value atoms remain.
func callSignature(call *grammar.Call) string {
	var sb strings.Builder
	sb.WriteString(call.Name)
	sb.WriteByte('{')
	for i, arg := range call.Args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(atomKey(arg))
	}
	sb.WriteByte('}')
	return sb.String()
}

func atomKey(a grammar.Atom) string {
	switch atom := a.(type) {
	case *grammar.Ref:
		return atom.Name
	case *grammar.Literal:
		key := strconv.Quote(atom.Text)
		if atom.IsRegexp {
			key = "/" + atom.Text + "/" + atom.Flags
		} else if atom.Caseless {
			key += "i"
		}
		return key
	case *grammar.Range:
		return strconv.Quote(atom.Lo) + ".." + strconv.Quote(atom.Hi)
	}
	return "?"
}

// mangle folds a signature into a rule name: word characters pass through,
// everything else (underscore included, to keep the mapping unambiguous)
// becomes a _XX hex pair.
func mangle(s string) string {
	const hex = "0123456789abcdef"
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
			sb.WriteByte(b)
		default:
			sb.WriteByte('_')
			sb.WriteByte(hex[b>>4])
			sb.WriteByte(hex[b&0x0f])
		}
	}
	return sb.String()
}

// substExpansion replaces template parameter references with bound argument
// atoms, in place.
func substExpansion(exp *grammar.Expansion, bind map[string]grammar.Atom) {
	for _, alias := range exp.Aliases {
		for _, item := range alias.Items {
			item.Atom = substAtom(item.Atom, bind)
		}
	}
}

func substAtom(a grammar.Atom, bind map[string]grammar.Atom) grammar.Atom {
	switch atom := a.(type) {
	case *grammar.Group:
		substExpansion(atom.Exp, bind)
	case *grammar.Maybe:
		substExpansion(atom.Exp, bind)
	case *grammar.Call:
		for i, arg := range atom.Args {
			atom.Args[i] = substAtom(arg, bind)
		}
	case *grammar.Ref:
		if atom.Kind == grammar.ParamRef {
			if bound, has := bind[atom.Name]; has {
				return bound.CloneAtom()
			}
		}
	}
	return a
}
