// Package grammar defines the normalized grammar model emitted by the langdef compiler
// and consumed by parser-construction backends.
package grammar

// RefKind tells what kind of symbol a Ref names.
type RefKind int

const (
	// RuleRef names a rule (lowercase convention).
	RuleRef RefKind = iota

	// TokenRef names a token (uppercase convention).
	TokenRef

	// ParamRef names a formal template parameter. References of this kind
	// exist only inside template bodies and never survive expansion.
	ParamRef
)

// Quant is a repetition marker attached to an Expr.
type Quant int

const (
	// NoQuant means the atom is matched exactly once.
	NoQuant Quant = iota

	// ZeroOrMore is the * quantifier.
	ZeroOrMore

	// OneOrMore is the + quantifier.
	OneOrMore

	// ZeroOrOne is the ? quantifier.
	ZeroOrOne

	// Repeat is the bounded form, ~ N or ~ N..M; bounds are in Expr.Min and Expr.Max.
	Repeat
)

// Token is a named lexical category.
// A token defined by a single literal carries it in Pattern;
// richer definitions (alternations, sequences, references to other tokens)
// keep the parsed Body and leave Pattern empty.
type Token struct {
	Name string

	// Pattern is the literal or regular expression defining the token,
	// filled when Body collapses to a single literal.
	Pattern  string
	IsRegexp bool

	// Caseless marks case-insensitive tokens ("..."i literals).
	Caseless bool

	// Priority is used by backends for match tie-breaking, 0 if not set.
	Priority int

	// Declared marks tokens registered by %declare: no body, supplied out of band.
	Declared bool

	Body *Expansion
}

// Rule is a named production. Until template expansion a rule may carry
// formal parameters; the final model contains only parameter-free rules.
type Rule struct {
	Name   string
	Params []string

	// Priority is used by backends for ambiguity tie-breaking, 0 if not set.
	Priority int

	// Inline marks rules defined with a leading ? modifier.
	Inline bool

	// KeepAllTokens marks rules defined with a leading ! modifier.
	KeepAllTokens bool

	Body *Expansion
}

// IsTemplate reports whether the rule is a parameterized template.
func (r *Rule) IsTemplate() bool {
	return len(r.Params) > 0
}

// Expansion is the body of a rule or token: an ordered set of alternatives.
type Expansion struct {
	Aliases []*Alias
}

// Alias is one alternative: a concatenation of exprs with an optional
// output label (-> name).
type Alias struct {
	Items []*Expr
	Label string
}

// Expr is an atom with an optional quantifier.
// Min and Max are meaningful only for Repeat; Max equals Min for the ~ N form.
type Expr struct {
	Atom     Atom
	Quant    Quant
	Min, Max int
}

// Atom is one variant of the value/atom production: a group, an optional
// group, a literal, a literal range, a symbol reference, or a template call.
type Atom interface {
	// CloneAtom returns a deep, structurally independent copy.
	CloneAtom() Atom

	atom()
}

// Group is a parenthesized expansion.
type Group struct {
	Exp *Expansion
}

// Maybe is a bracketed expansion, matched zero or one time.
type Maybe struct {
	Exp *Expansion
}

// Literal is a string or regexp literal.
type Literal struct {
	Text     string
	IsRegexp bool

	// Caseless is set for "..."i string literals.
	Caseless bool

	// Flags holds trailing regexp flags (subset of imslux).
	Flags string
}

// Range is an inclusive literal range, "a".."z". Both bounds are single characters.
type Range struct {
	Lo, Hi string
}

// Ref is a reference to a rule, token, or template parameter.
type Ref struct {
	Name string
	Kind RefKind
}

// Call is a template invocation, name{arg, ...}. Arguments are values and
// may themselves be template invocations. Calls never survive expansion.
type Call struct {
	Name string
	Args []Atom
}

func (*Group) atom()   {}
func (*Maybe) atom()   {}
func (*Literal) atom() {}
func (*Range) atom()   {}
func (*Ref) atom()     {}
func (*Call) atom()    {}

// Grammar is the finished model: concrete rules and tokens only, no templates,
// no unresolved imports. Treat it as immutable.
type Grammar struct {
	Tokens map[string]*Token
	Rules  map[string]*Rule

	// Ignore lists expansions over tokens to be skipped silently by the backend lexer.
	Ignore []*Expansion

	// Declared lists token names registered by %declare, sorted.
	Declared []string

	// Start is the name of the start rule.
	Start string
}

// Clone returns a deep copy of the expansion. e may be nil.
func (e *Expansion) Clone() *Expansion {
	if e == nil {
		return nil
	}
	res := &Expansion{Aliases: make([]*Alias, len(e.Aliases))}
	for i, a := range e.Aliases {
		res.Aliases[i] = a.Clone()
	}
	return res
}

// Clone returns a deep copy of the alternative.
func (a *Alias) Clone() *Alias {
	res := &Alias{Items: make([]*Expr, len(a.Items)), Label: a.Label}
	for i, x := range a.Items {
		res.Items[i] = x.Clone()
	}
	return res
}

// Clone returns a deep copy of the expr.
func (x *Expr) Clone() *Expr {
	return &Expr{Atom: x.Atom.CloneAtom(), Quant: x.Quant, Min: x.Min, Max: x.Max}
}

func (g *Group) CloneAtom() Atom {
	return &Group{Exp: g.Exp.Clone()}
}

func (m *Maybe) CloneAtom() Atom {
	return &Maybe{Exp: m.Exp.Clone()}
}

func (l *Literal) CloneAtom() Atom {
	c := *l
	return &c
}

func (r *Range) CloneAtom() Atom {
	c := *r
	return &c
}

func (r *Ref) CloneAtom() Atom {
	c := *r
	return &c
}

func (c *Call) CloneAtom() Atom {
	res := &Call{Name: c.Name, Args: make([]Atom, len(c.Args))}
	for i, a := range c.Args {
		res.Args[i] = a.CloneAtom()
	}
	return res
}

// Clone returns a deep copy of the rule.
func (r *Rule) Clone() *Rule {
	res := *r
	res.Params = append([]string(nil), r.Params...)
	res.Body = r.Body.Clone()
	return &res
}

// Clone returns a deep copy of the token.
func (t *Token) Clone() *Token {
	res := *t
	res.Body = t.Body.Clone()
	return &res
}
