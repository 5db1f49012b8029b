package langdef

import (
	"bytes"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/TMiguelT/lark/grammar"
	"github.com/TMiguelT/lark/lexer"
	"github.com/TMiguelT/lark/source"
)

// Default values used by Options when fields are left zero:
const (
	DefaultStart            = "start"
	DefaultMaxTemplateDepth = 128
	DefaultMaxImportDepth   = 32
)

// Options tunes a single compilation. The zero value (and nil) works:
// start rule "start", bundled fragments only, default depth limits.
type Options struct {
	// Start is the name of the start rule. The rule must be defined
	// by the grammar; it is never inferred.
	Start string

	// Provider locates external grammar fragments referenced by %import
	// statements. Defaults to BuiltinProvider().
	Provider FragmentProvider

	// MaxTemplateDepth bounds recursive template instantiation.
	MaxTemplateDepth int

	// MaxImportDepth bounds nested fragment imports.
	MaxImportDepth int
}

func (o *Options) fill() *Options {
	res := Options{}
	if o != nil {
		res = *o
	}
	if res.Start == "" {
		res.Start = DefaultStart
	}
	if res.Provider == nil {
		res.Provider = BuiltinProvider()
	}
	if res.MaxTemplateDepth <= 0 {
		res.MaxTemplateDepth = DefaultMaxTemplateDepth
	}
	if res.MaxImportDepth <= 0 {
		res.MaxImportDepth = DefaultMaxImportDepth
	}
	return &res
}

// ParseString compiles grammar description and returns a grammar on success.
// Returns nil and lark.Error on error.
func ParseString(name, content string) (*grammar.Grammar, error) {
	return Parse(source.New(name, []byte(content)), nil)
}

// ParseBytes compiles grammar description and returns a grammar on success.
// Returns nil and lark.Error on error.
func ParseBytes(name string, content []byte) (*grammar.Grammar, error) {
	return Parse(source.New(name, content), nil)
}

// Parse compiles grammar description and returns a grammar on success.
// opts may be nil. Returns nil and lark.Error on error.
// Each call owns all of its state, so independent grammars may be
// compiled concurrently.
func Parse(s *source.Source, opts *Options) (*grammar.Grammar, error) {
	o := opts.fill()
	st := &compileState{opts: o, fragments: map[string]*parseResult{}}
	res, e := st.compile(s)
	if e != nil {
		return nil, e
	}
	return normalize(res, o)
}

// compileState is shared between the main document and recursively
// compiled fragments: the fragment cache and the active import chain.
type compileState struct {
	opts      *Options
	fragments map[string]*parseResult
	chain     []string
}

// compile runs the lexer, meta-parser, and template expander over one document.
// Import resolution happens during parsing and may recurse into compile again.
func (st *compileState) compile(s *source.Source) (*parseResult, error) {
	c := &parseContext{st: st, q: source.NewQueue(), res: newParseResult()}
	e := c.parse(s)
	if e != nil {
		return nil, e
	}
	e = expandTemplates(c.res, st.opts)
	if e != nil {
		return nil, e
	}
	return c.res, nil
}

// Token type names of the meta-grammar lexer:
const (
	orTok     = "or"
	nlTok     = "nl"
	stringTok = "string"
	regexpTok = "regexp"
	numberTok = "number"
	ruleTok   = "rule-name"
	tokenTok  = "token-name"
	dirTok    = "dir"
	opTok     = "op"
	wrongTok  = ""
)

const (
	colonTok   = ":"
	commaTok   = ","
	dotTok     = "."
	rangeTok   = ".."
	arrowTok   = "->"
	starTok    = "*"
	plusTok    = "+"
	questTok   = "?"
	tildeTok   = "~"
	lBraceTok  = "("
	rBraceTok  = ")"
	lSquareTok = "["
	rSquareTok = "]"
	lCurlyTok  = "{"
	rCurlyTok  = "}"
)

const (
	ignoreDir   = "%ignore"
	importDir   = "%import"
	declareDir  = "%declare"
	overrideDir = "%override"
	extendDir   = "%extend"
)

var metaLexer *lexer.Lexer

func init() {
	tokenTypes := []lexer.TokenType{
		{Type: 1, TypeName: orTok},
		{Type: 2, TypeName: nlTok},
		{Type: 3, TypeName: stringTok},
		{Type: 4, TypeName: regexpTok},
		{Type: 5, TypeName: numberTok},
		{Type: 6, TypeName: ruleTok},
		{Type: 7, TypeName: tokenTok},
		{Type: 8, TypeName: dirTok},
		{Type: 9, TypeName: opTok},
		{Type: lexer.ErrorTokenType, TypeName: wrongTok},
	}

	// Alternative order matters: comments swallow surrounding blank lines,
	// a line break followed by | folds into a single "or" token, and a ?
	// directly followed by a rule-shaped name lexes as part of the name
	// rather than as the optional quantifier.
	re := regexp.MustCompile(
		`^(?:[ \t\f]+|\s*(?:\/\/|#)[^\n]*|` +
			`((?:(?:[ \t]*\r?\n)+[ \t]*)?\|)|` +
			`((?:[ \t]*\r?\n)+[ \t]*)|` +
			`("(?:\\.|[^\\"\n])*"i?)|` +
			`(\/(?:\\.|[^\/\\\n])+\/[imslux]*)|` +
			`([+-]?[0-9]+)|` +
			`((?:[!?][!?]?)?_*[a-z][_a-z0-9]*)|` +
			`(_?[A-Z][_A-Z0-9]*)|` +
			`(%[a-z]+)|` +
			`(->|\.\.|[+*?~:.,(){}\[\]])|` +
			`(["\/].{0,10}))`)

	metaLexer = lexer.New(re, tokenTypes)
}

// parseResult is the working symbol set of one document: definitions in
// declaration order plus name indexes, and the collected %ignore expansions.
type parseResult struct {
	tokens []*grammar.Token
	rules  []*grammar.Rule
	tindex map[string]int
	rindex map[string]int
	ignore []*grammar.Expansion

	// templates holds parametrized rules extracted by the template
	// expander; they stay addressable by %import after expansion.
	templates map[string]*grammar.Rule
}

func newParseResult() *parseResult {
	return &parseResult{
		tindex:    map[string]int{},
		rindex:    map[string]int{},
		templates: map[string]*grammar.Rule{},
	}
}

func (r *parseResult) token(name string) *grammar.Token {
	i, has := r.tindex[name]
	if !has {
		return nil
	}
	return r.tokens[i]
}

func (r *parseResult) rule(name string) *grammar.Rule {
	i, has := r.rindex[name]
	if !has {
		return nil
	}
	return r.rules[i]
}

func (r *parseResult) addToken(t *grammar.Token) bool {
	if _, has := r.tindex[t.Name]; has {
		return false
	}
	r.tindex[t.Name] = len(r.tokens)
	r.tokens = append(r.tokens, t)
	return true
}

func (r *parseResult) addRule(rule *grammar.Rule) bool {
	if _, has := r.rindex[rule.Name]; has {
		return false
	}
	r.rindex[rule.Name] = len(r.rules)
	r.rules = append(r.rules, rule)
	return true
}

func (r *parseResult) replaceRule(rule *grammar.Rule) {
	r.rules[r.rindex[rule.Name]] = rule
}

func (r *parseResult) replaceToken(t *grammar.Token) {
	r.tokens[r.tindex[t.Name]] = t
}

type defMode int

const (
	defineMode defMode = iota
	overrideMode
	extendMode
)

type parseContext struct {
	st         *compileState
	q          *source.Queue
	savedToken *lexer.Token
	res        *parseResult
}

func (c *parseContext) put(t *lexer.Token) {
	if c.savedToken != nil {
		panic("cannot put " + t.TypeName() + " token: already put " + c.savedToken.TypeName())
	}

	c.savedToken = t
}

func isEof(t *lexer.Token) bool {
	tt := t.Type()
	return (tt == lexer.EofTokenType || tt == lexer.EoiTokenType)
}

var eofTokNames = []string{lexer.EofTokenName, lexer.EoiTokenName}

// fetch returns the next token if its type name or text matches one of types.
// In strict mode a mismatch is a syntax error; otherwise the token is put
// back and nil is returned. A non-nil e is passed through untouched, which
// lets callers chain fetches and check the error once.
func (c *parseContext) fetch(types []string, strict bool, e error) (*lexer.Token, error) {
	if e != nil {
		return nil, e
	}

	token := c.savedToken
	if token == nil {
		token, e = metaLexer.Next(c.q)
		if e != nil {
			return nil, e
		}
	} else {
		c.savedToken = nil
	}

	for _, typ := range types {
		if token.TypeName() == typ || token.Text() == typ {
			return token, nil
		}
	}

	if strict {
		if isEof(token) {
			return nil, eofError(token)
		}
		return nil, unexpectedTokenError(token, types)
	}

	c.put(token)
	return nil, nil
}

func (c *parseContext) fetchOne(typ string, strict bool, e error) (*lexer.Token, error) {
	return c.fetch([]string{typ}, strict, e)
}

func (c *parseContext) fetchAll(types []string, e error) ([]*lexer.Token, error) {
	if e != nil {
		return nil, e
	}

	result := make([]*lexer.Token, 0)
	for {
		t, e := c.fetch(types, false, nil)
		if e != nil {
			return nil, e
		}

		if t == nil {
			break
		}

		result = append(result, t)
	}

	return result, nil
}

func (c *parseContext) skip(types []string, e error) error {
	if e != nil {
		return e
	}

	_, e = c.fetch(types, true, nil)
	return e
}

func (c *parseContext) skipOne(typ string, e error) error {
	return c.skip([]string{typ}, e)
}

// endStatement consumes the line break (or end of input) terminating a
// top-level item.
func (c *parseContext) endStatement(e error) error {
	return c.skip(append([]string{nlTok}, eofTokNames...), e)
}

// parse consumes one grammar document: rule and token definitions and
// %-statements separated by line breaks.
func (c *parseContext) parse(s *source.Source) error {
	c.q.Append(s)

	heads := append([]string{ruleTok, tokenTok, dirTok, nlTok}, eofTokNames...)
	for {
		t, e := c.fetch(heads, true, nil)
		if e != nil {
			return e
		}

		switch {
		case isEof(t):
			return nil

		case t.TypeName() == nlTok:
			// blank line

		case t.TypeName() == ruleTok:
			e = c.parseRuleDef(t, defineMode)

		case t.TypeName() == tokenTok:
			e = c.parseTokenDef(t, defineMode)

		default:
			e = c.parseStatement(t)
		}
		if e != nil {
			return e
		}
	}
}

// splitModifiers strips leading ! and ? markers from a rule name.
// A leading _ stays part of the name.
func splitModifiers(raw string) (name string, inline, keepAll, ok bool) {
	name = raw
	for len(name) > 0 && (name[0] == '!' || name[0] == '?') {
		if name[0] == '!' {
			if keepAll {
				return "", false, false, false
			}
			keepAll = true
		} else {
			if inline {
				return "", false, false, false
			}
			inline = true
		}
		name = name[1:]
	}
	return name, inline, keepAll, len(name) > 0
}

// plainRuleName rejects rule-name tokens carrying ! or ? modifiers;
// references, parameters, labels, and import names must be plain.
func plainRuleName(t *lexer.Token) (string, error) {
	name := t.Text()
	if name[0] == '!' || name[0] == '?' {
		return "", modifierError(t, name)
	}
	return name, nil
}

func (c *parseContext) parseRuleDef(t *lexer.Token, mode defMode) error {
	name, inline, keepAll, ok := splitModifiers(t.Text())
	if !ok {
		return modifierError(t, t.Text())
	}
	if mode == defineMode && c.res.rule(name) != nil {
		return defRuleError(t, name)
	}

	params, e := c.parseRuleParams()
	priority, e := c.parsePriority(e)
	e = c.skipOne(colonTok, e)
	if e != nil {
		return e
	}

	paramSet := make(map[string]bool, len(params))
	for _, p := range params {
		paramSet[p] = true
	}

	body, e := c.parseExpansions(paramSet)
	e = c.endStatement(e)
	if e != nil {
		return e
	}

	rule := &grammar.Rule{
		Name:          name,
		Params:        params,
		Priority:      priority,
		Inline:        inline,
		KeepAllTokens: keepAll,
		Body:          body,
	}

	switch mode {
	case overrideMode:
		if c.res.rule(name) == nil {
			return overrideError(t, name)
		}
		c.res.replaceRule(rule)

	case extendMode:
		old := c.res.rule(name)
		if old == nil {
			return extendError(t, name)
		}
		// template extensions must repeat the formal parameters verbatim,
		// otherwise the new alternatives would bind to nothing
		if len(old.Params) != len(params) {
			return extendError(t, name)
		}
		for i, p := range old.Params {
			if params[i] != p {
				return extendError(t, name)
			}
		}
		old.Body.Aliases = append(old.Body.Aliases, body.Aliases...)

	default:
		c.res.addRule(rule)
	}
	return nil
}

func (c *parseContext) parseRuleParams() ([]string, error) {
	t, e := c.fetchOne(lCurlyTok, false, nil)
	if t == nil || e != nil {
		return nil, e
	}

	var params []string
	for {
		t, e = c.fetch([]string{ruleTok, tokenTok}, true, e)
		if e != nil {
			return nil, e
		}

		name := t.Text()
		if t.TypeName() == ruleTok {
			name, e = plainRuleName(t)
			if e != nil {
				return nil, e
			}
		}
		params = append(params, name)

		t, e = c.fetch([]string{commaTok, rCurlyTok}, true, nil)
		if e != nil {
			return nil, e
		}
		if t.Text() == rCurlyTok {
			return params, nil
		}
	}
}

func (c *parseContext) parsePriority(e error) (int, error) {
	t, e := c.fetchOne(dotTok, false, e)
	if t == nil || e != nil {
		return 0, e
	}

	t, e = c.fetchOne(numberTok, true, nil)
	if e != nil {
		return 0, e
	}
	return strconv.Atoi(t.Text())
}

func (c *parseContext) parseTokenDef(t *lexer.Token, mode defMode) error {
	name := t.Text()
	if mode == defineMode && c.res.token(name) != nil {
		return defTokenError(t, name)
	}

	priority, e := c.parsePriority(nil)
	e = c.skipOne(colonTok, e)
	if e != nil {
		return e
	}

	body, e := c.parseExpansions(nil)
	e = c.endStatement(e)
	if e != nil {
		return e
	}

	token := &grammar.Token{Name: name, Priority: priority, Body: body}

	switch mode {
	case overrideMode:
		if c.res.token(name) == nil {
			return overrideError(t, name)
		}
		c.res.replaceToken(token)

	case extendMode:
		old := c.res.token(name)
		if old == nil || old.Declared {
			return extendError(t, name)
		}
		old.Body.Aliases = append(old.Body.Aliases, body.Aliases...)

	default:
		c.res.addToken(token)
	}
	return nil
}

func (c *parseContext) parseStatement(t *lexer.Token) error {
	switch t.Text() {
	case ignoreDir:
		// an empty %ignore is a syntax error, so demand the first atom
		head, e := c.fetch(atomHeads, true, nil)
		if e != nil {
			return e
		}
		c.put(head)

		exp, e := c.parseExpansions(nil)
		e = c.endStatement(e)
		if e != nil {
			return e
		}
		c.res.ignore = append(c.res.ignore, exp)
		return nil

	case declareDir:
		tokens, e := c.fetchAll([]string{tokenTok, ruleTok}, nil)
		if e != nil {
			return e
		}
		if len(tokens) == 0 {
			_, e = c.fetchOne(tokenTok, true, nil)
			return e
		}
		for _, tok := range tokens {
			if tok.TypeName() == ruleTok {
				return declareError(tok)
			}
			if !c.res.addToken(&grammar.Token{Name: tok.Text(), Declared: true}) {
				return defTokenError(tok, tok.Text())
			}
		}
		return c.endStatement(nil)

	case importDir:
		return c.parseImport(t)

	case overrideDir, extendDir:
		mode := overrideMode
		if t.Text() == extendDir {
			mode = extendMode
		}
		def, e := c.fetch([]string{ruleTok, tokenTok}, true, nil)
		if e != nil {
			return e
		}
		if def.TypeName() == tokenTok {
			return c.parseTokenDef(def, mode)
		}
		return c.parseRuleDef(def, mode)

	default:
		return unknownDirectiveError(t)
	}
}

var atomHeads = []string{ruleTok, tokenTok, stringTok, regexpTok, lBraceTok, lSquareTok}
var valueHeads = []string{ruleTok, tokenTok, stringTok, regexpTok}

// parseExpansions parses a set of alternatives separated by | (possibly on
// continuation lines). params maps the formal template parameters visible
// in the body being parsed; references to them become ParamRef atoms.
func (c *parseContext) parseExpansions(params map[string]bool) (*grammar.Expansion, error) {
	exp := &grammar.Expansion{}
	for {
		alias, e := c.parseAlias(params)
		if e != nil {
			return nil, e
		}
		exp.Aliases = append(exp.Aliases, alias)

		t, e := c.fetchOne(orTok, false, nil)
		if t == nil {
			return exp, e
		}
	}
}

func (c *parseContext) parseAlias(params map[string]bool) (*grammar.Alias, error) {
	alias := &grammar.Alias{}
	for {
		t, e := c.fetch(atomHeads, false, nil)
		if e != nil {
			return nil, e
		}
		if t == nil {
			break
		}

		item, e := c.parseExpr(t, params)
		if e != nil {
			return nil, e
		}
		alias.Items = append(alias.Items, item)
	}

	t, e := c.fetchOne(arrowTok, false, nil)
	if t == nil || e != nil {
		return alias, e
	}

	t, e = c.fetchOne(ruleTok, true, nil)
	if e != nil {
		return nil, e
	}
	label, e := plainRuleName(t)
	if e != nil {
		return nil, e
	}
	alias.Label = label
	return alias, nil
}

func (c *parseContext) parseExpr(head *lexer.Token, params map[string]bool) (*grammar.Expr, error) {
	atom, e := c.parseAtom(head, params)
	if e != nil {
		return nil, e
	}

	expr := &grammar.Expr{Atom: atom}
	t, e := c.fetch([]string{starTok, plusTok, questTok, tildeTok}, false, nil)
	if t == nil || e != nil {
		return expr, e
	}

	switch t.Text() {
	case starTok:
		expr.Quant = grammar.ZeroOrMore
	case plusTok:
		expr.Quant = grammar.OneOrMore
	case questTok:
		expr.Quant = grammar.ZeroOrOne
	default:
		expr.Quant = grammar.Repeat
		n, e := c.fetchNumber()
		if e != nil {
			return nil, e
		}
		expr.Min, expr.Max = n, n

		t, e = c.fetchOne(rangeTok, false, nil)
		if e != nil {
			return nil, e
		}
		if t != nil {
			expr.Max, e = c.fetchNumber()
			if e != nil {
				return nil, e
			}
		}
	}
	return expr, nil
}

func (c *parseContext) fetchNumber() (int, error) {
	t, e := c.fetchOne(numberTok, true, nil)
	if e != nil {
		return 0, e
	}
	return strconv.Atoi(t.Text())
}

func (c *parseContext) parseAtom(head *lexer.Token, params map[string]bool) (grammar.Atom, error) {
	switch head.Text() {
	case lBraceTok:
		exp, e := c.parseExpansions(params)
		e = c.skipOne(rBraceTok, e)
		if e != nil {
			return nil, e
		}
		return &grammar.Group{Exp: exp}, nil

	case lSquareTok:
		exp, e := c.parseExpansions(params)
		e = c.skipOne(rSquareTok, e)
		if e != nil {
			return nil, e
		}
		return &grammar.Maybe{Exp: exp}, nil
	}

	return c.parseValue(head, params)
}

func (c *parseContext) parseValue(head *lexer.Token, params map[string]bool) (grammar.Atom, error) {
	switch head.TypeName() {
	case stringTok:
		text, caseless, e := unquoteString(head)
		if e != nil {
			return nil, e
		}

		t, e := c.fetchOne(rangeTok, false, nil)
		if t == nil || e != nil {
			return &grammar.Literal{Text: text, Caseless: caseless}, e
		}

		t, e = c.fetchOne(stringTok, true, nil)
		if e != nil {
			return nil, e
		}
		hi, hiCaseless, e := unquoteString(t)
		if e != nil {
			return nil, e
		}
		if caseless || hiCaseless ||
			utf8.RuneCountInString(text) != 1 || utf8.RuneCountInString(hi) != 1 || text > hi {
			return nil, badRangeError(t, text, hi)
		}
		return &grammar.Range{Lo: text, Hi: hi}, nil

	case regexpTok:
		body, flags, e := splitRegexp(head)
		if e != nil {
			return nil, e
		}
		return &grammar.Literal{Text: body, IsRegexp: true, Flags: flags}, nil

	case tokenTok:
		if params[head.Text()] {
			return &grammar.Ref{Name: head.Text(), Kind: grammar.ParamRef}, nil
		}
		return &grammar.Ref{Name: head.Text(), Kind: grammar.TokenRef}, nil

	default:
		name, e := plainRuleName(head)
		if e != nil {
			return nil, e
		}
		if params[name] {
			return &grammar.Ref{Name: name, Kind: grammar.ParamRef}, nil
		}

		t, e := c.fetchOne(lCurlyTok, false, nil)
		if t == nil || e != nil {
			return &grammar.Ref{Name: name, Kind: grammar.RuleRef}, e
		}
		return c.parseCall(name, params)
	}
}

// parseCall parses template arguments; the opening brace is already consumed.
func (c *parseContext) parseCall(name string, params map[string]bool) (grammar.Atom, error) {
	call := &grammar.Call{Name: name}
	for {
		head, e := c.fetch(valueHeads, true, nil)
		if e != nil {
			return nil, e
		}

		arg, e := c.parseValue(head, params)
		if e != nil {
			return nil, e
		}
		call.Args = append(call.Args, arg)

		t, e := c.fetch([]string{commaTok, rCurlyTok}, true, nil)
		if e != nil {
			return nil, e
		}
		if t.Text() == rCurlyTok {
			return call, nil
		}
	}
}

type escapeCharEntry struct {
	substitute, hexLen byte
}

var escapeCharMap = map[byte]escapeCharEntry{
	'\\': {'\\', 0},
	'"':  {'"', 0},
	'\'': {'\'', 0},
	'n':  {'\n', 0},
	'r':  {'\r', 0},
	't':  {'\t', 0},
	'x':  {0, 2},
	'u':  {0, 4},
	'U':  {0, 8},
}

// unquoteString strips the quotes and the optional trailing i flag from a
// string token and substitutes escape sequences.
func unquoteString(token *lexer.Token) (text string, caseless bool, err error) {
	content := token.Content()
	if content[len(content)-1] == 'i' {
		caseless = true
		content = content[:len(content)-1]
	}
	content = content[1 : len(content)-1]
	if len(content) == 0 {
		return "", false, emptyLiteralError(token)
	}
	if bytes.IndexByte(content, '\\') < 0 {
		return string(content), caseless, nil
	}

	var peekRune = func(content []byte, hexLen int) (rune, error) {
		if len(content) < hexLen+2 {
			return 0, invalidEscapeError(token, string(content))
		}

		codePoint, e := strconv.ParseUint(string(content[2:hexLen+2]), 16, 32)
		if e != nil {
			return 0, invalidEscapeError(token, string(content))
		}

		if !utf8.ValidRune(rune(codePoint)) {
			return 0, invalidRuneError(token, string(content[2:hexLen+2]))
		}
		return rune(codePoint), nil
	}

	result := make([]byte, 0, len(content))
	for {
		slashPos := bytes.IndexByte(content, '\\')
		if slashPos < 0 {
			result = append(result, content...)
			break
		}

		if slashPos > 0 {
			result = append(result, content[:slashPos]...)
			content = content[slashPos:]
		}

		letter := content[1]
		entry, valid := escapeCharMap[letter]
		if !valid {
			return "", false, invalidEscapeError(token, string(content[:2]))
		}

		if entry.hexLen == 0 {
			result = append(result, entry.substitute)
			content = content[2:]
		} else {
			r, e := peekRune(content, int(entry.hexLen))
			if e != nil {
				return "", false, e
			}

			result = utf8.AppendRune(result, r)
			content = content[int(entry.hexLen)+2:]
		}
	}

	return string(result), caseless, nil
}

// splitRegexp splits a regexp token into pattern body and trailing flags and
// checks that the pattern compiles (using the flags Go's engine understands).
func splitRegexp(token *lexer.Token) (body, flags string, err error) {
	content := token.Text()
	i := len(content) - 1
	for content[i] != '/' {
		i--
	}
	body = content[1:i]
	flags = content[i+1:]

	goFlags := ""
	for _, f := range flags {
		if f == 'i' || f == 'm' || f == 's' {
			goFlags += string(f)
		}
	}
	expr := body
	if goFlags != "" {
		expr = "(?" + goFlags + ")" + body
	}
	_, e := regexp.Compile(expr)
	if e != nil {
		return "", "", regexpError(token, e)
	}
	return body, flags, nil
}
