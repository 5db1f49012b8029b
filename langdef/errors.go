package langdef

import (
	"strings"

	"github.com/TMiguelT/lark"
	"github.com/TMiguelT/lark/lexer"
)

// Error codes used by langdef:
const (
	UnexpectedEofError = lark.LangDefErrors + iota
	UnexpectedTokenError
	TokenDefinedError
	RuleDefinedError
	UnknownDirectiveError
	WrongRegexpError
	InvalidEscapeError
	InvalidRuneError
	EmptyLiteralError
	BadRangeError
	AliasError
	DeclareError
	ModifierError
	TemplateArityError
	UnknownTemplateError
	TemplateRecursionError
	TemplateDepthError
	ImportNotFoundError
	ImportSymbolError
	ImportShadowError
	ImportCycleError
	OverrideError
	ExtendError
	UndefinedSymbolError
	DuplicateDefinitionError
	TokenRuleRefError
)

func eofError(token *lexer.Token) *lark.Error {
	return lark.FormatErrorPos(token, UnexpectedEofError, "unexpected EoF")
}

func unexpectedTokenError(token *lexer.Token, expected []string) *lark.Error {
	return lark.FormatErrorPos(token, UnexpectedTokenError,
		"unexpected %s token %q, expecting %s", token.TypeName(), token.Text(), strings.Join(expected, " or "))
}

func defTokenError(token *lexer.Token, name string) *lark.Error {
	return lark.FormatErrorPos(token, TokenDefinedError, "token %q already defined", name)
}

func defRuleError(token *lexer.Token, name string) *lark.Error {
	return lark.FormatErrorPos(token, RuleDefinedError, "rule %q already defined", name)
}

func unknownDirectiveError(token *lexer.Token) *lark.Error {
	return lark.FormatErrorPos(token, UnknownDirectiveError, "unknown directive %s", token.Text())
}

func regexpError(token *lexer.Token, e error) *lark.Error {
	return lark.FormatErrorPos(token, WrongRegexpError, "incorrect RegExp %s (%s)", token.Text(), e.Error())
}

func invalidEscapeError(token *lexer.Token, esc string) *lark.Error {
	return lark.FormatErrorPos(token, InvalidEscapeError, "invalid escape sequence %q", esc)
}

func invalidRuneError(token *lexer.Token, code string) *lark.Error {
	return lark.FormatErrorPos(token, InvalidRuneError, "invalid code point %q", code)
}

func emptyLiteralError(token *lexer.Token) *lark.Error {
	return lark.FormatErrorPos(token, EmptyLiteralError, "empty literals are not allowed")
}

func badRangeError(token *lexer.Token, lo, hi string) *lark.Error {
	return lark.FormatErrorPos(token, BadRangeError, "invalid literal range %q..%q", lo, hi)
}

func deepAliasError(name string) *lark.Error {
	return lark.FormatError(AliasError, "alias inside a nested group in %q", name)
}

func tokenAliasError(name string) *lark.Error {
	return lark.FormatError(AliasError, "alias in token %q", name)
}

func dupAliasError(name, label string) *lark.Error {
	return lark.FormatError(AliasError, "alias %q used twice in %q", label, name)
}

func declareError(token *lexer.Token) *lark.Error {
	return lark.FormatErrorPos(token, DeclareError, "%%declare expects token names, got %q", token.Text())
}

func modifierError(token *lexer.Token, name string) *lark.Error {
	return lark.FormatErrorPos(token, ModifierError, "invalid modifiers in rule name %q", name)
}

func templateArityError(name string, want, got int) *lark.Error {
	return lark.FormatError(TemplateArityError, "template %q expects %d argument(s), got %d", name, want, got)
}

func unknownTemplateError(name string) *lark.Error {
	return lark.FormatError(UnknownTemplateError, "template %q is not defined", name)
}

func templateRecursionError(chain []string, sig string) *lark.Error {
	return lark.FormatError(TemplateRecursionError,
		"non-terminating template recursion: %s", strings.Join(append(append([]string{}, chain...), sig), " -> "))
}

func templateDepthError(sig string, max int) *lark.Error {
	return lark.FormatError(TemplateDepthError, "template expansion of %s exceeds depth limit %d", sig, max)
}

func importNotFoundError(path string, cause error) *lark.Error {
	return lark.FormatError(ImportNotFoundError, "cannot locate fragment %q: %s", path, cause.Error())
}

func importSymbolError(path, name string) *lark.Error {
	return lark.FormatError(ImportSymbolError, "fragment %q has no symbol %q", path, name)
}

func importKindError(path, name, target string) *lark.Error {
	return lark.FormatError(ImportSymbolError, "cannot import %s from %q as %s: rule/token kind mismatch", name, path, target)
}

func importShadowError(path, name string) *lark.Error {
	return lark.FormatError(ImportShadowError, "import of %q from %q shadows a different definition of the same name", name, path)
}

func importCycleError(chain []string, path string) *lark.Error {
	return lark.FormatError(ImportCycleError,
		"import cycle: %s", strings.Join(append(append([]string{}, chain...), path), " -> "))
}

func importDepthError(path string, max int) *lark.Error {
	return lark.FormatError(ImportCycleError, "import of %q exceeds depth limit %d", path, max)
}

func overrideError(token *lexer.Token, name string) *lark.Error {
	return lark.FormatErrorPos(token, OverrideError, "cannot override %q: not defined", name)
}

func extendError(token *lexer.Token, name string) *lark.Error {
	return lark.FormatErrorPos(token, ExtendError, "cannot extend %q: not defined", name)
}

func undefinedSymbolsError(names []string) *lark.Error {
	return lark.FormatError(UndefinedSymbolError, "undefined symbols: %s", strings.Join(names, ", "))
}

func noStartRuleError(name string) *lark.Error {
	return lark.FormatError(UndefinedSymbolError, "start rule %q is not defined", name)
}

func dupDefinitionError(name string) *lark.Error {
	return lark.FormatError(DuplicateDefinitionError, "duplicate definition of %q after expansion and merge", name)
}

func tokenRuleRefError(token, ref string) *lark.Error {
	return lark.FormatError(TokenRuleRefError, "token %q references rule %q; rules are not allowed inside tokens", token, ref)
}
