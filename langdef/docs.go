/*
Package langdef compiles textual grammar definitions into grammar models.

A grammar definition is a list of rule definitions, token definitions, and
%-statements, one per line (an alternative starting a new line continues the
previous definition). Comments run from // or # to the end of the line.

Rule names are written in lower case (leading underscores allowed), token
names in upper case with an optional leading underscore:

	expr: term (PLUS term)*
	PLUS: "+"

A name may carry modifiers: ?rule marks the rule for inlining when it has a
single child, !rule keeps all of its tokens in the output tree. A leading
underscore (part of the name proper) marks a helper that always disappears
from result trees.

A definition body is a list of alternatives separated by |. Each alternative
is a sequence of items:

	"text" or "text"i   literal text, i makes matching case-insensitive
	/pattern/flags      regular expression
	"a".."z"            inclusive character range
	name, NAME          reference to a rule or token
	(items)             group
	[items]             optional group

Any item may be followed by a quantifier: * (zero or more), + (one or more),
? (zero or one), or ~ n and ~ n..m for exact and bounded repetition. An
alternative may end with -> label to name the branch in result trees.

Rules and tokens take an optional dotted priority after the name:

	IDENT.2: /[a-z]\w+/

Rules may be parametrized. A template is instantiated by calling it with
value arguments; each distinct argument list produces one specialized rule:

	pair{x, sep}: x (sep x)*
	list: pair{NUMBER, ","}

Statements start with %:

	%ignore WS                   skip matches between tokens
	%declare INDENT DEDENT       declare externally produced tokens
	%import common.WS            import a symbol from another grammar
	%import common.WS -> SPACE   same, renamed
	%import common (WS, INT)     import several symbols
	%override rule: ...          replace an imported definition
	%extend rule: ...            add alternatives to a definition

Imports pull in everything the named symbols refer to, keeping original
names. Fragment paths are dot-separated and resolved by a FragmentProvider;
a leading dot marks a path relative to the importing grammar. The bundled
"common" fragment collects widely used terminals (numbers, words, strings,
whitespace).
*/
package langdef
