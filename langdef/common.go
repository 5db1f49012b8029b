package langdef

// commonGrammar is the fragment served by BuiltinProvider under the
// "common" path: the widely shared terminals most grammars start from.
const commonGrammar = `
// basic numbers

DIGIT: "0".."9"
HEXDIGIT: "a".."f" | "A".."F" | DIGIT

INT: DIGIT+
SIGNED_INT: ["+" | "-"] INT
DECIMAL: INT "." INT? | "." INT

_EXP: ("e" | "E") SIGNED_INT
FLOAT: INT _EXP | DECIMAL _EXP?
SIGNED_FLOAT: ["+" | "-"] FLOAT

NUMBER: FLOAT | INT
SIGNED_NUMBER: ["+" | "-"] NUMBER

// letters and words

UCASE_LETTER: "A".."Z"
LCASE_LETTER: "a".."z"
LETTER: UCASE_LETTER | LCASE_LETTER
WORD: LETTER+

CNAME: ("_" | LETTER) ("_" | LETTER | DIGIT)*

// strings and comments

ESCAPED_STRING: /"(?:\\.|[^"\\])*"/
SH_COMMENT: /#[^\n]*/
CPP_COMMENT: /\/\/[^\n]*/

// whitespace

WS_INLINE: (" " | /\t/)+
WS: /\s+/

CR: /\r/
LF: /\n/
NEWLINE: (CR? LF)+
`
