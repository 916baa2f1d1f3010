// Package token defines the lexical token kinds produced by the scanner and
// consumed by the parser. Source positions are represented with the standard
// library's go/token package: a token.Pos is a 1-based byte offset into a
// token.FileSet-managed virtual file, which is exactly the byte-offset
// provenance every token needs, and FileSet.Position turns it into a
// line:col pair on demand for diagnostics.
package token

import gotoken "go/token"

// Pos and NoPos are re-exported so callers throughout the toolchain only
// ever import this package for position handling.
type Pos = gotoken.Pos

const NoPos = gotoken.NoPos

// Range is a half-open [Start, End) byte range used to anchor diagnostics
// and AST node spans.
type Range struct {
	Start, End Pos
}

// NameID identifies an interned identifier spelling. It is assigned by the
// scanner the first time a given spelling is seen and is stable for the
// rest of the scan. It is unrelated to the UIDs the type checker assigns to
// declarations: the same NameID may be used by many distinct declarations
// (e.g. a parameter named x in one function and a local named x in
// another), each of which gets its own checker.UID.
type NameID int32

// Reserved NameIDs for built-in functions and types. The scanner seeds its
// intern table with these before scanning any user source, so they always
// resolve to the same NameID regardless of which file mentions them first.
const (
	NamePrint NameID = iota
	NameFloat
	NameInt
	NameBool
	numReservedNames
)

// ReservedNames lists the spellings pre-interned at NamePrint..NameBool, in
// NameID order.
var ReservedNames = [numReservedNames]string{
	NamePrint: "print",
	NameFloat: "float",
	NameInt:   "int",
	NameBool:  "bool",
}

// Token is the kind of a lexical token.
type Token int8

//nolint:revive
const (
	ILLEGAL Token = iota
	UNKNOWN       // a single byte the lexer could not classify
	END           // end of input; emitted forever once reached

	// Tokens with values
	IDENT  // x
	INTEGER
	FLOAT

	// Indentation structure
	NEWLINE
	INDENT
	DEDENT
	UNKNOWN_DEDENT

	// Punctuation
	LPAREN
	RPAREN
	PLUS
	DASH
	DOT
	COMMA
	COLON
	EQUAL
	ARROW

	// Keywords
	PASS
	RETURN
	IF
	ELSE
	ELIF
	DEF
	WHILE
	BREAK
	NONE
	TRUE
	FALSE

	maxToken
)

func (tok Token) String() string {
	if tok < 0 || int(tok) >= len(tokenNames) || tokenNames[tok] == "" {
		return "invalid token"
	}
	return tokenNames[tok]
}

// GoString is like String but quotes punctuation tokens, for use in
// Sprintf("%#v", tok)-style diagnostic messages.
func (tok Token) GoString() string {
	if tok >= LPAREN && tok <= ARROW {
		return "'" + tokenNames[tok] + "'"
	}
	return tokenNames[tok]
}

var tokenNames = [...]string{
	ILLEGAL:        "illegal token",
	UNKNOWN:        "unknown byte",
	END:            "end of file",
	IDENT:          "identifier",
	INTEGER:        "integer literal",
	FLOAT:          "float literal",
	NEWLINE:        "newline",
	INDENT:         "indent",
	DEDENT:         "dedent",
	UNKNOWN_DEDENT: "mismatched dedent",
	LPAREN:         "(",
	RPAREN:         ")",
	PLUS:           "+",
	DASH:           "-",
	DOT:            ".",
	COMMA:          ",",
	COLON:          ":",
	EQUAL:          "=",
	ARROW:          "->",
	PASS:           "pass",
	RETURN:         "return",
	IF:             "if",
	ELSE:           "else",
	ELIF:           "elif",
	DEF:            "def",
	WHILE:          "while",
	BREAK:          "break",
	NONE:           "None",
	TRUE:           "True",
	FALSE:          "False",
}

var keywords = map[string]Token{
	"pass":   PASS,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
	"elif":   ELIF,
	"def":    DEF,
	"while":  WHILE,
	"break":  BREAK,
	"None":   NONE,
	"True":   TRUE,
	"False":  FALSE,
}

// LookupKw returns the keyword Token for lit, or IDENT if lit is not a
// keyword.
func LookupKw(lit string) Token {
	if tok, ok := keywords[lit]; ok {
		return tok
	}
	return IDENT
}

// Value carries the payload of a scanned token: its raw source text, its
// range, and (for tokens that have one) a decoded literal value. At most
// one of Int/Float/Name is meaningful, depending on the reported Token.
type Value struct {
	Raw   string
	Range Range

	Int   int64
	Float float64
	Name  NameID
}
