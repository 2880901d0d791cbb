package lexer

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // index in []rune of the original string
	End      int    // exclusive end index
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Text  string // exact runes from source
	Value string // decoded value (for strings/chars), same as Text otherwise
	Span  Span   // source location information
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals. Classification is purely lexical: an
	// identifier whose first rune is uppercase names a constructor or
	// type; all other identifiers are term variables.
	LOWER_IDENT TokenType = "LOWER_IDENT" // add, xs, _
	UPPER_IDENT TokenType = "UPPER_IDENT" // Some, State, Circle
	INT         TokenType = "INT"         // 42, 0xFF, 0b1010
	FLOAT       TokenType = "FLOAT"       // 3.14, 1e9
	STRING      TokenType = "STRING"      // "hello"
	CHAR        TokenType = "CHAR"        // 'a'

	// OP is any operator symbol that is not one of the reserved
	// punctuation tokens below; Text carries the spelling (==, ++, ...).
	OP TokenType = "OP"

	// Reserved punctuation
	ASSIGN   TokenType = "="
	BIND     TokenType = "=!"
	ARROW    TokenType = "->"
	FATARROW TokenType = "=>"
	COLON    TokenType = ":"
	COMMA    TokenType = ","
	PIPE     TokenType = "|"
	DOT      TokenType = "."
	AT       TokenType = "@"

	// Statement separators. NEWLINE is emitted only while the lexer's
	// delimiter context is newline-significant; SEMICOLON is always
	// emitted and is interchangeable with NEWLINE in the grammar.
	NEWLINE   TokenType = "NEWLINE"
	SEMICOLON TokenType = ";"

	// Delimiters
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	IF        TokenType = "IF"
	ELSE      TokenType = "ELSE"
	CASE      TokenType = "CASE"
	DATA      TokenType = "DATA"
	EFFECT    TokenType = "EFFECT"
	TYPECLASS TokenType = "TYPECLASS"
	INSTANCE  TokenType = "INSTANCE"
	FOR       TokenType = "FOR"
	IN        TokenType = "IN"
	MODULE    TokenType = "MODULE"

	// Trivia tokens (comments, whitespace); emitted only in trivia mode
	LINE_COMMENT  TokenType = "LINE_COMMENT"  // # ...
	BLOCK_COMMENT TokenType = "BLOCK_COMMENT" // ### ... ###
	WHITESPACE    TokenType = "WHITESPACE"    // spaces, tabs
)

var keywords = map[string]TokenType{
	"if":        IF,
	"else":      ELSE,
	"case":      CASE,
	"data":      DATA,
	"effect":    EFFECT,
	"typeclass": TYPECLASS,
	"instance":  INSTANCE,
	"for":       FOR,
	"in":        IN,
	"module":    MODULE,
}

// LookupIdent returns the keyword token type for ident, or LOWER_IDENT.
// Keywords are all lowercase, so uppercase identifiers never consult this.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return LOWER_IDENT
}

// IsSeparator reports whether tt separates statements.
func IsSeparator(tt TokenType) bool {
	return tt == NEWLINE || tt == SEMICOLON
}
