package lexer

import (
	"strconv"
	"unicode"

	"github.com/quill-lang/quill/internal/diag"
)

type LexerErrorKind int

const (
	ErrUnterminatedString LexerErrorKind = iota
	ErrUnterminatedChar
	ErrUnterminatedBlockComment
	ErrInvalidEscape
	ErrInvalidNumber
	ErrIllegalRune
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnterminatedString:
		return diag.CodeLexUnterminatedString
	case ErrUnterminatedChar:
		return diag.CodeLexUnterminatedChar
	case ErrUnterminatedBlockComment:
		return diag.CodeLexUnterminatedBlockComment
	case ErrInvalidEscape:
		return diag.CodeLexInvalidEscape
	case ErrInvalidNumber:
		return diag.CodeLexInvalidNumber
	case ErrIllegalRune:
		return diag.CodeLexIllegalRune
	default:
		return diag.Code("LEX_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
// All lexer errors are fatal for the containing source unit.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Lexer turns Quill source text into tokens. Statement separators are
// layout-free: a raw newline becomes a NEWLINE token only while the top of
// the open-delimiter stack is newline-significant (top level, '[' or '{'),
// never based on indentation. Inside '(' newlines are suppressed entirely.
type Lexer struct {
	input      []rune
	pos        int  // index of the current rune
	ch         rune // current rune (0 = EOF)
	line       int  // current line number (1-based)
	column     int  // current column number (1-based)
	emitTrivia bool // whether to emit trivia tokens (comments, whitespace)
	filename   string

	delims []rune // open-delimiter stack: '(', '[' or '{'

	Errors []LexerError
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// newLexer is the single internal constructor that sets up all lexer state
func newLexer(input string, emitTrivia bool) *Lexer {
	r := []rune(input)
	l := &Lexer{
		input:      r,
		pos:        -1, // start before first rune
		ch:         0,
		line:       1,
		column:     0, // will be 1 after first read()
		emitTrivia: emitTrivia,
	}
	l.read() // move to first character
	return l
}

// New creates a new lexer for the given input (trivia mode disabled)
func New(input string) *Lexer {
	return newLexer(input, false)
}

// NewWithTrivia creates a new lexer that emits trivia tokens. In trivia
// mode every newline produces a NEWLINE token regardless of context, so
// concatenating the Text of all tokens reconstructs the source exactly.
func NewWithTrivia(input string) *Lexer {
	return newLexer(input, true)
}

// SetFilename attributes all subsequently produced spans to name.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// read advances the lexer to the next character, maintaining the line and
// column so they always reflect the position of the character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1
	inputLen := len(l.input)

	if l.pos >= inputLen {
		if prevPos >= 0 && prevPos < inputLen {
			if l.input[prevPos] == '\n' {
				l.line++
				l.column = 1
			} else {
				l.column++
			}
		} else if prevPos < 0 {
			l.column = 1
		}
		l.ch = 0 // EOF
		return
	}

	l.ch = l.input[l.pos]

	if prevPos >= 0 && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	return l.peekAt(1)
}

// peekAt returns the character n runes ahead without advancing
func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// currentSpanStart returns the current position for span tracking
func (l *Lexer) currentSpanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

// makeToken creates a token with span information
func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos, endPos int, text, value string) Token {
	return Token{
		Type:  tokType,
		Text:  text,
		Value: value,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      endPos,
		},
	}
}

// newlineSignificant reports whether a raw newline acts as a statement
// separator in the current delimiter context. Significance is a pure
// function of the open-delimiter stack: only '(' suppresses newlines.
func (l *Lexer) newlineSignificant() bool {
	if len(l.delims) == 0 {
		return true
	}
	return l.delims[len(l.delims)-1] != '('
}

func (l *Lexer) pushDelim(d rune) {
	l.delims = append(l.delims, d)
}

func (l *Lexer) popDelim() {
	if len(l.delims) > 0 {
		l.delims = l.delims[:len(l.delims)-1]
	}
}

// scanNewline consumes one newline (\n or \r\n) and returns a NEWLINE
// token when the context makes it separator-significant, nil otherwise.
func (l *Lexer) scanNewline() *Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	text := string(l.ch)
	l.read()
	if text == "\r" && l.ch == '\n' {
		text = "\r\n"
		l.read()
	}
	if l.emitTrivia || l.newlineSignificant() {
		tok := l.makeToken(NEWLINE, startLine, startColumn, startPos, l.pos, text, text)
		return &tok
	}
	return nil
}

// skipSpaces skips spaces and tabs, returning a trivia token in trivia mode.
func (l *Lexer) skipSpaces() *Token {
	if l.ch != ' ' && l.ch != '\t' {
		return nil
	}
	startLine, startColumn, startPos := l.currentSpanStart()
	for l.ch == ' ' || l.ch == '\t' {
		l.read()
	}
	if l.emitTrivia {
		text := string(l.input[startPos:l.pos])
		tok := l.makeToken(WHITESPACE, startLine, startColumn, startPos, l.pos, text, text)
		return &tok
	}
	return nil
}

// scanComment consumes a comment starting at the current '#'. One or two
// '#' runes open a line comment running to end of line (the newline itself
// stays in the stream so the end-of-line separator is not suppressed).
// Exactly three '#' runes open a block comment closed by the next '###';
// block comments do not nest and their content, embedded '#' and newlines
// included, is fully discarded.
func (l *Lexer) scanComment() *Token {
	startLine, startColumn, startPos := l.currentSpanStart()

	hashes := 0
	for l.ch == '#' && hashes < 3 {
		hashes++
		l.read()
	}

	if hashes < 3 {
		// Line comment: read to line terminator or EOF without consuming it.
		for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
			l.read()
		}
		if l.emitTrivia {
			text := string(l.input[startPos:l.pos])
			tok := l.makeToken(LINE_COMMENT, startLine, startColumn, startPos, l.pos, text, text)
			return &tok
		}
		return nil
	}

	// Block comment: scan for the closing '###'.
	for {
		if l.ch == 0 {
			l.addError(
				ErrUnterminatedBlockComment,
				"unterminated block comment",
				Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			break
		}
		if l.ch == '#' && l.peek() == '#' && l.peekAt(2) == '#' {
			l.read()
			l.read()
			l.read()
			break
		}
		l.read()
	}

	if l.emitTrivia {
		text := string(l.input[startPos:l.pos])
		tok := l.makeToken(BLOCK_COMMENT, startLine, startColumn, startPos, l.pos, text, text)
		return &tok
	}
	return nil
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// readNumber reads a numeric literal (decimal, hex 0x..., binary 0b...,
// float with optional exponent). Malformed literals are recorded as
// ErrInvalidNumber.
func (l *Lexer) readNumber(startLine, startColumn, startPos int) (string, TokenType) {
	tokType := INT

	digits := func(valid func(rune) bool) int {
		n := 0
		for valid(l.ch) || l.ch == '_' {
			if l.ch != '_' {
				n++
			}
			l.read()
		}
		return n
	}

	invalid := func(msg string) {
		l.addError(ErrInvalidNumber, msg,
			Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos + 1})
	}

	if l.ch == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		l.read() // '0'
		l.read() // 'x'
		if digits(isHexDigit) == 0 {
			invalid("hexadecimal literal requires at least one digit")
		}
	} else if l.ch == '0' && (l.peek() == 'b' || l.peek() == 'B') {
		l.read() // '0'
		l.read() // 'b'
		if digits(func(r rune) bool { return r == '0' || r == '1' }) == 0 {
			invalid("binary literal requires at least one digit")
		}
	} else {
		digits(isDigit)

		if l.ch == '.' && isDigit(l.peek()) {
			tokType = FLOAT
			l.read() // '.'
			digits(isDigit)
		}

		if l.ch == 'e' || l.ch == 'E' {
			tokType = FLOAT
			l.read()
			if l.ch == '+' || l.ch == '-' {
				l.read()
			}
			if digits(isDigit) == 0 {
				invalid("exponent requires at least one digit")
			}
		}
	}

	if isLetter(l.ch) {
		invalid("unexpected " + strconv.QuoteRune(l.ch) + " in numeric literal")
		for isLetter(l.ch) || isDigit(l.ch) {
			l.read()
		}
	}

	return string(l.input[startPos:l.pos]), tokType
}

// isOpRune reports whether ch can appear in an operator symbol run.
func isOpRune(ch rune) bool {
	switch ch {
	case '+', '-', '*', '/', '<', '>', '=', '!', '&', '|', '%', '^', '~', '?':
		return true
	default:
		return false
	}
}

// readOperator reads a maximal operator symbol run and resolves the
// reserved spellings (=, =!, ->, =>, |) to their dedicated token types.
func (l *Lexer) readOperator() Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	for isOpRune(l.ch) {
		l.read()
	}
	text := string(l.input[startPos:l.pos])

	tokType := OP
	switch text {
	case "=":
		tokType = ASSIGN
	case "=!":
		tokType = BIND
	case "->":
		tokType = ARROW
	case "=>":
		tokType = FATARROW
	case "|":
		tokType = PIPE
	}

	return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, text, text)
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		if tok := l.skipSpaces(); tok != nil {
			return *tok
		}

		if l.ch == '\n' || l.ch == '\r' {
			if tok := l.scanNewline(); tok != nil {
				return *tok
			}
			continue
		}

		if l.ch == '#' {
			if tok := l.scanComment(); tok != nil {
				return *tok
			}
			continue
		}

		startLine, startColumn, startPos := l.currentSpanStart()

		switch {
		case l.ch == 0:
			if startColumn == 0 {
				startColumn = 1
			}
			return l.makeToken(EOF, startLine, startColumn, startPos, startPos, "", "")

		case l.ch == '(':
			l.pushDelim('(')
			l.read()
			return l.makeToken(LPAREN, startLine, startColumn, startPos, l.pos, "(", "(")

		case l.ch == ')':
			l.popDelim()
			l.read()
			return l.makeToken(RPAREN, startLine, startColumn, startPos, l.pos, ")", ")")

		case l.ch == '[':
			l.pushDelim('[')
			l.read()
			return l.makeToken(LBRACKET, startLine, startColumn, startPos, l.pos, "[", "[")

		case l.ch == ']':
			l.popDelim()
			l.read()
			return l.makeToken(RBRACKET, startLine, startColumn, startPos, l.pos, "]", "]")

		case l.ch == '{':
			l.pushDelim('{')
			l.read()
			return l.makeToken(LBRACE, startLine, startColumn, startPos, l.pos, "{", "{")

		case l.ch == '}':
			l.popDelim()
			l.read()
			return l.makeToken(RBRACE, startLine, startColumn, startPos, l.pos, "}", "}")

		case l.ch == ';':
			l.read()
			return l.makeToken(SEMICOLON, startLine, startColumn, startPos, l.pos, ";", ";")

		case l.ch == ':':
			l.read()
			return l.makeToken(COLON, startLine, startColumn, startPos, l.pos, ":", ":")

		case l.ch == ',':
			l.read()
			return l.makeToken(COMMA, startLine, startColumn, startPos, l.pos, ",", ",")

		case l.ch == '.':
			l.read()
			return l.makeToken(DOT, startLine, startColumn, startPos, l.pos, ".", ".")

		case l.ch == '@':
			l.read()
			return l.makeToken(AT, startLine, startColumn, startPos, l.pos, "@", "@")

		case l.ch == '"':
			text, value, terminated := l.readString(startLine, startColumn, startPos)
			if !terminated {
				return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, text, value)
			}
			return l.makeToken(STRING, startLine, startColumn, startPos, l.pos, text, value)

		case l.ch == '\'':
			text, value, terminated := l.readChar(startLine, startColumn, startPos)
			if !terminated {
				return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, text, value)
			}
			return l.makeToken(CHAR, startLine, startColumn, startPos, l.pos, text, value)

		case isOpRune(l.ch):
			return l.readOperator()

		case isLetter(l.ch):
			text := l.readIdentifier()
			tokType := LookupIdent(text)
			if unicode.IsUpper([]rune(text)[0]) {
				tokType = UPPER_IDENT
			}
			return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, text, text)

		case isDigit(l.ch):
			text, tokType := l.readNumber(startLine, startColumn, startPos)
			return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, text, text)

		default:
			text := string(l.ch)
			l.read()
			tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, text, text)
			l.addError(
				ErrIllegalRune,
				"illegal character "+strconv.Quote(text),
				tok.Span,
			)
			return tok
		}
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'f') ||
		(ch >= 'A' && ch <= 'F')
}

// readEscape decodes the escape sequence following a consumed backslash.
// The backslash has already been read; l.ch is the escape character.
func (l *Lexer) readEscape(startLine, startColumn, startPos int) rune {
	ch := l.ch
	l.read()
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '\\':
		return '\\'
	case '"':
		return '"'
	case '\'':
		return '\''
	case '0':
		return 0
	default:
		l.addError(
			ErrInvalidEscape,
			"invalid escape sequence "+strconv.Quote("\\"+string(ch)),
			Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
		)
		return ch
	}
}

// readString reads a string literal, handling escape sequences. Returns
// both the raw text (escapes intact) and the decoded value, along with a
// flag indicating whether the string was properly terminated.
func (l *Lexer) readString(startLine, startColumn, startPos int) (text string, value string, terminated bool) {
	var decoded []rune

	l.read() // skip opening quote

	for {
		if l.ch == 0 {
			l.addError(
				ErrUnterminatedString,
				"unterminated string literal",
				Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			break
		}
		if l.ch == '"' {
			l.read() // consume closing quote
			return string(l.input[startPos:l.pos]), string(decoded), true
		}
		if l.ch == '\n' || l.ch == '\r' {
			l.addError(
				ErrUnterminatedString,
				"newline in string literal",
				Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			break
		}
		if l.ch == '\\' {
			l.read() // skip '\'
			if l.ch != 0 {
				decoded = append(decoded, l.readEscape(startLine, startColumn, startPos))
			}
			continue
		}
		decoded = append(decoded, l.ch)
		l.read()
	}

	return string(l.input[startPos:l.pos]), string(decoded), false
}

// readChar reads a character literal.
func (l *Lexer) readChar(startLine, startColumn, startPos int) (text string, value string, terminated bool) {
	l.read() // skip opening quote

	span := func() Span {
		return Span{Filename: l.filename, Line: startLine, Column: startColumn, Start: startPos, End: l.pos}
	}

	if l.ch == 0 || l.ch == '\n' || l.ch == '\r' {
		l.addError(ErrUnterminatedChar, "unterminated character literal", span())
		return string(l.input[startPos:l.pos]), "", false
	}

	if l.ch == '\'' {
		l.read()
		l.addError(ErrUnterminatedChar, "empty character literal", span())
		return string(l.input[startPos:l.pos]), "", false
	}

	var decoded rune
	if l.ch == '\\' {
		l.read()
		decoded = l.readEscape(startLine, startColumn, startPos)
	} else {
		decoded = l.ch
		l.read()
	}

	if l.ch != '\'' {
		l.addError(ErrUnterminatedChar, "unterminated character literal", span())
		return string(l.input[startPos:l.pos]), string(decoded), false
	}
	l.read() // consume closing quote

	return string(l.input[startPos:l.pos]), string(decoded), true
}
