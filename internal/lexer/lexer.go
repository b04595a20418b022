package lexer

import (
	"math"

	"ampl/internal/diag"
	"ampl/internal/token"
)

// Diagnostic codes reported by the scanner.
const (
	CodeIllegalChar         = "AM0001"
	CodeUnterminatedString  = "AM0002"
	CodeUnterminatedComment = "AM0003"
	CodeIdentTooLong        = "AM0004"
	CodeNumberTooLarge      = "AM0005"
	CodeIllegalEscape       = "AM0006"
	CodeBadStringChar       = "AM0007"
)

const maxIdentLen = 32

type Lexer struct {
	input string

	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination

	line int // 1-based
	col  int // 1-based column of current char

	diags []diag.Diagnostic
}

func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0, // readChar() advances to col=1 for the first char
	}
	l.readChar()
	return l
}

// Diagnostics returns the scan errors collected so far. The scanner never
// prints or terminates; malformed input yields an ILLEGAL token and a
// diagnostic, and scanning continues.
func (l *Lexer) Diagnostics() []diag.Diagnostic {
	return l.diags
}

func (l *Lexer) NextToken() token.Token {
	// Skip whitespace and { } comments. Newlines are plain whitespace here;
	// the language has no statement separator token.
	for {
		l.skipWhitespace()
		if l.ch == '{' {
			l.skipComment()
			continue
		}
		break
	}

	if l.ch == 0 {
		return l.newToken(token.EOF, "", l.line, l.col)
	}

	startLine, startCol := l.line, l.col

	if isIdentStart(l.ch) {
		lit := l.readIdentifier()
		if len(lit) > maxIdentLen {
			l.errorf(CodeIdentTooLong, startLine, startCol, len(lit),
				"identifier too long (%d chars, max %d)", len(lit), maxIdentLen)
		}
		return l.newToken(token.LookupIdent(lit), lit, startLine, startCol)
	}

	if isDigit(l.ch) {
		lit, value, overflow := l.readNumber()
		if overflow {
			l.errorf(CodeNumberTooLarge, startLine, startCol, len(lit), "number too large")
		}
		tok := l.newToken(token.NUM, lit, startLine, startCol)
		tok.Value = value
		return tok
	}

	switch l.ch {
	case '"':
		return l.readStringToken(startLine, startCol)

	case '=':
		return l.single(token.EQ, startLine, startCol)
	case '+':
		return l.single(token.PLUS, startLine, startCol)
	case '*':
		return l.single(token.MUL, startLine, startCol)
	case ':':
		return l.single(token.COLON, startLine, startCol)
	case ',':
		return l.single(token.COMMA, startLine, startCol)
	case ';':
		return l.single(token.SEMICOLON, startLine, startCol)
	case '[':
		return l.single(token.LBRACK, startLine, startCol)
	case ']':
		return l.single(token.RBRACK, startLine, startCol)
	case '(':
		return l.single(token.LPAREN, startLine, startCol)
	case ')':
		return l.single(token.RPAREN, startLine, startCol)

	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			l.readChar()
			return l.newToken(token.DOTDOT, "..", startLine, startCol)
		}
		l.errorf(CodeIllegalChar, startLine, startCol, 1, "illegal character '.' (ASCII #46)")
		tok := l.newToken(token.ILLEGAL, ".", startLine, startCol)
		l.readChar()
		return tok

	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.GE, ">=", startLine, startCol)
		}
		return l.single(token.GT, startLine, startCol)

	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.LE, "<=", startLine, startCol)
		}
		return l.single(token.LT, startLine, startCol)

	case '/':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.newToken(token.NE, "/=", startLine, startCol)
		}
		return l.single(token.DIV, startLine, startCol)

	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return l.newToken(token.ARROW, "->", startLine, startCol)
		}
		return l.single(token.MINUS, startLine, startCol)
	}

	illegal := string(l.ch)
	l.errorf(CodeIllegalChar, startLine, startCol, 1,
		"illegal character %q (ASCII #%d)", illegal, l.ch)
	tok := l.newToken(token.ILLEGAL, illegal, startLine, startCol)
	l.readChar()
	return tok
}

func (l *Lexer) newToken(t token.Type, lit string, line, col int) token.Token {
	return token.Token{
		Type:    t,
		Literal: lit,
		Line:    line,
		Col:     col,
	}
}

// single emits a one-character token whose literal is the token type itself.
func (l *Lexer) single(t token.Type, line, col int) token.Token {
	tok := l.newToken(t, string(t), line, col)
	l.readChar()
	return tok
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}

	l.ch = l.input[l.readPosition]
	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' ||
		l.ch == '\v' || l.ch == '\f' {
		l.readChar()
	}
}

// skipComment consumes a { } comment. Comments nest; depth is tracked with a
// counter rather than recursion so adversarial input cannot grow the stack.
func (l *Lexer) skipComment() {
	startLine, startCol := l.line, l.col
	depth := 1
	l.readChar() // consume '{'

	for depth > 0 {
		switch l.ch {
		case 0:
			l.errorf(CodeUnterminatedComment, startLine, startCol, 1, "comment not closed")
			return
		case '{':
			depth++
		case '}':
			depth--
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber scans a decimal literal, accumulating its value and flagging
// overflow past MaxInt32. The remaining digits are still consumed so the
// token covers the full lexeme.
func (l *Lexer) readNumber() (string, int, bool) {
	start := l.position
	value := 0
	overflow := false
	for isDigit(l.ch) {
		if !overflow {
			v := value*10 + int(l.ch-'0')
			if v > math.MaxInt32 {
				overflow = true
			} else {
				value = v
			}
		}
		l.readChar()
	}
	if overflow {
		value = 0
	}
	return l.input[start:l.position], value, overflow
}

// readStringToken scans a double-quoted string. Escape sequences are
// validated but kept undecoded in the literal; decoding is a later phase's
// concern.
func (l *Lexer) readStringToken(startLine, startCol int) token.Token {
	l.readChar() // move past opening quote
	start := l.position

	for {
		if l.ch == 0 {
			l.errorf(CodeUnterminatedString, startLine, startCol, 1, "string not closed")
			return l.newToken(token.ILLEGAL, l.input[start:l.position], startLine, startCol)
		}
		if l.ch == '"' {
			break
		}

		if l.ch == '\\' {
			escLine, escCol := l.line, l.col
			l.readChar()
			switch l.ch {
			case 'n', 't', '"', '\\':
				l.readChar()
			case 0:
				// EOF after backslash; the unterminated-string branch reports it.
			default:
				l.errorf(CodeIllegalEscape, escLine, escCol, 2,
					"illegal escape code '\\%c' in string", l.ch)
				l.readChar()
			}
			continue
		}

		if l.ch < 32 || l.ch > 126 {
			l.errorf(CodeBadStringChar, l.line, l.col, 1,
				"non-printable character (ASCII #%d) in string", l.ch)
		}
		l.readChar()
	}

	lit := l.input[start:l.position]
	l.readChar() // consume closing quote
	return l.newToken(token.STR, lit, startLine, startCol)
}

func (l *Lexer) errorf(code string, line, col, length int, format string, args ...any) {
	l.diags = append(l.diags, diag.Errorf(code, line, col, length, format, args...))
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
