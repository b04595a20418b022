package lsp

import (
	"ampl/internal/lexer"
	"ampl/internal/token"
)

// Semantic token type indices; must match the legend order advertised by
// the server.
const (
	TTKeyword  = 0
	TTString   = 1
	TTNumber   = 2
	TTOperator = 3
	TTVariable = 4
)

type SemTok struct {
	Line   int
	Col    int
	Length int
	Type   int
}

// Classify maps a scanner token to a semantic token type. Tokens with no
// useful classification (EOF, ILLEGAL) are skipped.
func Classify(tok token.Token) (int, bool) {
	switch tok.Type {
	case token.AND, token.ARRAY, token.BOOL, token.CHILLAX, token.ELIF,
		token.ELSE, token.END, token.FALSE, token.IF, token.INPUT, token.INT,
		token.LET, token.MAIN, token.NOT, token.OR, token.OUTPUT,
		token.PROGRAM, token.REM, token.RETURN, token.TRUE, token.WHILE:
		return TTKeyword, true

	case token.STR:
		return TTString, true
	case token.NUM:
		return TTNumber, true

	case token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE,
		token.PLUS, token.MINUS, token.MUL, token.DIV, token.ARROW,
		token.DOTDOT:
		return TTOperator, true

	case token.ID:
		return TTVariable, true
	}

	return 0, false
}

// SemanticTokensForText scans text and returns unencoded semantic tokens.
// Classification is purely lexical; there is no parser behind it.
func SemanticTokensForText(text string) []SemTok {
	lx := lexer.New(text)
	sem := make([]SemTok, 0, 256)

	for {
		tok := lx.NextToken()
		if tok.Type == token.EOF {
			break
		}

		tt, ok := Classify(tok)
		if !ok {
			continue
		}

		length := len(tok.Literal)
		if tok.Type == token.STR {
			length += 2 // quotes are part of the highlighted range
		}
		if length <= 0 {
			length = 1
		}

		sem = append(sem, SemTok{
			Line:   tok.Line,
			Col:    tok.Col,
			Length: length,
			Type:   tt,
		})
	}

	return sem
}
