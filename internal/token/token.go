package token

type Type string

type Token struct {
	Type    Type
	Literal string
	// Value is the decoded integer for NUM tokens.
	Value int
	Line  int // 1-based
	Col   int // 1-based
}

const (
	// Special
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	// Identifiers + literals
	ID  Type = "ID"
	NUM Type = "NUM"
	STR Type = "STR"

	// Keywords
	AND     Type = "AND"
	ARRAY   Type = "ARRAY"
	BOOL    Type = "BOOL"
	CHILLAX Type = "CHILLAX"
	ELIF    Type = "ELIF"
	ELSE    Type = "ELSE"
	END     Type = "END"
	FALSE   Type = "FALSE"
	IF      Type = "IF"
	INPUT   Type = "INPUT"
	INT     Type = "INT"
	LET     Type = "LET"
	MAIN    Type = "MAIN"
	NOT     Type = "NOT"
	OR      Type = "OR"
	OUTPUT  Type = "OUTPUT"
	PROGRAM Type = "PROGRAM"
	REM     Type = "REM"
	RETURN  Type = "RETURN"
	TRUE    Type = "TRUE"
	WHILE   Type = "WHILE"

	// Operators
	EQ    Type = "="
	NE    Type = "/="
	LT    Type = "<"
	LE    Type = "<="
	GT    Type = ">"
	GE    Type = ">="
	PLUS  Type = "+"
	MINUS Type = "-"
	MUL   Type = "*"
	DIV   Type = "/"
	ARROW Type = "->"

	// Delimiters
	COLON     Type = ":"
	COMMA     Type = ","
	DOTDOT    Type = ".."
	SEMICOLON Type = ";"
	LBRACK    Type = "["
	RBRACK    Type = "]"
	LPAREN    Type = "("
	RPAREN    Type = ")"
)

var keywords = map[string]Type{
	"and":     AND,
	"array":   ARRAY,
	"bool":    BOOL,
	"chillax": CHILLAX,
	"elif":    ELIF,
	"else":    ELSE,
	"end":     END,
	"false":   FALSE,
	"if":      IF,
	"input":   INPUT,
	"int":     INT,
	"let":     LET,
	"main":    MAIN,
	"not":     NOT,
	"or":      OR,
	"output":  OUTPUT,
	"program": PROGRAM,
	"rem":     REM,
	"return":  RETURN,
	"true":    TRUE,
	"while":   WHILE,
}

func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return ID
}
