package interpret

import "fmt"

type TokenType int

const (
	UNKNOWN_TOKEN TokenType = iota

	// literals
	STRING_TOKEN
	INT_TOKEN
	FLOAT_TOKEN
	BOOL_TOKEN // declared, never produced by the scanner

	IDENT_TOKEN

	// operators
	INC_TOKEN
	DEC_TOKEN
	RIGHT_TOKEN
	LEFT_TOKEN

	// symbols
	PRINT_TOKEN
	COLON_TOKEN
	SEMICOLON_TOKEN
	EOF_TOKEN
	CALL_TOKEN
	LBRACKET_TOKEN
	RBRACKET_TOKEN
	LBRACE_TOKEN
	RBRACE_TOKEN
	LPAREN_TOKEN
	RPAREN_TOKEN
	COMMA_TOKEN
	ARROW_TOKEN // declared, never produced by the scanner
)

var tokenNames = [...]string{
	UNKNOWN_TOKEN:   "unknown",
	STRING_TOKEN:    "string",
	INT_TOKEN:       "integer",
	FLOAT_TOKEN:     "float",
	BOOL_TOKEN:      "boolean",
	IDENT_TOKEN:     "identifier",
	INC_TOKEN:       "+",
	DEC_TOKEN:       "-",
	RIGHT_TOKEN:     ">",
	LEFT_TOKEN:      "<",
	PRINT_TOKEN:     ".",
	COLON_TOKEN:     ":",
	SEMICOLON_TOKEN: ";",
	EOF_TOKEN:       "end of file",
	CALL_TOKEN:      "&",
	LBRACKET_TOKEN:  "[",
	RBRACKET_TOKEN:  "]",
	LBRACE_TOKEN:    "{",
	RBRACE_TOKEN:    "}",
	LPAREN_TOKEN:    "(",
	RPAREN_TOKEN:    ")",
	COMMA_TOKEN:     ",",
	ARROW_TOKEN:     "->",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenNames[t]
}

// Reports whether the token type carries a literal payload.
func (t TokenType) IsLiteral() bool {
	switch t {
	case STRING_TOKEN, INT_TOKEN, FLOAT_TOKEN, BOOL_TOKEN, IDENT_TOKEN:
		return true
	}
	return false
}

type Token struct {
	Type   TokenType
	Value  string
	Line   uint
	Column uint
}

func (t Token) String() string {
	switch {
	case t.Type == STRING_TOKEN:
		return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Type, t.Value)
	case t.Type.IsLiteral():
		return fmt.Sprintf("%d:%d %s %s", t.Line, t.Column, t.Type, t.Value)
	default:
		return fmt.Sprintf("%d:%d %s", t.Line, t.Column, t.Type)
	}
}
