package interpret

import (
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/ian-shakespeare/tapevm/pkg/array"
	"github.com/ian-shakespeare/tapevm/pkg/iterator"
	"github.com/ian-shakespeare/tapevm/pkg/runes"
)

type scanMode int

const (
	modeNone scanMode = iota
	modeString
	modeComment
	modeIdent
	modeInt
	modeFloat
)

var whitespace = []rune{' ', '\t', '\r', '\n'}

var symbols = map[rune]TokenType{
	'+': INC_TOKEN,
	'-': DEC_TOKEN,
	'>': RIGHT_TOKEN,
	'<': LEFT_TOKEN,
	'.': PRINT_TOKEN,
	'(': LPAREN_TOKEN,
	')': RPAREN_TOKEN,
	',': COMMA_TOKEN,
	'{': LBRACE_TOKEN,
	'}': RBRACE_TOKEN,
	'[': LBRACKET_TOKEN,
	']': RBRACKET_TOKEN,
	':': COLON_TOKEN,
	';': SEMICOLON_TOKEN,
	'&': CALL_TOKEN,
}

type scanner struct {
	input   *runes.Reader
	mode    scanMode
	literal strings.Builder
	pending []Token
	done    bool

	line   uint
	column uint

	// position of the first character of the token being built
	startLine   uint
	startColumn uint
}

func NewScanner(input io.Reader) *scanner {
	return &scanner{
		input: runes.NewReader(input),
		line:  1,
	}
}

// Scan tokenizes the whole input. The returned slice always ends with an
// EOF_TOKEN; on the first error no tokens are returned.
func Scan(input io.Reader) ([]Token, error) {
	return iterator.CollectErr(NewScanner(input).Tokens())
}

// NextToken returns the next token. The last token of every successful scan
// is an EOF_TOKEN, after which io.EOF is returned. After an error the
// scanner is exhausted.
func (s *scanner) NextToken() (Token, error) {
	for len(s.pending) == 0 {
		if s.done {
			return Token{}, io.EOF
		}
		if err := s.step(); err != nil {
			s.done = true
			s.pending = nil
			return Token{}, err
		}
	}

	token := s.pending[0]
	s.pending = s.pending[1:]
	return token, nil
}

func (s *scanner) Tokens() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			token, err := s.NextToken()
			if errors.Is(err, io.EOF) {
				break
			}
			if !yield(token, err) {
				return
			}
		}
	}
}

func (s *scanner) step() error {
	char, err := s.getNextCharacter()
	if errors.Is(err, io.EOF) {
		return s.finish()
	}
	if err != nil {
		return NewSyntaxError(ErrInvalidInput, s.line, s.column, err.Error())
	}

	switch {
	case s.mode == modeComment:
		if char == '\n' {
			s.mode = modeNone
		}
		return nil
	case char == '"':
		if s.mode == modeString {
			s.emitLiteral(STRING_TOKEN)
			return nil
		}
		s.flush()
		s.mark()
		s.mode = modeString
		return nil
	case s.mode == modeString:
		return s.scanStringCharacter(char)
	case isDigit(char) && s.mode != modeIdent:
		if s.mode != modeInt && s.mode != modeFloat {
			s.mark()
			s.mode = modeInt
		}
		s.literal.WriteRune(char)
		return nil
	case char == '.' && s.mode == modeInt:
		next, err := s.input.PeekPast(func(r rune) bool {
			return r == ' '
		})
		if err != nil {
			return s.lookaheadError(err, "expected a character after '.'")
		}
		if isDigit(next) {
			s.mode = modeFloat
			s.literal.WriteRune(char)
			return nil
		}
		return s.scanSymbol(char)
	case isIdentifier(char):
		if s.mode == modeInt || s.mode == modeFloat {
			s.flush()
		}
		if s.mode != modeIdent {
			s.mark()
			s.mode = modeIdent
		}
		s.literal.WriteRune(char)
		return nil
	default:
		return s.scanSymbol(char)
	}
}

func (s *scanner) getNextCharacter() (rune, error) {
	char, _, err := s.input.ReadRune()
	if err != nil {
		return 0, err
	}

	if char == '\n' {
		s.line++
		s.column = 0
	} else {
		s.column++
	}
	return char, nil
}

func (s *scanner) scanStringCharacter(char rune) error {
	switch char {
	case '\n':
		return NewSyntaxError(ErrUnterminatedString, s.startLine, s.startColumn, "newline inside string literal")
	case '\\':
		escaped, err := s.getNextCharacter()
		if errors.Is(err, io.EOF) {
			return NewSyntaxError(ErrUnterminatedString, s.startLine, s.startColumn, "input ended inside escape sequence")
		}
		if err != nil {
			return NewSyntaxError(ErrInvalidInput, s.line, s.column, err.Error())
		}

		switch escaped {
		case 'n':
			s.literal.WriteRune('\n')
		case 't':
			s.literal.WriteRune('\t')
		case '\\':
			s.literal.WriteRune('\\')
		case ' ':
		default:
			return NewSyntaxErrorf(ErrUnknownEscape, s.line, s.column, "\\%c", escaped)
		}
	default:
		s.literal.WriteRune(char)
	}
	return nil
}

func (s *scanner) scanSymbol(char rune) error {
	s.flush()
	if array.Contains(whitespace, char) {
		return nil
	}
	s.mark()

	if char == '/' {
		next, err := s.input.PeekRunes(1)
		if err != nil {
			return s.lookaheadError(err, "expected '/' after '/'")
		}
		if next[0] != '/' {
			return NewSyntaxErrorf(ErrMalformedComment, s.line, s.column, "expected '/' after '/', found %q", next[0])
		}
		if _, err := s.getNextCharacter(); err != nil {
			return NewSyntaxError(ErrInvalidInput, s.line, s.column, err.Error())
		}
		s.mode = modeComment
		return nil
	}

	t, ok := symbols[char]
	if !ok {
		return NewSyntaxErrorf(ErrUnknownCharacter, s.line, s.column, "%q", char)
	}
	s.pending = append(s.pending, Token{Type: t, Line: s.startLine, Column: s.startColumn})
	return nil
}

// finish flushes what is left at end of input and queues the EOF_TOKEN.
func (s *scanner) finish() error {
	s.done = true
	if s.mode == modeString {
		return NewSyntaxError(ErrUnterminatedString, s.startLine, s.startColumn, "string literal not closed before end of input")
	}
	s.flush()
	s.mode = modeNone

	s.pending = append(s.pending, Token{Type: EOF_TOKEN, Line: s.line, Column: s.column})
	return nil
}

// flush emits the pending number or identifier, if any.
func (s *scanner) flush() {
	switch s.mode {
	case modeInt:
		s.emitLiteral(INT_TOKEN)
	case modeFloat:
		s.emitLiteral(FLOAT_TOKEN)
	case modeIdent:
		s.emitLiteral(IDENT_TOKEN)
	}
}

func (s *scanner) emitLiteral(t TokenType) {
	s.pending = append(s.pending, Token{
		Type:   t,
		Value:  s.literal.String(),
		Line:   s.startLine,
		Column: s.startColumn,
	})
	s.literal.Reset()
	s.mode = modeNone
}

func (s *scanner) mark() {
	s.startLine = s.line
	s.startColumn = s.column
}

func (s *scanner) lookaheadError(err error, message string) error {
	if errors.Is(err, io.EOF) {
		return NewSyntaxError(ErrMissingLookahead, s.line, s.column, message)
	}
	return NewSyntaxError(ErrInvalidInput, s.line, s.column, err.Error())
}

func isDigit(char rune) bool {
	return char >= '0' && char <= '9'
}

func isIdentifier(char rune) bool {
	return isDigit(char) ||
		char >= 'a' && char <= 'z' ||
		char >= 'A' && char <= 'Z' ||
		char == '_'
}
