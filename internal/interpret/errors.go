package interpret

import "fmt"

// ErrorKind identifies one class of scan or runtime failure. Both error
// types unwrap to their kind, so callers can match with errors.Is.
type ErrorKind string

func (k ErrorKind) Error() string {
	return string(k)
}

// scan errors
const (
	ErrUnterminatedString ErrorKind = "unterminated string"
	ErrUnknownEscape      ErrorKind = "unknown escape sequence"
	ErrMalformedComment   ErrorKind = "malformed comment"
	ErrUnknownCharacter   ErrorKind = "unknown character"
	ErrMissingLookahead   ErrorKind = "unexpected end of input"
	ErrInvalidInput       ErrorKind = "invalid input"
)

// runtime errors
const (
	ErrPointerOutOfBounds ErrorKind = "pointer out of bounds"
	ErrLoopExitValue      ErrorKind = "invalid loop exit value"
	ErrUnmatchedLoopClose ErrorKind = "unmatched loop close"
	ErrUnclosedLoop       ErrorKind = "unclosed loop"
	ErrUnknownOperator    ErrorKind = "unknown comparison operator"
	ErrUnclosedCondition  ErrorKind = "unclosed conditional"
	ErrUnexpectedClose    ErrorKind = "unexpected conditional close"
	ErrUnknownInstruction ErrorKind = "unknown instruction"
	ErrOutput             ErrorKind = "output failed"
)

type ScanError struct {
	Kind    ErrorKind
	Message string
	Line    uint
	Column  uint
}

func NewSyntaxError(kind ErrorKind, line, column uint, message string) *ScanError {
	return &ScanError{
		Kind:    kind,
		Message: message,
		Line:    line,
		Column:  column,
	}
}

func NewSyntaxErrorf(kind ErrorKind, line, column uint, format string, a ...any) *ScanError {
	return NewSyntaxError(kind, line, column, fmt.Sprintf(format, a...))
}

func (s *ScanError) Error() string {
	return fmt.Sprintf("syntaxerror: at line %d char %d: %s: %s", s.Line, s.Column, s.Kind, s.Message)
}

func (s *ScanError) Unwrap() error {
	return s.Kind
}

type RuntimeError struct {
	Kind    ErrorKind
	Message string
	PC      int
}

func NewRuntimeError(kind ErrorKind, pc int, message string) *RuntimeError {
	return &RuntimeError{
		Kind:    kind,
		Message: message,
		PC:      pc,
	}
}

func NewRuntimeErrorf(kind ErrorKind, pc int, format string, a ...any) *RuntimeError {
	return NewRuntimeError(kind, pc, fmt.Sprintf(format, a...))
}

func (r *RuntimeError) Error() string {
	return fmt.Sprintf("runtimeerror: at index %d: %s: %s", r.PC, r.Kind, r.Message)
}

func (r *RuntimeError) Unwrap() error {
	return r.Kind
}
