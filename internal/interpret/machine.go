package interpret

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/ian-shakespeare/tapevm/pkg/array"
)

const (
	DefaultTapeSize = 1000
	MaxTapeSize     = 1 << 24
)

type Options struct {
	TapeSize int          // if not positive, default to DefaultTapeSize; capped at MaxTapeSize
	Stdout   io.Writer    // if nil, default to os.Stdout
	Logger   *slog.Logger // if nil, logs are discarded
}

type loopFrame struct {
	// index of the exit-value token; the body starts right after it
	resume int
	exit   int
}

// Machine interprets a token stream directly against a fixed-size tape of
// integer cells.
type Machine struct {
	program []Token
	pc      int

	tape    []int
	pointer int
	loops   []loopFrame

	stdout io.Writer
	logger *slog.Logger
}

func NewMachine(program []Token, opts Options) *Machine {
	size := opts.TapeSize
	if size <= 0 {
		size = DefaultTapeSize
	}
	size = min(size, MaxTapeSize)
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Machine{
		program: program,
		tape:    make([]int, size),
		stdout:  stdout,
		logger:  logger,
	}
}

// Run scans the input and executes it on a fresh machine.
func Run(input io.Reader, opts Options) error {
	program, err := Scan(input)
	if err != nil {
		return err
	}
	return NewMachine(program, opts).Run()
}

// Run executes the program until the end marker or the first error. Output
// written before an error is kept.
func (m *Machine) Run() error {
	for {
		more, err := m.step()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		m.advance()
	}
}

// Reset zeroes the tape and rewinds the program so it can be run again.
func (m *Machine) Reset() {
	clear(m.tape)
	m.pc = 0
	m.pointer = 0
	m.loops = nil
}

func (m *Machine) Pointer() int {
	return m.pointer
}

func (m *Machine) Cell() int {
	return m.tape[m.pointer]
}

func (m *Machine) Tape() []int {
	return array.Clone(m.tape)
}

// step executes the instruction under the program counter and reports
// whether execution continues.
func (m *Machine) step() (bool, error) {
	token := m.current()

	switch token.Type {
	case INC_TOKEN:
		m.tape[m.pointer]++
	case DEC_TOKEN:
		m.tape[m.pointer]--
	case RIGHT_TOKEN:
		return true, m.moveRight()
	case LEFT_TOKEN:
		return true, m.moveLeft()
	case PRINT_TOKEN:
		return true, m.print()
	case CALL_TOKEN:
	case LBRACKET_TOKEN:
		return true, m.enterLoop()
	case RBRACKET_TOKEN:
		return true, m.exitLoop()
	case LPAREN_TOKEN:
		return true, m.evalCondition()
	case RPAREN_TOKEN:
		return false, m.errorf(ErrUnexpectedClose, "')' without matching '('")
	case EOF_TOKEN:
		return false, nil
	case UNKNOWN_TOKEN, STRING_TOKEN, INT_TOKEN, FLOAT_TOKEN, BOOL_TOKEN, IDENT_TOKEN,
		COLON_TOKEN, SEMICOLON_TOKEN, LBRACE_TOKEN, RBRACE_TOKEN, COMMA_TOKEN, ARROW_TOKEN:
		return false, m.errorf(ErrUnknownInstruction, "%s", token)
	default:
		// a TokenType value outside the declared constants
		return false, m.errorf(ErrUnknownInstruction, "%s", token)
	}

	return true, nil
}

func (m *Machine) current() Token {
	if m.pc >= len(m.program) {
		return Token{Type: EOF_TOKEN}
	}
	return m.program[m.pc]
}

func (m *Machine) advance() {
	if m.pc < len(m.program) {
		m.pc++
	}
}

func (m *Machine) moveRight() error {
	if m.pointer+1 >= len(m.tape) {
		return m.errorf(ErrPointerOutOfBounds, "move right past cell %d", len(m.tape)-1)
	}
	m.pointer++
	return nil
}

func (m *Machine) moveLeft() error {
	if m.pointer < 1 {
		return m.errorf(ErrPointerOutOfBounds, "move left of cell 0")
	}
	m.pointer--
	return nil
}

func (m *Machine) print() error {
	if _, err := fmt.Fprintln(m.stdout, m.tape[m.pointer]); err != nil {
		return m.errorf(ErrOutput, "%v", err)
	}
	return nil
}

func (m *Machine) enterLoop() error {
	m.advance()
	token := m.current()
	if token.Type != INT_TOKEN {
		return m.errorf(ErrLoopExitValue, "expected integer after '[', found %s", token.Type)
	}
	exit, err := strconv.Atoi(token.Value)
	if err != nil {
		return m.errorf(ErrLoopExitValue, "%v", err)
	}

	if m.tape[m.pointer] == exit {
		m.logger.Debug("skip loop", "pc", m.pc, "exit", exit)
		m.advance()
		return m.skipTo(LBRACKET_TOKEN, RBRACKET_TOKEN, ErrUnclosedLoop)
	}

	m.logger.Debug("enter loop", "pc", m.pc, "exit", exit, "depth", len(m.loops)+1)
	m.loops = append(m.loops, loopFrame{resume: m.pc, exit: exit})
	return nil
}

func (m *Machine) exitLoop() error {
	loops, frame, ok := array.Pop(m.loops)
	if !ok {
		return m.errorf(ErrUnmatchedLoopClose, "']' without open loop")
	}
	m.loops = loops

	if m.tape[m.pointer] != frame.exit {
		m.pc = frame.resume
		m.loops = append(m.loops, frame)
		return nil
	}
	m.logger.Debug("exit loop", "pc", m.pc, "exit", frame.exit)
	return nil
}

// evalCondition runs a conditional. Both operand expressions are evaluated
// against the state at '(' and rolled back; only the body keeps its effects.
func (m *Machine) evalCondition() error {
	m.advance()
	saved := m.snapshot()

	lhs, err := m.speculate(saved, func() error {
		return m.runUntil(STRING_TOKEN, "left operand")
	})
	if err != nil {
		return err
	}

	op := m.current().Value
	compare, ok := comparisons[op]
	if !ok {
		return m.errorf(ErrUnknownOperator, "%q", op)
	}
	m.advance()

	rhs, err := m.speculate(saved, func() error {
		return m.runUntil(SEMICOLON_TOKEN, "right operand")
	})
	if err != nil {
		return err
	}
	m.advance()

	holds := compare(lhs, rhs)
	m.logger.Debug("condition", "pc", m.pc, "lhs", lhs, "op", op, "rhs", rhs, "holds", holds)
	if !holds {
		return m.skipTo(LPAREN_TOKEN, RPAREN_TOKEN, ErrUnclosedCondition)
	}
	return m.runUntil(RPAREN_TOKEN, "body")
}

// runUntil executes instructions until the program counter rests on a token
// of the stop type.
func (m *Machine) runUntil(stop TokenType, part string) error {
	for m.current().Type != stop {
		if m.current().Type == EOF_TOKEN {
			return m.errorf(ErrUnclosedCondition, "program ended inside conditional %s", part)
		}
		if _, err := m.step(); err != nil {
			return err
		}
		m.advance()
	}
	return nil
}

// skipTo moves forward without executing until the program counter rests on
// the closing token that matches an already consumed opening token.
func (m *Machine) skipTo(opening, closing TokenType, kind ErrorKind) error {
	depth := 0
	for {
		switch m.current().Type {
		case opening:
			depth++
		case closing:
			if depth == 0 {
				return nil
			}
			depth--
		case EOF_TOKEN:
			return m.errorf(kind, "program ended before matching '%s'", closing)
		}
		m.advance()
	}
}

func (m *Machine) errorf(kind ErrorKind, format string, a ...any) error {
	return NewRuntimeErrorf(kind, m.pc, format, a...)
}

var comparisons = map[string]func(lhs, rhs int) bool{
	"==": func(lhs, rhs int) bool { return lhs == rhs },
	"!=": func(lhs, rhs int) bool { return lhs != rhs },
	">":  func(lhs, rhs int) bool { return lhs > rhs },
	"<":  func(lhs, rhs int) bool { return lhs < rhs },
	">=": func(lhs, rhs int) bool { return lhs >= rhs },
	"<=": func(lhs, rhs int) bool { return lhs <= rhs },
}
