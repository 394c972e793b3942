package cpu

import (
	"errors"

	"github.com/trifledmatter/virtual-shell/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrInstructionUnknown = errors.New(f("unknown instruction"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrOperandExtra       = errors.New(f("excessive operands"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelEmpty         = errors.New(f("label empty"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrJumpOutOfRange     = errors.New(f("jump target out of range"))
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrDirectiveUnknown   = errors.New(f("unknown directive"))

	// Runtime faults
	ErrStackUnderflow = errors.New(f("stack underflow"))
	ErrDivisionByZero = errors.New(f("division by zero"))
	ErrAddressInvalid = errors.New(f("memory address out of bounds"))
	ErrInputExhausted = errors.New(f("input exhausted"))
	ErrLimitExceeded  = errors.New(f("execution limit exceeded"))
)

// ErrLabelMissing reports an operand naming a label that was never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrParseNumber reports an operand that is neither a number nor anything
// else valid in its position.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrParseExpression reports a $() expression that failed to evaluate.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates an assembly error on its source line. No Program is
// produced when assembly fails.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// Fault locates a runtime fault at the program counter where it occurred.
// A fault terminates the run immediately; nothing is retried or rolled
// back.
type Fault struct {
	Pc  int
	Err error
}

func (err *Fault) Error() string {
	return f("pc %d %v", err.Pc, err.Err)
}

func (err *Fault) Unwrap() error {
	return err.Err
}
