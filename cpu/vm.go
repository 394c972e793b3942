package cpu

import (
	"log"
	"math"

	"github.com/trifledmatter/virtual-shell/io"
)

const (
	MEMORY_SIZE        = 1024    // Memory cells, addresses 0-1023.
	DEFAULT_STEP_LIMIT = 1 << 20 // Step budget used when none is given.
)

// Status is the run state of a Vm.
type Status int

const (
	STATUS_RUNNING Status = iota
	STATUS_HALTED
	STATUS_FAULTED
)

var statusNames = [...]string{
	STATUS_RUNNING: "running",
	STATUS_HALTED:  "halted",
	STATUS_FAULTED: "faulted",
}

func (st Status) String() string {
	if st < 0 || int(st) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[st]
}

// Vm executes a Program against its own operand stack, memory array, and
// program counter. A Vm is created fresh for every run and shares nothing
// with other Vm instances, so separate runs of the same Program need no
// coordination. Execution is single-threaded and synchronous.
type Vm struct {
	Verbose bool // If set, logs each executed instruction.

	Pc     int               // Program counter.
	Steps  int               // Instructions executed so far.
	Status Status            // Current run status.
	Stack  Stack             // Operand stack.
	Memory [MEMORY_SIZE]int64 // Memory array, zeroed at creation.

	Input  io.InputStream // Source for read.
	Output io.OutputSink  // Sink for print and printchar.
}

// NewVm creates a Vm with zeroed state wired to the given streams. Either
// stream may be nil if the program performs no I/O on it.
func NewVm(input io.InputStream, output io.OutputSink) (vm *Vm) {
	vm = &Vm{
		Input:  input,
		Output: output,
	}

	return
}

// Run executes prog to completion: Halted, or Faulted with a *Fault
// carrying the fault kind and the pc at which it occurred. A non-positive
// limit selects DEFAULT_STEP_LIMIT; exceeding the budget faults after
// exactly limit executed instructions rather than hanging on an unbounded
// loop.
func (vm *Vm) Run(prog *Program, limit int) (err error) {
	if limit <= 0 {
		limit = DEFAULT_STEP_LIMIT
	}

	for vm.Status == STATUS_RUNNING {
		if vm.Pc >= prog.Len() {
			// Advancing past the last instruction is an implicit halt.
			vm.Status = STATUS_HALTED
			return
		}
		if vm.Steps == limit {
			err = vm.fault(ErrLimitExceeded)
			return
		}
		err = vm.Step(prog)
		if err != nil {
			return
		}
	}

	return
}

// Step fetches, decodes, and executes a single instruction.
func (vm *Vm) Step(prog *Program) (err error) {
	if vm.Pc >= prog.Len() {
		vm.Status = STATUS_HALTED
		return
	}

	in := prog.Instructions[vm.Pc]

	if vm.Verbose {
		log.Printf("%3d: %v", vm.Pc, in)
	}

	vm.Steps++

	switch in.Op {
	case OP_PUSH:
		vm.Stack.Push(in.Arg)
	case OP_POP:
		if _, ok := vm.Stack.Pop(); !ok {
			return vm.fault(ErrStackUnderflow)
		}
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_MOD:
		a, b, ok := vm.Stack.Pop2()
		if !ok {
			return vm.fault(ErrStackUnderflow)
		}
		var v int64
		v, err = arith(in.Op, a, b)
		if err != nil {
			return vm.fault(err)
		}
		vm.Stack.Push(v)
	case OP_DUP:
		v, ok := vm.Stack.Peek()
		if !ok {
			return vm.fault(ErrStackUnderflow)
		}
		vm.Stack.Push(v)
	case OP_SWAP:
		a, b, ok := vm.Stack.Pop2()
		if !ok {
			return vm.fault(ErrStackUnderflow)
		}
		vm.Stack.Push(b)
		vm.Stack.Push(a)
	case OP_LOAD:
		if in.Arg < 0 || in.Arg >= MEMORY_SIZE {
			return vm.fault(ErrAddressInvalid)
		}
		vm.Stack.Push(vm.Memory[in.Arg])
	case OP_STORE:
		v, ok := vm.Stack.Pop()
		if !ok {
			return vm.fault(ErrStackUnderflow)
		}
		if in.Arg < 0 || in.Arg >= MEMORY_SIZE {
			return vm.fault(ErrAddressInvalid)
		}
		vm.Memory[in.Arg] = v
	case OP_JUMP:
		vm.Pc = int(in.Arg)
		return
	case OP_JUMPIF:
		v, ok := vm.Stack.Pop()
		if !ok {
			return vm.fault(ErrStackUnderflow)
		}
		if v != 0 {
			vm.Pc = int(in.Arg)
			return
		}
	case OP_JUMPIFZ:
		v, ok := vm.Stack.Pop()
		if !ok {
			return vm.fault(ErrStackUnderflow)
		}
		if v == 0 {
			vm.Pc = int(in.Arg)
			return
		}
	case OP_CMP:
		a, b, ok := vm.Stack.Pop2()
		if !ok {
			return vm.fault(ErrStackUnderflow)
		}
		switch {
		case a > b:
			vm.Stack.Push(1)
		case a < b:
			vm.Stack.Push(-1)
		default:
			vm.Stack.Push(0)
		}
	case OP_PRINT:
		v, ok := vm.Stack.Pop()
		if !ok {
			return vm.fault(ErrStackUnderflow)
		}
		if vm.Output != nil {
			if err = vm.Output.WriteInt(v); err != nil {
				return vm.fault(err)
			}
		}
	case OP_PRINTCHAR:
		v, ok := vm.Stack.Pop()
		if !ok {
			return vm.fault(ErrStackUnderflow)
		}
		if vm.Output != nil {
			if err = vm.Output.WriteChar(v); err != nil {
				return vm.fault(err)
			}
		}
	case OP_READ:
		if vm.Input == nil {
			return vm.fault(ErrInputExhausted)
		}
		v, rerr := vm.Input.ReadInt()
		if rerr != nil {
			return vm.fault(ErrInputExhausted)
		}
		vm.Stack.Push(v)
	case OP_HALT:
		vm.Status = STATUS_HALTED
		return
	}

	vm.Pc++
	if vm.Pc >= prog.Len() {
		vm.Status = STATUS_HALTED
	}

	return
}

// arith applies a binary arithmetic opcode to a and b.
func arith(op Op, a, b int64) (v int64, err error) {
	switch op {
	case OP_ADD:
		v = a + b
	case OP_SUB:
		v = a - b
	case OP_MUL:
		v = a * b
	case OP_DIV:
		if b == 0 {
			err = ErrDivisionByZero
			return
		}
		if a == math.MinInt64 && b == -1 {
			// Quotient wraps; Go would panic on the overflow.
			v = a
			return
		}
		v = a / b
	case OP_MOD:
		if b == 0 {
			err = ErrDivisionByZero
			return
		}
		if a == math.MinInt64 && b == -1 {
			v = 0
			return
		}
		v = a % b
	}

	return
}

// fault stops the run and records the faulting pc.
func (vm *Vm) fault(err error) error {
	vm.Status = STATUS_FAULTED
	return &Fault{Pc: vm.Pc, Err: err}
}

// Run executes prog on a fresh Vm wired to the given streams and returns
// the Vm in its terminal state. The Program itself is never modified.
func Run(prog *Program, input io.InputStream, output io.OutputSink, limit int) (vm *Vm, err error) {
	vm = NewVm(input, output)
	err = vm.Run(prog, limit)
	return
}
