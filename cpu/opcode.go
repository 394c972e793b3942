package cpu

import (
	"fmt"
)

// Op identifies a stack machine operation.
type Op int

const (
	OP_PUSH Op = iota
	OP_POP
	OP_ADD
	OP_SUB
	OP_MUL
	OP_DIV
	OP_MOD
	OP_DUP
	OP_SWAP
	OP_LOAD
	OP_STORE
	OP_JUMP
	OP_JUMPIF
	OP_JUMPIFZ
	OP_CMP
	OP_PRINT
	OP_PRINTCHAR
	OP_READ
	OP_HALT
)

// opNames maps opcodes to their mnemonics. Mnemonics are lowercase and
// matched case-sensitively.
var opNames = [...]string{
	OP_PUSH:      "push",
	OP_POP:       "pop",
	OP_ADD:       "add",
	OP_SUB:       "sub",
	OP_MUL:       "mul",
	OP_DIV:       "div",
	OP_MOD:       "mod",
	OP_DUP:       "dup",
	OP_SWAP:      "swap",
	OP_LOAD:      "load",
	OP_STORE:     "store",
	OP_JUMP:      "jump",
	OP_JUMPIF:    "jumpif",
	OP_JUMPIFZ:   "jumpifz",
	OP_CMP:       "cmp",
	OP_PRINT:     "print",
	OP_PRINTCHAR: "printchar",
	OP_READ:      "read",
	OP_HALT:      "halt",
}

var opByName = func() map[string]Op {
	m := make(map[string]Op, len(opNames))
	for op, name := range opNames {
		m[name] = Op(op)
	}
	return m
}()

// OpByName maps a mnemonic to its opcode.
func OpByName(name string) (op Op, ok bool) {
	op, ok = opByName[name]
	return
}

// String returns the mnemonic for the opcode.
func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return fmt.Sprintf("op(%d)", int(op))
	}
	return opNames[op]
}

// HasOperand reports whether the opcode takes exactly one operand.
// All other opcodes take none.
func (op Op) HasOperand() bool {
	switch op {
	case OP_PUSH, OP_LOAD, OP_STORE, OP_JUMP, OP_JUMPIF, OP_JUMPIFZ:
		return true
	}
	return false
}

// IsJump reports whether the operand is a program address. Jump targets
// are resolved and range-checked at assembly time.
func (op Op) IsJump() bool {
	switch op {
	case OP_JUMP, OP_JUMPIF, OP_JUMPIFZ:
		return true
	}
	return false
}

// IsMemory reports whether the operand is a memory address. Memory
// addresses are checked at execution time, not assembly time.
func (op Op) IsMemory() bool {
	return op == OP_LOAD || op == OP_STORE
}

// Instruction is a single resolved operation. Arg is meaningful only for
// opcodes with HasOperand(); for address opcodes it is an absolute index
// with no symbolic references remaining. LineNo records the source line
// for diagnostics.
type Instruction struct {
	Op     Op
	Arg    int64
	LineNo int
}

// String returns the assembly language representation of the instruction.
func (in Instruction) String() string {
	if in.Op.HasOperand() {
		return fmt.Sprintf("%v %d", in.Op, in.Arg)
	}
	return in.Op.String()
}
