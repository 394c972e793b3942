package cpu

import (
	"fmt"
	"sort"
	"strings"
)

// Program is an ordered, immutable instruction sequence produced by the
// Assembler. A Program holds no mutable run state and may be shared
// read-only across concurrent Vm runs. The label table is retained for
// listings and diagnostics only; no symbolic references remain in the
// instructions themselves.
type Program struct {
	Instructions []Instruction
	Label        map[string]int
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Instructions)
}

// LineNo returns the source line of the instruction at pc, or 0 when pc is
// out of range.
func (prog *Program) LineNo(pc int) int {
	if pc < 0 || pc >= len(prog.Instructions) {
		return 0
	}
	return prog.Instructions[pc].LineNo
}

// labelsAt returns the label names bound to the given address, sorted.
func (prog *Program) labelsAt(addr int) (names []string) {
	for name, at := range prog.Label {
		if at == addr {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return
}

// String returns a listing of the program with addresses and labels.
func (prog *Program) String() string {
	var sb strings.Builder
	for pc, in := range prog.Instructions {
		for _, name := range prog.labelsAt(pc) {
			fmt.Fprintf(&sb, "%v:\n", name)
		}
		fmt.Fprintf(&sb, "%4d  %v\n", pc, in)
	}
	for _, name := range prog.labelsAt(len(prog.Instructions)) {
		fmt.Fprintf(&sb, "%v:\n", name)
	}
	return sb.String()
}
