package cpu

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trifledmatter/virtual-shell/io"
)

// doRun assembles and runs a program with the given input, returning the
// final Vm, its transcript, and the run error.
func doRun(t *testing.T, program []string, input ...int64) (vm *Vm, output string, err error) {
	t.Helper()

	prog, aerr := Assemble(strings.Join(program, "\n"))
	if aerr != nil {
		t.Fatalf("assemble: %v", aerr)
	}

	tr := &io.Transcript{}
	vm, err = Run(prog, io.Ints(input...), tr, 0)
	output = tr.String()
	return
}

func TestVmPushHalt(t *testing.T) {
	assert := assert.New(t)

	vm, output, err := doRun(t, []string{"push 5", "halt"})
	assert.NoError(err)
	assert.Equal(STATUS_HALTED, vm.Status)
	assert.Equal([]int64{5}, vm.Stack.Data)
	assert.Equal("", output)
}

func TestVmImplicitHalt(t *testing.T) {
	assert := assert.New(t)

	// Advancing past the last instruction halts; it is not an error.
	vm, _, err := doRun(t, []string{"push 1", "push 2", "add"})
	assert.NoError(err)
	assert.Equal(STATUS_HALTED, vm.Status)
	assert.Equal([]int64{3}, vm.Stack.Data)
}

func TestVmSubPrint(t *testing.T) {
	assert := assert.New(t)

	_, output, err := doRun(t, []string{"push 5", "push 3", "sub", "print"})
	assert.NoError(err)
	assert.Equal("2", output)
}

func TestVmArithmetic(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		op   string
		a, b int64
		want int64
	}{
		{"add", 2, 3, 5},
		{"sub", 3, 5, -2},
		{"mul", -4, 6, -24},
		{"div", 7, 2, 3},
		{"div", -7, 2, -3},
		{"mod", 7, 3, 1},
		{"mod", -7, 3, -1},
	}

	for _, entry := range table {
		prog, err := Assemble("read\nread\n" + entry.op)
		assert.NoError(err)

		vm, err := Run(prog, io.Ints(entry.a, entry.b), nil, 0)
		assert.NoError(err)
		assert.Equal([]int64{entry.want}, vm.Stack.Data, entry)
	}
}

func TestVmDivisionByZero(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []string{"div", "mod"} {
		vm, _, err := doRun(t, []string{"push 7", "push 0", op})
		assert.Equal(STATUS_FAULTED, vm.Status)
		assert.True(errors.Is(err, ErrDivisionByZero))

		var fault *Fault
		assert.True(errors.As(err, &fault))
		assert.Equal(2, fault.Pc)
	}
}

func TestVmStackUnderflow(t *testing.T) {
	assert := assert.New(t)

	table := [][]string{
		{"pop"},
		{"add"},
		{"push 1", "sub"},
		{"dup"},
		{"push 1", "swap"},
		{"cmp"},
		{"print"},
		{"printchar"},
		{"store 0"},
		{"jumpif 0"},
		{"jumpifz 0"},
	}

	for _, program := range table {
		vm, _, err := doRun(t, program)
		assert.Equal(STATUS_FAULTED, vm.Status, program)
		assert.True(errors.Is(err, ErrStackUnderflow), program)
	}
}

func TestVmMemoryBounds(t *testing.T) {
	assert := assert.New(t)

	vm, _, err := doRun(t, []string{"push 11", "store 1023", "load 1023", "print"})
	assert.NoError(err)
	assert.Equal(int64(11), vm.Memory[1023])

	vm, _, err = doRun(t, []string{"push 11", "store 1024"})
	assert.Equal(STATUS_FAULTED, vm.Status)
	assert.True(errors.Is(err, ErrAddressInvalid))

	_, _, err = doRun(t, []string{"load 1024"})
	assert.True(errors.Is(err, ErrAddressInvalid))
}

func TestVmMemoryZeroed(t *testing.T) {
	assert := assert.New(t)

	vm, _, err := doRun(t, []string{"load 512"})
	assert.NoError(err)
	assert.Equal([]int64{0}, vm.Stack.Data)
}

func TestVmCmp(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		a, b int64
		want int64
	}{
		{5, 3, 1},
		{3, 5, -1},
		{4, 4, 0},
	}

	for _, entry := range table {
		prog, err := Assemble("read\nread\ncmp")
		assert.NoError(err)

		vm, err := Run(prog, io.Ints(entry.a, entry.b), nil, 0)
		assert.NoError(err)
		assert.Equal([]int64{entry.want}, vm.Stack.Data, entry)
	}
}

func TestVmDupSwap(t *testing.T) {
	assert := assert.New(t)

	vm, _, err := doRun(t, []string{"push 1", "push 2", "dup"})
	assert.NoError(err)
	assert.Equal([]int64{1, 2, 2}, vm.Stack.Data)

	vm, _, err = doRun(t, []string{"push 1", "push 2", "swap"})
	assert.NoError(err)
	assert.Equal([]int64{2, 1}, vm.Stack.Data)
}

func TestVmJumps(t *testing.T) {
	assert := assert.New(t)

	// jumpif takes the branch on non-zero, jumpifz on zero.
	vm, _, err := doRun(t, []string{
		"push 1",
		"jumpif yes",
		"push 100",
		"yes:",
		"push 0",
		"jumpifz done",
		"push 200",
		"done:",
		"halt",
	})
	assert.NoError(err)
	assert.Empty(vm.Stack.Data)
}

func TestVmPrintPops(t *testing.T) {
	assert := assert.New(t)

	vm, output, err := doRun(t, []string{"push 5", "dup", "print", "print"})
	assert.NoError(err)
	assert.Equal("55", output)
	assert.Empty(vm.Stack.Data)
}

func TestVmPrintNoSeparators(t *testing.T) {
	assert := assert.New(t)

	// Line breaks only come from explicit character codes.
	_, output, err := doRun(t, []string{
		"push 1", "print",
		"push 2", "print",
		"push 10", "printchar",
	})
	assert.NoError(err)
	assert.Equal("12\n", output)
}

func TestVmPrintChar(t *testing.T) {
	assert := assert.New(t)

	_, output, err := doRun(t, []string{
		"push 'H'", "printchar",
		"push 'i'", "printchar",
		"push 200", "printchar",
		"push -1", "printchar",
	})
	assert.NoError(err)
	assert.Equal("Hi??", output)
}

func TestVmRead(t *testing.T) {
	assert := assert.New(t)

	_, output, err := doRun(t, []string{"read", "read", "add", "print"}, 30, 12)
	assert.NoError(err)
	assert.Equal("42", output)
}

func TestVmReadExhausted(t *testing.T) {
	assert := assert.New(t)

	vm, _, err := doRun(t, []string{"read", "read"}, 1)
	assert.Equal(STATUS_FAULTED, vm.Status)
	assert.True(errors.Is(err, ErrInputExhausted))

	var fault *Fault
	assert.True(errors.As(err, &fault))
	assert.Equal(1, fault.Pc)
}

func TestVmStepLimit(t *testing.T) {
	assert := assert.New(t)

	prog, err := Assemble("loop: jump loop")
	assert.NoError(err)

	vm, err := Run(prog, nil, nil, 1000)
	assert.Equal(STATUS_FAULTED, vm.Status)
	assert.True(errors.Is(err, ErrLimitExceeded))
	assert.Equal(1000, vm.Steps)
}

func TestVmFactorial(t *testing.T) {
	assert := assert.New(t)

	_, output, err := doRun(t, []string{
		"push 1", // accumulator
		"push 5", // counter
		"loop:",
		"dup",
		"jumpifz done",
		"dup",
		"store 0",
		"mul",
		"load 0",
		"push 1",
		"sub",
		"jump loop",
		"done:",
		"pop",
		"print",
	})
	assert.NoError(err)
	assert.Equal("120", output)
}

func TestVmSharedProgram(t *testing.T) {
	assert := assert.New(t)

	// One Program, many concurrent runs on separate Vm instances.
	prog, err := Assemble("read\nread\nmul\nprint")
	assert.NoError(err)

	var wg sync.WaitGroup
	outputs := make([]string, 8)
	for n := range outputs {
		n := n
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr := &io.Transcript{}
			_, rerr := Run(prog, io.Ints(int64(n), 10), tr, 0)
			assert.NoError(rerr)
			outputs[n] = tr.String()
		}()
	}
	wg.Wait()

	for n, output := range outputs {
		assert.Equal(strconv.Itoa(n*10), output)
	}
}

func TestVmFreshStatePerRun(t *testing.T) {
	assert := assert.New(t)

	prog, err := Assemble("load 3\npush 1\nadd\ndup\nstore 3\nprint")
	assert.NoError(err)

	// Memory does not leak between runs; both print 1.
	for i := 0; i < 2; i++ {
		tr := &io.Transcript{}
		_, rerr := Run(prog, nil, tr, 0)
		assert.NoError(rerr)
		assert.Equal("1", tr.String())
	}
}
