// Package emulator binds an assembled Program to a fresh Vm and the
// standard tape channels, and maps runtime faults back to source lines.
package emulator

import (
	"errors"

	"github.com/trifledmatter/virtual-shell/cpu"
	"github.com/trifledmatter/virtual-shell/io"
)

// Emulator state. Program + Vm + tape channels.
//
// The Program is the reusable artifact; the Vm is disposable and replaced
// by Reset before every run. Output is recorded in the Transcript and,
// when the Tape has an Output writer, forwarded to it as it is produced.
type Emulator struct {
	Verbose bool         // If set, enables verbose logging.
	Program *cpu.Program // Currently loaded program.
	Vm      *cpu.Vm      // Machine state for the current run.

	Tape       io.Tape       // Byte-stream input/output channel.
	Transcript io.Transcript // Recorded output of the current run.

	StepLimit int // Step budget per run; 0 selects the default.
}

// NewEmulator creates an emulator with an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &cpu.Program{},
	}

	return
}

// Reset discards all machine state and wires a fresh Vm to the tape
// channels. The loaded Program is kept.
func (emu *Emulator) Reset() {
	emu.Transcript.Reset()
	emu.Transcript.Forward = nil
	if emu.Tape.Output != nil {
		emu.Transcript.Forward = &emu.Tape
	}

	emu.Vm = cpu.NewVm(&emu.Tape, &emu.Transcript)
	emu.Vm.Verbose = emu.Verbose
}

// LineNo returns the source line of the instruction the Vm will execute
// next, or 0 when there is none.
func (emu *Emulator) LineNo() int {
	if emu.Vm == nil {
		return 0
	}
	return emu.Program.LineNo(emu.Vm.Pc)
}

// Output returns the transcript of the current run.
func (emu *Emulator) Output() string {
	return emu.Transcript.String()
}

// Run resets the emulator and executes the loaded program to completion.
// Runtime faults come back wrapped in an *ErrRuntime carrying the source
// line of the faulting instruction.
func (emu *Emulator) Run() (err error) {
	emu.Reset()

	err = emu.Vm.Run(emu.Program, emu.StepLimit)
	return emu.lineWrap(err)
}

// Tick executes a single instruction of the current run. Reset must have
// been called first.
func (emu *Emulator) Tick() (done bool, err error) {
	err = emu.lineWrap(emu.Vm.Step(emu.Program))
	done = emu.Vm.Status != cpu.STATUS_RUNNING
	return
}

func (emu *Emulator) lineWrap(err error) error {
	var fault *cpu.Fault
	if errors.As(err, &fault) {
		return &ErrRuntime{LineNo: emu.Program.LineNo(fault.Pc), Err: err}
	}
	return err
}
