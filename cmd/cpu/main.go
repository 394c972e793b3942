// Command cpu assembles and runs stack machine programs.
//
// Usage:
//
//	cpu [flags] run <file>   assemble and execute a program
//	cpu [flags] list <file>  assemble only and print the listing
//	cpu new <file>           create a new program from the starter template
//	cpu docs                 print the assembly language documentation
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/trifledmatter/virtual-shell/cpu"
	"github.com/trifledmatter/virtual-shell/emulator"
)

func main() {
	var limit int
	var input string
	var output string
	var verbose bool

	flag.IntVar(&limit, "l", 0, "Step budget per run (0 = default)")
	flag.StringVar(&input, "i", "-", "Program input")
	flag.StringVar(&output, "o", "-", "Program output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatalf("Usage: %v [flags] run|list|new|docs [file]", os.Args[0])
	}

	switch flag.Arg(0) {
	case "run":
		doRun(fileArg(), limit, input, output, verbose)
	case "list":
		doList(fileArg(), verbose)
	case "new":
		doNew(fileArg())
	case "docs":
		fmt.Print(docsText)
	default:
		log.Fatalf("%v: unknown command %q", os.Args[0], flag.Arg(0))
	}
}

func fileArg() string {
	if flag.NArg() != 2 {
		log.Fatalf("Usage: %v [flags] %v <file>", os.Args[0], flag.Arg(0))
	}
	return flag.Arg(1)
}

func assemble(filename string, verbose bool) *cpu.Program {
	inf, err := os.Open(filename)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", filename, err)
	}

	return prog
}

func doRun(filename string, limit int, input, output string, verbose bool) {
	emu := emulator.NewEmulator()
	emu.Program = assemble(filename, verbose)
	emu.Verbose = verbose
	emu.StepLimit = limit

	if input == "-" {
		emu.Tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	if err := emu.Run(); err != nil {
		log.Fatalf("%v: %v", filename, err)
	}
}

func doList(filename string, verbose bool) {
	fmt.Print(assemble(filename, verbose).String())
}

func doNew(filename string) {
	if _, err := os.Stat(filename); err == nil {
		log.Fatalf("%v: already exists", filename)
	}
	if err := os.WriteFile(filename, []byte(templateText), 0o644); err != nil {
		log.Fatalf("%v: %v", filename, err)
	}
	fmt.Printf("Created new assembly file: %v\n", filename)
}
