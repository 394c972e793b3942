package cpu

import (
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"MEMORY_SIZE": strconv.Itoa(MEMORY_SIZE),
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Assembler is a two-pass assembler for the stack machine.
//
// Pass 1 walks the line records binding each label to the index of the
// instruction that follows it; labels consume no address. Pass 2 encodes
// each instruction, resolving label and literal operands into absolute
// addresses. Assembly is pure: it never executes anything, and no Program
// is produced if any line fails.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Label  map[string]int    // Map of labels to instruction indexes.
	Equate map[string]string // Map of equates.

	predefine map[string]string // Predefines
}

// Predefine defines a new equate or redefines an existing equate ahead of
// parsing.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// Parse reads assembly source and returns the resolved Program.
// The returned error, if not nil, is an *ErrSyntax locating the offending
// line.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	lexer := Lexer{Verbose: asm.Verbose}
	lines, err := lexer.Lex(input)
	if err != nil {
		return
	}

	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	for equ, val := range asm.predefine {
		asm.Equate[equ] = val
	}

	// Pass 1: bind labels to instruction addresses.
	addr := 0
	for _, ln := range lines {
		if ln.IsLabel() {
			if ln.Label == "" {
				err = syntaxErr(ln, ErrLabelEmpty)
				return
			}
			if !identRe.MatchString(ln.Label) {
				err = syntaxErr(ln, ErrLabelInvalid)
				return
			}
			if _, ok := asm.Label[ln.Label]; ok {
				err = syntaxErr(ln, ErrLabelDuplicate)
				return
			}
			asm.Label[ln.Label] = addr
			continue
		}
		if strings.HasPrefix(ln.Mnemonic, ".") {
			continue
		}
		addr++
	}
	count := addr

	// Pass 2: encode instructions and resolve operands.
	code := make([]Instruction, 0, count)
	for _, ln := range lines {
		if ln.IsLabel() {
			continue
		}

		asm.Equate["LINENO"] = strconv.Itoa(ln.LineNo)

		if strings.HasPrefix(ln.Mnemonic, ".") {
			if err = asm.parseDirective(ln); err != nil {
				err = syntaxErr(ln, err)
				return
			}
			continue
		}

		var in Instruction
		in, err = asm.parseInstruction(ln, count)
		if err != nil {
			err = syntaxErr(ln, err)
			return
		}
		code = append(code, in)

		if asm.Verbose {
			log.Printf("%3d: %v", len(code)-1, in)
		}
	}

	prog = &Program{
		Instructions: code,
		Label:        maps.Clone(asm.Label),
	}

	return
}

// parseDirective handles assembler directives. Only .equ is defined.
func (asm *Assembler) parseDirective(ln Line) (err error) {
	if ln.Mnemonic != ".equ" {
		return ErrDirectiveUnknown
	}
	if len(ln.Args) != 2 {
		return ErrEquateSyntax
	}
	name, value := ln.Args[0], ln.Args[1]
	if !identRe.MatchString(name) {
		return ErrEquateSyntax
	}
	if _, ok := asm.Equate[name]; ok {
		return ErrEquateDuplicate
	}

	// Expression values are evaluated at definition.
	if strings.HasPrefix(value, "$(") {
		var v int64
		v, err = asm.parenEval(value)
		if err != nil {
			return
		}
		value = strconv.FormatInt(v, 10)
	}
	asm.Equate[name] = value

	return
}

// parseInstruction encodes a single instruction record. The count argument
// is the total instruction count, used to range-check jump targets.
func (asm *Assembler) parseInstruction(ln Line, count int) (in Instruction, err error) {
	op, ok := OpByName(ln.Mnemonic)
	if !ok {
		err = ErrInstructionUnknown
		return
	}

	in = Instruction{Op: op, LineNo: ln.LineNo}

	if !op.HasOperand() {
		if len(ln.Args) != 0 {
			err = ErrOperandExtra
		}
		return
	}

	if len(ln.Args) == 0 {
		err = ErrOperandMissing
		return
	}
	if len(ln.Args) > 1 {
		err = ErrOperandExtra
		return
	}
	word := ln.Args[0]

	if op == OP_PUSH {
		in.Arg, err = asm.resolveValue(word)
		return
	}

	// Address operand: label reference or literal.
	if target, found := asm.Label[word]; found {
		in.Arg = int64(target)
	} else if identRe.MatchString(word) {
		if equ, isEqu := asm.Equate[word]; isEqu {
			in.Arg, err = asm.resolveValue(equ)
		} else {
			err = ErrLabelMissing(word)
		}
	} else {
		in.Arg, err = asm.resolveValue(word)
	}
	if err != nil {
		return
	}

	// Program addresses are always literals or labels, so out-of-range
	// jump targets are assembly-time errors. The address one past the
	// last instruction is the implicit halt and is allowed. Memory
	// addresses are checked at execution time instead.
	if op.IsJump() && (in.Arg < 0 || in.Arg > int64(count)) {
		err = ErrJumpOutOfRange
	}

	return
}

// resolveValue resolves an operand token to its value: an equate name, a
// $() expression, a character quote, or an integer literal.
func (asm *Assembler) resolveValue(word string) (value int64, err error) {
	if equ, ok := asm.Equate[word]; ok {
		word = equ
	}
	if strings.HasPrefix(word, "$(") {
		return asm.parenEval(word)
	}
	return asm.valueOf(word)
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	if strings.HasPrefix(word, "'") {
		str, qerr := strconv.Unquote(word)
		if qerr != nil {
			err = ErrParseNumber(word)
			return
		}
		value = int64([]rune(str)[0])
		return
	}

	value, perr := strconv.ParseInt(word, 0, 64)
	if perr != nil {
		err = ErrParseNumber(word)
	}

	return
}

// parenEval does compile-time $(...) evaluations. Integer-valued equates
// are visible to the expression.
func (asm *Assembler) parenEval(word string) (value int64, err error) {
	if !strings.HasSuffix(word, ")") {
		err = ErrParseExpression(word)
		return
	}
	expr := word[2 : len(word)-1]

	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v, verr := asm.valueOf(str)
		if verr != nil {
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	prog := "rc=" + expr + "\n"
	dict, eerr := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if eerr != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
	}

	return
}

// Assemble parses source text with a default Assembler.
func Assemble(source string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(source))
}

func syntaxErr(ln Line, err error) error {
	return &ErrSyntax{LineNo: ln.LineNo, Line: ln.Text, Err: err}
}
