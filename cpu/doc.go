// Package cpu implements the assembler and interpreter for the virtual
// shell's stack machine.
//
// The machine operates on a LIFO stack of signed 64-bit integers, a fixed
// 1024-cell memory array, and a program counter. Programs are written in a
// line-oriented assembly language, translated by a two-pass assembler into
// an immutable Program, and executed by a Vm created fresh for each run.
//
// Assembly and execution are fully decoupled: a Program can be assembled
// once, inspected or listed without running it, and shared read-only across
// any number of concurrent Vm runs.
package cpu
