// Package io provides the I/O adapters consumed by the stack machine.
// The interpreter never touches files or terminals directly: the caller
// injects an InputStream feeding the read instruction and an OutputSink
// receiving print and printchar emissions.
package io

// InputStream supplies one integer per read instruction. Exhaustion is
// reported as an error, never as an empty value.
type InputStream interface {
	ReadInt() (value int64, err error)
}

// OutputSink accepts interpreter output: decimal-formatted integers from
// print and single characters from printchar. No implicit separators are
// ever inserted; programs produce line breaks with explicit character
// codes.
type OutputSink interface {
	WriteInt(value int64) error
	WriteChar(code int64) error
}
