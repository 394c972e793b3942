package io

import (
	"bufio"
	"fmt"
	"io"
)

// Tape adapts plain byte streams to the machine's I/O interfaces. Input is
// read as whitespace-separated integer tokens; output is written verbatim.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	scanner *bufio.Scanner
}

var _ InputStream = (*Tape)(nil)
var _ OutputSink = (*Tape)(nil)

// ReadInt scans the next whitespace-separated token from Input and parses
// it as an integer. Returns io.EOF when the input is exhausted.
func (tp *Tape) ReadInt() (value int64, err error) {
	if tp.Input == nil {
		err = io.EOF
		return
	}
	if tp.scanner == nil {
		tp.scanner = bufio.NewScanner(tp.Input)
		tp.scanner.Split(bufio.ScanWords)
	}

	if !tp.scanner.Scan() {
		err = tp.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	return parseInt(tp.scanner.Text())
}

// WriteInt writes the decimal text of value with no separator.
func (tp *Tape) WriteInt(value int64) (err error) {
	_, err = fmt.Fprintf(tp.Output, "%d", value)
	return
}

// WriteChar writes the character for the given code. Codes outside the
// ASCII range come out as '?'.
func (tp *Tape) WriteChar(code int64) (err error) {
	_, err = fmt.Fprintf(tp.Output, "%c", charFor(code))
	return
}
