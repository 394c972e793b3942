package io

import (
	"io"
	"strconv"
)

// intStream yields a fixed sequence of integers.
type intStream struct {
	values []int64
}

var _ InputStream = (*intStream)(nil)

func (is *intStream) ReadInt() (value int64, err error) {
	if len(is.values) == 0 {
		err = io.EOF
		return
	}
	value = is.values[0]
	is.values = is.values[1:]
	return
}

// Ints returns an InputStream yielding the given values in order, then
// io.EOF.
func Ints(values ...int64) InputStream {
	return &intStream{values: values}
}

// parseInt parses an integer token, accepting the 0x/0o/0b prefixes.
func parseInt(text string) (value int64, err error) {
	value, perr := strconv.ParseInt(text, 0, 64)
	if perr != nil {
		err = ErrNotANumber(text)
	}
	return
}

// charFor maps a character code to its rune; codes outside the ASCII range
// map to '?', matching the machine's printchar behavior.
func charFor(code int64) rune {
	if code < 0 || code > 127 {
		return '?'
	}
	return rune(code)
}
