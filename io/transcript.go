package io

import (
	"strconv"
	"strings"
)

// Transcript records everything the program emits, optionally forwarding
// each write to another sink. A fresh Transcript per run yields the run's
// complete output transcript.
type Transcript struct {
	Forward OutputSink // Optional sink to copy writes to.

	buf strings.Builder
}

var _ OutputSink = (*Transcript)(nil)

func (tr *Transcript) WriteInt(value int64) (err error) {
	tr.buf.WriteString(strconv.FormatInt(value, 10))
	if tr.Forward != nil {
		err = tr.Forward.WriteInt(value)
	}
	return
}

func (tr *Transcript) WriteChar(code int64) (err error) {
	tr.buf.WriteRune(charFor(code))
	if tr.Forward != nil {
		err = tr.Forward.WriteChar(code)
	}
	return
}

// String returns the output recorded so far.
func (tr *Transcript) String() string {
	return tr.buf.String()
}

// Reset discards the recorded output.
func (tr *Transcript) Reset() {
	tr.buf.Reset()
}
