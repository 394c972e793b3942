package io

import (
	"github.com/trifledmatter/virtual-shell/translate"
)

var f = translate.From

// ErrNotANumber reports an input token that does not parse as an integer.
type ErrNotANumber string

func (err ErrNotANumber) Error() string {
	return f("'%v' is not a number", string(err))
}
