package bf

import (
	"errors"

	"github.com/ezrec/bfc/translate"
)

var f = translate.From

var (
	// Loop errors
	ErrLoopUnopened = errors.New(f("']' without matching '['"))
	ErrLoopUnclosed = errors.New(f("'[' without matching ']'"))

	// Option errors
	ErrTapeSize = errors.New(f("tape size out of range"))
	ErrCellBits = errors.New(f("cell width must be 8, 16 or 32 bits"))
)

// ErrSyntax indicates the source location of a translation error.
type ErrSyntax struct {
	Position
	Err error
}

func (err *ErrSyntax) Error() string {
	return f("line %d column %d %v", err.LineNo, err.Column, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
