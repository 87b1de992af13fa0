package emulator

import (
	"errors"

	"github.com/ezrec/bfc/bf"
	"github.com/ezrec/bfc/translate"
)

var f = translate.From

var (
	// Runtime errors
	ErrCursorRange = errors.New(f("cursor outside of tape"))
	ErrNoProgram   = errors.New(f("no program loaded"))
)

// ErrRuntime indicates the source location of a runtime error.
type ErrRuntime struct {
	bf.Position
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("line %d column %d %v", err.LineNo, err.Column, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
