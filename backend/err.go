package backend

import (
	"errors"

	"github.com/ezrec/bfc/translate"
)

var f = translate.From

var (
	// Job errors
	ErrSourceMissing = errors.New(f("source path missing"))
	ErrBinaryClash   = errors.New(f("executable would overwrite source"))
)

// ErrToolchain reports a failed compiler invocation.
type ErrToolchain struct {
	Command string // Command line of the compiler.
	Output  string // Combined output of the compiler.
	Err     error
}

func (err *ErrToolchain) Error() string {
	return f("%v: %v\n%v", err.Command, err.Err, err.Output)
}

func (err *ErrToolchain) Unwrap() error {
	return err.Err
}

// ErrExit reports the nonzero exit status of a built program.
type ErrExit int

func (err ErrExit) Error() string {
	return f("exit status %d", int(err))
}
