package cli

import (
	"errors"

	"github.com/ezrec/bfc/translate"
)

var f = translate.From

var (
	// Argument errors
	ErrArgs = errors.New(f("at most one input file may be given"))
)

// ErrFile indicates the file a failure occurred on.
type ErrFile struct {
	Path string
	Err  error
}

func (err *ErrFile) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrFile) Unwrap() error {
	return err.Err
}
