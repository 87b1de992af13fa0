package config

import (
	"errors"

	"github.com/ezrec/bfc/translate"
)

var f = translate.From

var (
	// Config errors
	ErrTarget = errors.New(f("target must be one of c, exe, run or emulate"))
)

// ErrFormat indicates a configuration file extension that is not understood.
type ErrFormat string

func (err ErrFormat) Error() string {
	return f("'%v' is not a .star, .yml or .yaml file", string(err))
}

// ErrKey indicates an unknown configuration setting.
type ErrKey string

func (err ErrKey) Error() string {
	return f("'%v' is not a setting", string(err))
}

// ErrType indicates a configuration setting of the wrong type.
type ErrType struct {
	Key  string // Setting name.
	Want string // Expected type.
	Got  string // Actual type.
}

func (err *ErrType) Error() string {
	return f("'%v' must be %v, not %v", err.Key, err.Want, err.Got)
}

// ErrLoad indicates the configuration file that failed to load.
type ErrLoad struct {
	Path string
	Err  error
}

func (err *ErrLoad) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}
