package io

import (
	"errors"
	"io"
)

// Console provides sequential I/O for the emulated program.
// It wraps an io.Reader for input and io.Writer for output.
type Console struct {
	Input  io.Reader
	Output io.Writer

	eof bool
	err error
}

var _ Channel = (*Console)(nil)

// Rewind is not possible on a console, but forgets a prior end of input.
func (con *Console) Rewind() {
	con.eof = false
	con.err = nil
}

// Err returns the first input error other than io.EOF.
func (con *Console) Err() error {
	return con.err
}

// Receive reads one byte from the input stream.
// A nil Input, io.EOF, or any read error is end of input.
func (con *Console) Receive() (value byte, ok bool) {
	if con.eof || con.Input == nil {
		return
	}

	var one [1]byte
	for {
		n, err := con.Input.Read(one[:])
		if n == 1 {
			value = one[0]
			ok = true
			return
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				con.err = err
			}
			con.eof = true
			return
		}
	}
}

// Send writes one byte to the output stream.
// A nil Output discards.
func (con *Console) Send(value byte) (err error) {
	if con.Output == nil {
		return
	}

	_, err = con.Output.Write([]byte{value})

	return
}
