package io

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func TestConsole_Receive(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Input: iotest.OneByteReader(strings.NewReader("AB"))}

	value, ok := con.Receive()
	assert.True(ok)
	assert.Equal(byte('A'), value)

	value, ok = con.Receive()
	assert.True(ok)
	assert.Equal(byte('B'), value)

	value, ok = con.Receive()
	assert.False(ok)
	assert.Equal(byte(0), value)
	assert.NoError(con.Err())

	// End of input is sticky until rewound.
	con.Input = strings.NewReader("C")
	_, ok = con.Receive()
	assert.False(ok)

	con.Rewind()
	value, ok = con.Receive()
	assert.True(ok)
	assert.Equal(byte('C'), value)
}

func TestConsole_ReceiveError(t *testing.T) {
	assert := assert.New(t)

	errRead := errors.New("read failed")
	con := &Console{Input: iotest.ErrReader(errRead)}

	_, ok := con.Receive()
	assert.False(ok)
	assert.ErrorIs(con.Err(), errRead)

	con = &Console{}
	_, ok = con.Receive()
	assert.False(ok)
}

func TestConsole_Send(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	con := &Console{Output: output}

	assert.NoError(con.Send('h'))
	assert.NoError(con.Send(0))
	assert.Equal([]byte{'h', 0}, output.Bytes())

	con = &Console{}
	assert.NoError(con.Send('x'))
}
