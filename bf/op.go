// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bf

import (
	"strings"
)

// Op is a source instruction.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_RIGHT    = Op(0) // >
	OP_LEFT     = Op(1) // <
	OP_INC      = Op(2) // +
	OP_DEC      = Op(3) // -
	OP_PUT      = Op(4) // .
	OP_GET      = Op(5) // ,
	OP_LOOP     = Op(6) // [
	OP_END      = Op(7) // ]
	OP_HEX_DUMP = Op(8) // #
	OP_DEC_DUMP = Op(9) // $
)

// ALPHABET holds the recognized symbols, indexed by Op.
const ALPHABET = "><+-.,[]#$"

// Decode returns the Op for a source byte. Bytes outside of ALPHABET are
// comments, and return ok == false.
func Decode(symbol byte) (op Op, ok bool) {
	n := strings.IndexByte(ALPHABET, symbol)
	if n < 0 {
		return
	}

	op = Op(n)
	ok = true
	return
}

// Symbol returns the source byte for the Op.
func (op Op) Symbol() byte {
	return ALPHABET[op]
}
