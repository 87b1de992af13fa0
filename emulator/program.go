// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"bufio"
	"errors"
	"io"

	"github.com/ezrec/bfc/bf"
	"github.com/ezrec/bfc/internal"
)

// Instruction is a single decoded source symbol.
type Instruction struct {
	bf.Position
	Op   bf.Op
	Jump int // Index of the matching loop instruction, for '[' and ']'.
}

// Program is a decoded source, with matched loops.
type Program struct {
	Instructions []Instruction
}

// Parse decodes a source program. Unlike the transducer, loops must balance.
func Parse(input io.Reader) (prog *Program, err error) {
	in := bufio.NewReader(input)

	prog = &Program{}
	pos := bf.Position{LineNo: 1}
	open := &internal.Stack[int]{}

	for {
		var c byte
		c, err = in.ReadByte()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			prog = nil
			return
		}

		if c == '\n' {
			pos.LineNo++
			pos.Column = 0
			continue
		}
		pos.Column++

		op, ok := bf.Decode(c)
		if !ok {
			continue
		}

		ins := Instruction{Position: pos, Op: op}
		index := len(prog.Instructions)

		switch op {
		case bf.OP_LOOP:
			open.Push(index)
		case bf.OP_END:
			ins.Jump, ok = open.Pop()
			if !ok {
				err = &bf.ErrSyntax{Position: pos, Err: bf.ErrLoopUnopened}
				prog = nil
				return
			}
			prog.Instructions[ins.Jump].Jump = index
		}

		prog.Instructions = append(prog.Instructions, ins)
	}

	if unclosed, ok := open.Peek(); ok {
		err = &bf.ErrSyntax{
			Position: prog.Instructions[unclosed].Position,
			Err:      bf.ErrLoopUnclosed,
		}
		prog = nil
	}

	return
}
