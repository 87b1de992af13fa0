// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/bfc/internal"
)

// Position is a location in the source, counting from line 1, column 1.
type Position struct {
	LineNo int // Line number of the symbol.
	Column int // Byte offset of the symbol in its line.
}

// advance moves the position past the byte c.
func (pos *Position) advance(c byte) {
	if c == '\n' {
		pos.LineNo++
		pos.Column = 0
		return
	}
	pos.Column++
}

// Transducer is a single pass translator from Brainfuck source to C.
// The zero value translates to the classic 30000 cell, 8 bit tape.
type Transducer struct {
	Verbose  bool // If set, logs each translated symbol.
	Strict   bool // If set, rejects unbalanced loops.
	TapeSize int  // Cells in the tape. Zero selects TAPE_SIZE.
	CellBits int  // Width of a cell. Zero selects CELL_BITS.
}

func (tr *Transducer) tapeSize() int {
	if tr.TapeSize == 0 {
		return TAPE_SIZE
	}
	return tr.TapeSize
}

func (tr *Transducer) cellBits() int {
	if tr.CellBits == 0 {
		return CELL_BITS
	}
	return tr.CellBits
}

// Defines returns an iterator over the constants of the generated program.
func (tr *Transducer) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"TAPE_SIZE":  fmt.Sprintf("%v", tr.tapeSize()),
		"CELL_BITS":  fmt.Sprintf("%v", tr.cellBits()),
		"DUMP_CELLS": fmt.Sprintf("%v", DUMP_CELLS),
		"DUMP_ROW":   fmt.Sprintf("%v", DUMP_ROW),
	})
}

// writeLines writes each line, prefixed by indent.
func writeLines(out *bufio.Writer, indent string, lines []string) (err error) {
	for _, line := range lines {
		_, err = out.WriteString(indent + line + "\n")
		if err != nil {
			return
		}
	}
	return
}

// Translate reads the source from input, and writes the C program to output.
//
// Output is written as it is translated. On error, output holds the partial
// program written so far.
func (tr *Transducer) Translate(input io.Reader, output io.Writer) (err error) {
	tmpl, err := NewTemplate(tr.tapeSize(), tr.cellBits())
	if err != nil {
		return
	}

	in := bufio.NewReader(input)
	out := bufio.NewWriter(output)
	defer func() {
		flush_err := out.Flush()
		if err == nil {
			err = flush_err
		}
	}()

	err = writeLines(out, "", tmpl.Prologue)
	if err != nil {
		return
	}

	pos := Position{LineNo: 1}
	open := &internal.Stack[Position]{}

	for {
		var c byte
		c, err = in.ReadByte()
		if errors.Is(err, io.EOF) {
			err = nil
			break
		}
		if err != nil {
			return
		}

		pos.advance(c)

		op, ok := Decode(c)
		if !ok {
			continue
		}

		if tr.Verbose {
			log.Printf("bf: %d:%d %v", pos.LineNo, pos.Column, op)
		}

		if tr.Strict {
			switch op {
			case OP_LOOP:
				open.Push(pos)
			case OP_END:
				_, ok = open.Pop()
				if !ok {
					err = &ErrSyntax{Position: pos, Err: ErrLoopUnopened}
					return
				}
			}
		}

		err = writeLines(out, INDENT, tmpl.Ops[op])
		if err != nil {
			return
		}
	}

	if unclosed, ok := open.Peek(); ok {
		err = &ErrSyntax{Position: unclosed, Err: ErrLoopUnclosed}
		return
	}

	err = writeLines(out, "", tmpl.Epilogue)

	return
}
