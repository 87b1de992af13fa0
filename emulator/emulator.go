// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator executes Brainfuck source in process, producing the same
// output as the C program the bf package generates for it.
package emulator

import (
	"fmt"
	stdio "io"
	"log"

	"github.com/ezrec/bfc/bf"
	"github.com/ezrec/bfc/io"
)

// Emulator state. Tape + cursor + IO channel.
type Emulator struct {
	Verbose  bool     // If set, enables verbose logging.
	TapeSize int      // Cells in the tape. Zero selects bf.TAPE_SIZE.
	CellBits int      // Width of a cell. Zero selects bf.CELL_BITS.
	Program  *Program // Reference to the currently running program.

	Console io.Console // Console IO channel.
	Channel io.Channel // Channel used by ',', '.' and dumps. Defaults to &Console.

	Tape   []uint32 // Cells of the tape.
	Cursor int      // Index of the current cell.
	Pc     int      // Index of the next instruction.
	Ticks  int      // Instructions executed since a reset.

	cell bf.Cell
}

// NewEmulator creates a new emulator, using the console channel.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &Program{},
	}

	emu.Channel = &emu.Console

	return
}

// Reset clears the tape and rewinds to the first instruction.
func (emu *Emulator) Reset() (err error) {
	tapeSize := emu.TapeSize
	if tapeSize == 0 {
		tapeSize = bf.TAPE_SIZE
	}

	cellBits := emu.CellBits
	if cellBits == 0 {
		cellBits = bf.CELL_BITS
	}

	emu.cell, err = bf.CheckTape(tapeSize, cellBits)
	if err != nil {
		return
	}

	if emu.Channel == nil {
		emu.Channel = &emu.Console
	}

	emu.Tape = make([]uint32, tapeSize)
	emu.Cursor = 0
	emu.Pc = 0
	emu.Ticks = 0

	if emu.Verbose {
		log.Printf("emulator: reset, %d cells of %d bits", tapeSize, cellBits)
	}

	return
}

// Load parses source as the program, and resets the emulator.
func (emu *Emulator) Load(source stdio.Reader) (err error) {
	prog, err := Parse(source)
	if err != nil {
		return
	}

	emu.Program = prog
	if emu.Verbose {
		log.Printf("emulator: loaded %d instructions", len(prog.Instructions))
	}

	err = emu.Reset()

	return
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil || emu.Pc >= len(emu.Program.Instructions) {
		return 0
	}

	return emu.Program.Instructions[emu.Pc].LineNo
}

// Dump writes the first bf.DUMP_CELLS cells to the channel, formatted as the
// generated program formats them.
func (emu *Emulator) Dump(hex bool) (err error) {
	for n := range bf.DUMP_CELLS {
		var text string
		if n%bf.DUMP_ROW == 0 {
			text = fmt.Sprintf(bf.RowFormat, n, n+bf.DUMP_ROW-1)
		}
		if hex {
			text += fmt.Sprintf("%0*x ", emu.cell.HexDigits, emu.Tape[n])
		} else {
			text += fmt.Sprintf("%*d ", emu.cell.DecWidth, emu.Tape[n])
		}
		if (n+1)%bf.DUMP_ROW == 0 {
			text += "\n"
		}
		err = io.SendString(emu.Channel, text)
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single instruction.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Program == nil || emu.Tape == nil {
		err = ErrNoProgram
		return
	}

	if emu.Pc >= len(emu.Program.Instructions) {
		done = true
		return
	}

	ins := &emu.Program.Instructions[emu.Pc]
	defer func() {
		if err != nil {
			err = &ErrRuntime{Position: ins.Position, Err: err}
		}
	}()

	if emu.Verbose {
		log.Printf("emulator: %d:%d %v cursor %d", ins.LineNo, ins.Column, ins.Op, emu.Cursor)
	}

	switch ins.Op {
	case bf.OP_RIGHT:
		emu.Cursor++
	case bf.OP_LEFT:
		emu.Cursor--
	case bf.OP_HEX_DUMP, bf.OP_DEC_DUMP:
		err = emu.Dump(ins.Op == bf.OP_HEX_DUMP)
	default:
		if emu.Cursor < 0 || emu.Cursor >= len(emu.Tape) {
			err = ErrCursorRange
			return
		}
		cell := &emu.Tape[emu.Cursor]
		mask := emu.cell.Mask()

		switch ins.Op {
		case bf.OP_INC:
			*cell = (*cell + 1) & mask
		case bf.OP_DEC:
			*cell = (*cell - 1) & mask
		case bf.OP_PUT:
			err = emu.Channel.Send(byte(*cell))
		case bf.OP_GET:
			value, ok := emu.Channel.Receive()
			if ok {
				*cell = uint32(value)
			} else {
				*cell = 0
			}
		case bf.OP_LOOP:
			if *cell == 0 {
				emu.Pc = ins.Jump
			}
		case bf.OP_END:
			if *cell != 0 {
				emu.Pc = ins.Jump
			}
		}
	}

	if err != nil {
		return
	}

	emu.Pc++
	emu.Ticks++

	return
}

// Run ticks the emulator until the program completes.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
