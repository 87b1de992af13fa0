// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bf

import (
	"fmt"
)

const (
	TAPE_SIZE     = 30000   // Cells in the generated program's tape.
	TAPE_SIZE_MAX = 1 << 24 // Largest tape the transducer will emit.
	CELL_BITS     = 8       // Default cell width.
	DUMP_CELLS    = 0x100   // Cells shown by a debug dump.
	DUMP_ROW      = 16      // Cells per debug dump row.
)

// INDENT prefixes every statement of the generated main() body.
const INDENT = "    "

// Cell describes the C representation of a tape cell.
type Cell struct {
	Bits      int    // Width in bits.
	CType     string // C type of a cell.
	HexDigits int    // Digits of a hexadecimal dump entry.
	DecWidth  int    // Columns of a decimal dump entry.
}

var cells = map[int]Cell{
	8:  {Bits: 8, CType: "unsigned char", HexDigits: 2, DecWidth: 3},
	16: {Bits: 16, CType: "unsigned short", HexDigits: 4, DecWidth: 5},
	32: {Bits: 32, CType: "unsigned int", HexDigits: 8, DecWidth: 10},
}

// CellOf returns the cell description for a width in bits.
func CellOf(bits int) (cell Cell, err error) {
	cell, ok := cells[bits]
	if !ok {
		err = ErrCellBits
	}
	return
}

// CheckTape validates a tape geometry, returning the cell description.
// The tape must hold at least the DUMP_CELLS shown by a debug dump.
func CheckTape(tapeSize int, cellBits int) (cell Cell, err error) {
	if tapeSize < DUMP_CELLS || tapeSize > TAPE_SIZE_MAX {
		err = ErrTapeSize
		return
	}

	cell, err = CellOf(cellBits)
	return
}

// Mask returns the largest value a cell can hold.
func (cell Cell) Mask() uint32 {
	return uint32((uint64(1) << cell.Bits) - 1)
}

// HexFormat is the printf() format of one hexadecimal dump entry.
func (cell Cell) HexFormat() string {
	return fmt.Sprintf("%%0%dx ", cell.HexDigits)
}

// DecFormat is the printf() format of one decimal dump entry.
func (cell Cell) DecFormat() string {
	verb := "d"
	if cell.Bits == 32 {
		verb = "u"
	}
	return fmt.Sprintf("%%%d%s ", cell.DecWidth, verb)
}

// RowFormat is the printf() format of a dump row prefix.
const RowFormat = "%03d-%03d: "

// Template holds the C text emitted for a translation.
// Op lines are relative to the main() body, and are written after INDENT.
type Template struct {
	Prologue []string
	Ops      [len(ALPHABET)][]string
	Epilogue []string
}

// NewTemplate creates the template for a tape of tapeSize cells, each
// cellBits wide.
func NewTemplate(tapeSize int, cellBits int) (tmpl *Template, err error) {
	cell, err := CheckTape(tapeSize, cellBits)
	if err != nil {
		return
	}

	tmpl = &Template{}

	tmpl.Prologue = []string{
		"#include <stdio.h>",
		"#include <stdlib.h>",
		"int main(void) {",
		fmt.Sprintf(INDENT+"%s *tape = calloc(%d, sizeof(%s));", cell.CType, tapeSize, cell.CType),
		fmt.Sprintf(INDENT+"%s *ptr = tape;", cell.CType),
		INDENT + "int ch = 0;",
	}

	tmpl.Ops[OP_RIGHT] = []string{"ptr++;"}
	tmpl.Ops[OP_LEFT] = []string{"ptr--;"}
	tmpl.Ops[OP_INC] = []string{"(*ptr)++;"}
	tmpl.Ops[OP_DEC] = []string{"(*ptr)--;"}
	tmpl.Ops[OP_PUT] = []string{"putchar(*ptr);"}
	tmpl.Ops[OP_GET] = []string{"*ptr = (ch = getchar()) == EOF ? 0 : ch;"}
	tmpl.Ops[OP_LOOP] = []string{"while (*ptr) {"}
	tmpl.Ops[OP_END] = []string{"}"}
	tmpl.Ops[OP_HEX_DUMP] = dumpBlock(cell.HexFormat())
	tmpl.Ops[OP_DEC_DUMP] = dumpBlock(cell.DecFormat())

	tmpl.Epilogue = []string{
		INDENT + "free(tape);",
		INDENT + "return 0;",
		"}",
	}

	return
}

// dumpBlock prints the first DUMP_CELLS cells, DUMP_ROW to a line.
func dumpBlock(entry string) []string {
	return []string{
		fmt.Sprintf("for (int i = 0; i < %#x; i++) {", DUMP_CELLS),
		fmt.Sprintf(INDENT+"if (i %% %d == 0) {", DUMP_ROW),
		fmt.Sprintf(INDENT+INDENT+"printf(\"%s\", i, i + %d);", RowFormat, DUMP_ROW-1),
		INDENT + "}",
		fmt.Sprintf(INDENT+"printf(\"%s\", tape[i]);", entry),
		fmt.Sprintf(INDENT+"if ((i + 1) %% %d == 0) {", DUMP_ROW),
		INDENT + INDENT + `printf("\n");`,
		INDENT + "}",
		"}",
	}
}
