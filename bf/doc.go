// Package bf translates Brainfuck source into an equivalent C program.
//
// The translation is a single pass over the source bytes. Each of the ten
// recognized symbols maps to a fixed C template, every other byte is ignored.
// Two symbols beyond the classic eight, '#' and '$', emit code that dumps the
// first 256 tape cells in hexadecimal and decimal.
//
// Loops are expressed with C block nesting, so the default translation never
// checks that '[' and ']' balance. Setting Transducer.Strict tracks open loops
// and rejects unbalanced source with an ErrSyntax.
package bf
