// Package io provides the byte channels the bfc emulator reads and writes.
// It includes a Console wrapping process streams, and a Temporary in-memory
// FIFO.
package io

// Channel defines the interface for all I/O channels of the emulator.
// Channels operate a byte at a time.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive reads a single byte. ok is false at end of input.
	Receive() (value byte, ok bool)
	// Send writes a single byte to the channel.
	Send(value byte) error
}
