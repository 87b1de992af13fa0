package io

import (
	"iter"
)

// SendString sends each byte of a string to the channel.
func SendString(ch Channel, text string) (err error) {
	for n := range len(text) {
		err = ch.Send(text[n])
		if err != nil {
			return
		}
	}
	return
}

// ReceiveAll returns an iterator that yields bytes from the channel until
// end of input.
func ReceiveAll(ch Channel) iter.Seq[byte] {
	return func(yield func(value byte) bool) {
		for {
			value, ok := ch.Receive()
			if !ok {
				return
			}
			if !yield(value) {
				return
			}
		}
	}
}
