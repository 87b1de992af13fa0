package io

// Temporary implements a circular buffer for in-memory byte storage.
// It operates as a FIFO queue with a fixed capacity.
type Temporary struct {
	Capacity int // Capacity in bytes.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []byte
}

var _ Channel = (*Temporary)(nil)

// Rewind resets the temporary storage to empty, resetting indices and
// reinitializing the data buffer.
func (temp *Temporary) Rewind() {
	temp.ReadIndex = 0
	temp.WriteIndex = 0
	temp.Size = 0
	temp.Data = make([]byte, temp.Capacity)
}

// Receive takes the oldest byte from the buffer.
func (temp *Temporary) Receive() (value byte, ok bool) {
	if temp.Size == 0 {
		return
	}

	value = temp.Data[temp.ReadIndex]
	ok = true

	temp.ReadIndex++
	if temp.ReadIndex == temp.Capacity {
		temp.ReadIndex = 0
	}
	temp.Size--

	return
}

// Send writes a byte to the buffer at the current write position.
// Returns ErrChannelFull if the buffer has reached capacity.
func (temp *Temporary) Send(value byte) (err error) {
	if temp.Size >= temp.Capacity {
		err = ErrChannelFull
		return
	}

	if len(temp.Data) != temp.Capacity {
		temp.Rewind()
	}

	temp.Data[temp.WriteIndex] = value

	temp.WriteIndex++
	if temp.WriteIndex == temp.Capacity {
		temp.WriteIndex = 0
	}
	temp.Size++

	return
}
