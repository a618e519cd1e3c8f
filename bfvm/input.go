package bfvm

import (
	"errors"
	"io"
)

// readByte returns 0 once both the replayed input and the live reader are exhausted.
func (m *Machine) readByte() (byte, error) {
	if m.cursor >= len(m.input) && m.live != nil {
		line, err := m.live.ReadString('\n')
		m.input = append(m.input, line...)
		if errors.Is(err, io.EOF) {
			m.live = nil
		} else if err != nil {
			return 0, err
		}
	}
	if m.cursor >= len(m.input) {
		return 0, nil
	}
	b := m.input[m.cursor]
	m.cursor++
	return b, nil
}

// Feed appends bytes to the replayed input.
func (m *Machine) Feed(input []byte) {
	m.input = append(m.input, input...)
}
