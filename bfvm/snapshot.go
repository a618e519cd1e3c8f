package bfvm

import (
	"encoding/gob"
	"fmt"
	"io"
)

// State is the resumable part of a machine.
type State struct {
	Tape      []uint64
	DP        int
	CellWidth int
	Input     []byte
	Cursor    int
	Steps     int
}

func (m *Machine) State() State {
	return State{
		Tape:      append([]uint64(nil), m.Tape...),
		DP:        m.DP,
		CellWidth: m.width,
		Input:     append([]byte(nil), m.input...),
		Cursor:    m.cursor,
		Steps:     m.steps,
	}
}

func (m *Machine) Snapshot(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(m.State()); err != nil {
		return err
	}
	return nil
}

func (m *Machine) Restore(r io.Reader) error {
	var state State
	dec := gob.NewDecoder(r)
	if err := dec.Decode(&state); err != nil {
		return err
	}
	mask, err := cellMask(state.CellWidth)
	if err != nil {
		return err
	}
	if state.Cursor < 0 || state.Cursor > len(state.Input) {
		return fmt.Errorf("bad input cursor %d", state.Cursor)
	}
	m.Tape = state.Tape
	m.DP = state.DP
	m.width = state.CellWidth
	m.mask = mask
	m.input = state.Input
	m.cursor = state.Cursor
	m.steps = state.Steps
	return nil
}
