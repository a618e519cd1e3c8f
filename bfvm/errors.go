package bfvm

import (
	"errors"
	"fmt"
)

var (
	ErrStepLimit  = errors.New("step limit exceeded")
	ErrCellWidth  = errors.New("bad cell width")
	ErrTapeLength = errors.New("bad tape length")
)

// StructuralError reports an unmatched bracket in program text.
type StructuralError struct {
	Pos  int
	Char byte
}

func (s *StructuralError) Error() string {
	if s.Char == '[' {
		return fmt.Sprintf("unmatched [ at %d", s.Pos)
	}
	return fmt.Sprintf("unmatched ] at %d", s.Pos)
}

type OutOfBoundsError struct {
	Pos    int
	Length int
}

func (o *OutOfBoundsError) Error() string {
	return fmt.Sprintf("cell %d out of tape bounds [0, %d)", o.Pos, o.Length)
}

// PreconditionError is only reported by machines with precondition checking on.
type PreconditionError struct {
	Op     string
	Offset int
	Value  uint64
}

func (p *PreconditionError) Error() string {
	return fmt.Sprintf("%s: cell at offset %d must be zero, got %d", p.Op, p.Offset, p.Value)
}
