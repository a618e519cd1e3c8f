package macros

import (
	"fmt"

	"github.com/reusee/bfdsl/bfvm"
)

// InitStack writes the free-slot markers of a stack with the given capacity.
// It starts and ends on the stack temp cell; the region must be zero.
func InitStack(capacity int) []bfvm.Op {
	if capacity < 0 {
		panic(fmt.Errorf("negative stack capacity: %d", capacity))
	}
	ret := ops{
		bfvm.AssertZero(0),
		bfvm.Shift(1),
	}
	for range capacity {
		ret = append(ret, bfvm.Add(1), bfvm.Shift(1))
	}
	return append(ret, bfvm.Shift(-(capacity + 1)))
}

// Push moves the value in the stack temp cell onto the stack.
// It starts and ends on stack temp, which is zero afterwards. The stack must not be full.
func Push() []bfvm.Op {
	return ops{
		bfvm.Move(0, 1),
		bfvm.Shift(1),
		bfvm.Add(-1),
		bfvm.Shift(1),
		// carry the value right across the free slots
		bfvm.Loop(
			bfvm.Add(-1),
			bfvm.Move(-1, 0),
			bfvm.Shift(-1),
			bfvm.Add(1),
			bfvm.Shift(2),
		),
		bfvm.Move(-1, 0),
		bfvm.Shift(-2),
		// back to stack temp
		bfvm.Loop(
			bfvm.Shift(-1),
		),
	}
}

// Pop moves the top of the stack into the stack temp cell, which must be zero.
// It starts and ends on stack temp. The stack must not be empty.
func Pop() []bfvm.Op {
	return ops{
		bfvm.AssertZero(0),
		bfvm.Shift(1),
		// to the separator
		bfvm.Loop(
			bfvm.Shift(1),
		),
		bfvm.Move(1, 0),
		bfvm.Shift(-1),
		// carry the value left across the free slots
		bfvm.Loop(
			bfvm.Add(-1),
			bfvm.Move(1, 0),
			bfvm.Shift(1),
			bfvm.Add(1),
			bfvm.Shift(-2),
		),
		bfvm.Move(1, 0),
		bfvm.Shift(1),
		bfvm.Add(1),
		bfvm.Shift(-1),
	}
}
