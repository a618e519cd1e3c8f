package macros

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reusee/bfdsl/bfvm"
)

const testCapacity = 4

func pushValues(values ...uint64) []bfvm.Op {
	var ret []bfvm.Op
	for _, v := range values {
		ret = append(ret, bfvm.Add(int(v)))
		ret = append(ret, Push()...)
	}
	return ret
}

func TestInitStack(t *testing.T) {
	got := run(t, make([]uint64, testCapacity+2), 0, InitStack(testCapacity))
	assert.Equal(t, []uint64{0, 1, 1, 1, 1, 0}, got)

	got = run(t, make([]uint64, 2), 0, InitStack(0))
	assert.Equal(t, []uint64{0, 0}, got)

	assert.Panics(t, func() {
		InitStack(-1)
	})
}

func TestStackRoundTrip(t *testing.T) {
	values := []uint64{5, 0, 255, 1}
	for n := 0; n <= testCapacity; n++ {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			assert := assert.New(t)
			pushed := values[:n]

			// popped values land after the region
			program := seq(InitStack(testCapacity), pushValues(pushed...))
			for i := range n {
				program = append(program, Pop()...)
				program = append(program, bfvm.Move(0, testCapacity+2+i))
			}
			tape := make([]uint64, testCapacity+2+n)
			got := run(t, tape, 0, program)

			assert.Equal([]uint64{0, 1, 1, 1, 1, 0}, got[:testCapacity+2])
			popped := got[testCapacity+2:]
			want := slices.Clone(pushed)
			slices.Reverse(want)
			assert.Equal(want, popped)
		})
	}
}

func TestStackLayout(t *testing.T) {
	assert := assert.New(t)
	program := seq(InitStack(testCapacity), pushValues(1, 2, 3))
	got := run(t, make([]uint64, testCapacity+2), 0, program)
	assert.Equal([]uint64{0, 1, 0, 3, 2, 1}, got)

	program = seq(InitStack(testCapacity), pushValues(1, 2, 3, 4))
	got = run(t, make([]uint64, testCapacity+2), 0, program)
	assert.Equal([]uint64{0, 0, 4, 3, 2, 1}, got)
}

func TestStackPushPop(t *testing.T) {
	assert := assert.New(t)
	program := seq(
		InitStack(testCapacity),
		pushValues(1, 2, 3),
		Pop(),
		[]bfvm.Op{bfvm.Move(0, 6)},
		Pop(),
		[]bfvm.Op{bfvm.Move(0, 7)},
	)
	got := run(t, make([]uint64, 8), 0, program)
	assert.Equal([]uint64{0, 1, 1, 1, 0, 1}, got[:6])
	assert.Equal(uint64(3), got[6])
	assert.Equal(uint64(2), got[7])
}

func TestPopBusyTemp(t *testing.T) {
	m, err := bfvm.NewMachine(bfvm.Config{
		Tape:               []uint64{9, 1, 0, 7},
		CheckPreconditions: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	err = m.Exec(Pop()...)
	var pre *bfvm.PreconditionError
	assert.ErrorAs(t, err, &pre)
}
