package bfvm

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"reflect"
	"testing"
)

const (
	equivTapeLength = 16
	equivLow        = 4
	equivHigh       = 11
	equivReach      = 3
)

// randomOp returns an op whose cell accesses stay in bounds when started at dp.
func randomOp(rnd *rand.Rand, dp int) Op {
	offset := func() int {
		return rnd.IntN(2*equivReach+1) - equivReach
	}
	distinct := func(n int) []int {
		for {
			offsets := make([]int, n)
			for i := range offsets {
				offsets[i] = offset()
			}
			ok := true
			for i := range offsets {
				for j := i + 1; j < n; j++ {
					if offsets[i] == offsets[j] {
						ok = false
					}
				}
			}
			if ok {
				return offsets
			}
		}
	}

	switch rnd.IntN(11) {
	case 0:
		return Add(rnd.IntN(601) - 300)
	case 1:
		target := equivLow + rnd.IntN(equivHigh-equivLow+1)
		return Shift(target - dp)
	case 2:
		o := distinct(2)
		return Move(o[0], o[1])
	case 3:
		return Zero()
	case 4:
		o := distinct(3)
		return Copy(o[0], o[1], o[2])
	case 5:
		d := 1 + rnd.IntN(equivReach)
		if rnd.IntN(2) == 0 {
			d = -d
		}
		body := []Op{Add(-1), Shift(d), Add(1)}
		if rnd.IntN(2) == 0 {
			body = append(body, Zero())
		}
		return Loop(append(body, Shift(-d))...)
	case 6:
		return In()
	case 7:
		return Out()
	case 8:
		o := distinct(3)
		return OutN(byte(rnd.IntN(256)), o[0], o[1], o[2])
	case 9:
		b := make([]byte, rnd.IntN(4))
		for i := range b {
			b[i] = byte(rnd.IntN(256))
		}
		return OutS(string(b))
	default:
		return AssertZero(offset())
	}
}

// cheap reports whether the rendered op loops a bounded number of times from the current state.
func cheap(m *Machine, op Op) bool {
	var offsets []int
	switch op.Kind {
	case KindMove:
		offsets = []int{op.Src}
	case KindCopy, KindOutN:
		offsets = []int{op.Src, op.Tmp, op.Dest}
	case KindZero:
		offsets = []int{0}
	case KindLoop:
		offsets = []int{0, op.Body[1].Value}
	}
	for _, offset := range offsets {
		v, err := m.Cell(m.DP + offset)
		if err != nil || v > 1024 {
			return false
		}
	}
	return true
}

func shiftOf(op Op) int {
	if op.Kind == KindShift {
		return op.Value
	}
	return 0
}

func TestDualSemantics(t *testing.T) {
	for _, width := range []int{1, 2, 4, 8} {
		t.Run(fmt.Sprint(width), func(t *testing.T) {
			rnd := rand.New(rand.NewPCG(uint64(width), 42))
			for round := range 200 {
				tape := make([]uint64, equivTapeLength)
				for i := range tape {
					if rnd.IntN(3) == 0 {
						tape[i] = uint64(rnd.IntN(256))
					}
				}
				input := make([]byte, rnd.IntN(8))
				for i := range input {
					input[i] = byte(rnd.IntN(256))
				}

				directOut := new(bytes.Buffer)
				direct := newTestMachine(t, Config{
					Tape:      tape,
					CellWidth: width,
					Input:     input,
					Output:    directOut,
				})
				direct.DP = equivLow
				textOut := new(bytes.Buffer)
				text := newTestMachine(t, Config{
					Tape:      tape,
					CellWidth: width,
					Input:     input,
					Output:    textOut,
				})
				text.DP = equivLow

				dp := equivLow
				for step := range 20 {
					op := randomOp(rnd, dp)
					if !cheap(direct, op) {
						op = Out()
					}
					dp += shiftOf(op)
					before := direct.State()
					if err := direct.Exec(op); err != nil {
						t.Fatalf("round %d step %d: %s: %v", round, step, op, err)
					}
					if err := text.ExecRendered(op); err != nil {
						t.Fatalf("round %d step %d: %s: %v", round, step, op, err)
					}
					d, x := direct.State(), text.State()
					d.Steps, x.Steps = 0, 0
					if !reflect.DeepEqual(d, x) {
						t.Fatalf("round %d step %d: %s from %+v\ndirect %+v\ntext   %+v", round, step, op, before, d, x)
					}
					if !bytes.Equal(directOut.Bytes(), textOut.Bytes()) {
						t.Fatalf("round %d step %d: %s: output %q vs %q", round, step, op, directOut.Bytes(), textOut.Bytes())
					}
				}
			}
		})
	}
}
