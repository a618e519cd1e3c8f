package macros

import (
	"fmt"
	"slices"

	"github.com/reusee/bfdsl/bfvm"
	"github.com/reusee/bfdsl/layouts"
)

// MaxSwitchKey is the largest key a Switch accepts. Keys are compared modulo
// the cell size, so larger keys would alias smaller values on byte cells.
const MaxSwitchKey = 255

type Case struct {
	Key  int
	Body []bfvm.Op
}

// Switch dispatches on the value of the cell at src. Exactly one of the case
// bodies or def runs. Bodies start and end on the flag cell, which is cleared
// before a body runs and must be zero when it returns. src is consumed.
// Keys must be in [0, MaxSwitchKey].
func Switch(src, flag int, cases []Case, def []bfvm.Op) []bfvm.Op {
	layouts.MustDistinct(src, flag)
	cases = slices.Clone(cases)
	slices.SortStableFunc(cases, func(a, b Case) int {
		return a.Key - b.Key
	})
	for i, c := range cases {
		if c.Key < 0 {
			panic(fmt.Errorf("negative switch key: %d", c.Key))
		}
		if c.Key > MaxSwitchKey {
			panic(fmt.Errorf("switch key out of range: %d", c.Key))
		}
		if i > 0 && cases[i-1].Key == c.Key {
			panic(fmt.Errorf("duplicated switch key: %d", c.Key))
		}
	}

	toFlag := bfvm.Shift(flag - src)
	toSrc := bfvm.Shift(src - flag)

	// chain compares against cases[i:]; src holds the value minus prev
	var chain func(i, prev int) []bfvm.Op
	chain = func(i, prev int) []bfvm.Op {
		if i == len(cases) {
			return seq(
				ops{toFlag, bfvm.Add(-1)},
				def,
				ops{toSrc, bfvm.Zero()},
			)
		}
		c := cases[i]
		return seq(
			ops{
				bfvm.Add(prev - c.Key),
				bfvm.Loop(chain(i+1, c.Key)...),
				toFlag,
			},
			ops{
				bfvm.Loop(seq(
					ops{bfvm.Add(-1)},
					c.Body,
				)...),
			},
			ops{toSrc},
		)
	}

	return seq(
		ops{
			bfvm.AssertZero(flag),
			bfvm.Shift(flag),
			bfvm.Add(1),
			bfvm.Shift(src - flag),
		},
		chain(0, 0),
		ops{bfvm.Shift(-src)},
	)
}
