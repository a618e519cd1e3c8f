package macros

import (
	"github.com/reusee/bfdsl/bfvm"
	"github.com/reusee/bfdsl/layouts"
)

type ops = []bfvm.Op

// IfConseq runs tru if the origin is non-zero, else fals.
// It uses the cells at dist and 2*dist as scratch.
func IfConseq(tru, fals []bfvm.Op, dist int) []bfvm.Op {
	layouts.MustDistinct(0, dist, 2*dist)
	return ops{
		bfvm.AssertZero(dist, 2*dist),
		bfvm.Shift(dist),
		bfvm.Add(1),
		bfvm.Shift(-dist),
		bfvm.Loop(seq(
			tru,
			ops{bfvm.Shift(dist), bfvm.Add(-1)},
		)...),
		bfvm.Shift(dist),
		bfvm.Loop(seq(
			ops{bfvm.Shift(-dist)},
			fals,
			ops{bfvm.Shift(dist), bfvm.Add(-1), bfvm.Shift(dist)},
		)...),
		bfvm.Shift(-2 * dist),
	}
}

// IfTmps runs tru if the origin is non-zero, else fals, preserving the origin.
func IfTmps(tmp1, tmp2 int, tru, fals []bfvm.Op) []bfvm.Op {
	layouts.MustDistinct(0, tmp1, tmp2)
	return ops{
		bfvm.AssertZero(tmp1, tmp2),
		bfvm.Shift(tmp1),
		bfvm.Add(1),
		bfvm.Shift(-tmp1),
		bfvm.Loop(seq(
			tru,
			ops{
				bfvm.Shift(tmp1),
				bfvm.Add(-1),
				bfvm.Shift(-tmp1),
				bfvm.Move(0, tmp2),
			},
		)...),
		bfvm.Move(tmp2, 0),
		bfvm.Shift(tmp1),
		bfvm.Loop(seq(
			ops{bfvm.Shift(-tmp1)},
			fals,
			ops{bfvm.Shift(tmp1), bfvm.Add(-1)},
		)...),
		bfvm.Shift(-tmp1),
	}
}

func seq(parts ...[]bfvm.Op) []bfvm.Op {
	n := 0
	for _, part := range parts {
		n += len(part)
	}
	ret := make([]bfvm.Op, 0, n)
	for _, part := range parts {
		ret = append(ret, part...)
	}
	return ret
}
