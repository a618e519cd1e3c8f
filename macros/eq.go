package macros

import (
	"github.com/reusee/bfdsl/bfvm"
	"github.com/reusee/bfdsl/layouts"
)

// EqScratch names the cells IfEqThen borrows, relative to the subject.
type EqScratch struct {
	Flag int
	Tmp  int
	Save int
}

var DefaultEqScratch = EqScratch{
	Flag: -1,
	Tmp:  1,
	Save: 2,
}

// IfEqThen runs body once if the subject cell equals lit. The subject is left unchanged.
// body starts and ends on the flag cell and must leave it zero.
func IfEqThen(lit byte, body ...bfvm.Op) []bfvm.Op {
	return DefaultEqScratch.IfEqThen(lit, body...)
}

func (s EqScratch) IfEqThen(lit byte, body ...bfvm.Op) []bfvm.Op {
	layouts.MustDistinct(0, s.Flag, s.Tmp, s.Save)
	return ops{
		bfvm.AssertZero(s.Flag, s.Tmp, s.Save),
		bfvm.Add(-int(lit)),
		bfvm.Copy(0, s.Tmp, s.Save),
		// tmp becomes -1 unless equal
		bfvm.Loop(
			bfvm.Shift(s.Tmp),
			bfvm.Add(-1),
			bfvm.Shift(-s.Tmp),
			bfvm.Zero(),
		),
		bfvm.Move(s.Save, 0),
		bfvm.Shift(s.Tmp),
		bfvm.Add(1),
		bfvm.Move(0, s.Flag-s.Tmp),
		bfvm.Shift(s.Flag - s.Tmp),
		bfvm.Loop(seq(
			ops{bfvm.Zero()},
			body,
		)...),
		bfvm.Shift(-s.Flag),
		bfvm.Add(int(lit)),
	}
}
