package bfconfigs

import (
	"github.com/reusee/bfdsl/cmds"
	"github.com/reusee/bfdsl/configs"
	"github.com/reusee/bfdsl/vars"
)

// Zero values of the numeric knobs mean the machine default.

type TapeLength int

var tapeLengthFlag = cmds.Var[int]("-tape-length")

func (Module) TapeLength(
	loader configs.Loader,
) TapeLength {
	return TapeLength(vars.FirstNonZero(
		*tapeLengthFlag,
		configs.First[int](loader, "tape_length"),
	))
}

type CellWidth int

var cellWidthFlag = cmds.Var[int]("-cell-width")

func (Module) CellWidth(
	loader configs.Loader,
) CellWidth {
	return CellWidth(vars.FirstNonZero(
		*cellWidthFlag,
		configs.First[int](loader, "cell_width"),
	))
}

type StepLimit int

var stepLimitFlag = cmds.Var[int]("-step-limit")

func (Module) StepLimit(
	loader configs.Loader,
) StepLimit {
	return StepLimit(vars.FirstNonZero(
		*stepLimitFlag,
		configs.First[int](loader, "step_limit"),
	))
}

type TraceCells int

var traceCellsFlag = cmds.Var[int]("-trace-cells")

func (Module) TraceCells(
	loader configs.Loader,
) TraceCells {
	return TraceCells(vars.FirstNonZero(
		*traceCellsFlag,
		configs.First[int](loader, "trace_cells"),
	))
}

type LiveInput bool

var liveInputFlag = cmds.Switch("-live")

func (Module) LiveInput(
	loader configs.Loader,
) LiveInput {
	return LiveInput(*liveInputFlag || configs.First[bool](loader, "live_input"))
}

type Trace bool

var traceFlag = cmds.Switch("-trace")

func (Module) Trace(
	loader configs.Loader,
) Trace {
	return Trace(*traceFlag || configs.First[bool](loader, "trace"))
}

type CheckPreconditions bool

var checkedFlag = cmds.Switch("-checked")

func (Module) CheckPreconditions(
	loader configs.Loader,
) CheckPreconditions {
	return CheckPreconditions(*checkedFlag || configs.First[bool](loader, "check_preconditions"))
}

type Fast bool

var fastFlag = cmds.Switch("-fast")

func (Module) Fast(
	loader configs.Loader,
) Fast {
	return Fast(*fastFlag || configs.First[bool](loader, "fast"))
}
