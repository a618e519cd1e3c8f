package bfvm

import (
	"io"

	"github.com/reusee/bfdsl/bfconfigs"
	"github.com/reusee/bfdsl/logs"
	"github.com/reusee/bfdsl/modes"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs bfconfigs.Module
}

// NewMachineFunc builds machines from the configured knobs.
// live may be nil; output may be nil to discard.
type NewMachineFunc func(input []byte, live io.Reader, output io.Writer) (*Machine, error)

func (Module) NewMachine(
	logger logs.Logger,
	mode modes.Mode,
	tapeLength bfconfigs.TapeLength,
	cellWidth bfconfigs.CellWidth,
	trace bfconfigs.Trace,
	traceCells bfconfigs.TraceCells,
	checked bfconfigs.CheckPreconditions,
	stepLimit bfconfigs.StepLimit,
) NewMachineFunc {
	return func(input []byte, live io.Reader, output io.Writer) (*Machine, error) {
		return NewMachine(Config{
			TapeLength:         int(tapeLength),
			CellWidth:          int(cellWidth),
			Input:              input,
			Live:               live,
			Output:             output,
			Logger:             logger,
			Trace:              bool(trace),
			TraceCells:         int(traceCells),
			CheckPreconditions: bool(checked) || mode.Checked(),
			StepLimit:          int(stepLimit),
		})
	}
}

// ExecuteFunc runs program text on the fast interpreter with the configured tape.
type ExecuteFunc func(source string, stdin io.Reader, stdout io.Writer) error

func (Module) Execute(
	tapeLength bfconfigs.TapeLength,
	cellWidth bfconfigs.CellWidth,
) ExecuteFunc {
	return func(source string, stdin io.Reader, stdout io.Writer) error {
		length := int(tapeLength)
		if length == 0 {
			length = DefaultTapeLength
		}
		width := int(cellWidth)
		if width == 0 {
			width = DefaultCellWidth
		}
		return Execute(length, width, source, stdin, stdout)
	}
}
