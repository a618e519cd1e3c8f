package bfvm

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/reusee/bfdsl/logs"
)

const (
	DefaultTapeLength = 30000
	DefaultCellWidth  = 1

	defaultTraceCells = 16
)

type Config struct {
	// TapeLength is ignored when Tape is set.
	TapeLength int
	// CellWidth is the cell size in bytes: 1, 2, 4 or 8.
	CellWidth int
	// Tape is the initial tape. It is copied.
	Tape []uint64

	Input []byte
	// Live is read one line at a time whenever Input runs out.
	Live   io.Reader
	Output io.Writer

	Logger     logs.Logger
	Trace      bool
	TraceCells int

	CheckPreconditions bool
	// StepLimit bounds the number of primitive steps, zero for no limit.
	StepLimit int
}

type Machine struct {
	Tape []uint64
	DP   int

	width  int
	mask   uint64
	input  []byte
	cursor int
	live   *bufio.Reader
	output io.Writer

	logger     logs.Logger
	trace      bool
	traceCells int
	checked    bool
	stepLimit  int
	steps      int
}

func cellMask(width int) (uint64, error) {
	switch width {
	case 1, 2, 4:
		return 1<<(8*width) - 1, nil
	case 8:
		return ^uint64(0), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrCellWidth, width)
}

func NewMachine(config Config) (*Machine, error) {
	width := config.CellWidth
	if width == 0 {
		width = DefaultCellWidth
	}
	mask, err := cellMask(width)
	if err != nil {
		return nil, err
	}

	var tape []uint64
	if len(config.Tape) > 0 {
		tape = make([]uint64, len(config.Tape))
		for i, v := range config.Tape {
			tape[i] = v & mask
		}
	} else {
		length := config.TapeLength
		if length == 0 {
			length = DefaultTapeLength
		}
		if length < 0 {
			return nil, fmt.Errorf("%w: %d", ErrTapeLength, length)
		}
		tape = make([]uint64, length)
	}

	m := &Machine{
		Tape:       tape,
		width:      width,
		mask:       mask,
		input:      append([]byte(nil), config.Input...),
		output:     config.Output,
		logger:     config.Logger,
		trace:      config.Trace,
		traceCells: config.TraceCells,
		checked:    config.CheckPreconditions,
		stepLimit:  config.StepLimit,
	}
	if config.Live != nil {
		m.live = bufio.NewReader(config.Live)
	}
	if m.output == nil {
		m.output = io.Discard
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	if m.traceCells == 0 {
		m.traceCells = defaultTraceCells
	}
	return m, nil
}

func (m *Machine) CellWidth() int {
	return m.width
}

// Steps returns the number of primitive steps executed so far.
func (m *Machine) Steps() int {
	return m.steps
}

// Cell returns the value at an absolute tape position.
func (m *Machine) Cell(pos int) (uint64, error) {
	if pos < 0 || pos >= len(m.Tape) {
		return 0, &OutOfBoundsError{
			Pos:    pos,
			Length: len(m.Tape),
		}
	}
	return m.Tape[pos], nil
}

func (m *Machine) cell(offset int) (*uint64, error) {
	pos := m.DP + offset
	if pos < 0 || pos >= len(m.Tape) {
		return nil, &OutOfBoundsError{
			Pos:    pos,
			Length: len(m.Tape),
		}
	}
	return &m.Tape[pos], nil
}

func (m *Machine) add(p *uint64, delta uint64) {
	*p = (*p + delta) & m.mask
}

func (m *Machine) step() error {
	m.steps++
	if m.stepLimit > 0 && m.steps > m.stepLimit {
		return ErrStepLimit
	}
	return nil
}

// Display formats the first cells of the tape, marking the data pointer with >.
// cells <= 0 means the whole tape.
func (m *Machine) Display(cells int) string {
	if cells <= 0 || cells > len(m.Tape) {
		cells = len(m.Tape)
	}
	var b strings.Builder
	for i := range cells {
		if i == m.DP {
			b.WriteByte('>')
		} else {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%3d", m.Tape[i])
	}
	return b.String()
}

func (m *Machine) traceState(what string) {
	if !m.trace {
		return
	}
	m.logger.Debug("trace",
		"op", what,
		"dp", m.DP,
		"tape", m.Display(m.traceCells),
	)
}
