package bfvm

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func newTestMachine(t *testing.T, config Config) *Machine {
	t.Helper()
	m, err := NewMachine(config)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func tapeString(tape []uint64) string {
	return fmt.Sprintf("%v", tape)
}

func TestNewMachine(t *testing.T) {
	m := newTestMachine(t, Config{})
	if len(m.Tape) != DefaultTapeLength {
		t.Fatalf("got %v", len(m.Tape))
	}
	if m.CellWidth() != 1 {
		t.Fatalf("got %v", m.CellWidth())
	}

	m = newTestMachine(t, Config{
		Tape:      []uint64{300, 1},
		CellWidth: 1,
	})
	if str := tapeString(m.Tape); str != "[44 1]" {
		t.Fatalf("got %s", str)
	}

	for _, width := range []int{3, 5, 16, -1} {
		_, err := NewMachine(Config{CellWidth: width})
		if !errors.Is(err, ErrCellWidth) {
			t.Fatalf("got %v", err)
		}
	}
	_, err := NewMachine(Config{TapeLength: -1})
	if !errors.Is(err, ErrTapeLength) {
		t.Fatalf("got %v", err)
	}
}

func TestLoopTransfer(t *testing.T) {
	program := []Op{
		Loop(Add(-1), Shift(1), Add(1), Shift(-1)),
	}
	for name, run := range map[string]func(*Machine) error{
		"direct": func(m *Machine) error {
			return m.Exec(program...)
		},
		"rendered": func(m *Machine) error {
			return m.ExecRendered(program...)
		},
	} {
		t.Run(name, func(t *testing.T) {
			m := newTestMachine(t, Config{
				Tape: []uint64{5, 0},
			})
			if err := run(m); err != nil {
				t.Fatal(err)
			}
			if str := tapeString(m.Tape); str != "[0 5]" {
				t.Fatalf("got %s", str)
			}
			if m.DP != 0 {
				t.Fatalf("got %v", m.DP)
			}
		})
	}
}

func TestCopyBackward(t *testing.T) {
	for _, direct := range []bool{true, false} {
		m := newTestMachine(t, Config{
			Tape:               []uint64{0, 0, 3, 0},
			CheckPreconditions: true,
		})
		m.DP = 2
		var err error
		if direct {
			err = m.Exec(Copy(0, -2, 1))
		} else {
			err = m.ExecRendered(Copy(0, -2, 1))
		}
		if err != nil {
			t.Fatal(err)
		}
		if str := tapeString(m.Tape); str != "[0 0 3 3]" {
			t.Fatalf("got %s", str)
		}
		if m.DP != 2 {
			t.Fatalf("got %v", m.DP)
		}
	}
}

func TestCellWrap(t *testing.T) {
	for _, c := range []struct {
		width    int
		expected uint64
	}{
		{1, 1<<8 - 1},
		{2, 1<<16 - 1},
		{4, 1<<32 - 1},
		{8, ^uint64(0)},
	} {
		t.Run(fmt.Sprint(c.width), func(t *testing.T) {
			m := newTestMachine(t, Config{
				TapeLength: 1,
				CellWidth:  c.width,
			})
			if err := m.Exec(Add(-1)); err != nil {
				t.Fatal(err)
			}
			if m.Tape[0] != c.expected {
				t.Fatalf("got %v", m.Tape[0])
			}
			if err := m.ExecText("+"); err != nil {
				t.Fatal(err)
			}
			if m.Tape[0] != 0 {
				t.Fatalf("got %v", m.Tape[0])
			}
		})
	}
}

func TestMoveLaws(t *testing.T) {
	m := newTestMachine(t, Config{
		Tape: []uint64{7, 2, 0},
	})
	if err := m.Exec(Move(0, 1)); err != nil {
		t.Fatal(err)
	}
	if str := tapeString(m.Tape); str != "[0 9 0]" {
		t.Fatalf("got %s", str)
	}
	// move then move back restores the source when dest started at zero
	if err := m.Exec(Move(1, 2), Move(2, 1)); err != nil {
		t.Fatal(err)
	}
	if str := tapeString(m.Tape); str != "[0 9 0]" {
		t.Fatalf("got %s", str)
	}
}

func TestCopyLaws(t *testing.T) {
	m := newTestMachine(t, Config{
		Tape:               []uint64{42, 0, 0, 0},
		CheckPreconditions: true,
	})
	if err := m.Exec(Copy(0, 1, 2)); err != nil {
		t.Fatal(err)
	}
	if str := tapeString(m.Tape); str != "[42 0 42 0]" {
		t.Fatalf("got %s", str)
	}
	// copying twice into distinct destinations yields two copies
	if err := m.Exec(Copy(0, 1, 3)); err != nil {
		t.Fatal(err)
	}
	if str := tapeString(m.Tape); str != "[42 0 42 42]" {
		t.Fatalf("got %s", str)
	}
}

func TestOutOfBounds(t *testing.T) {
	m := newTestMachine(t, Config{TapeLength: 2})
	// motion alone is not checked
	if err := m.Exec(Shift(-5), Shift(5)); err != nil {
		t.Fatal(err)
	}
	err := m.Exec(Shift(-1), Add(1))
	var oob *OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("got %v", err)
	}
	if oob.Pos != -1 || oob.Length != 2 {
		t.Fatalf("got %+v", oob)
	}

	m = newTestMachine(t, Config{TapeLength: 2})
	err = m.ExecText(">>+")
	if !errors.As(err, &oob) {
		t.Fatalf("got %v", err)
	}
	if oob.Pos != 2 {
		t.Fatalf("got %+v", oob)
	}
}

func TestStructuralError(t *testing.T) {
	for _, c := range []struct {
		src  string
		pos  int
		char byte
	}{
		{"+[", 1, '['},
		{"]", 0, ']'},
		{"[[]", 0, '['},
		{"ab[]]", 4, ']'},
	} {
		t.Run(c.src, func(t *testing.T) {
			out := new(bytes.Buffer)
			m := newTestMachine(t, Config{
				TapeLength: 1,
				Output:     out,
			})
			err := m.ExecText(".+" + c.src)
			var structural *StructuralError
			if !errors.As(err, &structural) {
				t.Fatalf("got %v", err)
			}
			if structural.Pos != c.pos+2 || structural.Char != c.char {
				t.Fatalf("got %+v", structural)
			}
			// nothing ran
			if out.Len() != 0 || m.Tape[0] != 0 {
				t.Fatal()
			}
		})
	}
}

func TestTextIgnoresOtherBytes(t *testing.T) {
	m := newTestMachine(t, Config{TapeLength: 2})
	if err := m.ExecText("add 3: +++ # shift > and back <\n"); err != nil {
		t.Fatal(err)
	}
	if str := tapeString(m.Tape); str != "[3 0]" {
		t.Fatalf("got %s", str)
	}
}

func TestInput(t *testing.T) {
	m := newTestMachine(t, Config{
		TapeLength: 3,
		Input:      []byte("ab"),
	})
	if err := m.ExecText(",>,>,"); err != nil {
		t.Fatal(err)
	}
	if str := tapeString(m.Tape); str != "[97 98 0]" {
		t.Fatalf("got %s", str)
	}
}

func TestFeed(t *testing.T) {
	m := newTestMachine(t, Config{
		TapeLength: 3,
		Input:      []byte("a"),
	})
	if err := m.Exec(In(), Shift(1), In()); err != nil {
		t.Fatal(err)
	}
	m.Feed([]byte("c"))
	if err := m.Exec(Shift(1), In()); err != nil {
		t.Fatal(err)
	}
	if str := tapeString(m.Tape); str != "[97 0 99]" {
		t.Fatalf("got %s", str)
	}
}

func TestLiveInput(t *testing.T) {
	m := newTestMachine(t, Config{
		TapeLength: 5,
		Input:      []byte("a"),
		Live:       strings.NewReader("bc\nd"),
	})
	if err := m.Exec(In(), Shift(1), In(), Shift(1), In(), Shift(1), In()); err != nil {
		t.Fatal(err)
	}
	if str := tapeString(m.Tape); str != "[97 98 99 10 0]" {
		t.Fatalf("got %s", str)
	}
	// the next line is pulled only when needed
	if err := m.Exec(Shift(1), In()); err != nil {
		t.Fatal(err)
	}
	if m.Tape[4] != 'd' {
		t.Fatalf("got %v", m.Tape[4])
	}
	if err := m.Exec(In()); err != nil {
		t.Fatal(err)
	}
	if m.Tape[4] != 0 {
		t.Fatalf("got %v", m.Tape[4])
	}
}

func TestOutput(t *testing.T) {
	out := new(bytes.Buffer)
	m := newTestMachine(t, Config{
		Tape:   []uint64{0, 3, 0, 0},
		Output: out,
	})
	if err := m.Exec(
		OutS("hi "),
		OutN('x', 1, 2, 3),
		Add('!'),
		Out(),
		Zero(),
	); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "hi xxx!" {
		t.Fatalf("got %q", got)
	}
	if str := tapeString(m.Tape); str != "[0 3 0 0]" {
		t.Fatalf("got %s", str)
	}
}

func TestOutNPreservesCount(t *testing.T) {
	out := new(bytes.Buffer)
	m := newTestMachine(t, Config{
		Tape:   []uint64{0, 0, 2, 0},
		Output: out,
	})
	m.DP = 1
	if err := m.ExecRendered(OutN('-', 1, -1, 2)); err != nil {
		t.Fatal(err)
	}
	if out.String() != "--" {
		t.Fatalf("got %q", out.String())
	}
	if str := tapeString(m.Tape); str != "[0 0 2 0]" {
		t.Fatalf("got %s", str)
	}
}

func TestWideCellOutput(t *testing.T) {
	for _, width := range []int{1, 2, 4, 8} {
		out := new(bytes.Buffer)
		m := newTestMachine(t, Config{
			TapeLength: 3,
			CellWidth:  width,
			Output:     out,
		})
		if err := m.ExecRendered(OutS("ok"), Add(3), OutN('z', 0, 1, 2)); err != nil {
			t.Fatal(err)
		}
		if out.String() != "okzzz" {
			t.Fatalf("width %d: got %q", width, out.String())
		}
	}
}

func TestPreconditions(t *testing.T) {
	for _, c := range []struct {
		name string
		tape []uint64
		op   Op
	}{
		{"copy tmp", []uint64{1, 1, 0}, Copy(0, 1, 2)},
		{"copy dest", []uint64{1, 0, 1}, Copy(0, 1, 2)},
		{"out_n tmp", []uint64{1, 1, 0}, OutN('a', 0, 1, 2)},
		{"out_s", []uint64{1}, OutS("a")},
		{"assert", []uint64{0, 5}, AssertZero(0, 1)},
	} {
		t.Run(c.name, func(t *testing.T) {
			m := newTestMachine(t, Config{
				Tape:               c.tape,
				CheckPreconditions: true,
			})
			err := m.Exec(c.op)
			var pre *PreconditionError
			if !errors.As(err, &pre) {
				t.Fatalf("got %v", err)
			}

			// unchecked machines run on
			m = newTestMachine(t, Config{
				Tape: c.tape,
			})
			if err := m.Exec(c.op); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestStepLimit(t *testing.T) {
	m := newTestMachine(t, Config{
		TapeLength: 1,
		StepLimit:  100,
	})
	err := m.ExecText("+[]")
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("got %v", err)
	}

	m = newTestMachine(t, Config{
		TapeLength: 1,
		StepLimit:  100,
	})
	err = m.Exec(Add(1), Loop())
	if !errors.Is(err, ErrStepLimit) {
		t.Fatalf("got %v", err)
	}
	if m.Steps() != 101 {
		t.Fatalf("got %v", m.Steps())
	}
}

func TestDisplay(t *testing.T) {
	m := newTestMachine(t, Config{
		Tape: []uint64{1, 20, 255},
	})
	m.DP = 1
	if got := m.Display(0); got != "   1> 20 255" {
		t.Fatalf("got %q", got)
	}
	if got := m.Display(2); got != "   1> 20" {
		t.Fatalf("got %q", got)
	}
}

func TestSnapshot(t *testing.T) {
	m := newTestMachine(t, Config{
		TapeLength: 4,
		CellWidth:  2,
		Input:      []byte("xyz"),
	})
	if err := m.ExecText(",>+++>,"); err != nil {
		t.Fatal(err)
	}
	buf := new(bytes.Buffer)
	if err := m.Snapshot(buf); err != nil {
		t.Fatal(err)
	}

	restored := newTestMachine(t, Config{TapeLength: 1})
	if err := restored.Restore(buf); err != nil {
		t.Fatal(err)
	}
	if str := tapeString(restored.Tape); str != "[120 3 121 0]" {
		t.Fatalf("got %s", str)
	}
	if restored.DP != 2 || restored.CellWidth() != 2 {
		t.Fatalf("got %v %v", restored.DP, restored.CellWidth())
	}
	// input resumes where it stopped
	if err := restored.ExecText(">,"); err != nil {
		t.Fatal(err)
	}
	if restored.Tape[3] != 'z' {
		t.Fatalf("got %v", restored.Tape[3])
	}
}
