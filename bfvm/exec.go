package bfvm

import (
	"fmt"
)

// Exec runs ops directly, without rendering them.
func (m *Machine) Exec(ops ...Op) error {
	for _, op := range ops {
		if err := m.exec(op); err != nil {
			return fmt.Errorf("exec %s: %w", op, err)
		}
		m.traceState(op.String())
	}
	return nil
}

// ExecRendered renders each op and runs the text.
func (m *Machine) ExecRendered(ops ...Op) error {
	for _, op := range ops {
		code, err := Compile(op.Render())
		if err != nil {
			return err
		}
		if err := m.RunCode(code); err != nil {
			return fmt.Errorf("exec %s: %w", op, err)
		}
		m.traceState(op.String())
	}
	return nil
}

func (m *Machine) exec(op Op) error {
	if err := m.step(); err != nil {
		return err
	}

	switch op.Kind {

	case KindAdd:
		p, err := m.cell(0)
		if err != nil {
			return err
		}
		m.add(p, uint64(int64(op.Value)))

	case KindShift:
		m.DP += op.Value

	case KindMove:
		return m.move(op.Src, op.Dest)

	case KindZero:
		p, err := m.cell(0)
		if err != nil {
			return err
		}
		*p = 0

	case KindCopy:
		return m.copy(op, op.Src, op.Tmp, op.Dest)

	case KindLoop:
		for {
			p, err := m.cell(0)
			if err != nil {
				return err
			}
			if *p == 0 {
				break
			}
			for _, sub := range op.Body {
				if err := m.exec(sub); err != nil {
					return err
				}
			}
			if err := m.step(); err != nil {
				return err
			}
		}

	case KindIn:
		p, err := m.cell(0)
		if err != nil {
			return err
		}
		b, err := m.readByte()
		if err != nil {
			return err
		}
		*p = uint64(b)

	case KindOut:
		p, err := m.cell(0)
		if err != nil {
			return err
		}
		if _, err := m.output.Write([]byte{byte(*p)}); err != nil {
			return err
		}

	case KindOutN:
		return m.outN(op)

	case KindOutS:
		return m.outS(op)

	case KindAssertZero:
		if !m.checked {
			return nil
		}
		for _, offset := range op.Offsets {
			if err := m.expectZero(op, offset); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("bad op kind: %v", op.Kind)
	}

	return nil
}

func (m *Machine) expectZero(op Op, offset int) error {
	p, err := m.cell(offset)
	if err != nil {
		return err
	}
	if *p != 0 {
		return &PreconditionError{
			Op:     op.String(),
			Offset: offset,
			Value:  *p,
		}
	}
	return nil
}

// move touches dest only when src is non-zero, as the rendered loop does.
func (m *Machine) move(src, dest int) error {
	s, err := m.cell(src)
	if err != nil {
		return err
	}
	if *s == 0 {
		return nil
	}
	d, err := m.cell(dest)
	if err != nil {
		return err
	}
	m.add(d, *s)
	*s = 0
	return nil
}

func (m *Machine) copy(op Op, src, tmp, dest int) error {
	if m.checked {
		if err := m.expectZero(op, tmp); err != nil {
			return err
		}
		if err := m.expectZero(op, dest); err != nil {
			return err
		}
	}

	s, err := m.cell(src)
	if err != nil {
		return err
	}
	if v := *s; v != 0 {
		t, err := m.cell(tmp)
		if err != nil {
			return err
		}
		d, err := m.cell(dest)
		if err != nil {
			return err
		}
		m.add(t, v)
		m.add(d, v)
		*s = 0
	}

	// write back
	return m.move(tmp, src)
}

func (m *Machine) outN(op Op) error {
	tmp1, tmp2 := op.Tmp, op.Dest
	if err := m.copy(op, op.Src, tmp1, tmp2); err != nil {
		return err
	}
	t1, err := m.cell(tmp1)
	if err != nil {
		return err
	}
	m.add(t1, uint64(op.Char))
	t2, err := m.cell(tmp2)
	if err != nil {
		return err
	}
	buf := []byte{0}
	for *t2 != 0 {
		if err := m.step(); err != nil {
			return err
		}
		m.add(t2, m.mask)
		buf[0] = byte(*t1)
		if _, err := m.output.Write(buf); err != nil {
			return err
		}
	}
	m.add(t1, -uint64(op.Char))
	return nil
}

func (m *Machine) outS(op Op) error {
	if op.Text == "" {
		return nil
	}
	p, err := m.cell(0)
	if err != nil {
		return err
	}
	if m.checked && *p != 0 {
		return &PreconditionError{
			Op:    op.String(),
			Value: *p,
		}
	}
	out := make([]byte, len(op.Text))
	for i := 0; i < len(op.Text); i++ {
		out[i] = byte(*p + uint64(op.Text[i]))
	}
	if _, err := m.output.Write(out); err != nil {
		return err
	}
	return nil
}
