package bfvm

import "fmt"

// Code is program text reduced to its instructions, with a bracket jump table.
type Code struct {
	Insts []byte
	// Jumps maps each bracket's index to its partner's.
	Jumps []int
}

func isInst(c byte) bool {
	switch c {
	case '>', '<', '+', '-', '.', ',', '[', ']':
		return true
	}
	return false
}

// Compile drops every byte outside the eight-symbol alphabet and matches brackets.
func Compile(src string) (*Code, error) {
	code := &Code{
		Insts: make([]byte, 0, len(src)),
	}
	var positions []int
	var stack []int
	for pos := 0; pos < len(src); pos++ {
		c := src[pos]
		if !isInst(c) {
			continue
		}
		i := len(code.Insts)
		code.Insts = append(code.Insts, c)
		code.Jumps = append(code.Jumps, -1)
		positions = append(positions, pos)
		switch c {
		case '[':
			stack = append(stack, i)
		case ']':
			if len(stack) == 0 {
				return nil, &StructuralError{
					Pos:  pos,
					Char: c,
				}
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			code.Jumps[open] = i
			code.Jumps[i] = open
		}
	}
	if len(stack) > 0 {
		return nil, &StructuralError{
			Pos:  positions[stack[len(stack)-1]],
			Char: '[',
		}
	}
	return code, nil
}

// ExecText runs program text. Nothing is executed if the brackets do not balance.
func (m *Machine) ExecText(src string) error {
	code, err := Compile(src)
	if err != nil {
		return err
	}
	return m.RunCode(code)
}

func (m *Machine) RunCode(code *Code) error {
	buf := []byte{0}
	for ip := 0; ip < len(code.Insts); ip++ {
		if err := m.step(); err != nil {
			return err
		}
		inst := code.Insts[ip]
		switch inst {

		case '>':
			m.DP++

		case '<':
			m.DP--

		case '+', '-':
			p, err := m.cell(0)
			if err != nil {
				return fmt.Errorf("at %d: %w", ip, err)
			}
			if inst == '+' {
				m.add(p, 1)
			} else {
				m.add(p, m.mask)
			}

		case '.':
			p, err := m.cell(0)
			if err != nil {
				return fmt.Errorf("at %d: %w", ip, err)
			}
			buf[0] = byte(*p)
			if _, err := m.output.Write(buf); err != nil {
				return err
			}

		case ',':
			p, err := m.cell(0)
			if err != nil {
				return fmt.Errorf("at %d: %w", ip, err)
			}
			b, err := m.readByte()
			if err != nil {
				return err
			}
			*p = uint64(b)

		case '[', ']':
			p, err := m.cell(0)
			if err != nil {
				return fmt.Errorf("at %d: %w", ip, err)
			}
			if (inst == '[') == (*p == 0) {
				ip = code.Jumps[ip]
			}

		}
	}
	return nil
}
