package bfvm

import (
	"bufio"
	"errors"
	"io"
)

type fastOp uint32

const (
	fastAdd fastOp = iota + 1
	fastShift
	fastClear
	fastOut
	fastIn
	fastJumpZero
	fastJumpNonZero
	// far jumps hold an index into fastCode.far
	fastFarJumpZero
	fastFarJumpNonZero
)

// arguments are signed and stored above the low byte
const maxFastArg = 1<<23 - 1

func (o fastOp) with(arg int) fastOp {
	return o | fastOp(uint32(int32(arg))<<8)
}

func (o fastOp) arg() int {
	return int(int32(o) >> 8)
}

type fastCode struct {
	ops []fastOp
	// distances of jumps too long for the inline argument
	far []int
}

func compileFast(src string) (*fastCode, error) {
	text, err := Compile(src)
	if err != nil {
		return nil, err
	}
	insts := text.Insts
	code := make([]fastOp, 0, len(insts))
	var far []int
	var stack []int

	run := func(i int, pos, neg byte) (n int, next int) {
		for i < len(insts) && n > -maxFastArg && n < maxFastArg {
			switch insts[i] {
			case pos:
				n++
			case neg:
				n--
			default:
				return n, i
			}
			i++
		}
		return n, i
	}

	for i := 0; i < len(insts); {
		switch insts[i] {

		case '+', '-':
			n, next := run(i, '+', '-')
			if n != 0 {
				code = append(code, fastAdd.with(n))
			}
			i = next

		case '>', '<':
			n, next := run(i, '>', '<')
			if n != 0 {
				code = append(code, fastShift.with(n))
			}
			i = next

		case '.':
			code = append(code, fastOut)
			i++

		case ',':
			code = append(code, fastIn)
			i++

		case '[':
			if i+2 < len(insts) &&
				(insts[i+1] == '-' || insts[i+1] == '+') &&
				insts[i+2] == ']' {
				code = append(code, fastClear)
				i += 3
				continue
			}
			stack = append(stack, len(code))
			code = append(code, fastJumpZero)
			i++

		case ']':
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			dist := len(code) - open
			if dist <= maxFastArg {
				code[open] = fastJumpZero.with(dist)
				code = append(code, fastJumpNonZero.with(-dist))
			} else {
				code[open] = fastFarJumpZero.with(len(far))
				far = append(far, dist)
				code = append(code, fastFarJumpNonZero.with(len(far)))
				far = append(far, -dist)
			}
			i++

		}
	}

	return &fastCode{
		ops: code,
		far: far,
	}, nil
}

// Execute runs program text on a fresh zeroed tape, reading stdin and writing stdout.
// Input past EOF reads as zero.
func Execute(tapeLength, cellWidth int, source string, stdin io.Reader, stdout io.Writer) (err error) {
	mask, err := cellMask(cellWidth)
	if err != nil {
		return err
	}
	if tapeLength <= 0 {
		return ErrTapeLength
	}
	code, err := compileFast(source)
	if err != nil {
		return err
	}
	tape := make([]uint64, tapeLength)
	_, err = runFast(code, tape, mask, stdin, stdout)
	return err
}

func runFast(code *fastCode, tape []uint64, mask uint64, stdin io.Reader, stdout io.Writer) (dp int, err error) {
	var in *bufio.Reader
	if stdin != nil {
		in = bufio.NewReader(stdin)
	}
	if stdout == nil {
		stdout = io.Discard
	}
	out := bufio.NewWriter(stdout)
	defer func() {
		if e := out.Flush(); e != nil && err == nil {
			err = e
		}
	}()

	ops := code.ops
	for ip := 0; ip < len(ops); ip++ {
		inst := ops[ip]
		op := inst & 0xff

		if op == fastShift {
			dp += inst.arg()
			continue
		}
		if dp < 0 || dp >= len(tape) {
			return dp, &OutOfBoundsError{
				Pos:    dp,
				Length: len(tape),
			}
		}

		switch op {

		case fastAdd:
			tape[dp] = (tape[dp] + uint64(int64(inst.arg()))) & mask

		case fastClear:
			tape[dp] = 0

		case fastOut:
			if err := out.WriteByte(byte(tape[dp])); err != nil {
				return dp, err
			}

		case fastIn:
			if in == nil {
				tape[dp] = 0
				break
			}
			if err := out.Flush(); err != nil {
				return dp, err
			}
			b, err := in.ReadByte()
			if errors.Is(err, io.EOF) {
				tape[dp] = 0
				in = nil
			} else if err != nil {
				return dp, err
			} else {
				tape[dp] = uint64(b)
			}

		case fastJumpZero:
			if tape[dp] == 0 {
				ip += inst.arg()
			}

		case fastJumpNonZero:
			if tape[dp] != 0 {
				ip += inst.arg()
			}

		case fastFarJumpZero:
			if tape[dp] == 0 {
				ip += code.far[inst.arg()]
			}

		case fastFarJumpNonZero:
			if tape[dp] != 0 {
				ip += code.far[inst.arg()]
			}

		}
	}

	return dp, nil
}
