package bfvm

import (
	"fmt"
	"slices"
	"strings"

	"github.com/reusee/bfdsl/layouts"
)

type Kind uint8

const (
	KindAdd Kind = iota + 1
	KindShift
	KindMove
	KindZero
	KindCopy
	KindLoop
	KindIn
	KindOut
	KindOutN
	KindOutS
	KindAssertZero
)

var kindNames = [...]string{
	KindAdd:        "add",
	KindShift:      "shift",
	KindMove:       "move",
	KindZero:       "zero",
	KindCopy:       "copy",
	KindLoop:       "loop",
	KindIn:         "in",
	KindOut:        "out",
	KindOutN:       "out_n",
	KindOutS:       "out_s",
	KindAssertZero: "assert_zero",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Op is one macro-instruction. Offsets are relative to the data pointer at the time the op starts.
//
//	Add        Value
//	Shift      Value
//	Move       Src, Dest
//	Copy       Src, Tmp, Dest
//	Loop       Body
//	OutN       Char, Src (count), Tmp (tmp1), Dest (tmp2)
//	OutS       Text
//	AssertZero Offsets
type Op struct {
	Kind    Kind
	Value   int
	Src     int
	Tmp     int
	Dest    int
	Char    byte
	Text    string
	Body    []Op
	Offsets []int
}

func Add(value int) Op {
	return Op{
		Kind:  KindAdd,
		Value: value,
	}
}

func Shift(n int) Op {
	return Op{
		Kind:  KindShift,
		Value: n,
	}
}

// Move adds the src cell into dest and clears src.
func Move(src, dest int) Op {
	layouts.MustDistinct(src, dest)
	return Op{
		Kind: KindMove,
		Src:  src,
		Dest: dest,
	}
}

func Zero() Op {
	return Op{
		Kind: KindZero,
	}
}

// Copy duplicates src into dest through tmp. tmp and dest must be zero on entry.
func Copy(src, tmp, dest int) Op {
	layouts.MustDistinct(src, tmp, dest)
	return Op{
		Kind: KindCopy,
		Src:  src,
		Tmp:  tmp,
		Dest: dest,
	}
}

func Loop(body ...Op) Op {
	return Op{
		Kind: KindLoop,
		Body: slices.Clone(body),
	}
}

func In() Op {
	return Op{
		Kind: KindIn,
	}
}

func Out() Op {
	return Op{
		Kind: KindOut,
	}
}

// OutN emits char as many times as the cell at count holds. tmp1 and tmp2 must be zero on entry.
func OutN(char byte, count, tmp1, tmp2 int) Op {
	layouts.MustDistinct(count, tmp1, tmp2)
	return Op{
		Kind: KindOutN,
		Char: char,
		Src:  count,
		Tmp:  tmp1,
		Dest: tmp2,
	}
}

// OutS emits the bytes of text using the current cell, which must be zero.
func OutS(text string) Op {
	return Op{
		Kind: KindOutS,
		Text: text,
	}
}

// AssertZero renders to nothing. Machines checking preconditions fail if any listed cell is non-zero.
func AssertZero(offsets ...int) Op {
	return Op{
		Kind:    KindAssertZero,
		Offsets: slices.Clone(offsets),
	}
}

func (o Op) String() string {
	switch o.Kind {
	case KindAdd, KindShift:
		return fmt.Sprintf("%s(%d)", o.Kind, o.Value)
	case KindMove:
		return fmt.Sprintf("move(%d,%d)", o.Src, o.Dest)
	case KindCopy:
		return fmt.Sprintf("copy(%d,%d,%d)", o.Src, o.Tmp, o.Dest)
	case KindLoop:
		return fmt.Sprintf("loop(%d)", len(o.Body))
	case KindOutN:
		return fmt.Sprintf("out_n(%q,%d,%d,%d)", o.Char, o.Src, o.Tmp, o.Dest)
	case KindOutS:
		return fmt.Sprintf("out_s(%q)", o.Text)
	case KindAssertZero:
		return fmt.Sprintf("assert_zero%v", o.Offsets)
	}
	return o.Kind.String() + "()"
}

type Program []Op

func (p Program) Render() string {
	return Render(p...)
}

func (p Program) String() string {
	parts := make([]string, 0, len(p))
	for _, op := range p {
		parts = append(parts, op.String())
	}
	return strings.Join(parts, " ")
}
