package layouts

import (
	"fmt"
	"slices"
)

type Reg struct {
	Name   string
	Offset int
}

// Layout is a set of named cells, each at a distinct offset from a logical zero.
type Layout struct {
	regs   []Reg
	byName map[string]int
}

func New(regs ...Reg) (*Layout, error) {
	ret := &Layout{
		byName: make(map[string]int, len(regs)),
	}
	byOffset := make(map[int]string, len(regs))
	for _, reg := range regs {
		if _, ok := ret.byName[reg.Name]; ok {
			return nil, &DuplicatedNameError{
				Name: reg.Name,
			}
		}
		if other, ok := byOffset[reg.Offset]; ok {
			return nil, &CollisionError{
				Offset: reg.Offset,
				Names:  []string{other, reg.Name},
			}
		}
		ret.byName[reg.Name] = reg.Offset
		byOffset[reg.Offset] = reg.Name
		ret.regs = append(ret.regs, reg)
	}
	slices.SortFunc(ret.regs, func(a, b Reg) int {
		return a.Offset - b.Offset
	})
	return ret, nil
}

func MustNew(regs ...Reg) *Layout {
	ret, err := New(regs...)
	if err != nil {
		panic(err)
	}
	return ret
}

func (l *Layout) Offset(name string) int {
	offset, ok := l.byName[name]
	if !ok {
		panic(fmt.Errorf("no such register: %s", name))
	}
	return offset
}

func (l *Layout) Has(name string) bool {
	_, ok := l.byName[name]
	return ok
}

// Off returns the shifts from register from to each of the named registers.
func (l *Layout) Off(from string, to ...string) []int {
	ref := l.Offset(from)
	ret := make([]int, 0, len(to))
	for _, name := range to {
		ret = append(ret, l.Offset(name)-ref)
	}
	return ret
}

// Regs returns the registers ordered by offset.
func (l *Layout) Regs() []Reg {
	return slices.Clone(l.regs)
}

// With returns a new layout with extra registers, checking them against the existing ones.
func (l *Layout) With(regs ...Reg) (*Layout, error) {
	return New(append(slices.Clone(l.regs), regs...)...)
}
