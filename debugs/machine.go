package debugs

import (
	"github.com/reusee/bfdsl/bfvm"
)

// MachineGlobals exposes the state of m to a tap.
// The tape is a snapshot; cell and display read the live machine.
func MachineGlobals(m *bfvm.Machine) map[string]any {
	return map[string]any{
		"tape":  m.State().Tape,
		"dp":    m.DP,
		"width": m.CellWidth(),
		"steps": m.Steps(),
		"cell": func(pos int) uint64 {
			v, err := m.Cell(pos)
			if err != nil {
				return 0
			}
			return v
		},
		"display": func(cells int) string {
			return m.Display(cells)
		},
	}
}
