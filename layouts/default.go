package layouts

const (
	GlobalZero = "global_zero"
	Input      = "input"
	Tmp1       = "tmp1"
	Tmp2       = "tmp2"
	Tmp3       = "tmp3"
	ParenIndex = "paren_index"
	StackTemp  = "stack_temp"
	StackStart = "stack_start"
)

// Default is the register map used by generated compilers: scratch cells
// near the origin and a stack region growing right from StackTemp.
var Default = MustNew(
	Reg{GlobalZero, 0},
	Reg{Input, 1},
	Reg{Tmp1, 2},
	Reg{Tmp2, 3},
	Reg{Tmp3, 4},
	Reg{ParenIndex, 5},
	Reg{StackTemp, 6},
	Reg{StackStart, 7},
)
