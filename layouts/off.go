package layouts

// Off converts absolute offsets into shifts relative to reference.
func Off(reference int, targets ...int) []int {
	ret := make([]int, 0, len(targets))
	for _, target := range targets {
		ret = append(ret, target-reference)
	}
	return ret
}

// Rel is Off for a single target.
func Rel(reference, target int) int {
	return target - reference
}
