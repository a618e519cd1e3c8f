package layouts

import "fmt"

type CollisionError struct {
	Offset int
	Names  []string
}

func (c *CollisionError) Error() string {
	if len(c.Names) > 0 {
		return fmt.Sprintf("offset collision at %d: %v", c.Offset, c.Names)
	}
	return fmt.Sprintf("offset collision at %d", c.Offset)
}

type DuplicatedNameError struct {
	Name string
}

func (d *DuplicatedNameError) Error() string {
	return fmt.Sprintf("duplicated register %s", d.Name)
}

// Distinct reports the first offset that appears more than once.
func Distinct(offsets ...int) error {
	for i, a := range offsets {
		for _, b := range offsets[i+1:] {
			if a == b {
				return &CollisionError{
					Offset: a,
				}
			}
		}
	}
	return nil
}

// MustDistinct panics with a *CollisionError if any offsets coincide.
func MustDistinct(offsets ...int) {
	if err := Distinct(offsets...); err != nil {
		panic(err)
	}
}
