package configs

import (
	"testing"
)

func TestFirst(t *testing.T) {
	loader := NewSourceLoader([]Source{
		{Name: "x.cue", Content: []byte(`name: "x"`)},
		{Name: "y.cue", Content: []byte(`name: "y", tape_length: 3`)},
	}, testSchema)

	if name := First[string](loader, "name"); name != "x" {
		t.Fatalf("got %v", name)
	}
	if n := First[int](loader, "tape_length"); n != 3 {
		t.Fatalf("got %v", n)
	}
	if widths := First[[]int](loader, "widths"); widths != nil {
		t.Fatalf("got %v", widths)
	}
}

func TestFirstPanicsOnInvalidConfig(t *testing.T) {
	loader := NewSourceLoader([]Source{
		{Name: "bad.cue", Content: []byte(`foo: 1`)},
	}, testSchema)
	defer func() {
		if p := recover(); p == nil {
			t.Fatal("should panic")
		}
	}()
	First[string](loader, "name")
}
