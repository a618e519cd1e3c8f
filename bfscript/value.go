package bfscript

import (
	"fmt"

	"github.com/reusee/bfdsl/bfvm"
	"go.starlark.net/starlark"
)

// Op is a macro-instruction as a Starlark value.
type Op struct {
	Op bfvm.Op
}

var _ starlark.Value = new(Op)

func (o *Op) String() string {
	return o.Op.String()
}

func (o *Op) Type() string {
	return "op"
}

func (o *Op) Freeze() {}

func (o *Op) Truth() starlark.Bool {
	return starlark.True
}

func (o *Op) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: op")
}

func opList(ops []bfvm.Op) *starlark.List {
	elems := make([]starlark.Value, 0, len(ops))
	for _, op := range ops {
		elems = append(elems, &Op{Op: op})
	}
	return starlark.NewList(elems)
}

// toOps flattens ops and nested lists or tuples of them. None contributes nothing.
func toOps(v starlark.Value) ([]bfvm.Op, error) {
	var ret []bfvm.Op
	var walk func(v starlark.Value) error
	walk = func(v starlark.Value) error {
		switch v := v.(type) {
		case *Op:
			ret = append(ret, v.Op)
		case starlark.NoneType:
		case starlark.String:
			return fmt.Errorf("want op or list of ops, got string %q", string(v))
		case starlark.Bytes:
			return fmt.Errorf("want op or list of ops, got bytes %q", string(v))
		case starlark.Indexable:
			for i := range v.Len() {
				if err := walk(v.Index(i)); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("want op or list of ops, got %s", v.Type())
		}
		return nil
	}
	if err := walk(v); err != nil {
		return nil, err
	}
	return ret, nil
}

// toChar accepts a one-byte string or an int in [0, 255].
func toChar(v starlark.Value) (byte, error) {
	switch v := v.(type) {
	case starlark.String:
		if len(v) != 1 {
			return 0, fmt.Errorf("want single byte string, got %q", string(v))
		}
		return v[0], nil
	case starlark.Int:
		n, ok := v.Int64()
		if !ok || n < 0 || n > 255 {
			return 0, fmt.Errorf("byte out of range: %v", v)
		}
		return byte(n), nil
	}
	return 0, fmt.Errorf("want string or int, got %s", v.Type())
}
