package bfscript

import (
	"fmt"

	"github.com/reusee/bfdsl/bfvm"
	"github.com/reusee/bfdsl/layouts"
	"github.com/reusee/bfdsl/macros"
	"go.starlark.net/starlark"
)

type builtinFunc = func(
	thread *starlark.Thread,
	b *starlark.Builtin,
	args starlark.Tuple,
	kwargs []starlark.Tuple,
) (starlark.Value, error)

// builtin turns construction panics, such as offset collisions, into Starlark errors.
func builtin(name string, fn builtinFunc) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(
		thread *starlark.Thread,
		b *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (ret starlark.Value, err error) {
		defer func() {
			if p := recover(); p != nil {
				e, ok := p.(error)
				if !ok {
					panic(p)
				}
				err = fmt.Errorf("%s: %w", name, e)
			}
		}()
		return fn(thread, b, args, kwargs)
	})
}

func noArgs(fn func() bfvm.Op) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		return &Op{Op: fn()}, nil
	}
}

func noArgsMacro(fn func() []bfvm.Op) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		return opList(fn()), nil
	}
}

func ints(name string, args starlark.Tuple) ([]int, error) {
	ret := make([]int, 0, len(args))
	for i, arg := range args {
		var n int
		if err := starlark.AsInt(arg, &n); err != nil {
			return nil, fmt.Errorf("%s: arg %d: %w", name, i, err)
		}
		ret = append(ret, n)
	}
	return ret, nil
}

func optionalOps(v starlark.Value) ([]bfvm.Op, error) {
	if v == nil {
		return nil, nil
	}
	return toOps(v)
}

// Predeclared returns the builtins available to program scripts.
func Predeclared() starlark.StringDict {
	regs := starlark.NewDict(len(layouts.Default.Regs()))
	for _, reg := range layouts.Default.Regs() {
		if err := regs.SetKey(starlark.String(reg.Name), starlark.MakeInt(reg.Offset)); err != nil {
			panic(err)
		}
	}
	regs.Freeze()

	return starlark.StringDict{

		"regs": regs,

		"add": builtin("add", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var n int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
				return nil, err
			}
			return &Op{Op: bfvm.Add(n)}, nil
		}),

		"shift": builtin("shift", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var n int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
				return nil, err
			}
			return &Op{Op: bfvm.Shift(n)}, nil
		}),

		"move": builtin("move", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var src, dest int
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "src", &src, "dest", &dest); err != nil {
				return nil, err
			}
			return &Op{Op: bfvm.Move(src, dest)}, nil
		}),

		"zero": builtin("zero", noArgs(bfvm.Zero)),

		"copy": builtin("copy", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var src, tmp, dest int
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "src", &src, "tmp", &tmp, "dest", &dest); err != nil {
				return nil, err
			}
			return &Op{Op: bfvm.Copy(src, tmp, dest)}, nil
		}),

		"loop": builtin("loop", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if len(kwargs) > 0 {
				return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
			}
			body, err := toOps(args)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			return &Op{Op: bfvm.Loop(body...)}, nil
		}),

		"read": builtin("read", noArgs(bfvm.In)),

		"write": builtin("write", noArgs(bfvm.Out)),

		"write_n": builtin("write_n", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var char starlark.Value
			var count, tmp1, tmp2 int
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "char", &char, "count", &count, "tmp1", &tmp1, "tmp2", &tmp2); err != nil {
				return nil, err
			}
			c, err := toChar(char)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			return &Op{Op: bfvm.OutN(c, count, tmp1, tmp2)}, nil
		}),

		"write_s": builtin("write_s", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var text string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &text); err != nil {
				return nil, err
			}
			return &Op{Op: bfvm.OutS(text)}, nil
		}),

		"assert_zero": builtin("assert_zero", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			offsets, err := ints(b.Name(), args)
			if err != nil {
				return nil, err
			}
			return &Op{Op: bfvm.AssertZero(offsets...)}, nil
		}),

		"off": builtin("off", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("%s: missing reference", b.Name())
			}
			offsets, err := ints(b.Name(), args)
			if err != nil {
				return nil, err
			}
			var elems []starlark.Value
			for _, o := range layouts.Off(offsets[0], offsets[1:]...) {
				elems = append(elems, starlark.MakeInt(o))
			}
			return starlark.NewList(elems), nil
		}),

		"if_eq_then": builtin("if_eq_then", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if len(args) == 0 {
				return nil, fmt.Errorf("%s: missing literal", b.Name())
			}
			lit, err := toChar(args[0])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			body, err := toOps(args[1:])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			return opList(macros.IfEqThen(lit, body...)), nil
		}),

		"if_conseq": builtin("if_conseq", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var truV, falsV starlark.Value
			dist := 1
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "tru?", &truV, "fals?", &falsV, "dist?", &dist); err != nil {
				return nil, err
			}
			tru, err := optionalOps(truV)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			fals, err := optionalOps(falsV)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			return opList(macros.IfConseq(tru, fals, dist)), nil
		}),

		"if_tmps": builtin("if_tmps", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var tmp1, tmp2 int
			var truV, falsV starlark.Value
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "tmp1", &tmp1, "tmp2", &tmp2, "tru?", &truV, "fals?", &falsV); err != nil {
				return nil, err
			}
			tru, err := optionalOps(truV)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			fals, err := optionalOps(falsV)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			return opList(macros.IfTmps(tmp1, tmp2, tru, fals)), nil
		}),

		"switch": builtin("switch", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var src, flag int
			var cases *starlark.Dict
			var defV starlark.Value
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "src", &src, "flag", &flag, "cases", &cases, "default?", &defV); err != nil {
				return nil, err
			}
			var cs []macros.Case
			for _, item := range cases.Items() {
				key, err := toChar(item[0])
				if err != nil {
					return nil, fmt.Errorf("%s: key: %w", b.Name(), err)
				}
				body, err := toOps(item[1])
				if err != nil {
					return nil, fmt.Errorf("%s: case %d: %w", b.Name(), key, err)
				}
				cs = append(cs, macros.Case{
					Key:  int(key),
					Body: body,
				})
			}
			def, err := optionalOps(defV)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b.Name(), err)
			}
			return opList(macros.Switch(src, flag, cs, def)), nil
		}),

		"push": builtin("push", noArgsMacro(macros.Push)),

		"pop": builtin("pop", noArgsMacro(macros.Pop)),

		"init_stack": builtin("init_stack", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var capacity int
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &capacity); err != nil {
				return nil, err
			}
			return opList(macros.InitStack(capacity)), nil
		}),
	}
}
