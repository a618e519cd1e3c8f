package bfscript

import (
	"errors"
	"fmt"

	"github.com/reusee/bfdsl/bfvm"
	"github.com/reusee/bfdsl/logs"
	"github.com/reusee/dscope"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var ErrNoProgram = errors.New("script does not define program")

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	Recursion:       true,
}

// Build runs a script and returns the ops bound to its global program.
// print output is dropped.
func Build(name string, src []byte) (bfvm.Program, error) {
	return build(name, src, nil)
}

func build(name string, src []byte, print func(string)) (bfvm.Program, error) {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			if print != nil {
				print(msg)
			}
		},
	}
	globals, err := starlark.ExecFileOptions(fileOptions, thread, name, src, Predeclared())
	if err != nil {
		return nil, wrap(err)
	}
	value, ok := globals["program"]
	if !ok {
		return nil, wrap(fmt.Errorf("%s: %w", name, ErrNoProgram))
	}
	ops, err := toOps(value)
	if err != nil {
		return nil, wrap(fmt.Errorf("%s: program: %w", name, err))
	}
	return ops, nil
}

type Module struct {
	dscope.Module
	Logs logs.Module
}

// BuildFunc is Build with script print output sent to the logger.
type BuildFunc func(name string, src []byte) (bfvm.Program, error)

func (Module) Build(
	logger logs.Logger,
) BuildFunc {
	return func(name string, src []byte) (bfvm.Program, error) {
		return build(name, src, func(msg string) {
			logger.Info(msg, "script", name)
		})
	}
}
