package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reusee/bfdsl/bfconfigs"
	"github.com/reusee/bfdsl/bfscript"
	"github.com/reusee/bfdsl/bfvm"
	"github.com/reusee/bfdsl/cmds"
	"github.com/reusee/bfdsl/debugs"
	"github.com/reusee/bfdsl/logs"
	"github.com/reusee/bfdsl/modes"
	"github.com/reusee/dscope"
)

var (
	runFile   = cmds.Var[string]("run")
	buildFile = cmds.Var[string]("build")
	execFile  = cmds.Var[string]("exec")
	outFile   = cmds.Var[string]("-o")
	input     = cmds.Var[string]("-input")
	printTape = cmds.Var[int]("-print-tape")
	dumpFile  = cmds.Var[string]("-dump")
	tap       = cmds.Switch("-tap")
)

func main() {
	cmds.GlobalExecutor.MustExecute(os.Args[1:])

	if *runFile == "" && *buildFile == "" && *execFile == "" {
		fmt.Fprintln(os.Stderr, "one of run <file.bf>, build <script.star> or exec <script.star> is required")
		cmds.PrintUsage()
		os.Exit(2)
	}

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	var err error
	ctx := context.Background()
	scope.Call(func(
		newSpan logs.NewSpan,
	) {
		switch {
		case *buildFile != "":
			ctx, _ = newSpan(ctx, "build")
			err = dscope.Get[BuildCommand](scope)(*buildFile)
		case *execFile != "":
			ctx, _ = newSpan(ctx, "exec")
			err = dscope.Get[ExecCommand](scope)(ctx, *execFile)
		case *runFile != "":
			ctx, _ = newSpan(ctx, "run")
			err = dscope.Get[RunCommand](scope)(ctx, *runFile)
		}
	})

	if err != nil {
		fmt.Fprintln(os.Stderr, logs.WrapSpan(ctx, err))
		os.Exit(1)
	}
}

type BuildCommand func(path string) error

func (Module) BuildCommand(
	build bfscript.BuildFunc,
) BuildCommand {
	return func(path string) error {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		program, err := build(path, src)
		if err != nil {
			return err
		}
		text := program.Render()
		if *outFile != "" {
			return os.WriteFile(*outFile, []byte(text+"\n"), 0644)
		}
		_, err = fmt.Println(text)
		return err
	}
}

type ExecCommand func(ctx context.Context, path string) error

func (Module) ExecCommand(
	build bfscript.BuildFunc,
	live bfconfigs.LiveInput,
	newMachine bfvm.NewMachineFunc,
	finish Finish,
) ExecCommand {
	return func(ctx context.Context, path string) error {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		program, err := build(path, src)
		if err != nil {
			return err
		}
		out := bufio.NewWriter(os.Stdout)
		m, err := newMachine([]byte(*input), liveReader(live, os.Stdin), out)
		if err != nil {
			return err
		}
		err = m.Exec(program...)
		if e := out.Flush(); e != nil && err == nil {
			err = e
		}
		if err != nil {
			return err
		}
		return finish(ctx, m)
	}
}

type RunCommand func(ctx context.Context, path string) error

func (Module) RunCommand(
	fast bfconfigs.Fast,
	live bfconfigs.LiveInput,
	execute bfvm.ExecuteFunc,
	newMachine bfvm.NewMachineFunc,
	finish Finish,
	logger logs.Logger,
) RunCommand {
	return func(ctx context.Context, path string) error {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if fast {
			logger.DebugContext(ctx, "fast path", "file", path)
			return execute(string(src), fastInput(*input, liveReader(live, os.Stdin)), os.Stdout)
		}

		m, err := newMachine([]byte(*input), liveReader(live, os.Stdin), os.Stdout)
		if err != nil {
			return err
		}
		if err := m.ExecText(string(src)); err != nil {
			return err
		}
		return finish(ctx, m)
	}
}

// liveReader returns stdin only when live input is on.
func liveReader(live bfconfigs.LiveInput, stdin io.Reader) io.Reader {
	if !live {
		return nil
	}
	return stdin
}

// fastInput gives the fast interpreter the same input a machine sees: the
// -input bytes, then the live reader if any.
func fastInput(input string, live io.Reader) io.Reader {
	if live == nil {
		return strings.NewReader(input)
	}
	return io.MultiReader(strings.NewReader(input), live)
}

// Finish reports the final machine state as requested by flags.
type Finish func(ctx context.Context, m *bfvm.Machine) error

func (Module) Finish(
	tapFunc debugs.Tap,
) Finish {
	return func(ctx context.Context, m *bfvm.Machine) error {
		if *printTape > 0 {
			fmt.Fprintln(os.Stderr, m.Display(*printTape))
		}
		if *dumpFile != "" {
			f, err := os.Create(*dumpFile)
			if err != nil {
				return err
			}
			if err := m.Snapshot(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
		}
		if *tap {
			tapFunc(ctx, "machine", debugs.MachineGlobals(m))
		}
		return nil
	}
}
