package cmds

import (
	"fmt"
	"reflect"
)

// Command is a function taking its arguments from the following tokens,
// a set of sub commands visible after it, or both.
type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

// Func panics unless fn is a function returning nothing or an error.
func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)
	if err := checkFunc(fnValue); err != nil {
		panic(fmt.Errorf("%T: %w", fn, err))
	}
	return &Command{
		Func: fnValue,
	}
}

func checkFunc(fn reflect.Value) error {
	if fn.Kind() != reflect.Func {
		return fmt.Errorf("must be function")
	}
	switch fn.Type().NumOut() {
	case 0:
		return nil
	case 1:
		if fn.Type().Out(0) != errorType {
			return fmt.Errorf("must return error")
		}
		return nil
	}
	return fmt.Errorf("must return 0 or 1 value")
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}
