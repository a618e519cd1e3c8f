package logs

import (
	"io"
	"os"
)

// Writer is where terminal logs go.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}
