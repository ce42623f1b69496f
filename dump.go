package mealmind

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/davecgh/go-spew/spew"
)

// Dump pretty-prints values to stderr with the caller's file:line prefix.
func Dump(v ...any) {
	_, file, line, _ := runtime.Caller(1)
	args := append([]any{fmt.Sprintf("%s:%d:", file, line)}, v...)
	spew.Fdump(os.Stderr, args...)
}

// DumpTo pretty-prints values to w with the caller's file:line prefix.
func DumpTo(w io.Writer, v ...any) {
	_, file, line, _ := runtime.Caller(1)
	args := append([]any{fmt.Sprintf("%s:%d:", file, line)}, v...)
	spew.Fdump(w, args...)
}
