// stack.go: opt-in call stack capture as a layer payload.
//
// Design goals:
//   - Use runtime.Callers + runtime.CallersFrames for frame resolution
//     (handles inlining correctly).
//   - Capture only on request (WithStack); bounded depth.
//   - The Stack payload is debug-only: it has no wire capability, so a
//     stack layer degrades to its message on Serialize.
package xgxchain

import (
	"runtime"
	"strconv"
	"strings"
)

// Frame is a single call site.
type Frame struct {
	PC       uintptr
	File     string
	Line     int
	Function string
}

// Stack is a list of frames from the most recent call outward.
type Stack []Frame

// defaultMaxDepth bounds capture work on error paths.
const defaultMaxDepth = 64

// WithStack wraps inner in a new layer carrying the caller's stack.
func WithStack(inner Error, msg string) Error {
	return WrapWithPayload(inner, msg, captureStack(1, defaultMaxDepth))
}

// StackOf returns the outermost Stack in e's chain.
func StackOf(e Error) (Stack, bool) {
	return As[Stack](e)
}

// captureStack captures up to maxDepth frames. skip counts frames above the
// caller of captureStack: 0 starts at the function that called captureStack.
//
// Skip accounting: +1 for runtime.Callers, +1 for captureStack.
func captureStack(skip, maxDepth int) Stack {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pc[:n])
	out := make(Stack, 0, n)
	for {
		fr, more := frames.Next()
		out = append(out, Frame{
			PC:       fr.PC,
			File:     fr.File,
			Line:     fr.Line,
			Function: fr.Function,
		})
		if !more {
			break
		}
	}
	return out
}

// String renders the top frame and the depth, e.g. "pkg.fn (file.go:12) +5".
func (s Stack) String() string {
	if len(s) == 0 {
		return "(no frames)"
	}
	top := s[0]
	var b strings.Builder
	b.WriteString(top.Function)
	b.WriteString(" (")
	b.WriteString(shortFile(top.File))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(top.Line))
	b.WriteByte(')')
	if len(s) > 1 {
		b.WriteString(" +")
		b.WriteString(strconv.Itoa(len(s) - 1))
	}
	return b.String()
}

// Clone implements Cloner.
func (s Stack) Clone() Stack {
	if s == nil {
		return nil
	}
	return append(Stack(nil), s...)
}

func shortFile(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

var _ Cloner[Stack] = Stack(nil)
