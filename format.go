// format.go: fmt.Formatter and DebugString.
//
// Behavior:
//
//   %s, %v   → Message() (full chain, ": "-joined).
//   %q       → quoted Message().
//   %+v      → one line per layer, outermost first:
//                msg="api gateway error"
//                cause: msg="permission denied" sentinel
//                cause: msg="login failed" payload=[test.Login: user:"alice"]
package xgxchain

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// debugReserve is the per-layer estimate for payload text in DebugString.
const debugReserve = 64

// DebugString returns the full chain message with each payload's debug text
// appended to its layer as " [type: debug]" (or " [debug]" when the payload
// has no wire type). It returns "(nil)" for Nil.
func DebugString(e Error) string {
	if e.IsNil() {
		return nilText
	}
	estimate := 0
	for cur := &e; cur != nil; cur = cur.link() {
		estimate += len(cur.n.text()) + len(sep) + debugReserve
	}

	var b strings.Builder
	b.Grow(estimate)
	for cur := &e; cur != nil; cur = cur.link() {
		if cur != &e {
			b.WriteString(sep)
		}
		b.WriteString(cur.n.text())
		writePayload(&b, cur.n)
	}
	return b.String()
}

// writePayload appends " [type: debug]" for layers with payload debug text.
func writePayload(w io.StringWriter, n node) {
	debug := n.debug()
	if debug == "" {
		return
	}
	_, _ = w.WriteString(" [")
	if typeURL, _, ok := n.wire(); ok && typeURL != "" {
		_, _ = w.WriteString(typeURL)
		_, _ = w.WriteString(": ")
	}
	_, _ = w.WriteString(debug)
	_, _ = w.WriteString("]")
}

// Format implements fmt.Formatter.
func (e Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			formatVerbose(s, e)
			return
		}
		_, _ = io.WriteString(s, e.Message())
	case 's':
		_, _ = io.WriteString(s, e.Message())
	case 'q':
		_, _ = io.WriteString(s, strconv.Quote(e.Message()))
	default:
		_, _ = fmt.Fprintf(s, "%%!%c(xgxchain.Error=%s)", verb, e.Message())
	}
}

// formatVerbose writes one line per layer.
func formatVerbose(w io.Writer, e Error) {
	if e.IsNil() {
		_, _ = io.WriteString(w, nilText)
		return
	}
	var b strings.Builder
	for cur := &e; cur != nil; cur = cur.link() {
		if cur != &e {
			b.WriteString("\ncause: ")
		}
		b.WriteString("msg=")
		b.WriteString(strconv.Quote(cur.n.text()))
		if cur.IsSentinel() {
			b.WriteString(" sentinel")
		}
		if v, ok := cur.n.value(); ok {
			fmt.Fprintf(&b, " payload=%T", v)
			writePayload(&b, cur.n)
		}
	}
	_, _ = io.WriteString(w, b.String())
}
