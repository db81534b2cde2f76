// message.go: storage for one layer's text.
//
// Short messages are copied into a fixed buffer inside the layer, so a plain
// layer costs a single allocation. Longer messages get their own copy of the
// bytes, detached from whatever larger buffer the caller's string lived in.
// A layer's message never changes after the layer is published.
package xgxchain

import (
	"strings"
	"unsafe"
)

// inlineCap is the longest message kept inside the layer.
const inlineCap = 23

type message struct {
	n    uint8
	buf  [inlineCap]byte
	heap string
}

// set replaces the stored text with s.
func (m *message) set(s string) {
	if len(s) <= inlineCap {
		m.n = uint8(len(s))
		copy(m.buf[:], s)
		m.heap = ""
		return
	}
	m.n = 0
	m.heap = strings.Clone(s)
}

// inline reports whether the text lives in buf.
func (m *message) inline() bool { return m.heap == "" }

// Len returns the message length in bytes.
func (m *message) Len() int {
	if m.inline() {
		return int(m.n)
	}
	return len(m.heap)
}

// String returns the text without copying it.
func (m *message) String() string {
	if !m.inline() {
		return m.heap
	}
	if m.n == 0 {
		return ""
	}
	return unsafe.String(&m.buf[0], int(m.n))
}
