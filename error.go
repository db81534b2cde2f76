// error.go: the Error handle, a small value referring to one layer of a chain.
//
// Representation:
//   - Error wraps a single node reference. Its state is read from that
//     reference alone:
//       • nil node                    → Nil
//       • node without a share count  → Sentinel (non-owning, never cloned)
//       • node with a share count     → Dynamic (owning one share)
//   - Copying a handle with Copy is O(1): it bumps the count on the outermost
//     node and shares the whole chain.
//
// Ownership in Go terms:
//   - The count tracks registered shares, not Go assignments. A constructor
//     returns one share; Copy adds one; a node storing an inner handle holds
//     its own. Next, Walk, All, Layers, Root and Result.Err hand out a share
//     of their own too.
//   - Plain assignment (b := a, errors.As, Unwrap) borrows the share it was
//     assigned from. A borrowed handle is not an independent copy: AsMut
//     through it mutates what the lender sees. Use Copy before AsMut.
//   - Release returns a share. Dropping a handle without Release is memory
//     safe; the only effect is that AsMut later clones more eagerly.
//
// Interop:
//   - Error implements error, Unwrap() error and Is(error) bool, so
//     errors.Is/errors.Unwrap walk handle chains too.
package xgxchain

import (
	"strings"
	"sync/atomic"
)

// sep joins layer messages in Message.
const sep = ": "

// nilText is what Message and DebugString report for a Nil handle.
const nilText = "(nil)"

// Error is a cheap-to-copy handle to an immutable chain of error layers.
// The zero value is Nil.
//
// Two handles are equal (==) iff they refer to the same layer instance or
// are both Nil. Equal message text does not make handles equal.
//
// Assigning an Error borrows; Copy registers an independent share.
type Error struct {
	n node
}

var nilError Error

// Nil returns the canonical Nil handle.
func Nil() Error { return nilError }

// Sentinel creates an identity-only error with the given message. Sentinels
// are meant to be declared once as package-level variables and compared
// with Is; they carry no payload, have no inner link, and are never cloned
// or serialized with their identity.
//
//	var ErrPermission = xgxchain.Sentinel("permission denied")
func Sentinel(msg string) Error {
	return Error{n: &sentinelNode{msg: msg}}
}

// IsNil reports whether e holds no layer. A non-nil handle is a failure.
func (e Error) IsNil() bool { return e.n == nil }

// IsSentinel reports whether e's outermost layer is a sentinel.
func (e Error) IsSentinel() bool { return e.n != nil && e.n.counter() == nil }

// What returns this layer's message only, or "" for Nil.
func (e Error) What() string {
	if e.n == nil {
		return ""
	}
	return e.n.text()
}

// Next returns a new share of the next handle inward, or nil when this
// layer has no inner link (including Nil and sentinel handles). AsMut on the
// result never changes e's chain.
func (e Error) Next() *Error {
	next := e.link()
	if next == nil {
		return nil
	}
	cp := next.Copy()
	return &cp
}

// link returns the inner handle as stored in e's layer, without taking a
// share. It must not be handed to AsMut or kept past the traversal.
func (e *Error) link() *Error {
	if e.n == nil {
		return nil
	}
	return e.n.next()
}

// Message returns the full chain message, outermost layer first, joined by
// ": ". It returns "(nil)" for Nil.
func (e Error) Message() string {
	if e.n == nil {
		return nilText
	}
	size, layers := 0, 0
	for cur := &e; cur != nil; cur = cur.link() {
		size += len(cur.n.text())
		layers++
	}
	size += (layers - 1) * len(sep)

	var b strings.Builder
	b.Grow(size)
	for cur := &e; cur != nil; cur = cur.link() {
		if cur != &e {
			b.WriteString(sep)
		}
		b.WriteString(cur.n.text())
	}
	return b.String()
}

// Error implements the error interface; it is the same as Message.
func (e Error) Error() string { return e.Message() }

// Err converts e into a plain error that is nil when e is Nil, for use at
// boundaries that speak the standard error interface.
func (e Error) Err() error {
	if e.n == nil {
		return nil
	}
	return e
}

// Unwrap exposes the next layer to errors.Unwrap / errors.Is / errors.As.
func (e Error) Unwrap() error {
	if next := e.link(); next != nil {
		return *next
	}
	return nil
}

// Is lets errors.Is consult this layer's matching hook. Identity is already
// handled by errors.Is through ==.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && e.n != nil && e.n.matches(t)
}

// Equal reports whether e and other refer to the same layer instance.
func (e Error) Equal(other Error) bool { return e == other }

// Payload returns the payload stored on e's outermost layer, if any.
func (e Error) Payload() (any, bool) {
	if e.n == nil {
		return nil, false
	}
	return e.n.value()
}

// Copy returns a new share of e. For dynamic handles it increments the
// outermost count; sentinel and Nil handles are returned as is.
func (e Error) Copy() Error {
	if c := e.refs(); c != nil {
		c.Add(1)
	}
	return e
}

// Move transfers e's share to the returned handle and leaves e Nil.
func (e *Error) Move() Error {
	out := *e
	*e = Error{}
	return out
}

// Release returns e's share and leaves e Nil. When the last share of a layer
// is returned, the layer gives up its own share of the inner chain; the
// teardown walks the chain in a loop, so its stack use does not grow with
// chain depth.
func (e *Error) Release() {
	n := e.n
	*e = Error{}
	for n != nil {
		c := n.counter()
		if c == nil || c.Add(-1) != 0 {
			return
		}
		n = n.detach()
	}
}

// Is reports whether target appears in e's chain, either by identity or
// because a layer's matching hook accepts it. Is(Nil, Nil) is true.
func Is(e, target Error) bool {
	for cur := &e; cur != nil; cur = cur.link() {
		if *cur == target {
			return true
		}
		if cur.n != nil && cur.n.matches(target) {
			return true
		}
	}
	return false
}

// refs returns the share counter of the outermost layer, or nil for Nil and
// sentinel handles.
func (e Error) refs() *atomic.Int32 {
	if e.n == nil {
		return nil
	}
	return e.n.counter()
}

// own makes e the only owner of its outermost layer, cloning that single
// layer when it is shared. e must hold a share of its own. The clone keeps sharing the inner chain. Sentinel
// and Nil handles cannot be owned and yield nil.
func (e *Error) own() node {
	c := e.refs()
	if c == nil {
		return nil
	}
	if c.Load() > 1 {
		shared := *e
		e.n = e.n.clone()
		shared.Release()
	}
	return e.n
}
