// construct.go: layer implementations and the constructors that build chains.
//
// Layers:
//   - sentinelNode: process-lifetime message, no link, no count, no clone.
//   - dynamicNode: owned message plus an optional inner handle; counted.
//   - payloadNode[T]: a dynamicNode carrying one typed payload value.
//
// Notes:
//   - A node only links to a node that existed before it, so chains are
//     acyclic by construction.
//   - clone copies a single layer. The clone takes its own share of the
//     inner chain instead of copying it.
package xgxchain

import (
	"fmt"
	"sync/atomic"
)

// node is the capability set shared by every layer kind.
type node interface {
	// text is this layer's message.
	text() string
	// next is the inner handle held by this layer, or nil.
	next() *Error
	// payload returns a *T for the payload identified by tok, or nil.
	payload(tok Token) any
	// value returns the payload as stored, for introspection.
	value() (any, bool)
	// matches is the Is extension hook; the default is no match.
	matches(target Error) bool
	// serializable reports whether the layer survives Serialize intact.
	serializable() bool
	// wire returns the payload's type identifier and bytes. ok is false when
	// the layer cannot be represented on the wire.
	wire() (typeURL string, data []byte, ok bool)
	// debug is a short human-readable rendering of the payload.
	debug() string
	// clone copies this layer only. Sentinels return nil.
	clone() node
	// counter is the share count, nil for sentinels.
	counter() *atomic.Int32
	// detach hands over the inner link's node once this layer is dead.
	detach() node
}

// -----------------------------------------------------------------------------
// sentinelNode
// -----------------------------------------------------------------------------

type sentinelNode struct {
	msg string
}

func (n *sentinelNode) text() string { return n.msg }
func (n *sentinelNode) next() *Error { return nil }
func (n *sentinelNode) payload(Token) any { return nil }
func (n *sentinelNode) value() (any, bool) { return nil, false }
func (n *sentinelNode) matches(Error) bool { return false }
func (n *sentinelNode) serializable() bool { return false }
func (n *sentinelNode) wire() (string, []byte, bool) { return "", nil, false }
func (n *sentinelNode) debug() string { return "" }
func (n *sentinelNode) clone() node { return nil }
func (n *sentinelNode) counter() *atomic.Int32 { return nil }
func (n *sentinelNode) detach() node { return nil }

// -----------------------------------------------------------------------------
// dynamicNode
// -----------------------------------------------------------------------------

type dynamicNode struct {
	refs  atomic.Int32
	msg   message
	inner Error
}

// init sets up a fresh layer holding one share. inner is taken over: the
// caller's share becomes the layer's share.
func (n *dynamicNode) init(msg string, inner Error) {
	n.refs.Store(1)
	n.msg.set(msg)
	n.inner = inner
}

// newDynamic builds a plain layer; see init for inner ownership.
func newDynamic(msg string, inner Error) *dynamicNode {
	n := &dynamicNode{}
	n.init(msg, inner)
	return n
}

func (n *dynamicNode) text() string { return n.msg.String() }

func (n *dynamicNode) next() *Error {
	if n.inner.n == nil {
		return nil
	}
	return &n.inner
}

func (n *dynamicNode) payload(Token) any { return nil }
func (n *dynamicNode) value() (any, bool) { return nil, false }
func (n *dynamicNode) matches(Error) bool { return false }
func (n *dynamicNode) serializable() bool { return true }
func (n *dynamicNode) wire() (string, []byte, bool) { return "", nil, true }
func (n *dynamicNode) debug() string { return "" }
func (n *dynamicNode) counter() *atomic.Int32 { return &n.refs }

func (n *dynamicNode) clone() node {
	c := &dynamicNode{}
	c.refs.Store(1)
	c.msg = n.msg
	c.inner = n.inner.Copy()
	return c
}

func (n *dynamicNode) detach() node {
	in := n.inner.n
	n.inner = Error{}
	return in
}

// -----------------------------------------------------------------------------
// payloadNode
// -----------------------------------------------------------------------------

type payloadNode[T any] struct {
	dynamicNode
	val T
}

func newPayload[T any](msg string, val T, inner Error) *payloadNode[T] {
	n := &payloadNode[T]{val: val}
	n.init(msg, inner)
	return n
}

func (n *payloadNode[T]) payload(tok Token) any {
	if tok == TokenOf[T]() {
		return &n.val
	}
	return nil
}

func (n *payloadNode[T]) value() (any, bool) { return n.val, true }

func (n *payloadNode[T]) matches(target Error) bool {
	if m, ok := capability[Matcher](&n.val); ok {
		return m.MatchError(target)
	}
	return false
}

func (n *payloadNode[T]) serializable() bool {
	_, _, ok := n.wire()
	return ok
}

func (n *payloadNode[T]) wire() (string, []byte, bool) { return marshalPayload(&n.val) }

func (n *payloadNode[T]) debug() string { return debugPayload(&n.val) }

func (n *payloadNode[T]) clone() node {
	c := &payloadNode[T]{val: clonePayload(&n.val)}
	c.refs.Store(1)
	c.msg = n.msg
	c.inner = n.inner.Copy()
	return c
}

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

// New creates a single-layer error with msg.
func New(msg string) Error {
	return Error{n: newDynamic(msg, Error{})}
}

// Errorf creates a single-layer error with a formatted message.
func Errorf(format string, args ...any) Error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap creates a new outermost layer with msg in front of inner. The new
// layer takes its own share of inner; the caller keeps (and may Release)
// theirs. Wrapping Nil is the same as New.
func Wrap(inner Error, msg string) Error {
	return Error{n: newDynamic(msg, inner.Copy())}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(inner Error, format string, args ...any) Error {
	return Wrap(inner, fmt.Sprintf(format, args...))
}

// NewWithPayload creates a single-layer error carrying payload.
func NewWithPayload[T any](msg string, payload T) Error {
	return Error{n: newPayload(msg, payload, Error{})}
}

// WrapWithPayload creates a new outermost layer carrying payload in front
// of inner. Ownership of inner follows Wrap.
func WrapWithPayload[T any](inner Error, msg string, payload T) Error {
	return Error{n: newPayload(msg, payload, inner.Copy())}
}

// Interface conformance guards.
var (
	_ node = (*sentinelNode)(nil)
	_ node = (*dynamicNode)(nil)
	_ node = (*payloadNode[int])(nil)
)
