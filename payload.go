// payload.go: typed payload lookup and the capabilities payloads may offer.
//
// Capabilities are structural: a payload type opts in by having the method
// set, on the value or on its pointer.
//   - WirePayload   → the layer can cross Serialize/Deserialize.
//   - proto.Message → same, using the protobuf encoding (see proto.go).
//   - fmt.Stringer  → used by DebugString and %+v.
//   - Matcher       → custom equivalence for Is.
//   - Cloner[T]     → deep copy when AsMut has to clone a shared layer.
package xgxchain

import (
	"bytes"
	"fmt"
	"strconv"

	"google.golang.org/protobuf/proto"
)

// WirePayload is implemented by payloads that can be written by the codec.
type WirePayload interface {
	// TypeName identifies the payload type on the wire.
	TypeName() string
	// MarshalBinary produces the payload bytes.
	MarshalBinary() ([]byte, error)
}

// Matcher lets a payload decide that its layer is equivalent to target,
// for example by comparing a classification code instead of identity.
type Matcher interface {
	MatchError(target Error) bool
}

// Cloner is implemented by payloads whose plain Go copy would still share
// mutable state (slices, maps, pointers).
type Cloner[T any] interface {
	Clone() T
}

// As returns a copy of the first payload of type T found walking e's chain
// from the outermost layer inward.
func As[T any](e Error) (T, bool) {
	if p := lookup[T](e); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// AsMut returns a pointer to the first payload of type T in *e's chain,
// for in-place mutation. Every shared layer on the way to the payload is
// cloned first (one layer at a time, the rest of the chain stays shared),
// so the mutation is visible through *e only, never through other shares.
// It returns nil without cloning anything when no such payload exists.
//
// *e must hold its own share: a constructor result, a Copy, or a handle from
// Next, Walk, All, Layers, Root or Result.Err. A plain assignment b := a
// borrows a's share, so AsMut(&b) changes what a sees; use b := a.Copy().
//
// AsMut mutates the handle *e; concurrent AsMut calls on the same handle
// must be serialized by the caller.
func AsMut[T any](e *Error) *T {
	if e == nil || lookup[T](*e) == nil {
		return nil
	}
	tok := TokenOf[T]()
	for cur := e; cur != nil; {
		n := cur.own()
		if n == nil {
			return nil
		}
		if p := n.payload(tok); p != nil {
			return p.(*T)
		}
		cur = n.next()
	}
	return nil
}

// lookup is the read-only search shared by As and AsMut.
func lookup[T any](e Error) *T {
	tok := TokenOf[T]()
	for cur := &e; cur != nil && cur.n != nil; cur = cur.link() {
		if p := cur.n.payload(tok); p != nil {
			return p.(*T)
		}
	}
	return nil
}

// capability finds interface I on *v or v.
func capability[I any, T any](v *T) (I, bool) {
	if c, ok := any(*v).(I); ok {
		return c, true
	}
	c, ok := any(v).(I)
	return c, ok
}

// marshalPayload encodes a payload for the wire. A payload without a wire
// capability, or whose encoder fails, reports ok=false.
func marshalPayload[T any](v *T) (typeURL string, data []byte, ok bool) {
	if w, ok := capability[WirePayload](v); ok {
		b, err := w.MarshalBinary()
		if err != nil {
			return "", nil, false
		}
		return w.TypeName(), b, true
	}
	if m, ok := capability[proto.Message](v); ok {
		return marshalProto(m)
	}
	return "", nil, false
}

// debugPayload renders a payload for DebugString. Stringers render
// themselves; other wire payloads show their encoded size.
func debugPayload[T any](v *T) string {
	if s, ok := capability[fmt.Stringer](v); ok {
		return s.String()
	}
	if _, data, ok := marshalPayload(v); ok {
		return byteCount(len(data))
	}
	return ""
}

func clonePayload[T any](v *T) T {
	if c, ok := capability[Cloner[T]](v); ok {
		return c.Clone()
	}
	if m, ok := any(*v).(proto.Message); ok {
		if c, ok := proto.Clone(m).(T); ok {
			return c
		}
	}
	return *v
}

func byteCount(n int) string {
	return "(" + strconv.Itoa(n) + " bytes)"
}

// SerializedPayload is what a payload becomes after Deserialize: the type
// identifier and the raw bytes its encoder produced. Use
// As[SerializedPayload] to reach it and decode it with the matching type
// (UnmarshalProto does this for registered protobuf messages).
type SerializedPayload struct {
	TypeURL string
	Data    []byte
}

// TypeName implements WirePayload.
func (p SerializedPayload) TypeName() string { return p.TypeURL }

// MarshalBinary implements WirePayload; the bytes are written back as read.
func (p SerializedPayload) MarshalBinary() ([]byte, error) { return p.Data, nil }

// String reports the payload size.
func (p SerializedPayload) String() string { return byteCount(len(p.Data)) }

// MatchError implements Matcher: a decoded layer matches a target whose
// outermost payload encodes to the same type and bytes. This keeps
// classification (Code, for example) working after a round trip.
func (p SerializedPayload) MatchError(target Error) bool {
	if target.n == nil || p.TypeURL == "" {
		return false
	}
	typeURL, data, ok := target.n.wire()
	return ok && typeURL == p.TypeURL && bytes.Equal(data, p.Data)
}

// Clone implements Cloner.
func (p SerializedPayload) Clone() SerializedPayload {
	return SerializedPayload{TypeURL: p.TypeURL, Data: append([]byte(nil), p.Data...)}
}

var (
	_ WirePayload               = SerializedPayload{}
	_ Cloner[SerializedPayload] = SerializedPayload{}
	_ fmt.Stringer              = SerializedPayload{}
	_ Matcher                   = SerializedPayload{}
)
