// unwrap.go: chain traversal helpers.
//
// Scope:
//   - Handle chains are linear and acyclic, so traversal is a plain loop from
//     the outermost layer inward; no seen-sets are needed.
//   - Every handle these helpers yield carries a share of its own, so AsMut
//     on it never reaches into e. Release it when done; a dropped share only
//     makes later AsMut calls on e clone more.
//
// Semantics:
//   - Walk:   visit layers outermost first; stops when visit returns false.
//   - All:    the same order as an iter.Seq.
//   - Layers: the same order collected into a slice.
//   - Depth:  number of layers (0 for Nil).
//   - Root:   innermost layer (Nil for Nil).
package xgxchain

import "iter"

// Walk calls visit for each layer of e, outermost first, until visit
// returns false. Nil is a no-op.
func Walk(e Error, visit func(Error) bool) {
	if visit == nil {
		return
	}
	walk(e, func(l *Error) bool { return visit(l.Copy()) })
}

// walk visits the stored handles without taking shares.
func walk(e Error, visit func(*Error) bool) {
	for cur := &e; cur != nil && !cur.IsNil(); cur = cur.link() {
		if !visit(cur) {
			return
		}
	}
}

// All returns an iterator over e's layers, outermost first.
func All(e Error) iter.Seq[Error] {
	return func(yield func(Error) bool) {
		Walk(e, yield)
	}
}

// Layers returns e's layers, outermost first, or nil for Nil.
func Layers(e Error) []Error {
	n := Depth(e)
	if n == 0 {
		return nil
	}
	out := make([]Error, 0, n)
	for l := range All(e) {
		out = append(out, l)
	}
	return out
}

// Depth returns the number of layers in e's chain.
func Depth(e Error) int {
	n := 0
	walk(e, func(*Error) bool { n++; return true })
	return n
}

// Root returns the innermost layer of e's chain, or Nil.
func Root(e Error) Error {
	if e.IsNil() {
		return e
	}
	cur := &e
	for next := cur.link(); next != nil; next = cur.link() {
		cur = next
	}
	return cur.Copy()
}
