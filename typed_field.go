// typed_field.go: type-safe access to Fields context.
//
// SPDX-License-Identifier: MIT
//
// Overview
//   TypedField is an optional ergonomic layer over WithFields / FieldsOf for
//   authors who prefer typed access. Both APIs read the same Fields payloads
//   and can be mixed freely.
//
// Usage
//   var (
//       FUserID    = xgxchain.FieldOf[int64]("user_id")
//       FRequestID = xgxchain.FieldOf[string]("request_id")
//   )
//
//   err := FUserID.Set(xgxchain.New("lookup failed"), "user", 42)
//   id, ok := FUserID.Get(err) // id=42, ok=true
//
// Caveats
//   • The stored dynamic type must match T exactly; no conversions are made.
//     After Deserialize, values carry YAML's generic types (int, float64,
//     string, bool), so a TypedField[int64] no longer matches a decoded int.
package xgxchain

import "fmt"

// TypedField is a key bound to the Go type stored under it.
type TypedField[T any] struct {
	key string
}

// FieldOf constructs a TypedField[T] for key.
func FieldOf[T any](key string) TypedField[T] {
	return TypedField[T]{key: key}
}

// Key returns the underlying string key.
func (f TypedField[T]) Key() string { return f.key }

// Set wraps inner in a new layer with msg carrying (key = val).
func (f TypedField[T]) Set(inner Error, msg string, val T) Error {
	return WrapWithPayload(inner, msg, Fields{{Key: f.key, Val: val}})
}

// Get returns the value stored under the key. Layers are searched outermost
// first; within a layer the last pair with the key wins. It reports false
// when the key is absent or its value is not a T.
func (f TypedField[T]) Get(e Error) (T, bool) {
	var zero T
	for cur := &e; cur != nil && !cur.IsNil(); cur = cur.link() {
		fs, ok := layerFields(*cur)
		if !ok {
			continue
		}
		v, ok := fs.Lookup(f.key)
		if !ok {
			continue
		}
		tv, ok := v.(T)
		return tv, ok
	}
	return zero, false
}

// MustGet is Get that panics when the value is missing or has another type.
// Intended for tests and paths where absence is a programming error.
func (f TypedField[T]) MustGet(e Error) T {
	v, ok := f.Get(e)
	if !ok {
		var zero T
		panic(fmt.Sprintf("xgxchain: TypedField[%T](%q): missing or wrong type", zero, f.key))
	}
	return v
}
