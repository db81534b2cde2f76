// context.go: ordered key/value context carried as a layer payload.
//
// Design:
//   • Fields is an append-only []Field (deterministic order); builders
//     always return fresh slices, never alias the caller's.
//   • Readers get copies: Map builds a new map on every call.
//   • Fields cross Serialize/Deserialize as type "xgx.Fields", encoded as a
//     YAML sequence of {key, val} pairs. Values come back as the generic
//     YAML types (string, int, float64, bool, []any, map[string]any).
//
// Keys SHOULD be snake_case; nothing enforces it.
package xgxchain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fieldsTypeName = "xgx.Fields"

// Field is a single contextual key/value pair.
type Field struct {
	Key string `yaml:"key" json:"key"`
	Val any    `yaml:"val" json:"val"`
}

// Fields is an ordered list of context pairs.
type Fields []Field

// fieldsFromKV parses alternating key/value arguments.
//
// Rules:
//   • Pairs are read left to right as (key, value).
//   • A non-string key drops the ENTIRE pair (the key and the value after
//     it), so later pairs stay aligned:
//       fieldsFromKV(123, "v1", "k2", "v2") → [{k2 v2}]
//   • A trailing key with no value becomes (key, nil).
func fieldsFromKV(kv ...any) Fields {
	if len(kv) == 0 {
		return nil
	}
	out := make(Fields, 0, len(kv)/2+1)
	for i := 0; i < len(kv); {
		k, ok := kv[i].(string)
		if !ok {
			i = min(i+2, len(kv))
			continue
		}
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		i = min(i+2, len(kv))
		out = append(out, Field{Key: k, Val: v})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// WithFields wraps inner in a new layer carrying the context pairs in kv
// (see fieldsFromKV for the parsing rules).
func WithFields(inner Error, msg string, kv ...any) Error {
	return WrapWithPayload(inner, msg, fieldsFromKV(kv...))
}

// Map returns a NEW map of fs. Later duplicate keys win.
func (fs Fields) Map() map[string]any {
	if len(fs) == 0 {
		return nil
	}
	m := make(map[string]any, len(fs))
	for _, f := range fs {
		m[f.Key] = f.Val
	}
	return m
}

// Lookup returns the value of the last pair named key.
func (fs Fields) Lookup(key string) (any, bool) {
	for i := len(fs) - 1; i >= 0; i-- {
		if fs[i].Key == key {
			return fs[i].Val, true
		}
	}
	return nil, false
}

// String renders fs as space-separated key=value pairs.
func (fs Fields) String() string {
	var b strings.Builder
	for i, f := range fs {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", f.Key, f.Val)
	}
	return b.String()
}

// Clone implements Cloner. Values are copied shallowly.
func (fs Fields) Clone() Fields {
	if fs == nil {
		return nil
	}
	out := make(Fields, len(fs))
	copy(out, fs)
	return out
}

// TypeName implements WirePayload.
func (Fields) TypeName() string { return fieldsTypeName }

// MarshalBinary implements WirePayload. Values YAML cannot represent
// (functions, channels) make it fail, and the layer degrades on the wire.
func (fs Fields) MarshalBinary() (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("xgxchain: fields: %v", r)
		}
	}()
	return yaml.Marshal([]Field(fs))
}

// ParseFields decodes a serialized "xgx.Fields" payload.
func ParseFields(p SerializedPayload) (Fields, Error) {
	if p.TypeURL != fieldsTypeName {
		return nil, Wrapf(ErrUnknownPayloadType, "%s is not %s", p.TypeURL, fieldsTypeName)
	}
	var fs Fields
	if err := yaml.Unmarshal(p.Data, &fs); err != nil {
		return nil, Wrapf(ErrMalformed, "%s payload: %v", fieldsTypeName, err)
	}
	return fs, Nil()
}

// layerFields reads the Fields on e's outermost layer, live or decoded.
func layerFields(e Error) (Fields, bool) {
	v, ok := e.Payload()
	if !ok {
		return nil, false
	}
	switch p := v.(type) {
	case Fields:
		return p, true
	case SerializedPayload:
		if p.TypeURL != fieldsTypeName {
			return nil, false
		}
		fs, err := ParseFields(p)
		return fs, err.IsNil()
	}
	return nil, false
}

// FieldsOf merges the context of every layer in e's chain into a NEW map.
// Outer layers take precedence over inner ones.
func FieldsOf(e Error) map[string]any {
	var m map[string]any
	for cur := &e; cur != nil && !cur.IsNil(); cur = cur.link() {
		fs, ok := layerFields(*cur)
		if !ok {
			continue
		}
		for k, v := range fs.Map() {
			if m == nil {
				m = make(map[string]any)
			}
			if _, seen := m[k]; !seen {
				m[k] = v
			}
		}
	}
	return m
}

var (
	_ WirePayload    = Fields(nil)
	_ Cloner[Fields] = Fields(nil)
	_ fmt.Stringer   = Fields(nil)
)
