// context_test.go: key/value parsing and the Fields payload.
package xgxchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsFromKV_Rules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		kv   []any
		want Fields
	}{
		{"empty", nil, nil},
		{"pairs", []any{"a", 1, "b", "x"}, Fields{{"a", 1}, {"b", "x"}}},
		{"trailing key", []any{"a", 1, "b"}, Fields{{"a", 1}, {"b", nil}}},
		{"bad key drops pair", []any{123, "v1", "k2", "v2"}, Fields{{"k2", "v2"}}},
		{"bad trailing key", []any{"a", 1, 2}, Fields{{"a", 1}}},
		{"only bad", []any{1, 2}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fieldsFromKV(tc.kv...))
		})
	}
}

func TestFields_Accessors(t *testing.T) {
	t.Parallel()

	fs := Fields{{"user", "alice"}, {"attempt", 1}, {"attempt", 2}}
	assert.Equal(t, map[string]any{"user": "alice", "attempt": 2}, fs.Map())
	v, ok := fs.Lookup("attempt")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	_, ok = fs.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, "user=alice attempt=1 attempt=2", fs.String())
	assert.Nil(t, Fields(nil).Map())

	c := fs.Clone()
	c[0].Val = "bob"
	assert.Equal(t, "alice", fs[0].Val)
}

func TestFieldsOf_OuterWins(t *testing.T) {
	t.Parallel()

	e := WithFields(Wrap(WithFields(New("db"), "query", "table", "users", "tenant", "a"), "repo"), "svc", "tenant", "b")
	assert.Equal(t, map[string]any{"table": "users", "tenant": "b"}, FieldsOf(e))
	assert.Nil(t, FieldsOf(New("x")))
	assert.Equal(t, "svc: repo: query: db", e.Message())
}

func TestFields_WireRoundTrip(t *testing.T) {
	t.Parallel()

	e := WithFields(New("timeout"), "call", "service", "billing", "attempt", 3, "ok", false)
	require.True(t, IsSerializable(e))

	got := Deserialize(Serialize(e))
	assert.Equal(t, map[string]any{"service": "billing", "attempt": 3, "ok": false}, FieldsOf(got))

	sp, ok := As[SerializedPayload](got)
	require.True(t, ok)
	fs, err := ParseFields(sp)
	require.True(t, err.IsNil())
	assert.Equal(t, "service", fs[0].Key)
}

func TestFields_UnencodableValueDegrades(t *testing.T) {
	t.Parallel()

	e := WithFields(New("x"), "ctx", "callback", func() {})
	_, err := Fields{{"callback", func() {}}}.MarshalBinary()
	assert.Error(t, err)

	r := Describe(e)
	assert.True(t, r.Layers[0].Dropped)
	assert.False(t, IsSerializable(e), "a payload that fails to encode is not serializable")
	assert.Equal(t, IsSerializable(e), !r.Dropped())

	got := Deserialize(Serialize(e))
	assert.Equal(t, "ctx: x", got.Message())
	assert.Nil(t, FieldsOf(got))
}

func TestParseFields_Errors(t *testing.T) {
	t.Parallel()

	_, err := ParseFields(SerializedPayload{TypeURL: "xgx.Code", Data: []byte("x")})
	assert.True(t, Is(err, ErrUnknownPayloadType))

	_, err = ParseFields(SerializedPayload{TypeURL: "xgx.Fields", Data: []byte("{not: [valid")})
	assert.True(t, Is(err, ErrMalformed))
}
