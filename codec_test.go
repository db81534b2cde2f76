// codec_test.go: wire format round trips, degradation and hostile input.
package xgxchain

import (
	"encoding/binary"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestSerialize_RoundTrip(t *testing.T) {
	t.Parallel()

	e := Wrap(Wrap(New("disk full"), "write block"), "save document")
	got := Deserialize(Serialize(e))
	require.False(t, got.IsNil())
	assert.Equal(t, e.Message(), got.Message())
	assert.Equal(t, 3, Depth(got))
	assert.False(t, Is(got, e), "decoding builds new layers")
}

func TestSerialize_NilAndEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Serialize(Nil()))
	assert.True(t, Deserialize(nil).IsNil())
	assert.True(t, Deserialize([]byte{1, 0}).IsNil())
	assert.True(t, Deserialize(make([]byte, 4)).IsNil(), "zero count")
	assert.True(t, Is(NewCodec().Validate(nil), ErrMalformed))
}

func TestSerialize_LayoutBigEndian(t *testing.T) {
	t.Parallel()

	c := NewCodec(WithByteOrder(binary.BigEndian))
	b, err := c.Encode(New("hi"))
	require.True(t, err.IsNil())

	want := []byte{
		0, 0, 0, 1, // count
		0, 0, 0, 2, 'h', 'i', // message
		0, 0, 0, 0, // type
		0, 0, 0, 0, // payload
	}
	assert.Equal(t, want, b)
	assert.Equal(t, "hi", c.Decode(b).Message())
	assert.True(t, c.Validate(b).IsNil())
}

func TestSerialize_ByteOrdersDiffer(t *testing.T) {
	t.Parallel()

	e := Wrap(New("inner"), "outer")
	le, _ := NewCodec(WithByteOrder(binary.LittleEndian)).Encode(e)
	be, _ := NewCodec(WithByteOrder(binary.BigEndian)).Encode(e)
	assert.NotEqual(t, le, be)
	assert.Equal(t, "outer: inner", NewCodec(WithByteOrder(binary.LittleEndian)).Decode(le).Message())
	assert.Equal(t, "outer: inner", NewCodec(WithByteOrder(binary.BigEndian)).Decode(be).Message())
}

func TestSerialize_SentinelDegradesToMessage(t *testing.T) {
	t.Parallel()

	e := Wrap(errPermission, "api gateway error")
	got := Deserialize(Serialize(e))
	assert.Equal(t, "api gateway error: permission denied", got.Message())
	assert.False(t, Is(got, errPermission), "sentinel identity does not cross the wire")
	assert.False(t, Root(got).IsSentinel())
}

func TestSerialize_PayloadKinds(t *testing.T) {
	t.Parallel()

	e := WrapWithPayload(
		NewWithPayload("login failed", wrapperspb.String("alice")),
		"local only", loginRequest{User: "bob"},
	)
	got := Deserialize(Serialize(e))
	require.Equal(t, 2, Depth(got))
	assert.Equal(t, "local only: login failed", got.Message())

	_, ok := got.Payload()
	assert.False(t, ok, "payload without wire capability is dropped")

	sp, ok := As[SerializedPayload](got)
	require.True(t, ok)
	assert.Equal(t, "google.protobuf.StringValue", sp.TypeURL)
	m, err := UnmarshalProto(sp)
	require.True(t, err.IsNil())
	assert.Equal(t, "alice", m.(*wrapperspb.StringValue).GetValue())
}

func TestSerialize_SerializedPayloadIsStable(t *testing.T) {
	t.Parallel()

	e := NewWithPayload("x", SerializedPayload{TypeURL: "acme.Thing", Data: []byte{1, 2, 3}})
	once := Serialize(e)
	twice := Serialize(Deserialize(once))
	assert.Equal(t, once, twice)
}

func TestSerialize_CodeSurvives(t *testing.T) {
	t.Parallel()

	e := Wrap(WithCode(New("no rows"), CodeNotFound, "lookup user"), "handler")
	got := Deserialize(Serialize(e))
	assert.Equal(t, CodeNotFound, CodeOf(got))
	assert.True(t, HasCode(got, CodeNotFound))
	assert.True(t, Is(got, CodeNotFound.Target()))
	assert.False(t, Is(got, CodeConflict.Target()))
}

func TestEncode_Strict(t *testing.T) {
	t.Parallel()

	c := NewCodec(WithStrict())

	b, err := c.Encode(Wrap(errPermission, "api"))
	assert.Nil(t, b)
	assert.True(t, Is(err, ErrNotSerializable))
	assert.Contains(t, err.Message(), `layer 1 "permission denied"`)

	_, err = c.Encode(NewWithPayload("x", loginRequest{}))
	assert.True(t, Is(err, ErrNotSerializable))

	b, err = c.Encode(WithCode(New("a"), CodeTimeout, "b"))
	assert.True(t, err.IsNil())
	assert.NotEmpty(t, b)
}

func TestDecode_HostileCount(t *testing.T) {
	t.Parallel()

	b := Serialize(New("only"))
	binary.NativeEndian.PutUint32(b, 0xFFFFFFFF)

	got := Deserialize(b)
	assert.Equal(t, "only", got.Message())
	assert.Equal(t, 1, Depth(got))
	assert.True(t, Is(NewCodec().Validate(b), ErrMalformed))
}

func TestDecode_HostileLength(t *testing.T) {
	t.Parallel()

	b := make([]byte, 0, 16)
	b = binary.NativeEndian.AppendUint32(b, 1)
	b = binary.NativeEndian.AppendUint32(b, 0xFFFFFFF0)
	b = append(b, "abcdefgh"...)
	assert.True(t, Deserialize(b).IsNil())

	err := NewCodec().Validate(b)
	assert.True(t, Is(err, ErrMalformed))
	assert.Contains(t, err.Message(), "exceeds")
}

func TestDecode_TruncationKeepsParsedLayers(t *testing.T) {
	t.Parallel()

	e := Wrap(New("inner message"), "outer")
	b := Serialize(e)
	cut := b[:len(b)-5]

	got := Deserialize(cut)
	assert.Equal(t, "outer", got.Message())
	assert.True(t, Is(NewCodec().Validate(cut), ErrMalformed))
}

func TestDecode_MaxLayers(t *testing.T) {
	t.Parallel()

	e := Wrap(Wrap(New("c"), "b"), "a")
	b := Serialize(e)

	c := NewCodec(WithMaxLayers(2))
	got := c.Decode(b)
	assert.Equal(t, "a: b", got.Message())
	assert.True(t, c.Validate(b).IsNil())
}

func TestOptions_PanicOnInvalid(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { WithByteOrder(nil) })
	assert.Panics(t, func() { WithMaxLayers(-1) })
	assert.NotPanics(t, func() { WithMaxLayers(0) })
}

func TestSerialize_QuickRoundTrip(t *testing.T) {
	t.Parallel()

	property := func(msgs []string) bool {
		if len(msgs) == 0 {
			return Deserialize(Serialize(Nil())).IsNil()
		}
		var e Error
		for i := len(msgs) - 1; i >= 0; i-- {
			next := Wrap(e, msgs[i])
			e.Release()
			e = next
		}
		got := Deserialize(Serialize(e))
		return got.Message() == e.Message() && Depth(got) == len(msgs)
	}
	checkQuick(t, property)
}

func checkQuick(t *testing.T, property any) {
	t.Helper()
	if err := quick.Check(property, nil); err != nil {
		t.Fatalf("property failed: %v", err)
	}
}

func FuzzDeserialize(f *testing.F) {
	f.Add([]byte{})
	f.Add(Serialize(New("seed")))
	f.Add(Serialize(Wrap(WithCode(New("a"), CodeInvalid, "b"), "c")))
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		e := Deserialize(data)
		if e.IsNil() {
			return
		}
		again := Deserialize(Serialize(e))
		if again.Message() != e.Message() || Depth(again) != Depth(e) {
			t.Fatalf("re-encoding changed the chain: %q vs %q", e.Message(), again.Message())
		}
	})
}
