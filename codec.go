// codec.go: binary encoding of a whole chain.
//
// Format (all integers uint32 in the codec's byte order):
//
//	count
//	count × { msg_len msg | type_len type | payload_len payload }
//
// Layers are written outermost first and rebuilt innermost first.
//
// Degradation:
//   - A sentinel layer is written as a plain message; its identity does not
//     survive the round trip.
//   - A payload without a wire capability (or whose encoder fails) is written
//     with an empty type and empty bytes. WithStrict turns both cases into
//     ErrNotSerializable instead; Describe reports them per layer.
//
// Decoding never trusts the declared count: the number of layers attempted is
// capped by what the remaining bytes could possibly hold.
package xgxchain

import "encoding/binary"

const (
	// headerSize is the layer count prefix.
	headerSize = 4
	// minLayerSize is three empty length-prefixed fields.
	minLayerSize = 12
)

// Errors reported by the codec and payload decoding.
var (
	ErrNotSerializable    = Sentinel("xgxchain: layer is not serializable")
	ErrMalformed          = Sentinel("xgxchain: malformed input")
	ErrUnknownPayloadType = Sentinel("xgxchain: unknown payload type")
)

// Codec encodes and decodes chains. The zero value is not usable; build one
// with NewCodec. A Codec is immutable and safe for concurrent use.
type Codec struct {
	order     ByteOrder
	maxLayers int
	strict    bool
}

// NewCodec returns a Codec configured by opts.
func NewCodec(opts ...CodecOption) *Codec {
	c := &Codec{order: binary.NativeEndian}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCodec = NewCodec()

// Serialize encodes e with the default codec. Nil encodes to no bytes.
// Layers that cannot be represented degrade to empty fields.
func Serialize(e Error) []byte {
	b, _ := defaultCodec.Encode(e)
	return b
}

// Deserialize decodes bytes produced by Serialize with the default codec.
// It returns Nil for empty, truncated, or malformed input.
func Deserialize(data []byte) Error {
	return defaultCodec.Decode(data)
}

// IsSerializable reports whether every layer of e survives Serialize
// intact: no sentinels, and every payload is wire-capable and encodes
// without error. Nil is serializable.
func IsSerializable(e Error) bool {
	for cur := &e; cur != nil && cur.n != nil; cur = cur.link() {
		if !cur.n.serializable() {
			return false
		}
	}
	return true
}

// Encode writes e's chain. In strict mode it returns ErrNotSerializable
// (wrapped with the offending layer) and no bytes when a layer would
// degrade; otherwise the returned Error is always Nil.
func (c *Codec) Encode(e Error) ([]byte, Error) {
	if e.IsNil() {
		return nil, Nil()
	}
	out := make([]byte, headerSize, headerSize+64)
	var count uint32
	for cur := &e; cur != nil; cur = cur.link() {
		n := cur.n
		typeURL, data, ok := n.wire()
		if !ok {
			if c.strict {
				return nil, Wrapf(ErrNotSerializable, "layer %d %q", count, n.text())
			}
			typeURL, data = "", nil
		}
		out = c.appendField(out, n.text())
		out = c.appendField(out, typeURL)
		out = c.appendField(out, string(data))
		count++
	}
	c.order.PutUint32(out[:headerSize], count)
	return out, Nil()
}

func (c *Codec) appendField(out []byte, s string) []byte {
	out = c.order.AppendUint32(out, uint32(len(s)))
	return append(out, s...)
}

// Decode rebuilds a chain from data. It returns Nil for input shorter than
// the header, a zero count, or when not even one layer parses. Layers that
// parsed before a truncation are kept.
func (c *Codec) Decode(data []byte) Error {
	layers, _ := c.parse(data)
	return build(layers)
}

// Validate reports why data would not decode completely, or Nil when every
// declared layer is present.
func (c *Codec) Validate(data []byte) Error {
	_, err := c.parse(data)
	return err
}

type wireLayer struct {
	msg     string
	typeURL string
	payload []byte
}

// reader consumes length-prefixed fields; the first failure sticks.
type reader struct {
	order ByteOrder
	buf   []byte
	err   Error
}

func (r *reader) u32() uint32 {
	if !r.err.IsNil() {
		return 0
	}
	if len(r.buf) < 4 {
		r.err = Wrapf(ErrMalformed, "need 4 bytes for a length, have %d", len(r.buf))
		return 0
	}
	v := r.order.Uint32(r.buf)
	r.buf = r.buf[4:]
	return v
}

func (r *reader) field() []byte {
	n := r.u32()
	if !r.err.IsNil() {
		return nil
	}
	if uint64(n) > uint64(len(r.buf)) {
		r.err = Wrapf(ErrMalformed, "declared length %d exceeds %d remaining bytes", n, len(r.buf))
		return nil
	}
	f := r.buf[:n:n]
	r.buf = r.buf[n:]
	return f
}

func (c *Codec) parse(data []byte) ([]wireLayer, Error) {
	if len(data) < headerSize {
		return nil, Wrapf(ErrMalformed, "input of %d bytes is shorter than the header", len(data))
	}
	r := reader{order: c.order, buf: data}
	count := r.u32()
	if count == 0 {
		return nil, Wrap(ErrMalformed, "zero layers")
	}

	limit := uint64(len(r.buf) / minLayerSize)
	if c.maxLayers > 0 {
		limit = min(limit, uint64(c.maxLayers))
	}
	want := min(uint64(count), limit)
	layers := make([]wireLayer, 0, want)

	for uint64(len(layers)) < want {
		msg := r.field()
		typeURL := r.field()
		payload := r.field()
		if !r.err.IsNil() {
			return layers, Wrapf(r.err, "layer %d", len(layers))
		}
		layers = append(layers, wireLayer{
			msg:     string(msg),
			typeURL: string(typeURL),
			payload: append([]byte(nil), payload...),
		})
	}
	if uint64(len(layers)) < uint64(count) && (c.maxLayers == 0 || len(layers) < c.maxLayers) {
		return layers, Wrapf(ErrMalformed, "declared %d layers, input holds %d", count, len(layers))
	}
	return layers, Nil()
}

// build links decoded layers innermost first so the result reads in the
// original outer-to-inner order.
func build(layers []wireLayer) Error {
	var out Error
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if l.typeURL != "" {
			p := SerializedPayload{TypeURL: l.typeURL, Data: l.payload}
			out = Error{n: newPayload(l.msg, p, out)}
			continue
		}
		out = Error{n: newDynamic(l.msg, out)}
	}
	return out
}
