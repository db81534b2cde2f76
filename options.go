// options.go: codec configuration.
//
// Options follow the usual functional-option shape. Invalid option values
// are programmer errors and panic when the option is built.
package xgxchain

import (
	"encoding/binary"
	"fmt"
)

// ByteOrder is the integer encoding used for lengths and the layer count.
// binary.NativeEndian, binary.LittleEndian and binary.BigEndian all qualify.
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CodecOption configures a Codec built by NewCodec.
type CodecOption func(*Codec)

// WithByteOrder sets the integer byte order.
//
// Default: binary.NativeEndian, which matches the historical format but is
// not portable across architectures. Peers exchanging bytes between
// machines should agree on an explicit order.
//
// Panics if order is nil.
func WithByteOrder(order ByteOrder) CodecOption {
	if order == nil {
		panic("xgxchain: byte order must not be nil")
	}
	return func(c *Codec) {
		c.order = order
	}
}

// WithMaxLayers caps how many layers Decode reconstructs. Layers past the
// cap are ignored. The input size always bounds decoding as well.
//
// Default: 0 (bounded by input size only).
//
// Panics if n < 0.
func WithMaxLayers(n int) CodecOption {
	if n < 0 {
		panic(fmt.Sprintf("xgxchain: max layers must not be negative, got %d", n))
	}
	return func(c *Codec) {
		c.maxLayers = n
	}
}

// WithStrict makes Encode fail with ErrNotSerializable instead of writing a
// degraded layer for a sentinel or a payload that cannot be encoded.
func WithStrict() CodecOption {
	return func(c *Codec) {
		c.strict = true
	}
}
