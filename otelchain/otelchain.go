// otelchain.go: span events and attributes for error chains.
//
// Package otelchain records error chains on OpenTelemetry spans.
//
// RecordError adds the standard "exception" event with the chain message
// and a few chain-specific attributes, then marks the span as failed:
//
//	exception.type     = xgxchain.Error
//	exception.message  = full chain message
//	xgx.error.depth    = number of layers
//	xgx.error.layers   = per-layer messages, outermost first
//	xgx.error.code     = outermost classification code, when present
//	xgx.error.payloads = Go types of the layer payloads, outermost first
package otelchain

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	xgxchain "github.com/xgx-io/xgx-chain"
)

// Attribute keys set by Attributes.
const (
	DepthKey    = attribute.Key("xgx.error.depth")
	LayersKey   = attribute.Key("xgx.error.layers")
	CodeKey     = attribute.Key("xgx.error.code")
	PayloadsKey = attribute.Key("xgx.error.payloads")
)

const (
	exceptionType    = attribute.Key("exception.type")
	exceptionMessage = attribute.Key("exception.message")
	exceptionEvent   = "exception"
)

// Attributes describes e as span attributes. It returns nil for Nil.
func Attributes(e xgxchain.Error) []attribute.KeyValue {
	if e.IsNil() {
		return nil
	}
	var layers, payloads []string
	for l := range xgxchain.All(e) {
		layers = append(layers, l.What())
		if v, ok := l.Payload(); ok {
			payloads = append(payloads, fmt.Sprintf("%T", v))
		}
		l.Release()
	}
	attrs := []attribute.KeyValue{
		DepthKey.Int(len(layers)),
		LayersKey.StringSlice(layers),
	}
	if c := xgxchain.CodeOf(e); c != "" {
		attrs = append(attrs, CodeKey.String(string(c)))
	}
	if len(payloads) > 0 {
		attrs = append(attrs, PayloadsKey.StringSlice(payloads))
	}
	return attrs
}

// RecordError records e on span and sets the span status to Error. A Nil
// handle or a span that is not recording is left alone.
func RecordError(span trace.Span, e xgxchain.Error, opts ...trace.EventOption) {
	if e.IsNil() || span == nil || !span.IsRecording() {
		return
	}
	msg := e.Message()
	attrs := append([]attribute.KeyValue{
		exceptionType.String("xgxchain.Error"),
		exceptionMessage.String(msg),
	}, Attributes(e)...)
	opts = append(opts, trace.WithAttributes(attrs...))
	span.AddEvent(exceptionEvent, opts...)
	span.SetStatus(codes.Error, msg)
}
