// log.go: structured logging support.
//
// Error implements slog.LogValuer, so
//
//	logger.Error("request failed", "err", err)
//
// logs a group instead of a flat string:
//
//	err.msg="api: permission denied" err.depth=2 err.layers.0.msg="api" ...
//
// layers is a group keyed by layer index ("0" is the outermost); each entry
// holds the layer's msg and, when present, its payload type and debug text.
package xgxchain

import (
	"fmt"
	"log/slog"
	"strconv"
)

// LogValue implements slog.LogValuer.
func (e Error) LogValue() slog.Value {
	if e.IsNil() {
		return slog.StringValue(nilText)
	}
	layers := make([]slog.Attr, 0, Depth(e))
	walk(e, func(l *Error) bool {
		attrs := []slog.Attr{slog.String("msg", l.n.text())}
		if l.IsSentinel() {
			attrs = append(attrs, slog.Bool("sentinel", true))
		}
		if v, ok := l.n.value(); ok {
			attrs = append(attrs, slog.String("payload", fmt.Sprintf("%T", v)))
			if d := l.n.debug(); d != "" {
				attrs = append(attrs, slog.String("debug", d))
			}
		}
		layers = append(layers, slog.Attr{Key: strconv.Itoa(len(layers)), Value: slog.GroupValue(attrs...)})
		return true
	})
	return slog.GroupValue(
		slog.String("msg", e.Message()),
		slog.Int("depth", len(layers)),
		slog.Attr{Key: "layers", Value: slog.GroupValue(layers...)},
	)
}

var _ slog.LogValuer = Error{}
