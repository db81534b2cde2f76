// doc.go: package documentation for xgx-chain
//
// Package xgxchain provides a small error value model: an Error is a cheap,
// comparable handle to an immutable, linear chain of layers. Each layer has
// a message and may carry one typed payload. It is designed to be:
//   - Cheap on the success path (the zero Error is Nil; no allocation)
//   - Cheap to share (Copy bumps a count; wrapping never copies the chain)
//   - Interoperable with the stdlib (error, errors.Is/As/Unwrap, fmt, slog)
//   - Policy-free (no I/O, no retry rules, no status mapping in core)
//
// # Layers
//
//	+-----------+-------------------------------+--------------------------------+
//	| Kind      | Built with                    | Notes                          |
//	+-----------+-------------------------------+--------------------------------+
//	| Nil       | Error{}, Nil()                | success; Message() == "(nil)"  |
//	| Sentinel  | Sentinel(msg)                 | identity only; declare as var  |
//	| Dynamic   | New, Errorf, Wrap, Wrapf      | owned message, optional inner  |
//	| Payload   | NewWithPayload, WrapWithPayload | one typed value per layer    |
//	+-----------+-------------------------------+--------------------------------+
//
// Message() joins every layer outermost first with ": ":
//
//	var ErrPermission = xgxchain.Sentinel("permission denied")
//
//	err := xgxchain.Wrap(ErrPermission, "api gateway error")
//	err.Message()                       // "api gateway error: permission denied"
//	xgxchain.Is(err, ErrPermission)     // true
//	errors.Is(err, ErrPermission)       // true
//
// # Payloads
//
// Any Go value can ride on a layer. As[T] returns a copy of the outermost
// payload of type T; AsMut[T] returns a pointer for in-place edits after
// cloning every shared layer on the way (copy-on-write), so other holders of
// the chain never observe the change.
//
// Payloads opt into extra behavior structurally:
//   - WirePayload or proto.Message: the payload survives Serialize.
//   - fmt.Stringer: rendered by DebugString and %+v.
//   - Matcher: the layer can match targets in Is by value (Code does this).
//   - Cloner[T]: deep copy on copy-on-write.
//
// Built-in payloads: Code (classification), Fields (key/value context),
// Stack (call frames), SerializedPayload (what a payload decodes to).
//
// # Sharing
//
// The share count counts explicit shares: constructors return one, Copy
// adds one, Release returns one. Plain assignment borrows. Forgetting to
// Release is safe; AsMut merely clones more often.
//
// # Wire format
//
// Serialize writes a chain as a count followed by (message, type, payload)
// length-prefixed triples, outermost first; Deserialize rebuilds it with
// payloads as SerializedPayload. Sentinel identity and payloads without a
// wire capability are dropped; Describe reports which layers lose
// information and a Codec built WithStrict refuses to drop anything.
//
// # Adapters
//
//   - grpcstatus: chain ⇄ *status.Status.
//   - otelchain:  chain → span events and attributes.
//
// # Formatting
//
//   - %v, %s → Message()
//   - %q     → quoted Message()
//   - %+v    → one line per layer with sentinel and payload markers
package xgxchain
