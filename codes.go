// codes.go: classification codes carried as layer payloads.
//
// Intent:
//   - A small set of widely useful, human-readable codes.
//   - No HTTP/status/retry policy here; adapters (grpcstatus) interpret codes.
//   - Projects extend with their own codes without a central registry.
//
// Behavior:
//   - A Code is an ordinary payload: attach it with WithCode, read it back
//     with CodeOf / HasCode.
//   - It crosses Serialize/Deserialize as type "xgx.Code" with the code's
//     bytes as payload; CodeOf recognizes the decoded form too.
//   - It implements the Is hook: a layer carrying a Code matches any target
//     whose outermost layer carries the same Code, so
//     Is(err, xgxchain.CodeNotFound.Target()) classifies by code.
//
// Conventions (documented, not enforced):
//   - Codes are lowercase snake_case ASCII; the empty code is never a built-in.
package xgxchain

// Code is a classification label for an error layer.
type Code string

// codeTypeName identifies Code payloads on the wire.
const codeTypeName = "xgx.Code"

// Domain / validation
const (
	CodeBadRequest      Code = "bad_request"
	CodeUnauthorized    Code = "unauthorized"
	CodeForbidden       Code = "forbidden"
	CodeNotFound        Code = "not_found"
	CodeConflict        Code = "conflict"
	CodeInvalid         Code = "invalid"
	CodeUnprocessable   Code = "unprocessable"
	CodeTooManyRequests Code = "too_many_requests"
)

// Availability / time
const (
	CodeTimeout     Code = "timeout"
	CodeUnavailable Code = "unavailable"
)

// Internal / meta
const (
	CodeInternal  Code = "internal"
	CodeDefect    Code = "defect"
	CodeInterrupt Code = "interrupt"
)

// allBuiltinCodes is the ordered set of codes shipped with the package.
var allBuiltinCodes = []Code{
	CodeBadRequest,
	CodeUnauthorized,
	CodeForbidden,
	CodeNotFound,
	CodeConflict,
	CodeInvalid,
	CodeUnprocessable,
	CodeTooManyRequests,

	CodeTimeout,
	CodeUnavailable,

	CodeInternal,
	CodeDefect,
	CodeInterrupt,
}

var builtinCodeSet = func() map[Code]struct{} {
	m := make(map[Code]struct{}, len(allBuiltinCodes))
	for _, c := range allBuiltinCodes {
		m[c] = struct{}{}
	}
	return m
}()

// BuiltinCodes returns a copy of the built-in codes in a stable order.
func BuiltinCodes() []Code {
	out := make([]Code, len(allBuiltinCodes))
	copy(out, allBuiltinCodes)
	return out
}

// IsBuiltin reports whether c is one of the built-in codes.
func (c Code) IsBuiltin() bool {
	_, ok := builtinCodeSet[c]
	return ok
}

// String returns the code text.
func (c Code) String() string { return string(c) }

// TypeName implements WirePayload.
func (Code) TypeName() string { return codeTypeName }

// MarshalBinary implements WirePayload.
func (c Code) MarshalBinary() ([]byte, error) { return []byte(c), nil }

// MatchError implements Matcher: the layer matches target when target's
// outermost layer carries the same code.
func (c Code) MatchError(target Error) bool {
	tc, ok := layerCode(target)
	return ok && tc == c
}

// Target returns a single-layer error carrying c, for use as the target of
// Is. Each call returns a new handle.
func (c Code) Target() Error {
	return NewWithPayload(string(c), c)
}

// WithCode wraps inner in a new layer carrying code c.
func WithCode(inner Error, c Code, msg string) Error {
	return WrapWithPayload(inner, msg, c)
}

// layerCode reads the Code on e's outermost layer only, in either its live or
// its decoded form.
func layerCode(e Error) (Code, bool) {
	v, ok := e.Payload()
	if !ok {
		return "", false
	}
	switch p := v.(type) {
	case Code:
		return p, true
	case SerializedPayload:
		if p.TypeURL == codeTypeName {
			return Code(p.Data), true
		}
	}
	return "", false
}

var (
	_ WirePayload = Code("")
	_ Matcher     = Code("")
)
