// code.go: gRPC status codes carried as layer payloads.
package grpcstatus

import (
	"encoding/binary"
	"fmt"

	"google.golang.org/grpc/codes"

	xgxchain "github.com/xgx-io/xgx-chain"
)

const codeTypeName = "grpc.Code"

// Code is a gRPC status code carried as a layer payload. It crosses the
// chain codec as type "grpc.Code" (4 bytes, big endian).
type Code codes.Code

// TypeName implements xgxchain.WirePayload.
func (Code) TypeName() string { return codeTypeName }

// MarshalBinary implements xgxchain.WirePayload.
func (c Code) MarshalBinary() ([]byte, error) {
	return binary.BigEndian.AppendUint32(nil, uint32(c)), nil
}

// String returns the gRPC name of the code.
func (c Code) String() string { return codes.Code(c).String() }

// WithCode wraps inner in a new layer carrying the gRPC code c.
func WithCode(inner xgxchain.Error, c codes.Code, msg string) xgxchain.Error {
	return xgxchain.WrapWithPayload(inner, msg, Code(c))
}

// fromChainCode maps the package-level classification codes onto gRPC.
var fromChainCode = map[xgxchain.Code]codes.Code{
	xgxchain.CodeBadRequest:      codes.InvalidArgument,
	xgxchain.CodeUnauthorized:    codes.Unauthenticated,
	xgxchain.CodeForbidden:       codes.PermissionDenied,
	xgxchain.CodeNotFound:        codes.NotFound,
	xgxchain.CodeConflict:        codes.FailedPrecondition,
	xgxchain.CodeInvalid:         codes.InvalidArgument,
	xgxchain.CodeUnprocessable:   codes.FailedPrecondition,
	xgxchain.CodeTooManyRequests: codes.ResourceExhausted,
	xgxchain.CodeTimeout:         codes.DeadlineExceeded,
	xgxchain.CodeUnavailable:     codes.Unavailable,
	xgxchain.CodeInternal:        codes.Internal,
	xgxchain.CodeDefect:          codes.Internal,
	xgxchain.CodeInterrupt:       codes.Canceled,
}

// CodeOf returns the status code for e: the outermost layer carrying either
// a gRPC Code or a mapped xgxchain.Code decides. Decoded payloads count the
// same as live ones. It returns codes.OK for Nil and fallback when no layer
// classifies e.
func CodeOf(e xgxchain.Error, fallback codes.Code) codes.Code {
	if e.IsNil() {
		return codes.OK
	}
	for l := range xgxchain.All(e) {
		c, ok := layerCode(l)
		l.Release()
		if ok {
			return c
		}
	}
	return fallback
}

func layerCode(l xgxchain.Error) (codes.Code, bool) {
	v, ok := l.Payload()
	if !ok {
		return 0, false
	}
	switch p := v.(type) {
	case Code:
		return codes.Code(p), true
	case xgxchain.Code:
		c, ok := fromChainCode[p]
		return c, ok
	case xgxchain.SerializedPayload:
		switch p.TypeURL {
		case codeTypeName:
			if len(p.Data) != 4 {
				return 0, false
			}
			return codes.Code(binary.BigEndian.Uint32(p.Data)), true
		case xgxchain.Code("").TypeName():
			c, ok := fromChainCode[xgxchain.Code(p.Data)]
			return c, ok
		}
	}
	return 0, false
}

var (
	_ xgxchain.WirePayload = Code(0)
	_ fmt.Stringer         = Code(0)
)
