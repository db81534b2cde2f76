// status.go: chain <-> status conversion.
//
// Package grpcstatus converts error chains to and from gRPC statuses.
//
// A status built by ToStatus carries:
//   - the code chosen by CodeOf,
//   - the full chain message,
//   - a google.protobuf.BytesValue detail holding the encoded chain, followed
//     by one detail per protobuf payload in the chain (outermost first), so
//     peers that do not use this package still see typed details.
//
// The chain bytes use big-endian integers regardless of the host.
//
// FromStatus reverses the process. A status without a chain detail (from a
// peer that does not use this package) becomes a single layer with the
// status message and its code as payload.
package grpcstatus

import (
	"encoding/binary"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/wrapperspb"

	xgxchain "github.com/xgx-io/xgx-chain"
)

var codec = xgxchain.NewCodec(xgxchain.WithByteOrder(binary.BigEndian))

// ToStatus converts e into a status. Nil converts to an OK status.
func ToStatus(e xgxchain.Error, fallback codes.Code) *status.Status {
	if e.IsNil() {
		return status.New(codes.OK, "")
	}
	st := status.New(CodeOf(e, fallback), e.Message())

	chain, _ := codec.Encode(e)
	details := []protoadapt.MessageV1{wrapperspb.Bytes(chain)}
	for l := range xgxchain.All(e) {
		v, ok := l.Payload()
		l.Release()
		if !ok {
			continue
		}
		if m, ok := v.(proto.Message); ok {
			details = append(details, protoadapt.MessageV1Of(m))
		}
	}
	withDetails, err := st.WithDetails(details...)
	if err != nil {
		return st
	}
	return withDetails
}

// Err converts e into a status error, nil for Nil.
func Err(e xgxchain.Error, fallback codes.Code) error {
	return ToStatus(e, fallback).Err()
}

// FromStatus converts st back into a chain. A nil or OK status is Nil.
func FromStatus(st *status.Status) xgxchain.Error {
	if st == nil || st.Code() == codes.OK {
		return xgxchain.Nil()
	}
	for _, d := range st.Details() {
		b, ok := d.(*wrapperspb.BytesValue)
		if !ok {
			continue
		}
		if e := codec.Decode(b.GetValue()); !e.IsNil() {
			return e
		}
		break
	}
	return xgxchain.NewWithPayload(st.Message(), Code(st.Code()))
}

// FromError converts err into a chain. Status errors go through
// FromStatus; anything else through xgxchain.From.
func FromError(err error) xgxchain.Error {
	if err == nil {
		return xgxchain.Nil()
	}
	if st, ok := status.FromError(err); ok {
		return FromStatus(st)
	}
	return xgxchain.From(err)
}
