// proto.go: protobuf messages as first-class payloads.
//
// Any proto.Message payload is wire-serializable: its type identifier is the
// message's full name and its bytes are the deterministic binary encoding.
// On the way back, UnmarshalProto resolves the identifier through the global
// registry, so generated types linked into the binary decode without extra
// wiring.
package xgxchain

import (
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/known/anypb"
)

// typeURLPrefix is the conventional Any prefix; it is accepted but not
// written by the codec.
const typeURLPrefix = "type.googleapis.com/"

var marshalOpts = proto.MarshalOptions{Deterministic: true}

func marshalProto(m proto.Message) (string, []byte, bool) {
	b, err := marshalOpts.Marshal(m)
	if err != nil {
		return "", nil, false
	}
	return string(m.ProtoReflect().Descriptor().FullName()), b, true
}

// messageName strips any URL prefix from a type identifier.
func messageName(typeURL string) protoreflect.FullName {
	if i := strings.LastIndexByte(typeURL, '/'); i >= 0 {
		typeURL = typeURL[i+1:]
	}
	return protoreflect.FullName(typeURL)
}

// UnmarshalProto decodes p into a new message of the type p names. It fails
// with ErrUnknownPayloadType when the type is not linked into the program
// and with ErrMalformed when the bytes do not parse.
func UnmarshalProto(p SerializedPayload) (proto.Message, Error) {
	name := messageName(p.TypeURL)
	mt, err := protoregistry.GlobalTypes.FindMessageByName(name)
	if err != nil {
		return nil, Wrapf(ErrUnknownPayloadType, "%s", p.TypeURL)
	}
	m := mt.New().Interface()
	if err := proto.Unmarshal(p.Data, m); err != nil {
		return nil, Wrapf(ErrMalformed, "%s payload: %v", name, err)
	}
	return m, Nil()
}

// Any converts p into a google.protobuf.Any.
func (p SerializedPayload) Any() *anypb.Any {
	url := p.TypeURL
	if !strings.Contains(url, "/") {
		url = typeURLPrefix + url
	}
	return &anypb.Any{TypeUrl: url, Value: p.Data}
}
