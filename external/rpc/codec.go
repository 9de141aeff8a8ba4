package rpc

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/proto"
)

type wireMessage interface {
	MarshalWire() ([]byte, error)
	UnmarshalWire(b []byte) error
}

// codec is installed on this package's servers and clients only. It speaks
// the standard proto content-subtype so generated peers interoperate.
type codec struct{}

var _ encoding.Codec = codec{}

func (codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case wireMessage:
		return m.MarshalWire()
	case proto.Message:
		return proto.Marshal(m)
	default:
		return nil, fmt.Errorf("rpc codec: cannot marshal %T", v)
	}
}

func (codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case wireMessage:
		return m.UnmarshalWire(data)
	case proto.Message:
		return proto.Unmarshal(data, m)
	default:
		return fmt.Errorf("rpc codec: cannot unmarshal into %T", v)
	}
}

func (codec) Name() string {
	return "proto"
}
