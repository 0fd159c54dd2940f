// Package rpc holds the gRPC contracts shared by the backend services and the
// gateway: service descriptors, message types, typed clients and interceptors.
//
// Messages are plain Go structs carried with a JSON codec registered under the
// "json" content-subtype, so no protoc step is needed to build the services.
package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype used by every call in this package.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
