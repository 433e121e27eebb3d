// Package codec encodes snapshots and event batches for the wire.
package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	Name() string
	ContentType() string
}

type JSON struct{}

func (JSON) Encode(v any) ([]byte, error)    { return json.Marshal(v) }
func (JSON) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSON) Name() string                    { return "json" }
func (JSON) ContentType() string             { return "application/json; charset=utf-8" }

// MsgPack uses the json struct tags' msgpack twins declared on the domain types.
type MsgPack struct{}

func (MsgPack) Encode(v any) ([]byte, error)    { return msgpack.Marshal(v) }
func (MsgPack) Decode(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
func (MsgPack) Name() string                    { return "msgpack" }
func (MsgPack) ContentType() string             { return "application/msgpack" }

// ByName resolves a format name; the empty name selects JSON.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSON{}, nil
	case "msgpack", "messagepack":
		return MsgPack{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}
