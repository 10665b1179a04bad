// Package pbstream adapts protobuf messages to the proto.Streamable
// capability so protobuf-defined application types can ride as object
// payloads or headers. The encoded form is a uvarint length prefix
// followed by the deterministic protobuf marshaling, which keeps the
// byte length stable across repeated size computations.
package pbstream

import (
	"google.golang.org/protobuf/encoding/protowire"
	gpb "google.golang.org/protobuf/proto"

	"gcomm/pkg/proto"
)

type Wrapper struct {
	magicID uint16
	msg     gpb.Message
}

// Wrap adapts msg. The same concrete message type must be registered
// under magicID on every member of the group.
func Wrap(magicID uint16, msg gpb.Message) *Wrapper {
	return &Wrapper{magicID: magicID, msg: msg}
}

func (w *Wrapper) Message() gpb.Message {
	return w.msg
}

func (w *Wrapper) MagicID() uint16 {
	return w.magicID
}

func (w *Wrapper) SerializedSize() int {
	sz := gpb.Size(w.msg)
	return protowire.SizeVarint(uint64(sz)) + sz
}

func (w *Wrapper) EncodeTo(buf []byte) (int, error) {
	opts := gpb.MarshalOptions{Deterministic: true}
	body, err := opts.Marshal(w.msg)
	if err != nil {
		return 0, err
	}
	prefix := protowire.AppendVarint(nil, uint64(len(body)))
	if len(buf) < len(prefix)+len(body) {
		return 0, proto.ErrBufferTooShort
	}
	n := copy(buf, prefix)
	n += copy(buf[n:], body)
	return n, nil
}

func (w *Wrapper) DecodeFrom(buf []byte) (int, error) {
	sz, n := protowire.ConsumeVarint(buf)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	if len(buf) < n+int(sz) {
		return 0, proto.ErrBufferTooShort
	}
	if err := gpb.Unmarshal(buf[n:n+int(sz)], w.msg); err != nil {
		return 0, err
	}
	return n + int(sz), nil
}
