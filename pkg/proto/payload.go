package proto

import (
	"fmt"
	"io"

	"gcomm/pkg/util"
)

const (
	PayloadEmpty = PayloadKind(iota)
	PayloadRaw
	PayloadObject
)

type (
	PayloadKind uint8

	// Payload is a tagged union over the representations a message may
	// carry: nothing, a zero-copy byte range into a caller-owned buffer,
	// or a lazily-encoded Streamable object. Exactly one tag is active;
	// accessors for the wrong tag fail.
	Payload struct {
		kind   PayloadKind
		buf    []byte
		off    int
		length int
		obj    Streamable
	}
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadEmpty:
		return "empty payload"
	case PayloadRaw:
		return "raw payload"
	case PayloadObject:
		return "object payload"
	default:
		return fmt.Sprintf("unsupported payload kind: %d", uint8(k))
	}
}

func (p *Payload) Kind() PayloadKind {
	return p.kind
}

func (p *Payload) HasPayload() bool {
	return p.kind != PayloadEmpty
}

// setRaw references buf without copying. The backing bytes must not be
// mutated for as long as any message references them; encode may run at
// an arbitrary later time, e.g. on retransmission.
func (p *Payload) setRaw(buf []byte, off int, length int) error {
	if off < 0 || length < 0 || off+length > len(buf) {
		return ErrOutOfBounds
	}
	p.kind = PayloadRaw
	p.buf = buf
	p.off = off
	p.length = length
	p.obj = nil
	return nil
}

func (p *Payload) setObject(obj interface{}) error {
	s, ok := obj.(Streamable)
	if !ok && obj != nil {
		return ErrNotStreamable
	}
	p.kind = PayloadObject
	p.obj = s
	p.buf = nil
	p.off = 0
	p.length = 0
	return nil
}

func (p *Payload) Array() ([]byte, error) {
	if p.kind != PayloadRaw {
		return nil, ErrNotRawPayload
	}
	return p.buf, nil
}

func (p *Payload) Offset() (int, error) {
	if p.kind != PayloadRaw {
		return 0, ErrNotRawPayload
	}
	return p.off, nil
}

// Length is defined for every tag: the referenced byte count for a raw
// payload, the object's serialized size (computed on every call, never
// cached) for an object payload, zero for an empty one.
func (p *Payload) Length() int {
	switch p.kind {
	case PayloadRaw:
		return p.length
	case PayloadObject:
		if p.obj == nil {
			return 0
		}
		return p.obj.SerializedSize()
	default:
		return 0
	}
}

func (p *Payload) Object() (Streamable, error) {
	if p.kind != PayloadObject {
		return nil, ErrNotObjectPayload
	}
	return p.obj, nil
}

// size is the number of trailing wire bytes this payload contributes.
// A raw payload writes its bytes with no length prefix; the transport
// frame already bounds the message. An object payload writes a presence
// byte, then magic id and object bytes when present.
func (p *Payload) size() int {
	switch p.kind {
	case PayloadRaw:
		return p.length
	case PayloadObject:
		if p.obj == nil {
			return 1
		}
		return 1 + 2 + p.obj.SerializedSize()
	default:
		return 0
	}
}

func (p *Payload) encodeTo(buf []byte) (int, error) {
	switch p.kind {
	case PayloadRaw:
		if len(buf) < p.length {
			return 0, ErrBufferTooShort
		}
		copy(buf, p.buf[p.off:p.off+p.length])
		return p.length, nil
	case PayloadObject:
		if len(buf) < p.size() {
			return 0, ErrBufferTooShort
		}
		if p.obj == nil {
			buf[0] = 0
			return 1, nil
		}
		buf[0] = 1
		EncByteOrder.PutUint16(buf[1:3], p.obj.MagicID())
		n, err := p.obj.EncodeTo(buf[3:])
		if err != nil {
			return 0, err
		}
		return 3 + n, nil
	default:
		return 0, nil
	}
}

// decodeFrom consumes the remainder of raw. With copyData false a raw
// payload references the input buffer directly; callers that recycle the
// buffer pass true.
func (p *Payload) decodeFrom(raw []byte, copyData bool) (int, error) {
	switch p.kind {
	case PayloadRaw:
		data := raw
		if copyData {
			data = make([]byte, len(raw))
			copy(data, raw)
		}
		p.buf = data
		p.off = 0
		p.length = len(data)
		return len(raw), nil
	case PayloadObject:
		if len(raw) < 1 {
			return 0, ErrBufferTooShort
		}
		if raw[0] == 0 {
			p.obj = nil
			return 1, nil
		}
		if len(raw) < 3 {
			return 0, ErrBufferTooShort
		}
		magicID := EncByteOrder.Uint16(raw[1:3])
		obj, err := createStreamable(magicID)
		if err != nil {
			return 0, err
		}
		n, err := obj.DecodeFrom(raw[3:])
		if err != nil {
			return 0, err
		}
		p.obj = obj
		return 3 + n, nil
	case PayloadEmpty:
		return 0, nil
	default:
		return 0, ErrInvalidMessage
	}
}

func (p *Payload) PrettyPrint(w io.Writer) {
	switch p.kind {
	case PayloadRaw:
		value := p.buf[p.off : p.off+p.length]
		fmt.Fprintf(w, "Payload (raw)   : ")
		if p.length == 0 {
			fmt.Fprint(w, "[]\n")
		} else if p.length < 24 {
			fmt.Fprintf(w, "%s\n", util.ToPrintableAndHexString(value))
		} else {
			fmt.Fprintf(w, "(first 24 bytes) %s\n", util.ToPrintableAndHexString(value[:24]))
		}
	case PayloadObject:
		fmt.Fprintf(w, "Payload (object): %v\n", p.obj)
	default:
		fmt.Fprint(w, "Payload         : none\n")
	}
}
