package proto

import (
	"io"

	"gcomm/pkg/util"
)

// A frame wraps one encoded message for stream transports: an 8-byte
// frame header carrying magic, version, the payload kind of the message
// body, and the body size. The kind byte is what tells the receiving
// side which payload variant trails the envelope fields.

const (
	kFrameMagic      uint16 = 0x4743
	kFrameVersion    uint8  = 1
	kFrameHeaderSize        = 8
)

type frameHeaderT struct {
	magic    uint16
	version  uint8
	kind     PayloadKind
	bodySize uint32
}

func (h *frameHeaderT) encode(buf []byte) error {
	if len(buf) != kFrameHeaderSize {
		return ErrInvalidFrame
	}
	EncByteOrder.PutUint16(buf[0:2], h.magic)
	buf[2] = h.version
	buf[3] = byte(h.kind)
	EncByteOrder.PutUint32(buf[4:8], h.bodySize)
	return nil
}

func (h *frameHeaderT) decode(raw []byte) error {
	if len(raw) != kFrameHeaderSize {
		return ErrInvalidFrame
	}
	h.magic = EncByteOrder.Uint16(raw[0:2])
	h.version = raw[2]
	h.kind = PayloadKind(raw[3])
	h.bodySize = EncByteOrder.Uint32(raw[4:8])
	if h.magic != kFrameMagic || h.version != kFrameVersion || h.kind > PayloadObject {
		return ErrInvalidFrame
	}
	return nil
}

// WriteMessage frames and writes m. The encode buffer comes from the
// shared pool and is returned before WriteMessage returns.
func WriteMessage(w io.Writer, m *Message) (n int, err error) {
	szBody := m.Size()
	pool := util.GetBufferPool(kFrameHeaderSize + szBody)
	buffer := pool.Get()
	defer pool.Put(buffer)
	buffer.Resize(kFrameHeaderSize + szBody)
	raw := buffer.Bytes()

	header := frameHeaderT{
		magic:    kFrameMagic,
		version:  kFrameVersion,
		kind:     m.payload.kind,
		bodySize: uint32(szBody),
	}
	if err = header.encode(raw[0:kFrameHeaderSize]); err != nil {
		return 0, err
	}
	if _, err = m.EncodeTo(raw[kFrameHeaderSize:]); err != nil {
		return 0, err
	}
	return w.Write(raw)
}

// ReadMessage reads one frame and decodes the message in it. The body
// buffer is pooled, so decoded raw payloads are copied out of it.
func ReadMessage(r io.Reader) (m *Message, err error) {
	var hBuffer [kFrameHeaderSize]byte
	rawHeader := hBuffer[:]
	if n, err := io.ReadFull(r, rawHeader); err != nil {
		if n == 0 {
			return nil, err
		}
		return nil, NewProtocolError(err)
	}
	var header frameHeaderT
	if err = header.decode(rawHeader); err != nil {
		return nil, err
	}

	pool := util.GetBufferPool(int(header.bodySize))
	buffer := pool.Get()
	defer pool.Put(buffer)
	buffer.Resize(int(header.bodySize))
	raw := buffer.Bytes()

	if _, err = io.ReadFull(r, raw); err != nil {
		return nil, NewProtocolError(err)
	}

	m = NewMessage(header.kind)
	n, err := m.decode(raw, true)
	if err != nil {
		return nil, err
	}
	if n != int(header.bodySize) {
		// trailing bytes the decoder did not account for
		return nil, ErrInvalidFrame
	}
	return m, nil
}

type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (enc *Encoder) Encode(m *Message) (err error) {
	_, err = WriteMessage(enc.w, m)
	return
}

type Decoder struct {
	r io.Reader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

func (dec *Decoder) Decode() (*Message, error) {
	return ReadMessage(dec.r)
}
