package proto

// Shared test fixtures: two Streamable implementations and a plain map
// registry standing in for the injected type registry.

const (
	kMagicSeqno uint16 = 0x0101
	kMagicEcho  uint16 = 0x0102
)

type seqnoHeader struct {
	seqno uint32
}

func (h *seqnoHeader) MagicID() uint16 {
	return kMagicSeqno
}

func (h *seqnoHeader) SerializedSize() int {
	return 4
}

func (h *seqnoHeader) EncodeTo(buf []byte) (int, error) {
	if len(buf) < 4 {
		return 0, ErrBufferTooShort
	}
	EncByteOrder.PutUint32(buf[0:4], h.seqno)
	return 4, nil
}

func (h *seqnoHeader) DecodeFrom(buf []byte) (int, error) {
	if len(buf) < 4 {
		return 0, ErrBufferTooShort
	}
	h.seqno = EncByteOrder.Uint32(buf[0:4])
	return 4, nil
}

// echoObject is a variable-length value: two-byte length plus text.
type echoObject struct {
	text string
}

func (o *echoObject) MagicID() uint16 {
	return kMagicEcho
}

func (o *echoObject) SerializedSize() int {
	return 2 + len(o.text)
}

func (o *echoObject) EncodeTo(buf []byte) (int, error) {
	if len(buf) < o.SerializedSize() {
		return 0, ErrBufferTooShort
	}
	EncByteOrder.PutUint16(buf[0:2], uint16(len(o.text)))
	copy(buf[2:], o.text)
	return o.SerializedSize(), nil
}

func (o *echoObject) DecodeFrom(buf []byte) (int, error) {
	if len(buf) < 2 {
		return 0, ErrBufferTooShort
	}
	sz := int(EncByteOrder.Uint16(buf[0:2]))
	if len(buf) < 2+sz {
		return 0, ErrBufferTooShort
	}
	o.text = string(buf[2 : 2+sz])
	return 2 + sz, nil
}

type mapRegistry map[uint16]func() Streamable

func (r mapRegistry) Create(magicID uint16) (Streamable, error) {
	f, ok := r[magicID]
	if !ok {
		return nil, &ProtocolError{what: "unknown magic id"}
	}
	return f(), nil
}

func init() {
	SetTypeRegistry(mapRegistry{
		kMagicSeqno: func() Streamable { return &seqnoHeader{} },
		kMagicEcho:  func() Streamable { return &echoObject{} },
	})
}
