package proto

import (
	"gcomm/pkg/addr"
)

// DecodeFrom reconstructs the message from its canonical wire form. The
// payload variant to decode is the one the message was constructed with;
// the frame layer conveys it ahead of the body. A raw payload references
// buf directly without copying.
//
// Decode errors originating in the address codec or the type registry
// propagate unchanged. On error the message may be partially populated
// and must be discarded.
func (m *Message) DecodeFrom(buf []byte) (n int, err error) {
	return m.decode(buf, false)
}

func (m *Message) decode(buf []byte, copyData bool) (int, error) {
	if len(buf) < 3 {
		return 0, ErrBufferTooShort
	}
	leading := buf[0]
	m.flags = EncByteOrder.Uint16(buf[1:3])
	off := 3

	if leading&kDestSet != 0 {
		a, n, err := addr.Decode(buf[off:])
		if err != nil {
			return 0, err
		}
		m.dest = a
		off += n
	}
	if leading&kSrcSet != 0 {
		a, n, err := addr.Decode(buf[off:])
		if err != nil {
			return 0, err
		}
		m.src = a
		off += n
	}

	if len(buf) < off+2 {
		return 0, ErrBufferTooShort
	}
	numHeaders := int(EncByteOrder.Uint16(buf[off : off+2]))
	off += 2

	// the count is known up front, so the table is exactly sized with no
	// unused slots
	entries := make([]headerEntry, numHeaders)
	for i := 0; i < numHeaders; i++ {
		n, err := decodeHeader(&entries[i], buf[off:])
		if err != nil {
			return 0, err
		}
		off += n
	}
	m.storeHeaders(entries)

	n, err := m.payload.decodeFrom(buf[off:], copyData)
	if err != nil {
		return 0, err
	}
	return off + n, nil
}

func decodeHeader(entry *headerEntry, buf []byte) (int, error) {
	if len(buf) < 4 {
		return 0, ErrBufferTooShort
	}
	id := int16(EncByteOrder.Uint16(buf[0:2]))
	magicID := EncByteOrder.Uint16(buf[2:4])
	hdr, err := createStreamable(magicID)
	if err != nil {
		return 0, err
	}
	n, err := hdr.DecodeFrom(buf[4:])
	if err != nil {
		return 0, err
	}
	entry.id = id
	entry.hdr = hdr
	return 4 + n, nil
}
