package proto

import (
	"gcomm/pkg/addr"
)

// Wire layout (all multi-byte integers big-endian):
//
//   1. leading byte: bit 0 dest present, bit 1 src present, rest zero
//   2. two-byte persistent flags
//   3. dest address bytes, only when bit 0 set
//   4. src address bytes, only when bit 1 set
//   5. two-byte header count N
//   6. N x { two-byte protocol id, two-byte magic id, header bytes }
//   7. payload trailing bytes, written by the payload variant

// EncodeTo writes the canonical wire form into buf and returns the byte
// count, which always equals Size() computed on the same state.
func (m *Message) EncodeTo(buf []byte) (n int, err error) {
	if len(buf) < m.Size() {
		return 0, ErrBufferTooShort
	}

	var leading byte
	if m.dest != nil {
		leading |= kDestSet
	}
	if m.src != nil {
		leading |= kSrcSet
	}
	buf[0] = leading
	EncByteOrder.PutUint16(buf[1:3], m.flags)
	off := 3

	if m.dest != nil {
		if n, err = addr.Encode(m.dest, buf[off:]); err != nil {
			return 0, err
		}
		off += n
	}
	if m.src != nil {
		if n, err = addr.Encode(m.src, buf[off:]); err != nil {
			return 0, err
		}
		off += n
	}

	entries := m.loadHeaders()
	EncByteOrder.PutUint16(buf[off:off+2], uint16(headerCount(entries)))
	off += 2
	for i := range entries {
		if entries[i].hdr == nil {
			break
		}
		if n, err = encodeHeader(entries[i].id, entries[i].hdr, buf[off:]); err != nil {
			return 0, err
		}
		off += n
	}

	if n, err = m.payload.encodeTo(buf[off:]); err != nil {
		return 0, err
	}
	return off + n, nil
}

// EncodeExcluding is the relay variant: the destination block is never
// written (assumed known from context), the source block is written only
// when it cannot be inferred from assumedSrc, and headers on the
// exclusion list are skipped with the count adjusted accordingly.
func (m *Message) EncodeExcluding(assumedSrc addr.Address, buf []byte, excluded ...int16) (n int, err error) {
	if len(buf) < m.SizeExcluding(assumedSrc, excluded...) {
		return 0, ErrBufferTooShort
	}

	writeSrc := m.writeSrc(assumedSrc)
	var leading byte
	if writeSrc {
		leading |= kSrcSet
	}
	buf[0] = leading
	EncByteOrder.PutUint16(buf[1:3], m.flags)
	off := 3

	if writeSrc {
		if n, err = addr.Encode(m.src, buf[off:]); err != nil {
			return 0, err
		}
		off += n
	}

	entries := m.loadHeaders()
	EncByteOrder.PutUint16(buf[off:off+2], uint16(headerCount(entries, excluded...)))
	off += 2
	for i := range entries {
		if entries[i].hdr == nil {
			break
		}
		if excludedID(entries[i].id, excluded) {
			continue
		}
		if n, err = encodeHeader(entries[i].id, entries[i].hdr, buf[off:]); err != nil {
			return 0, err
		}
		off += n
	}

	if n, err = m.payload.encodeTo(buf[off:]); err != nil {
		return 0, err
	}
	return off + n, nil
}

func encodeHeader(id int16, hdr Header, buf []byte) (int, error) {
	if len(buf) < 4 {
		return 0, ErrBufferTooShort
	}
	EncByteOrder.PutUint16(buf[0:2], uint16(id))
	EncByteOrder.PutUint16(buf[2:4], hdr.MagicID())
	n, err := hdr.EncodeTo(buf[4:])
	if err != nil {
		return 0, err
	}
	return 4 + n, nil
}
