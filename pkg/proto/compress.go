package proto

import (
	"github.com/golang/glog"
	"github.com/golang/snappy"
)

// CompressPayload snappy-compresses a raw payload in place and marks the
// message with FlagCompressed. The compressed bytes live in a fresh
// buffer, so the caller's original backing buffer is left alone.
func (m *Message) CompressPayload() error {
	if m.payload.kind != PayloadRaw {
		return ErrNotRawPayload
	}
	if m.IsFlagSet(FlagCompressed) {
		return ErrAlreadyCompressed
	}
	value := m.payload.buf[m.payload.off : m.payload.off+m.payload.length]
	compressed := snappy.Encode(nil, value)
	if err := m.payload.setRaw(compressed, 0, len(compressed)); err != nil {
		return err
	}
	m.SetFlag(FlagCompressed)
	return nil
}

// UncompressPayload reverses CompressPayload. A message without
// FlagCompressed is left untouched.
func (m *Message) UncompressPayload() error {
	if m.payload.kind != PayloadRaw {
		return ErrNotRawPayload
	}
	if !m.IsFlagSet(FlagCompressed) {
		return nil
	}
	value := m.payload.buf[m.payload.off : m.payload.off+m.payload.length]
	uncompressed, err := snappy.Decode(nil, value)
	if err != nil {
		glog.Errorf("error while uncompressing payload: %v", err)
		return err
	}
	if err := m.payload.setRaw(uncompressed, 0, len(uncompressed)); err != nil {
		return err
	}
	m.ClearFlag(FlagCompressed)
	return nil
}
