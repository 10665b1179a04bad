package util

// Buffer is a resizable byte buffer. Resize keeps the underlying
// array when it is already large enough, so pooled buffers are not
// reallocated per message.
type Buffer struct {
	buf []byte
}

func NewBuffer(buf []byte) *Buffer {
	return &Buffer{buf: buf}
}

func (b *Buffer) Bytes() []byte {
	return b.buf
}

func (b *Buffer) Len() int {
	return len(b.buf)
}

func (b *Buffer) Grow(n int) {
	if n > cap(b.buf) {
		buf := make([]byte, len(b.buf), n)
		copy(buf, b.buf)
		b.buf = buf
	}
}

func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
}

func (b *Buffer) Resize(n int) {
	b.Reset()
	if n > cap(b.buf) {
		b.Grow(n)
	}
	b.buf = b.buf[:n]
}
