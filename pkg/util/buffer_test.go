package util

import (
	"testing"
)

func TestBufferResize(t *testing.T) {
	b := NewBuffer(make([]byte, 0, 64))
	b.Resize(32)
	if b.Len() != 32 {
		t.Errorf("expected len 32, got %d", b.Len())
	}
	p := &b.Bytes()[0]
	b.Resize(64)
	if &b.Bytes()[0] != p {
		t.Error("resize within capacity must keep the underlying array")
	}
	b.Resize(128)
	if b.Len() != 128 {
		t.Errorf("expected len 128, got %d", b.Len())
	}
}

func TestBufferGrowKeepsContent(t *testing.T) {
	b := NewBuffer([]byte("abc"))
	b.Grow(100)
	if string(b.Bytes()) != "abc" {
		t.Errorf("content lost on grow: %q", b.Bytes())
	}
}

func TestSyncBufferPool(t *testing.T) {
	p := NewSyncBufferPool(1024)
	b := p.Get()
	b.Resize(512)
	copy(b.Bytes(), "data")
	p.Put(b)
	b2 := p.Get()
	if b2.Len() != 0 {
		t.Errorf("pooled buffer not reset, len %d", b2.Len())
	}
}

func TestChanBufferPool(t *testing.T) {
	p := NewChanBufferPool(2, 256)
	b := p.Get()
	b.Resize(100)
	p.Put(b)
	b2 := p.Get()
	if b2.Len() != 0 {
		t.Errorf("pooled buffer not reset, len %d", b2.Len())
	}
	// overfilling the channel must not block
	for i := 0; i < 8; i++ {
		p.Put(new(Buffer))
	}
}

func TestGetBufferPoolSizeClasses(t *testing.T) {
	sizes := []int{1, 256, 257, 5000, 1 << 20}
	for _, size := range sizes {
		p := GetBufferPool(size)
		if p == nil {
			t.Fatalf("no pool for size %d", size)
		}
		b := p.Get()
		b.Resize(size)
		if b.Len() != size {
			t.Errorf("size %d: resize gave len %d", size, b.Len())
		}
		p.Put(b)
	}
	if GetBufferPool(100) != GetBufferPool(200) {
		t.Error("sizes in the same class must share a pool")
	}
}
