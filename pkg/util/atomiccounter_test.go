package util

import (
	"sync"
	"testing"
)

func TestAtomicCounter(t *testing.T) {
	var c AtomicCounter
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()
	if c.Get() != 1000 {
		t.Errorf("expected 1000, got %d", c.Get())
	}
	c.Set(7)
	if c.Get() != 7 {
		t.Errorf("expected 7, got %d", c.Get())
	}
	c.Reset()
	if c.Get() != 0 {
		t.Errorf("expected 0, got %d", c.Get())
	}
}

func TestAtomicUint64Counter(t *testing.T) {
	var c AtomicUint64Counter
	c.Add(3)
	c.Add(4)
	if c.Get() != 7 {
		t.Errorf("expected 7, got %d", c.Get())
	}
	c.Reset()
	if c.Get() != 0 {
		t.Errorf("expected 0, got %d", c.Get())
	}
}
