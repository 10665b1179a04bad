package util

import (
	"fmt"
	"sync"
	"testing"
)

func TestCMapBasicOps(t *testing.T) {
	m := NewCMap(8)
	key := []byte("key")
	if _, ok := m.Get(key); ok {
		t.Error("get on empty map")
	}
	m.Put(key, 1)
	v, ok := m.Get(key)
	if !ok || v.(int) != 1 {
		t.Errorf("got %v, %v", v, ok)
	}
	m.Put(key, 2)
	if v, _ := m.Get(key); v.(int) != 2 {
		t.Errorf("overwrite failed, got %v", v)
	}
	m.Delete(key)
	if _, ok := m.Get(key); ok {
		t.Error("key survived delete")
	}
}

func TestCMapPutIfAbsent(t *testing.T) {
	m := NewCMap(8)
	key := []byte("key")
	if _, stored := m.PutIfAbsent(key, 1); !stored {
		t.Error("first put should store")
	}
	cur, stored := m.PutIfAbsent(key, 2)
	if stored {
		t.Error("second put should not store")
	}
	if cur.(int) != 1 {
		t.Errorf("expected existing value 1, got %v", cur)
	}
}

func TestCMapConcurrent(t *testing.T) {
	m := NewCMap(16)
	var wg sync.WaitGroup
	const numKeys = 200
	for i := 0; i < numKeys; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := []byte(fmt.Sprintf("key-%d", i))
			m.Put(key, i)
			v, ok := m.Get(key)
			if !ok || v.(int) != i {
				t.Errorf("key %d: got %v, %v", i, v, ok)
			}
		}(i)
	}
	wg.Wait()
}
