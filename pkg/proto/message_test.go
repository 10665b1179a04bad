package proto

import (
	"strings"
	"sync"
	"testing"

	"gcomm/pkg/addr"
)

func TestFlagOps(t *testing.T) {
	m := NewEmptyMessage(nil)
	m.SetFlag(FlagOOB, FlagNoFC)
	if !m.IsFlagSet(FlagOOB) || !m.IsFlagSet(FlagNoFC) {
		t.Error("flags not set")
	}
	if m.IsFlagSet(FlagRSVP) {
		t.Error("unexpected flag set")
	}
	m.ClearFlag(FlagOOB)
	if m.IsFlagSet(FlagOOB) {
		t.Error("flag not cleared")
	}
	if !m.IsFlagSet(FlagNoFC) {
		t.Error("clear removed an unrelated flag")
	}
}

func TestTransientFlagOps(t *testing.T) {
	m := NewEmptyMessage(nil)
	m.SetTransientFlag(FlagOOBDelivered)
	if !m.IsTransientFlagSet(FlagOOBDelivered) {
		t.Error("transient flag not set")
	}
	if m.Flags() != 0 {
		t.Error("transient set leaked into persistent flags")
	}
	m.ClearTransientFlag(FlagOOBDelivered)
	if m.IsTransientFlagSet(FlagOOBDelivered) {
		t.Error("transient flag not cleared")
	}
}

func TestSetFlagIfAbsent(t *testing.T) {
	m := NewEmptyMessage(nil)
	if !m.SetFlagIfAbsent(FlagDontLoopback) {
		t.Error("first caller should win")
	}
	if m.SetFlagIfAbsent(FlagDontLoopback) {
		t.Error("second caller should lose")
	}
}

func TestSetFlagIfAbsentRace(t *testing.T) {
	m := NewEmptyMessage(nil)
	const numCallers = 32
	var wg sync.WaitGroup
	results := make([]bool, numCallers)
	for i := 0; i < numCallers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.SetFlagIfAbsent(FlagDontBlock)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, won := range results {
		if won {
			winners++
		}
	}
	if winners != 1 {
		t.Errorf("expected exactly one winner, got %d", winners)
	}
	if !m.IsTransientFlagSet(FlagDontBlock) {
		t.Error("flag not set after the race")
	}
}

func TestCopyPlain(t *testing.T) {
	dest := addr.NewUUID()
	src := addr.NewUUID()
	m, err := NewBytesMessage(dest, []byte("payload"), 0, 7)
	if err != nil {
		t.Fatal(err)
	}
	m.SetSrc(src)
	m.SetFlag(FlagOOB)
	m.SetTransientFlag(FlagOOBDelivered)
	m.PutHeader(1, &seqnoHeader{seqno: 1})
	m.PutHeader(2, &seqnoHeader{seqno: 2})

	c := m.Copy(false, false)
	if c.GetDest() != addr.Address(dest) || c.GetSrc() != addr.Address(src) {
		t.Error("addresses not copied")
	}
	if !c.IsFlagSet(FlagOOB) {
		t.Error("persistent flags not copied")
	}
	if c.TransientFlags() != 0 {
		t.Error("transient flags must never be copied")
	}
	if c.HasPayload() {
		t.Error("copy without payload should be empty")
	}
	if c.NumHeaders() != 0 {
		t.Error("copy without headers should have an empty table")
	}

	// the fresh table must be independent of the original's
	c.PutHeader(3, &seqnoHeader{seqno: 3})
	if hdr, _ := m.GetHeader(3); hdr != nil {
		t.Error("mutating the copy's headers affected the original")
	}
}

func TestCopyWithPayloadAndHeaders(t *testing.T) {
	buf := []byte("zero copy payload")
	m, err := NewBytesMessage(nil, buf, 0, len(buf))
	if err != nil {
		t.Fatal(err)
	}
	m.PutHeader(1, &seqnoHeader{seqno: 1})

	c := m.Copy(true, true)
	arr, err := c.GetArray()
	if err != nil {
		t.Fatal(err)
	}
	if &arr[0] != &buf[0] {
		t.Error("payload copy must be by reference, not a buffer clone")
	}
	if c.NumHeaders() != 1 {
		t.Fatalf("expected 1 header in copy, got %d", c.NumHeaders())
	}

	c.PutHeader(2, &seqnoHeader{seqno: 2})
	if m.NumHeaders() != 1 {
		t.Error("copy's table shares the original's backing array")
	}
}

func TestString(t *testing.T) {
	m := NewEmptyMessage(nil)
	m.SetFlag(FlagOOB)
	s := m.String()
	if !strings.Contains(s, "<all>") || !strings.Contains(s, "OOB") {
		t.Errorf("unexpected String(): %s", s)
	}
}
