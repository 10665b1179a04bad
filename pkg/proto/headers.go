package proto

import (
	"fmt"
	"strings"
)

// The header table is a sparse slice of entries. A nil header marks an
// unused slot; iteration stops at the first one. Tables built by decode
// are exactly sized to the wire-declared count and have no unused slots.
type headerEntry struct {
	id  int16
	hdr Header
}

func newHeaderTable() []headerEntry {
	return make([]headerEntry, kDefaultHeaders)
}

func excludedID(id int16, excluded []int16) bool {
	for _, x := range excluded {
		if x == id {
			return true
		}
	}
	return false
}

func headerCount(entries []headerEntry, excluded ...int16) (count int) {
	for i := range entries {
		if entries[i].hdr == nil {
			break
		}
		if excludedID(entries[i].id, excluded) {
			continue
		}
		count++
	}
	return
}

// headersMarshalledSize is the byte count of the header block, excluding
// the two-byte count field: per header two bytes of protocol id, two
// bytes of magic id, then the header's own bytes.
func headersMarshalledSize(entries []headerEntry, excluded ...int16) (size int) {
	for i := range entries {
		if entries[i].hdr == nil {
			break
		}
		if excludedID(entries[i].id, excluded) {
			continue
		}
		size += 2 + 2 + entries[i].hdr.SerializedSize()
	}
	return
}

func getHeader(entries []headerEntry, id int16) Header {
	for i := range entries {
		if entries[i].hdr == nil {
			return nil
		}
		if entries[i].id == id {
			return entries[i].hdr
		}
	}
	return nil
}

// putHeader returns a new backing slice with hdr filed under id. The
// input slice is never mutated; the caller swaps the returned slice in
// under its own mutual exclusion, so concurrent readers observe either
// the fully-old or the fully-new table.
func putHeader(entries []headerEntry, id int16, hdr Header) []headerEntry {
	for i := range entries {
		if entries[i].hdr == nil || entries[i].id == id {
			updated := make([]headerEntry, len(entries))
			copy(updated, entries)
			updated[i] = headerEntry{id: id, hdr: hdr}
			return updated
		}
	}
	// no free slot, grow by doubling; a decode-built table may be empty
	n := len(entries) * 2
	if n == 0 {
		n = kDefaultHeaders
	}
	updated := make([]headerEntry, n)
	copy(updated, entries)
	updated[len(entries)] = headerEntry{id: id, hdr: hdr}
	return updated
}

func copyHeaderTable(entries []headerEntry) []headerEntry {
	updated := make([]headerEntry, len(entries))
	copy(updated, entries)
	return updated
}

func headersToMap(entries []headerEntry) map[int16]Header {
	m := make(map[int16]Header)
	for i := range entries {
		if entries[i].hdr == nil {
			break
		}
		m[entries[i].id] = entries[i].hdr
	}
	return m
}

func printHeaders(entries []headerEntry) string {
	var parts []string
	for i := range entries {
		if entries[i].hdr == nil {
			break
		}
		parts = append(parts, fmt.Sprintf("%d: %v", entries[i].id, entries[i].hdr))
	}
	return strings.Join(parts, ", ")
}
