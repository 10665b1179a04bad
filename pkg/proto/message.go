package proto

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"gcomm/pkg/addr"
)

// Message is the envelope every protocol layer attaches metadata to
// before the payload is handed to the transport: optional destination
// and source addresses, persistent and transient flag bits, a growable
// header table keyed by protocol id, and one payload variant.
//
// A message has a single logical owner at any point in time as it moves
// through the stack. Only PutHeader and SetFlagIfAbsent are safe to call
// concurrently with other operations; plain flag and address mutation
// need external coordination.
type Message struct {
	dest addr.Address
	src  addr.Address

	flags          uint16
	transientFlags uint8

	mtx     sync.Mutex
	headers atomic.Pointer[[]headerEntry]

	payload Payload
}

// NewMessage returns a message carrying the given payload kind with an
// empty header table. Used directly by the decode path; applications
// usually call one of the typed constructors below.
func NewMessage(kind PayloadKind) *Message {
	m := &Message{}
	m.payload.kind = kind
	m.storeHeaders(newHeaderTable())
	return m
}

// NewEmptyMessage constructs a message with no payload. A nil dest means
// the message is sent to the whole group.
func NewEmptyMessage(dest addr.Address) *Message {
	m := NewMessage(PayloadEmpty)
	m.dest = dest
	return m
}

// NewBytesMessage constructs a message whose payload references
// buf[off:off+length] without copying. The buffer must not be mutated
// afterwards; a retransmission may encode it at any later time.
func NewBytesMessage(dest addr.Address, buf []byte, off int, length int) (*Message, error) {
	m := NewMessage(PayloadRaw)
	m.dest = dest
	if buf != nil {
		if err := m.payload.setRaw(buf, off, length); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewObjectMessage constructs a message whose payload is obj, which must
// implement Streamable. The object is not encoded until the message is
// actually serialized.
func NewObjectMessage(dest addr.Address, obj interface{}) (*Message, error) {
	m := NewMessage(PayloadObject)
	m.dest = dest
	if err := m.payload.setObject(obj); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Message) loadHeaders() []headerEntry {
	p := m.headers.Load()
	if p == nil {
		return nil
	}
	return *p
}

func (m *Message) storeHeaders(entries []headerEntry) {
	m.headers.Store(&entries)
}

func (m *Message) GetDest() addr.Address {
	return m.dest
}

func (m *Message) SetDest(dest addr.Address) {
	m.dest = dest
}

func (m *Message) GetSrc() addr.Address {
	return m.src
}

func (m *Message) SetSrc(src addr.Address) {
	m.src = src
}

func (m *Message) SetFlag(flags ...Flag) {
	tmp := m.flags
	for _, f := range flags {
		tmp |= uint16(f)
	}
	m.flags = tmp
}

func (m *Message) ClearFlag(flags ...Flag) {
	tmp := m.flags
	for _, f := range flags {
		tmp &^= uint16(f)
	}
	m.flags = tmp
}

func (m *Message) IsFlagSet(f Flag) bool {
	return m.flags&uint16(f) != 0
}

func (m *Message) SetTransientFlag(flags ...TransientFlag) {
	tmp := m.transientFlags
	for _, f := range flags {
		tmp |= uint8(f)
	}
	m.transientFlags = tmp
}

func (m *Message) ClearTransientFlag(flags ...TransientFlag) {
	tmp := m.transientFlags
	for _, f := range flags {
		tmp &^= uint8(f)
	}
	m.transientFlags = tmp
}

func (m *Message) IsTransientFlagSet(f TransientFlag) bool {
	return m.transientFlags&uint8(f) != 0
}

// SetFlagIfAbsent atomically checks whether the transient flag is set
// and, if not, sets it. Among concurrent callers with the same flag
// exactly one gets true.
func (m *Message) SetFlagIfAbsent(f TransientFlag) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.transientFlags&uint8(f) != 0 {
		return false
	}
	m.transientFlags |= uint8(f)
	return true
}

// Flags returns the raw persistent bits. Internal representation, used
// by test code.
func (m *Message) Flags() uint16 {
	return m.flags
}

func (m *Message) TransientFlags() uint8 {
	return m.transientFlags
}

// PutHeader files hdr under id, overwriting any existing entry for that
// id. Mutation is exclusive: a growth replaces the backing array
// wholesale, so a concurrent reader sees either the old or the new
// table, never a torn one.
func (m *Message) PutHeader(id int16, hdr Header) error {
	if id < 0 {
		return ErrNegativeHeaderID
	}
	m.mtx.Lock()
	m.storeHeaders(putHeader(m.loadHeaders(), id, hdr))
	m.mtx.Unlock()
	return nil
}

// GetHeader returns the header filed under id, or nil if absent. Id 0 is
// reserved; asking for it means the calling layer never registered a
// protocol id.
func (m *Message) GetHeader(id int16) (Header, error) {
	if id <= 0 {
		return nil, ErrUnassignedHeaderID
	}
	return getHeader(m.loadHeaders(), id), nil
}

func (m *Message) NumHeaders() int {
	return headerCount(m.loadHeaders())
}

// Headers returns a snapshot of the table as a map.
func (m *Message) Headers() map[int16]Header {
	return headersToMap(m.loadHeaders())
}

func (m *Message) PrintHeaders() string {
	return printHeaders(m.loadHeaders())
}

func (m *Message) PayloadKind() PayloadKind {
	return m.payload.kind
}

func (m *Message) HasPayload() bool {
	return m.payload.HasPayload()
}

func (m *Message) GetArray() ([]byte, error) {
	return m.payload.Array()
}

func (m *Message) GetOffset() (int, error) {
	return m.payload.Offset()
}

func (m *Message) GetLength() int {
	return m.payload.Length()
}

// SetArray points the payload at buf[off:off+length] without copying.
// Fails on a non-raw message.
func (m *Message) SetArray(buf []byte, off int, length int) error {
	if m.payload.kind != PayloadRaw {
		return ErrNotRawPayload
	}
	return m.payload.setRaw(buf, off, length)
}

func (m *Message) GetObject() (Streamable, error) {
	return m.payload.Object()
}

// SetObject replaces the payload object. The value must implement
// Streamable; the check happens here, not at encode time.
func (m *Message) SetObject(obj interface{}) error {
	if m.payload.kind != PayloadObject {
		return ErrNotObjectPayload
	}
	return m.payload.setObject(obj)
}

func (m *Message) GetPayload() *Payload {
	return &m.payload
}

// Size returns the exact number of bytes EncodeTo would write for the
// current state. Recomputed on every call.
func (m *Message) Size() int {
	retval := 1 + 2 // leading byte + flags
	if m.dest != nil {
		retval += addr.SizeOf(m.dest)
	}
	if m.src != nil {
		retval += addr.SizeOf(m.src)
	}
	retval += 2 // number of headers
	retval += headersMarshalledSize(m.loadHeaders())
	retval += m.payload.size()
	return retval
}

func (m *Message) SerializedSize() int {
	return m.Size()
}

// SizeExcluding returns the byte count EncodeExcluding would write with
// the same assumed source and exclusion list.
func (m *Message) SizeExcluding(assumedSrc addr.Address, excluded ...int16) int {
	retval := 1 + 2
	if m.writeSrc(assumedSrc) {
		retval += addr.SizeOf(m.src)
	}
	retval += 2
	retval += headersMarshalledSize(m.loadHeaders(), excluded...)
	retval += m.payload.size()
	return retval
}

func (m *Message) writeSrc(assumedSrc addr.Address) bool {
	return m.src != nil && (assumedSrc == nil || !m.src.Equal(assumedSrc))
}

// Copy duplicates the message. Destination, source and persistent flags
// are always copied; transient flags never are. With copyPayload the
// payload representation is copied by reference, not by cloning buffer
// contents. With copyHeaders the copy gets a structurally independent
// table; otherwise a fresh empty one.
func (m *Message) Copy(copyPayload bool, copyHeaders bool) *Message {
	retval := &Message{}
	retval.dest = m.dest
	retval.src = m.src
	retval.flags = m.flags

	if copyPayload {
		retval.payload = m.payload
	}
	if copyHeaders {
		retval.storeHeaders(copyHeaderTable(m.loadHeaders()))
	} else {
		retval.storeHeaders(newHeaderTable())
	}
	return retval
}

func (m *Message) String() string {
	dest := "<all>"
	if m.dest != nil {
		dest = m.dest.String()
	}
	src := "<nil>"
	if m.src != nil {
		src = m.src.String()
	}
	s := fmt.Sprintf("[%s to %s, %d bytes", src, dest, m.GetLength())
	if m.flags != 0 {
		s += ", flags=" + flagsToString(m.flags)
	}
	if m.transientFlags != 0 {
		s += ", transient_flags=" + transientFlagsToString(m.transientFlags)
	}
	return s + "]"
}

func (m *Message) PrettyPrint(w io.Writer) {
	fmt.Fprintf(w, "Dest          : %v\n", m.dest)
	fmt.Fprintf(w, "Src           : %v\n", m.src)
	fmt.Fprintf(w, "Flags         : %#x %s\n", m.flags, flagsToString(m.flags))
	if m.transientFlags != 0 {
		fmt.Fprintf(w, "Transient     : %#x %s\n", m.transientFlags, transientFlagsToString(m.transientFlags))
	}
	fmt.Fprintf(w, "Headers (%d)   : %s\n", m.NumHeaders(), m.PrintHeaders())
	m.payload.PrettyPrint(w)
}
