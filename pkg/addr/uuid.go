package addr

import (
	"bytes"

	uuid "github.com/satori/go.uuid"
)

// UUID is the default logical member address, a random 128-bit id
// assigned when a member joins.
type UUID struct {
	id uuid.UUID
}

func NewUUID() *UUID {
	return &UUID{id: uuid.NewV4()}
}

func UUIDFromBytes(b []byte) (*UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return nil, ErrInvalidAddress
	}
	return &UUID{id: id}, nil
}

func (a *UUID) Type() AddrType {
	return AddrTypeUUID
}

func (a *UUID) SerializedSize() int {
	return uuid.Size
}

func (a *UUID) EncodeTo(buf []byte) (int, error) {
	if len(buf) < uuid.Size {
		return 0, ErrBufferTooShort
	}
	copy(buf, a.id.Bytes())
	return uuid.Size, nil
}

func (a *UUID) DecodeFrom(buf []byte) (int, error) {
	if len(buf) < uuid.Size {
		return 0, ErrBufferTooShort
	}
	id, err := uuid.FromBytes(buf[:uuid.Size])
	if err != nil {
		return 0, ErrInvalidAddress
	}
	a.id = id
	return uuid.Size, nil
}

func (a *UUID) Equal(other Address) bool {
	o, ok := other.(*UUID)
	if !ok {
		return false
	}
	return bytes.Equal(a.id.Bytes(), o.id.Bytes())
}

func (a *UUID) String() string {
	return a.id.String()
}
