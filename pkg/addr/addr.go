// Package addr implements the member addresses carried by group messages
// and their wire codec. An encoded address is a one-byte address type
// followed by the type-specific bytes; the codec owns the type byte, the
// address value owns the rest.
package addr

import (
	"fmt"
)

type AddrType uint8

const (
	AddrTypeUUID = AddrType(1)
	AddrTypeIP   = AddrType(2)
)

type Address interface {
	Type() AddrType
	SerializedSize() int
	EncodeTo(buf []byte) (n int, err error)
	DecodeFrom(buf []byte) (n int, err error)
	Equal(other Address) bool
	String() string
}

type CodecError struct {
	what string
}

func (e *CodecError) Error() string {
	return "address codec error: " + e.what
}

var (
	ErrBufferTooShort  = &CodecError{"input buffer too short"}
	ErrUnknownAddrType = &CodecError{"unknown address type"}
	ErrInvalidAddress  = &CodecError{"invalid address bytes"}
)

func (t AddrType) String() string {
	switch t {
	case AddrTypeUUID:
		return "uuid"
	case AddrTypeIP:
		return "ip"
	default:
		return fmt.Sprintf("unknown address type: %d", uint8(t))
	}
}

// SizeOf returns the number of bytes Encode writes for a.
func SizeOf(a Address) int {
	return 1 + a.SerializedSize()
}

func Encode(a Address, buf []byte) (n int, err error) {
	if len(buf) < SizeOf(a) {
		return 0, ErrBufferTooShort
	}
	buf[0] = byte(a.Type())
	n, err = a.EncodeTo(buf[1:])
	if err != nil {
		return 0, err
	}
	return 1 + n, nil
}

func Decode(buf []byte) (a Address, n int, err error) {
	if len(buf) < 1 {
		return nil, 0, ErrBufferTooShort
	}
	switch AddrType(buf[0]) {
	case AddrTypeUUID:
		a = &UUID{}
	case AddrTypeIP:
		a = &IPAddr{}
	default:
		return nil, 0, ErrUnknownAddrType
	}
	n, err = a.DecodeFrom(buf[1:])
	if err != nil {
		return nil, 0, err
	}
	return a, 1 + n, nil
}
