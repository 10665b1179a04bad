package proto

import (
	"encoding/binary"
)

const (
	// leading presence byte
	kDestSet byte = 1
	kSrcSet  byte = 1 << 1

	// initial capacity of an incrementally built header table
	kDefaultHeaders = 3
)

var (
	EncByteOrder = binary.BigEndian
)

type (
	// Streamable is the capability a value must satisfy to travel on the
	// wire: a stable type id, a deterministic byte length, and an
	// encode/decode pair. The length function must be pure; it is invoked
	// on every size computation and never cached.
	Streamable interface {
		MagicID() uint16
		SerializedSize() int
		EncodeTo(buf []byte) (n int, err error)
		DecodeFrom(buf []byte) (n int, err error)
	}

	// Header is per-layer metadata attached to a message. The protocol id
	// it is filed under belongs to the header table, not to the header
	// value itself.
	Header interface {
		Streamable
	}

	// TypeRegistry maps a magic id to a fresh Streamable of the concrete
	// type, used to reconstruct headers and object payloads during decode.
	// An implementation is injected from outside; this package only calls
	// Create.
	TypeRegistry interface {
		Create(magicID uint16) (Streamable, error)
	}
)

type ProtocolError struct {
	what string
}

func (e *ProtocolError) Error() string {
	return "protocol error: " + e.what
}

type ArgumentError struct {
	what string
}

func (e *ArgumentError) Error() string {
	return "invalid argument: " + e.what
}

type UnsupportedError struct {
	what string
}

func (e *UnsupportedError) Error() string {
	return "unsupported operation: " + e.what
}

var (
	ErrNegativeHeaderID   = &ArgumentError{"negative header id"}
	ErrUnassignedHeaderID = &ArgumentError{"header id must be positive"}
	ErrNotStreamable      = &ArgumentError{"payload object does not implement Streamable"}
	ErrOutOfBounds        = &ArgumentError{"offset/length out of bounds"}

	ErrNotRawPayload    = &UnsupportedError{"payload is not a raw buffer"}
	ErrNotObjectPayload = &UnsupportedError{"payload is not an object"}

	ErrBufferTooShort    = &ProtocolError{"input buffer too short"}
	ErrInvalidMessage    = &ProtocolError{"invalid message"}
	ErrInvalidFrame      = &ProtocolError{"invalid frame header"}
	ErrNoTypeRegistry    = &ProtocolError{"no type registry installed"}
	ErrAlreadyCompressed = &ProtocolError{"payload already compressed"}
)

func NewProtocolError(err error) *ProtocolError {
	return &ProtocolError{what: err.Error()}
}

var typeRegistry TypeRegistry

// SetTypeRegistry installs the registry used to reconstruct headers and
// object payloads. Expected to be called once during startup, before any
// decode runs.
func SetTypeRegistry(r TypeRegistry) {
	typeRegistry = r
}

func createStreamable(magicID uint16) (Streamable, error) {
	if typeRegistry == nil {
		return nil, ErrNoTypeRegistry
	}
	return typeRegistry.Create(magicID)
}
