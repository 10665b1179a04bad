// Package typereg maps magic ids to the factories that reconstruct
// header and payload types during decode. Protocol layers register
// their types at startup; importing this package installs the default
// registry into package proto.
package typereg

import (
	"github.com/golang/glog"

	"gcomm/pkg/proto"
	"gcomm/pkg/util"
)

type Factory func() proto.Streamable

type RegistryError struct {
	what string
}

func (e *RegistryError) Error() string {
	return "type registry error: " + e.what
}

var (
	ErrUnknownMagicID = &RegistryError{"unknown magic id"}
	ErrDupMagicID     = &RegistryError{"magic id already registered"}
	ErrNilFactory     = &RegistryError{"nil factory"}
)

const kNumPartitions = 16

type Registry struct {
	factories *util.CMap
}

func NewRegistry() *Registry {
	return &Registry{factories: util.NewCMap(kNumPartitions)}
}

func magicKey(magicID uint16) []byte {
	return []byte{byte(magicID >> 8), byte(magicID)}
}

// Register files a factory under magicID. Registering the same id twice
// fails; independently developed layers colliding on an id is caller
// misuse that has to surface, not be silently resolved.
func (r *Registry) Register(magicID uint16, f Factory) error {
	if f == nil {
		return ErrNilFactory
	}
	if _, stored := r.factories.PutIfAbsent(magicKey(magicID), f); !stored {
		glog.Warningf("magic id %d registered more than once", magicID)
		return ErrDupMagicID
	}
	return nil
}

func (r *Registry) Create(magicID uint16) (proto.Streamable, error) {
	v, ok := r.factories.Get(magicKey(magicID))
	if !ok {
		glog.V(2).Infof("lookup of unknown magic id %d", magicID)
		return nil, ErrUnknownMagicID
	}
	return v.(Factory)(), nil
}

var defaultRegistry = NewRegistry()

func Default() *Registry {
	return defaultRegistry
}

// Register registers with the default registry.
func Register(magicID uint16, f Factory) error {
	return defaultRegistry.Register(magicID, f)
}

// MustRegister is Register for init-time use.
func MustRegister(magicID uint16, f Factory) {
	if err := defaultRegistry.Register(magicID, f); err != nil {
		panic(err)
	}
}

func init() {
	proto.SetTypeRegistry(defaultRegistry)
}
