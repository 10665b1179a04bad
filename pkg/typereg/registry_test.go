package typereg

import (
	"sync"
	"testing"

	"gcomm/pkg/proto"
)

const kMagicTest uint16 = 0x0201

type testHeader struct {
	value uint16
}

func (h *testHeader) MagicID() uint16 {
	return kMagicTest
}

func (h *testHeader) SerializedSize() int {
	return 2
}

func (h *testHeader) EncodeTo(buf []byte) (int, error) {
	if len(buf) < 2 {
		return 0, proto.ErrBufferTooShort
	}
	proto.EncByteOrder.PutUint16(buf[0:2], h.value)
	return 2, nil
}

func (h *testHeader) DecodeFrom(buf []byte) (int, error) {
	if len(buf) < 2 {
		return 0, proto.ErrBufferTooShort
	}
	h.value = proto.EncByteOrder.Uint16(buf[0:2])
	return 2, nil
}

func TestRegisterAndCreate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(kMagicTest, func() proto.Streamable { return &testHeader{} }); err != nil {
		t.Fatal(err)
	}
	s, err := r.Create(kMagicTest)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*testHeader); !ok {
		t.Fatalf("factory built a %T", s)
	}
	s2, err := r.Create(kMagicTest)
	if err != nil {
		t.Fatal(err)
	}
	if s == s2 {
		t.Error("Create must return a fresh instance each time")
	}
}

func TestRegisterDup(t *testing.T) {
	r := NewRegistry()
	f := func() proto.Streamable { return &testHeader{} }
	if err := r.Register(kMagicTest, f); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(kMagicTest, f); err != ErrDupMagicID {
		t.Errorf("expected ErrDupMagicID, got %v", err)
	}
}

func TestRegisterNilFactory(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(kMagicTest, nil); err != ErrNilFactory {
		t.Errorf("expected ErrNilFactory, got %v", err)
	}
}

func TestCreateUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create(0xFFFF); err != ErrUnknownMagicID {
		t.Errorf("expected ErrUnknownMagicID, got %v", err)
	}
}

func TestConcurrentRegisterAndCreate(t *testing.T) {
	r := NewRegistry()
	const numIDs = 64
	var wg sync.WaitGroup
	for i := 0; i < numIDs; i++ {
		wg.Add(1)
		go func(id uint16) {
			defer wg.Done()
			if err := r.Register(id, func() proto.Streamable { return &testHeader{value: id} }); err != nil {
				t.Error(err)
			}
			s, err := r.Create(id)
			if err != nil {
				t.Error(err)
				return
			}
			if s.(*testHeader).value != id {
				t.Errorf("id %d: factory mismatch", id)
			}
		}(uint16(i + 1))
	}
	wg.Wait()
}

// The decode path of package proto uses the default registry installed
// by this package's init.
func TestDefaultRegistryWiredIntoProto(t *testing.T) {
	const magic uint16 = 0x0299
	MustRegister(magic, func() proto.Streamable { return &testHeader{} })

	m := proto.NewEmptyMessage(nil)
	if err := m.PutHeader(1, &testHeader{value: 77}); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, m.Size())
	if _, err := m.EncodeTo(buf); err != nil {
		t.Fatal(err)
	}
	// the encoded magic id differs from testHeader's MagicID, so patch
	// it to the id registered above
	proto.EncByteOrder.PutUint16(buf[7:9], magic)

	d := proto.NewEmptyMessage(nil)
	if _, err := d.DecodeFrom(buf); err != nil {
		t.Fatal(err)
	}
	hdr, err := d.GetHeader(1)
	if err != nil {
		t.Fatal(err)
	}
	if hdr.(*testHeader).value != 77 {
		t.Errorf("got value %d", hdr.(*testHeader).value)
	}
}

func TestMustRegisterPanicsOnDup(t *testing.T) {
	const magic uint16 = 0x02AA
	MustRegister(magic, func() proto.Streamable { return &testHeader{} })
	defer func() {
		if recover() == nil {
			t.Error("expected a panic on duplicate registration")
		}
	}()
	MustRegister(magic, func() proto.Streamable { return &testHeader{} })
}
