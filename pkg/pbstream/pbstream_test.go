package pbstream

import (
	"testing"

	"google.golang.org/protobuf/types/known/wrapperspb"

	"gcomm/pkg/proto"
	"gcomm/pkg/typereg"
)

const kMagicStringValue uint16 = 0x0301

func init() {
	typereg.MustRegister(kMagicStringValue, func() proto.Streamable {
		return Wrap(kMagicStringValue, &wrapperspb.StringValue{})
	})
}

func TestWrapperRoundTrip(t *testing.T) {
	w := Wrap(kMagicStringValue, wrapperspb.String("hello protobuf"))
	buf := make([]byte, w.SerializedSize())
	n, err := w.EncodeTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != w.SerializedSize() {
		t.Fatalf("EncodeTo wrote %d bytes, SerializedSize is %d", n, w.SerializedSize())
	}

	d := Wrap(kMagicStringValue, &wrapperspb.StringValue{})
	if _, err = d.DecodeFrom(buf); err != nil {
		t.Fatal(err)
	}
	if got := d.Message().(*wrapperspb.StringValue).Value; got != "hello protobuf" {
		t.Errorf("got %q", got)
	}
}

func TestWrapperEncodeBufferTooShort(t *testing.T) {
	w := Wrap(kMagicStringValue, wrapperspb.String("does not fit"))
	buf := make([]byte, w.SerializedSize()-1)
	if _, err := w.EncodeTo(buf); err != proto.ErrBufferTooShort {
		t.Errorf("expected ErrBufferTooShort, got %v", err)
	}
}

// A wrapped protobuf message rides as an object payload through the
// whole envelope codec.
func TestWrapperAsObjectPayload(t *testing.T) {
	m, err := proto.NewObjectMessage(nil, Wrap(kMagicStringValue, wrapperspb.String("object payload")))
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, m.Size())
	if _, err = m.EncodeTo(buf); err != nil {
		t.Fatal(err)
	}

	d := proto.NewMessage(proto.PayloadObject)
	if _, err = d.DecodeFrom(buf); err != nil {
		t.Fatal(err)
	}
	obj, err := d.GetObject()
	if err != nil {
		t.Fatal(err)
	}
	got := obj.(*Wrapper).Message().(*wrapperspb.StringValue).Value
	if got != "object payload" {
		t.Errorf("got %q", got)
	}
}
