package addr

import (
	"fmt"
	"net"
)

// IPAddr is a physical transport address, IP plus port. IPv4 addresses
// are kept in 4-byte form so the wire encoding stays minimal.
type IPAddr struct {
	ip   net.IP
	port uint16
}

func NewIPAddr(ip net.IP, port uint16) *IPAddr {
	if v4 := ip.To4(); v4 != nil {
		ip = v4
	}
	return &IPAddr{ip: ip, port: port}
}

func (a *IPAddr) IP() net.IP {
	return a.ip
}

func (a *IPAddr) Port() uint16 {
	return a.port
}

func (a *IPAddr) Type() AddrType {
	return AddrTypeIP
}

func (a *IPAddr) SerializedSize() int {
	return 1 + len(a.ip) + 2
}

func (a *IPAddr) EncodeTo(buf []byte) (int, error) {
	szIP := len(a.ip)
	if szIP != net.IPv4len && szIP != net.IPv6len {
		return 0, ErrInvalidAddress
	}
	if len(buf) < a.SerializedSize() {
		return 0, ErrBufferTooShort
	}
	buf[0] = byte(szIP)
	copy(buf[1:], a.ip)
	off := 1 + szIP
	buf[off] = byte(a.port >> 8)
	buf[off+1] = byte(a.port)
	return off + 2, nil
}

func (a *IPAddr) DecodeFrom(buf []byte) (int, error) {
	if len(buf) < 1 {
		return 0, ErrBufferTooShort
	}
	szIP := int(buf[0])
	if szIP != net.IPv4len && szIP != net.IPv6len {
		return 0, ErrInvalidAddress
	}
	if len(buf) < 1+szIP+2 {
		return 0, ErrBufferTooShort
	}
	ip := make(net.IP, szIP)
	copy(ip, buf[1:1+szIP])
	off := 1 + szIP
	a.ip = ip
	a.port = uint16(buf[off])<<8 | uint16(buf[off+1])
	return off + 2, nil
}

func (a *IPAddr) Equal(other Address) bool {
	o, ok := other.(*IPAddr)
	if !ok {
		return false
	}
	return a.port == o.port && a.ip.Equal(o.ip)
}

func (a *IPAddr) String() string {
	return fmt.Sprintf("%s:%d", a.ip, a.port)
}
