package constant

import (
	"encoding/json"
	"fmt"
	"net"
	"net/netip"

	"github.com/samber/lo"
)

type addressKind uint8

const (
	addrInvalid addressKind = iota
	addrIP
	addrPath
)

// SocketAddress is a discriminated socket address: an IP address with a
// port, or a filesystem path for path based transports. Immutable once
// observed. The zero value is invalid.
type SocketAddress struct {
	ip   netip.AddrPort
	path string
	kind addressKind
}

// IPAddress returns the IP variant of SocketAddress.
func IPAddress(ap netip.AddrPort) SocketAddress {
	return SocketAddress{ip: ap, kind: addrIP}
}

// PathAddress returns the filesystem path variant of SocketAddress. Only
// meaningful for PathBased transport.
func PathAddress(path string) SocketAddress {
	return SocketAddress{path: path, kind: addrPath}
}

// FromNetAddr derives a SocketAddress from a stdlib net.Addr.
func FromNetAddr(addr net.Addr) (SocketAddress, error) {
	switch a := addr.(type) {
	case *net.TCPAddr:
		ip, _ := netip.AddrFromSlice(a.IP)
		return IPAddress(netip.AddrPortFrom(ip.Unmap(), uint16(a.Port))), nil
	case *net.UnixAddr:
		return PathAddress(a.Name), nil
	default:
		return SocketAddress{}, fmt.Errorf("unknown address type %T", addr)
	}
}

func (a SocketAddress) IsValid() bool {
	return a.kind != addrInvalid
}

// IP reports the IP variant, ok is false for the path variant.
func (a SocketAddress) IP() (netip.AddrPort, bool) {
	return a.ip, a.kind == addrIP
}

// Path reports the filesystem path variant, ok is false for the IP variant.
func (a SocketAddress) Path() (string, bool) {
	return a.path, a.kind == addrPath
}

// Port returns the port of the IP variant, nil for the path variant.
func (a SocketAddress) Port() *uint16 {
	if a.kind != addrIP {
		return nil
	}
	return lo.ToPtr(a.ip.Port())
}

func (a SocketAddress) String() string {
	switch a.kind {
	case addrIP:
		return a.ip.String()
	case addrPath:
		return a.path
	default:
		return "<nil>"
	}
}

func (a SocketAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}
