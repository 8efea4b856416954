package constant

import (
	"encoding/json"
	"net"
	"strings"
)

// TransportKindMapping is a mapping for TransportKind enum
var TransportKindMapping = map[string]TransportKind{
	strings.ToLower(Plain.String()):     Plain,
	strings.ToLower(Encrypted.String()): Encrypted,
	strings.ToLower(PathBased.String()): PathBased,
}

const (
	Plain TransportKind = iota
	Encrypted
	PathBased
)

// TransportKind classifies the medium a connection was accepted on.
// It drives every scheme and default port decision downstream.
type TransportKind int

func (k TransportKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Encrypted:
		return "encrypted"
	case PathBased:
		return "path"
	default:
		return "unknown"
	}
}

// DefaultPort returns the conventional port for the transport, zero for
// path based transports which have no notion of ports.
func (k TransportKind) DefaultPort() uint16 {
	switch k {
	case Plain:
		return 80
	case Encrypted:
		return 443
	default:
		return 0
	}
}

func (k TransportKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Stream is an accepted connection tagged with the transport kind of the
// listener that produced it. It is the resource kind a serve loop stores
// in the shared resource table between accept and acquisition.
type Stream struct {
	Conn net.Conn
	Kind TransportKind
}

// PeerAddress returns the remote end of the stream as a SocketAddress.
func (s *Stream) PeerAddress() (SocketAddress, error) {
	return FromNetAddr(s.Conn.RemoteAddr())
}

// StreamListener is a bound listener tagged with its transport kind.
type StreamListener struct {
	Listener net.Listener
	Kind     TransportKind
}

// LocalAddress returns the bound address of the listener as a SocketAddress.
func (l *StreamListener) LocalAddress() (SocketAddress, error) {
	return FromNetAddr(l.Listener.Addr())
}
