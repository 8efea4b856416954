package constant

import (
	"net/http"
	"net/url"

	"github.com/samber/lo"

	"github.com/portside/httpmeta/resource"
)

// ListenProperties is computed once per listener and shared by every
// connection accepted on it. FallbackHost is the server's best guess at an
// externally reachable host string, used when a request carries neither a
// URI authority nor a Host header.
type ListenProperties struct {
	Kind         TransportKind `json:"transport"`
	Scheme       string        `json:"scheme"`
	FallbackHost string        `json:"fallbackHost"`
	LocalPort    *uint16       `json:"localPort,omitempty"`
}

// ConnectionProperties is computed once per accepted connection and shared
// by every request on it. LocalPort always equals the listener's LocalPort;
// both ports are absent for PathBased transport.
type ConnectionProperties struct {
	Kind      TransportKind `json:"transport"`
	PeerHost  string        `json:"peerHost"`
	PeerPort  *uint16       `json:"peerPort,omitempty"`
	LocalPort *uint16       `json:"localPort,omitempty"`
}

// RequestProperties is computed once per request. A nil Authority means the
// request carried no determinable authority and the caller must substitute
// the listener's fallback host. When present the authority is a bare
// host[:port] or an opaque percent encoded path token, never a full URL.
type RequestProperties struct {
	Authority *string `json:"authority,omitempty"`
}

// AuthorityOr returns the resolved authority, substituting fallback when
// the request carried no determinable authority.
func (p RequestProperties) AuthorityOr(fallback string) string {
	return lo.FromPtrOr(p.Authority, fallback)
}

// PropertyExtractor determines listen, connection and request properties.
// Embedders may provide their own implementation to source listeners and
// streams from somewhere other than the shared resource table, without
// touching the host resolution itself.
type PropertyExtractor interface {
	// TakeListener removes the listener registered under id from the table
	// and returns it.
	TakeListener(t *resource.Table, id resource.ID) (*StreamListener, error)

	// TakeStream removes the stream registered under id from the table and
	// returns it.
	TakeStream(t *resource.Table, id resource.ID) (*Stream, error)

	// ListenProperties determines the listener properties.
	ListenProperties(kind TransportKind, local SocketAddress) ListenProperties

	// ConnectionProperties determines the connection properties.
	ConnectionProperties(lp ListenProperties, peer SocketAddress) ConnectionProperties

	// RequestProperties determines the request properties.
	RequestProperties(cp ConnectionProperties, u *url.URL, header http.Header) RequestProperties
}

type Listener interface {
	RawAddress() string
	Address() string
	Close() error
}
