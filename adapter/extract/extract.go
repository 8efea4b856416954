package extract

import (
	"net/http"
	"net/url"

	"github.com/samber/lo"

	C "github.com/portside/httpmeta/constant"
	"github.com/portside/httpmeta/resource"
)

// Default determines listen, connection and request properties for socket
// backed transports, sourcing listeners and streams from a shared resource
// table. Every method is pure apart from the two take operations and may be
// called concurrently without coordination.
type Default struct{}

var _ C.PropertyExtractor = Default{}

func (Default) TakeListener(t *resource.Table, id resource.ID) (*C.StreamListener, error) {
	return resource.Take[*C.StreamListener](t, id)
}

func (Default) TakeStream(t *resource.Table, id resource.ID) (*C.Stream, error) {
	return resource.Take[*C.Stream](t, id)
}

func (Default) ListenProperties(kind C.TransportKind, local C.SocketAddress) C.ListenProperties {
	return C.ListenProperties{
		Kind:         kind,
		Scheme:       reqScheme(kind),
		FallbackHost: fallbackHost(kind, local),
		LocalPort:    local.Port(),
	}
}

func (Default) ConnectionProperties(lp C.ListenProperties, peer C.SocketAddress) C.ConnectionProperties {
	return C.ConnectionProperties{
		Kind:      lp.Kind,
		PeerHost:  peerHost(peer),
		PeerPort:  peer.Port(),
		LocalPort: lp.LocalPort,
	}
}

func (Default) RequestProperties(cp C.ConnectionProperties, u *url.URL, header http.Header) C.RequestProperties {
	host, ok := reqHost(u, header, cp.Kind)
	if !ok {
		return C.RequestProperties{}
	}
	return C.RequestProperties{Authority: lo.ToPtr(host)}
}

// reqScheme maps the transport kind to the scheme used when synthesizing
// absolute URLs for its requests.
func reqScheme(kind C.TransportKind) string {
	switch kind {
	case C.Encrypted:
		return "https"
	case C.PathBased:
		return "http+unix"
	default:
		return "http"
	}
}

// peerHost stringifies the bare peer address. Unlike the listener's
// fallback host, a loopback or unspecified peer is never rewritten to
// localhost.
func peerHost(peer C.SocketAddress) string {
	if ap, ok := peer.IP(); ok {
		return ap.Addr().String()
	}
	return "unix"
}
