package extract

import (
	"strconv"
	"strings"

	C "github.com/portside/httpmeta/constant"
)

// fallbackHost derives, from the listener's bound address, the host string
// reported for requests that carry no authority of their own. An address
// bound to a loopback or unspecified interface is presented as localhost,
// and the transport's conventional port is elided.
func fallbackHost(kind C.TransportKind, addr C.SocketAddress) string {
	ap, ok := addr.IP()
	if !ok {
		// There is no standard URL form for unix domain sockets. nginx and
		// node use http://unix:[socket_path]: which is not a valid URL,
		// httpie uses http+unix://[percent_encoding_of_path]/ which we
		// follow.
		path, _ := addr.Path()
		return escapeNonAlphanumeric(path)
	}

	ip, port := ap.Addr(), ap.Port()
	if port == kind.DefaultPort() {
		if ip.IsLoopback() || ip.IsUnspecified() {
			return "localhost"
		}
		return ip.String()
	}
	if ip.IsLoopback() || ip.IsUnspecified() {
		return "localhost:" + strconv.FormatUint(uint64(port), 10)
	}
	return ap.String()
}

const hexUpper = "0123456789ABCDEF"

// escapeNonAlphanumeric percent encodes every byte outside [0-9A-Za-z],
// turning a socket path into a single opaque host token with no separator
// left in play.
func escapeNonAlphanumeric(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hexUpper[c>>4])
		sb.WriteByte(hexUpper[c&0x0f])
	}
	return sb.String()
}
