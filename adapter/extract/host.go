package extract

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	C "github.com/portside/httpmeta/constant"
)

// reqHost determines the authority a request logically targets. It is rare
// that a request line carries an explicit authority, but when it does it
// takes priority over the Host header. ok is false when no authority can be
// determined; the caller must then substitute the listener's fallback host.
func reqHost(u *url.URL, header http.Header, kind C.TransportKind) (string, bool) {
	// The socket path is the only meaningful target for path based
	// transports, any host in the request is ignored.
	if kind == C.PathBased {
		return "", false
	}

	if u != nil && u.Host != "" {
		if port := u.Port(); port == "" || port == strconv.Itoa(int(kind.DefaultPort())) {
			return bareHost(u.Hostname()), true
		}
		return u.Host, true
	}

	if values := header.Values("Host"); len(values) > 0 {
		return lossyString(values[0]), true
	}

	return "", false
}

// bareHost re-brackets an IPv6 hostname so the result stays a valid
// standalone authority.
func bareHost(hostname string) string {
	if strings.Contains(hostname, ":") {
		return "[" + hostname + "]"
	}
	return hostname
}

// lossyString passes valid UTF-8 through untouched. A header value holding
// raw non UTF-8 bytes is mapped one code point per byte so that nothing is
// dropped and the length in code points equals the byte count.
func lossyString(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	rs := make([]rune, 0, len(s))
	for i := 0; i < len(s); i++ {
		rs = append(rs, rune(s[i]))
	}
	return string(rs)
}
