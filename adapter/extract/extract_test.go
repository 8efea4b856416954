package extract

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	C "github.com/portside/httpmeta/constant"
	"github.com/portside/httpmeta/resource"
)

func TestListenProperties(t *testing.T) {
	ex := Default{}

	lp := ex.ListenProperties(C.Plain, addr("127.0.0.1:8080"))
	assert.Equal(t, C.ListenProperties{
		Kind:         C.Plain,
		Scheme:       "http",
		FallbackHost: "localhost:8080",
		LocalPort:    lo.ToPtr(uint16(8080)),
	}, lp)

	lp = ex.ListenProperties(C.PathBased, C.PathAddress("/tmp/sock"))
	assert.Equal(t, "http+unix", lp.Scheme)
	assert.Equal(t, "%2Ftmp%2Fsock", lp.FallbackHost)
	assert.Nil(t, lp.LocalPort)
}

func TestConnectionProperties(t *testing.T) {
	ex := Default{}
	lp := ex.ListenProperties(C.Encrypted, addr("0.0.0.0:8443"))

	cp := ex.ConnectionProperties(lp, addr("203.0.113.9:51000"))
	assert.Equal(t, C.Encrypted, cp.Kind)
	assert.Equal(t, "203.0.113.9", cp.PeerHost)
	assert.Equal(t, lo.ToPtr(uint16(51000)), cp.PeerPort)
	assert.Equal(t, lp.LocalPort, cp.LocalPort)
}

func TestConnectionPropertiesPeerNeverLocalhost(t *testing.T) {
	ex := Default{}
	lp := ex.ListenProperties(C.Plain, addr("127.0.0.1:80"))

	cp := ex.ConnectionProperties(lp, addr("127.0.0.1:51000"))
	assert.Equal(t, "127.0.0.1", cp.PeerHost)

	cp = ex.ConnectionProperties(lp, addr("0.0.0.0:51000"))
	assert.Equal(t, "0.0.0.0", cp.PeerHost)
}

func TestConnectionPropertiesUnixPeer(t *testing.T) {
	ex := Default{}
	lp := ex.ListenProperties(C.PathBased, C.PathAddress("/tmp/sock"))

	cp := ex.ConnectionProperties(lp, C.PathAddress(""))
	assert.Equal(t, "unix", cp.PeerHost)
	assert.Nil(t, cp.PeerPort)
	assert.Nil(t, cp.LocalPort)
}

func TestRequestProperties(t *testing.T) {
	ex := Default{}
	cp := C.ConnectionProperties{Kind: C.Plain, PeerHost: "203.0.113.9"}

	u, _ := url.Parse("/index.html")
	header := http.Header{}
	header.Set("Host", "example.com:8080")

	rp := ex.RequestProperties(cp, u, header)
	assert.Equal(t, lo.ToPtr("example.com:8080"), rp.Authority)
	assert.Equal(t, "example.com:8080", rp.AuthorityOr("fallback"))

	rp = ex.RequestProperties(cp, u, http.Header{})
	assert.Nil(t, rp.Authority)
	assert.Equal(t, "fallback", rp.AuthorityOr("fallback"))
}

func TestBuildersIdempotent(t *testing.T) {
	ex := Default{}

	lp1 := ex.ListenProperties(C.Plain, addr("10.0.0.1:8080"))
	lp2 := ex.ListenProperties(C.Plain, addr("10.0.0.1:8080"))
	assert.Equal(t, lp1, lp2)

	cp1 := ex.ConnectionProperties(lp1, addr("203.0.113.9:51000"))
	cp2 := ex.ConnectionProperties(lp2, addr("203.0.113.9:51000"))
	assert.Equal(t, cp1, cp2)

	u, _ := url.Parse("http://example.com/")
	rp1 := ex.RequestProperties(cp1, u, http.Header{})
	rp2 := ex.RequestProperties(cp2, u, http.Header{})
	assert.Equal(t, rp1, rp2)
}

func TestTakeStream(t *testing.T) {
	ex := Default{}
	table := resource.NewTable()

	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	id := table.Put(&C.Stream{Conn: server, Kind: C.Plain})
	stream, err := ex.TakeStream(table, id)
	assert.Nil(t, err)
	assert.Equal(t, C.Plain, stream.Kind)

	_, err = ex.TakeStream(table, id)
	assert.True(t, errors.Is(err, resource.ErrNotFound))
}

func TestTakeListenerWrongKind(t *testing.T) {
	ex := Default{}
	table := resource.NewTable()

	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	id := table.Put(&C.Stream{Conn: server, Kind: C.Plain})
	_, err := ex.TakeListener(table, id)
	assert.True(t, errors.Is(err, resource.ErrNotFound))

	// the mismatched entry is still acquirable under its real kind
	_, err = ex.TakeStream(table, id)
	assert.Nil(t, err)
}
