package constant

import (
	"encoding/json"
	"net"
	"net/netip"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestFromNetAddrTCP(t *testing.T) {
	sa, err := FromNetAddr(&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080})
	assert.Nil(t, err)

	ap, ok := sa.IP()
	assert.True(t, ok)
	assert.Equal(t, netip.MustParseAddrPort("127.0.0.1:8080"), ap)
	assert.Equal(t, lo.ToPtr(uint16(8080)), sa.Port())

	_, ok = sa.Path()
	assert.False(t, ok)
}

func TestFromNetAddrUnix(t *testing.T) {
	sa, err := FromNetAddr(&net.UnixAddr{Name: "/tmp/sock", Net: "unix"})
	assert.Nil(t, err)

	path, ok := sa.Path()
	assert.True(t, ok)
	assert.Equal(t, "/tmp/sock", path)
	assert.Nil(t, sa.Port())

	_, ok = sa.IP()
	assert.False(t, ok)
}

func TestFromNetAddrUnknown(t *testing.T) {
	_, err := FromNetAddr(&net.UDPAddr{})
	assert.NotNil(t, err)
}

func TestSocketAddressString(t *testing.T) {
	assert.Equal(t, "127.0.0.1:80", IPAddress(netip.MustParseAddrPort("127.0.0.1:80")).String())
	assert.Equal(t, "/tmp/sock", PathAddress("/tmp/sock").String())
	assert.Equal(t, "<nil>", SocketAddress{}.String())
	assert.False(t, SocketAddress{}.IsValid())
}

func TestSocketAddressJSON(t *testing.T) {
	buf, err := json.Marshal(PathAddress("/tmp/sock"))
	assert.Nil(t, err)
	assert.Equal(t, `"/tmp/sock"`, string(buf))
}

func TestTransportKind(t *testing.T) {
	assert.Equal(t, uint16(80), Plain.DefaultPort())
	assert.Equal(t, uint16(443), Encrypted.DefaultPort())
	assert.Equal(t, uint16(0), PathBased.DefaultPort())

	assert.Equal(t, Encrypted, TransportKindMapping["encrypted"])

	buf, err := json.Marshal(PathBased)
	assert.Nil(t, err)
	assert.Equal(t, `"path"`, string(buf))
}
