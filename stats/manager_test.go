package stats

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	C "github.com/portside/httpmeta/constant"
	"github.com/portside/httpmeta/context"
)

func TestManagerLifecycle(t *testing.T) {
	m := &Manager{}

	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	ctx := context.NewConnContext(7, server, C.ConnectionProperties{Kind: C.Plain, PeerHost: "203.0.113.9"})
	tracker := m.Join(ctx)

	tracker.Track("example.com")
	tracker.Track("example.com:8080")

	snapshot := m.Snapshot()
	assert.Len(t, snapshot, 1)
	assert.Equal(t, int64(2), snapshot[0].Requests)
	assert.Equal(t, "example.com:8080", snapshot[0].LastAuthority)
	assert.Equal(t, "203.0.113.9", snapshot[0].Properties.PeerHost)

	tracker.Leave()
	assert.Len(t, m.Snapshot(), 0)
}
