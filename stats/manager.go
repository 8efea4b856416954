package stats

import (
	"sync"
	"time"

	"go.uber.org/atomic"

	C "github.com/portside/httpmeta/constant"
	"github.com/portside/httpmeta/context"
	"github.com/portside/httpmeta/resource"
)

var DefaultManager = &Manager{}

// Manager keeps a snapshot-able registry of live connections for the
// inspection API.
type Manager struct {
	connections sync.Map
}

// Tracker follows one connection from accept to close.
type Tracker struct {
	id        resource.ID
	start     time.Time
	props     C.ConnectionProperties
	requests  *atomic.Int64
	authority *atomic.String

	manager *Manager
}

// Snapshot is the wire form of one tracked connection.
type Snapshot struct {
	ID            resource.ID            `json:"id"`
	Start         time.Time              `json:"start"`
	Properties    C.ConnectionProperties `json:"properties"`
	Requests      int64                  `json:"requests"`
	LastAuthority string                 `json:"lastAuthority,omitempty"`
}

// Join registers a connection and returns its tracker.
func (m *Manager) Join(ctx *context.ConnContext) *Tracker {
	t := &Tracker{
		id:        ctx.ID(),
		start:     time.Now(),
		props:     ctx.Properties(),
		requests:  atomic.NewInt64(0),
		authority: atomic.NewString(""),
		manager:   m,
	}
	m.connections.Store(t.id, t)
	return t
}

// Track records one resolved request on the connection.
func (t *Tracker) Track(authority string) {
	t.requests.Inc()
	t.authority.Store(authority)
}

// Leave removes the connection from the registry.
func (t *Tracker) Leave() {
	t.manager.connections.Delete(t.id)
}

// Snapshot returns the live connections in no particular order.
func (m *Manager) Snapshot() []Snapshot {
	connections := []Snapshot{}
	m.connections.Range(func(_, value any) bool {
		t := value.(*Tracker)
		connections = append(connections, Snapshot{
			ID:            t.id,
			Start:         t.start,
			Properties:    t.props,
			Requests:      t.requests.Load(),
			LastAuthority: t.authority.Load(),
		})
		return true
	})
	return connections
}
