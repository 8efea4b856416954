package context

import (
	"net"

	C "github.com/portside/httpmeta/constant"
	"github.com/portside/httpmeta/resource"
)

// ConnContext ties an accepted connection to its once-computed properties.
// The properties are immutable after construction and may be read from any
// number of request handling goroutines without synchronization.
type ConnContext struct {
	id    resource.ID
	props C.ConnectionProperties
	conn  net.Conn
}

func NewConnContext(id resource.ID, conn net.Conn, props C.ConnectionProperties) *ConnContext {
	return &ConnContext{
		id:    id,
		props: props,
		conn:  conn,
	}
}

func (c *ConnContext) ID() resource.ID {
	return c.id
}

func (c *ConnContext) Properties() C.ConnectionProperties {
	return c.props
}

func (c *ConnContext) Conn() net.Conn {
	return c.conn
}
