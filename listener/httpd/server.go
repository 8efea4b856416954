package httpd

import (
	"crypto/tls"
	"fmt"
	"net"

	C "github.com/portside/httpmeta/constant"
	"github.com/portside/httpmeta/resource"
)

var _ C.Listener = (*Server)(nil)

// Server is the demo embedder: it accepts connections for one inbound,
// routes every accepted stream through the shared resource table and the
// property extractor, and answers each request with the resolved request
// context.
type Server struct {
	listener net.Listener
	addr     string
	props    C.ListenProperties
	table    *resource.Table
	ex       C.PropertyExtractor
	closed   bool
}

// RawAddress implements C.Listener
func (s *Server) RawAddress() string {
	return s.addr
}

// Address implements C.Listener
func (s *Server) Address() string {
	return s.listener.Addr().String()
}

// Close implements C.Listener
func (s *Server) Close() error {
	s.closed = true
	return s.listener.Close()
}

// Props returns the listener properties computed once at bind time.
func (s *Server) Props() C.ListenProperties {
	return s.props
}

func New(in C.Inbound, table *resource.Table, ex C.PropertyExtractor) (*Server, error) {
	kind := in.TransportKind()

	var (
		l   net.Listener
		err error
	)
	switch in.Type {
	case C.InboundTypeTLS:
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(in.Certificate, in.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("load certificate pair error: %w", err)
		}
		l, err = tls.Listen("tcp", in.BindAddress, &tls.Config{Certificates: []tls.Certificate{cert}})
	case C.InboundTypeUnix:
		l, err = net.Listen("unix", in.BindAddress)
	default:
		l, err = net.Listen("tcp", in.BindAddress)
	}
	if err != nil {
		return nil, err
	}

	// Register the bound listener and immediately acquire it back, the same
	// route an embedder with its own extractor would use.
	id := table.Put(&C.StreamListener{Listener: l, Kind: kind})
	sl, err := ex.TakeListener(table, id)
	if err != nil {
		_ = l.Close()
		return nil, err
	}

	local, err := sl.LocalAddress()
	if err != nil {
		_ = l.Close()
		return nil, err
	}

	hs := &Server{
		listener: sl.Listener,
		addr:     in.BindAddress,
		props:    ex.ListenProperties(kind, local),
		table:    table,
		ex:       ex,
	}
	go func() {
		for {
			conn, err := hs.listener.Accept()
			if err != nil {
				if hs.closed {
					break
				}
				continue
			}
			go hs.handleConn(conn)
		}
	}()

	return hs, nil
}
