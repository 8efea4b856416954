package httpd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"

	C "github.com/portside/httpmeta/constant"
	"github.com/portside/httpmeta/context"
	"github.com/portside/httpmeta/log"
	"github.com/portside/httpmeta/stats"
)

// RequestContext is the answer the demo responder gives: the metadata any
// downstream consumer would use to synthesize absolute URLs or build audit
// records for the request.
type RequestContext struct {
	Scheme    string `json:"scheme"`
	Authority string `json:"authority"`
	Fallback  bool   `json:"fallback"`
	URL       string `json:"url"`
	PeerHost  string `json:"peerHost"`
}

func (s *Server) handleConn(conn net.Conn) {
	id := s.table.Put(&C.Stream{Conn: conn, Kind: s.props.Kind})
	stream, err := s.ex.TakeStream(s.table, id)
	if err != nil {
		log.Warnln("[HTTP] acquire stream %d error: %s", id, err.Error())
		_ = conn.Close()
		return
	}

	peer, err := stream.PeerAddress()
	if err != nil {
		log.Warnln("[HTTP] resolve peer address error: %s", err.Error())
		_ = stream.Conn.Close()
		return
	}

	// Connection scoped work happens exactly once, every request on this
	// connection shares the record.
	props := s.ex.ConnectionProperties(s.props, peer)
	ctx := context.NewConnContext(id, stream.Conn, props)
	tracker := stats.DefaultManager.Join(ctx)
	defer tracker.Leave()

	br := bufio.NewReader(ctx.Conn())

	keepAlive := true
	for keepAlive {
		request, err := http.ReadRequest(br)
		if err != nil {
			break
		}

		keepAlive = request.ProtoAtLeast(1, 1) && !request.Close

		// ReadRequest moves the Host header into Request.Host, put it back
		// so the resolver sees the full chain.
		if request.Host != "" && request.URL.Host == "" {
			request.Header.Set("Host", request.Host)
		}

		rp := s.ex.RequestProperties(props, request.URL, request.Header)
		authority := rp.AuthorityOr(s.props.FallbackHost)
		tracker.Track(authority)

		log.Debugln("[HTTP] %s %s resolved authority %s", request.Method, request.URL.RequestURI(), authority)

		resp := responseWith(request, http.StatusOK)
		body, _ := json.Marshal(RequestContext{
			Scheme:    s.props.Scheme,
			Authority: authority,
			Fallback:  rp.Authority == nil,
			URL:       s.props.Scheme + "://" + authority + request.URL.RequestURI(),
			PeerHost:  props.PeerHost,
		})
		resp.Header.Set("Content-Type", "application/json")
		resp.Body = io.NopCloser(bytes.NewReader(body))
		resp.ContentLength = int64(len(body))

		if keepAlive {
			resp.Header.Set("Connection", "keep-alive")
		}
		resp.Close = !keepAlive

		if err = resp.Write(ctx.Conn()); err != nil {
			break
		}

		_, _ = io.Copy(io.Discard, request.Body)
		_ = request.Body.Close()
	}

	_ = ctx.Conn().Close()
}

func responseWith(request *http.Request, statusCode int) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Proto:      request.Proto,
		ProtoMajor: request.ProtoMajor,
		ProtoMinor: request.ProtoMinor,
		Header:     http.Header{},
	}
}
