package route

import (
	"net/http"
	"net/netip"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/portside/httpmeta/adapter/extract"
	C "github.com/portside/httpmeta/constant"
)

func resolveRouter() http.Handler {
	r := chi.NewRouter()
	r.Post("/", postResolve)
	return r
}

type resolveRequest struct {
	Transport string `json:"transport"`
	Address   string `json:"address"`
	URI       string `json:"uri"`
	Host      string `json:"host"`
}

// postResolve runs the canonicalizer and host resolver on caller supplied
// inputs, a dry run of what a listener would compute.
func postResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrBadRequest)
		return
	}

	kind, ok := C.TransportKindMapping[req.Transport]
	if !ok {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, newError("unknown transport: "+req.Transport))
		return
	}

	var local C.SocketAddress
	if kind == C.PathBased {
		local = C.PathAddress(req.Address)
	} else {
		ap, err := netip.ParseAddrPort(req.Address)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, newError("invalid address: "+req.Address))
			return
		}
		local = C.IPAddress(ap)
	}

	u, err := url.Parse(req.URI)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, newError("invalid uri: "+req.URI))
		return
	}

	header := http.Header{}
	if req.Host != "" {
		header.Set("Host", req.Host)
	}

	ex := extract.Default{}
	lp := ex.ListenProperties(kind, local)
	rp := ex.RequestProperties(C.ConnectionProperties{Kind: kind, LocalPort: lp.LocalPort}, u, header)

	render.JSON(w, r, render.M{
		"scheme":       lp.Scheme,
		"fallbackHost": lp.FallbackHost,
		"localPort":    lp.LocalPort,
		"authority":    rp.AuthorityOr(lp.FallbackHost),
		"fromRequest":  rp.Authority != nil,
	})
}
