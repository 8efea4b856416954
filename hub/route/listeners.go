package route

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/portside/httpmeta/listener"
)

func listenerRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", getListeners)
	return r
}

func getListeners(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, render.M{
		"listeners": listener.Snapshot(),
	})
}
