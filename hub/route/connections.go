package route

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/portside/httpmeta/stats"
)

func connectionRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", getConnections)
	return r
}

func getConnections(w http.ResponseWriter, r *http.Request) {
	snapshot := stats.DefaultManager.Snapshot()
	render.JSON(w, r, render.M{
		"count":       len(snapshot),
		"connections": snapshot,
	})
}
