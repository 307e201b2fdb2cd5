// Package ops mounts the operational endpoints: liveness against the
// backing store and a status snapshot of the watch loop
package ops

import (
	"context"
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"rinkbot/internal/core/version"
	perr "rinkbot/internal/platform/errors"
	phttp "rinkbot/internal/platform/net/http"
	"rinkbot/internal/services/watch/service"
)

// Status is the /status payload
type Status struct {
	QueueDepth int   `json:"queue_depth"`
	InFlight   int64 `json:"in_flight"`
	Cycles     int64 `json:"cycles"`
	Enqueued   int64 `json:"enqueued"`
	Delivered  int64 `json:"delivered"`
	Dropped    int64 `json:"dropped"`
}

// Pinger is the slice of the store the health check needs
type Pinger interface {
	Ping(ctx context.Context) error
}

// Mount attaches the ops routes to mux
func Mount(mux *chi.Mux, st Pinger, w *service.Watcher) {
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))

	mux.Get("/healthz", func(rw stdhttp.ResponseWriter, r *stdhttp.Request) {
		if err := st.Ping(r.Context()); err != nil {
			phttp.RespondError(rw, perr.Wrap(err, perr.ErrorCodeUnavailable, "store ping"))
			return
		}
		phttp.RespondOK(rw, map[string]string{"status": "ok"})
	})

	mux.Get("/version", func(rw stdhttp.ResponseWriter, _ *stdhttp.Request) {
		phttp.RespondOK(rw, version.Info())
	})

	mux.Get("/status", func(rw stdhttp.ResponseWriter, r *stdhttp.Request) {
		s := w.Stats()
		phttp.RespondOK(rw, Status{
			QueueDepth: w.QueueDepth(),
			InFlight:   w.InFlight(),
			Cycles:     s.Cycles.Load(),
			Enqueued:   s.Enqueued.Load(),
			Delivered:  s.Delivered.Load(),
			Dropped:    s.Dropped.Load(),
		})
	})
}
