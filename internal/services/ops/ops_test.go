package ops

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "rinkbot/internal/platform/errors"
	ledgerdom "rinkbot/internal/services/ledger/domain"
	pipedom "rinkbot/internal/services/pipeline/domain"
	pipesvc "rinkbot/internal/services/pipeline/service"
	watchdom "rinkbot/internal/services/watch/domain"
	watchsvc "rinkbot/internal/services/watch/service"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type noSource struct{}

func (noSource) Latest(context.Context) ([]watchdom.Comment, error) { return nil, nil }

type noRecorder struct{}

func (noRecorder) Admit(context.Context, string, string, string) (ledgerdom.Verdict, error) {
	return ledgerdom.Accept(), nil
}

func (noRecorder) Commit(context.Context, string, string, string) (ledgerdom.Verdict, error) {
	return ledgerdom.Accept(), nil
}

type noRunner struct{}

func (noRunner) Run(context.Context, pipedom.Candidate) pipedom.Outcome {
	return pipedom.OutcomeDelivered
}

func newMux(p pinger) (*chi.Mux, *watchsvc.Watcher) {
	w := watchsvc.New(noSource{}, noRecorder{}, noRunner{}, &pipesvc.Tracker{}, watchsvc.Config{})
	mux := chi.NewRouter()
	Mount(mux, p, w)
	return mux, w
}

func TestHealthzOK(t *testing.T) {
	mux, _ := newMux(pinger{})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestHealthzStoreDown(t *testing.T) {
	mux, _ := newMux(pinger{err: perr.Storef("redis gone")})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: %d", rec.Code)
	}
	var env struct {
		Code perr.ErrorCode `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Code != perr.ErrorCodeUnavailable {
		t.Fatalf("code: %v", env.Code)
	}
}

func TestVersionReportsBuild(t *testing.T) {
	mux, _ := newMux(pinger{})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	var env struct {
		Data struct {
			Service string `json:"service"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Service != "rinkbot" {
		t.Fatalf("service: %q", env.Data.Service)
	}
}

func TestStatusSnapshot(t *testing.T) {
	mux, w := newMux(pinger{})
	w.Stats().Cycles.Add(3)
	w.Stats().Delivered.Add(2)
	w.Stats().Dropped.Add(1)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	var env struct {
		Data Status `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Cycles != 3 || env.Data.Delivered != 2 || env.Data.Dropped != 1 {
		t.Fatalf("snapshot: %+v", env.Data)
	}
	if env.Data.QueueDepth != 0 || env.Data.InFlight != 0 {
		t.Fatalf("idle snapshot: %+v", env.Data)
	}
}
