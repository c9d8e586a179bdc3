package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/rfs/internal/app/features/health"
	"github.com/dalemusser/rfs/internal/app/system/database"
	"github.com/dalemusser/rfs/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Message  string `json:"message"`
	Error    string `json:"error"`
}

func serve(t *testing.T, h *health.Handler) (*httptest.ResponseRecorder, response) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}
	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return rec, resp
}

func TestServe_OK(t *testing.T) {
	rec, resp := serve(t, health.NewHandler(fakePinger{}, zap.NewNop()))
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if resp.Status != "ok" || resp.Database != "connected" {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestServe_DatabaseDown(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	rec, resp := serve(t, health.NewHandler(fakePinger{err: errors.New("no reachable servers")}, zap.New(core)))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	if resp.Status != "error" || resp.Database != "disconnected" || resp.Error != "no reachable servers" {
		t.Errorf("unexpected body: %+v", resp)
	}
	if logs.Len() != 1 {
		t.Errorf("expected one error log, got %d", logs.Len())
	}
}

func TestServe_NoDatabase(t *testing.T) {
	rec, resp := serve(t, health.NewHandler(nil, nil))
	if rec.Code != http.StatusOK || resp.Database != "none" {
		t.Errorf("got %d %+v", rec.Code, resp)
	}
}

func TestServe_DatabaseConnected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := health.NewHandler(database.New(db.Client(), db.Name()), zap.NewNop())

	rec, resp := serve(t, h)
	if rec.Code != http.StatusOK || resp.Database != "connected" {
		t.Errorf("got %d %+v", rec.Code, resp)
	}
}
