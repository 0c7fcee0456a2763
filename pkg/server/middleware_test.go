package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mercator-hq/stc/pkg/config"
	"mercator-hq/stc/pkg/telemetry/logging"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.GetRequestID(r.Context())
	}))

	t.Run("keeps client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "custom-request-id-12345")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		if seen != "custom-request-id-12345" || w.Header().Get(RequestIDHeader) != seen {
			t.Errorf("request id = %q, header %q", seen, w.Header().Get(RequestIDHeader))
		}
	})

	t.Run("generates unique ids", func(t *testing.T) {
		w1 := httptest.NewRecorder()
		h.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/", nil))
		w2 := httptest.NewRecorder()
		h.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/", nil))

		id1, id2 := w1.Header().Get(RequestIDHeader), w2.Header().Get(RequestIDHeader)
		if len(id1) != 36 || id1 == id2 {
			t.Errorf("ids = %q, %q", id1, id2)
		}
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	s := New(config.ServerConfig{}, nil, Options{})
	h := s.recoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if resp := decodeError(t, w); resp.Kind != "internal" {
		t.Errorf("kind = %q", resp.Kind)
	}
}

func TestStatusRecorder(t *testing.T) {
	w := httptest.NewRecorder()
	rw := newStatusRecorder(w)
	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK)
	if rw.statusCode != http.StatusTeapot || w.Code != http.StatusTeapot {
		t.Errorf("status = %d/%d, want 418", rw.statusCode, w.Code)
	}

	rw = newStatusRecorder(httptest.NewRecorder())
	_, _ = rw.Write([]byte("x"))
	if rw.statusCode != http.StatusOK {
		t.Errorf("implicit status = %d, want 200", rw.statusCode)
	}
}
