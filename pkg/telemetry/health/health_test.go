package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	if got := New(0).checkTimeout; got != 5*time.Second {
		t.Errorf("default timeout = %v, want 5s", got)
	}
	if got := New(time.Second).checkTimeout; got != time.Second {
		t.Errorf("timeout = %v, want 1s", got)
	}
}

func TestRegisterAndList(t *testing.T) {
	c := New(time.Second)
	c.RegisterCheck("frames", func(context.Context) error { return nil })
	c.RegisterOptionalCheck("journal", func(context.Context) error { return nil })
	c.RegisterCheck("descriptors", func(context.Context) error { return nil })

	got := c.ListChecks()
	want := []string{"descriptors", "frames", "journal"}
	if len(got) != len(want) {
		t.Fatalf("ListChecks() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListChecks()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	c.UnregisterCheck("frames")
	if len(c.ListChecks()) != 2 {
		t.Errorf("UnregisterCheck did not remove the check")
	}
}

func TestCheckReadiness(t *testing.T) {
	failing := func(context.Context) error { return errors.New("database is locked") }
	passing := func(context.Context) error { return nil }

	tests := []struct {
		name     string
		setup    func(*Checker)
		want     string
		wantCode int
	}{
		{"no checks", func(*Checker) {}, StatusReady, http.StatusOK},
		{"all passing", func(c *Checker) { c.RegisterCheck("descriptors", passing) }, StatusReady, http.StatusOK},
		{"optional failing", func(c *Checker) {
			c.RegisterCheck("descriptors", passing)
			c.RegisterOptionalCheck("journal", failing)
		}, StatusDegraded, http.StatusOK},
		{"critical failing", func(c *Checker) {
			c.RegisterCheck("descriptors", failing)
			c.RegisterOptionalCheck("journal", failing)
		}, StatusUnhealthy, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(time.Second)
			tt.setup(c)

			if got := c.CheckReadiness(context.Background()).Status; got != tt.want {
				t.Errorf("Status = %q, want %q", got, tt.want)
			}

			rec := httptest.NewRecorder()
			c.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestCheckReadiness_Timeout(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.RegisterCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		return nil
	})

	status := c.CheckReadiness(context.Background())
	result := status.Checks["slow"]
	if result.Status != StatusUnhealthy || result.Message != "health check timeout" {
		t.Errorf("result = %+v, want timeout", result)
	}
}

func TestRegister(t *testing.T) {
	c := New(time.Second)
	mux := http.NewServeMux()
	c.Register(mux, "/health", "/ready", NewVersionInfo("1.2.3", "abc", "today"))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("liveness code = %d", rec.Code)
	}
	var status HealthStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Status != StatusOK {
		t.Errorf("liveness status = %q", status.Status)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	var info VersionInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Version != "1.2.3" || info.GoVersion == "" {
		t.Errorf("version info = %+v", info)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/health", nil))
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD response has a body: %q", rec.Body.String())
	}
}
