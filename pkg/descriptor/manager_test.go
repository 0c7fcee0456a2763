package descriptor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"mercator-hq/stc/pkg/cache"
	"mercator-hq/stc/pkg/config"
	"mercator-hq/stc/pkg/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestManager(t *testing.T, dir string, watch bool) (*Manager, *cache.Cache, *prometheus.Registry) {
	t.Helper()
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true, Namespace: "t"}, registry)
	c := cache.New(cache.Config{Enabled: true, MaxEntries: 16}, collector)
	m := NewManager(config.DescriptorsConfig{
		Dir:      dir,
		Watch:    watch,
		Debounce: 20 * time.Millisecond,
	}, nil, c, collector, nil)
	t.Cleanup(func() { _ = m.Stop() })
	return m, c, registry
}

func TestManager_Disabled(t *testing.T) {
	m := NewManager(config.DescriptorsConfig{}, nil, nil, nil, nil)
	if m.Enabled() {
		t.Error("Enabled() = true without a directory")
	}
	if err := m.Start(context.Background()); err != nil {
		t.Errorf("Start() error = %v", err)
	}
	if err := m.Check(context.Background()); err != nil {
		t.Errorf("Check() error = %v", err)
	}
	if len(m.List()) != 0 {
		t.Error("List() is not empty")
	}
}

func TestManager_StartSeedsCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "m81.stcs", "Circle ICRS 148.9 69.1 0.5")

	m, c, _ := newTestManager(t, dir, false)
	if err := m.Check(context.Background()); err == nil {
		t.Error("Check() before Start = nil, want error")
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := m.Check(context.Background()); err != nil {
		t.Errorf("Check() error = %v", err)
	}

	d, err := m.Get("m81")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, ok := c.Get(cache.Fingerprint(cache.FormatSTCS, d.Source)); !ok {
		t.Error("descriptor trees were not seeded into the cache")
	}

	var nf *NotFoundError
	if _, err := m.Get("missing"); !errors.As(err, &nf) {
		t.Errorf("Get(missing) error = %v, want *NotFoundError", err)
	}
}

func TestManager_ReloadDiff(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.stcs", "Position ICRS 1 2")
	writeFile(t, dir, "b.stcs", "Position ICRS 3 4")

	m, c, registry := newTestManager(t, dir, false)
	if err := m.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	oldKey := cache.Fingerprint(cache.FormatSTCS, "Position ICRS 1 2")

	writeFile(t, dir, "a.stcs", "Position ICRS 5 6")
	if err := os.Remove(filepath.Join(dir, "b.stcs")); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "c.stcs", "Position GALACTIC 7 8")

	var events []ReloadEvent
	m.Subscribe(func(e ReloadEvent) { events = append(events, e) })

	event := m.Reload()
	if event.Err != nil {
		t.Fatalf("Reload() error = %v", event.Err)
	}
	if strings.Join(event.Added, ",") != "c" || strings.Join(event.Changed, ",") != "a" || strings.Join(event.Removed, ",") != "b" {
		t.Errorf("event = %+v", event)
	}
	if event.Loaded != 2 {
		t.Errorf("Loaded = %d, want 2", event.Loaded)
	}
	if len(events) != 1 {
		t.Errorf("subscriber called %d times, want 1", len(events))
	}
	if _, ok := c.Get(oldKey); ok {
		t.Error("cache still holds the previous version of a")
	}
	if _, ok := c.Get(cache.Fingerprint(cache.FormatSTCS, "Position ICRS 5 6")); !ok {
		t.Error("cache does not hold the new version of a")
	}

	expected := `
# HELP t_descriptors_loaded Number of resource descriptors currently loaded
# TYPE t_descriptors_loaded gauge
t_descriptors_loaded 2
`
	if err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "t_descriptors_loaded"); err != nil {
		t.Error(err)
	}
}

func TestManager_KeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.stcs", "Position ICRS 1 2")

	m, _, registry := newTestManager(t, dir, false)
	if err := m.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	writeFile(t, dir, "a.stcs", "Position ICRS 1")
	writeFile(t, dir, "new.stcs", "Circle ICRS 1 2")

	event := m.Reload()
	var errList *ErrorList
	if !errors.As(event.Err, &errList) {
		t.Fatalf("Reload() error = %v, want *ErrorList", event.Err)
	}
	d, err := m.Get("a")
	if err != nil {
		t.Fatalf("Get(a) error = %v", err)
	}
	if d.Source != "Position ICRS 1 2" {
		t.Errorf("Source = %q, want the previous version", d.Source)
	}
	if _, err := m.Get("new"); err == nil {
		t.Error("Get(new) found a descriptor that never loaded")
	}
	if err := m.Check(context.Background()); err != nil {
		t.Errorf("Check() with partial errors = %v, want nil", err)
	}

	expected := `
# HELP t_descriptor_failures_total Total number of descriptor files rejected by error kind
# TYPE t_descriptor_failures_total counter
t_descriptor_failures_total{kind="parse"} 2
`
	if err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "t_descriptor_failures_total"); err != nil {
		t.Error(err)
	}
}

func TestManager_MissingDirectory(t *testing.T) {
	m, _, _ := newTestManager(t, filepath.Join(t.TempDir(), "missing"), false)
	if err := m.Start(context.Background()); err == nil {
		t.Fatal("Start() error = nil, want error")
	}
	if err := m.Check(context.Background()); err == nil {
		t.Error("Check() error = nil, want error")
	}
}

func TestManager_Watch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.stcs", "Position ICRS 1 2")

	m, _, _ := newTestManager(t, dir, true)

	var (
		mu     sync.Mutex
		events []ReloadEvent
	)
	m.Subscribe(func(e ReloadEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	})

	if err := m.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	writeFile(t, dir, "b.stcs", "Position ICRS 3 4")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := m.Get("b"); err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if _, err := m.Get("b"); err != nil {
		t.Fatalf("watch did not pick up b.stcs: %v", err)
	}

	if err := m.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(events) < 2 {
		t.Errorf("got %d reload events, want at least 2", len(events))
	}
}
