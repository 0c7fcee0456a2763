package descriptor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"mercator-hq/stc/pkg/cache"
	"mercator-hq/stc/pkg/config"
	stcErrors "mercator-hq/stc/pkg/stc/errors"
	"mercator-hq/stc/pkg/telemetry/metrics"
)

// Manager keeps the registry in sync with the descriptor directory. Parsed
// descriptor trees are seeded into the tree cache under the descriptor id so a
// changed file drops exactly its own entries.
type Manager struct {
	config   config.DescriptorsConfig
	loader   *Loader
	registry *Registry
	cache    *cache.Cache
	metrics  *metrics.Collector
	logger   *slog.Logger

	reloadMu sync.Mutex

	mu          sync.RWMutex
	lastErr     error
	subscribers []func(ReloadEvent)

	watchMu     sync.Mutex
	watcher     *FileWatcher
	watchCancel context.CancelFunc
	watchDone   chan struct{}
}

// NewManager creates a descriptor manager. cache and collector may be nil.
func NewManager(cfg config.DescriptorsConfig, loader *Loader, c *cache.Cache, collector *metrics.Collector, logger *slog.Logger) *Manager {
	if loader == nil {
		loader = NewLoader(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		config:   cfg,
		loader:   loader,
		registry: NewRegistry(),
		cache:    c,
		metrics:  collector,
		logger:   logger.With("component", "descriptors"),
	}
}

// Enabled reports whether a descriptor directory is configured.
func (m *Manager) Enabled() bool {
	return m.config.Dir != ""
}

// Subscribe registers fn to be called after every reload.
func (m *Manager) Subscribe(fn func(ReloadEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// Reload reads the directory again and swaps the result into the registry.
// A file that fails to load keeps its previously loaded version, if any.
// The event's Err is set when any file failed.
func (m *Manager) Reload() ReloadEvent {
	m.reloadMu.Lock()
	defer m.reloadMu.Unlock()

	event := ReloadEvent{Time: time.Now()}
	if !m.Enabled() {
		return event
	}

	loaded, err := m.loader.LoadDirectory(m.config.Dir)
	var errList *ErrorList
	if err != nil && !errors.As(err, &errList) {
		// Nothing could be read; keep serving the previous set.
		m.metrics.RecordDescriptorFailure("load")
		m.metrics.RecordDescriptorReload(false, m.registry.Count())
		m.logger.Error("descriptor reload failed", "dir", m.config.Dir, "error", err)
		event.Err = err
		event.Loaded = m.registry.Count()
		m.finish(event)
		return event
	}

	if errList != nil {
		loaded = m.keepPrevious(loaded, errList)
	}

	diff := m.registry.Replace(loaded)
	if m.cache != nil {
		for _, id := range append(append([]string{}, diff.Changed...), diff.Removed...) {
			m.cache.InvalidateOwner(id)
		}
		for _, id := range append(append([]string{}, diff.Added...), diff.Changed...) {
			if d, ok := m.registry.Get(id); ok {
				m.cache.Add(cache.Fingerprint(d.Format, d.Source), d.ID, d.Trees)
			}
		}
	}

	event.Added = diff.Added
	event.Changed = diff.Changed
	event.Removed = diff.Removed
	event.Loaded = m.registry.Count()

	if errList != nil {
		event.Err = errList
		m.metrics.RecordDescriptorReload(false, event.Loaded)
		m.logger.Warn("descriptor reload completed with errors",
			"loaded", event.Loaded,
			"errors", len(errList.Errors),
			"error", errList,
		)
	} else {
		m.metrics.RecordDescriptorReload(true, event.Loaded)
		if !diff.Empty() {
			m.logger.Info("descriptors reloaded",
				"loaded", event.Loaded,
				"added", len(diff.Added),
				"changed", len(diff.Changed),
				"removed", len(diff.Removed),
				"version", m.registry.Version(),
			)
		}
	}

	m.finish(event)
	return event
}

// keepPrevious records each failure and substitutes the last good version of
// a failing descriptor.
func (m *Manager) keepPrevious(loaded []*Descriptor, errList *ErrorList) []*Descriptor {
	present := make(map[string]bool, len(loaded))
	for _, d := range loaded {
		present[d.ID] = true
	}
	for _, err := range errList.Errors {
		m.metrics.RecordDescriptorFailure(failureKind(err))

		id := failedID(err)
		if id == "" || present[id] {
			continue
		}
		if prev, ok := m.registry.Get(id); ok {
			m.logger.Warn("keeping previous descriptor", "id", id, "error", err)
			loaded = append(loaded, prev)
			present[id] = true
		}
	}
	return loaded
}

func (m *Manager) finish(event ReloadEvent) {
	m.mu.Lock()
	m.lastErr = event.Err
	subs := append([]func(ReloadEvent){}, m.subscribers...)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}

// Start performs the initial load and, when watching is configured, starts
// reloading on file changes until ctx ends or Stop is called. The initial
// load fails only when the directory cannot be read at all.
func (m *Manager) Start(ctx context.Context) error {
	if !m.Enabled() {
		return nil
	}

	event := m.Reload()
	var errList *ErrorList
	if event.Err != nil && !errors.As(event.Err, &errList) {
		return fmt.Errorf("failed to load descriptors: %w", event.Err)
	}
	if !m.config.Watch {
		return nil
	}

	m.watchMu.Lock()
	defer m.watchMu.Unlock()
	if m.watcher != nil {
		return fmt.Errorf("descriptor watch already started")
	}

	watcher, err := NewFileWatcher(m.config.Dir, m.config.Debounce, m.logger)
	if err != nil {
		return err
	}
	watchCtx, cancel := context.WithCancel(ctx)
	m.watcher = watcher
	m.watchCancel = cancel
	m.watchDone = make(chan struct{})

	go func() {
		defer close(m.watchDone)
		if err := watcher.Watch(watchCtx, func() { m.Reload() }); err != nil {
			m.logger.Error("descriptor watcher stopped", "error", err)
		}
	}()
	return nil
}

// Stop ends watching. It is safe to call when no watch is running.
func (m *Manager) Stop() error {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if m.watcher == nil {
		return nil
	}
	m.watchCancel()
	<-m.watchDone
	err := m.watcher.Stop()
	m.watcher = nil
	return err
}

// Get returns the descriptor with the given id.
func (m *Manager) Get(id string) (*Descriptor, error) {
	d, ok := m.registry.Get(id)
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return d, nil
}

// List returns all descriptors sorted by id.
func (m *Manager) List() []*Descriptor {
	return m.registry.List()
}

// Registry exposes the underlying registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// LastError returns the error of the most recent reload.
func (m *Manager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// Check is a readiness check: it fails until a first load has happened and
// while the directory is unreadable.
func (m *Manager) Check(ctx context.Context) error {
	if !m.Enabled() {
		return nil
	}
	if m.registry.LoadTime().IsZero() {
		return fmt.Errorf("descriptors not loaded from %q", m.config.Dir)
	}
	var errList *ErrorList
	if err := m.LastError(); err != nil && !errors.As(err, &errList) {
		return err
	}
	return nil
}

func failureKind(err error) string {
	var pe *ParseError
	if !errors.As(err, &pe) {
		return "load"
	}
	if strings.HasSuffix(pe.FilePath, ExtMetadata) {
		return "metadata"
	}
	return string(stcErrors.KindOf(pe.Cause))
}

func failedID(err error) string {
	var path string
	var pe *ParseError
	var le *LoadError
	switch {
	case errors.As(err, &pe):
		path = pe.FilePath
	case errors.As(err, &le):
		if strings.Contains(le.Message, "already defined") {
			return ""
		}
		path = le.FilePath
	default:
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
