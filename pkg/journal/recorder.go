package journal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mercator-hq/stc/pkg/telemetry/metrics"

	"github.com/google/uuid"
)

// RecorderConfig configures the asynchronous recorder.
type RecorderConfig struct {
	// Buffer is the size of the write queue. Records offered while the
	// queue is full are dropped.
	// Default: 1024
	Buffer int

	// WriteTimeout bounds a single storage write.
	// Default: 5s
	WriteTimeout time.Duration
}

// DefaultRecorderConfig returns the default recorder configuration.
func DefaultRecorderConfig() RecorderConfig {
	return RecorderConfig{
		Buffer:       1024,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder writes records to storage from a background worker so that verbs
// never wait on the database.
type Recorder struct {
	storage Storage
	config  RecorderConfig
	metrics *metrics.Collector
	logger  *slog.Logger

	records chan *Record
	done    chan struct{}
	wg      sync.WaitGroup

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewRecorder starts a recorder over storage. collector may be nil.
func NewRecorder(storage Storage, cfg RecorderConfig, collector *metrics.Collector, logger *slog.Logger) *Recorder {
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultRecorderConfig().Buffer
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultRecorderConfig().WriteTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Recorder{
		storage: storage,
		config:  cfg,
		metrics: collector,
		logger:  logger.With("component", "journal.recorder"),
		records: make(chan *Record, cfg.Buffer),
		done:    make(chan struct{}),
	}
	r.wg.Add(1)
	go r.worker()
	return r
}

// Record enqueues record, filling in its id and time when unset. It never
// blocks; it reports false when the record was dropped.
func (r *Recorder) Record(record *Record) bool {
	if r == nil || record == nil {
		return false
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Time.IsZero() {
		record.Time = time.Now()
	}
	if record.Status == "" {
		record.Status = StatusSuccess
		if record.ErrorKind != "" {
			record.Status = StatusError
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return false
	}

	select {
	case r.records <- record:
		return true
	default:
		r.metrics.RecordJournalWrite(false)
		r.logger.Warn("journal queue full, dropping record",
			"operation", record.Operation,
			"request_id", record.RequestID,
		)
		return false
	}
}

// Close drains pending records and stops the worker. The storage is not
// closed.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()

		close(r.done)
		r.wg.Wait()
	})
	return nil
}

func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.records:
			r.write(record)
		case <-r.done:
			for {
				select {
				case record := <-r.records:
					r.write(record)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) write(record *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	if err := r.storage.Store(ctx, record); err != nil {
		r.metrics.RecordJournalWrite(false)
		r.logger.Error("failed to store journal record",
			"record_id", record.ID,
			"operation", record.Operation,
			"error", err,
		)
		return
	}
	r.metrics.RecordJournalWrite(true)
	r.logger.Debug("journal record stored",
		"record_id", record.ID,
		"operation", record.Operation,
		"status", record.Status,
	)
}
