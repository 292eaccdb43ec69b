package email

import (
	"context"
	"log/slog"
	"time"
)

// DigestBatch sends the monthly digest to every user and reports how many were delivered.
type DigestBatch interface {
	ExecuteAll(ctx context.Context) (int, error)
}

// DigestWorker runs one digest batch per trigger. Overlapping triggers are skipped.
type DigestWorker struct {
	batch   DigestBatch
	timeout time.Duration
	running chan struct{}
	logger  *slog.Logger
}

// DefaultDigestTimeout bounds a single digest run.
const DefaultDigestTimeout = 10 * time.Minute

// NewDigestWorker creates a new digest worker.
func NewDigestWorker(batch DigestBatch, timeout time.Duration) *DigestWorker {
	if timeout <= 0 {
		timeout = DefaultDigestTimeout
	}
	return &DigestWorker{
		batch:   batch,
		timeout: timeout,
		running: make(chan struct{}, 1),
		logger:  slog.With("component", "digest_worker"),
	}
}

// Run sends the digests once. It returns false when a previous run is still in progress.
func (w *DigestWorker) Run(ctx context.Context) bool {
	select {
	case w.running <- struct{}{}:
	default:
		w.logger.Warn("Digest run skipped, previous run still in progress")
		return false
	}
	defer func() { <-w.running }()

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	sent, err := w.batch.ExecuteAll(ctx)
	if err != nil {
		w.logger.Error("Digest run failed", "sent", sent, "error", err)
		return true
	}
	w.logger.Info("Digest run finished", "sent", sent, "duration", time.Since(start))
	return true
}
