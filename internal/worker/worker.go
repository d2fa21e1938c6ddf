package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrShutdownTimeout is returned when workers outlive the shutdown deadline
var ErrShutdownTimeout = errors.New("worker shutdown timed out")

// Pool runs the service's long-lived background loops and stops them together
type Pool struct {
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger
}

// NewPool creates a pool whose workers stop when parent is cancelled or on Shutdown
func NewPool(parent context.Context, logger *slog.Logger) *Pool {
	ctx, cancel := context.WithCancel(parent)
	return &Pool{
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Go runs task until it returns or the pool stops.
// A task error other than cancellation is logged.
func (p *Pool) Go(name string, task func(ctx context.Context) error) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.logger.Debug("▶️ [Worker] Started", "worker", name)

		err := task(p.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			p.logger.Error("❌ [Worker] Stopped with error", "worker", name, "error", err)
			return
		}
		p.logger.Debug("⏹️ [Worker] Stopped", "worker", name)
	}()
}

// Every runs task immediately and then once per interval until the pool stops
func (p *Pool) Every(name string, interval time.Duration, task func(ctx context.Context)) {
	p.Go(name, func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			task(ctx)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	})
}

// Context returns the pool's context
func (p *Pool) Context() context.Context {
	return p.ctx
}

// Shutdown signals all workers to stop and waits up to timeout for them
func (p *Pool) Shutdown(timeout time.Duration) error {
	p.logger.Info("🛑 [Worker] Initiating graceful shutdown...")

	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("✅ [Worker] All background tasks completed")
		return nil
	case <-time.After(timeout):
		p.logger.Warn("⚠️ [Worker] Shutdown timeout exceeded, some tasks may not have completed",
			"timeout", timeout,
		)
		return ErrShutdownTimeout
	}
}
