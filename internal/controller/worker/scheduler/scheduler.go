package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/inkedmayhem/content-pipeline/internal/usecase"
	"github.com/inkedmayhem/content-pipeline/pkg/logger"
)

// Scheduler is the scheduled publisher: a periodic sweep that promotes
// queued items whose scheduled time has passed, independent of any
// request. It is safe next to concurrent manual publishes; the sweep's
// per-item status re-check inside the use case handles the race.
type Scheduler struct {
	pl     usecase.Pipeline
	logger logger.Interface

	sweepInterval time.Duration
	sweepTimeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

func New(
	pl usecase.Pipeline,
	l logger.Interface,
	sweepInterval time.Duration,
	sweepTimeout time.Duration,
) *Scheduler {
	return &Scheduler{
		pl:            pl,
		logger:        l,
		sweepInterval: sweepInterval,
		sweepTimeout:  sweepTimeout,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return fmt.Errorf("Scheduler - Start - worker already started")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	s.worker(s.sweepInterval, func() {
		sweepCtx, sweepCancel := context.WithTimeout(s.ctx, s.sweepTimeout)
		s.sweep(sweepCtx)
		sweepCancel()
	})

	return nil
}

func (s *Scheduler) sweep(ctx context.Context) {
	count, err := s.pl.SweepDue(ctx, time.Now())
	if err != nil {
		s.logger.Error(err, "Scheduler - sweep - s.pl.SweepDue")

		return
	}

	if count > 0 {
		s.logger.Info("scheduled sweep published %d item(s)", count)
	}
}

func (s *Scheduler) worker(interval time.Duration, task func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				task()
			}
		}
	}()
}

func (s *Scheduler) Shutdown(ctx context.Context) error {
	if !s.started.Load() {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})

	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return nil
	}
}
