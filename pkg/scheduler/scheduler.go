package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
	"liyu1981.xyz/weather-alert-pipeline/pkg/common"
	"liyu1981.xyz/weather-alert-pipeline/pkg/models"
	"liyu1981.xyz/weather-alert-pipeline/pkg/weather"
)

// Scheduler runs pipeline cycles on a fixed interval, starting with one
// immediately. A failed cycle is logged and never stops the schedule.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    weather.ICycleRunner
	interval  time.Duration

	mu      sync.Mutex
	stopped bool
	running sync.WaitGroup
}

func New(runner weather.ICycleRunner, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		runner:    runner,
		interval:  interval,
	}
}

func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("invalid schedule interval: %s", s.interval)
	}

	logger := common.GetLoggerWith(common.LoggerNameScheduler)

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.runCycle)
	if err != nil {
		return fmt.Errorf("schedule pipeline: %w", err)
	}

	s.scheduler.StartAsync()
	logger.Info("Scheduler started", zap.Duration("interval", s.interval))
	return nil
}

// Stop prevents new cycles and waits for a running one to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	s.scheduler.Stop()
	s.running.Wait()
	common.GetLoggerWith(common.LoggerNameScheduler).Info("Scheduler stopped")
}

func (s *Scheduler) runCycle() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.running.Add(1)
	s.mu.Unlock()
	defer s.running.Done()

	logger := common.GetLoggerWith(common.LoggerNameScheduler)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Cycle panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()

	// a cycle must not outlive its slot
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	result, err := s.runner.RunCycle(ctx)
	switch {
	case errors.Is(err, weather.ErrCycleInProgress):
		logger.Info("Previous cycle still running, skipping this tick")
	case errors.Is(err, weather.ErrSourceFailed):
		logger.Error("Cycle aborted, weather source failed", zap.Error(err))
	case err != nil:
		logger.Error("Cycle finished with errors", zap.Error(err), zap.String(common.LoggerFieldCycleID, cycleID(result)))
	default:
		logger.Info("Cycle completed",
			zap.String(common.LoggerFieldCycleID, result.ID),
			zap.Int("conditions", len(result.Conditions)),
			zap.Int("notified", result.NotifiedCount()),
		)
	}
}

func cycleID(result *models.CycleResult) string {
	if result == nil {
		return ""
	}
	return result.ID
}
