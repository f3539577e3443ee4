package weather

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"liyu1981.xyz/weather-alert-pipeline/pkg/common"
	"liyu1981.xyz/weather-alert-pipeline/pkg/config"
	"liyu1981.xyz/weather-alert-pipeline/pkg/metrics"
	"liyu1981.xyz/weather-alert-pipeline/pkg/models"
)

type Services struct {
	Source   ISource
	History  IHistory
	Notifier INotifier
	Metrics  *metrics.Metrics
	// Clock defaults to time.Now in UTC.
	Clock func() time.Time
}

// Pipeline runs fetch, persist, evaluate and dispatch for the configured
// location. At most one cycle runs at a time.
type Pipeline struct {
	location   config.LocationConfig
	thresholds config.Thresholds

	source     ISource
	history    IHistory
	dispatcher *Dispatcher
	metrics    *metrics.Metrics
	clock      func() time.Time

	mu sync.Mutex
}

func NewPipeline(cfg *config.Config, services Services) *Pipeline {
	clock := services.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}

	return &Pipeline{
		location:   cfg.Location,
		thresholds: cfg.Thresholds,
		source:     services.Source,
		history:    services.History,
		dispatcher: NewDispatcher(
			services.History,
			services.Notifier,
			cfg.Alerts,
			WithClock(clock),
			WithMetrics(services.Metrics),
		),
		metrics: services.Metrics,
		clock:   clock,
	}
}

// RunCycle returns ErrCycleInProgress without waiting when another cycle holds
// the pipeline. A source failure aborts the cycle with ErrSourceFailed. Any
// later failure is logged, collected into the returned error, and the cycle
// carries on, so the result is meaningful even when err is not nil.
func (p *Pipeline) RunCycle(ctx context.Context) (*models.CycleResult, error) {
	if !p.mu.TryLock() {
		p.metrics.ObserveCycle(metrics.CycleResultAlreadyRunning)
		return nil, ErrCycleInProgress
	}
	defer p.mu.Unlock()

	result := &models.CycleResult{
		ID:        uuid.NewString(),
		StartedAt: p.clock(),
	}

	logger := common.GetLoggerWith(
		common.LoggerNamePipeline,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryCycle),
		zap.String(common.LoggerFieldCycleID, result.ID),
	)
	logger.Info("Cycle started", zap.String("location", p.location.Name))

	fetchStart := time.Now()
	reading, err := p.source.Fetch(ctx, p.location.Latitude, p.location.Longitude)
	if err == nil && reading == nil {
		err = errors.New("source returned no reading")
	}
	p.metrics.ObserveFetch(time.Since(fetchStart), err)
	if err != nil {
		logger.Error("Failed to fetch weather", zap.Error(err))
		p.metrics.ObserveCycle(metrics.CycleResultSourceFailed)
		return result, fmt.Errorf("%w: %w", ErrSourceFailed, err)
	}
	result.Reading = reading

	var errs error

	if err := p.history.InsertReading(ctx, p.location.Name, p.location.Latitude, p.location.Longitude, reading); err != nil {
		logger.Error("Failed to save reading", zap.Error(err))
		errs = multierr.Append(errs, err)
	}

	result.Conditions = Evaluate(reading, p.thresholds)
	evalLogger := common.GetLoggerWith(
		common.LoggerNamePipeline,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryEvaluate),
		zap.String(common.LoggerFieldCycleID, result.ID),
	)
	for _, condition := range result.Conditions {
		evalLogger.Info("Alert found", zap.Reflect("condition", condition))
	}

	if len(result.Conditions) > 0 {
		dispatches, err := p.dispatcher.Dispatch(ctx, result.Conditions, reading)
		result.Dispatches = dispatches
		errs = multierr.Append(errs, err)
	}

	if errs != nil {
		p.metrics.ObserveCycle(metrics.CycleResultPartial)
	} else {
		p.metrics.ObserveCycle(metrics.CycleResultOK)
	}

	logger.Info("Cycle finished",
		zap.Int("conditions", len(result.Conditions)),
		zap.Int("notified", result.NotifiedCount()),
		zap.Duration("took", p.clock().Sub(result.StartedAt)),
		zap.NamedError("errors", errs),
	)

	return result, errs
}
