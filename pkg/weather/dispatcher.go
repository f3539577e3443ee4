package weather

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"liyu1981.xyz/weather-alert-pipeline/pkg/common"
	"liyu1981.xyz/weather-alert-pipeline/pkg/config"
	"liyu1981.xyz/weather-alert-pipeline/pkg/metrics"
	"liyu1981.xyz/weather-alert-pipeline/pkg/models"
)

type Dispatcher struct {
	history  IHistory
	notifier INotifier
	cfg      config.AlertConfig
	clock    func() time.Time
	metrics  *metrics.Metrics
}

type DispatcherOption func(*Dispatcher)

func WithClock(clock func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		if clock != nil {
			d.clock = clock
		}
	}
}

func WithMetrics(m *metrics.Metrics) DispatcherOption {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

func NewDispatcher(history IHistory, notifier INotifier, cfg config.AlertConfig, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		history:  history,
		notifier: notifier,
		cfg:      cfg,
		clock:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch handles each condition in order. Every condition gets exactly one
// alert log insert, whatever happened with the cooldown lookup or the
// notifier. Failures are collected into the returned error and never stop
// the remaining conditions.
func (d *Dispatcher) Dispatch(ctx context.Context, conditions []models.AlertCondition, reading *models.Reading) ([]models.DispatchResult, error) {
	var errs error
	results := make([]models.DispatchResult, 0, len(conditions))

	for _, condition := range conditions {
		result, err := d.dispatchOne(ctx, condition, reading)
		errs = multierr.Append(errs, err)
		results = append(results, result)
		d.metrics.ObserveAlert(condition.Kind, result.Outcome)
	}

	return results, errs
}

func (d *Dispatcher) dispatchOne(ctx context.Context, condition models.AlertCondition, reading *models.Reading) (models.DispatchResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNamePipeline,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryDispatch),
		zap.String(common.LoggerFieldAlertKind, string(condition.Kind)),
	)

	var errs error
	result := models.DispatchResult{Condition: condition}
	now := d.clock()

	recent, err := d.history.RecentAlerts(ctx, condition.Kind, now, d.cfg.Cooldown())
	switch {
	case err != nil:
		errs = multierr.Append(errs, fmt.Errorf("cooldown lookup for %s: %w", condition.Kind, err))
		logger.Error("Cooldown lookup failed",
			zap.Error(err),
			zap.String("policy", string(d.cfg.LookupFailurePolicy)),
		)
		if d.cfg.LookupFailurePolicy == config.LookupFailureNotify {
			d.notify(ctx, logger, &result, reading)
		} else {
			result.Outcome = models.OutcomeLookupFailed
		}

	case len(recent) > 0:
		result.Outcome = models.OutcomeCooldown
		logger.Info("Alert in cooldown, notification skipped",
			zap.Time("last_alert", recent[0].Timestamp),
			zap.Duration("cooldown", d.cfg.Cooldown()),
		)

	default:
		d.notify(ctx, logger, &result, reading)
	}

	entry := &models.AlertLog{
		Timestamp: now,
		Kind:      condition.Kind,
		Severity:  condition.Severity,
		Message:   condition.Message,
		EmailSent: result.EmailSent,
	}
	// the log entry is written even if ctx was canceled after the notifier ran,
	// otherwise the next cycle would find no cooldown and notify again
	if err := d.history.InsertAlertLog(context.WithoutCancel(ctx), entry); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("save alert log for %s: %w", condition.Kind, err))
		logger.Error("Failed to save alert log", zap.Error(err), zap.Reflect("alert_log", entry))
	} else {
		result.Logged = true
		logger.Info("Alert saved",
			zap.Reflect("alert_log", entry),
			zap.String(common.LoggerFieldAlertOutcome, string(result.Outcome)),
		)
	}

	return result, errs
}

func (d *Dispatcher) notify(ctx context.Context, logger *zap.Logger, result *models.DispatchResult, reading *models.Reading) {
	if err := d.notifier.Send(ctx, result.Condition, reading); err != nil {
		result.Outcome = models.OutcomeNotifyFailed
		result.EmailSent = false
		logger.Warn("Notification failed", zap.Error(err))
		return
	}
	result.Outcome = models.OutcomeNotified
	result.EmailSent = true
}
