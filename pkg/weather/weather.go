// Package weather holds the alerting core: the threshold evaluator, the
// cooldown-aware dispatcher and the pipeline that runs one cycle end to end.
package weather

//go:generate mockgen -source=weather.go -destination=mocks/weather_mock.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"liyu1981.xyz/weather-alert-pipeline/pkg/models"
)

var (
	ErrSourceFailed    = errors.New("weather source failed")
	ErrCycleInProgress = errors.New("a pipeline cycle is already running")
)

type ISource interface {
	Fetch(ctx context.Context, latitude, longitude float64) (*models.Reading, error)
}

type IHistory interface {
	InsertReading(ctx context.Context, location string, latitude, longitude float64, r *models.Reading) error
	InsertAlertLog(ctx context.Context, entry *models.AlertLog) error
	// RecentAlerts returns entries of kind with now-window < timestamp <= now, newest first.
	RecentAlerts(ctx context.Context, kind models.AlertKind, now time.Time, window time.Duration) ([]models.AlertLog, error)
}

type INotifier interface {
	Send(ctx context.Context, condition models.AlertCondition, reading *models.Reading) error
}

// IQuery is the read side used by the HTTP API.
type IQuery interface {
	LatestReadings(ctx context.Context, limit int) ([]models.Reading, error)
	ListAlertLogs(ctx context.Context, filter models.AlertLogFilter) ([]models.AlertLog, error)
}

type ICycleRunner interface {
	RunCycle(ctx context.Context) (*models.CycleResult, error)
}
