package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/weather-alert-pipeline/pkg/common"
	"liyu1981.xyz/weather-alert-pipeline/pkg/db"
	"liyu1981.xyz/weather-alert-pipeline/pkg/models"
)

const DefaultListLimit = 50

// History is the gorm backed store for readings and the alert log.
// Timestamps are always written in UTC so range queries compare correctly on
// every dialect, sqlite included.
type History struct {
	Db *db.DB
}

func NewHistory(d *db.DB) *History {
	return &History{Db: d}
}

func (h *History) InsertReading(ctx context.Context, location string, latitude, longitude float64, r *models.Reading) error {
	if r == nil {
		return fmt.Errorf("insert reading: nil reading")
	}

	logger := common.GetLoggerWith(
		common.LoggerNameStore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryReading),
	)

	row := *r
	row.ID = 0
	row.Location = location
	row.Latitude = latitude
	row.Longitude = longitude
	row.Timestamp = row.Timestamp.UTC()

	if err := h.Db.Conn.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}

	r.ID = row.ID
	logger.Debug("Reading saved", zap.Reflect("reading", row))
	return nil
}

func (h *History) InsertAlertLog(ctx context.Context, entry *models.AlertLog) error {
	if entry == nil {
		return fmt.Errorf("insert alert log: nil entry")
	}

	logger := common.GetLoggerWith(
		common.LoggerNameStore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAlertLog),
	)

	entry.Timestamp = entry.Timestamp.UTC()
	if err := h.Db.Conn.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("insert alert log: %w", err)
	}

	logger.Debug("Alert log saved", zap.Reflect("alert_log", entry))
	return nil
}

// RecentAlerts returns log entries of kind with now-window < timestamp <= now,
// newest first.
func (h *History) RecentAlerts(ctx context.Context, kind models.AlertKind, now time.Time, window time.Duration) ([]models.AlertLog, error) {
	now = now.UTC()
	var logs []models.AlertLog
	err := h.Db.Conn.WithContext(ctx).
		Where("kind = ? AND timestamp > ? AND timestamp <= ?", kind, now.Add(-window), now).
		Order("timestamp desc").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("query recent alerts: %w", err)
	}
	return logs, nil
}

func (h *History) LatestReadings(ctx context.Context, limit int) ([]models.Reading, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var readings []models.Reading
	err := h.Db.Conn.WithContext(ctx).
		Order("timestamp desc").
		Order("id desc").
		Limit(limit).
		Find(&readings).Error
	return readings, err
}

func (h *History) ListAlertLogs(ctx context.Context, filter models.AlertLogFilter) ([]models.AlertLog, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := h.Db.Conn.WithContext(ctx)
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if !filter.Since.IsZero() {
		query = query.Where("timestamp > ?", filter.Since.UTC())
	}

	var logs []models.AlertLog
	err := query.
		Order("timestamp desc").
		Order("id desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
