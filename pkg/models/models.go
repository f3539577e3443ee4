package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type AlertKind string

const (
	AlertKindHeavyRain   AlertKind = "HEAVY_RAIN"
	AlertKindStrongWind  AlertKind = "STRONG_WIND"
	AlertKindExtremeCold AlertKind = "EXTREME_COLD"
	AlertKindExtremeHeat AlertKind = "EXTREME_HEAT"
)

var AlertKinds = []AlertKind{
	AlertKindHeavyRain,
	AlertKindStrongWind,
	AlertKindExtremeCold,
	AlertKindExtremeHeat,
}

func ParseAlertKind(s string) (AlertKind, bool) {
	candidate := AlertKind(strings.ToUpper(strings.TrimSpace(s)))
	for _, kind := range AlertKinds {
		if kind == candidate {
			return kind, true
		}
	}
	return "", false
}

// Title renders the kind for humans, HEAVY_RAIN -> "Heavy Rain".
func (k AlertKind) Title() string {
	// a Caser keeps state, so it is not shared between goroutines
	return cases.Title(language.English).String(strings.ToLower(strings.ReplaceAll(string(k), "_", " ")))
}

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

func ParseSeverity(s string) (Severity, bool) {
	candidate := Severity(strings.ToUpper(strings.TrimSpace(s)))
	if candidate.Rank() == 0 {
		return "", false
	}
	return candidate, true
}

// Rank orders severities LOW < MEDIUM < HIGH < CRITICAL; unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// Reading is one observation at the monitored location. Nil pointers are
// fields the source did not report.
type Reading struct {
	ID            uint      `gorm:"primaryKey"`
	Timestamp     time.Time `gorm:"not null;index"`
	Location      string    `gorm:"type:varchar(100)"`
	Latitude      float64
	Longitude     float64
	Temperature   *float64
	Precipitation *float64
	WindSpeed     *float64
	Humidity      *float64
	WeatherCode   *int
}

// AlertCondition is what the evaluator found; only its AlertLog is persisted.
type AlertCondition struct {
	Kind     AlertKind
	Severity Severity
	Message  string
}

type AlertLog struct {
	ID        uint      `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"not null;index:idx_alert_logs_kind_timestamp,priority:2"`
	Kind      AlertKind `gorm:"type:varchar(20);not null;index:idx_alert_logs_kind_timestamp,priority:1;check:kind IN ('HEAVY_RAIN','STRONG_WIND','EXTREME_COLD','EXTREME_HEAT')"`
	Severity  Severity  `gorm:"type:varchar(10);not null;check:severity IN ('LOW','MEDIUM','HIGH','CRITICAL')"`
	Message   string
	EmailSent bool
}

// AlertLogFilter narrows alert log listings. Zero values mean "no filter".
type AlertLogFilter struct {
	Kind  AlertKind
	Since time.Time
	Limit int
}
