package weather

import (
	"bufio"
	"encoding/json"
	"io"
	"time"

	"liyu1981.xyz/weather-alert-pipeline/pkg/common"
	"liyu1981.xyz/weather-alert-pipeline/pkg/config"
	"liyu1981.xyz/weather-alert-pipeline/pkg/models"
)

var defaultThresholds = config.Thresholds{
	HeavyRain:  10,
	StrongWind: 50,
	TempLow:    0,
	TempHigh:   35,
}

var defaultAlerts = config.AlertConfig{
	CooldownHours:       6,
	LookupFailurePolicy: config.LookupFailureSuppress,
}

func testConfig() *config.Config {
	return &config.Config{
		Location: config.LocationConfig{
			Name:      "Vancouver",
			Latitude:  49.2827,
			Longitude: -123.1207,
		},
		Thresholds: defaultThresholds,
		Alerts:     defaultAlerts,
	}
}

func reading(temperature, precipitation, windSpeed, humidity *float64) *models.Reading {
	return &models.Reading{
		Timestamp:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Temperature:   temperature,
		Precipitation: precipitation,
		WindSpeed:     windSpeed,
		Humidity:      humidity,
	}
}

func ptr(v float64) *float64 {
	return common.Ptr(v)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func kinds(conditions []models.AlertCondition) []models.AlertKind {
	return common.Mapper(conditions, func(c models.AlertCondition) models.AlertKind { return c.Kind })
}

func ParseLogs(r io.Reader) []map[string]any {
	scanner := bufio.NewScanner(r)
	var logs []map[string]any

	for scanner.Scan() {
		line := scanner.Text()
		var j map[string]any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
