package weather

import (
	"fmt"

	"liyu1981.xyz/weather-alert-pipeline/pkg/config"
	"liyu1981.xyz/weather-alert-pipeline/pkg/models"
)

// Evaluate checks a reading against the thresholds. Comparisons are inclusive
// and absent fields never trigger. Conditions come back in a fixed order:
// rain, wind, then at most one temperature condition.
func Evaluate(reading *models.Reading, th config.Thresholds) []models.AlertCondition {
	if reading == nil {
		return nil
	}

	var conditions []models.AlertCondition

	if p := reading.Precipitation; p != nil && *p >= th.HeavyRain {
		conditions = append(conditions, models.AlertCondition{
			Kind:     models.AlertKindHeavyRain,
			Severity: models.SeverityHigh,
			Message:  fmt.Sprintf("Heavy rainfall detected: %g mm/h (Threshold: %g mm/h)", *p, th.HeavyRain),
		})
	}

	if w := reading.WindSpeed; w != nil && *w >= th.StrongWind {
		conditions = append(conditions, models.AlertCondition{
			Kind:     models.AlertKindStrongWind,
			Severity: models.SeverityHigh,
			Message:  fmt.Sprintf("Strong wind detected: %g km/h (Threshold: %g km/h)", *w, th.StrongWind),
		})
	}

	if t := reading.Temperature; t != nil {
		switch {
		case *t <= th.TempLow:
			conditions = append(conditions, models.AlertCondition{
				Kind:     models.AlertKindExtremeCold,
				Severity: models.SeverityMedium,
				Message:  fmt.Sprintf("Extreme cold detected: %g°C (Threshold: %g°C)", *t, th.TempLow),
			})
		case *t >= th.TempHigh:
			conditions = append(conditions, models.AlertCondition{
				Kind:     models.AlertKindExtremeHeat,
				Severity: models.SeverityHigh,
				Message:  fmt.Sprintf("Extreme heat detected: %g°C (Threshold: %g°C)", *t, th.TempHigh),
			})
		}
	}

	return conditions
}
