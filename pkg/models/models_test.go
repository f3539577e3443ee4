package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlertKindTitle(t *testing.T) {
	assert.Equal(t, "Heavy Rain", AlertKindHeavyRain.Title())
	assert.Equal(t, "Strong Wind", AlertKindStrongWind.Title())
	assert.Equal(t, "Extreme Cold", AlertKindExtremeCold.Title())
	assert.Equal(t, "Extreme Heat", AlertKindExtremeHeat.Title())
}

func TestParseAlertKind(t *testing.T) {
	kind, ok := ParseAlertKind(" heavy_rain ")
	assert.True(t, ok)
	assert.Equal(t, AlertKindHeavyRain, kind)

	_, ok = ParseAlertKind("TORNADO")
	assert.False(t, ok)

	_, ok = ParseAlertKind("")
	assert.False(t, ok)
}

func TestSeverityRank(t *testing.T) {
	ordered := []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1].Rank(), ordered[i].Rank())
	}
	assert.Equal(t, 0, Severity("BOGUS").Rank())
}

func TestParseSeverity(t *testing.T) {
	s, ok := ParseSeverity(" critical ")
	assert.True(t, ok)
	assert.Equal(t, SeverityCritical, s)

	_, ok = ParseSeverity("urgent")
	assert.False(t, ok)
}

func TestCycleResultNotifiedCount(t *testing.T) {
	result := &CycleResult{Dispatches: []DispatchResult{
		{Outcome: OutcomeNotified, EmailSent: true},
		{Outcome: OutcomeCooldown},
		{Outcome: OutcomeNotifyFailed},
		{Outcome: OutcomeNotified, EmailSent: true},
	}}
	assert.Equal(t, 2, result.NotifiedCount())
}

func TestDescribeWeatherCode(t *testing.T) {
	assert.Equal(t, "Clear sky", DescribeWeatherCode(0))
	assert.Equal(t, "Rain", DescribeWeatherCode(63))
	assert.Equal(t, "Rain", DescribeWeatherCode(81))
	assert.Equal(t, "Snow", DescribeWeatherCode(75))
	assert.Equal(t, "Thunderstorm", DescribeWeatherCode(95))
	assert.Equal(t, "Unknown", DescribeWeatherCode(42))
}
