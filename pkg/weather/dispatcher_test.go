package weather

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/weather-alert-pipeline/pkg/common"
	"liyu1981.xyz/weather-alert-pipeline/pkg/config"
	"liyu1981.xyz/weather-alert-pipeline/pkg/models"
	"liyu1981.xyz/weather-alert-pipeline/pkg/weather/mocks"
	_ "liyu1981.xyz/weather-alert-pipeline/pkg/testing"
)

var dispatchNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockDispatcher(t *testing.T, cfg config.AlertConfig) (*Dispatcher, *mocks.MockIHistory, *mocks.MockINotifier) {
	ctrl := gomock.NewController(t)
	history := mocks.NewMockIHistory(ctrl)
	notifier := mocks.NewMockINotifier(ctrl)
	return NewDispatcher(history, notifier, cfg, WithClock(fixedClock(dispatchNow))), history, notifier
}

// captureLogs records every inserted alert log and returns them through the pointer.
func captureLogs(history *mocks.MockIHistory, insertErr error) *[]models.AlertLog {
	var saved []models.AlertLog
	history.EXPECT().
		InsertAlertLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *models.AlertLog) error {
			saved = append(saved, *entry)
			return insertErr
		}).
		AnyTimes()
	return &saved
}

func TestDispatchNotifiesWhenCooldownInactive(t *testing.T) {
	common.SetTestLoggerNop()

	d, history, notifier := newMockDispatcher(t, defaultAlerts)
	r := reading(ptr(30), ptr(15), ptr(60), ptr(85))
	conditions := Evaluate(r, defaultThresholds)

	history.EXPECT().
		RecentAlerts(gomock.Any(), gomock.Any(), dispatchNow, 6*time.Hour).
		Return(nil, nil).
		Times(2)
	notifier.EXPECT().Send(gomock.Any(), conditions[0], r).Return(nil)
	notifier.EXPECT().Send(gomock.Any(), conditions[1], r).Return(nil)
	saved := captureLogs(history, nil)

	results, err := d.Dispatch(context.Background(), conditions, r)
	require.NoError(t, err)

	require.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, models.OutcomeNotified, res.Outcome)
		assert.True(t, res.EmailSent)
		assert.True(t, res.Logged)
	}

	require.Len(t, *saved, 2)
	assert.Equal(t, models.AlertKindHeavyRain, (*saved)[0].Kind)
	assert.Equal(t, models.AlertKindStrongWind, (*saved)[1].Kind)
	for i, entry := range *saved {
		assert.True(t, entry.EmailSent)
		assert.Equal(t, dispatchNow, entry.Timestamp)
		assert.Equal(t, conditions[i].Severity, entry.Severity)
		assert.Equal(t, conditions[i].Message, entry.Message)
	}
}

func TestDispatchSkipsNotifierInCooldown(t *testing.T) {
	common.SetTestLoggerNop()

	d, history, notifier := newMockDispatcher(t, defaultAlerts)
	r := reading(nil, ptr(15), nil, nil)
	conditions := Evaluate(r, defaultThresholds)

	history.EXPECT().
		RecentAlerts(gomock.Any(), models.AlertKindHeavyRain, dispatchNow, 6*time.Hour).
		Return([]models.AlertLog{{Kind: models.AlertKindHeavyRain, Timestamp: dispatchNow.Add(-time.Hour)}}, nil)
	notifier.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	saved := captureLogs(history, nil)

	results, err := d.Dispatch(context.Background(), conditions, r)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, models.OutcomeCooldown, results[0].Outcome)
	assert.False(t, results[0].EmailSent)

	require.Len(t, *saved, 1)
	assert.False(t, (*saved)[0].EmailSent)
}

func TestDispatchNotifierFailureIsRecorded(t *testing.T) {
	common.SetTestLoggerNop()

	d, history, notifier := newMockDispatcher(t, defaultAlerts)
	r := reading(ptr(-5), ptr(15), nil, nil)
	conditions := Evaluate(r, defaultThresholds)
	require.Len(t, conditions, 2)

	history.EXPECT().RecentAlerts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	gomock.InOrder(
		notifier.EXPECT().Send(gomock.Any(), conditions[0], r).Return(errors.New("smtp: connection refused")),
		notifier.EXPECT().Send(gomock.Any(), conditions[1], r).Return(nil),
	)
	saved := captureLogs(history, nil)

	results, err := d.Dispatch(context.Background(), conditions, r)
	require.NoError(t, err, "notification failures are recorded, not reported")

	assert.Equal(t, models.OutcomeNotifyFailed, results[0].Outcome)
	assert.False(t, results[0].EmailSent)
	assert.Equal(t, models.OutcomeNotified, results[1].Outcome)

	require.Len(t, *saved, 2)
	assert.False(t, (*saved)[0].EmailSent)
	assert.True(t, (*saved)[1].EmailSent)
}

func TestDispatchInsertFailureDoesNotStopLoop(t *testing.T) {
	common.SetTestLoggerNop()

	d, history, notifier := newMockDispatcher(t, defaultAlerts)
	r := reading(ptr(40), ptr(15), ptr(60), nil)
	conditions := Evaluate(r, defaultThresholds)
	require.Len(t, conditions, 3)

	history.EXPECT().RecentAlerts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(3)
	notifier.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)
	saved := captureLogs(history, errors.New("database is locked"))

	results, err := d.Dispatch(context.Background(), conditions, r)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.Contains(t, err.Error(), "database is locked")

	assert.Len(t, *saved, 3, "every condition still gets exactly one insert attempt")
	for _, res := range results {
		assert.False(t, res.Logged)
		assert.True(t, res.EmailSent)
	}
}

func TestDispatchLookupFailureSuppress(t *testing.T) {
	common.SetTestLoggerNop()

	d, history, notifier := newMockDispatcher(t, defaultAlerts)
	r := reading(nil, nil, ptr(70), nil)
	conditions := Evaluate(r, defaultThresholds)

	lookupErr := errors.New("connection reset")
	history.EXPECT().RecentAlerts(gomock.Any(), models.AlertKindStrongWind, gomock.Any(), gomock.Any()).Return(nil, lookupErr)
	notifier.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	saved := captureLogs(history, nil)

	results, err := d.Dispatch(context.Background(), conditions, r)
	require.Error(t, err)
	assert.ErrorIs(t, err, lookupErr)

	assert.Equal(t, models.OutcomeLookupFailed, results[0].Outcome)
	assert.True(t, results[0].Logged)
	require.Len(t, *saved, 1)
	assert.False(t, (*saved)[0].EmailSent)
}

func TestDispatchLookupFailureNotify(t *testing.T) {
	common.SetTestLoggerNop()

	cfg := defaultAlerts
	cfg.LookupFailurePolicy = config.LookupFailureNotify
	d, history, notifier := newMockDispatcher(t, cfg)
	r := reading(nil, nil, ptr(70), nil)
	conditions := Evaluate(r, defaultThresholds)

	lookupErr := errors.New("connection reset")
	history.EXPECT().RecentAlerts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, lookupErr)
	notifier.EXPECT().Send(gomock.Any(), conditions[0], r).Return(nil)
	saved := captureLogs(history, nil)

	results, err := d.Dispatch(context.Background(), conditions, r)
	assert.ErrorIs(t, err, lookupErr, "lookup failure is still reported")

	assert.Equal(t, models.OutcomeNotified, results[0].Outcome)
	require.Len(t, *saved, 1)
	assert.True(t, (*saved)[0].EmailSent)
}

func TestDispatchNoConditions(t *testing.T) {
	common.SetTestLoggerNop()

	d, _, _ := newMockDispatcher(t, defaultAlerts)
	results, err := d.Dispatch(context.Background(), nil, reading(nil, nil, nil, nil))
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestDispatchLogs(t *testing.T) {
	var buf bytes.Buffer
	common.SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	d, history, _ := newMockDispatcher(t, defaultAlerts)
	r := reading(nil, ptr(15), nil, nil)

	history.EXPECT().
		RecentAlerts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.AlertLog{{Timestamp: dispatchNow.Add(-time.Minute)}}, nil)
	captureLogs(history, nil)

	_, err := d.Dispatch(context.Background(), Evaluate(r, defaultThresholds), r)
	require.NoError(t, err)

	logs := ParseLogs(&buf)
	require.Len(t, logs, 2)

	assert.Equal(t, "Alert in cooldown, notification skipped", logs[0]["msg"])
	assert.Equal(t, "Alert saved", logs[1]["msg"])
	for _, entry := range logs {
		assert.Equal(t, "pipeline", entry["logger"])
		assert.Equal(t, "dispatch", entry["category"])
		assert.Equal(t, "HEAVY_RAIN", entry["alert_kind"])
	}
	assert.Equal(t, "cooldown", logs[1]["outcome"])
}
