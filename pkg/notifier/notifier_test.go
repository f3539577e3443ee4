package notifier

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/nicholas-fedor/shoutrrr/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/weather-alert-pipeline/pkg/common"
	"liyu1981.xyz/weather-alert-pipeline/pkg/config"
	"liyu1981.xyz/weather-alert-pipeline/pkg/models"
	_ "liyu1981.xyz/weather-alert-pipeline/pkg/testing"
)

type recordingSender struct {
	messages []string
	params   []types.Params
	errs     []error
}

func (s *recordingSender) Send(message string, params *types.Params) []error {
	s.messages = append(s.messages, message)
	if params != nil {
		s.params = append(s.params, *params)
	}
	return s.errs
}

var sentAt = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

var rainCondition = models.AlertCondition{
	Kind:     models.AlertKindHeavyRain,
	Severity: models.SeverityHigh,
	Message:  "Heavy rainfall detected: 15 mm/h (Threshold: 10 mm/h)",
}

func newTestNotifier(t *testing.T, sender Sender) *Notifier {
	t.Helper()
	n, err := New(config.NotifyConfig{}, "Vancouver", WithSender(sender), WithClock(func() time.Time { return sentAt }))
	require.NoError(t, err)
	return n
}

func TestSend(t *testing.T) {
	common.SetTestLoggerNop()

	sender := &recordingSender{errs: []error{nil}}
	n := newTestNotifier(t, sender)

	reading := &models.Reading{
		Temperature:   common.Ptr(12.0),
		Precipitation: common.Ptr(15.0),
		WindSpeed:     common.Ptr(22.5),
		Humidity:      common.Ptr(85.0),
		WeatherCode:   common.Ptr(63),
	}

	require.NoError(t, n.Send(context.Background(), rainCondition, reading))
	require.Len(t, sender.messages, 1)
	assert.Equal(t, "Weather Alert: Heavy Rain", sender.params[0]["title"])

	expected := "Weather Alert: Heavy Rain Detected\n" +
		"Location: Vancouver\n" +
		"Time: 2024-03-01 12:30 UTC\n" +
		"Alert Type: HEAVY_RAIN\n" +
		"Severity: HIGH\n" +
		"Current Conditions:\n" +
		"- Temperature: 12°C\n" +
		"- Precipitation: 15 mm/h\n" +
		"- Wind Speed: 22.5 km/h\n" +
		"- Humidity: 85%\n" +
		"- Conditions: " + models.DescribeWeatherCode(63) + "\n" +
		"Action Required: Heavy rainfall detected: 15 mm/h (Threshold: 10 mm/h)\n" +
		"This is an automated message from Weather Pipeline System.\n"
	assert.Equal(t, expected, sender.messages[0])
}

func TestBodyMissingFields(t *testing.T) {
	n := newTestNotifier(t, &recordingSender{})

	body := n.Body(rainCondition, &models.Reading{})
	assert.Contains(t, body, "- Temperature: N/A°C\n")
	assert.Contains(t, body, "- Precipitation: 0 mm/h\n")
	assert.Contains(t, body, "- Wind Speed: 0 km/h\n")
	assert.Contains(t, body, "- Humidity: N/A%\n")
	assert.NotContains(t, body, "- Conditions:")

	assert.NotPanics(t, func() { n.Body(rainCondition, nil) })
}

func TestSendFailure(t *testing.T) {
	common.SetTestLoggerNop()

	sender := &recordingSender{errs: []error{errors.New("dial tcp: connection refused")}}
	n := newTestNotifier(t, sender)

	err := n.Send(context.Background(), rainCondition, &models.Reading{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSendCanceledContext(t *testing.T) {
	common.SetTestLoggerNop()

	sender := &recordingSender{}
	n := newTestNotifier(t, sender)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.Send(ctx, rainCondition, &models.Reading{}), context.Canceled)
	assert.Empty(t, sender.messages)
}

func TestSendDisabled(t *testing.T) {
	var buf bytes.Buffer
	common.SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	n, err := New(config.NotifyConfig{Disabled: true}, "Vancouver")
	require.NoError(t, err)

	err = n.Send(context.Background(), rainCondition, &models.Reading{})
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Contains(t, buf.String(), "Notifications disabled, alert not sent")
}

func TestSMTPURL(t *testing.T) {
	raw := SMTPURL(config.NotifyConfig{
		SMTPHost: "smtp.gmail.com",
		SMTPPort: 587,
		From:     "alerts@example.com",
		Password: "app p@ss",
		To:       "ops@example.com",
	})

	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "smtp", u.Scheme)
	assert.Equal(t, "smtp.gmail.com:587", u.Host)
	assert.Equal(t, "alerts@example.com", u.User.Username())
	password, _ := u.User.Password()
	assert.Equal(t, "app p@ss", password)
	assert.Equal(t, "alerts@example.com", u.Query().Get("fromaddress"))
	assert.Equal(t, "ops@example.com", u.Query().Get("toaddresses"))
	assert.Equal(t, "Plain", u.Query().Get("auth"))
}

func TestNewWithInvalidURL(t *testing.T) {
	_, err := New(config.NotifyConfig{URL: "nosuchservice://whatever"}, "Vancouver")
	assert.Error(t, err)
}
