// Package notifier sends alert emails, or any other shoutrrr supported
// message, for detected weather conditions.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"
	"go.uber.org/zap"
	"liyu1981.xyz/weather-alert-pipeline/pkg/common"
	"liyu1981.xyz/weather-alert-pipeline/pkg/config"
	"liyu1981.xyz/weather-alert-pipeline/pkg/models"
)

// ErrDisabled is returned by a notifier built with NOTIFY_DISABLED, so the
// alert log records that no email went out.
var ErrDisabled = errors.New("notifications disabled")

// Sender is the part of a shoutrrr router the notifier uses.
type Sender interface {
	Send(message string, params *types.Params) []error
}

type Notifier struct {
	location string
	sender   Sender
	disabled bool
	clock    func() time.Time
}

type Option func(*Notifier)

func WithSender(s Sender) Option {
	return func(n *Notifier) {
		n.sender = s
	}
}

func WithClock(clock func() time.Time) Option {
	return func(n *Notifier) {
		n.clock = clock
	}
}

func New(cfg config.NotifyConfig, location string, opts ...Option) (*Notifier, error) {
	n := &Notifier{
		location: location,
		disabled: cfg.Disabled,
		clock:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(n)
	}

	if n.disabled || n.sender != nil {
		return n, nil
	}

	rawURL := cfg.URL
	if rawURL == "" {
		rawURL = SMTPURL(cfg)
	}

	sender, err := shoutrrr.CreateSender(rawURL)
	if err != nil {
		return nil, fmt.Errorf("create notification sender: %w", err)
	}
	n.sender = sender
	return n, nil
}

// SMTPURL builds the shoutrrr smtp URL for the configured mailbox.
func SMTPURL(cfg config.NotifyConfig) string {
	query := url.Values{}
	query.Set("fromaddress", cfg.From)
	query.Set("toaddresses", cfg.To)
	query.Set("auth", "Plain")
	query.Set("encryption", "Auto")

	u := url.URL{
		Scheme:   "smtp",
		User:     url.UserPassword(cfg.From, cfg.Password),
		Host:     cfg.SMTPHost + ":" + strconv.Itoa(cfg.SMTPPort),
		Path:     "/",
		RawQuery: query.Encode(),
	}
	return u.String()
}

func (n *Notifier) Send(ctx context.Context, condition models.AlertCondition, reading *models.Reading) error {
	logger := common.GetLoggerWith(
		common.LoggerNameNotifier,
		zap.String(common.LoggerFieldAlertKind, string(condition.Kind)),
	)

	subject := Subject(condition)
	body := n.Body(condition, reading)

	if n.disabled {
		logger.Info("Notifications disabled, alert not sent", zap.String("subject", subject), zap.String("body", body))
		return ErrDisabled
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	var errs []error
	for _, err := range n.sender.Send(body, &types.Params{"title": subject}) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		logger.Error("Failed to send alert", zap.Error(err))
		return fmt.Errorf("send alert %s: %w", condition.Kind, err)
	}

	logger.Info("Alert sent", zap.String("subject", subject))
	return nil
}

func Subject(condition models.AlertCondition) string {
	return "Weather Alert: " + condition.Kind.Title()
}

func (n *Notifier) Body(condition models.AlertCondition, reading *models.Reading) string {
	if reading == nil {
		reading = &models.Reading{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Weather Alert: %s Detected\n", condition.Kind.Title())
	fmt.Fprintf(&b, "Location: %s\n", n.location)
	fmt.Fprintf(&b, "Time: %s\n", n.clock().UTC().Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "Alert Type: %s\n", condition.Kind)
	fmt.Fprintf(&b, "Severity: %s\n", condition.Severity)
	b.WriteString("Current Conditions:\n")
	fmt.Fprintf(&b, "- Temperature: %s°C\n", formatOr(reading.Temperature, "N/A"))
	fmt.Fprintf(&b, "- Precipitation: %s mm/h\n", formatOr(reading.Precipitation, "0"))
	fmt.Fprintf(&b, "- Wind Speed: %s km/h\n", formatOr(reading.WindSpeed, "0"))
	fmt.Fprintf(&b, "- Humidity: %s%%\n", formatOr(reading.Humidity, "N/A"))
	if reading.WeatherCode != nil {
		fmt.Fprintf(&b, "- Conditions: %s\n", models.DescribeWeatherCode(*reading.WeatherCode))
	}
	fmt.Fprintf(&b, "Action Required: %s\n", condition.Message)
	b.WriteString("This is an automated message from Weather Pipeline System.\n")
	return b.String()
}

func formatOr(v *float64, missing string) string {
	if v == nil {
		return missing
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
