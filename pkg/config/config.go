// Package config loads the process configuration once at startup. The
// resulting Config is treated as immutable and passed explicitly to every
// component that needs a part of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Location   LocationConfig
	Thresholds Thresholds
	Alerts     AlertConfig
	Schedule   ScheduleConfig
	Database   DatabaseConfig
	Server     ServerConfig
	OpenMeteo  OpenMeteoConfig
	Notify     NotifyConfig
}

type LocationConfig struct {
	Name      string  `envconfig:"LOCATION" default:"Vancouver" validate:"required"`
	Latitude  float64 `envconfig:"LATITUDE" default:"49.2827" validate:"gte=-90,lte=90"`
	Longitude float64 `envconfig:"LONGITUDE" default:"-123.1207" validate:"gte=-180,lte=180"`
}

// Thresholds are compared inclusively. Rain and wind must be positive so a
// zero reading can never breach them.
type Thresholds struct {
	HeavyRain  float64 `envconfig:"HEAVY_RAIN_THRESHOLD" default:"10.0" validate:"gt=0"`
	StrongWind float64 `envconfig:"STRONG_WIND_THRESHOLD" default:"50.0" validate:"gt=0"`
	TempLow    float64 `envconfig:"EXTREME_TEMP_LOW" default:"0.0" validate:"ltfield=TempHigh"`
	TempHigh   float64 `envconfig:"EXTREME_TEMP_HIGH" default:"35.0"`
}

type LookupFailurePolicy string

const (
	// LookupFailureSuppress skips the notification when the cooldown query fails.
	LookupFailureSuppress LookupFailurePolicy = "suppress"
	// LookupFailureNotify treats a failed cooldown query as "no recent alerts".
	LookupFailureNotify LookupFailurePolicy = "notify"
)

type AlertConfig struct {
	CooldownHours       int                 `envconfig:"ALERT_COOLDOWN_HOURS" default:"6" validate:"gt=0"`
	LookupFailurePolicy LookupFailurePolicy `envconfig:"ALERT_LOOKUP_FAILURE_POLICY" default:"suppress" validate:"oneof=suppress notify"`
}

func (a AlertConfig) Cooldown() time.Duration {
	return time.Duration(a.CooldownHours) * time.Hour
}

type ScheduleConfig struct {
	IntervalMinutes int `envconfig:"SCHEDULE_INTERVAL_MINUTES" default:"60" validate:"gt=0"`
}

func (s ScheduleConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}

const (
	DBTypeFile     = "file"
	DBTypeMemory   = "memory"
	DBTypePostgres = "postgres"
	DBTypeMySQL    = "mysql"
)

type DatabaseConfig struct {
	Type string `envconfig:"WAP_DB_TYPE" default:"file" validate:"oneof=file memory postgres mysql"`
	Path string `envconfig:"WAP_DB_PATH" default:"weather.db"`
	URL  string `envconfig:"DATABASE_URL"`
}

type ServerConfig struct {
	HostPort string  `envconfig:"WAP_HTTP_HOST_PORT" default:":1080"`
	Rate     float64 `envconfig:"WAP_API_RATE" default:"5" validate:"gte=0"`
	Burst    int     `envconfig:"WAP_API_BURST" default:"10" validate:"gte=0"`
}

type OpenMeteoConfig struct {
	BaseURL string        `envconfig:"OPENMETEO_BASE_URL" default:"https://api.open-meteo.com/v1/forecast" validate:"required,url"`
	Timeout time.Duration `envconfig:"OPENMETEO_TIMEOUT" default:"10s" validate:"gt=0"`
}

type NotifyConfig struct {
	Disabled bool `envconfig:"NOTIFY_DISABLED" default:"false"`
	// URL is a raw shoutrrr service URL; when set the SMTP fields are ignored.
	URL      string `envconfig:"NOTIFY_URL"`
	SMTPHost string `envconfig:"SMTP_HOST" default:"smtp.gmail.com" validate:"required"`
	SMTPPort int    `envconfig:"SMTP_PORT" default:"587" validate:"gt=0,lte=65535"`
	From     string `envconfig:"EMAIL_FROM" validate:"omitempty,email"`
	Password string `envconfig:"EMAIL_PASSWORD"`
	To       string `envconfig:"EMAIL_TO" validate:"omitempty,email"`
}

func (n NotifyConfig) UsesSMTP() bool {
	return !n.Disabled && n.URL == ""
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch c.Database.Type {
	case DBTypePostgres, DBTypeMySQL:
		if c.Database.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for %s", ErrInvalidConfig, c.Database.Type)
		}
	}

	if c.Notify.UsesSMTP() && (c.Notify.From == "" || c.Notify.Password == "" || c.Notify.To == "") {
		return fmt.Errorf("%w: EMAIL_FROM, EMAIL_PASSWORD and EMAIL_TO are required unless NOTIFY_URL or NOTIFY_DISABLED is set", ErrInvalidConfig)
	}

	return nil
}
