package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"liyu1981.xyz/weather-alert-pipeline/pkg/common"
	"liyu1981.xyz/weather-alert-pipeline/pkg/models"
	"liyu1981.xyz/weather-alert-pipeline/pkg/weather"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

const maxListLimit = 500

type ReadingResponse struct {
	ID            uint      `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Location      string    `json:"location"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Temperature   *float64  `json:"temperature"`
	Precipitation *float64  `json:"precipitation"`
	WindSpeed     *float64  `json:"wind_speed"`
	Humidity      *float64  `json:"humidity"`
	WeatherCode   *int      `json:"weather_code"`
}

func toReadingResponse(r models.Reading) ReadingResponse {
	return ReadingResponse{
		ID:            r.ID,
		Timestamp:     r.Timestamp,
		Location:      r.Location,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Temperature:   r.Temperature,
		Precipitation: r.Precipitation,
		WindSpeed:     r.WindSpeed,
		Humidity:      r.Humidity,
		WeatherCode:   r.WeatherCode,
	}
}

type AlertLogResponse struct {
	ID        uint             `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	Kind      models.AlertKind `json:"kind"`
	Severity  models.Severity  `json:"severity"`
	Message   string           `json:"message"`
	EmailSent bool             `json:"email_sent"`
}

func toAlertLogResponse(l models.AlertLog) AlertLogResponse {
	return AlertLogResponse{
		ID:        l.ID,
		Timestamp: l.Timestamp,
		Kind:      l.Kind,
		Severity:  l.Severity,
		Message:   l.Message,
		EmailSent: l.EmailSent,
	}
}

type ReadingsQuery struct {
	Limit int `zog:"limit"`
}

var readingsQuerySchema = z.Struct(z.Shape{
	"limit": z.Int().GTE(1).LTE(maxListLimit).Default(50),
})

func (rs *RestfulServer) GetReadings(c *gin.Context) {
	var q ReadingsQuery
	if err := readingsQuerySchema.Parse(zhttp.Request(c.Request), &q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	readings, err := rs.Query.LatestReadings(c.Request.Context(), q.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, common.Mapper(readings, toReadingResponse))
}

type AlertsQuery struct {
	Kind  string `zog:"kind"`
	Hours int    `zog:"hours"`
	Limit int    `zog:"limit"`
}

var alertsQuerySchema = z.Struct(z.Shape{
	"kind":  z.String().Trim().Optional(),
	"hours": z.Int().GTE(1).LTE(24 * 366).Optional(),
	"limit": z.Int().GTE(1).LTE(maxListLimit).Default(50),
})

func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	var q AlertsQuery
	if err := alertsQuerySchema.Parse(zhttp.Request(c.Request), &q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	filter := models.AlertLogFilter{Limit: q.Limit}
	if q.Kind != "" {
		kind, ok := models.ParseAlertKind(q.Kind)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown alert kind: " + q.Kind})
			return
		}
		filter.Kind = kind
	}
	if q.Hours > 0 {
		filter.Since = time.Now().UTC().Add(-time.Duration(q.Hours) * time.Hour)
	}

	logs, err := rs.Query.ListAlertLogs(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, common.Mapper(logs, toAlertLogResponse))
}

type DispatchResponse struct {
	Kind      models.AlertKind       `json:"kind"`
	Severity  models.Severity        `json:"severity"`
	Message   string                 `json:"message"`
	Outcome   models.DispatchOutcome `json:"outcome"`
	EmailSent bool                   `json:"email_sent"`
	Logged    bool                   `json:"logged"`
}

type CycleResponse struct {
	ID         string             `json:"id"`
	StartedAt  time.Time          `json:"started_at"`
	Reading    *ReadingResponse   `json:"reading,omitempty"`
	Dispatches []DispatchResponse `json:"dispatches"`
	Notified   int                `json:"notified"`
	Errors     []string           `json:"errors,omitempty"`
}

func toCycleResponse(result *models.CycleResult, err error) CycleResponse {
	resp := CycleResponse{
		ID:        result.ID,
		StartedAt: result.StartedAt,
		Dispatches: common.Mapper(result.Dispatches, func(d models.DispatchResult) DispatchResponse {
			return DispatchResponse{
				Kind:      d.Condition.Kind,
				Severity:  d.Condition.Severity,
				Message:   d.Condition.Message,
				Outcome:   d.Outcome,
				EmailSent: d.EmailSent,
				Logged:    d.Logged,
			}
		}),
		Notified: common.Reducer(result.Dispatches, func(acc int, d models.DispatchResult) int {
			if d.EmailSent {
				return acc + 1
			}
			return acc
		}, 0),
		Errors: common.Mapper(multierr.Errors(err), func(e error) string { return e.Error() }),
	}
	if result.Reading != nil {
		reading := toReadingResponse(*result.Reading)
		resp.Reading = &reading
	}
	return resp
}

// PostCycle runs one pipeline cycle now. A cycle that completed with
// persistence errors still answers 200 and lists them.
func (rs *RestfulServer) PostCycle(c *gin.Context) {
	logger := common.GetLoggerWith(common.LoggerNameRestfulServer)

	result, err := rs.Runner.RunCycle(c.Request.Context())
	switch {
	case errors.Is(err, weather.ErrCycleInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, weather.ErrSourceFailed):
		logger.Warn("Manual cycle failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	case result == nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cycle produced no result"})
		return
	}

	c.JSON(http.StatusOK, toCycleResponse(result, err))
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
