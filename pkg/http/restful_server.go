package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"liyu1981.xyz/weather-alert-pipeline/pkg/common"
	"liyu1981.xyz/weather-alert-pipeline/pkg/weather"
)

type RestfulServer struct {
	Server *gin.Engine
	Query  weather.IQuery
	Runner weather.ICycleRunner
	// nil disables rate limiting
	RateLimiterStore *RateLimiterStore
	// nil leaves /metrics unregistered
	Gatherer prometheus.Gatherer
}

// RateLimit rejects clients that exceeded their budget with 429.
func (rs *RestfulServer) RateLimit(c *gin.Context) {
	if rs.RateLimiterStore == nil {
		c.Next()
		return
	}

	clientIP := c.ClientIP()
	if !rs.RateLimiterStore.Allow(clientIP) {
		common.GetLoggerWith(common.LoggerNameRestfulServer).
			Warn("Rate limit exceeded", zap.String("client_ip", clientIP), zap.String("path", c.FullPath()))
		c.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	c.Next()
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	if rs.Gatherer != nil {
		rs.Server.GET("/metrics", gin.WrapH(promhttp.HandlerFor(rs.Gatherer, promhttp.HandlerOpts{})))
	}

	api := rs.Server.Group("/", rs.RateLimit)
	{
		api.GET("/readings", rs.GetReadings)
		api.GET("/alerts", rs.GetAlerts)
		api.POST("/cycles", rs.PostCycle)
	}
}
