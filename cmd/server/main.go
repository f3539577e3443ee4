package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/weather-alert-pipeline/pkg/common"
	"liyu1981.xyz/weather-alert-pipeline/pkg/config"
	"liyu1981.xyz/weather-alert-pipeline/pkg/db"
	wapHttp "liyu1981.xyz/weather-alert-pipeline/pkg/http"
	"liyu1981.xyz/weather-alert-pipeline/pkg/metrics"
	"liyu1981.xyz/weather-alert-pipeline/pkg/notifier"
	"liyu1981.xyz/weather-alert-pipeline/pkg/openmeteo"
	"liyu1981.xyz/weather-alert-pipeline/pkg/scheduler"
	"liyu1981.xyz/weather-alert-pipeline/pkg/store"
	"liyu1981.xyz/weather-alert-pipeline/pkg/weather"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration, check .env or the environment: %v", err)
	}

	logger := common.GetLogger()
	defer common.SyncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dialector, err := db.DialectorFor(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	dbInstance, err := db.Open(dialector)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer dbInstance.Close()

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	err = dbInstance.Ping(pingCtx)
	cancelPing()
	if err != nil {
		log.Fatalf("Database is not reachable: %v", err)
	}
	logger.Info("Database connection OK", zap.String("type", cfg.Database.Type))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	notify, err := notifier.New(cfg.Notify, cfg.Location.Name)
	if err != nil {
		log.Fatalf("Failed to set up notifier: %v", err)
	}

	history := store.NewHistory(dbInstance)
	pipeline := weather.NewPipeline(cfg, weather.Services{
		Source:   openmeteo.NewClient(cfg.OpenMeteo),
		History:  history,
		Notifier: notify,
		Metrics:  m,
	})

	logger.Info("Pipeline configured",
		zap.String("location", cfg.Location.Name),
		zap.Float64("latitude", cfg.Location.Latitude),
		zap.Float64("longitude", cfg.Location.Longitude),
		zap.Reflect("thresholds", cfg.Thresholds),
		zap.Int("cooldown_hours", cfg.Alerts.CooldownHours),
		zap.String("lookup_failure_policy", string(cfg.Alerts.LookupFailurePolicy)),
		zap.Bool("notify_disabled", cfg.Notify.Disabled),
	)

	sched := scheduler.New(pipeline, cfg.Schedule.Interval())
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	if common.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rs := &wapHttp.RestfulServer{
		Server:           gin.Default(),
		Query:            history,
		Runner:           pipeline,
		RateLimiterStore: wapHttp.NewRateLimiterStore(rate.Limit(cfg.Server.Rate), cfg.Server.Burst),
		Gatherer:         reg,
	}
	rs.Setup()

	srv := &http.Server{
		Addr:    cfg.Server.HostPort,
		Handler: rs.Server,
	}

	go func() {
		logger.Info("Starting HTTP server on: "+cfg.Server.HostPort,
			zap.Float64("default_rate", cfg.Server.Rate),
			zap.Int("default_burst", cfg.Server.Burst),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed to serve", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
}
