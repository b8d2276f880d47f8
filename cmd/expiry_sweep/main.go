package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/danmlarsen/workout-tracker-backend/internal/config"
	"github.com/danmlarsen/workout-tracker-backend/internal/db"
	"github.com/danmlarsen/workout-tracker-backend/internal/logging"
	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/metrics"
	"github.com/danmlarsen/workout-tracker-backend/internal/workouts"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Force-completes every workout that stayed ACTIVE for more than 12 hours.
// Meant to run from cron next to services that run without the in-process sweeper.
func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	timeout := flag.Duration("timeout", 2*time.Minute, "max duration of the sweep")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout:      true,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "workouts-expiry-sweep",
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("WT_POSTGRES_PASSWORD"),
		MaxConns:   2,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	sweeper := workouts.NewExpirySweeper(workouts.NewRepo(dbPool), metrics.NewManager("workouts", "expiry_sweep", prometheus.NewRegistry()), time.Now)
	expired, err := sweeper.Sweep(ctx)
	if err != nil {
		log.Errorf("expiry sweep failed: %s", err)
		dbPool.Close()
		os.Exit(1)
	}

	log.Infof("expiry sweep done, %d workouts completed", expired)
}
