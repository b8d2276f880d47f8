package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/danmlarsen/workout-tracker-backend/internal"
	"github.com/danmlarsen/workout-tracker-backend/internal/config"
	"github.com/danmlarsen/workout-tracker-backend/internal/logging"
	"github.com/danmlarsen/workout-tracker-backend/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	skipMigrations := flag.Bool("skip-migrations", false, "do not apply the db schema on startup")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "workouts-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)
	log.Debugf("auth mode: %s", cfg.AuthMode)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	creds := loadSecrets(cfg)
	honeycombEnabled := honeycombFromEnv()

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			PostgresPassword:        creds.postgresPassword,
			RedisPassword:           creds.redisPassword,
			JWTSecret:               creds.jwtSecret,
			HoneycombTracingEnabled: honeycombEnabled,
			SkipMigrations:          *skipMigrations,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	if err := server.GracefulShutdown(); err != nil {
		log.Errorf("graceful shutdown: %s", err)
	}
}

type secrets struct {
	postgresPassword string
	redisPassword    string
	jwtSecret        string
}

// loadSecrets reads credentials from the environment. Only the jwt secret
// is mandatory, and only in jwt auth mode.
func loadSecrets(cfg *config.Config) secrets {
	s := secrets{
		postgresPassword: os.Getenv("WT_POSTGRES_PASSWORD"),
		redisPassword:    os.Getenv("WT_REDIS_PASS"),
		jwtSecret:        os.Getenv("WT_JWT_SECRET"),
	}
	if s.postgresPassword == "" {
		log.Warnln("postgres password not set. use WT_POSTGRES_PASSWORD")
	}
	if s.redisPassword == "" {
		log.Warnln("redis password not set. use WT_REDIS_PASS")
	}
	if cfg.AuthMode == config.AuthModeJWT && s.jwtSecret == "" {
		log.Fatalln("jwt auth mode requires a secret. use WT_JWT_SECRET")
	}
	return s
}

func honeycombFromEnv() bool {
	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}
	if os.Getenv("HONEYCOMB_ENABLED") != "true" {
		log.Debugln("honeycomb tracing disabled")
		return false
	}
	if os.Getenv("HONEYCOMB_API_KEY") == "" {
		log.Warnln("HONEYCOMB_API_KEY env var not set")
	}
	return true
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return pkg.BytesToString(stdout), nil
}
