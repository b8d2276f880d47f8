package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/danmlarsen/workout-tracker-backend/internal/auth"
	"github.com/danmlarsen/workout-tracker-backend/internal/cache"
	"github.com/danmlarsen/workout-tracker-backend/internal/config"
	"github.com/danmlarsen/workout-tracker-backend/internal/db"
	"github.com/danmlarsen/workout-tracker-backend/internal/middleware"
	"github.com/danmlarsen/workout-tracker-backend/internal/misc"
	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/metrics"
	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/tracing"
	"github.com/danmlarsen/workout-tracker-backend/internal/workouts"
	"github.com/danmlarsen/workout-tracker-backend/internal/workouts/stats"
)

const (
	sessionCacheSizeMB  = 8
	maxRequestBodyBytes = 64 << 10
)

type authChecker interface {
	Authenticate(ctx context.Context, token string) (int, error)
}

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient *redis.Client
	rateLimiter middleware.RequestRateLimiter
	checker     authChecker
	authService *auth.Service // nil in jwt mode

	workoutsService *workouts.Service
	aggregator      *stats.Aggregator

	// background jobs (expiry sweep, session cleanup)
	bgCtx    context.Context
	bgCancel context.CancelFunc

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	PostgresPassword        string
	RedisPassword           string
	JWTSecret               string
	HoneycombTracingEnabled bool
	SkipMigrations          bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if !params.SkipMigrations {
		if err := db.Migrate(ctx, dbPool); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("workouts", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, tracing.ServiceName, rdb)
	if err != nil {
		return nil, err
	}

	bgCtx, bgCancel := context.WithCancel(ctx)

	s := &Server{
		config:      cfg,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,
		redisClient: rdb,
		rateLimiter: redis_rate.NewLimiter(rdb),

		bgCtx:    bgCtx,
		bgCancel: bgCancel,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	switch cfg.AuthMode {
	case config.AuthModeJWT:
		jwtChecker, err := auth.NewJWTChecker(params.JWTSecret)
		if err != nil {
			bgCancel()
			return nil, fmt.Errorf("jwt checker: %w", err)
		}
		s.checker = jwtChecker
	default:
		sessionChecker := auth.NewSessionChecker(auth.DefaultTTL, rdb, cache.NewSessionCache(sessionCacheSizeMB))
		s.checker = sessionChecker
		s.authService = auth.NewAuthService(auth.DefaultTTL, rdb, sessionChecker)
		go s.runSessionCleanup(8 * time.Hour)
	}

	s.workoutsService = workouts.NewService(workouts.NewRepo(dbPool), metricsManager, nil)
	s.aggregator = stats.NewAggregator(stats.NewRepo(dbPool))

	sweepInterval := time.Duration(cfg.ExpirySweepIntervalMinutes) * time.Minute
	go s.workoutsService.Sweeper.Run(bgCtx, sweepInterval)

	return s, nil
}

// AuthService is nil unless sessions are used.
func (s *Server) AuthService() *auth.Service {
	return s.authService
}

func (s *Server) runSessionCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.bgCtx.Done():
			return
		case <-ticker.C:
			s.authService.ScanAndClean(s.bgCtx)
		}
	}
}

func (s *Server) healthChecks() []misc.HealthCheck {
	return []misc.HealthCheck{
		{Name: "postgres", Ping: s.dbPool.Ping},
		{Name: "redis", Ping: func(ctx context.Context) error {
			return s.redisClient.Ping(ctx).Err()
		}},
	}
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	// a nil *auth.Service must not end up in a non-nil interface
	miscHandler := misc.NewHandler(s.versionInfo, nil, s.healthChecks()...)
	if s.authService != nil {
		miscHandler = misc.NewHandler(s.versionInfo, s.authService, s.healthChecks()...)
	}
	miscHandler.SetupRoutes(r, s.rateLimiter, s.metricsManager, s.config.AllowedOrigins)

	// stats routes first, they share the /workouts prefix
	statsHandler := stats.NewHandler(s.aggregator)
	statsHandler.SetupRoutes(r)

	workoutsHandler := workouts.NewHandler(s.workoutsService)
	workoutsHandler.SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PATCH", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.checker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.RateLimit(s.rateLimiter, s.metricsManager, "api", s.config.RateLimitAllowedPerMin))
	r.Use(middleware.LimitAndDrainRequest(maxRequestBodyBytes))

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)
	s.bgCancel()

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
