package misc

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danmlarsen/workout-tracker-backend/internal/middleware"
	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/metrics"
	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/tracing"
	"github.com/danmlarsen/workout-tracker-backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type sessionLogouter interface {
	Logout(ctx context.Context, token string) (bool, error)
}

// HealthCheck pings one dependency of the service.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type Handler struct {
	versionInfo  string
	authService  sessionLogouter
	healthChecks []HealthCheck
}

// NewHandler creates the misc handler. authService may be nil, the logout
// route is then not served.
func NewHandler(
	versionInfo string,
	authService sessionLogouter,
	healthChecks ...HealthCheck,
) *Handler {
	return &Handler{
		versionInfo:  versionInfo,
		authService:  authService,
		healthChecks: healthChecks,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	allowedOrigins []string,
) {
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET").Name("health")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")

	if handler.authService == nil {
		return
	}

	logoutSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	logoutSubrouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("GET", "OPTIONS").Name("logout")

	// logout is not behind the auth check, rate limit it to prevent abuse
	logoutSubrouter.Use(middleware.RateLimit(rateLimiter, metricsManager, "logout", 15))
	logoutSubrouter.Use(middleware.Cors(allowedOrigins))
}

func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status: "ok",
		Checks: make(map[string]string, len(handler.healthChecks)),
	}
	for _, check := range handler.healthChecks {
		if err := check.Ping(ctx); err != nil {
			log.Errorf("health check %s: %s", check.Name, err)
			resp.Checks[check.Name] = "down"
			resp.Status = "degraded"
			span.SetAttributes(attribute.String("health."+check.Name, "down"))
			continue
		}
		resp.Checks[check.Name] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
		span.SetStatus(codes.Error, "degraded")
	}
	pkg.WriteJSON(w, resp, status)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.versionInfo")
	defer span.End()

	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.authService.Logout(ctx, authToken)
	if err != nil {
		log.Errorf("logout for [%s] failed: %s", authToken, err)
		span.SetStatus(codes.Error, err.Error())
		http.Error(w, "error", http.StatusInternalServerError)
		return
	}

	if !loggedOut {
		log.Debugln("logout: no live session for token")
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}
