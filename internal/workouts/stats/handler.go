package stats

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/danmlarsen/workout-tracker-backend/internal/auth"
	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/tracing"
	"github.com/danmlarsen/workout-tracker-backend/internal/workouts"
	"github.com/danmlarsen/workout-tracker-backend/pkg"
)

type Handler struct {
	aggregator *Aggregator
}

func NewHandler(aggregator *Aggregator) *Handler {
	return &Handler{
		aggregator: aggregator,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/workouts", handler.handleCompleted).Methods("GET").Name("list-completed-workouts")
	router.HandleFunc("/workouts/count", handler.handleCount).Methods("GET").Name("count-completed-workouts")
	router.HandleFunc("/workouts/calendar", handler.handleCalendar).Methods("GET").Name("workout-calendar")
	router.HandleFunc("/workouts/stats", handler.handleStats).Methods("GET").Name("workout-stats")
}

func writeError(w http.ResponseWriter, op string, err error) {
	status := workouts.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
	}
	http.Error(w, workouts.ErrorMessage(err), status)
}

// parseRange reads from/to query params. A plain date as upper bound covers
// the whole day.
func parseRange(r *http.Request) (Range, error) {
	query := r.URL.Query()

	if date := query.Get("date"); date != "" {
		day, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return Range{}, err
		}
		end := day.Add(24*time.Hour - time.Nanosecond)
		return Range{From: &day, To: &end}, nil
	}

	from, err := pkg.ParseOptionalTime(query.Get("from"))
	if err != nil {
		return Range{}, err
	}
	toStr := query.Get("to")
	to, err := pkg.ParseOptionalTime(toStr)
	if err != nil {
		return Range{}, err
	}
	if to != nil && len(toStr) == len(time.DateOnly) {
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}

	return Range{From: from, To: to}, nil
}

func (handler *Handler) handleCompleted(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.stats.completed")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := CompletedParams{
		From: rng.From,
		To:   rng.To,
	}
	if cursorStr := r.URL.Query().Get("cursor"); cursorStr != "" {
		cursor, err := strconv.Atoi(cursorStr)
		if err != nil || cursor <= 0 {
			http.Error(w, "invalid cursor", http.StatusBadRequest)
			return
		}
		params.Cursor = &cursor
	}

	page, err := handler.aggregator.GetCompletedWorkouts(ctx, userID, params)
	if err != nil {
		writeError(w, "list completed workouts", err)
		return
	}
	pkg.WriteJSON(w, page, http.StatusOK)
}

func (handler *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.stats.count")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	count, err := handler.aggregator.GetCompletedWorkoutsCount(ctx, userID)
	if err != nil {
		writeError(w, "count completed workouts", err)
		return
	}
	pkg.WriteJSON(w, count, http.StatusOK)
}

func (handler *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.stats.calendar")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	yearStr := r.URL.Query().Get("year")
	if yearStr == "" {
		http.Error(w, "year missing", http.StatusBadRequest)
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 || year > 9999 {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}

	calendar, err := handler.aggregator.GetWorkoutCalendar(ctx, userID, year)
	if err != nil {
		writeError(w, "workout calendar", err)
		return
	}
	pkg.WriteJSON(w, calendar, http.StatusOK)
}

func (handler *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.stats.summary")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := handler.aggregator.GetWorkoutStats(ctx, userID, rng)
	if err != nil {
		writeError(w, "workout stats", err)
		return
	}
	pkg.WriteJSON(w, stats, http.StatusOK)
}
