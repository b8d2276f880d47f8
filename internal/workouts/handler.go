package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/danmlarsen/workout-tracker-backend/internal/auth"
	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/tracing"
	"github.com/danmlarsen/workout-tracker-backend/pkg"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsService interface {
	GetWorkout(ctx context.Context, userID int, params GetWorkoutParams) (*Workout, error)
	CreateDraftWorkout(ctx context.Context, userID int, params CreateWorkoutParams) (*Workout, error)
	CreateActiveWorkout(ctx context.Context, userID int) (*Workout, error)
	PauseActiveWorkout(ctx context.Context, userID int) (*Workout, error)
	ResumeActiveWorkout(ctx context.Context, userID int) (*Workout, error)
	CompleteWorkout(ctx context.Context, userID, workoutID int) (*Workout, error)
	UpdateWorkout(ctx context.Context, workoutID, userID int, params UpdateWorkoutParams) (*Workout, error)
	DeleteActiveWorkout(ctx context.Context, userID int) (*Workout, error)
	DeleteWorkout(ctx context.Context, workoutID, userID int) (*Workout, error)

	AttachExercise(ctx context.Context, userID, workoutID, exerciseID int) (*Workout, error)
	UpdateExerciseNotes(ctx context.Context, userID, workoutExerciseID int, notes *string) (*Workout, error)
	DetachExercise(ctx context.Context, userID, workoutExerciseID int) (*Workout, error)
	GetExerciseSets(ctx context.Context, userID, workoutExerciseID int) (*WorkoutExercise, error)

	CreateSet(ctx context.Context, workoutExerciseID, userID int, params CreateSetParams) (*Workout, error)
	UpdateSet(ctx context.Context, setID, userID int, params UpdateSetParams) (*Workout, error)
	DeleteSet(ctx context.Context, setID, userID int) (*Workout, error)
}

var _ workoutsService = (*Service)(nil)

var validate = validator.New(validator.WithRequiredStructEnabled())

type CreateWorkoutRequest struct {
	Title *string `json:"title" validate:"omitempty,min=2,max=50"`
}

type UpdateWorkoutRequest struct {
	Title          *string    `json:"title" validate:"omitempty,min=2,max=50"`
	Notes          *string    `json:"notes" validate:"omitempty,max=200"`
	StartedAt      *time.Time `json:"startedAt"`
	ActiveDuration *int       `json:"activeDuration" validate:"omitempty,min=1,max=43200"`
}

type AttachExerciseRequest struct {
	ExerciseID int `json:"exerciseId" validate:"required,min=1"`
}

type ExerciseNotesRequest struct {
	Notes *string `json:"notes" validate:"omitempty,max=200"`
}

type CreateSetRequest struct {
	Type     *SetType `json:"type" validate:"omitempty,oneof=WARMUP NORMAL"`
	Reps     *int     `json:"reps" validate:"omitempty,min=1,max=1000"`
	Weight   *float64 `json:"weight" validate:"omitempty,min=0,max=10000"`
	Duration *int     `json:"duration" validate:"omitempty,min=1,max=86400"`
	Notes    *string  `json:"notes" validate:"omitempty,max=200"`
}

type UpdateSetRequest struct {
	CreateSetRequest
	Completed *bool `json:"completed"`
}

type Handler struct {
	service workoutsService
}

func NewHandler(service workoutsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/workouts/active", handler.handleGetActive).Methods("GET").Name("get-active-workout")
	router.HandleFunc("/workouts/active", handler.handleCreateActive).Methods("POST", "OPTIONS").Name("create-active-workout")
	router.HandleFunc("/workouts/active", handler.handleDeleteActive).Methods("DELETE", "OPTIONS").Name("delete-active-workout")
	router.HandleFunc("/workouts/active/pause", handler.handlePause).Methods("PATCH", "OPTIONS").Name("pause-active-workout")
	router.HandleFunc("/workouts/active/resume", handler.handleResume).Methods("PATCH", "OPTIONS").Name("resume-active-workout")
	router.HandleFunc("/workouts", handler.handleCreateDraft).Methods("POST", "OPTIONS").Name("create-draft-workout")

	router.HandleFunc("/workouts/{workoutId:[0-9]+}", handler.handleGet).Methods("GET").Name("get-workout")
	router.HandleFunc("/workouts/{workoutId:[0-9]+}", handler.handleUpdate).Methods("PATCH", "OPTIONS").Name("update-workout")
	router.HandleFunc("/workouts/{workoutId:[0-9]+}", handler.handleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
	router.HandleFunc("/workouts/{workoutId:[0-9]+}/complete", handler.handleComplete).Methods("POST", "OPTIONS").Name("complete-workout")

	router.HandleFunc("/workouts/{workoutId:[0-9]+}/exercises", handler.handleAttachExercise).Methods("POST", "OPTIONS").Name("attach-exercise")
	router.HandleFunc("/workouts/{workoutId:[0-9]+}/exercises/{workoutExerciseId:[0-9]+}", handler.handleUpdateExerciseNotes).Methods("PATCH", "OPTIONS").Name("update-exercise-notes")
	router.HandleFunc("/workouts/{workoutId:[0-9]+}/exercises/{workoutExerciseId:[0-9]+}", handler.handleDetachExercise).Methods("DELETE", "OPTIONS").Name("detach-exercise")

	router.HandleFunc("/workouts/{workoutId:[0-9]+}/exercises/{workoutExerciseId:[0-9]+}/sets", handler.handleGetExerciseSets).Methods("GET").Name("get-exercise-sets")
	router.HandleFunc("/workouts/{workoutId:[0-9]+}/exercises/{workoutExerciseId:[0-9]+}/sets", handler.handleCreateSet).Methods("POST", "OPTIONS").Name("create-set")
	router.HandleFunc("/workouts/{workoutId:[0-9]+}/exercises/{workoutExerciseId:[0-9]+}/sets/{setId:[0-9]+}", handler.handleUpdateSet).Methods("PATCH", "OPTIONS").Name("update-set")
	router.HandleFunc("/workouts/{workoutId:[0-9]+}/exercises/{workoutExerciseId:[0-9]+}/sets/{setId:[0-9]+}", handler.handleDeleteSet).Methods("DELETE", "OPTIONS").Name("delete-set")
}

// requestUser returns the authenticated user id, or writes 401.
func requestUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

func pathID(r *http.Request, name string) (int, error) {
	idStr := mux.Vars(r)[name]
	if idStr == "" {
		return 0, fmt.Errorf("%s empty", name)
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, fmt.Errorf("%s NaN", name)
	}
	return id, nil
}

// decodeRequest reads an optional JSON body into dst and validates it.
func decodeRequest(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid json body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return err
	}
	return nil
}

func writeError(w http.ResponseWriter, op string, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
	} else {
		log.Debugf("%s: %s", op, err)
	}
	http.Error(w, ErrorMessage(err), status)
}

func (handler *Handler) respond(w http.ResponseWriter, op string, v any, err error, okStatus int) {
	if err != nil {
		writeError(w, op, err)
		return
	}
	pkg.WriteJSON(w, v, okStatus)
}

// pathParents loads the workout exercise named by the path and checks it
// belongs to the path's workout, and the path's set to it when withSet.
// A path that does not match is answered with 404.
func (handler *Handler) pathParents(ctx context.Context, w http.ResponseWriter, r *http.Request, userID int, withSet bool) (_ *WorkoutExercise, setID int, ok bool) {
	workoutID, err := pathID(r, "workoutId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, 0, false
	}
	workoutExerciseID, err := pathID(r, "workoutExerciseId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, 0, false
	}
	if withSet {
		if setID, err = pathID(r, "setId"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, 0, false
		}
	}

	we, err := handler.service.GetExerciseSets(ctx, userID, workoutExerciseID)
	if err != nil {
		writeError(w, "resolve path", err)
		return nil, 0, false
	}
	if we.WorkoutID != workoutID {
		writeError(w, "resolve path", kindError(ErrNotFound, "workout exercise %d not in workout %d", workoutExerciseID, workoutID))
		return nil, 0, false
	}
	if withSet && !slices.ContainsFunc(we.WorkoutSets, func(s WorkoutSet) bool { return s.ID == setID }) {
		writeError(w, "resolve path", kindError(ErrNotFound, "set %d not in workout exercise %d", setID, workoutExerciseID))
		return nil, 0, false
	}
	return we, setID, true
}

func (handler *Handler) handleGetActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get_active")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	status := StatusActive
	workout, err := handler.service.GetWorkout(ctx, userID, GetWorkoutParams{Status: &status})
	handler.respond(w, "get active workout", workout, err, http.StatusOK)
}

func (handler *Handler) handleCreateActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create_active")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	workout, err := handler.service.CreateActiveWorkout(ctx, userID)
	handler.respond(w, "create active workout", workout, err, http.StatusCreated)
}

func (handler *Handler) handleDeleteActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete_active")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	workout, err := handler.service.DeleteActiveWorkout(ctx, userID)
	handler.respond(w, "delete active workout", workout, err, http.StatusOK)
}

func (handler *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.pause")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	workout, err := handler.service.PauseActiveWorkout(ctx, userID)
	handler.respond(w, "pause workout", workout, err, http.StatusOK)
}

func (handler *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.resume")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	workout, err := handler.service.ResumeActiveWorkout(ctx, userID)
	handler.respond(w, "resume workout", workout, err, http.StatusOK)
}

func (handler *Handler) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create_draft")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req CreateWorkoutRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout, err := handler.service.CreateDraftWorkout(ctx, userID, CreateWorkoutParams{Title: req.Title})
	handler.respond(w, "create draft workout", workout, err, http.StatusCreated)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	workoutID, err := pathID(r, "workoutId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout, err := handler.service.GetWorkout(ctx, userID, GetWorkoutParams{ID: &workoutID})
	handler.respond(w, "get workout", workout, err, http.StatusOK)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	workoutID, err := pathID(r, "workoutId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req UpdateWorkoutRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout, err := handler.service.UpdateWorkout(ctx, workoutID, userID, UpdateWorkoutParams{
		Title:          req.Title,
		Notes:          req.Notes,
		StartedAt:      req.StartedAt,
		ActiveDuration: req.ActiveDuration,
	})
	handler.respond(w, "update workout", workout, err, http.StatusOK)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	workoutID, err := pathID(r, "workoutId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout, err := handler.service.DeleteWorkout(ctx, workoutID, userID)
	handler.respond(w, "delete workout", workout, err, http.StatusOK)
}

func (handler *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.complete")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	workoutID, err := pathID(r, "workoutId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout, err := handler.service.CompleteWorkout(ctx, userID, workoutID)
	handler.respond(w, "complete workout", workout, err, http.StatusOK)
}

func (handler *Handler) handleAttachExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.attach_exercise")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	workoutID, err := pathID(r, "workoutId")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req AttachExerciseRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout, err := handler.service.AttachExercise(ctx, userID, workoutID, req.ExerciseID)
	handler.respond(w, "attach exercise", workout, err, http.StatusCreated)
}

func (handler *Handler) handleUpdateExerciseNotes(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update_exercise_notes")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req ExerciseNotesRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	we, _, ok := handler.pathParents(ctx, w, r, userID, false)
	if !ok {
		return
	}

	workout, err := handler.service.UpdateExerciseNotes(ctx, userID, we.ID, req.Notes)
	handler.respond(w, "update exercise notes", workout, err, http.StatusOK)
}

func (handler *Handler) handleDetachExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.detach_exercise")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	we, _, ok := handler.pathParents(ctx, w, r, userID, false)
	if !ok {
		return
	}

	workout, err := handler.service.DetachExercise(ctx, userID, we.ID)
	handler.respond(w, "detach exercise", workout, err, http.StatusOK)
}

func (handler *Handler) handleGetExerciseSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get_exercise_sets")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	workoutExercise, _, ok := handler.pathParents(ctx, w, r, userID, false)
	if !ok {
		return
	}
	pkg.WriteJSON(w, workoutExercise, http.StatusOK)
}

func (handler *Handler) handleCreateSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.create_set")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req CreateSetRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	we, _, ok := handler.pathParents(ctx, w, r, userID, false)
	if !ok {
		return
	}

	workout, err := handler.service.CreateSet(ctx, we.ID, userID, CreateSetParams{
		Type:     req.Type,
		Reps:     req.Reps,
		Weight:   req.Weight,
		Duration: req.Duration,
		Notes:    req.Notes,
	})
	handler.respond(w, "create set", workout, err, http.StatusCreated)
}

func (handler *Handler) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update_set")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}

	var req UpdateSetRequest
	if err := decodeRequest(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, setID, ok := handler.pathParents(ctx, w, r, userID, true)
	if !ok {
		return
	}

	workout, err := handler.service.UpdateSet(ctx, setID, userID, UpdateSetParams{
		Type:      req.Type,
		Reps:      req.Reps,
		Weight:    req.Weight,
		Duration:  req.Duration,
		Notes:     req.Notes,
		Completed: req.Completed,
	})
	handler.respond(w, "update set", workout, err, http.StatusOK)
}

func (handler *Handler) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete_set")
	defer span.End()

	userID, ok := requestUser(w, r)
	if !ok {
		return
	}
	_, setID, ok := handler.pathParents(ctx, w, r, userID, true)
	if !ok {
		return
	}

	workout, err := handler.service.DeleteSet(ctx, setID, userID)
	handler.respond(w, "delete set", workout, err, http.StatusOK)
}
