package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/tracing"
)

// advisory lock namespace for per-user workout creation
const userLockNamespace = 1

const (
	workoutColumns = `id, user_id, status, title, notes, started_at, completed_at, active_duration,
		is_paused, last_pause_start_time, pause_duration, created_at, updated_at`
	workoutExerciseColumns = `id, workout_id, exercise_id, exercise_order, previous_workout_exercise_id,
		notes, created_at, updated_at`
	exerciseColumns = `id, user_id, name, category, equipment, target_muscle_groups`
	setColumns      = `id, workout_exercise_id, set_number, type, reps, weight, duration, notes,
		completed_at, created_at, updated_at`
)

type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Store = (*Repo)(nil)
var _ Tx = (*pgTx)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.tx")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(ctx, &pgTx{q: tx})
	})
}

// ExpandWorkouts loads exercises, sets and carryover snapshots of read-only
// workout listings, outside any transaction.
func (r *Repo) ExpandWorkouts(ctx context.Context, ws []Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.expand")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workouts.count", len(ws)))

	return expandWorkouts(ctx, r.db, ws)
}

type pgTx struct {
	q querier
}

func noRowsAsNotFound(err error, what string, id int) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return kindError(ErrNotFound, "%s %d not found", what, id)
	}
	return err
}

func forUpdateClause(forUpdate bool) string {
	if forUpdate {
		return " FOR UPDATE"
	}
	return ""
}

func (t *pgTx) LockUser(ctx context.Context, userID int) error {
	_, err := t.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, userLockNamespace, userID)
	if err != nil {
		return fmt.Errorf("lock user %d: %w", userID, err)
	}
	return nil
}

func scanWorkout(row pgx.Row) (*Workout, error) {
	var w Workout
	if err := row.Scan(
		&w.ID, &w.UserID, &w.Status, &w.Title, &w.Notes, &w.StartedAt, &w.CompletedAt, &w.ActiveDuration,
		&w.IsPaused, &w.LastPauseStartTime, &w.PauseDuration, &w.CreatedAt, &w.UpdatedAt,
	); err != nil {
		return nil, err
	}
	w.WorkoutExercises = []WorkoutExercise{}
	return &w, nil
}

func (t *pgTx) FindWorkout(ctx context.Context, userID int, params GetWorkoutParams, forUpdate bool) (*Workout, error) {
	row := t.q.QueryRow(
		ctx,
		`SELECT `+workoutColumns+`
		FROM workout
		WHERE user_id = $1
			AND ($2::int IS NULL OR id = $2)
			AND ($3::text IS NULL OR status = $3)
		ORDER BY started_at DESC, id DESC
		LIMIT 1`+forUpdateClause(forUpdate),
		userID, params.ID, params.Status,
	)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, kindError(ErrNotFound, "no matching workout for user %d", userID)
		}
		return nil, fmt.Errorf("find workout: %w", err)
	}
	return w, nil
}

func (t *pgTx) GetWorkout(ctx context.Context, id int, forUpdate bool) (*Workout, error) {
	row := t.q.QueryRow(
		ctx,
		`SELECT `+workoutColumns+` FROM workout WHERE id = $1`+forUpdateClause(forUpdate),
		id,
	)
	w, err := scanWorkout(row)
	if err != nil {
		return nil, noRowsAsNotFound(err, "workout", id)
	}
	return w, nil
}

func (t *pgTx) InsertWorkout(ctx context.Context, w Workout) (*Workout, error) {
	row := t.q.QueryRow(
		ctx,
		`INSERT INTO workout
			(user_id, status, title, notes, started_at, completed_at, active_duration,
			 is_paused, last_pause_start_time, pause_duration, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+workoutColumns,
		w.UserID, w.Status, w.Title, w.Notes, w.StartedAt, w.CompletedAt, w.ActiveDuration,
		w.IsPaused, w.LastPauseStartTime, w.PauseDuration, w.CreatedAt, w.UpdatedAt,
	)
	inserted, err := scanWorkout(row)
	if err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}
	return inserted, nil
}

func (t *pgTx) UpdateWorkout(ctx context.Context, w *Workout) error {
	tag, err := t.q.Exec(
		ctx,
		`UPDATE workout SET
			status = $2, title = $3, notes = $4, started_at = $5, completed_at = $6, active_duration = $7,
			is_paused = $8, last_pause_start_time = $9, pause_duration = $10, updated_at = $11
		WHERE id = $1`,
		w.ID, w.Status, w.Title, w.Notes, w.StartedAt, w.CompletedAt, w.ActiveDuration,
		w.IsPaused, w.LastPauseStartTime, w.PauseDuration, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update workout %d: %w", w.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return kindError(ErrNotFound, "workout %d not found", w.ID)
	}
	return nil
}

func (t *pgTx) DeleteWorkout(ctx context.Context, id int) error {
	tag, err := t.q.Exec(ctx, `DELETE FROM workout WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workout %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return kindError(ErrNotFound, "workout %d not found", id)
	}
	return nil
}

func (t *pgTx) DeleteUserWorkouts(ctx context.Context, userID int, status Status) (int64, error) {
	tag, err := t.q.Exec(ctx, `DELETE FROM workout WHERE user_id = $1 AND status = $2`, userID, status)
	if err != nil {
		return 0, fmt.Errorf("delete %s workouts of user %d: %w", status, userID, err)
	}
	return tag.RowsAffected(), nil
}

func (t *pgTx) ExpireWorkouts(ctx context.Context, params ExpireParams) ([]int, error) {
	rows, err := t.q.Query(
		ctx,
		`UPDATE workout SET
			status = 'COMPLETED',
			completed_at = started_at + ($2::int * interval '1 second'),
			is_paused = FALSE,
			last_pause_start_time = NULL,
			updated_at = now()
		WHERE status = 'ACTIVE'
			AND started_at <= $1
			AND ($3::int IS NULL OR user_id = $3)
		RETURNING id`,
		params.Cutoff, int64(MaxWorkoutDuration/time.Second), params.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("expire workouts: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("collect expired workouts: %w", err)
	}
	return ids, nil
}

func (t *pgTx) ExpandWorkout(ctx context.Context, w *Workout) error {
	ws := []Workout{*w}
	if err := expandWorkouts(ctx, t.q, ws); err != nil {
		return err
	}
	*w = ws[0]
	return nil
}

func scanExercise(row pgx.Row) (*Exercise, error) {
	var e Exercise
	if err := row.Scan(&e.ID, &e.UserID, &e.Name, &e.Category, &e.Equipment, &e.TargetMuscleGroups); err != nil {
		return nil, err
	}
	return &e, nil
}

func (t *pgTx) GetExercise(ctx context.Context, id int) (*Exercise, error) {
	e, err := scanExercise(t.q.QueryRow(ctx, `SELECT `+exerciseColumns+` FROM exercise WHERE id = $1`, id))
	if err != nil {
		return nil, noRowsAsNotFound(err, "exercise", id)
	}
	return e, nil
}

func scanWorkoutExercise(row pgx.Row) (*WorkoutExercise, error) {
	var we WorkoutExercise
	if err := row.Scan(
		&we.ID, &we.WorkoutID, &we.ExerciseID, &we.ExerciseOrder, &we.PreviousWorkoutExerciseID,
		&we.Notes, &we.CreatedAt, &we.UpdatedAt,
	); err != nil {
		return nil, err
	}
	we.WorkoutSets = []WorkoutSet{}
	return &we, nil
}

func (t *pgTx) GetWorkoutExercise(ctx context.Context, id int, forUpdate bool) (*WorkoutExercise, error) {
	we, err := scanWorkoutExercise(t.q.QueryRow(
		ctx,
		`SELECT `+workoutExerciseColumns+` FROM workout_exercise WHERE id = $1`+forUpdateClause(forUpdate),
		id,
	))
	if err != nil {
		return nil, noRowsAsNotFound(err, "workout exercise", id)
	}
	return we, nil
}

func (t *pgTx) ExpandWorkoutExercise(ctx context.Context, we *WorkoutExercise) error {
	exercise, err := t.GetExercise(ctx, we.ExerciseID)
	if err != nil {
		return err
	}
	we.Exercise = exercise

	return attachSets(ctx, t.q, []*WorkoutExercise{we})
}

func (t *pgTx) MaxExerciseOrder(ctx context.Context, workoutID int) (int, error) {
	var maxOrder int
	err := t.q.QueryRow(
		ctx,
		`SELECT COALESCE(MAX(exercise_order), 0) FROM workout_exercise WHERE workout_id = $1`,
		workoutID,
	).Scan(&maxOrder)
	if err != nil {
		return 0, fmt.Errorf("max exercise order of workout %d: %w", workoutID, err)
	}
	return maxOrder, nil
}

func (t *pgTx) InsertWorkoutExercise(ctx context.Context, we WorkoutExercise) (*WorkoutExercise, error) {
	inserted, err := scanWorkoutExercise(t.q.QueryRow(
		ctx,
		`INSERT INTO workout_exercise
			(workout_id, exercise_id, exercise_order, previous_workout_exercise_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+workoutExerciseColumns,
		we.WorkoutID, we.ExerciseID, we.ExerciseOrder, we.PreviousWorkoutExerciseID, we.Notes, we.CreatedAt, we.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert workout exercise: %w", err)
	}
	return inserted, nil
}

func (t *pgTx) UpdateWorkoutExerciseNotes(ctx context.Context, id int, notes *string) error {
	tag, err := t.q.Exec(
		ctx,
		`UPDATE workout_exercise SET notes = $2, updated_at = now() WHERE id = $1`,
		id, notes,
	)
	if err != nil {
		return fmt.Errorf("update workout exercise %d notes: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return kindError(ErrNotFound, "workout exercise %d not found", id)
	}
	return nil
}

func (t *pgTx) DeleteWorkoutExercise(ctx context.Context, id int) error {
	tag, err := t.q.Exec(ctx, `DELETE FROM workout_exercise WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workout exercise %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return kindError(ErrNotFound, "workout exercise %d not found", id)
	}
	return nil
}

func (t *pgTx) FindPreviousOccurrence(ctx context.Context, userID, exerciseID int, before time.Time) (*WorkoutExercise, error) {
	we, err := scanWorkoutExercise(t.q.QueryRow(
		ctx,
		`SELECT we.id, we.workout_id, we.exercise_id, we.exercise_order, we.previous_workout_exercise_id,
			we.notes, we.created_at, we.updated_at
		FROM workout_exercise we
		JOIN workout w ON w.id = we.workout_id
		WHERE w.user_id = $1
			AND we.exercise_id = $2
			AND w.status = 'COMPLETED'
			AND w.started_at < $3
		ORDER BY w.started_at DESC, we.id DESC
		LIMIT 1`,
		userID, exerciseID, before,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, kindError(ErrNotFound, "no previous occurrence of exercise %d", exerciseID)
		}
		return nil, fmt.Errorf("find previous occurrence: %w", err)
	}

	sets, err := loadSets(ctx, t.q, []int{we.ID})
	if err != nil {
		return nil, err
	}
	if s, ok := sets[we.ID]; ok {
		we.WorkoutSets = s
	}
	return we, nil
}

func scanSet(row pgx.Row) (*WorkoutSet, error) {
	var s WorkoutSet
	if err := row.Scan(
		&s.ID, &s.WorkoutExerciseID, &s.SetNumber, &s.Type, &s.Reps, &s.Weight, &s.Duration, &s.Notes,
		&s.CompletedAt, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (t *pgTx) GetSet(ctx context.Context, id int) (*WorkoutSet, error) {
	s, err := scanSet(t.q.QueryRow(ctx, `SELECT `+setColumns+` FROM workout_set WHERE id = $1`, id))
	if err != nil {
		return nil, noRowsAsNotFound(err, "set", id)
	}
	return s, nil
}

func (t *pgTx) InsertSet(ctx context.Context, s WorkoutSet) (*WorkoutSet, error) {
	inserted, err := scanSet(t.q.QueryRow(
		ctx,
		`INSERT INTO workout_set
			(workout_exercise_id, set_number, type, reps, weight, duration, notes, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+setColumns,
		s.WorkoutExerciseID, s.SetNumber, s.Type, s.Reps, s.Weight, s.Duration, s.Notes, s.CompletedAt, s.CreatedAt, s.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert set: %w", err)
	}
	return inserted, nil
}

func (t *pgTx) UpdateSet(ctx context.Context, s *WorkoutSet) error {
	tag, err := t.q.Exec(
		ctx,
		`UPDATE workout_set SET
			set_number = $2, type = $3, reps = $4, weight = $5, duration = $6, notes = $7,
			completed_at = $8, updated_at = $9
		WHERE id = $1`,
		s.ID, s.SetNumber, s.Type, s.Reps, s.Weight, s.Duration, s.Notes, s.CompletedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update set %d: %w", s.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return kindError(ErrNotFound, "set %d not found", s.ID)
	}
	return nil
}

func (t *pgTx) DeleteSet(ctx context.Context, id int) error {
	tag, err := t.q.Exec(ctx, `DELETE FROM workout_set WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete set %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return kindError(ErrNotFound, "set %d not found", id)
	}
	return nil
}

func (t *pgTx) MaxSetNumber(ctx context.Context, workoutExerciseID int) (int, error) {
	var maxNumber int
	err := t.q.QueryRow(
		ctx,
		`SELECT COALESCE(MAX(set_number), 0) FROM workout_set WHERE workout_exercise_id = $1`,
		workoutExerciseID,
	).Scan(&maxNumber)
	if err != nil {
		return 0, fmt.Errorf("max set number of workout exercise %d: %w", workoutExerciseID, err)
	}
	return maxNumber, nil
}

func (t *pgTx) HasWarmup(ctx context.Context, workoutExerciseID int) (bool, error) {
	var exists bool
	err := t.q.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM workout_set WHERE workout_exercise_id = $1 AND type = 'WARMUP')`,
		workoutExerciseID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check warmup of workout exercise %d: %w", workoutExerciseID, err)
	}
	return exists, nil
}

func (t *pgTx) ShiftSetNumbers(ctx context.Context, workoutExerciseID, from, delta, excludeSetID int) (int64, error) {
	tag, err := t.q.Exec(
		ctx,
		`UPDATE workout_set SET set_number = set_number + $3, updated_at = now()
		WHERE workout_exercise_id = $1 AND set_number >= $2 AND id <> $4`,
		workoutExerciseID, from, delta, excludeSetID,
	)
	if err != nil {
		return 0, fmt.Errorf("shift set numbers of workout exercise %d: %w", workoutExerciseID, err)
	}
	return tag.RowsAffected(), nil
}
