package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/tracing"
	"github.com/danmlarsen/workout-tracker-backend/internal/workouts"
)

// Totals are the raw sums behind WorkoutStats.
type Totals struct {
	Workouts      int
	ActiveSeconds int64
	WeightLifted  float64
}

var _ statsRepo = (*Repo)(nil)

type Repo struct {
	db       *pgxpool.Pool
	workouts *workouts.Repo
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db:       db,
		workouts: workouts.NewRepo(db),
	}
}

func (r *Repo) Totals(ctx context.Context, userID int, rng Range) (_ *Totals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.totals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var totals Totals
	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*), COALESCE(SUM(active_duration), 0)::bigint
		FROM workout
		WHERE user_id = $1
			AND status = 'COMPLETED'
			AND ($2::timestamptz IS NULL OR started_at >= $2)
			AND ($3::timestamptz IS NULL OR started_at <= $3)`,
		userID, rng.From, rng.To,
	).Scan(&totals.Workouts, &totals.ActiveSeconds); err != nil {
		return nil, fmt.Errorf("sum workouts: %w", err)
	}

	if err := r.db.QueryRow(
		ctx,
		`SELECT COALESCE(SUM(ws.weight * ws.reps), 0)::double precision
		FROM workout_set ws
		JOIN workout_exercise we ON we.id = ws.workout_exercise_id
		JOIN workout w ON w.id = we.workout_id
		WHERE w.user_id = $1
			AND w.status = 'COMPLETED'
			AND ($2::timestamptz IS NULL OR w.started_at >= $2)
			AND ($3::timestamptz IS NULL OR w.started_at <= $3)
			AND ws.completed_at IS NOT NULL
			AND ws.weight IS NOT NULL
			AND ws.reps IS NOT NULL`,
		userID, rng.From, rng.To,
	).Scan(&totals.WeightLifted); err != nil {
		return nil, fmt.Errorf("sum weight lifted: %w", err)
	}

	return &totals, nil
}

// StartTimes returns start times of the user's completed workouts in [from, to).
func (r *Repo) StartTimes(ctx context.Context, userID int, from, to time.Time) (_ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.start_times")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT started_at
		FROM workout
		WHERE user_id = $1
			AND status = 'COMPLETED'
			AND started_at >= $2
			AND started_at < $3
		ORDER BY started_at`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("query start times: %w", err)
	}

	times, err := pgx.CollectRows(rows, pgx.RowTo[time.Time])
	if err != nil {
		return nil, fmt.Errorf("collect start times: %w", err)
	}
	return times, nil
}

func (r *Repo) CountCompleted(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.count_completed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM workout WHERE user_id = $1 AND status = 'COMPLETED'`,
		userID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count completed workouts: %w", err)
	}
	return count, nil
}

func (r *Repo) CompletedPosition(ctx context.Context, userID, workoutID int) (*workouts.Position, error) {
	return r.workouts.CompletedPosition(ctx, userID, workoutID)
}

func (r *Repo) ListCompleted(ctx context.Context, params workouts.ListCompletedParams) ([]workouts.Workout, error) {
	return r.workouts.ListCompleted(ctx, params)
}
