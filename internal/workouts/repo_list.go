package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/tracing"
)

// Position is a keyset position in the newest-first listing of completed workouts.
type Position struct {
	StartedAt time.Time
	ID        int
}

type ListCompletedParams struct {
	UserID int
	After  *Position
	From   *time.Time
	To     *time.Time
	Limit  int
}

// CompletedPosition resolves a listing cursor (a completed workout id of the user).
func (r *Repo) CompletedPosition(ctx context.Context, userID, workoutID int) (_ *Position, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.completed_position")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var pos Position
	if err := r.db.QueryRow(
		ctx,
		`SELECT started_at, id FROM workout WHERE id = $1 AND user_id = $2 AND status = 'COMPLETED'`,
		workoutID, userID,
	).Scan(&pos.StartedAt, &pos.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, kindError(ErrNotFound, "cursor %d not found", workoutID)
		}
		return nil, fmt.Errorf("get cursor position: %w", err)
	}
	return &pos, nil
}

// ListCompleted returns expanded COMPLETED workouts, newest first by (startedAt, id).
func (r *Repo) ListCompleted(ctx context.Context, params ListCompletedParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list_completed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("user.id", params.UserID),
		attribute.Int("limit", params.Limit),
	)

	var afterStartedAt *time.Time
	var afterID *int
	if params.After != nil {
		afterStartedAt = &params.After.StartedAt
		afterID = &params.After.ID
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+workoutColumns+`
		FROM workout
		WHERE user_id = $1
			AND status = 'COMPLETED'
			AND ($2::timestamptz IS NULL OR started_at >= $2)
			AND ($3::timestamptz IS NULL OR started_at <= $3)
			AND ($4::timestamptz IS NULL OR (started_at, id) < ($4, $5::int))
		ORDER BY started_at DESC, id DESC
		LIMIT $6`,
		params.UserID, params.From, params.To, afterStartedAt, afterID, params.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list completed workouts: %w", err)
	}

	ws, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Workout, error) {
		w, err := scanWorkout(row)
		if err != nil {
			return Workout{}, err
		}
		return *w, nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect completed workouts: %w", err)
	}

	if err := expandWorkouts(ctx, r.db, ws); err != nil {
		return nil, err
	}
	return ws, nil
}
