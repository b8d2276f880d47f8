package workouts

import (
	"context"
	"errors"
	"time"

	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/tracing"
)

// Carryover is the set structure a newly attached exercise starts with.
type Carryover struct {
	// PreviousWorkoutExerciseID is set whenever a prior occurrence exists,
	// even if none of its sets were completed.
	PreviousWorkoutExerciseID *int
	Seeds                     []WorkoutSet
}

type CarryoverResolver struct{}

// Resolve finds the user's latest occurrence of exerciseID in a COMPLETED
// workout started before the given time and derives seed sets from it:
// one NORMAL set per completed NORMAL set of that occurrence, or a single
// NORMAL set when there is nothing to carry over.
func (r CarryoverResolver) Resolve(ctx context.Context, tx Tx, userID, exerciseID int, before time.Time) (_ *Carryover, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.carryover.resolve")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	carryover := &Carryover{}
	count := 0

	prev, err := tx.FindPreviousOccurrence(ctx, userID, exerciseID, before)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, err
	default:
		prevID := prev.ID
		carryover.PreviousWorkoutExerciseID = &prevID
		for _, s := range prev.WorkoutSets {
			if s.Type == SetTypeNormal && s.Completed() {
				count++
			}
		}
	}

	if count == 0 {
		count = 1
	}
	carryover.Seeds = make([]WorkoutSet, 0, count)
	for n := 1; n <= count; n++ {
		carryover.Seeds = append(carryover.Seeds, WorkoutSet{
			SetNumber: n,
			Type:      SetTypeNormal,
		})
	}

	return carryover, nil
}
