package workouts

import (
	"context"
	"time"

	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

// Attachments adds catalog exercises to workouts and removes them again.
// Exercise order only ever grows within a workout, detaching leaves a gap.
type Attachments struct {
	store     Store
	carryover CarryoverResolver
	now       func() time.Time
}

func NewAttachments(store Store, now func() time.Time) *Attachments {
	if now == nil {
		now = time.Now
	}
	return &Attachments{
		store: store,
		now:   now,
	}
}

// ownedWorkoutExercise loads a workout exercise and checks, through its
// parent workout, that it belongs to userID.
func ownedWorkoutExercise(ctx context.Context, tx Tx, userID, workoutExerciseID int, forUpdate bool) (*WorkoutExercise, *Workout, error) {
	we, err := tx.GetWorkoutExercise(ctx, workoutExerciseID, forUpdate)
	if err != nil {
		return nil, nil, err
	}
	w, err := tx.GetWorkout(ctx, we.WorkoutID, false)
	if err != nil {
		return nil, nil, err
	}
	if w.UserID != userID {
		return nil, nil, kindError(ErrForbidden, "workout exercise %d not owned by user %d", workoutExerciseID, userID)
	}
	return we, w, nil
}

func (a *Attachments) AttachExercise(ctx context.Context, userID, workoutID, exerciseID int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.attachments.attach")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var w *Workout
	err = a.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		w, err = ownedWorkout(ctx, tx, userID, workoutID, ErrNotFound)
		if err != nil {
			return err
		}

		exercise, err := tx.GetExercise(ctx, exerciseID)
		if err != nil {
			return err
		}
		if !exercise.VisibleTo(userID) {
			return kindError(ErrNotFound, "exercise %d not found", exerciseID)
		}

		maxOrder, err := tx.MaxExerciseOrder(ctx, workoutID)
		if err != nil {
			return err
		}

		carryover, err := a.carryover.Resolve(ctx, tx, userID, exerciseID, w.StartedAt)
		if err != nil {
			return err
		}

		now := a.now()
		we, err := tx.InsertWorkoutExercise(ctx, WorkoutExercise{
			WorkoutID:                 workoutID,
			ExerciseID:                exerciseID,
			ExerciseOrder:             maxOrder + 1,
			PreviousWorkoutExerciseID: carryover.PreviousWorkoutExerciseID,
			CreatedAt:                 now,
			UpdatedAt:                 now,
		})
		if err != nil {
			return err
		}

		for _, seed := range carryover.Seeds {
			seed.WorkoutExerciseID = we.ID
			seed.CreatedAt = now
			seed.UpdatedAt = now
			if _, err := tx.InsertSet(ctx, seed); err != nil {
				return err
			}
		}

		return tx.ExpandWorkout(ctx, w)
	})
	if err != nil {
		return nil, Classify("workouts.attachments.attach", log.Fields{
			"userId":     userID,
			"workoutId":  workoutID,
			"exerciseId": exerciseID,
		}, err)
	}

	return w, nil
}

func (a *Attachments) UpdateExerciseNotes(ctx context.Context, userID, workoutExerciseID int, notes *string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.attachments.update_notes")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var w *Workout
	err = a.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		_, w, err = ownedWorkoutExercise(ctx, tx, userID, workoutExerciseID, true)
		if err != nil {
			return err
		}
		if err := tx.UpdateWorkoutExerciseNotes(ctx, workoutExerciseID, notes); err != nil {
			return err
		}
		return tx.ExpandWorkout(ctx, w)
	})
	if err != nil {
		return nil, Classify("workouts.attachments.update_notes", log.Fields{
			"userId":            userID,
			"workoutExerciseId": workoutExerciseID,
		}, err)
	}

	return w, nil
}

// DetachExercise removes the exercise with its sets. Remaining exercises keep
// their order.
func (a *Attachments) DetachExercise(ctx context.Context, userID, workoutExerciseID int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.attachments.detach")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var w *Workout
	err = a.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		_, w, err = ownedWorkoutExercise(ctx, tx, userID, workoutExerciseID, true)
		if err != nil {
			return err
		}
		if err := tx.DeleteWorkoutExercise(ctx, workoutExerciseID); err != nil {
			return err
		}
		return tx.ExpandWorkout(ctx, w)
	})
	if err != nil {
		return nil, Classify("workouts.attachments.detach", log.Fields{
			"userId":            userID,
			"workoutExerciseId": workoutExerciseID,
		}, err)
	}

	return w, nil
}

func (a *Attachments) GetExerciseSets(ctx context.Context, userID, workoutExerciseID int) (_ *WorkoutExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.attachments.get_sets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var we *WorkoutExercise
	err = a.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		we, _, err = ownedWorkoutExercise(ctx, tx, userID, workoutExerciseID, false)
		if err != nil {
			return err
		}
		return tx.ExpandWorkoutExercise(ctx, we)
	})
	if err != nil {
		return nil, Classify("workouts.attachments.get_sets", log.Fields{
			"userId":            userID,
			"workoutExerciseId": workoutExerciseID,
		}, err)
	}

	return we, nil
}
