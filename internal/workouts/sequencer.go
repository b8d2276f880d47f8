package workouts

import (
	"context"
	"time"

	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/metrics"
	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

// Sequencer keeps set numbers of an exercise dense: NORMAL sets are numbered
// 1..N and the optional WARMUP set is always number 0. Set numbers change only
// through the renumbering done here.
type Sequencer struct {
	store          Store
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewSequencer(store Store, metricsManager *metrics.Manager, now func() time.Time) *Sequencer {
	if now == nil {
		now = time.Now
	}
	return &Sequencer{
		store:          store,
		metricsManager: metricsManager,
		now:            now,
	}
}

func (s *Sequencer) shift(ctx context.Context, tx Tx, cause string, workoutExerciseID, from, delta, excludeSetID int) error {
	shifted, err := tx.ShiftSetNumbers(ctx, workoutExerciseID, from, delta, excludeSetID)
	if err != nil {
		return err
	}
	if shifted > 0 {
		s.metricsManager.CounterSetsRenumbered.WithLabelValues(cause).Add(float64(shifted))
	}
	return nil
}

// lockedSet loads the set and locks its parent exercise row, so concurrent
// renumbering of the same exercise is serialized.
func lockedSet(ctx context.Context, tx Tx, userID, setID int) (*WorkoutSet, *Workout, error) {
	set, err := tx.GetSet(ctx, setID)
	if err != nil {
		return nil, nil, err
	}
	_, w, err := ownedWorkoutExercise(ctx, tx, userID, set.WorkoutExerciseID, true)
	if err != nil {
		return nil, nil, err
	}
	// re-read under the lock, numbering may have moved meanwhile
	set, err = tx.GetSet(ctx, setID)
	if err != nil {
		return nil, nil, err
	}
	return set, w, nil
}

func (s *Sequencer) CreateSet(ctx context.Context, workoutExerciseID, userID int, params CreateSetParams) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.sequencer.create_set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	setType := SetTypeNormal
	if params.Type != nil {
		setType = *params.Type
	}

	var w *Workout
	err = s.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		_, w, err = ownedWorkoutExercise(ctx, tx, userID, workoutExerciseID, true)
		if err != nil {
			return err
		}

		setNumber := 0
		switch setType {
		case SetTypeWarmup:
			hasWarmup, err := tx.HasWarmup(ctx, workoutExerciseID)
			if err != nil {
				return err
			}
			if hasWarmup {
				return kindError(ErrConflict, "workout exercise %d already has a warmup set", workoutExerciseID)
			}
		case SetTypeNormal:
			maxNumber, err := tx.MaxSetNumber(ctx, workoutExerciseID)
			if err != nil {
				return err
			}
			setNumber = maxNumber + 1
		default:
			return kindError(ErrBadRequest, "unknown set type %q", setType)
		}

		now := s.now()
		if _, err := tx.InsertSet(ctx, WorkoutSet{
			WorkoutExerciseID: workoutExerciseID,
			SetNumber:         setNumber,
			Type:              setType,
			Reps:              params.Reps,
			Weight:            params.Weight,
			Duration:          params.Duration,
			Notes:             params.Notes,
			CreatedAt:         now,
			UpdatedAt:         now,
		}); err != nil {
			return err
		}

		return tx.ExpandWorkout(ctx, w)
	})
	if err != nil {
		return nil, Classify("workouts.sequencer.create_set", log.Fields{
			"userId":            userID,
			"workoutExerciseId": workoutExerciseID,
		}, err)
	}

	return w, nil
}

// UpdateSet patches the set. Switching its type moves it into or out of the
// warmup slot and renumbers the NORMAL siblings accordingly.
func (s *Sequencer) UpdateSet(ctx context.Context, setID, userID int, params UpdateSetParams) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.sequencer.update_set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var w *Workout
	err = s.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		set, workout, err := lockedSet(ctx, tx, userID, setID)
		if err != nil {
			return err
		}
		w = workout

		now := s.now()
		if params.Reps != nil {
			set.Reps = params.Reps
		}
		if params.Weight != nil {
			set.Weight = params.Weight
		}
		if params.Duration != nil {
			set.Duration = params.Duration
		}
		if params.Notes != nil {
			set.Notes = params.Notes
		}
		if params.Completed != nil {
			if *params.Completed {
				set.CompletedAt = &now
			} else {
				set.CompletedAt = nil
			}
		}

		if params.Type != nil && *params.Type != set.Type {
			switch *params.Type {
			case SetTypeWarmup:
				hasWarmup, err := tx.HasWarmup(ctx, set.WorkoutExerciseID)
				if err != nil {
					return err
				}
				if hasWarmup {
					return kindError(ErrConflict, "workout exercise %d already has a warmup set", set.WorkoutExerciseID)
				}
				if err := s.shift(ctx, tx, "to_warmup", set.WorkoutExerciseID, set.SetNumber+1, -1, set.ID); err != nil {
					return err
				}
				set.SetNumber = 0
			case SetTypeNormal:
				if err := s.shift(ctx, tx, "to_normal", set.WorkoutExerciseID, 1, 1, set.ID); err != nil {
					return err
				}
				set.SetNumber = 1
			default:
				return kindError(ErrBadRequest, "unknown set type %q", *params.Type)
			}
			set.Type = *params.Type
		}

		set.UpdatedAt = now
		if err := tx.UpdateSet(ctx, set); err != nil {
			return err
		}
		return tx.ExpandWorkout(ctx, w)
	})
	if err != nil {
		return nil, Classify("workouts.sequencer.update_set", log.Fields{
			"userId": userID,
			"setId":  setID,
		}, err)
	}

	return w, nil
}

// DeleteSet removes the set. Deleting a NORMAL set closes the gap it leaves.
func (s *Sequencer) DeleteSet(ctx context.Context, setID, userID int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.sequencer.delete_set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var w *Workout
	err = s.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		set, workout, err := lockedSet(ctx, tx, userID, setID)
		if err != nil {
			return err
		}
		w = workout

		if err := tx.DeleteSet(ctx, set.ID); err != nil {
			return err
		}
		if set.Type == SetTypeNormal {
			if err := s.shift(ctx, tx, "delete", set.WorkoutExerciseID, set.SetNumber+1, -1, set.ID); err != nil {
				return err
			}
		}

		return tx.ExpandWorkout(ctx, w)
	})
	if err != nil {
		return nil, Classify("workouts.sequencer.delete_set", log.Fields{
			"userId": userID,
			"setId":  setID,
		}, err)
	}

	return w, nil
}
