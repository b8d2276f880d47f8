package workouts

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/metrics"
	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

// Lifecycle moves workouts through DRAFT -> COMPLETED and ACTIVE -> COMPLETED,
// and accounts pause time of the ACTIVE one.
type Lifecycle struct {
	store          Store
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewLifecycle(store Store, metricsManager *metrics.Manager, now func() time.Time) *Lifecycle {
	if now == nil {
		now = time.Now
	}
	return &Lifecycle{
		store:          store,
		metricsManager: metricsManager,
		now:            now,
	}
}

func defaultWorkoutTitle(now time.Time) string {
	return now.Format("January 2") + " Workout"
}

func (l *Lifecycle) countExpired(ids []int) {
	if len(ids) == 0 {
		return
	}
	l.metricsManager.CounterWorkoutsExpired.Add(float64(len(ids)))
	log.Debugf("force-completed expired workouts: %v", ids)
}

// findActive expires a stale ACTIVE workout of the user before looking it up,
// so the ACTIVE one returned here is always within MaxWorkoutDuration.
func (l *Lifecycle) findActive(ctx context.Context, tx Tx, userID int, forUpdate bool) (_ *Workout, expired []int, err error) {
	expired, err = expireStale(ctx, tx, l.now(), &userID)
	if err != nil {
		return nil, nil, err
	}

	status := StatusActive
	w, err := tx.FindWorkout(ctx, userID, GetWorkoutParams{Status: &status}, forUpdate)
	return w, expired, err
}

// ownedWorkout loads a workout by id with its row locked. A missing workout
// is reported as missingKind.
func ownedWorkout(ctx context.Context, tx Tx, userID, workoutID int, missingKind error) (*Workout, error) {
	w, err := tx.GetWorkout(ctx, workoutID, true)
	if err != nil {
		if errors.Is(err, ErrNotFound) && missingKind != ErrNotFound {
			return nil, kindError(missingKind, "workout %d not accessible", workoutID)
		}
		return nil, err
	}
	if w.UserID != userID {
		return nil, kindError(ErrForbidden, "workout %d not owned by user %d", workoutID, userID)
	}
	return w, nil
}

func wantsCompleted(params GetWorkoutParams) bool {
	return params.Status != nil && *params.Status == StatusCompleted
}

// ownedLiveWorkout is ownedWorkout after expiring the user's stale ACTIVE
// workout. A workout expired on the way is reported as missingKind, its
// expiry stays committed.
func (l *Lifecycle) ownedLiveWorkout(ctx context.Context, tx Tx, userID, workoutID int, missingKind error) (_ *Workout, expired []int, gone bool, err error) {
	expired, err = expireStale(ctx, tx, l.now(), &userID)
	if err != nil {
		return nil, nil, false, err
	}
	if slices.Contains(expired, workoutID) {
		return nil, expired, true, nil
	}
	w, err := ownedWorkout(ctx, tx, userID, workoutID, missingKind)
	return w, expired, false, err
}

// GetWorkout returns the newest workout of the user matching params, fully
// expanded. Stale ACTIVE workouts of the user are completed first and a
// match that was expired this way is reported as not found.
func (l *Lifecycle) GetWorkout(ctx context.Context, userID int, params GetWorkoutParams) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.lifecycle.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		w         *Workout
		expired   []int
		lookupErr error
	)
	err = l.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		expired, err = expireStale(ctx, tx, l.now(), &userID)
		if err != nil {
			return err
		}

		// a miss must not roll the expiry back, it is reported after commit
		w, err = tx.FindWorkout(ctx, userID, params, false)
		switch {
		case errors.Is(err, ErrNotFound):
			lookupErr = err
			return nil
		case err != nil:
			return err
		}
		// a workout expired by this read was ACTIVE when matched
		if slices.Contains(expired, w.ID) && !wantsCompleted(params) {
			lookupErr = kindError(ErrNotFound, "workout %d expired", w.ID)
			return nil
		}
		return tx.ExpandWorkout(ctx, w)
	})
	if err != nil {
		return nil, Classify("workouts.lifecycle.get", log.Fields{"userId": userID}, err)
	}

	l.countExpired(expired)
	if lookupErr != nil {
		return nil, lookupErr
	}

	return w, nil
}

// CreateDraftWorkout replaces any DRAFT of the user with a new one.
func (l *Lifecycle) CreateDraftWorkout(ctx context.Context, userID int, params CreateWorkoutParams) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.lifecycle.create_draft")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var w *Workout
	err = l.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.LockUser(ctx, userID); err != nil {
			return err
		}

		deleted, err := tx.DeleteUserWorkouts(ctx, userID, StatusDraft)
		if err != nil {
			return err
		}
		if deleted > 0 {
			log.Debugf("user %d: replaced %d draft workouts", userID, deleted)
		}

		now := l.now()
		w, err = tx.InsertWorkout(ctx, Workout{
			UserID:    userID,
			Status:    StatusDraft,
			Title:     params.Title,
			StartedAt: now,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		return tx.ExpandWorkout(ctx, w)
	})
	if err != nil {
		return nil, Classify("workouts.lifecycle.create_draft", log.Fields{"userId": userID}, err)
	}

	l.metricsManager.CounterWorkoutsCreated.WithLabelValues(string(StatusDraft)).Inc()
	return w, nil
}

func (l *Lifecycle) CreateActiveWorkout(ctx context.Context, userID int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.lifecycle.create_active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		w       *Workout
		expired []int
	)
	err = l.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.LockUser(ctx, userID); err != nil {
			return err
		}

		existing, exp, err := l.findActive(ctx, tx, userID, false)
		expired = exp
		switch {
		case err == nil:
			return kindError(ErrConflict, "user %d already has active workout %d", userID, existing.ID)
		case !errors.Is(err, ErrNotFound):
			return err
		}

		now := l.now()
		title := defaultWorkoutTitle(now)
		w, err = tx.InsertWorkout(ctx, Workout{
			UserID:    userID,
			Status:    StatusActive,
			Title:     &title,
			StartedAt: now,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		return tx.ExpandWorkout(ctx, w)
	})
	if err != nil {
		return nil, Classify("workouts.lifecycle.create_active", log.Fields{"userId": userID}, err)
	}

	l.countExpired(expired)
	l.metricsManager.CounterWorkoutsCreated.WithLabelValues(string(StatusActive)).Inc()
	return w, nil
}

// updateActive locks the user's ACTIVE workout, applies mutate to it and
// stores the result. No active workout is reported as forbidden.
func (l *Lifecycle) updateActive(ctx context.Context, op string, userID int, mutate func(w *Workout, now time.Time) error) (*Workout, error) {
	var (
		w       *Workout
		expired []int
		noneErr error
	)
	err := l.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		w, expired, err = l.findActive(ctx, tx, userID, true)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				noneErr = kindError(ErrForbidden, "user %d has no active workout", userID)
				return nil
			}
			return err
		}

		now := l.now()
		if err := mutate(w, now); err != nil {
			return err
		}
		w.UpdatedAt = now
		if err := tx.UpdateWorkout(ctx, w); err != nil {
			return err
		}
		return tx.ExpandWorkout(ctx, w)
	})
	if err != nil {
		return nil, Classify(op, log.Fields{"userId": userID}, err)
	}

	l.countExpired(expired)
	if noneErr != nil {
		return nil, noneErr
	}
	return w, nil
}

func (l *Lifecycle) PauseActiveWorkout(ctx context.Context, userID int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.lifecycle.pause")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return l.updateActive(ctx, "workouts.lifecycle.pause", userID, func(w *Workout, now time.Time) error {
		if w.IsPaused {
			return kindError(ErrBadRequest, "workout %d is already paused", w.ID)
		}
		w.IsPaused = true
		w.LastPauseStartTime = &now
		return nil
	})
}

func (l *Lifecycle) ResumeActiveWorkout(ctx context.Context, userID int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.lifecycle.resume")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return l.updateActive(ctx, "workouts.lifecycle.resume", userID, func(w *Workout, now time.Time) error {
		if !w.IsPaused || w.LastPauseStartTime == nil {
			return kindError(ErrBadRequest, "workout %d is not paused", w.ID)
		}
		endPause(w, now)
		return nil
	})
}

// endPause adds the running pause to the accumulated pause time and clears
// the pause flags.
func endPause(w *Workout, now time.Time) {
	if w.LastPauseStartTime != nil {
		w.PauseDuration += max(0, now.Sub(*w.LastPauseStartTime).Milliseconds())
	}
	w.IsPaused = false
	w.LastPauseStartTime = nil
}

// activeSeconds is the wall time since start minus pauses, floored at zero.
func activeSeconds(w *Workout, now time.Time) int {
	activeMs := now.Sub(w.StartedAt).Milliseconds() - w.PauseDuration
	return int(max(0, activeMs) / 1000)
}

// CompleteWorkout finishes an ACTIVE or DRAFT workout. ACTIVE workouts get
// their active duration computed, DRAFT ones keep the manually entered one.
// An ACTIVE workout past MaxWorkoutDuration is expired instead and reported
// as not found.
func (l *Lifecycle) CompleteWorkout(ctx context.Context, userID, workoutID int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.lifecycle.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		w          *Workout
		fromStatus Status
		expired    []int
		goneErr    error
	)
	err = l.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		var (
			err  error
			gone bool
		)
		w, expired, gone, err = l.ownedLiveWorkout(ctx, tx, userID, workoutID, ErrNotFound)
		if err != nil {
			return err
		}
		if gone {
			goneErr = kindError(ErrNotFound, "workout %d expired", workoutID)
			return nil
		}
		if w.Status == StatusCompleted {
			return kindError(ErrConflict, "workout %d is already completed", workoutID)
		}

		now := l.now()
		fromStatus = w.Status
		if w.Status == StatusActive {
			if w.IsPaused {
				endPause(w, now)
			}
			w.ActiveDuration = activeSeconds(w, now)
		}
		w.Status = StatusCompleted
		w.CompletedAt = &now
		w.UpdatedAt = now

		if err := tx.UpdateWorkout(ctx, w); err != nil {
			return err
		}
		return tx.ExpandWorkout(ctx, w)
	})
	if err != nil {
		return nil, Classify("workouts.lifecycle.complete", log.Fields{"userId": userID, "workoutId": workoutID}, err)
	}

	l.countExpired(expired)
	if goneErr != nil {
		return nil, goneErr
	}
	l.metricsManager.CounterWorkoutsCompleted.WithLabelValues(string(fromStatus)).Inc()
	return w, nil
}

// UpdateWorkout patches the supplied fields. A missing workout is reported
// as forbidden, the same as one owned by another user.
func (l *Lifecycle) UpdateWorkout(ctx context.Context, workoutID, userID int, params UpdateWorkoutParams) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.lifecycle.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		w       *Workout
		expired []int
		goneErr error
	)
	err = l.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		var (
			err  error
			gone bool
		)
		w, expired, gone, err = l.ownedLiveWorkout(ctx, tx, userID, workoutID, ErrForbidden)
		if err != nil {
			return err
		}
		if gone {
			goneErr = kindError(ErrForbidden, "workout %d expired", workoutID)
			return nil
		}
		if params.ActiveDuration != nil && w.Status == StatusActive {
			return kindError(ErrForbidden, "active duration of active workout %d is computed", workoutID)
		}

		if params.Title != nil {
			w.Title = params.Title
		}
		if params.Notes != nil {
			w.Notes = params.Notes
		}
		if params.StartedAt != nil {
			w.StartedAt = *params.StartedAt
		}
		if params.ActiveDuration != nil {
			w.ActiveDuration = *params.ActiveDuration
		}
		w.UpdatedAt = l.now()

		if err := tx.UpdateWorkout(ctx, w); err != nil {
			return err
		}
		return tx.ExpandWorkout(ctx, w)
	})
	if err != nil {
		return nil, Classify("workouts.lifecycle.update", log.Fields{"userId": userID, "workoutId": workoutID}, err)
	}

	l.countExpired(expired)
	if goneErr != nil {
		return nil, goneErr
	}
	return w, nil
}

// DeleteActiveWorkout discards the user's ACTIVE workout and returns it.
func (l *Lifecycle) DeleteActiveWorkout(ctx context.Context, userID int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.lifecycle.delete_active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		w       *Workout
		expired []int
		noneErr error
	)
	err = l.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		w, expired, err = l.findActive(ctx, tx, userID, true)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				noneErr = kindError(ErrForbidden, "user %d has no active workout", userID)
				return nil
			}
			return err
		}
		if err := tx.ExpandWorkout(ctx, w); err != nil {
			return err
		}
		return tx.DeleteWorkout(ctx, w.ID)
	})
	if err != nil {
		return nil, Classify("workouts.lifecycle.delete_active", log.Fields{"userId": userID}, err)
	}

	l.countExpired(expired)
	if noneErr != nil {
		return nil, noneErr
	}
	return w, nil
}

func (l *Lifecycle) DeleteWorkout(ctx context.Context, workoutID, userID int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.lifecycle.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var w *Workout
	err = l.store.InTx(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		w, err = ownedWorkout(ctx, tx, userID, workoutID, ErrNotFound)
		if err != nil {
			return err
		}
		if err := tx.ExpandWorkout(ctx, w); err != nil {
			return err
		}
		return tx.DeleteWorkout(ctx, w.ID)
	})
	if err != nil {
		return nil, Classify("workouts.lifecycle.delete", log.Fields{"userId": userID, "workoutId": workoutID}, err)
	}

	return w, nil
}
