package workouts

import (
	"context"
	"time"
)

// Store runs units of work against workout persistence. Every mutation of
// the engine happens inside one InTx call: either all of its writes are
// committed or none are.
type Store interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// ExpireParams selects ACTIVE workouts started at or before Cutoff.
// A nil UserID selects workouts of all users.
type ExpireParams struct {
	UserID *int
	Cutoff time.Time
}

// Tx is the set of queries the engine issues within a transaction.
// Lookups of a single entity return ErrNotFound when nothing matches.
type Tx interface {
	// LockUser serializes creation paths of one user until the tx ends.
	LockUser(ctx context.Context, userID int) error

	// FindWorkout returns the newest (by startedAt) workout of the user
	// matching params.
	FindWorkout(ctx context.Context, userID int, params GetWorkoutParams, forUpdate bool) (*Workout, error)
	// GetWorkout returns a workout by id regardless of its owner.
	GetWorkout(ctx context.Context, id int, forUpdate bool) (*Workout, error)
	InsertWorkout(ctx context.Context, w Workout) (*Workout, error)
	UpdateWorkout(ctx context.Context, w *Workout) error
	DeleteWorkout(ctx context.Context, id int) error
	DeleteUserWorkouts(ctx context.Context, userID int, status Status) (int64, error)
	// ExpireWorkouts force-completes stale ACTIVE workouts with
	// completedAt = startedAt + MaxWorkoutDuration and returns their ids.
	ExpireWorkouts(ctx context.Context, params ExpireParams) ([]int, error)
	// ExpandWorkout loads exercises, sets and carryover snapshots.
	ExpandWorkout(ctx context.Context, w *Workout) error

	GetExercise(ctx context.Context, id int) (*Exercise, error)
	GetWorkoutExercise(ctx context.Context, id int, forUpdate bool) (*WorkoutExercise, error)
	// ExpandWorkoutExercise loads the catalog exercise and the sets.
	ExpandWorkoutExercise(ctx context.Context, we *WorkoutExercise) error
	MaxExerciseOrder(ctx context.Context, workoutID int) (int, error)
	InsertWorkoutExercise(ctx context.Context, we WorkoutExercise) (*WorkoutExercise, error)
	UpdateWorkoutExerciseNotes(ctx context.Context, id int, notes *string) error
	DeleteWorkoutExercise(ctx context.Context, id int) error
	// FindPreviousOccurrence returns the user's most recent occurrence of the
	// exercise in a COMPLETED workout started strictly before the given time,
	// with its sets loaded.
	FindPreviousOccurrence(ctx context.Context, userID, exerciseID int, before time.Time) (*WorkoutExercise, error)

	GetSet(ctx context.Context, id int) (*WorkoutSet, error)
	InsertSet(ctx context.Context, s WorkoutSet) (*WorkoutSet, error)
	UpdateSet(ctx context.Context, s *WorkoutSet) error
	DeleteSet(ctx context.Context, id int) error
	MaxSetNumber(ctx context.Context, workoutExerciseID int) (int, error)
	HasWarmup(ctx context.Context, workoutExerciseID int) (bool, error)
	// ShiftSetNumbers adds delta to the number of every set of the exercise
	// with setNumber >= from, except excludeSetID. Returns the rows touched.
	ShiftSetNumbers(ctx context.Context, workoutExerciseID, from, delta, excludeSetID int) (int64, error)
}
