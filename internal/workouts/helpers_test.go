package workouts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/metrics"
	"github.com/danmlarsen/workout-tracker-backend/internal/workouts"
	"github.com/danmlarsen/workout-tracker-backend/pkg"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type testEnv struct {
	service *workouts.Service
	store   *workouts.MemStore
	clock   *testClock
	metrics *metrics.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := workouts.NewMemStore()
	clock := &testClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	mm := metrics.NewTestManager()
	return &testEnv{
		service: workouts.NewService(store, mm, clock.Now),
		store:   store,
		clock:   clock,
		metrics: mm,
	}
}

// completedWorkoutWith runs a whole ACTIVE workout for userID with one exercise
// and completes the first `completed` of its sets, adding sets as needed.
func (e *testEnv) completedWorkoutWith(t *testing.T, userID, exerciseID, sets, completed int) *workouts.Workout {
	t.Helper()
	ctx := context.Background()

	w, err := e.service.CreateActiveWorkout(ctx, userID)
	require.NoError(t, err)
	w, err = e.service.AttachExercise(ctx, userID, w.ID, exerciseID)
	require.NoError(t, err)

	we := w.WorkoutExercises[len(w.WorkoutExercises)-1]
	for len(we.WorkoutSets) < sets {
		w, err = e.service.CreateSet(ctx, we.ID, userID, workouts.CreateSetParams{})
		require.NoError(t, err)
		we = w.WorkoutExercises[len(w.WorkoutExercises)-1]
	}

	done := true
	for i := 0; i < completed; i++ {
		_, err = e.service.UpdateSet(ctx, we.WorkoutSets[i].ID, userID, workouts.UpdateSetParams{
			Reps:      pkg.Ptr(5),
			Weight:    pkg.Ptr(100.0),
			Completed: &done,
		})
		require.NoError(t, err)
	}

	e.clock.Advance(time.Hour)
	w, err = e.service.CompleteWorkout(ctx, userID, w.ID)
	require.NoError(t, err)
	e.clock.Advance(time.Hour)
	return w
}

func setNumbers(we workouts.WorkoutExercise) []int {
	numbers := make([]int, 0, len(we.WorkoutSets))
	for _, s := range we.WorkoutSets {
		numbers = append(numbers, s.SetNumber)
	}
	return numbers
}
