package stats_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danmlarsen/workout-tracker-backend/internal/workouts"
	"github.com/danmlarsen/workout-tracker-backend/internal/workouts/stats"
	"github.com/danmlarsen/workout-tracker-backend/pkg"
)

func completedSet(id, number int, weight float64, reps int) workouts.WorkoutSet {
	done := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return workouts.WorkoutSet{
		ID:          id,
		SetNumber:   number,
		Type:        workouts.SetTypeNormal,
		Weight:      pkg.Ptr(weight),
		Reps:        pkg.Ptr(reps),
		CompletedAt: &done,
	}
}

func TestOneRepMax(t *testing.T) {
	assert.Equal(t, 100.0, stats.OneRepMax(100, 1))
	assert.InDelta(t, 133.33, stats.OneRepMax(100, 10), 0.01)
	assert.InDelta(t, 120.0, stats.OneRepMax(90, 10), 0.01)
	assert.Equal(t, 0.0, stats.OneRepMax(100, 0))
}

func TestAggregator_GetWorkoutStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	aggregator := stats.NewAggregator(repoMock)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rng := stats.Range{From: &from}
	repoMock.EXPECT().
		Totals(gomock.Any(), 7, rng).
		Return(&stats.Totals{Workouts: 3, ActiveSeconds: 9000, WeightLifted: 1234.5678}, nil)

	res, err := aggregator.GetWorkoutStats(context.Background(), 7, rng)
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalWorkouts)
	assert.Equal(t, 2.5, res.TotalHours)
	assert.Equal(t, 1234.57, res.TotalWeightLifted)
}

func TestAggregator_GetWorkoutStats_RepoFailureIsInternal(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	aggregator := stats.NewAggregator(repoMock)

	repoMock.EXPECT().
		Totals(gomock.Any(), 7, stats.Range{}).
		Return(nil, errors.New("connection reset"))

	res, err := aggregator.GetWorkoutStats(context.Background(), 7, stats.Range{})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, workouts.ErrInternal)
}

func TestAggregator_GetWorkoutCalendar(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	aggregator := stats.NewAggregator(repoMock)

	yearStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repoMock.EXPECT().
		StartTimes(gomock.Any(), 7, yearStart, yearStart.AddDate(1, 0, 0)).
		Return([]time.Time{
			time.Date(2025, 2, 3, 8, 0, 0, 0, time.UTC),
			time.Date(2025, 2, 3, 18, 0, 0, 0, time.UTC),
			time.Date(2025, 5, 10, 7, 30, 0, 0, time.UTC),
		}, nil)

	calendar, err := aggregator.GetWorkoutCalendar(context.Background(), 7, 2025)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-02-03", "2025-05-10"}, calendar.WorkoutDates)
	assert.Equal(t, 3, calendar.TotalWorkouts)
}

func TestAggregator_GetWorkoutCalendar_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	aggregator := stats.NewAggregator(repoMock)

	repoMock.EXPECT().
		StartTimes(gomock.Any(), 7, gomock.Any(), gomock.Any()).
		Return(nil, nil)

	calendar, err := aggregator.GetWorkoutCalendar(context.Background(), 7, 2024)
	require.NoError(t, err)
	assert.Empty(t, calendar.WorkoutDates)
	assert.NotNil(t, calendar.WorkoutDates)
	assert.Zero(t, calendar.TotalWorkouts)
}

func TestAggregator_GetCompletedWorkouts_Summaries(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	aggregator := stats.NewAggregator(repoMock)

	bench := &workouts.Exercise{ID: 1, Name: "Bench Press", Category: workouts.CategoryStrength}
	running := &workouts.Exercise{ID: 6, Name: "Running", Category: workouts.CategoryCardio}
	squat := &workouts.Exercise{ID: 2, Name: "Back Squat", Category: workouts.CategoryStrength}

	completedAt := time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)
	runSet := workouts.WorkoutSet{ID: 21, SetNumber: 1, Type: workouts.SetTypeNormal, Duration: pkg.Ptr(1200), CompletedAt: &completedAt}
	longRun := workouts.WorkoutSet{ID: 22, SetNumber: 2, Type: workouts.SetTypeNormal, Duration: pkg.Ptr(1800), CompletedAt: &completedAt}
	pendingSquat := workouts.WorkoutSet{ID: 31, SetNumber: 1, Type: workouts.SetTypeNormal, Weight: pkg.Ptr(140.0), Reps: pkg.Ptr(5)}

	w := workouts.Workout{
		ID:             40,
		Status:         workouts.StatusCompleted,
		Title:          pkg.Ptr("Push day"),
		StartedAt:      time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		CompletedAt:    &completedAt,
		ActiveDuration: 3600,
		WorkoutExercises: []workouts.WorkoutExercise{
			{
				ID:         100,
				ExerciseID: bench.ID,
				Exercise:   bench,
				WorkoutSets: []workouts.WorkoutSet{
					completedSet(11, 1, 100, 5),
					completedSet(12, 2, 90, 10),
					completedSet(13, 3, 110, 1),
				},
			},
			{
				ID:          101,
				ExerciseID:  running.ID,
				Exercise:    running,
				WorkoutSets: []workouts.WorkoutSet{runSet, longRun},
			},
			{
				ID:          102,
				ExerciseID:  squat.ID,
				Exercise:    squat,
				WorkoutSets: []workouts.WorkoutSet{pendingSquat},
			},
		},
	}

	repoMock.EXPECT().
		ListCompleted(gomock.Any(), workouts.ListCompletedParams{UserID: 7, Limit: stats.PageSize + 1}).
		Return([]workouts.Workout{w}, nil)

	page, err := aggregator.GetCompletedWorkouts(context.Background(), 7, stats.CompletedParams{})
	require.NoError(t, err)
	assert.Nil(t, page.NextCursor)
	require.Len(t, page.Results, 1)

	summary := page.Results[0]
	assert.Equal(t, 40, summary.ID)
	assert.Equal(t, "Push day", *summary.Title)
	assert.Equal(t, 3600, summary.ActiveDuration)
	assert.Equal(t, 5, summary.TotalCompletedSets)
	assert.Equal(t, 1510.0, summary.TotalWeight)

	// squat has no completed sets
	require.Len(t, summary.Exercises, 2)

	benchSummary := summary.Exercises[0]
	assert.Equal(t, "Bench Press", benchSummary.Name)
	assert.Equal(t, workouts.CategoryStrength, benchSummary.Category)
	assert.Equal(t, 3, benchSummary.CompletedSets)
	require.NotNil(t, benchSummary.BestSet)
	// 90x10 -> 120, beats 100x5 -> 116.67 and 110x1 -> 110
	assert.Equal(t, 12, benchSummary.BestSet.ID)

	runSummary := summary.Exercises[1]
	assert.Equal(t, workouts.CategoryCardio, runSummary.Category)
	assert.Equal(t, 2, runSummary.CompletedSets)
	require.NotNil(t, runSummary.BestSet)
	assert.Equal(t, 22, runSummary.BestSet.ID)
}

func TestAggregator_GetCompletedWorkouts_Pagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	aggregator := stats.NewAggregator(repoMock)

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	var ws []workouts.Workout
	for i := 0; i < stats.PageSize+1; i++ {
		ws = append(ws, workouts.Workout{
			ID:        100 - i,
			Status:    workouts.StatusCompleted,
			StartedAt: base.Add(-time.Duration(i) * time.Hour),
		})
	}

	pos := &workouts.Position{StartedAt: base.Add(time.Hour), ID: 101}
	gomock.InOrder(
		repoMock.EXPECT().
			CompletedPosition(gomock.Any(), 7, 101).
			Return(pos, nil),
		repoMock.EXPECT().
			ListCompleted(gomock.Any(), workouts.ListCompletedParams{UserID: 7, After: pos, Limit: stats.PageSize + 1}).
			Return(ws, nil),
	)

	page, err := aggregator.GetCompletedWorkouts(context.Background(), 7, stats.CompletedParams{Cursor: pkg.Ptr(101)})
	require.NoError(t, err)
	require.Len(t, page.Results, stats.PageSize)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, 91, *page.NextCursor)
	assert.Equal(t, 100, page.Results[0].ID)
}

func TestAggregator_GetCompletedWorkouts_UnknownCursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	aggregator := stats.NewAggregator(repoMock)

	repoMock.EXPECT().
		CompletedPosition(gomock.Any(), 7, 5).
		Return(nil, fmt.Errorf("%w: cursor 5 not found", workouts.ErrNotFound))

	page, err := aggregator.GetCompletedWorkouts(context.Background(), 7, stats.CompletedParams{Cursor: pkg.Ptr(5)})
	assert.Nil(t, page)
	assert.ErrorIs(t, err, workouts.ErrNotFound)
}

func TestAggregator_GetCompletedWorkoutsCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockstatsRepo(ctrl)
	aggregator := stats.NewAggregator(repoMock)

	repoMock.EXPECT().CountCompleted(gomock.Any(), 7).Return(12, nil)

	count, err := aggregator.GetCompletedWorkoutsCount(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}
