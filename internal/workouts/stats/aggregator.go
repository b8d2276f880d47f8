package stats

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/danmlarsen/workout-tracker-backend/internal/telemetry/tracing"
	"github.com/danmlarsen/workout-tracker-backend/internal/workouts"
)

// PageSize is the number of completed workouts per listing page.
const PageSize = 10

type Range struct {
	From *time.Time
	To   *time.Time
}

type WorkoutStats struct {
	TotalWorkouts     int     `json:"totalWorkouts"`
	TotalHours        float64 `json:"totalHours"`
	TotalWeightLifted float64 `json:"totalWeightLifted"`
}

type Calendar struct {
	WorkoutDates  []string `json:"workoutDates"`
	TotalWorkouts int      `json:"totalWorkouts"`
}

type CompletedParams struct {
	Cursor *int
	From   *time.Time
	To     *time.Time
}

type ExerciseSummary struct {
	ID            int                  `json:"id"`
	ExerciseID    int                  `json:"exerciseId"`
	Name          string               `json:"name"`
	Category      workouts.Category    `json:"category"`
	CompletedSets int                  `json:"completedSets"`
	BestSet       *workouts.WorkoutSet `json:"bestSet"`
}

type WorkoutSummary struct {
	ID                 int               `json:"id"`
	Title              *string           `json:"title"`
	StartedAt          time.Time         `json:"startedAt"`
	CompletedAt        *time.Time        `json:"completedAt"`
	ActiveDuration     int               `json:"activeDuration"`
	TotalWeight        float64           `json:"totalWeight"`
	TotalCompletedSets int               `json:"totalCompletedSets"`
	Exercises          []ExerciseSummary `json:"exercises"`
}

type CompletedPage struct {
	Results    []WorkoutSummary `json:"results"`
	NextCursor *int             `json:"nextCursor"`
}

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=stats_test

type statsRepo interface {
	Totals(ctx context.Context, userID int, rng Range) (*Totals, error)
	StartTimes(ctx context.Context, userID int, from, to time.Time) ([]time.Time, error)
	CountCompleted(ctx context.Context, userID int) (int, error)
	CompletedPosition(ctx context.Context, userID, workoutID int) (*workouts.Position, error)
	ListCompleted(ctx context.Context, params workouts.ListCompletedParams) ([]workouts.Workout, error)
}

// Aggregator serves read-only views over completed workouts.
type Aggregator struct {
	repo statsRepo
}

func NewAggregator(repo statsRepo) *Aggregator {
	return &Aggregator{
		repo: repo,
	}
}

func (a *Aggregator) GetWorkoutStats(ctx context.Context, userID int, rng Range) (_ *WorkoutStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.stats.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	totals, err := a.repo.Totals(ctx, userID, rng)
	if err != nil {
		return nil, workouts.Classify("workouts.stats.summary", log.Fields{"userId": userID}, err)
	}

	return &WorkoutStats{
		TotalWorkouts:     totals.Workouts,
		TotalHours:        round2(float64(totals.ActiveSeconds) / 3600),
		TotalWeightLifted: round2(totals.WeightLifted),
	}, nil
}

// GetWorkoutCalendar lists the distinct UTC days of the year on which the user
// started a completed workout.
func (a *Aggregator) GetWorkoutCalendar(ctx context.Context, userID, year int) (_ *Calendar, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.stats.calendar")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("year", year))

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	startTimes, err := a.repo.StartTimes(ctx, userID, from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, workouts.Classify("workouts.stats.calendar", log.Fields{"userId": userID, "year": year}, err)
	}

	calendar := &Calendar{
		WorkoutDates:  []string{},
		TotalWorkouts: len(startTimes),
	}
	seen := make(map[string]bool, len(startTimes))
	for _, t := range startTimes {
		day := t.UTC().Format(time.DateOnly)
		if seen[day] {
			continue
		}
		seen[day] = true
		calendar.WorkoutDates = append(calendar.WorkoutDates, day)
	}

	return calendar, nil
}

func (a *Aggregator) GetCompletedWorkoutsCount(ctx context.Context, userID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.stats.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	count, err := a.repo.CountCompleted(ctx, userID)
	if err != nil {
		return 0, workouts.Classify("workouts.stats.count", log.Fields{"userId": userID}, err)
	}
	return count, nil
}

// GetCompletedWorkouts returns one page of completed workouts, newest first.
// The cursor is the id of the last workout of the previous page.
func (a *Aggregator) GetCompletedWorkouts(ctx context.Context, userID int, params CompletedParams) (_ *CompletedPage, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.stats.completed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	fields := log.Fields{"userId": userID}
	listParams := workouts.ListCompletedParams{
		UserID: userID,
		From:   params.From,
		To:     params.To,
		Limit:  PageSize + 1,
	}
	if params.Cursor != nil {
		fields["cursor"] = *params.Cursor
		listParams.After, err = a.repo.CompletedPosition(ctx, userID, *params.Cursor)
		if err != nil {
			return nil, workouts.Classify("workouts.stats.completed", fields, err)
		}
	}

	ws, err := a.repo.ListCompleted(ctx, listParams)
	if err != nil {
		return nil, workouts.Classify("workouts.stats.completed", fields, err)
	}

	page := &CompletedPage{
		Results: []WorkoutSummary{},
	}
	hasMore := len(ws) > PageSize
	if hasMore {
		ws = ws[:PageSize]
	}
	for i := range ws {
		page.Results = append(page.Results, summarize(&ws[i]))
	}
	if hasMore {
		lastID := ws[len(ws)-1].ID
		page.NextCursor = &lastID
	}

	return page, nil
}

func summarize(w *workouts.Workout) WorkoutSummary {
	summary := WorkoutSummary{
		ID:             w.ID,
		Title:          w.Title,
		StartedAt:      w.StartedAt,
		CompletedAt:    w.CompletedAt,
		ActiveDuration: w.ActiveDuration,
		Exercises:      []ExerciseSummary{},
	}

	var totalWeight float64
	for _, we := range w.WorkoutExercises {
		exSummary := ExerciseSummary{
			ID:         we.ID,
			ExerciseID: we.ExerciseID,
		}
		if we.Exercise != nil {
			exSummary.Name = we.Exercise.Name
			exSummary.Category = we.Exercise.Category
		}

		var completed []workouts.WorkoutSet
		for _, s := range we.WorkoutSets {
			if !s.Completed() {
				continue
			}
			completed = append(completed, s)
			if s.Weight != nil && s.Reps != nil {
				totalWeight += *s.Weight * float64(*s.Reps)
			}
		}
		if len(completed) == 0 {
			continue
		}

		exSummary.CompletedSets = len(completed)
		exSummary.BestSet = bestSet(exSummary.Category, completed)
		summary.TotalCompletedSets += len(completed)
		summary.Exercises = append(summary.Exercises, exSummary)
	}
	summary.TotalWeight = round2(totalWeight)

	return summary
}

// bestSet picks the longest set of a cardio exercise, otherwise the set with
// the highest estimated one-rep max. The earliest set wins ties.
func bestSet(category workouts.Category, sets []workouts.WorkoutSet) *workouts.WorkoutSet {
	var (
		best      *workouts.WorkoutSet
		bestScore float64
	)
	for i := range sets {
		s := &sets[i]
		var score float64
		if category == workouts.CategoryCardio {
			if s.Duration == nil {
				continue
			}
			score = float64(*s.Duration)
		} else {
			if s.Weight == nil || s.Reps == nil {
				continue
			}
			score = OneRepMax(*s.Weight, *s.Reps)
		}
		if best == nil || score > bestScore {
			best = s
			bestScore = score
		}
	}
	if best == nil {
		return nil
	}
	result := *best
	return &result
}
