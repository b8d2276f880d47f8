package workouts

import (
	"encoding/json"
	"time"
)

// MaxWorkoutDuration is how long a workout may stay ACTIVE before it is
// force-completed. Pause time does not extend it.
const MaxWorkoutDuration = 12 * time.Hour

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
)

type SetType string

const (
	SetTypeWarmup SetType = "WARMUP"
	SetTypeNormal SetType = "NORMAL"
)

type Category string

const (
	CategoryStrength Category = "strength"
	CategoryCardio   Category = "cardio"
)

type Workout struct {
	ID                 int        `json:"id"`
	UserID             int        `json:"userId"`
	Status             Status     `json:"status"`
	Title              *string    `json:"title"`
	Notes              *string    `json:"notes"`
	StartedAt          time.Time  `json:"startedAt"`
	CompletedAt        *time.Time `json:"completedAt"`
	ActiveDuration     int        `json:"activeDuration"` // seconds
	IsPaused           bool       `json:"isPaused"`
	LastPauseStartTime *time.Time `json:"lastPauseStartTime"`
	PauseDuration      int64      `json:"pauseDuration"` // milliseconds
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`

	WorkoutExercises []WorkoutExercise `json:"workoutExercises"`
}

// Expired reports whether an ACTIVE workout ran past MaxWorkoutDuration.
func (w *Workout) Expired(now time.Time) bool {
	return w.Status == StatusActive && now.Sub(w.StartedAt) >= MaxWorkoutDuration
}

type Exercise struct {
	ID                 int      `json:"id"`
	UserID             *int     `json:"userId"`
	Name               string   `json:"name"`
	Category           Category `json:"category"`
	Equipment          *string  `json:"equipment"`
	TargetMuscleGroups []string `json:"targetMuscleGroups"`
}

// VisibleTo reports whether the exercise is a system one or owned by userID.
func (e *Exercise) VisibleTo(userID int) bool {
	return e.UserID == nil || *e.UserID == userID
}

type WorkoutExercise struct {
	ID                        int       `json:"id"`
	WorkoutID                 int       `json:"workoutId"`
	ExerciseID                int       `json:"exerciseId"`
	ExerciseOrder             int       `json:"exerciseOrder"`
	PreviousWorkoutExerciseID *int      `json:"previousWorkoutExerciseId"`
	Notes                     *string   `json:"notes"`
	CreatedAt                 time.Time `json:"createdAt"`
	UpdatedAt                 time.Time `json:"updatedAt"`

	Exercise                *Exercise                `json:"exercise,omitempty"`
	WorkoutSets             []WorkoutSet             `json:"workoutSets"`
	PreviousWorkoutExercise *PreviousWorkoutExercise `json:"previousWorkoutExercise"`
}

// PreviousWorkoutExercise is the carryover snapshot shown next to an exercise:
// the completed sets of its previous occurrence.
type PreviousWorkoutExercise struct {
	ID          int          `json:"id"`
	WorkoutSets []WorkoutSet `json:"workoutSets"`
}

type WorkoutSet struct {
	ID                int        `json:"id"`
	WorkoutExerciseID int        `json:"workoutExerciseId"`
	SetNumber         int        `json:"setNumber"`
	Type              SetType    `json:"type"`
	Reps              *int       `json:"reps"`
	Weight            *float64   `json:"weight"`
	Duration          *int       `json:"duration"` // seconds
	Notes             *string    `json:"notes"`
	CompletedAt       *time.Time `json:"completedAt"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (s WorkoutSet) Completed() bool {
	return s.CompletedAt != nil
}

// MarshalJSON adds the derived completed flag.
func (s WorkoutSet) MarshalJSON() ([]byte, error) {
	type plain WorkoutSet
	return json.Marshal(struct {
		plain
		Completed bool `json:"completed"`
	}{
		plain:     plain(s),
		Completed: s.Completed(),
	})
}

type GetWorkoutParams struct {
	ID     *int
	Status *Status
}

type CreateWorkoutParams struct {
	Title *string
}

type UpdateWorkoutParams struct {
	Title          *string
	Notes          *string
	StartedAt      *time.Time
	ActiveDuration *int
}

type CreateSetParams struct {
	Type     *SetType
	Reps     *int
	Weight   *float64
	Duration *int
	Notes    *string
}

type UpdateSetParams struct {
	Type      *SetType
	Reps      *int
	Weight    *float64
	Duration  *int
	Notes     *string
	Completed *bool
}
