package workouts

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// expandWorkouts fills in exercises (ordered by exerciseOrder), their sets
// (ordered by setNumber, then updatedAt) and the completed sets of each
// previous occurrence, in three round trips regardless of the slice size.
func expandWorkouts(ctx context.Context, q querier, ws []Workout) error {
	if len(ws) == 0 {
		return nil
	}

	workoutIDs := make([]int, 0, len(ws))
	byWorkoutID := make(map[int]int, len(ws))
	for i := range ws {
		workoutIDs = append(workoutIDs, ws[i].ID)
		byWorkoutID[ws[i].ID] = i
		ws[i].WorkoutExercises = []WorkoutExercise{}
	}

	rows, err := q.Query(
		ctx,
		`SELECT we.id, we.workout_id, we.exercise_id, we.exercise_order, we.previous_workout_exercise_id,
			we.notes, we.created_at, we.updated_at,
			e.id, e.user_id, e.name, e.category, e.equipment, e.target_muscle_groups
		FROM workout_exercise we
		JOIN exercise e ON e.id = we.exercise_id
		WHERE we.workout_id = ANY($1)
		ORDER BY we.workout_id, we.exercise_order`,
		workoutIDs,
	)
	if err != nil {
		return fmt.Errorf("query workout exercises: %w", err)
	}

	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (WorkoutExercise, error) {
		var (
			we WorkoutExercise
			e  Exercise
		)
		err := row.Scan(
			&we.ID, &we.WorkoutID, &we.ExerciseID, &we.ExerciseOrder, &we.PreviousWorkoutExerciseID,
			&we.Notes, &we.CreatedAt, &we.UpdatedAt,
			&e.ID, &e.UserID, &e.Name, &e.Category, &e.Equipment, &e.TargetMuscleGroups,
		)
		we.Exercise = &e
		we.WorkoutSets = []WorkoutSet{}
		return we, err
	})
	if err != nil {
		return fmt.Errorf("collect workout exercises: %w", err)
	}

	for _, we := range exercises {
		i := byWorkoutID[we.WorkoutID]
		ws[i].WorkoutExercises = append(ws[i].WorkoutExercises, we)
	}

	var weRefs []*WorkoutExercise
	for i := range ws {
		for j := range ws[i].WorkoutExercises {
			weRefs = append(weRefs, &ws[i].WorkoutExercises[j])
		}
	}

	return attachSets(ctx, q, weRefs)
}

// attachSets loads the sets of every workout exercise, plus the completed
// sets of the previous occurrence each one was seeded from.
func attachSets(ctx context.Context, q querier, wes []*WorkoutExercise) error {
	if len(wes) == 0 {
		return nil
	}

	ids := make([]int, 0, len(wes)*2)
	for _, we := range wes {
		ids = append(ids, we.ID)
		if we.PreviousWorkoutExerciseID != nil {
			ids = append(ids, *we.PreviousWorkoutExerciseID)
		}
	}

	sets, err := loadSets(ctx, q, ids)
	if err != nil {
		return err
	}

	for _, we := range wes {
		we.WorkoutSets = []WorkoutSet{}
		if s, ok := sets[we.ID]; ok {
			we.WorkoutSets = s
		}

		we.PreviousWorkoutExercise = nil
		if we.PreviousWorkoutExerciseID == nil {
			continue
		}
		prev := &PreviousWorkoutExercise{
			ID:          *we.PreviousWorkoutExerciseID,
			WorkoutSets: []WorkoutSet{},
		}
		for _, s := range sets[prev.ID] {
			if s.Completed() {
				prev.WorkoutSets = append(prev.WorkoutSets, s)
			}
		}
		we.PreviousWorkoutExercise = prev
	}

	return nil
}

func loadSets(ctx context.Context, q querier, workoutExerciseIDs []int) (map[int][]WorkoutSet, error) {
	rows, err := q.Query(
		ctx,
		`SELECT `+setColumns+`
		FROM workout_set
		WHERE workout_exercise_id = ANY($1)
		ORDER BY workout_exercise_id, set_number, updated_at`,
		workoutExerciseIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query sets: %w", err)
	}

	sets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (WorkoutSet, error) {
		s, err := scanSet(row)
		if err != nil {
			return WorkoutSet{}, err
		}
		return *s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect sets: %w", err)
	}

	byExercise := make(map[int][]WorkoutSet)
	for _, s := range sets {
		byExercise[s.WorkoutExerciseID] = append(byExercise[s.WorkoutExerciseID], s)
	}
	return byExercise, nil
}
