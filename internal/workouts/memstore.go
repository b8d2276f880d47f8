package workouts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/danmlarsen/workout-tracker-backend/pkg"
)

var _ Store = (*MemStore)(nil)
var _ Tx = (*memTx)(nil)

// MemStore is an in-memory Store used by unit tests and local tooling.
// Transactions are serialized by one mutex and rolled back from a snapshot.
// At commit it checks the same uniqueness rules the postgres schema declares.
type MemStore struct {
	mutex sync.Mutex
	data  *memData
}

type memData struct {
	lastID           int
	workouts         map[int]Workout
	exercises        map[int]Exercise
	workoutExercises map[int]WorkoutExercise
	sets             map[int]WorkoutSet
}

func NewMemStore() *MemStore {
	return &MemStore{
		data: &memData{
			workouts:         map[int]Workout{},
			exercises:        map[int]Exercise{},
			workoutExercises: map[int]WorkoutExercise{},
			sets:             map[int]WorkoutSet{},
		},
	}
}

func (d *memData) clone() *memData {
	c := &memData{
		lastID:           d.lastID,
		workouts:         make(map[int]Workout, len(d.workouts)),
		exercises:        make(map[int]Exercise, len(d.exercises)),
		workoutExercises: make(map[int]WorkoutExercise, len(d.workoutExercises)),
		sets:             make(map[int]WorkoutSet, len(d.sets)),
	}
	for k, v := range d.workouts {
		c.workouts[k] = v
	}
	for k, v := range d.exercises {
		c.exercises[k] = v
	}
	for k, v := range d.workoutExercises {
		c.workoutExercises[k] = v
	}
	for k, v := range d.sets {
		c.sets[k] = v
	}
	return c
}

func (d *memData) nextID() int {
	d.lastID++
	return d.lastID
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: pkg.PgCodeUniqueViolation, ConstraintName: constraint}
}

func checkViolation(constraint string) error {
	return &pgconn.PgError{Code: pkg.PgCodeCheckViolation, ConstraintName: constraint}
}

// validate mirrors the deferred constraints of the schema.
func (d *memData) validate() error {
	active := map[int]bool{}
	draft := map[int]bool{}
	for _, w := range d.workouts {
		switch w.Status {
		case StatusActive:
			if active[w.UserID] {
				return uniqueViolation("ux_workout_one_active")
			}
			active[w.UserID] = true
		case StatusDraft:
			if draft[w.UserID] {
				return uniqueViolation("ux_workout_one_draft")
			}
			draft[w.UserID] = true
		}
		if (w.Status == StatusCompleted) != (w.CompletedAt != nil) {
			return checkViolation("ck_workout_completed_at")
		}
		if w.Status == StatusCompleted && w.IsPaused {
			return checkViolation("ck_workout_completed_not_paused")
		}
	}

	type slot struct{ parent, n int }
	orders := map[slot]bool{}
	for _, we := range d.workoutExercises {
		k := slot{we.WorkoutID, we.ExerciseOrder}
		if orders[k] {
			return uniqueViolation("ux_workout_exercise_order")
		}
		orders[k] = true
	}

	numbers := map[slot]bool{}
	for _, s := range d.sets {
		if (s.Type == SetTypeWarmup) != (s.SetNumber == 0) {
			return checkViolation("ck_workout_set_warmup_slot")
		}
		k := slot{s.WorkoutExerciseID, s.SetNumber}
		if numbers[k] {
			return uniqueViolation("ux_workout_set_number")
		}
		numbers[k] = true
	}
	return nil
}

func (m *MemStore) InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	work := m.data.clone()
	if err := fn(ctx, &memTx{d: work}); err != nil {
		return err
	}
	if err := work.validate(); err != nil {
		return err
	}

	m.data = work
	return nil
}

// AddExercise seeds the catalog.
func (m *MemStore) AddExercise(e Exercise) Exercise {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if e.ID == 0 {
		e.ID = m.data.nextID()
	}
	if e.Category == "" {
		e.Category = CategoryStrength
	}
	m.data.exercises[e.ID] = e
	return e
}

// PutWorkout stores w as is, assigning an id when missing.
func (m *MemStore) PutWorkout(w Workout) Workout {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if w.ID == 0 {
		w.ID = m.data.nextID()
	}
	w.WorkoutExercises = nil
	m.data.workouts[w.ID] = w
	return w
}

func (m *MemStore) Workout(id int) (Workout, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	w, ok := m.data.workouts[id]
	return w, ok
}

type memTx struct {
	d *memData
}

func (t *memTx) LockUser(context.Context, int) error {
	return nil
}

func sortWorkoutsNewestFirst(ws []Workout) {
	sort.Slice(ws, func(i, j int) bool {
		if ws[i].StartedAt.Equal(ws[j].StartedAt) {
			return ws[i].ID > ws[j].ID
		}
		return ws[i].StartedAt.After(ws[j].StartedAt)
	})
}

func (t *memTx) FindWorkout(_ context.Context, userID int, params GetWorkoutParams, _ bool) (*Workout, error) {
	var matching []Workout
	for _, w := range t.d.workouts {
		if w.UserID != userID {
			continue
		}
		if params.ID != nil && w.ID != *params.ID {
			continue
		}
		if params.Status != nil && w.Status != *params.Status {
			continue
		}
		matching = append(matching, w)
	}
	if len(matching) == 0 {
		return nil, kindError(ErrNotFound, "no matching workout for user %d", userID)
	}

	sortWorkoutsNewestFirst(matching)
	w := matching[0]
	w.WorkoutExercises = []WorkoutExercise{}
	return &w, nil
}

func (t *memTx) GetWorkout(_ context.Context, id int, _ bool) (*Workout, error) {
	w, ok := t.d.workouts[id]
	if !ok {
		return nil, kindError(ErrNotFound, "workout %d not found", id)
	}
	w.WorkoutExercises = []WorkoutExercise{}
	return &w, nil
}

func (t *memTx) InsertWorkout(_ context.Context, w Workout) (*Workout, error) {
	w.ID = t.d.nextID()
	w.WorkoutExercises = nil
	t.d.workouts[w.ID] = w
	w.WorkoutExercises = []WorkoutExercise{}
	return &w, nil
}

func (t *memTx) UpdateWorkout(_ context.Context, w *Workout) error {
	if _, ok := t.d.workouts[w.ID]; !ok {
		return kindError(ErrNotFound, "workout %d not found", w.ID)
	}
	stored := *w
	stored.WorkoutExercises = nil
	t.d.workouts[w.ID] = stored
	return nil
}

func (t *memTx) DeleteWorkout(_ context.Context, id int) error {
	if _, ok := t.d.workouts[id]; !ok {
		return kindError(ErrNotFound, "workout %d not found", id)
	}
	delete(t.d.workouts, id)
	for weID, we := range t.d.workoutExercises {
		if we.WorkoutID == id {
			t.deleteWorkoutExercise(weID)
		}
	}
	return nil
}

func (t *memTx) DeleteUserWorkouts(ctx context.Context, userID int, status Status) (int64, error) {
	var deleted int64
	for id, w := range t.d.workouts {
		if w.UserID == userID && w.Status == status {
			if err := t.DeleteWorkout(ctx, id); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	return deleted, nil
}

func (t *memTx) ExpireWorkouts(_ context.Context, params ExpireParams) ([]int, error) {
	var ids []int
	for id, w := range t.d.workouts {
		if w.Status != StatusActive || w.StartedAt.After(params.Cutoff) {
			continue
		}
		if params.UserID != nil && w.UserID != *params.UserID {
			continue
		}
		completedAt := w.StartedAt.Add(MaxWorkoutDuration)
		w.Status = StatusCompleted
		w.CompletedAt = &completedAt
		w.IsPaused = false
		w.LastPauseStartTime = nil
		w.UpdatedAt = time.Now()
		t.d.workouts[id] = w
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (t *memTx) ExpandWorkout(ctx context.Context, w *Workout) error {
	var wes []WorkoutExercise
	for _, we := range t.d.workoutExercises {
		if we.WorkoutID == w.ID {
			wes = append(wes, we)
		}
	}
	sort.Slice(wes, func(i, j int) bool {
		return wes[i].ExerciseOrder < wes[j].ExerciseOrder
	})

	w.WorkoutExercises = []WorkoutExercise{}
	for _, we := range wes {
		if err := t.ExpandWorkoutExercise(ctx, &we); err != nil {
			return err
		}
		w.WorkoutExercises = append(w.WorkoutExercises, we)
	}
	return nil
}

func (t *memTx) GetExercise(_ context.Context, id int) (*Exercise, error) {
	e, ok := t.d.exercises[id]
	if !ok {
		return nil, kindError(ErrNotFound, "exercise %d not found", id)
	}
	return &e, nil
}

func (t *memTx) GetWorkoutExercise(_ context.Context, id int, _ bool) (*WorkoutExercise, error) {
	we, ok := t.d.workoutExercises[id]
	if !ok {
		return nil, kindError(ErrNotFound, "workout exercise %d not found", id)
	}
	we.WorkoutSets = []WorkoutSet{}
	return &we, nil
}

func (t *memTx) setsOf(workoutExerciseID int) []WorkoutSet {
	sets := []WorkoutSet{}
	for _, s := range t.d.sets {
		if s.WorkoutExerciseID == workoutExerciseID {
			sets = append(sets, s)
		}
	}
	sort.Slice(sets, func(i, j int) bool {
		if sets[i].SetNumber == sets[j].SetNumber {
			return sets[i].UpdatedAt.Before(sets[j].UpdatedAt)
		}
		return sets[i].SetNumber < sets[j].SetNumber
	})
	return sets
}

func (t *memTx) ExpandWorkoutExercise(ctx context.Context, we *WorkoutExercise) error {
	e, err := t.GetExercise(ctx, we.ExerciseID)
	if err != nil {
		return err
	}
	we.Exercise = e
	we.WorkoutSets = t.setsOf(we.ID)

	we.PreviousWorkoutExercise = nil
	if we.PreviousWorkoutExerciseID != nil {
		prev := &PreviousWorkoutExercise{
			ID:          *we.PreviousWorkoutExerciseID,
			WorkoutSets: []WorkoutSet{},
		}
		for _, s := range t.setsOf(prev.ID) {
			if s.Completed() {
				prev.WorkoutSets = append(prev.WorkoutSets, s)
			}
		}
		we.PreviousWorkoutExercise = prev
	}
	return nil
}

func (t *memTx) MaxExerciseOrder(_ context.Context, workoutID int) (int, error) {
	maxOrder := 0
	for _, we := range t.d.workoutExercises {
		if we.WorkoutID == workoutID && we.ExerciseOrder > maxOrder {
			maxOrder = we.ExerciseOrder
		}
	}
	return maxOrder, nil
}

func (t *memTx) InsertWorkoutExercise(_ context.Context, we WorkoutExercise) (*WorkoutExercise, error) {
	if _, ok := t.d.workouts[we.WorkoutID]; !ok {
		return nil, &pgconn.PgError{Code: pkg.PgCodeForeignKeyViolation}
	}
	if _, ok := t.d.exercises[we.ExerciseID]; !ok {
		return nil, &pgconn.PgError{Code: pkg.PgCodeForeignKeyViolation}
	}

	we.ID = t.d.nextID()
	we.Exercise = nil
	we.WorkoutSets = nil
	we.PreviousWorkoutExercise = nil
	t.d.workoutExercises[we.ID] = we
	we.WorkoutSets = []WorkoutSet{}
	return &we, nil
}

func (t *memTx) UpdateWorkoutExerciseNotes(_ context.Context, id int, notes *string) error {
	we, ok := t.d.workoutExercises[id]
	if !ok {
		return kindError(ErrNotFound, "workout exercise %d not found", id)
	}
	we.Notes = notes
	we.UpdatedAt = time.Now()
	t.d.workoutExercises[id] = we
	return nil
}

func (t *memTx) deleteWorkoutExercise(id int) {
	delete(t.d.workoutExercises, id)
	for setID, s := range t.d.sets {
		if s.WorkoutExerciseID == id {
			delete(t.d.sets, setID)
		}
	}
	for otherID, other := range t.d.workoutExercises {
		if other.PreviousWorkoutExerciseID != nil && *other.PreviousWorkoutExerciseID == id {
			other.PreviousWorkoutExerciseID = nil
			t.d.workoutExercises[otherID] = other
		}
	}
}

func (t *memTx) DeleteWorkoutExercise(_ context.Context, id int) error {
	if _, ok := t.d.workoutExercises[id]; !ok {
		return kindError(ErrNotFound, "workout exercise %d not found", id)
	}
	t.deleteWorkoutExercise(id)
	return nil
}

func (t *memTx) FindPreviousOccurrence(_ context.Context, userID, exerciseID int, before time.Time) (*WorkoutExercise, error) {
	var (
		best        *WorkoutExercise
		bestStarted time.Time
	)
	for _, we := range t.d.workoutExercises {
		if we.ExerciseID != exerciseID {
			continue
		}
		w := t.d.workouts[we.WorkoutID]
		if w.UserID != userID || w.Status != StatusCompleted || !w.StartedAt.Before(before) {
			continue
		}
		if best == nil ||
			w.StartedAt.After(bestStarted) ||
			(w.StartedAt.Equal(bestStarted) && we.ID > best.ID) {
			candidate := we
			best = &candidate
			bestStarted = w.StartedAt
		}
	}
	if best == nil {
		return nil, kindError(ErrNotFound, "no previous occurrence of exercise %d", exerciseID)
	}

	best.WorkoutSets = t.setsOf(best.ID)
	return best, nil
}

func (t *memTx) GetSet(_ context.Context, id int) (*WorkoutSet, error) {
	s, ok := t.d.sets[id]
	if !ok {
		return nil, kindError(ErrNotFound, "set %d not found", id)
	}
	return &s, nil
}

func (t *memTx) InsertSet(_ context.Context, s WorkoutSet) (*WorkoutSet, error) {
	if _, ok := t.d.workoutExercises[s.WorkoutExerciseID]; !ok {
		return nil, &pgconn.PgError{Code: pkg.PgCodeForeignKeyViolation}
	}
	s.ID = t.d.nextID()
	t.d.sets[s.ID] = s
	return &s, nil
}

func (t *memTx) UpdateSet(_ context.Context, s *WorkoutSet) error {
	if _, ok := t.d.sets[s.ID]; !ok {
		return kindError(ErrNotFound, "set %d not found", s.ID)
	}
	t.d.sets[s.ID] = *s
	return nil
}

func (t *memTx) DeleteSet(_ context.Context, id int) error {
	if _, ok := t.d.sets[id]; !ok {
		return kindError(ErrNotFound, "set %d not found", id)
	}
	delete(t.d.sets, id)
	return nil
}

func (t *memTx) MaxSetNumber(_ context.Context, workoutExerciseID int) (int, error) {
	maxNumber := 0
	for _, s := range t.d.sets {
		if s.WorkoutExerciseID == workoutExerciseID && s.SetNumber > maxNumber {
			maxNumber = s.SetNumber
		}
	}
	return maxNumber, nil
}

func (t *memTx) HasWarmup(_ context.Context, workoutExerciseID int) (bool, error) {
	for _, s := range t.d.sets {
		if s.WorkoutExerciseID == workoutExerciseID && s.Type == SetTypeWarmup {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) ShiftSetNumbers(_ context.Context, workoutExerciseID, from, delta, excludeSetID int) (int64, error) {
	var shifted int64
	for id, s := range t.d.sets {
		if s.WorkoutExerciseID != workoutExerciseID || s.SetNumber < from || id == excludeSetID {
			continue
		}
		s.SetNumber += delta
		s.UpdatedAt = time.Now()
		t.d.sets[id] = s
		shifted++
	}
	return shifted, nil
}
