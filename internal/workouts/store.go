package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymrota/internal/kvstore"
	"github.com/2beens/gymrota/internal/telemetry/tracing"
)

// Store owns the workout day records and the completion ledger.
// All workout days are persisted as one sorted JSON array, so every mutation
// is a read-modify-write of that array; mutex serializes those cycles within
// the process, across processes the last writer wins.
type Store struct {
	kv    kvstore.Store
	state *AppState
	now   func() time.Time
	mutex sync.Mutex
}

func NewStore(kv kvstore.Store, state *AppState, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		kv:    kv,
		state: state,
		now:   now,
	}
}

// CompletionResult describes the outcome of checking off an exercise
type CompletionResult struct {
	Completed      bool `json:"completed"`
	DayCompleted   bool `json:"dayCompleted"`
	NewLedgerEntry bool `json:"newLedgerEntry"`
}

func (s *Store) today() string {
	return s.now().Format(time.DateOnly)
}

// load decodes the stored collection. A corrupt array is treated as empty,
// single invalid records are dropped.
func (s *Store) load(ctx context.Context) (Collection, error) {
	val, err := s.kv.Get(ctx, KeyWorkouts)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return Collection{}, nil
		}
		return nil, fmt.Errorf("%w: get workouts: %w", ErrPersistence, err)
	}

	var rawDays []json.RawMessage
	if err := json.Unmarshal([]byte(val), &rawDays); err != nil {
		log.Errorf("stored workouts corrupt, treating as empty: %s", err)
		return Collection{}, nil
	}

	c := make(Collection, len(rawDays))
	for i, raw := range rawDays {
		var day WorkoutDay
		if err := json.Unmarshal(raw, &day); err != nil {
			log.Warnf("dropping undecodable workout record #%d: %s", i, err)
			continue
		}
		if err := Validate(day); err != nil {
			log.Warnf("dropping invalid workout record #%d: %s", i, err)
			continue
		}
		if _, exists := c[day.Day]; exists {
			log.Warnf("dropping duplicate workout record for day %s", day.Day)
			continue
		}
		c[day.Day] = day
	}

	return c, nil
}

func (s *Store) save(ctx context.Context, c Collection) error {
	daysJson, err := json.Marshal(c.Sorted())
	if err != nil {
		return fmt.Errorf("marshal workouts: %w", err)
	}
	if err := s.kv.Set(ctx, KeyWorkouts, string(daysJson)); err != nil {
		return fmt.Errorf("%w: save workouts: %w", ErrPersistence, err)
	}
	return nil
}

// update runs a read-modify-write cycle; fn reports whether the collection changed
func (s *Store) update(ctx context.Context, fn func(c Collection) (bool, error)) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		return err
	}

	changed, err := fn(c)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	return s.save(ctx, c)
}

func (s *Store) Upsert(ctx context.Context, workout WorkoutDay) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", string(workout.Day)))

	workout = withIdentity(workout)
	if workout.CreatedAt.IsZero() {
		workout.CreatedAt = s.now()
	}

	if err := Validate(workout); err != nil {
		return err
	}

	return s.update(ctx, func(c Collection) (bool, error) {
		c[workout.Day] = workout
		return true, nil
	})
}

// withIdentity returns a copy with ids assigned to the day and its new exercises
func withIdentity(workout WorkoutDay) WorkoutDay {
	workout = workout.Clone()
	if workout.ID == "" {
		workout.ID = ID(uuid.NewString())
	}
	for i := range workout.Exercises {
		if workout.Exercises[i].ID == "" {
			workout.Exercises[i].ID = ID(uuid.NewString())
		}
	}
	return workout
}

// GetByDay returns found == false when no workout is configured for the day
func (s *Store) GetByDay(ctx context.Context, day DayLabel) (*WorkoutDay, bool, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, false, err
	}
	w, ok := c[day]
	if !ok {
		return nil, false, nil
	}
	return &w, true, nil
}

func (s *Store) List(ctx context.Context) ([]WorkoutDay, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Sorted(), nil
}

func (s *Store) Delete(ctx context.Context, day DayLabel) (deleted bool, err error) {
	err = s.update(ctx, func(c Collection) (bool, error) {
		if _, ok := c[day]; !ok {
			return false, nil
		}
		delete(c, day)
		deleted = true
		return true, nil
	})
	return deleted, err
}

// setCompletion reports whether the stored mark actually changed
func (s *Store) setCompletion(ctx context.Context, day DayLabel, exerciseID ID, completed bool) (changed bool, err error) {
	err = s.update(ctx, func(c Collection) (bool, error) {
		w, ok := c[day]
		if !ok {
			return false, fmt.Errorf("%w: workout day %s", ErrNotFound, day)
		}
		ex, ok := w.Exercise(exerciseID)
		if !ok {
			return false, fmt.Errorf("%w: exercise %s in day %s", ErrNotFound, exerciseID, day)
		}
		if ex.Completed == completed {
			return false, nil
		}
		ex.Completed = completed
		c[day] = w
		changed = true
		return true, nil
	})
	return changed, err
}

// SetExerciseCompletion marks the exercise and persists the day right away.
// Setting the current value again is a no-op. Unknown day or exercise and
// persistence faults are logged and reported as false.
func (s *Store) SetExerciseCompletion(ctx context.Context, day DayLabel, exerciseID ID, completed bool) bool {
	if _, err := s.setCompletion(ctx, day, exerciseID, completed); err != nil {
		log.Errorf("set exercise %s completion in day %s: %s", exerciseID, day, err)
		return false
	}
	return true
}

// RecordDailyCompletionIfFullyDone appends today to the completion ledger and
// stamps the last rotation completion date when every exercise of the day is
// completed. Returns true only when today was not yet in the ledger.
func (s *Store) RecordDailyCompletionIfFullyDone(ctx context.Context, day DayLabel) (bool, error) {
	w, found, err := s.GetByDay(ctx, day)
	if err != nil {
		return false, err
	}
	if !found || !w.FullyCompleted() {
		return false, nil
	}

	today := s.today()
	if err := s.state.SetLastRotationDate(ctx, today); err != nil {
		return false, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	ledger, err := s.state.CompletedDays(ctx)
	if err != nil {
		return false, err
	}
	for _, d := range ledger {
		if d == today {
			return false, nil
		}
	}

	if err := s.state.SetCompletedDays(ctx, append(ledger, today)); err != nil {
		return false, err
	}

	log.Debugf("day %s fully completed, ledger entry %s added", day, today)
	return true, nil
}

// Complete checks off the exercise and records the daily completion when the day is done
func (s *Store) Complete(ctx context.Context, day DayLabel, exerciseID ID) (_ *CompletionResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("day", string(day)),
		attribute.String("exercise", string(exerciseID)),
	)

	changed, err := s.setCompletion(ctx, day, exerciseID, true)
	if err != nil {
		return nil, err
	}

	res := &CompletionResult{Completed: true}

	w, found, err := s.GetByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	res.DayCompleted = found && w.FullyCompleted()
	// a resent completion must not date the day again
	if !res.DayCompleted || !changed {
		return res, nil
	}

	if res.NewLedgerEntry, err = s.RecordDailyCompletionIfFullyDone(ctx, day); err != nil {
		return nil, err
	}

	return res, nil
}

// ResetExercises marks every exercise of the day as not completed
func (s *Store) ResetExercises(ctx context.Context, day DayLabel) (*WorkoutDay, error) {
	var reset WorkoutDay
	err := s.update(ctx, func(c Collection) (bool, error) {
		w, ok := c[day]
		if !ok {
			return false, fmt.Errorf("%w: workout day %s", ErrNotFound, day)
		}
		changed := false
		for i := range w.Exercises {
			if w.Exercises[i].Completed {
				w.Exercises[i].Completed = false
				changed = true
			}
		}
		c[day] = w
		reset = w
		return changed, nil
	})
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

// ImageUpdate sets the local image handle of a single exercise
type ImageUpdate struct {
	Day        DayLabel
	ExerciseID ID
	Image      string
}

// SetExerciseImages applies all image handles in a single write.
// Updates for exercises that no longer exist are skipped.
func (s *Store) SetExerciseImages(ctx context.Context, updates []ImageUpdate) (applied int, err error) {
	if len(updates) == 0 {
		return 0, nil
	}
	err = s.update(ctx, func(c Collection) (bool, error) {
		for _, u := range updates {
			w, ok := c[u.Day]
			if !ok {
				continue
			}
			ex, ok := w.Exercise(u.ExerciseID)
			if !ok {
				continue
			}
			img := u.Image
			ex.Image = &img
			c[u.Day] = w
			applied++
		}
		return applied > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

// InitInstallDate stores the install date on first ever run, and returns the stored one afterward
func (s *Store) InitInstallDate(ctx context.Context) (time.Time, error) {
	installDate, found, err := s.state.InstallDate(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if found {
		return installDate, nil
	}

	installDate = s.now()
	if err := s.state.SetInstallDate(ctx, installDate); err != nil {
		return time.Time{}, err
	}
	log.Infof("install date set: %s", installDate.Format(time.RFC3339))
	return installDate, nil
}
