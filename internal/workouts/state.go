package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrota/internal/kvstore"
)

// Persistence keys, shared with existing cloud snapshots.
const (
	KeyWorkouts         = "gym_tracker_workouts"
	KeyInstallDate      = "gym_tracker_install_date"
	KeyCompletedDays    = "gym_tracker_completed_days"
	KeyCurrentDay       = "gym_tracker_current_day"
	KeyLastRotationDate = "gym_tracker_last_rotation_date"
	KeyLastPointerMove  = "gym_tracker_last_pointer_move"
)

// AppState is the process-wide state living next to the workout records:
// install date, rotation pointer, last rotation completion date and the
// completion ledger. Every field is loaded and saved on its own.
type AppState struct {
	kv kvstore.Store
}

type Snapshot struct {
	InstallDate      *time.Time `json:"installDate,omitempty"`
	CurrentDay       DayLabel   `json:"currentDay,omitempty"`
	LastRotationDate string     `json:"lastRotationDate,omitempty"`
	LastPointerMove  string     `json:"lastPointerMove,omitempty"`
	CompletedDays    []string   `json:"completedDays"`
}

func NewAppState(kv kvstore.Store) *AppState {
	return &AppState{
		kv: kv,
	}
}

// get returns found == false for absent keys
func (s *AppState) get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: get %s: %w", ErrPersistence, key, err)
	}
	return val, true, nil
}

func (s *AppState) set(ctx context.Context, key, value string) error {
	if err := s.kv.Set(ctx, key, value); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrPersistence, key, err)
	}
	return nil
}

func (s *AppState) InstallDate(ctx context.Context) (time.Time, bool, error) {
	val, found, err := s.get(ctx, KeyInstallDate)
	if err != nil || !found {
		return time.Time{}, false, err
	}
	installDate, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		log.Warnf("stored install date [%s] invalid: %s", val, err)
		return time.Time{}, false, nil
	}
	return installDate, true, nil
}

func (s *AppState) SetInstallDate(ctx context.Context, t time.Time) error {
	return s.set(ctx, KeyInstallDate, t.UTC().Format(time.RFC3339Nano))
}

func (s *AppState) CurrentDay(ctx context.Context) (DayLabel, bool, error) {
	val, found, err := s.get(ctx, KeyCurrentDay)
	if err != nil || !found {
		return "", false, err
	}
	return DayLabel(val), true, nil
}

func (s *AppState) SetCurrentDay(ctx context.Context, day DayLabel) error {
	return s.set(ctx, KeyCurrentDay, string(day))
}

// LastRotationDate returns the YYYY-MM-DD date on which a day last reached full completion
func (s *AppState) LastRotationDate(ctx context.Context) (string, bool, error) {
	return s.getDate(ctx, KeyLastRotationDate)
}

func (s *AppState) SetLastRotationDate(ctx context.Context, date string) error {
	return s.set(ctx, KeyLastRotationDate, date)
}

// LastPointerMove returns the YYYY-MM-DD date on which the rotation pointer last moved
func (s *AppState) LastPointerMove(ctx context.Context) (string, bool, error) {
	return s.getDate(ctx, KeyLastPointerMove)
}

func (s *AppState) SetLastPointerMove(ctx context.Context, date string) error {
	return s.set(ctx, KeyLastPointerMove, date)
}

// getDate reads a YYYY-MM-DD value, invalid values count as absent
func (s *AppState) getDate(ctx context.Context, key string) (string, bool, error) {
	val, found, err := s.get(ctx, key)
	if err != nil || !found {
		return "", false, err
	}
	if _, err := time.Parse(time.DateOnly, val); err != nil {
		log.Warnf("stored %s [%s] invalid: %s", key, val, err)
		return "", false, nil
	}
	return val, true, nil
}

// CompletedDays returns the completion ledger, sorted and deduplicated
func (s *AppState) CompletedDays(ctx context.Context) ([]string, error) {
	val, found, err := s.get(ctx, KeyCompletedDays)
	if err != nil {
		return nil, err
	}
	if !found {
		return []string{}, nil
	}

	var dates []string
	if err := json.Unmarshal([]byte(val), &dates); err != nil {
		log.Errorf("stored completion ledger corrupt, treating as empty: %s", err)
		return []string{}, nil
	}

	return dedupDates(dates), nil
}

func (s *AppState) SetCompletedDays(ctx context.Context, dates []string) error {
	dates = dedupDates(dates)
	datesJson, err := json.Marshal(dates)
	if err != nil {
		return fmt.Errorf("marshal completed days: %w", err)
	}
	return s.set(ctx, KeyCompletedDays, string(datesJson))
}

// Load reads every field of the state
func (s *AppState) Load(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{}

	installDate, found, err := s.InstallDate(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		snapshot.InstallDate = &installDate
	}

	if snapshot.CurrentDay, _, err = s.CurrentDay(ctx); err != nil {
		return nil, err
	}
	if snapshot.LastRotationDate, _, err = s.LastRotationDate(ctx); err != nil {
		return nil, err
	}
	if snapshot.LastPointerMove, _, err = s.LastPointerMove(ctx); err != nil {
		return nil, err
	}
	if snapshot.CompletedDays, err = s.CompletedDays(ctx); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func dedupDates(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	res := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		res = append(res, d)
	}
	sort.Strings(res)
	return res
}
