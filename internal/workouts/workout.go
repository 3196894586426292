package workouts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrPersistence = errors.New("persistence failure")
	ErrNotFound    = errors.New("not found")
)

const (
	MinDay          = 1
	MaxDay          = 7
	MaxExercisesDay = 7
)

// DayLabel is one of "1".."7", the key of a workout day within the rotation
type DayLabel string

func ParseDayLabel(s string) (DayLabel, error) {
	d := DayLabel(strings.TrimSpace(s))
	if !d.Valid() {
		return "", fmt.Errorf("%w: invalid day label %q", ErrValidation, s)
	}
	return d, nil
}

func (d DayLabel) Number() int {
	n, err := strconv.Atoi(string(d))
	if err != nil {
		return 0
	}
	return n
}

func (d DayLabel) Valid() bool {
	// "01" or " 1" are not valid labels
	n := d.Number()
	return n >= MinDay && n <= MaxDay && strconv.Itoa(n) == string(d)
}

// ID accepts both JSON strings and numbers, since older records
// used millisecond timestamps as identifiers
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

type Exercise struct {
	ID   ID     `json:"id" validate:"required"`
	Name string `json:"name" validate:"notblank"`
	// Image is nil or a local content handle
	Image *string `json:"image"`
	// OriginalImage is the remote URL Image was downloaded from
	OriginalImage *string `json:"originalImage,omitempty"`
	Completed     bool    `json:"completed"`
}

type WorkoutDay struct {
	ID        ID         `json:"id"`
	Title     string     `json:"title" validate:"notblank"`
	Day       DayLabel   `json:"day" validate:"daylabel"`
	Exercises []Exercise `json:"exercises" validate:"min=1,max=7,dive"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (w *WorkoutDay) FullyCompleted() bool {
	if len(w.Exercises) == 0 {
		return false
	}
	for _, ex := range w.Exercises {
		if !ex.Completed {
			return false
		}
	}
	return true
}

func (w *WorkoutDay) Exercise(id ID) (*Exercise, bool) {
	for i := range w.Exercises {
		if w.Exercises[i].ID == id {
			return &w.Exercises[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy, so callers can mutate exercises and image pointers freely
func (w WorkoutDay) Clone() WorkoutDay {
	exercises := make([]Exercise, len(w.Exercises))
	for i, ex := range w.Exercises {
		exercises[i] = ex
		exercises[i].Image = copyStr(ex.Image)
		exercises[i].OriginalImage = copyStr(ex.OriginalImage)
	}
	w.Exercises = exercises
	return w
}

func copyStr(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
