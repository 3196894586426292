package workouts

import (
	"sort"
)

// Collection holds the configured workout days keyed by their label,
// which makes the one-record-per-day invariant structural
type Collection map[DayLabel]WorkoutDay

func NewCollection(days []WorkoutDay) Collection {
	c := make(Collection, len(days))
	for _, d := range days {
		c[d.Day] = d
	}
	return c
}

// Days returns the configured day labels in ascending numeric order
func (c Collection) Days() []DayLabel {
	days := make([]DayLabel, 0, len(c))
	for d := range c {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Number() < days[j].Number()
	})
	return days
}

// Sorted returns the workout days ordered by day
func (c Collection) Sorted() []WorkoutDay {
	sorted := make([]WorkoutDay, 0, len(c))
	for _, d := range c.Days() {
		sorted = append(sorted, c[d])
	}
	return sorted
}

// First returns the lowest configured day
func (c Collection) First() (DayLabel, bool) {
	days := c.Days()
	if len(days) == 0 {
		return "", false
	}
	return days[0], true
}

// Next returns the day following the given one, wrapping around after the last.
// An unknown day yields the first configured day.
func (c Collection) Next(day DayLabel) (DayLabel, bool) {
	days := c.Days()
	if len(days) == 0 {
		return "", false
	}
	for i, d := range days {
		if d == day {
			return days[(i+1)%len(days)], true
		}
	}
	return days[0], true
}
