package stats

import (
	"context"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
)

type Stats struct {
	TotalDays     int `json:"totalDays"`
	CompletedDays int `json:"completedDays"`
}

// Fallback is reported whenever the stored values cannot be read
var Fallback = Stats{TotalDays: 1, CompletedDays: 0}

type stateReader interface {
	InstallDate(ctx context.Context) (time.Time, bool, error)
	CompletedDays(ctx context.Context) ([]string, error)
}

type Calculator struct {
	state stateReader
	now   func() time.Time
}

func NewCalculator(state stateReader, now func() time.Time) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{
		state: state,
		now:   now,
	}
}

// Compute returns days since install (started days count, at least 1)
// and the number of days with a fully completed workout. Never fails.
func (c *Calculator) Compute(ctx context.Context) Stats {
	now := c.now()

	installDate, found, err := c.state.InstallDate(ctx)
	if err != nil {
		log.Errorf("stats: get install date: %s", err)
		return Fallback
	}
	if !found {
		installDate = now
	}

	completed, err := c.state.CompletedDays(ctx)
	if err != nil {
		log.Errorf("stats: get completed days: %s", err)
		return Fallback
	}

	return Stats{
		TotalDays:     TotalDays(installDate, now),
		CompletedDays: len(completed),
	}
}

// TotalDays is ceil(hours since install / 24), minimum 1
func TotalDays(installDate, now time.Time) int {
	hours := math.Abs(now.Sub(installDate).Hours())
	total := int(math.Ceil(hours / 24))
	if total < 1 {
		return 1
	}
	return total
}
