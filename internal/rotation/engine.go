package rotation

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymrota/internal/telemetry/metrics"
	"github.com/2beens/gymrota/internal/telemetry/tracing"
	"github.com/2beens/gymrota/internal/workouts"
)

const (
	triggerAuto   = "auto"
	triggerManual = "manual"
)

type workoutsStore interface {
	List(ctx context.Context) ([]workouts.WorkoutDay, error)
	ResetExercises(ctx context.Context, day workouts.DayLabel) (*workouts.WorkoutDay, error)
}

type pointerState interface {
	CurrentDay(ctx context.Context) (workouts.DayLabel, bool, error)
	SetCurrentDay(ctx context.Context, day workouts.DayLabel) error
	LastRotationDate(ctx context.Context) (string, bool, error)
	LastPointerMove(ctx context.Context) (string, bool, error)
	SetLastPointerMove(ctx context.Context, date string) error
}

// Engine decides which workout day is active. It is the only writer of the
// rotation pointer, and advances it at most once per calendar day: a fully
// completed day rolls over only when it was completed before today and the
// pointer has not moved today.
type Engine struct {
	store   workoutsStore
	state   pointerState
	now     func() time.Time
	metrics *metrics.Manager
}

func NewEngine(
	store workoutsStore,
	state pointerState,
	now func() time.Time,
	metricsManager *metrics.Manager,
) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		store:   store,
		state:   state,
		now:     now,
		metrics: metricsManager,
	}
}

// resolve returns the collection and the repaired pointer. An unset pointer,
// or one referencing a day no longer configured, is moved to the lowest day.
func (e *Engine) resolve(ctx context.Context) (workouts.Collection, workouts.DayLabel, error) {
	days, err := e.store.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list workouts: %w", err)
	}
	c := workouts.NewCollection(days)

	first, ok := c.First()
	if !ok {
		return c, "", nil
	}

	current, found, err := e.state.CurrentDay(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("get current day: %w", err)
	}
	if found {
		if _, configured := c[current]; configured {
			return c, current, nil
		}
		log.Warnf("rotation pointer references missing day %s, repairing to %s", current, first)
	}

	if err := e.state.SetCurrentDay(ctx, first); err != nil {
		return nil, "", fmt.Errorf("repair current day: %w", err)
	}
	return c, first, nil
}

// Current returns the active workout day, rolling over first when due.
// Returns nil when no workout day is configured.
func (e *Engine) Current(ctx context.Context) (_ *workouts.WorkoutDay, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "rotation.current")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	c, current, err := e.resolve(ctx)
	if err != nil {
		return nil, err
	}
	if current == "" {
		return nil, nil
	}

	active := c[current]
	due, err := e.rolloverDue(ctx, &active)
	if err != nil {
		return nil, err
	}
	if !due {
		return &active, nil
	}

	next, _ := c.Next(current)
	span.SetAttributes(
		attribute.String("rotation.from", string(current)),
		attribute.String("rotation.to", string(next)),
	)
	log.Infof("day %s completed before today, rotating to %s", current, next)

	return e.moveTo(ctx, c, next, true, triggerAuto)
}

func (e *Engine) rolloverDue(ctx context.Context, active *workouts.WorkoutDay) (bool, error) {
	if !active.FullyCompleted() {
		return false, nil
	}
	lastCompletion, found, err := e.state.LastRotationDate(ctx)
	if err != nil {
		return false, fmt.Errorf("get last rotation date: %w", err)
	}
	if !found {
		return false, nil
	}
	today := e.now().Format(time.DateOnly)
	// YYYY-MM-DD compares chronologically as a string
	if lastCompletion >= today {
		return false, nil
	}

	lastMove, found, err := e.state.LastPointerMove(ctx)
	if err != nil {
		return false, fmt.Errorf("get last pointer move: %w", err)
	}
	return !found || lastMove < today, nil
}

// Advance moves the pointer to the next configured day, wrapping after the last one.
// With resetTarget the new day starts with all exercises not completed.
func (e *Engine) Advance(ctx context.Context, resetTarget bool) (_ *workouts.WorkoutDay, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "rotation.advance")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	c, current, err := e.resolve(ctx)
	if err != nil {
		return nil, err
	}
	if current == "" {
		return nil, nil
	}

	next, _ := c.Next(current)
	return e.moveTo(ctx, c, next, resetTarget, triggerManual)
}

func (e *Engine) moveTo(
	ctx context.Context,
	c workouts.Collection,
	target workouts.DayLabel,
	reset bool,
	trigger string,
) (*workouts.WorkoutDay, error) {
	if err := e.state.SetCurrentDay(ctx, target); err != nil {
		return nil, fmt.Errorf("set current day: %w", err)
	}
	if err := e.state.SetLastPointerMove(ctx, e.now().Format(time.DateOnly)); err != nil {
		return nil, fmt.Errorf("set last pointer move: %w", err)
	}

	if e.metrics != nil {
		e.metrics.CounterRotations.With(prometheus.Labels{"trigger": trigger}).Inc()
	}

	if !reset {
		w := c[target]
		return &w, nil
	}

	w, err := e.store.ResetExercises(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("reset day %s: %w", target, err)
	}
	return w, nil
}
