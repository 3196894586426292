package rotation

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=rotation_test

import (
	"context"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrota/internal/telemetry/tracing"
	"github.com/2beens/gymrota/internal/workouts"
	"github.com/2beens/gymrota/pkg"
)

type rotator interface {
	Current(ctx context.Context) (*workouts.WorkoutDay, error)
	Advance(ctx context.Context, resetTarget bool) (*workouts.WorkoutDay, error)
}

type Handler struct {
	engine rotator
}

func NewHandler(engine rotator) *Handler {
	return &Handler{
		engine: engine,
	}
}

func (handler *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rotation.current")
	defer span.End()

	current, err := handler.engine.Current(ctx)
	if err != nil {
		log.Errorf("get current workout: %s", err)
		http.Error(w, "failed to get current workout", http.StatusInternalServerError)
		return
	}
	if current == nil {
		http.Error(w, "no workouts configured", http.StatusNotFound)
		return
	}

	pkg.WriteJSONResponseOK(w, current)
}

func (handler *Handler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.rotation.advance")
	defer span.End()

	reset := false
	if resetParam := r.URL.Query().Get("reset"); resetParam != "" {
		var err error
		if reset, err = strconv.ParseBool(resetParam); err != nil {
			http.Error(w, "error, invalid reset param", http.StatusBadRequest)
			return
		}
	}

	next, err := handler.engine.Advance(ctx, reset)
	if err != nil {
		log.Errorf("advance rotation (reset: %t): %s", reset, err)
		http.Error(w, "failed to advance rotation", http.StatusInternalServerError)
		return
	}
	if next == nil {
		http.Error(w, "no workouts configured", http.StatusNotFound)
		return
	}

	pkg.WriteJSONResponseOK(w, next)
}
