package workouts

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrota/internal/stats"
	"github.com/2beens/gymrota/internal/telemetry/metrics"
	"github.com/2beens/gymrota/internal/telemetry/tracing"
	"github.com/2beens/gymrota/pkg"
)

type workoutsRepo interface {
	List(ctx context.Context) ([]WorkoutDay, error)
	GetByDay(ctx context.Context, day DayLabel) (*WorkoutDay, bool, error)
	Upsert(ctx context.Context, workout WorkoutDay) error
	Delete(ctx context.Context, day DayLabel) (bool, error)
	Complete(ctx context.Context, day DayLabel, exerciseID ID) (*CompletionResult, error)
	SetExerciseCompletion(ctx context.Context, day DayLabel, exerciseID ID, completed bool) bool
}

type imageProvisioner interface {
	Provision(ctx context.Context, workout *WorkoutDay)
}

type statsComputer interface {
	Compute(ctx context.Context) stats.Stats
}

type CompleteResponse struct {
	CompletionResult
	Stats stats.Stats `json:"stats"`
}

type DeleteResponse struct {
	DeletedDay DayLabel `json:"deletedDay"`
}

type Handler struct {
	repo        workoutsRepo
	provisioner imageProvisioner
	stats       statsComputer
	metrics     *metrics.Manager
}

func NewHandler(
	repo workoutsRepo,
	provisioner imageProvisioner,
	stats statsComputer,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:        repo,
		provisioner: provisioner,
		stats:       stats,
		metrics:     metricsManager,
	}
}

func dayFromVars(r *http.Request) (DayLabel, bool) {
	day, err := ParseDayLabel(mux.Vars(r)["day"])
	if err != nil {
		return "", false
	}
	return day, true
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	days, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list workouts: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}
	if days == nil {
		days = []WorkoutDay{}
	}

	pkg.WriteJSONResponseOK(w, days)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	day, ok := dayFromVars(r)
	if !ok {
		http.Error(w, "error, invalid day", http.StatusBadRequest)
		return
	}

	workout, found, err := handler.repo.GetByDay(ctx, day)
	if err != nil {
		log.Errorf("get workout day %s: %s", day, err)
		http.Error(w, "failed to get workout", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}

	pkg.WriteJSONResponseOK(w, workout)
}

func (handler *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.upsert")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	day, ok := dayFromVars(r)
	if !ok {
		http.Error(w, "error, invalid day", http.StatusBadRequest)
		return
	}

	var workout WorkoutDay
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Errorf("upsert workout, unmarshal json params: %s", err)
		http.Error(w, "invalid workout", http.StatusBadRequest)
		return
	}
	if workout.Day == "" {
		workout.Day = day
	}
	if workout.Day != day {
		http.Error(w, "error, day mismatch", http.StatusBadRequest)
		return
	}

	// nothing is downloaded for a workout that would be rejected
	if err := ValidateDraft(workout); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if handler.provisioner != nil {
		handler.provisioner.Provision(ctx, &workout)
	}

	if err := handler.repo.Upsert(ctx, workout); err != nil {
		if errors.Is(err, ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("upsert workout day %s: %s", day, err)
		http.Error(w, "failed to save workout", http.StatusInternalServerError)
		return
	}

	saved, found, err := handler.repo.GetByDay(ctx, day)
	if err != nil || !found {
		log.Errorf("get saved workout day %s: found: %t, err: %v", day, found, err)
		http.Error(w, "failed to save workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout day %s saved: %s", saved.Day, saved.Title)
	pkg.WriteJSONResponseOK(w, saved)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	day, ok := dayFromVars(r)
	if !ok {
		http.Error(w, "error, invalid day", http.StatusBadRequest)
		return
	}

	deleted, err := handler.repo.Delete(ctx, day)
	if err != nil {
		log.Errorf("delete workout day %s: %s", day, err)
		http.Error(w, "workout not deleted", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "workout not found", http.StatusNotFound)
		return
	}

	pkg.WriteJSONResponseOK(w, DeleteResponse{DeletedDay: day})
}

func (handler *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.complete")
	defer span.End()

	day, ok := dayFromVars(r)
	if !ok {
		http.Error(w, "error, invalid day", http.StatusBadRequest)
		return
	}
	exerciseID := ID(mux.Vars(r)["id"])
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	res, err := handler.repo.Complete(ctx, day, exerciseID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("complete exercise %s in day %s: %s", exerciseID, day, err)
		http.Error(w, "failed to complete exercise", http.StatusInternalServerError)
		return
	}

	if handler.metrics != nil {
		handler.metrics.CounterExercisesCompleted.Inc()
		if res.NewLedgerEntry {
			handler.metrics.CounterDaysCompleted.Inc()
		}
	}

	resp := CompleteResponse{
		CompletionResult: *res,
		Stats:            stats.Fallback,
	}
	if handler.stats != nil {
		resp.Stats = handler.stats.Compute(ctx)
	}

	pkg.WriteJSONResponseOK(w, resp)
}

// HandleUncomplete unchecks an exercise. The ledger is never rewritten.
func (handler *Handler) HandleUncomplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.uncomplete")
	defer span.End()

	day, ok := dayFromVars(r)
	if !ok {
		http.Error(w, "error, invalid day", http.StatusBadRequest)
		return
	}
	exerciseID := ID(mux.Vars(r)["id"])
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	if !handler.repo.SetExerciseCompletion(ctx, day, exerciseID, false) {
		http.Error(w, "failed to update exercise", http.StatusBadRequest)
		return
	}

	pkg.WriteJSONResponseOK(w, CompletionResult{Completed: false})
}
