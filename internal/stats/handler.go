package stats

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=stats_test

import (
	"context"
	"net/http"

	"github.com/2beens/gymrota/internal/telemetry/tracing"
	"github.com/2beens/gymrota/pkg"
)

type computer interface {
	Compute(ctx context.Context) Stats
}

type Handler struct {
	calculator computer
}

func NewHandler(calculator computer) *Handler {
	return &Handler{
		calculator: calculator,
	}
}

// HandleGet never fails, read faults are reported as fallback stats
func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.get")
	defer span.End()

	pkg.WriteJSONResponseOK(w, handler.calculator.Compute(ctx))
}
