package images

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"github.com/2beens/gymrota/internal/telemetry/metrics"
	"github.com/2beens/gymrota/internal/telemetry/tracing"
	"github.com/2beens/gymrota/internal/workouts"
)

type contentStore interface {
	Download(ctx context.Context, remoteURL, filename string) (string, error)
	Exists(handle string) bool
}

type workoutsRepo interface {
	List(ctx context.Context) ([]workouts.WorkoutDay, error)
	SetExerciseImages(ctx context.Context, updates []workouts.ImageUpdate) (int, error)
}

// RepairReport sums up a repair pass. Scanned counts exercises carrying an original image.
type RepairReport struct {
	Scanned  int `json:"scanned"`
	Repaired int `json:"repaired"`
	Failed   int `json:"failed"`
}

type Provisioner struct {
	content  contentStore
	workouts workoutsRepo
	metrics  *metrics.Manager
}

func NewProvisioner(content contentStore, workoutsRepo workoutsRepo, metricsManager *metrics.Manager) *Provisioner {
	return &Provisioner{
		content:  content,
		workouts: workoutsRepo,
		metrics:  metricsManager,
	}
}

func IsRemote(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func imageFilename(remoteURL string) string {
	ext := ".jpg"
	if u, err := url.Parse(remoteURL); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); e == ".png" || e == ".jpeg" || e == ".gif" || e == ".webp" {
			ext = e
		}
	}
	return "exercise_" + uuid.NewString() + ext
}

// Resolve downloads the remote image into the content store and returns
// the local handle, or nil on any fault
func (p *Provisioner) Resolve(ctx context.Context, remoteURL string) *string {
	if !IsRemote(remoteURL) {
		log.Warnf("resolve image: not a remote url: %s", remoteURL)
		return nil
	}

	handle, err := p.content.Download(ctx, remoteURL, imageFilename(remoteURL))
	if err != nil {
		log.Errorf("resolve image %s: %s", remoteURL, err)
		return nil
	}
	return &handle
}

// Provision turns remote image references of a workout about to be saved
// into local handles. The remote URL is kept as OriginalImage; when the
// download fails Image stays nil. Any other Image that does not resolve to
// a stored file is dropped.
func (p *Provisioner) Provision(ctx context.Context, w *workouts.WorkoutDay) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "images.provision")
	defer span.End()

	for i := range w.Exercises {
		ex := &w.Exercises[i]
		if ex.Image != nil && IsRemote(*ex.Image) {
			remote := *ex.Image
			ex.OriginalImage = &remote
			ex.Image = p.Resolve(ctx, remote)
			continue
		}
		if ex.Image != nil && !p.content.Exists(*ex.Image) {
			log.Warnf("provision image: exercise %s: drop unknown image %s", ex.Name, *ex.Image)
			ex.Image = nil
		}
		if ex.Image == nil && ex.OriginalImage != nil && IsRemote(*ex.OriginalImage) {
			ex.Image = p.Resolve(ctx, *ex.OriginalImage)
		}
	}
}

// Repair re-resolves every exercise image whose local handle is missing or
// no longer exists, e.g. after restoring data from another device, and
// persists all repaired handles in a single write
func (p *Provisioner) Repair(ctx context.Context) (report RepairReport) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "images.repair")
	defer func() {
		span.SetAttributes(
			attribute.Int("repair.scanned", report.Scanned),
			attribute.Int("repair.repaired", report.Repaired),
			attribute.Int("repair.failed", report.Failed),
		)
		span.End()
	}()

	days, err := p.workouts.List(ctx)
	if err != nil {
		log.Errorf("repair images: list workouts: %s", err)
		return report
	}

	var (
		updates []workouts.ImageUpdate
		errs    error
	)
	for _, w := range days {
		for _, ex := range w.Exercises {
			if ex.OriginalImage == nil || !IsRemote(*ex.OriginalImage) {
				continue
			}
			report.Scanned++

			if ex.Image != nil && p.content.Exists(*ex.Image) {
				continue
			}

			handle := p.Resolve(ctx, *ex.OriginalImage)
			if handle == nil {
				report.Failed++
				errs = multierr.Append(errs, fmt.Errorf("day %s exercise %s: %s", w.Day, ex.ID, *ex.OriginalImage))
				continue
			}
			updates = append(updates, workouts.ImageUpdate{
				Day:        w.Day,
				ExerciseID: ex.ID,
				Image:      *handle,
			})
		}
	}

	if len(updates) > 0 {
		applied, err := p.workouts.SetExerciseImages(ctx, updates)
		if err != nil {
			log.Errorf("repair images: persist %d repaired images: %s", len(updates), err)
			report.Failed += len(updates)
		} else {
			report.Repaired = applied
		}
	}

	if errs != nil {
		log.Warnf("repair images: %d failed: %s", len(multierr.Errors(errs)), errs)
	}
	log.Infof("repair images: scanned %d, repaired %d, failed %d", report.Scanned, report.Repaired, report.Failed)

	if p.metrics != nil {
		p.metrics.CounterImagesRepaired.With(prometheus.Labels{"result": "ok"}).Add(float64(report.Repaired))
		p.metrics.CounterImagesRepaired.With(prometheus.Labels{"result": "failed"}).Add(float64(report.Failed))
	}

	return report
}
