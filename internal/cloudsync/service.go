package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrota/internal/images"
	"github.com/2beens/gymrota/internal/kvstore"
	"github.com/2beens/gymrota/internal/telemetry/metrics"
	"github.com/2beens/gymrota/internal/telemetry/tracing"
)

const (
	KeySyncID   = "gym_tracker_sync_id"
	KeyLastSync = "gym_tracker_last_sync"

	minSyncIDLength = 10

	lastSyncLayout = "2006-01-02T15:04:05.000Z07:00"

	directionUpload   = "upload"
	directionDownload = "download"
)

var (
	ErrNoSyncID      = errors.New("no sync id found")
	ErrInvalidSyncID = errors.New("invalid sync id")
	ErrEmptyBlob     = errors.New("cloud data is empty")
)

type blobClient interface {
	Upload(ctx context.Context, syncID string, blob map[string]string) (string, error)
	Download(ctx context.Context, syncID string) (map[string]string, error)
}

type imageRepairer interface {
	Repair(ctx context.Context) images.RepairReport
}

type RestoreReport struct {
	SyncID       string              `json:"syncId"`
	RestoredKeys int                 `json:"restoredKeys"`
	Images       images.RepairReport `json:"images"`
}

type Status struct {
	SyncID   string     `json:"syncId,omitempty"`
	LastSync *time.Time `json:"lastSync,omitempty"`
}

// Service backs up the whole persistence store to the cloud and restores it
type Service struct {
	kv       kvstore.Store
	client   blobClient
	repairer imageRepairer
	now      func() time.Time
	metrics  *metrics.Manager
}

func NewService(
	kv kvstore.Store,
	client blobClient,
	repairer imageRepairer,
	now func() time.Time,
	metricsManager *metrics.Manager,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		kv:       kv,
		client:   client,
		repairer: repairer,
		now:      now,
		metrics:  metricsManager,
	}
}

func (s *Service) observe(direction string, started time.Time, err error) {
	if s.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	s.metrics.CounterSyncs.With(prometheus.Labels{"direction": direction, "result": result}).Inc()
	s.metrics.HistSyncDuration.WithLabelValues(direction).Observe(time.Since(started).Seconds())
}

func (s *Service) SyncID(ctx context.Context) (string, error) {
	id, err := s.kv.Get(ctx, KeySyncID)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return "", ErrNoSyncID
		}
		return "", fmt.Errorf("get sync id: %w", err)
	}
	if id == "" {
		return "", ErrNoSyncID
	}
	return id, nil
}

func (s *Service) SetSyncID(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if len(id) < minSyncIDLength {
		return fmt.Errorf("%w: must have at least %d characters", ErrInvalidSyncID, minSyncIDLength)
	}
	if err := s.kv.Set(ctx, KeySyncID, id); err != nil {
		return fmt.Errorf("set sync id: %w", err)
	}
	return nil
}

func (s *Service) Status(ctx context.Context) (*Status, error) {
	status := &Status{}

	id, err := s.SyncID(ctx)
	if err != nil && !errors.Is(err, ErrNoSyncID) {
		return nil, err
	}
	status.SyncID = id

	lastSync, err := s.kv.Get(ctx, KeyLastSync)
	switch {
	case errors.Is(err, kvstore.ErrKeyNotFound):
	case err != nil:
		return nil, fmt.Errorf("get last sync: %w", err)
	default:
		if t, err := time.Parse(time.RFC3339Nano, lastSync); err == nil {
			status.LastSync = &t
		} else {
			log.Warnf("cloud sync: invalid last sync timestamp [%s]", lastSync)
		}
	}

	return status, nil
}

// Upload stamps the sync time and uploads a snapshot of every stored key.
// The blob id is stored locally after the first upload.
func (s *Service) Upload(ctx context.Context) (syncID string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cloudSync.upload")
	started := time.Now()
	defer func() {
		s.observe(directionUpload, started, err)
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.kv.Set(ctx, KeyLastSync, s.now().UTC().Format(lastSyncLayout)); err != nil {
		return "", fmt.Errorf("stamp last sync: %w", err)
	}

	currentID, err := s.SyncID(ctx)
	if err != nil && !errors.Is(err, ErrNoSyncID) {
		return "", err
	}

	snapshot, err := kvstore.Snapshot(ctx, s.kv)
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}

	syncID, err = s.client.Upload(ctx, currentID, snapshot)
	if err != nil {
		return "", err
	}

	if syncID != currentID {
		if err := s.SetSyncID(ctx, syncID); err != nil {
			log.Errorf("cloud sync: store new sync id [%s]: %s", syncID, err)
		}
	}

	log.Infof("cloud sync: uploaded %d keys to %s", len(snapshot), syncID)
	return syncID, nil
}

// Download restores the store from the cloud blob of manualID, or of the
// stored sync id when manualID is empty. Local data is only replaced once
// the blob is fully fetched. Images are repaired afterward.
func (s *Service) Download(ctx context.Context, manualID string) (_ *RestoreReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "cloudSync.download")
	started := time.Now()
	defer func() {
		s.observe(directionDownload, started, err)
		tracing.EndSpanWithErrCheck(span, err)
	}()

	syncID := strings.TrimSpace(manualID)
	if syncID == "" {
		if syncID, err = s.SyncID(ctx); err != nil {
			return nil, err
		}
	}

	blob, err := s.client.Download(ctx, syncID)
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		return nil, ErrEmptyBlob
	}

	if err := s.kv.Replace(ctx, blob); err != nil {
		return nil, fmt.Errorf("restore local data: %w", err)
	}

	if err := s.SetSyncID(ctx, syncID); err != nil {
		log.Warnf("cloud sync: keep sync id [%s] after restore: %s", syncID, err)
	}

	report := &RestoreReport{
		SyncID:       syncID,
		RestoredKeys: len(blob),
	}
	if s.repairer != nil {
		report.Images = s.repairer.Repair(ctx)
	}

	log.Infof("cloud sync: restored %d keys from %s", len(blob), syncID)
	return report, nil
}
