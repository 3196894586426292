package cloudsync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymrota/internal/cloudsync"
	"github.com/2beens/gymrota/internal/images"
	"github.com/2beens/gymrota/internal/kvstore"
	"github.com/2beens/gymrota/internal/telemetry/metrics"
)

type countingRepairer struct {
	calls  int
	report images.RepairReport
}

func (r *countingRepairer) Repair(context.Context) images.RepairReport {
	r.calls++
	return r.report
}

type failingReplaceKV struct {
	kvstore.Store
}

func (f failingReplaceKV) Replace(context.Context, map[string]string) error {
	return errors.New("disk full")
}

type serviceTestEnv struct {
	fbs      *fakeBlobStore
	kv       *kvstore.MemoryStore
	repairer *countingRepairer
	metrics  *metrics.Manager
	service  *cloudsync.Service
}

var testNow = time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)

func newServiceTestEnv(t *testing.T) *serviceTestEnv {
	t.Helper()
	fbs := newFakeBlobStore(t)
	kv := kvstore.NewMemoryStore()
	repairer := &countingRepairer{report: images.RepairReport{Scanned: 2, Repaired: 2}}
	m := metrics.NewTestManager()
	client := cloudsync.NewClient(fbs.baseURL(), fbs.server.Client())
	return &serviceTestEnv{
		fbs:      fbs,
		kv:       kv,
		repairer: repairer,
		metrics:  m,
		service:  cloudsync.NewService(kv, client, repairer, func() time.Time { return testNow }, m),
	}
}

func TestService_SyncID(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	_, err := env.service.SyncID(ctx)
	assert.ErrorIs(t, err, cloudsync.ErrNoSyncID)

	assert.ErrorIs(t, env.service.SetSyncID(ctx, "short"), cloudsync.ErrInvalidSyncID)
	assert.ErrorIs(t, env.service.SetSyncID(ctx, "   123456789  "), cloudsync.ErrInvalidSyncID)
	_, err = env.service.SyncID(ctx)
	assert.ErrorIs(t, err, cloudsync.ErrNoSyncID)

	require.NoError(t, env.service.SetSyncID(ctx, " 1234567890 "))
	id, err := env.service.SyncID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", id)
}

func TestService_Upload(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.kv.Set(ctx, "gym_tracker_current_day", "1"))

	syncID, err := env.service.Upload(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1380aa5c-0001-11f0-a5d1", syncID)

	storedID, err := env.service.SyncID(ctx)
	require.NoError(t, err)
	assert.Equal(t, syncID, storedID)

	lastSync, err := env.kv.Get(ctx, cloudsync.KeyLastSync)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10T18:30:00.000Z", lastSync)

	blob, ok := env.fbs.get(syncID)
	require.True(t, ok)
	assert.JSONEq(t, `{
		"gym_tracker_current_day": "1",
		"gym_tracker_last_sync": "2026-03-10T18:30:00.000Z"
	}`, blob)

	// second upload overwrites the same blob and carries the sync id
	require.NoError(t, env.kv.Set(ctx, "gym_tracker_current_day", "3"))
	secondID, err := env.service.Upload(ctx)
	require.NoError(t, err)
	assert.Equal(t, syncID, secondID)

	blob, _ = env.fbs.get(syncID)
	assert.JSONEq(t, `{
		"gym_tracker_current_day": "3",
		"gym_tracker_last_sync": "2026-03-10T18:30:00.000Z",
		"gym_tracker_sync_id": "1380aa5c-0001-11f0-a5d1"
	}`, blob)

	status, err := env.service.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, syncID, status.SyncID)
	require.NotNil(t, status.LastSync)
	assert.True(t, testNow.Equal(*status.LastSync))

	assert.Equal(t, float64(2), testutil.ToFloat64(env.metrics.CounterSyncs.WithLabelValues("upload", "ok")))
}

func TestService_Upload_Failure(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.service.SetSyncID(ctx, "unknown-blob-id"))

	_, err := env.service.Upload(ctx)
	require.Error(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.CounterSyncs.WithLabelValues("upload", "failed")))

	id, err := env.service.SyncID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "unknown-blob-id", id)
}

func TestService_Download(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()

	env.fbs.put("remote-blob-0001", `{
		"gym_tracker_workouts": "[]",
		"gym_tracker_current_day": "2"
	}`)
	require.NoError(t, env.kv.Set(ctx, "gym_tracker_current_day", "5"))
	require.NoError(t, env.kv.Set(ctx, "local_only_key", "x"))

	report, err := env.service.Download(ctx, " remote-blob-0001 ")
	require.NoError(t, err)
	assert.Equal(t, &cloudsync.RestoreReport{
		SyncID:       "remote-blob-0001",
		RestoredKeys: 2,
		Images:       images.RepairReport{Scanned: 2, Repaired: 2},
	}, report)
	assert.Equal(t, 1, env.repairer.calls)

	snapshot, err := kvstore.Snapshot(ctx, env.kv)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"gym_tracker_workouts":    "[]",
		"gym_tracker_current_day": "2",
		"gym_tracker_sync_id":     "remote-blob-0001",
	}, snapshot)

	// stored id is used when none given
	env.fbs.put("remote-blob-0001", `{"gym_tracker_current_day": "3"}`)
	report, err = env.service.Download(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "remote-blob-0001", report.SyncID)
	day, err := env.kv.Get(ctx, "gym_tracker_current_day")
	require.NoError(t, err)
	assert.Equal(t, "3", day)

	assert.Equal(t, float64(2), testutil.ToFloat64(env.metrics.CounterSyncs.WithLabelValues("download", "ok")))
}

func TestService_Download_LeavesDataOnFetchFailure(t *testing.T) {
	env := newServiceTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.kv.Set(ctx, "gym_tracker_current_day", "5"))

	_, err := env.service.Download(ctx, "")
	assert.ErrorIs(t, err, cloudsync.ErrNoSyncID)

	_, err = env.service.Download(ctx, "missing-blob-id")
	assert.ErrorIs(t, err, cloudsync.ErrBlobNotFound)

	env.fbs.put("empty-blob-id", `{}`)
	_, err = env.service.Download(ctx, "empty-blob-id")
	assert.ErrorIs(t, err, cloudsync.ErrEmptyBlob)

	day, err := env.kv.Get(ctx, "gym_tracker_current_day")
	require.NoError(t, err)
	assert.Equal(t, "5", day)
	assert.Equal(t, 0, env.repairer.calls)
	assert.Equal(t, float64(3), testutil.ToFloat64(env.metrics.CounterSyncs.WithLabelValues("download", "failed")))
}

func TestService_Download_StoreFault(t *testing.T) {
	fbs := newFakeBlobStore(t)
	fbs.put("remote-blob-0001", `{"gym_tracker_current_day": "2"}`)
	repairer := &countingRepairer{}
	service := cloudsync.NewService(
		failingReplaceKV{Store: kvstore.NewMemoryStore()},
		cloudsync.NewClient(fbs.baseURL(), fbs.server.Client()),
		repairer,
		nil,
		nil,
	)

	_, err := service.Download(context.Background(), "remote-blob-0001")
	require.Error(t, err)
	assert.Equal(t, 0, repairer.calls)
}

func TestService_Download_FailedRestoreKeepsLocalData(t *testing.T) {
	ctx := context.Background()
	fbs := newFakeBlobStore(t)
	fbs.put("remote-blob-0001", `{"gym_tracker_current_day": "2"}`)
	local := kvstore.NewMemoryStore()
	require.NoError(t, local.SetMany(ctx, map[string]string{
		"gym_tracker_workouts":    `[{"id":"w1"}]`,
		"gym_tracker_current_day": "1",
	}))
	service := cloudsync.NewService(
		failingReplaceKV{Store: local},
		cloudsync.NewClient(fbs.baseURL(), fbs.server.Client()),
		nil,
		nil,
		nil,
	)

	_, err := service.Download(ctx, "remote-blob-0001")
	require.Error(t, err)

	snapshot, err := kvstore.Snapshot(ctx, local)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"gym_tracker_workouts":    `[{"id":"w1"}]`,
		"gym_tracker_current_day": "1",
	}, snapshot)
}
