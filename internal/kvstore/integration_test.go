//go:build integration

package kvstore

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testingpkg "github.com/2beens/gymrota/pkg/testing"
)

func newDockerPool(t *testing.T) *dockertest.Pool {
	t.Helper()
	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, pool.Client.Ping())
	return pool
}

func TestRedisStore_Integration(t *testing.T) {
	pool := newDockerPool(t)
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := resource.Close(); err != nil {
			t.Logf("redis teardown: %s", err)
		}
	})

	port := resource.GetPort("6379/tcp")
	require.NoError(t, pool.Retry(func() error {
		return pingRedis(port)
	}))

	ctx, rdb := testingpkg.GetRedisClientAndCtx(t, port)
	checkStoreBehaviour(ctx, t, NewRedisStore(rdb, "it:"))
}

func TestPgStore_Integration(t *testing.T) {
	pool := newDockerPool(t)
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=gymrota",
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := resource.Close(); err != nil {
			t.Logf("postgres teardown: %s", err)
		}
	})

	dsn := fmt.Sprintf(
		"postgres://postgres@localhost:%s/gymrota?sslmode=disable",
		resource.GetPort("5432/tcp"),
	)
	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Ping()
	}))

	ctx := context.Background()
	dbPool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(dbPool.Close)

	s := NewPgStore(dbPool)
	require.NoError(t, s.Migrate(ctx))
	checkStoreBehaviour(ctx, t, s)
}

func TestMemoryStore_Behaviour(t *testing.T) {
	checkStoreBehaviour(context.Background(), t, NewMemoryStore())
}

func pingRedis(port string) error {
	rdb := redis.NewClient(&redis.Options{
		Addr: net.JoinHostPort("localhost", port),
	})
	defer rdb.Close()
	return rdb.Ping(context.Background()).Err()
}

func checkStoreBehaviour(ctx context.Context, t *testing.T, s Store) {
	t.Helper()

	require.NoError(t, s.Clear(ctx))

	_, err := s.Get(ctx, "gym_tracker_workouts")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "gym_tracker_workouts", `[{"day":"1"}]`))
	require.NoError(t, s.Set(ctx, "gym_tracker_workouts", `[{"day":"2"}]`))
	val, err := s.Get(ctx, "gym_tracker_workouts")
	require.NoError(t, err)
	assert.Equal(t, `[{"day":"2"}]`, val)

	require.NoError(t, s.SetMany(ctx, map[string]string{
		"gym_tracker_current_day":   "2",
		"gym_tracker_completed_days": `["2026-01-01"]`,
	}))

	keys, err := s.ListKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"gym_tracker_workouts",
		"gym_tracker_current_day",
		"gym_tracker_completed_days",
	}, keys)

	vals, err := s.GetMany(ctx, []string{"gym_tracker_current_day", "missing"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"gym_tracker_current_day": "2"}, vals)

	require.NoError(t, s.Delete(ctx, "gym_tracker_current_day"))
	_, err = s.Get(ctx, "gym_tracker_current_day")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Replace(ctx, map[string]string{
		"gym_tracker_current_day": "3",
		"gym_tracker_install_date": "2026-01-01",
	}))
	keys, err = s.ListKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"gym_tracker_current_day",
		"gym_tracker_install_date",
	}, keys)

	require.NoError(t, s.Clear(ctx))
	keys, err = s.ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}
