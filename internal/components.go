package internal

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrota/internal/cloudsync"
	"github.com/2beens/gymrota/internal/config"
	"github.com/2beens/gymrota/internal/db"
	"github.com/2beens/gymrota/internal/imagelookup"
	"github.com/2beens/gymrota/internal/images"
	"github.com/2beens/gymrota/internal/kvstore"
	"github.com/2beens/gymrota/internal/rotation"
	"github.com/2beens/gymrota/internal/stats"
	"github.com/2beens/gymrota/internal/telemetry/metrics"
	"github.com/2beens/gymrota/internal/workouts"
)

// Backends holds the connections behind the persistence store
type Backends struct {
	RedisClient *redis.Client
	DBPool      *pgxpool.Pool
	KV          kvstore.Store
}

type OpenBackendsParams struct {
	Config           *config.Config
	RedisPassword    string
	PostgresUser     string
	PostgresPassword string
	TracingEnabled   bool
}

// OpenBackends connects the configured store backend. A redis client is
// created whenever redis is configured, it also backs the rate limiter.
func OpenBackends(ctx context.Context, params OpenBackendsParams) (_ *Backends, err error) {
	cfg := params.Config
	b := &Backends{}
	defer func() {
		if err != nil {
			b.Close()
		}
	}()

	if cfg.RedisHost != "" && cfg.RedisPort != "" {
		b.RedisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})

		rdbStatus := b.RedisClient.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	}

	switch cfg.StoreBackend {
	case config.StoreBackendRedis:
		if b.RedisClient == nil {
			return nil, fmt.Errorf("redis store backend without redis config")
		}
		b.KV = kvstore.NewRedisStore(b.RedisClient, cfg.RedisKeyPrefix)
	case config.StoreBackendPostgres:
		b.DBPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         params.PostgresUser,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.TracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := b.DBPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}

		pgStore := kvstore.NewPgStore(b.DBPool)
		if err := pgStore.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate kv store table: %w", err)
		}
		b.KV = pgStore
	case config.StoreBackendMemory:
		log.Warnln("using in-memory store, data is lost on shutdown")
		b.KV = kvstore.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}

	log.Infof("store backend: %s", cfg.StoreBackend)
	return b, nil
}

func (b *Backends) Close() {
	if b.RedisClient != nil {
		if err := b.RedisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if b.DBPool != nil {
		log.Debugln("closing db pool ...")
		b.DBPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
}

// Components are the domain services, all sharing one persistence store
type Components struct {
	State       *workouts.AppState
	Workouts    *workouts.Store
	Engine      *rotation.Engine
	Stats       *stats.Calculator
	DiskStore   *images.DiskStore
	Provisioner *images.Provisioner
	ImageLookup *imagelookup.Api
	Sync        *cloudsync.Service
}

func NewComponents(
	cfg *config.Config,
	kv kvstore.Store,
	httpClient *http.Client,
	metricsManager *metrics.Manager,
) (*Components, error) {
	loc := cfg.Location()
	now := func() time.Time {
		return time.Now().In(loc)
	}

	diskStore, err := images.NewDiskStore(cfg.ImagesDir, httpClient)
	if err != nil {
		return nil, fmt.Errorf("new images disk store: %w", err)
	}
	log.Debugf("images dir: %s", diskStore.RootPath())

	state := workouts.NewAppState(kv)
	workoutsStore := workouts.NewStore(kv, state, now)
	provisioner := images.NewProvisioner(diskStore, workoutsStore, metricsManager)

	return &Components{
		State:       state,
		Workouts:    workoutsStore,
		Engine:      rotation.NewEngine(workoutsStore, state, now, metricsManager),
		Stats:       stats.NewCalculator(state, now),
		DiskStore:   diskStore,
		Provisioner: provisioner,
		ImageLookup: imagelookup.NewApi(cfg.ImageLookupBaseURL, httpClient),
		Sync: cloudsync.NewService(
			kv,
			cloudsync.NewClient(cfg.CloudSyncBaseURL, httpClient),
			provisioner,
			now,
			metricsManager,
		),
	}, nil
}
