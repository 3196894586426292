package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/gymrota/internal/cloudsync"
	"github.com/2beens/gymrota/internal/config"
	"github.com/2beens/gymrota/internal/db"
	"github.com/2beens/gymrota/internal/images"
	"github.com/2beens/gymrota/internal/middleware"
	"github.com/2beens/gymrota/internal/rotation"
	"github.com/2beens/gymrota/internal/stats"
	"github.com/2beens/gymrota/internal/telemetry/metrics"
	"github.com/2beens/gymrota/internal/telemetry/tracing"
	"github.com/2beens/gymrota/internal/workouts"
	"github.com/2beens/gymrota/pkg"
)

// a workout day holds at most 7 exercises, request bodies stay small
const maxRequestBodyBytes = 64 << 10

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config     *config.Config
	backends   *Backends
	components *Components

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	PostgresUser            string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	backends, err := OpenBackends(ctx, OpenBackendsParams{
		Config:           params.Config,
		RedisPassword:    params.RedisPassword,
		PostgresUser:     params.PostgresUser,
		PostgresPassword: params.PostgresPassword,
		TracingEnabled:   params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("open backends: %w", err)
	}

	var extraCollectors []prometheus.Collector
	if backends.DBPool != nil {
		extraCollectors = append(extraCollectors, db.NewPoolCollector(backends.DBPool, params.Config.PostgresDBName))
	}
	promRegistry := metrics.SetupPrometheus(extraCollectors...)
	metricsManager := metrics.NewManager("gymrota", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymrota", backends.RedisClient)
	if err != nil {
		backends.Close()
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   time.Minute,
	}

	components, err := NewComponents(params.Config, backends.KV, tracedHttpClient, metricsManager)
	if err != nil {
		otelShutdown()
		backends.Close()
		return nil, fmt.Errorf("new components: %w", err)
	}

	if installDate, err := components.Workouts.InitInstallDate(ctx); err != nil {
		log.Errorf("init install date: %s", err)
	} else {
		log.Debugf("install date: %s", installDate.Format(time.RFC3339))
	}

	return &Server{
		config:      params.Config,
		versionInfo: params.VersionInfo,
		backends:    backends,
		components:  components,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymrota-router"))

	workoutsHandler := workouts.NewHandler(
		s.components.Workouts,
		s.components.Provisioner,
		s.components.Stats,
		s.metricsManager,
	)
	r.HandleFunc("/workouts", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts/{day}", workoutsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/{day}", workoutsHandler.HandleUpsert).Methods("PUT", "OPTIONS").Name("upsert-workout")
	r.HandleFunc("/workouts/{day}", workoutsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
	r.HandleFunc("/workouts/{day}/exercises/{id}/complete", workoutsHandler.HandleComplete).Methods("POST", "OPTIONS").Name("complete-exercise")
	r.HandleFunc("/workouts/{day}/exercises/{id}/complete", workoutsHandler.HandleUncomplete).Methods("DELETE", "OPTIONS").Name("uncomplete-exercise")

	rotationHandler := rotation.NewHandler(s.components.Engine)
	r.HandleFunc("/rotation/current", rotationHandler.HandleCurrent).Methods("GET", "OPTIONS").Name("current-workout")
	r.HandleFunc("/rotation/advance", rotationHandler.HandleAdvance).Methods("POST", "OPTIONS").Name("advance-rotation")

	statsHandler := stats.NewHandler(s.components.Stats)
	r.HandleFunc("/stats", statsHandler.HandleGet).Methods("GET", "OPTIONS").Name("stats")

	imagesHandler := images.NewHandler(
		s.components.ImageLookup,
		s.components.Provisioner,
		s.components.DiskStore,
	)
	r.HandleFunc("/images/lookup", imagesHandler.HandleLookup).Methods("GET", "OPTIONS").Name("lookup-image")
	r.HandleFunc("/images/repair", imagesHandler.HandleRepair).Methods("POST", "OPTIONS").Name("repair-images")
	r.HandleFunc("/images/file/{name}", imagesHandler.HandleGetFile).Methods("GET", "OPTIONS").Name("get-image")

	syncHandler := cloudsync.NewHandler(s.components.Sync)
	syncRouter := r.PathPrefix("/sync").Subrouter()
	syncRouter.HandleFunc("/upload", syncHandler.HandleUpload).Methods("POST", "OPTIONS").Name("sync-upload")
	syncRouter.HandleFunc("/download", syncHandler.HandleDownload).Methods("POST", "OPTIONS").Name("sync-download")
	syncRouter.HandleFunc("/id", syncHandler.HandleGetSyncID).Methods("GET", "OPTIONS").Name("get-sync-id")
	syncRouter.HandleFunc("/id", syncHandler.HandleSetSyncID).Methods("PUT", "OPTIONS").Name("set-sync-id")
	if s.backends.RedisClient != nil {
		syncRouter.Use(middleware.RateLimit(
			redis_rate.NewLimiter(s.backends.RedisClient),
			"gymrota-sync",
			s.config.SyncRateLimitAllowedPerMin,
			s.metricsManager,
		))
	} else {
		log.Warnln("redis not configured, sync endpoints are not rate limited")
	}

	r.HandleFunc("/version", s.handleVersion).Methods("GET", "OPTIONS").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.LimitAndDrainRequest(maxRequestBodyBytes))

	return r, nil
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSONResponseOK(w, map[string]string{
		"version":     s.versionInfo,
		"environment": s.config.Environment,
	})
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the store goes away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	s.backends.Close()

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
