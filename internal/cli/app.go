package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/gymrota/internal"
	"github.com/2beens/gymrota/internal/config"
	"github.com/2beens/gymrota/internal/logging"
	"github.com/2beens/gymrota/internal/telemetry/metrics"
)

// app is what every command works against: the configured store and
// the domain components on top of it
type app struct {
	components *internal.Components
	close      func()
}

// openApp is swapped in tests
var openApp = func(cmd *cobra.Command) (*app, error) {
	env, _ := cmd.Flags().GetString("env")
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	log.SetOutput(cmd.ErrOrStderr())
	if verbose {
		log.SetLevel(logging.GetLevel("debug"))
	} else {
		log.SetLevel(logging.GetLevel("warn"))
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	backends, err := internal.OpenBackends(ctx, internal.OpenBackendsParams{
		Config:           cfg,
		RedisPassword:    os.Getenv("GYMROTA_REDIS_PASS"),
		PostgresUser:     os.Getenv("GYMROTA_DB_USER"),
		PostgresPassword: os.Getenv("GYMROTA_DB_PASS"),
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	httpClient := &http.Client{Timeout: time.Minute}
	// nobody scrapes the CLI, the manager only satisfies the components
	metricsManager := metrics.NewManager("gymrota", "cli", prometheus.NewRegistry())

	components, err := internal.NewComponents(cfg, backends.KV, httpClient, metricsManager)
	if err != nil {
		backends.Close()
		return nil, err
	}

	if _, err := components.Workouts.InitInstallDate(cmd.Context()); err != nil {
		log.Errorf("init install date: %s", err)
	}

	return &app{
		components: components,
		close:      backends.Close,
	}, nil
}

// withApp opens the app for the duration of run
func withApp(cmd *cobra.Command, run func(a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	return run(a)
}
