package main

import (
	"context"
	"flag"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"wows_recent_stats/internal/app"
	"wows_recent_stats/internal/stats"
	"wows_recent_stats/internal/storage"
	"wows_recent_stats/internal/wows"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	runOnce := flag.Bool("once", false, "Refresh the expected table once and exit (don't start scheduler)")
	flag.Parse()

	// Load configuration
	config, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().
		Str("data_dir", config.DataDir).
		Dur("refresh_interval", config.ExpectedRefreshInterval).
		Bool("run_once", *runOnce).
		Msg("Starting WoWs recent stats service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := wows.NewClient()
	expectedPath := filepath.Join(config.DataDir, "expected.json")

	// Pick up the persisted table so a restart inside the refresh window
	// doesn't hammer upstream.
	expected := stats.NewExpectedStats()
	if _, err := storage.Load(expectedPath, expected); err != nil {
		log.Warn().Err(err).Msg("Discarding unreadable expected table, will fetch a fresh one")
		expected = stats.NewExpectedStats()
	}

	refreshExpected := func() {
		log.Debug().Msg("Starting expected table refresh")

		// Reset API call counter at the start of each cycle
		client.ResetAPICallCount()

		fresh, err := client.ExpectedStats(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to fetch expected stats table")
			return
		}
		if err := storage.Save(expectedPath, fresh); err != nil {
			log.Error().Err(err).Msg("Failed to persist expected stats table")
			return
		}
		expected = fresh

		log.Info().
			Int("ships", fresh.Len()).
			Int64("api_calls", client.GetAPICallCount()).
			Msg("Refreshed expected stats table")
	}

	// Run an initial refresh when the persisted table is missing or has aged
	// past the refresh interval.
	age := time.Since(time.Unix(expected.UpdatedAt(), 0))
	if expected.Len() == 0 || age > config.ExpectedRefreshInterval {
		log.Info().Msg("Running initial expected table refresh")
		refreshExpected()
	} else {
		log.Info().
			Int("ships", expected.Len()).
			Dur("age", age).
			Msg("Persisted expected table is still fresh")
	}

	// Exit if run-once flag is set
	if *runOnce {
		log.Info().Msg("Run-once mode: exiting after initial refresh")
		return
	}

	if config.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Info().Str("addr", config.MetricsAddr).Msg("Serving Prometheus metrics")
			if err := http.ListenAndServe(config.MetricsAddr, mux); err != nil {
				log.Error().Err(err).Msg("Metrics endpoint stopped")
			}
		}()
	}

	// Start scheduled refreshes
	log.Info().
		Dur("interval", config.ExpectedRefreshInterval).
		Msg("Starting scheduled expected table refreshes")

	ticker := time.NewTicker(config.ExpectedRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Shutting down")
			return
		case <-ticker.C:
			refreshExpected()
		}
	}
}
