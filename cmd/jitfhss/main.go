package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/BelaBartok39/JIT-FHSS/internal/config"
	"github.com/BelaBartok39/JIT-FHSS/internal/metrics"
	"github.com/BelaBartok39/JIT-FHSS/internal/sim"
)

func main() {
	level := slog.LevelInfo
	if v := os.Getenv("JITFHSS_LOG_LEVEL"); v == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	scn, err := loadScenario(logger)
	if err != nil {
		logger.Error("invalid scenario", "error", err)
		os.Exit(1)
	}

	// Optional Prometheus exposition for long runs.
	if addr := os.Getenv("JITFHSS_METRICS_ADDR"); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			logger.Info("metrics listener starting", "addr", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Warn("metrics listener stopped", "error", err)
			}
		}()
	}

	runner, err := sim.Build(scn, logger)
	if err != nil {
		logger.Error("building simulation", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary := runner.Run(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		logger.Error("writing summary", "error", err)
		os.Exit(1)
	}
}

// loadScenario reads the scenario file named by JITFHSS_SCENARIO, or the
// defaults when unset, then applies env overrides.
func loadScenario(logger *slog.Logger) (*config.Scenario, error) {
	var scn *config.Scenario
	if path := os.Getenv("JITFHSS_SCENARIO"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		scn = loaded
		logger.Info("scenario loaded", "path", path, "name", scn.Name)
	} else {
		def := config.Default()
		scn = &def
		logger.Info("no scenario file configured, using defaults")
	}

	if v := os.Getenv("JITFHSS_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			logger.Warn("invalid JITFHSS_SEED value, keeping scenario seed", "value", v)
		} else {
			scn.Seed = n
		}
	}

	if v := os.Getenv("JITFHSS_DURATION_SECONDS"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n <= 0 {
			logger.Warn("invalid JITFHSS_DURATION_SECONDS value, keeping scenario duration", "value", v)
		} else {
			scn.DurationSeconds = n
		}
	}

	return scn, scn.Validate()
}
