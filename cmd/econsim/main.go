// Command econsim hosts the two economic toy simulations — bread
// affordability and wealth concentration — behind an HTTP/WebSocket API
// for the browser frontend.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/talgya/econsim/internal/api"
	"github.com/talgya/econsim/internal/engine"
	"github.com/talgya/econsim/internal/sim"
	"github.com/talgya/econsim/internal/tuning"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env")
	}

	tuningPath := envOrDefault("ECONSIM_TUNING", "tuning.yaml")
	cfg, err := tuning.Load(tuningPath)
	if err != nil {
		slog.Error("failed to load tuning", "path", tuningPath, "error", err)
		os.Exit(1)
	}

	port := envIntOrDefault("ECONSIM_PORT", cfg.Port)

	slog.Info("econsim starting",
		"agents", sim.AgentCount,
		"initial_value", cfg.InitialValue,
		"growth_rate", cfg.GrowthRate,
		"redistribution_rate", cfg.RedistributionRate,
		"bread_fraction", cfg.BreadFraction,
	)

	bread := engine.NewController(
		sim.New(cfg.SimConfig(sim.VariantBread)),
		cfg.AutoPlayInterval(), cfg.AutoPlayMinInterval(),
	)
	gini := engine.NewController(
		sim.New(cfg.SimConfig(sim.VariantGini)),
		cfg.AutoPlayInterval(), cfg.AutoPlayMinInterval(),
	)

	server := &api.Server{
		Bread: bread,
		Gini:  gini,
		Port:  port,
	}
	server.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	// Auto-play cancellation always lands on a completed step.
	bread.StopAuto()
	gini.StopAuto()
	slog.Info("simulations stopped",
		"bread_step", bread.View().StepIndex,
		"gini_step", gini.View().StepIndex,
	)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
