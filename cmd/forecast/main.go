package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/anvilcast/config"
	"github.com/alejandrodnm/anvilcast/internal/adapters/notify"
	"github.com/alejandrodnm/anvilcast/internal/domain"
	"github.com/alejandrodnm/anvilcast/internal/forecast"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to scenario file (empty = reference scenario)")
	mode := flag.String("mode", string(forecast.ModeAll), "engines to run: roi|staffing|all")
	linked := flag.Bool("linked", false, "feed the ROI engine with spinoffs from the cohort model")
	table := flag.Bool("table", false, "print yearly and quarterly tables")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if err := cfg.Log.Validate(); err != nil {
		slog.Error("invalid log flags", "err", err)
		os.Exit(2)
	}
	slog.SetDefault(newLogger(cfg.Log, os.Stderr))

	m, err := forecast.ParseMode(*mode)
	if err != nil {
		slog.Error("invalid mode", "err", err)
		os.Exit(2)
	}

	params, err := buildParams(cfg, m, *linked)
	if err != nil {
		slog.Error("invalid scenario", "err", err, "path", *configPath)
		os.Exit(1)
	}

	slog.Info("anvilcast starting", "config", *configPath, "mode", m, "linked", *linked, "table", *table)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	f := forecast.New(forecast.Config{Mode: m, Linked: *linked}, notify.NewConsole(*table))
	if _, err := f.Run(ctx, params); err != nil {
		if errors.Is(err, domain.ErrUndefinedROI) {
			slog.Error("ROI is undefined for this scenario: no money goes into convertibles", "err", err)
		} else {
			slog.Error("forecast failed", "err", err)
		}
		os.Exit(1)
	}
}

// buildParams traduce la config a inputs del dominio. Sólo construye lo que el modo usa.
func buildParams(cfg *config.Config, m forecast.Mode, linked bool) (forecast.Params, error) {
	p := forecast.Params{
		Terms:    cfg.DealTerms(),
		Staffing: cfg.StaffingParams(),
	}

	if m != forecast.ModeStaffing && !linked {
		s, err := cfg.SpinoffSchedule()
		if err != nil {
			return p, err
		}
		p.Schedule = s
	}

	if m != forecast.ModeROI || linked {
		c, err := cfg.HiringCurve()
		if err != nil {
			return p, err
		}
		p.Curve = c
	}
	return p, nil
}

// newLogger arma el logger; la config ya viene validada.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
