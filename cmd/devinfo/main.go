// Command devinfo prints the device metrics string for a host described by
// environment variables, and can serve it for inspection.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"

	"github.com/SebastienMelki/devinfo/internal/device"
	"github.com/SebastienMelki/devinfo/internal/observability"
)

// Config holds all devinfo configuration.
type Config struct {
	// LogLevel is the log level (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFormat is the log format (json, text)
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// OutputFormat selects what is printed: "encoded" metrics or plain "json"
	OutputFormat string `env:"OUTPUT_FORMAT" envDefault:"encoded"`

	// MetricsAddr, when set, keeps the process running and serves
	// /metrics, /snapshot and /healthz on this address
	MetricsAddr string `env:"METRICS_ADDR"`

	// IncludeStore adds the installer store to the output
	IncludeStore bool `env:"DEVINFO_INCLUDE_STORE" envDefault:"false"`

	// DefaultAppVersion is reported when the package cannot be resolved
	DefaultAppVersion string `env:"DEVINFO_DEFAULT_APP_VERSION" envDefault:"1.0"`

	// Host describes the simulated device
	Host device.StaticConfig `envPrefix:"DEVINFO_"`

	// Server configuration for inspection mode
	Server ServerConfig `envPrefix:""`
}

func main() {
	if err := run(os.Stdout); err != nil {
		slog.Error("devinfo failed", "error", err)
		os.Exit(1)
	}
}

func run(out io.Writer) error {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	obs, err := observability.New("devinfo")
	if err != nil {
		return fmt.Errorf("setup observability: %w", err)
	}
	defer shutdown("observability", obs, logger)

	metrics, err := observability.NewMetrics(obs.Meter())
	if err != nil {
		return fmt.Errorf("create metrics: %w", err)
	}

	info := device.New(device.NewStaticHost(cfg.Host), logger,
		device.WithDefaultAppVersion(cfg.DefaultAppVersion),
		device.WithStore(cfg.IncludeStore),
		device.WithRecorder(metrics),
	)

	if err := printSnapshot(out, info, cfg.OutputFormat); err != nil {
		return err
	}

	if cfg.MetricsAddr == "" {
		return nil
	}

	logger.Info("starting inspection server",
		"addr", cfg.MetricsAddr,
		"model", cfg.Host.Model,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := NewServer(cfg.MetricsAddr, cfg.Server, info, obs, metrics, logger)
	return server.Run(ctx)
}

// shutdowner is anything flushed on exit.
type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdown stops s and logs any error instead of dropping it.
func shutdown(name string, s shutdowner, logger *slog.Logger) {
	if err := s.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "component", name, "error", err)
	}
}

// printSnapshot writes one snapshot to out in the requested format.
func printSnapshot(out io.Writer, info device.Info, format string) error {
	switch format {
	case "encoded", "":
		_, err := fmt.Fprintln(out, info.Metrics())
		return err
	case "json":
		data, err := device.MarshalSnapshot(info.Snapshot())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	default:
		return fmt.Errorf("unknown output format %q (want encoded or json)", format)
	}
}

// setupLogger creates a logger based on configuration.
func setupLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	// Logs go to stderr so stdout carries only the metrics output.
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
