package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"offlined/internal/config"
	"offlined/internal/httpapi"
	"offlined/internal/runtime"
	"offlined/internal/worker"
)

// flagEnv maps flags to the environment variables that provide their defaults.
var flagEnv = map[string]string{
	"addr":         "OFFLINED_ADDR",
	"upstream":     "OFFLINED_UPSTREAM",
	"log-level":    "OFFLINED_LOG_LEVEL",
	"cors-origins": "OFFLINED_CORS_ORIGINS",
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "offlined",
		Short:         "HTTP interception layer that answers \"Offline\" when the network fails",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, cfgPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	root.Flags().StringVar(&cfgPath, "config", os.Getenv("OFFLINED_CONFIG"), "Config file (.yaml, .json or .toml); searched in ./offlined.* and ~/.config/offlined when unset")
	root.Flags().String("addr", "", "HTTP listen address, e.g. :8080 (env OFFLINED_ADDR)")
	root.Flags().String("upstream", "", "Origin to forward intercepted requests to; empty for forward-proxy mode (env OFFLINED_UPSTREAM)")
	root.Flags().String("log-level", "", "Log level: debug|info|warn|error (env OFFLINED_LOG_LEVEL)")
	root.Flags().String("cors-origins", "", "Comma-separated origins allowed to call /_sw endpoints; enables CORS (env OFFLINED_CORS_ORIGINS)")
	return root
}

// resolveConfig layers the config file, then environment, then explicit flags.
func resolveConfig(cmd *cobra.Command, path string) (config.Config, error) {
	var cfg config.Config
	if path == "" {
		var err error
		if path, err = config.Locate(config.SearchPaths); err != nil {
			return cfg, err
		}
	}
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	value := func(flag string) (string, bool) {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			return f.Value.String(), true
		}
		if v, ok := os.LookupEnv(flagEnv[flag]); ok && v != "" {
			return v, true
		}
		return "", false
	}
	if v, ok := value("addr"); ok {
		cfg.Addr = v
	}
	if v, ok := value("upstream"); ok {
		cfg.Upstream = v
	}
	if v, ok := value("log-level"); ok {
		cfg.LogLevel = v
	}
	if v, ok := value("cors-origins"); ok {
		cfg.CORSOrigins = splitCSV(v)
		cfg.CORSEnabled = len(cfg.CORSOrigins) > 0
	}
	cfg.ApplyDefaults()
	if _, err := cfg.UpstreamURL(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger(), nil
}

func run(ctx context.Context, cfg config.Config) error {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	upstream, err := cfg.UpstreamURL()
	if err != nil {
		return err
	}
	network := cfg.Transport()

	container := runtime.New(runtime.Config{Upstream: upstream, Network: network, Logger: &logger})
	interceptor := worker.New(worker.WithNetwork(network), worker.WithLogger(logger.With().Str("component", "worker").Logger()))
	if _, err := container.Register(interceptor); err != nil {
		return fmt.Errorf("register worker: %w", err)
	}

	httpapi.SetLogger(logger.With().Str("component", "http").Logger())
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, []string{"GET", "POST", "OPTIONS"}, []string{"Content-Type"})
	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(container), ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("upstream", cfg.Upstream).Msg("offlined listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
