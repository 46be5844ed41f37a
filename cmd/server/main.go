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

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/marswrapped/wrapped-api/internal/config"
	"github.com/marswrapped/wrapped-api/internal/handlers"
	"github.com/marswrapped/wrapped-api/internal/logic"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.IsProduction())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := run(cfg, logger); err != nil {
		sugar.Fatalw("Server stopped", "error", err)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	sugar := logger.Sugar()

	slides, err := logic.LoadSlides(cfg.SlidesFile)
	if err != nil {
		return fmt.Errorf("failed to load slide deck: %w", err)
	}

	loader := logic.NewHTTPLoader(cfg.DataBaseURL, cfg.FetchTimeout, logger)
	reports := logic.NewReportService(loader, slides, logger)

	hcfg := handlers.Config{
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		DataDir:        cfg.DataDir,
		Reports:        reports,
	}

	if cfg.RedisURL == "" {
		sugar.Infow("REDIS_URL not set, share links disabled")
	} else {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			sugar.Warnw("Redis unreachable at startup", "error", err)
		}
		cancel()

		hcfg.Redis = rdb
		hcfg.Shares = logic.NewShareService(reports, rdb, cfg.ShareTTL, cfg.ShareBaseURL)
	}

	h := handlers.New(hcfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("Listening", "addr", srv.Addr, "env", cfg.Env, "slides", len(slides), "dataBaseURL", cfg.DataBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		sugar.Infow("Shutting down", "signal", sig.String())
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(ctx)
}

// newLogger builds a JSON logger for production and a console logger
// otherwise. LOG_LEVEL overrides the default level.
func newLogger(production bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if production {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
		cfg.DisableStacktrace = true
	}
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		if err := cfg.Level.UnmarshalText([]byte(strings.ToLower(raw))); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
		}
	}
	return cfg.Build()
}
