package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/marswrapped/wrapped-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// Pinger is the slice of the Redis client used by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type Config struct {
	// Redis and Shares are nil when sharing is disabled; the share routes
	// and the redis readiness check are then left out.
	Redis  Pinger
	Logger *zap.Logger

	AllowedOrigins []string
	// DataDir, when set, is served at /data/* so the loader can fetch from
	// this same process.
	DataDir string

	// Services
	Reports logic.ReportService
	Shares  logic.ShareService
}

type Handler struct {
	redis          Pinger
	logger         *zap.SugaredLogger
	validator      *validator.Validate
	allowedOrigins []string
	dataDir        string
	reports        logic.ReportService
	shares         logic.ShareService
}

func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		redis:          cfg.Redis,
		logger:         logger.Sugar(),
		validator:      validator.New(),
		allowedOrigins: cfg.AllowedOrigins,
		dataDir:        cfg.DataDir,
		reports:        cfg.Reports,
		shares:         cfg.Shares,
	}
}
