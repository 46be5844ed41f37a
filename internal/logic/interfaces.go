package logic

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marswrapped/wrapped-api/internal/models"
)

// DataLoader fetches the aggregate dataset for one player-count variant.
type DataLoader interface {
	Load(ctx context.Context, pc models.PlayerCount) (*models.Dataset, error)
}

// ReportService builds the full report for one login attempt.
type ReportService interface {
	Generate(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error)
}

// ShareService stores share summaries behind short-lived ids.
type ShareService interface {
	Create(ctx context.Context, username string, pc models.PlayerCount) (*models.ShareResponse, error)
	Get(ctx context.Context, id string) (string, error)
}

// RedisClient defines the interface for Redis client
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}
