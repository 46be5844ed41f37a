package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/marswrapped/wrapped-api/internal/metrics"
	"github.com/marswrapped/wrapped-api/internal/models"
)

// ErrShareNotFound is returned for unknown or expired share ids.
var ErrShareNotFound = errors.New("share not found")

const shareKeyPrefix = "wrapped:share:"

// ShareText is the one-line summary players paste into chat.
func ShareText(pc models.PlayerCount, vars models.Vars) string {
	games := 0
	if g, ok := vars["totalGames"].(int); ok {
		games = g
	}
	return fmt.Sprintf("我在TFM Wrapped 2025中，%d人局共玩了%s场，胜率%s%%！",
		int(pc), FormatNumber(games), formatVar(vars["winRate"]))
}

type shareRecord struct {
	Username    string             `json:"username"`
	PlayerCount models.PlayerCount `json:"player_count"`
	Text        string             `json:"text"`
	CreatedAt   time.Time          `json:"created_at"`
}

type shareService struct {
	reports ReportService
	redis   RedisClient
	ttl     time.Duration
	baseURL string
}

// NewShareService stores share texts in Redis for ttl. baseURL prefixes the
// returned link; an empty baseURL yields a relative path.
func NewShareService(reports ReportService, rdb RedisClient, ttl time.Duration, baseURL string) ShareService {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &shareService{
		reports: reports,
		redis:   rdb,
		ttl:     ttl,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *shareService) Create(ctx context.Context, username string, pc models.PlayerCount) (*models.ShareResponse, error) {
	report, err := s.reports.Generate(ctx, username, pc)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	rec := shareRecord{
		Username:    report.Username,
		PlayerCount: pc,
		Text:        report.ShareText,
		CreatedAt:   time.Now().UTC(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode share: %w", err)
	}
	if err := s.redis.Set(ctx, shareKeyPrefix+id, data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store share: %w", err)
	}
	metrics.SharesCreated.Inc()

	return &models.ShareResponse{
		ID:   id,
		Text: rec.Text,
		URL:  s.baseURL + "/share/" + id,
	}, nil
}

func (s *shareService) Get(ctx context.Context, id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrShareNotFound
	}
	raw, err := s.redis.Get(ctx, shareKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrShareNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read share: %w", err)
	}
	var rec shareRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return "", fmt.Errorf("failed to decode share: %w", err)
	}
	return rec.Text, nil
}
