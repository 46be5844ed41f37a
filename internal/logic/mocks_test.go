package logic

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marswrapped/wrapped-api/internal/models"
)

// MockDataLoader implements DataLoader for testing
type MockDataLoader struct {
	LoadFunc func(ctx context.Context, pc models.PlayerCount) (*models.Dataset, error)
	Calls    int
}

func (m *MockDataLoader) Load(ctx context.Context, pc models.PlayerCount) (*models.Dataset, error) {
	m.Calls++
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, pc)
	}
	return enderDataset(), nil
}

// MockRedis is an in-memory RedisClient
type MockRedis struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	SetFunc func(ctx context.Context, key string, value interface{}, exp time.Duration) *redis.StatusCmd
}

func NewMockRedis() *MockRedis {
	return &MockRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *MockRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) *redis.StatusCmd {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, exp)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func intPtr(v int) *int { return &v }

// enderDataset is a 4-player dataset with one fully populated user.
func enderDataset() *models.Dataset {
	return &models.Dataset{
		Summary: models.Summary{TotalUsers: 2, TotalGames: 150, TotalWins: 60, PlayersFilter: 4, MinGames: 5},
		Rankings: models.Rankings{
			TotalGamesTop100: []models.RankingEntry{{UserKey: "Ender", TotalGames: 120, Rank: 1}},
			WinRateTop100:    []models.RankingEntry{{UserKey: "Ender", WinRate: 45.6, Rank: 7}},
		},
		Users: map[string]*models.UserRecord{
			"Ender": {
				Metadata: models.UserMetadata{UserKey: "Ender", InputNames: []string{"Ender"}, PlayersFilter: 4},
				PlayerStats: models.PlayerStats{
					TotalGames:          120,
					TotalWins:           54,
					WinRate:             45.6,
					AvgPosition:         1.85,
					AvgScore:            88.4,
					AvgGenerations:      9.6,
					AvgTR:               38.2,
					AvgCardsPlayed:      32.5,
					TotalCardsPlayedSum: 3901.5,
					TotalTRSum:          4584.4,
				},
				RecordsByGeneration: map[string]models.GenerationRecord{
					"8":  {Generation: 8, TotalGameCount: 5, MaxScore: 101},
					"10": {Generation: 10, TotalGameCount: 5, MaxScore: 95},
					"9":  {Generation: 9, TotalGameCount: 3, MaxScore: 110},
				},
				Top100Corporations: []models.CorporationRanking{
					{Corporation: "Credicor", CNName: "信贷公司", Rank: 12, UsageCount: 30},
				},
				GlobalRankings: models.GlobalRankings{
					TotalGamesTop100: intPtr(1),
					WinRateTop100:    intPtr(7),
				},
			},
			"Bean": {
				Metadata:    models.UserMetadata{UserKey: "Bean"},
				PlayerStats: models.PlayerStats{TotalGames: 30, TotalWins: 6, WinRate: 20},
			},
		},
	}
}
