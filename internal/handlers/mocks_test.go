package handlers

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/marswrapped/wrapped-api/internal/models"
)

// MockReportService
type MockReportService struct {
	GenerateFunc func(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error)
}

func (m *MockReportService) Generate(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, username, pc)
	}
	return &models.ReportResponse{Username: username, PlayerCount: pc}, nil
}

// MockShareService
type MockShareService struct {
	CreateFunc func(ctx context.Context, username string, pc models.PlayerCount) (*models.ShareResponse, error)
	GetFunc    func(ctx context.Context, id string) (string, error)
}

func (m *MockShareService) Create(ctx context.Context, username string, pc models.PlayerCount) (*models.ShareResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, username, pc)
	}
	return &models.ShareResponse{ID: "mock"}, nil
}

func (m *MockShareService) Get(ctx context.Context, id string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return "", nil
}

// MockPinger
type MockPinger struct {
	Down bool
}

func (m *MockPinger) Ping(ctx context.Context) *redis.StatusCmd {
	if m.Down {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}
	return redis.NewStatusResult("PONG", nil)
}
