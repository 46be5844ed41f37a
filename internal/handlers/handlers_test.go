package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/marswrapped/wrapped-api/internal/logic"
	"github.com/marswrapped/wrapped-api/internal/models"
)

func newTestHandler(reports *MockReportService, shares *MockShareService, pinger *MockPinger) *Handler {
	if reports == nil {
		reports = &MockReportService{}
	}
	if shares == nil {
		shares = &MockShareService{}
	}
	if pinger == nil {
		pinger = &MockPinger{}
	}
	return New(Config{
		Redis:          pinger,
		Logger:         zap.NewNop(),
		AllowedOrigins: []string{"https://wrapped.example"},
		Reports:        reports,
		Shares:         shares,
	})
}

func threeSlideReport(username string, pc models.PlayerCount) *models.ReportResponse {
	return &models.ReportResponse{
		Username:    username,
		PlayerCount: pc,
		Slides:      make([]models.Slide, 3),
		Radar: []models.RadarPoint{
			{Label: "平均排位", Value: 80, DisplayValue: "1.60"},
			{Label: "游戏场次", Value: 60, DisplayValue: "120"},
			{Label: "平均TR", Value: 70, DisplayValue: "35.0"},
			{Label: "出牌数量", Value: 50, DisplayValue: "25.0"},
			{Label: "平均时代", Value: 40, DisplayValue: "G10.8"},
		},
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		query          string
		generate       func(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Happy Path",
			body: `{"username":"ender","password":"hunter2","playerCount":4}`,
			generate: func(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error) {
				return threeSlideReport("Ender", pc), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"Ender"`,
		},
		{
			name:  "Initial Slide",
			body:  `{"username":"ender","playerCount":2}`,
			query: "?slide=2",
			generate: func(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error) {
				return threeSlideReport("Ender", pc), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"current_slide":2`,
		},
		{
			name:  "Initial Slide Out Of Range",
			body:  `{"username":"ender","playerCount":2}`,
			query: "?slide=7",
			generate: func(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error) {
				return threeSlideReport("Ender", pc), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"current_slide":0`,
		},
		{
			name:           "Invalid JSON",
			body:           `{"username":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid JSON",
		},
		{
			name:           "Missing Username",
			body:           `{"playerCount":4}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Username required",
		},
		{
			name:           "Bad Player Count",
			body:           `{"username":"ender","playerCount":3}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "PlayerCount oneof",
		},
		{
			name: "User Not Found",
			body: `{"username":"petra","playerCount":4}`,
			generate: func(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error) {
				return nil, logic.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   logic.MsgUserNotFound,
		},
		{
			name: "Data Load Failed",
			body: `{"username":"ender","playerCount":4}`,
			generate: func(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error) {
				return nil, &logic.DataLoadError{PlayerCount: pc, StatusCode: 404, Status: "404 Not Found"}
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   logic.MsgDataLoadFailed,
		},
		{
			name: "Unexpected Error",
			body: `{"username":"ender","playerCount":4}`,
			generate: func(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error) {
				return nil, errors.New("boom")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := &MockReportService{GenerateFunc: tt.generate}
			h := newTestHandler(reports, nil, nil)

			r := httptest.NewRequest("POST", "/api/v1/report"+tt.query, strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			h.Router().ServeHTTP(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestLogin_PassesTrimmedFormToService(t *testing.T) {
	var gotUser string
	var gotPC models.PlayerCount
	reports := &MockReportService{
		GenerateFunc: func(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error) {
			gotUser, gotPC = username, pc
			return threeSlideReport(username, pc), nil
		},
	}
	h := newTestHandler(reports, nil, nil)

	r := httptest.NewRequest("POST", "/api/v1/report", strings.NewReader(`{"username":" Ender ","password":"x","playerCount":2}`))
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotUser != " Ender " || gotPC != models.TwoPlayer {
		t.Errorf("service got %q/%d", gotUser, gotPC)
	}
}

func TestRadarSVG(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		generate       func(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error)
		expectedStatus int
		expectedType   string
		expectedBody   string
	}{
		{
			name: "Happy Path",
			path: "/api/v1/report/4/Ender/radar.svg?size=400",
			generate: func(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error) {
				return threeSlideReport(username, pc), nil
			},
			expectedStatus: http.StatusOK,
			expectedType:   "image/svg+xml",
			expectedBody:   `<svg width="400" height="400"`,
		},
		{
			name: "Size Clamped",
			path: "/api/v1/report/2/Ender/radar.svg?size=5",
			generate: func(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error) {
				return threeSlideReport(username, pc), nil
			},
			expectedStatus: http.StatusOK,
			expectedType:   "image/svg+xml",
			expectedBody:   `<svg width="120" height="120"`,
		},
		{
			name:           "Bad Player Count",
			path:           "/api/v1/report/3/Ender/radar.svg",
			expectedStatus: http.StatusBadRequest,
			expectedType:   "application/json",
			expectedBody:   "playerCount",
		},
		{
			name: "User Not Found",
			path: "/api/v1/report/4/Petra/radar.svg",
			generate: func(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error) {
				return nil, logic.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedType:   "application/json",
			expectedBody:   logic.MsgUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&MockReportService{GenerateFunc: tt.generate}, nil, nil)

			w := httptest.NewRecorder()
			h.Router().ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != tt.expectedType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.expectedType)
			}
			if !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %.120q", tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestShareEndpoints(t *testing.T) {
	shares := &MockShareService{
		CreateFunc: func(ctx context.Context, username string, pc models.PlayerCount) (*models.ShareResponse, error) {
			if username == "Petra" {
				return nil, logic.ErrUserNotFound
			}
			return &models.ShareResponse{ID: "abc", Text: "我在TFM Wrapped 2025中", URL: "/share/abc"}, nil
		},
		GetFunc: func(ctx context.Context, id string) (string, error) {
			switch id {
			case "abc":
				return "我在TFM Wrapped 2025中", nil
			case "broken":
				return "", errors.New("redis down")
			}
			return "", logic.ErrShareNotFound
		},
	}
	h := newTestHandler(nil, shares, nil)
	router := h.Router()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{"Create", "POST", "/api/v1/share", `{"username":"Ender","playerCount":4}`, http.StatusCreated, `"id":"abc"`},
		{"Create Unknown User", "POST", "/api/v1/share", `{"username":"Petra","playerCount":4}`, http.StatusNotFound, logic.MsgUserNotFound},
		{"Create Invalid", "POST", "/api/v1/share", `{"playerCount":4}`, http.StatusBadRequest, "Validation failed"},
		{"Get", "GET", "/api/v1/share/abc", "", http.StatusOK, `"text":"我在TFM Wrapped 2025中"`},
		{"Get Missing", "GET", "/api/v1/share/nope", "", http.StatusNotFound, "Share not found"},
		{"Get Store Error", "GET", "/api/v1/share/broken", "", http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestHealthAndReady(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		down           bool
		expectedStatus int
		expectedBody   string
	}{
		{"Health", "/health", false, http.StatusOK, `"status":"ok"`},
		{"Ready", "/ready", false, http.StatusOK, `"ready":true`},
		{"Not Ready", "/ready", true, http.StatusServiceUnavailable, `"redis":false`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(nil, nil, &MockPinger{Down: tt.down})
			w := httptest.NewRecorder()
			h.Router().ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestRouter_WithoutRedis(t *testing.T) {
	h := New(Config{Logger: zap.NewNop(), Reports: &MockReportService{}})
	router := h.Router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ready", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ready":true`) {
		t.Errorf("ready: status = %d body = %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/share", strings.NewReader(`{"username":"ender","playerCount":4}`)))
	if w.Code != http.StatusNotFound {
		t.Errorf("share: status = %d, want 404", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/report", strings.NewReader(`{"username":"ender","playerCount":4}`)))
	if w.Code != http.StatusOK {
		t.Errorf("report: status = %d, want 200", w.Code)
	}
}

func TestSwaggerDoc(t *testing.T) {
	h := newTestHandler(nil, nil, nil)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, httptest.NewRequest("GET", "/swagger/doc.json", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc is not JSON: %v", err)
	}
	paths, _ := doc["paths"].(map[string]interface{})
	if _, ok := paths["/report"]; !ok {
		t.Errorf("missing /report path: %v", paths)
	}
}

func TestDataDirServed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "batch_user_aggregate_4p.json"), []byte(`{"users":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	h := New(Config{Logger: zap.NewNop(), DataDir: dir, Redis: &MockPinger{}})

	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, httptest.NewRequest("GET", "/data/batch_user_aggregate_4p.json", nil))

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"users"`) {
		t.Errorf("status = %d body = %q", w.Code, w.Body.String())
	}
}

func TestCORS(t *testing.T) {
	h := newTestHandler(nil, nil, nil)

	r := httptest.NewRequest("GET", "/health", nil)
	r.Header.Set("Origin", "https://wrapped.example")
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://wrapped.example" {
		t.Errorf("allowed origin header = %q", got)
	}

	r = httptest.NewRequest("GET", "/health", nil)
	r.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	h.Router().ServeHTTP(w, r)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allow origin %q", got)
	}
}
