package logic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/marswrapped/wrapped-api/internal/models"
)

func TestDataFileName(t *testing.T) {
	if got := DataFileName(models.TwoPlayer); got != "batch_user_aggregate_2p.json" {
		t.Errorf("2p = %s", got)
	}
	if got := DataFileName(models.FourPlayer); got != "batch_user_aggregate_4p.json" {
		t.Errorf("4p = %s", got)
	}
}

func TestHTTPLoader_Load(t *testing.T) {
	body, err := json.Marshal(enderDataset())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    bool
		wantStatus int
	}{
		{
			name: "Success",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/data/batch_user_aggregate_4p.json" {
					http.NotFound(w, r)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write(body)
			},
		},
		{
			name:       "NotFound",
			handler:    http.NotFound,
			wantErr:    true,
			wantStatus: http.StatusNotFound,
		},
		{
			name: "ServerError",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:    true,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "MalformedJSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"users": {`))
			},
			wantErr:    true,
			wantStatus: http.StatusOK,
		},
		{
			name: "MissingUsers",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"summary": {"total_users": 0}}`))
			},
			wantErr:    true,
			wantStatus: http.StatusOK,
		},
		{
			name: "UncoercibleStat",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"users": {"Ender": {"player_stats": {"total_games": 120.5}}}}`))
			},
			wantErr:    true,
			wantStatus: http.StatusOK,
		},
		{
			name: "NullUserRecord",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"users": {"Ender": null}}`))
			},
			wantErr:    true,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			loader := NewHTTPLoader(srv.URL+"/data/", time.Second, zap.NewNop())
			ds, err := loader.Load(context.Background(), models.FourPlayer)

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if ds.Users["Ender"] == nil || ds.Users["Ender"].PlayerStats.WinRate != 45.6 {
					t.Errorf("dataset not decoded: %+v", ds.Users["Ender"])
				}
				return
			}

			if !errors.Is(err, ErrDataLoad) {
				t.Fatalf("err = %v, want ErrDataLoad", err)
			}
			var dle *DataLoadError
			if !errors.As(err, &dle) {
				t.Fatalf("err is not *DataLoadError: %T", err)
			}
			if dle.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", dle.StatusCode, tt.wantStatus)
			}
			if dle.PlayerCount != models.FourPlayer {
				t.Errorf("PlayerCount = %d", dle.PlayerCount)
			}
		})
	}
}

func TestHTTPLoader_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	loader := NewHTTPLoader(srv.URL, 50*time.Millisecond, nil)
	start := time.Now()
	_, err := loader.Load(context.Background(), models.TwoPlayer)

	if !errors.Is(err, ErrDataLoad) {
		t.Fatalf("err = %v, want ErrDataLoad", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout not enforced, took %v", elapsed)
	}
}

func TestHTTPLoader_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"users": {}}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPLoader(srv.URL, time.Second, zap.NewNop()).Load(ctx, models.TwoPlayer)
	if !errors.Is(err, ErrDataLoad) || !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want ErrDataLoad wrapping context.Canceled", err)
	}
}
