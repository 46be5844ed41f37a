package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marswrapped/wrapped-api/internal/metrics"
	"github.com/marswrapped/wrapped-api/internal/models"
)

// ErrDataLoad matches every *DataLoadError via errors.Is.
var ErrDataLoad = errors.New("data load failed")

// DataLoadError reports a failed fetch or decode of an aggregate file.
// StatusCode is zero when no HTTP response was received.
type DataLoadError struct {
	PlayerCount models.PlayerCount
	StatusCode  int
	Status      string
	Err         error
}

func (e *DataLoadError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err == nil:
		return fmt.Sprintf("failed to load %dp data: %s", e.PlayerCount, e.Status)
	case e.StatusCode != 0:
		return fmt.Sprintf("failed to load %dp data: %s: %v", e.PlayerCount, e.Status, e.Err)
	default:
		return fmt.Sprintf("failed to load %dp data: %v", e.PlayerCount, e.Err)
	}
}

func (e *DataLoadError) Unwrap() error { return e.Err }

func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }

// DataFileName returns the well-known file for a player count.
func DataFileName(pc models.PlayerCount) string {
	if pc == models.TwoPlayer {
		return "batch_user_aggregate_2p.json"
	}
	return "batch_user_aggregate_4p.json"
}

// HTTPLoader fetches aggregate files from a static file host.
// Every call re-fetches; nothing is cached between logins.
type HTTPLoader struct {
	baseURL string
	client  *http.Client
	logger  *zap.SugaredLogger
}

func NewHTTPLoader(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPLoader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPLoader{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Sugar(),
	}
}

// Load fetches and decodes the dataset for pc.
func (l *HTTPLoader) Load(ctx context.Context, pc models.PlayerCount) (*models.Dataset, error) {
	start := time.Now()
	ds, err := l.fetch(ctx, pc)

	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeLoadFailed
		l.logger.Warnw("Failed to load aggregate data", "playerCount", int(pc), "error", err)
	}
	metrics.DataLoadDuration.WithLabelValues(strconv.Itoa(int(pc)), outcome).Observe(time.Since(start).Seconds())

	return ds, err
}

func (l *HTTPLoader) fetch(ctx context.Context, pc models.PlayerCount) (*models.Dataset, error) {
	url := l.baseURL + "/" + DataFileName(pc)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DataLoadError{PlayerCount: pc, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &DataLoadError{PlayerCount: pc, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DataLoadError{PlayerCount: pc, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var ds models.Dataset
	if err := json.NewDecoder(resp.Body).Decode(&ds); err != nil {
		return nil, &DataLoadError{
			PlayerCount: pc,
			StatusCode:  resp.StatusCode,
			Status:      resp.Status,
			Err:         fmt.Errorf("decode: %w", err),
		}
	}
	if ds.Users == nil {
		return nil, &DataLoadError{
			PlayerCount: pc,
			StatusCode:  resp.StatusCode,
			Status:      resp.Status,
			Err:         errors.New("decode: missing users map"),
		}
	}

	for key, u := range ds.Users {
		if u == nil {
			return nil, &DataLoadError{
				PlayerCount: pc,
				StatusCode:  resp.StatusCode,
				Status:      resp.Status,
				Err:         fmt.Errorf("decode: null record for user %q", key),
			}
		}
	}

	l.logger.Debugw("Loaded aggregate data", "playerCount", int(pc), "users", len(ds.Users))
	return &ds, nil
}
