package logic

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/marswrapped/wrapped-api/internal/metrics"
	"github.com/marswrapped/wrapped-api/internal/models"
)

// ErrUserNotFound is returned when the dataset has no record for the username.
var ErrUserNotFound = errors.New("user not found")

// User-facing messages for the two failure outcomes.
const (
	MsgUserNotFound   = "未匹配上数据，请检查账号是否正确。有问题可以联系 Ender。"
	MsgDataLoadFailed = "数据加载失败，火星信号不太好，请稍后重试…"
)

type reportService struct {
	loader DataLoader
	slides []models.SlideTemplate
	ranges RadarRanges
	logger *zap.SugaredLogger
}

// NewReportService builds reports from loader using the given deck.
// A nil deck falls back to DefaultSlides.
func NewReportService(loader DataLoader, slides []models.SlideTemplate, logger *zap.Logger) ReportService {
	if slides == nil {
		slides = DefaultSlides()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reportService{
		loader: loader,
		slides: slides,
		ranges: DefaultRadarRanges,
		logger: logger.Sugar(),
	}
}

// Generate runs one login attempt through loading, resolution and rendering.
// It returns either a complete report or an error; never a partial report.
func (s *reportService) Generate(ctx context.Context, username string, pc models.PlayerCount) (*models.ReportResponse, error) {
	if !pc.Valid() {
		return nil, fmt.Errorf("unsupported player count %d", pc)
	}
	pcLabel := strconv.Itoa(int(pc))

	session := &loginAttempt{state: StateLogin}
	if err := session.advance(EventSubmit); err != nil {
		return nil, err
	}

	ds, err := s.loader.Load(ctx, pc)
	if err != nil {
		if terr := session.advance(EventLoadFailed); terr != nil {
			return nil, terr
		}
		metrics.ReportsGenerated.WithLabelValues(pcLabel, metrics.OutcomeLoadFailed).Inc()
		s.logger.Warnw("Report failed", "state", session.state, "playerCount", int(pc), "error", err)
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	report := ProcessReport(ds, username, pc)
	if !report.IsFound {
		if terr := session.advance(EventNotFound); terr != nil {
			return nil, terr
		}
		metrics.ReportsGenerated.WithLabelValues(pcLabel, metrics.OutcomeNotFound).Inc()
		s.logger.Infow("User not found", "state", session.state, "username", username, "playerCount", int(pc))
		return nil, ErrUserNotFound
	}

	if err := session.advance(EventLoaded); err != nil {
		return nil, err
	}

	vars := ExtractVariables(report)
	slides := BuildDeck(s.slides, report, vars)
	radar := NormalizeRadar(report.UserData.PlayerStats, pc, s.ranges)
	stats := report.UserData.PlayerStats

	resp := &models.ReportResponse{
		Username:    report.Username,
		PlayerCount: pc,
		Slides:      slides,
		Variables:   vars,
		Radar:       radar,
		Archetype:   ClassifyArchetype(radar),
		Titles:      AnnualTitles(report.UserData, pc),
		CorpTitles:  CorporationTitles(report.UserData),
		Generations: GenerationDistribution(report.UserData),
		Ranks:       Ranks(report.UserData),
		Evaluations: models.Evaluations{
			Games:   GamesEvaluation(stats.TotalGames),
			WinRate: WinRateEvaluation(stats.WinRate, pc),
		},
		GlobalSummary: report.GlobalSummary,
		ShareText:     ShareText(pc, vars),
	}

	metrics.ReportsGenerated.WithLabelValues(pcLabel, metrics.OutcomeOK).Inc()
	metrics.SlidesRendered.Observe(float64(len(slides)))
	s.logger.Infow("Report generated", "state", session.state, "username", resp.Username, "playerCount", int(pc), "slides", len(slides))

	return resp, nil
}

// loginAttempt walks one Generate call through the session state machine.
// Every exit from Generate is reached by a checked transition.
type loginAttempt struct {
	state State
}

func (a *loginAttempt) advance(e Event) error {
	next, err := Transition(a.state, e)
	if err != nil {
		return fmt.Errorf("report session: %w", err)
	}
	a.state = next
	return nil
}
