package service

import (
	"context"
	"fmt"
	"time"

	"stock-analyzer/config"
	"stock-analyzer/internal/dto"
	"stock-analyzer/internal/model"
	"stock-analyzer/internal/repository"
	"stock-analyzer/internal/scoring"
	"stock-analyzer/pkg/logger"
	"stock-analyzer/pkg/utils"
)

// AnalysisService runs the full analysis pipeline and exposes the
// persisted views the dashboard reads.
type AnalysisService interface {
	Analyze(ctx context.Context, stockCode string) (*dto.AnalysisResult, error)
	History(ctx context.Context, limit int) ([]model.AnalysisRecord, error)
	CurrentMonthRanking(ctx context.Context) ([]model.AnalysisRecord, error)
	Chart(ctx context.Context, stockCode, timeframe string) (*dto.StockData, error)
}

type analysisService struct {
	cfg         *config.Config
	logger      *logger.Logger
	fetcher     StockFetcher
	historyRepo repository.HistoryRepository
	rankingRepo repository.RankingRepository

	now func() time.Time
}

func NewAnalysisService(
	cfg *config.Config,
	log *logger.Logger,
	fetcher StockFetcher,
	historyRepo repository.HistoryRepository,
	rankingRepo repository.RankingRepository,
) AnalysisService {
	return &analysisService{
		cfg:         cfg,
		logger:      log,
		fetcher:     fetcher,
		historyRepo: historyRepo,
		rankingRepo: rankingRepo,
		now:         utils.TimeNowJST,
	}
}

// Analyze runs fetch -> score -> persist for one stock code. A fetch
// failure aborts before anything is written; the history append and
// ranking update are one logical unit, so a failed append stops the
// ranking update as well.
func (s *analysisService) Analyze(ctx context.Context, stockCode string) (*dto.AnalysisResult, error) {
	bundle, err := s.fetcher.Fetch(ctx, stockCode)
	if err != nil {
		return nil, err
	}

	total, breakdown := scoring.Score(bundle.Fundamentals)

	record := model.AnalysisRecord{
		StockCode:   stockCode,
		CompanyName: bundle.CompanyName,
		Score:       total,
		Breakdown:   breakdown,
		Timestamp:   utils.FormatTimestamp(s.now()),
	}

	if err := s.historyRepo.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("history append failed: %w", err)
	}
	if err := s.rankingRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("ranking update failed: %w", err)
	}

	s.logger.InfoContext(ctx, "Analysis completed",
		logger.StringField("stock_code", stockCode),
		logger.StringField("company_name", bundle.CompanyName),
		logger.IntField("score", total))

	return &dto.AnalysisResult{
		Record:  record,
		Verdict: dto.VerdictForScore(total),
		Metrics: dto.BuildDisplayMetrics(bundle.Fundamentals),
		History: bundle.History,
	}, nil
}

// History returns the analysis log, newest first, optionally limited.
func (s *analysisService) History(ctx context.Context, limit int) ([]model.AnalysisRecord, error) {
	records, err := s.historyRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	// The store keeps insertion order; the dashboard wants most recent
	// at the top.
	reversed := make([]model.AnalysisRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		reversed = append(reversed, records[i])
	}

	if limit > 0 && len(reversed) > limit {
		reversed = reversed[:limit]
	}
	return reversed, nil
}

func (s *analysisService) CurrentMonthRanking(ctx context.Context) ([]model.AnalysisRecord, error) {
	return s.rankingRepo.CurrentMonth(ctx)
}

func (s *analysisService) Chart(ctx context.Context, stockCode, timeframe string) (*dto.StockData, error) {
	return s.fetcher.GetChart(ctx, stockCode, timeframe)
}
