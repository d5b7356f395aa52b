package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"stock-analyzer/internal/dto"
	"stock-analyzer/internal/model"
	"stock-analyzer/internal/repository"
	"stock-analyzer/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	bundle *dto.StockBundle
	err    error
}

func (s *stubFetcher) Fetch(ctx context.Context, stockCode string) (*dto.StockBundle, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.bundle, nil
}

func (s *stubFetcher) GetChart(ctx context.Context, stockCode, timeframe string) (*dto.StockData, error) {
	return s.bundle.History, nil
}

type failingHistoryRepo struct{}

func (f *failingHistoryRepo) Load(ctx context.Context) ([]model.AnalysisRecord, error) {
	return nil, nil
}

func (f *failingHistoryRepo) Append(ctx context.Context, record model.AnalysisRecord) error {
	return errors.New("disk full")
}

type countingRankingRepo struct {
	updates int
}

func (c *countingRankingRepo) Update(ctx context.Context, record model.AnalysisRecord) error {
	c.updates++
	return nil
}

func (c *countingRankingRepo) GetMonth(ctx context.Context, monthKey string) ([]model.AnalysisRecord, error) {
	return nil, nil
}

func (c *countingRankingRepo) CurrentMonth(ctx context.Context) ([]model.AnalysisRecord, error) {
	return nil, nil
}

func fullPassBundle() *dto.StockBundle {
	return &dto.StockBundle{
		StockCode:   "7203",
		CompanyName: "Toyota Motor",
		Fundamentals: &dto.Fundamentals{
			CompanyName:       "Toyota Motor",
			RevenueGrowth:     f64(0.10),
			TrailingEPS:       f64(2.0),
			ForwardEPS:        f64(2.5),
			TotalAssets:       f64(5e9),
			OperatingCashflow: f64(1e9),
			TotalCash:         f64(2e9),
			ReturnOnEquity:    f64(0.09),
			DebtToEquity:      f64(80),
			DividendRate:      f64(30),
			PayoutRatio:       f64(0.35),
		},
		History: chartData(),
	}
}

func newPipelineService(t *testing.T, fetcher StockFetcher) (AnalysisService, repository.HistoryRepository, repository.RankingRepository) {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)

	dir := t.TempDir()
	historyRepo := repository.NewHistoryRepository(filepath.Join(dir, "history.json"), 100, log)
	rankingRepo := repository.NewRankingRepository(filepath.Join(dir, "ranking.json"), log)

	svc := NewAnalysisService(testConfig(), log, fetcher, historyRepo, rankingRepo)
	return svc, historyRepo, rankingRepo
}

func TestAnalyze_PersistsToHistoryAndRanking(t *testing.T) {
	ctx := context.Background()
	svc, historyRepo, rankingRepo := newPipelineService(t, &stubFetcher{bundle: fullPassBundle()})

	result, err := svc.Analyze(ctx, "7203")
	require.NoError(t, err)

	assert.Equal(t, 100, result.Record.Score)
	assert.Equal(t, dto.VerdictExcellent, result.Verdict)
	assert.Equal(t, "Toyota Motor", result.Record.CompanyName)
	assert.NotNil(t, result.History)

	records, err := historyRepo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, result.Record, records[0])

	bucket, err := rankingRepo.CurrentMonth(ctx)
	require.NoError(t, err)
	require.Len(t, bucket, 1)
	assert.Equal(t, "7203", bucket[0].StockCode)
}

func TestAnalyze_FetchFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	svc, historyRepo, rankingRepo := newPipelineService(t, &stubFetcher{err: errors.New("provider down")})

	_, err := svc.Analyze(ctx, "7203")
	require.Error(t, err)

	records, err := historyRepo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	bucket, err := rankingRepo.CurrentMonth(ctx)
	require.NoError(t, err)
	assert.Empty(t, bucket)
}

func TestAnalyze_HistoryFailureBlocksRankingUpdate(t *testing.T) {
	ctx := context.Background()
	log, err := logger.New("error", "console")
	require.NoError(t, err)

	ranking := &countingRankingRepo{}
	svc := NewAnalysisService(testConfig(), log, &stubFetcher{bundle: fullPassBundle()}, &failingHistoryRepo{}, ranking)

	_, err = svc.Analyze(ctx, "7203")
	require.Error(t, err)
	assert.Zero(t, ranking.updates)
}

func TestAnalyze_MissingFundamentalsGetsNeutralScore(t *testing.T) {
	ctx := context.Background()
	bundle := &dto.StockBundle{
		StockCode:   "9999",
		CompanyName: "Stock 9999",
		History:     chartData(),
	}
	svc, _, _ := newPipelineService(t, &stubFetcher{bundle: bundle})

	result, err := svc.Analyze(ctx, "9999")
	require.NoError(t, err)
	assert.Equal(t, 50, result.Record.Score)
	assert.Equal(t, dto.VerdictCaution, result.Verdict)
	require.Len(t, result.Record.Breakdown, 1)
	assert.Equal(t, "N/A", result.Metrics.MarketCap)
}

func TestHistory_NewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	svc, historyRepo, _ := newPipelineService(t, &stubFetcher{bundle: fullPassBundle()})

	for _, code := range []string{"1111", "2222", "3333"} {
		require.NoError(t, historyRepo.Append(ctx, model.AnalysisRecord{
			StockCode: code,
			Score:     50,
			Timestamp: "2026-08-05 10:00:00",
		}))
	}

	records, err := svc.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "3333", records[0].StockCode)
	assert.Equal(t, "2222", records[1].StockCode)
}
