package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"stock-analyzer/internal/model"
	"stock-analyzer/pkg/logger"
	"stock-analyzer/pkg/utils"
)

// RankingRepository keeps the per-month leaderboards: one bucket per
// YYYY-MM key, deduplicated by stock code and sorted by score
// descending. Past months are retained indefinitely.
type RankingRepository interface {
	Update(ctx context.Context, record model.AnalysisRecord) error
	GetMonth(ctx context.Context, monthKey string) ([]model.AnalysisRecord, error)
	CurrentMonth(ctx context.Context) ([]model.AnalysisRecord, error)
}

type fileRankingRepository struct {
	path   string
	logger *logger.Logger

	mu sync.Mutex
}

func NewRankingRepository(path string, log *logger.Logger) RankingRepository {
	return &fileRankingRepository{
		path:   path,
		logger: log,
	}
}

func (r *fileRankingRepository) load(ctx context.Context) (map[string][]model.AnalysisRecord, error) {
	rankings := make(map[string][]model.AnalysisRecord)
	found, err := readJSONFile(r.path, &rankings)
	if err != nil {
		if !found {
			return nil, err
		}
		r.logger.WarnContext(ctx, "Ranking store unreadable, starting from empty",
			logger.StringField("path", r.path),
			logger.ErrorField(err))
		return make(map[string][]model.AnalysisRecord), nil
	}
	return rankings, nil
}

func (r *fileRankingRepository) Update(ctx context.Context, record model.AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rankings, err := r.load(ctx)
	if err != nil {
		return err
	}

	monthKey := record.MonthKey()
	bucket := rankings[monthKey]

	// Re-analyzing a stock within the same month replaces its entry.
	filtered := bucket[:0]
	for _, entry := range bucket {
		if entry.StockCode != record.StockCode {
			filtered = append(filtered, entry)
		}
	}
	filtered = append(filtered, record)

	// Stable sort keeps insertion order among equal scores.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Score > filtered[j].Score
	})

	rankings[monthKey] = filtered

	if err := writeJSONFile(r.path, rankings); err != nil {
		return fmt.Errorf("failed to persist ranking: %w", err)
	}

	r.logger.DebugContext(ctx, "Updated monthly ranking",
		logger.StringField("month", monthKey),
		logger.StringField("stock_code", record.StockCode),
		logger.IntField("bucket_size", len(filtered)))
	return nil
}

func (r *fileRankingRepository) GetMonth(ctx context.Context, monthKey string) ([]model.AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rankings, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return rankings[monthKey], nil
}

func (r *fileRankingRepository) CurrentMonth(ctx context.Context) ([]model.AnalysisRecord, error) {
	return r.GetMonth(ctx, utils.CurrentMonthKey())
}
