package repository

import (
	"context"
	"fmt"
	"sync"

	"stock-analyzer/internal/model"
	"stock-analyzer/pkg/logger"
)

// HistoryRepository is the append-only analysis log, capped at the most
// recent maxEntries records (FIFO eviction by insertion order).
type HistoryRepository interface {
	Load(ctx context.Context) ([]model.AnalysisRecord, error)
	Append(ctx context.Context, record model.AnalysisRecord) error
}

type fileHistoryRepository struct {
	path       string
	maxEntries int
	logger     *logger.Logger

	// Guards the load-modify-persist cycle. The dashboard is single
	// user, but an accidental second session must not corrupt the store.
	mu sync.Mutex
}

func NewHistoryRepository(path string, maxEntries int, log *logger.Logger) HistoryRepository {
	return &fileHistoryRepository{
		path:       path,
		maxEntries: maxEntries,
		logger:     log,
	}
}

func (r *fileHistoryRepository) Load(ctx context.Context) ([]model.AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *fileHistoryRepository) load(ctx context.Context) ([]model.AnalysisRecord, error) {
	var records []model.AnalysisRecord
	found, err := readJSONFile(r.path, &records)
	if err != nil {
		if !found {
			return nil, err
		}
		// A corrupt log is treated as empty rather than blocking every
		// analysis from then on.
		r.logger.WarnContext(ctx, "History store unreadable, starting from empty",
			logger.StringField("path", r.path),
			logger.ErrorField(err))
		return nil, nil
	}
	return records, nil
}

func (r *fileHistoryRepository) Append(ctx context.Context, record model.AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return err
	}

	records = append(records, record)
	if len(records) > r.maxEntries {
		records = records[len(records)-r.maxEntries:]
	}

	if err := r.writeLocked(records); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}

	r.logger.DebugContext(ctx, "Appended analysis to history",
		logger.StringField("stock_code", record.StockCode),
		logger.IntField("score", record.Score),
		logger.IntField("total_entries", len(records)))
	return nil
}

func (r *fileHistoryRepository) writeLocked(records []model.AnalysisRecord) error {
	return writeJSONFile(r.path, records)
}
