package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"stock-analyzer/internal/model"
	"stock-analyzer/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func testRecord(stockCode string, score int) model.AnalysisRecord {
	return model.AnalysisRecord{
		StockCode:   stockCode,
		CompanyName: "Stock " + stockCode,
		Score:       score,
		Breakdown: []model.ScoreDetail{
			model.NewScoreDetail("revenue_growth", score, 100, model.TierPartial, "test"),
		},
		Timestamp: "2026-08-05 10:30:00",
	}
}

func TestHistoryRepository_AppendAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "analysis_history.json")
	repo := NewHistoryRepository(path, 100, newTestLogger(t))

	first := testRecord("7203", 80)
	second := testRecord("6758", 65)

	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	records, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "7203", records[0].StockCode)
	assert.Equal(t, "6758", records[1].StockCode)
	assert.Equal(t, first.Breakdown, records[0].Breakdown)
}

func TestHistoryRepository_CapsAtMaxEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "analysis_history.json")
	repo := NewHistoryRepository(path, 100, newTestLogger(t))

	for i := 0; i < 105; i++ {
		rec := testRecord(fmt.Sprintf("%04d", i), i%100)
		require.NoError(t, repo.Append(ctx, rec))
	}

	records, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 100)

	// Oldest five were evicted; relative order of the rest is untouched.
	assert.Equal(t, "0005", records[0].StockCode)
	assert.Equal(t, "0104", records[99].StockCode)
	for i := 1; i < len(records); i++ {
		assert.Less(t, records[i-1].StockCode, records[i].StockCode)
	}
}

func TestHistoryRepository_MissingFileIsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "does_not_exist.json")
	repo := NewHistoryRepository(path, 100, newTestLogger(t))

	records, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryRepository_CorruptFileIsTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "analysis_history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo := NewHistoryRepository(path, 100, newTestLogger(t))

	records, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	// Appending recovers the store.
	require.NoError(t, repo.Append(ctx, testRecord("7203", 70)))
	records, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "7203", records[0].StockCode)
}
