package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"stock-analyzer/config"
	"stock-analyzer/pkg/logger"
)

type Repository struct {
	YahooFinanceRepo YahooFinanceRepository
	IRBankRepo       IRBankRepository
	HistoryRepo      HistoryRepository
	RankingRepo      RankingRepository
}

func NewRepository(cfg *config.Config, log *logger.Logger) (*Repository, error) {
	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", cfg.Storage.DataDir, err)
	}

	historyPath := filepath.Join(cfg.Storage.DataDir, cfg.Storage.HistoryFile)
	rankingPath := filepath.Join(cfg.Storage.DataDir, cfg.Storage.RankingFile)

	return &Repository{
		YahooFinanceRepo: NewYahooFinanceRepository(cfg, log),
		IRBankRepo:       NewIRBankRepository(cfg, log),
		HistoryRepo:      NewHistoryRepository(historyPath, cfg.History.MaxEntries, log),
		RankingRepo:      NewRankingRepository(rankingPath, log),
	}, nil
}
