package service

import (
	"stock-analyzer/config"
	"stock-analyzer/internal/repository"
	"stock-analyzer/pkg/cache"
	"stock-analyzer/pkg/logger"
)

type Service struct {
	StockFetcher    StockFetcher
	AnalysisService AnalysisService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
) *Service {
	fetcher := NewStockFetcher(cfg, log, repo.YahooFinanceRepo, inmemoryCache)
	analysisService := NewAnalysisService(cfg, log, fetcher, repo.HistoryRepo, repo.RankingRepo)

	return &Service{
		StockFetcher:    fetcher,
		AnalysisService: analysisService,
	}
}
