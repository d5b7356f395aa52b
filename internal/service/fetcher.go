package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-analyzer/config"
	"stock-analyzer/internal/apperr"
	"stock-analyzer/internal/dto"
	"stock-analyzer/internal/repository"
	"stock-analyzer/pkg/cache"
	"stock-analyzer/pkg/logger"
)

// StockFetcher retrieves the normalized analysis bundle from the market
// data provider, retrying around its throttling.
type StockFetcher interface {
	Fetch(ctx context.Context, stockCode string) (*dto.StockBundle, error)
	GetChart(ctx context.Context, stockCode, timeframe string) (*dto.StockData, error)
}

type stockFetcher struct {
	cfg       *config.Config
	logger    *logger.Logger
	yahooRepo repository.YahooFinanceRepository
	cache     cache.Cache

	// sleep is swapped out in tests so the backoff waits are observable
	// without real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewStockFetcher(cfg *config.Config, log *logger.Logger, yahooRepo repository.YahooFinanceRepository, inmemoryCache cache.Cache) StockFetcher {
	return &stockFetcher{
		cfg:       cfg,
		logger:    log,
		yahooRepo: yahooRepo,
		cache:     inmemoryCache,
		sleep:     sleepWithContext,
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Fetch queries the full price history and then, best effort, the
// company fundamentals. Rate-limit failures are retried with a linearly
// increasing wait; other transient failures are retried at a flat wait.
// An empty price history fails immediately: the code does not exist.
func (s *stockFetcher) Fetch(ctx context.Context, stockCode string) (*dto.StockBundle, error) {
	maxRetries := s.cfg.YahooFinance.MaxRetries
	baseDelay := s.cfg.YahooFinance.RetryBaseDelay

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		bundle, err := s.fetchOnce(ctx, stockCode)
		if err == nil {
			return bundle, nil
		}
		lastErr = err

		if errors.Is(err, apperr.ErrStockNotFound) {
			return nil, err
		}

		if errors.Is(err, apperr.ErrRateLimited) {
			if attempt == maxRetries {
				return nil, err
			}
			wait := time.Duration(attempt) * baseDelay
			s.logger.WarnContext(ctx, "Provider rate limited, backing off",
				logger.StringField("stock_code", stockCode),
				logger.IntField("attempt", attempt),
				logger.DurationField("wait", wait))
			if serr := s.sleep(ctx, wait); serr != nil {
				return nil, serr
			}
			continue
		}

		if attempt == maxRetries {
			return nil, fmt.Errorf("fetch for %s failed after %d attempts: %w (%v)", stockCode, maxRetries, apperr.ErrRetryExhausted, err)
		}
		s.logger.WarnContext(ctx, "Provider fetch failed, retrying",
			logger.StringField("stock_code", stockCode),
			logger.IntField("attempt", attempt),
			logger.ErrorField(err))
		if serr := s.sleep(ctx, baseDelay); serr != nil {
			return nil, serr
		}
	}
	return nil, lastErr
}

func (s *stockFetcher) fetchOnce(ctx context.Context, stockCode string) (*dto.StockBundle, error) {
	history, err := s.yahooRepo.GetChart(ctx, dto.GetStockDataParam{
		StockCode: stockCode,
		Range:     dto.TimeframeMax,
		Interval:  "1d",
	})
	if err != nil {
		return nil, err
	}

	// Courtesy pause between sequential provider calls, independent of
	// the retry backoff.
	if err := s.sleep(ctx, s.cfg.YahooFinance.CourtesyDelay); err != nil {
		return nil, err
	}

	companyName := "Stock " + stockCode
	fundamentals, err := s.yahooRepo.GetFundamentals(ctx, stockCode)
	if err != nil {
		// Fundamentals are best effort: price history alone still makes
		// a chart, and scoring degrades to the neutral fallback.
		s.logger.WarnContext(ctx, "Fundamentals unavailable, continuing without them",
			logger.StringField("stock_code", stockCode),
			logger.ErrorField(err))
		fundamentals = nil
	} else if fundamentals.CompanyName != "" {
		companyName = fundamentals.CompanyName
	}

	return &dto.StockBundle{
		StockCode:    stockCode,
		CompanyName:  companyName,
		Fundamentals: fundamentals,
		History:      history,
	}, nil
}

// GetChart serves timeframe-scoped chart data for the dashboard,
// caching each window to spare the provider.
func (s *stockFetcher) GetChart(ctx context.Context, stockCode, timeframe string) (*dto.StockData, error) {
	key := "chart:" + stockCode + ":" + timeframe
	if data, ok := cache.Get[*dto.StockData](s.cache, key); ok {
		return data, nil
	}

	param := dto.ChartParamsForTimeframe(stockCode, timeframe)
	data, err := s.yahooRepo.GetChart(ctx, param)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, data, s.cfg.Cache.DefaultExpiration)
	return data, nil
}
