package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"stock-analyzer/config"
	"stock-analyzer/internal/apperr"
	"stock-analyzer/internal/dto"
	"stock-analyzer/pkg/httpclient"
	"stock-analyzer/pkg/logger"

	"golang.org/x/time/rate"
)

type YahooFinanceRepository interface {
	GetChart(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error)
	GetFundamentals(ctx context.Context, stockCode string) (*dto.Fundamentals, error)
}

type yahooFinanceRepository struct {
	chartClient        httpclient.HTTPClient
	quoteSummaryClient httpclient.HTTPClient
	cfg                *config.Config
	logger             *logger.Logger
	requestLimiter     *rate.Limiter
}

var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "application/json, text/plain, */*",
	"Accept-Language": "en-US,en;q=0.9",
	"Connection":      "keep-alive",
	"Referer":         "https://finance.yahoo.com/",
}

// NewYahooFinanceRepository creates a new instance of yahooFinanceRepository.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &yahooFinanceRepository{
		chartClient:        httpclient.New(cfg.YahooFinance.ChartBaseURL, cfg.YahooFinance.Timeout),
		quoteSummaryClient: httpclient.New(cfg.YahooFinance.QuoteSummaryBaseURL, cfg.YahooFinance.Timeout),
		cfg:                cfg,
		logger:             log,
		requestLimiter:     requestLimiter,
	}
}

// symbol builds the provider-specific symbol by appending the market
// suffix (".T" for the Tokyo exchange) to the local stock code.
func (r *yahooFinanceRepository) symbol(stockCode string) string {
	return stockCode + r.cfg.YahooFinance.MarketSuffix
}

func (r *yahooFinanceRepository) GetChart(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "/" + r.symbol(param.StockCode)
	queryParams := map[string]string{
		"range":          param.Range,
		"interval":       param.Interval,
		"includePrePost": "false",
		"events":         "div,split",
	}

	var yahooResp dto.YahooFinanceResponse
	resp, err := r.chartClient.Get(ctx, endpoint, queryParams, browserHeaders, &yahooResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chart from yahoo finance: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("yahoo finance chart api: %w", apperr.ErrRateLimited)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("symbol %s: %w", param.StockCode, apperr.ErrStockNotFound)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Yahoo Finance chart API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("yahoo finance chart api returned status: %d", resp.StatusCode)
	}

	if yahooResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance chart api error: %v", yahooResp.Chart.Error)
	}

	// An empty series means the code does not exist on the exchange,
	// not a transient fault.
	if len(yahooResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no data for symbol %s: %w", param.StockCode, apperr.ErrStockNotFound)
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 || len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("no quote data for symbol %s: %w", param.StockCode, apperr.ErrStockNotFound)
	}

	quote := result.Indicators.Quote[0]

	var ohlcvData []dto.StockOHLCV
	for i, timestamp := range result.Timestamp {
		// Skip if any required data is missing
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			continue
		}

		// Skip if any value is 0 (missing data)
		if quote.Open[i] == 0 || quote.High[i] == 0 || quote.Low[i] == 0 ||
			quote.Close[i] == 0 {
			continue
		}

		ohlcvData = append(ohlcvData, dto.StockOHLCV{
			Timestamp: timestamp,
			Open:      quote.Open[i],
			High:      quote.High[i],
			Low:       quote.Low[i],
			Close:     quote.Close[i],
			Volume:    quote.Volume[i],
		})
	}

	if len(ohlcvData) == 0 {
		return nil, fmt.Errorf("no valid OHLCV data for symbol %s: %w", param.StockCode, apperr.ErrStockNotFound)
	}

	marketPrice := 0.0
	if result.Meta.RegularMarketPrice > 0 {
		marketPrice = result.Meta.RegularMarketPrice
	}

	return &dto.StockData{
		MarketPrice: marketPrice,
		OHLCV:       ohlcvData,
		Range:       param.Range,
		Interval:    param.Interval,
	}, nil
}

func (r *yahooFinanceRepository) GetFundamentals(ctx context.Context, stockCode string) (*dto.Fundamentals, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "/" + r.symbol(stockCode)
	queryParams := map[string]string{
		"modules": "price,summaryDetail,financialData,defaultKeyStatistics",
	}

	var summaryResp dto.YahooQuoteSummaryResponse
	resp, err := r.quoteSummaryClient.Get(ctx, endpoint, queryParams, browserHeaders, &summaryResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote summary from yahoo finance: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("yahoo finance quote summary api: %w", apperr.ErrRateLimited)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Yahoo Finance quote summary API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("yahoo finance quote summary api returned status: %d", resp.StatusCode)
	}

	if summaryResp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo finance quote summary api error: %v", summaryResp.QuoteSummary.Error)
	}

	fundamentals := summaryResp.ToFundamentals("Stock " + stockCode)
	if fundamentals == nil {
		return nil, fmt.Errorf("no quote summary for symbol: %s", stockCode)
	}

	return fundamentals, nil
}
