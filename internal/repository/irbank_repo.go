package repository

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"stock-analyzer/config"
	"stock-analyzer/internal/dto"
	"stock-analyzer/pkg/httpclient"
	"stock-analyzer/pkg/logger"

	"github.com/PuerkitoBio/goquery"
)

// IRBankRepository is the secondary financial data source. It currently
// resolves only the company display name from the page heading; the
// tabular financial figures are not parsed yet, so every metric comes
// back nil and the caller must not rely on it for scoring.
// TODO: parse the per-year financial tables once the page layout is mapped.
type IRBankRepository interface {
	GetFinancials(ctx context.Context, stockCode string) (*dto.Fundamentals, error)
}

type irbankRepository struct {
	httpClient httpclient.HTTPClient
	cfg        *config.Config
	logger     *logger.Logger
}

func NewIRBankRepository(cfg *config.Config, log *logger.Logger) IRBankRepository {
	return &irbankRepository{
		httpClient: httpclient.New(cfg.IRBank.BaseURL, cfg.IRBank.Timeout),
		cfg:        cfg,
		logger:     log,
	}
}

func (r *irbankRepository) GetFinancials(ctx context.Context, stockCode string) (*dto.Fundamentals, error) {
	headers := map[string]string{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	}

	resp, err := r.httpClient.GetRaw(ctx, "/"+stockCode, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch irbank page: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("irbank returned status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse irbank page: %w", err)
	}

	companyName := strings.TrimSpace(doc.Find("h1").First().Text())
	if companyName == "" {
		companyName = "Stock " + stockCode
	}

	return &dto.Fundamentals{CompanyName: companyName}, nil
}
