package dto

// Fundamentals is the typed, normalized view of the provider's loosely
// keyed company info. Every metric is optional: nil means the provider
// did not supply it, and the scoring engine degrades that criterion
// instead of failing.
type Fundamentals struct {
	CompanyName       string   `json:"company_name"`
	RevenueGrowth     *float64 `json:"revenue_growth"`
	TrailingEPS       *float64 `json:"trailing_eps"`
	ForwardEPS        *float64 `json:"forward_eps"`
	TotalAssets       *float64 `json:"total_assets"`
	OperatingCashflow *float64 `json:"operating_cashflow"`
	TotalCash         *float64 `json:"total_cash"`
	ReturnOnEquity    *float64 `json:"return_on_equity"`
	DebtToEquity      *float64 `json:"debt_to_equity"`
	DividendRate      *float64 `json:"dividend_rate"`
	PayoutRatio       *float64 `json:"payout_ratio"`

	// Display-only metrics, not scored.
	MarketCap     *float64 `json:"market_cap"`
	TrailingPE    *float64 `json:"trailing_pe"`
	PriceToBook   *float64 `json:"price_to_book"`
	DividendYield *float64 `json:"dividend_yield"`
}

// IsEmpty reports whether no scored metric is available at all, which
// triggers the neutral-score fallback.
func (f *Fundamentals) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.RevenueGrowth == nil &&
		f.TrailingEPS == nil &&
		f.ForwardEPS == nil &&
		f.TotalAssets == nil &&
		f.OperatingCashflow == nil &&
		f.TotalCash == nil &&
		f.ReturnOnEquity == nil &&
		f.DebtToEquity == nil &&
		f.DividendRate == nil &&
		f.PayoutRatio == nil
}

// RawValue is Yahoo's {raw, fmt} number wrapper.
type RawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// YahooQuoteSummaryResponse covers the quoteSummary modules the
// dashboard reads.
type YahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				LongName  string   `json:"longName"`
				ShortName string   `json:"shortName"`
				MarketCap RawValue `json:"marketCap"`
			} `json:"price"`
			FinancialData struct {
				RevenueGrowth     RawValue `json:"revenueGrowth"`
				OperatingCashflow RawValue `json:"operatingCashflow"`
				TotalCash         RawValue `json:"totalCash"`
				ReturnOnEquity    RawValue `json:"returnOnEquity"`
				DebtToEquity      RawValue `json:"debtToEquity"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				TrailingEps RawValue `json:"trailingEps"`
				ForwardEps  RawValue `json:"forwardEps"`
				TotalAssets RawValue `json:"totalAssets"`
				PriceToBook RawValue `json:"priceToBook"`
			} `json:"defaultKeyStatistics"`
			SummaryDetail struct {
				DividendRate  RawValue `json:"dividendRate"`
				PayoutRatio   RawValue `json:"payoutRatio"`
				TrailingPE    RawValue `json:"trailingPE"`
				DividendYield RawValue `json:"dividendYield"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"quoteSummary"`
}

// ToFundamentals flattens the module response into the typed record.
func (r *YahooQuoteSummaryResponse) ToFundamentals(fallbackName string) *Fundamentals {
	if len(r.QuoteSummary.Result) == 0 {
		return nil
	}
	res := r.QuoteSummary.Result[0]

	name := res.Price.LongName
	if name == "" {
		name = res.Price.ShortName
	}
	if name == "" {
		name = fallbackName
	}

	return &Fundamentals{
		CompanyName:       name,
		RevenueGrowth:     res.FinancialData.RevenueGrowth.Raw,
		TrailingEPS:       res.DefaultKeyStatistics.TrailingEps.Raw,
		ForwardEPS:        res.DefaultKeyStatistics.ForwardEps.Raw,
		TotalAssets:       res.DefaultKeyStatistics.TotalAssets.Raw,
		OperatingCashflow: res.FinancialData.OperatingCashflow.Raw,
		TotalCash:         res.FinancialData.TotalCash.Raw,
		ReturnOnEquity:    res.FinancialData.ReturnOnEquity.Raw,
		DebtToEquity:      res.FinancialData.DebtToEquity.Raw,
		DividendRate:      res.SummaryDetail.DividendRate.Raw,
		PayoutRatio:       res.SummaryDetail.PayoutRatio.Raw,
		MarketCap:         res.Price.MarketCap.Raw,
		TrailingPE:        res.SummaryDetail.TrailingPE.Raw,
		PriceToBook:       res.DefaultKeyStatistics.PriceToBook.Raw,
		DividendYield:     res.SummaryDetail.DividendYield.Raw,
	}
}
