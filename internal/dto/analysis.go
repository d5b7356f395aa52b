package dto

import (
	"stock-analyzer/internal/model"
	"stock-analyzer/pkg/utils"
)

// DisplayMetrics are the headline figures shown next to the score.
// They do not contribute to it.
type DisplayMetrics struct {
	MarketCap     string `json:"market_cap"`
	TrailingPE    string `json:"trailing_pe"`
	PriceToBook   string `json:"price_to_book"`
	DividendYield string `json:"dividend_yield"`
}

// AnalysisResult is what the presentation layer receives for one
// completed analysis.
type AnalysisResult struct {
	Record  model.AnalysisRecord `json:"record"`
	Verdict Verdict              `json:"verdict"`
	Metrics DisplayMetrics       `json:"metrics"`
	History *StockData           `json:"history"`
}

// BuildDisplayMetrics formats the headline figures, falling back to
// "N/A" for anything the provider left out.
func BuildDisplayMetrics(f *Fundamentals) DisplayMetrics {
	m := DisplayMetrics{
		MarketCap:     utils.ValueNA,
		TrailingPE:    utils.ValueNA,
		PriceToBook:   utils.ValueNA,
		DividendYield: utils.ValueNA,
	}
	if f == nil {
		return m
	}
	if f.MarketCap != nil && *f.MarketCap > 0 {
		m.MarketCap = utils.FormatBillions(*f.MarketCap)
	}
	if f.TrailingPE != nil && *f.TrailingPE > 0 {
		m.TrailingPE = utils.FormatRatio(*f.TrailingPE)
	}
	if f.PriceToBook != nil && *f.PriceToBook > 0 {
		m.PriceToBook = utils.FormatRatio(*f.PriceToBook)
	}
	if f.DividendYield != nil && *f.DividendYield > 0 {
		m.DividendYield = utils.FormatPercent(*f.DividendYield)
	}
	return m
}
