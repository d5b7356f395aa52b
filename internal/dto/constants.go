package dto

// Verdict bands over the 0-100 score.
type Verdict string

const (
	VerdictExcellent Verdict = "Excellent financial health"
	VerdictGood      Verdict = "Good financial condition"
	VerdictCaution   Verdict = "Some room for improvement"
	VerdictWeak      Verdict = "Careful judgement required"
)

func VerdictForScore(score int) Verdict {
	switch {
	case score >= 80:
		return VerdictExcellent
	case score >= 60:
		return VerdictGood
	case score >= 40:
		return VerdictCaution
	default:
		return VerdictWeak
	}
}

// Chart timeframe labels exposed to the dashboard. Each maps to the
// provider (range, interval) pair the original view used.
const (
	Timeframe5Min    string = "5m"
	Timeframe15Min   string = "15m"
	Timeframe1Hour   string = "1h"
	Timeframe1Day    string = "1d"
	Timeframe1Week   string = "1wk"
	Timeframe1Month  string = "1mo"
	Timeframe1Year   string = "1y"
	Timeframe5Year   string = "5y"
	TimeframeMax     string = "max"
	TimeframeDefault string = "1y"
)

type chartWindow struct {
	Range    string
	Interval string
}

var chartWindows = map[string]chartWindow{
	Timeframe5Min:   {Range: "1d", Interval: "5m"},
	Timeframe15Min:  {Range: "5d", Interval: "15m"},
	Timeframe1Hour:  {Range: "1mo", Interval: "1h"},
	Timeframe1Day:   {Range: "6mo", Interval: "1d"},
	Timeframe1Week:  {Range: "1y", Interval: "1wk"},
	Timeframe1Month: {Range: "5y", Interval: "1mo"},
	Timeframe1Year:  {Range: "1y", Interval: "1d"},
	Timeframe5Year:  {Range: "5y", Interval: "1wk"},
	TimeframeMax:    {Range: "max", Interval: "1mo"},
}

// ChartParamsForTimeframe resolves a timeframe label to provider query
// params, defaulting to the one-year daily view for unknown labels.
func ChartParamsForTimeframe(stockCode, timeframe string) GetStockDataParam {
	window, ok := chartWindows[timeframe]
	if !ok {
		window = chartWindows[TimeframeDefault]
	}
	return GetStockDataParam{
		StockCode: stockCode,
		Range:     window.Range,
		Interval:  window.Interval,
	}
}
