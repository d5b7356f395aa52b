package scoring

import (
	"fmt"

	"stock-analyzer/internal/dto"
	"stock-analyzer/internal/model"
	"stock-analyzer/pkg/utils"
)

// Criterion keys, in evaluation order.
const (
	CriterionRevenueGrowth     = "revenue_growth"
	CriterionEPSTrend          = "eps_trend"
	CriterionTotalAssets       = "total_assets"
	CriterionOperatingCashflow = "operating_cashflow"
	CriterionTotalCash         = "total_cash"
	CriterionReturnOnEquity    = "return_on_equity"
	CriterionDebtToEquity      = "debt_to_equity"
	CriterionDividendRate      = "dividend_rate"
	CriterionPayoutRatio       = "payout_ratio"
	CriterionNote              = "note"
)

// NeutralScore is returned when no fundamentals are available at all.
const NeutralScore = 50

const degradedInputNote = "Company info unavailable, neutral score applied"

type criterion struct {
	key      string
	weight   int
	evaluate func(f *dto.Fundamentals, weight int) (points int, tier model.Tier, value string)
}

// The nine-point checklist. Weights sum to 100 (15+15+10*7).
var criteria = []criterion{
	{CriterionRevenueGrowth, 15, evalRevenueGrowth},
	{CriterionEPSTrend, 15, evalEPSTrend},
	{CriterionTotalAssets, 10, positiveAmount(func(f *dto.Fundamentals) *float64 { return f.TotalAssets })},
	{CriterionOperatingCashflow, 10, positiveAmount(func(f *dto.Fundamentals) *float64 { return f.OperatingCashflow })},
	{CriterionTotalCash, 10, positiveAmount(func(f *dto.Fundamentals) *float64 { return f.TotalCash })},
	{CriterionReturnOnEquity, 10, evalReturnOnEquity},
	{CriterionDebtToEquity, 10, evalDebtToEquity},
	{CriterionDividendRate, 10, evalDividendRate},
	{CriterionPayoutRatio, 10, evalPayoutRatio},
}

// Score maps fundamentals to a 0-100 financial health score plus the
// per-criterion breakdown, in checklist order. It is pure and total:
// missing or malformed metrics degrade to the FAIL tier, they never
// produce an error.
func Score(f *dto.Fundamentals) (int, []model.ScoreDetail) {
	if f.IsEmpty() {
		note := model.NewScoreDetail(CriterionNote, NeutralScore, 100, model.TierPartial, degradedInputNote)
		return NeutralScore, []model.ScoreDetail{note}
	}

	total := 0
	breakdown := make([]model.ScoreDetail, 0, len(criteria))
	for _, c := range criteria {
		points, tier, value := c.evaluate(f, c.weight)
		total += points
		breakdown = append(breakdown, model.NewScoreDetail(c.key, points, c.weight, tier, value))
	}
	return total, breakdown
}

// Revenue growth: above 5% passes, any growth earns partial credit.
func evalRevenueGrowth(f *dto.Fundamentals, weight int) (int, model.Tier, string) {
	g := f.RevenueGrowth
	switch {
	case present(g) && *g > 0.05:
		return weight, model.TierPass, utils.FormatPercent(*g)
	case present(g) && *g > 0:
		return 8, model.TierPartial, utils.FormatPercent(*g)
	default:
		return 0, model.TierFail, utils.ValueNA
	}
}

// EPS trend: a forward estimate above the trailing figure passes,
// positive trailing EPS alone earns partial credit.
func evalEPSTrend(f *dto.Fundamentals, weight int) (int, model.Tier, string) {
	trailing, forward := f.TrailingEPS, f.ForwardEPS
	switch {
	case present(trailing) && present(forward) && *forward > *trailing:
		return weight, model.TierPass, fmt.Sprintf("%s → %s", utils.FormatRatio(*trailing), utils.FormatRatio(*forward))
	case present(trailing) && *trailing > 0:
		return 8, model.TierPartial, utils.FormatRatio(*trailing)
	default:
		return 0, model.TierFail, utils.ValueNA
	}
}

// positiveAmount covers the balance-sheet criteria that only ask for a
// positive figure (total assets, operating cash flow, cash on hand).
func positiveAmount(pick func(f *dto.Fundamentals) *float64) func(f *dto.Fundamentals, weight int) (int, model.Tier, string) {
	return func(f *dto.Fundamentals, weight int) (int, model.Tier, string) {
		v := pick(f)
		if present(v) && *v > 0 {
			return weight, model.TierPass, utils.FormatBillions(*v)
		}
		return 0, model.TierFail, utils.ValueNA
	}
}

// ROE: 7% or better passes, any positive return earns partial credit.
func evalReturnOnEquity(f *dto.Fundamentals, weight int) (int, model.Tier, string) {
	roe := f.ReturnOnEquity
	switch {
	case present(roe) && *roe > 0.07:
		return weight, model.TierPass, utils.FormatPercent(*roe)
	case present(roe) && *roe > 0:
		return 5, model.TierPartial, utils.FormatPercent(*roe)
	default:
		return 0, model.TierFail, utils.ValueNA
	}
}

// Debt-to-equity below 100 passes. The threshold is applied to the D/E
// figure directly, matching the checklist's equity-ratio reading of it.
// Unlike the other criteria a zero here is meaningful (no debt), so only
// a missing value fails.
func evalDebtToEquity(f *dto.Fundamentals, weight int) (int, model.Tier, string) {
	de := f.DebtToEquity
	switch {
	case de != nil && *de < 100:
		return weight, model.TierPass, "D/E: " + utils.FormatDecimal(*de)
	case de != nil:
		return 5, model.TierPartial, "D/E: " + utils.FormatDecimal(*de)
	default:
		return 0, model.TierFail, utils.ValueNA
	}
}

// Dividend: any payout passes.
func evalDividendRate(f *dto.Fundamentals, weight int) (int, model.Tier, string) {
	d := f.DividendRate
	if present(d) && *d > 0 {
		return weight, model.TierPass, utils.FormatRatio(*d)
	}
	return 0, model.TierFail, utils.ValueNA
}

// Payout ratio: at or below 40% passes, anything above earns partial
// credit as long as the figure exists.
func evalPayoutRatio(f *dto.Fundamentals, weight int) (int, model.Tier, string) {
	p := f.PayoutRatio
	switch {
	case present(p) && *p <= 0.40:
		return weight, model.TierPass, utils.FormatPercent(*p)
	case present(p):
		return 5, model.TierPartial, utils.FormatPercent(*p)
	default:
		return 0, model.TierFail, utils.ValueNA
	}
}

// present treats nil and zero uniformly as absent. Zero is what the
// provider reports for fields that do not apply to the instrument.
func present(v *float64) bool {
	return v != nil && *v != 0
}
