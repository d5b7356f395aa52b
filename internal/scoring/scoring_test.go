package scoring

import (
	"testing"

	"stock-analyzer/internal/dto"
	"stock-analyzer/internal/model"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 {
	return &v
}

func fullPassFundamentals() *dto.Fundamentals {
	return &dto.Fundamentals{
		CompanyName:       "Toyota Motor",
		RevenueGrowth:     f64(0.10),
		TrailingEPS:       f64(2.0),
		ForwardEPS:        f64(2.5),
		TotalAssets:       f64(5e9),
		OperatingCashflow: f64(1e9),
		TotalCash:         f64(2e9),
		ReturnOnEquity:    f64(0.09),
		DebtToEquity:      f64(80),
		DividendRate:      f64(30),
		PayoutRatio:       f64(0.35),
	}
}

func TestScore_AllCriteriaPass(t *testing.T) {
	total, breakdown := Score(fullPassFundamentals())

	assert.Equal(t, 100, total)
	assert.Len(t, breakdown, 9)
	for _, detail := range breakdown {
		assert.Equal(t, model.TierPass, detail.Tier, "criterion %s", detail.Criterion)
		assert.Equal(t, detail.MaxPoints, detail.Points, "criterion %s", detail.Criterion)
	}
}

func TestScore_NeutralFallback(t *testing.T) {
	tests := []struct {
		name string
		in   *dto.Fundamentals
	}{
		{name: "nil fundamentals", in: nil},
		{name: "empty fundamentals", in: &dto.Fundamentals{CompanyName: "Stock 7203"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, breakdown := Score(tt.in)

			assert.Equal(t, NeutralScore, total)
			assert.Len(t, breakdown, 1)
			assert.Equal(t, CriterionNote, breakdown[0].Criterion)
			assert.Equal(t, NeutralScore, breakdown[0].Points)
		})
	}
}

func TestScore_TotalEqualsSumOfPoints(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *dto.Fundamentals)
	}{
		{name: "all pass", mutate: func(f *dto.Fundamentals) {}},
		{name: "negative growth", mutate: func(f *dto.Fundamentals) { f.RevenueGrowth = f64(-0.02) }},
		{name: "missing eps", mutate: func(f *dto.Fundamentals) { f.TrailingEPS = nil; f.ForwardEPS = nil }},
		{name: "high leverage", mutate: func(f *dto.Fundamentals) { f.DebtToEquity = f64(250) }},
		{name: "generous payout", mutate: func(f *dto.Fundamentals) { f.PayoutRatio = f64(0.8) }},
		{name: "no dividend", mutate: func(f *dto.Fundamentals) { f.DividendRate = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fullPassFundamentals()
			tt.mutate(f)

			total, breakdown := Score(f)

			sum := 0
			for _, detail := range breakdown {
				sum += detail.Points
			}
			assert.Equal(t, sum, total)
			assert.GreaterOrEqual(t, total, 0)
			assert.LessOrEqual(t, total, 100)
		})
	}
}

func TestScore_RevenueGrowthMonotonic(t *testing.T) {
	low := fullPassFundamentals()
	low.RevenueGrowth = f64(0.03)
	high := fullPassFundamentals()
	high.RevenueGrowth = f64(0.06)

	lowTotal, lowBreakdown := Score(low)
	highTotal, highBreakdown := Score(high)

	assert.Equal(t, 8, lowBreakdown[0].Points)
	assert.Equal(t, model.TierPartial, lowBreakdown[0].Tier)
	assert.Equal(t, 15, highBreakdown[0].Points)
	assert.Equal(t, model.TierPass, highBreakdown[0].Tier)
	assert.Greater(t, highTotal, lowTotal)
}

func TestScore_CriterionTiers(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(f *dto.Fundamentals)
		criterion  string
		wantPoints int
		wantTier   model.Tier
		wantValue  string
	}{
		{
			name:       "revenue growth pass formats percent",
			mutate:     func(f *dto.Fundamentals) {},
			criterion:  CriterionRevenueGrowth,
			wantPoints: 15,
			wantTier:   model.TierPass,
			wantValue:  "10.0%",
		},
		{
			name:       "revenue growth negative fails with NA",
			mutate:     func(f *dto.Fundamentals) { f.RevenueGrowth = f64(-0.05) },
			criterion:  CriterionRevenueGrowth,
			wantPoints: 0,
			wantTier:   model.TierFail,
			wantValue:  "N/A",
		},
		{
			name:       "eps pass shows trend",
			mutate:     func(f *dto.Fundamentals) {},
			criterion:  CriterionEPSTrend,
			wantPoints: 15,
			wantTier:   model.TierPass,
			wantValue:  "2.00 → 2.50",
		},
		{
			name:       "eps trailing only earns partial",
			mutate:     func(f *dto.Fundamentals) { f.ForwardEPS = nil },
			criterion:  CriterionEPSTrend,
			wantPoints: 8,
			wantTier:   model.TierPartial,
			wantValue:  "2.00",
		},
		{
			name:       "eps negative trailing fails",
			mutate:     func(f *dto.Fundamentals) { f.TrailingEPS = f64(-1.2); f.ForwardEPS = nil },
			criterion:  CriterionEPSTrend,
			wantPoints: 0,
			wantTier:   model.TierFail,
			wantValue:  "N/A",
		},
		{
			name:       "total assets formatted in billions",
			mutate:     func(f *dto.Fundamentals) {},
			criterion:  CriterionTotalAssets,
			wantPoints: 10,
			wantTier:   model.TierPass,
			wantValue:  "5.0B",
		},
		{
			name:       "roe above zero below threshold is partial",
			mutate:     func(f *dto.Fundamentals) { f.ReturnOnEquity = f64(0.05) },
			criterion:  CriterionReturnOnEquity,
			wantPoints: 5,
			wantTier:   model.TierPartial,
			wantValue:  "5.0%",
		},
		{
			name:       "debt to equity below threshold passes",
			mutate:     func(f *dto.Fundamentals) {},
			criterion:  CriterionDebtToEquity,
			wantPoints: 10,
			wantTier:   model.TierPass,
			wantValue:  "D/E: 80.0",
		},
		{
			name:       "debt to equity zero still passes",
			mutate:     func(f *dto.Fundamentals) { f.DebtToEquity = f64(0) },
			criterion:  CriterionDebtToEquity,
			wantPoints: 10,
			wantTier:   model.TierPass,
			wantValue:  "D/E: 0.0",
		},
		{
			name:       "debt to equity above threshold is partial",
			mutate:     func(f *dto.Fundamentals) { f.DebtToEquity = f64(150) },
			criterion:  CriterionDebtToEquity,
			wantPoints: 5,
			wantTier:   model.TierPartial,
			wantValue:  "D/E: 150.0",
		},
		{
			name:       "payout above threshold is partial",
			mutate:     func(f *dto.Fundamentals) { f.PayoutRatio = f64(0.50) },
			criterion:  CriterionPayoutRatio,
			wantPoints: 5,
			wantTier:   model.TierPartial,
			wantValue:  "50.0%",
		},
		{
			name:       "payout of zero counts as absent",
			mutate:     func(f *dto.Fundamentals) { f.PayoutRatio = f64(0) },
			criterion:  CriterionPayoutRatio,
			wantPoints: 0,
			wantTier:   model.TierFail,
			wantValue:  "N/A",
		},
		{
			name:       "missing dividend fails",
			mutate:     func(f *dto.Fundamentals) { f.DividendRate = nil },
			criterion:  CriterionDividendRate,
			wantPoints: 0,
			wantTier:   model.TierFail,
			wantValue:  "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fullPassFundamentals()
			tt.mutate(f)

			_, breakdown := Score(f)

			var found *model.ScoreDetail
			for i := range breakdown {
				if breakdown[i].Criterion == tt.criterion {
					found = &breakdown[i]
					break
				}
			}
			if assert.NotNil(t, found) {
				assert.Equal(t, tt.wantPoints, found.Points)
				assert.Equal(t, tt.wantTier, found.Tier)
				assert.Equal(t, tt.wantValue, found.Value)
			}
		})
	}
}

func TestScore_BreakdownOrderIsStable(t *testing.T) {
	_, breakdown := Score(fullPassFundamentals())

	wantOrder := []string{
		CriterionRevenueGrowth,
		CriterionEPSTrend,
		CriterionTotalAssets,
		CriterionOperatingCashflow,
		CriterionTotalCash,
		CriterionReturnOnEquity,
		CriterionDebtToEquity,
		CriterionDividendRate,
		CriterionPayoutRatio,
	}

	gotOrder := make([]string, 0, len(breakdown))
	for _, detail := range breakdown {
		gotOrder = append(gotOrder, detail.Criterion)
	}
	assert.Equal(t, wantOrder, gotOrder)
}
