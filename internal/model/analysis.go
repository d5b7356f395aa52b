package model

import (
	"stock-analyzer/pkg/utils"
)

// Tier is the per-criterion outcome controlling awarded points.
type Tier string

const (
	TierPass    Tier = "PASS"
	TierPartial Tier = "PARTIAL"
	TierFail    Tier = "FAIL"
)

// Display returns the fixed label shown in the breakdown view.
func (t Tier) Display() string {
	switch t {
	case TierPass:
		return "✅ Pass"
	case TierPartial:
		return "△ Needs improvement"
	default:
		return "❌ Fail"
	}
}

// ScoreDetail is one criterion's evaluation inside a breakdown.
type ScoreDetail struct {
	Criterion string `json:"criterion"`
	Points    int    `json:"points"`
	MaxPoints int    `json:"max_points"`
	Tier      Tier   `json:"tier"`
	Status    string `json:"status"`
	Value     string `json:"value"`
}

// NewScoreDetail builds a detail entry with the tier display label applied.
func NewScoreDetail(criterion string, points, maxPoints int, tier Tier, value string) ScoreDetail {
	return ScoreDetail{
		Criterion: criterion,
		Points:    points,
		MaxPoints: maxPoints,
		Tier:      tier,
		Status:    tier.Display(),
		Value:     value,
	}
}

// AnalysisRecord is one completed analysis. Records are immutable once
// created; the history store only ever evicts whole records by age.
type AnalysisRecord struct {
	StockCode   string        `json:"stock_code"`
	CompanyName string        `json:"company_name"`
	Score       int           `json:"score"`
	Breakdown   []ScoreDetail `json:"breakdown"`
	Timestamp   string        `json:"timestamp"`
}

// MonthKey derives the YYYY-MM ranking bucket this record belongs to.
func (r *AnalysisRecord) MonthKey() string {
	return utils.MonthKeyFromTimestamp(r.Timestamp)
}
