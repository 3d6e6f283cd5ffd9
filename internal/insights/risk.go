package insights

import "math"

// RiskLevel is a discrete bucket derived from budget usage.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// RiskPolicy holds the budget-usage thresholds for one call site. The
// single-project view and the portfolio list view ship with different
// numbers and product has not decided which set wins, so both variants are
// kept under their own names instead of being unified.
type RiskPolicy struct {
	Name          string
	CriticalAbove float64
	HighAbove     float64
	MediumAbove   float64
}

var (
	// SingleProjectPolicy backs GET /risk/:projectId.
	SingleProjectPolicy = RiskPolicy{Name: "single_project", CriticalAbove: 120, HighAbove: 100, MediumAbove: 80}

	// PortfolioPolicy backs GET /insights/project-risks.
	PortfolioPolicy = RiskPolicy{Name: "portfolio", CriticalAbove: 90, HighAbove: 70, MediumAbove: 50}
)

// Assessment is the outcome of classifying one project's budget usage.
// UsedPercent is the raw, unrounded ratio; callers round for display only.
type Assessment struct {
	UsedPercent float64
	Level       RiskLevel
}

// Classify maps budget and spent into a usage percentage and a risk level.
// A zero budget yields 0% usage rather than a division fault. Thresholds are
// evaluated on the unrounded ratio so display rounding cannot flip a level
// at a boundary.
func (p RiskPolicy) Classify(budget, spent float64) Assessment {
	used := 0.0
	if budget != 0 {
		used = spent / budget * 100
	}
	return Assessment{UsedPercent: used, Level: p.levelFor(used)}
}

// levelFor tie-breaks with strict greater-than at every boundary: usage of
// exactly 120 under the single-project policy is High, not Critical.
func (p RiskPolicy) levelFor(usedPercent float64) RiskLevel {
	switch {
	case usedPercent > p.CriticalAbove:
		return RiskCritical
	case usedPercent > p.HighAbove:
		return RiskHigh
	case usedPercent > p.MediumAbove:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Round2 rounds to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// roundUsage reports a whole-number budget usage for the portfolio list view.
// Single-project assessments keep two decimals; only the list rounds off.
func roundUsage(usedPercent float64) int {
	return int(math.Round(usedPercent))
}
