package insights

import (
	"github.com/constructerp/erp-backend/internal/projects"
)

// PortfolioHealth partitions the whole portfolio by progress and carries
// unweighted means across all projects.
type PortfolioHealth struct {
	TotalProjects      int     `json:"totalProjects"`
	Healthy            int     `json:"healthy"`
	AtRisk             int     `json:"atRisk"`
	Critical           int     `json:"critical"`
	AverageProgress    float64 `json:"averageProgress"`
	AverageBudgetUsage float64 `json:"averageBudgetUsage"`
}

// AggregateHealth folds projects into the health summary. Buckets follow
// progress, not budget usage: >=70 healthy, 40..69 at risk, <40 critical.
// An empty portfolio yields the zero value, never a division fault.
func AggregateHealth(list []projects.Project) PortfolioHealth {
	h := PortfolioHealth{TotalProjects: len(list)}
	if len(list) == 0 {
		return h
	}

	var progressSum, usageSum float64
	for _, p := range list {
		switch {
		case p.Progress >= 70:
			h.Healthy++
		case p.Progress >= 40:
			h.AtRisk++
		default:
			h.Critical++
		}

		progressSum += float64(p.Progress)
		if p.Budget != 0 {
			usageSum += p.Spent / p.Budget * 100
		}
	}

	n := float64(len(list))
	h.AverageProgress = Round2(progressSum / n)
	h.AverageBudgetUsage = Round2(usageSum / n)
	return h
}
