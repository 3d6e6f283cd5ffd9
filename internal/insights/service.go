package insights

import (
	"context"

	"github.com/constructerp/erp-backend/internal/projects"
)

// ProjectSource supplies project rows. The pgx repository satisfies it in
// production; tests substitute a fake so repository reads can be counted.
type ProjectSource interface {
	List(ctx context.Context) ([]projects.Project, error)
	Get(ctx context.Context, id int64) (*projects.Project, error)
}

// ProjectRisk is one row of the portfolio risk list view. BudgetUsage is a
// whole-number percentage, matching what the heatmap renders.
type ProjectRisk struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Progress    int       `json:"progress"`
	BudgetUsage int       `json:"budgetUsage"`
	RiskLevel   RiskLevel `json:"riskLevel"`
}

// RiskAssessment is the single-project risk view. It is derived, never
// persisted, and recomputed on every request.
type RiskAssessment struct {
	Project           string    `json:"project"`
	Budget            float64   `json:"budget"`
	Spent             float64   `json:"spent"`
	BudgetUsedPercent float64   `json:"budgetUsedPercent"`
	Risk              RiskLevel `json:"risk"`
}

// Service composes the classifier, the health aggregator and the forecast
// provider into the three insight views plus the per-project risk lookup.
// Every operation is read-only and idempotent.
type Service struct {
	source   ProjectSource
	forecast ForecastProvider
}

func NewService(source ProjectSource, forecast ForecastProvider) *Service {
	if forecast == nil {
		forecast = StaticForecast{}
	}
	return &Service{source: source, forecast: forecast}
}

func (s *Service) Health(ctx context.Context) (PortfolioHealth, error) {
	list, err := s.source.List(ctx)
	if err != nil {
		return PortfolioHealth{}, err
	}
	return AggregateHealth(list), nil
}

func (s *Service) Risks(ctx context.Context) ([]ProjectRisk, error) {
	list, err := s.source.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ProjectRisk, 0, len(list))
	for _, p := range list {
		a := PortfolioPolicy.Classify(p.Budget, p.Spent)
		out = append(out, ProjectRisk{
			ID:          p.ID,
			Name:        p.Name,
			Progress:    p.Progress,
			BudgetUsage: roundUsage(a.UsedPercent),
			RiskLevel:   a.Level,
		})
	}
	return out, nil
}

func (s *Service) Cashflow(ctx context.Context) ([]CashflowPoint, error) {
	return s.forecast.Forecast(ctx)
}

// ProjectRisk returns the single-project assessment, or
// projects.ErrNotFound when the id does not exist.
func (s *Service) ProjectRisk(ctx context.Context, id int64) (*RiskAssessment, error) {
	p, err := s.source.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	a := SingleProjectPolicy.Classify(p.Budget, p.Spent)
	return &RiskAssessment{
		Project:           p.Name,
		Budget:            p.Budget,
		Spent:             p.Spent,
		BudgetUsedPercent: Round2(a.UsedPercent),
		Risk:              a.Level,
	}, nil
}
