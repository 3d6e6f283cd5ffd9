package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/constructerp/erp-backend/internal/audit"
	"github.com/constructerp/erp-backend/internal/insights"
)

// AuditRetention is how long audit log rows are kept before the nightly
// prune removes them.
const AuditRetention = 180 * 24 * time.Hour

// Scheduler runs the nightly maintenance jobs: refresh the cashflow
// forecast snapshot and prune expired audit logs.
type Scheduler struct {
	forecaster insights.ForecastProvider
	snapshots  *insights.SnapshotStore
	auditRepo  *audit.Repo
}

func NewScheduler(forecaster insights.ForecastProvider, snapshots *insights.SnapshotStore, auditRepo *audit.Repo) *Scheduler {
	return &Scheduler{
		forecaster: forecaster,
		snapshots:  snapshots,
		auditRepo:  auditRepo,
	}
}

// Start registers the cron entries and starts the scheduler. Jobs run at
// 2:00 AM server time.
func (s *Scheduler) Start() (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc("0 0 2 * * *", s.RunNightly); err != nil {
		return nil, err
	}

	log.Println("cron scheduler started (nightly maintenance at 2:00AM)")
	c.Start()
	return c, nil
}

// RunNightly executes both jobs once. Exported so the worker can run it
// immediately at startup and so tests can drive it directly.
func (s *Scheduler) RunNightly() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	s.refreshForecast(ctx)
	s.pruneAudit(ctx)

	log.Println("nightly maintenance completed at:", time.Now().Format(time.RFC1123))
}

func (s *Scheduler) refreshForecast(ctx context.Context) {
	points, err := s.forecaster.Forecast(ctx)
	if err != nil {
		log.Printf("forecast refresh failed: %v", err)
		return
	}
	if err := s.snapshots.Save(ctx, points); err != nil {
		log.Printf("forecast snapshot save failed: %v", err)
		return
	}
	log.Printf("forecast snapshot refreshed (%d periods)", len(points))
}

func (s *Scheduler) pruneAudit(ctx context.Context) {
	n, err := s.auditRepo.PruneOlderThan(ctx, time.Now().Add(-AuditRetention))
	if err != nil {
		log.Printf("audit prune failed: %v", err)
		return
	}
	log.Printf("audit prune removed %d rows", n)
}
