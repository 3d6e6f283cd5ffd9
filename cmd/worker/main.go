package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/constructerp/erp-backend/config"
	"github.com/constructerp/erp-backend/internal/audit"
	"github.com/constructerp/erp-backend/internal/bootstrap"
	"github.com/constructerp/erp-backend/internal/insights"
	"github.com/constructerp/erp-backend/internal/jobs"
	"github.com/constructerp/erp-backend/internal/payments"
	"github.com/constructerp/erp-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	sqlDB, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("postgres (database/sql): %v", err)
	}
	defer sqlDB.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	sched := jobs.NewScheduler(
		insights.NewTrailingAverageForecast(payments.NewRepo(pool)),
		insights.NewSnapshotStore(rdb),
		audit.NewRepo(sqlDB),
	)

	// Run once at startup so a fresh deploy has a snapshot before 2AM.
	sched.RunNightly()

	c, err := sched.Start()
	if err != nil {
		log.Fatalf("scheduler: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("worker shutting down")
	<-c.Stop().Done()
}
