package main

import (
	"context"
	"log"

	"github.com/constructerp/erp-backend/config"
	"github.com/constructerp/erp-backend/internal/bootstrap"
	"github.com/constructerp/erp-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

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

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "erp-backend",
		Cfg:         cfg,
		DB:          pool,
		SQLDB:       sqlDB,
		Redis:       rdb,
	})

	log.Printf("ERP server listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
