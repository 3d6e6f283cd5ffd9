package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	snapshotKey = "erp:insights:cashflow"
	snapshotTTL = 48 * time.Hour
)

// SnapshotStore caches a computed cashflow forecast in Redis. The nightly
// worker writes it; the API reads it so request-path forecasts stay cheap.
type SnapshotStore struct {
	client *redis.Client
}

func NewSnapshotStore(client *redis.Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

func (s *SnapshotStore) Save(ctx context.Context, points []CashflowPoint) error {
	data, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("marshal forecast snapshot: %w", err)
	}
	if err := s.client.Set(ctx, snapshotKey, data, snapshotTTL).Err(); err != nil {
		return fmt.Errorf("save forecast snapshot: %w", err)
	}
	return nil
}

// Load returns the cached forecast, or (nil, nil) when none is cached.
func (s *SnapshotStore) Load(ctx context.Context) ([]CashflowPoint, error) {
	data, err := s.client.Get(ctx, snapshotKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load forecast snapshot: %w", err)
	}

	var points []CashflowPoint
	if err := json.Unmarshal([]byte(data), &points); err != nil {
		return nil, fmt.Errorf("unmarshal forecast snapshot: %w", err)
	}
	return points, nil
}

// CachedForecast serves the latest snapshot when one exists and falls back
// to the wrapped provider otherwise.
type CachedForecast struct {
	Store    *SnapshotStore
	Fallback ForecastProvider
}

func (c *CachedForecast) Forecast(ctx context.Context) ([]CashflowPoint, error) {
	points, err := c.Store.Load(ctx)
	if err != nil {
		log.Printf("cashflow snapshot unavailable, recomputing: %v", err)
	}
	if err == nil && len(points) > 0 {
		return points, nil
	}
	return c.Fallback.Forecast(ctx)
}
