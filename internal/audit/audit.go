package audit

import (
	"context"
	"time"
)

// Entry is one audit log row. NewValues is marshalled to JSON at write time.
type Entry struct {
	ID         string      `json:"id"`
	UserID     int64       `json:"userId"`
	Action     string      `json:"action"`
	EntityType string      `json:"entityType"`
	EntityID   string      `json:"entityId"`
	NewValues  interface{} `json:"newValues,omitempty"`
	IPAddress  string      `json:"ipAddress"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Recorder accepts audit entries from mutating handlers. Recording is
// best-effort: implementations log failures instead of failing the request.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

// NopRecorder discards entries. Used in tests.
type NopRecorder struct{}

func (NopRecorder) Record(ctx context.Context, e Entry) {}
