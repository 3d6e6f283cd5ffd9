package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Record inserts an audit entry. Failures are logged and swallowed so an
// audit outage never blocks the business operation it describes.
func (r *Repo) Record(ctx context.Context, e Entry) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	var newValues []byte
	if e.NewValues != nil {
		var err error
		newValues, err = json.Marshal(e.NewValues)
		if err != nil {
			log.Printf("audit: marshal new values: %v", err)
			newValues = nil
		}
	}

	const q = `
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, new_values, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := r.db.ExecContext(ctx, q,
		e.ID, e.UserID, e.Action, e.EntityType, e.EntityID, newValues, e.IPAddress, e.CreatedAt,
	); err != nil {
		log.Printf("audit: record %s %s/%s: %v", e.Action, e.EntityType, e.EntityID, err)
	}
}

func (r *Repo) List(ctx context.Context) ([]Entry, error) {
	const q = `
		SELECT id, user_id, action, entity_type, entity_id, new_values, ip_address, created_at
		FROM audit_logs
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, 32)
	for rows.Next() {
		var e Entry
		var newValues []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.EntityType, &e.EntityID, &newValues, &e.IPAddress, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(newValues) > 0 {
			var v interface{}
			if err := json.Unmarshal(newValues, &v); err == nil {
				e.NewValues = v
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// PruneOlderThan deletes entries past the retention window. The nightly
// worker calls this.
func (r *Repo) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
