package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepo(db)

	mock.ExpectExec(`INSERT INTO audit_logs`).
		WithArgs(
			sqlmock.AnyArg(), int64(42), "create", "project", "17",
			[]byte(`{"name":"Bridge"}`), "10.0.0.1", sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo.Record(context.Background(), Entry{
		UserID:     42,
		Action:     "create",
		EntityType: "project",
		EntityID:   "17",
		NewValues:  map[string]string{"name": "Bridge"},
		IPAddress:  "10.0.0.1",
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepoRecordSwallowsInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepo(db)

	mock.ExpectExec(`INSERT INTO audit_logs`).
		WillReturnError(assert.AnError)

	// Must not panic or propagate; auditing never blocks the caller.
	repo.Record(context.Background(), Entry{UserID: 1, Action: "delete", EntityType: "invoice", EntityID: "3"})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepoList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepo(db)

	created := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, user_id, action, entity_type, entity_id, new_values, ip_address, created_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "entity_type", "entity_id", "new_values", "ip_address", "created_at"}).
			AddRow("a1", int64(42), "update", "project", "17", []byte(`{"budget":100000}`), "10.0.0.1", created).
			AddRow("a2", int64(7), "delete", "vendor", "3", []byte(nil), "10.0.0.2", created))

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "update", entries[0].Action)
	assert.Equal(t, map[string]interface{}{"budget": float64(100000)}, entries[0].NewValues)
	assert.Nil(t, entries[1].NewValues)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepoPruneOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepo(db)

	cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM audit_logs WHERE created_at`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	n, err := repo.PruneOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	require.NoError(t, mock.ExpectationsWereMet())
}
