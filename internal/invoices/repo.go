package invoices

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("invoice not found")

// Invoice statuses. Pending is the default on create.
const (
	StatusPending = "Pending"
	StatusPaid    = "Paid"
	StatusOverdue = "Overdue"
)

type Invoice struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectId"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, projectID int64, amount float64, status string) (*Invoice, error) {
	if status == "" {
		status = StatusPending
	}

	const q = `
insert into invoices (project_id, amount, status)
values ($1, $2, $3)
returning id, project_id, amount, status, created_at, updated_at;
`
	var inv Invoice
	err := r.db.QueryRow(ctx, q, projectID, amount, status).
		Scan(&inv.ID, &inv.ProjectID, &inv.Amount, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *Repo) List(ctx context.Context) ([]Invoice, error) {
	const q = `
select id, project_id, amount, status, created_at, updated_at
from invoices
order by id desc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Invoice, 0, 16)
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.ProjectID, &inv.Amount, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (*Invoice, error) {
	const q = `
select id, project_id, amount, status, created_at, updated_at
from invoices
where id = $1;
`
	var inv Invoice
	err := r.db.QueryRow(ctx, q, id).
		Scan(&inv.ID, &inv.ProjectID, &inv.Amount, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *Repo) Update(ctx context.Context, id int64, amount float64, status string) (*Invoice, error) {
	const q = `
update invoices
set amount = $2, status = $3, updated_at = now()
where id = $1
returning id, project_id, amount, status, created_at, updated_at;
`
	var inv Invoice
	err := r.db.QueryRow(ctx, q, id, amount, status).
		Scan(&inv.ID, &inv.ProjectID, &inv.Amount, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `delete from invoices where id = $1;`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// CountPending backs the dashboard stats card.
func (r *Repo) CountPending(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `select count(*) from invoices where status = $1;`, StatusPending).Scan(&n)
	return n, err
}
