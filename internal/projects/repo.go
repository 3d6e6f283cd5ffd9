package projects

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("project not found")

// Project is a construction project tracked by the ERP. Budget and Spent are
// currency-agnostic amounts; Spent may exceed Budget. Progress is a
// percentage by convention (0-100) but is not enforced.
type Project struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Budget    float64   `json:"budget"`
	Spent     float64   `json:"spent"`
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, name string, budget, spent float64, progress int) (*Project, error) {
	const q = `
insert into projects (name, budget, spent, progress)
values ($1, $2, $3, $4)
returning id, name, budget, spent, progress, created_at, updated_at;
`
	var p Project
	err := r.db.QueryRow(ctx, q, name, budget, spent, progress).
		Scan(&p.ID, &p.Name, &p.Budget, &p.Spent, &p.Progress, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) List(ctx context.Context) ([]Project, error) {
	const q = `
select id, name, budget, spent, progress, created_at, updated_at
from projects
order by id desc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Budget, &p.Spent, &p.Progress, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (*Project, error) {
	const q = `
select id, name, budget, spent, progress, created_at, updated_at
from projects
where id = $1;
`
	var p Project
	err := r.db.QueryRow(ctx, q, id).
		Scan(&p.ID, &p.Name, &p.Budget, &p.Spent, &p.Progress, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Update(ctx context.Context, id int64, name string, budget, spent float64, progress int) (*Project, error) {
	const q = `
update projects
set name = $2, budget = $3, spent = $4, progress = $5, updated_at = now()
where id = $1
returning id, name, budget, spent, progress, created_at, updated_at;
`
	var p Project
	err := r.db.QueryRow(ctx, q, id, name, budget, spent, progress).
		Scan(&p.ID, &p.Name, &p.Budget, &p.Spent, &p.Progress, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `delete from projects where id = $1;`
	ct, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
