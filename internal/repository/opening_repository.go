package repository

import (
	"context"
	"errors"
	"strings"

	"talent-track/internal/database"
	"talent-track/internal/domain/opening"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type OpeningFilter struct {
	Status     string
	Department string
	Limit      int
	Offset     int
}

type OpeningRepository interface {
	Create(ctx context.Context, o opening.Opening) error
	GetByID(ctx context.Context, id uuid.UUID) (opening.Opening, error)
	GetByReference(ctx context.Context, reference string) (opening.Opening, error)
	Update(ctx context.Context, o opening.Opening) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, f OpeningFilter) ([]opening.Opening, error)
	ListAll(ctx context.Context) ([]opening.Opening, error)
	UpsertByReference(ctx context.Context, o opening.Opening) error
}

const openingColumns = `id, reference, title, department, recruiter, status, opened_at, start_date,
	 hiring_cost, target_hires, created_at, updated_at`

type PostgresOpeningRepository struct {
	db database.DB
}

func NewPostgresOpeningRepository(db database.DB) *PostgresOpeningRepository {
	return &PostgresOpeningRepository{db: db}
}

func (r *PostgresOpeningRepository) Create(ctx context.Context, o opening.Opening) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_openings
		 (id, reference, title, department, recruiter, status, opened_at, start_date, hiring_cost, target_hires)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.Reference, o.Title, o.Department, o.Recruiter, o.Status, o.OpenedAt, o.StartDate, o.HiringCost, o.TargetHires,
	)
	if isUniqueViolation(err) {
		return opening.ErrReferenceTaken
	}
	return err
}

func (r *PostgresOpeningRepository) GetByID(ctx context.Context, id uuid.UUID) (opening.Opening, error) {
	row := r.db.QueryRow(ctx, `SELECT `+openingColumns+` FROM job_openings WHERE id = $1`, id)
	return scanOpening(row)
}

func (r *PostgresOpeningRepository) GetByReference(ctx context.Context, reference string) (opening.Opening, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+openingColumns+` FROM job_openings WHERE lower(reference) = lower($1)`,
		strings.TrimSpace(reference))
	return scanOpening(row)
}

func (r *PostgresOpeningRepository) Update(ctx context.Context, o opening.Opening) error {
	n, err := r.db.Exec(ctx,
		`UPDATE job_openings SET
		   reference = $2, title = $3, department = $4, recruiter = $5, status = $6,
		   opened_at = $7, start_date = $8, hiring_cost = $9, target_hires = $10, updated_at = now()
		 WHERE id = $1`,
		o.ID, o.Reference, o.Title, o.Department, o.Recruiter, o.Status,
		o.OpenedAt, o.StartDate, o.HiringCost, o.TargetHires,
	)
	if isUniqueViolation(err) {
		return opening.ErrReferenceTaken
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return opening.ErrNotFound
	}
	return nil
}

func (r *PostgresOpeningRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE job_openings SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if n == 0 {
		return opening.ErrNotFound
	}
	return nil
}

func (r *PostgresOpeningRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM job_openings WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *PostgresOpeningRepository) List(ctx context.Context, f OpeningFilter) ([]opening.Opening, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+openingColumns+`
		 FROM job_openings
		 WHERE ($1 = '' OR status = $1)
		   AND ($2 = '' OR department = $2)
		 ORDER BY opened_at DESC, reference ASC
		 LIMIT $3 OFFSET $4`,
		f.Status, f.Department, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOpenings(rows)
}

func (r *PostgresOpeningRepository) ListAll(ctx context.Context) ([]opening.Opening, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+openingColumns+` FROM job_openings ORDER BY opened_at ASC, reference ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOpenings(rows)
}

func (r *PostgresOpeningRepository) UpsertByReference(ctx context.Context, o opening.Opening) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO job_openings
		 (id, reference, title, department, recruiter, status, opened_at, start_date, hiring_cost, target_hires)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (reference) DO UPDATE SET
		   title = EXCLUDED.title,
		   department = EXCLUDED.department,
		   recruiter = EXCLUDED.recruiter,
		   status = EXCLUDED.status,
		   opened_at = EXCLUDED.opened_at,
		   start_date = EXCLUDED.start_date,
		   hiring_cost = EXCLUDED.hiring_cost,
		   target_hires = EXCLUDED.target_hires,
		   updated_at = now()`,
		o.ID, o.Reference, o.Title, o.Department, o.Recruiter, o.Status, o.OpenedAt, o.StartDate, o.HiringCost, o.TargetHires,
	)
	return err
}

func scanOpening(row database.Row) (opening.Opening, error) {
	var o opening.Opening
	err := row.Scan(
		&o.ID, &o.Reference, &o.Title, &o.Department, &o.Recruiter, &o.Status, &o.OpenedAt, &o.StartDate,
		&o.HiringCost, &o.TargetHires, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return opening.Opening{}, opening.ErrNotFound
		}
		return opening.Opening{}, err
	}
	return o, nil
}

func collectOpenings(rows database.Rows) ([]opening.Opening, error) {
	out := make([]opening.Opening, 0)
	for rows.Next() {
		var o opening.Opening
		if err := rows.Scan(
			&o.ID, &o.Reference, &o.Title, &o.Department, &o.Recruiter, &o.Status, &o.OpenedAt, &o.StartDate,
			&o.HiringCost, &o.TargetHires, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
