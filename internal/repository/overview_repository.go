package repository

import (
	"context"

	"talent-track/internal/database"
)

type OverviewCounts struct {
	TotalCandidates   int
	TotalHired        int
	OpenPositions     int
	FilledPositions   int
	ApplicationsMonth int
	HiresMonth        int
}

type OverviewRepository interface {
	GetCounts(ctx context.Context) (OverviewCounts, error)
}

type PostgresOverviewRepository struct {
	db database.DB
}

func NewPostgresOverviewRepository(db database.DB) *PostgresOverviewRepository {
	return &PostgresOverviewRepository{db: db}
}

func (r *PostgresOverviewRepository) GetCounts(ctx context.Context) (OverviewCounts, error) {
	var out OverviewCounts

	row := r.db.QueryRow(ctx,
		`SELECT
		   COALESCE(COUNT(1), 0),
		   COALESCE(COUNT(1) FILTER (WHERE stage = 'Hired'), 0),
		   COALESCE(COUNT(1) FILTER (WHERE applied_at >= date_trunc('month', now())), 0),
		   COALESCE(COUNT(1) FILTER (WHERE stage = 'Hired' AND hired_at >= date_trunc('month', now())), 0)
		 FROM candidates`)
	if err := row.Scan(&out.TotalCandidates, &out.TotalHired, &out.ApplicationsMonth, &out.HiresMonth); err != nil {
		return OverviewCounts{}, err
	}

	row = r.db.QueryRow(ctx,
		`SELECT
		   COALESCE(COUNT(1) FILTER (WHERE status = 'Vacant'), 0),
		   COALESCE(COUNT(1) FILTER (WHERE status = 'Filled'), 0)
		 FROM job_openings`)
	if err := row.Scan(&out.OpenPositions, &out.FilledPositions); err != nil {
		return OverviewCounts{}, err
	}

	return out, nil
}
