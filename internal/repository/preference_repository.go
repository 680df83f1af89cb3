package repository

import (
	"context"

	"talent-track/internal/database"
	"talent-track/internal/domain/preference"
)

type PreferenceRepository interface {
	ListAll(ctx context.Context) (map[string][]string, error)
	ListByKind(ctx context.Context, kind string) ([]string, error)
	ReplaceKind(ctx context.Context, kind string, values []string) error
}

type PostgresPreferenceRepository struct {
	db database.DB
}

func NewPostgresPreferenceRepository(db database.DB) *PostgresPreferenceRepository {
	return &PostgresPreferenceRepository{db: db}
}

func (r *PostgresPreferenceRepository) ListAll(ctx context.Context) (map[string][]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT kind, value FROM preferences ORDER BY kind ASC, sort_order ASC, value ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]string{}
	for _, k := range preference.Kinds() {
		out[k] = []string{}
	}
	for rows.Next() {
		var kind, value string
		if err := rows.Scan(&kind, &value); err != nil {
			return nil, err
		}
		out[kind] = append(out[kind], value)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPreferenceRepository) ListByKind(ctx context.Context, kind string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT value FROM preferences WHERE kind = $1 ORDER BY sort_order ASC, value ASC`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPreferenceRepository) ReplaceKind(ctx context.Context, kind string, values []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM preferences WHERE kind = $1`, kind); err != nil {
		return err
	}
	for i, v := range values {
		_, err := tx.Exec(ctx,
			`INSERT INTO preferences (id, kind, value, sort_order)
			 VALUES (gen_random_uuid(), $1, $2, $3)
			 ON CONFLICT (kind, value) DO UPDATE SET sort_order = EXCLUDED.sort_order`,
			kind, v, i,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
