package seeder

import (
	"context"

	"talent-track/internal/database"
	"talent-track/internal/domain"
	"talent-track/internal/domain/preference"
)

// PreferenceSeeder inserts the default dropdown lists for any preference
// kind that has no rows yet. Kinds HR already edited are left alone.
type PreferenceSeeder struct{}

func (PreferenceSeeder) Name() string { return "preference-defaults" }

func (PreferenceSeeder) Run(ctx context.Context, db database.DB) error {
	defaults := map[string][]string{
		preference.KindStage:     domain.DefaultStages,
		preference.KindJobStatus: domain.DefaultJobStatuses,
		preference.KindSource:    domain.DefaultSources,
		preference.KindDecision:  domain.DefaultFinalDecisions,
	}

	for kind, values := range defaults {
		var n int
		row := db.QueryRow(ctx, `SELECT COUNT(*) FROM preferences WHERE kind = $1`, kind)
		if err := row.Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		for i, v := range values {
			_, err := db.Exec(ctx,
				`INSERT INTO preferences (kind, value, sort_order)
				 VALUES ($1, $2, $3)
				 ON CONFLICT (kind, value) DO NOTHING`,
				kind, v, i)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
