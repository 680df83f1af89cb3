// Package seeder fills an empty database with the reference data the
// tracker needs on first boot.
package seeder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"talent-track/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// RunAll executes each seeder in order, stopping at the first failure.
func RunAll(ctx context.Context, db database.DB, log *zap.Logger, seeders ...Seeder) error {
	if log == nil {
		log = zap.NewNop()
	}
	for _, s := range seeders {
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seeder %s: %w", s.Name(), err)
		}
		log.Info("seeder done", zap.String("seeder", s.Name()))
	}
	return nil
}
