package main

import (
	"context"
	"flag"
	"log"
	"time"

	"talent-track/internal/app"
	"talent-track/internal/config"
	"talent-track/internal/database/migration"
	"talent-track/internal/database/seeder"
	"talent-track/internal/pkg/logger"
)

func main() {
	dataset := flag.String("dataset", "", "path to a YAML fixture with openings and candidates")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.App.AppName, cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	c, err := app.NewContainer(cfg, zlog)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	r := migration.Runner{Dir: cfg.App.MigrationsDir, Log: zlog}
	if err := r.Run(migCtx, c.DB.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	seeders := []seeder.Seeder{seeder.PreferenceSeeder{}}
	if *dataset != "" {
		ds, err := seeder.LoadDataset(*dataset)
		if err != nil {
			log.Fatalf("dataset load failed: %v", err)
		}
		seeders = append(seeders, seeder.DatasetSeeder{Dataset: ds})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := seeder.RunAll(ctx, c.DB, zlog, seeders...); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("seed complete")
}
