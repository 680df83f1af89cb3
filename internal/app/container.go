package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"talent-track/internal/config"
	"talent-track/internal/database"
	dbpostgres "talent-track/internal/database/postgres"
	"talent-track/internal/infrastructure/cache"
	userpostgres "talent-track/internal/infrastructure/persistence/postgres"
)

type Container struct {
	Config config.Config
	Log    *zap.Logger
	DB     database.DB
	Redis  *cache.Redis
	Users  *userpostgres.UserRepository
}

func NewContainer(cfg config.Config, log *zap.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	users, err := userpostgres.NewUserRepository(db.SQLDB())
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  cache.NewRedis(cfg.Redis, log),
		Users:  users,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Users != nil {
		_ = c.Users.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
