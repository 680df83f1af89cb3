package usecase

import (
	"context"
	"time"
)

type MetricsCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateMetrics(ctx context.Context) error
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

// Notifier pushes data-changed events to connected dashboard clients.
type Notifier interface {
	NotifyDataUpdated(scope string)
}

type noopCache struct{}

func (noopCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }

func (noopCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }

func (noopCache) InvalidateMetrics(context.Context) error { return nil }
func (noopCache) SetIfNotExists(context.Context, string, string, time.Duration) (bool, error) {
	return true, nil
}

type noopNotifier struct{}

func (noopNotifier) NotifyDataUpdated(string) {}
