package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"talent-track/internal/domain/preference"
	"talent-track/internal/repository"
)

type PreferenceUsecase interface {
	GetAll(ctx context.Context) (map[string][]string, error)
	GetKind(ctx context.Context, kind string) ([]string, error)
	ReplaceKind(ctx context.Context, kind string, values []string) ([]string, error)
}

type Preference struct {
	preferences repository.PreferenceRepository
	cache       MetricsCache
	notifier    Notifier
	log         *zap.Logger
}

func NewPreferenceUsecase(preferences repository.PreferenceRepository, cache MetricsCache, notifier Notifier, log *zap.Logger) *Preference {
	if cache == nil {
		cache = noopCache{}
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Preference{preferences: preferences, cache: cache, notifier: notifier, log: log}
}

func (u *Preference) GetAll(ctx context.Context) (map[string][]string, error) {
	out, err := u.preferences.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Preference) GetKind(ctx context.Context, kind string) ([]string, error) {
	k, err := preference.NormalizeKind(kind)
	if err != nil {
		return nil, preference.ErrUnknownKind
	}
	out, err := u.preferences.ListByKind(ctx, k)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// ReplaceKind swaps the whole reference list for a kind. Values are
// trimmed and deduplicated case-insensitively, keeping first occurrence
// order.
func (u *Preference) ReplaceKind(ctx context.Context, kind string, values []string) ([]string, error) {
	k, err := preference.NormalizeKind(kind)
	if err != nil {
		return nil, preference.ErrUnknownKind
	}

	cleaned := make([]string, 0, len(values))
	seen := map[string]bool{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		cleaned = append(cleaned, v)
	}
	if len(cleaned) == 0 {
		return nil, ErrInvalidInput
	}

	if err := u.preferences.ReplaceKind(ctx, k, cleaned); err != nil {
		return nil, ErrInternal
	}

	if err := u.cache.InvalidateMetrics(ctx); err != nil {
		u.log.Warn("metrics cache invalidation failed", zap.Error(err))
	}
	u.notifier.NotifyDataUpdated("preferences")
	return cleaned, nil
}
