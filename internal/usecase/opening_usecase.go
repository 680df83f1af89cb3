package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talent-track/internal/domain"
	"talent-track/internal/domain/opening"
	"talent-track/internal/domain/preference"
	"talent-track/internal/repository"
)

var ErrUnknownJobStatus = errors.New("unknown job status")

type CreateOpeningInput struct {
	Reference   string
	Title       string
	Department  string
	Recruiter   string
	Status      string
	OpenedAt    time.Time
	StartDate   *time.Time
	HiringCost  *float64
	TargetHires int
}

type OpeningUsecase interface {
	Create(ctx context.Context, in CreateOpeningInput) (opening.Opening, error)
	Get(ctx context.Context, id uuid.UUID) (opening.Opening, error)
	Update(ctx context.Context, id uuid.UUID, in CreateOpeningInput) (opening.Opening, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, status string) (opening.Opening, error)
	List(ctx context.Context, f repository.OpeningFilter) ([]opening.Opening, error)
}

type Opening struct {
	openings    repository.OpeningRepository
	preferences repository.PreferenceRepository
	cache       MetricsCache
	notifier    Notifier
	log         *zap.Logger
	now         func() time.Time
}

func NewOpeningUsecase(
	openings repository.OpeningRepository,
	preferences repository.PreferenceRepository,
	cache MetricsCache,
	notifier Notifier,
	log *zap.Logger,
) *Opening {
	if cache == nil {
		cache = noopCache{}
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Opening{
		openings:    openings,
		preferences: preferences,
		cache:       cache,
		notifier:    notifier,
		log:         log,
		now:         time.Now,
	}
}

func (u *Opening) Create(ctx context.Context, in CreateOpeningInput) (opening.Opening, error) {
	o, err := u.buildOpening(ctx, uuid.New(), in)
	if err != nil {
		return opening.Opening{}, err
	}

	if err := u.openings.Create(ctx, o); err != nil {
		if errors.Is(err, opening.ErrReferenceTaken) {
			return opening.Opening{}, opening.ErrReferenceTaken
		}
		return opening.Opening{}, ErrInternal
	}

	u.dataChanged(ctx)
	return o, nil
}

func (u *Opening) Get(ctx context.Context, id uuid.UUID) (opening.Opening, error) {
	o, err := u.openings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, opening.ErrNotFound) {
			return opening.Opening{}, opening.ErrNotFound
		}
		return opening.Opening{}, ErrInternal
	}
	return o, nil
}

func (u *Opening) Update(ctx context.Context, id uuid.UUID, in CreateOpeningInput) (opening.Opening, error) {
	current, err := u.Get(ctx, id)
	if err != nil {
		return opening.Opening{}, err
	}

	o, err := u.buildOpening(ctx, id, in)
	if err != nil {
		return opening.Opening{}, err
	}
	o.CreatedAt = current.CreatedAt

	if err := u.openings.Update(ctx, o); err != nil {
		switch {
		case errors.Is(err, opening.ErrNotFound):
			return opening.Opening{}, opening.ErrNotFound
		case errors.Is(err, opening.ErrReferenceTaken):
			return opening.Opening{}, opening.ErrReferenceTaken
		}
		return opening.Opening{}, ErrInternal
	}

	u.dataChanged(ctx)
	return o, nil
}

func (u *Opening) ChangeStatus(ctx context.Context, id uuid.UUID, status string) (opening.Opening, error) {
	canonical, ok := u.canonicalStatus(ctx, status)
	if !ok {
		return opening.Opening{}, ErrUnknownJobStatus
	}

	if err := u.openings.UpdateStatus(ctx, id, canonical); err != nil {
		if errors.Is(err, opening.ErrNotFound) {
			return opening.Opening{}, opening.ErrNotFound
		}
		return opening.Opening{}, ErrInternal
	}

	u.dataChanged(ctx)
	return u.Get(ctx, id)
}

func (u *Opening) List(ctx context.Context, f repository.OpeningFilter) ([]opening.Opening, error) {
	out, err := u.openings.List(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Opening) buildOpening(ctx context.Context, id uuid.UUID, in CreateOpeningInput) (opening.Opening, error) {
	reference := strings.TrimSpace(in.Reference)
	title := strings.TrimSpace(in.Title)
	if reference == "" || title == "" {
		return opening.Opening{}, ErrInvalidInput
	}
	if in.HiringCost != nil && *in.HiringCost < 0 {
		return opening.Opening{}, ErrInvalidInput
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = domain.JobStatusVacant
	}
	canonical, ok := u.canonicalStatus(ctx, status)
	if !ok {
		return opening.Opening{}, ErrUnknownJobStatus
	}

	openedAt := in.OpenedAt
	if openedAt.IsZero() {
		openedAt = u.now().UTC()
	}
	target := in.TargetHires
	if target <= 0 {
		target = 1
	}

	return opening.Opening{
		ID:          id,
		Reference:   reference,
		Title:       title,
		Department:  strings.TrimSpace(in.Department),
		Recruiter:   strings.TrimSpace(in.Recruiter),
		Status:      canonical,
		OpenedAt:    openedAt,
		StartDate:   in.StartDate,
		HiringCost:  in.HiringCost,
		TargetHires: target,
	}, nil
}

func (u *Opening) dataChanged(ctx context.Context) {
	if err := u.cache.InvalidateMetrics(ctx); err != nil {
		u.log.Warn("metrics cache invalidation failed", zap.Error(err))
	}
	u.notifier.NotifyDataUpdated("openings")
}

// canonicalStatus resolves a status case-insensitively against the
// configured job status list, falling back to the defaults when the
// list is empty.
func (u *Opening) canonicalStatus(ctx context.Context, status string) (string, bool) {
	values, err := u.preferences.ListByKind(ctx, preference.KindJobStatus)
	if err != nil || len(values) == 0 {
		values = domain.DefaultJobStatuses
	}
	for _, v := range values {
		if strings.EqualFold(v, strings.TrimSpace(status)) {
			return v, true
		}
	}
	return "", false
}
