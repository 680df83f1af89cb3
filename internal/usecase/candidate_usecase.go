package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talent-track/internal/domain"
	"talent-track/internal/domain/candidate"
	"talent-track/internal/domain/opening"
	"talent-track/internal/domain/preference"
	"talent-track/internal/repository"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownStage      = errors.New("unknown pipeline stage")
	ErrUnknownDecision   = errors.New("unknown final decision")
	ErrInvalidTimestamps = errors.New("hired_at precedes applied_at")
	ErrOpeningNotFound   = errors.New("job opening not found")
)

type CreateCandidateInput struct {
	Name      string
	Email     string
	Phone     string
	OpeningID uuid.UUID
	Position  string
	Recruiter string
	Source    string
	Stage     string
	AppliedAt time.Time
	Notes     string
}

type UpdateCandidateInput struct {
	Name         string
	Email        string
	Phone        string
	Position     string
	Recruiter    string
	Source       string
	AppliedAt    time.Time
	HiredAt      *time.Time
	HRView       string
	ManagerView  string
	DecisionView string
	Notes        string
}

type CandidateUsecase interface {
	Create(ctx context.Context, in CreateCandidateInput) (candidate.Candidate, error)
	Get(ctx context.Context, id uuid.UUID) (candidate.Candidate, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateCandidateInput) (candidate.Candidate, error)
	ChangeStage(ctx context.Context, id uuid.UUID, stage string, hiredAt *time.Time) (candidate.Candidate, error)
	Withdraw(ctx context.Context, id uuid.UUID, decision string) error
	List(ctx context.Context, f repository.CandidateFilter) ([]candidate.Candidate, error)
}

type Candidate struct {
	candidates  repository.CandidateRepository
	openings    repository.OpeningRepository
	preferences repository.PreferenceRepository
	cache       MetricsCache
	notifier    Notifier
	log         *zap.Logger
	now         func() time.Time
}

func NewCandidateUsecase(
	candidates repository.CandidateRepository,
	openings repository.OpeningRepository,
	preferences repository.PreferenceRepository,
	cache MetricsCache,
	notifier Notifier,
	log *zap.Logger,
) *Candidate {
	if cache == nil {
		cache = noopCache{}
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Candidate{
		candidates:  candidates,
		openings:    openings,
		preferences: preferences,
		cache:       cache,
		notifier:    notifier,
		log:         log,
		now:         time.Now,
	}
}

func (u *Candidate) Create(ctx context.Context, in CreateCandidateInput) (candidate.Candidate, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.OpeningID == uuid.Nil {
		return candidate.Candidate{}, ErrInvalidInput
	}

	op, err := u.openings.GetByID(ctx, in.OpeningID)
	if err != nil {
		if errors.Is(err, opening.ErrNotFound) {
			return candidate.Candidate{}, ErrOpeningNotFound
		}
		return candidate.Candidate{}, ErrInternal
	}

	stage := strings.TrimSpace(in.Stage)
	if stage == "" {
		stage = domain.DefaultStages[0]
	}
	stage, err = u.canonicalStage(ctx, stage)
	if err != nil {
		return candidate.Candidate{}, err
	}

	appliedAt := in.AppliedAt
	if appliedAt.IsZero() {
		appliedAt = u.now().UTC()
	}

	c := candidate.Candidate{
		ID:         uuid.New(),
		Name:       name,
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		OpeningID:  op.ID,
		Position:   firstNonEmpty(strings.TrimSpace(in.Position), op.Title),
		Department: op.Department,
		Recruiter:  firstNonEmpty(strings.TrimSpace(in.Recruiter), op.Recruiter),
		Source:     strings.TrimSpace(in.Source),
		Stage:      stage,
		AppliedAt:  appliedAt,
		Notes:      in.Notes,
	}
	if stage == domain.StageHired {
		now := u.now().UTC()
		c.HiredAt = &now
	}

	if err := u.candidates.Create(ctx, c); err != nil {
		return candidate.Candidate{}, ErrInternal
	}

	u.dataChanged(ctx, "candidates")
	return c, nil
}

func (u *Candidate) Get(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	c, err := u.candidates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return candidate.Candidate{}, candidate.ErrNotFound
		}
		return candidate.Candidate{}, ErrInternal
	}
	return c, nil
}

func (u *Candidate) Update(ctx context.Context, id uuid.UUID, in UpdateCandidateInput) (candidate.Candidate, error) {
	c, err := u.Get(ctx, id)
	if err != nil {
		return candidate.Candidate{}, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		c.Name = name
	}
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)
	if p := strings.TrimSpace(in.Position); p != "" {
		c.Position = p
	}
	if r := strings.TrimSpace(in.Recruiter); r != "" {
		c.Recruiter = r
	}
	if s := strings.TrimSpace(in.Source); s != "" {
		c.Source = s
	}
	if !in.AppliedAt.IsZero() {
		c.AppliedAt = in.AppliedAt
	}
	if in.HiredAt != nil {
		c.HiredAt = in.HiredAt
	}
	c.HRView = in.HRView
	c.ManagerView = in.ManagerView
	c.DecisionView = in.DecisionView
	c.Notes = in.Notes

	if c.HiredAt != nil && c.HiredAt.Before(c.AppliedAt) {
		return candidate.Candidate{}, ErrInvalidTimestamps
	}

	if err := u.candidates.Update(ctx, c); err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return candidate.Candidate{}, candidate.ErrNotFound
		}
		return candidate.Candidate{}, ErrInternal
	}

	u.dataChanged(ctx, "candidates")
	return c, nil
}

// ChangeStage moves a candidate through the pipeline. Reaching the hired
// stage stamps hired_at, records the hired decision, and fills the opening
// once its hire target is met.
func (u *Candidate) ChangeStage(ctx context.Context, id uuid.UUID, stage string, hiredAt *time.Time) (candidate.Candidate, error) {
	stage, err := u.canonicalStage(ctx, stage)
	if err != nil {
		return candidate.Candidate{}, err
	}

	c, err := u.Get(ctx, id)
	if err != nil {
		return candidate.Candidate{}, err
	}

	var stamp *time.Time
	if stage == domain.StageHired {
		t := u.now().UTC()
		if hiredAt != nil {
			t = *hiredAt
		}
		if t.Before(c.AppliedAt) {
			return candidate.Candidate{}, ErrInvalidTimestamps
		}
		stamp = &t
	}

	if err := u.candidates.UpdateStage(ctx, id, stage, stamp); err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return candidate.Candidate{}, candidate.ErrNotFound
		}
		return candidate.Candidate{}, ErrInternal
	}
	c.Stage = stage
	if stamp != nil {
		c.HiredAt = stamp
	}

	if stage == domain.StageHired {
		if err := u.candidates.SetFinalDecision(ctx, id, domain.DecisionHired); err == nil {
			d := domain.DecisionHired
			c.FinalDecision = &d
		}
		u.maybeFillOpening(ctx, c.OpeningID)
	}

	u.dataChanged(ctx, "candidates")
	return c, nil
}

// Withdraw records a terminal decision instead of deleting the row, so the
// candidate stays visible to the analytics history.
func (u *Candidate) Withdraw(ctx context.Context, id uuid.UUID, decision string) error {
	decision = strings.TrimSpace(decision)
	if decision == "" {
		decision = domain.DecisionRefusal
	}
	canonical, err := u.canonicalValue(ctx, preference.KindDecision, domain.DefaultFinalDecisions, decision)
	if err != nil {
		return ErrUnknownDecision
	}

	if err := u.candidates.SetFinalDecision(ctx, id, canonical); err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return candidate.ErrNotFound
		}
		return ErrInternal
	}

	u.dataChanged(ctx, "candidates")
	return nil
}

func (u *Candidate) List(ctx context.Context, f repository.CandidateFilter) ([]candidate.Candidate, error) {
	out, err := u.candidates.List(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Candidate) canonicalStage(ctx context.Context, stage string) (string, error) {
	canonical, err := u.canonicalValue(ctx, preference.KindStage, domain.DefaultStages, stage)
	if err != nil {
		return "", ErrUnknownStage
	}
	return canonical, nil
}

// canonicalValue resolves a value case-insensitively against the configured
// preference list, falling back to the defaults when the list is empty.
func (u *Candidate) canonicalValue(ctx context.Context, kind string, defaults []string, value string) (string, error) {
	values, err := u.preferences.ListByKind(ctx, kind)
	if err != nil || len(values) == 0 {
		values = defaults
	}
	for _, v := range values {
		if strings.EqualFold(v, strings.TrimSpace(value)) {
			return v, nil
		}
	}
	return "", ErrInvalidInput
}

func (u *Candidate) maybeFillOpening(ctx context.Context, openingID uuid.UUID) {
	op, err := u.openings.GetByID(ctx, openingID)
	if err != nil || !op.Open() {
		return
	}

	hired, err := u.candidates.List(ctx, repository.CandidateFilter{
		Stage:     domain.StageHired,
		OpeningID: openingID,
		Limit:     200,
	})
	if err != nil {
		return
	}
	if len(hired) >= op.TargetHires {
		if err := u.openings.UpdateStatus(ctx, openingID, domain.JobStatusFilled); err != nil {
			u.log.Warn("auto-fill opening failed",
				zap.String("opening_id", openingID.String()),
				zap.Error(err))
		}
	}
}

func (u *Candidate) dataChanged(ctx context.Context, scope string) {
	if err := u.cache.InvalidateMetrics(ctx); err != nil {
		u.log.Warn("metrics cache invalidation failed", zap.Error(err))
	}
	u.notifier.NotifyDataUpdated(scope)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
