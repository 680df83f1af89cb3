// Package sync moves recruitment data between the database and the legacy
// spreadsheet surfaces (Excel workbook, Google Sheets).
package sync

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talent-track/internal/domain"
	"talent-track/internal/domain/candidate"
	"talent-track/internal/domain/opening"
	"talent-track/internal/domain/preference"
	"talent-track/internal/repository"
	"talent-track/internal/tabular"
	"talent-track/internal/usecase"
)

// Summary reports what an import did. Malformed rows never abort the
// import; they are counted here instead.
type Summary struct {
	OpeningsUpserted   int `json:"openings_upserted"`
	CandidatesCreated  int `json:"candidates_created"`
	CandidatesUpdated  int `json:"candidates_updated"`
	PreferenceKinds    int `json:"preference_kinds"`
	SkippedRows        int `json:"skipped_rows"`
	UnresolvedOpenings int `json:"unresolved_openings"`
}

type Service struct {
	candidates  repository.CandidateRepository
	openings    repository.OpeningRepository
	preferences repository.PreferenceRepository
	cache       usecase.MetricsCache
	notifier    usecase.Notifier
	log         *zap.Logger
}

func NewService(
	candidates repository.CandidateRepository,
	openings repository.OpeningRepository,
	preferences repository.PreferenceRepository,
	cache usecase.MetricsCache,
	notifier usecase.Notifier,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		candidates:  candidates,
		openings:    openings,
		preferences: preferences,
		cache:       cache,
		notifier:    notifier,
		log:         log,
	}
}

// Apply upserts openings first (candidates reference them), then
// preference lists, then candidates, so imported stage lists are already
// in force when candidate stages are validated. Candidates whose job
// reference does not resolve, or whose stage is not in the effective
// stage list, are counted and skipped.
func (s *Service) Apply(
	ctx context.Context,
	openingRecs []tabular.OpeningRecord,
	candidateRecs []tabular.CandidateRecord,
	prefs map[string][]string,
	skippedRows int,
) (Summary, error) {
	sum := Summary{SkippedRows: skippedRows}

	for _, rec := range openingRecs {
		o := opening.Opening{
			ID:          uuid.New(),
			Reference:   rec.Reference,
			Title:       rec.Title,
			Department:  rec.Department,
			Recruiter:   rec.Recruiter,
			Status:      defaultString(rec.Status, domain.JobStatusVacant),
			OpenedAt:    rec.OpenedAt,
			StartDate:   rec.StartDate,
			HiringCost:  rec.HiringCost,
			TargetHires: maxInt(rec.TargetHires, 1),
		}
		if err := s.openings.UpsertByReference(ctx, o); err != nil {
			return sum, err
		}
		sum.OpeningsUpserted++
	}

	for kind, values := range prefs {
		normalized, err := preference.NormalizeKind(kind)
		if err != nil {
			s.log.Warn("skipping unknown preference kind", zap.String("kind", kind))
			continue
		}
		if len(values) == 0 {
			continue
		}
		if err := s.preferences.ReplaceKind(ctx, normalized, values); err != nil {
			return sum, err
		}
		sum.PreferenceKinds++
	}

	stages := s.effectiveStages(ctx)

	// Resolve references against the post-upsert state.
	refs := map[string]uuid.UUID{}
	all, err := s.openings.ListAll(ctx)
	if err != nil {
		return sum, err
	}
	for _, o := range all {
		refs[strings.ToLower(o.Reference)] = o.ID
	}

	for _, rec := range candidateRecs {
		openingID, ok := refs[strings.ToLower(strings.TrimSpace(rec.JobReference))]
		if !ok {
			sum.UnresolvedOpenings++
			continue
		}

		stage, ok := canonicalStage(stages, defaultString(rec.Stage, stages[0]))
		if !ok {
			s.log.Warn("skipping candidate with unknown stage",
				zap.String("name", rec.Name),
				zap.String("stage", rec.Stage))
			sum.SkippedRows++
			continue
		}

		c := candidate.Candidate{
			ID:           uuid.New(),
			Name:         rec.Name,
			Email:        rec.Email,
			Phone:        rec.Phone,
			OpeningID:    openingID,
			Position:     rec.Position,
			Department:   rec.Department,
			Recruiter:    rec.Recruiter,
			Source:       rec.Source,
			Stage:        stage,
			AppliedAt:    rec.AppliedAt,
			HiredAt:      rec.HiredAt,
			HRView:       rec.HRView,
			ManagerView:  rec.ManagerView,
			DecisionView: rec.DecisionView,
			Notes:        rec.Notes,
		}
		if d := strings.TrimSpace(rec.FinalDecision); d != "" {
			c.FinalDecision = &d
		}

		created, err := s.candidates.UpsertImported(ctx, c)
		if err != nil {
			return sum, err
		}
		if created {
			sum.CandidatesCreated++
		} else {
			sum.CandidatesUpdated++
		}
	}

	if s.cache != nil {
		if err := s.cache.InvalidateMetrics(ctx); err != nil {
			s.log.Warn("metrics cache invalidation failed", zap.Error(err))
		}
	}
	if s.notifier != nil {
		s.notifier.NotifyDataUpdated("import")
	}
	return sum, nil
}

// Snapshot renders the current database state as spreadsheet records.
func (s *Service) Snapshot(ctx context.Context) ([]tabular.OpeningRecord, []tabular.CandidateRecord, map[string][]string, error) {
	openings, err := s.openings.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	cands, err := s.candidates.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	prefs, err := s.preferences.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	refByID := map[uuid.UUID]string{}
	openingRecs := make([]tabular.OpeningRecord, 0, len(openings))
	for _, o := range openings {
		refByID[o.ID] = o.Reference
		openingRecs = append(openingRecs, tabular.OpeningRecord{
			Reference:   o.Reference,
			Title:       o.Title,
			Department:  o.Department,
			Recruiter:   o.Recruiter,
			Status:      o.Status,
			OpenedAt:    o.OpenedAt,
			StartDate:   o.StartDate,
			HiringCost:  o.HiringCost,
			TargetHires: o.TargetHires,
		})
	}

	candidateRecs := make([]tabular.CandidateRecord, 0, len(cands))
	for _, c := range cands {
		rec := tabular.CandidateRecord{
			JobReference: refByID[c.OpeningID],
			Name:         c.Name,
			Email:        c.Email,
			Phone:        c.Phone,
			Position:     c.Position,
			Department:   c.Department,
			Recruiter:    c.Recruiter,
			Source:       c.Source,
			Stage:        c.Stage,
			AppliedAt:    c.AppliedAt,
			HiredAt:      c.HiredAt,
			HRView:       c.HRView,
			ManagerView:  c.ManagerView,
			DecisionView: c.DecisionView,
			Notes:        c.Notes,
		}
		if c.FinalDecision != nil {
			rec.FinalDecision = *c.FinalDecision
		}
		candidateRecs = append(candidateRecs, rec)
	}

	return openingRecs, candidateRecs, prefs, nil
}

// effectiveStages returns the configured pipeline stage list, falling back
// to the defaults when preferences are empty or unreadable.
func (s *Service) effectiveStages(ctx context.Context) []string {
	stages, err := s.preferences.ListByKind(ctx, preference.KindStage)
	if err != nil || len(stages) == 0 {
		return domain.DefaultStages
	}
	return stages
}

// canonicalStage matches case-insensitively and returns the configured
// spelling, so "HIRED" in a spreadsheet stores as "Hired".
func canonicalStage(stages []string, stage string) (string, bool) {
	if i := domain.StageIndex(stages, stage); i >= 0 {
		return stages[i], true
	}
	return "", false
}

func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func maxInt(v, min int) int {
	if v < min {
		return min
	}
	return v
}
