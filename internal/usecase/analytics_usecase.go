package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"talent-track/internal/analytics"
	"talent-track/internal/delivery/http/dto"
	"talent-track/internal/domain"
	"talent-track/internal/domain/candidate"
	"talent-track/internal/domain/opening"
	"talent-track/internal/domain/preference"
	"talent-track/internal/repository"
)

const metricsSnapshotKey = "metrics:snapshot"

type AnalyticsUsecase interface {
	Dashboard(ctx context.Context) (dto.DashboardData, error)
	Snapshot(ctx context.Context) (dto.MetricsSnapshot, error)
	TimeToHire(ctx context.Context) (dto.TimeToHireData, error)
	CostPerHire(ctx context.Context) (dto.CostPerHireData, error)
	Funnel(ctx context.Context) (dto.FunnelData, error)
	Sources(ctx context.Context) ([]dto.SourceMetricData, error)
	Recruiters(ctx context.Context) ([]dto.RecruiterData, error)
	Departments(ctx context.Context) ([]dto.DepartmentData, error)
	Trends(ctx context.Context) ([]dto.TrendPointData, error)
}

type Analytics struct {
	candidates  repository.CandidateRepository
	openings    repository.OpeningRepository
	preferences repository.PreferenceRepository
	overview    repository.OverviewRepository
	cache       MetricsCache
	log         *zap.Logger
	ttl         time.Duration
	now         func() time.Time
}

func NewAnalyticsUsecase(
	candidates repository.CandidateRepository,
	openings repository.OpeningRepository,
	preferences repository.PreferenceRepository,
	overview repository.OverviewRepository,
	cache MetricsCache,
	log *zap.Logger,
	ttl time.Duration,
) *Analytics {
	if cache == nil {
		cache = noopCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 600 * time.Second
	}
	return &Analytics{
		candidates:  candidates,
		openings:    openings,
		preferences: preferences,
		overview:    overview,
		cache:       cache,
		log:         log,
		ttl:         ttl,
		now:         time.Now,
	}
}

// Snapshot returns the cached analytics payload, recomputing it from the
// database when the cache misses.
func (u *Analytics) Snapshot(ctx context.Context) (dto.MetricsSnapshot, error) {
	var snap dto.MetricsSnapshot
	if hit, err := u.cache.GetJSON(ctx, metricsSnapshotKey, &snap); err == nil && hit {
		return snap, nil
	}

	snap, err := u.compute(ctx)
	if err != nil {
		return dto.MetricsSnapshot{}, err
	}

	if err := u.cache.SetJSON(ctx, metricsSnapshotKey, snap, u.ttl); err != nil {
		u.log.Warn("metrics snapshot cache write failed", zap.Error(err))
	}
	return snap, nil
}

func (u *Analytics) Dashboard(ctx context.Context) (dto.DashboardData, error) {
	snap, err := u.Snapshot(ctx)
	if err != nil {
		return dto.DashboardData{}, err
	}
	return dto.DashboardData{
		Overview:           snap.Overview,
		MeanTimeToHire:     snap.TimeToHire.MeanDays,
		AverageCostPerHire: snap.CostPerHire.AveragePerHire,
		OverallConversion:  snap.Funnel.OverallConversion,
		Pipeline:           snap.Pipeline,
		GeneratedAt:        snap.GeneratedAt,
	}, nil
}

func (u *Analytics) TimeToHire(ctx context.Context) (dto.TimeToHireData, error) {
	snap, err := u.Snapshot(ctx)
	return snap.TimeToHire, err
}

func (u *Analytics) CostPerHire(ctx context.Context) (dto.CostPerHireData, error) {
	snap, err := u.Snapshot(ctx)
	return snap.CostPerHire, err
}

func (u *Analytics) Funnel(ctx context.Context) (dto.FunnelData, error) {
	snap, err := u.Snapshot(ctx)
	return snap.Funnel, err
}

func (u *Analytics) Sources(ctx context.Context) ([]dto.SourceMetricData, error) {
	snap, err := u.Snapshot(ctx)
	return snap.Sources, err
}

func (u *Analytics) Recruiters(ctx context.Context) ([]dto.RecruiterData, error) {
	snap, err := u.Snapshot(ctx)
	return snap.Recruiters, err
}

func (u *Analytics) Departments(ctx context.Context) ([]dto.DepartmentData, error) {
	snap, err := u.Snapshot(ctx)
	return snap.Departments, err
}

func (u *Analytics) Trends(ctx context.Context) ([]dto.TrendPointData, error) {
	snap, err := u.Snapshot(ctx)
	return snap.Trends, err
}

func (u *Analytics) compute(ctx context.Context) (dto.MetricsSnapshot, error) {
	var (
		cands    []candidate.Candidate
		openings []opening.Opening
		stages   []string
		counts   repository.OverviewCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cands, err = u.candidates.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		openings, err = u.openings.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stages, err = u.preferences.ListByKind(gctx, preference.KindStage)
		if err != nil || len(stages) == 0 {
			stages = domain.DefaultStages
		}
		return nil
	})
	g.Go(func() error {
		var err error
		counts, err = u.overview.GetCounts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Error("analytics snapshot load failed", zap.Error(err))
		return dto.MetricsSnapshot{}, ErrInternal
	}

	tth := analytics.ComputeTimeToHire(cands)
	cph := analytics.ComputeCostPerHire(openings, cands)
	funnel := analytics.ComputeFunnel(cands, stages)

	return dto.MetricsSnapshot{
		Overview: dto.OverviewData{
			TotalCandidates:   counts.TotalCandidates,
			TotalHired:        counts.TotalHired,
			OpenPositions:     counts.OpenPositions,
			FilledPositions:   counts.FilledPositions,
			ApplicationsMonth: counts.ApplicationsMonth,
			HiresMonth:        counts.HiresMonth,
		},
		TimeToHire:  timeToHireData(tth),
		CostPerHire: costPerHireData(cph),
		Funnel:      funnelData(funnel),
		Sources:     sourceData(analytics.SourceMetrics(cands)),
		Recruiters:  recruiterData(analytics.RecruiterMetrics(cands)),
		Departments: departmentData(analytics.DepartmentMetrics(openings, cands)),
		Trends:      trendData(analytics.MonthlyTrends(cands)),
		Pipeline:    stageCountData(analytics.PipelineDistribution(cands, stages)),
		GeneratedAt: u.now().UTC(),
	}, nil
}

func timeToHireData(v analytics.TimeToHire) dto.TimeToHireData {
	return dto.TimeToHireData{
		Hires:        v.Hires,
		MeanDays:     v.MeanDays,
		MedianDays:   v.MedianDays,
		ByPosition:   v.ByPosition,
		ByDepartment: v.ByDepartment,
	}
}

func costPerHireData(v analytics.CostPerHire) dto.CostPerHireData {
	per := make([]dto.OpeningCostData, 0, len(v.PerOpening))
	for _, o := range v.PerOpening {
		per = append(per, dto.OpeningCostData{
			Reference:   o.Reference,
			Title:       o.Title,
			Department:  o.Department,
			HiringCost:  o.HiringCost,
			Hires:       o.Hires,
			CostPerHire: o.CostPerHire,
		})
	}
	return dto.CostPerHireData{
		TotalCost:      v.TotalCost,
		TotalHires:     v.TotalHires,
		AveragePerHire: v.AveragePerHire,
		PerOpening:     per,
	}
}

func funnelData(v analytics.Funnel) dto.FunnelData {
	stages := make([]dto.FunnelStageData, 0, len(v.Stages))
	for _, s := range v.Stages {
		stages = append(stages, dto.FunnelStageData{
			Stage:              s.Stage,
			Reached:            s.Reached,
			OfTotal:            s.OfTotal,
			ConversionFromPrev: s.ConversionFromPrev,
		})
	}
	return dto.FunnelData{Total: v.Total, Stages: stages, OverallConversion: v.OverallConversion}
}

func sourceData(in []analytics.SourceMetric) []dto.SourceMetricData {
	out := make([]dto.SourceMetricData, 0, len(in))
	for _, m := range in {
		out = append(out, dto.SourceMetricData{Source: m.Source, Total: m.Total, Hired: m.Hired, HireRate: m.HireRate})
	}
	return out
}

func recruiterData(in []analytics.RecruiterMetric) []dto.RecruiterData {
	out := make([]dto.RecruiterData, 0, len(in))
	for _, m := range in {
		out = append(out, dto.RecruiterData{
			Recruiter: m.Recruiter,
			Total:     m.Total,
			Hired:     m.Hired,
			InProcess: m.InProcess,
			HireRate:  m.HireRate,
		})
	}
	return out
}

func departmentData(in []analytics.DepartmentMetric) []dto.DepartmentData {
	out := make([]dto.DepartmentData, 0, len(in))
	for _, m := range in {
		out = append(out, dto.DepartmentData{
			Department:    m.Department,
			OpenPositions: m.OpenPositions,
			Candidates:    m.Candidates,
			Hired:         m.Hired,
		})
	}
	return out
}

func trendData(in []analytics.TrendPoint) []dto.TrendPointData {
	out := make([]dto.TrendPointData, 0, len(in))
	for _, p := range in {
		out = append(out, dto.TrendPointData{Period: p.Period, Applications: p.Applications, Hires: p.Hires})
	}
	return out
}

func stageCountData(in []analytics.StageCount) []dto.StageCountData {
	out := make([]dto.StageCountData, 0, len(in))
	for _, s := range in {
		out = append(out, dto.StageCountData{Stage: s.Stage, Count: s.Count, Share: s.Share})
	}
	return out
}
