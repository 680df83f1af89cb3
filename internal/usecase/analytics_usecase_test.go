package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"talent-track/internal/delivery/http/dto"
	"talent-track/internal/domain"
	"talent-track/internal/domain/candidate"
	"talent-track/internal/domain/opening"
	"talent-track/internal/repository"
)

type mockMetricsCache struct {
	store       map[string][]byte
	invalidated int
}

func newMockMetricsCache() *mockMetricsCache {
	return &mockMetricsCache{store: map[string][]byte{}}
}

func (m *mockMetricsCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *mockMetricsCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = b
	return nil
}

func (m *mockMetricsCache) InvalidateMetrics(context.Context) error {
	m.invalidated++
	for k := range m.store {
		delete(m.store, k)
	}
	return nil
}

func (m *mockMetricsCache) SetIfNotExists(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	if _, ok := m.store[key]; ok {
		return false, nil
	}
	m.store[key] = []byte(value)
	return true, nil
}

type mockOverviewRepo struct {
	counts repository.OverviewCounts
	err    error
}

func (m *mockOverviewRepo) GetCounts(context.Context) (repository.OverviewCounts, error) {
	return m.counts, m.err
}

func hiredCandidate(openingID uuid.UUID, applied, hired time.Time) candidate.Candidate {
	return candidate.Candidate{
		ID:        uuid.New(),
		Name:      "Hired Candidate",
		OpeningID: openingID,
		Source:    "Referral",
		Recruiter: "Dana",
		Stage:     domain.StageHired,
		AppliedAt: applied,
		HiredAt:   &hired,
	}
}

func TestAnalyticsUsecase_Dashboard_ComputesHeadlineKPIs(t *testing.T) {
	op := vacantOpening(2)
	cost := 10000.0
	op.HiringCost = &cost

	openings := newMockOpeningRepo()
	openings.byID[op.ID] = op
	openings.all = []opening.Opening{op}

	applied := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	hired := applied.AddDate(0, 0, 30)

	cands := newMockCandidateRepo()
	cands.all = []candidate.Candidate{
		hiredCandidate(op.ID, applied, hired),
		hiredCandidate(op.ID, applied, hired),
		{ID: uuid.New(), Name: "In Process", OpeningID: op.ID, Stage: "Interviews", AppliedAt: applied},
	}

	uc := NewAnalyticsUsecase(
		cands,
		openings,
		&mockPreferenceRepo{},
		&mockOverviewRepo{counts: repository.OverviewCounts{TotalCandidates: 3, TotalHired: 2}},
		newMockMetricsCache(),
		nil,
		time.Minute,
	)

	data, err := uc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if data.MeanTimeToHire == nil || *data.MeanTimeToHire != 30 {
		t.Fatalf("expected mean time-to-hire 30 days, got %v", data.MeanTimeToHire)
	}
	if data.AverageCostPerHire == nil || *data.AverageCostPerHire != 5000 {
		t.Fatalf("expected $5000 per hire, got %v", data.AverageCostPerHire)
	}
	if data.Overview.TotalCandidates != 3 {
		t.Fatalf("expected overview passthrough, got %+v", data.Overview)
	}
}

func TestAnalyticsUsecase_Snapshot_ServedFromCache(t *testing.T) {
	cache := newMockMetricsCache()
	want := dto.MetricsSnapshot{
		Overview:    dto.OverviewData{TotalCandidates: 42},
		GeneratedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := cache.SetJSON(context.Background(), "metrics:snapshot", want, time.Minute); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	// Repos would fail if touched; a cache hit must not reach them.
	uc := NewAnalyticsUsecase(
		&mockCandidateRepo{err: ErrInternal},
		&mockOpeningRepo{err: ErrInternal},
		&mockPreferenceRepo{err: ErrInternal},
		&mockOverviewRepo{err: ErrInternal},
		cache,
		nil,
		time.Minute,
	)

	snap, err := uc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if snap.Overview.TotalCandidates != 42 {
		t.Fatalf("expected cached snapshot, got %+v", snap.Overview)
	}
}

func TestAnalyticsUsecase_Snapshot_WritesCacheAfterCompute(t *testing.T) {
	cache := newMockMetricsCache()
	uc := NewAnalyticsUsecase(
		newMockCandidateRepo(),
		newMockOpeningRepo(),
		&mockPreferenceRepo{},
		&mockOverviewRepo{},
		cache,
		nil,
		time.Minute,
	)

	if _, err := uc.Snapshot(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := cache.store["metrics:snapshot"]; !ok {
		t.Fatalf("expected snapshot stored in cache")
	}
}
