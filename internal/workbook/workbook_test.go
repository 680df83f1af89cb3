package workbook

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"talent-track/internal/domain"
	"talent-track/internal/domain/candidate"
	"talent-track/internal/domain/opening"
	"talent-track/internal/repository"
	syncsvc "talent-track/internal/sync"
)

type memCandidateRepo struct {
	items []candidate.Candidate
}

func (m *memCandidateRepo) Create(_ context.Context, c candidate.Candidate) error {
	m.items = append(m.items, c)
	return nil
}

func (m *memCandidateRepo) GetByID(context.Context, uuid.UUID) (candidate.Candidate, error) {
	return candidate.Candidate{}, candidate.ErrNotFound
}

func (m *memCandidateRepo) Update(context.Context, candidate.Candidate) error { return nil }

func (m *memCandidateRepo) UpdateStage(context.Context, uuid.UUID, string, *time.Time) error {
	return nil
}

func (m *memCandidateRepo) SetFinalDecision(context.Context, uuid.UUID, string) error { return nil }

func (m *memCandidateRepo) List(context.Context, repository.CandidateFilter) ([]candidate.Candidate, error) {
	return m.items, nil
}

func (m *memCandidateRepo) ListAll(context.Context) ([]candidate.Candidate, error) {
	return m.items, nil
}

func (m *memCandidateRepo) UpsertImported(_ context.Context, c candidate.Candidate) (bool, error) {
	for i, existing := range m.items {
		if existing.OpeningID == c.OpeningID && existing.Name == c.Name {
			m.items[i] = c
			return false, nil
		}
	}
	m.items = append(m.items, c)
	return true, nil
}

type memOpeningRepo struct {
	items []opening.Opening
}

func (m *memOpeningRepo) Create(_ context.Context, o opening.Opening) error {
	m.items = append(m.items, o)
	return nil
}

func (m *memOpeningRepo) GetByID(context.Context, uuid.UUID) (opening.Opening, error) {
	return opening.Opening{}, opening.ErrNotFound
}

func (m *memOpeningRepo) GetByReference(_ context.Context, ref string) (opening.Opening, error) {
	for _, o := range m.items {
		if o.Reference == ref {
			return o, nil
		}
	}
	return opening.Opening{}, opening.ErrNotFound
}

func (m *memOpeningRepo) Update(context.Context, opening.Opening) error { return nil }

func (m *memOpeningRepo) UpdateStatus(context.Context, uuid.UUID, string) error { return nil }

func (m *memOpeningRepo) ExistsByID(context.Context, uuid.UUID) (bool, error) { return true, nil }

func (m *memOpeningRepo) List(context.Context, repository.OpeningFilter) ([]opening.Opening, error) {
	return m.items, nil
}

func (m *memOpeningRepo) ListAll(context.Context) ([]opening.Opening, error) {
	return m.items, nil
}

func (m *memOpeningRepo) UpsertByReference(_ context.Context, o opening.Opening) error {
	for i, existing := range m.items {
		if existing.Reference == o.Reference {
			o.ID = existing.ID
			m.items[i] = o
			return nil
		}
	}
	m.items = append(m.items, o)
	return nil
}

type memPreferenceRepo struct {
	kinds map[string][]string
}

func (m *memPreferenceRepo) ListAll(context.Context) (map[string][]string, error) {
	if m.kinds == nil {
		return map[string][]string{}, nil
	}
	return m.kinds, nil
}

func (m *memPreferenceRepo) ListByKind(_ context.Context, kind string) ([]string, error) {
	return m.kinds[kind], nil
}

func (m *memPreferenceRepo) ReplaceKind(_ context.Context, kind string, values []string) error {
	if m.kinds == nil {
		m.kinds = map[string][]string{}
	}
	m.kinds[kind] = values
	return nil
}

func TestWorkbook_ExportImportRoundTrip(t *testing.T) {
	openedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cost := 10000.0
	op := opening.Opening{
		ID:          uuid.New(),
		Reference:   "ENG-001",
		Title:       "Backend Engineer",
		Department:  "Engineering",
		Recruiter:   "Dana",
		Status:      domain.JobStatusVacant,
		OpenedAt:    openedAt,
		HiringCost:  &cost,
		TargetHires: 2,
	}
	hired := openedAt.AddDate(0, 1, 0)
	cand := candidate.Candidate{
		ID:        uuid.New(),
		Name:      "Ada Lovelace",
		OpeningID: op.ID,
		Position:  "Backend Engineer",
		Recruiter: "Dana",
		Source:    "Referral",
		Stage:     domain.StageHired,
		AppliedAt: openedAt.AddDate(0, 0, 2),
		HiredAt:   &hired,
	}

	src := syncsvc.NewService(
		&memCandidateRepo{items: []candidate.Candidate{cand}},
		&memOpeningRepo{items: []opening.Opening{op}},
		&memPreferenceRepo{kinds: map[string][]string{"stages": domain.DefaultStages}},
		nil, nil, nil,
	)

	var buf bytes.Buffer
	if err := NewService(src, nil).Export(context.Background(), &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	destCands := &memCandidateRepo{}
	destOpenings := &memOpeningRepo{}
	destPrefs := &memPreferenceRepo{}
	dest := syncsvc.NewService(destCands, destOpenings, destPrefs, nil, nil, nil)

	summary, err := NewService(dest, nil).Import(context.Background(), bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if summary.OpeningsUpserted != 1 {
		t.Fatalf("expected 1 opening upserted, got %d", summary.OpeningsUpserted)
	}
	if summary.CandidatesCreated != 1 {
		t.Fatalf("expected 1 candidate created, got %d", summary.CandidatesCreated)
	}
	if summary.SkippedRows != 0 || summary.UnresolvedOpenings != 0 {
		t.Fatalf("unexpected skips: %+v", summary)
	}

	if len(destOpenings.items) != 1 || destOpenings.items[0].Reference != "ENG-001" {
		t.Fatalf("opening not round-tripped: %+v", destOpenings.items)
	}
	got := destCands.items[0]
	if got.Name != "Ada Lovelace" || got.Stage != domain.StageHired {
		t.Fatalf("candidate not round-tripped: %+v", got)
	}
	if got.HiredAt == nil {
		t.Fatalf("hired date lost in round trip")
	}
	if len(destPrefs.kinds["stages"]) != len(domain.DefaultStages) {
		t.Fatalf("preferences lost in round trip: %v", destPrefs.kinds)
	}
}

func TestWorkbook_ImportRejectsUnrecognizableFile(t *testing.T) {
	svc := NewService(syncsvc.NewService(&memCandidateRepo{}, &memOpeningRepo{}, &memPreferenceRepo{}, nil, nil, nil), nil)
	if _, err := svc.Import(context.Background(), bytes.NewReader([]byte("not an xlsx"))); err == nil {
		t.Fatalf("expected error for non-xlsx input")
	}
}
