package sync

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"talent-track/internal/domain/candidate"
	"talent-track/internal/domain/opening"
	"talent-track/internal/repository"
	"talent-track/internal/tabular"
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

func importedOpening() tabular.OpeningRecord {
	return tabular.OpeningRecord{
		Reference: "ENG-001",
		Title:     "Backend Engineer",
		OpenedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestApply_CanonicalizesStageSpelling(t *testing.T) {
	cands := &memCandidateRepo{}
	svc := NewService(cands, &memOpeningRepo{}, &memPreferenceRepo{}, nil, nil, nil)

	hired := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	summary, err := svc.Apply(context.Background(),
		[]tabular.OpeningRecord{importedOpening()},
		[]tabular.CandidateRecord{{
			JobReference: "ENG-001",
			Name:         "Ada Lovelace",
			Stage:        "HIRED",
			AppliedAt:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			HiredAt:      &hired,
		}},
		nil, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if summary.CandidatesCreated != 1 || summary.SkippedRows != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	got := cands.items[0]
	if got.Stage != "Hired" {
		t.Fatalf("stage = %q, want canonical Hired", got.Stage)
	}
	if !got.Hired() {
		t.Fatal("imported hire invisible to Hired()")
	}
}

func TestApply_UnknownStageSkipped(t *testing.T) {
	cands := &memCandidateRepo{}
	svc := NewService(cands, &memOpeningRepo{}, &memPreferenceRepo{}, nil, nil, nil)

	summary, err := svc.Apply(context.Background(),
		[]tabular.OpeningRecord{importedOpening()},
		[]tabular.CandidateRecord{{
			JobReference: "ENG-001",
			Name:         "Grace Hopper",
			Stage:        "Limbo",
			AppliedAt:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		}},
		nil, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if summary.SkippedRows != 1 || summary.CandidatesCreated != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(cands.items) != 0 {
		t.Fatalf("unknown stage stored: %+v", cands.items)
	}
}

func TestApply_ImportedStageListValidatesCandidates(t *testing.T) {
	cands := &memCandidateRepo{}
	svc := NewService(cands, &memOpeningRepo{}, &memPreferenceRepo{}, nil, nil, nil)

	summary, err := svc.Apply(context.Background(),
		[]tabular.OpeningRecord{importedOpening()},
		[]tabular.CandidateRecord{{
			JobReference: "ENG-001",
			Name:         "Ada Lovelace",
			Stage:        "onsite",
			AppliedAt:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		}},
		map[string][]string{"stages": {"Screening", "Onsite", "Hired"}}, 0)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if summary.PreferenceKinds != 1 || summary.CandidatesCreated != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if got := cands.items[0].Stage; got != "Onsite" {
		t.Fatalf("stage = %q, want Onsite from the imported list", got)
	}
}
