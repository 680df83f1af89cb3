package usecase

import (
	"context"
	"errors"
	"testing"

	"talent-track/internal/domain"
	"talent-track/internal/domain/opening"
	"talent-track/internal/domain/preference"
)

func TestOpeningUsecase_Create_AppliesDefaults(t *testing.T) {
	openings := newMockOpeningRepo()
	notifier := &mockNotifier{}
	uc := NewOpeningUsecase(openings, &mockPreferenceRepo{}, nil, notifier, nil)

	o, err := uc.Create(context.Background(), CreateOpeningInput{
		Reference: " ENG-001 ",
		Title:     "Backend Engineer",
		Status:    "vacant",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if o.Reference != "ENG-001" {
		t.Fatalf("reference = %q, want trimmed", o.Reference)
	}
	if o.Status != domain.JobStatusVacant {
		t.Fatalf("status = %q, want canonical Vacant", o.Status)
	}
	if o.TargetHires != 1 {
		t.Fatalf("target_hires = %d, want 1", o.TargetHires)
	}
	if o.OpenedAt.IsZero() {
		t.Fatal("opened_at not defaulted")
	}
	if len(notifier.scopes) != 1 || notifier.scopes[0] != "openings" {
		t.Fatalf("scopes = %v", notifier.scopes)
	}
}

func TestOpeningUsecase_Create_UnknownStatus(t *testing.T) {
	uc := NewOpeningUsecase(newMockOpeningRepo(), &mockPreferenceRepo{}, nil, nil, nil)

	_, err := uc.Create(context.Background(), CreateOpeningInput{
		Reference: "ENG-001",
		Title:     "Backend Engineer",
		Status:    "Archived",
	})
	if !errors.Is(err, ErrUnknownJobStatus) {
		t.Fatalf("err = %v, want ErrUnknownJobStatus", err)
	}
}

func TestOpeningUsecase_Create_ConfiguredStatusList(t *testing.T) {
	prefs := &mockPreferenceRepo{kinds: map[string][]string{
		preference.KindJobStatus: {"Draft", "Vacant", "Archived"},
	}}
	uc := NewOpeningUsecase(newMockOpeningRepo(), prefs, nil, nil, nil)

	o, err := uc.Create(context.Background(), CreateOpeningInput{
		Reference: "ENG-001",
		Title:     "Backend Engineer",
		Status:    "archived",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if o.Status != "Archived" {
		t.Fatalf("status = %q, want Archived from the configured list", o.Status)
	}

	_, err = uc.Create(context.Background(), CreateOpeningInput{
		Reference: "ENG-002",
		Title:     "Designer",
		Status:    "Suspended",
	})
	if !errors.Is(err, ErrUnknownJobStatus) {
		t.Fatalf("err = %v, want ErrUnknownJobStatus for a status outside the configured list", err)
	}
}

func TestOpeningUsecase_Create_NegativeCost(t *testing.T) {
	uc := NewOpeningUsecase(newMockOpeningRepo(), &mockPreferenceRepo{}, nil, nil, nil)

	cost := -100.0
	_, err := uc.Create(context.Background(), CreateOpeningInput{
		Reference:  "ENG-001",
		Title:      "Backend Engineer",
		HiringCost: &cost,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestOpeningUsecase_ChangeStatus_Canonicalizes(t *testing.T) {
	openings := newMockOpeningRepo()
	op := vacantOpening(1)
	openings.byID[op.ID] = op

	uc := NewOpeningUsecase(openings, &mockPreferenceRepo{}, nil, nil, nil)

	got, err := uc.ChangeStatus(context.Background(), op.ID, "suspended")
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if got.Status != "Suspended" {
		t.Fatalf("status = %q, want Suspended", got.Status)
	}
}

func TestOpeningUsecase_ChangeStatus_NotFound(t *testing.T) {
	uc := NewOpeningUsecase(newMockOpeningRepo(), &mockPreferenceRepo{}, nil, nil, nil)

	_, err := uc.ChangeStatus(context.Background(), vacantOpening(1).ID, "Filled")
	if !errors.Is(err, opening.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
