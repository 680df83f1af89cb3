package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"talent-track/internal/domain/preference"
)

func TestPreferenceUsecase_ReplaceKind_CleansValues(t *testing.T) {
	repo := &mockPreferenceRepo{}
	notifier := &mockNotifier{}
	uc := NewPreferenceUsecase(repo, nil, notifier, nil)

	got, err := uc.ReplaceKind(context.Background(), "Sources", []string{
		" LinkedIn ", "Referral", "linkedin", "", "Job Portals",
	})
	if err != nil {
		t.Fatalf("ReplaceKind: %v", err)
	}

	want := []string{"LinkedIn", "Referral", "Job Portals"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("values = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(repo.kinds[preference.KindSource], want) {
		t.Fatalf("stored = %v, want %v", repo.kinds[preference.KindSource], want)
	}
	if len(notifier.scopes) != 1 || notifier.scopes[0] != "preferences" {
		t.Fatalf("scopes = %v", notifier.scopes)
	}
}

func TestPreferenceUsecase_ReplaceKind_UnknownKind(t *testing.T) {
	uc := NewPreferenceUsecase(&mockPreferenceRepo{}, nil, nil, nil)

	if _, err := uc.ReplaceKind(context.Background(), "colors", []string{"Blue"}); !errors.Is(err, preference.ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
}

func TestPreferenceUsecase_ReplaceKind_AllBlank(t *testing.T) {
	uc := NewPreferenceUsecase(&mockPreferenceRepo{}, nil, nil, nil)

	if _, err := uc.ReplaceKind(context.Background(), "stages", []string{" ", ""}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestPreferenceUsecase_GetKind_Normalizes(t *testing.T) {
	repo := &mockPreferenceRepo{kinds: map[string][]string{
		preference.KindStage: {"Screening", "Hired"},
	}}
	uc := NewPreferenceUsecase(repo, nil, nil, nil)

	got, err := uc.GetKind(context.Background(), " STAGES ")
	if err != nil {
		t.Fatalf("GetKind: %v", err)
	}
	if len(got) != 2 || got[0] != "Screening" {
		t.Fatalf("values = %v", got)
	}
}
