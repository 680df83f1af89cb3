package analytics

import (
	"testing"

	"talent-track/internal/domain"
	"talent-track/internal/domain/candidate"
)

func atStage(stage string) candidate.Candidate {
	return candidate.Candidate{Stage: stage}
}

func TestComputeFunnel_Example(t *testing.T) {
	stages := []string{"Screening", "Interview", "Offer"}

	cands := make([]candidate.Candidate, 0, 10)
	for i := 0; i < 6; i++ {
		cands = append(cands, atStage("Screening"))
	}
	for i := 0; i < 4; i++ {
		cands = append(cands, atStage("Interview"))
	}

	f := ComputeFunnel(cands, stages)
	if f.Total != 10 {
		t.Fatalf("expected total 10, got %d", f.Total)
	}
	if f.Stages[0].Reached != 10 {
		t.Fatalf("expected 10 reaching Screening, got %d", f.Stages[0].Reached)
	}
	if f.Stages[1].Reached != 4 {
		t.Fatalf("expected 4 reaching Interview, got %d", f.Stages[1].Reached)
	}
	conv := f.Stages[1].ConversionFromPrev
	if conv == nil || *conv != 0.4 {
		t.Fatalf("expected conversion 0.4, got %v", conv)
	}
}

func TestComputeFunnel_RatesWithinUnitInterval(t *testing.T) {
	stages := domain.DefaultStages
	cands := []candidate.Candidate{
		atStage("Received Application"),
		atStage("Sent to Manager"),
		atStage("Interviews"),
		atStage("Tests"),
		atStage("Job Offer"),
		atStage("Hired"),
		atStage("Hired"),
	}

	f := ComputeFunnel(cands, stages)
	for _, s := range f.Stages {
		if s.ConversionFromPrev == nil {
			continue
		}
		if *s.ConversionFromPrev < 0 || *s.ConversionFromPrev > 1 {
			t.Fatalf("conversion out of range at %s: %v", s.Stage, *s.ConversionFromPrev)
		}
	}
}

func TestComputeFunnel_ZeroDenominator(t *testing.T) {
	stages := []string{"Screening", "Interview"}

	f := ComputeFunnel(nil, stages)
	if f.Total != 0 {
		t.Fatalf("expected empty funnel total 0, got %d", f.Total)
	}
	for _, s := range f.Stages {
		if s.ConversionFromPrev != nil || s.OfTotal != nil {
			t.Fatalf("expected nil ratios on empty input at %s", s.Stage)
		}
	}
	if f.OverallConversion != nil {
		t.Fatalf("expected nil overall conversion on empty input")
	}
}

func TestComputeFunnel_UnknownStageCountsInTotalOnly(t *testing.T) {
	stages := []string{"Screening", "Interview"}
	f := ComputeFunnel([]candidate.Candidate{atStage("Screening"), atStage("Mystery")}, stages)
	if f.Total != 2 {
		t.Fatalf("expected total 2, got %d", f.Total)
	}
	if f.Stages[0].Reached != 1 {
		t.Fatalf("unknown stage should not reach Screening, got %d", f.Stages[0].Reached)
	}
}

func TestComputeFunnel_CaseInsensitiveStageMatch(t *testing.T) {
	stages := []string{"Screening", "Interview"}
	f := ComputeFunnel([]candidate.Candidate{atStage("screening"), atStage("INTERVIEW")}, stages)
	if f.Stages[0].Reached != 2 || f.Stages[1].Reached != 1 {
		t.Fatalf("case-insensitive match failed: %+v", f.Stages)
	}
}
