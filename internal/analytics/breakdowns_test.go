package analytics

import (
	"testing"

	"talent-track/internal/domain/candidate"
	"talent-track/internal/domain/opening"

	"github.com/google/uuid"
)

func TestSourceMetrics(t *testing.T) {
	oid := uuid.New()
	linked1 := hired(oid, date(2024, 1, 1), date(2024, 2, 1))
	linked1.Source = "LinkedIn"
	linked2 := candidate.Candidate{OpeningID: oid, Stage: "Interviews", Source: "LinkedIn", AppliedAt: date(2024, 1, 2)}
	referral := candidate.Candidate{OpeningID: oid, Stage: "Tests", Source: "Referral", AppliedAt: date(2024, 1, 3)}
	noSource := candidate.Candidate{OpeningID: oid, Stage: "Tests", AppliedAt: date(2024, 1, 4)}

	got := SourceMetrics([]candidate.Candidate{linked1, linked2, referral, noSource})
	if len(got) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(got))
	}
	if got[0].Source != "LinkedIn" {
		t.Fatalf("expected LinkedIn first, got %s", got[0].Source)
	}
	if got[0].Total != 2 || got[0].Hired != 1 {
		t.Fatalf("unexpected LinkedIn counts: %+v", got[0])
	}
	if got[0].HireRate == nil || *got[0].HireRate != 0.5 {
		t.Fatalf("expected hire rate 0.5, got %v", got[0].HireRate)
	}
}

func TestRecruiterMetrics_InProcessExcludesTerminalDecisions(t *testing.T) {
	oid := uuid.New()
	refused := "Candidate Refusal"
	pending := "Candidate in Process"

	a := hired(oid, date(2024, 1, 1), date(2024, 1, 20))
	a.Recruiter = "Sarah Johnson"
	b := candidate.Candidate{OpeningID: oid, Recruiter: "Sarah Johnson", Stage: "Interviews", FinalDecision: &pending, AppliedAt: date(2024, 2, 1)}
	c := candidate.Candidate{OpeningID: oid, Recruiter: "Sarah Johnson", Stage: "Job Offer", FinalDecision: &refused, AppliedAt: date(2024, 2, 2)}

	got := RecruiterMetrics([]candidate.Candidate{a, b, c})
	if len(got) != 1 {
		t.Fatalf("expected 1 recruiter, got %d", len(got))
	}
	m := got[0]
	if m.Total != 3 || m.Hired != 1 || m.InProcess != 1 {
		t.Fatalf("unexpected counts: %+v", m)
	}
}

func TestDepartmentMetrics_AttributesThroughOpening(t *testing.T) {
	salesID := uuid.New()
	itID := uuid.New()
	openings := []opening.Opening{
		{ID: salesID, Department: "Sales", Status: "Vacant"},
		{ID: itID, Department: "IT", Status: "Filled"},
	}

	c1 := hired(itID, date(2024, 1, 1), date(2024, 2, 1))
	c1.Department = "Sales" // stale row value; opening wins
	c2 := candidate.Candidate{OpeningID: salesID, Stage: "Tests", AppliedAt: date(2024, 1, 5)}

	got := DepartmentMetrics(openings, []candidate.Candidate{c1, c2})
	if len(got) != 2 {
		t.Fatalf("expected 2 departments, got %d", len(got))
	}
	if got[0].Department != "Sales" || got[0].OpenPositions != 1 {
		t.Fatalf("expected Sales first with 1 open position, got %+v", got[0])
	}
	for _, m := range got {
		if m.Department == "IT" && (m.Candidates != 1 || m.Hired != 1) {
			t.Fatalf("hire not attributed to IT: %+v", m)
		}
		if m.Department == "Sales" && m.Candidates != 1 {
			t.Fatalf("candidate not attributed to Sales: %+v", m)
		}
	}
}

func TestMonthlyTrends(t *testing.T) {
	oid := uuid.New()
	h := hired(oid, date(2024, 1, 15), date(2024, 2, 10))
	waiting := candidate.Candidate{OpeningID: oid, Stage: "Interviews", AppliedAt: date(2024, 1, 20)}

	got := MonthlyTrends([]candidate.Candidate{h, waiting})
	if len(got) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(got))
	}
	if got[0].Period != "2024-01" || got[0].Applications != 2 || got[0].Hires != 0 {
		t.Fatalf("unexpected January bucket: %+v", got[0])
	}
	if got[1].Period != "2024-02" || got[1].Applications != 0 || got[1].Hires != 1 {
		t.Fatalf("unexpected February bucket: %+v", got[1])
	}
}

func TestPipelineDistribution(t *testing.T) {
	stages := []string{"Screening", "Interview"}
	cands := []candidate.Candidate{
		{Stage: "Screening", AppliedAt: date(2024, 1, 1)},
		{Stage: "Screening", AppliedAt: date(2024, 1, 2)},
		{Stage: "Interview", AppliedAt: date(2024, 1, 3)},
		{Stage: "Archived", AppliedAt: date(2024, 1, 4)},
	}

	got := PipelineDistribution(cands, stages)
	if len(got) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(got))
	}
	if got[0].Stage != "Screening" || got[0].Count != 2 {
		t.Fatalf("unexpected first stage: %+v", got[0])
	}
	if got[0].Share == nil || *got[0].Share != 0.5 {
		t.Fatalf("expected share 0.5, got %v", got[0].Share)
	}
	if got[2].Stage != "Archived" {
		t.Fatalf("expected unknown stage appended last, got %+v", got[2])
	}
}
