package tabular

import (
	"testing"
	"time"
)

func TestFindHeaderRow_SkipsTitleRows(t *testing.T) {
	rows := [][]string{
		{"Recruitment Tracker 2026"},
		{""},
		{"", "CANDIDATE NAME", "RECRUITER"},
	}
	if got := FindHeaderRow(rows, AnchorCandidates); got != 2 {
		t.Fatalf("expected header at row 2, got %d", got)
	}
}

func TestFindHeaderRow_NotFound(t *testing.T) {
	rows := [][]string{{"nothing"}, {"here"}}
	if got := FindHeaderRow(rows, AnchorOpenings); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestParseCandidates_LegacyHeaders(t *testing.T) {
	rows := [][]string{
		{"Some banner"},
		{"JOB ID", "CANDIDATE NAME", "JOB APPLIED FOR", "RECRUITMENT PHASE\n(Pipeline)", "APPLIED DATE", "COMMENTS"},
		{"ENG-001", "Ada Lovelace", "Backend Engineer", "Interviews", "2026-01-15", "strong"},
		{"ENG-001", "", "no name but not blank", "Interviews", "2026-01-16", ""},
		{"ENG-001", "Bad Date", "Backend Engineer", "Tests", "not-a-date", ""},
		{"", "", "", "", "", ""},
	}

	records, skipped := ParseCandidates(rows)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if skipped != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", skipped)
	}

	r := records[0]
	if r.Position != "Backend Engineer" {
		t.Fatalf("legacy JOB APPLIED FOR not mapped: %q", r.Position)
	}
	if r.Stage != "Interviews" {
		t.Fatalf("legacy pipeline header not mapped: %q", r.Stage)
	}
	if r.Notes != "strong" {
		t.Fatalf("legacy COMMENTS not mapped: %q", r.Notes)
	}
	if !r.AppliedAt.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected applied date: %v", r.AppliedAt)
	}
}

func TestParseOpenings_CostAndTarget(t *testing.T) {
	rows := [][]string{
		{"JOB ID", "JOB TITLE", "STATUS", "OPENING DATE", "HIRING COST", "TARGET HIRES"},
		{"ENG-001", "Backend Engineer", "Vacant", "2026-01-01", "$10,000.00", "2"},
		{"ENG-002", "Designer", "Vacant", "2026-01-01", "not-money", ""},
		{"", "no job id", "Vacant", "2026-01-01", "", ""},
		{"", "", "", "", "", ""},
	}

	records, skipped := ParseOpenings(rows)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if skipped != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", skipped)
	}
	r := records[0]
	if r.HiringCost == nil || *r.HiringCost != 10000 {
		t.Fatalf("expected cost 10000, got %v", r.HiringCost)
	}
	if r.TargetHires != 2 {
		t.Fatalf("expected 2 target hires, got %d", r.TargetHires)
	}
}

func TestParseCandidates_HireBeforeApplicationSkipped(t *testing.T) {
	rows := [][]string{
		{"JOB ID", "CANDIDATE NAME", "STAGE", "APPLIED DATE", "HIRED DATE"},
		{"JOB-1", "Jane Roe", "Hired", "2024-05-01", "2024-01-01"},
		{"JOB-1", "John Doe", "Hired", "2024-01-01", "2024-05-01"},
	}

	records, skipped := ParseCandidates(rows)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if skipped != 1 {
		t.Fatalf("expected 1 skipped row, got %d", skipped)
	}
	if records[0].Name != "John Doe" {
		t.Fatalf("kept the wrong row: %q", records[0].Name)
	}
	if records[0].HiredAt == nil {
		t.Fatal("valid hired date dropped")
	}
}

func TestPreferences_RoundTrip(t *testing.T) {
	prefs := map[string][]string{
		"stages":     {"Received Application", "Hired"},
		"recruiters": {"Dana"},
	}

	rows := RenderPreferences(prefs, []string{"stages", "recruiters"})
	got := ParsePreferences(rows)

	if len(got["stages"]) != 2 || got["stages"][1] != "Hired" {
		t.Fatalf("stages lost in round trip: %v", got["stages"])
	}
	if len(got["recruiters"]) != 1 || got["recruiters"][0] != "Dana" {
		t.Fatalf("recruiters lost in round trip: %v", got["recruiters"])
	}
}

func TestRenderCandidates_HeaderFirst(t *testing.T) {
	rows := RenderCandidates([]CandidateRecord{{
		JobReference: "ENG-001",
		Name:         "Ada Lovelace",
		AppliedAt:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}})
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	if rows[0][1] != "CANDIDATE NAME" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][10] != "2026-01-15" {
		t.Fatalf("unexpected applied date cell: %q", rows[1][10])
	}
}
