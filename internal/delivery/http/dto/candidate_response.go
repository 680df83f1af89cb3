package dto

import (
	"time"

	"talent-track/internal/domain/candidate"
)

type CandidateResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	OpeningID     string     `json:"opening_id"`
	Position      string     `json:"position"`
	Department    string     `json:"department"`
	Recruiter     string     `json:"recruiter"`
	Source        string     `json:"source,omitempty"`
	Stage         string     `json:"stage"`
	FinalDecision *string    `json:"final_decision,omitempty"`
	AppliedAt     time.Time  `json:"applied_at"`
	HiredAt       *time.Time `json:"hired_at,omitempty"`
	HRView        string     `json:"hr_view,omitempty"`
	ManagerView   string     `json:"manager_view,omitempty"`
	DecisionView  string     `json:"decision_view,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func FromCandidate(c candidate.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		OpeningID:     c.OpeningID.String(),
		Position:      c.Position,
		Department:    c.Department,
		Recruiter:     c.Recruiter,
		Source:        c.Source,
		Stage:         c.Stage,
		FinalDecision: c.FinalDecision,
		AppliedAt:     c.AppliedAt,
		HiredAt:       c.HiredAt,
		HRView:        c.HRView,
		ManagerView:   c.ManagerView,
		DecisionView:  c.DecisionView,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func FromCandidates(in []candidate.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(in))
	for _, c := range in {
		out = append(out, FromCandidate(c))
	}
	return out
}
