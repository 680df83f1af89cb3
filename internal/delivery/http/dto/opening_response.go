package dto

import (
	"time"

	"talent-track/internal/domain/opening"
)

type OpeningResponse struct {
	ID          string     `json:"id"`
	Reference   string     `json:"reference"`
	Title       string     `json:"title"`
	Department  string     `json:"department"`
	Recruiter   string     `json:"recruiter"`
	Status      string     `json:"status"`
	OpenedAt    time.Time  `json:"opened_at"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	HiringCost  *float64   `json:"hiring_cost,omitempty"`
	TargetHires int        `json:"target_hires"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromOpening(o opening.Opening) OpeningResponse {
	return OpeningResponse{
		ID:          o.ID.String(),
		Reference:   o.Reference,
		Title:       o.Title,
		Department:  o.Department,
		Recruiter:   o.Recruiter,
		Status:      o.Status,
		OpenedAt:    o.OpenedAt,
		StartDate:   o.StartDate,
		HiringCost:  o.HiringCost,
		TargetHires: o.TargetHires,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func FromOpenings(in []opening.Opening) []OpeningResponse {
	out := make([]OpeningResponse, 0, len(in))
	for _, o := range in {
		out = append(out, FromOpening(o))
	}
	return out
}
