package candidate

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("candidate not found")

type Candidate struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Phone         string
	OpeningID     uuid.UUID
	Position      string
	Department    string
	Recruiter     string
	Source        string
	Stage         string
	FinalDecision *string
	AppliedAt     time.Time
	HiredAt       *time.Time
	HRView        string
	ManagerView   string
	DecisionView  string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Hired reports whether the candidate reached the terminal hired stage.
// Stage spellings are canonicalized on write, but imported historical data
// may predate that, so the check is case-insensitive.
func (c Candidate) Hired() bool {
	return strings.EqualFold(c.Stage, "Hired")
}
