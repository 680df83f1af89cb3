package opening

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("job opening not found")
	ErrReferenceTaken = errors.New("job opening reference already exists")
)

type Opening struct {
	ID          uuid.UUID
	Reference   string
	Title       string
	Department  string
	Recruiter   string
	Status      string
	OpenedAt    time.Time
	StartDate   *time.Time
	HiringCost  *float64
	TargetHires int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (o Opening) Open() bool {
	return strings.EqualFold(o.Status, "Vacant")
}
