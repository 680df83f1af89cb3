package repository

import (
	"context"
	"errors"
	"time"

	"talent-track/internal/database"
	"talent-track/internal/domain/candidate"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CandidateFilter struct {
	Stage     string
	Recruiter string
	Source    string
	OpeningID uuid.UUID
	Limit     int
	Offset    int
}

type CandidateRepository interface {
	Create(ctx context.Context, c candidate.Candidate) error
	GetByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error)
	Update(ctx context.Context, c candidate.Candidate) error
	UpdateStage(ctx context.Context, id uuid.UUID, stage string, hiredAt *time.Time) error
	SetFinalDecision(ctx context.Context, id uuid.UUID, decision string) error
	List(ctx context.Context, f CandidateFilter) ([]candidate.Candidate, error)
	ListAll(ctx context.Context) ([]candidate.Candidate, error)
	UpsertImported(ctx context.Context, c candidate.Candidate) (created bool, err error)
}

const candidateColumns = `id, name, email, phone, opening_id, position, department, recruiter, source,
	 stage, final_decision, applied_at, hired_at, hr_view, manager_view, decision_view, notes,
	 created_at, updated_at`

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

func (r *PostgresCandidateRepository) Create(ctx context.Context, c candidate.Candidate) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO candidates
		 (id, name, email, phone, opening_id, position, department, recruiter, source,
		  stage, final_decision, applied_at, hired_at, hr_view, manager_view, decision_view, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		c.ID, c.Name, c.Email, c.Phone, c.OpeningID, c.Position, c.Department, c.Recruiter, c.Source,
		c.Stage, c.FinalDecision, c.AppliedAt, c.HiredAt, c.HRView, c.ManagerView, c.DecisionView, c.Notes,
	)
	return err
}

func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)

	c, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Candidate{}, candidate.ErrNotFound
		}
		return candidate.Candidate{}, err
	}
	return c, nil
}

func (r *PostgresCandidateRepository) Update(ctx context.Context, c candidate.Candidate) error {
	n, err := r.db.Exec(ctx,
		`UPDATE candidates SET
		   name = $2, email = $3, phone = $4, opening_id = $5, position = $6, department = $7,
		   recruiter = $8, source = $9, stage = $10, final_decision = $11, applied_at = $12,
		   hired_at = $13, hr_view = $14, manager_view = $15, decision_view = $16, notes = $17,
		   updated_at = now()
		 WHERE id = $1`,
		c.ID, c.Name, c.Email, c.Phone, c.OpeningID, c.Position, c.Department,
		c.Recruiter, c.Source, c.Stage, c.FinalDecision, c.AppliedAt,
		c.HiredAt, c.HRView, c.ManagerView, c.DecisionView, c.Notes,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func (r *PostgresCandidateRepository) UpdateStage(ctx context.Context, id uuid.UUID, stage string, hiredAt *time.Time) error {
	n, err := r.db.Exec(ctx,
		`UPDATE candidates SET stage = $2, hired_at = COALESCE($3, hired_at), updated_at = now() WHERE id = $1`,
		id, stage, hiredAt,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func (r *PostgresCandidateRepository) SetFinalDecision(ctx context.Context, id uuid.UUID, decision string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE candidates SET final_decision = $2, updated_at = now() WHERE id = $1`,
		id, decision,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func (r *PostgresCandidateRepository) List(ctx context.Context, f CandidateFilter) ([]candidate.Candidate, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+candidateColumns+`
		 FROM candidates
		 WHERE ($1 = '' OR stage = $1)
		   AND ($2 = '' OR recruiter = $2)
		   AND ($3 = '' OR source = $3)
		   AND ($4::uuid IS NULL OR opening_id = $4)
		 ORDER BY applied_at DESC, created_at DESC
		 LIMIT $5 OFFSET $6`,
		f.Stage, f.Recruiter, f.Source, nilUUID(f.OpeningID), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCandidates(rows)
}

func (r *PostgresCandidateRepository) ListAll(ctx context.Context) ([]candidate.Candidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates ORDER BY applied_at ASC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCandidates(rows)
}

// UpsertImported matches spreadsheet rows by (opening, name) since the
// legacy workbook has no stable candidate identifier.
func (r *PostgresCandidateRepository) UpsertImported(ctx context.Context, c candidate.Candidate) (bool, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE candidates SET
		   email = $3, phone = $4, position = $5, department = $6, recruiter = $7, source = $8,
		   stage = $9, final_decision = $10, applied_at = $11, hired_at = $12,
		   hr_view = $13, manager_view = $14, decision_view = $15, notes = $16, updated_at = now()
		 WHERE opening_id = $1 AND lower(name) = lower($2)`,
		c.OpeningID, c.Name, c.Email, c.Phone, c.Position, c.Department, c.Recruiter, c.Source,
		c.Stage, c.FinalDecision, c.AppliedAt, c.HiredAt, c.HRView, c.ManagerView, c.DecisionView, c.Notes,
	)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	return true, r.Create(ctx, c)
}

func scanCandidate(row database.Row) (candidate.Candidate, error) {
	var c candidate.Candidate
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.OpeningID, &c.Position, &c.Department, &c.Recruiter, &c.Source,
		&c.Stage, &c.FinalDecision, &c.AppliedAt, &c.HiredAt, &c.HRView, &c.ManagerView, &c.DecisionView, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func collectCandidates(rows database.Rows) ([]candidate.Candidate, error) {
	out := make([]candidate.Candidate, 0)
	for rows.Next() {
		var c candidate.Candidate
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.OpeningID, &c.Position, &c.Department, &c.Recruiter, &c.Source,
			&c.Stage, &c.FinalDecision, &c.AppliedAt, &c.HiredAt, &c.HRView, &c.ManagerView, &c.DecisionView, &c.Notes,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nilUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}
