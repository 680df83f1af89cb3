package seeder

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"talent-track/internal/database"
	"talent-track/internal/domain"
	"talent-track/internal/domain/candidate"
	"talent-track/internal/domain/opening"
	"talent-track/internal/repository"
)

const datasetDateLayout = "2006-01-02"

type DatasetOpening struct {
	Reference   string   `yaml:"reference"`
	Title       string   `yaml:"title"`
	Department  string   `yaml:"department"`
	Recruiter   string   `yaml:"recruiter"`
	Status      string   `yaml:"status"`
	OpenedAt    string   `yaml:"opened_at"`
	StartDate   string   `yaml:"start_date"`
	HiringCost  *float64 `yaml:"hiring_cost"`
	TargetHires int      `yaml:"target_hires"`
}

type DatasetCandidate struct {
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
	Opening   string `yaml:"opening"`
	Position  string `yaml:"position"`
	Recruiter string `yaml:"recruiter"`
	Source    string `yaml:"source"`
	Stage     string `yaml:"stage"`
	Decision  string `yaml:"decision"`
	AppliedAt string `yaml:"applied_at"`
	HiredAt   string `yaml:"hired_at"`
	Notes     string `yaml:"notes"`
}

type Dataset struct {
	Openings    []DatasetOpening    `yaml:"openings"`
	Candidates  []DatasetCandidate  `yaml:"candidates"`
	Preferences map[string][]string `yaml:"preferences"`
}

func LoadDataset(path string) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset: %w", err)
	}
	return ds, nil
}

// DatasetSeeder loads a YAML fixture of openings and candidates. Rows are
// upserted, so re-running the seed command is safe.
type DatasetSeeder struct {
	Dataset Dataset
}

func (DatasetSeeder) Name() string { return "mock-dataset" }

func (s DatasetSeeder) Run(ctx context.Context, db database.DB) error {
	openings := repository.NewPostgresOpeningRepository(db)
	candidates := repository.NewPostgresCandidateRepository(db)
	preferences := repository.NewPostgresPreferenceRepository(db)

	for _, row := range s.Dataset.Openings {
		o, err := datasetOpening(row)
		if err != nil {
			return err
		}
		if err := openings.UpsertByReference(ctx, o); err != nil {
			return fmt.Errorf("opening %s: %w", row.Reference, err)
		}
	}

	for _, row := range s.Dataset.Candidates {
		op, err := openings.GetByReference(ctx, row.Opening)
		if err != nil {
			return fmt.Errorf("candidate %s: opening %s: %w", row.Name, row.Opening, err)
		}
		c, err := datasetCandidate(row, op)
		if err != nil {
			return err
		}
		if _, err := candidates.UpsertImported(ctx, c); err != nil {
			return fmt.Errorf("candidate %s: %w", row.Name, err)
		}
	}

	for kind, values := range s.Dataset.Preferences {
		if err := preferences.ReplaceKind(ctx, kind, values); err != nil {
			return fmt.Errorf("preferences %s: %w", kind, err)
		}
	}
	return nil
}

func datasetOpening(row DatasetOpening) (opening.Opening, error) {
	openedAt, err := parseDatasetDate(row.OpenedAt)
	if err != nil {
		return opening.Opening{}, fmt.Errorf("opening %s: opened_at: %w", row.Reference, err)
	}

	o := opening.Opening{
		Reference:   row.Reference,
		Title:       row.Title,
		Department:  row.Department,
		Recruiter:   row.Recruiter,
		Status:      row.Status,
		OpenedAt:    openedAt,
		HiringCost:  row.HiringCost,
		TargetHires: row.TargetHires,
	}
	if o.Status == "" {
		o.Status = domain.JobStatusVacant
	}
	if o.TargetHires <= 0 {
		o.TargetHires = 1
	}
	if row.StartDate != "" {
		t, err := parseDatasetDate(row.StartDate)
		if err != nil {
			return opening.Opening{}, fmt.Errorf("opening %s: start_date: %w", row.Reference, err)
		}
		o.StartDate = &t
	}
	return o, nil
}

func datasetCandidate(row DatasetCandidate, op opening.Opening) (candidate.Candidate, error) {
	appliedAt, err := parseDatasetDate(row.AppliedAt)
	if err != nil {
		return candidate.Candidate{}, fmt.Errorf("candidate %s: applied_at: %w", row.Name, err)
	}

	c := candidate.Candidate{
		Name:       row.Name,
		Email:      row.Email,
		Phone:      row.Phone,
		OpeningID:  op.ID,
		Position:   row.Position,
		Department: op.Department,
		Recruiter:  row.Recruiter,
		Source:     row.Source,
		Stage:      row.Stage,
		AppliedAt:  appliedAt,
		Notes:      row.Notes,
	}
	if c.Position == "" {
		c.Position = op.Title
	}
	if c.Recruiter == "" {
		c.Recruiter = op.Recruiter
	}
	if c.Stage == "" {
		c.Stage = domain.DefaultStages[0]
	}
	if row.Decision != "" {
		d := row.Decision
		c.FinalDecision = &d
	}
	if row.HiredAt != "" {
		t, err := parseDatasetDate(row.HiredAt)
		if err != nil {
			return candidate.Candidate{}, fmt.Errorf("candidate %s: hired_at: %w", row.Name, err)
		}
		c.HiredAt = &t
	}
	return c, nil
}

func parseDatasetDate(v string) (time.Time, error) {
	return time.Parse(datasetDateLayout, v)
}
