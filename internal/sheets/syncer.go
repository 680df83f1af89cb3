package sheets

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"go.uber.org/zap"

	"talent-track/internal/domain/preference"
	syncsvc "talent-track/internal/sync"
	"talent-track/internal/tabular"
)

// TabReaderWriter is the slice of Client the syncer needs; tests swap in a
// fake.
type TabReaderWriter interface {
	ReadTab(ctx context.Context, tab string) ([][]string, error)
	WriteTab(ctx context.Context, tab string, rows [][]string) error
	SpreadsheetID() string
}

type Status struct {
	Enabled       bool       `json:"enabled"`
	SpreadsheetID string     `json:"spreadsheet_id,omitempty"`
	LastImport    *time.Time `json:"last_import,omitempty"`
	LastExport    *time.Time `json:"last_export,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
}

type Syncer struct {
	client TabReaderWriter
	data   *syncsvc.Service
	log    *zap.Logger

	mu         gosync.Mutex
	lastImport *time.Time
	lastExport *time.Time
	lastError  string
}

func NewSyncer(client TabReaderWriter, data *syncsvc.Service, log *zap.Logger) *Syncer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Syncer{client: client, data: data, log: log}
}

// Import pulls the three tabs and applies them to the database.
func (s *Syncer) Import(ctx context.Context) (syncsvc.Summary, error) {
	if s == nil || s.client == nil {
		return syncsvc.Summary{}, fmt.Errorf("sheets sync not configured")
	}

	openingRows, err := s.client.ReadTab(ctx, tabular.TabOpenings)
	if err != nil {
		return syncsvc.Summary{}, s.fail(err)
	}
	candidateRows, err := s.client.ReadTab(ctx, tabular.TabCandidates)
	if err != nil {
		return syncsvc.Summary{}, s.fail(err)
	}
	prefRows, err := s.client.ReadTab(ctx, tabular.TabPreferences)
	if err != nil {
		return syncsvc.Summary{}, s.fail(err)
	}

	openingRecs, skippedOpenings := tabular.ParseOpenings(openingRows)
	candidateRecs, skippedCandidates := tabular.ParseCandidates(candidateRows)
	prefs := tabular.ParsePreferences(prefRows)

	summary, err := s.data.Apply(ctx, openingRecs, candidateRecs, prefs, skippedOpenings+skippedCandidates)
	if err != nil {
		return summary, s.fail(err)
	}

	now := time.Now().UTC()
	s.mu.Lock()
	s.lastImport = &now
	s.lastError = ""
	s.mu.Unlock()

	s.log.Info("sheets import done",
		zap.Int("openings", summary.OpeningsUpserted),
		zap.Int("candidates_created", summary.CandidatesCreated),
		zap.Int("candidates_updated", summary.CandidatesUpdated),
		zap.Int("skipped_rows", summary.SkippedRows),
		zap.Int("unresolved_openings", summary.UnresolvedOpenings))
	return summary, nil
}

// Export pushes the current database state to the spreadsheet.
func (s *Syncer) Export(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("sheets sync not configured")
	}

	openingRecs, candidateRecs, prefs, err := s.data.Snapshot(ctx)
	if err != nil {
		return s.fail(err)
	}

	if err := s.client.WriteTab(ctx, tabular.TabOpenings, tabular.RenderOpenings(openingRecs)); err != nil {
		return s.fail(err)
	}
	if err := s.client.WriteTab(ctx, tabular.TabCandidates, tabular.RenderCandidates(candidateRecs)); err != nil {
		return s.fail(err)
	}
	if err := s.client.WriteTab(ctx, tabular.TabPreferences, tabular.RenderPreferences(prefs, preference.Kinds())); err != nil {
		return s.fail(err)
	}

	now := time.Now().UTC()
	s.mu.Lock()
	s.lastExport = &now
	s.lastError = ""
	s.mu.Unlock()

	s.log.Info("sheets export done",
		zap.Int("openings", len(openingRecs)),
		zap.Int("candidates", len(candidateRecs)))
	return nil
}

func (s *Syncer) Status() Status {
	if s == nil || s.client == nil {
		return Status{Enabled: false}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Enabled:       true,
		SpreadsheetID: s.client.SpreadsheetID(),
		LastImport:    s.lastImport,
		LastExport:    s.lastExport,
		LastError:     s.lastError,
	}
}

func (s *Syncer) fail(err error) error {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
	return err
}
