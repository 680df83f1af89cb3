// Package workbook imports and exports the legacy recruitment Excel file.
package workbook

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"talent-track/internal/domain/preference"
	"talent-track/internal/sync"
	"talent-track/internal/tabular"
)

type Service struct {
	sync *sync.Service
	log  *zap.Logger
}

func NewService(syncSvc *sync.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{sync: syncSvc, log: log}
}

// Import reads an .xlsx stream and applies its Candidates, JobOpenings and
// Preferences tabs. Missing tabs are tolerated; malformed rows are skipped
// and counted in the summary.
func (s *Service) Import(ctx context.Context, r io.Reader) (sync.Summary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return sync.Summary{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var (
		openingRecs   []tabular.OpeningRecord
		candidateRecs []tabular.CandidateRecord
		prefs         map[string][]string
		skipped       int
	)

	if rows, err := f.GetRows(tabular.TabOpenings); err == nil {
		var n int
		openingRecs, n = tabular.ParseOpenings(rows)
		skipped += n
	}
	if rows, err := f.GetRows(tabular.TabCandidates); err == nil {
		var n int
		candidateRecs, n = tabular.ParseCandidates(rows)
		skipped += n
	}
	if rows, err := f.GetRows(tabular.TabPreferences); err == nil {
		prefs = tabular.ParsePreferences(rows)
	}

	if len(openingRecs) == 0 && len(candidateRecs) == 0 && len(prefs) == 0 {
		return sync.Summary{}, fmt.Errorf("workbook has no recognizable tabs")
	}

	summary, err := s.sync.Apply(ctx, openingRecs, candidateRecs, prefs, skipped)
	if err != nil {
		return summary, err
	}

	s.log.Info("workbook imported",
		zap.Int("openings", summary.OpeningsUpserted),
		zap.Int("candidates_created", summary.CandidatesCreated),
		zap.Int("candidates_updated", summary.CandidatesUpdated),
		zap.Int("skipped_rows", summary.SkippedRows))
	return summary, nil
}

// Export writes the current database state as an .xlsx with the three
// legacy tabs.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	openingRecs, candidateRecs, prefs, err := s.sync.Snapshot(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := writeSheet(f, tabular.TabCandidates, tabular.RenderCandidates(candidateRecs)); err != nil {
		return err
	}
	if err := writeSheet(f, tabular.TabOpenings, tabular.RenderOpenings(openingRecs)); err != nil {
		return err
	}
	if err := writeSheet(f, tabular.TabPreferences, tabular.RenderPreferences(prefs, preference.Kinds())); err != nil {
		return err
	}

	// Drop excelize's default sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		s.log.Warn("could not remove default sheet", zap.Error(err))
	}

	_, err = f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, name string, rows [][]string) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(name, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}
