// Package tabular parses and renders the legacy spreadsheet layout shared
// by the Excel workbook and the Google Sheets tabs: Candidates,
// JobOpenings, and Preferences. The header row is discovered by scanning
// for an anchor column, and legacy header spellings are mapped to
// canonical names.
package tabular

import (
	"strconv"
	"strings"
	"time"
)

const (
	TabCandidates  = "Candidates"
	TabOpenings    = "JobOpenings"
	TabPreferences = "Preferences"

	AnchorCandidates = "CANDIDATE NAME"
	AnchorOpenings   = "JOB ID"

	headerScanLimit = 20
)

// Canonical candidate columns, in export order.
var CandidateHeader = []string{
	"JOB ID",
	"CANDIDATE NAME",
	"EMAIL",
	"PHONE",
	"POSITION",
	"DEPARTMENT",
	"RECRUITER",
	"SOURCE",
	"STAGE",
	"FINAL DECISION",
	"APPLIED DATE",
	"HIRED DATE",
	"HR VIEW",
	"HIRING MANAGER VIEW",
	"DECISION MAKER VIEW",
	"NOTES",
}

var OpeningHeader = []string{
	"JOB ID",
	"JOB TITLE",
	"DEPARTMENT",
	"RECRUITER",
	"STATUS",
	"OPENING DATE",
	"NEW HIRE START DATE",
	"HIRING COST",
	"TARGET HIRES",
}

var PreferenceHeader = []string{"KIND", "VALUE"}

// Legacy workbook headers mapped to the canonical names above.
var candidateAliases = map[string]string{
	"RECRUITMENT PHASE\n(PIPELINE)": "STAGE",
	"RECRUITMENT PHASE (PIPELINE)":  "STAGE",
	"RECRUITMENT PHASE":             "STAGE",
	"JOB APPLIED FOR":               "POSITION",
	"APPLIED DATE":                  "APPLIED DATE",
	"APPLICATION DATE":              "APPLIED DATE",
	"COMMENTS":                      "NOTES",
}

var openingAliases = map[string]string{
	"START DATE": "NEW HIRE START DATE",
}

type CandidateRecord struct {
	JobReference  string
	Name          string
	Email         string
	Phone         string
	Position      string
	Department    string
	Recruiter     string
	Source        string
	Stage         string
	FinalDecision string
	AppliedAt     time.Time
	HiredAt       *time.Time
	HRView        string
	ManagerView   string
	DecisionView  string
	Notes         string
}

type OpeningRecord struct {
	Reference   string
	Title       string
	Department  string
	Recruiter   string
	Status      string
	OpenedAt    time.Time
	StartDate   *time.Time
	HiringCost  *float64
	TargetHires int
}

// FindHeaderRow scans the first rows for the anchor column and returns its
// zero-based row index, or -1 when the sheet does not look like the
// expected tab.
func FindHeaderRow(rows [][]string, anchor string) int {
	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			if normalizeHeader(cell) == anchor {
				return i
			}
		}
	}
	return -1
}

// columnIndex maps canonical column names to their position in the header
// row, resolving legacy aliases.
func columnIndex(header []string, aliases map[string]string) map[string]int {
	out := map[string]int{}
	for i, cell := range header {
		name := normalizeHeader(cell)
		if name == "" || strings.HasPrefix(name, "UNNAMED") {
			continue
		}
		if canonical, ok := aliases[name]; ok {
			name = canonical
		}
		if _, taken := out[name]; !taken {
			out[name] = i
		}
	}
	return out
}

// ParseCandidates reads a whole Candidates tab. Blank rows are ignored;
// rows with content but no candidate name, an unparseable applied date,
// or a hired date before the applied date are skipped and counted.
func ParseCandidates(rows [][]string) (records []CandidateRecord, skipped int) {
	h := FindHeaderRow(rows, AnchorCandidates)
	if h < 0 {
		return nil, 0
	}
	cols := columnIndex(rows[h], candidateAliases)

	for _, row := range rows[h+1:] {
		name := cellAt(row, cols, "CANDIDATE NAME")
		if name == "" {
			if !blankRow(row) {
				skipped++
			}
			continue
		}

		appliedAt, ok := parseDate(cellAt(row, cols, "APPLIED DATE"))
		if !ok {
			skipped++
			continue
		}

		rec := CandidateRecord{
			JobReference:  cellAt(row, cols, "JOB ID"),
			Name:          name,
			Email:         cellAt(row, cols, "EMAIL"),
			Phone:         cellAt(row, cols, "PHONE"),
			Position:      cellAt(row, cols, "POSITION"),
			Department:    cellAt(row, cols, "DEPARTMENT"),
			Recruiter:     cellAt(row, cols, "RECRUITER"),
			Source:        cellAt(row, cols, "SOURCE"),
			Stage:         cellAt(row, cols, "STAGE"),
			FinalDecision: cellAt(row, cols, "FINAL DECISION"),
			AppliedAt:     appliedAt,
			HRView:        cellAt(row, cols, "HR VIEW"),
			ManagerView:   cellAt(row, cols, "HIRING MANAGER VIEW"),
			DecisionView:  cellAt(row, cols, "DECISION MAKER VIEW"),
			Notes:         cellAt(row, cols, "NOTES"),
		}
		if hired, ok := parseDate(cellAt(row, cols, "HIRED DATE")); ok {
			if hired.Before(appliedAt) {
				skipped++
				continue
			}
			rec.HiredAt = &hired
		}
		records = append(records, rec)
	}
	return records, skipped
}

// ParseOpenings reads a whole JobOpenings tab. Blank rows are ignored;
// rows with content but no job id, an unparseable opening date, or a
// malformed cost are skipped and counted.
func ParseOpenings(rows [][]string) (records []OpeningRecord, skipped int) {
	h := FindHeaderRow(rows, AnchorOpenings)
	if h < 0 {
		return nil, 0
	}
	cols := columnIndex(rows[h], openingAliases)

	for _, row := range rows[h+1:] {
		ref := cellAt(row, cols, "JOB ID")
		if ref == "" {
			if !blankRow(row) {
				skipped++
			}
			continue
		}

		openedAt, ok := parseDate(cellAt(row, cols, "OPENING DATE"))
		if !ok {
			skipped++
			continue
		}

		rec := OpeningRecord{
			Reference:  ref,
			Title:      cellAt(row, cols, "JOB TITLE"),
			Department: cellAt(row, cols, "DEPARTMENT"),
			Recruiter:  cellAt(row, cols, "RECRUITER"),
			Status:     cellAt(row, cols, "STATUS"),
			OpenedAt:   openedAt,
		}
		if start, ok := parseDate(cellAt(row, cols, "NEW HIRE START DATE")); ok {
			rec.StartDate = &start
		}
		if raw := cellAt(row, cols, "HIRING COST"); raw != "" {
			if cost, err := strconv.ParseFloat(cleanNumber(raw), 64); err == nil && cost >= 0 {
				rec.HiringCost = &cost
			} else {
				skipped++
				continue
			}
		}
		if raw := cellAt(row, cols, "TARGET HIRES"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				rec.TargetHires = n
			}
		}
		records = append(records, rec)
	}
	return records, skipped
}

// ParsePreferences reads the database-like KIND/VALUE layout. The legacy
// free-form Preferences tab does not survive a round trip, so exports
// always write this layout.
func ParsePreferences(rows [][]string) map[string][]string {
	out := map[string][]string{}
	start := 0
	if len(rows) > 0 && normalizeHeader(first(rows[0])) == "KIND" {
		start = 1
	}
	for _, row := range rows[start:] {
		if len(row) < 2 {
			continue
		}
		kind := strings.ToLower(strings.TrimSpace(row[0]))
		value := strings.TrimSpace(row[1])
		if kind == "" || value == "" {
			continue
		}
		out[kind] = append(out[kind], value)
	}
	return out
}

func RenderCandidates(records []CandidateRecord) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, CandidateHeader)
	for _, r := range records {
		rows = append(rows, []string{
			r.JobReference,
			r.Name,
			r.Email,
			r.Phone,
			r.Position,
			r.Department,
			r.Recruiter,
			r.Source,
			r.Stage,
			r.FinalDecision,
			formatDate(r.AppliedAt),
			formatDatePtr(r.HiredAt),
			r.HRView,
			r.ManagerView,
			r.DecisionView,
			r.Notes,
		})
	}
	return rows
}

func RenderOpenings(records []OpeningRecord) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, OpeningHeader)
	for _, r := range records {
		cost := ""
		if r.HiringCost != nil {
			cost = strconv.FormatFloat(*r.HiringCost, 'f', 2, 64)
		}
		rows = append(rows, []string{
			r.Reference,
			r.Title,
			r.Department,
			r.Recruiter,
			r.Status,
			formatDate(r.OpenedAt),
			formatDatePtr(r.StartDate),
			cost,
			strconv.Itoa(r.TargetHires),
		})
	}
	return rows
}

func RenderPreferences(prefs map[string][]string, kindOrder []string) [][]string {
	rows := [][]string{PreferenceHeader}
	for _, kind := range kindOrder {
		for _, v := range prefs[kind] {
			rows = append(rows, []string{kind, v})
		}
	}
	return rows
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01/02/2006",
	"2/1/2006",
	time.RFC3339,
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func cellAt(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}

func normalizeHeader(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func first(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
