package domain

import "strings"

// Default reference lists, mirrored by the preference seeders. The live
// values come from the preferences table and may be edited by HR.
var (
	DefaultStages = []string{
		"Received Application",
		"Sent to Manager",
		"Interviews",
		"Tests",
		"Job Offer",
		"Hired",
	}

	DefaultJobStatuses = []string{"Vacant", "Filled", "Suspended", "Cancelled"}

	DefaultSources = []string{
		"LinkedIn",
		"Job Portals",
		"Own Website",
		"Recruitment Agency",
		"Referral",
		"Newspaper",
	}

	DefaultFinalDecisions = []string{
		"Hired",
		"Not Hired",
		"Candidate in Process",
		"Candidate Refusal",
	}
)

const (
	StageHired        = "Hired"
	JobStatusVacant   = "Vacant"
	JobStatusFilled   = "Filled"
	DecisionHired     = "Hired"
	DecisionNotHired  = "Not Hired"
	DecisionInProcess = "Candidate in Process"
	DecisionRefusal   = "Candidate Refusal"
)

// StageIndex reports the position of s in the ordered stage list, -1 when
// the stage is unknown. Matching is case-insensitive.
func StageIndex(stages []string, s string) int {
	s = strings.TrimSpace(s)
	for i, st := range stages {
		if strings.EqualFold(st, s) {
			return i
		}
	}
	return -1
}

// IsTerminalDecision reports whether a final decision closes the
// candidate's pipeline.
func IsTerminalDecision(d string) bool {
	switch strings.TrimSpace(strings.ToLower(d)) {
	case strings.ToLower(DecisionHired), strings.ToLower(DecisionNotHired), strings.ToLower(DecisionRefusal):
		return true
	}
	return false
}
