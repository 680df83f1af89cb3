package analytics

import (
	"sort"

	"talent-track/internal/domain"
	"talent-track/internal/domain/candidate"
	"talent-track/internal/domain/opening"
)

type SourceMetric struct {
	Source   string
	Total    int
	Hired    int
	HireRate *float64
}

// SourceMetrics reports hiring effectiveness per candidate source, most
// productive sources first.
func SourceMetrics(cands []candidate.Candidate) []SourceMetric {
	totals := map[string]*SourceMetric{}
	for _, c := range cands {
		if c.Source == "" {
			continue
		}
		m := totals[c.Source]
		if m == nil {
			m = &SourceMetric{Source: c.Source}
			totals[c.Source] = m
		}
		m.Total++
		if c.Hired() {
			m.Hired++
		}
	}

	out := make([]SourceMetric, 0, len(totals))
	for _, m := range totals {
		if m.Total > 0 {
			m.HireRate = ptr(ratio(m.Hired, m.Total))
		}
		out = append(out, *m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Hired != out[j].Hired {
			return out[i].Hired > out[j].Hired
		}
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Source < out[j].Source
	})
	return out
}

type RecruiterMetric struct {
	Recruiter string
	Total     int
	Hired     int
	InProcess int
	HireRate  *float64
}

// RecruiterMetrics reports workload and outcome per recruiter. A candidate
// is in process while no terminal final decision has been recorded.
func RecruiterMetrics(cands []candidate.Candidate) []RecruiterMetric {
	totals := map[string]*RecruiterMetric{}
	for _, c := range cands {
		if c.Recruiter == "" {
			continue
		}
		m := totals[c.Recruiter]
		if m == nil {
			m = &RecruiterMetric{Recruiter: c.Recruiter}
			totals[c.Recruiter] = m
		}
		m.Total++
		switch {
		case c.Hired():
			m.Hired++
		case c.FinalDecision == nil || !domain.IsTerminalDecision(*c.FinalDecision):
			m.InProcess++
		}
	}

	out := make([]RecruiterMetric, 0, len(totals))
	for _, m := range totals {
		if m.Total > 0 {
			m.HireRate = ptr(ratio(m.Hired, m.Total))
		}
		out = append(out, *m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Recruiter < out[j].Recruiter
	})
	return out
}

type DepartmentMetric struct {
	Department    string
	OpenPositions int
	Candidates    int
	Hired         int
}

// DepartmentMetrics joins openings and candidates per department.
// Candidates are attributed through their opening's department so the
// numbers stay consistent when a candidate row carries a stale department.
func DepartmentMetrics(openings []opening.Opening, cands []candidate.Candidate) []DepartmentMetric {
	deptByOpening := map[string]string{}
	totals := map[string]*DepartmentMetric{}

	for _, o := range openings {
		if o.Department == "" {
			continue
		}
		deptByOpening[o.ID.String()] = o.Department
		m := totals[o.Department]
		if m == nil {
			m = &DepartmentMetric{Department: o.Department}
			totals[o.Department] = m
		}
		if o.Open() {
			m.OpenPositions++
		}
	}

	for _, c := range cands {
		dept := deptByOpening[c.OpeningID.String()]
		if dept == "" {
			dept = c.Department
		}
		if dept == "" {
			continue
		}
		m := totals[dept]
		if m == nil {
			m = &DepartmentMetric{Department: dept}
			totals[dept] = m
		}
		m.Candidates++
		if c.Hired() {
			m.Hired++
		}
	}

	out := make([]DepartmentMetric, 0, len(totals))
	for _, m := range totals {
		out = append(out, *m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OpenPositions != out[j].OpenPositions {
			return out[i].OpenPositions > out[j].OpenPositions
		}
		return out[i].Department < out[j].Department
	})
	return out
}

type TrendPoint struct {
	Period       string
	Applications int
	Hires        int
}

// MonthlyTrends buckets applications by application month and hires by
// hire month, keyed YYYY-MM in ascending order.
func MonthlyTrends(cands []candidate.Candidate) []TrendPoint {
	buckets := map[string]*TrendPoint{}
	bucket := func(period string) *TrendPoint {
		p := buckets[period]
		if p == nil {
			p = &TrendPoint{Period: period}
			buckets[period] = p
		}
		return p
	}

	for _, c := range cands {
		if !c.AppliedAt.IsZero() {
			bucket(c.AppliedAt.Format("2006-01")).Applications++
		}
		if c.Hired() && c.HiredAt != nil {
			bucket(c.HiredAt.Format("2006-01")).Hires++
		}
	}

	out := make([]TrendPoint, 0, len(buckets))
	for _, p := range buckets {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

type StageCount struct {
	Stage string
	Count int
	Share *float64
}

// PipelineDistribution counts candidates by current stage, in pipeline
// order. Stages outside the configured list are appended alphabetically.
func PipelineDistribution(cands []candidate.Candidate, stages []string) []StageCount {
	counts := map[string]int{}
	for _, c := range cands {
		if c.Stage == "" {
			continue
		}
		counts[c.Stage]++
	}

	total := len(cands)
	out := make([]StageCount, 0, len(counts))
	seen := map[string]bool{}

	appendStage := func(stage string) {
		n := counts[stage]
		sc := StageCount{Stage: stage, Count: n}
		if total > 0 {
			sc.Share = ptr(ratio(n, total))
		}
		out = append(out, sc)
	}

	for _, st := range stages {
		for actual := range counts {
			if domain.StageIndex([]string{st}, actual) == 0 && !seen[actual] {
				seen[actual] = true
				appendStage(actual)
			}
		}
	}

	extras := make([]string, 0)
	for actual := range counts {
		if !seen[actual] {
			extras = append(extras, actual)
		}
	}
	sort.Strings(extras)
	for _, st := range extras {
		appendStage(st)
	}
	return out
}
