// Package analytics computes recruitment KPIs over in-memory snapshots of
// candidates and job openings. All functions are pure; ratios with a zero
// denominator come back as nil instead of failing.
package analytics

import (
	"sort"
	"time"

	"talent-track/internal/domain/candidate"
	"talent-track/internal/domain/opening"
)

type TimeToHire struct {
	Hires        int
	MeanDays     *float64
	MedianDays   *float64
	ByPosition   map[string]float64
	ByDepartment map[string]float64
}

// ComputeTimeToHire measures days from application to hire for every hired
// candidate with both timestamps recorded. Candidates with a missing or
// inverted hire date are skipped.
func ComputeTimeToHire(cands []candidate.Candidate) TimeToHire {
	out := TimeToHire{
		ByPosition:   map[string]float64{},
		ByDepartment: map[string]float64{},
	}

	days := make([]float64, 0, len(cands))
	posSum := map[string][]float64{}
	deptSum := map[string][]float64{}

	for _, c := range cands {
		if !c.Hired() || c.HiredAt == nil || c.AppliedAt.IsZero() {
			continue
		}
		d := daysBetween(c.AppliedAt, *c.HiredAt)
		if d < 0 {
			continue
		}
		days = append(days, d)
		if c.Position != "" {
			posSum[c.Position] = append(posSum[c.Position], d)
		}
		if c.Department != "" {
			deptSum[c.Department] = append(deptSum[c.Department], d)
		}
	}

	out.Hires = len(days)
	if len(days) == 0 {
		return out
	}

	out.MeanDays = ptr(round1(mean(days)))
	out.MedianDays = ptr(round1(median(days)))
	for k, v := range posSum {
		out.ByPosition[k] = round1(mean(v))
	}
	for k, v := range deptSum {
		out.ByDepartment[k] = round1(mean(v))
	}
	return out
}

type OpeningCost struct {
	Reference   string
	Title       string
	Department  string
	HiringCost  *float64
	Hires       int
	CostPerHire *float64
}

type CostPerHire struct {
	TotalCost      float64
	TotalHires     int
	AveragePerHire *float64
	PerOpening     []OpeningCost
}

// ComputeCostPerHire divides each opening's recorded hiring cost by the
// number of candidates hired for it. Openings without hires keep a nil
// cost-per-hire rather than producing a division error.
func ComputeCostPerHire(openings []opening.Opening, cands []candidate.Candidate) CostPerHire {
	hiresByOpening := map[string]int{}
	for _, c := range cands {
		if c.Hired() {
			hiresByOpening[c.OpeningID.String()]++
		}
	}

	out := CostPerHire{PerOpening: make([]OpeningCost, 0, len(openings))}
	for _, o := range openings {
		hires := hiresByOpening[o.ID.String()]
		oc := OpeningCost{
			Reference:  o.Reference,
			Title:      o.Title,
			Department: o.Department,
			HiringCost: o.HiringCost,
			Hires:      hires,
		}
		if o.HiringCost != nil {
			out.TotalCost += *o.HiringCost
			if hires > 0 {
				oc.CostPerHire = ptr(round2(*o.HiringCost / float64(hires)))
			}
		}
		out.TotalHires += hires
		out.PerOpening = append(out.PerOpening, oc)
	}

	if out.TotalHires > 0 {
		out.AveragePerHire = ptr(round2(out.TotalCost / float64(out.TotalHires)))
	}
	out.TotalCost = round2(out.TotalCost)

	sort.SliceStable(out.PerOpening, func(i, j int) bool {
		return out.PerOpening[i].Reference < out.PerOpening[j].Reference
	})
	return out
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var s float64
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}

func median(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	s := make([]float64, len(v))
	copy(s, v)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

func round1(v float64) float64 {
	return roundTo(v, 10)
}

func round2(v float64) float64 {
	return roundTo(v, 100)
}

func roundTo(v float64, scale float64) float64 {
	if v < 0 {
		return -roundTo(-v, scale)
	}
	return float64(int64(v*scale+0.5)) / scale
}

func ptr(v float64) *float64 {
	return &v
}
