package analytics

import (
	"talent-track/internal/domain"
	"talent-track/internal/domain/candidate"
)

type FunnelStage struct {
	Stage              string
	Reached            int
	OfTotal            *float64
	ConversionFromPrev *float64
}

type Funnel struct {
	Total             int
	Stages            []FunnelStage
	OverallConversion *float64
}

// ComputeFunnel builds the pipeline funnel for the given ordered stage
// list. A candidate "reaches" a stage when its current stage sits at or
// beyond it, so conversion between consecutive stages is always in [0, 1].
// Candidates whose stage is not in the list are counted in Total only.
func ComputeFunnel(cands []candidate.Candidate, stages []string) Funnel {
	out := Funnel{Total: len(cands), Stages: make([]FunnelStage, 0, len(stages))}
	if len(stages) == 0 {
		return out
	}

	reached := make([]int, len(stages))
	for _, c := range cands {
		idx := domain.StageIndex(stages, c.Stage)
		if idx < 0 {
			continue
		}
		for i := 0; i <= idx; i++ {
			reached[i]++
		}
	}

	for i, st := range stages {
		fs := FunnelStage{Stage: st, Reached: reached[i]}
		if out.Total > 0 {
			fs.OfTotal = ptr(ratio(reached[i], out.Total))
		}
		if i > 0 && reached[i-1] > 0 {
			fs.ConversionFromPrev = ptr(ratio(reached[i], reached[i-1]))
		}
		out.Stages = append(out.Stages, fs)
	}

	if reached[0] > 0 {
		out.OverallConversion = ptr(ratio(reached[len(stages)-1], reached[0]))
	}
	return out
}

func ratio(num, den int) float64 {
	return roundTo(float64(num)/float64(den), 10000)
}
