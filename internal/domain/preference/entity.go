package preference

import (
	"errors"
	"strings"
)

var ErrUnknownKind = errors.New("unknown preference kind")

const (
	KindStage      = "stages"
	KindJobStatus  = "job_statuses"
	KindSource     = "sources"
	KindRecruiter  = "recruiters"
	KindDepartment = "departments"
	KindDecision   = "decisions"
)

var kinds = []string{
	KindStage,
	KindJobStatus,
	KindSource,
	KindRecruiter,
	KindDepartment,
	KindDecision,
}

type Entry struct {
	Kind      string
	Value     string
	SortOrder int
}

func Kinds() []string {
	out := make([]string, len(kinds))
	copy(out, kinds)
	return out
}

func NormalizeKind(kind string) (string, error) {
	kind = strings.TrimSpace(strings.ToLower(kind))
	for _, k := range kinds {
		if k == kind {
			return k, nil
		}
	}
	return "", ErrUnknownKind
}
