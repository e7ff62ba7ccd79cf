// Package report accumulates the outcome of a consolidation or
// normalization run into a single end-of-run summary.
package report

import (
	"github.com/arthur-debert/locfold/pkg/errors"
)

// Outcome is the decision taken for one variant directory.
type Outcome string

const (
	OutcomeMerged   Outcome = "merged"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeExcepted Outcome = "excepted"
)

// RecordKind classifies warning and error records.
type RecordKind string

const (
	KindConflict     RecordKind = "conflict_warning"
	KindPartialMerge RecordKind = "partial_merge_error"
	KindCleanup      RecordKind = "cleanup_error"
	KindNormalize    RecordKind = "normalize_error"
)

// Record is a warning or error attached to a directory, and optionally to
// one file in it.
type Record struct {
	Kind    RecordKind       `json:"kind" yaml:"kind"`
	Dir     string           `json:"dir" yaml:"dir"`
	File    string           `json:"file,omitempty" yaml:"file,omitempty"`
	Code    errors.ErrorCode `json:"code,omitempty" yaml:"code,omitempty"`
	Message string           `json:"message" yaml:"message"`
}

// IsWarning reports whether the record is a non-failing conflict warning.
func (r Record) IsWarning() bool {
	return r.Kind == KindConflict
}

func newErrorRecord(kind RecordKind, dir, file string, err error) Record {
	return Record{
		Kind:    kind,
		Dir:     dir,
		File:    file,
		Code:    errors.GetErrorCode(err),
		Message: err.Error(),
	}
}

func warnings(records []Record) []Record {
	var out []Record
	for _, r := range records {
		if r.IsWarning() {
			out = append(out, r)
		}
	}
	return out
}

func failures(records []Record) []Record {
	var out []Record
	for _, r := range records {
		if !r.IsWarning() {
			out = append(out, r)
		}
	}
	return out
}
