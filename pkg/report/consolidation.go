package report

import "fmt"

// DirResult is the per-directory line of a consolidation report.
type DirResult struct {
	Name        string   `json:"name" yaml:"name"`
	Base        string   `json:"base" yaml:"base"`
	Display     string   `json:"display,omitempty" yaml:"display,omitempty"`
	Outcome     Outcome  `json:"outcome" yaml:"outcome"`
	Reason      string   `json:"reason" yaml:"reason"`
	FilesMoved  int      `json:"filesMoved" yaml:"filesMoved"`
	Overwritten []string `json:"overwritten,omitempty" yaml:"overwritten,omitempty"`
	Removed     bool     `json:"removed" yaml:"removed"`
	Failed      bool     `json:"failed" yaml:"failed"`
}

// Report is the end-of-run summary of a consolidation.
type Report struct {
	Root   string `json:"root" yaml:"root"`
	DryRun bool   `json:"dryRun" yaml:"dryRun"`

	// Merged counts directories whose files all moved and which were removed.
	// Failed counts merge attempts that produced an error record.
	Merged   int `json:"merged" yaml:"merged"`
	Skipped  int `json:"skipped" yaml:"skipped"`
	Excepted int `json:"excepted" yaml:"excepted"`
	Failed   int `json:"failed" yaml:"failed"`

	FilesMoved int         `json:"filesMoved" yaml:"filesMoved"`
	Overwrites int         `json:"overwrites" yaml:"overwrites"`
	Dirs       []DirResult `json:"dirs" yaml:"dirs"`
	Records    []Record    `json:"records" yaml:"records"`
}

// Warnings returns the conflict warnings in the order they were recorded.
func (r *Report) Warnings() []Record {
	return warnings(r.Records)
}

// Errors returns the error records in the order they were recorded.
func (r *Report) Errors() []Record {
	return failures(r.Records)
}

// HasErrors reports whether any directory failed.
func (r *Report) HasErrors() bool {
	return len(r.Errors()) > 0
}

// Builder accumulates a Report one directory at a time.
type Builder struct {
	root    string
	dryRun  bool
	dirs    []DirResult
	records []Record
}

// NewBuilder starts a report for root.
func NewBuilder(root string, dryRun bool) *Builder {
	return &Builder{root: root, dryRun: dryRun}
}

// Excepted records a variant left alone because it is in the exception set.
func (b *Builder) Excepted(name, base, display string) {
	b.dirs = append(b.dirs, DirResult{
		Name:    name,
		Base:    base,
		Display: display,
		Outcome: OutcomeExcepted,
		Reason:  "in exception set",
	})
}

// Skipped records a variant left alone because its base does not exist.
func (b *Builder) Skipped(name, base, display string) {
	b.dirs = append(b.dirs, DirResult{
		Name:    name,
		Base:    base,
		Display: display,
		Outcome: OutcomeSkipped,
		Reason:  fmt.Sprintf("no base directory %s", base),
	})
}

// StartMerge opens the record for a variant being merged into base.
func (b *Builder) StartMerge(name, base, display string) *MergeRecorder {
	b.dirs = append(b.dirs, DirResult{
		Name:    name,
		Base:    base,
		Display: display,
		Outcome: OutcomeMerged,
		Reason:  fmt.Sprintf("merged into %s", base),
	})
	return &MergeRecorder{b: b, idx: len(b.dirs) - 1}
}

// Build computes the counts and returns the report.
func (b *Builder) Build() *Report {
	r := &Report{
		Root:    b.root,
		DryRun:  b.dryRun,
		Dirs:    append([]DirResult(nil), b.dirs...),
		Records: append([]Record(nil), b.records...),
	}
	for _, d := range r.Dirs {
		switch d.Outcome {
		case OutcomeExcepted:
			r.Excepted++
		case OutcomeSkipped:
			r.Skipped++
		case OutcomeMerged:
			if d.Failed {
				r.Failed++
			} else {
				r.Merged++
			}
		}
		r.FilesMoved += d.FilesMoved
		r.Overwrites += len(d.Overwritten)
	}
	return r
}

// MergeRecorder collects the file level results of one merge.
type MergeRecorder struct {
	b   *Builder
	idx int
}

func (m *MergeRecorder) dir() *DirResult {
	return &m.b.dirs[m.idx]
}

// Moved records a file moved into the base. An overwrite adds a conflict
// warning.
func (m *MergeRecorder) Moved(file string, overwrote bool) {
	d := m.dir()
	d.FilesMoved++
	if !overwrote {
		return
	}
	d.Overwritten = append(d.Overwritten, file)
	m.b.records = append(m.b.records, Record{
		Kind:    KindConflict,
		Dir:     d.Name,
		File:    file,
		Message: fmt.Sprintf("%s overwrites %s/%s", file, d.Base, file),
	})
}

// MoveFailed records a file that could not be moved.
func (m *MergeRecorder) MoveFailed(file string, err error) {
	d := m.dir()
	d.Failed = true
	d.Reason = fmt.Sprintf("partially merged into %s", d.Base)
	m.b.records = append(m.b.records, newErrorRecord(KindPartialMerge, d.Name, file, err))
}

// Removed records that the emptied variant directory was deleted.
func (m *MergeRecorder) Removed() {
	m.dir().Removed = true
}

// CleanupFailed records that the variant directory survived its merge.
func (m *MergeRecorder) CleanupFailed(err error) {
	d := m.dir()
	d.Failed = true
	d.Reason = fmt.Sprintf("merged into %s, directory not removed", d.Base)
	m.b.records = append(m.b.records, newErrorRecord(KindCleanup, d.Name, "", err))
}
