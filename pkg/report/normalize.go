package report

// FileChange is one file rewritten by the normalizer.
type FileChange struct {
	Path         string `json:"path" yaml:"path"`
	Dir          string `json:"dir" yaml:"dir"`
	Replacements int    `json:"replacements" yaml:"replacements"`
}

// DirTotal sums the changes made inside one locale directory.
type DirTotal struct {
	Dir           string `json:"dir" yaml:"dir"`
	FilesModified int    `json:"filesModified" yaml:"filesModified"`
	Replacements  int    `json:"replacements" yaml:"replacements"`
}

// NormalizeReport is the end-of-run summary of a normalization.
type NormalizeReport struct {
	Root           string       `json:"root" yaml:"root"`
	DryRun         bool         `json:"dryRun" yaml:"dryRun"`
	FilesProcessed int          `json:"filesProcessed" yaml:"filesProcessed"`
	FilesModified  int          `json:"filesModified" yaml:"filesModified"`
	Replacements   int          `json:"replacements" yaml:"replacements"`
	Files          []FileChange `json:"files" yaml:"files"`
	Dirs           []DirTotal   `json:"dirs" yaml:"dirs"`
	Records        []Record     `json:"records" yaml:"records"`
}

// NewNormalizeReport starts an empty report for root.
func NewNormalizeReport(root string, dryRun bool) *NormalizeReport {
	return &NormalizeReport{Root: root, DryRun: dryRun}
}

// Processed counts a file that was examined.
func (r *NormalizeReport) Processed() {
	r.FilesProcessed++
}

// Changed records n replacements in path, which lives in locale dir.
func (r *NormalizeReport) Changed(dir, path string, n int) {
	r.FilesModified++
	r.Replacements += n
	r.Files = append(r.Files, FileChange{Path: path, Dir: dir, Replacements: n})

	if len(r.Dirs) == 0 || r.Dirs[len(r.Dirs)-1].Dir != dir {
		r.Dirs = append(r.Dirs, DirTotal{Dir: dir})
	}
	total := &r.Dirs[len(r.Dirs)-1]
	total.FilesModified++
	total.Replacements += n
}

// Failed records a file the normalizer could not handle.
func (r *NormalizeReport) Failed(dir, path string, err error) {
	r.Records = append(r.Records, newErrorRecord(KindNormalize, dir, path, err))
}

// Errors returns the error records.
func (r *NormalizeReport) Errors() []Record {
	return failures(r.Records)
}

// HasErrors reports whether any file failed.
func (r *NormalizeReport) HasErrors() bool {
	return len(r.Errors()) > 0
}
