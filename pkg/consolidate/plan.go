package consolidate

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/locfold/pkg/errors"
	"github.com/arthur-debert/locfold/pkg/locale"
	"github.com/arthur-debert/locfold/pkg/logging"
	"github.com/arthur-debert/locfold/pkg/report"
)

// Move is one file that a merge relocates into the base directory.
type Move struct {
	File       string
	Overwrites bool
	// Err is set when the move is expected to fail, for example because
	// the base holds a directory of the same name.
	Err error
}

// Decision is the resolved outcome for one variant directory.
type Decision struct {
	Variant locale.Dir
	Base    string
	Outcome report.Outcome
	Moves   []Move
	// Residue lists entries that are not moved and will keep the variant
	// directory from being removed.
	Residue []string
	// Err is set when the variant or its base could not be inspected.
	Err error
}

// removes reports whether carrying out the decision would delete the
// variant directory.
func (d Decision) removes() bool {
	if d.Outcome != report.OutcomeMerged || d.Err != nil || len(d.Residue) > 0 {
		return false
	}
	for _, mv := range d.Moves {
		if mv.Err != nil {
			return false
		}
	}
	return true
}

// Plan resolves every variant under root without touching the filesystem.
// Variants that an earlier planned merge would remove no longer count as
// bases for the variants after them.
func (e *Engine) Plan(root string) ([]Decision, error) {
	scan, err := e.scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	claimed := make(map[string]map[string]bool)
	removed := make(map[string]bool)

	decisions := make([]Decision, 0, len(scan.Variants))
	for _, v := range scan.Variants {
		d := e.decide(root, v, claimed, removed)
		if d.removes() {
			removed[v.Name] = true
		}
		decisions = append(decisions, d)
	}
	return decisions, nil
}

// decide resolves one variant against the tree as it is now. claimed
// tracks, per base, the files earlier variants move there; removed names
// directories that are gone by the time this variant is considered.
func (e *Engine) decide(root string, v locale.Dir, claimed map[string]map[string]bool, removed map[string]bool) Decision {
	d := Decision{Variant: v, Base: v.BaseName}

	if e.exceptions.Contains(v.Name) {
		d.Outcome = report.OutcomeExcepted
		return d
	}

	exists, err := e.scanner.BaseExists(root, d.Base)
	if err != nil {
		d.Outcome = report.OutcomeMerged
		d.Err = err
		return d
	}
	if !exists || removed[d.Base] {
		d.Outcome = report.OutcomeSkipped
		return d
	}

	d.Outcome = report.OutcomeMerged
	if claimed[d.Base] == nil {
		claimed[d.Base] = make(map[string]bool)
	}
	d.Moves, d.Residue, d.Err = e.planMoves(root, v.Name, d.Base, claimed[d.Base])
	logging.GetLogger("consolidate").Debug().
		Str("dir", v.Name).
		Int("moves", len(d.Moves)).
		Strs("residue", d.Residue).
		Msg("Planned merge")
	return d
}

func (e *Engine) planMoves(root, variant, base string, claimed map[string]bool) ([]Move, []string, error) {
	dir := filepath.Join(root, variant)
	entries, err := e.fs.ReadDir(dir)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrDirRead, "cannot read variant directory").
			WithDetail("dir", variant)
	}

	var moves []Move
	var residue []string
	for _, entry := range entries {
		name := entry.Name()
		if !e.isFile(filepath.Join(dir, name), entry.Type()) {
			residue = append(residue, name)
			continue
		}

		dst := filepath.Join(root, base, name)
		mv := Move{File: name, Err: e.checkDestination(dst)}
		if mv.Err == nil {
			mv.Overwrites = claimed[name]
			if !mv.Overwrites {
				_, err := e.fs.Lstat(dst)
				mv.Overwrites = err == nil
			}
			claimed[name] = true
		}
		moves = append(moves, mv)
	}
	return moves, residue, nil
}

// checkDestination fails when dst is a directory. A file is never moved
// over a directory, whatever the filesystem's rename would do.
func (e *Engine) checkDestination(dst string) error {
	info, err := e.fs.Lstat(dst)
	if err != nil || !info.IsDir() {
		return nil
	}
	return errors.New(errors.ErrFileMove, "destination is a directory").
		WithDetail("destination", dst)
}

// isFile reports whether an entry is a regular file, following symlinks.
func (e *Engine) isFile(path string, mode os.FileMode) bool {
	if mode.IsRegular() {
		return true
	}
	if mode&os.ModeSymlink == 0 {
		return false
	}
	info, err := e.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
