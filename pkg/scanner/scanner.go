// Package scanner classifies the immediate children of a resource root into
// locale directories.
package scanner

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/locfold/pkg/errors"
	"github.com/arthur-debert/locfold/pkg/locale"
	"github.com/arthur-debert/locfold/pkg/logging"
	"github.com/arthur-debert/locfold/pkg/types"
)

// Result is the classified content of a resource root. Every slice is in
// lexicographic order of directory name.
type Result struct {
	Root     string       `json:"root" yaml:"root"`
	Default  bool         `json:"default" yaml:"default"`
	Bases    []locale.Dir `json:"bases" yaml:"bases"`
	Variants []locale.Dir `json:"variants" yaml:"variants"`
	// Ignored holds names in the locale namespace that fail the grammar.
	Ignored []string `json:"ignored" yaml:"ignored"`
}

// Scanner walks a resource root using a locale grammar.
type Scanner struct {
	fs      types.FS
	grammar *locale.Grammar
}

// New creates a scanner. A nil grammar means the default Android grammar.
func New(fs types.FS, grammar *locale.Grammar) *Scanner {
	if grammar == nil {
		grammar = locale.DefaultGrammar()
	}
	return &Scanner{fs: fs, grammar: grammar}
}

// Grammar returns the grammar the scanner classifies with.
func (s *Scanner) Grammar() *locale.Grammar {
	return s.grammar
}

// CheckRoot verifies that root exists and is a directory.
func CheckRoot(fs types.FS, root string) error {
	info, err := fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(err, errors.ErrPathNotFound, "resource root does not exist").
				WithDetail("path", root)
		}
		if os.IsPermission(err) {
			return errors.Wrap(err, errors.ErrRootPermission, "resource root is not accessible").
				WithDetail("path", root)
		}
		return errors.Wrap(err, errors.ErrRootRead, "cannot access resource root").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return errors.New(errors.ErrNotADirectory, "resource root is not a directory").
			WithDetail("path", root)
	}
	return nil
}

// Scan classifies every directory directly under root. Files, symlinks and
// unrelated directories are not reported.
func (s *Scanner) Scan(root string) (*Result, error) {
	logger := logging.GetLogger("scanner")
	logger.Debug().Str("root", root).Msg("Scanning resource root")

	if err := CheckRoot(s.fs, root); err != nil {
		return nil, err
	}

	entries, err := s.fs.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRootRead, "cannot read resource root").
			WithDetail("path", root)
	}

	result := &Result{Root: root}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		d := s.grammar.Classify(entry.Name())
		switch d.Kind {
		case locale.KindDefault:
			result.Default = true
		case locale.KindBase:
			result.Bases = append(result.Bases, d)
		case locale.KindVariant:
			result.Variants = append(result.Variants, d)
		case locale.KindMalformed:
			logger.Debug().Str("dir", d.Name).Msg("Ignoring malformed locale directory")
			result.Ignored = append(result.Ignored, d.Name)
		default:
			logger.Trace().Str("dir", d.Name).Msg("Skipping unrelated directory")
		}
	}

	logger.Info().
		Int("bases", len(result.Bases)).
		Int("variants", len(result.Variants)).
		Int("ignored", len(result.Ignored)).
		Msg("Scanned resource root")
	return result, nil
}

// BaseExists reports whether base is a directory directly under root. It is
// queried at decision time rather than taken from a scan.
func (s *Scanner) BaseExists(root, base string) (bool, error) {
	info, err := s.fs.Stat(filepath.Join(root, base))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(err, errors.ErrBaseAccess, "cannot access base directory").
			WithDetail("base", base)
	}
	return info.IsDir(), nil
}
