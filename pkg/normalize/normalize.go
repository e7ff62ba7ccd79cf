// Package normalize rewrites an escaped character sequence in the resource
// files of every locale directory.
package normalize

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/locfold/pkg/errors"
	"github.com/arthur-debert/locfold/pkg/locale"
	"github.com/arthur-debert/locfold/pkg/logging"
	"github.com/arthur-debert/locfold/pkg/report"
	"github.com/arthur-debert/locfold/pkg/scanner"
	"github.com/arthur-debert/locfold/pkg/types"
	"github.com/beevik/etree"
	"github.com/rs/zerolog"
)

const (
	// DefaultFind is the escaped apostrophe left behind by translation tools.
	DefaultFind = `\'`
	// DefaultReplace is a plain apostrophe.
	DefaultReplace = `'`
)

// DefaultExtensions are the file extensions normalized when none are set.
var DefaultExtensions = []string{".xml"}

// Options controls a normalization run.
type Options struct {
	Find    string
	Replace string
	// Extensions limits the files considered. Empty means every file.
	Extensions []string
	// ValidateXML refuses rewrites that turn well-formed XML into malformed XML.
	ValidateXML bool
	DryRun      bool
}

// DefaultOptions returns the escaped apostrophe rewrite for XML files.
func DefaultOptions() Options {
	return Options{
		Find:        DefaultFind,
		Replace:     DefaultReplace,
		Extensions:  DefaultExtensions,
		ValidateXML: true,
	}
}

// Normalizer rewrites files below locale directories.
type Normalizer struct {
	fs      types.FS
	grammar *locale.Grammar
}

// New creates a normalizer. A nil grammar means the default Android grammar.
func New(fs types.FS, grammar *locale.Grammar) *Normalizer {
	if grammar == nil {
		grammar = locale.DefaultGrammar()
	}
	return &Normalizer{fs: fs, grammar: grammar}
}

// Normalize visits every directory under root whose name starts with the
// locale prefix and rewrites matching files recursively. Files are handled
// independently; a failing file is recorded and the run continues.
func (n *Normalizer) Normalize(root string, opts Options) (*report.NormalizeReport, error) {
	logger := logging.GetLogger("normalize")
	defer logging.LogOperationStart(logger, "normalize")()

	if opts.Find == "" {
		return nil, errors.New(errors.ErrInvalidInput, "nothing to find")
	}
	if err := scanner.CheckRoot(n.fs, root); err != nil {
		return nil, err
	}

	entries, err := n.fs.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRootRead, "cannot read resource root").
			WithDetail("path", root)
	}

	r := report.NewNormalizeReport(root, opts.DryRun)
	w := &walker{n: n, opts: opts, report: r, root: root, logger: logger}
	for _, entry := range entries {
		if !entry.IsDir() || !n.grammar.IsLocaleDir(entry.Name()) {
			continue
		}
		w.walk(entry.Name(), entry.Name())
	}

	logger.Info().
		Int("processed", r.FilesProcessed).
		Int("modified", r.FilesModified).
		Int("replacements", r.Replacements).
		Bool("dry_run", r.DryRun).
		Msg("Normalization finished")
	return r, nil
}

type walker struct {
	n      *Normalizer
	opts   Options
	report *report.NormalizeReport
	root   string
	logger zerolog.Logger
}

// walk visits rel, a slash separated path below the root inside locale dir.
func (w *walker) walk(dir, rel string) {
	full := filepath.Join(w.root, filepath.FromSlash(rel))
	entries, err := w.n.fs.ReadDir(full)
	if err != nil {
		w.logger.Error().Err(err).Str("path", rel).Msg("Cannot read directory")
		w.report.Failed(dir, rel, errors.Wrap(err, errors.ErrDirRead, "cannot read directory"))
		return
	}

	for _, entry := range entries {
		child := path.Join(rel, entry.Name())
		if entry.IsDir() {
			w.walk(dir, child)
			continue
		}
		if !entry.Type().IsRegular() || !w.matches(entry.Name()) {
			continue
		}
		w.file(dir, child)
	}
}

func (w *walker) matches(name string) bool {
	if len(w.opts.Extensions) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, want := range w.opts.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

func (w *walker) file(dir, rel string) {
	full := filepath.Join(w.root, filepath.FromSlash(rel))
	log := w.logger.With().Str("file", rel).Logger()
	w.report.Processed()

	data, err := w.n.fs.ReadFile(full)
	if err != nil {
		log.Error().Err(err).Msg("Cannot read file")
		w.report.Failed(dir, rel, errors.Wrap(err, errors.ErrFileRead, "cannot read file"))
		return
	}

	content := string(data)
	count := strings.Count(content, w.opts.Find)
	if count == 0 {
		log.Trace().Msg("Nothing to replace")
		return
	}
	rewritten := strings.ReplaceAll(content, w.opts.Find, w.opts.Replace)

	if w.opts.ValidateXML && strings.EqualFold(filepath.Ext(rel), ".xml") &&
		wellFormed(data) && !wellFormed([]byte(rewritten)) {
		log.Warn().Msg("Rewrite would produce malformed XML, leaving file untouched")
		w.report.Failed(dir, rel, errors.New(errors.ErrInvalidXML, "rewrite would produce malformed XML"))
		return
	}

	if !w.opts.DryRun {
		info, err := w.n.fs.Stat(full)
		if err != nil {
			w.report.Failed(dir, rel, errors.Wrap(err, errors.ErrFileRead, "cannot stat file"))
			return
		}
		if err := w.n.fs.WriteFile(full, []byte(rewritten), info.Mode().Perm()); err != nil {
			log.Error().Err(err).Msg("Cannot write file")
			w.report.Failed(dir, rel, errors.Wrap(err, errors.ErrFileWrite, "cannot write file"))
			return
		}
	}

	log.Info().Int("replacements", count).Msg("Normalized file")
	w.report.Changed(dir, rel, count)
}

func wellFormed(data []byte) bool {
	return etree.NewDocument().ReadFromBytes(data) == nil
}
