package consolidate

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/locfold/pkg/errors"
	"github.com/arthur-debert/locfold/pkg/locale"
	"github.com/arthur-debert/locfold/pkg/logging"
	"github.com/arthur-debert/locfold/pkg/report"
	"github.com/arthur-debert/locfold/pkg/scanner"
	"github.com/arthur-debert/locfold/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/rs/zerolog"
)

// Options controls a consolidation run.
type Options struct {
	// DryRun reports what would happen without changing the tree.
	DryRun bool
}

// Engine consolidates variant directories under a resource root. The
// grammar and exception set are fixed for the lifetime of the engine.
type Engine struct {
	fs         types.FS
	scanner    *scanner.Scanner
	runner     *opRunner
	exceptions locale.ExceptionSet
}

// New creates an engine. A nil grammar selects the default Android grammar;
// a nil exception set excepts nothing.
func New(fs types.FS, grammar *locale.Grammar, exceptions locale.ExceptionSet) *Engine {
	return &Engine{
		fs:         fs,
		scanner:    scanner.New(fs, grammar),
		runner:     newOpRunner(fs),
		exceptions: exceptions,
	}
}

// Consolidate runs the fold over root. The only returned errors are
// resource root failures; everything else is recorded in the report.
//
// A real run decides each variant when it reaches it, so a base that an
// earlier merge removed is already gone. A dry run follows Plan, which
// predicts the same removals.
func (e *Engine) Consolidate(root string, opts Options) (*report.Report, error) {
	logger := logging.GetLogger("consolidate")
	defer logging.LogOperationStart(logger, "consolidate")()
	ctx := context.Background()

	b := report.NewBuilder(root, opts.DryRun)
	if opts.DryRun {
		decisions, err := e.Plan(root)
		if err != nil {
			return nil, err
		}
		for _, d := range decisions {
			e.apply(ctx, logger, root, d, b, true)
		}
	} else {
		scan, err := e.scanner.Scan(root)
		if err != nil {
			return nil, err
		}
		claimed := make(map[string]map[string]bool)
		for _, v := range scan.Variants {
			e.apply(ctx, logger, root, e.decide(root, v, claimed, nil), b, false)
		}
	}

	r := b.Build()
	logger.Info().
		Int("merged", r.Merged).
		Int("skipped", r.Skipped).
		Int("excepted", r.Excepted).
		Int("failed", r.Failed).
		Bool("dry_run", r.DryRun).
		Msg("Consolidation finished")
	return r, nil
}

func (e *Engine) apply(ctx context.Context, logger zerolog.Logger, root string, d Decision, b *report.Builder, dryRun bool) {
	log := logger.With().Str("dir", d.Variant.Name).Str("base", d.Base).Logger()
	display := d.Variant.DisplayName()

	switch d.Outcome {
	case report.OutcomeExcepted:
		log.Info().Msg("Variant is excepted, leaving it untouched")
		b.Excepted(d.Variant.Name, d.Base, display)
	case report.OutcomeSkipped:
		log.Info().Msg("No base directory, leaving variant untouched")
		b.Skipped(d.Variant.Name, d.Base, display)
	case report.OutcomeMerged:
		rec := b.StartMerge(d.Variant.Name, d.Base, display)
		if dryRun {
			e.simulate(ctx, log, root, d, rec)
		} else {
			e.merge(ctx, log, root, d, rec)
		}
	}
}

// merge moves the planned files and then, as a separate step, removes the
// variant directory. A failed move skips the removal.
func (e *Engine) merge(ctx context.Context, log zerolog.Logger, root string, d Decision, rec *report.MergeRecorder) {
	if d.Err != nil {
		log.Error().Err(d.Err).Msg("Cannot merge variant")
		rec.MoveFailed("", d.Err)
		return
	}

	moved := e.moveFiles(ctx, log, root, d, rec)
	if !moved {
		log.Warn().Msg("Some files could not be moved, keeping variant directory")
		return
	}
	e.cleanup(ctx, log, root, d, rec)
}

func (e *Engine) moveOps(root string, d Decision, validate bool) []synthfs.Operation {
	ops := make([]synthfs.Operation, 0, len(d.Moves))
	for _, mv := range d.Moves {
		src := filepath.Join(root, d.Variant.Name, mv.File)
		dst := filepath.Join(root, d.Base, mv.File)
		check := func() error { return e.checkDestination(dst) }
		ops = append(ops, moveOp("move:"+d.Variant.Name+"/"+mv.File, src, dst, check, validate))
	}
	return ops
}

func (e *Engine) moveFiles(ctx context.Context, log zerolog.Logger, root string, d Decision, rec *report.MergeRecorder) bool {
	overwrites := make([]bool, len(d.Moves))
	for i, mv := range d.Moves {
		info, err := e.fs.Lstat(filepath.Join(root, d.Base, mv.File))
		overwrites[i] = err == nil && !info.IsDir()
	}

	errs := e.runner.run(ctx, e.moveOps(root, d, false))

	ok := true
	for i, mv := range d.Moves {
		if err := errs[i]; err != nil {
			log.Error().Err(err).Str("file", mv.File).Msg("Failed to move file")
			if errors.GetErrorCode(err) == errors.ErrUnknown {
				err = errors.Wrap(err, errors.ErrFileMove, "cannot move file").
					WithDetail("source", filepath.Join(root, d.Variant.Name, mv.File)).
					WithDetail("destination", filepath.Join(root, d.Base, mv.File))
			}
			rec.MoveFailed(mv.File, err)
			ok = false
			continue
		}

		if overwrites[i] {
			log.Warn().Str("file", mv.File).Msg("Overwrote existing file in base directory")
		}
		log.Debug().Str("file", mv.File).Msg("Moved file")
		rec.Moved(mv.File, overwrites[i])
	}
	return ok
}

func (e *Engine) cleanup(ctx context.Context, log zerolog.Logger, root string, d Decision, rec *report.MergeRecorder) {
	dir := filepath.Join(root, d.Variant.Name)

	entries, err := e.fs.ReadDir(dir)
	if err != nil {
		log.Error().Err(err).Msg("Cannot read variant directory before removal")
		rec.CleanupFailed(errors.Wrap(err, errors.ErrDirCleanup, "cannot read variant directory").
			WithDetail("dir", d.Variant.Name))
		return
	}
	if len(entries) > 0 {
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		log.Warn().Strs("entries", names).Msg("Variant directory is not empty after merge")
		rec.CleanupFailed(errors.Newf(errors.ErrDirNotEmpty, "%s still holds %d entries", d.Variant.Name, len(names)).
			WithDetail("entries", names))
		return
	}

	errs := e.runner.run(ctx, []synthfs.Operation{removeOp("remove:"+d.Variant.Name, dir)})
	if err := errs[0]; err != nil {
		log.Error().Err(err).Msg("Failed to remove variant directory")
		rec.CleanupFailed(errors.Wrap(err, errors.ErrDirCleanup, "cannot remove variant directory").
			WithDetail("dir", d.Variant.Name))
		return
	}

	log.Info().Int("files", len(d.Moves)).Msg("Merged variant into base")
	rec.Removed()
}

// simulate validates the planned moves without running them and records
// the merge as if it had run.
func (e *Engine) simulate(ctx context.Context, log zerolog.Logger, root string, d Decision, rec *report.MergeRecorder) {
	if d.Err != nil {
		rec.MoveFailed("", d.Err)
		return
	}

	errs := e.runner.validate(ctx, e.moveOps(root, d, true))

	ok := true
	for i, mv := range d.Moves {
		if errs[i] != nil {
			rec.MoveFailed(mv.File, errs[i])
			ok = false
			continue
		}
		rec.Moved(mv.File, mv.Overwrites)
	}
	if !ok {
		log.Warn().Msg("Some files would not move, variant directory would stay")
		return
	}

	if len(d.Residue) > 0 {
		rec.CleanupFailed(errors.Newf(errors.ErrDirNotEmpty, "%s would still hold %d entries", d.Variant.Name, len(d.Residue)).
			WithDetail("entries", d.Residue))
		return
	}
	log.Info().Int("files", len(d.Moves)).Msg("Would merge variant into base")
	rec.Removed()
}
