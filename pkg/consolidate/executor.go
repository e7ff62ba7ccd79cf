package consolidate

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/locfold/pkg/errors"
	"github.com/arthur-debert/locfold/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
)

// treeFS exposes a types.FS to synthfs operations. Paths pass through
// unchanged. Only the calls the engine's operations make are backed.
type treeFS struct {
	fs types.FS
}

var _ synthfs.FullFileSystem = treeFS{}

func (t treeFS) Open(name string) (fs.File, error) {
	return nil, unsupported("open", name)
}

func (t treeFS) Stat(name string) (fs.FileInfo, error) {
	return t.fs.Stat(name)
}

func (t treeFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return t.fs.WriteFile(name, data, perm)
}

func (t treeFS) MkdirAll(path string, perm fs.FileMode) error {
	return t.fs.MkdirAll(path, perm)
}

func (t treeFS) Remove(name string) error {
	return t.fs.Remove(name)
}

// RemoveAll is refused: a variant directory is only ever removed once empty.
func (t treeFS) RemoveAll(name string) error {
	return unsupported("removeall", name)
}

func (t treeFS) Symlink(oldname, newname string) error {
	return unsupported("symlink", newname)
}

func (t treeFS) Readlink(name string) (string, error) {
	return "", unsupported("readlink", name)
}

func (t treeFS) Rename(oldpath, newpath string) error {
	return t.fs.Rename(oldpath, newpath)
}

func unsupported(op, path string) error {
	return &fs.PathError{Op: op, Path: path, Err: stderrors.ErrUnsupported}
}

// opRunner runs merge steps as synthfs pipelines over the engine's FS.
type opRunner struct {
	fs       treeFS
	executor *synthfs.Executor
}

func newOpRunner(fsys types.FS) *opRunner {
	return &opRunner{
		fs:       treeFS{fs: fsys},
		executor: synthfs.NewExecutor(),
	}
}

// moveOp moves src to dst once check passes. With validate set, check also
// runs when the operation is validated. The pipeline validates every
// operation before running any, so real runs leave it unset and let a
// failing check fail only its own move.
func moveOp(id, src, dst string, check func() error, validate bool) synthfs.Operation {
	op := synthfs.NewCustomOperation(id, func(_ context.Context, fsys filesystem.FileSystem) error {
		if err := check(); err != nil {
			return err
		}
		return fsys.Rename(src, dst)
	}).WithDescription(fmt.Sprintf("move %s to %s", src, dst))
	if validate {
		op = op.WithValidation(func(context.Context, filesystem.FileSystem) error {
			return check()
		})
	}
	return synthfs.NewCustomOperationAdapter(op)
}

// removeOp removes an empty directory.
func removeOp(id, dir string) synthfs.Operation {
	op := synthfs.NewCustomOperation(id, func(_ context.Context, fsys filesystem.FileSystem) error {
		return fsys.Remove(dir)
	}).WithDescription(fmt.Sprintf("remove %s", dir))
	return synthfs.NewCustomOperationAdapter(op)
}

// run executes ops in order, carrying on past failures, and returns each
// operation's error by index.
func (r *opRunner) run(ctx context.Context, ops []synthfs.Operation) []error {
	errs := make([]error, len(ops))
	if len(ops) == 0 {
		return errs
	}

	pipeline := synthfs.NewMemPipeline()
	if err := pipeline.Add(ops...); err != nil {
		return fill(errs, errors.Wrap(err, errors.ErrInternal, "cannot queue operations"))
	}

	opts := synthfs.DefaultPipelineOptions()
	opts.ContinueOnError = true
	result := r.executor.RunWithOptions(ctx, pipeline, r.fs, opts)

	ran := make(map[synthfs.OperationID]error, len(ops))
	for _, raw := range result.GetOperations() {
		if res, ok := raw.(synthfs.OperationResult); ok {
			ran[res.OperationID] = res.Error
		}
	}

	for i, op := range ops {
		err, ok := ran[op.ID()]
		if !ok {
			err = result.GetError()
			if err == nil {
				err = errors.Newf(errors.ErrInternal, "operation %s did not run", op.ID())
			}
		}
		errs[i] = err
	}
	return errs
}

// validate checks ops without executing them.
func (r *opRunner) validate(ctx context.Context, ops []synthfs.Operation) []error {
	errs := make([]error, len(ops))
	for i, op := range ops {
		errs[i] = op.Validate(ctx, r.fs)
	}
	return errs
}

func fill(errs []error, err error) []error {
	for i := range errs {
		errs[i] = err
	}
	return errs
}
