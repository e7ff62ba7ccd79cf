package testutil

import (
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/locfold/pkg/types"
)

// Op names a filesystem operation that FaultFS can fail.
type Op string

const (
	OpStat      Op = "stat"
	OpLstat     Op = "lstat"
	OpReadFile  Op = "readfile"
	OpWriteFile Op = "writefile"
	OpMkdirAll  Op = "mkdirall"
	OpReadDir   Op = "readdir"
	OpRename    Op = "rename"
	OpRemove    Op = "remove"
)

// FaultFS wraps a types.FS and fails selected operations. Rename faults are
// keyed by the source path.
type FaultFS struct {
	types.FS

	mu     sync.Mutex
	faults map[Op]map[string]error
	calls  map[Op]int
}

// NewFaultFS wraps inner.
func NewFaultFS(inner types.FS) *FaultFS {
	return &FaultFS{
		FS:     inner,
		faults: make(map[Op]map[string]error),
		calls:  make(map[Op]int),
	}
}

// WithError makes op on path fail with err.
func (f *FaultFS) WithError(op Op, path string, err error) *FaultFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.faults[op] == nil {
		f.faults[op] = make(map[string]error)
	}
	f.faults[op][filepath.Clean(path)] = err
	return f
}

// Calls returns how many times op was invoked.
func (f *FaultFS) Calls(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FaultFS) fault(op Op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	if err, ok := f.faults[op][filepath.Clean(path)]; ok {
		return &fs.PathError{Op: string(op), Path: path, Err: err}
	}
	return nil
}

func (f *FaultFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.fault(OpStat, name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.fault(OpLstat, name); err != nil {
		return nil, err
	}
	return f.FS.Lstat(name)
}

func (f *FaultFS) ReadFile(name string) ([]byte, error) {
	if err := f.fault(OpReadFile, name); err != nil {
		return nil, err
	}
	return f.FS.ReadFile(name)
}

func (f *FaultFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.fault(OpWriteFile, name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.fault(OpMkdirAll, path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.fault(OpReadDir, name); err != nil {
		return nil, err
	}
	return f.FS.ReadDir(name)
}

func (f *FaultFS) Rename(oldpath, newpath string) error {
	if err := f.fault(OpRename, oldpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultFS) Remove(name string) error {
	if err := f.fault(OpRemove, name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}
