package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/locfold/pkg/filesystem"
	"github.com/arthur-debert/locfold/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment holds a resource root and the filesystem it lives on.
type TestEnvironment struct {
	Root string
	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment with an empty resource root.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.Root = "/virtual/composeResources"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		env.Root = filepath.Join(t.TempDir(), "composeResources")
		env.FS = filesystem.NewOS()
	default:
		t.Fatalf("unknown environment type %d", envType)
	}

	if err := env.FS.MkdirAll(env.Root, 0755); err != nil {
		t.Fatalf("Failed to create resource root: %v", err)
	}
	return env
}

// Path joins elements onto the resource root.
func (env *TestEnvironment) Path(elem ...string) string {
	return filepath.Join(append([]string{env.Root}, elem...)...)
}

// WithFileTree creates a complete file tree structure under the root.
func (env *TestEnvironment) WithFileTree(tree FileTree) *TestEnvironment {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.Root, tree)
	return env
}

// Snapshot returns every file under the root keyed by its slash separated
// relative path. Empty directories are recorded with a trailing slash and
// an empty value.
func (env *TestEnvironment) Snapshot() map[string]string {
	env.t.Helper()
	snap := make(map[string]string)
	readTree(env.t, env.FS, env.Root, "", snap)
	return snap
}

// Dirs returns the sorted names of the directories directly under the root.
func (env *TestEnvironment) Dirs() []string {
	env.t.Helper()
	entries, err := env.FS.ReadDir(env.Root)
	if err != nil {
		env.t.Fatalf("Failed to read root: %v", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Exists reports whether the path relative to the root exists.
func (env *TestEnvironment) Exists(elem ...string) bool {
	_, err := env.FS.Stat(env.Path(elem...))
	return err == nil
}

// ReadFile returns the content of a file relative to the root.
func (env *TestEnvironment) ReadFile(elem ...string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(env.Path(elem...))
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", filepath.Join(elem...), err)
	}
	return string(data)
}

// FileTree represents a directory structure for testing. Values are either
// file contents (string) or nested FileTrees.
type FileTree map[string]interface{}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fsys types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fsys.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
			}
			if err := fsys.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fsys.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fsys, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

func readTree(t *testing.T, fsys types.FS, dir, rel string, out map[string]string) {
	t.Helper()

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}
	if len(entries) == 0 && rel != "" {
		out[rel+"/"] = ""
		return
	}
	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		key := e.Name()
		if rel != "" {
			key = rel + "/" + e.Name()
		}
		if e.IsDir() {
			readTree(t, fsys, full, key, out)
			continue
		}
		if e.Type()&fs.ModeSymlink != 0 {
			out[key] = "->symlink"
			continue
		}
		data, err := fsys.ReadFile(full)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", full, err)
		}
		out[key] = string(data)
	}
}
