package consolidate_test

import (
	"io/fs"
	"testing"

	"github.com/arthur-debert/locfold/pkg/consolidate"
	"github.com/arthur-debert/locfold/pkg/errors"
	"github.com/arthur-debert/locfold/pkg/locale"
	"github.com/arthur-debert/locfold/pkg/report"
	"github.com/arthur-debert/locfold/pkg/testutil"
	"github.com/arthur-debert/locfold/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(fsys types.FS) *consolidate.Engine {
	return consolidate.New(fsys, locale.DefaultGrammar(), locale.NewExceptionSet(locale.DefaultExceptions...))
}

func run(t *testing.T, env *testutil.TestEnvironment) *report.Report {
	t.Helper()
	r, err := newEngine(env.FS).Consolidate(env.Root, consolidate.Options{})
	require.NoError(t, err)
	return r
}

func TestMergeWithOverwrite(t *testing.T) {
	for name, envType := range map[string]testutil.EnvType{
		"memory":   testutil.EnvMemoryOnly,
		"isolated": testutil.EnvIsolated,
	} {
		t.Run(name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, envType)
			env.WithFileTree(testutil.FileTree{
				"values-ar": testutil.FileTree{
					"strings.xml": "ar strings",
				},
				"values-ar-rSA": testutil.FileTree{
					"strings.xml":  "sa strings",
					"greeting.xml": "sa greeting",
				},
			})

			r := run(t, env)

			assert.Equal(t, map[string]string{
				"values-ar/strings.xml":  "sa strings",
				"values-ar/greeting.xml": "sa greeting",
			}, env.Snapshot())
			assert.False(t, env.Exists("values-ar-rSA"))

			assert.Equal(t, 1, r.Merged)
			assert.Equal(t, 0, r.Skipped)
			assert.Equal(t, 0, r.Excepted)
			assert.Equal(t, 0, r.Failed)
			assert.Equal(t, 2, r.FilesMoved)
			require.Len(t, r.Warnings(), 1)
			assert.Equal(t, "strings.xml", r.Warnings()[0].File)
			assert.Equal(t, "values-ar-rSA", r.Warnings()[0].Dir)
			assert.False(t, r.HasErrors())

			require.Len(t, r.Dirs, 1)
			assert.True(t, r.Dirs[0].Removed)
			assert.Equal(t, "values-ar", r.Dirs[0].Base)
		})
	}
}

func TestSkipWithoutBase(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"values-zh-rCN": testutil.FileTree{"strings.xml": "cn"},
	})
	before := env.Snapshot()

	r := run(t, env)

	assert.Equal(t, before, env.Snapshot())
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 0, r.Merged)
	require.Len(t, r.Dirs, 1)
	assert.Equal(t, report.OutcomeSkipped, r.Dirs[0].Outcome)
	assert.Equal(t, "no base directory values-zh", r.Dirs[0].Reason)
}

func TestBaseThatIsAFileIsSkipped(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"values-zh":     "not a directory",
		"values-zh-rCN": testutil.FileTree{"strings.xml": "cn"},
	})
	before := env.Snapshot()

	r := run(t, env)

	assert.Equal(t, before, env.Snapshot())
	assert.Equal(t, 1, r.Skipped)
}

func TestExceptedVariants(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"values-es":     testutil.FileTree{"strings.xml": "es"},
		"values-es-rAR": testutil.FileTree{"strings.xml": "ar"},
		"values-pt-rBR": testutil.FileTree{"strings.xml": "br"},
	})
	before := env.Snapshot()

	r := run(t, env)

	assert.Equal(t, before, env.Snapshot())
	assert.Equal(t, 2, r.Excepted)
	assert.Equal(t, 0, r.Skipped)
	assert.Equal(t, 0, r.Merged)
	for _, d := range r.Dirs {
		assert.Equal(t, report.OutcomeExcepted, d.Outcome)
	}
}

func TestAlternateExceptionSet(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"values-es":     testutil.FileTree{"strings.xml": "es"},
		"values-es-rAR": testutil.FileTree{"strings.xml": "ar"},
		"values-fr":     testutil.FileTree{},
		"values-fr-rCA": testutil.FileTree{"strings.xml": "ca"},
	})

	engine := consolidate.New(env.FS, nil, locale.NewExceptionSet("values-fr-rCA"))
	r, err := engine.Consolidate(env.Root, consolidate.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, r.Merged)
	assert.Equal(t, 1, r.Excepted)
	assert.Equal(t, "ar", env.ReadFile("values-es", "strings.xml"))
	assert.True(t, env.Exists("values-fr-rCA", "strings.xml"))
}

func TestLaterVariantWins(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"values-ar":     testutil.FileTree{"base.xml": "base"},
		"values-ar-rEG": testutil.FileTree{"strings.xml": "eg", "eg.xml": "eg only"},
		"values-ar-rSA": testutil.FileTree{"strings.xml": "sa"},
	})

	r := run(t, env)

	assert.Equal(t, map[string]string{
		"values-ar/base.xml":    "base",
		"values-ar/eg.xml":      "eg only",
		"values-ar/strings.xml": "sa",
	}, env.Snapshot())
	assert.Equal(t, 2, r.Merged)
	require.Len(t, r.Dirs, 2)
	assert.Equal(t, "values-ar-rEG", r.Dirs[0].Name)
	assert.Equal(t, "values-ar-rSA", r.Dirs[1].Name)
	require.Len(t, r.Warnings(), 1)
	assert.Equal(t, "values-ar-rSA", r.Warnings()[0].Dir)
}

func TestIdempotent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"values":        testutil.FileTree{"strings.xml": "default"},
		"values-ar":     testutil.FileTree{"strings.xml": "ar"},
		"values-ar-rSA": testutil.FileTree{"strings.xml": "sa"},
		"values-es":     testutil.FileTree{"strings.xml": "es"},
		"values-es-rAR": testutil.FileTree{"strings.xml": "ar"},
		"values-zh-rCN": testutil.FileTree{"strings.xml": "cn"},
	})

	first := run(t, env)
	afterFirst := env.Snapshot()
	second := run(t, env)

	assert.Equal(t, afterFirst, env.Snapshot())
	assert.Equal(t, 1, first.Merged)
	assert.Equal(t, 0, second.Merged)
	assert.Equal(t, 0, second.FilesMoved)
	assert.Equal(t, first.Skipped, second.Skipped)
	assert.Equal(t, first.Excepted, second.Excepted)
	assert.Empty(t, second.Records)
}

func TestUntouchedEntries(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"values-es-rar": testutil.FileTree{"strings.xml": "malformed"},
		"values-es":     testutil.FileTree{},
		"drawable-rSA":  testutil.FileTree{"icon.png": "png"},
		"values-ar-rSA": "file, not directory",
		"values-ar":     testutil.FileTree{},
	})
	before := env.Snapshot()

	r := run(t, env)

	assert.Equal(t, before, env.Snapshot())
	assert.Empty(t, r.Dirs)
}

func TestNestedDirectoryBlocksCleanup(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"values-ar": testutil.FileTree{},
		"values-ar-rSA": testutil.FileTree{
			"strings.xml": "sa",
			"nested":      testutil.FileTree{"deep.xml": "deep"},
		},
	})

	r := run(t, env)

	assert.Equal(t, map[string]string{
		"values-ar/strings.xml":         "sa",
		"values-ar-rSA/nested/deep.xml": "deep",
	}, env.Snapshot())
	assert.Equal(t, 0, r.Merged)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 1, r.FilesMoved)
	require.Len(t, r.Errors(), 1)
	assert.Equal(t, report.KindCleanup, r.Errors()[0].Kind)
	assert.Equal(t, errors.ErrDirNotEmpty, r.Errors()[0].Code)
	assert.False(t, r.Dirs[0].Removed)

	// Removing the residue and rerunning finishes the job.
	require.NoError(t, env.FS.Remove(env.Path("values-ar-rSA", "nested", "deep.xml")))
	require.NoError(t, env.FS.Remove(env.Path("values-ar-rSA", "nested")))
	second := run(t, env)
	assert.Equal(t, 1, second.Merged)
	assert.False(t, env.Exists("values-ar-rSA"))
}

func TestPartialMergeFailure(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"values-ar":     testutil.FileTree{},
		"values-ar-rSA": testutil.FileTree{"a.xml": "a", "b.xml": "b"},
		"values-fr":     testutil.FileTree{},
		"values-fr-rCA": testutil.FileTree{"c.xml": "c"},
	})
	ffs := testutil.NewFaultFS(env.FS).
		WithError(testutil.OpRename, env.Path("values-ar-rSA", "a.xml"), fs.ErrPermission)

	r, err := newEngine(ffs).Consolidate(env.Root, consolidate.Options{})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"values-ar/b.xml":     "b",
		"values-ar-rSA/a.xml": "a",
		"values-fr/c.xml":     "c",
	}, env.Snapshot())
	assert.Equal(t, 1, r.Merged)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 1, ffs.Calls(testutil.OpRemove), "only the complete merge removes its directory")

	require.Len(t, r.Errors(), 1)
	rec := r.Errors()[0]
	assert.Equal(t, report.KindPartialMerge, rec.Kind)
	assert.Equal(t, errors.ErrFileMove, rec.Code)
	assert.Equal(t, "a.xml", rec.File)
	assert.Equal(t, "values-ar-rSA", rec.Dir)
}

func TestRemoveFailure(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"values-ar":     testutil.FileTree{},
		"values-ar-rSA": testutil.FileTree{"a.xml": "a"},
	})
	ffs := testutil.NewFaultFS(env.FS).
		WithError(testutil.OpRemove, env.Path("values-ar-rSA"), fs.ErrPermission)

	r, err := newEngine(ffs).Consolidate(env.Root, consolidate.Options{})
	require.NoError(t, err)

	assert.True(t, env.Exists("values-ar", "a.xml"))
	assert.True(t, env.Exists("values-ar-rSA"))
	require.Len(t, r.Errors(), 1)
	assert.Equal(t, report.KindCleanup, r.Errors()[0].Kind)
	assert.Equal(t, errors.ErrDirCleanup, r.Errors()[0].Code)
	assert.Equal(t, 1, r.FilesMoved)
}

func TestVariantUnreadable(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"values-ar":     testutil.FileTree{},
		"values-ar-rSA": testutil.FileTree{"a.xml": "a"},
		"values-zh":     testutil.FileTree{},
		"values-zh-rTW": testutil.FileTree{"b.xml": "b"},
	})
	ffs := testutil.NewFaultFS(env.FS).
		WithError(testutil.OpReadDir, env.Path("values-ar-rSA"), fs.ErrPermission).
		WithError(testutil.OpStat, env.Path("values-zh"), fs.ErrPermission)

	r, err := newEngine(ffs).Consolidate(env.Root, consolidate.Options{})
	require.NoError(t, err)

	assert.True(t, env.Exists("values-ar-rSA", "a.xml"))
	assert.True(t, env.Exists("values-zh-rTW", "b.xml"))
	assert.Equal(t, 2, r.Failed)
	require.Len(t, r.Errors(), 2)
	assert.Equal(t, errors.ErrDirRead, r.Errors()[0].Code)
	assert.Equal(t, errors.ErrBaseAccess, r.Errors()[1].Code)
}

func TestDryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"values-ar":     testutil.FileTree{"strings.xml": "ar"},
		"values-ar-rEG": testutil.FileTree{"extra.xml": "eg"},
		"values-ar-rSA": testutil.FileTree{"strings.xml": "sa", "extra.xml": "sa", "sub": testutil.FileTree{}},
		"values-zh-rCN": testutil.FileTree{},
		"values-es-rAR": testutil.FileTree{},
	})
	before := env.Snapshot()

	r, err := newEngine(env.FS).Consolidate(env.Root, consolidate.Options{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, before, env.Snapshot())
	assert.True(t, r.DryRun)
	assert.Equal(t, 1, r.Merged)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 1, r.Excepted)
	assert.Equal(t, 3, r.FilesMoved)

	require.Len(t, r.Warnings(), 2)
	assert.Equal(t, "extra.xml", r.Warnings()[0].File)
	assert.Equal(t, "strings.xml", r.Warnings()[1].File)
	require.Len(t, r.Errors(), 1)
	assert.Equal(t, errors.ErrDirNotEmpty, r.Errors()[0].Code)
}

func TestPlan(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{
		"values-ar":     testutil.FileTree{"strings.xml": "ar"},
		"values-ar-rSA": testutil.FileTree{"strings.xml": "sa", "greeting.xml": "hi"},
		"values-zh-rCN": testutil.FileTree{},
		"values-pt-rBR": testutil.FileTree{},
	})

	decisions, err := newEngine(env.FS).Plan(env.Root)
	require.NoError(t, err)
	require.Len(t, decisions, 3)

	assert.Equal(t, "values-ar-rSA", decisions[0].Variant.Name)
	assert.Equal(t, report.OutcomeMerged, decisions[0].Outcome)
	assert.Equal(t, []consolidate.Move{
		{File: "greeting.xml"},
		{File: "strings.xml", Overwrites: true},
	}, decisions[0].Moves)
	assert.Empty(t, decisions[0].Residue)

	assert.Equal(t, report.OutcomeExcepted, decisions[1].Outcome)
	assert.Equal(t, "values-pt", decisions[1].Base)
	assert.Equal(t, report.OutcomeSkipped, decisions[2].Outcome)
}

func TestPreconditions(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{"file": "x"})

	_, err := newEngine(env.FS).Consolidate(env.Path("missing"), consolidate.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathNotFound))

	_, err = newEngine(env.FS).Consolidate(env.Path("file"), consolidate.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotADirectory))

	ffs := testutil.NewFaultFS(env.FS).WithError(testutil.OpReadDir, env.Root, fs.ErrPermission)
	_, err = newEngine(ffs).Consolidate(env.Root, consolidate.Options{})
	require.Error(t, err)
	assert.True(t, errors.IsPrecondition(err))
}

func chainTree() testutil.FileTree {
	return testutil.FileTree{
		"values-a":         testutil.FileTree{"s.xml": "a"},
		"values-a-rBB":     testutil.FileTree{"t.xml": "bb"},
		"values-a-rBB-rCC": testutil.FileTree{"u.xml": "cc"},
	}
}

func TestChainedVariantSeesEarlierMerge(t *testing.T) {
	for name, envType := range map[string]testutil.EnvType{
		"memory":   testutil.EnvMemoryOnly,
		"isolated": testutil.EnvIsolated,
	} {
		t.Run(name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, envType)
			env.WithFileTree(chainTree())

			r := run(t, env)

			assert.Equal(t, map[string]string{
				"values-a/s.xml":         "a",
				"values-a/t.xml":         "bb",
				"values-a-rBB-rCC/u.xml": "cc",
			}, env.Snapshot())
			assert.Equal(t, 1, r.Merged)
			assert.Equal(t, 1, r.Skipped)
			assert.Equal(t, 0, r.Failed)
			assert.False(t, r.HasErrors())

			require.Len(t, r.Dirs, 2)
			assert.Equal(t, report.OutcomeMerged, r.Dirs[0].Outcome)
			assert.Equal(t, "values-a-rBB-rCC", r.Dirs[1].Name)
			assert.Equal(t, report.OutcomeSkipped, r.Dirs[1].Outcome)

			// A second run reaches the same verdict for the leftover variant.
			second := run(t, env)
			assert.Equal(t, 0, second.Merged)
			assert.Equal(t, 1, second.Skipped)
			assert.False(t, second.HasErrors())
		})
	}
}

func TestDryRunPredictsChainedSkip(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(chainTree())
	before := env.Snapshot()

	decisions, err := newEngine(env.FS).Plan(env.Root)
	require.NoError(t, err)
	require.Len(t, decisions, 2)
	assert.Equal(t, report.OutcomeMerged, decisions[0].Outcome)
	assert.Equal(t, report.OutcomeSkipped, decisions[1].Outcome)

	r, err := newEngine(env.FS).Consolidate(env.Root, consolidate.Options{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, before, env.Snapshot())
	assert.Equal(t, 1, r.Merged)
	assert.Equal(t, 1, r.Skipped)
	assert.False(t, r.HasErrors())
}

func TestDirectoryInBaseBlocksMove(t *testing.T) {
	tree := func() testutil.FileTree {
		return testutil.FileTree{
			"values-ar": testutil.FileTree{
				"strings.xml": testutil.FileTree{"keep.xml": "keep"},
			},
			"values-ar-rSA": testutil.FileTree{
				"strings.xml": "sa",
				"other.xml":   "other",
			},
		}
	}

	assertBlocked := func(t *testing.T, r *report.Report) {
		t.Helper()
		assert.Equal(t, 0, r.Merged)
		assert.Equal(t, 1, r.Failed)
		assert.Equal(t, 1, r.FilesMoved)
		assert.Empty(t, r.Warnings())
		require.Len(t, r.Errors(), 1)
		rec := r.Errors()[0]
		assert.Equal(t, report.KindPartialMerge, rec.Kind)
		assert.Equal(t, errors.ErrFileMove, rec.Code)
		assert.Equal(t, "strings.xml", rec.File)
		assert.False(t, r.Dirs[0].Removed)
	}

	for name, envType := range map[string]testutil.EnvType{
		"memory":   testutil.EnvMemoryOnly,
		"isolated": testutil.EnvIsolated,
	} {
		t.Run(name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, envType)
			env.WithFileTree(tree())
			before := env.Snapshot()

			planned, err := newEngine(env.FS).Consolidate(env.Root, consolidate.Options{DryRun: true})
			require.NoError(t, err)
			assert.Equal(t, before, env.Snapshot())
			assertBlocked(t, planned)

			r := run(t, env)
			assertBlocked(t, r)
			assert.Equal(t, map[string]string{
				"values-ar/strings.xml/keep.xml": "keep",
				"values-ar/other.xml":            "other",
				"values-ar-rSA/strings.xml":      "sa",
			}, env.Snapshot())
		})
	}
}
