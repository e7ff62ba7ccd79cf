package testutil_test

import (
	"io/fs"
	"testing"

	"github.com/arthur-debert/locfold/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentFileTree(t *testing.T) {
	for _, envType := range []testutil.EnvType{testutil.EnvMemoryOnly, testutil.EnvIsolated} {
		env := testutil.NewTestEnvironment(t, envType)
		env.WithFileTree(testutil.FileTree{
			"values-ar": testutil.FileTree{
				"strings.xml": "ar",
			},
			"values-ar-rSA": testutil.FileTree{
				"nested": testutil.FileTree{},
			},
			"README": "root file",
		})

		assert.Equal(t, []string{"values-ar", "values-ar-rSA"}, env.Dirs())
		assert.Equal(t, map[string]string{
			"README":                "root file",
			"values-ar/strings.xml": "ar",
			"values-ar-rSA/nested/": "",
		}, env.Snapshot())
		assert.True(t, env.Exists("values-ar", "strings.xml"))
		assert.False(t, env.Exists("values-zh"))
		assert.Equal(t, "ar", env.ReadFile("values-ar", "strings.xml"))
	}
}

func TestFaultFS(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithFileTree(testutil.FileTree{"values-ar": testutil.FileTree{"a.xml": "a"}})

	ffs := testutil.NewFaultFS(env.FS).
		WithError(testutil.OpRename, env.Path("values-ar", "a.xml"), fs.ErrPermission)

	err := ffs.Rename(env.Path("values-ar", "a.xml"), env.Path("values-ar", "b.xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, 1, ffs.Calls(testutil.OpRename))

	_, err = ffs.ReadFile(env.Path("values-ar", "a.xml"))
	assert.NoError(t, err)
	assert.Equal(t, 1, ffs.Calls(testutil.OpReadFile))
}
