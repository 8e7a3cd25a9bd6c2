package shuriken_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shuriken-Group/shuriken-go/pkg/shuriken"
)

const testZipApk = "testdata/test_zip.apk"

func openTestApk(t *testing.T, createXrefs bool) *shuriken.Apk {
	t.Helper()
	if _, err := os.Stat(testZipApk); err != nil {
		t.Skipf("sample file %s not present", testZipApk)
	}
	a, err := shuriken.OpenApk(testZipApk, createXrefs)
	if errors.Is(err, shuriken.ErrNotBuilt) {
		t.Skip("built without ShurikenLib")
	}
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestOpenApkMissingFile(t *testing.T) {
	_, err := shuriken.OpenApk(filepath.Join(t.TempDir(), "nope.apk"), false)
	require.Error(t, err)
	if errors.Is(err, shuriken.ErrNotBuilt) {
		t.Skip("built without ShurikenLib")
	}
	assert.ErrorIs(t, err, shuriken.ErrParseFailed)
}

func TestOpenApkInvalidPath(t *testing.T) {
	_, err := shuriken.OpenApk("bad\x00path.apk", false)
	assert.ErrorIs(t, err, shuriken.ErrInvalidEncoding)
}

func TestApkDexFiles(t *testing.T) {
	a := openTestApk(t, false)

	n, err := a.DexFileCount()
	require.NoError(t, err)
	require.Greater(t, n, 0)

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		name, err := a.DexFileAt(i)
		require.NoError(t, err)
		assert.NotEmpty(t, name)
		assert.False(t, seen[name], "duplicate dex entry %q", name)
		seen[name] = true
	}

	_, err = a.DexFileAt(n)
	assert.ErrorIs(t, err, shuriken.ErrOutOfRange)
	_, err = a.DexFileAt(-1)
	assert.ErrorIs(t, err, shuriken.ErrOutOfRange)
}

func TestApkClassesAndStrings(t *testing.T) {
	a := openTestApk(t, false)

	name, err := a.DexFileAt(0)
	require.NoError(t, err)

	nClasses, err := a.ClassCount(name)
	require.NoError(t, err)
	for i := 0; i < nClasses; i++ {
		cls, err := a.ClassAt(name, i)
		require.NoError(t, err)
		assert.NotEmpty(t, cls.Name)
	}
	_, err = a.ClassAt(name, nClasses)
	assert.ErrorIs(t, err, shuriken.ErrOutOfRange)

	nStrings, err := a.StringCount(name)
	require.NoError(t, err)
	for i := 0; i < nStrings; i++ {
		_, err := a.StringAt(name, i)
		require.NoError(t, err)
	}
	_, err = a.StringAt(name, nStrings)
	assert.ErrorIs(t, err, shuriken.ErrOutOfRange)
}

func TestApkMethodAnalysisWalk(t *testing.T) {
	a := openTestApk(t, false)

	n, err := a.MethodAnalysisCount()
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		ma, err := a.MethodAnalysisAt(i)
		require.NoError(t, err)
		assert.NotEmpty(t, ma.FullName)

		// Indexed walk and name lookup agree.
		byName, err := a.AnalyzedMethod(ma.FullName)
		require.NoError(t, err)
		assert.Equal(t, ma.FullName, byName.FullName)
	}

	_, err = a.MethodAnalysisAt(n)
	assert.ErrorIs(t, err, shuriken.ErrOutOfRange)
}

func TestApkAnalyzedLookupsMiss(t *testing.T) {
	a := openTestApk(t, true)

	_, err := a.AnalyzedClass("NoSuchClass")
	assert.ErrorIs(t, err, shuriken.ErrNotFound)
	_, err = a.AnalyzedMethod("LNoSuch;->method()V")
	assert.ErrorIs(t, err, shuriken.ErrNotFound)
	_, err = a.AnalyzedString("no such string constant")
	assert.ErrorIs(t, err, shuriken.ErrNotFound)
}

func TestApkCloseIdempotent(t *testing.T) {
	a := openTestApk(t, false)

	a.Close()
	a.Close()

	_, err := a.DexFileCount()
	assert.ErrorIs(t, err, shuriken.ErrClosed)
	_, err = a.ClassCount("classes.dex")
	assert.ErrorIs(t, err, shuriken.ErrClosed)
	_, err = a.MethodAnalysisCount()
	assert.ErrorIs(t, err, shuriken.ErrClosed)

	var nilApk *shuriken.Apk
	nilApk.Close()
}
