package shuriken_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shuriken-Group/shuriken-go/pkg/shuriken"
)

const dexParserTest = "testdata/DexParserTest.dex"

// openTestDex opens the sample DEX, skipping when the native library is not
// linked into the test binary or the sample file is absent.
func openTestDex(t *testing.T, path string) *shuriken.Dex {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Skipf("sample file %s not present", path)
	}
	d, err := shuriken.OpenDex(path)
	if errors.Is(err, shuriken.ErrNotBuilt) {
		t.Skip("built without ShurikenLib")
	}
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d
}

func TestOpenDexMissingFile(t *testing.T) {
	_, err := shuriken.OpenDex(filepath.Join(t.TempDir(), "nope.dex"))
	require.Error(t, err)
	if errors.Is(err, shuriken.ErrNotBuilt) {
		t.Skip("built without ShurikenLib")
	}
	assert.ErrorIs(t, err, shuriken.ErrParseFailed)
}

func TestOpenDexCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.dex")
	require.NoError(t, os.WriteFile(path, []byte("not a dex file at all"), 0o644))

	_, err := shuriken.OpenDex(path)
	require.Error(t, err)
	if errors.Is(err, shuriken.ErrNotBuilt) {
		t.Skip("built without ShurikenLib")
	}
	assert.ErrorIs(t, err, shuriken.ErrParseFailed)
}

func TestOpenDexInvalidPath(t *testing.T) {
	_, err := shuriken.OpenDex("bad\x00path.dex")
	assert.ErrorIs(t, err, shuriken.ErrInvalidEncoding)
}

func TestDexStrings(t *testing.T) {
	d := openTestDex(t, dexParserTest)

	n, err := d.StringCount()
	require.NoError(t, err)
	assert.Equal(t, 33, n)

	all, err := d.Strings()
	require.NoError(t, err)
	require.Len(t, all, n)

	assert.Contains(t, all, "DexParserTest.java")
	assert.Contains(t, all, "LDexParserTest;")
	assert.Contains(t, all, "This is a test message printed from DexParserTest class.")
	assert.Contains(t, all, "calculateSum")
	assert.Contains(t, all, "printMessage")

	// Indexed access agrees with bulk access.
	for i, want := range all {
		got, err := d.StringAt(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDexStringAtOutOfRange(t *testing.T) {
	d := openTestDex(t, dexParserTest)

	n, err := d.StringCount()
	require.NoError(t, err)

	_, err = d.StringAt(n)
	assert.ErrorIs(t, err, shuriken.ErrOutOfRange)
	_, err = d.StringAt(-1)
	assert.ErrorIs(t, err, shuriken.ErrOutOfRange)
}

func TestDexClassAt(t *testing.T) {
	d := openTestDex(t, dexParserTest)

	n, err := d.ClassCount()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	cls, err := d.ClassAt(0)
	require.NoError(t, err)
	assert.Equal(t, "DexParserTest", cls.Name)
	assert.Equal(t, "java.lang.Object", cls.SuperClass)
	assert.Equal(t, "DexParserTest.java", cls.SourceFile)
	assert.Equal(t, []shuriken.AccessFlag{shuriken.AccPublic}, cls.AccessFlags)

	require.Len(t, cls.InstanceFields, 2)
	assert.Empty(t, cls.StaticFields)

	f1 := cls.InstanceFields[0]
	assert.Equal(t, "LDexParserTest;", f1.ClassName)
	assert.Equal(t, "field1", f1.Name)
	assert.Equal(t, shuriken.TypeFundamental, f1.Kind)
	assert.Equal(t, shuriken.FundInt, f1.Fundamental)
	assert.Equal(t, "I", f1.TypeDescriptor)

	f2 := cls.InstanceFields[1]
	assert.Equal(t, "field2", f2.Name)
	assert.Equal(t, shuriken.TypeClass, f2.Kind)
	assert.Equal(t, shuriken.FundNone, f2.Fundamental)
	assert.Equal(t, "Ljava/lang/String;", f2.TypeDescriptor)

	require.Len(t, cls.DirectMethods, 4)
	assert.Empty(t, cls.VirtualMethods)

	wantMethods := []struct {
		dalvikName string
		flags      []shuriken.AccessFlag
	}{
		{"LDexParserTest;-><init>()V", []shuriken.AccessFlag{shuriken.AccPublic}},
		{"LDexParserTest;->calculateSum(II)I", []shuriken.AccessFlag{shuriken.AccPrivate}},
		{"LDexParserTest;->main([Ljava/lang/String;)V", []shuriken.AccessFlag{shuriken.AccPublic, shuriken.AccStatic}},
		{"LDexParserTest;->printMessage()V", []shuriken.AccessFlag{shuriken.AccPrivate}},
	}
	for i, want := range wantMethods {
		assert.Equal(t, "LDexParserTest;", cls.DirectMethods[i].ClassName)
		assert.Equal(t, want.dalvikName, cls.DirectMethods[i].DalvikName)
		assert.Equal(t, want.flags, cls.DirectMethods[i].AccessFlags)
	}
}

func TestDexClassAtOutOfRange(t *testing.T) {
	d := openTestDex(t, dexParserTest)

	n, err := d.ClassCount()
	require.NoError(t, err)

	_, err = d.ClassAt(n)
	assert.ErrorIs(t, err, shuriken.ErrOutOfRange)
	_, err = d.ClassAt(-1)
	assert.ErrorIs(t, err, shuriken.ErrOutOfRange)
}

func TestDexClassByName(t *testing.T) {
	d := openTestDex(t, dexParserTest)

	cls, err := d.ClassByName("DexParserTest")
	require.NoError(t, err)
	assert.Equal(t, "DexParserTest", cls.Name)
	assert.Equal(t, "java.lang.Object", cls.SuperClass)

	// Iteration and lookup resolve to the same class.
	byIdx, err := d.ClassAt(0)
	require.NoError(t, err)
	assert.Equal(t, byIdx, cls)

	_, err = d.ClassByName("NoSuchClass")
	assert.ErrorIs(t, err, shuriken.ErrNotFound)
}

func TestDexMethodByName(t *testing.T) {
	d := openTestDex(t, dexParserTest)

	m, err := d.MethodByName("LDexParserTest;->printMessage()V")
	require.NoError(t, err)
	assert.Equal(t, "printMessage", m.Name)
	assert.Equal(t, "LDexParserTest;", m.ClassName)
	assert.Equal(t, "()V", m.Prototype)
	assert.Equal(t, []shuriken.AccessFlag{shuriken.AccPrivate}, m.AccessFlags)
	assert.NotEmpty(t, m.Code)

	_, err = d.MethodByName("LDexParserTest;->noSuchMethod()V")
	assert.ErrorIs(t, err, shuriken.ErrNotFound)
}

func TestDexDisassembledMethod(t *testing.T) {
	d := openTestDex(t, dexParserTest)

	// Lookups before Disassemble report not-found rather than crashing.
	_, err := d.DisassembledMethod("LDexParserTest;->printMessage()V")
	assert.ErrorIs(t, err, shuriken.ErrNotFound)

	require.NoError(t, d.Disassemble())

	dm, err := d.DisassembledMethod("LDexParserTest;->printMessage()V")
	require.NoError(t, err)
	assert.Equal(t, 4, dm.Registers)
	assert.NotEmpty(t, dm.Instructions)
	assert.True(t, strings.HasPrefix(dm.Text, ".method private LDexParserTest;->printMessage()V"))
	assert.Contains(t, dm.Text, "This is a test message printed from DexParserTest class.")

	sum, err := d.DisassembledMethod("LDexParserTest;->calculateSum(II)I")
	require.NoError(t, err)
	assert.Equal(t, 7, sum.Registers)
	assert.Contains(t, sum.Text, "00000000 add-int v0, v5, v6")

	first := sum.Instructions[0]
	assert.Equal(t, uint64(0), first.Address)
	assert.Equal(t, "add-int v0, v5, v6", first.Disassembly)

	_, err = d.DisassembledMethod("LDexParserTest;->noSuchMethod()V")
	assert.ErrorIs(t, err, shuriken.ErrNotFound)
}

func TestDexAnalysis(t *testing.T) {
	d := openTestDex(t, dexParserTest)

	_, err := d.AnalyzedClass("DexParserTest")
	assert.ErrorIs(t, err, shuriken.ErrNotFound)

	require.NoError(t, d.Analyze(true))

	ca, err := d.AnalyzedClass("DexParserTest")
	require.NoError(t, err)
	assert.Equal(t, "DexParserTest", ca.Name)
	assert.False(t, ca.External)
	assert.NotEmpty(t, ca.Methods)

	ma, err := d.AnalyzedMethod("LDexParserTest;->main([Ljava/lang/String;)V")
	require.NoError(t, err)
	assert.Equal(t, "main", ma.Name)
	assert.False(t, ma.External)
	assert.NotEmpty(t, ma.BasicBlocks)
	// main invokes <init>, printMessage and calculateSum.
	assert.NotEmpty(t, ma.Callees)

	_, err = d.AnalyzedClass("NoSuchClass")
	assert.ErrorIs(t, err, shuriken.ErrNotFound)
}

func TestDexAnalysisByHandle(t *testing.T) {
	d := openTestDex(t, dexParserTest)
	require.NoError(t, d.Analyze(false))

	cls, err := d.ClassAt(0)
	require.NoError(t, err)

	ca, err := d.AnalyzedClassOf(cls)
	require.NoError(t, err)
	assert.Equal(t, cls.Name, ca.Name)

	m, err := d.MethodByName("LDexParserTest;->printMessage()V")
	require.NoError(t, err)

	ma, err := d.AnalyzedMethodOf(m)
	require.NoError(t, err)
	assert.Equal(t, "printMessage", ma.Name)

	// A class that never came from this handle cannot be resolved.
	_, err = d.AnalyzedClassOf(&shuriken.Class{Name: "Stranger"})
	assert.ErrorIs(t, err, shuriken.ErrNotFound)
}

func TestDexCloseIdempotent(t *testing.T) {
	d := openTestDex(t, dexParserTest)

	d.Close()
	d.Close()

	_, err := d.StringCount()
	assert.ErrorIs(t, err, shuriken.ErrClosed)
	_, err = d.ClassAt(0)
	assert.ErrorIs(t, err, shuriken.ErrClosed)
	_, err = d.ClassByName("DexParserTest")
	assert.ErrorIs(t, err, shuriken.ErrClosed)
	assert.ErrorIs(t, d.Disassemble(), shuriken.ErrClosed)
	assert.ErrorIs(t, d.Analyze(false), shuriken.ErrClosed)

	var nilDex *shuriken.Dex
	nilDex.Close()
}

func TestDexZeroValueIsClosed(t *testing.T) {
	var d shuriken.Dex
	_, err := d.StringCount()
	assert.ErrorIs(t, err, shuriken.ErrClosed)
	_, err = d.StringAt(0)
	assert.ErrorIs(t, err, shuriken.ErrClosed)
	d.Close()
}

func TestDexConcurrentReads(t *testing.T) {
	d := openTestDex(t, dexParserTest)
	require.NoError(t, d.Disassemble())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := d.StringAt(j % 33); err != nil {
					t.Errorf("StringAt: %v", err)
					return
				}
				if _, err := d.ClassByName("DexParserTest"); err != nil {
					t.Errorf("ClassByName: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
