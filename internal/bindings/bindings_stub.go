//go:build !cgo || windows

package bindings

import (
	"unsafe"
)

// Stub implementations for non-cgo builds and Windows. They let the module
// compile everywhere; every entry point reports ErrNotBuilt instead of
// touching a native library that is not there. Destructors are no-ops since a
// context can never be constructed in these builds.

func ParseDex(string) (unsafe.Pointer, error) {
	return nil, ErrNotBuilt
}

func DestroyDex(unsafe.Pointer) {}

func NumberOfStrings(unsafe.Pointer) int { return 0 }

func StringByID(unsafe.Pointer, int) (string, error) {
	return "", ErrNotBuilt
}

func NumberOfClasses(unsafe.Pointer) int { return 0 }

func ClassByID(unsafe.Pointer, int) (*Class, unsafe.Pointer, error) {
	return nil, nil, ErrNotBuilt
}

func ClassByName(unsafe.Pointer, string) (*Class, unsafe.Pointer, error) {
	return nil, nil, ErrNotBuilt
}

func MethodByName(unsafe.Pointer, string) (*Method, unsafe.Pointer, error) {
	return nil, nil, ErrNotBuilt
}

func DisassembleDex(unsafe.Pointer) {}

func GetDisassembledMethod(unsafe.Pointer, string) (*DisassembledMethod, error) {
	return nil, ErrNotBuilt
}

func CreateDexAnalysis(unsafe.Pointer, bool) {}

func AnalyzeClasses(unsafe.Pointer) {}

func AnalyzedClassByName(unsafe.Pointer, string) (*ClassAnalysis, error) {
	return nil, ErrNotBuilt
}

func AnalyzedClassByClass(unsafe.Pointer, unsafe.Pointer) (*ClassAnalysis, error) {
	return nil, ErrNotBuilt
}

func AnalyzedMethodByName(unsafe.Pointer, string) (*MethodAnalysis, error) {
	return nil, ErrNotBuilt
}

func AnalyzedMethodByMethod(unsafe.Pointer, unsafe.Pointer) (*MethodAnalysis, error) {
	return nil, ErrNotBuilt
}

func ParseApk(string, bool) (unsafe.Pointer, error) {
	return nil, ErrNotBuilt
}

func DestroyApk(unsafe.Pointer) {}

func NumberOfDexFiles(unsafe.Pointer) (int, error) {
	return 0, ErrNotBuilt
}

func DexFileByIndex(unsafe.Pointer, int) (string, error) {
	return "", ErrNotBuilt
}

func NumberOfClassesForDex(unsafe.Pointer, string) (int, error) {
	return 0, ErrNotBuilt
}

func ClassByIndexForDex(unsafe.Pointer, string, int) (*Class, unsafe.Pointer, error) {
	return nil, nil, ErrNotBuilt
}

func NumberOfStringsForDex(unsafe.Pointer, string) (int, error) {
	return 0, ErrNotBuilt
}

func StringByIDForDex(unsafe.Pointer, string, int) (string, error) {
	return "", ErrNotBuilt
}

func DisassembledMethodFromApk(unsafe.Pointer, string) (*DisassembledMethod, error) {
	return nil, ErrNotBuilt
}

func AnalyzedClassFromApk(unsafe.Pointer, string) (*ClassAnalysis, error) {
	return nil, ErrNotBuilt
}

func AnalyzedClassByClassFromApk(unsafe.Pointer, unsafe.Pointer) (*ClassAnalysis, error) {
	return nil, ErrNotBuilt
}

func AnalyzedMethodFromApk(unsafe.Pointer, string) (*MethodAnalysis, error) {
	return nil, ErrNotBuilt
}

func NumberOfMethodAnalysisObjects(unsafe.Pointer) int { return 0 }

func AnalyzedMethodByIndex(unsafe.Pointer, int) (*MethodAnalysis, error) {
	return nil, ErrNotBuilt
}

func AnalyzedStringFromApk(unsafe.Pointer, string) (*StringAnalysis, error) {
	return nil, ErrNotBuilt
}
