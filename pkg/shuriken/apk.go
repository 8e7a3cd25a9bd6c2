package shuriken

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/Shuriken-Group/shuriken-go/internal/bindings"
)

// Apk owns one native APK parsing context. Parsing, disassembly and analysis
// all happen inside OpenApk, so the accessors are read-only lookups. As with
// Dex, every result is copied into Go memory.
//
// An Apk is safe for concurrent use.
type Apk struct {
	mu  sync.Mutex
	ptr unsafe.Pointer

	classPtrs map[string]unsafe.Pointer
}

// OpenApk parses the APK at path, including every classes*.dex entry it
// carries, and runs the analysis passes. With createXrefs set the
// cross-reference tables are built as well, which can take a while on real
// applications. The returned Apk must be released with Close.
func OpenApk(path string, createXrefs bool) (*Apk, error) {
	if err := checkCString(path); err != nil {
		return nil, fmt.Errorf("open apk %q: %w", path, err)
	}

	ptr, err := bindings.ParseApk(path, createXrefs)
	if err != nil {
		if errors.Is(err, bindings.ErrNotBuilt) {
			return nil, err
		}
		return nil, fmt.Errorf("open apk %q: %w", path, ErrParseFailed)
	}

	a := &Apk{
		ptr:       ptr,
		classPtrs: make(map[string]unsafe.Pointer),
	}
	runtime.SetFinalizer(a, (*Apk).Close)
	return a, nil
}

// Close releases the native context. It is safe to call multiple times and on
// a nil receiver. All other methods return ErrClosed afterwards.
func (a *Apk) Close() {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptr == nil {
		return
	}
	bindings.DestroyApk(a.ptr)
	a.ptr = nil
	a.classPtrs = nil
	runtime.SetFinalizer(a, nil)
}

// DexFileCount reports how many DEX entries the APK carries.
func (a *Apk) DexFileCount() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptr == nil {
		return 0, ErrClosed
	}
	n, err := bindings.NumberOfDexFiles(a.ptr)
	if err != nil {
		return 0, remapStatus(err)
	}
	return n, nil
}

// DexFileAt returns the archive-internal name of the DEX entry at index i,
// e.g. "classes.dex".
func (a *Apk) DexFileAt(i int) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptr == nil {
		return "", ErrClosed
	}
	n, err := bindings.NumberOfDexFiles(a.ptr)
	if err != nil {
		return "", remapStatus(err)
	}
	if i < 0 || i >= n {
		return "", fmt.Errorf("dex file index %d: %w", i, ErrOutOfRange)
	}
	name, err := bindings.DexFileByIndex(a.ptr, i)
	if err != nil {
		return "", fmt.Errorf("dex file index %d: %w", i, ErrNotFound)
	}
	return name, nil
}

// ClassCount reports the number of classes defined in one DEX entry,
// identified by the name DexFileAt returned.
func (a *Apk) ClassCount(dexFile string) (int, error) {
	if err := checkCString(dexFile); err != nil {
		return 0, fmt.Errorf("dex file %q: %w", dexFile, err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptr == nil {
		return 0, ErrClosed
	}
	n, err := bindings.NumberOfClassesForDex(a.ptr, dexFile)
	if err != nil {
		return 0, remapStatus(err)
	}
	return n, nil
}

// ClassAt returns the class definition at index i of one DEX entry.
func (a *Apk) ClassAt(dexFile string, i int) (*Class, error) {
	if err := checkCString(dexFile); err != nil {
		return nil, fmt.Errorf("dex file %q: %w", dexFile, err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptr == nil {
		return nil, ErrClosed
	}
	n, err := bindings.NumberOfClassesForDex(a.ptr, dexFile)
	if err != nil {
		return nil, remapStatus(err)
	}
	if i < 0 || i >= n {
		return nil, fmt.Errorf("class index %d in %q: %w", i, dexFile, ErrOutOfRange)
	}
	raw, rawPtr, err := bindings.ClassByIndexForDex(a.ptr, dexFile, i)
	if err != nil {
		return nil, fmt.Errorf("class index %d in %q: %w", i, dexFile, ErrNotFound)
	}
	cls := classFromBindings(*raw)
	a.classPtrs[cls.Name] = rawPtr
	return &cls, nil
}

// StringCount reports the size of the string table of one DEX entry.
func (a *Apk) StringCount(dexFile string) (int, error) {
	if err := checkCString(dexFile); err != nil {
		return 0, fmt.Errorf("dex file %q: %w", dexFile, err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptr == nil {
		return 0, ErrClosed
	}
	n, err := bindings.NumberOfStringsForDex(a.ptr, dexFile)
	if err != nil {
		return 0, remapStatus(err)
	}
	return n, nil
}

// StringAt returns entry i of the string table of one DEX entry.
func (a *Apk) StringAt(dexFile string, i int) (string, error) {
	if err := checkCString(dexFile); err != nil {
		return "", fmt.Errorf("dex file %q: %w", dexFile, err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptr == nil {
		return "", ErrClosed
	}
	n, err := bindings.NumberOfStringsForDex(a.ptr, dexFile)
	if err != nil {
		return "", remapStatus(err)
	}
	if i < 0 || i >= n {
		return "", fmt.Errorf("string index %d in %q: %w", i, dexFile, ErrOutOfRange)
	}
	s, err := bindings.StringByIDForDex(a.ptr, dexFile, i)
	if err != nil {
		return "", fmt.Errorf("string index %d in %q: %w", i, dexFile, ErrNotFound)
	}
	if err := checkReturnedString(s); err != nil {
		return "", fmt.Errorf("string index %d in %q: %w", i, dexFile, err)
	}
	return s, nil
}

// DisassembledMethod returns the decoded listing for one method, looked up by
// its fully qualified dalvik name across all DEX entries.
func (a *Apk) DisassembledMethod(dalvikName string) (*DisassembledMethod, error) {
	if err := checkCString(dalvikName); err != nil {
		return nil, fmt.Errorf("disassembled method %q: %w", dalvikName, err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptr == nil {
		return nil, ErrClosed
	}
	raw, err := bindings.DisassembledMethodFromApk(a.ptr, dalvikName)
	if err != nil {
		return nil, fmt.Errorf("disassembled method %q: %w", dalvikName, ErrNotFound)
	}
	dm := disassembledFromBindings(*raw)
	return &dm, nil
}

// AnalyzedClass returns the analysis view of the class with the given
// descriptor-less name.
func (a *Apk) AnalyzedClass(name string) (*ClassAnalysis, error) {
	if err := checkCString(name); err != nil {
		return nil, fmt.Errorf("analyzed class %q: %w", name, err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptr == nil {
		return nil, ErrClosed
	}
	raw, err := bindings.AnalyzedClassFromApk(a.ptr, name)
	if err != nil {
		return nil, fmt.Errorf("analyzed class %q: %w", name, ErrNotFound)
	}
	ca := classAnalysisFromBindings(*raw)
	return &ca, nil
}

// AnalyzedClassOf resolves the analysis for a Class previously returned by
// ClassAt on this Apk.
func (a *Apk) AnalyzedClassOf(cls *Class) (*ClassAnalysis, error) {
	if cls == nil {
		return nil, fmt.Errorf("analyzed class: %w", ErrNotFound)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptr == nil {
		return nil, ErrClosed
	}
	rawPtr, ok := a.classPtrs[cls.Name]
	if !ok {
		return nil, fmt.Errorf("analyzed class %q (not resolved through this Apk): %w", cls.Name, ErrNotFound)
	}
	raw, err := bindings.AnalyzedClassByClassFromApk(a.ptr, rawPtr)
	if err != nil {
		return nil, fmt.Errorf("analyzed class %q: %w", cls.Name, ErrNotFound)
	}
	ca := classAnalysisFromBindings(*raw)
	return &ca, nil
}

// AnalyzedMethod returns the analysis view of the method with the given fully
// qualified dalvik name.
func (a *Apk) AnalyzedMethod(dalvikName string) (*MethodAnalysis, error) {
	if err := checkCString(dalvikName); err != nil {
		return nil, fmt.Errorf("analyzed method %q: %w", dalvikName, err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptr == nil {
		return nil, ErrClosed
	}
	raw, err := bindings.AnalyzedMethodFromApk(a.ptr, dalvikName)
	if err != nil {
		return nil, fmt.Errorf("analyzed method %q: %w", dalvikName, ErrNotFound)
	}
	ma := methodAnalysisFromBindings(*raw)
	return &ma, nil
}

// MethodAnalysisCount reports how many method analysis objects the analysis
// pass produced across all DEX entries.
func (a *Apk) MethodAnalysisCount() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptr == nil {
		return 0, ErrClosed
	}
	return bindings.NumberOfMethodAnalysisObjects(a.ptr), nil
}

// MethodAnalysisAt returns the method analysis object at index i. Together
// with MethodAnalysisCount it allows walking every analyzed method without
// knowing names up front.
func (a *Apk) MethodAnalysisAt(i int) (*MethodAnalysis, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptr == nil {
		return nil, ErrClosed
	}
	if i < 0 || i >= bindings.NumberOfMethodAnalysisObjects(a.ptr) {
		return nil, fmt.Errorf("method analysis index %d: %w", i, ErrOutOfRange)
	}
	raw, err := bindings.AnalyzedMethodByIndex(a.ptr, i)
	if err != nil {
		return nil, fmt.Errorf("method analysis index %d: %w", i, ErrNotFound)
	}
	ma := methodAnalysisFromBindings(*raw)
	return &ma, nil
}

// AnalyzedString returns the cross-reference record for one string constant.
// Requires the APK to have been opened with createXrefs set.
func (a *Apk) AnalyzedString(value string) (*StringAnalysis, error) {
	if err := checkCString(value); err != nil {
		return nil, fmt.Errorf("analyzed string %q: %w", value, err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ptr == nil {
		return nil, ErrClosed
	}
	raw, err := bindings.AnalyzedStringFromApk(a.ptr, value)
	if err != nil {
		return nil, fmt.Errorf("analyzed string %q: %w", value, ErrNotFound)
	}
	sa := stringAnalysisFromBindings(*raw)
	return &sa, nil
}
