package shuriken

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"unicode/utf8"
	"unsafe"

	"github.com/Shuriken-Group/shuriken-go/internal/bindings"
)

// Dex owns one native DEX parsing context. All accessors copy their results
// into Go memory, so values returned by a Dex stay valid after Close.
//
// A Dex is safe for concurrent use; calls into the native context are
// serialized on an internal mutex.
type Dex struct {
	mu  sync.Mutex
	ptr unsafe.Pointer

	disassembled bool
	analyzed     bool

	// Raw class and method records owned by the native context, cached so
	// analysis lookups can use the pointer-based entry points. Cleared on
	// Close together with ptr.
	classPtrs  map[string]unsafe.Pointer
	methodPtrs map[string]unsafe.Pointer
}

// OpenDex parses the DEX file at path and returns an owning handle. The
// returned Dex must be released with Close; a finalizer reclaims the native
// context if the caller forgets, but relying on it delays the release until
// the garbage collector runs.
func OpenDex(path string) (*Dex, error) {
	if err := checkCString(path); err != nil {
		return nil, fmt.Errorf("open dex %q: %w", path, err)
	}

	ptr, err := bindings.ParseDex(path)
	if err != nil {
		if errors.Is(err, bindings.ErrNotBuilt) {
			return nil, err
		}
		return nil, fmt.Errorf("open dex %q: %w", path, ErrParseFailed)
	}

	d := &Dex{
		ptr:        ptr,
		classPtrs:  make(map[string]unsafe.Pointer),
		methodPtrs: make(map[string]unsafe.Pointer),
	}
	runtime.SetFinalizer(d, (*Dex).Close)
	return d, nil
}

// Close releases the native context. It is safe to call multiple times and on
// a nil receiver; only the first call releases anything. All other methods
// return ErrClosed afterwards.
func (d *Dex) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return
	}
	bindings.DestroyDex(d.ptr)
	d.ptr = nil
	d.classPtrs = nil
	d.methodPtrs = nil
	runtime.SetFinalizer(d, nil)
}

// StringCount reports the number of entries in the DEX string table.
func (d *Dex) StringCount() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return 0, ErrClosed
	}
	return bindings.NumberOfStrings(d.ptr), nil
}

// StringAt returns the string table entry at index i. The index is validated
// against StringCount before it reaches the native library.
func (d *Dex) StringAt(i int) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return "", ErrClosed
	}
	if i < 0 || i >= bindings.NumberOfStrings(d.ptr) {
		return "", fmt.Errorf("string index %d: %w", i, ErrOutOfRange)
	}
	s, err := bindings.StringByID(d.ptr, i)
	if err != nil {
		return "", fmt.Errorf("string index %d: %w", i, ErrNotFound)
	}
	if err := checkReturnedString(s); err != nil {
		return "", fmt.Errorf("string index %d: %w", i, err)
	}
	return s, nil
}

// Strings returns the full string table.
func (d *Dex) Strings() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return nil, ErrClosed
	}
	n := bindings.NumberOfStrings(d.ptr)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := bindings.StringByID(d.ptr, i)
		if err != nil {
			return nil, fmt.Errorf("string index %d: %w", i, ErrNotFound)
		}
		if err := checkReturnedString(s); err != nil {
			return nil, fmt.Errorf("string index %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// ClassCount reports the number of class definitions in the file.
func (d *Dex) ClassCount() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return 0, ErrClosed
	}
	return bindings.NumberOfClasses(d.ptr), nil
}

// ClassAt returns the class definition at index i.
func (d *Dex) ClassAt(i int) (*Class, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return nil, ErrClosed
	}
	if i < 0 || i >= bindings.NumberOfClasses(d.ptr) {
		return nil, fmt.Errorf("class index %d: %w", i, ErrOutOfRange)
	}
	raw, rawPtr, err := bindings.ClassByID(d.ptr, i)
	if err != nil {
		return nil, fmt.Errorf("class index %d: %w", i, ErrNotFound)
	}
	cls := classFromBindings(*raw)
	d.classPtrs[cls.Name] = rawPtr
	return &cls, nil
}

// ClassByName looks a class up by its descriptor-less dalvik name, e.g.
// "DexParserTest".
func (d *Dex) ClassByName(name string) (*Class, error) {
	if err := checkCString(name); err != nil {
		return nil, fmt.Errorf("class %q: %w", name, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return nil, ErrClosed
	}
	raw, rawPtr, err := bindings.ClassByName(d.ptr, name)
	if err != nil {
		return nil, fmt.Errorf("class %q: %w", name, ErrNotFound)
	}
	cls := classFromBindings(*raw)
	d.classPtrs[cls.Name] = rawPtr
	return &cls, nil
}

// MethodByName looks a method up by its fully qualified dalvik name, e.g.
// "LDexParserTest;->printMessage()V".
func (d *Dex) MethodByName(dalvikName string) (*Method, error) {
	if err := checkCString(dalvikName); err != nil {
		return nil, fmt.Errorf("method %q: %w", dalvikName, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return nil, ErrClosed
	}
	raw, rawPtr, err := bindings.MethodByName(d.ptr, dalvikName)
	if err != nil {
		return nil, fmt.Errorf("method %q: %w", dalvikName, ErrNotFound)
	}
	m := methodFromBindings(*raw)
	d.methodPtrs[m.DalvikName] = rawPtr
	return &m, nil
}

// Disassemble runs the disassembler over every method in the file. It must be
// called before DisassembledMethod.
func (d *Dex) Disassemble() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return ErrClosed
	}
	bindings.DisassembleDex(d.ptr)
	d.disassembled = true
	return nil
}

// DisassembledMethod returns the decoded listing for one method. Disassemble
// must have run first; otherwise every lookup reports ErrNotFound.
func (d *Dex) DisassembledMethod(dalvikName string) (*DisassembledMethod, error) {
	if err := checkCString(dalvikName); err != nil {
		return nil, fmt.Errorf("disassembled method %q: %w", dalvikName, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return nil, ErrClosed
	}
	if !d.disassembled {
		return nil, fmt.Errorf("disassembled method %q (Disassemble has not run): %w", dalvikName, ErrNotFound)
	}
	raw, err := bindings.GetDisassembledMethod(d.ptr, dalvikName)
	if err != nil {
		return nil, fmt.Errorf("disassembled method %q: %w", dalvikName, ErrNotFound)
	}
	dm := disassembledFromBindings(*raw)
	return &dm, nil
}

// Analyze builds the analysis objects for the whole file. With createXrefs
// set, cross-references between classes, methods, fields and strings are
// computed as well, which is noticeably slower on large files. It must be
// called before the Analyzed* accessors.
func (d *Dex) Analyze(createXrefs bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return ErrClosed
	}
	if !d.disassembled {
		bindings.DisassembleDex(d.ptr)
		d.disassembled = true
	}
	bindings.CreateDexAnalysis(d.ptr, createXrefs)
	bindings.AnalyzeClasses(d.ptr)
	d.analyzed = true
	return nil
}

// AnalyzedClass returns the analysis view of the class with the given
// descriptor-less name. Analyze must have run first.
func (d *Dex) AnalyzedClass(name string) (*ClassAnalysis, error) {
	if err := checkCString(name); err != nil {
		return nil, fmt.Errorf("analyzed class %q: %w", name, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return nil, ErrClosed
	}
	if !d.analyzed {
		return nil, fmt.Errorf("analyzed class %q (Analyze has not run): %w", name, ErrNotFound)
	}
	raw, err := bindings.AnalyzedClassByName(d.ptr, name)
	if err != nil {
		return nil, fmt.Errorf("analyzed class %q: %w", name, ErrNotFound)
	}
	ca := classAnalysisFromBindings(*raw)
	return &ca, nil
}

// AnalyzedClassOf resolves the analysis for a Class previously returned by
// ClassAt or ClassByName on this Dex.
func (d *Dex) AnalyzedClassOf(cls *Class) (*ClassAnalysis, error) {
	if cls == nil {
		return nil, fmt.Errorf("analyzed class: %w", ErrNotFound)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return nil, ErrClosed
	}
	if !d.analyzed {
		return nil, fmt.Errorf("analyzed class %q (Analyze has not run): %w", cls.Name, ErrNotFound)
	}
	rawPtr, ok := d.classPtrs[cls.Name]
	if !ok {
		return nil, fmt.Errorf("analyzed class %q (not resolved through this Dex): %w", cls.Name, ErrNotFound)
	}
	raw, err := bindings.AnalyzedClassByClass(d.ptr, rawPtr)
	if err != nil {
		return nil, fmt.Errorf("analyzed class %q: %w", cls.Name, ErrNotFound)
	}
	ca := classAnalysisFromBindings(*raw)
	return &ca, nil
}

// AnalyzedMethod returns the analysis view of the method with the given fully
// qualified dalvik name. Analyze must have run first.
func (d *Dex) AnalyzedMethod(dalvikName string) (*MethodAnalysis, error) {
	if err := checkCString(dalvikName); err != nil {
		return nil, fmt.Errorf("analyzed method %q: %w", dalvikName, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return nil, ErrClosed
	}
	if !d.analyzed {
		return nil, fmt.Errorf("analyzed method %q (Analyze has not run): %w", dalvikName, ErrNotFound)
	}
	raw, err := bindings.AnalyzedMethodByName(d.ptr, dalvikName)
	if err != nil {
		return nil, fmt.Errorf("analyzed method %q: %w", dalvikName, ErrNotFound)
	}
	ma := methodAnalysisFromBindings(*raw)
	return &ma, nil
}

// AnalyzedMethodOf resolves the analysis for a Method previously returned by
// MethodByName on this Dex.
func (d *Dex) AnalyzedMethodOf(m *Method) (*MethodAnalysis, error) {
	if m == nil {
		return nil, fmt.Errorf("analyzed method: %w", ErrNotFound)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ptr == nil {
		return nil, ErrClosed
	}
	if !d.analyzed {
		return nil, fmt.Errorf("analyzed method %q (Analyze has not run): %w", m.DalvikName, ErrNotFound)
	}
	rawPtr, ok := d.methodPtrs[m.DalvikName]
	if !ok {
		return nil, fmt.Errorf("analyzed method %q (not resolved through this Dex): %w", m.DalvikName, ErrNotFound)
	}
	raw, err := bindings.AnalyzedMethodByMethod(d.ptr, rawPtr)
	if err != nil {
		return nil, fmt.Errorf("analyzed method %q: %w", m.DalvikName, ErrNotFound)
	}
	ma := methodAnalysisFromBindings(*raw)
	return &ma, nil
}

// checkCString rejects strings that cannot be passed to C intact: interior
// NUL bytes would truncate, and invalid UTF-8 would round-trip corrupted.
func checkCString(s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("contains NUL byte: %w", ErrInvalidEncoding)
	}
	if !utf8.ValidString(s) {
		return ErrInvalidEncoding
	}
	return nil
}

// checkReturnedString validates a string table entry coming back from the
// library. DEX files store strings as MUTF-8, where surrogate pairs and
// embedded U+0000 are invalid UTF-8; such entries are reported as
// ErrInvalidEncoding by every string accessor, indexed or bulk, so the two
// paths always agree on an index.
func checkReturnedString(s string) error {
	if !utf8.ValidString(s) {
		return ErrInvalidEncoding
	}
	return nil
}
