package shuriken

import (
	"errors"
	"fmt"

	"github.com/Shuriken-Group/shuriken-go/internal/bindings"
)

var (
	// ErrParseFailed reports that the native parser rejected the input file.
	// The library does not distinguish unreadable paths from corrupt content.
	ErrParseFailed = errors.New("shuriken: parsing failed")

	// ErrNotFound reports a lookup for a name the loaded file does not
	// contain, or a result that has not been produced yet (for example a
	// disassembled method before Disassemble has run).
	ErrNotFound = errors.New("shuriken: not found")

	// ErrOutOfRange reports an index outside the range the native library
	// advertises. The offending index never crosses the foreign boundary.
	ErrOutOfRange = errors.New("shuriken: index out of range")

	// ErrInvalidEncoding reports a string that cannot cross the C boundary
	// (interior NUL, invalid UTF-8) or that came back from it malformed.
	ErrInvalidEncoding = errors.New("shuriken: invalid string encoding")

	// ErrClosed reports use of a Dex or Apk after Close. The native handle is
	// gone by then; the call is rejected before reaching it.
	ErrClosed = errors.New("shuriken: context has been closed")

	// ErrNotBuilt is returned by constructors when the native library was not
	// linked into this binary (non-cgo build, Windows, or a build without
	// ShurikenLib present).
	ErrNotBuilt = bindings.ErrNotBuilt
)

// LibraryError wraps an opaque status code from a native call that failed
// without a more specific classification.
type LibraryError struct {
	Op   string
	Code int
}

func (e *LibraryError) Error() string {
	return fmt.Sprintf("shuriken: native %s failed (status %d)", e.Op, e.Code)
}

// remapStatus converts a bindings.StatusError into the public LibraryError;
// other errors pass through for classification at the call site.
func remapStatus(err error) error {
	var st *bindings.StatusError
	if errors.As(err, &st) {
		return &LibraryError{Op: st.Op, Code: st.Code}
	}
	return err
}
