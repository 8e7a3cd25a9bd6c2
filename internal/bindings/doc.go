// Package bindings contains all cgo declarations for the ShurikenLib core C
// API. No other package in the module imports "C".
//
// # Design Principles
//
//  1. Isolation: every cgo call and every C type lives here. The public
//     package works with plain Go values only.
//
//  2. Copy at the boundary: records returned by the native library are deep
//     copied into the mirror structs in bindings_types.go before they leave
//     this package. Nothing outside a call frame aliases native memory,
//     except the opaque context and record pointers that the safe layer
//     passes back into lookups on the same live context.
//
//  3. Immediate translation: a null pointer or negative status from a native
//     call becomes ErrNullResult or a StatusError right at the call site.
//     No raw return value escapes unchecked.
//
//  4. No policy: this package performs no input validation and no lifetime
//     tracking. Passing a destroyed context into any function here is a
//     caller bug; pkg/shuriken makes that impossible through its owning
//     wrappers.
//
// # Build Configuration
//
// The cgo files expect ShurikenLib headers and the compiled library under
// $SRCDIR/../../shuriken (include/ and lib/). Installations elsewhere are
// pointed at with CGO_CFLAGS=-I<prefix>/include and
// CGO_LDFLAGS=-L<prefix>/lib. A missing or mismatched library fails the
// build or the load, never links silently against something else.
//
// Non-cgo builds and Windows compile the stub file instead; every entry
// point then returns ErrNotBuilt.
package bindings
