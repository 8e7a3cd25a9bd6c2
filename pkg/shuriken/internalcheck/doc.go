// Package internalcheck holds static policy checks for the binding layers.
//
// The tests here load the module's packages and verify structural rules that
// the compiler cannot: cgo stays confined to internal/bindings, and no raw
// pointer type leaks through the exported API. They are not intended for
// external use.
package internalcheck
