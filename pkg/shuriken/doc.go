// Package shuriken is a Go binding for ShurikenLib, the Shuriken-Analyzer
// native library for parsing, disassembling and analyzing DEX and APK files.
//
// The two entry points are OpenDex and OpenApk. Both return an owning handle
// over a native parsing context; release it with Close when done. Everything
// the accessors return is copied into Go memory before the native call
// returns, so results remain valid after the handle is closed.
//
// Binaries built without cgo, or without ShurikenLib installed, still
// compile; the constructors then return ErrNotBuilt.
package shuriken
