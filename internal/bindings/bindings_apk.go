//go:build cgo && !windows

package bindings

/*
#include <stdlib.h>
#include "shuriken/api/C/shuriken_core.h"
#include "shuriken/api/C/shuriken_core_data.h"
*/
import "C"

import (
	"unsafe"
)

// ParseApk parses an APK and, when createXrefs is set, builds the
// cross-reference tables up front. A null context covers both unreadable
// files and invalid ZIP/DEX content.
func ParseApk(path string, createXrefs bool) (unsafe.Pointer, error) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	var x C.boolean_e
	if createXrefs {
		x = 1
	}
	ctx := C.parse_apk(cPath, x)
	if ctx == nil {
		return nil, ErrNullResult
	}
	return unsafe.Pointer(ctx), nil
}

func DestroyApk(ctx unsafe.Pointer) {
	C.destroy_apk(C.hApkContext(ctx))
}

// NumberOfDexFiles reports how many classes*.dex entries the APK carries.
// The native call returns a plain int, so a negative value is surfaced as a
// StatusError rather than silently truncated.
func NumberOfDexFiles(ctx unsafe.Pointer) (int, error) {
	n := int(C.get_number_of_dex_files(C.hApkContext(ctx)))
	if n < 0 {
		return 0, &StatusError{Op: "get_number_of_dex_files", Code: n}
	}
	return n, nil
}

func DexFileByIndex(ctx unsafe.Pointer, idx int) (string, error) {
	cs := C.get_dex_file_by_index(C.hApkContext(ctx), C.uint(idx))
	if cs == nil {
		return "", ErrNullResult
	}
	return C.GoString(cs), nil
}

func NumberOfClassesForDex(ctx unsafe.Pointer, dexFile string) (int, error) {
	cName := C.CString(dexFile)
	defer C.free(unsafe.Pointer(cName))

	n := int(C.get_number_of_classes_for_dex_file(C.hApkContext(ctx), cName))
	if n < 0 {
		return 0, &StatusError{Op: "get_number_of_classes_for_dex_file", Code: n}
	}
	return n, nil
}

func ClassByIndexForDex(ctx unsafe.Pointer, dexFile string, idx int) (*Class, unsafe.Pointer, error) {
	cName := C.CString(dexFile)
	defer C.free(unsafe.Pointer(cName))

	p := C.get_hdvmclass_from_dex_by_index(C.hApkContext(ctx), cName, C.uint(idx))
	if p == nil {
		return nil, nil, ErrNullResult
	}
	cls := goClass(p)
	return &cls, unsafe.Pointer(p), nil
}

func NumberOfStringsForDex(ctx unsafe.Pointer, dexFile string) (int, error) {
	cName := C.CString(dexFile)
	defer C.free(unsafe.Pointer(cName))

	n := int(C.get_number_of_strings_from_dex(C.hApkContext(ctx), cName))
	if n < 0 {
		return 0, &StatusError{Op: "get_number_of_strings_from_dex", Code: n}
	}
	return n, nil
}

func StringByIDForDex(ctx unsafe.Pointer, dexFile string, idx int) (string, error) {
	cName := C.CString(dexFile)
	defer C.free(unsafe.Pointer(cName))

	cs := C.get_string_by_id_from_dex(C.hApkContext(ctx), cName, C.uint(idx))
	if cs == nil {
		return "", ErrNullResult
	}
	return C.GoString(cs), nil
}

func DisassembledMethodFromApk(ctx unsafe.Pointer, dalvikName string) (*DisassembledMethod, error) {
	cName := C.CString(dalvikName)
	defer C.free(unsafe.Pointer(cName))

	p := C.get_disassembled_method_from_apk(C.hApkContext(ctx), cName)
	if p == nil {
		return nil, ErrNullResult
	}
	dm := goDisassembledMethod(p)
	return &dm, nil
}

func AnalyzedClassFromApk(ctx unsafe.Pointer, className string) (*ClassAnalysis, error) {
	cName := C.CString(className)
	defer C.free(unsafe.Pointer(cName))

	p := C.get_analyzed_class_from_apk(C.hApkContext(ctx), cName)
	if p == nil {
		return nil, ErrNullResult
	}
	ca := goClassAnalysis(p)
	return &ca, nil
}

func AnalyzedClassByClassFromApk(ctx, classPtr unsafe.Pointer) (*ClassAnalysis, error) {
	p := C.get_analyzed_class_by_hdvmclass_from_apk(C.hApkContext(ctx), (*C.hdvmclass_t)(classPtr))
	if p == nil {
		return nil, ErrNullResult
	}
	ca := goClassAnalysis(p)
	return &ca, nil
}

func AnalyzedMethodFromApk(ctx unsafe.Pointer, fullName string) (*MethodAnalysis, error) {
	cName := C.CString(fullName)
	defer C.free(unsafe.Pointer(cName))

	p := C.get_analyzed_method_from_apk(C.hApkContext(ctx), cName)
	if p == nil {
		return nil, ErrNullResult
	}
	ma := goMethodAnalysis(p)
	return &ma, nil
}

func NumberOfMethodAnalysisObjects(ctx unsafe.Pointer) int {
	return int(C.get_number_of_method_analysis_objects(C.hApkContext(ctx)))
}

func AnalyzedMethodByIndex(ctx unsafe.Pointer, idx int) (*MethodAnalysis, error) {
	p := C.get_analyzed_method_by_idx(C.hApkContext(ctx), C.size_t(idx))
	if p == nil {
		return nil, ErrNullResult
	}
	ma := goMethodAnalysis(p)
	return &ma, nil
}

func AnalyzedStringFromApk(ctx unsafe.Pointer, value string) (*StringAnalysis, error) {
	cValue := C.CString(value)
	defer C.free(unsafe.Pointer(cValue))

	p := C.get_analyzed_string_from_apk(C.hApkContext(ctx), cValue)
	if p == nil {
		return nil, ErrNullResult
	}
	sa := goStringAnalysis(p)
	return &sa, nil
}
