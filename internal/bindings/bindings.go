//go:build cgo && !windows

package bindings

/*
#cgo CFLAGS: -I${SRCDIR}/../../shuriken/include
#cgo CXXFLAGS: -I${SRCDIR}/../../shuriken/include
#cgo LDFLAGS: -L${SRCDIR}/../../shuriken/lib -lshuriken
#include <stdlib.h>
#include "shuriken/api/C/shuriken_core.h"
#include "shuriken/api/C/shuriken_core_data.h"
*/
import "C"

import (
	"unsafe"
)

// ParseDex asks the native parser for a DEX context. A null context means the
// file could not be opened or parsed; the library does not say which.
func ParseDex(path string) (unsafe.Pointer, error) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	ctx := C.parse_dex(cPath)
	if ctx == nil {
		return nil, ErrNullResult
	}
	return unsafe.Pointer(ctx), nil
}

// DestroyDex releases a DEX context. The caller guarantees the pointer is a
// live context and never passes it again afterwards.
func DestroyDex(ctx unsafe.Pointer) {
	C.destroy_dex(C.hDexContext(ctx))
}

func NumberOfStrings(ctx unsafe.Pointer) int {
	return int(C.get_number_of_strings(C.hDexContext(ctx)))
}

func StringByID(ctx unsafe.Pointer, id int) (string, error) {
	cs := C.get_string_by_id(C.hDexContext(ctx), C.size_t(id))
	if cs == nil {
		return "", ErrNullResult
	}
	return C.GoString(cs), nil
}

func NumberOfClasses(ctx unsafe.Pointer) int {
	return int(C.get_number_of_classes(C.hDexContext(ctx)))
}

// ClassByID returns the copied class record plus the raw hdvmclass_t pointer.
// The raw pointer is owned by the native context; the safe layer only feeds it
// back into analysis lookups while the context is alive.
func ClassByID(ctx unsafe.Pointer, id int) (*Class, unsafe.Pointer, error) {
	p := C.get_class_by_id(C.hDexContext(ctx), C.uint16_t(id))
	if p == nil {
		return nil, nil, ErrNullResult
	}
	cls := goClass(p)
	return &cls, unsafe.Pointer(p), nil
}

func ClassByName(ctx unsafe.Pointer, name string) (*Class, unsafe.Pointer, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	p := C.get_class_by_name(C.hDexContext(ctx), cName)
	if p == nil {
		return nil, nil, ErrNullResult
	}
	cls := goClass(p)
	return &cls, unsafe.Pointer(p), nil
}

func MethodByName(ctx unsafe.Pointer, dalvikName string) (*Method, unsafe.Pointer, error) {
	cName := C.CString(dalvikName)
	defer C.free(unsafe.Pointer(cName))

	p := C.get_method_by_name(C.hDexContext(ctx), cName)
	if p == nil {
		return nil, nil, ErrNullResult
	}
	m := goMethod(p)
	return &m, unsafe.Pointer(p), nil
}

// DisassembleDex runs the native disassembler over the whole context. The
// result is cached inside the context; individual methods are fetched with
// DisassembledMethod.
func DisassembleDex(ctx unsafe.Pointer) {
	C.disassemble_dex(C.hDexContext(ctx))
}

func GetDisassembledMethod(ctx unsafe.Pointer, dalvikName string) (*DisassembledMethod, error) {
	cName := C.CString(dalvikName)
	defer C.free(unsafe.Pointer(cName))

	p := C.get_disassembled_method(C.hDexContext(ctx), cName)
	if p == nil {
		return nil, ErrNullResult
	}
	dm := goDisassembledMethod(p)
	return &dm, nil
}

// CreateDexAnalysis prepares the analysis object inside the context.
// Cross-references make the later AnalyzeClasses pass noticeably slower.
func CreateDexAnalysis(ctx unsafe.Pointer, createXrefs bool) {
	var x C.boolean_e
	if createXrefs {
		x = 1
	}
	C.create_dex_analysis(C.hDexContext(ctx), x)
}

func AnalyzeClasses(ctx unsafe.Pointer) {
	C.analyze_classes(C.hDexContext(ctx))
}

func AnalyzedClassByName(ctx unsafe.Pointer, name string) (*ClassAnalysis, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	p := C.get_analyzed_class(C.hDexContext(ctx), cName)
	if p == nil {
		return nil, ErrNullResult
	}
	ca := goClassAnalysis(p)
	return &ca, nil
}

// AnalyzedClassByClass resolves the analysis through a raw hdvmclass_t pointer
// previously returned by ClassByID/ClassByName on the same context.
func AnalyzedClassByClass(ctx, classPtr unsafe.Pointer) (*ClassAnalysis, error) {
	p := C.get_analyzed_class_by_hdvmclass(C.hDexContext(ctx), (*C.hdvmclass_t)(classPtr))
	if p == nil {
		return nil, ErrNullResult
	}
	ca := goClassAnalysis(p)
	return &ca, nil
}

func AnalyzedMethodByName(ctx unsafe.Pointer, fullName string) (*MethodAnalysis, error) {
	cName := C.CString(fullName)
	defer C.free(unsafe.Pointer(cName))

	p := C.get_analyzed_method(C.hDexContext(ctx), cName)
	if p == nil {
		return nil, ErrNullResult
	}
	ma := goMethodAnalysis(p)
	return &ma, nil
}

func AnalyzedMethodByMethod(ctx, methodPtr unsafe.Pointer) (*MethodAnalysis, error) {
	p := C.get_analyzed_method_by_hdvmmethod(C.hDexContext(ctx), (*C.hdvmmethod_t)(methodPtr))
	if p == nil {
		return nil, ErrNullResult
	}
	ma := goMethodAnalysis(p)
	return &ma, nil
}

// ---- boundary copies ----

func goStr(p *C.char) string {
	if p == nil {
		return ""
	}
	return C.GoString(p)
}

func goField(f *C.hdvmfield_t) Field {
	return Field{
		ClassName:   goStr(f.class_name),
		Name:        goStr(f.name),
		Kind:        int32(f._type),
		Fundamental: int32(f.fundamental_value),
		TypeValue:   goStr(f.type_value),
		AccessFlags: uint32(f.access_flags),
	}
}

func goFields(p *C.hdvmfield_t, n int) []Field {
	if p == nil || n <= 0 {
		return nil
	}
	src := unsafe.Slice(p, n)
	out := make([]Field, n)
	for i := range src {
		out[i] = goField(&src[i])
	}
	return out
}

func goMethod(m *C.hdvmmethod_t) Method {
	var code []byte
	if m.code != nil && m.code_size > 0 {
		code = C.GoBytes(unsafe.Pointer(m.code), C.int(m.code_size))
	}
	return Method{
		ClassName:     goStr(m.class_name),
		Name:          goStr(m.method_name),
		Prototype:     goStr(m.prototype),
		AccessFlags:   uint32(m.access_flags),
		Code:          code,
		DalvikName:    goStr(m.dalvik_name),
		DemangledName: goStr(m.demangled_name),
	}
}

func goMethods(p *C.hdvmmethod_t, n int) []Method {
	if p == nil || n <= 0 {
		return nil
	}
	src := unsafe.Slice(p, n)
	out := make([]Method, n)
	for i := range src {
		out[i] = goMethod(&src[i])
	}
	return out
}

func goClass(c *C.hdvmclass_t) Class {
	return Class{
		Name:           goStr(c.class_name),
		SuperClass:     goStr(c.super_class),
		SourceFile:     goStr(c.source_file),
		AccessFlags:    uint32(c.access_flags),
		DirectMethods:  goMethods(c.direct_methods, int(c.direct_methods_size)),
		VirtualMethods: goMethods(c.virtual_methods, int(c.virtual_methods_size)),
		InstanceFields: goFields(c.instance_fields, int(c.instance_fields_size)),
		StaticFields:   goFields(c.static_fields, int(c.static_fields_size)),
	}
}

func goInstruction(i *C.hdvminstruction_t) Instruction {
	return Instruction{
		Kind:        int32(i.instruction_type),
		Length:      int(i.instruction_length),
		Address:     uint64(i.address),
		Op:          uint32(i.op),
		Disassembly: goStr(i.disassembly),
	}
}

func goInstructions(p *C.hdvminstruction_t, n int) []Instruction {
	if p == nil || n <= 0 {
		return nil
	}
	src := unsafe.Slice(p, n)
	out := make([]Instruction, n)
	for i := range src {
		out[i] = goInstruction(&src[i])
	}
	return out
}

func goExceptions(p *C.dvmexceptions_data_t, n int) []ExceptionInfo {
	if p == nil || n <= 0 {
		return nil
	}
	src := unsafe.Slice(p, n)
	out := make([]ExceptionInfo, n)
	for i := range src {
		e := &src[i]
		info := ExceptionInfo{
			TryStartAddr: uint64(e.try_value_start_addr),
			TryEndAddr:   uint64(e.try_value_end_addr),
		}
		if e.handler != nil && e.n_of_handlers > 0 {
			handlers := unsafe.Slice(e.handler, int(e.n_of_handlers))
			info.Handlers = make([]ExceptionHandler, len(handlers))
			for j := range handlers {
				info.Handlers[j] = ExceptionHandler{
					Type:      goStr(handlers[j].handler_type),
					StartAddr: uint64(handlers[j].handler_start_addr),
				}
			}
		}
		out[i] = info
	}
	return out
}

func goDisassembledMethod(p *C.dvmdisassembled_method_t) DisassembledMethod {
	dm := DisassembledMethod{
		Registers:    int(p.n_of_registers),
		Exceptions:   goExceptions(p.exception_information, int(p.n_of_exceptions)),
		Instructions: goInstructions(p.instructions, int(p.n_of_instructions)),
		Text:         goStr(p.method_string),
	}
	if p.method_id != nil {
		dm.Method = goMethod(p.method_id)
	}
	return dm
}

func goBasicBlocks(p *C.basic_blocks_t) []BasicBlock {
	if p == nil || p.blocks == nil || p.n_of_blocks <= 0 {
		return nil
	}
	src := unsafe.Slice(p.blocks, int(p.n_of_blocks))
	out := make([]BasicBlock, len(src))
	for i := range src {
		b := &src[i]
		out[i] = BasicBlock{
			Name:         goStr(b.name),
			Instructions: goInstructions(b.instructions, int(b.n_of_instructions)),
			TryBlock:     b.try_block != 0,
			CatchBlock:   b.catch_block != 0,
			// handler_type can point at garbage for some inputs
			// (Shuriken-Analyzer#153); leave it empty until fixed upstream.
			HandlerType: "",
			Text:        goStr(b.block_string),
		}
	}
	return out
}

func goClassMethodIdxs(p *C.hdvm_class_method_idx_t, n int) []ClassMethodIdx {
	if p == nil || n <= 0 {
		return nil
	}
	src := unsafe.Slice(p, n)
	out := make([]ClassMethodIdx, n)
	for i := range src {
		x := &src[i]
		var rec ClassMethodIdx
		if x.cls != nil {
			rec.Class = goStr(x.cls.name_)
		}
		if x.method != nil {
			rec.Method = goStr(x.method.full_name)
		}
		rec.Idx = uint64(x.idx)
		out[i] = rec
	}
	return out
}

func goMethodIdxs(p *C.hdvm_method_idx_t, n int) []MethodIdx {
	if p == nil || n <= 0 {
		return nil
	}
	src := unsafe.Slice(p, n)
	out := make([]MethodIdx, n)
	for i := range src {
		x := &src[i]
		var rec MethodIdx
		if x.method != nil {
			rec.Method = goStr(x.method.full_name)
		}
		rec.Idx = uint64(x.idx)
		out[i] = rec
	}
	return out
}

func goClassFieldIdxs(p *C.hdvm_class_field_idx_t, n int) []ClassFieldIdx {
	if p == nil || n <= 0 {
		return nil
	}
	src := unsafe.Slice(p, n)
	out := make([]ClassFieldIdx, n)
	for i := range src {
		x := &src[i]
		var rec ClassFieldIdx
		if x.cls != nil {
			rec.Class = goStr(x.cls.name_)
		}
		if x.field != nil {
			rec.Field = goStr(x.field.name)
		}
		rec.Idx = uint64(x.idx)
		out[i] = rec
	}
	return out
}

func goClassIdxs(p *C.hdvm_class_idx_t, n int) []ClassIdx {
	if p == nil || n <= 0 {
		return nil
	}
	src := unsafe.Slice(p, n)
	out := make([]ClassIdx, n)
	for i := range src {
		x := &src[i]
		var rec ClassIdx
		if x.cls != nil {
			rec.Class = goStr(x.cls.name_)
		}
		rec.Idx = uint64(x.idx)
		out[i] = rec
	}
	return out
}

func goRefTypeMethodIdxs(p *C.hdvm_reftype_method_idx_t, n int) []RefTypeMethodIdx {
	if p == nil || n <= 0 {
		return nil
	}
	src := unsafe.Slice(p, n)
	out := make([]RefTypeMethodIdx, n)
	for i := range src {
		x := &src[i]
		rec := RefTypeMethodIdx{
			RefType: int32(x.reType),
			Idx:     uint64(x.idx),
		}
		if x.methodAnalysis != nil {
			rec.Method = goStr(x.methodAnalysis.full_name)
		}
		out[i] = rec
	}
	return out
}

func goClassXrefs(p *C.hdvm_classxref_t, n int) []ClassXref {
	if p == nil || n <= 0 {
		return nil
	}
	src := unsafe.Slice(p, n)
	out := make([]ClassXref, n)
	for i := range src {
		x := &src[i]
		var rec ClassXref
		if x.classAnalysis != nil {
			rec.Class = goStr(x.classAnalysis.name_)
		}
		rec.Methods = goRefTypeMethodIdxs(x.hdvmReftypeMethodIdx, int(x.n_of_reftype_method_idx))
		out[i] = rec
	}
	return out
}

func goFieldAnalysis(p *C.hdvmfieldanalysis_t) FieldAnalysis {
	return FieldAnalysis{
		Name:      goStr(p.name),
		XrefRead:  goClassMethodIdxs(p.xrefread, int(p.n_of_xrefread)),
		XrefWrite: goClassMethodIdxs(p.xrefwrite, int(p.n_of_xrefwrite)),
	}
}

func goMethodAnalysis(p *C.hdvmmethodanalysis_t) MethodAnalysis {
	return MethodAnalysis{
		Name:            goStr(p.name),
		Descriptor:      goStr(p.descriptor),
		FullName:        goStr(p.full_name),
		External:        p.external != 0,
		AndroidAPI:      p.is_android_api != 0,
		AccessFlags:     uint32(p.access_flags),
		ClassName:       goStr(p.class_name),
		BasicBlocks:     goBasicBlocks(p.basic_blocks),
		XrefRead:        goClassFieldIdxs(p.xrefread, int(p.n_of_xrefread)),
		XrefWrite:       goClassFieldIdxs(p.xrefwrite, int(p.n_of_xrefwrite)),
		XrefTo:          goClassMethodIdxs(p.xrefto, int(p.n_of_xrefto)),
		XrefFrom:        goClassMethodIdxs(p.xreffrom, int(p.n_of_xreffrom)),
		XrefNewInstance: goClassIdxs(p.xrefnewinstance, int(p.n_of_xrefnewinstance)),
		XrefConstClass:  goClassIdxs(p.xrefconstclass, int(p.n_of_xrefconstclass)),
		Text:            goStr(p.method_string),
	}
}

func goClassAnalysis(p *C.hdvmclassanalysis_t) ClassAnalysis {
	ca := ClassAnalysis{
		External:        p.is_external != 0,
		Extends:         goStr(p.extends_),
		Name:            goStr(p.name_),
		XrefNewInstance: goMethodIdxs(p.xrefnewinstance, int(p.n_of_xrefnewinstance)),
		XrefConstClass:  goMethodIdxs(p.xrefconstclass, int(p.n_of_xrefconstclass)),
		XrefTo:          goClassXrefs(p.xrefto, int(p.n_of_xrefto)),
		XrefFrom:        goClassXrefs(p.xreffrom, int(p.n_of_xreffrom)),
	}
	if p.methods != nil && p.n_of_methods > 0 {
		src := unsafe.Slice(p.methods, int(p.n_of_methods))
		ca.Methods = make([]MethodAnalysis, 0, len(src))
		for _, m := range src {
			if m != nil {
				ca.Methods = append(ca.Methods, goMethodAnalysis(m))
			}
		}
	}
	if p.fields != nil && p.n_of_fields > 0 {
		src := unsafe.Slice(p.fields, int(p.n_of_fields))
		ca.Fields = make([]FieldAnalysis, 0, len(src))
		for _, f := range src {
			if f != nil {
				ca.Fields = append(ca.Fields, goFieldAnalysis(f))
			}
		}
	}
	return ca
}

func goStringAnalysis(p *C.hdvmstringanalysis_t) StringAnalysis {
	return StringAnalysis{
		Value:    goStr(p.value),
		XrefFrom: goClassMethodIdxs(p.xreffrom, int(p.n_of_xreffrom)),
	}
}
