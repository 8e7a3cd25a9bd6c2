package shuriken

import (
	"github.com/Shuriken-Group/shuriken-go/internal/bindings"
)

// Conversions from the boundary mirror structs into the public data model.
// The mirrors are already Go-owned copies; this layer only interprets raw
// enum and flag words.

func fieldFromBindings(f bindings.Field) Field {
	kind := typeKindFromRaw(f.Kind)
	return Field{
		ClassName:      f.ClassName,
		Name:           f.Name,
		Kind:           kind,
		Fundamental:    fundamentalFromRaw(f.Fundamental, kind),
		TypeDescriptor: f.TypeValue,
		AccessFlags:    DecodeAccessFlags(f.AccessFlags, FieldFlags),
	}
}

func methodFromBindings(m bindings.Method) Method {
	return Method{
		ClassName:     m.ClassName,
		Name:          m.Name,
		Prototype:     m.Prototype,
		AccessFlags:   DecodeAccessFlags(m.AccessFlags, MethodFlags),
		Code:          m.Code,
		DalvikName:    m.DalvikName,
		DemangledName: m.DemangledName,
	}
}

func classFromBindings(c bindings.Class) Class {
	cls := Class{
		Name:        c.Name,
		SuperClass:  c.SuperClass,
		SourceFile:  c.SourceFile,
		AccessFlags: DecodeAccessFlags(c.AccessFlags, ClassFlags),
	}
	if len(c.DirectMethods) > 0 {
		cls.DirectMethods = make([]Method, len(c.DirectMethods))
		for i, m := range c.DirectMethods {
			cls.DirectMethods[i] = methodFromBindings(m)
		}
	}
	if len(c.VirtualMethods) > 0 {
		cls.VirtualMethods = make([]Method, len(c.VirtualMethods))
		for i, m := range c.VirtualMethods {
			cls.VirtualMethods[i] = methodFromBindings(m)
		}
	}
	if len(c.InstanceFields) > 0 {
		cls.InstanceFields = make([]Field, len(c.InstanceFields))
		for i, f := range c.InstanceFields {
			cls.InstanceFields[i] = fieldFromBindings(f)
		}
	}
	if len(c.StaticFields) > 0 {
		cls.StaticFields = make([]Field, len(c.StaticFields))
		for i, f := range c.StaticFields {
			cls.StaticFields[i] = fieldFromBindings(f)
		}
	}
	return cls
}

func instructionFromBindings(i bindings.Instruction) Instruction {
	return Instruction{
		Type:        instTypeFromRaw(i.Kind),
		Length:      i.Length,
		Address:     i.Address,
		Opcode:      i.Op,
		Disassembly: i.Disassembly,
	}
}

func instructionsFromBindings(src []bindings.Instruction) []Instruction {
	if len(src) == 0 {
		return nil
	}
	out := make([]Instruction, len(src))
	for i, ins := range src {
		out[i] = instructionFromBindings(ins)
	}
	return out
}

func disassembledFromBindings(dm bindings.DisassembledMethod) DisassembledMethod {
	out := DisassembledMethod{
		Method:       methodFromBindings(dm.Method),
		Registers:    dm.Registers,
		Instructions: instructionsFromBindings(dm.Instructions),
		Text:         dm.Text,
	}
	if len(dm.Exceptions) > 0 {
		out.Exceptions = make([]ExceptionInfo, len(dm.Exceptions))
		for i, e := range dm.Exceptions {
			info := ExceptionInfo{TryStart: e.TryStartAddr, TryEnd: e.TryEndAddr}
			if len(e.Handlers) > 0 {
				info.Handlers = make([]ExceptionHandler, len(e.Handlers))
				for j, h := range e.Handlers {
					info.Handlers[j] = ExceptionHandler{Type: h.Type, StartAddress: h.StartAddr}
				}
			}
			out.Exceptions[i] = info
		}
	}
	return out
}

func classMethodRefs(src []bindings.ClassMethodIdx) []ClassMethodRef {
	if len(src) == 0 {
		return nil
	}
	out := make([]ClassMethodRef, len(src))
	for i, x := range src {
		out[i] = ClassMethodRef{Class: x.Class, Method: x.Method, Address: x.Idx}
	}
	return out
}

func methodRefs(src []bindings.MethodIdx) []MethodRef {
	if len(src) == 0 {
		return nil
	}
	out := make([]MethodRef, len(src))
	for i, x := range src {
		out[i] = MethodRef{Method: x.Method, Address: x.Idx}
	}
	return out
}

func classFieldRefs(src []bindings.ClassFieldIdx) []ClassFieldRef {
	if len(src) == 0 {
		return nil
	}
	out := make([]ClassFieldRef, len(src))
	for i, x := range src {
		out[i] = ClassFieldRef{Class: x.Class, Field: x.Field, Address: x.Idx}
	}
	return out
}

func classRefs(src []bindings.ClassIdx) []ClassRef {
	if len(src) == 0 {
		return nil
	}
	out := make([]ClassRef, len(src))
	for i, x := range src {
		out[i] = ClassRef{Class: x.Class, Address: x.Idx}
	}
	return out
}

func classXrefs(src []bindings.ClassXref) []ClassXref {
	if len(src) == 0 {
		return nil
	}
	out := make([]ClassXref, len(src))
	for i, x := range src {
		ref := ClassXref{Class: x.Class}
		if len(x.Methods) > 0 {
			ref.Methods = make([]TypedMethodRef, len(x.Methods))
			for j, m := range x.Methods {
				ref.Methods[j] = TypedMethodRef{
					Type:    RefType(m.RefType),
					Method:  m.Method,
					Address: m.Idx,
				}
			}
		}
		out[i] = ref
	}
	return out
}

func basicBlocksFromBindings(src []bindings.BasicBlock) []BasicBlock {
	if len(src) == 0 {
		return nil
	}
	out := make([]BasicBlock, len(src))
	for i, b := range src {
		out[i] = BasicBlock{
			Name:         b.Name,
			Instructions: instructionsFromBindings(b.Instructions),
			Try:          b.TryBlock,
			Catch:        b.CatchBlock,
			HandlerType:  b.HandlerType,
			Text:         b.Text,
		}
	}
	return out
}

func fieldAnalysisFromBindings(fa bindings.FieldAnalysis) FieldAnalysis {
	return FieldAnalysis{
		Name:   fa.Name,
		Reads:  classMethodRefs(fa.XrefRead),
		Writes: classMethodRefs(fa.XrefWrite),
	}
}

func methodAnalysisFromBindings(ma bindings.MethodAnalysis) MethodAnalysis {
	return MethodAnalysis{
		Name:         ma.Name,
		Descriptor:   ma.Descriptor,
		FullName:     ma.FullName,
		ClassName:    ma.ClassName,
		External:     ma.External,
		AndroidAPI:   ma.AndroidAPI,
		AccessFlags:  DecodeAccessFlags(ma.AccessFlags, MethodFlags),
		BasicBlocks:  basicBlocksFromBindings(ma.BasicBlocks),
		FieldReads:   classFieldRefs(ma.XrefRead),
		FieldWrites:  classFieldRefs(ma.XrefWrite),
		Callees:      classMethodRefs(ma.XrefTo),
		Callers:      classMethodRefs(ma.XrefFrom),
		NewInstances: classRefs(ma.XrefNewInstance),
		ConstClasses: classRefs(ma.XrefConstClass),
		Text:         ma.Text,
	}
}

func classAnalysisFromBindings(ca bindings.ClassAnalysis) ClassAnalysis {
	out := ClassAnalysis{
		Name:         ca.Name,
		Extends:      ca.Extends,
		External:     ca.External,
		NewInstances: methodRefs(ca.XrefNewInstance),
		ConstClasses: methodRefs(ca.XrefConstClass),
		XrefTo:       classXrefs(ca.XrefTo),
		XrefFrom:     classXrefs(ca.XrefFrom),
	}
	if len(ca.Methods) > 0 {
		out.Methods = make([]MethodAnalysis, len(ca.Methods))
		for i, m := range ca.Methods {
			out.Methods[i] = methodAnalysisFromBindings(m)
		}
	}
	if len(ca.Fields) > 0 {
		out.Fields = make([]FieldAnalysis, len(ca.Fields))
		for i, f := range ca.Fields {
			out.Fields[i] = fieldAnalysisFromBindings(f)
		}
	}
	return out
}

func stringAnalysisFromBindings(sa bindings.StringAnalysis) StringAnalysis {
	return StringAnalysis{
		Value: sa.Value,
		Uses:  classMethodRefs(sa.XrefFrom),
	}
}
