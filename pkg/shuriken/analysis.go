package shuriken

// RefType classifies how one class or method references another. The values
// are the Dalvik opcodes that create the reference.
type RefType int

const (
	RefClassUsage           RefType = 0x1c
	RefNewInstance          RefType = 0x22
	RefInvokeVirtual        RefType = 0x6e
	RefInvokeSuper          RefType = 0x6f
	RefInvokeDirect         RefType = 0x70
	RefInvokeStatic         RefType = 0x71
	RefInvokeInterface      RefType = 0x72
	RefInvokeVirtualRange   RefType = 0x74
	RefInvokeSuperRange     RefType = 0x75
	RefInvokeDirectRange    RefType = 0x76
	RefInvokeStaticRange    RefType = 0x77
	RefInvokeInterfaceRange RefType = 0x78
)

func (r RefType) String() string {
	switch r {
	case RefClassUsage:
		return "const-class"
	case RefNewInstance:
		return "new-instance"
	case RefInvokeVirtual:
		return "invoke-virtual"
	case RefInvokeSuper:
		return "invoke-super"
	case RefInvokeDirect:
		return "invoke-direct"
	case RefInvokeStatic:
		return "invoke-static"
	case RefInvokeInterface:
		return "invoke-interface"
	case RefInvokeVirtualRange:
		return "invoke-virtual/range"
	case RefInvokeSuperRange:
		return "invoke-super/range"
	case RefInvokeDirectRange:
		return "invoke-direct/range"
	case RefInvokeStaticRange:
		return "invoke-static/range"
	case RefInvokeInterfaceRange:
		return "invoke-interface/range"
	default:
		return "unknown"
	}
}

// ClassMethodRef locates a reference by class, method and instruction
// address.
type ClassMethodRef struct {
	Class   string
	Method  string
	Address uint64
}

// MethodRef locates a reference by method and instruction address.
type MethodRef struct {
	Method  string
	Address uint64
}

// ClassFieldRef locates a field access by class, field and instruction
// address.
type ClassFieldRef struct {
	Class   string
	Field   string
	Address uint64
}

// ClassRef locates a class reference by instruction address.
type ClassRef struct {
	Class   string
	Address uint64
}

// TypedMethodRef is a method reference together with the kind of
// instruction that created it.
type TypedMethodRef struct {
	Type    RefType
	Method  string
	Address uint64
}

// ClassXref groups all typed method references between two classes.
type ClassXref struct {
	Class   string
	Methods []TypedMethodRef
}

// BasicBlock is one node of a method's control-flow graph.
type BasicBlock struct {
	Name         string
	Instructions []Instruction
	Try          bool
	Catch        bool
	// HandlerType is the caught exception descriptor for catch blocks.
	HandlerType string
	// Text is the library's rendering of the whole block.
	Text string
}

// FieldAnalysis lists every location that reads or writes one field.
type FieldAnalysis struct {
	Name   string
	Reads  []ClassMethodRef
	Writes []ClassMethodRef
}

// MethodAnalysis is the analysis view of one method: its control-flow graph
// plus all cross-references in and out of it.
type MethodAnalysis struct {
	Name       string
	Descriptor string
	FullName   string
	ClassName  string
	// External marks methods that are referenced but not defined in the
	// loaded file.
	External    bool
	AndroidAPI  bool
	AccessFlags []AccessFlag
	BasicBlocks []BasicBlock
	// FieldReads and FieldWrites are the fields this method accesses.
	FieldReads  []ClassFieldRef
	FieldWrites []ClassFieldRef
	// Callees are methods invoked from this method; Callers invoke it.
	Callees []ClassMethodRef
	Callers []ClassMethodRef
	// NewInstances and ConstClasses are the classes this method
	// instantiates or names in const-class instructions.
	NewInstances []ClassRef
	ConstClasses []ClassRef
	Text         string
}

// ClassAnalysis is the analysis view of one class.
type ClassAnalysis struct {
	Name    string
	Extends string
	// External marks classes that are referenced but not defined in the
	// loaded file.
	External bool
	Methods  []MethodAnalysis
	Fields   []FieldAnalysis
	// NewInstances and ConstClasses are the methods that instantiate or
	// name this class.
	NewInstances []MethodRef
	ConstClasses []MethodRef
	// XrefTo are classes this class references; XrefFrom reference it.
	XrefTo   []ClassXref
	XrefFrom []ClassXref
}

// StringAnalysis lists every location that uses one string constant.
type StringAnalysis struct {
	Value string
	Uses  []ClassMethodRef
}
