package bindings

// Mirror structs for the records ShurikenLib hands back across the C
// boundary. Every field is a deep copy made while the native context is
// alive, so values of these types stay valid after the context is destroyed.
// The raw enum and flag fields keep their native representation; the public
// package interprets them.

// Field mirrors hdvmfield_t.
type Field struct {
	ClassName   string
	Name        string
	Kind        int32
	Fundamental int32
	TypeValue   string
	AccessFlags uint32
}

// Method mirrors hdvmmethod_t.
type Method struct {
	ClassName     string
	Name          string
	Prototype     string
	AccessFlags   uint32
	Code          []byte
	DalvikName    string
	DemangledName string
}

// Class mirrors hdvmclass_t.
type Class struct {
	Name           string
	SuperClass     string
	SourceFile     string
	AccessFlags    uint32
	DirectMethods  []Method
	VirtualMethods []Method
	InstanceFields []Field
	StaticFields   []Field
}

// Instruction mirrors hdvminstruction_t.
type Instruction struct {
	Kind        int32
	Length      int
	Address     uint64
	Op          uint32
	Disassembly string
}

// ExceptionHandler mirrors dvmhandler_data_t.
type ExceptionHandler struct {
	Type      string
	StartAddr uint64
}

// ExceptionInfo mirrors dvmexceptions_data_t.
type ExceptionInfo struct {
	TryStartAddr uint64
	TryEndAddr   uint64
	Handlers     []ExceptionHandler
}

// DisassembledMethod mirrors dvmdisassembled_method_t.
type DisassembledMethod struct {
	Method       Method
	Registers    int
	Exceptions   []ExceptionInfo
	Instructions []Instruction
	Text         string
}

// BasicBlock mirrors hdvmbasicblock_t.
type BasicBlock struct {
	Name         string
	Instructions []Instruction
	TryBlock     bool
	CatchBlock   bool
	HandlerType  string
	Text         string
}

// ClassMethodIdx mirrors hdvm_class_method_idx_t.
type ClassMethodIdx struct {
	Class  string
	Method string
	Idx    uint64
}

// MethodIdx mirrors hdvm_method_idx_t.
type MethodIdx struct {
	Method string
	Idx    uint64
}

// ClassFieldIdx mirrors hdvm_class_field_idx_t.
type ClassFieldIdx struct {
	Class string
	Field string
	Idx   uint64
}

// ClassIdx mirrors hdvm_class_idx_t.
type ClassIdx struct {
	Class string
	Idx   uint64
}

// RefTypeMethodIdx mirrors hdvm_reftype_method_idx_t.
type RefTypeMethodIdx struct {
	RefType int32
	Method  string
	Idx     uint64
}

// ClassXref mirrors hdvm_classxref_t.
type ClassXref struct {
	Class   string
	Methods []RefTypeMethodIdx
}

// FieldAnalysis mirrors hdvmfieldanalysis_t.
type FieldAnalysis struct {
	Name      string
	XrefRead  []ClassMethodIdx
	XrefWrite []ClassMethodIdx
}

// MethodAnalysis mirrors hdvmmethodanalysis_t.
type MethodAnalysis struct {
	Name            string
	Descriptor      string
	FullName        string
	External        bool
	AndroidAPI      bool
	AccessFlags     uint32
	ClassName       string
	BasicBlocks     []BasicBlock
	XrefRead        []ClassFieldIdx
	XrefWrite       []ClassFieldIdx
	XrefTo          []ClassMethodIdx
	XrefFrom        []ClassMethodIdx
	XrefNewInstance []ClassIdx
	XrefConstClass  []ClassIdx
	Text            string
}

// ClassAnalysis mirrors hdvmclassanalysis_t.
type ClassAnalysis struct {
	External        bool
	Extends         string
	Name            string
	Methods         []MethodAnalysis
	Fields          []FieldAnalysis
	XrefNewInstance []MethodIdx
	XrefConstClass  []MethodIdx
	XrefTo          []ClassXref
	XrefFrom        []ClassXref
}

// StringAnalysis mirrors hdvmstringanalysis_t.
type StringAnalysis struct {
	Value    string
	XrefFrom []ClassMethodIdx
}
