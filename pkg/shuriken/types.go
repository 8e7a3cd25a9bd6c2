package shuriken

// TypeKind is the coarse DVM type category of a field or value.
type TypeKind int

const (
	TypeFundamental TypeKind = iota
	TypeClass
	TypeArray
	TypeUnknown
)

func (k TypeKind) String() string {
	switch k {
	case TypeFundamental:
		return "fundamental"
	case TypeClass:
		return "class"
	case TypeArray:
		return "array"
	default:
		return "unknown"
	}
}

func typeKindFromRaw(raw int32) TypeKind {
	switch raw {
	case 0:
		return TypeFundamental
	case 1:
		return TypeClass
	case 2:
		return TypeArray
	default:
		return TypeUnknown
	}
}

// FundamentalType is the primitive type of a fundamental field. For array
// fields with a primitive element type the library reports the element type.
type FundamentalType int

const (
	FundBoolean FundamentalType = iota
	FundByte
	FundChar
	FundDouble
	FundFloat
	FundInt
	FundLong
	FundShort
	FundVoid

	// FundNone marks fields whose type is not fundamental.
	FundNone FundamentalType = 99
)

func (t FundamentalType) String() string {
	switch t {
	case FundBoolean:
		return "boolean"
	case FundByte:
		return "byte"
	case FundChar:
		return "char"
	case FundDouble:
		return "double"
	case FundFloat:
		return "float"
	case FundInt:
		return "int"
	case FundLong:
		return "long"
	case FundShort:
		return "short"
	case FundVoid:
		return "void"
	default:
		return "none"
	}
}

func fundamentalFromRaw(raw int32, kind TypeKind) FundamentalType {
	if kind != TypeFundamental && kind != TypeArray {
		return FundNone
	}
	if raw >= 0 && raw <= 8 {
		return FundamentalType(raw)
	}
	return FundNone
}

// Field describes one static or instance field of a class.
type Field struct {
	// ClassName is the descriptor of the declaring class.
	ClassName string
	Name      string
	Kind      TypeKind
	// Fundamental is the primitive type when Kind is TypeFundamental, or the
	// element type for arrays of primitives; FundNone otherwise.
	Fundamental FundamentalType
	// TypeDescriptor is the raw DEX type descriptor, e.g. "I" or
	// "Ljava/lang/String;".
	TypeDescriptor string
	AccessFlags    []AccessFlag
}

// Method describes one method of a class, including its raw bytecode.
type Method struct {
	ClassName string
	Name      string
	// Prototype is the shorty-style descriptor, e.g. "(II)I".
	Prototype   string
	AccessFlags []AccessFlag
	// Code is the method's bytecode as stored in the DEX file. Use
	// Dex.DisassembledMethod for a decoded listing.
	Code []byte
	// DalvikName is the fully qualified dalvik name,
	// e.g. "LDexParserTest;->calculateSum(II)I".
	DalvikName    string
	DemangledName string
}

// Class describes one class definition of a DEX file.
type Class struct {
	Name           string
	SuperClass     string
	SourceFile     string
	AccessFlags    []AccessFlag
	DirectMethods  []Method
	VirtualMethods []Method
	InstanceFields []Field
	StaticFields   []Field
}
