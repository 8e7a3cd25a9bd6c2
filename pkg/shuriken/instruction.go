package shuriken

// InstType identifies the Dalvik instruction format of a decoded
// instruction (10x, 21c, 35c, ...). The numeric values follow the native
// library's dexinsttype_e enumeration.
type InstType int

const (
	Inst00x InstType = iota
	Inst10x
	Inst12x
	Inst11n
	Inst11x
	Inst10t
	Inst20t
	Inst20bc
	Inst22x
	Inst21t
	Inst21s
	Inst21h
	Inst21c
	Inst23x
	Inst22b
	Inst22t
	Inst22s
	Inst22c
	Inst22cs
	Inst30t
	Inst32x
	Inst31i
	Inst31t
	Inst31c
	Inst35c
	Inst3rc
	Inst45cc
	Inst4rcc
	Inst51l
	InstPackedSwitch
	InstSparseSwitch
	InstFillArrayData
	InstIncorrect

	InstNone InstType = 99
)

var instTypeNames = map[InstType]string{
	Inst00x:           "00x",
	Inst10x:           "10x",
	Inst12x:           "12x",
	Inst11n:           "11n",
	Inst11x:           "11x",
	Inst10t:           "10t",
	Inst20t:           "20t",
	Inst20bc:          "20bc",
	Inst22x:           "22x",
	Inst21t:           "21t",
	Inst21s:           "21s",
	Inst21h:           "21h",
	Inst21c:           "21c",
	Inst23x:           "23x",
	Inst22b:           "22b",
	Inst22t:           "22t",
	Inst22s:           "22s",
	Inst22c:           "22c",
	Inst22cs:          "22cs",
	Inst30t:           "30t",
	Inst32x:           "32x",
	Inst31i:           "31i",
	Inst31t:           "31t",
	Inst31c:           "31c",
	Inst35c:           "35c",
	Inst3rc:           "3rc",
	Inst45cc:          "45cc",
	Inst4rcc:          "4rcc",
	Inst51l:           "51l",
	InstPackedSwitch:  "packed-switch-payload",
	InstSparseSwitch:  "sparse-switch-payload",
	InstFillArrayData: "fill-array-data-payload",
	InstNone:          "none",
}

func (t InstType) String() string {
	if s, ok := instTypeNames[t]; ok {
		return s
	}
	return "incorrect"
}

func instTypeFromRaw(raw int32) InstType {
	if raw == 99 {
		return InstNone
	}
	if raw >= 0 && raw < int32(InstIncorrect) {
		return InstType(raw)
	}
	return InstIncorrect
}

// Instruction is one decoded Dalvik instruction.
type Instruction struct {
	Type InstType
	// Length is the instruction size in bytes.
	Length int
	// Address is the instruction's offset within the method's code item.
	Address uint64
	Opcode  uint32
	// Disassembly is the library's text rendering of the instruction.
	Disassembly string
}

// ExceptionHandler is one catch handler of a try block.
type ExceptionHandler struct {
	// Type is the descriptor of the caught exception class.
	Type         string
	StartAddress uint64
}

// ExceptionInfo describes one try block and its handlers.
type ExceptionInfo struct {
	TryStart uint64
	TryEnd   uint64
	Handlers []ExceptionHandler
}

// DisassembledMethod is the full disassembly of one method.
type DisassembledMethod struct {
	Method       Method
	Registers    int
	Exceptions   []ExceptionInfo
	Instructions []Instruction
	// Text is the complete ".method ... .end method" listing.
	Text string
}
