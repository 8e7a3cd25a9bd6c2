package shuriken

import "strings"

// FlagKind selects the decode rules for an access-flag word. Several bits are
// overloaded in the DEX format: 0x40 means volatile on a field but bridge on
// a method, 0x80 means transient on a field but varargs on a method.
type FlagKind int

const (
	ClassFlags FlagKind = iota
	FieldFlags
	MethodFlags
)

func (k FlagKind) String() string {
	switch k {
	case ClassFlags:
		return "class"
	case FieldFlags:
		return "field"
	case MethodFlags:
		return "method"
	default:
		return "unknown"
	}
}

// AccessFlag is one decoded accessibility or property flag of a class, field
// or method.
type AccessFlag int

const (
	AccPublic AccessFlag = iota
	AccPrivate
	AccProtected
	AccStatic
	AccFinal
	AccSynchronized
	AccVolatile
	AccBridge
	AccTransient
	AccVarargs
	AccNative
	AccInterface
	AccAbstract
	AccStrict
	AccSynthetic
	AccAnnotation
	AccEnum
	AccConstructor
	AccDeclaredSynchronized
)

func (f AccessFlag) String() string {
	switch f {
	case AccPublic:
		return "public"
	case AccPrivate:
		return "private"
	case AccProtected:
		return "protected"
	case AccStatic:
		return "static"
	case AccFinal:
		return "final"
	case AccSynchronized, AccDeclaredSynchronized:
		return "synchronized"
	case AccVolatile:
		return "volatile"
	case AccBridge:
		return "bridge"
	case AccTransient:
		return "transient"
	case AccVarargs:
		return "varargs"
	case AccNative:
		return "native"
	case AccInterface:
		return "interface"
	case AccAbstract:
		return "abstract"
	case AccStrict:
		return "strict"
	case AccSynthetic:
		return "synthetic"
	case AccAnnotation:
		return "annotation"
	case AccEnum:
		return "enum"
	case AccConstructor:
		return "constructor"
	default:
		return "unknown"
	}
}

// DecodeAccessFlags expands a raw access_flags word into the flags that are
// meaningful for the given kind. Bits that carry no meaning for the kind are
// ignored, matching the DEX specification tables.
func DecodeAccessFlags(raw uint32, kind FlagKind) []AccessFlag {
	var flags []AccessFlag

	if raw&0x01 != 0 {
		flags = append(flags, AccPublic)
	}
	if raw&0x02 != 0 {
		flags = append(flags, AccPrivate)
	}
	if raw&0x04 != 0 {
		flags = append(flags, AccProtected)
	}
	if raw&0x08 != 0 {
		flags = append(flags, AccStatic)
	}
	if raw&0x10 != 0 {
		flags = append(flags, AccFinal)
	}
	if raw&0x20 != 0 && kind == MethodFlags {
		flags = append(flags, AccSynchronized)
	}
	if raw&0x40 != 0 {
		switch kind {
		case FieldFlags:
			flags = append(flags, AccVolatile)
		case MethodFlags:
			flags = append(flags, AccBridge)
		}
	}
	if raw&0x80 != 0 {
		switch kind {
		case FieldFlags:
			flags = append(flags, AccTransient)
		case MethodFlags:
			flags = append(flags, AccVarargs)
		}
	}
	if raw&0x100 != 0 && kind == MethodFlags {
		flags = append(flags, AccNative)
	}
	if raw&0x200 != 0 && kind == ClassFlags {
		flags = append(flags, AccInterface)
	}
	if raw&0x400 != 0 && kind != FieldFlags {
		flags = append(flags, AccAbstract)
	}
	if raw&0x800 != 0 && kind == MethodFlags {
		flags = append(flags, AccStrict)
	}
	if raw&0x1000 != 0 {
		flags = append(flags, AccSynthetic)
	}
	if raw&0x2000 != 0 && kind == ClassFlags {
		flags = append(flags, AccAnnotation)
	}
	if raw&0x4000 != 0 && kind != MethodFlags {
		flags = append(flags, AccEnum)
	}
	if raw&0x10000 != 0 && kind == MethodFlags {
		flags = append(flags, AccConstructor)
	}
	if raw&0x20000 != 0 && kind == MethodFlags {
		flags = append(flags, AccDeclaredSynchronized)
	}

	return flags
}

// AccessFlagsString renders decoded flags the way disassemblers print them,
// pipe-separated in decode order.
func AccessFlagsString(flags []AccessFlag) string {
	parts := make([]string, len(flags))
	for i, f := range flags {
		parts[i] = f.String()
	}
	return strings.Join(parts, "|")
}
