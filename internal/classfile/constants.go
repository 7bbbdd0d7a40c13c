package classfile

import (
	"errors"
	"fmt"
)

/*
*	Class file format described here
*	https://docs.oracle.com/javase/specs/jvms/se21/html/jvms-4.html
 */

const Magic uint32 = 0xCAFEBABE

var (
	ErrInvalidMagic     = errors.New("not a class file")
	ErrBadConstantIndex = errors.New("constant pool index out of range")
)

type ConstantTag byte

const (
	CONSTANT_Utf8               ConstantTag = 1
	CONSTANT_Integer            ConstantTag = 3
	CONSTANT_Float              ConstantTag = 4
	CONSTANT_Long               ConstantTag = 5
	CONSTANT_Double             ConstantTag = 6
	CONSTANT_Class              ConstantTag = 7
	CONSTANT_String             ConstantTag = 8
	CONSTANT_Fieldref           ConstantTag = 9
	CONSTANT_Methodref          ConstantTag = 10
	CONSTANT_InterfaceMethodref ConstantTag = 11
	CONSTANT_NameAndType        ConstantTag = 12
	CONSTANT_MethodHandle       ConstantTag = 15
	CONSTANT_MethodType         ConstantTag = 16
	CONSTANT_Dynamic            ConstantTag = 17
	CONSTANT_InvokeDynamic      ConstantTag = 18
	CONSTANT_Module             ConstantTag = 19
	CONSTANT_Package            ConstantTag = 20
)

func (t ConstantTag) String() string {
	switch t {
	case CONSTANT_Utf8:
		return "Utf8"
	case CONSTANT_Integer:
		return "Integer"
	case CONSTANT_Float:
		return "Float"
	case CONSTANT_Long:
		return "Long"
	case CONSTANT_Double:
		return "Double"
	case CONSTANT_Class:
		return "Class"
	case CONSTANT_String:
		return "String"
	case CONSTANT_Fieldref:
		return "Fieldref"
	case CONSTANT_Methodref:
		return "Methodref"
	case CONSTANT_InterfaceMethodref:
		return "InterfaceMethodref"
	case CONSTANT_NameAndType:
		return "NameAndType"
	case CONSTANT_MethodHandle:
		return "MethodHandle"
	case CONSTANT_MethodType:
		return "MethodType"
	case CONSTANT_Dynamic:
		return "Dynamic"
	case CONSTANT_InvokeDynamic:
		return "InvokeDynamic"
	case CONSTANT_Module:
		return "Module"
	case CONSTANT_Package:
		return "Package"
	default:
		return fmt.Sprintf("ConstantTag(%d)", byte(t))
	}
}

// Access flags shared by classes, fields and methods
const (
	ACC_PUBLIC     uint16 = 0x0001
	ACC_STATIC     uint16 = 0x0008
	ACC_FINAL      uint16 = 0x0010
	ACC_INTERFACE  uint16 = 0x0200
	ACC_ABSTRACT   uint16 = 0x0400
	ACC_SYNTHETIC  uint16 = 0x1000
	ACC_ANNOTATION uint16 = 0x2000
	ACC_ENUM       uint16 = 0x4000
)

// Attribute names the parser decodes; all others are skipped
const (
	AttrRuntimeVisibleAnnotations            = "RuntimeVisibleAnnotations"
	AttrRuntimeInvisibleAnnotations          = "RuntimeInvisibleAnnotations"
	AttrRuntimeVisibleParameterAnnotations   = "RuntimeVisibleParameterAnnotations"
	AttrRuntimeInvisibleParameterAnnotations = "RuntimeInvisibleParameterAnnotations"
)
