package classfile

import (
	"fmt"
	"math"
)

type constant struct {
	tag    ConstantTag
	utf8   string
	index1 uint16
	index2 uint16
	value  any
}

// ConstantPool is indexed from 1; slot 0 and the second slot of
// Long/Double entries are left empty
type ConstantPool []constant

/*
ParseConstantPool parses the constant pool:

u2              constant_pool_count
cp_info         constant_pool[constant_pool_count-1]
*/
func ParseConstantPool(reader *Reader) (ConstantPool, error) {
	count, err := reader.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read constant pool count: %w", err)
	}

	pool := make(ConstantPool, count)
	for i := 1; i < int(count); i++ {
		tagByte, err := reader.ReadU1()
		if err != nil {
			return nil, fmt.Errorf("failed to read tag of constant #%d: %w", i, err)
		}
		tag := ConstantTag(tagByte)

		entry, err := parseConstant(reader, tag)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s constant #%d: %w", tag, i, err)
		}
		pool[i] = entry

		// 8-byte constants take two slots
		if tag == CONSTANT_Long || tag == CONSTANT_Double {
			i++
		}
	}

	return pool, nil
}

func parseConstant(reader *Reader, tag ConstantTag) (constant, error) {
	entry := constant{tag: tag}

	switch tag {
	case CONSTANT_Utf8:
		length, err := reader.ReadU2()
		if err != nil {
			return entry, err
		}
		entry.utf8, err = reader.ReadUtf8(int(length))
		return entry, err

	case CONSTANT_Integer:
		v, err := reader.ReadU4()
		entry.value = int32(v)
		return entry, err

	case CONSTANT_Float:
		v, err := reader.ReadU4()
		entry.value = math.Float32frombits(v)
		return entry, err

	case CONSTANT_Long:
		v, err := reader.ReadU8()
		entry.value = int64(v)
		return entry, err

	case CONSTANT_Double:
		v, err := reader.ReadU8()
		entry.value = math.Float64frombits(v)
		return entry, err

	case CONSTANT_Class, CONSTANT_String, CONSTANT_MethodType, CONSTANT_Module, CONSTANT_Package:
		idx, err := reader.ReadU2()
		entry.index1 = idx
		return entry, err

	case CONSTANT_Fieldref, CONSTANT_Methodref, CONSTANT_InterfaceMethodref,
		CONSTANT_NameAndType, CONSTANT_Dynamic, CONSTANT_InvokeDynamic:
		a, err := reader.ReadU2()
		if err != nil {
			return entry, err
		}
		b, err := reader.ReadU2()
		entry.index1, entry.index2 = a, b
		return entry, err

	case CONSTANT_MethodHandle:
		kind, err := reader.ReadU1()
		if err != nil {
			return entry, err
		}
		idx, err := reader.ReadU2()
		entry.index1, entry.index2 = uint16(kind), idx
		return entry, err

	default:
		return entry, fmt.Errorf("unknown constant pool tag %d", byte(tag))
	}
}

func (cp ConstantPool) entry(index uint16, tag ConstantTag) (constant, error) {
	if index == 0 || int(index) >= len(cp) {
		return constant{}, fmt.Errorf("%w: #%d", ErrBadConstantIndex, index)
	}
	e := cp[index]
	if e.tag != tag {
		return constant{}, fmt.Errorf("constant #%d is %s, expected %s", index, e.tag, tag)
	}
	return e, nil
}

// Utf8 returns the string stored at index
func (cp ConstantPool) Utf8(index uint16) (string, error) {
	e, err := cp.entry(index, CONSTANT_Utf8)
	if err != nil {
		return "", err
	}
	return e.utf8, nil
}

// ClassName returns the dotted class name referenced by a CONSTANT_Class entry
func (cp ConstantPool) ClassName(index uint16) (string, error) {
	e, err := cp.entry(index, CONSTANT_Class)
	if err != nil {
		return "", err
	}
	name, err := cp.Utf8(e.index1)
	if err != nil {
		return "", err
	}
	return InternalToDotted(name), nil
}

// Value returns the primitive or string value of a loadable constant
func (cp ConstantPool) Value(index uint16) (any, error) {
	if index == 0 || int(index) >= len(cp) {
		return nil, fmt.Errorf("%w: #%d", ErrBadConstantIndex, index)
	}
	e := cp[index]
	switch e.tag {
	case CONSTANT_Integer, CONSTANT_Float, CONSTANT_Long, CONSTANT_Double:
		return e.value, nil
	case CONSTANT_Utf8:
		return e.utf8, nil
	case CONSTANT_String:
		return cp.Utf8(e.index1)
	default:
		return nil, fmt.Errorf("constant #%d (%s) is not a value", index, e.tag)
	}
}
