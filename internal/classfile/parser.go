package classfile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mabhi256/jarscope/internal/model"
)

type attribute struct {
	name string
	data []byte
}

type member struct {
	access     uint16
	name       string
	descriptor string
	attributes []attribute
}

// ParseBytes parses a complete class file held in memory
func ParseBytes(data []byte) (*model.ClassInfo, error) {
	return Parse(bytes.NewReader(data))
}

/*
Parse reads a class file:

u4              magic
u2              minor_version
u2              major_version
cp_info         constant_pool
u2              access_flags
u2              this_class
u2              super_class
u2              interfaces_count, interfaces[]
field_info      fields
method_info     methods
attribute_info  attributes
*/
func Parse(r io.Reader) (*model.ClassInfo, error) {
	reader := NewReader(r)

	magic, err := reader.ReadU4()
	if err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: magic 0x%08X", ErrInvalidMagic, magic)
	}

	// minor + major version
	if err := reader.Skip(4); err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}

	cp, err := ParseConstantPool(reader)
	if err != nil {
		return nil, err
	}

	access, err := reader.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read access flags: %w", err)
	}

	thisIndex, err := reader.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read this_class: %w", err)
	}
	name, err := cp.ClassName(thisIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve this_class: %w", err)
	}

	info := &model.ClassInfo{
		Name:      name,
		Kind:      kindFromAccess(access),
		Modifiers: modifiersFromAccess(access),
	}

	superIndex, err := reader.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read super_class: %w", err)
	}
	// only java.lang.Object and module-info have no superclass
	if superIndex != 0 {
		if info.SuperClass, err = cp.ClassName(superIndex); err != nil {
			return nil, fmt.Errorf("failed to resolve super_class: %w", err)
		}
	}

	ifaceCount, err := reader.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read interfaces count: %w", err)
	}
	for i := 0; i < int(ifaceCount); i++ {
		idx, err := reader.ReadU2()
		if err != nil {
			return nil, fmt.Errorf("failed to read interface %d: %w", i, err)
		}
		iface, err := cp.ClassName(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve interface %d: %w", i, err)
		}
		info.Interfaces = append(info.Interfaces, iface)
	}

	fields, err := readMembers(reader, cp)
	if err != nil {
		return nil, fmt.Errorf("%s: fields: %w", name, err)
	}
	for _, f := range fields {
		field, err := toFieldInfo(f, cp)
		if err != nil {
			return nil, fmt.Errorf("%s: field %s: %w", name, f.name, err)
		}
		info.Fields = append(info.Fields, field)
	}

	methods, err := readMembers(reader, cp)
	if err != nil {
		return nil, fmt.Errorf("%s: methods: %w", name, err)
	}
	for _, m := range methods {
		if m.name == "<clinit>" {
			continue
		}
		method, err := toMethodInfo(m, cp)
		if err != nil {
			return nil, fmt.Errorf("%s: method %s: %w", name, m.name, err)
		}
		info.Methods = append(info.Methods, method)
	}

	attrs, err := readAttributes(reader, cp)
	if err != nil {
		return nil, fmt.Errorf("%s: class attributes: %w", name, err)
	}
	if info.Annotations, err = annotationsFrom(attrs, cp); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return info, nil
}

func readMembers(reader *Reader, cp ConstantPool) ([]member, error) {
	count, err := reader.ReadU2()
	if err != nil {
		return nil, err
	}

	members := make([]member, 0, count)
	for i := 0; i < int(count); i++ {
		var m member
		if m.access, err = reader.ReadU2(); err != nil {
			return nil, err
		}
		nameIndex, err := reader.ReadU2()
		if err != nil {
			return nil, err
		}
		if m.name, err = cp.Utf8(nameIndex); err != nil {
			return nil, err
		}
		descIndex, err := reader.ReadU2()
		if err != nil {
			return nil, err
		}
		if m.descriptor, err = cp.Utf8(descIndex); err != nil {
			return nil, err
		}
		if m.attributes, err = readAttributes(reader, cp); err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}
		members = append(members, m)
	}
	return members, nil
}

// readAttributes keeps only the attributes the parser decodes; Code and
// friends are skipped without being buffered
func readAttributes(reader *Reader, cp ConstantPool) ([]attribute, error) {
	count, err := reader.ReadU2()
	if err != nil {
		return nil, err
	}

	var attrs []attribute
	for i := 0; i < int(count); i++ {
		nameIndex, err := reader.ReadU2()
		if err != nil {
			return nil, err
		}
		name, err := cp.Utf8(nameIndex)
		if err != nil {
			return nil, err
		}
		length, err := reader.ReadU4()
		if err != nil {
			return nil, err
		}

		switch name {
		case AttrRuntimeVisibleAnnotations, AttrRuntimeInvisibleAnnotations,
			AttrRuntimeVisibleParameterAnnotations, AttrRuntimeInvisibleParameterAnnotations:
			data, err := reader.ReadNBytes(int(length))
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", name, err)
			}
			attrs = append(attrs, attribute{name: name, data: data})
		default:
			if err := reader.Skip(int(length)); err != nil {
				return nil, fmt.Errorf("failed to skip %s: %w", name, err)
			}
		}
	}
	return attrs, nil
}

func annotationsFrom(attrs []attribute, cp ConstantPool) ([]model.AnnotationInfo, error) {
	var all []model.AnnotationInfo
	for _, a := range attrs {
		if a.name != AttrRuntimeVisibleAnnotations && a.name != AttrRuntimeInvisibleAnnotations {
			continue
		}
		list, err := ParseAnnotations(a.data, cp)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.name, err)
		}
		all = append(all, list...)
	}
	return all, nil
}

func toFieldInfo(m member, cp ConstantPool) (model.FieldInfo, error) {
	typeName, rest, err := ParseFieldDescriptor(m.descriptor)
	if err != nil {
		return model.FieldInfo{}, err
	}
	if rest != "" {
		return model.FieldInfo{}, fmt.Errorf("trailing data in field descriptor %s", m.descriptor)
	}

	annotations, err := annotationsFrom(m.attributes, cp)
	if err != nil {
		return model.FieldInfo{}, err
	}

	return model.FieldInfo{
		Name:        m.name,
		Type:        typeName,
		Annotations: annotations,
		Modifiers:   modifiersFromAccess(m.access),
	}, nil
}

func toMethodInfo(m member, cp ConstantPool) (model.MethodInfo, error) {
	params, ret, err := ParseMethodDescriptor(m.descriptor)
	if err != nil {
		return model.MethodInfo{}, err
	}

	annotations, err := annotationsFrom(m.attributes, cp)
	if err != nil {
		return model.MethodInfo{}, err
	}

	paramAnnotations := make([][]model.AnnotationInfo, len(params))
	for _, a := range m.attributes {
		if a.name != AttrRuntimeVisibleParameterAnnotations && a.name != AttrRuntimeInvisibleParameterAnnotations {
			continue
		}
		perParam, err := ParseParameterAnnotations(a.data, cp)
		if err != nil {
			return model.MethodInfo{}, fmt.Errorf("%s: %w", a.name, err)
		}
		// javac omits synthetic leading parameters (outer instance, enum
		// name/ordinal), so align the recorded entries to the end
		offset := len(params) - len(perParam)
		if offset < 0 {
			offset = 0
		}
		for i, list := range perParam {
			if offset+i < len(paramAnnotations) {
				paramAnnotations[offset+i] = append(paramAnnotations[offset+i], list...)
			}
		}
	}

	return model.MethodInfo{
		Name:                 m.name,
		ReturnType:           ret,
		ParameterTypes:       params,
		ParameterAnnotations: paramAnnotations,
		Annotations:          annotations,
		Modifiers:            modifiersFromAccess(m.access),
	}, nil
}

func kindFromAccess(access uint16) model.ClassKind {
	switch {
	case access&ACC_ANNOTATION != 0:
		return model.KindAnnotation
	case access&ACC_INTERFACE != 0:
		return model.KindInterface
	case access&ACC_ENUM != 0:
		return model.KindEnum
	default:
		return model.KindClass
	}
}

func modifiersFromAccess(access uint16) model.Modifiers {
	var mods model.Modifiers
	flags := []struct {
		acc uint16
		mod model.Modifiers
	}{
		{ACC_PUBLIC, model.ModPublic},
		{ACC_ABSTRACT, model.ModAbstract},
		{ACC_FINAL, model.ModFinal},
		{ACC_STATIC, model.ModStatic},
		{ACC_SYNTHETIC, model.ModSynthetic},
	}
	for _, f := range flags {
		if access&f.acc != 0 {
			mods |= f.mod
		}
	}
	return mods
}
