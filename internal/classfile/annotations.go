package classfile

import (
	"bytes"
	"fmt"

	"github.com/mabhi256/jarscope/internal/model"
)

// ParseAnnotations parses a Runtime(In)VisibleAnnotations attribute body:
//
//	u2              num_annotations
//	annotation      annotations[num_annotations]
func ParseAnnotations(data []byte, cp ConstantPool) ([]model.AnnotationInfo, error) {
	reader := NewReader(bytes.NewReader(data))
	return readAnnotationList(reader, cp)
}

// ParseParameterAnnotations parses a Runtime(In)VisibleParameterAnnotations body:
//
//	u1              num_parameters
//	{
//	    u2          num_annotations
//	    annotation  annotations[num_annotations]
//	}               parameter_annotations[num_parameters]
func ParseParameterAnnotations(data []byte, cp ConstantPool) ([][]model.AnnotationInfo, error) {
	reader := NewReader(bytes.NewReader(data))

	count, err := reader.ReadU1()
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter count: %w", err)
	}

	params := make([][]model.AnnotationInfo, count)
	for i := range params {
		params[i], err = readAnnotationList(reader, cp)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
	}
	return params, nil
}

func readAnnotationList(reader *Reader, cp ConstantPool) ([]model.AnnotationInfo, error) {
	count, err := reader.ReadU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation count: %w", err)
	}

	annotations := make([]model.AnnotationInfo, 0, count)
	for i := 0; i < int(count); i++ {
		a, err := readAnnotation(reader, cp)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}
		annotations = append(annotations, a)
	}
	return annotations, nil
}

// readAnnotation reads one annotation structure:
//
//	annotation {
//	    u2  type_index
//	    u2  num_element_value_pairs
//	    {   u2            element_name_index
//	        element_value value
//	    } element_value_pairs[num_element_value_pairs]
//	}
func readAnnotation(reader *Reader, cp ConstantPool) (model.AnnotationInfo, error) {
	typeIndex, err := reader.ReadU2()
	if err != nil {
		return model.AnnotationInfo{}, err
	}
	typeDesc, err := cp.Utf8(typeIndex)
	if err != nil {
		return model.AnnotationInfo{}, fmt.Errorf("annotation type: %w", err)
	}
	typeName, _, err := ParseFieldDescriptor(typeDesc)
	if err != nil {
		return model.AnnotationInfo{}, fmt.Errorf("annotation type: %w", err)
	}

	pairs, err := reader.ReadU2()
	if err != nil {
		return model.AnnotationInfo{}, err
	}

	info := model.AnnotationInfo{Type: typeName}
	if pairs > 0 {
		info.Attributes = make(map[string]any, pairs)
	}
	for i := 0; i < int(pairs); i++ {
		nameIndex, err := reader.ReadU2()
		if err != nil {
			return info, err
		}
		name, err := cp.Utf8(nameIndex)
		if err != nil {
			return info, fmt.Errorf("element name: %w", err)
		}
		value, err := readElementValue(reader, cp)
		if err != nil {
			return info, fmt.Errorf("element %s of %s: %w", name, typeName, err)
		}
		info.Attributes[name] = value
	}

	return info, nil
}

// readElementValue decodes one element_value. Enum constants decode to the
// constant name, class literals to the type name, arrays to []any
func readElementValue(reader *Reader, cp ConstantPool) (any, error) {
	tag, err := reader.ReadU1()
	if err != nil {
		return nil, err
	}

	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		idx, err := reader.ReadU2()
		if err != nil {
			return nil, err
		}
		v, err := cp.Value(idx)
		if err != nil {
			return nil, err
		}
		switch tag {
		case 'Z':
			if iv, ok := v.(int32); ok {
				return iv != 0, nil
			}
		case 'C':
			if iv, ok := v.(int32); ok {
				return string(rune(iv)), nil
			}
		case 'B':
			if iv, ok := v.(int32); ok {
				return int8(iv), nil
			}
		case 'S':
			if iv, ok := v.(int32); ok {
				return int16(iv), nil
			}
		}
		return v, nil

	case 'e':
		if _, err := reader.ReadU2(); err != nil { // enum type descriptor
			return nil, err
		}
		constIndex, err := reader.ReadU2()
		if err != nil {
			return nil, err
		}
		return cp.Utf8(constIndex)

	case 'c':
		idx, err := reader.ReadU2()
		if err != nil {
			return nil, err
		}
		desc, err := cp.Utf8(idx)
		if err != nil {
			return nil, err
		}
		typeName, _, err := ParseFieldDescriptor(desc)
		return typeName, err

	case '@':
		return readAnnotation(reader, cp)

	case '[':
		count, err := reader.ReadU2()
		if err != nil {
			return nil, err
		}
		values := make([]any, 0, count)
		for i := 0; i < int(count); i++ {
			v, err := readElementValue(reader, cp)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil

	default:
		return nil, fmt.Errorf("unknown element value tag %q", tag)
	}
}
