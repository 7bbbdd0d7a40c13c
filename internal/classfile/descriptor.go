package classfile

import (
	"fmt"
	"strings"
)

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
	'V': "void",
}

// InternalToDotted converts an internal binary name (java/lang/String) to its dotted form
func InternalToDotted(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

// ParseFieldDescriptor decodes one field descriptor and returns the Java
// type name plus the unconsumed remainder
//
//	I                  -> int
//	Ljava/lang/String; -> java.lang.String
//	[[Lcom/acme/Order; -> com.acme.Order[][]
func ParseFieldDescriptor(desc string) (string, string, error) {
	if desc == "" {
		return "", "", fmt.Errorf("empty descriptor")
	}

	dims := 0
	for dims < len(desc) && desc[dims] == '[' {
		dims++
	}
	if dims == len(desc) {
		return "", "", fmt.Errorf("truncated array descriptor: %s", desc)
	}

	var typeName, rest string
	switch c := desc[dims]; c {
	case 'L':
		end := strings.IndexByte(desc[dims:], ';')
		if end < 0 {
			return "", "", fmt.Errorf("unterminated object descriptor: %s", desc)
		}
		typeName = InternalToDotted(desc[dims+1 : dims+end])
		rest = desc[dims+end+1:]
	default:
		base, ok := baseTypes[c]
		if !ok {
			return "", "", fmt.Errorf("invalid descriptor character %q in %s", c, desc)
		}
		typeName = base
		rest = desc[dims+1:]
	}

	return typeName + strings.Repeat("[]", dims), rest, nil
}

// ParseMethodDescriptor decodes (params)return, e.g. (ILjava/lang/String;)V
func ParseMethodDescriptor(desc string) ([]string, string, error) {
	if !strings.HasPrefix(desc, "(") {
		return nil, "", fmt.Errorf("method descriptor must start with '(': %s", desc)
	}

	end := strings.IndexByte(desc, ')')
	if end < 0 {
		return nil, "", fmt.Errorf("unterminated parameter list: %s", desc)
	}

	var params []string
	remaining := desc[1:end]
	for remaining != "" {
		param, rest, err := ParseFieldDescriptor(remaining)
		if err != nil {
			return nil, "", fmt.Errorf("invalid parameter in %s: %w", desc, err)
		}
		params = append(params, param)
		remaining = rest
	}

	ret, rest, err := ParseFieldDescriptor(desc[end+1:])
	if err != nil {
		return nil, "", fmt.Errorf("invalid return type in %s: %w", desc, err)
	}
	if rest != "" {
		return nil, "", fmt.Errorf("trailing data in method descriptor: %s", desc)
	}

	return params, ret, nil
}
