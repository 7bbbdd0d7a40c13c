package model

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

type ClassKind int

const (
	KindClass ClassKind = iota
	KindInterface
	KindEnum
	KindAnnotation
)

func (k ClassKind) String() string {
	switch k {
	case KindClass:
		return "CLASS"
	case KindInterface:
		return "INTERFACE"
	case KindEnum:
		return "ENUM"
	case KindAnnotation:
		return "ANNOTATION"
	default:
		return fmt.Sprintf("ClassKind(%d)", int(k))
	}
}

// Modifiers is a bit set of the access flags the analysis cares about
type Modifiers uint16

const (
	ModPublic Modifiers = 1 << iota
	ModAbstract
	ModFinal
	ModStatic
	ModSynthetic
)

func (m Modifiers) Has(flag Modifiers) bool {
	return m&flag != 0
}

func (m Modifiers) String() string {
	var parts []string
	names := []struct {
		flag Modifiers
		name string
	}{
		{ModPublic, "public"},
		{ModAbstract, "abstract"},
		{ModFinal, "final"},
		{ModStatic, "static"},
		{ModSynthetic, "synthetic"},
	}
	for _, n := range names {
		if m.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, " ")
}

// AnnotationInfo is an annotation usage: its type plus element values by name
type AnnotationInfo struct {
	Type       string
	Attributes map[string]any
}

// Attr returns the raw attribute value
func (a AnnotationInfo) Attr(name string) (any, bool) {
	v, ok := a.Attributes[name]
	return v, ok
}

// String returns the attribute coerced to a string. Single-element arrays
// are unwrapped since Java allows `@Qualifier({"x"})` and `@Qualifier("x")`
func (a AnnotationInfo) String(name string) string {
	v, ok := a.Attributes[name]
	if !ok {
		return ""
	}
	if list, isList := v.([]any); isList {
		if len(list) == 0 {
			return ""
		}
		return cast.ToString(list[0])
	}
	return cast.ToString(v)
}

// Bool returns the attribute coerced to a bool, or def when absent
func (a AnnotationInfo) Bool(name string, def bool) bool {
	v, ok := a.Attributes[name]
	if !ok {
		return def
	}
	return cast.ToBool(v)
}

// Strings returns the attribute as a string slice
func (a AnnotationInfo) Strings(name string) []string {
	v, ok := a.Attributes[name]
	if !ok {
		return nil
	}
	return cast.ToStringSlice(v)
}

// Value is the conventional single-element attribute
func (a AnnotationInfo) Value() string {
	return a.String("value")
}

func (a AnnotationInfo) SimpleName() string {
	return SimpleNameOf(a.Type)
}

type FieldInfo struct {
	Name        string
	Type        string
	Annotations []AnnotationInfo
	Modifiers   Modifiers
}

func (f FieldInfo) HasAnnotation(names ...string) bool {
	return hasAnnotation(f.Annotations, names)
}

type MethodInfo struct {
	Name                 string
	ReturnType           string
	ParameterTypes       []string
	ParameterAnnotations [][]AnnotationInfo
	Annotations          []AnnotationInfo
	Modifiers            Modifiers
}

const ConstructorName = "<init>"

func (m MethodInfo) IsConstructor() bool {
	return m.Name == ConstructorName
}

func (m MethodInfo) HasAnnotation(names ...string) bool {
	return hasAnnotation(m.Annotations, names)
}

// ParameterAnnotationsAt returns the annotations of parameter i, nil when none were recorded
func (m MethodInfo) ParameterAnnotationsAt(i int) []AnnotationInfo {
	if i < 0 || i >= len(m.ParameterAnnotations) {
		return nil
	}
	return m.ParameterAnnotations[i]
}

// Signature renders the method the way javap prints it, without the return type
func (m MethodInfo) Signature() string {
	return fmt.Sprintf("%s(%s)", m.Name, strings.Join(m.ParameterTypes, ", "))
}

// ClassInfo is the flat metadata of one compiled class
type ClassInfo struct {
	Name        string // fully-qualified, dotted
	Kind        ClassKind
	SuperClass  string
	Interfaces  []string
	Annotations []AnnotationInfo
	Methods     []MethodInfo
	Fields      []FieldInfo
	Modifiers   Modifiers
}

func (c *ClassInfo) Package() string {
	return PackageOf(c.Name)
}

func (c *ClassInfo) SimpleName() string {
	return SimpleNameOf(c.Name)
}

func (c *ClassInfo) HasAnnotation(names ...string) bool {
	return hasAnnotation(c.Annotations, names)
}

// Annotation returns the first annotation whose type is one of names
func (c *ClassInfo) Annotation(names ...string) (AnnotationInfo, bool) {
	return findAnnotation(c.Annotations, names)
}

func (c *ClassInfo) Constructors() []MethodInfo {
	var ctors []MethodInfo
	for _, m := range c.Methods {
		if m.IsConstructor() {
			ctors = append(ctors, m)
		}
	}
	return ctors
}

func (c *ClassInfo) IsAbstract() bool {
	return c.Kind == KindInterface || c.Kind == KindAnnotation || c.Modifiers.Has(ModAbstract)
}

// FindAnnotation returns the first annotation in list whose type is one of names
func FindAnnotation(list []AnnotationInfo, names ...string) (AnnotationInfo, bool) {
	return findAnnotation(list, names)
}

func HasAnnotation(list []AnnotationInfo, names ...string) bool {
	return hasAnnotation(list, names)
}

func findAnnotation(list []AnnotationInfo, names []string) (AnnotationInfo, bool) {
	for _, a := range list {
		for _, n := range names {
			if a.Type == n {
				return a, true
			}
		}
	}
	return AnnotationInfo{}, false
}

func hasAnnotation(list []AnnotationInfo, names []string) bool {
	_, ok := findAnnotation(list, names)
	return ok
}
