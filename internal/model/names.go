package model

import "strings"

const RootType = "java.lang.Object"

var primitiveTypes = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"void":    true,
}

// PackageOf returns the substring before the last dot, "" for the default package
func PackageOf(fqn string) string {
	idx := strings.LastIndex(fqn, ".")
	if idx < 0 {
		return ""
	}
	return fqn[:idx]
}

func SimpleNameOf(fqn string) string {
	name := fqn[strings.LastIndex(fqn, ".")+1:]
	// nested classes keep the binary name Outer$Inner
	return name
}

// NormalizeType strips generic arguments and array dimensions so that
// "java.util.List<com.acme.Order>" becomes "java.util.List" and
// "com.acme.Order[][]" becomes "com.acme.Order"
func NormalizeType(typeName string) string {
	t := strings.TrimSpace(typeName)
	if idx := strings.IndexByte(t, '<'); idx >= 0 {
		t = t[:idx]
	}
	for strings.HasSuffix(t, "[]") {
		t = strings.TrimSuffix(t, "[]")
	}
	t = strings.TrimSuffix(t, "...")
	return strings.ReplaceAll(t, "/", ".")
}

func IsPrimitive(typeName string) bool {
	return primitiveTypes[typeName]
}

// IsFilteredType reports whether a referenced type is excluded from edge
// creation: primitives, void, and anything in java.lang.* or java.util.*
func IsFilteredType(typeName string) bool {
	t := NormalizeType(typeName)
	if t == "" || IsPrimitive(t) {
		return true
	}
	return strings.HasPrefix(t, "java.lang.") || strings.HasPrefix(t, "java.util.")
}

// DecapitalizedName is the default bean name Spring derives from a simple class name
func DecapitalizedName(simpleName string) string {
	if idx := strings.LastIndex(simpleName, "$"); idx >= 0 {
		simpleName = simpleName[idx+1:]
	}
	if simpleName == "" {
		return ""
	}
	// java.beans.Introspector keeps "URLService" as-is
	if len(simpleName) > 1 && isUpper(simpleName[0]) && isUpper(simpleName[1]) {
		return simpleName
	}
	return strings.ToLower(simpleName[:1]) + simpleName[1:]
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
