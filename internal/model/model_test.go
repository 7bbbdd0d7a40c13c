package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "com.acme", PackageOf("com.acme.Order"))
	assert.Equal(t, "", PackageOf("Order"))
	assert.Equal(t, "Order", SimpleNameOf("com.acme.Order"))
	assert.Equal(t, "Outer$Inner", SimpleNameOf("com.acme.Outer$Inner"))
}

func TestNormalizeType(t *testing.T) {
	tests := map[string]string{
		"java.util.List<com.acme.Order>": "java.util.List",
		"com.acme.Order[][]":             "com.acme.Order",
		"com/acme/Order":                 "com.acme.Order",
		"com.acme.Order...":              "com.acme.Order",
		" int ":                          "int",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeType(in), in)
	}
}

func TestIsFilteredType(t *testing.T) {
	for _, filtered := range []string{"", "int", "void", "long[]", "java.lang.String", "java.util.Map<K, V>"} {
		assert.True(t, IsFilteredType(filtered), filtered)
	}
	for _, kept := range []string{"com.acme.Order", "com.acme.Order[]", "java.time.Instant", "javax.sql.DataSource"} {
		assert.False(t, IsFilteredType(kept), kept)
	}
}

func TestDecapitalizedName(t *testing.T) {
	tests := map[string]string{
		"OrderService": "orderService",
		"URLService":   "URLService",
		"A":            "a",
		"Outer$Inner":  "inner",
		"":             "",
	}
	for in, want := range tests {
		assert.Equal(t, want, DecapitalizedName(in), in)
	}
}

func TestAnnotationInfo(t *testing.T) {
	a := AnnotationInfo{
		Type: "org.springframework.beans.factory.annotation.Qualifier",
		Attributes: map[string]any{
			"value":    []any{"primary"},
			"names":    []any{"a", "b"},
			"required": false,
			"order":    int64(3),
			"empty":    []any{},
		},
	}

	assert.Equal(t, "primary", a.Value())
	assert.Equal(t, "3", a.String("order"))
	assert.Equal(t, "", a.String("empty"))
	assert.Equal(t, "", a.String("missing"))
	assert.Equal(t, []string{"a", "b"}, a.Strings("names"))
	assert.Nil(t, a.Strings("missing"))
	assert.False(t, a.Bool("required", true))
	assert.True(t, a.Bool("missing", true))
	assert.Equal(t, "Qualifier", a.SimpleName())

	raw, ok := a.Attr("order")
	require.True(t, ok)
	assert.Equal(t, int64(3), raw)
}

func TestClassInfo(t *testing.T) {
	lazy := AnnotationInfo{Type: "org.springframework.context.annotation.Lazy"}
	c := &ClassInfo{
		Name:        "com.acme.OrderService",
		Annotations: []AnnotationInfo{{Type: "org.springframework.stereotype.Service"}},
		Methods: []MethodInfo{
			{Name: ConstructorName, ParameterTypes: []string{"com.acme.Repo", "int"},
				ParameterAnnotations: [][]AnnotationInfo{{lazy}}},
			{Name: "find", ParameterTypes: []string{"long"}},
			{Name: ConstructorName},
		},
	}

	assert.Equal(t, "com.acme", c.Package())
	assert.Equal(t, "OrderService", c.SimpleName())
	assert.True(t, c.HasAnnotation("x.Component", "org.springframework.stereotype.Service"))
	_, ok := c.Annotation("x.Component")
	assert.False(t, ok)

	ctors := c.Constructors()
	require.Len(t, ctors, 2)
	assert.Equal(t, "<init>(com.acme.Repo, int)", ctors[0].Signature())
	assert.True(t, HasAnnotation(ctors[0].ParameterAnnotationsAt(0), lazy.Type))
	assert.Nil(t, ctors[0].ParameterAnnotationsAt(1))
	assert.Nil(t, ctors[0].ParameterAnnotationsAt(-1))

	assert.False(t, c.IsAbstract())
	assert.True(t, (&ClassInfo{Kind: KindInterface}).IsAbstract())
	assert.True(t, (&ClassInfo{Modifiers: ModAbstract | ModPublic}).IsAbstract())
}

func TestModifiersAndKinds(t *testing.T) {
	assert.Equal(t, "public static synthetic", (ModPublic | ModStatic | ModSynthetic).String())
	assert.Equal(t, "", Modifiers(0).String())
	assert.Equal(t, "ANNOTATION", KindAnnotation.String())
	assert.Equal(t, "ClassKind(9)", ClassKind(9).String())
}

func TestClassSet(t *testing.T) {
	b := &ClassInfo{Name: "com.acme.B"}
	a := &ClassInfo{Name: "com.acme.A"}
	cs := NewClassSet([]*ClassInfo{b, a, nil, {Name: ""}})

	assert.Equal(t, 2, cs.Len())
	assert.False(t, cs.Add(&ClassInfo{Name: "com.acme.A"}), "duplicates are ignored")
	assert.Same(t, a, cs.GetCachedClass("com.acme.A"))
	assert.Nil(t, cs.GetCachedClass("com.acme.Missing"))
	assert.Equal(t, []*ClassInfo{a, b}, cs.Classes())

	content := NewJarContent("app.jar", []*ClassInfo{a})
	assert.Same(t, a, content.Pool.GetCachedClass("com.acme.A"))
}
