package classfile

import (
	"bytes"
	"encoding/binary"
	"io"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabhi256/jarscope/internal/classfile/classfiletest"
	"github.com/mabhi256/jarscope/internal/model"
)

func TestParse_SpringService(t *testing.T) {
	w := classfiletest.NewWriter()

	service := w.Annotation("Lorg/springframework/stereotype/Service;", "value", w.StringValue("orders"))
	autowired := w.Annotation("Lorg/springframework/beans/factory/annotation/Autowired;",
		"required", w.BoolValue(false))
	lazy := w.Annotation("Lorg/springframework/context/annotation/Lazy;")

	data := w.Bytes(classfiletest.Class{
		Access:     ACC_PUBLIC,
		Name:       "com/acme/OrderService",
		Super:      "java/lang/Object",
		Interfaces: []string{"com/acme/OrderApi"},
		Fields: []classfiletest.Member{
			{
				Access: 0x0002,
				Name:   "repository",
				Desc:   "Lcom/acme/OrderRepository;",
				Attrs:  []classfiletest.Attr{{Name: AttrRuntimeVisibleAnnotations, Data: w.Annotations(autowired)}},
			},
			{Access: 0x0002, Name: "ids", Desc: "[[J"},
		},
		Methods: []classfiletest.Member{
			{
				Access: ACC_PUBLIC,
				Name:   "<init>",
				Desc:   "(Lcom/acme/PaymentService;I)V",
				Attrs: []classfiletest.Attr{
					{Name: "Code", Data: []byte{0, 1, 0, 1, 0, 0, 0, 1, 0xB1, 0, 0, 0, 0}},
					{Name: AttrRuntimeVisibleParameterAnnotations, Data: w.ParameterAnnotations([][]byte{lazy}, nil)},
				},
			},
			{Access: ACC_PUBLIC, Name: "find", Desc: "(J[Ljava/lang/String;)Lcom/acme/Order;"},
			{Access: ACC_STATIC, Name: "<clinit>", Desc: "()V"},
		},
		Attrs: []classfiletest.Attr{
			{Name: "SourceFile", Data: classfiletest.U2(nil, w.UTF8("OrderService.java"))},
			{Name: AttrRuntimeVisibleAnnotations, Data: w.Annotations(service)},
		},
	})

	info, err := ParseBytes(data)
	require.NoError(t, err)

	assert.Equal(t, "com.acme.OrderService", info.Name)
	assert.Equal(t, model.KindClass, info.Kind)
	assert.True(t, info.Modifiers.Has(model.ModPublic))
	assert.Equal(t, "java.lang.Object", info.SuperClass)
	assert.Equal(t, []string{"com.acme.OrderApi"}, info.Interfaces)

	require.Len(t, info.Annotations, 1)
	assert.Equal(t, "org.springframework.stereotype.Service", info.Annotations[0].Type)
	assert.Equal(t, "orders", info.Annotations[0].Value())

	require.Len(t, info.Fields, 2)
	assert.Equal(t, "com.acme.OrderRepository", info.Fields[0].Type)
	assert.True(t, info.Fields[0].HasAnnotation("org.springframework.beans.factory.annotation.Autowired"))
	assert.False(t, info.Fields[0].Annotations[0].Bool("required", true))
	assert.Equal(t, "long[][]", info.Fields[1].Type)

	require.Len(t, info.Methods, 2, "<clinit> is skipped")
	ctor := info.Methods[0]
	assert.True(t, ctor.IsConstructor())
	assert.Equal(t, []string{"com.acme.PaymentService", "int"}, ctor.ParameterTypes)
	assert.Equal(t, "void", ctor.ReturnType)
	require.Len(t, ctor.ParameterAnnotations, 2)
	assert.True(t, model.HasAnnotation(ctor.ParameterAnnotationsAt(0), "org.springframework.context.annotation.Lazy"))
	assert.Empty(t, ctor.ParameterAnnotationsAt(1))

	find := info.Methods[1]
	assert.Equal(t, "find", find.Name)
	assert.Equal(t, "com.acme.Order", find.ReturnType)
	assert.Equal(t, []string{"long", "java.lang.String[]"}, find.ParameterTypes)
}

func TestParse_Kinds(t *testing.T) {
	tests := []struct {
		name   string
		access uint16
		want   model.ClassKind
	}{
		{"class", ACC_PUBLIC, model.KindClass},
		{"interface", ACC_PUBLIC | ACC_INTERFACE | ACC_ABSTRACT, model.KindInterface},
		{"annotation", ACC_PUBLIC | ACC_INTERFACE | ACC_ABSTRACT | ACC_ANNOTATION, model.KindAnnotation},
		{"enum", ACC_PUBLIC | ACC_FINAL | ACC_ENUM, model.KindEnum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := classfiletest.NewWriter()
			info, err := ParseBytes(w.Bytes(classfiletest.Class{
				Access: tt.access,
				Name:   "com/acme/Thing",
				Super:  "java/lang/Object",
			}))
			require.NoError(t, err)
			assert.Equal(t, tt.want, info.Kind)
		})
	}
}

func TestParse_NoSuperclass(t *testing.T) {
	w := classfiletest.NewWriter()
	info, err := ParseBytes(w.Bytes(classfiletest.Class{Access: ACC_PUBLIC, Name: "java/lang/Object"}))
	require.NoError(t, err)
	assert.Empty(t, info.SuperClass)
}

func TestParse_InvalidMagic(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0, 0, 0, 0}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestParse_Truncated(t *testing.T) {
	w := classfiletest.NewWriter()
	data := w.Bytes(classfiletest.Class{Access: ACC_PUBLIC, Name: "com/acme/A", Super: "java/lang/Object"})

	_, err := ParseBytes(data[:len(data)-3])
	assert.Error(t, err)
}

func TestParse_OversizedAttributeLength(t *testing.T) {
	w := classfiletest.NewWriter()
	data := w.Bytes(classfiletest.Class{
		Access: ACC_PUBLIC,
		Name:   "com/acme/Corrupt",
		Super:  "java/lang/Object",
		Attrs:  []classfiletest.Attr{{Name: AttrRuntimeVisibleAnnotations, Data: w.Annotations()}},
	})
	// the class ends with the attribute's u4 length and its two-byte body
	binary.BigEndian.PutUint32(data[len(data)-6:], 0x7FFFFFF0)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := ParseBytes(data)
	runtime.ReadMemStats(&after)

	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(16<<20),
		"allocation follows the bytes present, not the declared length")
}

func TestReader_ReadNBytesLarge(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 3*maxPreallocSize+7)
	reader := NewReader(bytes.NewReader(payload))

	got, err := reader.ReadNBytes(len(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, int64(len(payload)), reader.BytesRead())

	reader = NewReader(bytes.NewReader(payload))
	_, err = reader.ReadNBytes(len(payload) + 1)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestParse_ParameterAnnotationsAlignedToEnd(t *testing.T) {
	w := classfiletest.NewWriter()
	qualifier := w.Annotation("Lorg/springframework/beans/factory/annotation/Qualifier;",
		"value", w.StringValue("primaryRepo"))

	// inner-class constructor: the outer instance is not annotated
	info, err := ParseBytes(w.Bytes(classfiletest.Class{
		Access: ACC_PUBLIC,
		Name:   "com/acme/Outer$Inner",
		Super:  "java/lang/Object",
		Methods: []classfiletest.Member{{
			Name:  "<init>",
			Desc:  "(Lcom/acme/Outer;Lcom/acme/Repo;)V",
			Attrs: []classfiletest.Attr{{Name: AttrRuntimeInvisibleParameterAnnotations, Data: w.ParameterAnnotations([][]byte{qualifier})}},
		}},
	}))
	require.NoError(t, err)

	ctor := info.Methods[0]
	assert.Empty(t, ctor.ParameterAnnotationsAt(0))
	a, ok := model.FindAnnotation(ctor.ParameterAnnotationsAt(1), "org.springframework.beans.factory.annotation.Qualifier")
	require.True(t, ok)
	assert.Equal(t, "primaryRepo", a.Value())
}

func TestParse_ElementValues(t *testing.T) {
	w := classfiletest.NewWriter()
	inner := w.Annotation("Lcom/acme/Inner;", "level", w.LongValue(42))
	ann := w.Annotation("Lcom/acme/Everything;",
		"names", w.ArrayValue(w.StringValue("a"), w.StringValue("b")),
		"mode", w.EnumValue("Lcom/acme/Mode;", "EAGER"),
		"target", w.ClassValue("Lcom/acme/Target;"),
		"nested", w.NestedValue(inner),
	)

	info, err := ParseBytes(w.Bytes(classfiletest.Class{
		Access: ACC_PUBLIC,
		Name:   "com/acme/Annotated",
		Super:  "java/lang/Object",
		Attrs:  []classfiletest.Attr{{Name: AttrRuntimeInvisibleAnnotations, Data: w.Annotations(ann)}},
	}))
	require.NoError(t, err)

	a, ok := info.Annotation("com.acme.Everything")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, a.Strings("names"))
	assert.Equal(t, "a", a.String("names"))
	assert.Equal(t, "EAGER", a.String("mode"))
	assert.Equal(t, "com.acme.Target", a.String("target"))

	nested, ok := a.Attr("nested")
	require.True(t, ok)
	nestedInfo, ok := nested.(model.AnnotationInfo)
	require.True(t, ok)
	assert.Equal(t, "com.acme.Inner", nestedInfo.Type)
	assert.Equal(t, int64(42), nestedInfo.Attributes["level"])
}

func TestParseFieldDescriptor(t *testing.T) {
	tests := []struct {
		desc     string
		wantType string
		wantRest string
	}{
		{"I", "int", ""},
		{"Z", "boolean", ""},
		{"Ljava/lang/String;", "java.lang.String", ""},
		{"[[Lcom/acme/Order;", "com.acme.Order[][]", ""},
		{"[BI", "byte[]", "I"},
		{"Lcom/acme/A;Lcom/acme/B;", "com.acme.A", "Lcom/acme/B;"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			typeName, rest, err := ParseFieldDescriptor(tt.desc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, typeName)
			assert.Equal(t, tt.wantRest, rest)
		})
	}

	for _, bad := range []string{"", "[", "Lcom/acme/A", "Q"} {
		_, _, err := ParseFieldDescriptor(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	params, ret, err := ParseMethodDescriptor("(IJLjava/util/List;[D)Lcom/acme/Result;")
	require.NoError(t, err)
	assert.Equal(t, []string{"int", "long", "java.util.List", "double[]"}, params)
	assert.Equal(t, "com.acme.Result", ret)

	params, ret, err = ParseMethodDescriptor("()V")
	require.NoError(t, err)
	assert.Empty(t, params)
	assert.Equal(t, "void", ret)

	_, _, err = ParseMethodDescriptor("I)V")
	assert.Error(t, err)
	_, _, err = ParseMethodDescriptor("(I")
	assert.Error(t, err)
}

func TestDecodeModifiedUTF8(t *testing.T) {
	assert.Equal(t, "plain", decodeModifiedUTF8([]byte("plain")))
	assert.Equal(t, "a\x00b", decodeModifiedUTF8([]byte{'a', 0xC0, 0x80, 'b'}))
	assert.Equal(t, "é", decodeModifiedUTF8([]byte{0xC3, 0xA9}))
	// U+1F600 as a CESU-8 surrogate pair
	assert.Equal(t, "\U0001F600", decodeModifiedUTF8([]byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}))
}

func TestConstantPool_BadIndex(t *testing.T) {
	cp := make(ConstantPool, 2)
	_, err := cp.Utf8(0)
	assert.ErrorIs(t, err, ErrBadConstantIndex)
	_, err = cp.ClassName(7)
	assert.ErrorIs(t, err, ErrBadConstantIndex)
}
