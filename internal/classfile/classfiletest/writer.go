// Package classfiletest assembles class-file bytes so tests can feed the
// parser, archive reader and analyzers without a Java toolchain.
package classfiletest

import (
	"encoding/binary"
	"strings"
)

const (
	magic       = 0xCAFEBABE
	majorJava21 = 65

	tagUtf8    = 1
	tagInteger = 3
	tagLong    = 5
	tagClass   = 7
)

const (
	RuntimeVisibleAnnotations          = "RuntimeVisibleAnnotations"
	RuntimeVisibleParameterAnnotations = "RuntimeVisibleParameterAnnotations"
)

type Attr struct {
	Name string
	Data []byte
}

type Member struct {
	Access uint16
	Name   string
	Desc   string
	Attrs  []Attr
}

type Class struct {
	Access     uint16
	Name       string
	Super      string
	Interfaces []string
	Fields     []Member
	Methods    []Member
	Attrs      []Attr
}

// Writer owns the constant pool of a single class. Use a fresh Writer per
// class; every value helper adds pool entries.
type Writer struct {
	pool  []byte
	next  uint16
	utf8s map[string]uint16
}

func NewWriter() *Writer {
	return &Writer{next: 1, utf8s: map[string]uint16{}}
}

func U2(b []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(b, v)
}

func (w *Writer) UTF8(s string) uint16 {
	if idx, ok := w.utf8s[s]; ok {
		return idx
	}
	w.pool = append(w.pool, tagUtf8)
	w.pool = U2(w.pool, uint16(len(s)))
	w.pool = append(w.pool, s...)
	w.utf8s[s] = w.next
	w.next++
	return w.utf8s[s]
}

func (w *Writer) Class(internal string) uint16 {
	nameIdx := w.UTF8(internal)
	w.pool = append(w.pool, tagClass)
	w.pool = U2(w.pool, nameIdx)
	idx := w.next
	w.next++
	return idx
}

func (w *Writer) Integer(v int32) uint16 {
	w.pool = append(w.pool, tagInteger)
	w.pool = binary.BigEndian.AppendUint32(w.pool, uint32(v))
	idx := w.next
	w.next++
	return idx
}

// Long takes two pool slots
func (w *Writer) Long(v int64) uint16 {
	w.pool = append(w.pool, tagLong)
	w.pool = binary.BigEndian.AppendUint64(w.pool, uint64(v))
	idx := w.next
	w.next += 2
	return idx
}

// Annotation encodes one annotation structure; pairs alternate element name
// and encoded value
func (w *Writer) Annotation(typeDesc string, pairs ...any) []byte {
	out := U2(nil, w.UTF8(typeDesc))
	out = U2(out, uint16(len(pairs)/2))
	for i := 0; i+1 < len(pairs); i += 2 {
		out = U2(out, w.UTF8(pairs[i].(string)))
		out = append(out, pairs[i+1].([]byte)...)
	}
	return out
}

func (w *Writer) Annotations(list ...[]byte) []byte {
	out := U2(nil, uint16(len(list)))
	for _, a := range list {
		out = append(out, a...)
	}
	return out
}

func (w *Writer) ParameterAnnotations(params ...[][]byte) []byte {
	out := []byte{byte(len(params))}
	for _, list := range params {
		out = append(out, w.Annotations(list...)...)
	}
	return out
}

// Markers is a RuntimeVisibleAnnotations attribute of element-less
// annotations, given as dotted class names
func (w *Writer) Markers(classNames ...string) Attr {
	list := make([][]byte, 0, len(classNames))
	for _, name := range classNames {
		list = append(list, w.Annotation(Descriptor(name)))
	}
	return Attr{Name: RuntimeVisibleAnnotations, Data: w.Annotations(list...)}
}

func (w *Writer) StringValue(s string) []byte {
	return U2([]byte{'s'}, w.UTF8(s))
}

func (w *Writer) BoolValue(v bool) []byte {
	i := int32(0)
	if v {
		i = 1
	}
	return U2([]byte{'Z'}, w.Integer(i))
}

func (w *Writer) LongValue(v int64) []byte {
	return U2([]byte{'J'}, w.Long(v))
}

func (w *Writer) EnumValue(typeDesc, constant string) []byte {
	out := U2([]byte{'e'}, w.UTF8(typeDesc))
	return U2(out, w.UTF8(constant))
}

func (w *Writer) ClassValue(desc string) []byte {
	return U2([]byte{'c'}, w.UTF8(desc))
}

func (w *Writer) NestedValue(annotation []byte) []byte {
	return append([]byte{'@'}, annotation...)
}

func (w *Writer) ArrayValue(values ...[]byte) []byte {
	out := U2([]byte{'['}, uint16(len(values)))
	for _, v := range values {
		out = append(out, v...)
	}
	return out
}

func (w *Writer) attributes(attrs []Attr) []byte {
	out := U2(nil, uint16(len(attrs)))
	for _, a := range attrs {
		out = U2(out, w.UTF8(a.Name))
		out = binary.BigEndian.AppendUint32(out, uint32(len(a.Data)))
		out = append(out, a.Data...)
	}
	return out
}

func (w *Writer) members(members []Member) []byte {
	out := U2(nil, uint16(len(members)))
	for _, m := range members {
		out = U2(out, m.Access)
		out = U2(out, w.UTF8(m.Name))
		out = U2(out, w.UTF8(m.Desc))
		out = append(out, w.attributes(m.Attrs)...)
	}
	return out
}

// Bytes renders the class. The body is built before the header because the
// pool must be complete when its count is written.
func (w *Writer) Bytes(c Class) []byte {
	body := U2(nil, c.Access)
	body = U2(body, w.Class(c.Name))
	if c.Super == "" {
		body = U2(body, 0)
	} else {
		body = U2(body, w.Class(c.Super))
	}
	body = U2(body, uint16(len(c.Interfaces)))
	for _, iface := range c.Interfaces {
		body = U2(body, w.Class(iface))
	}
	body = append(body, w.members(c.Fields)...)
	body = append(body, w.members(c.Methods)...)
	body = append(body, w.attributes(c.Attrs)...)

	out := binary.BigEndian.AppendUint32(nil, magic)
	out = U2(out, 0)
	out = U2(out, majorJava21)
	out = U2(out, w.next)
	out = append(out, w.pool...)
	return append(out, body...)
}

// Minimal encodes an empty public class; names are internal (slash) form
func Minimal(name, super string) []byte {
	return NewWriter().Bytes(Class{Access: 0x0001, Name: name, Super: super})
}

// Internal converts a dotted class name to its internal form
func Internal(className string) string {
	return strings.ReplaceAll(className, ".", "/")
}

// Descriptor is the field descriptor of a dotted class name
func Descriptor(className string) string {
	return "L" + Internal(className) + ";"
}
