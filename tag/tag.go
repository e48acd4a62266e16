package tag

import (
	"strconv"
	"strings"

	"github.com/arloliu/nbt/format"
)

// Tag is a single NBT value.
//
// The interface is sealed: only the variant types of this package implement it.
type Tag interface {
	// Type returns the wire type code of the variant.
	Type() format.TagType
	// String returns a structural debug rendering. The exact format is not stable.
	String() string

	isTag()
}

// Byte holds a signed 8-bit integer (type 0x01).
type Byte struct{ Value int8 }

// Short holds a signed 16-bit integer (type 0x02).
type Short struct{ Value int16 }

// Int holds a signed 32-bit integer (type 0x03).
type Int struct{ Value int32 }

// Long holds a signed 64-bit integer (type 0x04).
type Long struct{ Value int64 }

// Float holds an IEEE-754 single (type 0x05).
type Float struct{ Value float32 }

// Double holds an IEEE-754 double (type 0x06).
type Double struct{ Value float64 }

// String holds UTF-8 text. The encoded length must not exceed 65535 bytes.
type String struct{ Value string }

// ByteArray holds signed bytes. The length must not exceed 2^31-1.
type ByteArray struct{ Value []int8 }

// IntArray holds signed 32-bit integers. The length must not exceed 2^31-1.
type IntArray struct{ Value []int32 }

// LongArray holds signed 64-bit integers. The length must not exceed 2^31-1.
type LongArray struct{ Value []int64 }

var (
	_ Tag = (*Byte)(nil)
	_ Tag = (*Short)(nil)
	_ Tag = (*Int)(nil)
	_ Tag = (*Long)(nil)
	_ Tag = (*Float)(nil)
	_ Tag = (*Double)(nil)
	_ Tag = (*String)(nil)
	_ Tag = (*ByteArray)(nil)
	_ Tag = (*IntArray)(nil)
	_ Tag = (*LongArray)(nil)
	_ Tag = (*List)(nil)
	_ Tag = (*Compound)(nil)
)

// Constructors wrap a payload in its variant. Array constructors keep the
// slice without copying.

func NewByte(v int8) *Byte              { return &Byte{Value: v} }
func NewShort(v int16) *Short           { return &Short{Value: v} }
func NewInt(v int32) *Int               { return &Int{Value: v} }
func NewLong(v int64) *Long             { return &Long{Value: v} }
func NewFloat(v float32) *Float         { return &Float{Value: v} }
func NewDouble(v float64) *Double       { return &Double{Value: v} }
func NewString(v string) *String        { return &String{Value: v} }
func NewByteArray(v []int8) *ByteArray  { return &ByteArray{Value: v} }
func NewIntArray(v []int32) *IntArray   { return &IntArray{Value: v} }
func NewLongArray(v []int64) *LongArray { return &LongArray{Value: v} }

// IsNil reports whether t is nil or a nil pointer of one of the variants.
// Trees never hold such values; Compound.Set and List.Append reject them.
func IsNil(t Tag) bool {
	switch v := t.(type) {
	case nil:
		return true
	case *Byte:
		return v == nil
	case *Short:
		return v == nil
	case *Int:
		return v == nil
	case *Long:
		return v == nil
	case *Float:
		return v == nil
	case *Double:
		return v == nil
	case *String:
		return v == nil
	case *ByteArray:
		return v == nil
	case *IntArray:
		return v == nil
	case *LongArray:
		return v == nil
	case *List:
		return v == nil
	case *Compound:
		return v == nil
	default:
		return false
	}
}

func (*Byte) Type() format.TagType      { return format.TagByte }
func (*Short) Type() format.TagType     { return format.TagShort }
func (*Int) Type() format.TagType       { return format.TagInt }
func (*Long) Type() format.TagType      { return format.TagLong }
func (*Float) Type() format.TagType     { return format.TagFloat }
func (*Double) Type() format.TagType    { return format.TagDouble }
func (*String) Type() format.TagType    { return format.TagString }
func (*ByteArray) Type() format.TagType { return format.TagByteArray }
func (*IntArray) Type() format.TagType  { return format.TagIntArray }
func (*LongArray) Type() format.TagType { return format.TagLongArray }

func (*Byte) isTag()      {}
func (*Short) isTag()     {}
func (*Int) isTag()       {}
func (*Long) isTag()      {}
func (*Float) isTag()     {}
func (*Double) isTag()    {}
func (*String) isTag()    {}
func (*ByteArray) isTag() {}
func (*IntArray) isTag()  {}
func (*LongArray) isTag() {}

func (b *Byte) String() string   { return strconv.FormatInt(int64(b.Value), 10) }
func (s *Short) String() string  { return strconv.FormatInt(int64(s.Value), 10) }
func (i *Int) String() string    { return strconv.FormatInt(int64(i.Value), 10) }
func (l *Long) String() string   { return strconv.FormatInt(l.Value, 10) }
func (f *Float) String() string  { return strconv.FormatFloat(float64(f.Value), 'g', -1, 32) }
func (d *Double) String() string { return strconv.FormatFloat(d.Value, 'g', -1, 64) }
func (s *String) String() string { return s.Value }

func (a *ByteArray) String() string {
	return formatSeq(len(a.Value), func(sb *strings.Builder, i int) {
		sb.WriteString(strconv.FormatInt(int64(a.Value[i]), 10))
	})
}

func (a *IntArray) String() string {
	return formatSeq(len(a.Value), func(sb *strings.Builder, i int) {
		sb.WriteString(strconv.FormatInt(int64(a.Value[i]), 10))
	})
}

func (a *LongArray) String() string {
	return formatSeq(len(a.Value), func(sb *strings.Builder, i int) {
		sb.WriteString(strconv.FormatInt(a.Value[i], 10))
	})
}

// formatSeq renders n elements as "[e, e, ...]".
func formatSeq(n int, elem func(sb *strings.Builder, i int)) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range n {
		if i != 0 {
			sb.WriteString(", ")
		}
		elem(&sb, i)
	}
	sb.WriteByte(']')

	return sb.String()
}

// render writes the debug form of t, printing "<nil>" for a nil tag so a
// malformed tree can still be inspected.
func render(t Tag) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
