package codec

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/tag"
)

var (
	emptyRoot = []byte{0x0A, 0x00, 0x00, 0x00}

	singleByte = []byte{0x0A, 0x00, 0x00, 0x01, 0x00, 0x03, 'f', 'o', 'o', 0x2A, 0x00}

	listOfCompounds = []byte{
		0x0A, 0x00, 0x00,
		0x09, 0x00, 0x02, 'x', 's', 0x0A, 0x00, 0x00, 0x00, 0x02,
		0x03, 0x00, 0x01, 'n', 0x00, 0x00, 0x00, 0x01, 0x00,
		0x03, 0x00, 0x01, 'n', 0x00, 0x00, 0x00, 0x02, 0x00,
		0x00,
	}

	utf8Name = []byte{0x0A, 0x00, 0x00, 0x01, 0x00, 0x06, 'h', 0xC3, 0xA9, 'l', 'l', 'o', 0x07, 0x00}

	intArray = []byte{
		0x0A, 0x00, 0x00,
		0x0B, 0x00, 0x01, 'a', 0x00, 0x00, 0x00, 0x03,
		0x00, 0x00, 0x00, 0x01,
		0xFF, 0xFF, 0xFF, 0xFF,
		0x7F, 0xFF, 0xFF, 0xFF,
		0x00,
	}
)

func TestDecode_EmptyRoot(t *testing.T) {
	doc, err := Unmarshal(emptyRoot)
	require.NoError(t, err)

	require.Empty(t, doc.Name)
	require.Equal(t, 0, doc.Root.Len())
	require.Equal(t, 0, doc.CountElements())
}

func TestDecode_SingleByte(t *testing.T) {
	doc, err := Unmarshal(singleByte)
	require.NoError(t, err)

	v, ok := doc.Root.GetByte("foo")
	require.True(t, ok)
	require.Equal(t, int8(42), v)
	require.Equal(t, 1, doc.CountElements())
}

func TestDecode_ListOfCompounds(t *testing.T) {
	doc, err := Unmarshal(listOfCompounds)
	require.NoError(t, err)

	xs, ok := doc.Root.GetList("xs")
	require.True(t, ok)
	require.Equal(t, format.TagCompound, xs.ElemType())
	require.Equal(t, 2, xs.Len())

	for i, want := range []int32{1, 2} {
		c, ok := tag.AsCompound(xs.At(i))
		require.True(t, ok)
		n, ok := c.GetInt("n")
		require.True(t, ok)
		require.Equal(t, want, n)
	}
	require.Equal(t, 2, doc.CountElements())
}

func TestDecode_UTF8Name(t *testing.T) {
	doc, err := Unmarshal(utf8Name)
	require.NoError(t, err)

	require.Equal(t, []string{"héllo"}, doc.Root.Names())
}

func TestDecode_IntArray(t *testing.T) {
	doc, err := Unmarshal(intArray)
	require.NoError(t, err)

	v, ok := doc.Root.GetIntArray("a")
	require.True(t, ok)
	require.Equal(t, []int32{1, -1, 1<<31 - 1}, v)
	require.Equal(t, 3, doc.CountElements())
}

func TestDecode_RootName(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x05, 'L', 'e', 'v', 'e', 'l', 0x00}

	doc, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, "Level", doc.Name)
}

func TestDecode_RootEOFIsTerminator(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want int
	}{
		{"no entries", []byte{0x0A, 0x00, 0x00}, 0},
		{"one entry", []byte{0x0A, 0x00, 0x00, 0x01, 0x00, 0x01, 'a', 0x05}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Unmarshal(tt.data)
			require.NoError(t, err)
			require.Equal(t, tt.want, doc.Root.Len())
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []error
	}{
		{
			name: "empty input",
			data: nil,
			want: []error{errs.ErrIO, io.ErrUnexpectedEOF},
		},
		{
			name: "byte root",
			data: []byte{0x01, 0x00, 0x00, 0x2A},
			want: []error{errs.ErrInvalidType},
		},
		{
			name: "unknown entry type",
			data: []byte{0x0A, 0x00, 0x00, 0x0D, 0x00, 0x00},
			want: []error{errs.ErrInvalidType},
		},
		{
			name: "truncated string",
			data: []byte{0x0A, 0x00, 0x00, 0x08, 0x00, 0x01, 's', 0x00, 0x05, 'a', 'b'},
			want: []error{errs.ErrIO, io.ErrUnexpectedEOF},
		},
		{
			name: "truncated root name",
			data: []byte{0x0A, 0x00, 0x04, 'a'},
			want: []error{errs.ErrIO, io.ErrUnexpectedEOF},
		},
		{
			name: "invalid UTF-8 name",
			data: []byte{0x0A, 0x00, 0x00, 0x01, 0x00, 0x01, 0xFF, 0x2A, 0x00},
			want: []error{errs.ErrInvalidUTF8},
		},
		{
			name: "invalid UTF-8 string",
			data: []byte{0x0A, 0x00, 0x00, 0x08, 0x00, 0x01, 's', 0x00, 0x01, 0xFF, 0x00},
			want: []error{errs.ErrInvalidUTF8},
		},
		{
			name: "inner compound without terminator",
			data: []byte{0x0A, 0x00, 0x00, 0x0A, 0x00, 0x01, 'c'},
			want: []error{errs.ErrIO, io.ErrUnexpectedEOF},
		},
		{
			name: "truncated int",
			data: []byte{0x0A, 0x00, 0x00, 0x03, 0x00, 0x01, 'i', 0x00, 0x01},
			want: []error{errs.ErrIO},
		},
		{
			name: "negative array length",
			data: []byte{0x0A, 0x00, 0x00, 0x07, 0x00, 0x01, 'a', 0xFF, 0xFF, 0xFF, 0xFF},
			want: []error{errs.ErrInvalidLength},
		},
		{
			name: "negative list length",
			data: []byte{0x0A, 0x00, 0x00, 0x09, 0x00, 0x01, 'l', 0x01, 0x80, 0x00, 0x00, 0x00},
			want: []error{errs.ErrInvalidLength},
		},
		{
			name: "length beyond input",
			data: []byte{0x0A, 0x00, 0x00, 0x0B, 0x00, 0x01, 'a', 0x00, 0x00, 0x10, 0x00, 0x00, 0x00},
			want: []error{errs.ErrInvalidLength, io.ErrUnexpectedEOF},
		},
		{
			name: "non-empty list of End",
			data: []byte{0x0A, 0x00, 0x00, 0x09, 0x00, 0x01, 'l', 0x00, 0x00, 0x00, 0x00, 0x01, 0x00},
			want: []error{errs.ErrInvalidType},
		},
		{
			name: "unknown list element type",
			data: []byte{0x0A, 0x00, 0x00, 0x09, 0x00, 0x01, 'l', 0x20, 0x00, 0x00, 0x00, 0x00, 0x00},
			want: []error{errs.ErrInvalidType},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal(tt.data)
			require.Error(t, err)
			for _, want := range tt.want {
				require.ErrorIs(t, err, want)
			}
		})
	}
}

func TestDecode_EmptyEndList(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x09, 0x00, 0x01, 'l', 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

	doc, err := Unmarshal(data)
	require.NoError(t, err)

	l, ok := doc.Root.GetList("l")
	require.True(t, ok)
	require.Equal(t, format.TagEnd, l.ElemType())
	require.Equal(t, 0, l.Len())
}

func TestDecode_MaxLength(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x07, 0x00, 0x01, 'a', 0x00, 0x00, 0x00, 0x03, 0x01, 0x02, 0x03, 0x00}

	_, err := Unmarshal(data, WithMaxLength(2))
	require.ErrorIs(t, err, errs.ErrInvalidLength)

	doc, err := Unmarshal(data, WithMaxLength(3))
	require.NoError(t, err)
	v, ok := doc.Root.GetByteArray("a")
	require.True(t, ok)
	require.Equal(t, []int8{1, 2, 3}, v)
}

func TestDecode_MaxDepth(t *testing.T) {
	// root -> c1 -> c2, so three levels of compounds
	data := []byte{
		0x0A, 0x00, 0x00,
		0x0A, 0x00, 0x02, 'c', '1',
		0x0A, 0x00, 0x02, 'c', '2',
		0x00,
		0x00,
		0x00,
	}

	_, err := Unmarshal(data, WithMaxDepth(3))
	require.NoError(t, err)

	_, err = Unmarshal(data, WithMaxDepth(2))
	require.ErrorIs(t, err, errs.ErrMaxDepthExceeded)
}

func TestDecode_MaxDepthCountsLists(t *testing.T) {
	// root -> list -> list(empty)
	data := []byte{
		0x0A, 0x00, 0x00,
		0x09, 0x00, 0x01, 'l', 0x09, 0x00, 0x00, 0x00, 0x01,
		0x01, 0x00, 0x00, 0x00, 0x00,
		0x00,
	}

	_, err := Unmarshal(data, WithMaxDepth(3))
	require.NoError(t, err)

	_, err = Unmarshal(data, WithMaxDepth(2))
	require.ErrorIs(t, err, errs.ErrMaxDepthExceeded)
}

func TestDecode_LossyStrings(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x08, 0x00, 0x01, 's', 0x00, 0x03, 'a', 0xFF, 'b', 0x00}

	doc, err := Unmarshal(data, WithLossyStrings())
	require.NoError(t, err)

	s, ok := doc.Root.GetString("s")
	require.True(t, ok)
	require.Equal(t, "a\uFFFDb", s)

	// names stay strict
	bad := []byte{0x0A, 0x00, 0x00, 0x01, 0x00, 0x01, 0xFF, 0x2A, 0x00}
	_, err = Unmarshal(bad, WithLossyStrings())
	require.ErrorIs(t, err, errs.ErrInvalidUTF8)
}

func TestDecode_LossyReplacementPerSequence(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"two stray bytes", "\xff\xff", "\uFFFD\uFFFD"},
		{"truncated three byte sequence", "a\xe2\x82b", "a\uFFFDb"},
		{"truncated four byte sequence at end", "x\xf0\x9f\x98", "x\uFFFD"},
		{"surrogate half", "\xed\xa0\x80", "\uFFFD\uFFFD\uFFFD"},
		{"overlong encoding", "\xc0\xaf", "\uFFFD\uFFFD"},
		{"lone continuation between runes", "é\x80ü", "é\uFFFDü"},
		{"replacement char kept", "\uFFFD\xff", "\uFFFD\uFFFD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte{0x0A, 0x00, 0x00, 0x08, 0x00, 0x01, 's', 0x00, byte(len(tt.payload))}
			data = append(data, tt.payload...)
			data = append(data, 0x00)

			doc, err := Unmarshal(data, WithLossyStrings())
			require.NoError(t, err)

			got, _ := doc.Root.GetString("s")
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_InvalidOptions(t *testing.T) {
	_, err := NewDecoder(bytes.NewReader(emptyRoot), WithMaxDepth(0))
	require.Error(t, err)

	_, err = NewDecoder(bytes.NewReader(emptyRoot), WithMaxLength(-1))
	require.Error(t, err)
}

func TestDecode_PlainReader(t *testing.T) {
	// OneByteReader hides io.ByteReader, so the decoder buffers the source.
	d, err := NewDecoder(iotest.OneByteReader(bytes.NewReader(intArray)))
	require.NoError(t, err)

	doc, err := d.Decode()
	require.NoError(t, err)

	v, ok := doc.Root.GetIntArray("a")
	require.True(t, ok)
	require.Equal(t, []int32{1, -1, 1<<31 - 1}, v)
}

func TestDecode_HugeDeclaredLengthOnStream(t *testing.T) {
	// 1 MiB declared, 2 bytes present, and no remaining-size hint.
	data := []byte{0x0A, 0x00, 0x00, 0x07, 0x00, 0x01, 'a', 0x00, 0x10, 0x00, 0x00, 0x01, 0x02}

	d, err := NewDecoder(iotest.OneByteReader(bytes.NewReader(data)))
	require.NoError(t, err)

	_, err = d.Decode()
	require.ErrorIs(t, err, errs.ErrIO)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDecode_LargeArrayAcrossChunks(t *testing.T) {
	want := make([]int64, 5000)
	for i := range want {
		want[i] = int64(i) * -7
	}

	root := tag.NewCompound().MustSet("longs", tag.NewLongArray(want))
	data, err := Marshal(Document{Root: root})
	require.NoError(t, err)

	doc, err := Unmarshal(data)
	require.NoError(t, err)

	got, ok := doc.Root.GetLongArray("longs")
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestDecode_SourceError(t *testing.T) {
	boom := errors.New("boom")

	d, err := NewDecoder(iotest.ErrReader(boom))
	require.NoError(t, err)

	_, err = d.Decode()
	require.ErrorIs(t, err, errs.ErrIO)
	require.ErrorIs(t, err, boom)
}

func TestDecode_ConsecutiveDocuments(t *testing.T) {
	stream := append(append([]byte{}, singleByte...), intArray...)

	d, err := NewDecoder(bytes.NewReader(stream))
	require.NoError(t, err)

	first, err := d.Decode()
	require.NoError(t, err)
	require.True(t, first.Root.Has("foo"))

	second, err := d.Decode()
	require.NoError(t, err)
	require.True(t, second.Root.Has("a"))
}

func TestDecodeBody(t *testing.T) {
	d, err := NewDecoder(bytes.NewReader([]byte{0x01, 0x00, 0x01, 'a', 0x05, 0x00}))
	require.NoError(t, err)

	root, err := d.DecodeBody()
	require.NoError(t, err)

	v, ok := root.GetByte("a")
	require.True(t, ok)
	require.Equal(t, int8(5), v)
}
