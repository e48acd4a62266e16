package nbt

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/nbt/codec"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/tag"
)

var singleByte = []byte{0x0A, 0x00, 0x00, 0x01, 0x00, 0x03, 'f', 'o', 'o', 0x2A, 0x00}

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func levelDoc(t *testing.T) Document {
	t.Helper()

	spawn, err := tag.NewListOf(tag.NewInt(-120), tag.NewInt(64), tag.NewInt(310))
	require.NoError(t, err)

	doc := NewDocument("")
	doc.Root.MustSet("Data", tag.NewCompound().
		MustSet("LevelName", tag.NewString("New World")).
		MustSet("RandomSeed", tag.NewLong(-4172144997902289642)).
		MustSet("Spawn", spawn).
		MustSet("hardcore", tag.NewByte(0)))

	return doc
}

func TestRead_GzipEnvelope(t *testing.T) {
	raw, ct, err := Read(bytes.NewReader(singleByte))
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, ct)

	wrapped, ct, err := Read(bytes.NewReader(gzipped(t, singleByte)))
	require.NoError(t, err)
	require.Equal(t, format.CompressionGzip, ct)

	require.True(t, tag.Equal(raw.Root, wrapped.Root))
	v, ok := wrapped.Root.GetByte("foo")
	require.True(t, ok)
	require.Equal(t, int8(42), v)
}

func TestUnmarshal_DetectsEnvelope(t *testing.T) {
	doc, ct, err := Unmarshal(gzipped(t, singleByte))
	require.NoError(t, err)
	require.Equal(t, format.CompressionGzip, ct)
	require.Equal(t, 1, doc.CountElements())

	doc, ct, err = Unmarshal(singleByte)
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, ct)
	require.Equal(t, 1, doc.CountElements())
}

func TestMarshal_AllEnvelopes(t *testing.T) {
	doc := levelDoc(t)

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionGzip,
		format.CompressionZlib,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			data, err := Marshal(doc, ct)
			require.NoError(t, err)

			got, detected, err := Unmarshal(data)
			require.NoError(t, err)
			require.Equal(t, ct, detected)
			require.True(t, tag.Equal(doc.Root, got.Root))
			require.Equal(t, Fingerprint(doc), Fingerprint(got))
		})
	}
}

func TestMarshal_RawMatchesCodec(t *testing.T) {
	doc := levelDoc(t)

	viaRoot, err := Marshal(doc, format.CompressionNone)
	require.NoError(t, err)

	viaCodec, err := codec.Marshal(doc)
	require.NoError(t, err)

	require.Equal(t, viaCodec, viaRoot)
}

func TestMarshal_ReadableAsStream(t *testing.T) {
	doc := levelDoc(t)

	for _, ct := range []format.CompressionType{
		format.CompressionGzip,
		format.CompressionZlib,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			data, err := Marshal(doc, ct)
			require.NoError(t, err)

			got, detected, err := Read(bytes.NewReader(data))
			require.NoError(t, err)
			require.Equal(t, ct, detected)
			require.True(t, tag.Equal(doc.Root, got.Root))

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, doc, ct))

			got, detected, err = Unmarshal(buf.Bytes())
			require.NoError(t, err)
			require.Equal(t, ct, detected)
			require.True(t, tag.Equal(doc.Root, got.Root))
		})
	}
}

func TestMarshal_Errors(t *testing.T) {
	_, err := Marshal(levelDoc(t), format.CompressionType(0x42))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = Marshal(Document{}, format.CompressionGzip)
	require.ErrorIs(t, err, errs.ErrNilTag)
}

func TestUnmarshal_BoundsLengthsInsideEnvelope(t *testing.T) {
	// byte array "a" declares 1000 elements but carries two
	short := []byte{0x0A, 0x00, 0x00, 0x07, 0x00, 0x01, 'a', 0x00, 0x00, 0x03, 0xE8, 0x01, 0x02, 0x00}
	data := gzipped(t, short)

	_, ct, err := Unmarshal(data)
	require.Equal(t, format.CompressionGzip, ct)
	require.ErrorIs(t, err, errs.ErrInvalidLength)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, _, err = Read(bytes.NewReader(data))
	require.ErrorIs(t, err, errs.ErrIO)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestUnmarshal_TruncatedEnvelope(t *testing.T) {
	data, err := Marshal(levelDoc(t), format.CompressionGzip)
	require.NoError(t, err)

	_, ct, err := Unmarshal(data[:len(data)/2])
	require.Equal(t, format.CompressionGzip, ct)
	require.ErrorIs(t, err, errs.ErrIO)
}

func TestReadAs_ForcedEnvelope(t *testing.T) {
	doc, err := ReadAs(bytes.NewReader(gzipped(t, singleByte)), format.CompressionGzip)
	require.NoError(t, err)
	require.True(t, doc.Root.Has("foo"))

	// a raw document is not a gzip member
	_, err = ReadAs(bytes.NewReader(singleByte), format.CompressionGzip)
	require.ErrorIs(t, err, errs.ErrIO)

	_, err = ReadAs(bytes.NewReader(singleByte), format.CompressionType(0x42))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestRead_TruncatedEnvelope(t *testing.T) {
	data, err := Marshal(levelDoc(t), format.CompressionGzip)
	require.NoError(t, err)

	_, _, err = Read(bytes.NewReader(data[:len(data)/2]))
	require.ErrorIs(t, err, errs.ErrIO)
}

func TestRead_Empty(t *testing.T) {
	_, ct, err := Read(bytes.NewReader(nil))
	require.Equal(t, format.CompressionNone, ct)
	require.ErrorIs(t, err, errs.ErrIO)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestRead_DecoderOptions(t *testing.T) {
	data, err := Marshal(levelDoc(t), format.CompressionGzip)
	require.NoError(t, err)

	_, _, err = Read(bytes.NewReader(data), codec.WithMaxDepth(1))
	require.ErrorIs(t, err, errs.ErrMaxDepthExceeded)
}

func TestWrite_Errors(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, Document{}, format.CompressionNone)
	require.ErrorIs(t, err, errs.ErrNilTag)
	require.Zero(t, buf.Len())

	err = Write(&buf, levelDoc(t), format.CompressionType(0x42))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	err = Write(&buf, levelDoc(t), format.CompressionGzip, codec.WithWriteMaxDepth(0))
	require.Error(t, err)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	doc := levelDoc(t)

	path := filepath.Join(dir, "level.dat")
	require.NoError(t, WriteFile(path, doc, format.CompressionGzip, codec.WithSortedKeys()))

	got, ct, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, format.CompressionGzip, ct)
	require.True(t, tag.Equal(doc.Root, got.Root))

	_, _, err = ReadFile(filepath.Join(dir, "missing.dat"))
	require.ErrorIs(t, err, errs.ErrIO)

	err = WriteFile(filepath.Join(dir, "no", "such", "dir.dat"), doc, format.CompressionNone)
	require.ErrorIs(t, err, errs.ErrIO)
}

func TestFingerprint(t *testing.T) {
	a := NewDocument("x")
	a.Root.MustSet("p", tag.NewInt(1)).MustSet("q", tag.NewInt(2))

	b := NewDocument("x")
	b.Root.MustSet("q", tag.NewInt(2)).MustSet("p", tag.NewInt(1))

	require.Equal(t, Fingerprint(a), Fingerprint(b))

	b.Name = "y"
	require.NotEqual(t, Fingerprint(a), Fingerprint(b))
	require.Zero(t, Fingerprint(Document{}))
}
