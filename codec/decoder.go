package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/nbt/endian"
	"github.com/arloliu/nbt/errs"
	"github.com/arloliu/nbt/format"
	"github.com/arloliu/nbt/internal/options"
	"github.com/arloliu/nbt/internal/pool"
	"github.com/arloliu/nbt/tag"
)

// initialArrayCap bounds the first allocation for a declared array length.
// Larger arrays grow as their bytes actually arrive.
const initialArrayCap = 1 << 14

// byteSource is the blocking read interface the decoder works on.
type byteSource interface {
	io.Reader
	io.ByteReader
}

// remainingLener is implemented by in-memory readers such as *bytes.Reader.
type remainingLener interface {
	Len() int
}

// Decoder reads NBT documents from a byte source.
//
// When the source does not implement io.ByteReader it is wrapped in a
// bufio.Reader, which may read past the end of the document.
//
// Note: The Decoder is NOT thread-safe.
type Decoder struct {
	src     byteSource
	remain  remainingLener
	cfg     *DecoderConfig
	engine  endian.EndianEngine
	scratch *pool.ByteBuffer
	buf     [8]byte
}

// NewDecoder creates a decoder reading from r.
//
// Parameters:
//   - r: Byte source holding raw (uncompressed) NBT
//   - opts: Decoder options
//
// Returns:
//   - *Decoder: New decoder instance
//   - error: Invalid option value
func NewDecoder(r io.Reader, opts ...DecoderOption) (*Decoder, error) {
	cfg := NewDecoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	d := &Decoder{
		cfg:    cfg,
		engine: endian.GetBigEndianEngine(),
	}

	if src, ok := r.(byteSource); ok {
		d.src = src
		d.remain, _ = r.(remainingLener)
	} else {
		d.src = bufio.NewReader(r)
	}

	return d, nil
}

// Unmarshal decodes a complete document held in data.
func Unmarshal(data []byte, opts ...DecoderOption) (Document, error) {
	d, err := NewDecoder(bytes.NewReader(data), opts...)
	if err != nil {
		return Document{}, err
	}

	return d.Decode()
}

// Decode reads one document: the root type byte, which must be TagCompound,
// the root name, and the compound body.
//
// Returns:
//   - Document: Root name and compound
//   - error: errs.ErrInvalidType, errs.ErrInvalidUTF8, errs.ErrInvalidLength,
//     errs.ErrMaxDepthExceeded, or errs.ErrIO for a failed or truncated source
func (d *Decoder) Decode() (Document, error) {
	d.acquire()
	defer d.release()

	b, err := d.src.ReadByte()
	if err != nil {
		return Document{}, ioErr("root type", err)
	}
	if typ := format.TagType(b); typ != format.TagCompound {
		return Document{}, fmt.Errorf("%w: root is %s (0x%02x), expected Compound", errs.ErrInvalidType, typ, b)
	}

	name, err := d.readName()
	if err != nil {
		return Document{}, fmt.Errorf("root name: %w", err)
	}

	root, err := d.readCompound(1, true)
	if err != nil {
		return Document{}, err
	}

	return Document{Name: name, Root: root}, nil
}

// DecodeBody reads a root compound body whose type byte and name have
// already been consumed by the caller.
func (d *Decoder) DecodeBody() (*tag.Compound, error) {
	d.acquire()
	defer d.release()

	return d.readCompound(1, true)
}

func (d *Decoder) acquire() {
	d.scratch = pool.GetScratchBuffer()
}

func (d *Decoder) release() {
	pool.PutScratchBuffer(d.scratch)
	d.scratch = nil
}

// readCompound reads entries until the End byte. For the root compound an
// end of stream where the next entry type is expected ends the compound.
func (d *Decoder) readCompound(depth int, root bool) (*tag.Compound, error) {
	if depth > d.cfg.maxDepth {
		return nil, fmt.Errorf("%w: depth %d", errs.ErrMaxDepthExceeded, depth)
	}

	c := tag.NewCompound()
	for {
		b, err := d.src.ReadByte()
		if err != nil {
			if root && errors.Is(err, io.EOF) {
				return c, nil
			}

			return nil, ioErr("entry type", err)
		}

		typ := format.TagType(b)
		if typ == format.TagEnd {
			return c, nil
		}
		if !typ.Valid() {
			return nil, fmt.Errorf("%w: entry type 0x%02x", errs.ErrInvalidType, b)
		}

		name, err := d.readName()
		if err != nil {
			return nil, err
		}

		value, err := d.readPayload(typ, depth+1)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}

		if err := c.Set(name, value); err != nil {
			return nil, err
		}
	}
}

// readPayload decodes one payload of type typ. depth is the depth the value
// would occupy if it is a container.
func (d *Decoder) readPayload(typ format.TagType, depth int) (tag.Tag, error) {
	switch typ {
	case format.TagByte:
		b, err := d.src.ReadByte()
		if err != nil {
			return nil, ioErr("byte", err)
		}

		return tag.NewByte(int8(b)), nil
	case format.TagShort:
		v, err := d.readUint16()
		if err != nil {
			return nil, ioErr("short", err)
		}

		return tag.NewShort(int16(v)), nil
	case format.TagInt:
		v, err := d.readUint32()
		if err != nil {
			return nil, ioErr("int", err)
		}

		return tag.NewInt(int32(v)), nil
	case format.TagLong:
		v, err := d.readUint64()
		if err != nil {
			return nil, ioErr("long", err)
		}

		return tag.NewLong(int64(v)), nil
	case format.TagFloat:
		if err := d.readFixed(4); err != nil {
			return nil, ioErr("float", err)
		}

		return tag.NewFloat(endian.Float32(d.engine, d.buf[:4])), nil
	case format.TagDouble:
		if err := d.readFixed(8); err != nil {
			return nil, ioErr("double", err)
		}

		return tag.NewDouble(endian.Float64(d.engine, d.buf[:8])), nil
	case format.TagByteArray:
		v, err := d.readByteArray()
		if err != nil {
			return nil, err
		}

		return tag.NewByteArray(v), nil
	case format.TagString:
		s, err := d.readString(d.cfg.lossyStrings)
		if err != nil {
			return nil, err
		}

		return tag.NewString(s), nil
	case format.TagList:
		return d.readList(depth)
	case format.TagCompound:
		return d.readCompound(depth, false)
	case format.TagIntArray:
		v, err := d.readIntArray()
		if err != nil {
			return nil, err
		}

		return tag.NewIntArray(v), nil
	case format.TagLongArray:
		v, err := d.readLongArray()
		if err != nil {
			return nil, err
		}

		return tag.NewLongArray(v), nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrInvalidType, byte(typ))
	}
}

func (d *Decoder) readList(depth int) (*tag.List, error) {
	if depth > d.cfg.maxDepth {
		return nil, fmt.Errorf("%w: depth %d", errs.ErrMaxDepthExceeded, depth)
	}

	b, err := d.src.ReadByte()
	if err != nil {
		return nil, ioErr("list element type", err)
	}

	elemType := format.TagType(b)
	if !elemType.Valid() {
		return nil, fmt.Errorf("%w: list element type 0x%02x", errs.ErrInvalidType, b)
	}

	n, err := d.readLength("list", minPayloadSize(elemType))
	if err != nil {
		return nil, err
	}
	if elemType == format.TagEnd && n > 0 {
		return nil, fmt.Errorf("%w: list of End with %d elements", errs.ErrInvalidType, n)
	}

	l := tag.NewList(elemType)
	for i := range n {
		elem, err := d.readPayload(elemType, depth+1)
		if err != nil {
			return nil, fmt.Errorf("list element %d: %w", i, err)
		}
		if err := l.Append(elem); err != nil {
			return nil, err
		}
	}

	return l, nil
}

func (d *Decoder) readByteArray() ([]int8, error) {
	n, err := d.readLength("byte array", 1)
	if err != nil {
		return nil, err
	}

	out := make([]int8, 0, min(n, initialArrayCap))
	err = d.readChunks(n, 1, func(chunk []byte) {
		for _, b := range chunk {
			out = append(out, int8(b))
		}
	})
	if err != nil {
		return nil, ioErr("byte array", err)
	}

	return out, nil
}

func (d *Decoder) readIntArray() ([]int32, error) {
	n, err := d.readLength("int array", 4)
	if err != nil {
		return nil, err
	}

	out := make([]int32, 0, min(n, initialArrayCap))
	err = d.readChunks(n, 4, func(chunk []byte) {
		for i := 0; i < len(chunk); i += 4 {
			out = append(out, int32(d.engine.Uint32(chunk[i:])))
		}
	})
	if err != nil {
		return nil, ioErr("int array", err)
	}

	return out, nil
}

func (d *Decoder) readLongArray() ([]int64, error) {
	n, err := d.readLength("long array", 8)
	if err != nil {
		return nil, err
	}

	out := make([]int64, 0, min(n, initialArrayCap))
	err = d.readChunks(n, 8, func(chunk []byte) {
		for i := 0; i < len(chunk); i += 8 {
			out = append(out, int64(d.engine.Uint64(chunk[i:])))
		}
	})
	if err != nil {
		return nil, ioErr("long array", err)
	}

	return out, nil
}

// readChunks reads n fixed-width elements through the scratch buffer and
// hands each filled chunk to fn.
func (d *Decoder) readChunks(n, width int, fn func(chunk []byte)) error {
	perChunk := max(pool.ScratchBufferDefaultSize/width, 1)
	for n > 0 {
		k := min(n, perChunk)
		chunk := d.scratch.Sized(k * width)
		if _, err := io.ReadFull(d.src, chunk); err != nil {
			return err
		}
		fn(chunk)
		n -= k
	}

	return nil
}

// readLength reads a signed 32-bit length and checks it against the
// configured ceiling and, for in-memory sources, the bytes left to read.
func (d *Decoder) readLength(what string, elemSize int) (int, error) {
	v, err := d.readUint32()
	if err != nil {
		return 0, ioErr(what+" length", err)
	}

	n := int(int32(v))
	if n < 0 {
		return 0, fmt.Errorf("%w: negative %s length %d", errs.ErrInvalidLength, what, n)
	}
	if n > d.cfg.maxLength {
		return 0, fmt.Errorf("%w: %s length %d exceeds limit %d", errs.ErrInvalidLength, what, n, d.cfg.maxLength)
	}
	if d.remain != nil && elemSize > 0 {
		if left := d.remain.Len(); n > left/elemSize {
			return 0, fmt.Errorf("%w: %s length %d exceeds remaining input of %d bytes: %w",
				errs.ErrInvalidLength, what, n, left, io.ErrUnexpectedEOF)
		}
	}

	return n, nil
}

// readName reads a compound entry name. Names are always strict UTF-8.
func (d *Decoder) readName() (string, error) {
	return d.readString(false)
}

func (d *Decoder) readString(lossy bool) (string, error) {
	v, err := d.readUint16()
	if err != nil {
		return "", ioErr("string length", err)
	}

	n := int(v)
	if n == 0 {
		return "", nil
	}

	b := d.scratch.Sized(n)
	if _, err := io.ReadFull(d.src, b); err != nil {
		return "", ioErr("string", err)
	}

	if !utf8.Valid(b) {
		if !lossy {
			return "", fmt.Errorf("%w: %q", errs.ErrInvalidUTF8, b)
		}

		return lossyString(b), nil
	}

	return string(b), nil
}

// lossyString copies b, replacing each maximal ill-formed subsequence with
// one U+FFFD. A truncated multi-byte sequence counts as one subsequence, a
// run of stray bytes as one per byte.
func lossyString(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) + 2*utf8.UTFMax)

	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			sb.WriteRune(utf8.RuneError)
			b = b[invalidPrefixLen(b):]

			continue
		}
		sb.Write(b[:size])
		b = b[size:]
	}

	return sb.String()
}

// invalidPrefixLen returns the length of the ill-formed sequence at the
// start of b: the lead byte plus the continuation bytes that were still
// acceptable for it.
func invalidPrefixLen(b []byte) int {
	lo, hi := byte(0x80), byte(0xBF)

	var need int
	switch lead := b[0]; {
	case lead >= 0xC2 && lead <= 0xDF:
		need = 1
	case lead == 0xE0:
		need, lo = 2, 0xA0
	case lead == 0xED:
		need, hi = 2, 0x9F
	case lead >= 0xE1 && lead <= 0xEF:
		need = 2
	case lead == 0xF0:
		need, lo = 3, 0x90
	case lead == 0xF4:
		need, hi = 3, 0x8F
	case lead >= 0xF1 && lead <= 0xF3:
		need = 3
	default:
		return 1
	}

	n := 1
	for n <= need && n < len(b) && b[n] >= lo && b[n] <= hi {
		lo, hi = 0x80, 0xBF
		n++
	}

	return n
}

func (d *Decoder) readFixed(n int) error {
	_, err := io.ReadFull(d.src, d.buf[:n])
	return err
}

func (d *Decoder) readUint16() (uint16, error) {
	if err := d.readFixed(2); err != nil {
		return 0, err
	}

	return d.engine.Uint16(d.buf[:2]), nil
}

func (d *Decoder) readUint32() (uint32, error) {
	if err := d.readFixed(4); err != nil {
		return 0, err
	}

	return d.engine.Uint32(d.buf[:4]), nil
}

func (d *Decoder) readUint64() (uint64, error) {
	if err := d.readFixed(8); err != nil {
		return 0, err
	}

	return d.engine.Uint64(d.buf[:8]), nil
}

// minPayloadSize is the smallest number of bytes a payload of typ occupies.
func minPayloadSize(typ format.TagType) int {
	switch typ {
	case format.TagByte, format.TagCompound:
		return 1
	case format.TagShort, format.TagString:
		return 2
	case format.TagInt, format.TagFloat, format.TagByteArray, format.TagIntArray, format.TagLongArray:
		return 4
	case format.TagLong, format.TagDouble:
		return 8
	case format.TagList:
		return 5
	default:
		return 0
	}
}

// ioErr wraps a source failure. A clean end of stream in the middle of a
// value is reported as io.ErrUnexpectedEOF.
func ioErr(what string, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}

	return fmt.Errorf("%w: reading %s: %w", errs.ErrIO, what, err)
}
